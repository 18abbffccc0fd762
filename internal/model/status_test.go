package model

import "testing"

func TestTaskStatus_Predicates(t *testing.T) {
	tests := []struct {
		status   TaskStatus
		active   bool
		finished bool
		canStop  bool
		working  bool
	}{
		{TaskStatusPending, false, false, true, false},
		{TaskStatusStarting, true, false, true, true},
		{TaskStatusRendering, true, false, true, true},
		{TaskStatusStopping, true, false, false, false},
		{TaskStatusStopped, false, true, false, false},
		{TaskStatusCompleted, false, true, false, false},
		{TaskStatusError, false, true, false, false},
	}

	for _, test := range tests {
		if result := test.status.IsActive(); result != test.active {
			t.Errorf("%s.IsActive() = %v, expected %v", test.status, result, test.active)
		}
		if result := test.status.IsFinished(); result != test.finished {
			t.Errorf("%s.IsFinished() = %v, expected %v", test.status, result, test.finished)
		}
		if result := test.status.CanStop(); result != test.canStop {
			t.Errorf("%s.CanStop() = %v, expected %v", test.status, result, test.canStop)
		}
		if result := test.status.IsWorking(); result != test.working {
			t.Errorf("%s.IsWorking() = %v, expected %v", test.status, result, test.working)
		}
	}
}

func TestTaskStatus_String(t *testing.T) {
	if result := TaskStatusRendering.String(); result != "Rendering" {
		t.Errorf("TaskStatus.String() = %s, expected Rendering", result)
	}
}
