package model

// TaskStatus is the lifecycle state of an export task
type TaskStatus string

// Export lifecycle: Pending -> Starting -> Rendering -> Completed | Error,
// with Stopping -> Stopped reachable from any unfinished state.
const (
	TaskStatusPending   TaskStatus = "Pending"
	TaskStatusStarting  TaskStatus = "Starting"
	TaskStatusRendering TaskStatus = "Rendering"
	TaskStatusStopping  TaskStatus = "Stopping"
	TaskStatusStopped   TaskStatus = "Stopped"
	TaskStatusCompleted TaskStatus = "Completed"
	TaskStatusError     TaskStatus = "Error"
)

func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive reports whether a goroutine currently owns the task
func (ts TaskStatus) IsActive() bool {
	return ts.IsWorking() || ts == TaskStatusStopping
}

// IsFinished reports whether the task reached a terminal state
func (ts TaskStatus) IsFinished() bool {
	switch ts {
	case TaskStatusCompleted, TaskStatusStopped, TaskStatusError:
		return true
	}
	return false
}

// CanStop reports whether a stop request would still have an effect
func (ts TaskStatus) CanStop() bool {
	return !ts.IsFinished() && ts != TaskStatusStopping
}

// IsWorking reports whether the task is producing output right now
func (ts TaskStatus) IsWorking() bool {
	return ts == TaskStatusStarting || ts == TaskStatusRendering
}
