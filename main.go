package main

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/icon-generator/internal/config"
	"github.com/ytget/icon-generator/internal/export"
	"github.com/ytget/icon-generator/internal/platform"
	"github.com/ytget/icon-generator/internal/render"
	"github.com/ytget/icon-generator/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.icon-generator"
	AppName = "Icon Generator"

	WindowWidth  = 960
	WindowHeight = 680
)

func main() {
	log.Printf("%s v%s starting...", AppName, version)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Initialize services
	settings := config.NewSettings(myApp)
	exportDir := settings.GetExportDirectory()
	if err := platform.CreateDirectoryIfNotExists(exportDir); err != nil {
		log.Printf("failed to ensure export dir: %v", err)
	}

	// One renderer serves the preview and the exports so decoded images are cached once
	renderer := render.NewRenderer(nil)
	exportSvc := export.NewService(renderer)
	exportSvc.SetOptions(settings.ExportOptions())

	if icon, err := ui.LoadLogoResource(renderer); err == nil {
		myApp.SetIcon(icon)
	} else {
		log.Printf("failed to create app icon: %v", err)
	}

	ui.NewRootUI(myWindow, myApp, settings, exportSvc, renderer)

	myWindow.ShowAndRun()
}
