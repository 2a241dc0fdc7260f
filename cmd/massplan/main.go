// MassPlan — Interactive Massing & Cost Estimator
//
// A cross-platform desktop application for sketching building masses
// and estimating construction cost from a configurable rate book.
//
// Build:
//   go build -o massplan ./cmd/massplan
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o massplan.exe ./cmd/massplan
//   GOOS=darwin  GOARCH=amd64 go build -o massplan-darwin ./cmd/massplan
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"

	"github.com/jaj-pcl/MassPlan/internal/model"
	"github.com/jaj-pcl/MassPlan/internal/project"
	"github.com/jaj-pcl/MassPlan/internal/registry"
	"github.com/jaj-pcl/MassPlan/internal/render"
	"github.com/jaj-pcl/MassPlan/internal/ui"
)

func main() {
	book, bookPath, err := project.LoadOrCreateRateBook()
	if err != nil {
		log.Printf("rate book %s: %v (using built-in defaults)", bookPath, err)
		book = model.DefaultRateBook()
	}

	config, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		log.Printf("app config: %v (using defaults)", err)
		config = model.DefaultAppConfig()
	}

	templates, err := project.LoadDefaultTemplates()
	if err != nil {
		log.Printf("templates: %v (starting empty)", err)
		templates = model.TemplateStore{}
	}

	scene, err := render.New()
	if err != nil {
		log.Fatalf("renderer: %v", err)
	}

	reg := registry.New(book)
	reg.SetScene(scene)

	store := project.NewFileStore(project.DefaultBuildingsPath())
	if buildings, err := project.LoadBuildings(store); err != nil {
		log.Printf("buildings: %v (starting fresh)", err)
	} else if len(buildings) > 0 {
		reg.Restore(buildings)
	}
	if reg.Len() == 0 {
		if _, err := reg.CreateDefault(); err != nil {
			log.Fatalf("create default building: %v", err)
		}
	}

	application := app.NewWithID("com.jaj-pcl.massplan")
	application.Settings().SetTheme(themeFor(config.Theme))

	window := application.NewWindow("MassPlan — Interactive Massing & Cost Estimator")

	appUI := ui.NewApp(window, reg, scene, config, templates)
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(1400, 800))
	window.CenterOnScreen()

	window.SetCloseIntercept(func() {
		if err := project.SaveBuildings(store, reg.List()); err != nil {
			log.Printf("save buildings on exit: %v", err)
		}
		window.Close()
	})

	window.ShowAndRun()
}

func themeFor(name string) fyne.Theme {
	switch name {
	case "light":
		return ui.NewMassPlanThemeWithVariant(theme.VariantLight)
	case "dark":
		return ui.NewMassPlanThemeWithVariant(theme.VariantDark)
	default:
		return ui.NewMassPlanTheme()
	}
}
