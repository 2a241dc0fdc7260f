package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/jaj-pcl/MassPlan/internal/engine"
	"github.com/jaj-pcl/MassPlan/internal/model"
	"github.com/jaj-pcl/MassPlan/internal/project"
	"github.com/jaj-pcl/MassPlan/internal/registry"
)

// showAdvancedSettingsDialog opens the editor for application defaults,
// window openings on the selected building, and the floor-count solver.
func (a *App) showAdvancedSettingsDialog() {
	cfg := &a.config

	// Helper to create a float entry bound to a pointer
	floatEntry := func(val *float64) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(fmt.Sprintf("%.2f", *val))
		e.OnChanged = func(text string) {
			if v, err := strconv.ParseFloat(text, 64); err == nil {
				*val = v
			}
		}
		return e
	}

	intEntry := func(val *int) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(fmt.Sprintf("%d", *val))
		e.OnChanged = func(text string) {
			if v, err := strconv.Atoi(text); err == nil {
				*val = v
			}
		}
		return e
	}

	exteriorSelect := widget.NewSelect(a.reg.Rates().FinishNames(), func(selected string) {
		cfg.DefaultExteriorType = selected
	})
	exteriorSelect.SetSelected(cfg.DefaultExteriorType)

	themeSelect := widget.NewSelect([]string{"system", "light", "dark"}, func(selected string) {
		cfg.Theme = selected
	})
	themeSelect.SetSelected(cfg.Theme)

	metricCheck := widget.NewCheck("", func(b bool) { cfg.ShowMetricHints = b })
	metricCheck.Checked = cfg.ShowMetricHints

	defaultsSection := widget.NewCard("New Building Defaults", "", container.NewGridWithColumns(2,
		widget.NewLabel("Floors"), intEntry(&cfg.DefaultNumFloors),
		widget.NewLabel("Floor Height (ft)"), floatEntry(&cfg.DefaultFloorHeight),
		widget.NewLabel("Wall Thickness (ft)"), floatEntry(&cfg.DefaultWallThickness),
		widget.NewLabel("Exterior Finish"), exteriorSelect,
	))

	prefsSection := widget.NewCard("Preferences", "", container.NewGridWithColumns(2,
		widget.NewLabel("Theme"), themeSelect,
		widget.NewLabel("Show Metric Hints"), metricCheck,
		widget.NewLabel("Auto-Save Interval (min)"), intEntry(&cfg.AutoSaveInterval),
	))

	content := container.NewVBox(defaultsSection, prefsSection)

	if b, ok := a.reg.Selected(); ok {
		content.Add(a.buildWindowsSection(b))
		content.Add(a.buildSolverSection(b))
	}

	d := dialog.NewCustomConfirm("Advanced Settings", "Save", "Cancel",
		container.NewVScroll(content),
		func(ok bool) {
			if !ok {
				return
			}
			if err := project.SaveAppConfig(project.DefaultConfigPath(), a.config); err != nil {
				dialog.ShowError(err, a.window)
			}
		},
		a.window,
	)
	d.Resize(fyne.NewSize(480, 560))
	d.Show()
}

// buildWindowsSection edits the selected building's window opening counts,
// reserved for facade cutouts.
func (a *App) buildWindowsSection(b *model.Building) fyne.CanvasObject {
	id := b.ID
	apply := func(field registry.Field) func(string) {
		return func(text string) {
			v, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return
			}
			if _, err := a.reg.Apply(id, registry.Change{Field: field, Number: v}); err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.refreshAll()
		}
	}

	countEntry := widget.NewEntry()
	countEntry.SetText(fmt.Sprintf("%d", b.Params.WindowsPerFloor))
	countEntry.OnSubmitted = apply(registry.FieldWindowsPerFloor)

	widthEntry := widget.NewEntry()
	widthEntry.SetText(fmt.Sprintf("%.2f", b.Params.WindowWidth))
	widthEntry.OnSubmitted = apply(registry.FieldWindowWidth)

	heightEntry := widget.NewEntry()
	heightEntry.SetText(fmt.Sprintf("%.2f", b.Params.WindowHeight))
	heightEntry.OnSubmitted = apply(registry.FieldWindowHeight)

	return widget.NewCard("Windows (Selected Building)", "", container.NewGridWithColumns(2,
		widget.NewLabel("Windows per Floor"), countEntry,
		widget.NewLabel("Window Width (ft)"), widthEntry,
		widget.NewLabel("Window Height (ft)"), heightEntry,
	))
}

// buildSolverSection finds the floor count whose gross area is closest to
// a target, then applies it to the selected building.
func (a *App) buildSolverSection(b *model.Building) fyne.CanvasObject {
	id := b.ID

	targetEntry := widget.NewEntry()
	targetEntry.SetPlaceHolder("Target gross area (sf)")
	resultLabel := widget.NewLabel("")

	solveBtn := widget.NewButton("Solve", func() {
		target, err := strconv.ParseFloat(targetEntry.Text, 64)
		if err != nil || target <= 0 {
			resultLabel.SetText("Enter a positive area")
			return
		}
		current, ok := a.reg.Get(id)
		if !ok {
			return
		}
		fit, err := engine.FitFloorsToArea(current.Params, target)
		if err != nil {
			resultLabel.SetText(err.Error())
			return
		}
		resultLabel.SetText(fmt.Sprintf("%d floors -> %.0f sf (off by %.0f sf)",
			fit.NumFloors, fit.GrossFloorArea, fit.Deviation))

		a.pushHistory("Fit Floors to Area")
		if err := a.reg.Resize(id, fit.NumFloors); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.refreshAll()
	})

	return widget.NewCard("Fit Floors to Target Area", "Picks the floor count whose gross area lands closest to the target",
		container.NewVBox(
			container.NewGridWithColumns(2, targetEntry, solveBtn),
			resultLabel,
		))
}
