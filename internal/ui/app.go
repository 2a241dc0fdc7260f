package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/jaj-pcl/MassPlan/internal/engine"
	"github.com/jaj-pcl/MassPlan/internal/export"
	"github.com/jaj-pcl/MassPlan/internal/importer"
	"github.com/jaj-pcl/MassPlan/internal/model"
	"github.com/jaj-pcl/MassPlan/internal/project"
	"github.com/jaj-pcl/MassPlan/internal/registry"
	"github.com/jaj-pcl/MassPlan/internal/render"
	"github.com/jaj-pcl/MassPlan/internal/ui/widgets"
)

// App holds all application state and UI references.
type App struct {
	window    fyne.Window
	reg       *registry.Registry
	scene     *render.Renderer
	config    model.AppConfig
	templates model.TemplateStore
	history   *History
	tabs      *container.AppTabs

	// UI references for dynamic updates
	buildingsContainer *fyne.Container
	floorsContainer    *fyne.Container
	costsContainer     *fyne.Container
	warningsLabel      *widget.Label
	massing            *widgets.MassingCanvas
	plan               *widgets.PlanPreview
}

// NewApp wires the window to a registry with its scene renderer attached.
func NewApp(window fyne.Window, reg *registry.Registry, scene *render.Renderer, config model.AppConfig, templates model.TemplateStore) *App {
	return &App{
		window:    window,
		reg:       reg,
		scene:     scene,
		config:    config,
		templates: templates,
		history:   NewHistory(),
	}
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Building", func() {
			a.pushHistory("New Building")
			if _, err := a.reg.CreateDefault(); err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.refreshAll()
		}),
		fyne.NewMenuItem("Open Project...", func() {
			a.loadProjectDialog()
		}),
		fyne.NewMenuItem("Save Project...", func() {
			a.saveProjectDialog()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Buildings from CSV...", func() {
			a.importFile("csv")
		}),
		fyne.NewMenuItem("Import Buildings from Excel...", func() {
			a.importFile("xlsx")
		}),
		fyne.NewMenuItem("Import Site Plan from DXF...", func() {
			a.importFile("dxf")
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Cost Report (PDF)...", func() {
			a.exportSelected("pdf")
		}),
		fyne.NewMenuItem("Export Floor Plan (DXF)...", func() {
			a.exportSelected("dxf")
		}),
		fyne.NewMenuItem("Export Cost Schedule (XLSX)...", func() {
			a.exportSelected("xlsx")
		}),
		fyne.NewMenuItem("Export Building Labels (PDF)...", func() {
			a.exportSelected("labels")
		}),
		fyne.NewMenuItem("Export Massing View (PNG)...", func() {
			a.exportSelected("png")
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Full Backup...", func() {
			a.exportBackup()
		}),
		fyne.NewMenuItem("Import Full Backup...", func() {
			a.importBackup()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", func() {
			a.undo()
		}),
		fyne.NewMenuItem("Redo", func() {
			a.redo()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Rate Book...", func() {
			a.showRateBookDialog()
		}),
		fyne.NewMenuItem("Advanced Settings...", func() {
			a.showAdvancedSettingsDialog()
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			a.showAboutDialog()
		}),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, helpMenu))
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About MassPlan",
		"MassPlan — Interactive Massing & Cost Estimator\n\n"+
			"Stack building volumes, step their floors, and compare\n"+
			"exterior systems with a live construction estimate.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	buildingsTab := container.NewTabItem("Buildings", a.buildBuildingsPanel())
	designTab := container.NewTabItem("Design", a.buildDesignPanel())
	costsTab := container.NewTabItem("Costs", a.buildCostsPanel())

	a.tabs = container.NewAppTabs(buildingsTab, designTab, costsTab)
	a.tabs.SetTabLocation(container.TabLocationTop)
	a.refreshAll()

	return a.tabs
}

// refreshAll rebuilds every dynamic panel after a registry change.
func (a *App) refreshAll() {
	a.refreshBuildingsList()
	a.refreshDesignPanel()
	a.refreshCostsPanel()
}

// pushHistory snapshots the registry before a mutation.
func (a *App) pushHistory(label string) {
	a.history.Push(MakeSnapshot(a.reg, label))
}

func (a *App) undo() {
	snap, ok := a.history.Undo(MakeSnapshot(a.reg, "current"))
	if !ok {
		return
	}
	RestoreSnapshot(a.reg, snap)
	a.refreshAll()
}

func (a *App) redo() {
	snap, ok := a.history.Redo(MakeSnapshot(a.reg, "current"))
	if !ok {
		return
	}
	RestoreSnapshot(a.reg, snap)
	a.refreshAll()
}

// ─── Buildings Panel ───────────────────────────────────────

func (a *App) buildBuildingsPanel() fyne.CanvasObject {
	a.buildingsContainer = container.NewVBox()
	a.warningsLabel = widget.NewLabel("")
	a.warningsLabel.Wrapping = fyne.TextWrapWord

	addBtn := widget.NewButtonWithIcon("Add Building", theme.ContentAddIcon(), func() {
		a.showAddBuildingDialog()
	})

	return container.NewBorder(
		container.NewHBox(
			widget.NewLabelWithStyle("Buildings", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			addBtn,
		),
		a.warningsLabel, nil, nil,
		container.NewVScroll(a.buildingsContainer),
	)
}

func (a *App) refreshBuildingsList() {
	if a.buildingsContainer == nil {
		return
	}
	a.buildingsContainer.RemoveAll()

	buildings := a.reg.List()
	if len(buildings) == 0 {
		a.buildingsContainer.Add(widget.NewLabel("No buildings yet. Click 'Add Building' to begin."))
		a.refreshWarnings()
		return
	}

	header := container.NewGridWithColumns(6,
		widget.NewLabelWithStyle("Name", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Shape", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Floors", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Plan (ft)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
	)
	a.buildingsContainer.Add(header)
	a.buildingsContainer.Add(widget.NewSeparator())

	selectedID := a.reg.SelectedID()
	for _, b := range buildings {
		id := b.ID // capture
		name := b.Name
		if id == selectedID {
			name = "▶ " + name
		}
		row := container.NewGridWithColumns(6,
			widget.NewLabel(name),
			widget.NewLabel(b.Params.ShapeType.String()),
			widget.NewLabel(fmt.Sprintf("%d", b.Params.NumFloors)),
			widget.NewLabel(fmt.Sprintf("%.1f x %.1f", b.Params.BuildingLength, b.Params.BuildingDepth)),
			newIconButtonWithTooltip(theme.ConfirmIcon(), "Select this building", func() {
				if _, err := a.reg.Select(id); err != nil {
					dialog.ShowError(err, a.window)
					return
				}
				a.refreshAll()
			}),
			newIconButtonWithTooltip(theme.DeleteIcon(), "Delete this building", func() {
				a.pushHistory("Delete Building")
				if err := a.reg.Delete(id); err != nil {
					dialog.ShowError(err, a.window)
					return
				}
				a.refreshAll()
			}),
		)
		a.buildingsContainer.Add(row)
	}

	a.refreshWarnings()
}

func (a *App) refreshWarnings() {
	if a.warningsLabel == nil {
		return
	}
	warnings := a.reg.LayoutWarnings()
	if len(warnings) == 0 {
		a.warningsLabel.SetText("")
		return
	}
	a.warningsLabel.SetText("Site layout: " + strings.Join(warnings, "; "))
}

func (a *App) showAddBuildingDialog() {
	nameEntry := widget.NewEntry()
	nameEntry.SetText(fmt.Sprintf("Building %d", a.reg.Len()+1))

	templateNames := append([]string{"Default"}, a.templates.Names()...)
	templateSelect := widget.NewSelect(templateNames, nil)
	templateSelect.SetSelected("Default")

	form := dialog.NewForm("Add Building", "Add", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Template", templateSelect),
		},
		func(ok bool) {
			if !ok {
				return
			}
			params := model.DefaultParameters()
			a.config.ApplyToParameters(&params)
			if templateSelect.Selected != "Default" {
				if t := a.templates.FindByName(templateSelect.Selected); t != nil {
					params = t.ToParameters()
				}
			}
			a.pushHistory("Add Building")
			if _, err := a.reg.Create(nameEntry.Text, params); err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.refreshAll()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 220))
	form.Show()
}

// ─── Design Panel ──────────────────────────────────────────

func (a *App) buildDesignPanel() fyne.CanvasObject {
	a.floorsContainer = container.NewVBox()
	a.massing = widgets.NewMassingCanvas(model.DefaultParameters(), nil, nil, 420, 360)
	a.plan = widgets.NewPlanPreview(nil, 0, 0, 300, 240)

	visual := container.NewVBox(
		widget.NewLabelWithStyle("Elevation", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		a.massing,
		widget.NewLabelWithStyle("Ground Plan", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		a.plan,
	)

	return container.NewHSplit(
		container.NewVScroll(a.floorsContainer),
		container.NewVScroll(visual),
	)
}

func (a *App) refreshDesignPanel() {
	if a.floorsContainer == nil {
		return
	}
	a.floorsContainer.RemoveAll()

	b, ok := a.reg.Selected()
	if !ok {
		a.floorsContainer.Add(widget.NewLabel("Select a building on the Buildings tab first."))
		a.massing.Update(model.DefaultParameters(), nil, nil)
		a.plan.Update(nil, 0, 0)
		return
	}

	a.floorsContainer.Add(a.buildParameterForm(b))
	a.floorsContainer.Add(widget.NewSeparator())
	a.floorsContainer.Add(a.buildFloorList(b))

	floors := engine.DeriveFloors(b.Params)
	roof := engine.DeriveRoof(b.Params)
	a.massing.Update(b.Params, floors, roof)

	if len(floors) > 0 {
		outline := engine.FootprintOutline(b.Params.ShapeType, floors[0].Width, floors[0].Depth, b.Params.WallThickness)
		a.plan.Update(outline, floors[0].Width, floors[0].Depth)
	} else {
		a.plan.Update(nil, 0, 0)
	}
}

// numberEntry creates an entry that applies a registry change when the
// user commits the value. The entry reformats to the clamped value the
// registry reports back, without an error dialog.
func (a *App) numberEntry(id int, field registry.Field, floor int, value float64, format string) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(fmt.Sprintf(format, value))
	commit := func(text string) {
		v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			e.SetText(fmt.Sprintf(format, value))
			return
		}
		a.pushHistory("Edit " + string(field))
		if _, err := a.reg.Apply(id, registry.Change{Field: field, Floor: floor, Number: v}); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.refreshAll()
	}
	e.OnSubmitted = commit
	return e
}

func (a *App) buildParameterForm(b *model.Building) fyne.CanvasObject {
	id := b.ID
	p := b.Params

	nameEntry := widget.NewEntry()
	nameEntry.SetText(b.Name)
	nameEntry.OnSubmitted = func(text string) {
		a.pushHistory("Rename Building")
		if _, err := a.reg.Apply(id, registry.Change{Field: registry.FieldName, Text: text}); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.refreshAll()
	}

	shapeSelect := widget.NewSelect(model.ShapeTypeOptions(), func(selected string) {
		if model.ShapeTypeFromString(selected) == p.ShapeType {
			return
		}
		a.pushHistory("Change Shape")
		if _, err := a.reg.Apply(id, registry.Change{Field: registry.FieldShapeType, Text: selected}); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.refreshAll()
	})
	shapeSelect.SetSelected(p.ShapeType.String())

	stepSelect := widget.NewSelect(model.StepDirectionOptions(), func(selected string) {
		if model.StepDirectionFromString(selected) == p.StepDirection {
			return
		}
		a.pushHistory("Change Step Direction")
		if _, err := a.reg.Apply(id, registry.Change{Field: registry.FieldStepDirection, Text: selected}); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.refreshAll()
	})
	stepSelect.SetSelected(p.StepDirection.String())

	finishSelect := widget.NewSelect(a.reg.Rates().FinishNames(), func(selected string) {
		if selected == p.ExteriorType {
			return
		}
		a.pushHistory("Change Exterior")
		if _, err := a.reg.Apply(id, registry.Change{Field: registry.FieldExteriorType, Text: selected}); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.refreshAll()
	})
	finishSelect.SetSelected(p.ExteriorType)

	floorsEntry := a.numberEntry(id, registry.FieldNumFloors, 0, float64(p.NumFloors), "%.0f")

	form := container.NewGridWithColumns(2,
		widget.NewLabel("Name"), nameEntry,
		widget.NewLabel("Shape"), shapeSelect,
		widget.NewLabel("Length (ft)"), a.numberEntry(id, registry.FieldBuildingLength, 0, p.BuildingLength, "%.2f"),
		widget.NewLabel("Depth (ft)"), a.numberEntry(id, registry.FieldBuildingDepth, 0, p.BuildingDepth, "%.2f"),
		widget.NewLabel("Floors"), floorsEntry,
		widget.NewLabel("Typical Floor Height (ft)"), a.numberEntry(id, registry.FieldTypicalFloorHeight, 0, p.TypicalFloorHeight, "%.2f"),
		widget.NewLabel("Wall Thickness (ft)"), a.numberEntry(id, registry.FieldWallThickness, 0, p.WallThickness, "%.2f"),
		widget.NewLabel("Step Direction"), stepSelect,
		widget.NewLabel("Step Amount (ft)"), a.numberEntry(id, registry.FieldStepAmount, 0, p.StepAmount, "%.2f"),
		widget.NewLabel("Global Complexity (%)"), a.numberEntry(id, registry.FieldGlobalComplexity, 0, p.GlobalComplexityFactor, "%.0f"),
		widget.NewLabel("Exterior Finish"), finishSelect,
	)

	return widget.NewCard("Parameters", "", form)
}

func (a *App) buildFloorList(b *model.Building) fyne.CanvasObject {
	id := b.ID
	list := container.NewVBox()

	header := container.NewGridWithColumns(4,
		widget.NewLabelWithStyle("Floor", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Height (ft)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Complexity", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
	)
	list.Add(header)
	list.Add(widget.NewSeparator())

	for i, f := range b.Params.FloorDetails {
		floorIdx := i
		cx := fmt.Sprintf("Global (%.0f%%)", b.Params.GlobalComplexityFactor)
		if f.ComplexitySource != model.SourceGlobal && f.ComplexityFactor != nil {
			cx = fmt.Sprintf("%s (%.0f%%)", f.ComplexitySource, *f.ComplexityFactor)
		}
		height := fmt.Sprintf("%.2f", f.Height)
		if f.HeightIsCustom {
			height += " *"
		}
		row := container.NewGridWithColumns(4,
			widget.NewLabel(fmt.Sprintf("%d", floorIdx)),
			widget.NewLabel(height),
			widget.NewLabel(cx),
			newIconButtonWithTooltip(theme.DocumentCreateIcon(), "Edit this floor", func() {
				a.showEditFloorDialog(id, floorIdx)
			}),
		)
		list.Add(row)
	}

	return widget.NewCard("Floors", "Heights marked * are custom and survive typical-height edits", list)
}

func (a *App) showEditFloorDialog(id, floorIdx int) {
	b, ok := a.reg.Get(id)
	if !ok || floorIdx >= len(b.Params.FloorDetails) {
		return
	}
	f := b.Params.FloorDetails[floorIdx]

	heightEntry := widget.NewEntry()
	heightEntry.SetText(fmt.Sprintf("%.2f", f.Height))

	sourceSelect := widget.NewSelect(model.ComplexitySourceOptions(), nil)
	sourceSelect.SetSelected(f.ComplexitySource.String())

	rates := a.reg.Rates()
	presetSelect := widget.NewSelect(rates.PresetNames(), nil)
	presetSelect.PlaceHolder = "Pick a preset..."

	customEntry := widget.NewEntry()
	if f.ComplexityFactor != nil {
		customEntry.SetText(fmt.Sprintf("%.0f", *f.ComplexityFactor))
	}

	form := dialog.NewForm(fmt.Sprintf("Edit Floor %d", floorIdx), "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Height (ft)", heightEntry),
			widget.NewFormItem("Complexity Source", sourceSelect),
			widget.NewFormItem("Preset", presetSelect),
			widget.NewFormItem("Custom Value (%)", customEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			a.pushHistory("Edit Floor")

			if h, err := strconv.ParseFloat(heightEntry.Text, 64); err == nil {
				if _, err := a.reg.Apply(id, registry.Change{Field: registry.FieldFloorHeight, Floor: floorIdx, Number: h}); err != nil {
					dialog.ShowError(err, a.window)
					return
				}
			}

			switch model.ComplexitySourceFromString(sourceSelect.Selected) {
			case model.SourceGlobal:
				if _, err := a.reg.Apply(id, registry.Change{Field: registry.FieldFloorUseGlobal, Floor: floorIdx}); err != nil {
					dialog.ShowError(err, a.window)
					return
				}
			case model.SourcePreset:
				if preset := rates.FindPresetByName(presetSelect.Selected); preset != nil {
					if _, err := a.reg.Apply(id, registry.Change{Field: registry.FieldFloorPreset, Floor: floorIdx, Text: preset.ID}); err != nil {
						dialog.ShowError(err, a.window)
						return
					}
				}
			case model.SourceCustom:
				if v, err := strconv.ParseFloat(customEntry.Text, 64); err == nil {
					if _, err := a.reg.Apply(id, registry.Change{Field: registry.FieldFloorComplexity, Floor: floorIdx, Number: v}); err != nil {
						dialog.ShowError(err, a.window)
						return
					}
				}
			}
			a.refreshAll()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(420, 320))
	form.Show()
}

// ─── Costs Panel ───────────────────────────────────────────

func (a *App) buildCostsPanel() fyne.CanvasObject {
	a.costsContainer = container.NewVBox()
	return container.NewVScroll(a.costsContainer)
}

func (a *App) refreshCostsPanel() {
	if a.costsContainer == nil {
		return
	}
	a.costsContainer.RemoveAll()

	b, ok := a.reg.Selected()
	if !ok {
		a.costsContainer.Add(widget.NewLabel("Select a building on the Buildings tab first."))
		return
	}

	m := b.Metrics
	breakdown := container.NewGridWithColumns(2,
		widget.NewLabel("Gross Floor Area"), widget.NewLabel(a.formatArea(m.GrossFloorArea())),
		widget.NewLabel("Exterior Wall Area"), widget.NewLabel(a.formatArea(m.ExteriorWallArea())),
		widget.NewLabel("Ground Perimeter"), widget.NewLabel(a.formatLength(m.GroundPerimeter())),
		widget.NewLabel("Foundation"), widget.NewLabel(formatDollars(m.Cost.Foundation)),
		widget.NewLabel("Structural"), widget.NewLabel(formatDollars(m.Cost.Structural)),
		widget.NewLabel("Interior"), widget.NewLabel(formatDollars(m.Cost.Interior)),
		widget.NewLabel("Exterior"), widget.NewLabel(formatDollars(m.Cost.Exterior)),
		widget.NewLabelWithStyle("Total", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle(formatDollars(m.Cost.Total), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)
	a.costsContainer.Add(widget.NewCard("Estimate", "", breakdown))

	// Perimeter cross-check: the manual takeoff value to verify against.
	checkEntry := widget.NewEntry()
	checkEntry.SetPlaceHolder("Measured perimeter (ft)")
	checkResult := widget.NewLabel("")
	checkEntry.OnSubmitted = func(text string) {
		given, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			checkResult.SetText("Enter a number")
			return
		}
		check := engine.CheckPerimeter(b.Metrics, given)
		checkResult.SetText(check.Summary())
	}
	a.costsContainer.Add(widget.NewCard("Perimeter Cross-Check", "",
		container.NewGridWithColumns(2, checkEntry, checkResult)))

	comparisons, err := engine.CompareFinishes(b.Params, a.reg.Rates())
	if err == nil {
		table := container.NewVBox()
		table.Add(container.NewGridWithColumns(4,
			widget.NewLabelWithStyle("Finish", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Exterior", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Total", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Delta", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		))
		for _, cmp := range comparisons {
			name := cmp.Finish.Name
			delta := ""
			if cmp.IsCurrent {
				name += " (current)"
			} else if cmp.DeltaTotal >= 0 {
				delta = "+" + formatDollars(cmp.DeltaTotal)
			} else {
				delta = "-" + formatDollars(-cmp.DeltaTotal)
			}
			table.Add(container.NewGridWithColumns(4,
				widget.NewLabel(name),
				widget.NewLabel(formatDollars(cmp.Exterior)),
				widget.NewLabel(formatDollars(cmp.Total)),
				widget.NewLabel(delta),
			))
		}
		a.costsContainer.Add(widget.NewCard("Finish Comparison", "", table))
	}

	a.costsContainer.Refresh()
}

// formatDollars rounds up to whole dollars for display.
func formatDollars(v float64) string {
	return export.CeilDollars(v)
}

// formatArea renders square feet, with a square-meter hint when enabled.
func (a *App) formatArea(sqft float64) string {
	if a.config.ShowMetricHints {
		return fmt.Sprintf("%.1f sf (%.1f m²)", sqft, model.SquareFeetToSquareMeters(sqft))
	}
	return fmt.Sprintf("%.1f sf", sqft)
}

func (a *App) formatLength(ft float64) string {
	if a.config.ShowMetricHints {
		return fmt.Sprintf("%.2f ft (%.2f m)", ft, model.FeetToMeters(ft))
	}
	return fmt.Sprintf("%.2f ft", ft)
}

// ─── Project Save / Load ───────────────────────────────────

func (a *App) saveProjectDialog() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		store := project.NewFileStore(writer.URI().Path())
		if err := project.SaveBuildings(store, a.reg.List()); err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
	d.SetFileName("buildings.json")
	d.Show()
}

func (a *App) loadProjectDialog() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		store := project.NewFileStore(reader.URI().Path())
		buildings, err := project.LoadBuildings(store)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.pushHistory("Open Project")
		a.reg.Restore(buildings)
		a.refreshAll()
	}, a.window)
	d.Show()
}

// ─── Export Actions ────────────────────────────────────────

func (a *App) exportSelected(kind string) {
	b, ok := a.reg.Selected()
	if !ok && kind != "labels" {
		dialog.ShowInformation("No building selected", "Select a building first.", a.window)
		return
	}

	names := map[string]string{
		"pdf":    "cost-report.pdf",
		"dxf":    "floor-plan.dxf",
		"xlsx":   "cost-schedule.xlsx",
		"labels": "building-labels.pdf",
		"png":    "massing.png",
	}

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()

		var exportErr error
		switch kind {
		case "pdf":
			exportErr = export.WriteCostReport(path, b, a.reg.Rates())
		case "dxf":
			exportErr = export.WriteFloorPlanDXF(path, b)
		case "xlsx":
			exportErr = export.WriteCostScheduleXLSX(path, b, a.reg.Rates())
		case "labels":
			exportErr = export.WriteBuildingLabels(path, a.reg.List())
		case "png":
			finish, ferr := a.reg.Rates().FinishFor(b.Params.ExteriorType)
			if ferr != nil {
				exportErr = ferr
				break
			}
			solids, roof := engine.BuildSolids(b.Params, engine.DeriveFloors(b.Params))
			exportErr = a.scene.SavePNG(path, b, solids, roof, finish)
		}
		if exportErr != nil {
			dialog.ShowError(exportErr, a.window)
			return
		}
		dialog.ShowInformation("Export Complete", fmt.Sprintf("Saved to %s", path), a.window)
	}, a.window)
	d.SetFileName(names[kind])
	d.Show()
}

func (a *App) exportBackup() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		err = project.ExportAllData(writer.URI().Path(), a.config, a.reg.Rates(), a.templates, a.reg.List())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Backup Complete", "All data exported.", a.window)
	}, a.window)
	d.SetFileName("massplan-backup.json")
	d.Show()
}

func (a *App) importBackup() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		backup, err := project.ImportAllData(reader.URI().Path())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.pushHistory("Import Backup")
		a.config = backup.Config
		a.templates = backup.Templates
		a.reg.SetRates(backup.RateBook)
		a.reg.Restore(backup.ToBuildings())
		a.refreshAll()
	}, a.window)
	d.Show()
}

// ─── Import Actions ────────────────────────────────────────

func (a *App) importFile(kind string) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		path := reader.URI().Path()
		var result importer.ImportResult
		switch kind {
		case "csv":
			result = importer.ImportCSV(path, a.reg.Rates())
		case "xlsx":
			result = importer.ImportExcel(path, a.reg.Rates())
		case "dxf":
			result = importer.ImportDXF(path, a.reg.Rates())
		}
		a.handleImportResult(result)
	}, a.window)
}

func (a *App) handleImportResult(result importer.ImportResult) {
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(fmt.Errorf("%s", errorMsg), a.window)
	}

	if len(result.Buildings) == 0 {
		return
	}

	a.pushHistory("Import Buildings")
	created := 0
	for _, ib := range result.Buildings {
		if _, err := a.reg.Create(ib.Name, ib.Params); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %v", ib.Name, err))
			continue
		}
		created++
	}
	a.refreshAll()

	msg := fmt.Sprintf("Successfully imported %d buildings.", created)
	if len(result.Warnings) > 0 {
		msg += "\n\n" + strings.Join(result.Warnings, "\n")
	}
	if len(result.Errors) > 0 {
		msg += fmt.Sprintf("\n\n%d rows had errors and were skipped.", len(result.Errors))
	}
	dialog.ShowInformation("Import Complete", msg, a.window)
}
