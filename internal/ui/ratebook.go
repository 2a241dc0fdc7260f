package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/jaj-pcl/MassPlan/internal/model"
	"github.com/jaj-pcl/MassPlan/internal/project"
)

// showRateBookDialog displays the rate table editor: base rates, exterior
// finishes, and complexity presets. Edits are applied to the registry's
// rate book on save, which recomputes the selected building.
func (a *App) showRateBookDialog() {
	book := a.reg.Rates()

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

	ratesSection := widget.NewCard("Base Rates ($/sf)", "", container.NewGridWithColumns(2,
		widget.NewLabel("Structural"), floatEntry(&book.StructuralRate),
		widget.NewLabel("Interior"), floatEntry(&book.InteriorRate),
		widget.NewLabel("Foundation"), floatEntry(&book.FoundationRate),
	))

	finishesContainer := container.NewVBox()
	presetsContainer := container.NewVBox()

	var refreshFinishes func()
	refreshFinishes = func() {
		finishesContainer.RemoveAll()
		for _, f := range book.Finishes {
			name := f.Name
			finishesContainer.Add(container.NewGridWithColumns(3,
				widget.NewLabel(f.Name),
				widget.NewLabel(fmt.Sprintf("%.2f $/sf", f.RatePerSqFt)),
				newIconButtonWithTooltip(theme.DeleteIcon(), "Remove this finish", func() {
					book.RemoveFinish(name)
					refreshFinishes()
				}),
			))
		}
		finishesContainer.Refresh()
	}
	refreshFinishes()

	addFinishBtn := widget.NewButtonWithIcon("Add Finish", theme.ContentAddIcon(), func() {
		nameEntry := widget.NewEntry()
		rateEntry := widget.NewEntry()
		form := dialog.NewForm("Add Exterior Finish", "Add", "Cancel",
			[]*widget.FormItem{
				widget.NewFormItem("Name", nameEntry),
				widget.NewFormItem("Rate ($/sf)", rateEntry),
			},
			func(ok bool) {
				if !ok {
					return
				}
				rate, err := strconv.ParseFloat(rateEntry.Text, 64)
				if err != nil || rate <= 0 {
					dialog.ShowError(fmt.Errorf("rate must be a positive number"), a.window)
					return
				}
				finish := model.ExteriorFinish{Name: nameEntry.Text, RatePerSqFt: rate, R: 0xb0, G: 0xb0, B: 0xb0}
				if err := book.AddFinish(finish); err != nil {
					dialog.ShowError(err, a.window)
					return
				}
				refreshFinishes()
			},
			a.window,
		)
		form.Resize(fyne.NewSize(380, 200))
		form.Show()
	})

	var refreshPresets func()
	refreshPresets = func() {
		presetsContainer.RemoveAll()
		for _, p := range book.Presets {
			id := p.ID
			presetsContainer.Add(container.NewGridWithColumns(3,
				widget.NewLabel(p.Name),
				widget.NewLabel(fmt.Sprintf("%.0f%%", p.Factor)),
				newIconButtonWithTooltip(theme.DeleteIcon(), "Remove this preset", func() {
					book.RemovePreset(id)
					refreshPresets()
				}),
			))
		}
		presetsContainer.Refresh()
	}
	refreshPresets()

	addPresetBtn := widget.NewButtonWithIcon("Add Preset", theme.ContentAddIcon(), func() {
		nameEntry := widget.NewEntry()
		factorEntry := widget.NewEntry()
		form := dialog.NewForm("Add Complexity Preset", "Add", "Cancel",
			[]*widget.FormItem{
				widget.NewFormItem("Name", nameEntry),
				widget.NewFormItem("Factor (%)", factorEntry),
			},
			func(ok bool) {
				if !ok {
					return
				}
				factor, err := strconv.ParseFloat(factorEntry.Text, 64)
				if err != nil {
					dialog.ShowError(fmt.Errorf("factor must be a number"), a.window)
					return
				}
				book.Presets = append(book.Presets, model.NewComplexityPreset(nameEntry.Text, factor))
				refreshPresets()
			},
			a.window,
		)
		form.Resize(fyne.NewSize(380, 200))
		form.Show()
	})

	finishesSection := widget.NewCard("Exterior Finishes", "", container.NewVBox(
		finishesContainer,
		container.NewHBox(layout.NewSpacer(), addFinishBtn),
	))
	presetsSection := widget.NewCard("Complexity Presets", "", container.NewVBox(
		presetsContainer,
		container.NewHBox(layout.NewSpacer(), addPresetBtn),
	))

	content := container.NewVScroll(container.NewVBox(ratesSection, finishesSection, presetsSection))

	d := dialog.NewCustomConfirm("Rate Book", "Save", "Cancel", content,
		func(ok bool) {
			if !ok {
				return
			}
			book.Normalize()
			a.pushHistory("Edit Rate Book")
			a.reg.SetRates(book)
			if err := project.SaveRateBook(project.DefaultRateBookPath(), book); err != nil {
				dialog.ShowError(err, a.window)
			}
			a.refreshAll()
		},
		a.window,
	)
	d.Resize(fyne.NewSize(460, 560))
	d.Show()
}
