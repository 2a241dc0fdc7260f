package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/jaj-pcl/MassPlan/internal/model"
)

// Floor colors — cycle through these for visual distinction.
var floorColors = []color.NRGBA{
	{R: 76, G: 175, B: 80, A: 200},  // green
	{R: 33, G: 150, B: 243, A: 200}, // blue
	{R: 255, G: 152, B: 0, A: 200},  // orange
	{R: 156, G: 39, B: 176, A: 200}, // purple
	{R: 0, G: 188, B: 212, A: 200},  // cyan
	{R: 244, G: 67, B: 54, A: 200},  // red
	{R: 255, G: 235, B: 59, A: 200}, // yellow
	{R: 121, G: 85, B: 72, A: 200},  // brown
}

var roofColor = color.NRGBA{R: 96, G: 96, B: 96, A: 230}

// MassingCanvas renders a side elevation of the floor stack: one rectangle
// per floor, horizontally centered so step offsets read as setbacks, capped
// by the roof slab. The selected floor is highlighted.
type MassingCanvas struct {
	widget.BaseWidget
	params        model.BuildingParameters
	floors        []model.FloorGeometry
	roof          *model.RoofGeometry
	selectedFloor int // -1 when nothing is highlighted
	maxWidth      float32
	maxHeight     float32
}

// NewMassingCanvas creates the elevation view sized to fit maxW x maxH.
func NewMassingCanvas(params model.BuildingParameters, floors []model.FloorGeometry, roof *model.RoofGeometry, maxW, maxH float32) *MassingCanvas {
	mc := &MassingCanvas{
		params:        params,
		floors:        floors,
		roof:          roof,
		selectedFloor: -1,
		maxWidth:      maxW,
		maxHeight:     maxH,
	}
	mc.ExtendBaseWidget(mc)
	return mc
}

// SetSelectedFloor highlights one floor, or clears the highlight with -1.
func (mc *MassingCanvas) SetSelectedFloor(i int) {
	mc.selectedFloor = i
	mc.Refresh()
}

// Update replaces the displayed geometry and redraws.
func (mc *MassingCanvas) Update(params model.BuildingParameters, floors []model.FloorGeometry, roof *model.RoofGeometry) {
	mc.params = params
	mc.floors = floors
	mc.roof = roof
	mc.Refresh()
}

func (mc *MassingCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newMassingCanvasRenderer(mc)
}

type massingCanvasRenderer struct {
	mc      *MassingCanvas
	objects []fyne.CanvasObject
}

func newMassingCanvasRenderer(mc *MassingCanvas) *massingCanvasRenderer {
	r := &massingCanvasRenderer{mc: mc}
	r.rebuild()
	return r
}

func (r *massingCanvasRenderer) rebuild() {
	r.objects = nil

	floors := r.mc.floors
	if len(floors) == 0 {
		empty := canvas.NewText("No floors", color.NRGBA{R: 128, G: 128, B: 128, A: 255})
		empty.TextSize = 12
		empty.Move(fyne.NewPos(8, 8))
		r.objects = append(r.objects, empty)
		return
	}

	// World extents: widest floor across the stack, total height with roof.
	var maxPlanW, totalH float64
	for _, f := range floors {
		if f.Width > maxPlanW {
			maxPlanW = f.Width
		}
	}
	top := floors[len(floors)-1]
	totalH = top.YOffset + r.mc.params.FloorDetails[len(floors)-1].Height
	if r.mc.roof != nil {
		totalH += r.mc.roof.Thickness
		if r.mc.roof.Width > maxPlanW {
			maxPlanW = r.mc.roof.Width
		}
	}
	if maxPlanW <= 0 || totalH <= 0 {
		return
	}

	const margin = 10.0
	scaleX := (r.mc.maxWidth - 2*margin) / float32(maxPlanW)
	scaleY := (r.mc.maxHeight - 2*margin) / float32(totalH)
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}

	centerX := r.mc.maxWidth / 2
	baseY := float32(margin) + float32(totalH)*scale

	// Ground line
	ground := canvas.NewLine(color.NRGBA{R: 100, G: 100, B: 100, A: 255})
	ground.StrokeWidth = 2
	ground.Position1 = fyne.NewPos(2, baseY)
	ground.Position2 = fyne.NewPos(r.mc.maxWidth-2, baseY)
	r.objects = append(r.objects, ground)

	for i, f := range floors {
		fh := r.mc.params.FloorDetails[i].Height
		w := float32(f.Width) * scale
		h := float32(fh) * scale
		x := centerX - w/2
		y := baseY - float32(f.YOffset+fh)*scale

		col := floorColors[i%len(floorColors)]
		rect := canvas.NewRectangle(col)
		rect.Resize(fyne.NewSize(w, h))
		rect.Move(fyne.NewPos(x, y))
		r.objects = append(r.objects, rect)

		border := canvas.NewRectangle(color.Transparent)
		border.StrokeColor = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
		border.StrokeWidth = 1
		if i == r.mc.selectedFloor {
			border.StrokeColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			border.StrokeWidth = 2.5
		}
		border.Resize(fyne.NewSize(w, h))
		border.Move(fyne.NewPos(x, y))
		r.objects = append(r.objects, border)

		// Floor label (only if tall enough)
		if h > 14 && w > 40 {
			label := canvas.NewText(fmt.Sprintf("F%d  %.0f x %.0f ft", i, f.Width, f.Depth), color.Black)
			label.TextSize = 9
			label.Move(fyne.NewPos(x+4, y+2))
			r.objects = append(r.objects, label)
		}
	}

	if roof := r.mc.roof; roof != nil {
		w := float32(roof.Width) * scale
		h := float32(roof.Thickness) * scale
		if h < 2 {
			h = 2
		}
		x := centerX - w/2
		y := baseY - float32(roof.YOffset+roof.Thickness)*scale

		rect := canvas.NewRectangle(roofColor)
		rect.Resize(fyne.NewSize(w, h))
		rect.Move(fyne.NewPos(x, y))
		r.objects = append(r.objects, rect)
	}
}

func (r *massingCanvasRenderer) Layout(size fyne.Size) {}

func (r *massingCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(r.mc.maxWidth, r.mc.maxHeight)
}

func (r *massingCanvasRenderer) Refresh() {
	r.rebuild()
	canvas.Refresh(r.mc)
}

func (r *massingCanvasRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *massingCanvasRenderer) Destroy() {}
