package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/jaj-pcl/MassPlan/internal/model"
)

var (
	planFillColor   = color.NRGBA{R: 176, G: 190, B: 197, A: 160}
	planStrokeColor = color.NRGBA{R: 38, G: 50, B: 56, A: 255}
	planDimColor    = color.NRGBA{R: 84, G: 110, B: 122, A: 255}
)

// PlanPreview draws the ground floor plan outline with overall dimensions.
// For a C-shape the true notched outline is drawn.
type PlanPreview struct {
	widget.BaseWidget
	outline   model.Outline
	length    float64
	depth     float64
	maxWidth  float32
	maxHeight float32
}

// NewPlanPreview creates a plan view of the given outline sized to fit
// maxW x maxH.
func NewPlanPreview(outline model.Outline, length, depth float64, maxW, maxH float32) *PlanPreview {
	pp := &PlanPreview{
		outline:   outline,
		length:    length,
		depth:     depth,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	pp.ExtendBaseWidget(pp)
	return pp
}

// Update replaces the displayed outline and redraws.
func (pp *PlanPreview) Update(outline model.Outline, length, depth float64) {
	pp.outline = outline
	pp.length = length
	pp.depth = depth
	pp.Refresh()
}

func (pp *PlanPreview) CreateRenderer() fyne.WidgetRenderer {
	return newPlanPreviewRenderer(pp)
}

type planPreviewRenderer struct {
	pp      *PlanPreview
	objects []fyne.CanvasObject
}

func newPlanPreviewRenderer(pp *PlanPreview) *planPreviewRenderer {
	r := &planPreviewRenderer{pp: pp}
	r.rebuild()
	return r
}

func (r *planPreviewRenderer) rebuild() {
	r.objects = nil

	outline := r.pp.outline
	if len(outline) < 3 {
		empty := canvas.NewText("No plan", color.NRGBA{R: 128, G: 128, B: 128, A: 255})
		empty.TextSize = 12
		empty.Move(fyne.NewPos(8, 8))
		r.objects = append(r.objects, empty)
		return
	}

	min, max := outline.BoundingBox()
	planW := max.X - min.X
	planD := max.Z - min.Z
	if planW <= 0 || planD <= 0 {
		return
	}

	const margin = 18.0
	scaleX := (r.pp.maxWidth - 2*margin) / float32(planW)
	scaleY := (r.pp.maxHeight - 2*margin) / float32(planD)
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}

	toScreen := func(p model.PlanPoint) fyne.Position {
		return fyne.NewPos(
			margin+float32(p.X-min.X)*scale,
			margin+float32(p.Z-min.Z)*scale,
		)
	}

	// Filled bounding rectangle behind the outline gives the walls mass
	// without needing polygon fill support.
	bg := canvas.NewRectangle(planFillColor)
	bg.Resize(fyne.NewSize(float32(planW)*scale, float32(planD)*scale))
	bg.Move(fyne.NewPos(margin, margin))
	r.objects = append(r.objects, bg)

	// Outline edges, closing back to the first vertex.
	for i := range outline {
		a := toScreen(outline[i])
		b := toScreen(outline[(i+1)%len(outline)])
		line := canvas.NewLine(planStrokeColor)
		line.StrokeWidth = 2
		line.Position1 = a
		line.Position2 = b
		r.objects = append(r.objects, line)
	}

	// Dimension labels along the bottom and right edges.
	wLabel := canvas.NewText(fmt.Sprintf("%.2f ft", r.pp.length), planDimColor)
	wLabel.TextSize = 10
	wLabel.Move(fyne.NewPos(margin+float32(planW)*scale/2-24, margin+float32(planD)*scale+3))
	r.objects = append(r.objects, wLabel)

	dLabel := canvas.NewText(fmt.Sprintf("%.2f ft", r.pp.depth), planDimColor)
	dLabel.TextSize = 10
	dLabel.Move(fyne.NewPos(margin+float32(planW)*scale+3, margin+float32(planD)*scale/2-6))
	r.objects = append(r.objects, dLabel)
}

func (r *planPreviewRenderer) Layout(size fyne.Size) {}

func (r *planPreviewRenderer) MinSize() fyne.Size {
	return fyne.NewSize(r.pp.maxWidth, r.pp.maxHeight)
}

func (r *planPreviewRenderer) Refresh() {
	r.rebuild()
	canvas.Refresh(r.pp)
}

func (r *planPreviewRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *planPreviewRenderer) Destroy() {}
