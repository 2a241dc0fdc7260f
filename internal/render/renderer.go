// Package render draws isometric massing views of buildings with fogleman/gg
// and implements the registry's SceneRenderer collaborator. Each building's
// rendering resources are tracked per id and released before every redraw,
// so a failed draw never leaks the previous frame.
package render

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/jaj-pcl/MassPlan/internal/model"
)

const (
	// Thumbnail canvas size in pixels.
	DefaultWidth  = 480
	DefaultHeight = 360

	// Isometric projection angle: 30 degrees off horizontal.
	isoCos = 0.8660254037844387
	isoSin = 0.5

	margin    = 24.0
	labelSize = 13.0
)

// buildingFrame holds the live rendering resources for one building.
type buildingFrame struct {
	ctx      *gg.Context
	snapshot []byte
}

// Renderer produces PNG massing snapshots. Safe for use from the registry's
// single logical thread; the mutex guards the resource map against the
// headless tools drawing concurrently.
type Renderer struct {
	width, height int

	mu   sync.Mutex
	live map[int]*buildingFrame
	face font.Face
}

// New creates a renderer producing thumbnails at the default size.
func New() (*Renderer, error) {
	return NewSized(DefaultWidth, DefaultHeight)
}

// NewSized creates a renderer with an explicit canvas size.
func NewSized(width, height int) (*Renderer, error) {
	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse label font: %w", err)
	}
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    labelSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	return &Renderer{
		width:  width,
		height: height,
		live:   make(map[int]*buildingFrame),
		face:   face,
	}, nil
}

// DrawBuilding renders the building's floor stack and roof, stores the frame
// as the building's live resources, and returns the PNG snapshot bytes. The
// previous frame for this building is released first, even when the draw
// fails partway.
func (r *Renderer) DrawBuilding(b *model.Building, solids []model.FloorSolid, roof *model.RoofSolid, finish model.ExteriorFinish) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Release before rebuild; guaranteed even if drawing or encoding fails.
	delete(r.live, b.ID)

	frame, err := r.drawFrame(b, solids, roof, finish)
	if err != nil {
		return nil, err
	}
	r.live[b.ID] = frame
	return frame.snapshot, nil
}

// ReleaseBuilding frees the resources held for a deleted building. Releasing
// an unknown id is not an error.
func (r *Renderer) ReleaseBuilding(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.live, id)
	return nil
}

// LiveCount reports how many buildings currently hold rendering resources.
func (r *Renderer) LiveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

// SavePNG renders the building to a PNG file, independent of the thumbnail
// resource tracking.
func (r *Renderer) SavePNG(path string, b *model.Building, solids []model.FloorSolid, roof *model.RoofSolid, finish model.ExteriorFinish) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	frame, err := r.drawFrame(b, solids, roof, finish)
	if err != nil {
		return err
	}
	return frame.ctx.SavePNG(path)
}

func (r *Renderer) drawFrame(b *model.Building, solids []model.FloorSolid, roof *model.RoofSolid, finish model.ExteriorFinish) (*buildingFrame, error) {
	dc := gg.NewContext(r.width, r.height)
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetFontFace(r.face)

	proj := fitProjection(solids, roof, float64(r.width), float64(r.height))

	drawGround(dc, proj)

	wall := color.NRGBA{R: finish.R, G: finish.G, B: finish.B, A: 255}
	for _, s := range solids {
		drawBlock(dc, proj, s.Width, s.Depth, s.YOffset, s.Height, wall)
		if s.Shape == model.ShapeCShape {
			drawNotchHint(dc, proj, s)
		}
	}
	if roof != nil {
		slab := color.NRGBA{R: 0x70, G: 0x70, B: 0x74, A: 255}
		drawBlock(dc, proj, roof.Width, roof.Depth, roof.YOffset, roof.Height, slab)
	}

	dc.SetColor(color.Black)
	dc.DrawString(b.Name, margin, float64(r.height)-margin/2)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return &buildingFrame{ctx: dc, snapshot: buf.Bytes()}, nil
}

// projection maps building-local feet to canvas pixels.
type projection struct {
	scale   float64
	offsetX float64
	offsetY float64
	groundW float64 // ground footprint extent for the base grid
	groundD float64
}

// project converts a local point (x east, y up, z south; origin at the plan
// center on the ground) to canvas coordinates.
func (p projection) project(x, y, z float64) (float64, float64) {
	sx := (x - z) * isoCos
	sy := (x+z)*isoSin - y
	return p.offsetX + sx*p.scale, p.offsetY + sy*p.scale
}

// fitProjection chooses a scale and offset so the whole massing fits the
// canvas with a margin.
func fitProjection(solids []model.FloorSolid, roof *model.RoofSolid, width, height float64) projection {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	var groundW, groundD float64

	consider := func(w, d, y0, h float64) {
		for _, c := range blockCorners(w, d, y0, h) {
			sx := (c[0] - c[2]) * isoCos
			sy := (c[0]+c[2])*isoSin - c[1]
			minX, maxX = math.Min(minX, sx), math.Max(maxX, sx)
			minY, maxY = math.Min(minY, sy), math.Max(maxY, sy)
		}
	}
	for _, s := range solids {
		consider(s.Width, s.Depth, s.YOffset, s.Height)
		groundW = math.Max(groundW, s.Width)
		groundD = math.Max(groundD, s.Depth)
	}
	if roof != nil {
		consider(roof.Width, roof.Depth, roof.YOffset, roof.Height)
	}
	if len(solids) == 0 && roof == nil {
		// Empty building: an arbitrary unit extent keeps the math finite.
		minX, maxX, minY, maxY = -1, 1, -1, 1
	}

	spanX, spanY := maxX-minX, maxY-minY
	scale := math.Min((width-2*margin)/spanX, (height-2*margin)/spanY)
	return projection{
		scale:   scale,
		offsetX: margin - minX*scale + ((width-2*margin)-spanX*scale)/2,
		offsetY: margin - minY*scale + ((height-2*margin)-spanY*scale)/2,
		groundW: groundW,
		groundD: groundD,
	}
}

// blockCorners returns the eight corners of a centered cuboid, as x, y, z.
func blockCorners(w, d, y0, h float64) [8][3]float64 {
	hw, hd := w/2, d/2
	return [8][3]float64{
		{-hw, y0, -hd}, {hw, y0, -hd}, {hw, y0, hd}, {-hw, y0, hd},
		{-hw, y0 + h, -hd}, {hw, y0 + h, -hd}, {hw, y0 + h, hd}, {-hw, y0 + h, hd},
	}
}

// drawBlock paints the three visible faces of a cuboid: front in the wall
// color, the east side darkened, the top lightened.
func drawBlock(dc *gg.Context, p projection, w, d, y0, h float64, wall color.NRGBA) {
	hw, hd := w/2, d/2
	y1 := y0 + h

	front := [][3]float64{{-hw, y0, hd}, {hw, y0, hd}, {hw, y1, hd}, {-hw, y1, hd}}
	side := [][3]float64{{hw, y0, hd}, {hw, y0, -hd}, {hw, y1, -hd}, {hw, y1, hd}}
	top := [][3]float64{{-hw, y1, hd}, {hw, y1, hd}, {hw, y1, -hd}, {-hw, y1, -hd}}

	fillFace(dc, p, front, wall)
	fillFace(dc, p, side, shade(wall, 0.72))
	fillFace(dc, p, top, shade(wall, 1.25))
}

func fillFace(dc *gg.Context, p projection, pts [][3]float64, col color.NRGBA) {
	x, y := p.project(pts[0][0], pts[0][1], pts[0][2])
	dc.MoveTo(x, y)
	for _, pt := range pts[1:] {
		x, y = p.project(pt[0], pt[1], pt[2])
		dc.LineTo(x, y)
	}
	dc.ClosePath()
	dc.SetColor(col)
	dc.FillPreserve()
	dc.SetLineWidth(1)
	dc.SetColor(shade(col, 0.5))
	dc.Stroke()
}

// drawNotchHint traces the C-shape notch opening on a floor's top edge so
// the massing reads as a C rather than a solid box.
func drawNotchHint(dc *gg.Context, p projection, s model.FloorSolid) {
	t := s.WallThickness
	hw, hd := s.Width/2, s.Depth/2
	y1 := s.YOffset + s.Height

	pts := [][3]float64{
		{-hw + t, y1, hd},
		{-hw + t, y1, -hd + t},
		{hw - t, y1, -hd + t},
		{hw - t, y1, hd},
	}
	x, y := p.project(pts[0][0], pts[0][1], pts[0][2])
	dc.MoveTo(x, y)
	for _, pt := range pts[1:] {
		x, y = p.project(pt[0], pt[1], pt[2])
		dc.LineTo(x, y)
	}
	dc.SetLineWidth(1)
	dc.SetColor(color.NRGBA{R: 60, G: 60, B: 60, A: 255})
	dc.Stroke()
}

// drawGround draws the site plane under the building as a light diamond.
func drawGround(dc *gg.Context, p projection) {
	if p.groundW == 0 || p.groundD == 0 {
		return
	}
	hw := p.groundW/2 + p.groundW*0.15
	hd := p.groundD/2 + p.groundD*0.15

	corners := [][3]float64{{-hw, 0, -hd}, {hw, 0, -hd}, {hw, 0, hd}, {-hw, 0, hd}}
	x, y := p.project(corners[0][0], 0, corners[0][2])
	dc.MoveTo(x, y)
	for _, c := range corners[1:] {
		x, y = p.project(c[0], 0, c[2])
		dc.LineTo(x, y)
	}
	dc.ClosePath()
	dc.SetColor(color.NRGBA{R: 0xe8, G: 0xec, B: 0xe6, A: 255})
	dc.FillPreserve()
	dc.SetColor(color.NRGBA{R: 0xc0, G: 0xc8, B: 0xc0, A: 255})
	dc.Stroke()
}

// shade scales a color's channels, clamping at white.
func shade(c color.NRGBA, factor float64) color.NRGBA {
	scale := func(v uint8) uint8 {
		s := float64(v) * factor
		if s > 255 {
			s = 255
		}
		return uint8(s)
	}
	return color.NRGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}
