package export

import (
	"fmt"

	"github.com/yofu/dxf"
	dxfcolor "github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/jaj-pcl/MassPlan/internal/engine"
	"github.com/jaj-pcl/MassPlan/internal/model"
)

// layerColors cycles per floor layer.
var layerColors = []dxfcolor.ColorNumber{
	dxfcolor.Red,
	dxfcolor.Yellow,
	dxfcolor.Green,
	dxfcolor.Cyan,
	dxfcolor.Blue,
	dxfcolor.Magenta,
}

// WriteFloorPlanDXF writes a stacked plan drawing of the building: one
// closed polyline per floor on its own layer (FLOOR_0 upward) plus a ROOF
// layer. The cost model keeps an approximate C-shape perimeter; the
// drawing uses the true notched outline.
func WriteFloorPlanDXF(path string, b *model.Building) error {
	if b == nil {
		return fmt.Errorf("no building to export")
	}
	floors := engine.DeriveFloors(b.Params)
	if len(floors) == 0 {
		return fmt.Errorf("building %q has no floors", b.Name)
	}

	d := dxf.NewDrawing()
	d.Header().LtScale = 1.0

	for i, fg := range floors {
		layer := fmt.Sprintf("FLOOR_%d", i)
		if _, err := d.AddLayer(layer, layerColors[i%len(layerColors)], dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("add layer %s: %w", layer, err)
		}
		outline := floorOutline(b.Params, fg)
		if err := drawOutline(d, outline); err != nil {
			return fmt.Errorf("draw floor %d: %w", i, err)
		}
	}

	if roof := engine.DeriveRoof(b.Params); roof != nil {
		if _, err := d.AddLayer("ROOF", dxfcolor.White, dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("add roof layer: %w", err)
		}
		top := floors[len(floors)-1]
		// The roof slab reuses the top floor's stepped plan.
		outline := floorOutline(b.Params, top)
		if err := drawOutline(d, outline); err != nil {
			return fmt.Errorf("draw roof: %w", err)
		}
	}

	if _, err := d.AddLayer("TITLE", dxfcolor.White, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("add title layer: %w", err)
	}
	title := fmt.Sprintf("%s (%d floors, %s)", b.Name, b.Params.NumFloors, b.Params.ShapeType)
	d.Text(title, 0, -8, 0, 4)

	return d.SaveAs(path)
}

// floorOutline returns the floor's plan polygon centered on the ground
// footprint, so stepped floors nest concentrically in the drawing.
func floorOutline(p model.BuildingParameters, fg model.FloorGeometry) model.Outline {
	outline := engine.FootprintOutline(p.ShapeType, fg.Width, fg.Depth, p.WallThickness)
	dx := (p.BuildingLength - fg.Width) / 2
	dz := (p.BuildingDepth - fg.Depth) / 2
	return outline.Translate(dx, dz)
}

// drawOutline adds a closed polyline for the plan polygon on the current
// layer.
func drawOutline(d *drawing.Drawing, outline model.Outline) error {
	if len(outline) < 3 {
		return fmt.Errorf("degenerate outline (%d points)", len(outline))
	}
	vertices := make([][]float64, len(outline))
	for i, pt := range outline {
		vertices[i] = []float64{pt.X, pt.Z}
	}
	if _, err := d.LwPolyline(true, vertices...); err != nil {
		return fmt.Errorf("polyline: %w", err)
	}
	return nil
}
