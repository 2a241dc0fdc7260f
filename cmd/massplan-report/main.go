// massplan-report — headless cost reporting for MassPlan projects.
//
// Loads a buildings file saved by the desktop app, prints the cost
// breakdown for one building to stdout, and optionally writes the same
// report artifacts the GUI exports.
//
//   massplan-report -building 2 -pdf report.pdf -xlsx schedule.xlsx
//   massplan-report -in project.json -rates overrides.yaml -dxf plans.dxf

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/jaj-pcl/MassPlan/internal/engine"
	"github.com/jaj-pcl/MassPlan/internal/export"
	"github.com/jaj-pcl/MassPlan/internal/model"
	"github.com/jaj-pcl/MassPlan/internal/project"
	"github.com/jaj-pcl/MassPlan/internal/registry"
	"github.com/jaj-pcl/MassPlan/internal/render"
)

func main() {
	var (
		inPath     = flag.String("in", project.DefaultBuildingsPath(), "buildings JSON file to load")
		buildingID = flag.Int("building", 0, "building id to report on (0 = last selected)")
		ratesPath  = flag.String("rates", "", "optional YAML rate overrides")
		listOnly   = flag.Bool("list", false, "list buildings and exit")
		pdfPath    = flag.String("pdf", "", "write the cost report PDF here")
		dxfPath    = flag.String("dxf", "", "write the floor plan DXF here")
		xlsxPath   = flag.String("xlsx", "", "write the cost schedule workbook here")
		labelsPath = flag.String("labels", "", "write the QR label sheet PDF here (all buildings)")
		pngPath    = flag.String("png", "", "write the massing render PNG here")
	)
	flag.Parse()
	log.SetFlags(0)

	book, err := project.LoadRateBook(project.DefaultRateBookPath())
	if err != nil {
		log.Printf("rate book: %v (using built-in defaults)", err)
		book = model.DefaultRateBook()
	}
	if *ratesPath != "" {
		overrides, err := project.LoadRateOverrides(*ratesPath)
		if err != nil {
			log.Fatalf("rate overrides: %v", err)
		}
		if overrides != nil {
			if err := overrides.Apply(&book); err != nil {
				log.Fatalf("rate overrides: %v", err)
			}
		}
	}

	buildings, err := project.LoadBuildings(project.NewFileStore(*inPath))
	if err != nil {
		log.Fatalf("load %s: %v", *inPath, err)
	}
	if len(buildings) == 0 {
		log.Fatalf("load %s: no buildings", *inPath)
	}

	reg := registry.New(book)
	reg.Restore(buildings)

	if *listOnly {
		listBuildings(reg)
		return
	}

	b, ok := reg.Selected()
	if *buildingID != 0 {
		if b, err = reg.Select(*buildingID); err != nil {
			log.Fatalf("building %d: %v", *buildingID, err)
		}
	} else if !ok {
		log.Fatal("no building selected; pass -building")
	}

	printReport(b, book)

	if *pdfPath != "" {
		if err := export.WriteCostReport(*pdfPath, b, book); err != nil {
			log.Fatalf("pdf: %v", err)
		}
		log.Printf("wrote %s", *pdfPath)
	}
	if *dxfPath != "" {
		if err := export.WriteFloorPlanDXF(*dxfPath, b); err != nil {
			log.Fatalf("dxf: %v", err)
		}
		log.Printf("wrote %s", *dxfPath)
	}
	if *xlsxPath != "" {
		if err := export.WriteCostScheduleXLSX(*xlsxPath, b, book); err != nil {
			log.Fatalf("xlsx: %v", err)
		}
		log.Printf("wrote %s", *xlsxPath)
	}
	if *labelsPath != "" {
		if err := export.WriteBuildingLabels(*labelsPath, reg.List()); err != nil {
			log.Fatalf("labels: %v", err)
		}
		log.Printf("wrote %s", *labelsPath)
	}
	if *pngPath != "" {
		if err := writePNG(*pngPath, b, book); err != nil {
			log.Fatalf("png: %v", err)
		}
		log.Printf("wrote %s", *pngPath)
	}
}

func listBuildings(reg *registry.Registry) {
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSHAPE\tFLOORS\tGROSS SQFT\tTOTAL")
	for _, b := range reg.List() {
		marker := ""
		if b.ID == reg.SelectedID() {
			marker = " *"
		}
		fmt.Fprintf(w, "%d%s\t%s\t%s\t%d\t%.0f\t%s\n",
			b.ID, marker, b.Name, b.Params.ShapeType.String(),
			b.Params.NumFloors, b.Metrics.GrossFloorArea(),
			export.CeilDollars(b.Metrics.Cost.Total))
	}
	w.Flush()
}

func printReport(b *model.Building, book model.RateBook) {
	p := b.Params
	fmt.Printf("%s (building %d)\n", b.Name, b.ID)
	fmt.Printf("  %s, %d floors, %.1f x %.1f ft, %s exterior\n\n",
		p.ShapeType.String(), p.NumFloors, p.BuildingLength, p.BuildingDepth,
		p.ExteriorType)

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "FLOOR\tAREA\tPERIM\tCX\tSTRUCTURAL\tINTERIOR\tEXTERIOR\tSUBTOTAL\t")
	for i, f := range b.Metrics.Floors {
		fc := b.Metrics.Cost.PerFloor[i]
		fmt.Fprintf(w, "%d\t%.0f\t%.1f\t%.2f\t%s\t%s\t%s\t%s\t\n",
			i, f.FootprintArea, f.Perimeter, fc.Multiplier,
			export.CeilDollars(fc.Structural), export.CeilDollars(fc.Interior),
			export.CeilDollars(fc.Exterior), export.CeilDollars(fc.Subtotal()))
	}
	w.Flush()

	cost := b.Metrics.Cost
	fmt.Println()
	fmt.Printf("  Foundation  %s\n", export.CeilDollars(cost.Foundation))
	fmt.Printf("  Structural  %s\n", export.CeilDollars(cost.Structural))
	fmt.Printf("  Interior    %s\n", export.CeilDollars(cost.Interior))
	fmt.Printf("  Exterior    %s\n", export.CeilDollars(cost.Exterior))
	fmt.Printf("  Total       %s\n", export.CeilDollars(cost.Total))

	comparisons, err := engine.CompareFinishes(p, book)
	if err != nil {
		return
	}
	fmt.Println("\n  Finish comparison:")
	for _, c := range comparisons {
		marker := " "
		if c.IsCurrent {
			marker = "*"
		}
		fmt.Printf("  %s %-22s %s (%+.0f)\n", marker, c.Finish.Name,
			export.CeilDollars(c.Total), c.DeltaTotal)
	}
}

func writePNG(path string, b *model.Building, book model.RateBook) error {
	finish, err := book.FinishFor(b.Params.ExteriorType)
	if err != nil {
		return err
	}
	scene, err := render.New()
	if err != nil {
		return err
	}
	solids, roof := engine.BuildSolids(b.Params, engine.DeriveFloors(b.Params))
	return scene.SavePNG(path, b, solids, roof, finish)
}
