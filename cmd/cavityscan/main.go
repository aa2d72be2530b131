package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"time"

	"gonum.org/v1/gonum/stat"

	"cavityscan/internal/phantom"
	"cavityscan/pkg/config"
	"cavityscan/pkg/geom"
	"cavityscan/pkg/probe"
	"cavityscan/pkg/progress"
	"cavityscan/pkg/trace"
	"cavityscan/pkg/volume"
)

func main() {
	// Parse command line arguments
	configPath := flag.String("config", "cavityscan.yaml", "Path to YAML configuration file")
	rays := flag.Int("rays", 0, "Rays cast per layer (0: use config)")
	maxSkip := flag.Int("max-skip", 0, "Consecutive-miss tolerance of a ray march (0: use config)")
	tolUp := flag.Float64("tol-up", -1, "Probe tolerance above the seed value (negative: use config)")
	tolDown := flag.Float64("tol-down", -1, "Probe tolerance below the seed value (negative: use config)")
	axisName := flag.String("axis", "z", "Scanning axis (x, y, or z)")
	seedX := flag.Int("seed-x", -1, "Seed X coordinate (negative: phantom center)")
	seedY := flag.Int("seed-y", -1, "Seed Y coordinate (negative: phantom center)")
	seedZ := flag.Int("seed-z", -1, "Seed Z coordinate (negative: phantom center)")
	writeConfig := flag.Bool("write-config", false, "Write the default configuration file and exit")
	flag.Parse()

	if *writeConfig {
		if err := config.CreateDefaultConfigFile(*configPath); err != nil {
			log.Fatalf("Failed to write config: %v", err)
		}
		fmt.Printf("Default configuration written to %s\n", *configPath)
		return
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *rays > 0 {
		cfg.Scan.Rays = *rays
	}
	if *maxSkip > 0 {
		cfg.Scan.MaxSkip = *maxSkip
	}
	if *tolUp >= 0 {
		cfg.Scan.ToleranceUp = *tolUp
	}
	if *tolDown >= 0 {
		cfg.Scan.ToleranceDown = *tolDown
	}

	axis, err := geom.ParseAxis(*axisName)
	if err != nil {
		log.Fatalf("Invalid -axis: %v", err)
	}

	fmt.Println("================================")
	fmt.Println("CAVITYSCAN: SEEDED CAVITY DETECTION AND VOLUME ESTIMATION")
	fmt.Println("================================")

	// Build the demo volume: a flat-topped cylindrical cavity embedded in
	// denser surrounding material.
	p := cfg.Phantom
	cx, cy := p.Width/2, p.Height/2
	z0, z1 := p.Depth/4, p.Depth-1-p.Depth/4
	fmt.Printf("Generating phantom: %dx%dx%d, cylinder radius %d spanning layers %d..%d\n",
		p.Width, p.Height, p.Depth, p.Radius, z0, z1)
	slices := phantom.Cylinder(p.Width, p.Height, p.Depth, cx, cy, p.Radius, z0, z1,
		p.InsideDensity, p.OutsideDensity)

	grid := volume.NewGrid()
	if cfg.Output.Verbose {
		grid.OnDataUpdated(func() {
			fmt.Println("\nVolume grid populated.")
		})
	}
	grid.Build(slices, progress.NewConsole("Building volume grid", os.Stdout))

	minD, maxD := grid.DensityRange()
	fmt.Printf("Grid density range: [%d, %d]\n", minD, maxD)

	seed := geom.Point3D{X: *seedX, Y: *seedY, Z: *seedZ}
	if seed.X < 0 {
		seed.X = cx
	}
	if seed.Y < 0 {
		seed.Y = cy
	}
	if seed.Z < 0 {
		seed.Z = (z0 + z1) / 2
	}
	fmt.Printf("Seed point: (%d, %d, %d), scanning axis: %s\n", seed.X, seed.Y, seed.Z, axis)

	params := trace.Params{
		Rays:          cfg.Scan.Rays,
		MaxSkip:       cfg.Scan.MaxSkip,
		ToleranceUp:   cfg.Scan.ToleranceUp,
		ToleranceDown: cfg.Scan.ToleranceDown,
		StopOnMiss:    cfg.Scan.StopOnMiss,
		Workers:       cfg.Scan.Workers,
	}

	tracer := trace.NewTracer(grid, probe.Identity{}, params)
	acc := trace.NewAccumulator()
	acc.EnableDebugRecording(cfg.Output.RecordDebugPoints)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println("Starting cavity scan...")
	startTime := time.Now()
	if err := tracer.Scan(ctx, seed, axis, acc, progress.NewConsole("Tracing layers", os.Stdout)); err != nil {
		log.Fatalf("\nScan failed: %v", err)
	}
	scanTime := time.Since(startTime)

	vol, ok := acc.Volume()
	if !ok {
		log.Fatalf("Scan completed without a volume estimate")
	}

	fmt.Printf("\n\nScan completed in %.2f seconds\n", scanTime.Seconds())
	fmt.Printf("Scan results:\n")
	fmt.Printf("=============\n")
	fmt.Printf("Layers with boundary rings: %d\n", acc.RingCount(axis))
	fmt.Printf("Estimated cavity volume: %d mm^3\n", vol)

	// Per-layer ring radius statistics give a quick shape sanity check.
	var radii []float64
	for _, c := range acc.Centers() {
		ring := acc.RingAt(axis, c.Coord(axis))
		for _, pt := range ring {
			radii = append(radii, geom.Distance(c, pt))
		}
	}
	if len(radii) > 0 {
		fmt.Printf("Boundary radius: mean %.2f voxels, stddev %.2f\n",
			stat.Mean(radii, nil), stat.StdDev(radii, nil))
	}

	if cfg.Output.RecordDebugPoints {
		fmt.Printf("Recorded %d debug boundary points\n", len(acc.DebugPoints()))
	}

	expected := math.Pi * float64(p.Radius) * float64(p.Radius) * float64(z1-z0+1)
	fmt.Printf("\nAnalytic cylinder volume: %.0f mm^3\n", expected)
	fmt.Printf("Relative error: %.2f%%\n", (float64(vol)-expected)/expected*100)
}
