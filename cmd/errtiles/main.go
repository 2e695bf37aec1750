package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/paulmach/orb"

	"github.com/pspoerri/webmerc/internal/coord"
	"github.com/pspoerri/webmerc/internal/encode"
	"github.com/pspoerri/webmerc/internal/errmap"
)

// Set via -ldflags at build time.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	var (
		format      string
		quality     int
		minZoom     int
		maxZoom     int
		tileSize    int
		concurrency int
		metricName  string
		bbox        string
		verbose     bool
		showVersion bool
		cpuProfile  string
	)

	flag.StringVar(&format, "format", "png", "Tile encoding: png, jpeg, webp")
	flag.IntVar(&quality, "quality", 90, "JPEG/WebP quality 1-100")
	flag.IntVar(&minZoom, "min-zoom", 0, "Minimum zoom level")
	flag.IntVar(&maxZoom, "max-zoom", 4, "Maximum zoom level")
	flag.IntVar(&tileSize, "tile-size", coord.DefaultTileSize, "Output tile size in pixels")
	flag.IntVar(&concurrency, "concurrency", runtime.NumCPU(), "Number of parallel workers")
	flag.StringVar(&metricName, "metric", "approx", "Error to draw: approx (fast vs exact y), roundtrip (lon/lat round trip)")
	flag.StringVar(&bbox, "bbox", "", "Limit to minLon,minLat,maxLon,maxLat (default: whole world)")
	flag.BoolVar(&verbose, "verbose", false, "Verbose progress output")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.StringVar(&cpuProfile, "cpuprofile", "", "Write CPU profile to file")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: errtiles [flags] <output-dir>\n\n")
		fmt.Fprintf(os.Stderr, "Render XYZ tiles showing the numerical error of the Web Mercator transforms.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("errtiles %s (commit %s, built %s, exact latitude: %v)\n", version, commit, buildDate, coord.ExactLatToY)
		os.Exit(0)
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	outDir := flag.Arg(0)

	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			log.Fatalf("Creating CPU profile: %v", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatalf("Starting CPU profile: %v", err)
		}
		defer pprof.StopCPUProfile()
	}

	enc, err := encode.NewEncoder(format, quality)
	if err != nil {
		log.Fatalf("Encoder: %v", err)
	}
	metric, err := errmap.ParseMetric(metricName)
	if err != nil {
		log.Fatalf("Metric: %v", err)
	}
	if metric == errmap.MetricApprox && coord.ExactLatToY {
		log.Printf("WARNING: built with slowmercator; the approx metric is empty everywhere")
	}

	var bounds orb.Bound
	if bbox != "" {
		bounds, err = parseBBox(bbox)
		if err != nil {
			log.Fatalf("Bounding box: %v", err)
		}
	}

	cfg := errmap.Config{
		MinZoom:     minZoom,
		MaxZoom:     maxZoom,
		TileSize:    tileSize,
		Concurrency: concurrency,
		Verbose:     verbose,
		Metric:      metric,
		Encoder:     enc,
		Bounds:      bounds,
	}
	writer := &errmap.DirWriter{Root: outDir, Ext: enc.Format().Extension()}

	log.Printf("Rendering %s tiles z%d-z%d into %s", metric, minZoom, maxZoom, outDir)
	start := time.Now()
	stats, err := errmap.Generate(cfg, writer)
	if err != nil {
		log.Fatalf("Generating tiles: %v", err)
	}

	log.Printf("Done in %v: %d tiles (%d empty skipped), %.1f KB, max error %.3g m",
		time.Since(start).Round(time.Millisecond), stats.TileCount, stats.EmptyTiles,
		float64(stats.TotalBytes)/1024, stats.MaxError)
}

func parseBBox(s string) (orb.Bound, error) {
	var minLon, minLat, maxLon, maxLat float64
	if _, err := fmt.Sscanf(s, "%g,%g,%g,%g", &minLon, &minLat, &maxLon, &maxLat); err != nil {
		return orb.Bound{}, fmt.Errorf("parsing %q: %w", s, err)
	}
	if minLon > maxLon || minLat > maxLat {
		return orb.Bound{}, fmt.Errorf("%q: min exceeds max", s)
	}
	return orb.Bound{Min: orb.Point{minLon, minLat}, Max: orb.Point{maxLon, maxLat}}, nil
}
