package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/pspoerri/webmerc/internal/coord"
	"github.com/pspoerri/webmerc/internal/pointio"
	"github.com/pspoerri/webmerc/internal/tagfilter"
)

// Set via -ldflags at build time.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	var (
		inverse     bool
		info        bool
		precision   int
		osmPath     string
		keep        string
		drop        string
		keepDefault bool
		output      string
		verbose     bool
		showVersion bool
	)

	flag.BoolVar(&inverse, "inverse", false, "Convert EPSG:3857 x/y to lon/lat instead")
	flag.BoolVar(&info, "info", false, "Print the EPSG:3857 descriptor and exit")
	flag.IntVar(&precision, "precision", -1, "Output decimals (default: 3 for meters, 9 for degrees)")
	flag.StringVar(&osmPath, "osm", "", "Project nodes of an OSM XML file to GeoJSON (\"-\" for stdin)")
	flag.StringVar(&keep, "keep", "", "Comma separated tag rules to accept: key, key=value, prefix*")
	flag.StringVar(&drop, "drop", "", "Comma separated tag rules to reject, checked before -keep")
	flag.BoolVar(&keepDefault, "default", false, "Accept tags no rule matches (and untagged nodes)")
	flag.StringVar(&output, "o", "", "Output file (default: stdout)")
	flag.BoolVar(&verbose, "verbose", false, "Verbose output")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: mercproj [flags] [lon,lat ...]\n")
		fmt.Fprintf(os.Stderr, "       mercproj -osm <file.osm> [-keep rules] [-drop rules] [-default]\n\n")
		fmt.Fprintf(os.Stderr, "Convert WGS84 lon/lat to Web Mercator (EPSG:3857) meters. Coordinates are\n")
		fmt.Fprintf(os.Stderr, "taken from the arguments or, without arguments, one pair per line from stdin.\n")
		fmt.Fprintf(os.Stderr, "Put \"--\" before pairs starting with a minus sign: mercproj -- -122.4,37.8\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("mercproj %s (commit %s, built %s, exact latitude: %v)\n", version, commit, buildDate, coord.ExactLatToY)
		os.Exit(0)
	}

	if info {
		d := coord.MercatorProjection{}.Descriptor()
		fmt.Printf("%s  %s\n%s\n", d, d.Title(), d.ProjString())
		return
	}

	out := io.Writer(os.Stdout)
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			log.Fatalf("Creating output: %v", err)
		}
		defer f.Close()
		out = f
	}

	if osmPath != "" {
		if err := runOSM(osmPath, keep, drop, keepDefault, verbose, out); err != nil {
			log.Fatalf("OSM: %v", err)
		}
		return
	}

	fn, defaultPrecision := pointio.TransformFunc(coord.LonLatToMercator), 3
	if inverse {
		fn, defaultPrecision = coord.MercatorToLonLat, 9
	}
	if precision < 0 {
		precision = defaultPrecision
	}

	if flag.NArg() > 0 {
		if err := convertArgs(flag.Args(), out, precision, fn); err != nil {
			log.Fatal(err)
		}
		return
	}

	n, err := pointio.Transform(os.Stdin, out, precision, fn)
	if err != nil {
		log.Fatalf("Transform: %v", err)
	}
	if verbose {
		log.Printf("Converted %d point(s)", n)
	}
}

// convertArgs transforms one coordinate pair per argument.
func convertArgs(args []string, out io.Writer, prec int, fn pointio.TransformFunc) error {
	for _, arg := range args {
		a, b, err := pointio.ParseLine(arg)
		if err != nil {
			return fmt.Errorf("argument %q: %w", arg, err)
		}
		x, y := fn(a, b)
		if err := pointio.WritePair(out, prec, x, y); err != nil {
			return fmt.Errorf("writing: %w", err)
		}
	}
	return nil
}

func runOSM(path, keep, drop string, keepDefault, verbose bool, out io.Writer) error {
	filter := tagfilter.New(keepDefault)
	if err := filter.AddRules(false, drop); err != nil {
		return err
	}
	if err := filter.AddRules(true, keep); err != nil {
		return err
	}
	if filter.Empty() && !keepDefault {
		log.Printf("No -keep rules and -default=false: only nodes with accepted tags are written, so the output will be empty")
	}

	in := io.Reader(os.Stdin)
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		in = f
	}

	fc, stats, err := pointio.ProjectNodes(context.Background(), in, filter)
	if err != nil {
		return err
	}
	if verbose {
		log.Printf("Read %d node(s), kept %d, skipped %d other object(s); rules: %d (%s)",
			stats.Nodes, stats.Kept, stats.Skipped, filter.Count(), strings.TrimSpace(drop+" "+keep))
	}

	enc := json.NewEncoder(out)
	return enc.Encode(fc)
}
