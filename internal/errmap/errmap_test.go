package errmap

import (
	"errors"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/paulmach/orb"

	"github.com/pspoerri/webmerc/internal/coord"
	"github.com/pspoerri/webmerc/internal/encode"
)

// memWriter collects tiles in memory.
type memWriter struct {
	mu    sync.Mutex
	tiles map[[3]int][]byte
	fail  error
}

func (w *memWriter) WriteTile(z, x, y int, data []byte) error {
	if w.fail != nil {
		return w.fail
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.tiles == nil {
		w.tiles = make(map[[3]int][]byte)
	}
	w.tiles[[3]int{z, x, y}] = data
	return nil
}

func TestParseMetric(t *testing.T) {
	for _, name := range []string{"approx", "roundtrip"} {
		m, err := ParseMetric(name)
		if err != nil {
			t.Fatalf("ParseMetric(%q): %v", name, err)
		}
		if m.String() != name {
			t.Errorf("ParseMetric(%q).String() = %q", name, m.String())
		}
	}
	if _, err := ParseMetric("bogus"); err == nil {
		t.Error("ParseMetric(bogus) succeeded")
	}
}

func TestMetricApprox_Sample(t *testing.T) {
	v, ok := MetricApprox.Sample(0, 80)
	if ok {
		t.Errorf("Sample at lat 80 = %v, want undefined", v)
	}
	// The band is open: at ±78 LatToY is exact, so there is nothing to draw.
	for _, lat := range []float64{78, -78} {
		if v, ok := MetricApprox.Sample(0, lat); ok {
			t.Errorf("Sample at lat %v = %v, want undefined", lat, v)
		}
	}

	v, ok = MetricApprox.Sample(0, 45)
	if coord.ExactLatToY {
		if ok {
			t.Errorf("exact build: Sample at lat 45 = %v, want undefined", v)
		}
		return
	}
	if !ok {
		t.Fatal("Sample at lat 45 undefined")
	}
	if v < 0 || v >= 5e-3 {
		t.Errorf("Sample at lat 45 = %v m, want in [0, 5mm)", v)
	}
}

func TestMetricRoundTrip_Sample(t *testing.T) {
	for _, lat := range []float64{-85, -60, 0, 33.3, 77.99, 84} {
		v, ok := MetricRoundTrip.Sample(12.5, lat)
		if !ok {
			t.Fatalf("roundtrip undefined at lat %v", lat)
		}
		// 1e-8 degrees is about 1.1 mm on the ground.
		if v < 0 || v > 2e-3 {
			t.Errorf("roundtrip error at lat %v = %v m", lat, v)
		}
	}
}

func TestErrorColor(t *testing.T) {
	if got := ErrorColor(0); got != ramp[0] {
		t.Errorf("ErrorColor(0) = %v, want %v", got, ramp[0])
	}
	if got := ErrorColor(1); got != ramp[len(ramp)-1] {
		t.Errorf("ErrorColor(1m) = %v, want %v", got, ramp[len(ramp)-1])
	}
	if got := ErrorColor(math.Pow(10, minLogError)); got != ramp[0] {
		t.Errorf("ErrorColor(1nm) = %v, want %v", got, ramp[0])
	}
	for _, v := range []float64{1e-12, 1e-7, 1e-4, 3e-3} {
		if c := ErrorColor(v); c.A != 0xff {
			t.Errorf("ErrorColor(%v) alpha = %d, want opaque", v, c.A)
		}
	}
	// Middle of the log range lands on the middle ramp stop.
	mid := math.Pow(10, (minLogError+maxLogError)/2.0)
	if got := ErrorColor(mid); got != (color.RGBA{0xa4, 0xfc, 0x3c, 0xff}) {
		t.Errorf("ErrorColor(%v) = %v, want middle stop", mid, got)
	}
}

func TestRenderTile_Approx(t *testing.T) {
	img, maxErr := RenderTile(0, 0, 0, 64, MetricApprox)
	if coord.ExactLatToY {
		if img != nil {
			t.Error("exact build: approx tile should be empty")
		}
		return
	}
	if img == nil {
		t.Fatal("z0 approx tile is empty")
	}
	if maxErr <= 0 || maxErr >= 5e-3 {
		t.Errorf("maxErr = %v, want in (0, 5mm)", maxErr)
	}

	// Top row is beyond 78°N and stays transparent; the centre rows are drawn
	// and identical across the row.
	if a := img.RGBAAt(10, 0).A; a != 0 {
		t.Errorf("top row alpha = %d, want 0", a)
	}
	row := 32
	first := img.RGBAAt(0, row)
	if first.A != 0xff {
		t.Fatalf("centre row alpha = %d, want 255", first.A)
	}
	for x := 1; x < 64; x++ {
		if img.RGBAAt(x, row) != first {
			t.Fatalf("row %d not uniform at x=%d", row, x)
		}
	}
}

func TestRenderTile_PolarTileEmpty(t *testing.T) {
	// z3 row 0 spans ~79.2°N to 85.05°N, entirely outside the fast band.
	img, _ := RenderTile(3, 4, 0, 32, MetricApprox)
	if img != nil {
		t.Error("polar tile rendered, want nil")
	}
}

func TestGenerate(t *testing.T) {
	w := &memWriter{}
	cfg := Config{
		MinZoom:     0,
		MaxZoom:     2,
		TileSize:    32,
		Concurrency: 3,
		Metric:      MetricRoundTrip,
		Encoder:     &encode.PNGEncoder{},
	}
	stats, err := Generate(cfg, w)
	if err != nil {
		t.Fatal(err)
	}
	// 1 + 4 + 16 tiles, all defined for the round trip metric.
	if stats.TileCount != 21 || len(w.tiles) != 21 {
		t.Errorf("TileCount = %d, written = %d, want 21", stats.TileCount, len(w.tiles))
	}
	if stats.EmptyTiles != 0 {
		t.Errorf("EmptyTiles = %d, want 0", stats.EmptyTiles)
	}
	if stats.TotalBytes <= 0 {
		t.Errorf("TotalBytes = %d", stats.TotalBytes)
	}

	data := w.tiles[[3]int{2, 1, 1}]
	img, err := encode.DecodeImage(data, encode.FormatPNG)
	if err != nil {
		t.Fatalf("decoding tile: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
		t.Errorf("tile size = %v, want 32x32", b)
	}
}

func TestGenerate_BoundsAndEmptyTiles(t *testing.T) {
	if coord.ExactLatToY {
		t.Skip("approx metric is undefined in the exact build")
	}
	w := &memWriter{}
	cfg := Config{
		MinZoom:     3,
		MaxZoom:     3,
		TileSize:    16,
		Concurrency: 2,
		Metric:      MetricApprox,
		Encoder:     &encode.PNGEncoder{},
		Bounds:      orb.Bound{Min: orb.Point{0, 70}, Max: orb.Point{40, 85}},
	}
	stats, err := Generate(cfg, w)
	if err != nil {
		t.Fatal(err)
	}
	// Column 4 (0°..45°E), rows 0-1 (85.05°..66.5°N); row 0 is entirely polar.
	if stats.TileCount != 1 || stats.EmptyTiles != 1 {
		t.Errorf("stats = %+v, want 1 tile and 1 empty", stats)
	}
	if _, ok := w.tiles[[3]int{3, 4, 1}]; !ok {
		t.Errorf("tile 3/4/1 missing, got %d tiles", len(w.tiles))
	}
}

func TestGenerate_WriterError(t *testing.T) {
	boom := errors.New("disk full")
	cfg := Config{
		MinZoom:     1,
		MaxZoom:     1,
		TileSize:    8,
		Concurrency: 1,
		Metric:      MetricRoundTrip,
		Encoder:     &encode.PNGEncoder{},
	}
	_, err := Generate(cfg, &memWriter{fail: boom})
	if !errors.Is(err, boom) {
		t.Errorf("Generate error = %v, want %v", err, boom)
	}
}

func TestGenerate_InvalidConfig(t *testing.T) {
	base := Config{MinZoom: 0, MaxZoom: 1, TileSize: 8, Concurrency: 1, Encoder: &encode.PNGEncoder{}}
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"no encoder", func(c *Config) { c.Encoder = nil }},
		{"inverted zoom", func(c *Config) { c.MinZoom = 3 }},
		{"negative zoom", func(c *Config) { c.MinZoom = -1 }},
		{"zero tile size", func(c *Config) { c.TileSize = 0 }},
		{"zero workers", func(c *Config) { c.Concurrency = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.modify(&cfg)
			if _, err := Generate(cfg, &memWriter{}); err == nil {
				t.Error("Generate succeeded, want error")
			}
		})
	}
}

func TestDirWriter(t *testing.T) {
	dir := t.TempDir()
	w := &DirWriter{Root: dir, Ext: ".png"}

	if err := w.WriteTile(4, 8, 5, []byte("tile")); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "4", "8", "5.png")
	if got := w.Path(4, 8, 5); got != want {
		t.Errorf("Path = %q, want %q", got, want)
	}
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "tile" {
		t.Errorf("tile content = %q", data)
	}
}
