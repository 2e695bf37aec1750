// Package errmap renders raster tiles that visualise the numerical error of
// the Web Mercator transforms.
package errmap

import (
	"fmt"
	"image"
	"log"
	"math"
	"sync"
	"sync/atomic"

	"github.com/paulmach/orb"

	"github.com/pspoerri/webmerc/internal/coord"
	"github.com/pspoerri/webmerc/internal/encode"
)

// Config holds tile generation configuration.
type Config struct {
	MinZoom     int
	MaxZoom     int
	TileSize    int
	Concurrency int
	Verbose     bool
	Metric      Metric
	Encoder     encode.Encoder
	// Bounds limits rendering to tiles intersecting this lon/lat box.
	// The zero value means the whole world.
	Bounds orb.Bound
}

// Stats holds generation statistics.
type Stats struct {
	TileCount  int64
	EmptyTiles int64
	TotalBytes int64
	// MaxError is the largest metric value seen, in meters.
	MaxError float64
}

// TileWriter receives encoded tiles.
type TileWriter interface {
	WriteTile(z, x, y int, data []byte) error
}

type tileJob struct {
	Z, X, Y int
}

// maxTracker keeps the running maximum across workers.
type maxTracker struct {
	mu  sync.Mutex
	max float64
}

func (m *maxTracker) observe(v float64) {
	m.mu.Lock()
	if v > m.max {
		m.max = v
	}
	m.mu.Unlock()
}

func (cfg Config) validate() error {
	switch {
	case cfg.Encoder == nil:
		return fmt.Errorf("no encoder configured")
	case cfg.MinZoom < 0 || cfg.MaxZoom > 30 || cfg.MinZoom > cfg.MaxZoom:
		return fmt.Errorf("invalid zoom range %d-%d", cfg.MinZoom, cfg.MaxZoom)
	case cfg.TileSize <= 0:
		return fmt.Errorf("invalid tile size %d", cfg.TileSize)
	case cfg.Concurrency <= 0:
		return fmt.Errorf("invalid concurrency %d", cfg.Concurrency)
	}
	return nil
}

func (cfg Config) bounds() orb.Bound {
	if cfg.Bounds.IsZero() {
		return orb.Bound{Min: orb.Point{-180, -coord.MaxLat}, Max: orb.Point{180, coord.MaxLat}}
	}
	return cfg.Bounds
}

// Generate renders tiles for all zoom levels and writes them via the
// TileWriter. Tiles without any defined pixel are counted but not written.
func Generate(cfg Config, writer TileWriter) (Stats, error) {
	if err := cfg.validate(); err != nil {
		return Stats{}, err
	}
	b := cfg.bounds()

	var tileCount, emptyCount, totalBytes atomic.Int64
	var maxErr maxTracker

	for z := cfg.MinZoom; z <= cfg.MaxZoom; z++ {
		tiles := coord.TilesInBounds(z, b.Min.Lon(), b.Min.Lat(), b.Max.Lon(), b.Max.Lat())

		if cfg.Verbose {
			log.Printf("Zoom %d: %d tiles to render", z, len(tiles))
		}
		if len(tiles) == 0 {
			continue
		}

		jobs := make(chan tileJob, cfg.Concurrency*2)
		errCh := make(chan error, 1)
		var failed atomic.Bool
		var wg sync.WaitGroup

		for w := 0; w < cfg.Concurrency; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for job := range jobs {
					// Keep draining after a failure so the feeder never blocks.
					if failed.Load() {
						continue
					}
					if err := renderJob(cfg, job, writer, &maxErr, &tileCount, &emptyCount, &totalBytes); err != nil {
						failed.Store(true)
						select {
						case errCh <- err:
						default:
						}
					}
				}
			}()
		}

		for _, t := range tiles {
			jobs <- tileJob{Z: t[0], X: t[1], Y: t[2]}
		}
		close(jobs)
		wg.Wait()

		select {
		case err := <-errCh:
			return Stats{}, err
		default:
		}

		if cfg.Verbose {
			log.Printf("Zoom %d: completed (%d tiles so far)", z, tileCount.Load())
		}
	}

	return Stats{
		TileCount:  tileCount.Load(),
		EmptyTiles: emptyCount.Load(),
		TotalBytes: totalBytes.Load(),
		MaxError:   maxErr.max,
	}, nil
}

func renderJob(cfg Config, job tileJob, writer TileWriter, maxErr *maxTracker, tileCount, emptyCount, totalBytes *atomic.Int64) error {
	img, tileMax := RenderTile(job.Z, job.X, job.Y, cfg.TileSize, cfg.Metric)
	if img == nil {
		emptyCount.Add(1)
		return nil
	}
	maxErr.observe(tileMax)

	data, err := cfg.Encoder.Encode(img)
	if err != nil {
		return fmt.Errorf("encoding tile z%d/%d/%d: %w", job.Z, job.X, job.Y, err)
	}
	if err := writer.WriteTile(job.Z, job.X, job.Y, data); err != nil {
		return fmt.Errorf("writing tile z%d/%d/%d: %w", job.Z, job.X, job.Y, err)
	}

	tileCount.Add(1)
	totalBytes.Add(int64(len(data)))
	return nil
}

// RenderTile draws one tile of the metric, sampling each pixel centre. It
// returns nil if the metric is undefined over the whole tile, along with the
// largest value it drew.
func RenderTile(z, tx, ty, tileSize int, m Metric) (*image.RGBA, float64) {
	var img *image.RGBA
	maxErr := math.Inf(-1)

	for py := 0; py < tileSize; py++ {
		for px := 0; px < tileSize; px++ {
			lon, lat := coord.PixelToLonLat(z, tx, ty, tileSize, float64(px)+0.5, float64(py)+0.5)
			v, ok := m.Sample(lon, lat)
			if !ok {
				break // definedness depends on latitude only
			}
			if img == nil {
				img = image.NewRGBA(image.Rect(0, 0, tileSize, tileSize))
			}
			maxErr = math.Max(maxErr, v)

			if !m.dependsOnLon() {
				c := ErrorColor(v)
				for x := 0; x < tileSize; x++ {
					img.SetRGBA(x, py, c)
				}
				break
			}
			img.SetRGBA(px, py, ErrorColor(v))
		}
	}

	if img == nil {
		return nil, 0
	}
	return img, maxErr
}
