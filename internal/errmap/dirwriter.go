package errmap

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// DirWriter writes tiles as Root/z/x/y<Ext>, the layout static XYZ tile
// servers expect.
type DirWriter struct {
	Root string
	Ext  string // including the dot, e.g. ".png"
}

// Path returns the file a tile is written to.
func (w *DirWriter) Path(z, x, y int) string {
	return filepath.Join(w.Root, strconv.Itoa(z), strconv.Itoa(x), strconv.Itoa(y)+w.Ext)
}

// WriteTile writes one tile, creating directories as needed. It is safe for
// concurrent use because every tile has its own file.
func (w *DirWriter) WriteTile(z, x, y int, data []byte) error {
	path := w.Path(z, x, y)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating tile directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
