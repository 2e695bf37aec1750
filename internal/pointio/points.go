// Package pointio reads and writes coordinates for the command line tools.
package pointio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// TransformFunc maps one coordinate pair to another.
type TransformFunc func(a, b float64) (float64, float64)

// ParseLine parses a coordinate pair separated by whitespace and/or a comma,
// e.g. "8.5 47.3", "8.5,47.3" or "8.5, 47.3".
func ParseLine(line string) (a, b float64, err error) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == ';'
	})
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("want two numbers, got %d fields in %q", len(fields), line)
	}
	if a, err = strconv.ParseFloat(fields[0], 64); err != nil {
		return 0, 0, fmt.Errorf("first value: %w", err)
	}
	if b, err = strconv.ParseFloat(fields[1], 64); err != nil {
		return 0, 0, fmt.Errorf("second value: %w", err)
	}
	return a, b, nil
}

// Transform reads one pair per line from r, applies fn and writes the
// result to w with prec decimals. Blank lines and lines starting with '#'
// are skipped. It stops at the first malformed line and reports its number.
func Transform(r io.Reader, w io.Writer, prec int, fn TransformFunc) (int, error) {
	sc := bufio.NewScanner(r)
	bw := bufio.NewWriter(w)
	n, lineNo := 0, 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		a, b, err := ParseLine(line)
		if err != nil {
			return n, fmt.Errorf("line %d: %w", lineNo, err)
		}
		x, y := fn(a, b)
		if err := WritePair(bw, prec, x, y); err != nil {
			return n, err
		}
		n++
	}
	if err := sc.Err(); err != nil {
		return n, fmt.Errorf("reading input: %w", err)
	}
	return n, bw.Flush()
}

// WritePair writes "a b\n" with prec decimals.
func WritePair(w io.Writer, prec int, a, b float64) error {
	_, err := fmt.Fprintf(w, "%.*f %.*f\n", prec, a, prec, b)
	return err
}
