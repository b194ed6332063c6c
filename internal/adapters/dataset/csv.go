// Package dataset provides adapters that load point sets from delimited files
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chisyliu/trackingAlg-dbscan/internal/core/geom"
	"github.com/chisyliu/trackingAlg-dbscan/internal/infrastructure/metrics"
)

// Layout names a CSV column mapping
type Layout string

const (
	// LayoutXY expects one point per row: id, x, y
	LayoutXY Layout = "xy"
	// LayoutIris expects the classic UCI Iris rows:
	// sepal length, sepal width, petal length, petal width, species.
	// Points come out species-labeled with x = petal length and
	// y = sepal length.
	LayoutIris Layout = "iris"
)

// CSVLoader reads a point set from CSV input
// PRINCIPLES:
// - SRP: Only parses; clustering never sees the file format
// - KISS: Two fixed layouts, no schema inference
//
// Malformed rows abort the load: the engine contract requires argument
// errors to surface before any scan, with no partial result.
type CSVLoader struct {
	layout Layout
}

// NewCSVLoader creates a loader for the given layout
func NewCSVLoader(layout Layout) (*CSVLoader, error) {
	switch layout {
	case LayoutXY, LayoutIris:
		return &CSVLoader{layout: layout}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLayout, layout)
	}
}

// LoadFile reads points from the file at path
func (l *CSVLoader) LoadFile(path string) ([]geom.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()
	return l.Load(f)
}

// Load reads points from r until EOF
func (l *CSVLoader) Load(r io.Reader) ([]geom.Point, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var points []geom.Point
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			metrics.DatasetRowErrors(string(l.layout), 1)
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRecord, line, err)
		}
		if isBlank(record) {
			continue
		}

		p, err := l.parseRecord(record)
		if err != nil {
			metrics.DatasetRowErrors(string(l.layout), 1)
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRecord, line, err)
		}
		points = append(points, p)
	}

	metrics.DatasetRows(string(l.layout), int64(len(points)))
	return points, nil
}

// parseRecord maps one CSV row to a point according to the layout
func (l *CSVLoader) parseRecord(record []string) (geom.Point, error) {
	switch l.layout {
	case LayoutIris:
		if len(record) < 5 {
			return geom.Point{}, fmt.Errorf("expected 5 columns, got %d", len(record))
		}
		x, err := parseCoord(record[2]) // petal length
		if err != nil {
			return geom.Point{}, err
		}
		y, err := parseCoord(record[0]) // sepal length
		if err != nil {
			return geom.Point{}, err
		}
		return geom.Point{ID: strings.TrimSpace(record[4]), X: x, Y: y}, nil
	default: // LayoutXY
		if len(record) < 3 {
			return geom.Point{}, fmt.Errorf("expected 3 columns, got %d", len(record))
		}
		x, err := parseCoord(record[1])
		if err != nil {
			return geom.Point{}, err
		}
		y, err := parseCoord(record[2])
		if err != nil {
			return geom.Point{}, err
		}
		return geom.Point{ID: strings.TrimSpace(record[0]), X: x, Y: y}, nil
	}
}

func parseCoord(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("non-numeric coordinate %q", s)
	}
	return v, nil
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
