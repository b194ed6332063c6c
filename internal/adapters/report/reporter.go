// Package report renders clustering results for human and machine consumers
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/chisyliu/trackingAlg-dbscan/internal/core/cluster"
)

// TextReporter writes results in the classic per-cluster listing:
//
//	Cluster 1
//	id = setosa x = 1.400000 y = 5.100000
//	...
//	Noise
//	id = virginica x = 6.000000 y = 7.600000
type TextReporter struct {
	w io.Writer
}

// NewTextReporter creates a reporter writing to w
func NewTextReporter(w io.Writer) *TextReporter {
	return &TextReporter{w: w}
}

// Report writes the clusters and the noise list
func (r *TextReporter) Report(result *cluster.Result) error {
	for i := range result.Clusters {
		c := &result.Clusters[i]
		if _, err := fmt.Fprintf(r.w, "Cluster %d\n", c.CID); err != nil {
			return err
		}
		for _, p := range c.Points {
			if _, err := fmt.Fprintf(r.w, "id = %s x = %f y = %f\n", p.ID, p.X, p.Y); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprintln(r.w, "Noise"); err != nil {
		return err
	}
	for _, p := range result.Noise {
		if _, err := fmt.Fprintf(r.w, "id = %s x = %f y = %f\n", p.ID, p.X, p.Y); err != nil {
			return err
		}
	}
	return nil
}

// JSONReporter writes the result as a single JSON document
type JSONReporter struct {
	w      io.Writer
	indent bool
}

// NewJSONReporter creates a JSON reporter writing to w
func NewJSONReporter(w io.Writer, indent bool) *JSONReporter {
	return &JSONReporter{w: w, indent: indent}
}

// Report encodes the result to the underlying writer
func (r *JSONReporter) Report(result *cluster.Result) error {
	enc := json.NewEncoder(r.w)
	if r.indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}
