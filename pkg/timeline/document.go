package timeline

import (
	"encoding/json"
	"io"

	"github.com/agentstation/stagemap/pkg/errors"
)

// Meta summarises how a document was produced.
type Meta struct {
	TotalLinesRead int    `json:"total_lines_read" yaml:"total_lines_read"`
	TotalEvents    int    `json:"total_events" yaml:"total_events"`
	TotalMonths    int    `json:"total_months" yaml:"total_months"`
	StartMonth     string `json:"start_month,omitempty" yaml:"start_month,omitempty"`
	EndMonth       string `json:"end_month,omitempty" yaml:"end_month,omitempty"`
	Skipped        int    `json:"skipped" yaml:"skipped"`
}

// Document is the startup JSON payload.
type Document struct {
	Meta     *Meta   `json:"meta,omitempty" yaml:"meta,omitempty"`
	Timeline []Frame `json:"timeline" yaml:"timeline"`
}

// Decode reads a document. A missing timeline decodes as empty.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.WrapParse("json", "", err)
	}
	if doc.Timeline == nil {
		doc.Timeline = []Frame{}
	}
	return &doc, nil
}

// Encode writes the document as indented JSON.
func (d *Document) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// Build returns the classified store for the document.
func (d *Document) Build() *Timeline {
	return New(d.Timeline)
}
