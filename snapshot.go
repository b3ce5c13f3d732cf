package yieldbook

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/yieldbook/date"
)

// this file contains functions to handle the import/export format.
// It should remain human readable and single file, so that it can be kept
// as a backup or moved to another machine.

// Snapshot is the full content of a book, as exported and imported.
//
// The format is a single JSON object whose property 'products' is the array of
// products and whose property 'records' is the array of query records.
type Snapshot struct {
	Products []Product     `json:"products"`
	Records  []QueryRecord `json:"records"`
}

// ExportSnapshot returns the snapshot of products and records, unchanged.
func ExportSnapshot(products []Product, records []QueryRecord) Snapshot {
	s := Snapshot{
		Products: slices.Clone(products),
		Records:  slices.Clone(records),
	}
	// Both properties are required on import, they must never be null.
	if s.Products == nil {
		s.Products = []Product{}
	}
	if s.Records == nil {
		s.Records = []QueryRecord{}
	}
	return s
}

// EncodeSnapshot writes s to w as an indented JSON document.
func EncodeSnapshot(w io.Writer, s Snapshot) error {
	s = ExportSnapshot(s.Products, s.Records)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("cannot write snapshot: %w", err)
	}
	return nil
}

// ImportSnapshot parses a snapshot document.
//
// The document must be a JSON object with the array properties 'products' and
// 'records', otherwise it returns ErrInvalidFormat. The items themselves are
// only checked for being decodable.
func ImportSnapshot(raw []byte) (Snapshot, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Snapshot{}, fmt.Errorf("%w: not a JSON document: %v", ErrInvalidFormat, err)
	}
	for _, path := range []string{"$.products", "$.records"} {
		v, err := jsonpath.Get(path, doc)
		if err != nil {
			return Snapshot{}, fmt.Errorf("%w: missing %s: %v", ErrInvalidFormat, path, err)
		}
		if _, ok := v.([]any); !ok {
			return Snapshot{}, fmt.Errorf("%w: %s must be an array, got %T", ErrInvalidFormat, path, v)
		}
	}

	var s Snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return s, nil
}

// DecodeSnapshot reads and parses a snapshot document from r.
func DecodeSnapshot(r io.Reader) (Snapshot, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Snapshot{}, fmt.Errorf("cannot read snapshot: %w", err)
	}
	return ImportSnapshot(raw)
}

// ExportFilename returns the default name of an export file made on day.
func ExportFilename(day date.Date) string {
	return "financial-products-" + day.String() + ".json"
}

// Warnings returns data quality issues found in the snapshot. None of them
// prevents the import.
func (s Snapshot) Warnings() []string {
	var warnings []string
	for _, p := range s.Products {
		if p.Redeemed && (p.RedemptionDate == nil || p.RedemptionDate.IsZero()) {
			warnings = append(warnings, fmt.Sprintf("product %q (%s) is redeemed without a redemption date", p.Name, p.ID))
		}
		if !p.Redeemed && p.RedemptionDate != nil {
			warnings = append(warnings, fmt.Sprintf("product %q (%s) has a redemption date but is not redeemed", p.Name, p.ID))
		}
	}
	return warnings
}
