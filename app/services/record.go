package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// SourceID is the scraper-side product identifier. Retail sites hand out
// both numeric and string ids, so either JSON form is accepted and echoed
// back in the form it arrived in.
type SourceID struct {
	text   string
	number bool
}

// StringID builds a SourceID that marshals as a JSON string.
func StringID(s string) SourceID { return SourceID{text: s} }

// NumberID builds a SourceID that marshals as a JSON number. n must be a
// valid JSON number literal.
func NumberID(n string) SourceID { return SourceID{text: n, number: true} }

func (s *SourceID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = SourceID{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = StringID(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("productId must be a string or a number")
	}
	*s = NumberID(n.String())
	return nil
}

func (s SourceID) MarshalJSON() ([]byte, error) {
	if s.number {
		return []byte(s.text), nil
	}
	return json.Marshal(s.text)
}

func (s SourceID) String() string { return s.text }

// IsZero reports a missing or blank id.
func (s SourceID) IsZero() bool { return strings.TrimSpace(s.text) == "" }

// ColorVariant is one entry of a record's colors array: a single key (the
// color name) mapped to variant metadata kept opaque.
type ColorVariant map[string]json.RawMessage

// Record is one scraped product as posted to the ingestion endpoint.
type Record struct {
	ProductID   SourceID       `json:"productId"             validate:"required,max=255"`
	ProductURL  string         `json:"productUrl"            validate:"required,url,max=2048"`
	ProductName string         `json:"productName"           validate:"max=1024"`
	Description string         `json:"description"`
	BrandName   string         `json:"brandName"             validate:"max=255"`
	Gender      string         `json:"gender"                validate:"max=64"`
	Category    *string        `json:"category,omitempty"    validate:"max=255"`
	SubCategory *string        `json:"subCategory,omitempty" validate:"max=255"`
	Colors      []ColorVariant `json:"colors,omitempty"`
	RetailerID  int            `json:"retailerId"            validate:"gte=0"`
}

// CategoryNames returns category and subCategory, when set.
func (r Record) CategoryNames() []string {
	var out []string
	if r.Category != nil {
		out = append(out, *r.Category)
	}
	if r.SubCategory != nil {
		out = append(out, *r.SubCategory)
	}
	return out
}

// ColorNames returns the keys of every color variant.
func (r Record) ColorNames() []string {
	var out []string
	for _, v := range r.Colors {
		for name := range v {
			out = append(out, name)
		}
	}
	return out
}

// InsertCandidate is a record whose url is unknown to the catalog.
// CatalogID is zero until the insert step assigns it.
type InsertCandidate struct {
	Record
	CatalogID uint
}

// UpdateCandidate is a record whose url already has a product row.
type UpdateCandidate struct {
	Record
	CatalogID uint

	// pendingInsert indexes the insert in the same batch that creates the
	// row this update targets; -1 when the row already existed.
	pendingInsert int
}

const (
	ActionInsert = "insert"
	ActionUpdate = "update"
)

// ProcessedRecord is a record as reported back to the caller.
type ProcessedRecord struct {
	Record
	Action            string `json:"action"`
	ID                uint   `json:"id"`
	OriginalProductID string `json:"originalProductId"`
}

// lookupKey trims and lowercases a lookup name.
func lookupKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// nameSet collects lookup names case-insensitively, dropping blanks.
type nameSet map[string]struct{}

func (s nameSet) add(names ...string) {
	for _, n := range names {
		if k := lookupKey(n); k != "" {
			s[k] = struct{}{}
		}
	}
}

func (s nameSet) sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
