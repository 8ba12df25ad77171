// Package yaml provides the static function and guide catalog, decoded from
// YAML documents embedded in the binary.
package yaml

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/formulary"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed data/functions.yaml
var functionsYAML []byte

//go:embed data/guides.yaml
var guidesYAML []byte

// Ensure Catalog implements formulary.Catalog.
var _ formulary.Catalog = (*Catalog)(nil)

// Catalog is an immutable in-memory catalog.
type Catalog struct {
	functions  []*formulary.Function
	guides     []*formulary.Guide
	categories []string
}

// Load decodes the embedded datasets.
func Load() (*Catalog, error) {
	return Parse(functionsYAML, guidesYAML)
}

// Parse decodes a catalog from raw function and guide documents. Records are
// validated and names are checked for case-insensitive uniqueness; any
// violation is reported as EINVALID.
func Parse(functions, guides []byte) (*Catalog, error) {
	var fnRecords []functionRecord
	if err := decode(functions, &fnRecords); err != nil {
		return nil, formulary.Errorf(formulary.EINVALID, "decode functions: %v", err)
	}
	var guideRecords []guideRecord
	if err := decode(guides, &guideRecords); err != nil {
		return nil, formulary.Errorf(formulary.EINVALID, "decode guides: %v", err)
	}

	v := validator.New(validator.WithRequiredStructEnabled())

	c := &Catalog{
		functions: make([]*formulary.Function, 0, len(fnRecords)),
		guides:    make([]*formulary.Guide, 0, len(guideRecords)),
	}

	seen := make(map[string]struct{}, len(fnRecords))
	for i := range fnRecords {
		rec := &fnRecords[i]
		if err := v.Struct(rec); err != nil {
			return nil, formulary.Errorf(formulary.EINVALID, "function %d (%q): %s", i, rec.Name, describe(err))
		}
		key := strings.ToLower(rec.Name)
		if _, dup := seen[key]; dup {
			return nil, formulary.Errorf(formulary.EINVALID, "duplicate function name %q", rec.Name)
		}
		seen[key] = struct{}{}
		c.functions = append(c.functions, rec.toFunction())
	}

	ids := make(map[string]struct{}, len(guideRecords))
	for i := range guideRecords {
		rec := &guideRecords[i]
		if err := v.Struct(rec); err != nil {
			return nil, formulary.Errorf(formulary.EINVALID, "guide %d (%q): %s", i, rec.ID, describe(err))
		}
		if _, dup := ids[rec.ID]; dup {
			return nil, formulary.Errorf(formulary.EINVALID, "duplicate guide id %q", rec.ID)
		}
		ids[rec.ID] = struct{}{}
		c.guides = append(c.guides, rec.toGuide())
	}

	c.categories = formulary.Categories(c.functions)
	return c, nil
}

// Functions returns all functions in document order.
func (c *Catalog) Functions() []*formulary.Function { return c.functions }

// Guides returns all guides in document order.
func (c *Catalog) Guides() []*formulary.Guide { return c.guides }

// Categories returns the distinct function categories, sorted.
func (c *Catalog) Categories() []string { return c.categories }

// FindFunction looks up a function by case-insensitive name.
func (c *Catalog) FindFunction(name string) (*formulary.Function, bool) {
	return formulary.FindFunction(c.functions, name)
}

// FindGuide looks up a guide by exact id.
func (c *Catalog) FindGuide(id string) (*formulary.Guide, bool) {
	for _, g := range c.guides {
		if g.ID == id {
			return g, true
		}
	}
	return nil, false
}

// decode strictly decodes a YAML sequence into out. An empty document
// decodes to an empty sequence.
func decode(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// describe flattens validator errors into a short field list.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, ", ")
}
