package mock

import "github.com/fwojciec/formulary"

var _ formulary.Catalog = (*Catalog)(nil)

// Catalog is a mock implementation of formulary.Catalog.
type Catalog struct {
	FunctionsFn    func() []*formulary.Function
	GuidesFn       func() []*formulary.Guide
	CategoriesFn   func() []string
	FindFunctionFn func(name string) (*formulary.Function, bool)
	FindGuideFn    func(id string) (*formulary.Guide, bool)
}

func (c *Catalog) Functions() []*formulary.Function {
	return c.FunctionsFn()
}

func (c *Catalog) Guides() []*formulary.Guide {
	return c.GuidesFn()
}

func (c *Catalog) Categories() []string {
	return c.CategoriesFn()
}

func (c *Catalog) FindFunction(name string) (*formulary.Function, bool) {
	return c.FindFunctionFn(name)
}

func (c *Catalog) FindGuide(id string) (*formulary.Guide, bool) {
	return c.FindGuideFn(id)
}

// NewCatalog returns a Catalog backed by fixed slices, using the real
// lookup semantics of the formulary package.
func NewCatalog(fns []*formulary.Function, guides []*formulary.Guide) *Catalog {
	return &Catalog{
		FunctionsFn:  func() []*formulary.Function { return fns },
		GuidesFn:     func() []*formulary.Guide { return guides },
		CategoriesFn: func() []string { return formulary.Categories(fns) },
		FindFunctionFn: func(name string) (*formulary.Function, bool) {
			return formulary.FindFunction(fns, name)
		},
		FindGuideFn: func(id string) (*formulary.Guide, bool) {
			for _, g := range guides {
				if g.ID == id {
					return g, true
				}
			}
			return nil, false
		},
	}
}
