package formulary

// Difficulty is the skill level a function or guide is aimed at.
type Difficulty string

// Difficulty levels.
const (
	Beginner     Difficulty = "Beginner"
	Intermediate Difficulty = "Intermediate"
	Advanced     Difficulty = "Advanced"
)

// Valid reports whether d is one of the known difficulty levels.
func (d Difficulty) Valid() bool {
	switch d {
	case Beginner, Intermediate, Advanced:
		return true
	}
	return false
}

// Function represents one spreadsheet formula function in the catalog.
// Name is the identity key and is unique under case-insensitive comparison.
type Function struct {
	Name              string        `json:"name"`
	Category          string        `json:"category"`
	ShortDescription  string        `json:"shortDescription"`
	Syntax            string        `json:"syntax"`
	Arguments         []Argument    `json:"arguments"`
	Returns           Returns       `json:"returns"`
	Examples          []Example     `json:"examples"`
	CommonErrors      []CommonError `json:"commonErrors"`
	Notes             []string      `json:"notes"`
	Pitfalls          []string      `json:"pitfalls"`
	VersionIntroduced string        `json:"versionIntroduced"`
	Difficulty        Difficulty    `json:"difficulty"`
	Tags              []string      `json:"tags"`
	RelatedFunctions  []string      `json:"relatedFunctions"`
}

// Argument describes one positional argument of a function.
type Argument struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Type        string `json:"type"`
}

// Returns describes the value a function produces.
type Returns struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Example is a worked usage of a function. Result is a pre-authored string,
// it is never computed.
type Example struct {
	Description string      `json:"description"`
	Formula     string      `json:"formula"`
	Result      string      `json:"result"`
	Data        *SampleData `json:"data,omitempty"`
}

// SampleData is a small table shown alongside an example.
type SampleData struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// CommonError describes an error value a function may return.
type CommonError struct {
	ErrorCode   string `json:"error"`
	Description string `json:"description"`
}

// RelatedLink is a best-effort reference from one function to another.
// Found is false when the name matches no catalog entry.
type RelatedLink struct {
	Name  string `json:"name"`
	Found bool   `json:"found"`
}

// Catalog provides read access to the static function and guide datasets.
// The returned records are shared and must not be mutated.
type Catalog interface {
	// Functions returns all functions in catalog order.
	Functions() []*Function

	// Guides returns all guides in catalog order.
	Guides() []*Guide

	// Categories returns the distinct function categories, sorted.
	Categories() []string

	// FindFunction looks up a function by case-insensitive name.
	FindFunction(name string) (*Function, bool)

	// FindGuide looks up a guide by exact id.
	FindGuide(id string) (*Guide, bool)
}

// ResolveRelated returns one link per related function name of f in order.
// Dangling names are kept with Found set to false.
func ResolveRelated(fns []*Function, f *Function) []RelatedLink {
	if f == nil || len(f.RelatedFunctions) == 0 {
		return nil
	}
	links := make([]RelatedLink, 0, len(f.RelatedFunctions))
	for _, name := range f.RelatedFunctions {
		_, ok := FindFunction(fns, name)
		links = append(links, RelatedLink{Name: name, Found: ok})
	}
	return links
}
