package yaml

import "github.com/fwojciec/formulary"

type functionRecord struct {
	Name              string              `yaml:"name" validate:"required"`
	Category          string              `yaml:"category" validate:"required"`
	ShortDescription  string              `yaml:"shortDescription" validate:"required"`
	Syntax            string              `yaml:"syntax" validate:"required"`
	Arguments         []argumentRecord    `yaml:"arguments" validate:"dive"`
	Returns           returnsRecord       `yaml:"returns"`
	Examples          []exampleRecord     `yaml:"examples" validate:"min=1,dive"`
	CommonErrors      []commonErrorRecord `yaml:"commonErrors" validate:"dive"`
	Notes             []string            `yaml:"notes" validate:"dive,required"`
	Pitfalls          []string            `yaml:"pitfalls" validate:"dive,required"`
	VersionIntroduced string              `yaml:"versionIntroduced" validate:"required"`
	Difficulty        string              `yaml:"difficulty" validate:"oneof=Beginner Intermediate Advanced"`
	Tags              []string            `yaml:"tags" validate:"dive,required"`
	RelatedFunctions  []string            `yaml:"relatedFunctions" validate:"dive,required"`
}

type argumentRecord struct {
	Name        string `yaml:"name" validate:"required"`
	Description string `yaml:"description" validate:"required"`
	Required    bool   `yaml:"required"`
	Type        string `yaml:"type" validate:"required"`
}

type returnsRecord struct {
	Type        string `yaml:"type" validate:"required"`
	Description string `yaml:"description" validate:"required"`
}

type exampleRecord struct {
	Description string            `yaml:"description" validate:"required"`
	Formula     string            `yaml:"formula" validate:"required"`
	Result      string            `yaml:"result" validate:"required"`
	Data        *sampleDataRecord `yaml:"data" validate:"omitempty"`
}

type sampleDataRecord struct {
	Headers []string   `yaml:"headers" validate:"min=1"`
	Rows    [][]string `yaml:"rows"`
}

type commonErrorRecord struct {
	Error       string `yaml:"error" validate:"required"`
	Description string `yaml:"description" validate:"required"`
}

type guideRecord struct {
	ID               string `yaml:"id" validate:"required"`
	Title            string `yaml:"title" validate:"required"`
	Category         string `yaml:"category" validate:"oneof=Beginner Intermediate Advanced"`
	ShortDescription string `yaml:"shortDescription" validate:"required"`
	Content          string `yaml:"content"`
}

func (r *functionRecord) toFunction() *formulary.Function {
	f := &formulary.Function{
		Name:              r.Name,
		Category:          r.Category,
		ShortDescription:  r.ShortDescription,
		Syntax:            r.Syntax,
		Returns:           formulary.Returns{Type: r.Returns.Type, Description: r.Returns.Description},
		Notes:             nonNil(r.Notes),
		Pitfalls:          nonNil(r.Pitfalls),
		VersionIntroduced: r.VersionIntroduced,
		Difficulty:        formulary.Difficulty(r.Difficulty),
		Tags:              nonNil(r.Tags),
		RelatedFunctions:  nonNil(r.RelatedFunctions),
		Arguments:         make([]formulary.Argument, 0, len(r.Arguments)),
		Examples:          make([]formulary.Example, 0, len(r.Examples)),
		CommonErrors:      make([]formulary.CommonError, 0, len(r.CommonErrors)),
	}
	for _, a := range r.Arguments {
		f.Arguments = append(f.Arguments, formulary.Argument(a))
	}
	for _, e := range r.Examples {
		ex := formulary.Example{Description: e.Description, Formula: e.Formula, Result: e.Result}
		if e.Data != nil {
			ex.Data = &formulary.SampleData{Headers: e.Data.Headers, Rows: e.Data.Rows}
		}
		f.Examples = append(f.Examples, ex)
	}
	for _, ce := range r.CommonErrors {
		f.CommonErrors = append(f.CommonErrors, formulary.CommonError{ErrorCode: ce.Error, Description: ce.Description})
	}
	return f
}

func (r *guideRecord) toGuide() *formulary.Guide {
	return &formulary.Guide{
		ID:               r.ID,
		Title:            r.Title,
		Category:         formulary.Difficulty(r.Category),
		ShortDescription: r.ShortDescription,
		Content:          r.Content,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
