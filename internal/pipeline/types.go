package pipeline

// MaxTargetFiles bounds the files sent with any generation request.
const MaxTargetFiles = 5

// Action names the two operations the pipeline performs.
type Action string

const (
	ActionSuggestions Action = "suggestions"
	ActionCode        Action = "code"
)

// Request describes one generation call.
type Request struct {
	// TargetFiles is the ordered selection; the first entry is the primary file.
	TargetFiles []string `validate:"min=1,max=5,dive,required"`

	Framework string `validate:"required"`

	// RepositoryReference is a repository URL or an "owner/name" full name.
	RepositoryReference string

	Authenticated bool
}

// Primary returns the first target file or "".
func (r Request) Primary() string {
	if len(r.TargetFiles) == 0 {
		return ""
	}
	return r.TargetFiles[0]
}

// Suggestion is a single proposed test case.
type Suggestion struct {
	ID        int    `json:"id" yaml:"id" mapstructure:"id" validate:"required,min=1"`
	Summary   string `json:"summary" yaml:"summary" mapstructure:"summary" validate:"required"`
	Framework string `json:"framework" yaml:"framework" mapstructure:"framework"`

	// Synthesized marks template suggestions built without any remote call.
	Synthesized bool `json:"synthesized,omitempty" yaml:"synthesized,omitempty" mapstructure:"-"`
}

// CodeResult is generated test code. Every field is non-empty.
type CodeResult struct {
	TestCode  string `json:"test_code" yaml:"test_code" mapstructure:"test_code" validate:"required"`
	Filename  string `json:"filename" yaml:"filename" mapstructure:"suggested_filename" validate:"required"`
	Language  string `json:"language" yaml:"language" mapstructure:"language" validate:"required"`
	Framework string `json:"framework" yaml:"framework" mapstructure:"framework" validate:"required"`
}

// SuggestionsResult is the outcome of RequestSuggestions.
type SuggestionsResult struct {
	Suggestions []Suggestion `json:"suggestions" yaml:"suggestions"`
	// Strategy names the strategy that produced the suggestions.
	Strategy string `json:"strategy" yaml:"strategy"`
}

// Synthesized reports whether the suggestions came from local templates.
func (r SuggestionsResult) Synthesized() bool {
	return r.Strategy == StrategySynthesis
}
