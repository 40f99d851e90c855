package pipeline

import (
	"context"
	"fmt"
	"path"
)

// StrategySynthesis names the local template strategy.
const StrategySynthesis = "local-synthesis"

var synthesisTemplates = map[string][]string{
	"pytest": {
		"Test function return values and data types",
		"Test exception handling and error cases",
		"Test input validation and boundary conditions",
		"Test function behavior with edge cases and null values",
		"Test integration with external dependencies",
	},
	"jest": {
		"Test component rendering and props",
		"Test user interactions and event handlers",
		"Test state management and updates",
		"Test API calls and async operations",
		"Test error boundaries and error handling",
	},
	"junit": {
		"Test method functionality and return values",
		"Test exception handling and error scenarios",
		"Test input validation and parameter checking",
		"Test class initialization and object state",
		"Test integration with external services",
	},
}

var defaultTemplates = []string{
	"Test core functionality and expected behavior",
	"Test error handling and exception scenarios",
	"Test input validation and data processing",
	"Test edge cases and boundary conditions",
	"Test performance and resource usage",
}

// Synthesize builds template suggestions for primaryFile. It performs no
// I/O and always returns the same five suggestions for the same input.
func Synthesize(primaryFile, framework string) []Suggestion {
	templates, ok := synthesisTemplates[framework]
	if !ok {
		templates = defaultTemplates
	}

	name := "the selected code"
	if primaryFile != "" {
		name = path.Base(primaryFile)
	}

	out := make([]Suggestion, len(templates))
	for i, t := range templates {
		out[i] = Suggestion{
			ID:          i + 1,
			Summary:     fmt.Sprintf("%s in %s", t, name),
			Framework:   framework,
			Synthesized: true,
		}
	}
	return out
}

func synthesisStrategy(req Request) Strategy[[]Suggestion] {
	return Strategy[[]Suggestion]{
		Name: StrategySynthesis,
		Invoke: func(ctx context.Context) (any, error) {
			return Synthesize(req.Primary(), req.Framework), nil
		},
		Validate: func(payload any) ([]Suggestion, error) {
			return payload.([]Suggestion), nil
		},
	}
}
