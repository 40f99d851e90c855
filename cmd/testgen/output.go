package main

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

const (
	outputText = "text"
	outputYAML = "yaml"
	outputJSON = "json"
)

// write prints v in the selected format. text renders the human view.
func (a *app) write(v any, text func(w io.Writer) error) error {
	w := a.deps.Stdout
	switch a.output {
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return text(w)
	}
}
