package pipeline

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type suggestionsPayload struct {
	Framework   string       `mapstructure:"framework"`
	Suggestions []Suggestion `mapstructure:"suggestions" validate:"required,min=1,dive"`
}

// decode maps a loosely typed payload onto out. Numbers given as strings
// are accepted.
func decode(payload any, out any) error {
	if payload == nil {
		return errors.New("empty payload")
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(payload)
}

// validateSuggestions returns a validator for suggestion payloads.
// Items without a framework inherit the envelope's, then fallback.
func validateSuggestions(fallback string) func(any) ([]Suggestion, error) {
	return func(payload any) ([]Suggestion, error) {
		var p suggestionsPayload
		if err := decode(payload, &p); err != nil {
			return nil, fmt.Errorf("decode suggestions: %w", err)
		}
		if err := validate.Struct(p); err != nil {
			return nil, err
		}

		framework := p.Framework
		if framework == "" {
			framework = fallback
		}
		out := make([]Suggestion, len(p.Suggestions))
		for i, s := range p.Suggestions {
			if s.Framework == "" {
				s.Framework = framework
			}
			out[i] = s
		}
		return out, nil
	}
}

// validateCode checks that all four code fields are present.
func validateCode(payload any) (*CodeResult, error) {
	var c CodeResult
	if err := decode(payload, &c); err != nil {
		return nil, fmt.Errorf("decode code: %w", err)
	}
	if err := validate.Struct(c); err != nil {
		return nil, err
	}
	return &c, nil
}
