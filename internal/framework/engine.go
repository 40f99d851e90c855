// Package framework decides which test framework applies to a selection.
package framework

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Provenance records which rule produced a Decision.
type Provenance string

const (
	ProvenanceRemote            Provenance = "remote"
	ProvenanceMarker            Provenance = "marker"
	ProvenanceExtensionMajority Provenance = "extension-majority"
	ProvenanceDefault           Provenance = "default"
	ProvenanceUser              Provenance = "user"
)

// Decision is a non-empty framework tag and how it was reached.
type Decision struct {
	Tag        string     `json:"framework" yaml:"framework"`
	Provenance Provenance `json:"provenance" yaml:"provenance"`
}

// Input is everything inference looks at.
type Input struct {
	PrimaryFile         string
	Candidates          []string
	Selection           []string
	RepositoryReference string
}

// classifier is the optional remote collaborator.
type classifier interface {
	Classify(ctx context.Context, primaryFile, repositoryReference string) (string, error)
}

// Engine tries the remote classifier and falls back to local rules.
type Engine struct {
	remote classifier
	logger *zap.Logger
}

// NewEngine creates an Engine. remote may be nil.
func NewEngine(remote classifier, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{remote: remote, logger: logger}
}

// Infer always returns a Decision with a non-empty tag.
func (e *Engine) Infer(ctx context.Context, in Input) Decision {
	if e.remote != nil && in.PrimaryFile != "" {
		tag, err := e.remote.Classify(ctx, in.PrimaryFile, in.RepositoryReference)
		tag = strings.ToLower(strings.TrimSpace(tag))
		switch {
		case err != nil:
			e.logger.Warn("remote framework classification failed",
				zap.String("primary_file", in.PrimaryFile), zap.Error(err))
		case tag == "":
			e.logger.Warn("remote framework classification returned no tag",
				zap.String("primary_file", in.PrimaryFile))
		default:
			return Decision{Tag: tag, Provenance: ProvenanceRemote}
		}
	}

	d := InferLocal(in)
	e.logger.Debug("framework inferred locally",
		zap.String("framework", d.Tag), zap.String("provenance", string(d.Provenance)))
	return d
}

// InferLocal resolves a framework from the listing alone. It performs no
// I/O and returns the same Decision for the same input.
//
// Precedence: end-to-end marker, marker of the primary file's language
// family (any marker when the primary language is unknown), the extension
// family of the primary file, the majority extension of the listing,
// DefaultTag.
func InferLocal(in Input) Decision {
	sig := ComputeSignal(in.Candidates, in.Selection)
	found := sig.markerTags()

	for _, m := range found {
		if m.E2E() {
			return Decision{Tag: m.Tag, Provenance: ProvenanceMarker}
		}
	}

	primary, primaryKnown := LanguageOf(in.PrimaryFile)
	for _, m := range found {
		if !primaryKnown || m.Family == primary.Family {
			return Decision{Tag: m.Tag, Provenance: ProvenanceMarker}
		}
	}

	if primaryKnown {
		return Decision{Tag: primary.Framework, Provenance: ProvenanceExtensionMajority}
	}

	if lang, ok := sig.majorityLanguage(); ok {
		return Decision{Tag: lang.Framework, Provenance: ProvenanceExtensionMajority}
	}

	return Decision{Tag: DefaultTag, Provenance: ProvenanceDefault}
}
