// Package session holds the working state of a generate session: the file
// tree, the selection, the framework decision and generation results. All
// mutation happens on one goroutine; remote calls carry a Ticket and their
// results are applied only if the context they were issued for still holds.
package session

import (
	"strings"

	"github.com/Cyclone1070/testgen/internal/framework"
	"github.com/Cyclone1070/testgen/internal/handoff"
	"github.com/Cyclone1070/testgen/internal/pipeline"
	"github.com/Cyclone1070/testgen/internal/repo"
	"github.com/Cyclone1070/testgen/internal/selection"
	"github.com/Cyclone1070/testgen/internal/tree"
	"github.com/google/uuid"
)

// ActionKind names an asynchronous operation.
type ActionKind string

const (
	ActionFramework   ActionKind = "framework"
	ActionSuggestions ActionKind = "suggestions"
	ActionCode        ActionKind = "code"
	ActionPullRequest ActionKind = "pull_request"
)

// Status is the lifecycle of one action.
type Status int

const (
	StatusIdle Status = iota
	StatusInFlight
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusInFlight:
		return "in flight"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Key identifies an action within a repository context.
type Key struct {
	Context string
	Action  ActionKind
}

// Ticket is issued by Begin and presented with the result.
type Ticket struct {
	ID          string
	Key         Key
	Fingerprint string
}

// State is the session container.
type State struct {
	repository    repo.Repository
	reference     string
	authenticated bool

	files     []repo.RepositoryFile
	tree      *tree.Tree
	selection *selection.Manager

	framework      framework.Decision
	frameworkReady bool
	frameworkFor   string
	autoGenerate   bool

	suggestions pipeline.SuggestionsResult
	chosen      *pipeline.Suggestion
	code        *pipeline.CodeResult

	statuses map[Key]Status
	errs     map[Key]error
	inFlight map[Key]Ticket
}

// New creates an empty State bound to a repository reference.
func New(reference string, maxSelect int) *State {
	return &State{
		reference: reference,
		tree:      tree.Build(nil),
		selection: selection.NewManager(maxSelect),
		statuses:  map[Key]Status{},
		errs:      map[Key]error{},
		inFlight:  map[Key]Ticket{},
	}
}

// FromSnapshot initialises a State from a handed-off working set. In "all"
// mode the initial selection is populated and AutoGenerate is armed.
func FromSnapshot(s *handoff.WorkingSetSnapshot, maxSelect int) *State {
	st := New(s.RepositoryReference, maxSelect)
	if s.Repository != nil {
		st.repository = *s.Repository
	}
	st.SetFiles(s.Files)

	if s.AutoGenerate() {
		if len(s.PreSelectedFiles) > 0 {
			st.selection.Preselect(st.reference, s.PreSelectedFiles)
		} else {
			st.selection.SetAll(st.reference, repo.Paths(s.Files))
		}
		st.autoGenerate = true
	}
	return st
}

// SetAuthenticated records whether a session token is available.
func (s *State) SetAuthenticated(v bool) { s.authenticated = v }

// Authenticated reports whether a session token is available.
func (s *State) Authenticated() bool { return s.authenticated }

// Reference returns the repository reference.
func (s *State) Reference() string { return s.reference }

// Repository returns repository metadata, if known.
func (s *State) Repository() repo.Repository { return s.repository }

// SetFiles replaces the listing, rebuilding the tree with the previous
// expansion state and pruning the selection.
func (s *State) SetFiles(files []repo.RepositoryFile) {
	prev := s.tree.ExpandedPaths()
	s.files = append([]repo.RepositoryFile(nil), files...)
	s.tree = tree.Build(s.files)
	s.tree.ApplyExpansion(prev)
	s.selection.SetCandidates(s.reference, repo.Paths(s.files))
}

// Files returns the listing.
func (s *State) Files() []repo.RepositoryFile { return s.files }

// Tree returns the file tree.
func (s *State) Tree() *tree.Tree { return s.tree }

// Toggle flips selection of a file.
func (s *State) Toggle(path string) error {
	return s.selection.Toggle(s.reference, path)
}

// SelectAll toggles between an empty selection and the first files up to the cap.
func (s *State) SelectAll() []string {
	return s.selection.SelectAll(s.reference)
}

// Selected returns the current selection.
func (s *State) Selected() []string { return s.selection.Selected(s.reference) }

// IsSelected reports whether path is selected.
func (s *State) IsSelected(path string) bool { return s.selection.IsSelected(s.reference, path) }

// Mode returns the selection mode.
func (s *State) Mode() selection.Mode { return s.selection.Mode(s.reference) }

// MaxSelect returns the selective-mode cap.
func (s *State) MaxSelect() int { return s.selection.Max() }

// Primary returns the first selected file.
func (s *State) Primary() (string, bool) { return s.selection.Primary(s.reference) }

// FrameworkInput builds the inference input for the current selection.
func (s *State) FrameworkInput() framework.Input {
	primary, _ := s.Primary()
	return framework.Input{
		PrimaryFile:         primary,
		Candidates:          repo.Paths(s.files),
		Selection:           s.Selected(),
		RepositoryReference: s.reference,
	}
}

// Framework returns the current decision and whether it applies to the
// current primary file. A decision made for another primary is not ready.
func (s *State) Framework() (framework.Decision, bool) {
	primary, _ := s.Primary()
	return s.framework, s.frameworkReady && s.frameworkFor == primary
}

// SetFramework overrides the framework manually for the current primary file.
func (s *State) SetFramework(tag string) {
	s.framework = framework.Decision{Tag: tag, Provenance: framework.ProvenanceUser}
	s.frameworkReady = true
	s.frameworkFor, _ = s.Primary()
}

// Request builds a generation request from the selection, capped at the
// pipeline's target limit.
func (s *State) Request() pipeline.Request {
	files := s.Selected()
	if len(files) > pipeline.MaxTargetFiles {
		files = files[:pipeline.MaxTargetFiles]
	}
	ref := s.reference
	if s.repository.FullName != "" && s.authenticated {
		ref = s.repository.FullName
	}
	return pipeline.Request{
		TargetFiles:         files,
		Framework:           s.framework.Tag,
		RepositoryReference: ref,
		Authenticated:       s.authenticated,
	}
}

// Suggestions returns the last applied suggestions.
func (s *State) Suggestions() pipeline.SuggestionsResult { return s.suggestions }

// Choose marks the suggestion that code generation will use.
func (s *State) Choose(id int) bool {
	for i := range s.suggestions.Suggestions {
		if s.suggestions.Suggestions[i].ID == id {
			c := s.suggestions.Suggestions[i]
			s.chosen = &c
			return true
		}
	}
	return false
}

// Chosen returns the chosen suggestion.
func (s *State) Chosen() (pipeline.Suggestion, error) {
	if s.chosen == nil {
		return pipeline.Suggestion{}, ErrNoSuggestion
	}
	return *s.chosen, nil
}

// Code returns generated code, or nil when absent.
func (s *State) Code() *pipeline.CodeResult { return s.code }

// Status returns the status of an action.
func (s *State) Status(action ActionKind) Status {
	return s.statuses[s.key(action)]
}

// Err returns the last error of a failed action.
func (s *State) Err(action ActionKind) error {
	return s.errs[s.key(action)]
}

func (s *State) key(action ActionKind) Key {
	return Key{Context: s.reference, Action: action}
}

// fingerprint captures what a result for action depends on.
func (s *State) fingerprint(action ActionKind) string {
	parts := []string{s.reference, strings.Join(s.Selected(), "\x00")}
	if action != ActionFramework {
		parts = append(parts, s.framework.Tag)
	}
	if action == ActionCode && s.chosen != nil {
		parts = append(parts, s.chosen.Summary)
	}
	return strings.Join(parts, "\x1f")
}

// Begin marks action as in flight and returns its ticket.
func (s *State) Begin(action ActionKind) (Ticket, error) {
	k := s.key(action)
	if s.statuses[k] == StatusInFlight {
		return Ticket{}, ErrAlreadyInFlight
	}
	t := Ticket{ID: uuid.NewString(), Key: k, Fingerprint: s.fingerprint(action)}
	s.inFlight[k] = t
	s.statuses[k] = StatusInFlight
	delete(s.errs, k)
	return t, nil
}

// finish closes ticket t. It reports ErrStaleResult when the context has
// changed since Begin, leaving the action idle.
func (s *State) finish(t Ticket, err error) error {
	cur, ok := s.inFlight[t.Key]
	if !ok || cur.ID != t.ID {
		return ErrUnknownTicket
	}
	delete(s.inFlight, t.Key)

	if t.Key.Context != s.reference || t.Fingerprint != s.fingerprint(t.Key.Action) {
		s.statuses[t.Key] = StatusIdle
		return ErrStaleResult
	}
	if err != nil {
		s.statuses[t.Key] = StatusFailed
		s.errs[t.Key] = err
		return nil
	}
	s.statuses[t.Key] = StatusSucceeded
	return nil
}

// Fail records a failed result for t.
func (s *State) Fail(t Ticket, err error) error {
	return s.finish(t, err)
}

// ApplyFramework applies an inference result. followUp is true exactly
// once per session in "all" mode, when suggestions must be requested
// without user input.
func (s *State) ApplyFramework(t Ticket, d framework.Decision) (followUp bool, err error) {
	if err := s.finish(t, nil); err != nil {
		return false, err
	}
	s.framework = d
	s.frameworkReady = true
	s.frameworkFor, _ = s.Primary()
	if s.autoGenerate {
		s.autoGenerate = false
		return true, nil
	}
	return false, nil
}

// ApplySuggestions applies a suggestions result and clears any chosen
// suggestion and code.
func (s *State) ApplySuggestions(t Ticket, res pipeline.SuggestionsResult) error {
	if err := s.finish(t, nil); err != nil {
		return err
	}
	s.suggestions = res
	s.chosen = nil
	s.code = nil
	return nil
}

// ApplyCode applies a code result. A failure leaves code absent.
func (s *State) ApplyCode(t Ticket, code *pipeline.CodeResult, codeErr error) error {
	if err := s.finish(t, codeErr); err != nil {
		return err
	}
	if codeErr != nil {
		s.code = nil
		return nil
	}
	s.code = code
	return nil
}

// CompletePullRequest records the outcome of opening a pull request.
func (s *State) CompletePullRequest(t Ticket, prErr error) error {
	return s.finish(t, prErr)
}
