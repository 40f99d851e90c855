// Package selection keeps the per-repository set of files chosen for test
// generation.
package selection

// DefaultMaxSelect is the selection cap in selective mode.
const DefaultMaxSelect = 5

// Mode controls whether the selection is capped.
type Mode string

const (
	ModeSelective Mode = "selective"
	ModeAll       Mode = "all"
)

type contextState struct {
	mode       Mode
	selected   []string
	candidates map[string]bool
	order      []string
}

// Manager holds one selection per repository context key.
// It is not safe for concurrent use; callers own it from a single event loop.
type Manager struct {
	max      int
	contexts map[string]*contextState
}

// NewManager creates a Manager with the given cap. Values outside
// 1..DefaultMaxSelect fall back to DefaultMaxSelect.
func NewManager(max int) *Manager {
	if max < 1 || max > DefaultMaxSelect {
		max = DefaultMaxSelect
	}
	return &Manager{max: max, contexts: map[string]*contextState{}}
}

// Max returns the selective-mode cap.
func (m *Manager) Max() int {
	return m.max
}

func (m *Manager) state(ctx string) *contextState {
	s, ok := m.contexts[ctx]
	if !ok {
		s = &contextState{mode: ModeSelective, candidates: map[string]bool{}}
		m.contexts[ctx] = s
	}
	return s
}

// SetCandidates replaces the candidate list for ctx and prunes any selected
// path that is no longer present. In whole-repository mode the selection
// follows the new candidate list.
func (m *Manager) SetCandidates(ctx string, candidates []string) {
	s := m.state(ctx)
	s.order = append([]string(nil), candidates...)
	s.candidates = make(map[string]bool, len(candidates))
	for _, c := range candidates {
		s.candidates[c] = true
	}

	if s.mode == ModeAll {
		s.selected = dedupe(s.order)
		return
	}
	m.prune(s)
}

func (m *Manager) prune(s *contextState) {
	kept := s.selected[:0]
	for _, p := range s.selected {
		if s.candidates[p] {
			kept = append(kept, p)
		}
	}
	s.selected = kept
}

// Toggle removes path if selected, otherwise adds it. Adding beyond the cap
// returns ErrSelectionLimit and leaves the selection unchanged.
func (m *Manager) Toggle(ctx, path string) error {
	s := m.state(ctx)
	if s.mode == ModeAll {
		return ErrWholeRepository
	}

	for i, p := range s.selected {
		if p == path {
			s.selected = append(s.selected[:i], s.selected[i+1:]...)
			return nil
		}
	}

	if !s.candidates[path] {
		return ErrUnknownPath
	}
	if len(s.selected) >= m.max {
		return ErrSelectionLimit
	}
	s.selected = append(s.selected, path)
	return nil
}

// SelectAll toggles between an empty selection and the first min(cap, n)
// candidates. It never exceeds the cap.
func (m *Manager) SelectAll(ctx string) []string {
	s := m.state(ctx)
	if s.mode == ModeAll {
		return m.Selected(ctx)
	}

	if len(s.selected) > 0 {
		s.selected = nil
		return nil
	}

	candidates := dedupe(s.order)
	if len(candidates) > m.max {
		candidates = candidates[:m.max]
	}
	s.selected = candidates
	return m.Selected(ctx)
}

// SetAll switches ctx to whole-repository mode and selects every candidate.
func (m *Manager) SetAll(ctx string, candidates []string) {
	s := m.state(ctx)
	s.mode = ModeAll
	m.SetCandidates(ctx, candidates)
}

// Preselect switches ctx to selective mode with the given paths, keeping
// only known candidates and at most the cap.
func (m *Manager) Preselect(ctx string, paths []string) {
	s := m.state(ctx)
	s.mode = ModeSelective
	s.selected = nil
	for _, p := range dedupe(paths) {
		if len(s.selected) == m.max {
			break
		}
		if s.candidates[p] {
			s.selected = append(s.selected, p)
		}
	}
}

// Selected returns a copy of the selection in selection order.
func (m *Manager) Selected(ctx string) []string {
	s, ok := m.contexts[ctx]
	if !ok || len(s.selected) == 0 {
		return nil
	}
	out := make([]string, len(s.selected))
	copy(out, s.selected)
	return out
}

// IsSelected reports whether path is selected in ctx.
func (m *Manager) IsSelected(ctx, path string) bool {
	s, ok := m.contexts[ctx]
	if !ok {
		return false
	}
	for _, p := range s.selected {
		if p == path {
			return true
		}
	}
	return false
}

// Primary returns the first selected path.
func (m *Manager) Primary(ctx string) (string, bool) {
	s, ok := m.contexts[ctx]
	if !ok || len(s.selected) == 0 {
		return "", false
	}
	return s.selected[0], true
}

// Mode returns the mode of ctx. Unknown contexts are selective.
func (m *Manager) Mode(ctx string) Mode {
	if s, ok := m.contexts[ctx]; ok {
		return s.mode
	}
	return ModeSelective
}

// Candidates returns the candidate list of ctx in listing order.
func (m *Manager) Candidates(ctx string) []string {
	s, ok := m.contexts[ctx]
	if !ok {
		return nil
	}
	return append([]string(nil), s.order...)
}

// Reset forgets ctx entirely.
func (m *Manager) Reset(ctx string) {
	delete(m.contexts, ctx)
}

func dedupe(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}
