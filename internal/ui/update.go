package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Cyclone1070/testgen/internal/framework"
	"github.com/Cyclone1070/testgen/internal/pipeline"
	"github.com/Cyclone1070/testgen/internal/pullrequest"
	"github.com/Cyclone1070/testgen/internal/selection"
	"github.com/Cyclone1070/testgen/internal/session"
	"github.com/Cyclone1070/testgen/internal/ui/models"
	"github.com/Cyclone1070/testgen/internal/ui/services"
	"github.com/Cyclone1070/testgen/internal/ui/views"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// BubbleTeaModel implements tea.Model
type BubbleTeaModel struct {
	state models.State

	// Dependencies
	ctx       context.Context
	inferrer  FrameworkInferrer
	generator Generator
	opener    PullRequestOpener
	renderer  services.MarkdownRenderer
	logger    *zap.Logger

	tickInterval time.Duration
	inferTimeout time.Duration
}

// SpinnerFactory creates a new spinner
type SpinnerFactory func() spinner.Model

// Internal messages
type tickMsg time.Time

type frameworkMsg struct {
	ticket   session.Ticket
	decision framework.Decision
}

type suggestionsMsg struct {
	ticket session.Ticket
	result pipeline.SuggestionsResult
}

type codeMsg struct {
	ticket session.Ticket
	code   *pipeline.CodeResult
	err    error
}

type pullRequestMsg struct {
	ticket session.Ticket
	result *pullrequest.Result
	err    error
}

// View renders the UI
func (m BubbleTeaModel) View() string {
	return views.RenderRoot(m.state)
}

// Init starts the animation and, when a selection is already present,
// framework inference.
func (m BubbleTeaModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.state.Spinner.Tick, m.tick()}
	if _, ok := m.state.Session.Primary(); ok {
		_, cmd := m.inferFramework()
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m BubbleTeaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.state.Viewport.Width = msg.Width*2/3 - 8
		m.state.Viewport.Height = (msg.Height-5)*2/3 - 2
		m.refreshCode()
		return m, nil

	case tickMsg:
		m.state.DotCount = (m.state.DotCount + 1) % 4
		return m, m.tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.state.Spinner, cmd = m.state.Spinner.Update(msg)
		return m, cmd

	case frameworkMsg:
		followUp, err := m.state.Session.ApplyFramework(msg.ticket, msg.decision)
		if m.discarded(err, "framework") {
			// The selection moved while inference ran; infer again for it.
			if _, ok := m.state.Session.Primary(); ok && errors.Is(err, session.ErrStaleResult) {
				return m.inferFramework()
			}
			return m, nil
		}
		m.setStatus(models.PhaseDone, fmt.Sprintf("Framework: %s", msg.decision.Tag))
		if followUp {
			return m.requestSuggestions()
		}
		return m, nil

	case suggestionsMsg:
		err := m.state.Session.ApplySuggestions(msg.ticket, msg.result)
		if m.discarded(err, "suggestions") {
			return m, nil
		}
		m.state.SuggestionCursor = 0
		m.state.Focus = models.FocusSuggestions
		m.setStatus(models.PhaseDone, fmt.Sprintf("%d suggestions", len(msg.result.Suggestions)))
		return m, nil

	case codeMsg:
		err := m.state.Session.ApplyCode(msg.ticket, msg.code, msg.err)
		if m.discarded(err, "code") {
			return m, nil
		}
		if msg.err != nil {
			m.setStatus(models.PhaseError, pipeline.UserMessage(msg.err))
			return m, nil
		}
		m.state.Focus = models.FocusCode
		m.refreshCode()
		m.setStatus(models.PhaseDone, "Generated "+msg.code.Filename)
		return m, nil

	case pullRequestMsg:
		err := m.state.Session.CompletePullRequest(msg.ticket, msg.err)
		if m.discarded(err, "pull request") {
			return m, nil
		}
		if msg.err != nil {
			m.setStatus(models.PhaseError, pipeline.UserMessage(msg.err))
			return m, nil
		}
		m.state.PullRequestURL = msg.result.URL
		m.setStatus(models.PhaseDone, fmt.Sprintf("Opened pull request #%d", msg.result.Number))
		return m, nil
	}

	return m, nil
}

// discarded reports whether a result was dropped because its context changed.
func (m *BubbleTeaModel) discarded(err error, what string) bool {
	if err == nil {
		return false
	}
	m.logger.Debug("discarding result", zap.String("action", what), zap.Error(err))
	if errors.Is(err, session.ErrStaleResult) {
		m.setStatus(models.PhaseReady, "")
	}
	return true
}

// handleKeyPress handles keyboard input
func (m BubbleTeaModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "tab":
		m.state.Focus = (m.state.Focus + 1) % 3
		return m, nil

	case "up", "k":
		if m.state.Focus != models.FocusCode {
			m.moveCursor(-1)
			return m, nil
		}

	case "down", "j":
		if m.state.Focus != models.FocusCode {
			m.moveCursor(1)
			return m, nil
		}

	case " ":
		if m.state.Focus == models.FocusTree {
			return m.toggleAtCursor()
		}
		return m, nil

	case "enter":
		switch m.state.Focus {
		case models.FocusTree:
			return m.toggleAtCursor()
		case models.FocusSuggestions:
			return m.requestCode()
		}
		return m, nil

	case "a":
		before, _ := m.state.Session.Primary()
		m.state.Session.SelectAll()
		return m.afterSelectionChange(before)

	case "f":
		return m.inferFramework()

	case "g":
		return m.requestSuggestions()

	case "d":
		m.state.ShowDiff = !m.state.ShowDiff
		m.refreshCode()
		return m, nil

	case "p":
		return m.openPullRequest()
	}

	if m.state.Focus == models.FocusCode {
		var cmd tea.Cmd
		m.state.Viewport, cmd = m.state.Viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *BubbleTeaModel) moveCursor(delta int) {
	switch m.state.Focus {
	case models.FocusTree:
		n := len(m.state.Session.Tree().Visible())
		m.state.TreeCursor = clamp(m.state.TreeCursor+delta, n)
	case models.FocusSuggestions:
		n := len(m.state.Session.Suggestions().Suggestions)
		m.state.SuggestionCursor = clamp(m.state.SuggestionCursor+delta, n)
	}
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

func (m BubbleTeaModel) toggleAtCursor() (tea.Model, tea.Cmd) {
	nodes := m.state.Session.Tree().Visible()
	if m.state.TreeCursor >= len(nodes) {
		return m, nil
	}
	node := nodes[m.state.TreeCursor]
	if node.IsDir() {
		m.state.Session.Tree().Toggle(node.Path)
		return m, nil
	}

	before, _ := m.state.Session.Primary()
	if err := m.state.Session.Toggle(node.Path); err != nil {
		switch {
		case errors.Is(err, selection.ErrSelectionLimit):
			m.setStatus(models.PhaseError, fmt.Sprintf("You can select at most %d files", m.state.Session.MaxSelect()))
		case errors.Is(err, selection.ErrWholeRepository):
			m.setStatus(models.PhaseError, "Whole repository mode: selection follows the file list")
		default:
			m.setStatus(models.PhaseError, err.Error())
		}
		return m, nil
	}
	return m.afterSelectionChange(before)
}

// afterSelectionChange re-runs inference when the primary file changed.
func (m BubbleTeaModel) afterSelectionChange(before string) (tea.Model, tea.Cmd) {
	after, ok := m.state.Session.Primary()
	if !ok || after == before {
		return m, nil
	}
	return m.inferFramework()
}

func (m BubbleTeaModel) inferFramework() (tea.Model, tea.Cmd) {
	ticket, err := m.state.Session.Begin(session.ActionFramework)
	if err != nil {
		return m, nil
	}
	m.setStatus(models.PhaseWorking, "Detecting framework")
	in := m.state.Session.FrameworkInput()
	ctx, inferrer, timeout := m.ctx, m.inferrer, m.inferTimeout
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return frameworkMsg{ticket: ticket, decision: inferrer.Infer(ctx, in)}
	}
}

func (m BubbleTeaModel) requestSuggestions() (tea.Model, tea.Cmd) {
	if len(m.state.Session.Selected()) == 0 {
		m.setStatus(models.PhaseError, "Select at least one file")
		return m, nil
	}
	if _, ok := m.state.Session.Framework(); !ok {
		return m.inferFramework()
	}
	ticket, err := m.state.Session.Begin(session.ActionSuggestions)
	if err != nil {
		return m, nil
	}
	m.setStatus(models.PhaseWorking, "Generating suggestions")
	req := m.state.Session.Request()
	ctx, generator := m.ctx, m.generator
	return m, func() tea.Msg {
		return suggestionsMsg{ticket: ticket, result: generator.RequestSuggestions(ctx, req)}
	}
}

func (m BubbleTeaModel) requestCode() (tea.Model, tea.Cmd) {
	suggestions := m.state.Session.Suggestions().Suggestions
	if m.state.SuggestionCursor >= len(suggestions) {
		return m, nil
	}
	m.state.Session.Choose(suggestions[m.state.SuggestionCursor].ID)
	chosen, err := m.state.Session.Chosen()
	if err != nil {
		return m, nil
	}
	ticket, err := m.state.Session.Begin(session.ActionCode)
	if err != nil {
		return m, nil
	}
	m.setStatus(models.PhaseWorking, "Generating test code")
	req := m.state.Session.Request()
	ctx, generator := m.ctx, m.generator
	return m, func() tea.Msg {
		code, err := generator.RequestCode(ctx, req, chosen)
		return codeMsg{ticket: ticket, code: code, err: err}
	}
}

func (m BubbleTeaModel) openPullRequest() (tea.Model, tea.Cmd) {
	code := m.state.Session.Code()
	if code == nil || m.opener == nil {
		return m, nil
	}
	chosen, err := m.state.Session.Chosen()
	if err != nil {
		return m, nil
	}
	ticket, err := m.state.Session.Begin(session.ActionPullRequest)
	if err != nil {
		return m, nil
	}
	primary, _ := m.state.Session.Primary()
	draft := pullrequest.Draft{
		RepositoryFullName: m.state.Session.Repository().FullName,
		Code:               *code,
		Suggestion:         chosen,
		SourceFile:         primary,
	}
	m.setStatus(models.PhaseWorking, "Opening pull request")
	ctx, opener := m.ctx, m.opener
	return m, func() tea.Msg {
		res, err := opener.Open(ctx, draft)
		return pullRequestMsg{ticket: ticket, result: res, err: err}
	}
}

func (m *BubbleTeaModel) setStatus(phase, message string) {
	m.state.StatusPhase = phase
	m.state.StatusMessage = message
}

// refreshCode re-renders the code viewport.
func (m *BubbleTeaModel) refreshCode() {
	content := views.FormatCodeContent(m.state.Session.Code(), m.state.Viewport.Width, m.state.ShowDiff, m.renderer)
	m.state.Viewport.SetContent(content)
	m.state.Viewport.GotoTop()
}

func (m BubbleTeaModel) tick() tea.Cmd {
	return tea.Tick(m.tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// newBubbleTeaModel creates a new Bubble Tea model
func newBubbleTeaModel(ctx context.Context, st *session.State, deps Dependencies) BubbleTeaModel {
	sp := deps.SpinnerFactory()
	vp := viewport.New(80, 20)

	return BubbleTeaModel{
		state: models.State{
			Session:  st,
			Spinner:  sp,
			Viewport: vp,
		},
		ctx:          ctx,
		inferrer:     deps.Inferrer,
		generator:    deps.Generator,
		opener:       deps.Opener,
		renderer:     deps.Renderer,
		logger:       deps.Logger,
		tickInterval: deps.TickInterval,
		inferTimeout: deps.InferTimeout,
	}
}
