// Package ui is the interactive generate workbench built on Bubble Tea.
package ui

import (
	"context"
	"time"

	"github.com/Cyclone1070/testgen/internal/session"
	"github.com/Cyclone1070/testgen/internal/ui/services"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Dependencies are the services the workbench calls.
type Dependencies struct {
	Inferrer       FrameworkInferrer
	Generator      Generator
	Opener         PullRequestOpener
	Renderer       services.MarkdownRenderer
	SpinnerFactory SpinnerFactory
	Logger         *zap.Logger
	TickInterval   time.Duration
	InferTimeout   time.Duration
}

// DefaultSpinner is the spinner used when no factory is given.
func DefaultSpinner() spinner.Model {
	return spinner.New(spinner.WithSpinner(spinner.Dot))
}

func (d *Dependencies) applyDefaults() {
	if d.SpinnerFactory == nil {
		d.SpinnerFactory = DefaultSpinner
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.TickInterval <= 0 {
		d.TickInterval = 300 * time.Millisecond
	}
	if d.InferTimeout <= 0 {
		d.InferTimeout = 30 * time.Second
	}
}

// UI runs the workbench program.
type UI struct {
	program *tea.Program
}

// NewUI creates the workbench for a session.
func NewUI(ctx context.Context, st *session.State, deps Dependencies, opts ...tea.ProgramOption) *UI {
	deps.applyDefaults()
	model := newBubbleTeaModel(ctx, st, deps)
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	return &UI{program: tea.NewProgram(model, opts...)}
}

// Start runs the program until the user quits.
func (u *UI) Start() error {
	_, err := u.program.Run()
	return err
}
