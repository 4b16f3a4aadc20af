package turing

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
)

// Engine is the high-level entry point for the turing library.
// It wraps the parser and the internal runtime behind a simplified API for consumers.
type Engine struct {
	runtime        *runtime.Engine
	def            *machine.Definition
	input          string
	variant        domain.Variant
	maxSteps       int
	allowStay      bool
	implicitReject bool
	leftBoundary   int
	hooks          domain.LifecycleHooks
	logger         *slog.Logger
	Name           string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMaxSteps sets the step budget. Zero means no limit.
func WithMaxSteps(n int) Option {
	return func(e *Engine) {
		e.maxSteps = n
	}
}

// WithAllowStay permits the S move, both in the description and at run time.
func WithAllowStay(allow bool) Option {
	return func(e *Engine) {
		e.allowStay = allow
	}
}

// WithImplicitReject controls whether an undefined transition sends the run to the rejecting state (default true).
func WithImplicitReject(enabled bool) Option {
	return func(e *Engine) {
		e.implicitReject = enabled
	}
}

// WithVariant selects the configuration notation of Result.Lines.
func WithVariant(v domain.Variant) Option {
	return func(e *Engine) {
		e.variant = v
	}
}

// WithLeftBoundary sets the index of the leftmost tape cell for parsed machines.
func WithLeftBoundary(idx int) Option {
	return func(e *Engine) {
		e.leftBoundary = idx
	}
}

func newEngine(opts []Option) *Engine {
	eng := &Engine{
		implicitReject: true,
		leftBoundary:   domain.DefaultLeftBoundary,
	}
	for _, opt := range opts {
		opt(eng)
	}
	// Ensure logger is initialized (so we don't pass nil to runtime)
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return eng
}

func (e *Engine) parser() *compiler.Parser {
	return compiler.NewParser(
		compiler.WithAllowStay(e.allowStay),
		compiler.WithLeftBoundary(e.leftBoundary),
		compiler.WithLogger(e.logger),
	)
}

// Load parses the machine description at path.
func Load(path string, opts ...Option) (*Engine, error) {
	eng := newEngine(opts)

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	eng.Name = strings.TrimSuffix(filepath.Base(absPath), filepath.Ext(absPath))
	eng.logger = eng.logger.With("machine", eng.Name)

	def, input, err := eng.parser().ParseFile(absPath)
	if err != nil {
		return nil, err
	}
	return eng.init(def, input), nil
}

// Parse reads a machine description from r.
func Parse(r io.Reader, opts ...Option) (*Engine, error) {
	eng := newEngine(opts)
	def, input, err := eng.parser().Parse(r)
	if err != nil {
		return nil, err
	}
	return eng.init(def, input), nil
}

// FromDefinition wraps an already validated machine, for example one built with pkg/dsl.
// WithLeftBoundary does not apply here: the definition carries its own boundary.
func FromDefinition(def *machine.Definition, input string, opts ...Option) (*Engine, error) {
	if def == nil {
		return nil, fmt.Errorf("machine definition is required")
	}
	if def.AllowStay() {
		opts = append([]Option{WithAllowStay(true)}, opts...)
	}
	return newEngine(opts).init(def, input), nil
}

func (e *Engine) init(def *machine.Definition, input string) *Engine {
	e.def = def
	e.input = input
	e.runtime = runtime.NewEngine(def,
		runtime.WithMaxSteps(e.maxSteps),
		runtime.WithAllowStay(e.allowStay),
		runtime.WithImplicitReject(e.implicitReject),
		runtime.WithLogger(e.logger),
		runtime.WithLifecycleHooks(e.hooks),
	)
	return e
}

// Result is the trace of one run together with its classification.
type Result struct {
	Trace   *domain.Trace
	Outcome domain.Outcome
	Variant domain.Variant
}

// Lines renders the trace in the engine's configuration notation.
func (r *Result) Lines() []string {
	return r.Trace.Lines(r.Variant)
}

// Final returns the last configuration of the run.
func (r *Result) Final() domain.Configuration {
	c, _ := r.Trace.Final()
	return c
}

// Steps is the number of transitions applied.
func (r *Result) Steps() int {
	return r.Trace.Steps()
}

// Run simulates the machine on the input string of its description.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	return e.Simulate(ctx, e.input)
}

// Simulate runs the machine on input.
func (e *Engine) Simulate(ctx context.Context, input string) (*Result, error) {
	trace, err := e.runtime.Simulate(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("simulation failed: %w", err)
	}
	return &Result{
		Trace:   trace,
		Outcome: trace.Outcome(e.def.Accept(), e.def.Reject()),
		Variant: e.variant,
	}, nil
}

// Machine returns the validated definition.
func (e *Engine) Machine() *machine.Definition {
	return e.def
}

// Input returns the input string declared by the description ("" when absent).
func (e *Engine) Input() string {
	return e.input
}

// DOT renders the transition function as Graphviz.
func (e *Engine) DOT() string {
	return graph.GenerateDOT(e.def)
}

// Mermaid renders the transition function as a Mermaid flowchart.
// When res is not nil, visited states and the final state are highlighted.
func (e *Engine) Mermaid(res *Result) string {
	if res == nil {
		return graph.GenerateMermaid(e.def, nil)
	}
	return graph.GenerateMermaid(e.def, &graph.GraphOverlay{
		VisitedStates: res.Trace.VisitedStates(),
		FinalState:    res.Final().State,
	})
}
