package runtime

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
)

// Engine is the core state machine runner.
// It is immutable after construction and can run the same machine any number of times.
type Engine struct {
	def            *machine.Definition
	maxSteps       int
	allowStay      bool
	implicitReject bool
	logger         *slog.Logger
	hooks          domain.LifecycleHooks
}

// NewEngine creates a new engine for def.
func NewEngine(def *machine.Definition, opts ...EngineOption) *Engine {
	e := &Engine{
		def:            def,
		implicitReject: true,
		logger:         discardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Machine returns the definition the engine runs.
func (e *Engine) Machine() *machine.Definition {
	return e.def
}

// Simulate runs the machine on input and returns the trace of configurations.
// Each call owns a fresh tape. The context is handed to lifecycle hooks only.
func (e *Engine) Simulate(ctx context.Context, input string) (*domain.Trace, error) {
	if e.maxSteps < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidStepBudget, e.maxSteps)
	}

	symbols := []rune(input)
	for i, r := range symbols {
		if !e.def.InInputAlphabet(r) {
			return nil, &InputSymbolError{Symbol: r, Position: i}
		}
	}

	tape := NewTape(e.def.Blank(), e.def.LeftBoundary())
	tape.Load(symbols)

	head := e.def.LeftBoundary()
	state := e.def.Initial()

	trace := &domain.Trace{}
	emit := func(step int) {
		c := Snapshot(tape, state, head)
		c.Step = step
		trace.Configurations = append(trace.Configurations, c)
	}

	e.logger.Debug("simulation started", "input", input, "state", state, "max_steps", e.maxSteps)
	e.emitStart(ctx, input, state)
	emit(0)

	steps := 0
	for !e.def.IsHalting(state) {
		read := tape.Get(head)
		act, ok := e.def.Lookup(state, read)
		if !ok {
			if e.implicitReject {
				e.logger.Debug("undefined transition, rejecting", "state", state, "read", string(read))
				state = e.def.Reject()
				emit(steps)
			} else {
				e.logger.Debug("undefined transition, stopping", "state", state, "read", string(read))
			}
			break
		}

		tape.Set(head, act.Write)
		switch act.Move {
		case domain.Left:
			head = tape.MoveLeft(head)
		case domain.Right:
			head++
		case domain.Stay:
			if !e.allowStay {
				return nil, &StayError{State: state, Read: read, Step: steps + 1}
			}
		default:
			return nil, fmt.Errorf("step %d: %w: %q", steps+1, domain.ErrUnknownMove, act.Move.String())
		}

		from := state
		state = act.Next
		steps++
		emit(steps)

		e.logger.Debug("step", "n", steps, "from", from, "read", string(read), "to", state, "write", string(act.Write), "move", act.Move.String(), "head", head)
		e.emitStep(ctx, domain.StepEvent{
			Step: steps, From: from, To: state,
			Read: read, Write: act.Write, Move: act.Move, Head: head,
		})

		if e.maxSteps > 0 && steps >= e.maxSteps {
			trace.Truncation = &domain.Truncation{MaxSteps: e.maxSteps}
			e.logger.Debug("step limit reached", "max_steps", e.maxSteps)
			break
		}
	}

	e.logger.Debug("simulation finished", "steps", steps, "state", state)
	e.emitHalt(ctx, input, trace)
	return trace, nil
}
