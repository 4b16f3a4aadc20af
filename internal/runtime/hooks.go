package runtime

import (
	"context"
	"time"

	"github.com/aretw0/turing/pkg/domain"
)

func (e *Engine) emitStart(ctx context.Context, input, state string) {
	if e.hooks.OnStart == nil {
		return
	}
	e.hooks.OnStart(ctx, &domain.RunEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventRunStart},
		Input:     input,
		State:     state,
	})
}

func (e *Engine) emitStep(ctx context.Context, ev domain.StepEvent) {
	if e.hooks.OnStep == nil {
		return
	}
	ev.EventBase = domain.EventBase{Timestamp: time.Now(), Type: domain.EventStep}
	e.hooks.OnStep(ctx, &ev)
}

func (e *Engine) emitHalt(ctx context.Context, input string, trace *domain.Trace) {
	if e.hooks.OnHalt == nil {
		return
	}
	final, _ := trace.Final()
	e.hooks.OnHalt(ctx, &domain.RunEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventRunHalt},
		Input:     input,
		State:     final.State,
		Steps:     trace.Steps(),
		Outcome:   trace.Outcome(e.def.Accept(), e.def.Reject()),
	})
}
