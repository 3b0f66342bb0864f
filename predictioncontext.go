package tracelet

import (
	"context"
)

// PredictionContext is the ambient metadata of one prediction request:
// the request identifier and whether the request is an evaluation run.
//
// The context lifecycle is owned by the call-interception layer: it derives
// a context.Context carrying a PredictionContext when an invocation begins
// and lets it go out of scope on completion. Nested invocations derive
// again, shadowing the outer context for their duration; this is plain
// context.WithValue scoping. No global mutable stack is involved, so
// concurrent goroutines can never observe each other's context.
type PredictionContext struct {
	// RequestID identifies the prediction request.
	RequestID string

	// IsEvaluate marks the request as an evaluation-harness run.
	IsEvaluate bool
}

// predictionContextKey is the context key for PredictionContext.
type predictionContextKey struct{}

// WithPredictionContext returns a new context carrying pc. Any
// PredictionContext on ctx is shadowed for the returned context's lifetime.
func WithPredictionContext(ctx context.Context, pc PredictionContext) context.Context {
	return context.WithValue(ctx, predictionContextKey{}, pc)
}

// PredictionContextFrom returns the innermost PredictionContext on ctx,
// if present.
func PredictionContextFrom(ctx context.Context) (PredictionContext, bool) {
	pc, ok := ctx.Value(predictionContextKey{}).(PredictionContext)
	return pc, ok
}

// MaybeRequestID resolves the ambient request ID for span tagging. It
// returns the innermost prediction context's request ID only when that
// context's IsEvaluate flag matches isEvaluate exactly; otherwise it returns
// "" even when a context is active.
//
// A nil context, or a context with no prediction context attached, resolves
// to "" as well. This is a pure read and never fails: a missing request ID
// means the trace is recorded untagged, not that recording aborts.
func MaybeRequestID(ctx context.Context, isEvaluate bool) string {
	if ctx == nil {
		return ""
	}
	pc, ok := PredictionContextFrom(ctx)
	if !ok || pc.IsEvaluate != isEvaluate {
		return ""
	}
	return pc.RequestID
}
