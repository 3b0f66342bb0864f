package tracelet

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Recorder is an in-memory span/trace store. It creates spans with
// deterministic ordinal-encoded ids, tags them with the ambient request id,
// snapshots call inputs, and runs the finalization passes (name
// deduplication, usage aggregation) once a trace is complete.
//
// Recorder is safe for concurrent use. A single trace's spans may be
// produced from multiple goroutines, but Finalize must only be called after
// all span-producing work for that trace has completed.
type Recorder struct {
	cfg      Config
	logger   StructuredLogger
	registry *SignatureRegistry

	mu     sync.Mutex
	traces map[string]*traceState
}

// traceState is the recorder's bookkeeping for one open trace.
type traceState struct {
	trace     *Trace
	spansByID map[string]*Span
	next      uint64 // next span ordinal
	finalized bool
}

// NewRecorder creates a recorder with the given options.
func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{
		logger:   NopLogger{},
		registry: defaultRegistry,
		traces:   make(map[string]*traceState),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.cfg.MaxSpansPerTrace <= 0 {
		r.cfg.MaxSpansPerTrace = DefaultMaxSpansPerTrace
	}
	return r
}

// StartTrace opens a new trace and returns it. The returned Trace is owned
// by the recorder until Finalize.
func (r *Recorder) StartTrace() *Trace {
	trace := &Trace{TraceID: uuid.NewString()}

	r.mu.Lock()
	r.traces[trace.TraceID] = &traceState{
		trace:     trace,
		spansByID: make(map[string]*Span),
	}
	r.mu.Unlock()

	r.logger.Debug("trace started", "trace_id", trace.TraceID)
	return trace
}

// StartSpan opens a new span within a trace. The span id is encoded from the
// trace's creation ordinal and never changes. If ctx carries a prediction
// context whose evaluation flag matches the recorder's mode, the resolved
// request id is attached under AttrRequestID; a missing context just leaves
// the span untagged.
func (r *Recorder) StartSpan(ctx context.Context, traceID, name string, spanType SpanType) (*Span, error) {
	r.mu.Lock()
	state, ok := r.traces[traceID]
	if !ok {
		r.mu.Unlock()
		return nil, ErrTraceNotFound
	}
	if state.finalized {
		r.mu.Unlock()
		return nil, ErrTraceFinalized
	}
	if len(state.trace.Spans) >= r.cfg.MaxSpansPerTrace {
		r.mu.Unlock()
		r.logger.Warn("span limit reached, dropping span",
			"trace_id", traceID, "name", name, "limit", r.cfg.MaxSpansPerTrace)
		return nil, ErrSpanLimit
	}

	span := &Span{
		SpanID:    EncodeSpanID(state.next),
		TraceID:   traceID,
		Name:      name,
		StartTime: time.Now(),
	}
	state.next++
	span.SetAttribute(AttrSpanType, spanType)
	state.trace.Spans = append(state.trace.Spans, span)
	state.spansByID[span.SpanID] = span
	r.mu.Unlock()

	if id := MaybeRequestID(ctx, r.cfg.Evaluate); id != "" {
		span.SetAttribute(AttrRequestID, id)
	}

	r.logger.Debug("span started",
		"trace_id", traceID, "span_id", span.SpanID, "name", name, "type", spanType)
	return span, nil
}

// StartCallSpan opens a span for an instrumented function call, snapshotting
// the call-site arguments against fn's registered signature. When the shape
// was never registered, or binding fails, the span is recorded without an
// input snapshot; that is not an error.
func (r *Recorder) StartCallSpan(ctx context.Context, traceID, name string, spanType SpanType,
	fn any, args []any, kwargs map[string]any) (*Span, error) {

	span, err := r.StartSpan(ctx, traceID, name, spanType)
	if err != nil {
		return nil, err
	}
	if inputs := r.registry.CaptureInputs(fn, args, kwargs); inputs != nil {
		span.SetAttribute(AttrSpanInputs, inputs)
	} else {
		r.logger.Debug("no input snapshot for span",
			"trace_id", traceID, "span_id", span.SpanID)
	}
	return span, nil
}

// EndSpan closes a span. Closing an already-closed span is an error; the
// span's attributes and name are left as they are either way.
func (r *Recorder) EndSpan(traceID, spanID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.traces[traceID]
	if !ok {
		return ErrTraceNotFound
	}
	span, ok := state.spansByID[spanID]
	if !ok {
		return ErrSpanNotFound
	}
	if span.Ended() {
		return ErrSpanEnded
	}
	span.EndTime = time.Now()
	return nil
}

// Finalize completes a trace: it deduplicates span names in place,
// aggregates the per-span usage records into the trace-level total, and
// detaches the trace from the recorder. After Finalize the trace and its
// spans are immutable value records.
//
// Spans still open at finalization are closed with the finalization time and
// logged; an incomplete trace is still a useful trace.
func (r *Recorder) Finalize(traceID string) (*Trace, error) {
	r.mu.Lock()
	state, ok := r.traces[traceID]
	if !ok {
		r.mu.Unlock()
		return nil, ErrTraceNotFound
	}
	if state.finalized {
		r.mu.Unlock()
		return nil, ErrTraceFinalized
	}
	state.finalized = true
	trace := state.trace
	delete(r.traces, traceID)
	r.mu.Unlock()

	now := time.Now()
	for _, span := range trace.Spans {
		if !span.Ended() {
			r.logger.Warn("span still open at finalization",
				"trace_id", traceID, "span_id", span.SpanID, "name", span.Name)
			span.EndTime = now
		}
	}

	DeduplicateSpanNames(trace.Spans)
	trace.Usage = AggregateUsage(trace.Spans)

	r.logger.Debug("trace finalized",
		"trace_id", traceID, "spans", len(trace.Spans))
	return trace, nil
}

// GetTrace returns an open (not yet finalized) trace by id.
func (r *Recorder) GetTrace(traceID string) (*Trace, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	state, ok := r.traces[traceID]
	if !ok {
		return nil, false
	}
	return state.trace, true
}

// OpenTraces returns the number of traces not yet finalized.
func (r *Recorder) OpenTraces() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.traces)
}
