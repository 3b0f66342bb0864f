package tracelet

import (
	"time"
)

// Attributes is the attribute mapping attached to a span. Keys are reserved
// constants (see AttrSpanType and friends); values are JSON-like trees.
type Attributes map[string]any

// NewAttributes creates a new empty Attributes instance.
func NewAttributes() Attributes {
	return make(Attributes)
}

// Get retrieves a value from the attributes.
// Returns the value and true if found, nil and false otherwise.
func (a Attributes) Get(key string) (any, bool) {
	v, ok := a[key]
	return v, ok
}

// GetString retrieves a string value from the attributes.
func (a Attributes) GetString(key string) (string, bool) {
	v, ok := a[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Span is a single recorded unit of execution (one function call) within a
// trace. The SpanID is assigned once at creation and never changes; Name is
// rewritten at most once, by DeduplicateSpanNames during finalization.
//
// While its trace is open a span is exclusively owned by the call that
// produced it. Once the trace is finalized, spans are immutable value
// records and safe to share.
type Span struct {
	// SpanID is the span's identifier, unique within its trace. It is an
	// already-encoded string (see EncodeSpanID); this package never
	// re-derives it, only compares it.
	SpanID string `json:"span_id"`

	// TraceID identifies the owning trace.
	TraceID string `json:"trace_id"`

	// Name is the human-readable label for the span.
	Name string `json:"name"`

	// StartTime is when the span was opened.
	StartTime time.Time `json:"start_time"`

	// EndTime is when the span was closed. Zero while the span is open.
	EndTime time.Time `json:"end_time,omitempty"`

	// Attributes holds the span's attribute mapping.
	Attributes Attributes `json:"attributes,omitempty"`
}

// GetAttribute returns the attribute stored under key, or nil if absent.
func (s *Span) GetAttribute(key string) any {
	if s.Attributes == nil {
		return nil
	}
	return s.Attributes[key]
}

// SetAttribute stores value under key, replacing any previous value.
func (s *Span) SetAttribute(key string, value any) {
	if s.Attributes == nil {
		s.Attributes = NewAttributes()
	}
	s.Attributes[key] = value
}

// Type returns the span's SpanType classification, or SpanTypeUnknown if the
// attribute was never set.
func (s *Span) Type() SpanType {
	switch v := s.GetAttribute(AttrSpanType).(type) {
	case SpanType:
		return v
	case string:
		return SpanType(v)
	default:
		return SpanTypeUnknown
	}
}

// Ended reports whether the span has been closed.
func (s *Span) Ended() bool {
	return !s.EndTime.IsZero()
}

// Trace is an ordered collection of spans representing one end-to-end
// recorded execution. Span order is insertion order and is preserved through
// every normalization pass.
type Trace struct {
	// TraceID identifies the trace.
	TraceID string `json:"trace_id"`

	// Spans is the ordered span sequence, creation order first.
	Spans []*Span `json:"spans"`

	// Usage is the trace-level token-usage total, stamped at finalization.
	// Nil until Finalize runs, and omitted when no span reported usage.
	Usage Usage `json:"usage,omitempty"`
}

// SpanNames returns the span names in trace order.
// Mostly useful in tests and diagnostics.
func (t *Trace) SpanNames() []string {
	names := make([]string, len(t.Spans))
	for i, s := range t.Spans {
		names[i] = s.Name
	}
	return names
}
