package tracelettest

import (
	tracelet "github.com/tracelet/tracelet-go"
)

// TraceID is the trace id used by the span factories.
const TraceID = "tr-test"

// NewSpan builds a span with an ordinal-encoded id, outside any Recorder.
func NewSpan(ordinal uint64, name string) *tracelet.Span {
	return &tracelet.Span{
		SpanID:  tracelet.EncodeSpanID(ordinal),
		TraceID: TraceID,
		Name:    name,
	}
}

// Spans builds an ordered span collection from names, assigning ordinals in
// order.
func Spans(names ...string) []*tracelet.Span {
	spans := make([]*tracelet.Span, len(names))
	for i, name := range names {
		spans[i] = NewSpan(uint64(i), name)
	}
	return spans
}

// SpanWithUsage builds a span carrying the given token-usage record.
func SpanWithUsage(ordinal uint64, name string, usage tracelet.Usage) *tracelet.Span {
	span := NewSpan(ordinal, name)
	span.SetAttribute(tracelet.AttrChatUsage, usage)
	return span
}
