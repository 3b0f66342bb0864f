package tracelet

import (
	"reflect"
	"testing"
)

func spanWithUsage(ordinal uint64, usage any) *Span {
	span := &Span{
		SpanID:  EncodeSpanID(ordinal),
		TraceID: "tr-123",
		Name:    "span",
	}
	if usage != nil {
		span.SetAttribute(AttrChatUsage, usage)
	}
	return span
}

func TestAggregateUsage(t *testing.T) {
	spans := []*Span{
		spanWithUsage(0, Usage{
			UsageInputTokens:  10,
			UsageOutputTokens: 20,
			UsageTotalTokens:  30,
		}),
		spanWithUsage(1, Usage{
			UsageOutputTokens: 15,
			UsageTotalTokens:  15,
		}),
		spanWithUsage(2, Usage{
			UsageInputTokens:  5,
			UsageOutputTokens: 10,
			UsageTotalTokens:  15,
		}),
	}

	got := AggregateUsage(spans)
	want := Usage{
		UsageInputTokens:  15,
		UsageOutputTokens: 45,
		UsageTotalTokens:  60,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AggregateUsage() = %v, want %v", got, want)
	}
}

func TestAggregateUsage_OmitsGloballyAbsentKeys(t *testing.T) {
	spans := []*Span{
		spanWithUsage(0, Usage{UsageOutputTokens: 7}),
		spanWithUsage(1, Usage{UsageOutputTokens: 3}),
	}

	got := AggregateUsage(spans)
	want := Usage{UsageOutputTokens: 10}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AggregateUsage() = %v, want %v", got, want)
	}
	if _, ok := got[UsageInputTokens]; ok {
		t.Error("input_tokens materialized despite no span reporting it")
	}
	if _, ok := got[UsageTotalTokens]; ok {
		t.Error("total_tokens materialized despite no span reporting it")
	}
}

func TestAggregateUsage_NoUsage(t *testing.T) {
	spans := []*Span{spanWithUsage(0, nil), spanWithUsage(1, nil)}

	if got := AggregateUsage(spans); got != nil {
		t.Errorf("AggregateUsage() = %v, want nil", got)
	}
}

func TestAggregateUsage_ZeroIsReported(t *testing.T) {
	// A reported zero count is not the same as an absent key.
	spans := []*Span{
		spanWithUsage(0, Usage{UsageInputTokens: 0}),
	}

	got := AggregateUsage(spans)
	if v, ok := got[UsageInputTokens]; !ok || v != 0 {
		t.Errorf("AggregateUsage()[input_tokens] = %v, %v; want 0, true", v, ok)
	}
}

func TestAggregateUsage_JSONRoundTrippedRecord(t *testing.T) {
	// Records that passed through JSON arrive as map[string]any with
	// float64 counts.
	spans := []*Span{
		spanWithUsage(0, map[string]any{
			UsageInputTokens:  float64(10),
			UsageOutputTokens: float64(20),
		}),
		spanWithUsage(1, Usage{UsageInputTokens: 5}),
	}

	got := AggregateUsage(spans)
	want := Usage{UsageInputTokens: 15, UsageOutputTokens: 20}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AggregateUsage() = %v, want %v", got, want)
	}
}

func TestAggregateUsage_MalformedValuesTreatedAsAbsent(t *testing.T) {
	tests := []struct {
		name  string
		usage any
		want  Usage
	}{
		{
			name:  "non-map attribute",
			usage: "not a usage record",
			want:  nil,
		},
		{
			name:  "non-numeric count",
			usage: map[string]any{UsageInputTokens: "ten"},
			want:  nil,
		},
		{
			name:  "fractional count",
			usage: map[string]any{UsageInputTokens: 1.5},
			want:  nil,
		},
		{
			name:  "negative count",
			usage: Usage{UsageInputTokens: -3},
			want:  nil,
		},
		{
			name: "malformed key alongside a valid one",
			usage: map[string]any{
				UsageInputTokens:  "ten",
				UsageOutputTokens: float64(4),
			},
			want: Usage{UsageOutputTokens: 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AggregateUsage([]*Span{spanWithUsage(0, tt.usage)})
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("AggregateUsage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAggregateUsage_UnknownKeysIgnored(t *testing.T) {
	spans := []*Span{
		spanWithUsage(0, Usage{
			UsageInputTokens: 10,
			"cache_tokens":   99,
		}),
	}

	got := AggregateUsage(spans)
	want := Usage{UsageInputTokens: 10}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AggregateUsage() = %v, want %v", got, want)
	}
}
