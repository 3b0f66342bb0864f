package tracelet

import (
	"encoding/json"
)

// AggregateUsage merges the per-span token-usage records in a span
// collection into a trace-level total.
//
// For each known usage key (input, output, total tokens), the counts of
// every span that reports the key are summed; spans silent on a key
// contribute zero to it. A key that no span reports is omitted from the
// result entirely rather than materialized as zero; consumers rely on the
// distinction between "never measured" and "measured zero". The result key
// set is therefore a subset of the known usage keys, and nil when no span
// reported usage at all.
//
// The function is a pure, total function of the input: spans without a usage
// attribute, non-numeric counts, and negative counts are all treated as
// absent and never fail the aggregation.
func AggregateUsage(spans []*Span) Usage {
	var total Usage
	for _, span := range spans {
		record := usageRecord(span.GetAttribute(AttrChatUsage))
		if record == nil {
			continue
		}
		for _, key := range usageKeys {
			count, ok := record[key]
			if !ok {
				continue
			}
			if total == nil {
				total = make(Usage, len(usageKeys))
			}
			total[key] += count
		}
	}
	return total
}

// usageRecord coerces a span's usage attribute into a Usage record,
// dropping malformed entries. Returns nil when the attribute is absent or
// not map-shaped.
func usageRecord(v any) Usage {
	switch rec := v.(type) {
	case Usage:
		out := make(Usage, len(rec))
		for k, n := range rec {
			if n >= 0 {
				out[k] = n
			}
		}
		return out
	case map[string]int:
		out := make(Usage, len(rec))
		for k, n := range rec {
			if n >= 0 {
				out[k] = n
			}
		}
		return out
	case map[string]any:
		// Usage attributes that round-tripped through JSON arrive as
		// map[string]any with float64 counts.
		out := make(Usage, len(rec))
		for k, raw := range rec {
			if n, ok := usageCount(raw); ok {
				out[k] = n
			}
		}
		return out
	default:
		return nil
	}
}

// usageCount coerces a single usage value to a non-negative token count.
func usageCount(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, n >= 0
	case int64:
		return int(n), n >= 0
	case float64:
		// Counts are integral; reject fractional values as malformed.
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), n >= 0
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), i >= 0
	default:
		return 0, false
	}
}
