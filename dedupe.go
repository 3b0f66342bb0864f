package tracelet

import (
	"fmt"
)

// DeduplicateSpanNames rewrites colliding span names in place so that every
// span in the collection carries a unique name, while preserving span
// identity, order, and the relative order of spans that shared a name.
//
// A name that occurs exactly once is left untouched. A name that occurs two
// or more times is rewritten to "name_N", numbering its occurrences 1-based
// in original order:
//
//	[red, red, blue, red, green, blue]
//	  -> [red_1, red_2, blue_1, red_3, green, blue_2]
//
// The algorithm is two-pass: occurrence counts must be known for the whole
// collection before any rewrite, since a single pass cannot tell "only
// occurrence" apart from "first of several". One pass over a collection
// produces globally unique names, after which a further pass is a no-op.
//
// Callers must guarantee no concurrent mutation of the span collection while
// this runs; it is intended for the finalization pass, when the collection
// is effectively immutable input.
func DeduplicateSpanNames(spans []*Span) {
	counts := make(map[string]int, len(spans))
	for _, s := range spans {
		counts[s.Name]++
	}

	seen := make(map[string]int)
	for _, s := range spans {
		if counts[s.Name] < 2 {
			continue
		}
		seen[s.Name]++
		s.Name = fmt.Sprintf("%s_%d", s.Name, seen[s.Name])
	}
}
