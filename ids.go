package tracelet

import (
	"encoding/binary"

	"go.opentelemetry.io/otel/trace"
)

// EncodeSpanID deterministically encodes a span's numeric creation ordinal
// into its externally visible span_id string, using the OpenTelemetry span-id
// wire form (16 lowercase hex digits, big-endian). Distinct ordinals always
// produce distinct ids.
//
// The rest of this package only consumes already-encoded ids for ordering
// and equality; the encoding itself exists so the in-memory Recorder speaks
// the same id dialect as OTel-backed span stores.
func EncodeSpanID(ordinal uint64) string {
	var sid trace.SpanID
	binary.BigEndian.PutUint64(sid[:], ordinal)
	return sid.String()
}
