package tracelet

// JSON is an alias for any, representing any JSON value.
// Use this for attribute values that accept arbitrary JSON data.
type JSON = any

// JSONObject is an alias for map[string]any, representing a JSON object.
type JSONObject = map[string]any

// SpanType classifies what kind of operation a span records.
type SpanType string

const (
	SpanTypeUnknown   SpanType = "UNKNOWN"
	SpanTypeChain     SpanType = "CHAIN"
	SpanTypeAgent     SpanType = "AGENT"
	SpanTypeTool      SpanType = "TOOL"
	SpanTypeChatModel SpanType = "CHAT_MODEL"
	SpanTypeLLM       SpanType = "LLM"
	SpanTypeRetriever SpanType = "RETRIEVER"
	SpanTypeEmbedding SpanType = "EMBEDDING"
	SpanTypeParser    SpanType = "PARSER"
)

// String returns the string representation of the span type.
func (s SpanType) String() string { return string(s) }

// Reserved span attribute keys. These are an interoperability contract with
// trace consumers and must not change between releases.
const (
	// AttrSpanType holds the span's SpanType classification.
	AttrSpanType = "tracelet.span.type"

	// AttrSpanInputs holds the reconstructed call-argument snapshot.
	AttrSpanInputs = "tracelet.span.inputs"

	// AttrSpanOutputs holds the instrumented call's return value.
	AttrSpanOutputs = "tracelet.span.outputs"

	// AttrChatUsage holds a span's token-usage record (a Usage value).
	AttrChatUsage = "tracelet.chat.usage"

	// AttrChatMessages holds the ordered chat messages for a chat-model span.
	AttrChatMessages = "tracelet.chat.messages"

	// AttrChatTools holds the chat tool definitions for a chat-model span.
	AttrChatTools = "tracelet.chat.tools"

	// AttrRequestID holds the ambient request ID resolved for the span.
	AttrRequestID = "tracelet.span.request_id"
)

// Token-usage keys within a Usage record. The values mirror what
// model-invocation collaborators emit; absence of a key means the span did
// not report it, which is distinct from a zero count.
const (
	UsageInputTokens  = "input_tokens"
	UsageOutputTokens = "output_tokens"
	UsageTotalTokens  = "total_tokens"
)

// usageKeys is the full set of known usage keys, in presentation order.
var usageKeys = []string{UsageInputTokens, UsageOutputTokens, UsageTotalTokens}

// Usage is a token-usage record: a mapping from usage key to a non-negative
// token count. Keys never reported are omitted rather than materialized as
// zero, so consumers can tell "not measured" apart from "measured zero".
type Usage map[string]int

// InputTokens returns the input-token count and whether it was reported.
func (u Usage) InputTokens() (int, bool) {
	v, ok := u[UsageInputTokens]
	return v, ok
}

// OutputTokens returns the output-token count and whether it was reported.
func (u Usage) OutputTokens() (int, bool) {
	v, ok := u[UsageOutputTokens]
	return v, ok
}

// TotalTokens returns the total-token count and whether it was reported.
func (u Usage) TotalTokens() (int, bool) {
	v, ok := u[UsageTotalTokens]
	return v, ok
}
