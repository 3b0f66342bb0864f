// Package tracelet provides span normalization and introspection for execution
// traces recorded around function calls in LLM and agent pipelines.
//
// A trace is an ordered collection of spans, one span per instrumented call.
// This package owns the passes that turn a raw span collection into a
// publishable trace: span-name deduplication, token-usage aggregation, call
// argument reconstruction, schema-validated chat attribute attachment, and
// ambient prediction-context resolution.
//
// # Quick Start
//
// Record spans through a Recorder and finalize the trace:
//
//	rec := tracelet.NewRecorder()
//
//	trace := rec.StartTrace()
//	span, _ := rec.StartSpan(ctx, trace.TraceID, "completion", tracelet.SpanTypeChatModel)
//	span.SetAttribute(tracelet.AttrChatUsage, tracelet.Usage{
//	    tracelet.UsageInputTokens:  12,
//	    tracelet.UsageOutputTokens: 80,
//	    tracelet.UsageTotalTokens:  92,
//	})
//	rec.EndSpan(trace.TraceID, span.SpanID)
//
//	finalized, _ := rec.Finalize(trace.TraceID)
//	// finalized.Spans carry globally unique names, and the trace-level
//	// usage total is available under finalized.Usage.
//
// # Chat Attributes
//
// Spans that represent chat-model calls carry normalized messages and tool
// definitions, validated before they are written:
//
//	err := tracelet.SetSpanChatMessages(span, []tracelet.ChatMessage{
//	    {Role: tracelet.RoleSystem, Content: "you are a helpful bot"},
//	    {Role: tracelet.RoleUser, Content: "what is 1 + 1?"},
//	})
//
// Validation failures surface as *SchemaValidationError and never leave a
// span partially written.
//
// # Input Capture
//
// Callable shapes are registered up front and bound against call-site
// arguments to snapshot what the caller actually passed:
//
//	sig := &tracelet.Signature{Params: []tracelet.Parameter{
//	    {Name: "query"},
//	    {Name: "limit", HasDefault: true},
//	}}
//	inputs := tracelet.BindArguments(sig, []any{"golang"}, nil)
//	// inputs == map[string]any{"query": "golang"}
//
// A shape that was never registered yields a nil snapshot rather than an
// error; the trace is still recorded, just without inputs.
//
// # Ambient Context
//
// A prediction context (request ID plus evaluation flag) travels on the
// context.Context owned by the call-interception layer:
//
//	ctx = tracelet.WithPredictionContext(ctx, tracelet.PredictionContext{
//	    RequestID:  "eval-123",
//	    IsEvaluate: true,
//	})
//	id := tracelet.MaybeRequestID(ctx, true) // "eval-123"
//
// # Thread Safety
//
// The Recorder is safe for concurrent use. Finalize must only run after all
// span-producing work for that trace has completed; the normalization passes
// themselves take no locks because the span collection is immutable input at
// that point. Individual spans are owned by the call that produced them.
package tracelet
