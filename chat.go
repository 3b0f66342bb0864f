package tracelet

// Chat message roles. Messages are a tagged union: the role determines which
// other fields must be present.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ChatToolTypeFunction is the only tool type currently supported. The tool
// schema is a tagged union so further types can be added without breaking
// consumers.
const ChatToolTypeFunction = "function"

// ChatMessage is one conversational turn attached to a chat-model span.
//
// Variants by role:
//   - system, user: Content is required.
//   - assistant: Content or ToolCalls is required.
//   - tool: Content and ToolCallID are required.
type ChatMessage struct {
	Role       string     `json:"role"`
	Content    string     `json:"content,omitempty"`
	Name       string     `json:"name,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// ToolCall is an assistant-requested invocation of a tool.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

// FunctionCall carries the function name and JSON-encoded arguments of a
// tool call.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments,omitempty"`
}

// ChatTool is a callable tool definition attached to a chat-model span.
type ChatTool struct {
	Type     string                  `json:"type"`
	Function *FunctionToolDefinition `json:"function,omitempty"`
}

// FunctionToolDefinition describes a function-type tool.
type FunctionToolDefinition struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Parameters  *ParamSchema `json:"parameters,omitempty"`
}

// ParamSchema is the JSON-schema-shaped parameter declaration of a function
// tool.
type ParamSchema struct {
	Type       string                    `json:"type"`
	Properties map[string]*ParamProperty `json:"properties,omitempty"`
	Required   []string                  `json:"required,omitempty"`
}

// ParamProperty describes a single property within a ParamSchema.
type ParamProperty struct {
	Type        string         `json:"type"`
	Description string         `json:"description,omitempty"`
	Enum        []string       `json:"enum,omitempty"`
	Items       *ParamProperty `json:"items,omitempty"`
}

// ChatOption configures a chat-attribute write.
type ChatOption func(*chatOptions)

type chatOptions struct {
	append bool
}

// WithAppend makes SetSpanChatMessages concatenate the new messages after
// any messages already on the span, instead of replacing them.
func WithAppend() ChatOption {
	return func(o *chatOptions) { o.append = true }
}

// SetSpanChatMessages validates messages against the chat-message schema and
// attaches them to the span under AttrChatMessages.
//
// The write is all-or-nothing: the first element that fails validation
// aborts the whole operation with a *SchemaValidationError naming the
// element and field, and the span's prior attribute state is left untouched.
//
// By default the attribute is replaced wholesale. With WithAppend, the new
// messages are concatenated after the span's existing messages, preserving
// order.
func SetSpanChatMessages(span *Span, messages []ChatMessage, opts ...ChatOption) error {
	var o chatOptions
	for _, opt := range opts {
		opt(&o)
	}

	for i := range messages {
		if err := ValidateChatMessage(i, &messages[i]); err != nil {
			return err
		}
	}

	stored := messages
	if o.append {
		if existing, ok := span.GetAttribute(AttrChatMessages).([]ChatMessage); ok {
			stored = make([]ChatMessage, 0, len(existing)+len(messages))
			stored = append(stored, existing...)
			stored = append(stored, messages...)
		}
	}
	span.SetAttribute(AttrChatMessages, stored)
	return nil
}

// SetSpanChatTools validates tools against the chat-tool schema and attaches
// them to the span under AttrChatTools, replacing any previous value.
//
// Like SetSpanChatMessages, the write is atomic: a tool whose type tag is
// unsupported, or whose function descriptor is incomplete, fails the whole
// operation with a *SchemaValidationError and leaves the span unmodified.
func SetSpanChatTools(span *Span, tools []ChatTool) error {
	for i := range tools {
		if err := ValidateChatTool(i, &tools[i]); err != nil {
			return err
		}
	}
	span.SetAttribute(AttrChatTools, tools)
	return nil
}
