package tracelet

import (
	"errors"
	"reflect"
	"testing"
)

func chatSpan() *Span {
	return &Span{
		SpanID:  EncodeSpanID(0),
		TraceID: "tr-123",
		Name:    "completion",
	}
}

func testMessages() []ChatMessage {
	return []ChatMessage{
		{
			Role:    RoleSystem,
			Content: "please use the provided tool to answer the user's questions",
		},
		{Role: RoleUser, Content: "what is 1 + 1?"},
		{
			Role: RoleAssistant,
			ToolCalls: []ToolCall{{
				ID:   "123",
				Type: ChatToolTypeFunction,
				Function: FunctionCall{
					Name:      "add",
					Arguments: `{"a": 1, "b": 2}`,
				},
			}},
		},
	}
}

func testTools() []ChatTool {
	return []ChatTool{{
		Type: ChatToolTypeFunction,
		Function: &FunctionToolDefinition{
			Name:        "add",
			Description: "Add two numbers",
			Parameters: &ParamSchema{
				Type: "object",
				Properties: map[string]*ParamProperty{
					"a": {Type: "number"},
					"b": {Type: "number"},
				},
				Required: []string{"a", "b"},
			},
		},
	}}
}

func TestSetSpanChatMessagesAndTools(t *testing.T) {
	span := chatSpan()
	messages := testMessages()
	tools := testTools()

	if err := SetSpanChatMessages(span, messages); err != nil {
		t.Fatalf("SetSpanChatMessages() error = %v", err)
	}
	if err := SetSpanChatTools(span, tools); err != nil {
		t.Fatalf("SetSpanChatTools() error = %v", err)
	}

	if got := span.GetAttribute(AttrChatMessages); !reflect.DeepEqual(got, messages) {
		t.Errorf("chat messages attribute = %v, want %v", got, messages)
	}
	if got := span.GetAttribute(AttrChatTools); !reflect.DeepEqual(got, tools) {
		t.Errorf("chat tools attribute = %v, want %v", got, tools)
	}
}

func TestSetSpanChatMessages_AppendAndReplace(t *testing.T) {
	messages := []ChatMessage{
		{Role: RoleSystem, Content: "you are a confident bot"},
		{Role: RoleUser, Content: "what is 1 + 1?"},
	}
	additional := []ChatMessage{
		{Role: RoleAssistant, Content: "it is definitely 5"},
	}

	// Append concatenates after the existing messages.
	span := chatSpan()
	if err := SetSpanChatMessages(span, messages); err != nil {
		t.Fatalf("SetSpanChatMessages() error = %v", err)
	}
	if err := SetSpanChatMessages(span, additional, WithAppend()); err != nil {
		t.Fatalf("SetSpanChatMessages(append) error = %v", err)
	}
	want := append(append([]ChatMessage{}, messages...), additional...)
	if got := span.GetAttribute(AttrChatMessages); !reflect.DeepEqual(got, want) {
		t.Errorf("after append = %v, want %v", got, want)
	}

	// Default replaces wholesale.
	span = chatSpan()
	if err := SetSpanChatMessages(span, messages); err != nil {
		t.Fatalf("SetSpanChatMessages() error = %v", err)
	}
	if err := SetSpanChatMessages(span, additional); err != nil {
		t.Fatalf("SetSpanChatMessages(replace) error = %v", err)
	}
	if got := span.GetAttribute(AttrChatMessages); !reflect.DeepEqual(got, additional) {
		t.Errorf("after replace = %v, want %v", got, additional)
	}
}

func TestSetSpanChatMessages_AppendToEmptySpan(t *testing.T) {
	span := chatSpan()
	messages := testMessages()

	if err := SetSpanChatMessages(span, messages, WithAppend()); err != nil {
		t.Fatalf("SetSpanChatMessages(append) error = %v", err)
	}
	if got := span.GetAttribute(AttrChatMessages); !reflect.DeepEqual(got, messages) {
		t.Errorf("append to empty span = %v, want %v", got, messages)
	}
}

func TestSetSpanChatMessages_ValidationFailureIsAtomic(t *testing.T) {
	span := chatSpan()
	valid := []ChatMessage{{Role: RoleUser, Content: "hello"}}
	if err := SetSpanChatMessages(span, valid); err != nil {
		t.Fatalf("SetSpanChatMessages() error = %v", err)
	}

	// Second element is missing its role; the whole batch must be rejected
	// and the prior attribute state preserved.
	invalid := []ChatMessage{
		{Role: RoleUser, Content: "still fine"},
		{Content: "hello"},
	}
	err := SetSpanChatMessages(span, invalid, WithAppend())
	if err == nil {
		t.Fatal("SetSpanChatMessages() error = nil, want validation error")
	}

	verr, ok := AsSchemaValidationError(err)
	if !ok {
		t.Fatalf("error %v is not a *SchemaValidationError", err)
	}
	if verr.Index != 1 || verr.Field != "role" {
		t.Errorf("validation error = index %d field %q, want index 1 field \"role\"", verr.Index, verr.Field)
	}

	if got := span.GetAttribute(AttrChatMessages); !reflect.DeepEqual(got, valid) {
		t.Errorf("span attribute changed after failed write: %v, want %v", got, valid)
	}
}

func TestSetSpanChatMessages_Validation(t *testing.T) {
	tests := []struct {
		name    string
		message ChatMessage
		field   string
	}{
		{
			name:    "missing role",
			message: ChatMessage{Content: "hello"},
			field:   "role",
		},
		{
			name:    "unsupported role",
			message: ChatMessage{Role: "narrator", Content: "hello"},
			field:   "role",
		},
		{
			name:    "system message without content",
			message: ChatMessage{Role: RoleSystem},
			field:   "content",
		},
		{
			name:    "user message without content",
			message: ChatMessage{Role: RoleUser},
			field:   "content",
		},
		{
			name:    "assistant message with neither content nor tool calls",
			message: ChatMessage{Role: RoleAssistant},
			field:   "content",
		},
		{
			name: "tool call with wrong type",
			message: ChatMessage{
				Role: RoleAssistant,
				ToolCalls: []ToolCall{{
					ID:       "1",
					Type:     "plugin",
					Function: FunctionCall{Name: "add"},
				}},
			},
			field: "tool_calls[0].type",
		},
		{
			name: "tool call without function name",
			message: ChatMessage{
				Role:      RoleAssistant,
				ToolCalls: []ToolCall{{ID: "1", Type: ChatToolTypeFunction}},
			},
			field: "tool_calls[0].function.name",
		},
		{
			name:    "tool result without tool_call_id",
			message: ChatMessage{Role: RoleTool, Content: "2"},
			field:   "tool_call_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span := chatSpan()
			err := SetSpanChatMessages(span, []ChatMessage{tt.message})
			verr, ok := AsSchemaValidationError(err)
			if !ok {
				t.Fatalf("SetSpanChatMessages() error = %v, want *SchemaValidationError", err)
			}
			if verr.Schema != "ChatMessage" {
				t.Errorf("Schema = %q, want %q", verr.Schema, "ChatMessage")
			}
			if verr.Field != tt.field {
				t.Errorf("Field = %q, want %q", verr.Field, tt.field)
			}
			if got := span.GetAttribute(AttrChatMessages); got != nil {
				t.Errorf("attribute written despite validation failure: %v", got)
			}
		})
	}
}

func TestSetSpanChatTools_Validation(t *testing.T) {
	tests := []struct {
		name  string
		tool  ChatTool
		field string
	}{
		{
			name: "unsupported type tag",
			tool: ChatTool{
				Type:     "unsupported_function",
				Function: &FunctionToolDefinition{Name: "test"},
			},
			field: "type",
		},
		{
			name:  "missing type",
			tool:  ChatTool{Function: &FunctionToolDefinition{Name: "test"}},
			field: "type",
		},
		{
			name:  "missing function descriptor",
			tool:  ChatTool{Type: ChatToolTypeFunction},
			field: "function",
		},
		{
			name: "missing function name",
			tool: ChatTool{
				Type:     ChatToolTypeFunction,
				Function: &FunctionToolDefinition{Description: "anonymous"},
			},
			field: "function.name",
		},
		{
			name: "parameters without type",
			tool: ChatTool{
				Type: ChatToolTypeFunction,
				Function: &FunctionToolDefinition{
					Name:       "add",
					Parameters: &ParamSchema{},
				},
			},
			field: "function.parameters.type",
		},
		{
			name: "required references unknown property",
			tool: ChatTool{
				Type: ChatToolTypeFunction,
				Function: &FunctionToolDefinition{
					Name: "add",
					Parameters: &ParamSchema{
						Type:     "object",
						Required: []string{"missing"},
					},
				},
			},
			field: "function.parameters.required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span := chatSpan()
			err := SetSpanChatTools(span, []ChatTool{tt.tool})
			verr, ok := AsSchemaValidationError(err)
			if !ok {
				t.Fatalf("SetSpanChatTools() error = %v, want *SchemaValidationError", err)
			}
			if verr.Schema != "ChatTool" {
				t.Errorf("Schema = %q, want %q", verr.Schema, "ChatTool")
			}
			if verr.Field != tt.field {
				t.Errorf("Field = %q, want %q", verr.Field, tt.field)
			}
			if got := span.GetAttribute(AttrChatTools); got != nil {
				t.Errorf("attribute written despite validation failure: %v", got)
			}
		})
	}
}

func TestSetSpanChatTools_Replaces(t *testing.T) {
	span := chatSpan()
	if err := SetSpanChatTools(span, testTools()); err != nil {
		t.Fatalf("SetSpanChatTools() error = %v", err)
	}

	replacement := []ChatTool{{
		Type:     ChatToolTypeFunction,
		Function: &FunctionToolDefinition{Name: "subtract"},
	}}
	if err := SetSpanChatTools(span, replacement); err != nil {
		t.Fatalf("SetSpanChatTools() error = %v", err)
	}
	if got := span.GetAttribute(AttrChatTools); !reflect.DeepEqual(got, replacement) {
		t.Errorf("tools attribute = %v, want %v", got, replacement)
	}
}

func TestSchemaValidationError_ErrorsAs(t *testing.T) {
	err := SetSpanChatMessages(chatSpan(), []ChatMessage{{Content: "no role"}})

	var verr *SchemaValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("errors.As failed for %v", err)
	}
	if verr.Code() != ErrCodeValidation {
		t.Errorf("Code() = %q, want %q", verr.Code(), ErrCodeValidation)
	}
}
