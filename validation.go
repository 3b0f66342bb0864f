package tracelet

import (
	"fmt"
)

// Schema names reported in SchemaValidationError.
const (
	schemaChatMessage = "ChatMessage"
	schemaChatTool    = "ChatTool"
)

// chatRoles is the set of supported message roles.
var chatRoles = map[string]bool{
	RoleSystem:    true,
	RoleUser:      true,
	RoleAssistant: true,
	RoleTool:      true,
}

// ValidateChatMessage validates one chat message against its tagged-role
// schema. index is the element's position in the input slice and is carried
// into the returned *SchemaValidationError.
func ValidateChatMessage(index int, msg *ChatMessage) error {
	if msg.Role == "" {
		return NewSchemaValidationError(schemaChatMessage, index, "role", "is required")
	}
	if !chatRoles[msg.Role] {
		return NewSchemaValidationError(schemaChatMessage, index, "role",
			fmt.Sprintf("unsupported role %q", msg.Role))
	}

	switch msg.Role {
	case RoleSystem, RoleUser:
		if msg.Content == "" {
			return NewSchemaValidationError(schemaChatMessage, index, "content", "is required")
		}
	case RoleAssistant:
		if msg.Content == "" && len(msg.ToolCalls) == 0 {
			return NewSchemaValidationError(schemaChatMessage, index, "content",
				"assistant message requires content or tool_calls")
		}
		for j := range msg.ToolCalls {
			if err := validateToolCall(index, j, &msg.ToolCalls[j]); err != nil {
				return err
			}
		}
	case RoleTool:
		if msg.ToolCallID == "" {
			return NewSchemaValidationError(schemaChatMessage, index, "tool_call_id", "is required")
		}
		if msg.Content == "" {
			return NewSchemaValidationError(schemaChatMessage, index, "content", "is required")
		}
	}
	return nil
}

// validateToolCall validates one tool call within an assistant message.
func validateToolCall(index, call int, tc *ToolCall) error {
	if tc.ID == "" {
		return NewSchemaValidationError(schemaChatMessage, index,
			fmt.Sprintf("tool_calls[%d].id", call), "is required")
	}
	if tc.Type != ChatToolTypeFunction {
		return NewSchemaValidationError(schemaChatMessage, index,
			fmt.Sprintf("tool_calls[%d].type", call),
			fmt.Sprintf("unsupported type %q", tc.Type))
	}
	if tc.Function.Name == "" {
		return NewSchemaValidationError(schemaChatMessage, index,
			fmt.Sprintf("tool_calls[%d].function.name", call), "is required")
	}
	return nil
}

// ValidateChatTool validates one tool definition against the chat-tool
// schema. Only function-type tools are supported today; any other type tag
// fails validation.
func ValidateChatTool(index int, tool *ChatTool) error {
	if tool.Type == "" {
		return NewSchemaValidationError(schemaChatTool, index, "type", "is required")
	}
	if tool.Type != ChatToolTypeFunction {
		return NewSchemaValidationError(schemaChatTool, index, "type",
			fmt.Sprintf("unsupported type %q", tool.Type))
	}
	if tool.Function == nil {
		return NewSchemaValidationError(schemaChatTool, index, "function", "is required")
	}
	if tool.Function.Name == "" {
		return NewSchemaValidationError(schemaChatTool, index, "function.name", "is required")
	}
	if p := tool.Function.Parameters; p != nil {
		if p.Type == "" {
			return NewSchemaValidationError(schemaChatTool, index, "function.parameters.type", "is required")
		}
		for name, prop := range p.Properties {
			if prop == nil || prop.Type == "" {
				return NewSchemaValidationError(schemaChatTool, index,
					fmt.Sprintf("function.parameters.properties.%s.type", name), "is required")
			}
		}
		for _, req := range p.Required {
			if _, ok := p.Properties[req]; !ok {
				return NewSchemaValidationError(schemaChatTool, index,
					"function.parameters.required",
					fmt.Sprintf("references unknown property %q", req))
			}
		}
	}
	return nil
}
