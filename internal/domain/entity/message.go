package entity

type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleTool      MessageRole = "tool"
)

// Message is one entry of the conversation context sent upstream.
// Only assistant messages carry ToolCalls; only tool messages carry ToolCallID and Name.
type Message struct {
	Role       MessageRole
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
	Name       string
}

// ToolCall is a tool invocation requested by the model. Arguments holds the
// upstream argument encoding (a JSON object) as received.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// ToolResult is the output of one ToolCall, correlated by CallID.
type ToolResult struct {
	CallID  string
	Name    ToolName
	Content string
}

// Message renders the result as the tool-role context entry.
func (r ToolResult) Message() Message {
	return Message{
		Role:       RoleTool,
		ToolCallID: r.CallID,
		Name:       r.Name.String(),
		Content:    r.Content,
	}
}

type ToolDefinition struct {
	Name        string
	Description string
	Parameters  any
}
