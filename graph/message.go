package graph

// MessageType identifies who produced a message.
type MessageType string

const (
	// MessageTypeHuman is externally supplied user input.
	MessageTypeHuman MessageType = "human"

	// MessageTypeAI is a message produced by the model, either plain text
	// or a request to invoke one or more tools.
	MessageTypeAI MessageType = "ai"

	// MessageTypeTool is the result of a tool invocation, tied back to the
	// originating call by ToolCallID.
	MessageTypeTool MessageType = "tool"
)

// ToolCall is a tool invocation requested by an AI message.
type ToolCall struct {
	// ID uniquely identifies this call so a later tool message can
	// reference it.
	ID string `json:"id"`

	// Name is the tool's declared name.
	Name string `json:"name"`

	// Arguments holds the call arguments as a JSON document.
	Arguments string `json:"arguments"`
}

// Message is one immutable entry in a conversation. Messages are only ever
// appended to a State; they are never edited, reordered or removed.
type Message struct {
	Type       MessageType `json:"type"`
	Content    string      `json:"content"`
	ToolCalls  []ToolCall  `json:"tool_calls,omitempty"`
	ToolCallID string      `json:"tool_call_id,omitempty"`
}

// HumanMessage returns a message carrying user input.
func HumanMessage(content string) Message {
	return Message{Type: MessageTypeHuman, Content: content}
}

// AIMessage returns a plain text model reply.
func AIMessage(content string) Message {
	return Message{Type: MessageTypeAI, Content: content}
}

// AIMessageWithToolCalls returns a model reply that requests tool
// invocations. Content may be empty.
func AIMessageWithToolCalls(content string, calls ...ToolCall) Message {
	return Message{Type: MessageTypeAI, Content: content, ToolCalls: calls}
}

// ToolMessage returns the result of the tool call identified by callID.
func ToolMessage(callID, content string) Message {
	return Message{Type: MessageTypeTool, Content: content, ToolCallID: callID}
}

// HasToolCalls reports whether the message carries at least one tool
// invocation.
func (m Message) HasToolCalls() bool {
	return len(m.ToolCalls) > 0
}

// State is the conversation state threaded through a graph run. It has a
// single field, the ordered message log, and a single merge rule:
// AddMessages.
type State struct {
	Messages []Message `json:"messages"`
}

// LastMessage returns the most recent message, or false for an empty state.
func (s State) LastMessage() (Message, bool) {
	if len(s.Messages) == 0 {
		return Message{}, false
	}
	return s.Messages[len(s.Messages)-1], true
}

// AddMessages is the reducer for State: it appends update to the current
// message log and returns a new State. The receiver's slice is never
// mutated, so states held by callers stay valid across merges. An empty
// update returns current unchanged.
func AddMessages(current State, update []Message) State {
	if len(update) == 0 {
		return current
	}
	merged := make([]Message, 0, len(current.Messages)+len(update))
	merged = append(merged, current.Messages...)
	merged = append(merged, update...)
	return State{Messages: merged}
}
