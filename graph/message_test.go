package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MidasKylix/langgraph/graph"
)

func TestAddMessages(t *testing.T) {
	t.Parallel()

	current := graph.State{Messages: []graph.Message{
		graph.HumanMessage("Hi"),
	}}

	merged := graph.AddMessages(current, []graph.Message{
		graph.AIMessage("Hello!"),
		graph.AIMessage("How can I help?"),
	})

	require.Len(t, merged.Messages, 3)
	assert.Equal(t, "Hi", merged.Messages[0].Content)
	assert.Equal(t, "Hello!", merged.Messages[1].Content)
	assert.Equal(t, "How can I help?", merged.Messages[2].Content)

	// The input state is left untouched.
	assert.Len(t, current.Messages, 1)
}

func TestAddMessagesEmptyUpdate(t *testing.T) {
	t.Parallel()

	current := graph.State{Messages: []graph.Message{
		graph.HumanMessage("Hi"),
	}}

	merged := graph.AddMessages(current, nil)
	assert.Equal(t, current, merged)

	merged = graph.AddMessages(current, []graph.Message{})
	assert.Equal(t, current, merged)
}

func TestAddMessagesDoesNotAliasCurrent(t *testing.T) {
	t.Parallel()

	base := graph.AddMessages(graph.State{}, []graph.Message{
		graph.HumanMessage("first"),
	})

	a := graph.AddMessages(base, []graph.Message{graph.AIMessage("branch a")})
	b := graph.AddMessages(base, []graph.Message{graph.AIMessage("branch b")})

	require.Len(t, a.Messages, 2)
	require.Len(t, b.Messages, 2)
	assert.Equal(t, "branch a", a.Messages[1].Content)
	assert.Equal(t, "branch b", b.Messages[1].Content)
}

func TestLastMessage(t *testing.T) {
	t.Parallel()

	_, ok := graph.State{}.LastMessage()
	assert.False(t, ok)

	state := graph.State{Messages: []graph.Message{
		graph.HumanMessage("Hi"),
		graph.AIMessage("Hello!"),
	}}
	last, ok := state.LastMessage()
	require.True(t, ok)
	assert.Equal(t, graph.MessageTypeAI, last.Type)
	assert.Equal(t, "Hello!", last.Content)
}

func TestHasToolCalls(t *testing.T) {
	t.Parallel()

	assert.False(t, graph.AIMessage("plain").HasToolCalls())

	msg := graph.AIMessageWithToolCalls("", graph.ToolCall{
		ID:        "call-1",
		Name:      "emit_instructions",
		Arguments: `{"objective":"x"}`,
	})
	assert.True(t, msg.HasToolCalls())
	assert.Equal(t, "call-1", msg.ToolCalls[0].ID)
}
