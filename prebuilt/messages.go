package prebuilt

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"

	"github.com/MidasKylix/langgraph/graph"
)

// toModelMessages converts conversation messages to the langchaingo wire
// shape, prepending the fixed system instruction.
func toModelMessages(system string, msgs []graph.Message) []llms.MessageContent {
	out := make([]llms.MessageContent, 0, len(msgs)+1)
	if system != "" {
		out = append(out, llms.TextParts(llms.ChatMessageTypeSystem, system))
	}

	for _, m := range msgs {
		switch m.Type {
		case graph.MessageTypeHuman:
			out = append(out, llms.TextParts(llms.ChatMessageTypeHuman, m.Content))

		case graph.MessageTypeAI:
			mc := llms.MessageContent{Role: llms.ChatMessageTypeAI}
			if m.Content != "" {
				mc.Parts = append(mc.Parts, llms.TextPart(m.Content))
			}
			for _, tc := range m.ToolCalls {
				mc.Parts = append(mc.Parts, llms.ToolCall{
					ID:   tc.ID,
					Type: "function",
					FunctionCall: &llms.FunctionCall{
						Name:      tc.Name,
						Arguments: tc.Arguments,
					},
				})
			}
			out = append(out, mc)

		case graph.MessageTypeTool:
			out = append(out, llms.MessageContent{
				Role: llms.ChatMessageTypeTool,
				Parts: []llms.ContentPart{
					llms.ToolCallResponse{
						ToolCallID: m.ToolCallID,
						Content:    m.Content,
					},
				},
			})
		}
	}
	return out
}

// callModel invokes the external model once and interprets the response
// deterministically: tool calls are carried through as-is on the resulting
// AI message so downstream routing can inspect them, otherwise the plain
// text becomes an assistant reply.
func callModel(ctx context.Context, model llms.Model, system string, msgs []graph.Message, opts ...llms.CallOption) (graph.Message, error) {
	resp, err := model.GenerateContent(ctx, toModelMessages(system, msgs), opts...)
	if err != nil {
		return graph.Message{}, err
	}
	if len(resp.Choices) == 0 {
		return graph.Message{}, fmt.Errorf("model returned no choices")
	}

	choice := resp.Choices[0]
	if len(choice.ToolCalls) == 0 {
		return graph.AIMessage(choice.Content), nil
	}

	calls := make([]graph.ToolCall, 0, len(choice.ToolCalls))
	for _, tc := range choice.ToolCalls {
		call := graph.ToolCall{ID: tc.ID}
		if tc.FunctionCall != nil {
			call.Name = tc.FunctionCall.Name
			call.Arguments = tc.FunctionCall.Arguments
		}
		calls = append(calls, call)
	}
	return graph.AIMessageWithToolCalls(choice.Content, calls...), nil
}
