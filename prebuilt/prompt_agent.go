package prebuilt

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"

	"github.com/MidasKylix/langgraph/graph"
	"github.com/MidasKylix/langgraph/store"
)

// Node keys of the prompt-builder graph.
const (
	// NodeGatherRequirements talks to the user until it has enough
	// information to generate a prompt template.
	NodeGatherRequirements = "gather_requirements"

	// NodeAcknowledgeTool deterministically answers the emit_instructions
	// tool call without a model round-trip.
	NodeAcknowledgeTool = "acknowledge_tool"

	// NodeGeneratePrompt writes the prompt template from the gathered
	// requirements.
	NodeGeneratePrompt = "generate_prompt"
)

// ToolEmitInstructions is the tool the model calls once it has gathered all
// requirements. Its arguments carry the collected information.
const ToolEmitInstructions = "emit_instructions"

const gatherSystemPrompt = `Your job is to gather requirements from the user for the prompt template they want to create.

You should collect:
- the objective of the prompt
- the variables that will be passed into the template
- constraints on what the output must not do
- requirements the output must follow

If you cannot discern this information yet, ask the user to clarify. Do not guess.

Once all the information is known, call the ` + ToolEmitInstructions + ` tool with it.`

var emitInstructionsTool = llms.Tool{
	Type: "function",
	Function: &llms.FunctionDefinition{
		Name:        ToolEmitInstructions,
		Description: "Emit the gathered prompt requirements once they are complete.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"objective": map[string]any{
					"type":        "string",
					"description": "What the prompt should accomplish",
				},
				"variables": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "Variable names the template will receive",
				},
				"constraints": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "Things the output must never do",
				},
				"requirements": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "Things the output must always follow",
				},
			},
			"required": []string{"objective"},
		},
	},
}

// PromptAgent is a multi-turn agent that interviews the user about the
// prompt template they want, then writes it. It is the reference consumer of
// the graph engine: one conditional edge classifies every state the
// conversation can be in, and suspension for the next user reply is reaching
// END with the history checkpointed.
type PromptAgent struct {
	engine *graph.Engine
}

// NewPromptAgent builds and compiles the agent graph over the given model
// and checkpoint store.
func NewPromptAgent(model llms.Model, st store.Store, opts ...graph.EngineOption) (*PromptAgent, error) {
	g := graph.NewMessageGraph()

	if err := g.AddNode(NodeGatherRequirements, gatherNode(model)); err != nil {
		return nil, err
	}
	if err := g.AddNode(NodeAcknowledgeTool, acknowledgeToolNode); err != nil {
		return nil, err
	}
	if err := g.AddNode(NodeGeneratePrompt, generateNode(model)); err != nil {
		return nil, err
	}

	g.SetEntryPoint(NodeGatherRequirements)
	if err := g.AddConditionalEdge(NodeGatherRequirements, routeAfterGather,
		NodeAcknowledgeTool, NodeGatherRequirements, graph.END); err != nil {
		return nil, err
	}
	if err := g.AddEdge(NodeAcknowledgeTool, NodeGeneratePrompt); err != nil {
		return nil, err
	}
	if err := g.AddEdge(NodeGeneratePrompt, graph.END); err != nil {
		return nil, err
	}

	runnable, err := g.Compile()
	if err != nil {
		return nil, err
	}

	return &PromptAgent{engine: graph.NewEngine(runnable, st, opts...)}, nil
}

// Chat submits one user message for a thread and returns the run's result.
// Terminal in the result only means no further node runs until the next
// Chat; whether the conversation is actually finished is the caller's call.
func (a *PromptAgent) Chat(ctx context.Context, threadID, message string) (*graph.RunResult, error) {
	return a.engine.Submit(ctx, threadID, message)
}

// History returns the persisted conversation for a thread.
func (a *PromptAgent) History(ctx context.Context, threadID string) (graph.State, error) {
	return a.engine.History(ctx, threadID)
}

// routeAfterGather classifies the merged state after the gathering node ran.
// The three branches are exhaustive: a tool invocation hands off to the
// acknowledgment node, any other non-human last message means the agent is
// waiting on the user (END), and a human last message keeps gathering.
func routeAfterGather(ctx context.Context, state graph.State) string {
	last, ok := state.LastMessage()
	if !ok {
		return graph.END
	}
	switch {
	case last.Type == graph.MessageTypeAI && last.HasToolCalls():
		return NodeAcknowledgeTool
	case last.Type != graph.MessageTypeHuman:
		return graph.END
	default:
		return NodeGatherRequirements
	}
}

// gatherNode calls the model with the interviewing instruction and the
// emit_instructions tool declared.
func gatherNode(model llms.Model) graph.NodeFunc {
	return func(ctx context.Context, state graph.State) ([]graph.Message, error) {
		msg, err := callModel(ctx, model, gatherSystemPrompt, state.Messages,
			llms.WithTools([]llms.Tool{emitInstructionsTool}))
		if err != nil {
			return nil, err
		}
		return []graph.Message{msg}, nil
	}
}

// acknowledgeToolNode answers the pending emit_instructions call with a tool
// result carrying the same call id, so the transcript the model sees next is
// well formed. No model call is involved.
func acknowledgeToolNode(ctx context.Context, state graph.State) ([]graph.Message, error) {
	last, ok := state.LastMessage()
	if !ok || !last.HasToolCalls() {
		return nil, fmt.Errorf("no pending tool call to acknowledge")
	}
	return []graph.Message{
		graph.ToolMessage(last.ToolCalls[0].ID, "Prompt generation started."),
	}, nil
}

// generateNode asks the model to write the prompt template from the
// requirements emitted by the tool call. It forwards only the conversation
// that happened after the call, with tool plumbing stripped.
func generateNode(model llms.Model) graph.NodeFunc {
	return func(ctx context.Context, state graph.State) ([]graph.Message, error) {
		requirements, tail, err := splitAtLastToolCall(state.Messages)
		if err != nil {
			return nil, err
		}

		system := fmt.Sprintf(
			"Based on the following requirements, write a good prompt template:\n\n%s", requirements)

		msg, err := callModel(ctx, model, system, tail)
		if err != nil {
			return nil, err
		}
		return []graph.Message{msg}, nil
	}
}

// splitAtLastToolCall finds the most recent emit_instructions invocation and
// returns its arguments plus the non-tool messages that followed it.
func splitAtLastToolCall(msgs []graph.Message) (string, []graph.Message, error) {
	for i := len(msgs) - 1; i >= 0; i-- {
		for _, tc := range msgs[i].ToolCalls {
			if tc.Name == ToolEmitInstructions {
				var tail []graph.Message
				for _, m := range msgs[i+1:] {
					if m.Type == graph.MessageTypeTool {
						continue
					}
					tail = append(tail, m)
				}
				return tc.Arguments, tail, nil
			}
		}
	}
	return "", nil, fmt.Errorf("no %s call in conversation", ToolEmitInstructions)
}
