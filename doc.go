// Package langgraph is the root of a small orchestration kernel for
// multi-turn, tool-augmented conversational agents.
//
// The engine lives in the graph package: an append-only message history as
// process state, named nodes as units of work, conditional routing evaluated
// against the merged state, and durable per-thread checkpoints so a
// conversation can suspend for human input and resume across process
// restarts.
//
//   - graph: message model, graph builder, compiler, execution engine
//   - store: checkpoint contract plus memory, sqlite, postgres and redis
//     backends
//   - log: leveled logging interface with a golog backend
//   - prebuilt: a complete requirements-gathering agent built on the engine
//
// A minimal session:
//
//	agent, err := prebuilt.NewPromptAgent(model, store.NewMemoryStore())
//	if err != nil {
//		return err
//	}
//	res, err := agent.Chat(ctx, "thread-1", "Help me write a prompt")
//	for _, m := range res.Messages {
//		fmt.Println(m.Content)
//	}
//
// The LLM call, prompt authoring and the interactive terminal loop are
// external collaborators; this module is the state machine between them.
package langgraph
