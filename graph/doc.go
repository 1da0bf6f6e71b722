// Package graph implements a minimal workflow graph engine for multi-turn,
// tool-augmented conversations.
//
// A MessageGraph declares named nodes and the edges between them, including
// conditional edges whose destination is chosen at runtime by inspecting the
// conversation state. Compile validates the declarations once and produces an
// immutable Runnable shared by all threads. An Engine binds a Runnable to a
// checkpoint store, so that each conversation thread can suspend for human
// input and resume exactly where it left off:
//
//	g := graph.NewMessageGraph()
//	g.AddNode("respond", respond)
//	g.SetEntryPoint("respond")
//	g.AddEdge("respond", graph.END)
//
//	runnable, err := g.Compile()
//	if err != nil {
//		return err
//	}
//
//	engine := graph.NewEngine(runnable, store.NewMemoryStore())
//	result, err := engine.Submit(ctx, "thread-1", "Hi")
//
// Suspension is modeled as reaching END: when routing decides the
// conversation is waiting on a person, the run terminates normally and the
// thread's accumulated history is checkpointed. The next Submit for the same
// thread id loads that checkpoint, appends the new human message, and the
// routing rule re-evaluates. There is no distinct "paused" state.
package graph
