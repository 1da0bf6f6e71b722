package graph_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MidasKylix/langgraph/graph"
)

func noopNode(ctx context.Context, state graph.State) ([]graph.Message, error) {
	return nil, nil
}

func TestAddNodeDuplicate(t *testing.T) {
	t.Parallel()

	g := graph.NewMessageGraph()
	require.NoError(t, g.AddNode("a", noopNode))

	err := g.AddNode("a", noopNode)
	assert.ErrorIs(t, err, graph.ErrDuplicateNode)
}

func TestAddNodeReservedKeys(t *testing.T) {
	t.Parallel()

	g := graph.NewMessageGraph()
	assert.ErrorIs(t, g.AddNode(graph.START, noopNode), graph.ErrDuplicateNode)
	assert.ErrorIs(t, g.AddNode(graph.END, noopNode), graph.ErrDuplicateNode)
}

func TestAddEdgeDuplicateOutgoing(t *testing.T) {
	t.Parallel()

	g := graph.NewMessageGraph()
	require.NoError(t, g.AddNode("a", noopNode))
	require.NoError(t, g.AddEdge("a", graph.END))

	assert.ErrorIs(t, g.AddEdge("a", graph.END), graph.ErrDuplicateEdge)
	assert.ErrorIs(t, g.AddConditionalEdge("a", func(ctx context.Context, s graph.State) string {
		return graph.END
	}, graph.END), graph.ErrDuplicateEdge)
}

//nolint:gocognit // table covers every structural validation rule
func TestCompileValidation(t *testing.T) {
	t.Parallel()

	alwaysEnd := func(ctx context.Context, s graph.State) string { return graph.END }

	tests := []struct {
		name       string
		buildGraph func() *graph.MessageGraph
		wantErr    error
	}{
		{
			name: "no entry point",
			buildGraph: func() *graph.MessageGraph {
				g := graph.NewMessageGraph()
				_ = g.AddNode("a", noopNode)
				_ = g.AddEdge("a", graph.END)
				return g
			},
			wantErr: graph.ErrEntryPointNotSet,
		},
		{
			name: "two START edges",
			buildGraph: func() *graph.MessageGraph {
				g := graph.NewMessageGraph()
				_ = g.AddNode("a", noopNode)
				_ = g.AddEdge("a", graph.END)
				g.SetEntryPoint("a")
				_ = g.AddEdge(graph.START, "a")
				return g
			},
			wantErr: graph.ErrDuplicateEdge,
		},
		{
			name: "entry point not registered",
			buildGraph: func() *graph.MessageGraph {
				g := graph.NewMessageGraph()
				g.SetEntryPoint("missing")
				return g
			},
			wantErr: graph.ErrUnknownNode,
		},
		{
			name: "edge to unknown node",
			buildGraph: func() *graph.MessageGraph {
				g := graph.NewMessageGraph()
				_ = g.AddNode("a", noopNode)
				g.SetEntryPoint("a")
				_ = g.AddEdge("a", "ghost")
				return g
			},
			wantErr: graph.ErrUnknownNode,
		},
		{
			name: "node without outgoing edge",
			buildGraph: func() *graph.MessageGraph {
				g := graph.NewMessageGraph()
				_ = g.AddNode("a", noopNode)
				_ = g.AddNode("stranded", noopNode)
				g.SetEntryPoint("a")
				_ = g.AddEdge("a", "stranded")
				return g
			},
			wantErr: graph.ErrUnreachableNode,
		},
		{
			name: "conditional destination not registered",
			buildGraph: func() *graph.MessageGraph {
				g := graph.NewMessageGraph()
				_ = g.AddNode("a", noopNode)
				g.SetEntryPoint("a")
				_ = g.AddConditionalEdge("a", alwaysEnd, graph.END, "ghost")
				return g
			},
			wantErr: graph.ErrUnknownNode,
		},
		{
			name: "conditional edge with no destinations",
			buildGraph: func() *graph.MessageGraph {
				g := graph.NewMessageGraph()
				_ = g.AddNode("a", noopNode)
				g.SetEntryPoint("a")
				_ = g.AddConditionalEdge("a", alwaysEnd)
				return g
			},
			wantErr: graph.ErrUnreachableNode,
		},
		{
			name: "valid graph",
			buildGraph: func() *graph.MessageGraph {
				g := graph.NewMessageGraph()
				_ = g.AddNode("a", noopNode)
				_ = g.AddNode("b", noopNode)
				g.SetEntryPoint("a")
				_ = g.AddConditionalEdge("a", alwaysEnd, "b", graph.END)
				_ = g.AddEdge("b", graph.END)
				return g
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			runnable, err := tt.buildGraph().Compile()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, runnable)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, runnable)
		})
	}
}

func TestCompileIdempotent(t *testing.T) {
	t.Parallel()

	g := graph.NewMessageGraph()
	require.NoError(t, g.AddNode("greet", func(ctx context.Context, s graph.State) ([]graph.Message, error) {
		return []graph.Message{graph.AIMessage("hello")}, nil
	}))
	g.SetEntryPoint("greet")
	require.NoError(t, g.AddEdge("greet", graph.END))

	first, err := g.Compile()
	require.NoError(t, err)
	second, err := g.Compile()
	require.NoError(t, err)

	assert.Equal(t, first.EntryPoint(), second.EntryPoint())

	ctx := context.Background()
	s1, err := first.Invoke(ctx, graph.State{})
	require.NoError(t, err)
	s2, err := second.Invoke(ctx, graph.State{})
	require.NoError(t, err)
	assert.Equal(t, s1, s2)
}

func TestCompiledPlanUnaffectedByLaterBuilderChanges(t *testing.T) {
	t.Parallel()

	g := graph.NewMessageGraph()
	require.NoError(t, g.AddNode("greet", func(ctx context.Context, s graph.State) ([]graph.Message, error) {
		return []graph.Message{graph.AIMessage("hello")}, nil
	}))
	g.SetEntryPoint("greet")
	require.NoError(t, g.AddEdge("greet", graph.END))

	runnable, err := g.Compile()
	require.NoError(t, err)

	// Mutate the builder after compiling; the plan must not notice.
	require.NoError(t, g.AddNode("extra", noopNode))

	state, err := runnable.Invoke(context.Background(), graph.State{})
	require.NoError(t, err)
	require.Len(t, state.Messages, 1)
	assert.Equal(t, "hello", state.Messages[0].Content)
}
