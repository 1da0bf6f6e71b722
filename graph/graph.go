package graph

import (
	"context"
	"fmt"
)

const (
	// START is the reserved entry key. Exactly one edge must leave it.
	START = "START"

	// END is the reserved terminal key. Routing to END finishes the run;
	// it has no outgoing edges and no node function.
	END = "END"
)

// NodeFunc is a unit of work. It receives the current state and returns the
// messages it produced, which the engine appends via AddMessages. Node
// functions must not mutate the state they are given.
type NodeFunc func(ctx context.Context, state State) ([]Message, error)

// RouterFunc inspects the state after a node's update has been merged and
// returns the key of the next node, or END. The returned key must be one of
// the destinations declared with AddConditionalEdge.
type RouterFunc func(ctx context.Context, state State) string

type node struct {
	name string
	fn   NodeFunc
}

type conditionalEdge struct {
	router       RouterFunc
	destinations map[string]bool
}

// MessageGraph is a builder for a conversational workflow graph. Declare
// nodes and edges, then Compile into an immutable Runnable.
//
// The builder is not safe for concurrent use; compiled Runnables are.
type MessageGraph struct {
	nodes            map[string]node
	edges            map[string]string
	conditionalEdges map[string]conditionalEdge
	startTargets     []string
}

// NewMessageGraph creates an empty graph.
func NewMessageGraph() *MessageGraph {
	return &MessageGraph{
		nodes:            make(map[string]node),
		edges:            make(map[string]string),
		conditionalEdges: make(map[string]conditionalEdge),
	}
}

// AddNode registers a node under a unique key. Registering the same key
// twice, or using a reserved key, fails with ErrDuplicateNode.
func (g *MessageGraph) AddNode(name string, fn NodeFunc) error {
	if name == START || name == END {
		return fmt.Errorf("%w: %s is reserved", ErrDuplicateNode, name)
	}
	if _, ok := g.nodes[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateNode, name)
	}
	g.nodes[name] = node{name: name, fn: fn}
	return nil
}

// AddEdge adds a fixed edge between the "from" and "to" nodes. An edge from
// START sets the graph's entry point.
func (g *MessageGraph) AddEdge(from, to string) error {
	if from == START {
		g.startTargets = append(g.startTargets, to)
		return nil
	}
	if g.hasOutgoing(from) {
		return fmt.Errorf("%w: %s", ErrDuplicateEdge, from)
	}
	g.edges[from] = to
	return nil
}

// AddConditionalEdge adds an edge from a node whose target is chosen at
// runtime by router. The router must return one of destinations; anything
// else fails the run with ErrInvalidRoute. END is a valid destination.
func (g *MessageGraph) AddConditionalEdge(from string, router RouterFunc, destinations ...string) error {
	if g.hasOutgoing(from) {
		return fmt.Errorf("%w: %s", ErrDuplicateEdge, from)
	}
	dests := make(map[string]bool, len(destinations))
	for _, d := range destinations {
		dests[d] = true
	}
	g.conditionalEdges[from] = conditionalEdge{router: router, destinations: dests}
	return nil
}

// SetEntryPoint declares the node that the single START edge points to.
// Equivalent to AddEdge(START, name).
func (g *MessageGraph) SetEntryPoint(name string) {
	g.startTargets = append(g.startTargets, name)
}

func (g *MessageGraph) hasOutgoing(from string) bool {
	if _, ok := g.edges[from]; ok {
		return true
	}
	_, ok := g.conditionalEdges[from]
	return ok
}
