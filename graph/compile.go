package graph

import (
	"fmt"
	"maps"
)

// Runnable is an immutable, executable plan produced by Compile. It carries
// no conversation state of its own and is safe to share across threads and
// runs.
type Runnable struct {
	nodes            map[string]NodeFunc
	edges            map[string]string
	conditionalEdges map[string]conditionalEdge
	entryPoint       string
}

// Compile validates the graph and returns its execution plan. Validation is
// static and independent of any conversation state:
//
//   - exactly one edge must leave START (ErrEntryPointNotSet if none,
//     ErrDuplicateEdge if more)
//   - every edge endpoint and declared conditional destination must name a
//     registered node or END (ErrUnknownNode)
//   - every registered node must have an outgoing edge (ErrUnreachableNode)
//
// Compiling the same declarations twice yields equivalent plans; the builder
// can keep being used afterwards without affecting compiled Runnables.
func (g *MessageGraph) Compile() (*Runnable, error) {
	switch len(g.startTargets) {
	case 0:
		return nil, ErrEntryPointNotSet
	case 1:
	default:
		return nil, fmt.Errorf("%w: %s", ErrDuplicateEdge, START)
	}

	entry := g.startTargets[0]
	if _, ok := g.nodes[entry]; !ok {
		return nil, fmt.Errorf("%w: entry point %s", ErrUnknownNode, entry)
	}

	for from, to := range g.edges {
		if _, ok := g.nodes[from]; !ok {
			return nil, fmt.Errorf("%w: edge from %s", ErrUnknownNode, from)
		}
		if to != END {
			if _, ok := g.nodes[to]; !ok {
				return nil, fmt.Errorf("%w: edge %s -> %s", ErrUnknownNode, from, to)
			}
		}
	}

	for from, ce := range g.conditionalEdges {
		if _, ok := g.nodes[from]; !ok {
			return nil, fmt.Errorf("%w: conditional edge from %s", ErrUnknownNode, from)
		}
		if len(ce.destinations) == 0 {
			return nil, fmt.Errorf("%w: conditional edge from %s declares no destinations", ErrUnreachableNode, from)
		}
		for dest := range ce.destinations {
			if dest == END {
				continue
			}
			if _, ok := g.nodes[dest]; !ok {
				return nil, fmt.Errorf("%w: conditional destination %s -> %s", ErrUnknownNode, from, dest)
			}
		}
	}

	for name := range g.nodes {
		if !g.hasOutgoing(name) {
			return nil, fmt.Errorf("%w: %s", ErrUnreachableNode, name)
		}
	}

	nodes := make(map[string]NodeFunc, len(g.nodes))
	for name, n := range g.nodes {
		nodes[name] = n.fn
	}

	return &Runnable{
		nodes:            nodes,
		edges:            maps.Clone(g.edges),
		conditionalEdges: maps.Clone(g.conditionalEdges),
		entryPoint:       entry,
	}, nil
}

// EntryPoint returns the node the START edge points to.
func (r *Runnable) EntryPoint() string {
	return r.entryPoint
}
