package graph

import (
	"context"
	"fmt"

	"github.com/MidasKylix/langgraph/log"
)

// Invoke runs the graph once from its entry point with the given state and
// returns the final state after END is reached. It does not touch any
// checkpoint store; use Engine for thread-scoped, persisted runs.
func (r *Runnable) Invoke(ctx context.Context, state State) (State, error) {
	final, _, err := r.run(ctx, state, nil, log.GetDefaultLogger())
	return final, err
}

// run drives the step loop: invoke the current node, merge its update,
// evaluate the outgoing edge, repeat until END. It returns the final state
// and every message produced, in generation order. On a node failure the
// partially merged state is returned alongside the error so callers can
// inspect it, but nothing is persisted.
func (r *Runnable) run(ctx context.Context, state State, emit func(Message), logger log.Logger) (State, []Message, error) {
	var produced []Message
	current := r.entryPoint

	for current != END {
		fn, ok := r.nodes[current]
		if !ok {
			return state, produced, fmt.Errorf("%w: %s", ErrUnknownNode, current)
		}

		update, err := fn(ctx, state)
		if err != nil {
			return state, produced, &NodeExecutionError{Node: current, Err: err}
		}

		state = AddMessages(state, update)
		produced = append(produced, update...)
		if emit != nil {
			for _, m := range update {
				emit(m)
			}
		}

		next, err := r.next(ctx, current, state)
		if err != nil {
			return state, produced, err
		}
		logger.Debug("step %s -> %s (%d new messages)", current, next, len(update))
		current = next
	}

	return state, produced, nil
}

// next resolves the outgoing edge of from against the merged state.
func (r *Runnable) next(ctx context.Context, from string, state State) (string, error) {
	if ce, ok := r.conditionalEdges[from]; ok {
		dest := ce.router(ctx, state)
		if !ce.destinations[dest] {
			return "", fmt.Errorf("%w: %q from %s", ErrInvalidRoute, dest, from)
		}
		return dest, nil
	}
	if to, ok := r.edges[from]; ok {
		return to, nil
	}
	// Compile guarantees an outgoing edge for every node.
	return "", fmt.Errorf("%w: %s", ErrUnreachableNode, from)
}
