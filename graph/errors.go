package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrEntryPointNotSet is returned by Compile when no edge leaves START.
	ErrEntryPointNotSet = errors.New("entry point not set")

	// ErrDuplicateNode is returned when a node key is registered twice.
	ErrDuplicateNode = errors.New("node already registered")

	// ErrUnknownNode is returned when a node key does not exist in the graph.
	ErrUnknownNode = errors.New("node not found")

	// ErrDuplicateEdge is returned when a node is given more than one
	// outgoing edge. A node routes through exactly one fixed edge or one
	// conditional edge.
	ErrDuplicateEdge = errors.New("node already has an outgoing edge")

	// ErrInvalidRoute is returned when a conditional edge returns a
	// destination that was not declared when the edge was added.
	ErrInvalidRoute = errors.New("undeclared route destination")

	// ErrUnreachableNode is returned by Compile when a non-END node has no
	// outgoing edge, which would strand execution.
	ErrUnreachableNode = errors.New("no outgoing edge for node")

	// ErrThreadBusy is returned by Engine.Submit when a run for the same
	// thread id is already in progress. Callers should retry.
	ErrThreadBusy = errors.New("thread has a run in progress")
)

// NodeExecutionError wraps an error raised by a node body. It aborts the
// current run; the thread's last successful checkpoint is left untouched.
type NodeExecutionError struct {
	// Node is the key of the node that failed.
	Node string
	// Err is the underlying cause.
	Err error
}

func (e *NodeExecutionError) Error() string {
	return fmt.Sprintf("node %s failed: %v", e.Node, e.Err)
}

func (e *NodeExecutionError) Unwrap() error {
	return e.Err
}
