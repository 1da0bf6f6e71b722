package graph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MidasKylix/langgraph/log"
	"github.com/MidasKylix/langgraph/store"
)

// Engine executes a compiled graph against per-thread persisted state. Each
// thread id names one ongoing conversation; the engine loads the thread's
// checkpoint before a run and overwrites it after the run reaches END.
//
// The engine owns no conversation state between runs. The caller owns the
// checkpoint store and its lifecycle.
type Engine struct {
	runnable *Runnable
	store    store.Store
	logger   log.Logger
	listener func(Message)

	mu      sync.Mutex
	running map[string]bool
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger replaces the engine's logger.
func WithLogger(logger log.Logger) EngineOption {
	return func(e *Engine) { e.logger = logger }
}

// WithMessageListener registers a callback invoked for every produced
// message in generation order, before the run completes. It lets a caller
// stream incremental output while the step loop is still running. The
// callback runs on the submitting goroutine and must not block.
func WithMessageListener(fn func(Message)) EngineOption {
	return func(e *Engine) { e.listener = fn }
}

// NewEngine creates an engine over a compiled graph and a checkpoint store.
func NewEngine(runnable *Runnable, st store.Store, opts ...EngineOption) *Engine {
	e := &Engine{
		runnable: runnable,
		store:    st,
		logger:   log.GetDefaultLogger(),
		running:  make(map[string]bool),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RunResult is what one completed run produced.
type RunResult struct {
	// Messages are the messages generated by this run, in order. The human
	// input itself is not included.
	Messages []Message

	// State is the full merged conversation state as checkpointed.
	State State

	// Terminal reports that the run reached END. Reaching END does not mean
	// the logical conversation is over: routing deliberately sends
	// "awaiting human reply" states to END, and the thread resumes from its
	// checkpoint on the next Submit.
	Terminal bool
}

// Submit runs one turn for a thread: it loads the thread's checkpoint (an
// empty conversation for a new thread id), appends the human input, and
// drives the graph until END. The checkpoint is written only after the full
// run completes; a failing node aborts the run and leaves the previous
// checkpoint untouched.
//
// At most one run per thread id may be in flight. A concurrent Submit for
// the same thread fails with ErrThreadBusy; distinct threads run
// independently.
func (e *Engine) Submit(ctx context.Context, threadID, input string) (*RunResult, error) {
	if threadID == "" {
		return nil, errors.New("thread id must not be empty")
	}
	if err := e.acquire(threadID); err != nil {
		return nil, err
	}
	defer e.release(threadID)

	state, version, err := e.loadState(ctx, threadID)
	if err != nil {
		return nil, err
	}
	state = AddMessages(state, []Message{HumanMessage(input)})

	runID := uuid.NewString()
	e.logger.Debug("run %s: thread %s resuming with %d messages", runID, threadID, len(state.Messages))

	final, produced, err := e.runnable.run(ctx, state, e.listener, e.logger)
	if err != nil {
		e.logger.Error("run %s: thread %s aborted: %v", runID, threadID, err)
		return nil, err
	}

	cp := &store.Checkpoint{
		ThreadID:  threadID,
		Timestamp: time.Now(),
		Version:   version + 1,
	}
	if cp.State, err = json.Marshal(final); err != nil {
		return nil, fmt.Errorf("marshal state for thread %s: %w", threadID, err)
	}
	if err := e.store.Save(ctx, cp); err != nil {
		return nil, fmt.Errorf("save checkpoint for thread %s: %w", threadID, err)
	}

	e.logger.Info("run %s: thread %s completed, %d messages produced", runID, threadID, len(produced))
	return &RunResult{Messages: produced, State: final, Terminal: true}, nil
}

// History returns the persisted conversation state for a thread, or an empty
// state for an unknown thread id.
func (e *Engine) History(ctx context.Context, threadID string) (State, error) {
	state, _, err := e.loadState(ctx, threadID)
	return state, err
}

func (e *Engine) loadState(ctx context.Context, threadID string) (State, int, error) {
	cp, err := e.store.Load(ctx, threadID)
	if errors.Is(err, store.ErrNotFound) {
		return State{}, 0, nil
	}
	if err != nil {
		return State{}, 0, fmt.Errorf("load checkpoint for thread %s: %w", threadID, err)
	}
	var state State
	if err := json.Unmarshal(cp.State, &state); err != nil {
		return State{}, 0, fmt.Errorf("decode checkpoint for thread %s: %w", threadID, err)
	}
	return state, cp.Version, nil
}

func (e *Engine) acquire(threadID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running[threadID] {
		return fmt.Errorf("%w: %s", ErrThreadBusy, threadID)
	}
	e.running[threadID] = true
	return nil
}

func (e *Engine) release(threadID string) {
	e.mu.Lock()
	delete(e.running, threadID)
	e.mu.Unlock()
}
