package store_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MidasKylix/langgraph/store"
)

func TestMemoryStoreSaveLoad(t *testing.T) {
	t.Parallel()

	st := store.NewMemoryStore()
	ctx := context.Background()

	cp := &store.Checkpoint{
		ThreadID:  "thread-1",
		State:     json.RawMessage(`{"messages":[{"type":"human","content":"Hi"}]}`),
		Timestamp: time.Now(),
		Version:   1,
	}
	require.NoError(t, st.Save(ctx, cp))

	loaded, err := st.Load(ctx, "thread-1")
	require.NoError(t, err)
	assert.Equal(t, cp.ThreadID, loaded.ThreadID)
	assert.Equal(t, cp.Version, loaded.Version)
	assert.JSONEq(t, string(cp.State), string(loaded.State))
}

func TestMemoryStoreLoadMissing(t *testing.T) {
	t.Parallel()

	st := store.NewMemoryStore()
	_, err := st.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestMemoryStoreOverwrite(t *testing.T) {
	t.Parallel()

	st := store.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, &store.Checkpoint{
		ThreadID: "thread-1",
		State:    json.RawMessage(`{"messages":[]}`),
		Version:  1,
	}))
	require.NoError(t, st.Save(ctx, &store.Checkpoint{
		ThreadID: "thread-1",
		State:    json.RawMessage(`{"messages":[{"type":"human","content":"Hi"}]}`),
		Version:  2,
	}))

	loaded, err := st.Load(ctx, "thread-1")
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Version)
}

func TestMemoryStoreDelete(t *testing.T) {
	t.Parallel()

	st := store.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, &store.Checkpoint{ThreadID: "thread-1", State: json.RawMessage(`{}`)}))
	require.NoError(t, st.Delete(ctx, "thread-1"))

	_, err := st.Load(ctx, "thread-1")
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Deleting an absent thread is not an error.
	assert.NoError(t, st.Delete(ctx, "thread-1"))
}

func TestMemoryStoreCopiesOnSaveAndLoad(t *testing.T) {
	t.Parallel()

	st := store.NewMemoryStore()
	ctx := context.Background()

	state := json.RawMessage(`{"messages":[]}`)
	cp := &store.Checkpoint{ThreadID: "thread-1", State: state, Version: 1}
	require.NoError(t, st.Save(ctx, cp))

	// Mutating the caller's copy after Save must not affect what is stored.
	state[2] = 'X'
	cp.Version = 99

	loaded, err := st.Load(ctx, "thread-1")
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Version)
	assert.JSONEq(t, `{"messages":[]}`, string(loaded.State))

	// Mutating a loaded copy must not affect subsequent loads.
	loaded.State[2] = 'Y'
	again, err := st.Load(ctx, "thread-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"messages":[]}`, string(again.State))
}
