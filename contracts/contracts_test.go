package contracts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryStorePutThenGet(t *testing.T) {
	store := NewMemoryStore()
	doc := Document{AgentID: "agent-1", Version: 1, UpdatedAt: time.Now()}
	require.NoError(t, store.Put(doc))

	got, err := store.Get("agent-1")
	require.NoError(t, err)
	require.Equal(t, doc.AgentID, got.AgentID)
}

func TestMemoryStoreGetMissingIsNotFound(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Get("nope")
	require.ErrorIs(t, err, ErrNotFound)
}
