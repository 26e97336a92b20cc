package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSingleSessionPerRoom(t *testing.T) {
	st := NewSessionStore()
	a := &GameSession{Room: "room-1"}
	b := &GameSession{Room: "room-1"}

	require.NoError(t, st.Put("room-1", a))
	assert.ErrorIs(t, st.Put("room-1", b), ErrGameAlreadyInProgress)

	got, ok := st.Get("room-1")
	require.True(t, ok)
	assert.Same(t, a, got)

	st.Remove("room-1")
	_, ok = st.Get("room-1")
	assert.False(t, ok)
	st.Remove("room-1") // no-op
	assert.Zero(t, st.Len())
}
