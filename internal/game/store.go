package game

import "sync"

// SessionStore maps each room to at most one live GameSession. Lookups
// copy the pointer out under the store lock; per-room serialization is the
// session's own mutex, so the store lock is never held across an operation.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*GameSession
}

// NewSessionStore returns an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*GameSession)}
}

// Put registers s as the room's live session. It fails with
// ErrGameAlreadyInProgress when the room already owns one.
func (st *SessionStore) Put(room string, s *GameSession) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[room]; ok {
		return ErrGameAlreadyInProgress
	}
	st.sessions[room] = s
	return nil
}

// Get returns the room's live session, if any.
func (st *SessionStore) Get(room string) (*GameSession, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[room]
	return s, ok
}

// Remove drops the room's session. Removing an absent room is a no-op.
func (st *SessionStore) Remove(room string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, room)
}

// Len returns the number of live sessions.
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
