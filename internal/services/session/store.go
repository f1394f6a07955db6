// Package session holds per-user analysis pipeline state in memory.
package session

import (
	"sync"

	"github.com/finbuddy/finbuddy/internal/interfaces"
	"github.com/finbuddy/finbuddy/internal/models"
)

// Store is an in-memory session store. State lives for the process lifetime;
// a restart returns every user to the main menu, which the welcome flow
// handles naturally.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]*models.UserSession
	locks    map[int64]*sync.Mutex
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[int64]*models.UserSession),
		locks:    make(map[int64]*sync.Mutex),
	}
}

// Get returns the user's session, creating a fresh menu-stage session on
// first use.
func (s *Store) Get(userID int64) *models.UserSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		sess = &models.UserSession{UserID: userID}
		s.sessions[userID] = sess
	}
	return sess
}

// Delete removes the user's session entirely.
func (s *Store) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// Lock acquires the user's event mutex and returns the release func. Events
// for one user are handled strictly one at a time; different users never
// block each other.
func (s *Store) Lock(userID int64) func() {
	s.mu.Lock()
	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

var _ interfaces.SessionStore = (*Store)(nil)
