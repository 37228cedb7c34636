package session

import (
	"fmt"
	"sync"

	"auction-house/internal/auctionerrors"
	"auction-house/utils"
)

// Session is one authenticated client's server-side state: the user it
// belongs to and the ordered watchlist of listing ids.
type Session struct {
	Token     string
	UserID    int64
	watchlist []int64
}

// Store is a concurrency-safe in-memory session store keyed by opaque token
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session // key: token -> value: session state
}

// NewStore creates a new session store instance
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
	}
}

// Create opens a new session for a user and returns its token
func (s *Store) Create(userID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &Session{
		Token:  utils.GenerateID(),
		UserID: userID,
	}
	s.sessions[sess.Token] = sess
	return sess
}

// Get returns the session for a token
func (s *Store) Get(token string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[token]
	if !ok {
		return nil, fmt.Errorf("get session: %w", auctionerrors.ErrSessionNotFound)
	}
	return sess, nil
}

// Delete removes a session. Deleting an unknown token is a no-op.
func (s *Store) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// AddToWatchlist appends a listing id to the session's watchlist. The
// watchlist is an ordered set: adding an id already present is a no-op.
func (s *Store) AddToWatchlist(token string, listingID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return fmt.Errorf("add to watchlist: %w", auctionerrors.ErrSessionNotFound)
	}
	for _, id := range sess.watchlist {
		if id == listingID {
			return nil
		}
	}
	sess.watchlist = append(sess.watchlist, listingID)
	return nil
}

// RemoveFromWatchlist removes a listing id from the session's watchlist,
// failing with ErrNotWatched if it is absent.
func (s *Store) RemoveFromWatchlist(token string, listingID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return fmt.Errorf("remove from watchlist: %w", auctionerrors.ErrSessionNotFound)
	}
	for i, id := range sess.watchlist {
		if id == listingID {
			sess.watchlist = append(sess.watchlist[:i], sess.watchlist[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("remove listing %d from watchlist: %w", listingID, auctionerrors.ErrNotWatched)
}

// Watchlist returns the session's watched listing ids in insertion order
func (s *Store) Watchlist(token string) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[token]
	if !ok {
		return nil, fmt.Errorf("get watchlist: %w", auctionerrors.ErrSessionNotFound)
	}
	return append([]int64(nil), sess.watchlist...), nil
}

// IsWatching reports whether the session currently watches a listing
func (s *Store) IsWatching(token string, listingID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[token]
	if !ok {
		return false
	}
	for _, id := range sess.watchlist {
		if id == listingID {
			return true
		}
	}
	return false
}
