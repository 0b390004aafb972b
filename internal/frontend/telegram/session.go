package telegram

import (
	"sync"
)

// session is the per-user state kept between messages.
type session struct {
	lastMovieID int // last movie shown; target of a bare /similar
}

// sessionManager manages per-user sessions and access control.
type sessionManager struct {
	mu       sync.Mutex
	sessions map[int64]*session
	allowed  map[int64]bool // nil or empty = allow all
}

// newSessionManager creates a session manager.
// If allowedUserIDs is empty, all users are allowed.
func newSessionManager(allowedUserIDs []int64) *sessionManager {
	allowed := make(map[int64]bool, len(allowedUserIDs))
	for _, id := range allowedUserIDs {
		allowed[id] = true
	}
	return &sessionManager{
		sessions: make(map[int64]*session),
		allowed:  allowed,
	}
}

// isAllowed checks if a user is authorized to use the bot.
func (sm *sessionManager) isAllowed(userID int64) bool {
	if len(sm.allowed) == 0 {
		return true
	}
	return sm.allowed[userID]
}

// rememberMovie records the last movie a user looked at.
func (sm *sessionManager) rememberMovie(userID int64, movieID int) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	s, ok := sm.sessions[userID]
	if !ok {
		s = &session{}
		sm.sessions[userID] = s
	}
	s.lastMovieID = movieID
}

// lastMovie returns the last movie a user looked at, or 0.
func (sm *sessionManager) lastMovie(userID int64) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if s, ok := sm.sessions[userID]; ok {
		return s.lastMovieID
	}
	return 0
}

// reset clears a user's session.
func (sm *sessionManager) reset(userID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.sessions, userID)
}
