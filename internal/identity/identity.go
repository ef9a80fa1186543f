// Package identity abstracts the external identity provider. The cart and
// order components poll it to choose between the per-user and the anonymous
// storage namespace.
package identity

import "sync"

type Provider interface {
	// CurrentUserID returns the signed-in user id, or false when the
	// session is anonymous.
	CurrentUserID() (string, bool)
}

// Static is a session-scoped provider whose user can be switched at runtime.
type Static struct {
	mu     sync.RWMutex
	userID string
}

func NewStatic(userID string) *Static {
	return &Static{userID: userID}
}

func (s *Static) CurrentUserID() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID, s.userID != ""
}

func (s *Static) SignIn(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = userID
}

func (s *Static) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = ""
}
