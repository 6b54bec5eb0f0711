// Package session holds the client's authentication state for the lifetime
// of one run: the opaque token received at login and the id of the user it
// belongs to. It replaces ambient global token lookups with one explicit
// object that is read once at startup and cleared once at logout.
package session

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Store persists the opaque token between runs. The persistence format is
// the store's own business.
type Store interface {
	Save(token string) error
	Load() (string, error)
	Clear() error
}

// The created_by fallback when the server did not report a user id at
// login. Matches the single seeded admin account.
const defaultUserID = 1

type Session struct {
	mu     sync.RWMutex
	token  string
	userID int
	store  Store
	log    *logrus.Logger
}

// New builds a session and restores any previously persisted token. A
// restore failure is not fatal; the user simply has to log in again.
func New(store Store, logger *logrus.Logger) *Session {
	s := &Session{
		store:  store,
		userID: defaultUserID,
		log:    logger,
	}
	token, err := store.Load()
	if err != nil {
		logger.Warnf("Session: Could not restore persisted token: %v", err)
		return s
	}
	if token != "" {
		logger.Info("Session: Restored persisted token")
		s.token = token
	}
	return s
}

// Establish records a successful login and persists the token.
func (s *Session) Establish(token string, userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	if userID > 0 {
		s.userID = userID
	} else {
		s.userID = defaultUserID
	}
	if err := s.store.Save(token); err != nil {
		s.log.Errorf("Session: Failed to persist token: %v", err)
		return err
	}
	s.log.Infof("Session: Established for user ID %d", s.userID)
	return nil
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) UserID() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// Clear tears the session down on logout, removing the persisted token.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.userID = defaultUserID
	if err := s.store.Clear(); err != nil {
		s.log.Errorf("Session: Failed to clear persisted token: %v", err)
		return err
	}
	s.log.Info("Session: Cleared")
	return nil
}
