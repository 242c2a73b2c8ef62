// Package session persists the current user identity across client
// restarts, the way the browser app kept it in origin-scoped storage.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/demandvibes/taskdesk/internal/logger"
	"github.com/demandvibes/taskdesk/internal/model"
)

// FileName is the on-disk key for the stored identity, JSON-encoded
// {id, email, name}.
const FileName = "currentUser.json"

var _ model.SessionStore = (*Store)(nil)

// Store is a file-backed session store. Every failure mode (missing
// file, corrupt JSON, unwritable directory) degrades to "no session";
// no method returns an error.
type Store struct {
	path   string
	logger *logger.Logger
}

// NewStore creates a session store rooted at dir.
func NewStore(dir string, logger *logger.Logger) *Store {
	return &Store{
		path:   filepath.Join(dir, FileName),
		logger: logger,
	}
}

// Set persists user, replacing any existing identity. The write is
// atomic (temp file + rename) so a crash mid-write cannot leave a
// half-written session behind.
func (s *Store) Set(user model.User) {
	data, err := json.Marshal(user)
	if err != nil {
		s.logger.Error("session: failed to encode user", "error", err)
		return
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		s.logger.Error("session: failed to create state directory", "error", err)
		return
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		s.logger.Error("session: failed to write session file", "error", err)
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		s.logger.Error("session: failed to replace session file", "error", err)
	}
}

// Get reads the stored identity. Returns nil when there is no session
// or the stored data cannot be decoded.
func (s *Store) Get() *model.User {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		s.logger.Warn("session: discarding corrupt session file", "error", err)
		return nil
	}
	return &user
}

// Clear removes the stored identity. Clearing an already-empty store
// is a no-op.
func (s *Store) Clear() {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		s.logger.Error("session: failed to remove session file", "error", err)
	}
}

// IsAuthenticated reports whether a stored identity exists.
func (s *Store) IsAuthenticated() bool {
	return s.Get() != nil
}
