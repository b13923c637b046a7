// Package session persists the signed-in user between launches. The
// record lives in a small json file managed through viper, mirroring
// how the rest of the configuration is handled.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/carelink/carelink-go/pkg/model"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	keyID        = "session.id"
	keyUsername  = "session.username"
	keyEmail     = "session.email"
	keyFirstName = "session.first_name"
	keyLastName  = "session.last_name"
)

// Store reads and writes the session file. Reads are all or nothing: a
// file with any field missing is treated as signed out, never as a
// partial user.
type Store struct {
	mu     sync.Mutex
	path   string
	logger *zap.Logger
}

// NewStore creates a session store backed by the file at path
func NewStore(path string, logger *zap.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger,
	}
}

// Save writes the signed-in user to disk, replacing any previous session
func (s *Store) Save(user *model.SessionUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("json")

	v.Set(keyID, user.ID)
	v.Set(keyUsername, user.Username)
	v.Set(keyEmail, user.Email)
	v.Set(keyFirstName, user.FirstName)
	v.Set(keyLastName, user.LastName)

	if err := v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	s.logger.Debug("saved session", zap.Int64("user_id", user.ID))
	return nil
}

// Load reads the persisted session. It returns (nil, nil) when no
// session exists or when the stored record is incomplete.
func (s *Store) Load() (*model.SessionUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil, nil
	}

	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	user := &model.SessionUser{
		ID:        v.GetInt64(keyID),
		Username:  v.GetString(keyUsername),
		Email:     v.GetString(keyEmail),
		FirstName: v.GetString(keyFirstName),
		LastName:  v.GetString(keyLastName),
	}

	if user.ID == 0 || user.Username == "" || user.Email == "" ||
		user.FirstName == "" || user.LastName == "" {
		s.logger.Warn("discarding incomplete session record", zap.String("path", s.path))
		return nil, nil
	}

	return user, nil
}

// Clear removes the session file. Clearing an absent session is not an
// error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
