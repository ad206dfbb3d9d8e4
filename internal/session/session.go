// Package session persists the signed-in account as a token file and a
// profile.json next to it. The two are written and removed as a pair;
// a corrupt pair degrades to signed-out rather than erroring.
package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"clouddrive/internal/domain"
	"clouddrive/internal/logging"
)

const (
	tokenFile   = "token"
	profileFile = "profile.json"
)

// TokenSink receives the current credential whenever it changes. The
// api client implements it.
type TokenSink interface {
	SetToken(token string)
}

type Store struct {
	dir   string
	sink  TokenSink
	token string
	user  *domain.User
}

func DefaultDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "clouddrive"), nil
}

func NewStore(dir string, sink TokenSink) *Store {
	return &Store{dir: dir, sink: sink}
}

// Load rehydrates the session from disk. A missing pair means signed
// out; a half-written or unparseable pair is wiped and likewise means
// signed out. Load never fails the program start.
func (s *Store) Load() {
	tokenBytes, tokenErr := os.ReadFile(filepath.Join(s.dir, tokenFile))
	profileBytes, profileErr := os.ReadFile(filepath.Join(s.dir, profileFile))

	if errors.Is(tokenErr, fs.ErrNotExist) && errors.Is(profileErr, fs.ErrNotExist) {
		return
	}
	if tokenErr != nil || profileErr != nil {
		logging.L().Warn("session files unreadable, clearing",
			zap.NamedError("token_err", tokenErr),
			zap.NamedError("profile_err", profileErr))
		s.Clear()
		return
	}

	token := strings.TrimSpace(string(tokenBytes))
	var user domain.User
	if token == "" || json.Unmarshal(profileBytes, &user) != nil {
		logging.L().Warn("session files corrupt, clearing")
		s.Clear()
		return
	}

	s.token = token
	s.user = &user
	if s.sink != nil {
		s.sink.SetToken(token)
	}
}

// Establish stores the credential and profile in memory and on disk and
// pushes the token into the sink.
func (s *Store) Establish(token string, user *domain.User) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	profileBytes, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(token), 0o600); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, profileFile), profileBytes, 0o600); err != nil {
		return err
	}

	s.token = token
	s.user = user
	if s.sink != nil {
		s.sink.SetToken(token)
	}
	return nil
}

// UpdateUser rewrites the stored profile without touching the token.
func (s *Store) UpdateUser(user *domain.User) error {
	if !s.Authenticated() {
		return errors.New("no active session")
	}
	return s.Establish(s.token, user)
}

// Clear signs out. Calling it on an already signed-out store is a no-op.
func (s *Store) Clear() {
	_ = os.Remove(filepath.Join(s.dir, tokenFile))
	_ = os.Remove(filepath.Join(s.dir, profileFile))
	s.token = ""
	s.user = nil
	if s.sink != nil {
		s.sink.SetToken("")
	}
}

func (s *Store) Authenticated() bool {
	return s.token != "" && s.user != nil
}

func (s *Store) Token() string { return s.token }

func (s *Store) User() *domain.User { return s.user }
