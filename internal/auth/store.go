// Package auth holds the current-user session. It runs in one of two modes:
// a local in-memory user registry with its own credential check, or full
// delegation to the remote member service.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/khlab/cocktail-lab/internal/apiclient"
	"github.com/khlab/cocktail-lab/internal/models"
	"github.com/khlab/cocktail-lab/internal/persist"
)

// Typed auth failures. These are returned, never panicked, and leave the
// session state unchanged.
var (
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// registryEntry is a local-mode user record. The raw credential is retained
// in the persisted registry. Known prototype weakness, kept on purpose
// rather than silently hardened.
type registryEntry struct {
	User     models.User `json:"user"`
	Password string      `json:"password"`
}

// snapshot is the persisted part of the store: the session user and, in
// local mode, the whole registry.
type snapshot struct {
	User     *models.User             `json:"user,omitempty"`
	Registry map[string]registryEntry `json:"registry,omitempty"`
}

// Store is the authentication store. A nil client selects local-registry
// mode.
type Store struct {
	mu      sync.Mutex
	adapter persist.Adapter
	client  *apiclient.Client
	state   snapshot
}

// NewLocalStore builds a local-registry store, restoring any persisted
// session and registry.
func NewLocalStore(adapter persist.Adapter) (*Store, error) {
	return newStore(adapter, nil)
}

// NewRemoteStore builds a store that delegates signup and login to the
// member service. Only the session user is persisted.
func NewRemoteStore(adapter persist.Adapter, client *apiclient.Client) (*Store, error) {
	return newStore(adapter, client)
}

func newStore(adapter persist.Adapter, client *apiclient.Client) (*Store, error) {
	s := &Store{adapter: adapter, client: client}
	s.state.Registry = make(map[string]registryEntry)

	data, err := adapter.Load(context.Background(), persist.AuthStoreKey)
	if errors.Is(err, persist.ErrNotFound) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &s.state); err != nil {
		return nil, err
	}
	if s.state.Registry == nil {
		s.state.Registry = make(map[string]registryEntry)
	}
	return s, nil
}

func (s *Store) commitLocked(ctx context.Context) {
	state := s.state
	if s.client != nil {
		// Remote mode never persists a registry.
		state.Registry = nil
	}
	data, err := json.Marshal(state)
	if err != nil {
		log.Printf("auth store: failed to encode snapshot: %v", err)
		return
	}
	if err := s.adapter.Save(ctx, persist.AuthStoreKey, data); err != nil {
		log.Printf("auth store: failed to persist snapshot: %v", err)
	}
}

// CurrentUser returns the authenticated user, or nil when anonymous.
func (s *Store) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.User == nil {
		return nil
	}
	user := *s.state.User
	return &user
}

// MemberNo yields the current user's id for the identity header, or "" when
// anonymous.
func (s *Store) MemberNo() string {
	if user := s.CurrentUser(); user != nil {
		return user.ID.String()
	}
	return ""
}

// Signup creates an account and transitions to Authenticated. Local mode
// enforces case-sensitive username uniqueness against the registry; remote
// mode mirrors the service verdict and adopts the server-issued identity.
func (s *Store) Signup(ctx context.Context, username, password, nickname, email string) (models.User, error) {
	if s.client != nil {
		user, err := s.client.Signup(ctx, username, password, nickname, email)
		if err != nil {
			return models.User{}, err
		}
		s.setUser(ctx, user)
		return user, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.commitLocked(ctx)

	if _, exists := s.state.Registry[username]; exists {
		return models.User{}, ErrDuplicateUsername
	}
	user := models.User{
		ID:       models.ID(uuid.NewString()),
		Username: username,
		Nickname: nickname,
		Email:    email,
	}
	s.state.Registry[username] = registryEntry{User: user, Password: password}
	s.state.User = &user
	return user, nil
}

// Login verifies credentials. Local mode requires an exact username and
// credential match; remote mode delegates.
func (s *Store) Login(ctx context.Context, username, password string) (models.User, error) {
	if s.client != nil {
		user, err := s.client.Login(ctx, username, password)
		if err != nil {
			return models.User{}, err
		}
		s.setUser(ctx, user)
		return user, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.commitLocked(ctx)

	entry, exists := s.state.Registry[username]
	if !exists || entry.Password != password {
		return models.User{}, ErrInvalidCredentials
	}
	user := entry.User
	s.state.User = &user
	return user, nil
}

// Logout unconditionally returns to Anonymous. No network call is made.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.commitLocked(ctx)
	s.state.User = nil
}

// CheckUsernameExists is a registry membership query in local mode and a
// dedicated service lookup in remote mode.
func (s *Store) CheckUsernameExists(ctx context.Context, username string) (bool, error) {
	if s.client != nil {
		return s.client.CheckUsernameExists(ctx, username)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.state.Registry[username]
	return exists, nil
}

func (s *Store) setUser(ctx context.Context, user models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.commitLocked(ctx)
	s.state.User = &user
}
