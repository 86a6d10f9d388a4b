package store

import (
	"context"
	"log"
	"sync"

	"github.com/khlab/cocktail-lab/internal/apiclient"
	"github.com/khlab/cocktail-lab/internal/models"
)

// RemoteCocktailStore is the remote-synchronized variant of the recipe
// store. Mutations go through the service and the response counters are
// authoritative; the in-memory collection only mirrors them. A loading flag
// and an error slot are staged around every call for the UI to observe, and
// failures are re-thrown to the caller after being recorded.
type RemoteCocktailStore struct {
	mu        sync.Mutex
	client    *apiclient.Client
	cocktails []models.Cocktail
	loading   bool
	lastErr   error
}

// NewRemoteCocktailStore wraps the given service client. Call Refresh to
// populate the collection.
func NewRemoteCocktailStore(client *apiclient.Client) *RemoteCocktailStore {
	return &RemoteCocktailStore{client: client}
}

// Loading reports whether a service call is in flight.
func (s *RemoteCocktailStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LastError returns the most recent call's failure, or nil after a success.
func (s *RemoteCocktailStore) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *RemoteCocktailStore) begin() {
	s.mu.Lock()
	s.loading = true
	s.lastErr = nil
	s.mu.Unlock()
}

func (s *RemoteCocktailStore) finish(err error) {
	s.mu.Lock()
	s.loading = false
	s.lastErr = err
	s.mu.Unlock()
	if err != nil {
		log.Printf("remote recipe store: %v", err)
	}
}

// Refresh reloads the whole collection from the service.
func (s *RemoteCocktailStore) Refresh(ctx context.Context) error {
	s.begin()
	cocktails, err := s.client.ListCocktails(ctx)
	s.finish(err)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.cocktails = cocktails
	s.mu.Unlock()
	return nil
}

// AddCocktail validates locally, then creates the cocktail on the service.
// The returned record carries the server-assigned id.
func (s *RemoteCocktailStore) AddCocktail(ctx context.Context, draft models.CocktailDraft) (models.Cocktail, error) {
	s.begin()
	created, err := s.client.CreateCocktail(ctx, draft)
	s.finish(err)
	if err != nil {
		return models.Cocktail{}, err
	}
	s.mu.Lock()
	s.cocktails = append(s.cocktails, created)
	s.mu.Unlock()
	return created, nil
}

// UpdateCocktail replaces the identified cocktail on the service and mirrors
// the response.
func (s *RemoteCocktailStore) UpdateCocktail(ctx context.Context, id models.ID, draft models.CocktailDraft) (models.Cocktail, error) {
	s.begin()
	updated, err := s.client.UpdateCocktail(ctx, id, draft)
	s.finish(err)
	if err != nil {
		return models.Cocktail{}, err
	}
	s.mu.Lock()
	if idx := s.findLocked(id); idx >= 0 {
		s.cocktails[idx] = updated
	}
	s.mu.Unlock()
	return updated, nil
}

// DeleteCocktail deletes on the service, then drops the mirrored record.
func (s *RemoteCocktailStore) DeleteCocktail(ctx context.Context, id models.ID) error {
	s.begin()
	err := s.client.DeleteCocktail(ctx, id)
	s.finish(err)
	if err != nil {
		return err
	}
	s.mu.Lock()
	if idx := s.findLocked(id); idx >= 0 {
		s.cocktails = append(s.cocktails[:idx], s.cocktails[idx+1:]...)
	}
	s.mu.Unlock()
	return nil
}

// ToggleLike flips the caller's like server-side and mirrors the returned
// counters. Unauthenticated callers no-op. Rapid repeated toggles race with
// the network: ordering is last-response-wins until the next Refresh.
func (s *RemoteCocktailStore) ToggleLike(ctx context.Context, id, userID models.ID) error {
	if userID == "" {
		return nil
	}
	s.begin()
	result, err := s.client.ToggleLike(ctx, id)
	s.finish(err)
	if err != nil {
		return err
	}
	s.mu.Lock()
	if idx := s.findLocked(id); idx >= 0 {
		s.cocktails[idx].LikeCount = result.LikeCount
		s.cocktails[idx].IsLiked = result.IsLiked
	}
	s.mu.Unlock()
	return nil
}

// IsLikedByUser reports the mirrored membership flag for the current user.
// Always false for an empty user id.
func (s *RemoteCocktailStore) IsLikedByUser(id, userID models.ID) bool {
	if userID == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.findLocked(id); idx >= 0 {
		return s.cocktails[idx].IsLiked
	}
	return false
}

// GetLikeCount returns the mirrored server counter.
func (s *RemoteCocktailStore) GetLikeCount(id models.ID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.findLocked(id); idx >= 0 {
		return s.cocktails[idx].LikeCount
	}
	return 0
}

// GetUserCocktails filters the mirrored collection by owner.
func (s *RemoteCocktailStore) GetUserCocktails(userID models.ID) []models.Cocktail {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Cocktail
	for _, c := range s.cocktails {
		if c.OwnerID == userID {
			out = append(out, c)
		}
	}
	return out
}

// ListCocktails returns a copy of the mirrored collection.
func (s *RemoteCocktailStore) ListCocktails() []models.Cocktail {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Cocktail(nil), s.cocktails...)
}

func (s *RemoteCocktailStore) findLocked(id models.ID) int {
	for i, c := range s.cocktails {
		if c.ID == id {
			return i
		}
	}
	return -1
}
