// Package store implements the client-side state core: the cocktail
// collection, the per-user like memberships, the like-event history and the
// popularity rankings derived from them.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/khlab/cocktail-lab/internal/models"
	"github.com/khlab/cocktail-lab/internal/persist"
)

// Snapshot is the whole persisted state of the recipe store. It is rewritten
// wholesale on every mutation.
type Snapshot struct {
	Cocktails []models.Cocktail `json:"cocktails"`
	// LikedBy maps a user id to the set of cocktail ids that user currently
	// likes. Membership is toggled, never counted.
	LikedBy map[models.ID][]models.ID `json:"liked_by"`
	// LikeHistory maps a cocktail id to the ordered unix-millisecond
	// timestamps of the like events it received. Its length is the
	// cocktail's like count.
	LikeHistory map[models.ID][]int64 `json:"like_history"`
}

func emptySnapshot() Snapshot {
	return Snapshot{
		LikedBy:     make(map[models.ID][]models.ID),
		LikeHistory: make(map[models.ID][]int64),
	}
}

// CocktailStore is the local-mode recipe store: a single in-memory source of
// truth whose every state transition is committed to the backing adapter.
type CocktailStore struct {
	mu      sync.Mutex
	adapter persist.Adapter
	now     func() time.Time
	state   Snapshot
	lastID  int64
}

// NewCocktailStore loads the persisted snapshot (an absent key yields an
// empty store) and returns a ready store.
func NewCocktailStore(adapter persist.Adapter) (*CocktailStore, error) {
	return NewCocktailStoreWithClock(adapter, time.Now)
}

// NewCocktailStoreWithClock is NewCocktailStore with an injected clock, so
// tests control the timestamps recorded by mutations.
func NewCocktailStoreWithClock(adapter persist.Adapter, now func() time.Time) (*CocktailStore, error) {
	s := &CocktailStore{
		adapter: adapter,
		now:     now,
		state:   emptySnapshot(),
	}

	data, err := adapter.Load(context.Background(), persist.RecipeStoreKey)
	if errors.Is(err, persist.ErrNotFound) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &s.state); err != nil {
		return nil, err
	}
	if s.state.LikedBy == nil {
		s.state.LikedBy = make(map[models.ID][]models.ID)
	}
	if s.state.LikeHistory == nil {
		s.state.LikeHistory = make(map[models.ID][]int64)
	}
	return s, nil
}

// commitLocked persists the current snapshot. It is deferred by every public
// mutator so the write happens on every exit path; on failure paths that is
// the untouched pre-mutation state. The write itself is fire-and-forget:
// a failed save is logged, never surfaced.
func (s *CocktailStore) commitLocked(ctx context.Context) {
	data, err := json.Marshal(s.state)
	if err != nil {
		log.Printf("recipe store: failed to encode snapshot: %v", err)
		return
	}
	if err := s.adapter.Save(ctx, persist.RecipeStoreKey, data); err != nil {
		log.Printf("recipe store: failed to persist snapshot: %v", err)
	}
}

// nextID assigns a creation-timestamp id, bumped monotonically when two
// cocktails land in the same millisecond.
func (s *CocktailStore) nextID() models.ID {
	ms := s.now().UnixMilli()
	if ms <= s.lastID {
		ms = s.lastID + 1
	}
	s.lastID = ms
	return models.CanonicalID(ms)
}

// AddCocktail validates the draft, assigns an id and creation timestamp and
// appends the cocktail to the collection. The new record is visible to all
// readers immediately.
func (s *CocktailStore) AddCocktail(ctx context.Context, draft models.CocktailDraft, ownerID models.ID) (models.Cocktail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.commitLocked(ctx)

	if err := draft.Validate(); err != nil {
		return models.Cocktail{}, err
	}

	description := strings.TrimSpace(draft.Description)
	if description == "" {
		description = models.DefaultDescription
	}

	cocktail := models.Cocktail{
		ID:           s.nextID(),
		Name:         strings.TrimSpace(draft.Name),
		Description:  description,
		Ingredients:  append([]string(nil), draft.Ingredients...),
		Instructions: strings.TrimSpace(draft.Instructions),
		Image:        draft.Image,
		OwnerID:      ownerID,
		CreatedAt:    s.now(),
	}
	s.state.Cocktails = append(s.state.Cocktails, cocktail)
	return cocktail, nil
}

// CocktailPatch carries the fields of an update; nil fields are left
// untouched.
type CocktailPatch struct {
	Name         *string
	Description  *string
	Ingredients  []string
	Instructions *string
	Image        *string
}

// UpdateCocktail merges the patch into the identified cocktail, re-validates
// the merged record and stamps the update time. An unknown id is a silent
// no-op (ok == false), not an error; a patch that would empty the name or
// the ingredient list is rejected and leaves the record untouched.
func (s *CocktailStore) UpdateCocktail(ctx context.Context, id models.ID, patch CocktailPatch) (models.Cocktail, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.commitLocked(ctx)

	idx := s.findLocked(id)
	if idx < 0 {
		return models.Cocktail{}, false, nil
	}

	merged := s.state.Cocktails[idx]
	if patch.Name != nil {
		merged.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		merged.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Ingredients != nil {
		merged.Ingredients = append([]string(nil), patch.Ingredients...)
	}
	if patch.Instructions != nil {
		merged.Instructions = strings.TrimSpace(*patch.Instructions)
	}
	if patch.Image != nil {
		merged.Image = *patch.Image
	}

	draft := models.CocktailDraft{
		Name:         merged.Name,
		Description:  merged.Description,
		Ingredients:  merged.Ingredients,
		Instructions: merged.Instructions,
		Image:        merged.Image,
	}
	if err := draft.Validate(); err != nil {
		return models.Cocktail{}, false, err
	}

	updated := s.now()
	merged.UpdatedAt = &updated
	s.state.Cocktails[idx] = merged
	return merged, true, nil
}

// DeleteCocktail removes the cocktail and every trace of its like events:
// the timestamp log and each user's membership entry. Deleting an unknown id
// is a no-op.
func (s *CocktailStore) DeleteCocktail(ctx context.Context, id models.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.commitLocked(ctx)

	idx := s.findLocked(id)
	if idx >= 0 {
		s.state.Cocktails = append(s.state.Cocktails[:idx], s.state.Cocktails[idx+1:]...)
	}
	delete(s.state.LikeHistory, id)
	for userID, liked := range s.state.LikedBy {
		filtered := liked[:0]
		for _, likedID := range liked {
			if likedID != id {
				filtered = append(filtered, likedID)
			}
		}
		if len(filtered) == 0 {
			delete(s.state.LikedBy, userID)
		} else {
			s.state.LikedBy[userID] = filtered
		}
	}
}

// ToggleLike flips the (user, cocktail) like membership. Unauthenticated
// callers (empty user id) cannot like, so the call is a no-op. Canceling a
// like removes the most recently recorded timestamp for the cocktail, which
// is not necessarily this user's own event. Legacy aggregate-history
// behavior, kept as-is.
func (s *CocktailStore) ToggleLike(ctx context.Context, cocktailID, userID models.ID) {
	if userID == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.commitLocked(ctx)

	liked := s.state.LikedBy[userID]
	pos := -1
	for i, id := range liked {
		if id == cocktailID {
			pos = i
			break
		}
	}

	if pos >= 0 {
		liked = append(liked[:pos], liked[pos+1:]...)
		if len(liked) == 0 {
			delete(s.state.LikedBy, userID)
		} else {
			s.state.LikedBy[userID] = liked
		}
		if hist := s.state.LikeHistory[cocktailID]; len(hist) > 0 {
			hist = hist[:len(hist)-1]
			if len(hist) == 0 {
				delete(s.state.LikeHistory, cocktailID)
			} else {
				s.state.LikeHistory[cocktailID] = hist
			}
		}
		return
	}

	s.state.LikedBy[userID] = append(liked, cocktailID)
	s.state.LikeHistory[cocktailID] = append(s.state.LikeHistory[cocktailID], s.now().UnixMilli())
}

// IsLikedByUser reports the current (user, cocktail) membership. It is
// always false for an empty user id.
func (s *CocktailStore) IsLikedByUser(cocktailID, userID models.ID) bool {
	if userID == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.state.LikedBy[userID] {
		if id == cocktailID {
			return true
		}
	}
	return false
}

// GetLikeCount returns the length of the cocktail's timestamp log.
func (s *CocktailStore) GetLikeCount(cocktailID models.ID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.LikeHistory[cocktailID])
}

// GetUserCocktails returns the cocktails owned by the given user, in
// insertion order.
func (s *CocktailStore) GetUserCocktails(userID models.ID) []models.Cocktail {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Cocktail
	for _, c := range s.state.Cocktails {
		if c.OwnerID == userID {
			out = append(out, c)
		}
	}
	return out
}

// ListCocktails returns a copy of the whole collection in insertion order.
func (s *CocktailStore) ListCocktails() []models.Cocktail {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Cocktail(nil), s.state.Cocktails...)
}

// TopTotal ranks the collection by all-time like count.
func (s *CocktailStore) TopTotal() []Ranked {
	s.mu.Lock()
	defer s.mu.Unlock()
	return TopTotal(s.state.Cocktails, s.state.LikeHistory)
}

// TopWeekly ranks by like events within the trailing seven days.
func (s *CocktailStore) TopWeekly(now time.Time) []Ranked {
	s.mu.Lock()
	defer s.mu.Unlock()
	return TopWeekly(s.state.Cocktails, s.state.LikeHistory, now)
}

// TopDaily ranks by like events on the current calendar day.
func (s *CocktailStore) TopDaily(now time.Time) []Ranked {
	s.mu.Lock()
	defer s.mu.Unlock()
	return TopDaily(s.state.Cocktails, s.state.LikeHistory, now)
}

func (s *CocktailStore) findLocked(id models.ID) int {
	for i, c := range s.state.Cocktails {
		if c.ID == id {
			return i
		}
	}
	return -1
}
