package apiclient

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/khlab/cocktail-lab/internal/models"
)

// envelope is the remote service's response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// cocktailPayload is the per-item wire shape of a cocktail.
type cocktailPayload struct {
	CocktailNo        int64    `json:"cocktailNo"`
	CocktailName      string   `json:"cocktailName"`
	Description       string   `json:"description"`
	Ingredients       []string `json:"ingredients"`
	Instructions      string   `json:"instructions"`
	CocktailImagePath string   `json:"cocktailImagePath"`
	MemberNo          int64    `json:"memberNo"`
	LikeCount         int      `json:"likeCount"`
	IsLiked           bool     `json:"isLiked"`
	CreatedAt         string   `json:"createdAt"`
	UpdatedAt         string   `json:"updatedAt"`
}

// cocktailRequest is the create/update body.
type cocktailRequest struct {
	CocktailName      string   `json:"cocktailName"`
	Description       string   `json:"description"`
	Ingredients       []string `json:"ingredients"`
	Instructions      string   `json:"instructions"`
	CocktailImagePath string   `json:"cocktailImagePath,omitempty"`
}

// LikeResult carries the authoritative counters after a like toggle.
type LikeResult struct {
	LikeCount int  `json:"likeCount"`
	IsLiked   bool `json:"isLiked"`
}

// memberPayload is the wire shape of a member identity.
type memberPayload struct {
	MemberNo int64  `json:"memberNo"`
	MemberID string `json:"memberId"`
	Nickname string `json:"nickname"`
}

type availabilityPayload struct {
	Available bool `json:"available"`
}

type signupRequest struct {
	MemberID string `json:"memberId"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
	Email    string `json:"email,omitempty"`
}

type loginRequest struct {
	MemberID string `json:"memberId"`
	Password string `json:"password"`
}

// TransportError reports a network failure, a non-2xx response or a
// service-level failure verdict. It is logged where it occurs and re-thrown
// to the caller, who owns the user-facing presentation.
type TransportError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.Status)
	default:
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// toModel converts a wire payload into the canonical domain record,
// normalizing the numeric ids to strings at the boundary.
func (p cocktailPayload) toModel() models.Cocktail {
	c := models.Cocktail{
		ID:           models.CanonicalID(p.CocktailNo),
		Name:         p.CocktailName,
		Description:  p.Description,
		Ingredients:  p.Ingredients,
		Instructions: p.Instructions,
		Image:        p.CocktailImagePath,
		OwnerID:      models.CanonicalID(p.MemberNo),
		LikeCount:    p.LikeCount,
		IsLiked:      p.IsLiked,
	}
	if t, ok := parseTime(p.CreatedAt); ok {
		c.CreatedAt = t
	}
	if t, ok := parseTime(p.UpdatedAt); ok {
		c.UpdatedAt = &t
	}
	return c
}

func (p memberPayload) toModel() models.User {
	return models.User{
		ID:       models.CanonicalID(p.MemberNo),
		Username: p.MemberID,
		Nickname: p.Nickname,
	}
}

// parseTime accepts RFC3339 as well as the zone-less format the backend
// emits for LocalDateTime values.
func parseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.Local); err == nil {
		return t, true
	}
	return time.Time{}, false
}
