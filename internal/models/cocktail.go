package models

import (
	"encoding/base64"
	"strings"
	"time"
)

// DefaultDescription is the placeholder used when a draft leaves the
// description blank.
const DefaultDescription = "커스텀 칵테일"

// MaxImageBytes caps the decoded size of an inline image payload at 5 MB.
const MaxImageBytes = 5 << 20

// Cocktail is a user-authored recipe. Ids are opaque: locally created
// cocktails carry a creation-timestamp id, remote ones a server-assigned
// number, both normalized to the canonical string form.
type Cocktail struct {
	ID           ID         `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Ingredients  []string   `json:"ingredients"`
	Instructions string     `json:"instructions"`
	Image        string     `json:"image,omitempty"`
	OwnerID      ID         `json:"owner_id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`

	// Mirrored server counters, meaningful in remote mode only. In local
	// mode the like history log is the source of truth.
	LikeCount int  `json:"like_count,omitempty"`
	IsLiked   bool `json:"is_liked,omitempty"`
}

// CocktailDraft is the pre-validation input for a new or updated cocktail.
type CocktailDraft struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
	Image        string   `json:"image,omitempty"`
}

// Validate checks the persistence invariants: a cocktail needs a non-empty
// name, at least one ingredient entry and an image within the size cap.
func (d CocktailDraft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return &ValidationError{Field: "name", Message: "name must not be empty"}
	}
	if len(d.Ingredients) == 0 {
		return &ValidationError{Field: "ingredients", Message: "at least one ingredient is required"}
	}
	if err := ValidateImage(d.Image); err != nil {
		return err
	}
	return nil
}

// ValidateImage rejects inline-encoded images whose decoded payload exceeds
// MaxImageBytes. Plain paths and empty values always pass.
func ValidateImage(image string) error {
	if image == "" {
		return nil
	}
	payload := image
	if strings.HasPrefix(image, "data:") {
		idx := strings.Index(image, ",")
		if idx < 0 {
			return &ValidationError{Field: "image", Message: "malformed data URL"}
		}
		payload = image[idx+1:]
	} else if !strings.ContainsAny(image, "+/=") && len(image) < 1024 {
		// Short strings without base64 padding characters are treated as
		// storage paths, which carry no size constraint here.
		return nil
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > MaxImageBytes {
		return &ValidationError{Field: "image", Message: "image exceeds the 5 MB limit"}
	}
	return nil
}

// ValidationError reports an input rejected before any mutation or network
// call takes place.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
