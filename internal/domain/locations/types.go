package locations

import (
	"errors"
	"time"

	"conexaoiris/internal/domain/categories"
)

var (
	ErrNotFound          = errors.New("location suggestion not found")
	ErrCategoryNotFound  = errors.New("category not found")
	QueryTimeoutDuration = time.Second * 5
)

// Safety ratings a community member can assign to a place.
const (
	SafetySafe    = "safe"
	SafetyNeutral = "neutral"
	SafetyUnsafe  = "unsafe"
)

// LocationSuggestion is a community-submitted place. Locations carry no
// moderation status: every row is visible on the public listing.
type LocationSuggestion struct {
	ID            int64                `json:"id"`
	Name          string               `json:"name"`
	CategoryID    int64                `json:"category_id"`
	Category      *categories.Category `json:"category,omitempty"`
	Address       string               `json:"address"`
	Description   *string              `json:"description,omitempty"`
	Phone         *string              `json:"phone,omitempty"`
	Website       *string              `json:"website,omitempty"`
	LgbtqOwned    bool                 `json:"lgbtq_owned"`
	SafetyRating  string               `json:"safety_rating"`
	PublicVisible bool                 `json:"public_visible"`
	Latitude      *float64             `json:"latitude,omitempty"`
	Longitude     *float64             `json:"longitude,omitempty"`
	Tags          []string             `json:"tags"`
	UserID        *int64               `json:"user_id,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// CreateLocationInput is the validated submission the handler passes in.
// Tags are already trimmed and capped by validation.
type CreateLocationInput struct {
	Name          string
	CategoryID    int64
	Address       string
	Description   *string
	Phone         *string
	Website       *string
	LgbtqOwned    bool
	SafetyRating  string
	PublicVisible bool
	Latitude      *float64
	Longitude     *float64
	Tags          []string
	UserID        *int64
}
