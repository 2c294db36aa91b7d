package events

import (
	"errors"
	"time"

	"conexaoiris/internal/domain/categories"
)

var (
	ErrNotFound          = errors.New("event suggestion not found")
	ErrCategoryNotFound  = errors.New("category not found")
	QueryTimeoutDuration = time.Second * 5
)

type Status string

// Moderation states. Every suggestion is created PENDING; APPROVED and
// REJECTED are reached only through the moderation path.
const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type EventSuggestion struct {
	ID            int64                `json:"id"`
	Title         string               `json:"title"`
	CategoryID    int64                `json:"category_id"`
	Category      *categories.Category `json:"category,omitempty"`
	Description   *string              `json:"description,omitempty"`
	Date          time.Time            `json:"date"`
	Time          *string              `json:"time,omitempty"`
	Location      string               `json:"location"`
	Organizer     string               `json:"organizer"`
	Price         *float64             `json:"price,omitempty"`
	LgbtqFriendly bool                 `json:"lgbtq_friendly"`
	Tags          []string             `json:"tags"`
	Status        Status               `json:"status"`
	UserID        *int64               `json:"user_id,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// CreateEventInput is the validated submission the handler passes in. Date
// is already checked against today; tags are trimmed and capped; price is
// non-negative with two-decimal precision.
type CreateEventInput struct {
	Title         string
	CategoryID    int64
	Description   *string
	Date          time.Time
	Time          *string
	Location      string
	Organizer     string
	Price         *float64
	LgbtqFriendly bool
	Tags          []string
	UserID        *int64
}

// Filter is the conjunctive public-listing filter. Tags match by exact
// element membership, OR-ed across the requested tags.
type Filter struct {
	CategoryKey   string
	LgbtqFriendly *bool
	Tags          []string
}

// ModerationFilter selects suggestions for the admin surface.
type ModerationFilter struct {
	Status *Status
	Limit  int
	Offset int
}
