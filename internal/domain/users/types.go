package users

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrDuplicateEmail    = errors.New("a user with that email already exists")
	QueryTimeoutDuration = time.Second * 5
)

type User struct {
	ID                   int64     `json:"id"`
	Name                 string    `json:"name"`
	Email                string    `json:"email"`
	Password             password  `json:"-"`
	ImageURL             *string   `json:"image_url,omitempty"`
	RefreshToken         string    `json:"-"`
	ResetPasswordToken   string    `json:"-"`
	ResetPasswordExpires time.Time `json:"-"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// Profile is the optional one-to-one membership-card data owned by a user.
type Profile struct {
	UserID            int64     `json:"user_id"`
	SexualOrientation *string   `json:"sexual_orientation,omitempty"`
	City              *string   `json:"city,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ProfileUpdate carries a membership-card edit: the user's display name plus
// the upserted profile fields.
type ProfileUpdate struct {
	Name              string
	SexualOrientation *string
	City              *string
}

// password keeps the plaintext out of serialized output while holding the
// bcrypt hash for storage and comparison.
type password struct {
	text *string
	hash []byte
}

func (p *password) Set(text string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(text), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	p.text = &text
	p.hash = hash

	return nil
}

func (p *password) Compare(text string) error {
	return bcrypt.CompareHashAndPassword(p.hash, []byte(text))
}

func (p *password) Hash() []byte {
	return p.hash
}
