// Package membership generates the printable membership-card codes shown on
// a member's profile. Codes are short, stable obfuscations of the user ID so
// the card number never exposes the raw sequence.
package membership

import (
	"fmt"
	"strings"

	hashids "github.com/speps/go-hashids/v2"
)

const (
	codePrefix    = "IRIS"
	minCodeLength = 6
)

type CardCodec struct {
	h *hashids.HashID
}

// NewCardCodec builds a codec from the deployment salt. The salt must stay
// stable across releases or issued card codes stop resolving.
func NewCardCodec(salt string) (*CardCodec, error) {
	data := hashids.NewData()
	data.Salt = salt
	data.MinLength = minCodeLength
	data.Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	h, err := hashids.NewWithData(data)
	if err != nil {
		return nil, err
	}
	return &CardCodec{h: h}, nil
}

// Encode derives the card code for a user ID, e.g. "IRIS-7K2MNP".
func (c *CardCodec) Encode(userID int64) (string, error) {
	code, err := c.h.EncodeInt64([]int64{userID})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s", codePrefix, code), nil
}

// Decode resolves a card code back to the user ID it was issued for.
func (c *CardCodec) Decode(code string) (int64, error) {
	raw := strings.TrimPrefix(code, codePrefix+"-")
	ids, err := c.h.DecodeInt64WithError(raw)
	if err != nil {
		return 0, err
	}
	if len(ids) != 1 {
		return 0, fmt.Errorf("malformed card code %q", code)
	}
	return ids[0], nil
}
