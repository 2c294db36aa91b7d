// Package tags implements the wire format used for suggestion tags: a JSON
// array of strings stored inside a single text column.
package tags

import (
	"encoding/json"
	"strings"
)

// MaxTags is the maximum number of tags a suggestion may carry.
const MaxTags = 10

// Serialize encodes a tag slice as JSON text for storage. A nil slice
// serializes as "[]".
func Serialize(tags []string) string {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// Parse decodes the stored JSON text back into a tag slice. Malformed or
// non-array input yields an empty slice, never an error.
func Parse(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return []string{}
	}
	if out == nil {
		return []string{}
	}
	return out
}

// Normalize trims every tag and drops the ones that end up empty, keeping
// the original order of the survivors.
func Normalize(in []string) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}
