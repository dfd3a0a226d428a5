package domain

import (
	"strings"
	"unicode"
)

// Participant is one member of the conversation. Avatar holds an opaque
// displayable image reference (URL or data URI); empty means "no avatar",
// rendered as an initial-letter badge instead.
type Participant struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// Initial returns the badge letter shown when no avatar is available.
func (p Participant) Initial() string {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return "?"
	}
	r := []rune(name)[0]
	return string(unicode.ToUpper(r))
}
