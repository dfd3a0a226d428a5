package domain

import (
	"context"
	"io"
	"time"
)

// Screen is the prepared view handed to renderers: the current state, the
// UI preferences and the grouped messages. Now supplies the clock shown in
// the status bar when no custom time is set.
type Screen struct {
	Conversation *Conversation
	Prefs        Prefs
	Groups       []RenderGroup
	Now          time.Time
}

// StatusTime returns the time string for the phone status bar.
func (s *Screen) StatusTime() string {
	if t := s.Conversation.Status.CustomTime; t != "" {
		return t
	}
	return s.Now.Format("15:04")
}

// Store persists the conversation document and the UI preference slots.
// Load never fails on a missing or malformed document; it falls back to
// the documented defaults instead.
type Store interface {
	Load() (*Conversation, Prefs, error)
	Save(conv *Conversation, prefs Prefs) error
	Close() error
}

// Renderer renders a prepared screen to an output writer.
type Renderer interface {
	Render(w io.Writer, screen *Screen) error
}

// DraftLine is one message of a composed transcript draft.
type DraftLine struct {
	Sender string
	Text   string
}

// Composer drafts a synthetic transcript from a scenario description.
type Composer interface {
	Compose(ctx context.Context, scenario string) ([]DraftLine, error)
}
