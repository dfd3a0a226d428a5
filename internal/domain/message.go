package domain

import "time"

type MessageType string

const (
	TextMessage  MessageType = "text"
	AudioMessage MessageType = "audio"
	ImageMessage MessageType = "image"
)

// SystemDateSender is the reserved sender id for inline date markers.
// A message carrying it is rendered as a date header, not a bubble.
const SystemDateSender = "system_date"

// Message is one entry of the transcript. Messages are append-only and
// never mutated after creation; reply metadata is cached at send time so
// a reply stays renderable even if its target becomes unavailable.
type Message struct {
	ID        string      `json:"id"`
	SenderID  string      `json:"senderId"`
	Text      string      `json:"text"`
	Timestamp time.Time   `json:"timestamp"`
	Type      MessageType `json:"type"`

	AudioDuration string `json:"audioDuration,omitempty"` // MM:SS or HH:MM:SS, audio only
	ImageURL      string `json:"imageUrl,omitempty"`
	ImageCaption  string `json:"imageCaption,omitempty"`

	ReplyToID      string      `json:"replyToId,omitempty"`
	ReplyToPreview string      `json:"replyToPreview,omitempty"`
	ReplyToType    MessageType `json:"replyToType,omitempty"`
}

// IsDateMarker reports whether the message is a system date marker.
func (m Message) IsDateMarker() bool {
	return m.SenderID == SystemDateSender
}

// MessageDraft carries the caller-supplied fields of a new message.
// The id and reply cache are filled in by the service on send.
type MessageDraft struct {
	SenderID      string
	Text          string
	Timestamp     time.Time
	Type          MessageType
	AudioDuration string
	ImageURL      string
	ImageCaption  string
	ReplyToID     string
}
