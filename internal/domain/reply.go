package domain

const (
	audioPreviewLabel = "Voice message"
	imagePreviewLabel = "Photo"

	previewMaxLen = 50
	previewCutLen = 47
)

// ReplyPreview is what a reply quote block shows: who is being answered
// and a short excerpt of the target message.
type ReplyPreview struct {
	SenderName string
	Text       string
	Type       MessageType
}

// PreviewText derives the quoted excerpt for a message by type: audio and
// image messages get a fixed label (the image caption when present), text
// is truncated to its first 47 runes when longer than 50.
func PreviewText(m Message) string {
	switch m.Type {
	case AudioMessage:
		return audioPreviewLabel
	case ImageMessage:
		if m.ImageCaption != "" {
			return m.ImageCaption
		}
		return imagePreviewLabel
	default:
		return truncatePreview(m.Text)
	}
}

// ResolveReply resolves the reply target of m. When the target is still in
// the list the preview is derived from it; when it is not, the preview
// cached at send time is used with sender "Unknown" so the reply stays
// renderable. ok is false when m is not a reply at all.
func (c *Conversation) ResolveReply(m Message) (ReplyPreview, bool) {
	if m.ReplyToID == "" {
		return ReplyPreview{}, false
	}

	target, found := c.MessageByID(m.ReplyToID)
	if !found {
		return ReplyPreview{
			SenderName: "Unknown",
			Text:       m.ReplyToPreview,
			Type:       m.ReplyToType,
		}, true
	}

	name := "Unknown"
	if p, ok := c.ParticipantByID(target.SenderID); ok {
		name = p.Name
	}
	return ReplyPreview{
		SenderName: name,
		Text:       PreviewText(target),
		Type:       target.Type,
	}, true
}

func truncatePreview(s string) string {
	r := []rune(s)
	if len(r) <= previewMaxLen {
		return s
	}
	return string(r[:previewCutLen]) + "..."
}
