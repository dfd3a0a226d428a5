package renderer

import (
	"fmt"
	"io"

	"github.com/M4ss1ck/whatsapp-simulator/internal/domain"
)

// TextRenderer renders the conversation as plain text or markdown.
type TextRenderer struct {
	Markdown bool
}

func (r *TextRenderer) Render(w io.Writer, screen *domain.Screen) error {
	if len(screen.Groups) == 0 {
		_, err := fmt.Fprintln(w, "No messages yet.")
		return err
	}

	for gi, g := range screen.Groups {
		if g.Header != "" {
			if gi > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintln(w, r.formatHeader(g.Header)); err != nil {
				return err
			}
		}
		for _, m := range g.Messages {
			for _, line := range r.formatMessage(screen.Conversation, m) {
				if _, err := fmt.Fprintln(w, line); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (r *TextRenderer) formatHeader(label string) string {
	if r.Markdown {
		return fmt.Sprintf("*%s*", label)
	}
	return fmt.Sprintf("--- %s ---", label)
}

func (r *TextRenderer) formatMessage(conv *domain.Conversation, m domain.RenderMessage) []string {
	var lines []string

	if reply, ok := conv.ResolveReply(m.Message); ok {
		quote := fmt.Sprintf("> %s: %s", reply.SenderName, reply.Text)
		if !r.Markdown {
			quote = fmt.Sprintf("    | %s: %s", reply.SenderName, reply.Text)
		}
		lines = append(lines, quote)
	}

	ts := m.Timestamp.Format("15:04")
	body := r.formatBody(m)
	if m.RunStart {
		lines = append(lines, fmt.Sprintf("[%s] %s: %s", ts, m.SenderName, body))
	} else {
		lines = append(lines, fmt.Sprintf("[%s]  %s", ts, body))
	}
	return lines
}

func (r *TextRenderer) formatBody(m domain.RenderMessage) string {
	switch m.Type {
	case domain.AudioMessage:
		return fmt.Sprintf("[Voice message %s]", m.AudioDuration)
	case domain.ImageMessage:
		if m.ImageCaption != "" {
			return fmt.Sprintf("[Photo] %s", m.ImageCaption)
		}
		return "[Photo]"
	default:
		return m.Text
	}
}
