// Package export writes rendered conversations to files using the
// "<slug>-<ISO-date>.<ext>" naming pattern.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/M4ss1ck/whatsapp-simulator/internal/domain"
)

// Slug reduces a chat title to a filename-safe slug.
func Slug(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteRune('-')
			lastDash = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "chat"
	}
	return slug
}

// Filename builds the suggested export name for a conversation.
func Filename(title, ext string, now time.Time) string {
	return fmt.Sprintf("%s-%s.%s", Slug(title), now.Format("2006-01-02"), ext)
}

// Write renders the screen into dir under the suggested filename and
// returns the written path. A failed export leaves no state behind beyond
// a possibly partial file; the conversation itself is never touched.
func Write(dir, ext string, r domain.Renderer, screen *domain.Screen) (string, error) {
	name := Filename(screen.Conversation.Settings.Title, ext, screen.Now)
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	if err := r.Render(f, screen); err != nil {
		return "", fmt.Errorf("rendering export: %w", err)
	}
	return path, nil
}
