package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/M4ss1ck/whatsapp-simulator/internal/domain"
)

const defaultScreenWidth = 64

// palette holds the colors of one theme.
type palette struct {
	background  lipgloss.Color
	foreground  lipgloss.Color
	muted       lipgloss.Color
	chrome      lipgloss.Color
	bubbleMe    lipgloss.Color
	bubbleOther lipgloss.Color
	accent      lipgloss.Color
}

var lightPalette = palette{
	background:  lipgloss.Color("255"),
	foreground:  lipgloss.Color("235"),
	muted:       lipgloss.Color("245"),
	chrome:      lipgloss.Color("29"),
	bubbleMe:    lipgloss.Color("157"),
	bubbleOther: lipgloss.Color("252"),
	accent:      lipgloss.Color("29"),
}

var darkPalette = palette{
	background:  lipgloss.Color("235"),
	foreground:  lipgloss.Color("252"),
	muted:       lipgloss.Color("243"),
	chrome:      lipgloss.Color("23"),
	bubbleMe:    lipgloss.Color("22"),
	bubbleOther: lipgloss.Color("237"),
	accent:      lipgloss.Color("36"),
}

// ScreenRenderer draws the full conversation screen, phone chrome
// included, using lipgloss styling.
type ScreenRenderer struct {
	Width int
}

func (r *ScreenRenderer) Render(w io.Writer, screen *domain.Screen) error {
	width := r.Width
	if width <= 0 {
		width = defaultScreenWidth
	}

	pal := lightPalette
	if screen.Prefs.DarkMode {
		pal = darkPalette
	}

	var sections []string
	sections = append(sections,
		r.statusBar(screen, pal, width),
		r.titleBar(screen, pal, width),
	)

	if len(screen.Groups) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(pal.muted).
			Width(width).
			Align(lipgloss.Center).
			Padding(1, 0).
			Render("No messages yet")
		sections = append(sections, empty)
	}

	for _, g := range screen.Groups {
		if g.Header != "" {
			sections = append(sections, r.dateChip(g.Header, pal, width))
		}
		for _, m := range g.Messages {
			sections = append(sections, r.bubble(screen, m, pal, width))
		}
	}

	out := lipgloss.JoinVertical(lipgloss.Left, sections...)
	_, err := fmt.Fprintln(w, out)
	return err
}

func (r *ScreenRenderer) statusBar(screen *domain.Screen, pal palette, width int) string {
	style := lipgloss.NewStyle().Background(pal.chrome).Foreground(lipgloss.Color("255"))

	left := style.Render(" " + screen.StatusTime())
	right := style.Render(fmt.Sprintf("%s %d%% ", batteryGlyph(screen.Conversation.Status.BatteryLevel), screen.Conversation.Status.BatteryLevel))
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + style.Render(strings.Repeat(" ", gap)) + right
}

func (r *ScreenRenderer) titleBar(screen *domain.Screen, pal palette, width int) string {
	conv := screen.Conversation
	style := lipgloss.NewStyle().Background(pal.chrome).Foreground(lipgloss.Color("255"))

	badge := chatBadge(conv)
	subtitle := "online"
	if conv.Settings.Mode == domain.GroupChat {
		subtitle = fmt.Sprintf("%d participants", len(conv.Participants))
	}

	line := fmt.Sprintf(" %s %s — %s", badge, conv.Settings.Title, subtitle)
	if pad := width - lipgloss.Width(line); pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	return style.Render(line)
}

func (r *ScreenRenderer) dateChip(label string, pal palette, width int) string {
	chip := lipgloss.NewStyle().
		Background(pal.bubbleOther).
		Foreground(pal.muted).
		Padding(0, 1).
		Render(label)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, chip)
}

func (r *ScreenRenderer) bubble(screen *domain.Screen, m domain.RenderMessage, pal palette, width int) string {
	conv := screen.Conversation
	maxBubble := width * 3 / 4

	var parts []string

	if m.RunStart && !m.FromMe && conv.Settings.Mode == domain.GroupChat {
		name := lipgloss.NewStyle().Foreground(pal.accent).Bold(true).Render(m.SenderName)
		parts = append(parts, name)
	}

	if reply, ok := conv.ResolveReply(m.Message); ok {
		quote := lipgloss.NewStyle().
			BorderLeft(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(pal.accent).
			PaddingLeft(1).
			Foreground(pal.muted).
			Render(reply.SenderName + "\n" + reply.Text)
		parts = append(parts, quote)
	}

	parts = append(parts, r.body(m, pal))

	ts := lipgloss.NewStyle().Foreground(pal.muted).Render(m.Timestamp.Format("15:04"))
	parts = append(parts, ts)

	fill := pal.bubbleOther
	if m.FromMe {
		fill = pal.bubbleMe
	}
	content := lipgloss.JoinVertical(lipgloss.Left, parts...)
	bubble := lipgloss.NewStyle().
		Background(fill).
		Foreground(pal.foreground).
		Padding(0, 1).
		MaxWidth(maxBubble).
		Render(content)

	// Only the first bubble of a run carries the tail and, for others in a
	// group chat, the avatar badge; the rest of the run renders compact.
	if m.FromMe {
		if m.RunStart {
			bubble = lipgloss.JoinHorizontal(lipgloss.Top, bubble, lipgloss.NewStyle().Foreground(fill).Render("◤"))
		}
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble)
	}

	prefix := "  "
	if m.RunStart {
		tail := lipgloss.NewStyle().Foreground(fill).Render("◥")
		bubble = lipgloss.JoinHorizontal(lipgloss.Top, tail, bubble)
		if conv.Settings.Mode == domain.GroupChat {
			bubble = lipgloss.JoinHorizontal(lipgloss.Top, avatarBadge(m, pal), " ", bubble)
			prefix = ""
		} else {
			prefix = ""
		}
	} else if conv.Settings.Mode == domain.GroupChat {
		prefix = "     "
	}
	return prefix + bubble
}

func (r *ScreenRenderer) body(m domain.RenderMessage, pal palette) string {
	switch m.Type {
	case domain.AudioMessage:
		return fmt.Sprintf("▶ ▂▃▅▃▂  %s", m.AudioDuration)
	case domain.ImageMessage:
		frame := lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Foreground(pal.muted).
			Padding(0, 2).
			Render("IMG")
		if m.ImageCaption != "" {
			return lipgloss.JoinVertical(lipgloss.Left, frame, m.ImageCaption)
		}
		return frame
	default:
		return m.Text
	}
}

// avatarBadge renders the participant avatar, falling back to the
// initial-letter badge when no reference is stored.
func avatarBadge(m domain.RenderMessage, pal palette) string {
	letter := m.Initial
	return lipgloss.NewStyle().
		Background(pal.accent).
		Foreground(lipgloss.Color("255")).
		Bold(true).
		Render(" " + letter + " ")
}

func chatBadge(conv *domain.Conversation) string {
	letter := "?"
	if name := strings.TrimSpace(conv.Settings.Title); name != "" {
		letter = strings.ToUpper(string([]rune(name)[0]))
	}
	return "(" + letter + ")"
}

func batteryGlyph(level int) string {
	switch {
	case level > 75:
		return "█"
	case level > 50:
		return "▆"
	case level > 25:
		return "▄"
	default:
		return "▂"
	}
}
