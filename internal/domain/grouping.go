package domain

import "time"

// GroupOptions configures the grouping pass.
type GroupOptions struct {
	// ShowDateDividers enables automatic per-day headers. It has no effect
	// once explicit date markers are present in the list.
	ShowDateDividers bool
	// DateLabel formats automatic headers; nil falls back to DefaultDateLabel.
	DateLabel func(time.Time) string
}

// RenderGroup is the unit handed to a renderer: an optional header plus the
// bubbles below it. A group produced by an explicit date marker has Marker
// set; the headerless group carries the flat message run when no header
// applies.
type RenderGroup struct {
	Header   string
	Marker   bool
	Messages []RenderMessage
}

// RenderMessage is a message annotated with everything a renderer needs:
// resolved sender identity and whether the message starts a new run.
// Only the first message of a run shows the sender's name, avatar and the
// bubble tail; the rest of the run renders compact.
type RenderMessage struct {
	Message
	RunStart    bool
	SenderName  string
	Initial     string
	Avatar      string
	KnownSender bool
	FromMe      bool
}

// DefaultDateLabel formats automatic date headers.
func DefaultDateLabel(t time.Time) string {
	return t.Format("January 2, 2006")
}

// CollapseDateMarkers removes back-to-back date markers, keeping the first
// of each consecutive run. The pass is idempotent.
func CollapseDateMarkers(msgs []Message) []Message {
	out := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		if m.IsDateMarker() && len(out) > 0 && out[len(out)-1].IsDateMarker() {
			continue
		}
		out = append(out, m)
	}
	return out
}

// RenderGroups turns the flat message list into renderable groups.
//
// With dividers enabled and no explicit markers present, messages are
// bucketed by calendar day in the order each day is first encountered;
// buckets are never re-sorted, so a message authored with an earlier date
// joins its existing bucket (or appends a new one) without reordering.
// When dividers are disabled, or any explicit marker exists, a single flat
// pass is made instead and markers act as inline headers.
//
// An empty message list yields no groups; that is the empty-state signal,
// not an error.
func (c *Conversation) RenderGroups(opts GroupOptions) []RenderGroup {
	msgs := CollapseDateMarkers(c.Messages)
	if len(msgs) == 0 {
		return nil
	}

	label := opts.DateLabel
	if label == nil {
		label = DefaultDateLabel
	}

	hasMarkers := false
	for _, m := range msgs {
		if m.IsDateMarker() {
			hasMarkers = true
			break
		}
	}

	if opts.ShowDateDividers && !hasMarkers {
		return c.groupByDay(msgs, label)
	}
	return c.groupFlat(msgs)
}

func (c *Conversation) groupByDay(msgs []Message, label func(time.Time) string) []RenderGroup {
	groups := make([]RenderGroup, 0, 1)
	index := make(map[string]int) // day key -> position in groups

	for _, m := range msgs {
		y, mo, d := m.Timestamp.Date()
		key := m.Timestamp.Format("2006-01-02")
		i, seen := index[key]
		if !seen {
			day := time.Date(y, mo, d, 0, 0, 0, 0, m.Timestamp.Location())
			groups = append(groups, RenderGroup{Header: label(day)})
			i = len(groups) - 1
			index[key] = i
		}
		groups[i].Messages = append(groups[i].Messages, c.annotate(m))
	}

	markRuns(groups)
	return groups
}

func (c *Conversation) groupFlat(msgs []Message) []RenderGroup {
	var groups []RenderGroup
	current := RenderGroup{}
	flush := func() {
		if current.Header != "" || len(current.Messages) > 0 {
			groups = append(groups, current)
		}
	}
	for _, m := range msgs {
		if m.IsDateMarker() {
			flush()
			current = RenderGroup{Header: m.Text, Marker: true}
			continue
		}
		current.Messages = append(current.Messages, c.annotate(m))
	}
	flush()

	markRuns(groups)
	return groups
}

func (c *Conversation) annotate(m Message) RenderMessage {
	rm := RenderMessage{Message: m, SenderName: "Unknown", Initial: "?"}
	if p, ok := c.ParticipantByID(m.SenderID); ok {
		rm.SenderName = p.Name
		rm.Initial = p.Initial()
		rm.Avatar = p.Avatar
		rm.KnownSender = true
	}
	rm.FromMe = c.MeID != "" && m.SenderID == c.MeID
	return rm
}

// markRuns flags the first message of every same-sender run. Group
// boundaries (day buckets and explicit markers alike) always start a new
// run regardless of sender.
func markRuns(groups []RenderGroup) {
	for gi := range groups {
		msgs := groups[gi].Messages
		for i := range msgs {
			msgs[i].RunStart = i == 0 || msgs[i-1].SenderID != msgs[i].SenderID
		}
	}
}
