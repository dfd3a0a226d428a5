package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textMsg(id, sender, text string, ts time.Time) Message {
	return Message{ID: id, SenderID: sender, Text: text, Timestamp: ts, Type: TextMessage}
}

func marker(id, label string) Message {
	return Message{ID: id, SenderID: SystemDateSender, Text: label, Type: TextMessage}
}

func testConversation(msgs ...Message) *Conversation {
	c := NewConversation()
	c.Participants = []Participant{
		{ID: "a", Name: "Alice"},
		{ID: "b", Name: "Bob"},
	}
	c.Messages = msgs
	return c
}

func TestCollapseDateMarkersIdempotent(t *testing.T) {
	day := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	msgs := []Message{
		marker("d1", "Monday"),
		marker("d2", "Tuesday"),
		marker("d3", "Wednesday"),
		textMsg("m1", "a", "hi", day),
		marker("d4", "Thursday"),
		marker("d5", "Friday"),
		textMsg("m2", "b", "hey", day),
	}

	once := CollapseDateMarkers(msgs)
	twice := CollapseDateMarkers(once)

	require.Len(t, once, 4)
	assert.Equal(t, "Monday", once[0].Text)
	assert.Equal(t, "Thursday", once[2].Text)
	assert.Equal(t, once, twice)
}

func TestRenderGroupsEmptyList(t *testing.T) {
	c := testConversation()
	assert.Empty(t, c.RenderGroups(GroupOptions{ShowDateDividers: true}))
	assert.Empty(t, c.RenderGroups(GroupOptions{}))
}

func TestRenderGroupsBucketsByFirstSeenDate(t *testing.T) {
	mar3 := time.Date(2024, 3, 3, 9, 0, 0, 0, time.UTC)
	mar1 := time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)

	// The second message is dated before the first bucket; it must open a
	// new bucket after it, not reorder them.
	c := testConversation(
		textMsg("m1", "a", "later day first", mar3),
		textMsg("m2", "b", "earlier day second", mar1),
		textMsg("m3", "a", "back to the first day", mar3.Add(time.Hour)),
	)

	groups := c.RenderGroups(GroupOptions{ShowDateDividers: true})
	require.Len(t, groups, 2)
	assert.Equal(t, "March 3, 2024", groups[0].Header)
	assert.Equal(t, "March 1, 2024", groups[1].Header)
	require.Len(t, groups[0].Messages, 2)
	require.Len(t, groups[1].Messages, 1)
	assert.Equal(t, "m1", groups[0].Messages[0].ID)
	assert.Equal(t, "m3", groups[0].Messages[1].ID)
}

func TestRenderGroupsCustomDateLabel(t *testing.T) {
	c := testConversation(textMsg("m1", "a", "hi", time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)))

	groups := c.RenderGroups(GroupOptions{
		ShowDateDividers: true,
		DateLabel:        func(t time.Time) string { return t.Format("02.01.2006") },
	})
	require.Len(t, groups, 1)
	assert.Equal(t, "01.03.2024", groups[0].Header)
}

func TestRenderGroupsDividersOffSingleGroup(t *testing.T) {
	mar1 := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	mar2 := mar1.AddDate(0, 0, 1)
	c := testConversation(
		textMsg("m1", "a", "day one", mar1),
		textMsg("m2", "b", "day two", mar2),
	)

	groups := c.RenderGroups(GroupOptions{ShowDateDividers: false})
	require.Len(t, groups, 1)
	assert.Empty(t, groups[0].Header)
	require.Len(t, groups[0].Messages, 2)
}

func TestRenderGroupsExplicitMarkersDisableBucketing(t *testing.T) {
	mar1 := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	mar2 := mar1.AddDate(0, 0, 1)
	c := testConversation(
		textMsg("m1", "a", "before", mar1),
		marker("d1", "Yesterday"),
		textMsg("m2", "a", "after", mar2),
		textMsg("m3", "b", "and more", mar2),
	)

	// Dividers are on, but the explicit marker wins over auto bucketing.
	groups := c.RenderGroups(GroupOptions{ShowDateDividers: true})
	require.Len(t, groups, 2)

	assert.Empty(t, groups[0].Header)
	require.Len(t, groups[0].Messages, 1)

	assert.Equal(t, "Yesterday", groups[1].Header)
	assert.True(t, groups[1].Marker)
	require.Len(t, groups[1].Messages, 2)

	// The message right after the marker starts a new run even though the
	// sender did not change.
	assert.True(t, groups[1].Messages[0].RunStart)
	assert.True(t, groups[1].Messages[1].RunStart) // sender changed
}

func TestRunDetectionThreePlusOne(t *testing.T) {
	day := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	c := testConversation(
		textMsg("m1", "a", "one", day),
		textMsg("m2", "a", "two", day.Add(time.Minute)),
		textMsg("m3", "a", "three", day.Add(2*time.Minute)),
		textMsg("m4", "b", "four", day.Add(3*time.Minute)),
	)

	groups := c.RenderGroups(GroupOptions{ShowDateDividers: true})
	require.Len(t, groups, 1)
	msgs := groups[0].Messages
	require.Len(t, msgs, 4)

	assert.True(t, msgs[0].RunStart)
	assert.False(t, msgs[1].RunStart)
	assert.False(t, msgs[2].RunStart)
	assert.True(t, msgs[3].RunStart)
}

func TestRunDetectionConversationScenario(t *testing.T) {
	day := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	c := testConversation(
		textMsg("m1", "a", "Hi", day),
		textMsg("m2", "b", "Hey", day.Add(time.Minute)),
		textMsg("m3", "b", "How are you", day.Add(2*time.Minute)),
	)

	groups := c.RenderGroups(GroupOptions{ShowDateDividers: true})
	require.Len(t, groups, 1)
	msgs := groups[0].Messages

	assert.True(t, msgs[0].RunStart, "first message starts a run")
	assert.True(t, msgs[1].RunStart, "sender change starts a run")
	assert.False(t, msgs[2].RunStart, "same sender continues the run")
}

func TestRenderGroupsUnknownSenderPlaceholder(t *testing.T) {
	day := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	c := testConversation(textMsg("m1", "ghost", "boo", day))

	groups := c.RenderGroups(GroupOptions{ShowDateDividers: true})
	require.Len(t, groups, 1)
	m := groups[0].Messages[0]

	assert.False(t, m.KnownSender)
	assert.Equal(t, "Unknown", m.SenderName)
	assert.Equal(t, "?", m.Initial)
}

func TestRenderGroupsAnnotatesMe(t *testing.T) {
	day := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	c := testConversation(
		textMsg("m1", "a", "mine", day),
		textMsg("m2", "b", "theirs", day),
	)
	c.MeID = "a"

	groups := c.RenderGroups(GroupOptions{})
	require.Len(t, groups, 1)
	assert.True(t, groups[0].Messages[0].FromMe)
	assert.False(t, groups[0].Messages[1].FromMe)
}
