package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/M4ss1ck/whatsapp-simulator/internal/domain"
)

// memStore keeps the last saved state in memory and counts writes.
type memStore struct {
	conv  *domain.Conversation
	prefs domain.Prefs
	saves int
}

func (m *memStore) Load() (*domain.Conversation, domain.Prefs, error) {
	if m.conv == nil {
		return domain.NewConversation(), domain.DefaultPrefs(), nil
	}
	return m.conv, m.prefs, nil
}

func (m *memStore) Save(conv *domain.Conversation, prefs domain.Prefs) error {
	m.conv = conv
	m.prefs = prefs
	m.saves++
	return nil
}

func (m *memStore) Close() error { return nil }

func newTestService(t *testing.T) (*Service, *memStore) {
	t.Helper()
	st := &memStore{}
	svc, err := NewService(st)
	require.NoError(t, err)
	return svc, st
}

func TestAddParticipantAssignsUniqueIDs(t *testing.T) {
	svc, st := newTestService(t)

	a, ok := svc.AddParticipant("Alice", "")
	require.True(t, ok)
	b, ok := svc.AddParticipant("Bob", "https://example.com/bob.png")
	require.True(t, ok)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "https://example.com/bob.png", b.Avatar)
	assert.Equal(t, 2, st.saves, "every applied command persists")
}

func TestAddParticipantRejectsBlankName(t *testing.T) {
	svc, st := newTestService(t)

	_, ok := svc.AddParticipant("   ", "")
	assert.False(t, ok)
	assert.Empty(t, svc.Conversation().Participants)
	assert.Zero(t, st.saves)
}

func TestRemoveParticipantNullsMe(t *testing.T) {
	svc, _ := newTestService(t)
	a, _ := svc.AddParticipant("Alice", "")
	svc.AddParticipant("Bob", "")
	svc.AddParticipant("Cleo", "")
	require.True(t, svc.SetAsMe(a.ID))

	require.True(t, svc.RemoveParticipant(a.ID))

	conv := svc.Conversation()
	assert.Empty(t, conv.MeID)
	assert.Len(t, conv.Participants, 2)
	_, found := conv.ParticipantByID(a.ID)
	assert.False(t, found)
}

func TestRemoveParticipantUnknownID(t *testing.T) {
	svc, st := newTestService(t)
	svc.AddParticipant("Alice", "")
	saves := st.saves

	assert.False(t, svc.RemoveParticipant("nope"))
	assert.Equal(t, saves, st.saves)
}

func TestSetAsMeSwitchesToPrivateWithTwoParticipants(t *testing.T) {
	svc, _ := newTestService(t)
	a, _ := svc.AddParticipant("Alice", "")
	svc.AddParticipant("Bob", "")
	require.Equal(t, domain.GroupChat, svc.Conversation().Settings.Mode)

	require.True(t, svc.SetAsMe(a.ID))

	assert.Equal(t, a.ID, svc.Conversation().MeID)
	assert.Equal(t, domain.PrivateChat, svc.Conversation().Settings.Mode)
}

func TestSetAsMeKeepsGroupModeWithThreeParticipants(t *testing.T) {
	svc, _ := newTestService(t)
	a, _ := svc.AddParticipant("Alice", "")
	svc.AddParticipant("Bob", "")
	svc.AddParticipant("Cleo", "")

	require.True(t, svc.SetAsMe(a.ID))
	assert.Equal(t, domain.GroupChat, svc.Conversation().Settings.Mode)
}

func TestSetAsMeRejectsUnknownID(t *testing.T) {
	svc, _ := newTestService(t)
	svc.AddParticipant("Alice", "")

	assert.False(t, svc.SetAsMe("nope"))
	assert.Empty(t, svc.Conversation().MeID)
}

func TestSendMessageAppendsWithoutReordering(t *testing.T) {
	svc, _ := newTestService(t)
	a, _ := svc.AddParticipant("Alice", "")

	later := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)
	earlier := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	m1, ok := svc.SendMessage(domain.MessageDraft{SenderID: a.ID, Text: "second day", Timestamp: later})
	require.True(t, ok)
	m2, ok := svc.SendMessage(domain.MessageDraft{SenderID: a.ID, Text: "first day", Timestamp: earlier})
	require.True(t, ok)

	msgs := svc.Conversation().Messages
	require.Len(t, msgs, 2)
	assert.Equal(t, m1.ID, msgs[0].ID)
	assert.Equal(t, m2.ID, msgs[1].ID)
}

func TestSendMessageValidation(t *testing.T) {
	svc, _ := newTestService(t)
	a, _ := svc.AddParticipant("Alice", "")

	tests := []struct {
		name  string
		draft domain.MessageDraft
	}{
		{"empty sender", domain.MessageDraft{Text: "hi"}},
		{"system sender", domain.MessageDraft{SenderID: domain.SystemDateSender, Text: "hi"}},
		{"blank text", domain.MessageDraft{SenderID: a.ID, Text: "   "}},
		{"audio without duration", domain.MessageDraft{SenderID: a.ID, Type: domain.AudioMessage}},
		{"image without reference", domain.MessageDraft{SenderID: a.ID, Type: domain.ImageMessage}},
		{"unknown type", domain.MessageDraft{SenderID: a.ID, Type: "video", Text: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := svc.SendMessage(tt.draft)
			assert.False(t, ok)
		})
	}
	assert.Empty(t, svc.Conversation().Messages)
}

func TestSendMessageCachesReplyPreview(t *testing.T) {
	svc, _ := newTestService(t)
	a, _ := svc.AddParticipant("Alice", "")
	b, _ := svc.AddParticipant("Bob", "")

	target, ok := svc.SendMessage(domain.MessageDraft{SenderID: a.ID, Text: "the original message"})
	require.True(t, ok)

	reply, ok := svc.SendMessage(domain.MessageDraft{SenderID: b.ID, Text: "replying", ReplyToID: target.ID})
	require.True(t, ok)

	assert.Equal(t, target.ID, reply.ReplyToID)
	assert.Equal(t, "the original message", reply.ReplyToPreview)
	assert.Equal(t, domain.TextMessage, reply.ReplyToType)
}

func TestInsertDateMarker(t *testing.T) {
	svc, _ := newTestService(t)

	assert.False(t, svc.InsertDateMarker(""))
	assert.False(t, svc.InsertDateMarker("   \t"))
	assert.Empty(t, svc.Conversation().Messages)

	require.True(t, svc.InsertDateMarker("Yesterday"))
	msgs := svc.Conversation().Messages
	require.Len(t, msgs, 1)
	assert.True(t, msgs[0].IsDateMarker())
	assert.Equal(t, "Yesterday", msgs[0].Text)
}

func TestUpdateChatSettingsShallowMerge(t *testing.T) {
	svc, _ := newTestService(t)

	title := "Weekend Plans"
	require.True(t, svc.UpdateChatSettings(SettingsPatch{Title: &title}))

	s := svc.Conversation().Settings
	assert.Equal(t, "Weekend Plans", s.Title)
	assert.Equal(t, domain.GroupChat, s.Mode, "untouched field keeps its value")
}

func TestUpdatePhoneStatusRejectsBadBattery(t *testing.T) {
	svc, _ := newTestService(t)

	for _, level := range []int{0, -5, 101} {
		bad := level
		assert.False(t, svc.UpdatePhoneStatus(StatusPatch{BatteryLevel: &bad}))
	}
	assert.Equal(t, 100, svc.Conversation().Status.BatteryLevel)

	lvl := 42
	custom := "13:37"
	require.True(t, svc.UpdatePhoneStatus(StatusPatch{BatteryLevel: &lvl, CustomTime: &custom}))
	assert.Equal(t, 42, svc.Conversation().Status.BatteryLevel)
	assert.Equal(t, "13:37", svc.Conversation().Status.CustomTime)
}

func TestClearAvatar(t *testing.T) {
	svc, _ := newTestService(t)
	a, _ := svc.AddParticipant("Alice", "https://example.com/broken.png")

	require.True(t, svc.ClearAvatar(a.ID))
	p, _ := svc.Conversation().ParticipantByID(a.ID)
	assert.Empty(t, p.Avatar)

	// already clear, nothing to do
	assert.False(t, svc.ClearAvatar(a.ID))
}

func TestReplaceNullsDanglingMe(t *testing.T) {
	svc, _ := newTestService(t)

	conv := domain.NewConversation()
	conv.Participants = []domain.Participant{{ID: "x", Name: "Xena"}}
	conv.MeID = "someone-else"

	svc.Replace(conv, domain.DefaultPrefs())
	assert.Empty(t, svc.Conversation().MeID)
}

func TestScreenUsesDividerPref(t *testing.T) {
	svc, _ := newTestService(t)
	a, _ := svc.AddParticipant("Alice", "")
	svc.SendMessage(domain.MessageDraft{
		SenderID:  a.ID,
		Text:      "hello",
		Timestamp: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
	})

	screen := svc.Screen(time.Now())
	require.Len(t, screen.Groups, 1)
	assert.NotEmpty(t, screen.Groups[0].Header, "dividers default on")

	off := false
	svc.UpdatePrefs(PrefsPatch{ShowDateDividers: &off})
	screen = svc.Screen(time.Now())
	require.Len(t, screen.Groups, 1)
	assert.Empty(t, screen.Groups[0].Header)
}
