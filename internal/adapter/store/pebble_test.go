package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/M4ss1ck/whatsapp-simulator/internal/domain"
)

func openTestStore(t *testing.T) *PebbleStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestLoadEmptyStoreYieldsDefaults(t *testing.T) {
	s := openTestStore(t)

	conv, prefs, err := s.Load()
	require.NoError(t, err)

	assert.Empty(t, conv.Participants)
	assert.Equal(t, "Group Chat", conv.Settings.Title)
	assert.Equal(t, domain.GroupChat, conv.Settings.Mode)
	assert.Equal(t, 100, conv.Status.BatteryLevel)

	assert.Equal(t, domain.DefaultPrefs(), prefs)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)

	conv := domain.NewConversation()
	conv.Participants = []domain.Participant{{ID: "p1", Name: "Alice"}}
	conv.Messages = []domain.Message{{
		ID: "m1", SenderID: "p1", Text: "hi",
		Timestamp: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
		Type:      domain.TextMessage,
	}}
	conv.MeID = "p1"
	prefs := domain.Prefs{PreviewOnRight: true, DarkMode: true, ShowDateDividers: false, ChatBackground: "bg.png"}

	require.NoError(t, s.Save(conv, prefs))

	gotConv, gotPrefs, err := s.Load()
	require.NoError(t, err)

	assert.Equal(t, conv.Participants, gotConv.Participants)
	assert.Equal(t, conv.MeID, gotConv.MeID)
	require.Len(t, gotConv.Messages, 1)
	assert.True(t, gotConv.Messages[0].Timestamp.Equal(conv.Messages[0].Timestamp))
	assert.Equal(t, prefs, gotPrefs)
}

func TestSaveOverwrites(t *testing.T) {
	s := openTestStore(t)

	conv := domain.NewConversation()
	conv.Settings.Title = "First"
	require.NoError(t, s.Save(conv, domain.DefaultPrefs()))

	conv.Settings.Title = "Second"
	require.NoError(t, s.Save(conv, domain.DefaultPrefs()))

	got, _, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "Second", got.Settings.Title)
}

func TestPrefSlotsAreIndependent(t *testing.T) {
	s := openTestStore(t)

	prefs := domain.Prefs{DarkMode: true, ShowDateDividers: true, ChatBackground: "keep-me"}
	require.NoError(t, s.Save(domain.NewConversation(), prefs))

	// Overwrite the conversation slot directly; preference slots must
	// keep their values.
	require.NoError(t, s.set(keyConversation, []byte("not json")))

	conv, gotPrefs, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "Group Chat", conv.Settings.Title, "broken slot falls back to defaults")
	assert.Equal(t, prefs, gotPrefs)
}
