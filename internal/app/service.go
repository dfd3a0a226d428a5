package app

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/M4ss1ck/whatsapp-simulator/internal/domain"
	"github.com/M4ss1ck/whatsapp-simulator/internal/logger"
)

const ApplicationName = "wasim"

// Service owns the single conversation document of a session and exposes
// the commands that mutate it. Every command is synchronous and total:
// invalid input is silently rejected (the returned bool is false) and the
// state is untouched. Each applied mutation is followed by a persistence
// write.
type Service struct {
	store domain.Store
	conv  *domain.Conversation
	prefs domain.Prefs
}

// NewService loads the persisted state (or the defaults) from the store.
func NewService(store domain.Store) (*Service, error) {
	conv, prefs, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Service{store: store, conv: conv, prefs: prefs}, nil
}

func (s *Service) Conversation() *domain.Conversation { return s.conv }
func (s *Service) Prefs() domain.Prefs                { return s.prefs }

// Screen prepares the current view for a renderer.
func (s *Service) Screen(now time.Time) *domain.Screen {
	return &domain.Screen{
		Conversation: s.conv,
		Prefs:        s.prefs,
		Groups: s.conv.RenderGroups(domain.GroupOptions{
			ShowDateDividers: s.prefs.ShowDateDividers,
		}),
		Now: now,
	}
}

// AddParticipant appends a participant with a fresh id. Blank names are
// rejected.
func (s *Service) AddParticipant(name, avatar string) (domain.Participant, bool) {
	if strings.TrimSpace(name) == "" {
		return domain.Participant{}, false
	}
	p := domain.Participant{ID: uuid.NewString(), Name: name, Avatar: avatar}
	s.conv.Participants = append(s.conv.Participants, p)
	logger.Log.Info("participant added", zap.String("id", p.ID), zap.String("name", p.Name))
	s.persist()
	return p, true
}

// RemoveParticipant removes the matching participant. When it is the "me"
// participant, meId is nulled in the same update. Ids are never reused.
func (s *Service) RemoveParticipant(id string) bool {
	idx := -1
	for i, p := range s.conv.Participants {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	s.conv.Participants = append(s.conv.Participants[:idx], s.conv.Participants[idx+1:]...)
	if s.conv.MeID == id {
		s.conv.MeID = ""
	}
	s.maybeSwitchToPrivate()
	logger.Log.Info("participant removed", zap.String("id", id))
	s.persist()
	return true
}

// UpdateParticipant replaces the participant with the matching id; no-op
// when the id is unknown.
func (s *Service) UpdateParticipant(p domain.Participant) bool {
	for i := range s.conv.Participants {
		if s.conv.Participants[i].ID == p.ID {
			if strings.TrimSpace(p.Name) == "" {
				return false
			}
			s.conv.Participants[i] = p
			s.persist()
			return true
		}
	}
	return false
}

// ClearAvatar drops a participant's stored avatar reference. The
// presentation layer calls this when it reports a load failure; rendering
// falls back to the initial-letter badge.
func (s *Service) ClearAvatar(id string) bool {
	for i := range s.conv.Participants {
		if s.conv.Participants[i].ID == id {
			if s.conv.Participants[i].Avatar == "" {
				return false
			}
			s.conv.Participants[i].Avatar = ""
			logger.Log.Warn("avatar reference cleared after load failure", zap.String("id", id))
			s.persist()
			return true
		}
	}
	return false
}

// SetAsMe designates the participant whose messages render on the "me"
// side. Rejected when the id does not resolve. When exactly two
// participants exist afterwards, the chat switches to private mode.
func (s *Service) SetAsMe(id string) bool {
	if _, ok := s.conv.ParticipantByID(id); !ok {
		return false
	}
	s.conv.MeID = id
	s.maybeSwitchToPrivate()
	s.persist()
	return true
}

// SendMessage appends a new message. The message is always appended at the
// end of the list, even when its timestamp predates the previous entry.
// Reply metadata is cached from the target at send time.
func (s *Service) SendMessage(draft domain.MessageDraft) (domain.Message, bool) {
	if draft.SenderID == "" || draft.SenderID == domain.SystemDateSender {
		return domain.Message{}, false
	}
	switch draft.Type {
	case domain.TextMessage, "":
		draft.Type = domain.TextMessage
		if strings.TrimSpace(draft.Text) == "" {
			return domain.Message{}, false
		}
	case domain.AudioMessage:
		if draft.AudioDuration == "" {
			return domain.Message{}, false
		}
	case domain.ImageMessage:
		if draft.ImageURL == "" {
			return domain.Message{}, false
		}
	default:
		return domain.Message{}, false
	}

	ts := draft.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	m := domain.Message{
		ID:            uuid.NewString(),
		SenderID:      draft.SenderID,
		Text:          draft.Text,
		Timestamp:     ts,
		Type:          draft.Type,
		AudioDuration: draft.AudioDuration,
		ImageURL:      draft.ImageURL,
		ImageCaption:  draft.ImageCaption,
	}
	if draft.ReplyToID != "" {
		m.ReplyToID = draft.ReplyToID
		if target, ok := s.conv.MessageByID(draft.ReplyToID); ok {
			m.ReplyToPreview = domain.PreviewText(target)
			m.ReplyToType = target.Type
		}
	}

	s.conv.Messages = append(s.conv.Messages, m)
	s.persist()
	return m, true
}

// InsertDateMarker appends an inline date header. Blank labels are
// rejected.
func (s *Service) InsertDateMarker(label string) bool {
	if strings.TrimSpace(label) == "" {
		return false
	}
	s.conv.Messages = append(s.conv.Messages, domain.Message{
		ID:        uuid.NewString(),
		SenderID:  domain.SystemDateSender,
		Text:      label,
		Timestamp: time.Now(),
		Type:      domain.TextMessage,
	})
	s.persist()
	return true
}

// SettingsPatch carries the chat-settings fields to shallow-merge.
type SettingsPatch struct {
	Mode   *domain.ChatMode
	Title  *string
	Avatar *string
}

func (s *Service) UpdateChatSettings(p SettingsPatch) bool {
	if p.Mode != nil {
		if *p.Mode != domain.PrivateChat && *p.Mode != domain.GroupChat {
			return false
		}
		s.conv.Settings.Mode = *p.Mode
	}
	if p.Title != nil {
		s.conv.Settings.Title = *p.Title
	}
	if p.Avatar != nil {
		s.conv.Settings.Avatar = *p.Avatar
	}
	s.persist()
	return true
}

// StatusPatch carries the phone-status fields to shallow-merge.
type StatusPatch struct {
	BatteryLevel *int
	CustomTime   *string
}

func (s *Service) UpdatePhoneStatus(p StatusPatch) bool {
	if p.BatteryLevel != nil {
		if *p.BatteryLevel < 1 || *p.BatteryLevel > 100 {
			return false
		}
		s.conv.Status.BatteryLevel = *p.BatteryLevel
	}
	if p.CustomTime != nil {
		s.conv.Status.CustomTime = *p.CustomTime
	}
	s.persist()
	return true
}

// PrefsPatch carries the UI preference slots to shallow-merge.
type PrefsPatch struct {
	PreviewOnRight   *bool
	DarkMode         *bool
	ShowDateDividers *bool
	ChatBackground   *string
}

func (s *Service) UpdatePrefs(p PrefsPatch) {
	if p.PreviewOnRight != nil {
		s.prefs.PreviewOnRight = *p.PreviewOnRight
	}
	if p.DarkMode != nil {
		s.prefs.DarkMode = *p.DarkMode
	}
	if p.ShowDateDividers != nil {
		s.prefs.ShowDateDividers = *p.ShowDateDividers
	}
	if p.ChatBackground != nil {
		s.prefs.ChatBackground = *p.ChatBackground
	}
	s.persist()
}

// Replace swaps in an imported state. The meId invariant is enforced here:
// an id that no longer resolves is nulled rather than kept dangling.
func (s *Service) Replace(conv *domain.Conversation, prefs domain.Prefs) {
	if conv.MeID != "" {
		if _, ok := conv.ParticipantByID(conv.MeID); !ok {
			conv.MeID = ""
		}
	}
	s.conv = conv
	s.prefs = prefs
	s.persist()
}

// maybeSwitchToPrivate applies the two-participant rule: once a "me" is
// designated and exactly two participants exist, the chat is a private
// one.
func (s *Service) maybeSwitchToPrivate() {
	if s.conv.MeID == "" || len(s.conv.Participants) != 2 {
		return
	}
	if s.conv.Settings.Mode != domain.PrivateChat {
		s.conv.Settings.Mode = domain.PrivateChat
	}
}

// persist writes after a mutation. Failures are logged, never surfaced:
// persistence is fire-and-forget and must not block further commands.
func (s *Service) persist() {
	if err := s.store.Save(s.conv, s.prefs); err != nil {
		logger.Log.Warn("persisting state failed", zap.Error(err))
	}
}
