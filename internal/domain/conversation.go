package domain

type ChatMode string

const (
	PrivateChat ChatMode = "private"
	GroupChat   ChatMode = "group"
)

type ChatSettings struct {
	Mode   ChatMode `json:"mode"`
	Title  string   `json:"title"`
	Avatar string   `json:"avatar,omitempty"`
}

// PhoneStatus describes the phone chrome above the conversation.
// When CustomTime is empty the current wall-clock time is shown.
type PhoneStatus struct {
	BatteryLevel int    `json:"batteryLevel"` // 1-100
	CustomTime   string `json:"customTime,omitempty"`
}

// Conversation is the single mutable document of a session: participants,
// the append-only message list (insertion order, not sorted by timestamp),
// chat settings, the "me" designation and the phone status bar.
type Conversation struct {
	Participants []Participant
	Messages     []Message
	Settings     ChatSettings
	MeID         string
	Status       PhoneStatus
}

// Prefs holds UI-only preferences persisted separately from the
// conversation document.
type Prefs struct {
	PreviewOnRight   bool
	DarkMode         bool
	ShowDateDividers bool
	ChatBackground   string
}

// NewConversation returns the documented default state used when nothing
// is persisted yet, or when the persisted document is malformed.
func NewConversation() *Conversation {
	return &Conversation{
		Settings: ChatSettings{Mode: GroupChat, Title: "Group Chat"},
		Status:   PhoneStatus{BatteryLevel: 100},
	}
}

// DefaultPrefs returns the UI preference defaults.
func DefaultPrefs() Prefs {
	return Prefs{ShowDateDividers: true}
}

// ParticipantByID looks up a participant; ok is false when the id does not
// resolve (removed participants keep their messages but stop resolving).
func (c *Conversation) ParticipantByID(id string) (Participant, bool) {
	for _, p := range c.Participants {
		if p.ID == id {
			return p, true
		}
	}
	return Participant{}, false
}

// MessageByID looks up a message in the current list.
func (c *Conversation) MessageByID(id string) (Message, bool) {
	for _, m := range c.Messages {
		if m.ID == id {
			return m, true
		}
	}
	return Message{}, false
}
