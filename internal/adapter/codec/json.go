// Package codec translates the conversation document to and from its flat
// JSON representation, both for the local persistence slot and for
// import/export files. Timestamps travel as ISO-8601 strings.
package codec

import (
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/M4ss1ck/whatsapp-simulator/internal/domain"
	"github.com/M4ss1ck/whatsapp-simulator/internal/logger"
)

// Message is the wire form of a message; the timestamp is a string.
type Message struct {
	ID             string `json:"id"`
	SenderID       string `json:"senderId"`
	Text           string `json:"text"`
	Timestamp      string `json:"timestamp"`
	Type           string `json:"type"`
	AudioDuration  string `json:"audioDuration,omitempty"`
	ImageURL       string `json:"imageUrl,omitempty"`
	ImageCaption   string `json:"imageCaption,omitempty"`
	ReplyToID      string `json:"replyToId,omitempty"`
	ReplyToPreview string `json:"replyToPreview,omitempty"`
	ReplyToType    string `json:"replyToType,omitempty"`
}

// Document is the import/export shape. Every field is optional so an
// imported document only overwrites what it actually carries.
type Document struct {
	Participants *[]domain.Participant `json:"participants,omitempty"`
	Messages     *[]Message            `json:"messages,omitempty"`
	ChatSettings *domain.ChatSettings  `json:"chatSettings,omitempty"`
	MeID         *string               `json:"meId,omitempty"`
	PhoneStatus  *domain.PhoneStatus   `json:"phoneStatus,omitempty"`

	ShowDateDividers *bool   `json:"showDateDividers,omitempty"`
	ChatBackground   *string `json:"chatBackground,omitempty"`
}

// EncodeConversation serializes the conversation for the persistence slot.
func EncodeConversation(c *domain.Conversation) ([]byte, error) {
	doc := conversationDoc(c)
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding conversation: %w", err)
	}
	return data, nil
}

// DecodeConversation rebuilds a conversation from persisted bytes.
// Malformed or empty input yields the documented default state; loading
// never hard-fails on a broken document.
func DecodeConversation(data []byte) *domain.Conversation {
	conv := domain.NewConversation()
	if len(data) == 0 {
		return conv
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		logger.Log.Warn("persisted conversation malformed, using defaults", zap.Error(err))
		return conv
	}

	applyDocument(&doc, conv)
	return conv
}

// EncodeExport serializes the full export document, including the
// preference fields that travel with a shared conversation.
func EncodeExport(c *domain.Conversation, prefs domain.Prefs) ([]byte, error) {
	doc := conversationDoc(c)
	doc.ShowDateDividers = &prefs.ShowDateDividers
	if prefs.ChatBackground != "" {
		bg := prefs.ChatBackground
		doc.ChatBackground = &bg
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding export document: %w", err)
	}
	return append(data, '\n'), nil
}

// DecodeImport merges an imported document into the current state. Fields
// the document does not carry keep their current values. Unparseable input
// is the one hard error here: the caller owes the user a notice.
func DecodeImport(data []byte, cur *domain.Conversation, prefs domain.Prefs) (*domain.Conversation, domain.Prefs, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, prefs, fmt.Errorf("parsing import document: %w", err)
	}

	conv := &domain.Conversation{
		Participants: append([]domain.Participant(nil), cur.Participants...),
		Messages:     append([]domain.Message(nil), cur.Messages...),
		Settings:     cur.Settings,
		MeID:         cur.MeID,
		Status:       cur.Status,
	}
	applyDocument(&doc, conv)

	if doc.ShowDateDividers != nil {
		prefs.ShowDateDividers = *doc.ShowDateDividers
	}
	if doc.ChatBackground != nil {
		prefs.ChatBackground = *doc.ChatBackground
	}
	return conv, prefs, nil
}

func conversationDoc(c *domain.Conversation) Document {
	participants := append([]domain.Participant(nil), c.Participants...)
	messages := make([]Message, 0, len(c.Messages))
	for _, m := range c.Messages {
		messages = append(messages, toWire(m))
	}

	doc := Document{
		Participants: &participants,
		Messages:     &messages,
		ChatSettings: &c.Settings,
		PhoneStatus:  &c.Status,
	}
	if c.MeID != "" {
		me := c.MeID
		doc.MeID = &me
	}
	return doc
}

func applyDocument(doc *Document, conv *domain.Conversation) {
	if doc.Participants != nil {
		conv.Participants = *doc.Participants
	}
	if doc.Messages != nil {
		msgs := make([]domain.Message, 0, len(*doc.Messages))
		for _, wm := range *doc.Messages {
			msgs = append(msgs, fromWire(wm))
		}
		conv.Messages = msgs
	}
	if doc.ChatSettings != nil {
		conv.Settings = *doc.ChatSettings
	}
	if doc.MeID != nil {
		conv.MeID = *doc.MeID
	}
	if doc.PhoneStatus != nil {
		conv.Status = *doc.PhoneStatus
	}
}

func toWire(m domain.Message) Message {
	return Message{
		ID:             m.ID,
		SenderID:       m.SenderID,
		Text:           m.Text,
		Timestamp:      m.Timestamp.Format(time.RFC3339Nano),
		Type:           string(m.Type),
		AudioDuration:  m.AudioDuration,
		ImageURL:       m.ImageURL,
		ImageCaption:   m.ImageCaption,
		ReplyToID:      m.ReplyToID,
		ReplyToPreview: m.ReplyToPreview,
		ReplyToType:    string(m.ReplyToType),
	}
}

func fromWire(wm Message) domain.Message {
	ts, err := time.Parse(time.RFC3339Nano, wm.Timestamp)
	if err != nil {
		logger.Log.Warn("unparseable message timestamp",
			zap.String("id", wm.ID), zap.String("timestamp", wm.Timestamp))
		ts = time.Time{}
	}
	return domain.Message{
		ID:             wm.ID,
		SenderID:       wm.SenderID,
		Text:           wm.Text,
		Timestamp:      ts,
		Type:           domain.MessageType(wm.Type),
		AudioDuration:  wm.AudioDuration,
		ImageURL:       wm.ImageURL,
		ImageCaption:   wm.ImageCaption,
		ReplyToID:      wm.ReplyToID,
		ReplyToPreview: wm.ReplyToPreview,
		ReplyToType:    domain.MessageType(wm.ReplyToType),
	}
}
