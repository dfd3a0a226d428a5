// Package store persists the conversation document and the UI preference
// slots in a local Pebble database. Each preference lives under its own
// key so clearing one slot never touches the others.
package store

import (
	"fmt"

	"github.com/cockroachdb/pebble"
	"go.uber.org/zap"

	"github.com/M4ss1ck/whatsapp-simulator/internal/adapter/codec"
	"github.com/M4ss1ck/whatsapp-simulator/internal/domain"
	"github.com/M4ss1ck/whatsapp-simulator/internal/logger"
)

const (
	keyConversation = "conversation"

	keyPreviewOnRight   = "pref:previewOnRight"
	keyDarkMode         = "pref:darkMode"
	keyShowDateDividers = "pref:showDateDividers"
	keyChatBackground   = "pref:chatBackground"
)

type PebbleStore struct {
	db *pebble.DB
}

// Open opens (or creates) the Pebble database at path.
func Open(path string) (*PebbleStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("opening store at %s: %w", path, err)
	}
	logger.Log.Debug("store opened", zap.String("path", path))
	return &PebbleStore{db: db}, nil
}

func (s *PebbleStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Load reads the conversation document and the preference slots. Missing
// or malformed slots fall back to the documented defaults; Load only fails
// on store-level errors.
func (s *PebbleStore) Load() (*domain.Conversation, domain.Prefs, error) {
	prefs := domain.DefaultPrefs()

	raw, found, err := s.get(keyConversation)
	if err != nil {
		return nil, prefs, err
	}
	conv := domain.NewConversation()
	if found {
		conv = codec.DecodeConversation(raw)
	}

	if v, ok, err := s.get(keyPreviewOnRight); err != nil {
		return nil, prefs, err
	} else if ok {
		prefs.PreviewOnRight = string(v) == "true"
	}
	if v, ok, err := s.get(keyDarkMode); err != nil {
		return nil, prefs, err
	} else if ok {
		prefs.DarkMode = string(v) == "true"
	}
	if v, ok, err := s.get(keyShowDateDividers); err != nil {
		return nil, prefs, err
	} else if ok {
		prefs.ShowDateDividers = string(v) == "true"
	}
	if v, ok, err := s.get(keyChatBackground); err != nil {
		return nil, prefs, err
	} else if ok {
		prefs.ChatBackground = string(v)
	}

	return conv, prefs, nil
}

// Save writes the conversation document and every preference slot.
func (s *PebbleStore) Save(conv *domain.Conversation, prefs domain.Prefs) error {
	data, err := codec.EncodeConversation(conv)
	if err != nil {
		return err
	}
	if err := s.set(keyConversation, data); err != nil {
		return err
	}

	if err := s.set(keyPreviewOnRight, []byte(boolStr(prefs.PreviewOnRight))); err != nil {
		return err
	}
	if err := s.set(keyDarkMode, []byte(boolStr(prefs.DarkMode))); err != nil {
		return err
	}
	if err := s.set(keyShowDateDividers, []byte(boolStr(prefs.ShowDateDividers))); err != nil {
		return err
	}
	return s.set(keyChatBackground, []byte(prefs.ChatBackground))
}

func (s *PebbleStore) get(key string) ([]byte, bool, error) {
	v, closer, err := s.db.Get([]byte(key))
	if err == pebble.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", key, err)
	}
	out := append([]byte(nil), v...)
	if err := closer.Close(); err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", key, err)
	}
	return out, true, nil
}

func (s *PebbleStore) set(key string, value []byte) error {
	if err := s.db.Set([]byte(key), value, pebble.Sync); err != nil {
		logger.Log.Error("store write failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
