// Package pending holds guest work across the auth boundary: the chat
// transcript and the ZIP prompt a guest staged before signing in. Each
// store offers exactly-once consumption so the post-auth reconciler can
// replay staged work without duplicating it.
package pending

import (
	"encoding/json"
	"strings"
	"time"

	"sitebuilder/internal/client/localstore"
	"sitebuilder/internal/domain/models"
)

// SessionKey is the storage key for a staged guest transcript.
const SessionKey = "pending_guest_chat_session"

// GuestMessage is one transcript entry in a staged session. Only user
// and assistant turns are staged.
type GuestMessage struct {
	Role    models.HistoryRole `json:"role"`
	Content string             `json:"content"`
}

// GuestSession is the staged transcript payload.
type GuestSession struct {
	Title     string         `json:"title"`
	Messages  []GuestMessage `json:"messages"`
	CreatedAt time.Time      `json:"createdAt"`
}

// SessionStore stages and consumes guest transcripts.
type SessionStore struct {
	store localstore.Store
	now   func() time.Time
}

// NewSessionStore creates a session store over the given backing store
func NewSessionStore(store localstore.Store) *SessionStore {
	return &SessionStore{store: store, now: time.Now}
}

// Save stages the displayable turns of a guest transcript. Messages
// with blank content are dropped; if nothing displayable remains the
// call is a no-op and any earlier staged session is left in place.
func (s *SessionStore) Save(messages []models.HistoryMessage) error {
	staged := make([]GuestMessage, 0, len(messages))
	for _, msg := range messages {
		if !msg.Role.IsDisplayable() {
			continue
		}
		content := strings.TrimSpace(msg.Content)
		if content == "" {
			continue
		}
		staged = append(staged, GuestMessage{Role: msg.Role, Content: content})
	}
	if len(staged) == 0 {
		return nil
	}

	session := GuestSession{
		Title:     BuildChatTitle(staged),
		Messages:  staged,
		CreatedAt: s.now().UTC(),
	}
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.store.Set(SessionKey, string(data))
}

// Read returns the staged session without consuming it. Missing or
// malformed payloads yield nil; corruption is never an error here
// because the store contents are untrusted.
func (s *SessionStore) Read() *GuestSession {
	raw, ok := s.store.Get(SessionKey)
	if !ok {
		return nil
	}
	return s.decode(raw)
}

// Consume returns the staged session and removes it in the same step,
// so a second caller observes nothing.
func (s *SessionStore) Consume() *GuestSession {
	session := s.Read()
	if session != nil {
		s.store.Remove(SessionKey)
	}
	return session
}

// Clear discards any staged session.
func (s *SessionStore) Clear() {
	s.store.Remove(SessionKey)
}

// decode validates the payload shape field by field. Entries with a
// bad role or blank content are dropped; a payload with no well-formed
// message left is treated as absent.
func (s *SessionStore) decode(raw string) *GuestSession {
	var payload struct {
		Title     *string `json:"title"`
		Messages  []struct {
			Role    *string `json:"role"`
			Content *string `json:"content"`
		} `json:"messages"`
		CreatedAt *string `json:"createdAt"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil
	}
	if len(payload.Messages) == 0 {
		return nil
	}

	session := &GuestSession{CreatedAt: s.now().UTC()}
	if payload.Title != nil {
		session.Title = strings.TrimSpace(*payload.Title)
	}
	if payload.CreatedAt != nil {
		if parsed, err := time.Parse(time.RFC3339, *payload.CreatedAt); err == nil {
			session.CreatedAt = parsed
		}
	}

	for _, entry := range payload.Messages {
		if entry.Role == nil || entry.Content == nil {
			continue
		}
		role := models.HistoryRole(*entry.Role)
		if !role.IsDisplayable() {
			continue
		}
		content := strings.TrimSpace(*entry.Content)
		if content == "" {
			continue
		}
		session.Messages = append(session.Messages, GuestMessage{Role: role, Content: content})
	}
	if len(session.Messages) == 0 {
		return nil
	}

	if session.Title == "" {
		session.Title = BuildChatTitle(session.Messages)
	}
	return session
}
