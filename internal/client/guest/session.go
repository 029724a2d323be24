// Package guest runs the pre-auth chat session. Nothing here touches
// the server: replies are canned, the transcript lives in memory, and
// the only durable side effects are the staged hand-off payloads in
// the pending stores.
package guest

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"sitebuilder/internal/client/artifact"
	"sitebuilder/internal/client/pending"
	"sitebuilder/internal/config"
	"sitebuilder/internal/domain/models"
)

const guestReplyPrefix = "Thanks! This chat is temporary and not saved. You said: "

// Session is the guest chat state machine. It is not safe for
// concurrent use; a session belongs to one UI loop.
type Session struct {
	messages    []models.HistoryMessage
	promptsUsed int
	maxPrompts  int
	sending     bool
	zipGated    bool
	gateOpen    bool
	lastPrompt  string

	sessionID string
	newID     func() string
	now       func() time.Time
}

// NewSession creates a plain guest chat session with canned replies.
func NewSession() *Session {
	return newSession(false)
}

// NewZipGatedSession creates a guest builder session whose replies
// announce a starter package and carry a download card.
func NewZipGatedSession() *Session {
	return newSession(true)
}

func newSession(zipGated bool) *Session {
	return &Session{
		maxPrompts: config.MaxGuestPrompts,
		zipGated:   zipGated,
		sessionID:  uuid.NewString(),
		newID:      uuid.NewString,
		now:        time.Now,
	}
}

// Send applies one guest turn: the user message and its canned
// assistant reply are appended together and the prompt counter moves
// once. It reports whether the turn was applied; blank input, an
// in-flight send, or a reached cap all leave the session untouched.
func (s *Session) Send(content string) bool {
	if s.sending {
		return false
	}
	content = strings.TrimSpace(content)
	if content == "" || s.LimitReached() {
		return false
	}

	s.sending = true
	defer func() { s.sending = false }()

	reply := guestReplyPrefix + content
	if s.zipGated {
		reply = artifact.ReadyMessage(content)
		s.lastPrompt = content
	}

	now := s.now()
	s.messages = append(s.messages,
		models.HistoryMessage{
			ID:        s.newID(),
			ChatID:    s.sessionID,
			Role:      models.RoleUser,
			Content:   content,
			CreatedAt: now,
		},
		models.HistoryMessage{
			ID:        s.newID(),
			ChatID:    s.sessionID,
			Role:      models.RoleAssistant,
			Content:   reply,
			CreatedAt: now,
		},
	)
	s.promptsUsed++
	return true
}

// Messages returns a copy of the transcript.
func (s *Session) Messages() []models.HistoryMessage {
	out := make([]models.HistoryMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// Artifacts derives the download cards currently visible in the
// transcript. Plain sessions never have any.
func (s *Session) Artifacts() []artifact.ZipArtifact {
	if !s.zipGated {
		return nil
	}
	return artifact.Extract(s.messages)
}

// PromptsUsed returns how many turns the guest has spent.
func (s *Session) PromptsUsed() int { return s.promptsUsed }

// Remaining returns how many turns the guest has left.
func (s *Session) Remaining() int {
	if s.promptsUsed >= s.maxPrompts {
		return 0
	}
	return s.maxPrompts - s.promptsUsed
}

// LimitReached reports whether the guest has spent all turns.
func (s *Session) LimitReached() bool {
	return s.promptsUsed >= s.maxPrompts
}

// LimitNotice is the disabled-input text shown once the cap is hit.
func (s *Session) LimitNotice() string {
	return fmt.Sprintf("Guest limit reached (%d prompts). Sign in to continue.", s.maxPrompts)
}

// GateOpen reports whether the guest has asked for a download and is
// waiting on sign-in.
func (s *Session) GateOpen() bool { return s.gateOpen }

// RequestDownload opens the download gate: it stages the prompt for
// the post-auth download and the current transcript for restore, then
// the caller routes the guest to sign-in.
func (s *Session) RequestDownload(prompt string, sessions *pending.SessionStore, zipPrompts *pending.ZipPromptStore) error {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		prompt = s.lastPrompt
	}
	if prompt == "" {
		return nil
	}
	if err := zipPrompts.Save(prompt); err != nil {
		return err
	}
	if err := s.StageForAuth(sessions); err != nil {
		return err
	}
	s.gateOpen = true
	return nil
}

// StageForAuth stages the transcript so the post-auth reconciler can
// restore it into a saved chat.
func (s *Session) StageForAuth(sessions *pending.SessionStore) error {
	return sessions.Save(s.messages)
}
