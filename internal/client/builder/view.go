// Package builder runs the authenticated builder view: an optimistic
// chat transcript, a live HTML preview, and download cards derived
// from the transcript.
package builder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sitebuilder/internal/client/api"
	"sitebuilder/internal/client/artifact"
	"sitebuilder/internal/domain/models"
)

// SendPhase is the builder's send state. Exactly one phase holds at a
// time; a failure reason only exists in PhaseFailed.
type SendPhase int

const (
	PhaseIdle SendPhase = iota
	PhaseSending
	PhaseFailed
)

func (p SendPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSending:
		return "sending"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Sender is the transport the view sends turns through.
type Sender interface {
	SendChatMessage(ctx context.Context, chatID, content string) (*api.SendMessageResponse, error)
}

// View is the authenticated builder state machine. It is not safe for
// concurrent use; a view belongs to one UI loop.
type View struct {
	chatID string
	sender Sender

	messages    []models.HistoryMessage
	previewHTML string
	previewOpen bool

	phase      SendPhase
	failReason string

	now func() time.Time
}

// NewView creates a builder view over an existing chat
func NewView(chatID string, sender Sender) *View {
	return &View{
		chatID: chatID,
		sender: sender,
		now:    time.Now,
	}
}

// SetTranscript replaces the transcript wholesale, as when a chat is
// first opened from the server.
func (v *View) SetTranscript(messages []models.HistoryMessage) {
	v.messages = append([]models.HistoryMessage(nil), messages...)
}

// Send posts one user turn. The turn appears in the transcript
// immediately under a temporary ID; the server response replaces the
// whole transcript, and a failure removes exactly the temporary entry
// and moves the view to PhaseFailed.
func (v *View) Send(ctx context.Context, content string) error {
	if v.phase == PhaseSending {
		return nil
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	placeholder := models.HistoryMessage{
		ID:        fmt.Sprintf("temp-%d", v.now().UnixMilli()),
		ChatID:    v.chatID,
		Role:      models.RoleUser,
		Content:   content,
		CreatedAt: v.now(),
	}

	op := applyOptimistic(func() func() {
		v.messages = append(v.messages, placeholder)
		return func() { v.removeMessage(placeholder.ID) }
	})

	v.phase = PhaseSending
	v.failReason = ""

	resp, err := v.sender.SendChatMessage(ctx, v.chatID, content)
	if err != nil {
		op.rollback()
		v.phase = PhaseFailed
		v.failReason = err.Error()
		return err
	}

	// The server transcript is authoritative; it supersedes the
	// placeholder rather than merging with it.
	v.messages = resp.Messages
	v.applyPreview(resp.HTML)
	v.phase = PhaseIdle
	return nil
}

// applyPreview interprets the response's html field: a non-blank value
// sets and opens the preview, a present-but-blank value clears and
// closes it, and an absent field leaves it untouched.
func (v *View) applyPreview(html *string) {
	if html == nil {
		return
	}
	if strings.TrimSpace(*html) == "" {
		v.previewHTML = ""
		v.previewOpen = false
		return
	}
	v.previewHTML = *html
	v.previewOpen = true
}

func (v *View) removeMessage(id string) {
	kept := v.messages[:0]
	for _, msg := range v.messages {
		if msg.ID != id {
			kept = append(kept, msg)
		}
	}
	v.messages = kept
}

// Messages returns a copy of the transcript.
func (v *View) Messages() []models.HistoryMessage {
	out := make([]models.HistoryMessage, len(v.messages))
	copy(out, v.messages)
	return out
}

// Artifacts derives the download cards visible in the transcript.
func (v *View) Artifacts() []artifact.ZipArtifact {
	return artifact.Extract(v.messages)
}

// Phase returns the current send phase.
func (v *View) Phase() SendPhase { return v.phase }

// FailReason returns the failure text for PhaseFailed, "" otherwise.
func (v *View) FailReason() string { return v.failReason }

// PreviewHTML returns the active preview markup and whether the
// preview pane is open.
func (v *View) PreviewHTML() (string, bool) {
	return v.previewHTML, v.previewOpen
}
