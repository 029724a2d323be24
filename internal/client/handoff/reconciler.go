// Package handoff drains the pending stores after sign-in: a staged
// guest transcript becomes a saved chat and a staged ZIP prompt
// becomes a started download. Each store is consumed exactly once per
// run, so a second run observes nothing.
package handoff

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"sitebuilder/internal/client/pending"
	"sitebuilder/internal/domain/models"
)

const (
	statusRestoring       = "Restoring your guest chat..."
	statusStartingZip     = "Starting your pending ZIP download..."
	statusDownloadStarted = "Your ZIP download has started."
	statusFailed          = "Could not finish restoring your guest session. Please try again."

	transientStatusTTL = 3 * time.Second
)

// Identity is the signed-in user as the identity port reports it.
type Identity struct {
	ID    string
	Email string
}

// IdentityPort resolves the current user. A nil identity with a nil
// error means nobody is signed in.
type IdentityPort interface {
	CurrentUser(ctx context.Context) (*Identity, error)
}

// ChatWriter persists restored transcripts.
type ChatWriter interface {
	CreateChat(ctx context.Context, title, modelName string) (*models.Chat, error)
	AppendChatMessage(ctx context.Context, chatID string, role models.HistoryRole, content string) (*models.HistoryMessage, error)
}

// ZipDownloader starts a staged download.
type ZipDownloader interface {
	DownloadWebsiteZip(ctx context.Context, prompt string) error
}

// Outcome is what the caller shows once a run finishes. A redirect
// wins over a status line; a status line expires after TTL.
type Outcome struct {
	RedirectChatID string
	Status         string
	StatusTTL      time.Duration
}

// Reconciler drains the pending stores into the server.
type Reconciler struct {
	identity   IdentityPort
	sessions   *pending.SessionStore
	zipPrompts *pending.ZipPromptStore
	chats      ChatWriter
	downloads  ZipDownloader
	modelName  string
	logger     *slog.Logger

	// StatusFunc, when set, receives intermediate status lines while
	// the run is still in progress.
	StatusFunc func(status string)
}

// NewReconciler creates a reconciler over the given ports
func NewReconciler(
	identity IdentityPort,
	sessions *pending.SessionStore,
	zipPrompts *pending.ZipPromptStore,
	chats ChatWriter,
	downloads ZipDownloader,
	modelName string,
	logger *slog.Logger,
) *Reconciler {
	return &Reconciler{
		identity:   identity,
		sessions:   sessions,
		zipPrompts: zipPrompts,
		chats:      chats,
		downloads:  downloads,
		modelName:  modelName,
		logger:     logger,
	}
}

// Run drains both stores. The transcript is restored first, then the
// ZIP prompt; a failure in one never blocks the other. Cancelling ctx
// does not abort in-flight server calls, it only suppresses the
// visible outcome.
func (r *Reconciler) Run(ctx context.Context) Outcome {
	user, err := r.identity.CurrentUser(ctx)
	if err != nil {
		r.logger.Warn("identity lookup failed during handoff", "error", err)
		return r.finish(ctx, Outcome{Status: statusFailed, StatusTTL: transientStatusTTL})
	}
	if user == nil {
		return Outcome{}
	}

	// Server calls keep running even if the caller goes away; the
	// stores are already consumed and the work must land.
	callCtx := context.WithoutCancel(ctx)

	redirectChatID, restoreErr := r.restoreSession(ctx, callCtx)
	downloadStarted, downloadErr := r.drainZipPrompt(ctx, callCtx)

	switch {
	case redirectChatID != "":
		return r.finish(ctx, Outcome{RedirectChatID: redirectChatID})
	case downloadStarted:
		return r.finish(ctx, Outcome{Status: statusDownloadStarted, StatusTTL: transientStatusTTL})
	case restoreErr != nil || downloadErr != nil:
		return r.finish(ctx, Outcome{Status: statusFailed, StatusTTL: transientStatusTTL})
	default:
		return Outcome{}
	}
}

// restoreSession consumes the staged transcript and replays it into a
// new chat: one create, then one append per message in order.
func (r *Reconciler) restoreSession(ctx, callCtx context.Context) (string, error) {
	session := r.sessions.Consume()
	if session == nil || len(session.Messages) == 0 {
		return "", nil
	}

	r.setStatus(ctx, statusRestoring)

	title := strings.TrimSpace(session.Title)
	if title == "" {
		title = pending.FallbackChatTitle
	}

	chat, err := r.chats.CreateChat(callCtx, title, r.modelName)
	if err != nil {
		r.logger.Warn("guest chat restore failed", "stage", "create", "error", err)
		return "", err
	}

	for i, msg := range session.Messages {
		if _, err := r.chats.AppendChatMessage(callCtx, chat.ID, msg.Role, msg.Content); err != nil {
			r.logger.Warn("guest chat restore failed",
				"stage", "replay", "chat_id", chat.ID, "message_index", i, "error", err)
			return "", err
		}
	}

	return chat.ID, nil
}

// drainZipPrompt consumes the staged prompt and starts the download.
func (r *Reconciler) drainZipPrompt(ctx, callCtx context.Context) (bool, error) {
	prompt, ok := r.zipPrompts.Consume()
	if !ok {
		return false, nil
	}

	r.setStatus(ctx, statusStartingZip)

	if err := r.downloads.DownloadWebsiteZip(callCtx, prompt); err != nil {
		r.logger.Warn("staged zip download failed", "error", err)
		return false, err
	}
	return true, nil
}

// finish suppresses the visible outcome when the caller is gone.
func (r *Reconciler) finish(ctx context.Context, outcome Outcome) Outcome {
	if ctx.Err() != nil {
		return Outcome{}
	}
	return outcome
}

func (r *Reconciler) setStatus(ctx context.Context, status string) {
	if r.StatusFunc == nil || ctx.Err() != nil {
		return
	}
	r.StatusFunc(status)
}
