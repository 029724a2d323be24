// Package artifact derives download cards from assistant transcript
// messages. The ready sentence is the single source of truth: cards
// are recomputed from the transcript, never stored beside it.
package artifact

import (
	"strings"

	"sitebuilder/internal/domain/models"
)

const (
	readyPrefix = `Starter package ready for "`
	readySuffix = `". Use Download ZIP to continue.`
)

// ZipName is the archive name shown on every download card.
const ZipName = "website-files.zip"

// ZipArtifact is a download card anchored to one assistant message.
type ZipArtifact struct {
	ID          string `json:"id"`
	MessageID   string `json:"messageId"`
	Prompt      string `json:"prompt"`
	ZipName     string `json:"zipName"`
	FileCount   int    `json:"fileCount"`
	FolderCount int    `json:"folderCount"`
}

// ReadyMessage formats the assistant sentence announcing that a
// starter package is available for the given prompt.
func ReadyMessage(prompt string) string {
	return readyPrefix + prompt + readySuffix
}

// ParseReadyMessage extracts the embedded prompt from a ready
// sentence. The sentence must carry the exact prefix and suffix;
// anything else is not an announcement.
func ParseReadyMessage(content string) (string, bool) {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, readyPrefix) || !strings.HasSuffix(content, readySuffix) {
		return "", false
	}
	inner := content[len(readyPrefix) : len(content)-len(readySuffix)]
	return strings.TrimSpace(inner), true
}

// Extract walks the transcript and derives one card per assistant
// ready sentence. When the embedded prompt is blank the nearest prior
// user message supplies it; a card is always produced for a matching
// sentence even if no prompt can be recovered.
func Extract(messages []models.HistoryMessage) []ZipArtifact {
	var artifacts []ZipArtifact
	for i, msg := range messages {
		if msg.Role != models.RoleAssistant {
			continue
		}
		prompt, ok := ParseReadyMessage(msg.Content)
		if !ok {
			continue
		}
		if prompt == "" {
			prompt = nearestUserPrompt(messages, i)
		}
		artifacts = append(artifacts, ZipArtifact{
			ID:          "zip-" + msg.ID,
			MessageID:   msg.ID,
			Prompt:      prompt,
			ZipName:     ZipName,
			FileCount:   1,
			FolderCount: 0,
		})
	}
	return artifacts
}

func nearestUserPrompt(messages []models.HistoryMessage, before int) string {
	for i := before - 1; i >= 0; i-- {
		if messages[i].Role != models.RoleUser {
			continue
		}
		if content := strings.TrimSpace(messages[i].Content); content != "" {
			return content
		}
	}
	return ""
}
