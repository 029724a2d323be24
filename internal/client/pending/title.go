package pending

import (
	"regexp"
	"strings"

	"sitebuilder/internal/domain/models"
)

// FallbackChatTitle is used when no user turn yields a usable title.
const FallbackChatTitle = "Guest Chat"

const maxTitleLength = 40

var whitespaceRun = regexp.MustCompile(`\s+`)

// BuildChatTitle derives a chat title from the first user turn:
// whitespace runs collapse to single spaces and anything past 40
// characters is cut and marked with an ellipsis.
func BuildChatTitle(messages []GuestMessage) string {
	for _, msg := range messages {
		if msg.Role != models.RoleUser {
			continue
		}
		title := strings.TrimSpace(whitespaceRun.ReplaceAllString(msg.Content, " "))
		if title == "" {
			continue
		}
		runes := []rune(title)
		if len(runes) <= maxTitleLength {
			return title
		}
		return strings.TrimRight(string(runes[:maxTitleLength]), " ") + "..."
	}
	return FallbackChatTitle
}
