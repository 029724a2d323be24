package pending

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"sitebuilder/internal/domain/models"
)

func TestBuildChatTitle(t *testing.T) {
	tests := []struct {
		name     string
		messages []GuestMessage
		want     string
	}{
		{
			name:     "no messages",
			messages: nil,
			want:     FallbackChatTitle,
		},
		{
			name: "assistant only",
			messages: []GuestMessage{
				{Role: models.RoleAssistant, Content: "hello there"},
			},
			want: FallbackChatTitle,
		},
		{
			name: "short title passes through",
			messages: []GuestMessage{
				{Role: models.RoleUser, Content: "A bakery in Erbil"},
			},
			want: "A bakery in Erbil",
		},
		{
			name: "inner whitespace runs collapse to single spaces",
			messages: []GuestMessage{
				{Role: models.RoleUser, Content: "  Build  me   a bakery site  "},
			},
			want: "Build me a bakery site",
		},
		{
			name: "whitespace runs collapse",
			messages: []GuestMessage{
				{Role: models.RoleUser, Content: "  a   site\n\twith   spaces  "},
			},
			want: "a site with spaces",
		},
		{
			name: "long title truncates with ellipsis",
			messages: []GuestMessage{
				{Role: models.RoleUser, Content: strings.Repeat("x", 60)},
			},
			want: strings.Repeat("x", 40) + "...",
		},
		{
			name: "truncation trims trailing space before ellipsis",
			messages: []GuestMessage{
				// the 40-char cut lands on a space, which must not survive
				{Role: models.RoleUser, Content: strings.Repeat("abc ", 15)},
			},
			want: strings.TrimSpace(strings.Repeat("abc ", 15)[:40]) + "...",
		},
		{
			name: "exactly forty characters is not truncated",
			messages: []GuestMessage{
				{Role: models.RoleUser, Content: strings.Repeat("y", 40)},
			},
			want: strings.Repeat("y", 40),
		},
		{
			name: "blank first user turn falls through to next",
			messages: []GuestMessage{
				{Role: models.RoleUser, Content: "   "},
				{Role: models.RoleUser, Content: "second prompt"},
			},
			want: "second prompt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildChatTitle(tt.messages))
		})
	}
}
