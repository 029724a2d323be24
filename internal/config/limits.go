package config

const (
	// MaxGuestPrompts is the number of prompts an unauthenticated visitor
	// may send in one page visit. Enforced in client memory only; resets
	// on reload.
	MaxGuestPrompts = 3

	// MaxPromptLength is the maximum prompt length in characters.
	MaxPromptLength = 2000

	// MaxChatTitleLength is the maximum length for chat titles.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (titles should be short and descriptive).
	MaxChatTitleLength = 255

	// GuestSessionExpiryHours is how long a guest usage row stays relevant.
	GuestSessionExpiryHours = 24

	// MaxAvatarFileSize is the maximum avatar upload size in bytes.
	MaxAvatarFileSize = 2 * 1024 * 1024
)
