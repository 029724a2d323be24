package models

import "time"

// AppLanguage mirrors the app_language Postgres enum.
type AppLanguage string

const (
	LanguageEnglish AppLanguage = "en"
	LanguageArabic  AppLanguage = "ar"
	LanguageKurdish AppLanguage = "ku"
)

// Website is the generated-website record linked to a chat.
// Each chat has at most one website.
type Website struct {
	ID             string      `json:"id" db:"id"`
	ChatID         string      `json:"chat_id" db:"chat_id"`
	BusinessPrompt string      `json:"business_prompt" db:"business_prompt"`
	Language       AppLanguage `json:"language" db:"language"`
	CreatedAt      time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at" db:"updated_at"`
}

// FileRecord is a generated file belonging to a website. Generated HTML
// is stored as an upserted "index.html" record.
type FileRecord struct {
	ID        string    `json:"id" db:"id"`
	WebsiteID string    `json:"website_id" db:"website_id"`
	FileName  string    `json:"file_name" db:"file_name"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// GuestUsage tracks per-token guest prompt counts. The table exists in
// the schema but no server-side guest limit is enforced; the prompt cap
// is a client-memory soft limit.
type GuestUsage struct {
	ID               string     `json:"id" db:"id"`
	GuestToken       string     `json:"guest_token" db:"guest_token"`
	PromptsUsedToday int        `json:"prompts_used_today" db:"prompts_used_today"`
	UsageDate        time.Time  `json:"usage_date" db:"usage_date"`
	LastPromptAt     *time.Time `json:"last_prompt_at,omitempty" db:"last_prompt_at"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}
