package pending

import (
	"strings"

	"sitebuilder/internal/client/localstore"
)

// ZipPromptKey is the storage key for a staged ZIP download prompt.
const ZipPromptKey = "pending_guest_zip_prompt"

// ZipPromptStore stages the prompt behind a deferred ZIP download. The
// payload is the raw prompt string, not JSON.
type ZipPromptStore struct {
	store localstore.Store
}

// NewZipPromptStore creates a prompt store over the given backing store
func NewZipPromptStore(store localstore.Store) *ZipPromptStore {
	return &ZipPromptStore{store: store}
}

// Save stages the prompt. Blank prompts are not staged.
func (s *ZipPromptStore) Save(prompt string) error {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil
	}
	return s.store.Set(ZipPromptKey, prompt)
}

// Read returns the staged prompt without consuming it. A missing or
// blank entry reads as absent.
func (s *ZipPromptStore) Read() (string, bool) {
	raw, ok := s.store.Get(ZipPromptKey)
	if !ok {
		return "", false
	}
	prompt := strings.TrimSpace(raw)
	if prompt == "" {
		return "", false
	}
	return prompt, true
}

// Consume returns the staged prompt and removes it in the same step.
func (s *ZipPromptStore) Consume() (string, bool) {
	prompt, ok := s.Read()
	if ok {
		s.store.Remove(ZipPromptKey)
	}
	return prompt, ok
}

// Clear discards any staged prompt.
func (s *ZipPromptStore) Clear() {
	s.store.Remove(ZipPromptKey)
}
