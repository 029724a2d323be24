package pending

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitebuilder/internal/client/localstore"
	"sitebuilder/internal/domain/models"
)

func newTestSessionStore() (*SessionStore, *localstore.MemoryStore) {
	backing := localstore.NewMemoryStore()
	store := NewSessionStore(backing)
	store.now = func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) }
	return store, backing
}

func transcript(turns ...[2]string) []models.HistoryMessage {
	var messages []models.HistoryMessage
	for i, turn := range turns {
		messages = append(messages, models.HistoryMessage{
			ID:      string(rune('a' + i)),
			ChatID:  "guest",
			Role:    models.HistoryRole(turn[0]),
			Content: turn[1],
		})
	}
	return messages
}

func TestSessionStoreSaveAndRead(t *testing.T) {
	store, _ := newTestSessionStore()

	err := store.Save(transcript(
		[2]string{"user", "Build me a bakery site"},
		[2]string{"assistant", "Thanks! This chat is temporary and not saved. You said: Build me a bakery site"},
	))
	require.NoError(t, err)

	session := store.Read()
	require.NotNil(t, session)
	assert.Equal(t, "Build me a bakery site", session.Title)
	require.Len(t, session.Messages, 2)
	assert.Equal(t, models.RoleUser, session.Messages[0].Role)
	assert.Equal(t, models.RoleAssistant, session.Messages[1].Role)
}

func TestSessionStoreSaveDropsBlankAndSystemTurns(t *testing.T) {
	store, _ := newTestSessionStore()

	err := store.Save(transcript(
		[2]string{"system", "internal prompt"},
		[2]string{"user", "   "},
		[2]string{"user", "  real prompt  "},
	))
	require.NoError(t, err)

	session := store.Read()
	require.NotNil(t, session)
	require.Len(t, session.Messages, 1)
	assert.Equal(t, "real prompt", session.Messages[0].Content)
}

func TestSessionStoreSaveNothingDisplayableIsNoOp(t *testing.T) {
	store, backing := newTestSessionStore()

	require.NoError(t, store.Save(transcript([2]string{"user", "   "})))

	_, ok := backing.Get(SessionKey)
	assert.False(t, ok, "no payload should be written")
	assert.Nil(t, store.Read())
}

func TestSessionStoreConsumeIsExactlyOnce(t *testing.T) {
	store, _ := newTestSessionStore()
	require.NoError(t, store.Save(transcript([2]string{"user", "hello"})))

	first := store.Consume()
	require.NotNil(t, first)

	assert.Nil(t, store.Consume())
	assert.Nil(t, store.Read())
}

func TestSessionStoreReadMalformedPayloads(t *testing.T) {
	cases := map[string]string{
		"not json":          `{{{`,
		"wrong type":        `"just a string"`,
		"empty object":      `{}`,
		"empty messages":    `{"title":"x","messages":[]}`,
		"missing role":      `{"messages":[{"content":"hi"}]}`,
		"missing content":   `{"messages":[{"role":"user"}]}`,
		"bad role":          `{"messages":[{"role":"system","content":"hi"}]}`,
		"blank content":     `{"messages":[{"role":"user","content":"  "}]}`,
		"non-string fields": `{"messages":[{"role":1,"content":2}]}`,
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			store, backing := newTestSessionStore()
			require.NoError(t, backing.Set(SessionKey, payload))
			assert.Nil(t, store.Read())
		})
	}
}

func TestSessionStoreReadFiltersInvalidEntries(t *testing.T) {
	store, backing := newTestSessionStore()
	require.NoError(t, backing.Set(SessionKey, `{
		"title": "kept",
		"messages": [
			{"role": "system", "content": "dropped"},
			{"role": "user", "content": "kept prompt"},
			{"role": "user", "content": "   "},
			{"role": "assistant", "content": "kept reply"}
		]
	}`))

	session := store.Read()
	require.NotNil(t, session)
	require.Len(t, session.Messages, 2)
	assert.Equal(t, "kept prompt", session.Messages[0].Content)
	assert.Equal(t, "kept reply", session.Messages[1].Content)
}

func TestSessionStoreReadFillsMissingTitleAndTimestamp(t *testing.T) {
	store, backing := newTestSessionStore()
	require.NoError(t, backing.Set(SessionKey,
		`{"messages":[{"role":"user","content":"pet store website"}]}`))

	session := store.Read()
	require.NotNil(t, session)
	assert.Equal(t, "pet store website", session.Title)
	assert.Equal(t, store.now(), session.CreatedAt)
}

func TestSessionStoreClear(t *testing.T) {
	store, _ := newTestSessionStore()
	require.NoError(t, store.Save(transcript([2]string{"user", "hello"})))

	store.Clear()
	assert.Nil(t, store.Read())
}
