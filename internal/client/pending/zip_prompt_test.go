package pending

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitebuilder/internal/client/localstore"
)

func TestZipPromptStoreSaveAndConsume(t *testing.T) {
	store := NewZipPromptStore(localstore.NewMemoryStore())

	require.NoError(t, store.Save("  a coffee shop site  "))

	prompt, ok := store.Read()
	require.True(t, ok)
	assert.Equal(t, "a coffee shop site", prompt)

	prompt, ok = store.Consume()
	require.True(t, ok)
	assert.Equal(t, "a coffee shop site", prompt)

	_, ok = store.Consume()
	assert.False(t, ok, "second consume must observe nothing")
}

func TestZipPromptStoreBlankPromptNotStaged(t *testing.T) {
	backing := localstore.NewMemoryStore()
	store := NewZipPromptStore(backing)

	require.NoError(t, store.Save("   "))

	_, ok := backing.Get(ZipPromptKey)
	assert.False(t, ok)
}

func TestZipPromptStoreBlankStoredValueReadsAsAbsent(t *testing.T) {
	backing := localstore.NewMemoryStore()
	require.NoError(t, backing.Set(ZipPromptKey, "   "))

	store := NewZipPromptStore(backing)
	_, ok := store.Read()
	assert.False(t, ok)
}
