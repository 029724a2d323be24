package service

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitebuilder/internal/domain"
)

func TestBuildStarterArchive(t *testing.T) {
	svc := NewZipService(testLogger())

	data, err := svc.BuildStarterArchive("  a bakery in Erbil  ", "user@example.com")
	require.NoError(t, err)

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, reader.File, 1)
	assert.Equal(t, "README.txt", reader.File[0].Name)

	file, err := reader.File[0].Open()
	require.NoError(t, err)
	defer file.Close()

	body, err := io.ReadAll(file)
	require.NoError(t, err)

	content := string(body)
	assert.Contains(t, content, "AI Website Builder - Starter Package")
	assert.Contains(t, content, "Prompt: a bakery in Erbil")
	assert.Contains(t, content, "Generated for user: user@example.com")
}

func TestBuildStarterArchiveRejectsBlankPrompt(t *testing.T) {
	svc := NewZipService(testLogger())

	_, err := svc.BuildStarterArchive("   ", "user@example.com")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
