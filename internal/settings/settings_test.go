package settings

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "settings.json")
	s := NewFileStorage(path)

	_, ok, err := s.Get(ctx, KeySelectedTemplate)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, KeySelectedTemplate, "coverLetter_2"))
	require.NoError(t, s.Set(ctx, KeyCoverLetters, `{"coverLetter_2":"текст"}`))

	reopened := NewFileStorage(path)
	v, ok, err := reopened.Get(ctx, KeySelectedTemplate)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "coverLetter_2", v)

	v, _, _ = reopened.Get(ctx, KeyCoverLetters)
	assert.JSONEq(t, `{"coverLetter_2":"текст"}`, v)
}

func TestFileStorage_CorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	s := NewFileStorage(path)

	_, _, err := s.Get(ctx, KeyCoverLetters)
	assert.Error(t, err)

	require.NoError(t, s.Set(ctx, KeySelectedTemplate, "coverLetter_1"))
	v, ok, err := s.Get(ctx, KeySelectedTemplate)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "coverLetter_1", v)
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Set(ctx, "k", "v"))
	v, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}
