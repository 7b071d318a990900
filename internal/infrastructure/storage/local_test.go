package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portal-api/internal/infrastructure/storage"
)

func TestLocalStorage_SaveDevuelveURLPublica(t *testing.T) {
	root := t.TempDir()
	s, err := storage.NewLocalStorage(root, "/uploads")
	require.NoError(t, err)

	url, err := s.Save(context.Background(), "profiles", "profile-1-2.png", strings.NewReader("png"), 3, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/profiles/profile-1-2.png", url)

	data, err := os.ReadFile(filepath.Join(root, "profiles", "profile-1-2.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))
}

func TestLocalStorage_RechazaRutas(t *testing.T) {
	s, err := storage.NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	_, err = s.Save(context.Background(), "profiles", "../evil.png", strings.NewReader("x"), 1, "image/png")
	assert.Error(t, err)
}

func TestLocalStorage_NoSobrescribe(t *testing.T) {
	s, err := storage.NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	_, err = s.Save(context.Background(), "profiles", "a.png", strings.NewReader("1"), 1, "image/png")
	require.NoError(t, err)
	_, err = s.Save(context.Background(), "profiles", "a.png", strings.NewReader("2"), 1, "image/png")
	assert.Error(t, err)
}
