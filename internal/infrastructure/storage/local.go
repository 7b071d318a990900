// Package storage implementa ports.FileStorage sobre disco local o MinIO.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/jhoicas/portal-api/internal/application/ports"
)

var _ ports.FileStorage = (*LocalStorage)(nil)

// LocalStorage guarda los archivos bajo root; el router los sirve en publicPrefix (/uploads).
type LocalStorage struct {
	root         string
	publicPrefix string
}

// NewLocalStorage crea root si no existe.
func NewLocalStorage(root, publicPrefix string) (*LocalStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage: crear %s: %w", root, err)
	}
	return &LocalStorage{root: root, publicPrefix: publicPrefix}, nil
}

// Save escribe el archivo en root/folder/name y devuelve publicPrefix/folder/name.
// Si la copia falla el archivo parcial se elimina.
func (s *LocalStorage) Save(_ context.Context, folder, name string, r io.Reader, _ int64, _ string) (string, error) {
	if name != filepath.Base(name) || folder != filepath.Base(folder) {
		return "", fmt.Errorf("storage: nombre inválido %q/%q", folder, name)
	}
	dir := filepath.Join(s.root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("storage: crear %s: %w", dir, err)
	}

	full := filepath.Join(dir, name)
	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("storage: abrir %s: %w", full, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(full)
		return "", fmt.Errorf("storage: escribir %s: %w", full, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(full)
		return "", fmt.Errorf("storage: cerrar %s: %w", full, err)
	}
	return path.Join(s.publicPrefix, folder, name), nil
}
