package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"path/filepath"
	"strings"
	"time"

	"github.com/jhoicas/portal-api/internal/application/dto"
	"github.com/jhoicas/portal-api/internal/application/ports"
	"github.com/jhoicas/portal-api/internal/domain"
)

// MaxProfileImageSize tamaño máximo de una imagen de perfil (2 MiB).
const MaxProfileImageSize = 2 << 20

// ProfileFolder carpeta lógica de las imágenes de perfil.
const ProfileFolder = "profiles"

var imageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
}

// UploadUseCase subida de imágenes de perfil.
type UploadUseCase struct {
	storage ports.FileStorage
	now     func() time.Time
}

// NewUploadUseCase construye el caso de uso sobre el almacenamiento configurado.
func NewUploadUseCase(storage ports.FileStorage) *UploadUseCase {
	return &UploadUseCase{storage: storage, now: time.Now}
}

// UploadProfileImage valida extensión y tamaño, y guarda como profile-<unix-ms>-<aleatorio><ext>.
func (uc *UploadUseCase) UploadProfileImage(ctx context.Context, originalName string, size int64, r io.Reader) (*dto.UploadResponse, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	contentType, ok := imageTypes[ext]
	if !ok {
		return nil, fmt.Errorf("%w: solo se permiten imágenes jpg, jpeg, png o gif", domain.ErrInvalidInput)
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: archivo vacío", domain.ErrInvalidInput)
	}
	if size > MaxProfileImageSize {
		return nil, fmt.Errorf("%w: la imagen supera 2 MB", domain.ErrInvalidInput)
	}
	suffix, err := rand.Int(rand.Reader, big.NewInt(1e9))
	if err != nil {
		return nil, fmt.Errorf("nombre aleatorio: %w", err)
	}
	name := fmt.Sprintf("profile-%d-%d%s", uc.now().UnixMilli(), suffix.Int64(), ext)
	url, err := uc.storage.Save(ctx, ProfileFolder, name, io.LimitReader(r, MaxProfileImageSize), size, contentType)
	if err != nil {
		return nil, err
	}
	return &dto.UploadResponse{
		Message:  "imagen de perfil subida correctamente",
		FileURL:  url,
		Filename: name,
	}, nil
}
