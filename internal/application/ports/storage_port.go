package ports

import (
	"context"
	"io"
)

// FileStorage define el puerto de salida para guardar archivos subidos (imágenes de perfil).
// Los adaptadores (disco local, MinIO) devuelven la URL pública del objeto guardado.
type FileStorage interface {
	// Save guarda el contenido bajo name dentro de folder y devuelve la URL con la que se sirve.
	Save(ctx context.Context, folder, name string, r io.Reader, size int64, contentType string) (string, error)
}
