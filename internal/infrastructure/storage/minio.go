package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/jhoicas/portal-api/internal/application/ports"
	"github.com/jhoicas/portal-api/pkg/logger"
)

var _ ports.FileStorage = (*MinioStorage)(nil)

// MinioConfig parámetros de conexión a MinIO (o cualquier S3 compatible).
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL prefijo con el que se publican los objetos; vacío = http(s)://endpoint/bucket.
	PublicURL string
}

// MinioStorage guarda los archivos como objetos folder/name dentro del bucket.
type MinioStorage struct {
	client    *minio.Client
	bucket    string
	publicURL string
	log       *logger.Logger
}

// NewMinioStorage conecta con MinIO y crea el bucket si no existe.
func NewMinioStorage(ctx context.Context, cfg MinioConfig, log *logger.Logger) (*MinioStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: cliente minio: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("storage: verificar bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("storage: crear bucket %s: %w", cfg.Bucket, err)
		}
		log.Info().Str("bucket", cfg.Bucket).Msg("bucket de minio creado")
	}

	publicURL := cfg.PublicURL
	if publicURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}
	return &MinioStorage{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		log:       log,
	}, nil
}

// Save sube el objeto y devuelve su URL pública.
func (s *MinioStorage) Save(ctx context.Context, folder, name string, r io.Reader, size int64, contentType string) (string, error) {
	key := folder + "/" + name
	info, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		s.log.Error().Err(err).Str("object", key).Msg("no se pudo subir el archivo a minio")
		return "", fmt.Errorf("storage: subir %s: %w", key, err)
	}
	s.log.Info().Str("object", key).Int64("size", info.Size).Msg("archivo subido a minio")
	return s.publicURL + "/" + key, nil
}
