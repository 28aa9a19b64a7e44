package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/vedant-codes/legalMindAI-Backend/config"
)

// FileStore persists uploaded documents. Save returns the storage path the
// file can later be addressed by; LocalPath materializes it on local disk for
// parsers that need a file path.
type FileStore interface {
	Save(ctx context.Context, name string, reader io.Reader, size int64, contentType string) (string, error)
	LocalPath(ctx context.Context, storagePath string) (path string, cleanup func(), err error)
	Remove(ctx context.Context, storagePath string) error
}

// LocalStore keeps uploads in a directory on local disk.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Save(ctx context.Context, name string, reader io.Reader, size int64, contentType string) (string, error) {
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, reader); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return path, nil
}

func (s *LocalStore) LocalPath(ctx context.Context, storagePath string) (string, func(), error) {
	if _, err := os.Stat(storagePath); err != nil {
		return "", nil, err
	}
	return storagePath, func() {}, nil
}

// Remove deletes the stored file. An already-missing file is not an error:
// delete must stay idempotent with respect to the disk.
func (s *LocalStore) Remove(ctx context.Context, storagePath string) error {
	err := os.Remove(storagePath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// MinioStore keeps uploads in an object-storage bucket.
type MinioStore struct {
	client *minio.Client
	bucket string
}

func NewMinioStore(cfg *config.MinioConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &MinioStore{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// EnsureBucket creates the bucket if it doesn't exist.
func (s *MinioStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

func (s *MinioStore) Save(ctx context.Context, name string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, name, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	return name, nil
}

// LocalPath downloads the object to a temp file. The document parsers all
// work on file paths, so object-stored uploads are materialized on demand.
func (s *MinioStore) LocalPath(ctx context.Context, storagePath string) (string, func(), error) {
	obj, err := s.client.GetObject(ctx, s.bucket, storagePath, minio.GetObjectOptions{})
	if err != nil {
		return "", nil, fmt.Errorf("failed to fetch object: %w", err)
	}
	defer obj.Close()

	ext := filepath.Ext(storagePath)
	tmp, err := os.CreateTemp("", "legalmind-*"+ext)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := io.Copy(tmp, obj); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", nil, fmt.Errorf("failed to download object: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", nil, err
	}

	name := tmp.Name()
	return name, func() { os.Remove(name) }, nil
}

func (s *MinioStore) Remove(ctx context.Context, storagePath string) error {
	err := s.client.RemoveObject(ctx, s.bucket, storagePath, minio.RemoveObjectOptions{})
	if err != nil {
		// Object storage treats removal of a missing key as success already,
		// but guard against implementations that don't.
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" {
			return nil
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// StoredName builds the on-store filename for an upload: the generated file
// ID prefixes the original name so concurrent uploads never collide.
func StoredName(fileID, originalName string) string {
	base := filepath.Base(originalName)
	base = strings.ReplaceAll(base, string(filepath.Separator), "_")
	return fileID + "_" + base
}
