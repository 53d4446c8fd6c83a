package s3

import (
	"context"
	"io"
	"log"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/nelsferreir/meuescritoriodigital/internal/domain"
)

type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	PathStyle bool
}

// Storage is the documents bucket. Object keys are composed by the caller;
// this layer never invents or rewrites them.
type Storage struct {
	cl     *minio.Client
	bucket string
	logger *log.Logger
}

var _ domain.BlobStorage = (*Storage)(nil)

func New(ctx context.Context, cfg Config, logger *log.Logger) (*Storage, error) {
	opts := &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	}
	if cfg.PathStyle {
		opts.BucketLookup = minio.BucketLookupPath
	}
	cl, err := minio.New(cfg.Endpoint, opts)
	if err != nil {
		return nil, err
	}
	return &Storage{cl: cl, bucket: cfg.Bucket, logger: logger}, nil
}

func (s *Storage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	start := time.Now()
	info, err := s.cl.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		s.logger.Printf("PUT %q failed after %s: %v", key, time.Since(start), err)
		return err
	}
	s.logger.Printf("PUT %q ok in %s size=%d", key, time.Since(start), info.Size)
	return nil
}

// PresignGet mints a time-limited download URL for the object.
func (s *Storage) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	u, err := s.cl.PresignedGetObject(ctx, s.bucket, key, ttl, url.Values{})
	if err != nil {
		s.logger.Printf("PRESIGN %q failed: %v", key, err)
		return "", err
	}
	return u.String(), nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := s.cl.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		s.logger.Printf("REMOVE %q failed after %s: %v", key, time.Since(start), err)
		return err
	}
	s.logger.Printf("REMOVE %q ok in %s", key, time.Since(start))
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	ok, err := s.cl.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !ok {
		s.logger.Printf("bucket %q does not exist", s.bucket)
	}
	return nil
}
