package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	PublicURL string
}

type S3Store struct {
	cfg    S3Config
	client *minio.Client
}

func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	endpoint := strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "http://"), "https://")
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create s3 client: %v", err)
	}

	store := &S3Store{cfg: cfg, client: client}
	if err := store.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("unable to prepare bucket %s: %v", cfg.Bucket, err)
	}
	return store, nil
}

func (v *S3Store) ensureBucket(ctx context.Context) error {
	exists, err := v.client.BucketExists(ctx, v.cfg.Bucket)
	if err != nil {
		return err
	}
	if !exists {
		return v.client.MakeBucket(ctx, v.cfg.Bucket, minio.MakeBucketOptions{})
	}
	return nil
}

func (v *S3Store) Put(ctx context.Context, key, contentType string, data io.Reader, size int64) error {
	_, err := v.client.PutObject(ctx, v.cfg.Bucket, key, data, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (v *S3Store) Remove(ctx context.Context, key string) error {
	return v.client.RemoveObject(ctx, v.cfg.Bucket, key, minio.RemoveObjectOptions{})
}

func (v *S3Store) URL(key string) string {
	base := strings.TrimSuffix(v.cfg.PublicURL, "/")
	if len(base) == 0 {
		scheme := "http"
		if v.cfg.UseSSL {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s/%s", scheme, v.client.EndpointURL().Host, v.cfg.Bucket)
	}
	return base + "/" + key
}
