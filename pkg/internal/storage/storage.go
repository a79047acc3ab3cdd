package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Store keeps uploaded post images, keys are slash separated paths like "posts/<uuid>.png".
type Store interface {
	Put(ctx context.Context, key, contentType string, data io.Reader, size int64) error
	Remove(ctx context.Context, key string) error
	URL(key string) string
}

var S Store

func NewStore(ctx context.Context) error {
	switch driver := viper.GetString("storage.driver"); driver {
	case "", "local":
		S = NewLocalStore(viper.GetString("storage.local.path"), viper.GetString("storage.local.public_url"))
	case "s3":
		store, err := NewS3Store(ctx, S3Config{
			Endpoint:  viper.GetString("storage.s3.endpoint"),
			AccessKey: viper.GetString("storage.s3.access_key"),
			SecretKey: viper.GetString("storage.s3.secret_key"),
			UseSSL:    viper.GetBool("storage.s3.use_ssl"),
			Bucket:    viper.GetString("storage.s3.bucket"),
			PublicURL: viper.GetString("storage.s3.public_url"),
		})
		if err != nil {
			return err
		}
		S = store
	default:
		return fmt.Errorf("unsupported storage driver: %s", driver)
	}

	log.Info().Str("driver", viper.GetString("storage.driver")).Msg("Image storage is ready.")
	return nil
}
