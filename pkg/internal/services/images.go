package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/storage"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var ErrNotImage = errors.New("upload a valid image, the file you uploaded was either not an image or a corrupted image")

// UploadPostImage sniffs the content instead of trusting the client declared type.
func UploadPostImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("unable to open uploaded file: %v", err)
	}
	defer src.Close()

	mime, err := mimetype.DetectReader(src)
	if err != nil {
		return "", fmt.Errorf("unable to detect uploaded file type: %v", err)
	}
	if !strings.HasPrefix(mime.String(), "image/") || mime.Is("image/svg+xml") {
		return "", ErrNotImage
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("unable to rewind uploaded file: %v", err)
	}

	key := fmt.Sprintf("posts/%s%s", uuid.NewString(), mime.Extension())
	if err := storage.S.Put(ctx, key, mime.String(), src, file.Size); err != nil {
		return "", fmt.Errorf("unable to store image: %v", err)
	}
	return key, nil
}

func RemovePostImage(ctx context.Context, key string) {
	if storage.S == nil {
		return
	}
	if err := storage.S.Remove(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("An error occurred when removing post image...")
	}
}
