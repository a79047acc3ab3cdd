package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

func newFileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, "/", &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["image"][0]
}

func TestUploadPostImage(t *testing.T) {
	setupDatabase(t)

	key, err := UploadPostImage(context.Background(), newFileHeader(t, "small.gif", pngHeader))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "posts/"))
	assert.True(t, strings.HasSuffix(key, ".png"))
	assert.Equal(t, "/media/"+key, storage.S.URL(key))
}

func TestUploadPostImageRejectsText(t *testing.T) {
	setupDatabase(t)

	_, err := UploadPostImage(context.Background(), newFileHeader(t, "not-image.png", []byte("just some plain text")))
	assert.ErrorIs(t, err, ErrNotImage)
}
