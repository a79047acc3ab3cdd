package api

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/cache"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/database"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/services"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/storage"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSite(t *testing.T) *fiber.App {
	t.Helper()

	dialector, err := database.NewDialector("sqlite", filepath.Join(t.TempDir(), "yatube.db"))
	require.NoError(t, err)
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	conn, err := db.DB()
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	require.NoError(t, database.RunMigration(db))
	t.Cleanup(func() {
		conn.Close()
	})

	database.C = db
	storage.S = storage.NewLocalStore(t.TempDir(), "/media")
	services.PasswordHashCost = bcrypt.MinCost
	viper.Set("security.jwt_secret", "api-test-secret")
	viper.Set("security.token_ttl", time.Hour)

	s, err := cache.NewMemoryStore()
	require.NoError(t, err)
	composer := services.NewFeedComposer(services.NewPageCache(s, time.Minute))

	app := fiber.New(fiber.Config{ErrorHandler: exts.ErrorHandler})
	app.Use(exts.ContextMiddleware)
	MapAPIs(app, composer)
	return app
}

func createUser(t *testing.T, username string) models.User {
	t.Helper()
	user, err := services.CreateUser(username, username, gofakeit.Email(), "Pa55word-"+username)
	require.NoError(t, err)
	return user
}

func seedPost(t *testing.T, author models.User, text string) models.Post {
	t.Helper()
	post, err := services.NewPost(author, models.Post{Text: text})
	require.NoError(t, err)
	return post
}

func authorize(t *testing.T, req *http.Request, user models.User) *http.Request {
	t.Helper()
	token, err := services.IssueToken(user)
	require.NoError(t, err)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	return req
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func multipartRequest(t *testing.T, target string, fields map[string]string, fileName string, file []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if file != nil {
		part, err := writer.CreateFormFile("image", fileName)
		require.NoError(t, err)
		_, err = part.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(fiber.MethodPost, target, &body)
	req.Header.Set(fiber.HeaderContentType, writer.FormDataContentType())
	return req
}

func perform(t *testing.T, app *fiber.App, req *http.Request) *http.Response {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, jsoniter.Unmarshal(raw, out))
}

func countPosts(t *testing.T) int64 {
	t.Helper()
	count, err := services.CountPost(database.C)
	require.NoError(t, err)
	return count
}

type pageResponse struct {
	Page services.FeedPage `json:"page"`
}
