package services

import (
	"fmt"
	"path/filepath"
	"testing"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/cache"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/database"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/storage"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDatabase(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)", filepath.Join(t.TempDir(), "yatube.db"))
	dialector, err := database.NewDialector("sqlite", dsn)
	require.NoError(t, err)

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	conn, err := db.DB()
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	require.NoError(t, database.RunMigration(db))

	database.C = db
	storage.S = storage.NewLocalStore(t.TempDir(), "/media")
	PasswordHashCost = bcrypt.MinCost

	t.Cleanup(func() {
		conn.Close()
	})
}

func newTestComposer(t *testing.T) *FeedComposer {
	t.Helper()
	s, err := cache.NewMemoryStore()
	require.NoError(t, err)
	return NewFeedComposer(NewPageCache(s, DefaultFeedCacheTTL))
}

func createUser(t *testing.T, username string) models.User {
	t.Helper()
	user, err := CreateUser(username, username, gofakeit.Email(), "Pa55word-"+username)
	require.NoError(t, err)
	return user
}

func createGroup(t *testing.T, slug string) models.Group {
	t.Helper()
	group, err := NewGroup(models.Group{
		Title:       "Group " + slug,
		Slug:        slug,
		Description: gofakeit.Sentence(8),
	})
	require.NoError(t, err)
	return group
}

func createPost(t *testing.T, author models.User, text string, group *models.Group) models.Post {
	t.Helper()
	item := models.Post{Text: text}
	if group != nil {
		item.GroupID = &group.ID
	}
	post, err := NewPost(author, item)
	require.NoError(t, err)
	return post
}

func postTexts(items []models.Post) []string {
	out := make([]string, len(items))
	for idx, item := range items {
		out[idx] = item.Text
	}
	return out
}
