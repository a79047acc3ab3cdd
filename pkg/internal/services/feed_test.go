package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/cache"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGlobalFeedPagination(t *testing.T) {
	setupDatabase(t)
	composer := newTestComposer(t)
	author := createUser(t, "leo")

	for idx := 1; idx <= 13; idx++ {
		createPost(t, author, fmt.Sprintf("Post number %d", idx), nil)
	}

	ctx := context.Background()
	first, err := composer.GlobalFeed(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, first.Items, FeedPageSize)
	assert.EqualValues(t, 13, first.Count)
	assert.Equal(t, 2, first.TotalPages)
	assert.Equal(t, "Post number 13", first.Items[0].Text)
	for idx := 1; idx < len(first.Items); idx++ {
		assert.False(t, first.Items[idx].CreatedAt.After(first.Items[idx-1].CreatedAt))
	}
	assert.Equal(t, author.Username, first.Items[0].Author.Username)

	second, err := composer.GlobalFeed(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, second.Items, 3)
	assert.Equal(t, "Post number 1", second.Items[2].Text)

	clamped, err := composer.GlobalFeed(ctx, 40)
	require.NoError(t, err)
	assert.Equal(t, 2, clamped.Number)
	assert.Equal(t, postTexts(second.Items), postTexts(clamped.Items))

	low, err := composer.GlobalFeed(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, low.Number)
}

func TestGlobalFeedEmptyStore(t *testing.T) {
	setupDatabase(t)
	composer := newTestComposer(t)

	page, err := composer.GlobalFeed(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 1, page.TotalPages)
	assert.Empty(t, page.Items)
	assert.False(t, page.HasNext)
}

func TestGroupAndAuthorFeeds(t *testing.T) {
	setupDatabase(t)
	composer := newTestComposer(t)
	leo := createUser(t, "leo")
	mia := createUser(t, "mia")
	group := createGroup(t, "cats")
	other := createGroup(t, "dogs")

	createPost(t, leo, "Cats are great", &group)
	createPost(t, mia, "Dogs are great", &other)

	ctx := context.Background()
	_, groupPage, err := composer.GroupFeed(ctx, "cats", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cats are great"}, postTexts(groupPage.Items))
	if assert.NotNil(t, groupPage.Items[0].Group) {
		assert.Equal(t, "cats", groupPage.Items[0].Group.Slug)
	}

	author, leoPage, err := composer.AuthorFeed(ctx, "leo", 1)
	require.NoError(t, err)
	assert.Equal(t, leo.ID, author.ID)
	assert.Equal(t, []string{"Cats are great"}, postTexts(leoPage.Items))

	_, miaPage, err := composer.AuthorFeed(ctx, "mia", 1)
	require.NoError(t, err)
	assert.NotContains(t, postTexts(miaPage.Items), "Cats are great")
}

func TestFeedsUnknownTarget(t *testing.T) {
	setupDatabase(t)
	composer := newTestComposer(t)
	ctx := context.Background()

	_, _, err := composer.GroupFeed(ctx, gofakeit.LetterN(12), 1)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	_, _, err = composer.AuthorFeed(ctx, gofakeit.LetterN(12), 1)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestFollowingFeed(t *testing.T) {
	setupDatabase(t)
	composer := newTestComposer(t)
	reader := createUser(t, "reader")
	author := createUser(t, "author")
	stranger := createUser(t, "stranger")

	createPost(t, author, "First post", nil)
	createPost(t, author, "Second post", nil)
	createPost(t, stranger, "Unrelated post", nil)

	ctx := context.Background()
	page, err := composer.FollowingFeed(ctx, reader, 1)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.TotalPages)

	_, err = FollowUser(reader, author)
	require.NoError(t, err)
	page, err = composer.FollowingFeed(ctx, reader, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Second post", "First post"}, postTexts(page.Items))

	require.NoError(t, UnfollowUser(reader, author))
	page, err = composer.FollowingFeed(ctx, reader, 1)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestGlobalFeedServedFromCache(t *testing.T) {
	setupDatabase(t)
	s, err := cache.NewMemoryStore()
	require.NoError(t, err)
	composer := NewFeedComposer(NewPageCache(s, 300*time.Millisecond))
	author := createUser(t, "leo")
	post := createPost(t, author, "Cool test text.", nil)

	ctx := context.Background()
	page, err := composer.GlobalFeed(ctx, 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Cool test text.", page.Items[0].Text)

	post.Text = "Now post edited"
	_, err = EditPost(post)
	require.NoError(t, err)

	page, err = composer.GlobalFeed(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Cool test text.", page.Items[0].Text)

	time.Sleep(500 * time.Millisecond)
	page, err = composer.GlobalFeed(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Now post edited", page.Items[0].Text)
}

func TestPageCachePurge(t *testing.T) {
	setupDatabase(t)
	s, err := cache.NewMemoryStore()
	require.NoError(t, err)
	pages := NewPageCache(s, time.Minute)
	composer := NewFeedComposer(pages)
	author := createUser(t, "leo")

	ctx := context.Background()
	page, err := composer.GlobalFeed(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	createPost(t, author, "Fresh post", nil)
	page, err = composer.GlobalFeed(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	require.NoError(t, pages.Purge(ctx))
	page, err = composer.GlobalFeed(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fresh post"}, postTexts(page.Items))
}
