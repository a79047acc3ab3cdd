package services

import (
	"context"
	"fmt"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/database"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
	"github.com/rs/zerolog/log"
)

// FeedComposer builds the paginated listings, only the global feed goes through the page cache.
type FeedComposer struct {
	pages *PageCache
}

func NewFeedComposer(pages *PageCache) *FeedComposer {
	return &FeedComposer{pages: pages}
}

func (v *FeedComposer) GlobalFeed(ctx context.Context, page int) (FeedPage, error) {
	key := fmt.Sprintf("feed#global?page=%d", page)

	var out FeedPage
	if v.pages != nil && v.pages.Get(ctx, key, &out) {
		return out, nil
	}

	out, err := PaginatePost(database.C.WithContext(ctx), page)
	if err != nil {
		return out, fmt.Errorf("unable to list global feed: %v", err)
	}
	if v.pages != nil {
		v.pages.Set(ctx, key, out)
	}
	return out, nil
}

func (v *FeedComposer) GroupFeed(ctx context.Context, slug string, page int) (models.Group, FeedPage, error) {
	group, err := GetGroupBySlug(slug)
	if err != nil {
		return group, FeedPage{}, err
	}

	tx := FilterPostWithGroup(database.C.WithContext(ctx), group.ID)
	out, err := PaginatePost(tx, page)
	if err != nil {
		return group, out, fmt.Errorf("unable to list group feed: %v", err)
	}
	return group, out, nil
}

func (v *FeedComposer) AuthorFeed(ctx context.Context, username string, page int) (models.User, FeedPage, error) {
	author, err := GetUserByName(username)
	if err != nil {
		return author, FeedPage{}, err
	}

	tx := FilterPostWithAuthor(database.C.WithContext(ctx), author.ID)
	out, err := PaginatePost(tx, page)
	if err != nil {
		return author, out, fmt.Errorf("unable to list author feed: %v", err)
	}
	return author, out, nil
}

func (v *FeedComposer) FollowingFeed(ctx context.Context, viewer models.User, page int) (FeedPage, error) {
	authors, err := ListFollowedAuthorIDs(viewer.ID)
	if err != nil {
		return FeedPage{}, fmt.Errorf("unable to list followed authors: %v", err)
	}
	if len(authors) == 0 {
		log.Debug().Uint("viewer", viewer.ID).Msg("Viewer follows nobody, following feed is empty.")
		return Paginator{PerPage: FeedPageSize}.Page(page, nil), nil
	}

	tx := FilterPostWithAuthors(database.C.WithContext(ctx), authors)
	out, err := PaginatePost(tx, page)
	if err != nil {
		return out, fmt.Errorf("unable to list following feed: %v", err)
	}
	return out, nil
}
