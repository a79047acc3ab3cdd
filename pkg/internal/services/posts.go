package services

import (
	"context"
	"fmt"
	"time"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/database"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/metrics"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/storage"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostListOrder is newest first, the id breaks ties between posts created within the same instant.
const PostListOrder = "created_at DESC, id DESC"

func FilterPostWithAuthor(tx *gorm.DB, author uint) *gorm.DB {
	return tx.Where("author_id = ?", author)
}

func FilterPostWithAuthors(tx *gorm.DB, authors []uint) *gorm.DB {
	return tx.Where("author_id IN ?", authors)
}

func FilterPostWithGroup(tx *gorm.DB, group uint) *gorm.DB {
	return tx.Where("group_id = ?", group)
}

func PreloadGeneral(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Author").
		Preload("Group")
}

func CountPost(tx *gorm.DB) (int64, error) {
	var count int64
	if err := tx.Model(&models.Post{}).Count(&count).Error; err != nil {
		return count, err
	}

	return count, nil
}

func ListPost(tx *gorm.DB, take int, offset int, order any) ([]models.Post, error) {
	if take > 100 {
		take = 100
	}

	var items []models.Post
	if err := PreloadGeneral(tx).
		Limit(take).Offset(offset).
		Order(order).
		Find(&items).Error; err != nil {
		return items, err
	}

	return CompletePostMeta(items...), nil
}

// CompletePostMeta fills the fields that are not stored in the database.
func CompletePostMeta(in ...models.Post) []models.Post {
	if storage.S == nil {
		return in
	}
	for idx, item := range in {
		if item.Image != nil {
			in[idx].ImageURL = lo.ToPtr(storage.S.URL(*item.Image))
		}
	}
	return in
}

func GetPost(tx *gorm.DB, id uint) (models.Post, error) {
	var item models.Post
	if err := PreloadGeneral(tx).
		Where("id = ?", id).
		First(&item).Error; err != nil {
		return item, fmt.Errorf("unable to get post #%d: %w", id, err)
	}

	return CompletePostMeta(item)[0], nil
}

// GetPostOfAuthor resolves a post only when it belongs to the author, the same way the post urls are scoped.
func GetPostOfAuthor(author models.User, id uint) (models.Post, error) {
	return GetPost(FilterPostWithAuthor(database.C, author.ID), id)
}

func NewPost(user models.User, item models.Post) (models.Post, error) {
	item.AuthorID = user.ID
	item.Language = DetectLanguage(item.Text)

	log.Debug().Uint("author", user.ID).Msg("Posting a post...")
	start := time.Now()

	if err := database.C.Omit(clause.Associations).Create(&item).Error; err != nil {
		return item, err
	}
	item.Author = user
	metrics.PostsCreated.Inc()

	if followers, err := ListFollowerIDs(user.ID); err != nil {
		log.Warn().Err(err).Uint("author", user.ID).Msg("An error occurred when listing followers...")
	} else if len(followers) > 0 {
		go func() {
			if err := NotifyFollowers(user, item, followers); err != nil {
				log.Error().Err(err).Msg("An error occurred when notifying followers...")
			}
		}()
	}

	log.Debug().Dur("elapsed", time.Since(start)).Uint("id", item.ID).Msg("The post is posted.")
	return CompletePostMeta(item)[0], nil
}

func EditPost(item models.Post) (models.Post, error) {
	item.Language = DetectLanguage(item.Text)

	if err := database.C.Omit(clause.Associations).Save(&item).Error; err != nil {
		return item, err
	}

	if item.GroupID == nil {
		item.Group = nil
	} else if item.Group == nil || item.Group.ID != *item.GroupID {
		if group, err := GetGroupWithID(*item.GroupID); err == nil {
			item.Group = &group
		}
	}

	return CompletePostMeta(item)[0], nil
}

func DeletePost(item models.Post) error {
	if err := database.C.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", item.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	}); err != nil {
		return err
	}

	if item.Image != nil {
		RemovePostImage(context.Background(), *item.Image)
	}
	return nil
}

const PostPreviewLength = 80

// PostPreview cuts the text to PostPreviewLength runes, an ellipsis marks the cut.
func PostPreview(text string) string {
	runes := []rune(text)
	if len(runes) < PostPreviewLength {
		return text
	}
	return string(runes[:PostPreviewLength]) + "..."
}
