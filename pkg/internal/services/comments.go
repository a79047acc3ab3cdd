package services

import (
	"fmt"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/database"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/metrics"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
	"gorm.io/gorm/clause"
)

func AddComment(postId uint, author models.User, text string) (models.Comment, error) {
	post, err := GetPost(database.C, postId)
	if err != nil {
		return models.Comment{}, err
	}

	comment := models.Comment{
		Text:     text,
		PostID:   post.ID,
		AuthorID: author.ID,
	}
	if err := database.C.Omit(clause.Associations).Create(&comment).Error; err != nil {
		return comment, fmt.Errorf("unable to create comment: %v", err)
	}
	comment.Author = author
	metrics.CommentsCreated.Inc()

	return comment, nil
}

func ListComments(post models.Post) ([]models.Comment, error) {
	var items []models.Comment
	if err := database.C.
		Where("post_id = ?", post.ID).
		Preload("Author").
		Order(PostListOrder).
		Find(&items).Error; err != nil {
		return items, err
	}
	return items, nil
}
