package services

import (
	"errors"
	"fmt"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/database"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/metrics"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrFollowSelf = errors.New("you cannot follow yourself")

func GetFollow(follower models.User, author models.User) (*models.Follow, error) {
	var follow models.Follow
	if err := database.C.Where("follower_id = ? AND author_id = ?", follower.ID, author.ID).First(&follow).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("unable to get follow: %v", err)
	}
	return &follow, nil
}

func IsFollowing(follower models.User, author models.User) bool {
	follow, err := GetFollow(follower, author)
	return err == nil && follow != nil
}

// FollowUser creates the edge once, concurrent or repeated calls all end on the same stored edge.
func FollowUser(follower models.User, author models.User) (models.Follow, error) {
	if follower.ID == author.ID {
		return models.Follow{}, ErrFollowSelf
	}

	follow := models.Follow{
		FollowerID: follower.ID,
		AuthorID:   author.ID,
	}
	tx := database.C.
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit(clause.Associations).
		Create(&follow)
	if tx.Error != nil {
		return follow, fmt.Errorf("unable to follow user: %v", tx.Error)
	}
	if tx.RowsAffected > 0 {
		metrics.FollowChanges.WithLabelValues("follow").Inc()
	}

	var stored models.Follow
	if err := database.C.Where("follower_id = ? AND author_id = ?", follower.ID, author.ID).First(&stored).Error; err != nil {
		return stored, fmt.Errorf("unable to get follow: %v", err)
	}
	return stored, nil
}

func UnfollowUser(follower models.User, author models.User) error {
	tx := database.C.
		Where("follower_id = ? AND author_id = ?", follower.ID, author.ID).
		Delete(&models.Follow{})
	if tx.Error != nil {
		return fmt.Errorf("unable to unfollow user: %v", tx.Error)
	}
	if tx.RowsAffected > 0 {
		metrics.FollowChanges.WithLabelValues("unfollow").Inc()
	}
	return nil
}

func ListFollowedAuthorIDs(follower uint) ([]uint, error) {
	var ids []uint
	if err := database.C.Model(&models.Follow{}).
		Where("follower_id = ?", follower).
		Pluck("author_id", &ids).Error; err != nil {
		return ids, err
	}
	return ids, nil
}

func ListFollowerIDs(author uint) ([]uint, error) {
	var ids []uint
	if err := database.C.Model(&models.Follow{}).
		Where("author_id = ?", author).
		Pluck("follower_id", &ids).Error; err != nil {
		return ids, err
	}
	return ids, nil
}

func CountFollowers(user models.User) (int64, error) {
	var count int64
	if err := database.C.Model(&models.Follow{}).Where("author_id = ?", user.ID).Count(&count).Error; err != nil {
		return count, err
	}
	return count, nil
}

func CountFollowing(user models.User) (int64, error) {
	var count int64
	if err := database.C.Model(&models.Follow{}).Where("follower_id = ?", user.ID).Count(&count).Error; err != nil {
		return count, err
	}
	return count, nil
}
