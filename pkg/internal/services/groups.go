package services

import (
	"errors"
	"fmt"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/database"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
	"gorm.io/gorm"
)

var ErrGroupSlugTaken = errors.New("group with this slug already exists")

func GetGroupWithID(id uint) (models.Group, error) {
	var group models.Group
	if err := database.C.Where("id = ?", id).First(&group).Error; err != nil {
		return group, fmt.Errorf("unable to get group by id: %w", err)
	}
	return group, nil
}

func GetGroupBySlug(slug string) (models.Group, error) {
	var group models.Group
	if err := database.C.Where("slug = ?", slug).First(&group).Error; err != nil {
		return group, fmt.Errorf("unable to get group by slug: %w", err)
	}
	return group, nil
}

func ListGroups() ([]models.Group, error) {
	var groups []models.Group
	if err := database.C.Order("title ASC").Find(&groups).Error; err != nil {
		return groups, err
	}
	return groups, nil
}

func NewGroup(group models.Group) (models.Group, error) {
	var count int64
	if err := database.C.Model(&models.Group{}).Where("slug = ?", group.Slug).Count(&count).Error; err != nil {
		return group, err
	} else if count > 0 {
		return group, ErrGroupSlugTaken
	}

	err := database.C.Create(&group).Error
	return group, err
}

func EditGroup(group models.Group) (models.Group, error) {
	var count int64
	if err := database.C.Model(&models.Group{}).
		Where("slug = ? AND id <> ?", group.Slug, group.ID).
		Count(&count).Error; err != nil {
		return group, err
	} else if count > 0 {
		return group, ErrGroupSlugTaken
	}

	err := database.C.Save(&group).Error
	return group, err
}

// DeleteGroup keeps the posts of the group, they become posts without a group.
func DeleteGroup(group models.Group) error {
	return database.C.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).
			Where("group_id = ?", group.ID).
			Update("group_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&group).Error
	})
}
