package services

import (
	"context"
	"errors"
	"fmt"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/database"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("a user with that username already exists")
)

// PasswordHashCost is lowered by tests only.
var PasswordHashCost = bcrypt.DefaultCost

func GetUserWithID(id uint) (models.User, error) {
	var user models.User
	if err := database.C.Where("id = ?", id).First(&user).Error; err != nil {
		return user, fmt.Errorf("unable to get user by id: %w", err)
	}
	return user, nil
}

func GetUserByName(username string) (models.User, error) {
	var user models.User
	if err := database.C.Where("username = ?", username).First(&user).Error; err != nil {
		return user, fmt.Errorf("unable to get user by name: %w", err)
	}
	return user, nil
}

func CreateUser(username, nick, email, password string) (models.User, error) {
	var count int64
	if err := database.C.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return models.User{}, err
	} else if count > 0 {
		return models.User{}, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordHashCost)
	if err != nil {
		return models.User{}, fmt.Errorf("unable to hash password: %v", err)
	}

	user := models.User{
		Username:     username,
		Nick:         nick,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := database.C.Create(&user).Error; err != nil {
		return user, err
	}

	log.Info().Uint("id", user.ID).Str("username", user.Username).Msg("A new user signed up.")
	return user, nil
}

func AuthenticateUser(username, password string) (models.User, error) {
	user, err := GetUserByName(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, ErrInvalidCredentials
		}
		return user, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return user, ErrInvalidCredentials
	}
	return user, nil
}

// DeleteUser removes the user together with everything the user owns or takes part in.
func DeleteUser(user models.User) error {
	var images []string
	if err := database.C.Model(&models.Post{}).
		Where("author_id = ? AND image IS NOT NULL", user.ID).
		Pluck("image", &images).Error; err != nil {
		return err
	}

	if err := database.C.Transaction(func(tx *gorm.DB) error {
		owned := tx.Model(&models.Post{}).Select("id").Where("author_id = ?", user.ID)
		if err := tx.Where("author_id = ? OR post_id IN (?)", user.ID, owned).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("follower_id = ? OR author_id = ?", user.ID, user.ID).Delete(&models.Follow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", user.ID).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	}); err != nil {
		return err
	}

	for _, key := range images {
		RemovePostImage(context.Background(), key)
	}

	log.Info().Uint("id", user.ID).Int("images", len(images)).Msg("User was deleted.")
	return nil
}
