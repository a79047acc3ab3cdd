package services

import (
	"errors"
	"testing"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/database"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateAndAuthenticateUser(t *testing.T) {
	setupDatabase(t)
	user, err := CreateUser("leo", "Leo", gofakeit.Email(), "correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", user.PasswordHash)

	_, err = CreateUser("leo", "Leo again", gofakeit.Email(), "whatever")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	found, err := AuthenticateUser("leo", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = AuthenticateUser("leo", "wrong horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = AuthenticateUser(gofakeit.LetterN(12), "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetUserByNameUnknown(t *testing.T) {
	setupDatabase(t)

	_, err := GetUserByName(gofakeit.LetterN(12))
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestDeleteUserCascades(t *testing.T) {
	setupDatabase(t)
	leo := createUser(t, "leo")
	mia := createUser(t, "mia")

	leoPost := createPost(t, leo, "By leo", nil)
	miaPost := createPost(t, mia, "By mia", nil)
	_, err := AddComment(leoPost.ID, mia, "Mia on leo")
	require.NoError(t, err)
	_, err = AddComment(miaPost.ID, leo, "Leo on mia")
	require.NoError(t, err)
	_, err = AddComment(miaPost.ID, mia, "Mia on mia")
	require.NoError(t, err)
	_, err = FollowUser(leo, mia)
	require.NoError(t, err)
	_, err = FollowUser(mia, leo)
	require.NoError(t, err)

	require.NoError(t, DeleteUser(leo))

	_, err = GetUserByName("leo")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	var posts []models.Post
	require.NoError(t, database.C.Find(&posts).Error)
	assert.Equal(t, []string{"By mia"}, postTexts(posts))

	comments, err := ListComments(miaPost)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "Mia on mia", comments[0].Text)

	var follows int64
	require.NoError(t, database.C.Model(&models.Follow{}).Count(&follows).Error)
	assert.Zero(t, follows)
}
