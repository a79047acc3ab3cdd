package api

import (
	"errors"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func profileURL(user models.User) string {
	return "/" + user.Username + "/"
}

func getProfile(c *fiber.Ctx) error {
	author, page, err := feeds.AuthorFeed(c.UserContext(), c.Params("username"), c.QueryInt("page", 1))
	if err != nil {
		return exts.LookupError(err)
	}

	var following bool
	if user, ok := exts.GetAuth(c).User(); ok {
		following = services.IsFollowing(user, author)
	}

	followers, err := services.CountFollowers(author)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	followings, err := services.CountFollowing(author)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"author":          author,
		"page":            page,
		"following":       following,
		"followers_count": followers,
		"following_count": followings,
	})
}

func followUser(c *fiber.Ctx) error {
	user, _ := exts.GetAuth(c).User()

	author, err := services.GetUserByName(c.Params("username"))
	if err != nil {
		return exts.LookupError(err)
	}

	if _, err := services.FollowUser(user, author); err != nil && !errors.Is(err, services.ErrFollowSelf) {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.Redirect(profileURL(author), fiber.StatusFound)
}

func unfollowUser(c *fiber.Ctx) error {
	user, _ := exts.GetAuth(c).User()

	author, err := services.GetUserByName(c.Params("username"))
	if err != nil {
		return exts.LookupError(err)
	}

	if err := services.UnfollowUser(user, author); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.Redirect(profileURL(author), fiber.StatusFound)
}
