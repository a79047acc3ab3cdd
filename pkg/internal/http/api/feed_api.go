package api

import (
	"git.solsynth.dev/hypernet/yatube/pkg/internal/http/exts"
	"github.com/gofiber/fiber/v2"
)

func listGlobalFeed(c *fiber.Ctx) error {
	page, err := feeds.GlobalFeed(c.UserContext(), c.QueryInt("page", 1))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"page": page,
	})
}

func listFollowingFeed(c *fiber.Ctx) error {
	user, _ := exts.GetAuth(c).User()

	page, err := feeds.FollowingFeed(c.UserContext(), user, c.QueryInt("page", 1))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"page": page,
	})
}

func listGroupFeed(c *fiber.Ctx) error {
	group, page, err := feeds.GroupFeed(c.UserContext(), c.Params("slug"), c.QueryInt("page", 1))
	if err != nil {
		return exts.LookupError(err)
	}

	return c.JSON(fiber.Map{
		"group": group,
		"page":  page,
	})
}
