package admin

import (
	"git.solsynth.dev/hypernet/yatube/pkg/internal/database"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func adminDeletePost(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("postId", 0)

	post, err := services.GetPost(database.C, uint(id))
	if err != nil {
		return exts.LookupError(err)
	}

	if err := services.DeletePost(post); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.SendStatus(fiber.StatusOK)
}
