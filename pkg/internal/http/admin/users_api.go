package admin

import (
	"git.solsynth.dev/hypernet/yatube/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func adminDeleteUser(c *fiber.Ctx) error {
	user, err := services.GetUserByName(c.Params("username"))
	if err != nil {
		return exts.LookupError(err)
	}

	if current, _ := exts.GetAuth(c).User(); current.ID == user.ID {
		return fiber.NewError(fiber.StatusBadRequest, "you cannot delete yourself")
	}

	if err := services.DeleteUser(user); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.SendStatus(fiber.StatusOK)
}
