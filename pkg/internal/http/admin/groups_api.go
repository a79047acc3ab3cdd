package admin

import (
	"errors"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

type groupForm struct {
	Title       string `json:"title" form:"title" validate:"required,max=200"`
	Slug        string `json:"slug" form:"slug" validate:"required,max=100,lowercase,excludesall=/"`
	Description string `json:"description" form:"description" validate:"required"`
}

func adminListGroups(c *fiber.Ctx) error {
	groups, err := services.ListGroups()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"count": len(groups),
		"data":  groups,
	})
}

func adminCreateGroup(c *fiber.Ctx) error {
	var data groupForm
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	group, err := services.NewGroup(models.Group{
		Title:       data.Title,
		Slug:        data.Slug,
		Description: data.Description,
	})
	if errors.Is(err, services.ErrGroupSlugTaken) {
		return exts.NewFormError("slug", "unique")
	} else if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(group)
}

func adminEditGroup(c *fiber.Ctx) error {
	group, err := services.GetGroupBySlug(c.Params("slug"))
	if err != nil {
		return exts.LookupError(err)
	}

	var data groupForm
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	group.Title = data.Title
	group.Slug = data.Slug
	group.Description = data.Description

	group, err = services.EditGroup(group)
	if errors.Is(err, services.ErrGroupSlugTaken) {
		return exts.NewFormError("slug", "unique")
	} else if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(group)
}

func adminDeleteGroup(c *fiber.Ctx) error {
	group, err := services.GetGroupBySlug(c.Params("slug"))
	if err != nil {
		return exts.LookupError(err)
	}

	if err := services.DeleteGroup(group); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.SendStatus(fiber.StatusOK)
}
