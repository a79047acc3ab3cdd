package api

import (
	"git.solsynth.dev/hypernet/yatube/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// createComment always lands back on the post, an empty comment is dropped silently.
func createComment(c *fiber.Ctx) error {
	user, _ := exts.GetAuth(c).User()

	post, err := lookupPost(c)
	if err != nil {
		return err
	}

	var data struct {
		Text string `json:"text" form:"text" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		log.Debug().Err(err).Uint("post", post.ID).Msg("Dropped an invalid comment.")
	} else if _, err := services.AddComment(post.ID, user, data.Text); err != nil {
		return exts.LookupError(err)
	}

	return c.Redirect(postURL(post), fiber.StatusFound)
}
