package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

func adminPurgeFeedCache(c *fiber.Ctx) error {
	if pages == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "feed cache is not configured")
	}

	if err := pages.Purge(c.UserContext()); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	log.Info().Msg("Feed page cache was purged.")
	return c.SendStatus(fiber.StatusOK)
}
