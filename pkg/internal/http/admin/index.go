package admin

import (
	"git.solsynth.dev/hypernet/yatube/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

var pages *services.PageCache

func MapControllers(app *fiber.App, baseURL string, cache *services.PageCache) {
	pages = cache

	admin := app.Group(baseURL)
	{
		admin.Get("/groups", exts.EnsureAdmin, adminListGroups)
		admin.Post("/groups", exts.EnsureAdmin, adminCreateGroup)
		admin.Put("/groups/:slug", exts.EnsureAdmin, adminEditGroup)
		admin.Delete("/groups/:slug", exts.EnsureAdmin, adminDeleteGroup)

		admin.Delete("/users/:username", exts.EnsureAdmin, adminDeleteUser)
		admin.Delete("/posts/:postId<int>", exts.EnsureAdmin, adminDeletePost)

		admin.Post("/cache/purge", exts.EnsureAdmin, adminPurgeFeedCache)
	}
}
