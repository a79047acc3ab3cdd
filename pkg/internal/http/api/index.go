package api

import (
	"git.solsynth.dev/hypernet/yatube/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

var feeds *services.FeedComposer

// MapAPIs registers the site routes, the catch-all profile routes must stay last.
func MapAPIs(app *fiber.App, composer *services.FeedComposer) {
	feeds = composer

	app.Get("/", listGlobalFeed)
	app.Get("/new", exts.EnsureAuthenticated, getNewPostForm)
	app.Post("/new", exts.EnsureAuthenticated, createPost)
	app.Get("/follow", exts.EnsureAuthenticated, listFollowingFeed)
	app.Get("/group/:slug", listGroupFeed)

	auth := app.Group("/auth")
	{
		auth.Post("/signup", signup)
		auth.Get("/login", getLoginForm)
		auth.Post("/login", login)
		auth.Get("/logout", logout)
	}

	profiles := app.Group("/:username")
	{
		profiles.Get("/", getProfile)
		profiles.Get("/follow", exts.EnsureAuthenticated, followUser)
		profiles.Get("/unfollow", exts.EnsureAuthenticated, unfollowUser)

		profiles.Get("/:postId<int>", getPost)
		profiles.Get("/:postId<int>/edit", exts.EnsureAuthenticated, getEditPostForm)
		profiles.Post("/:postId<int>/edit", exts.EnsureAuthenticated, editPost)
		profiles.Post("/:postId<int>/delete", exts.EnsureAuthenticated, deletePost)
		profiles.Post("/:postId<int>/comment", exts.EnsureAuthenticated, createComment)
	}
}
