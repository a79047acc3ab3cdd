package http

import (
	"strings"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/http/admin"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/http/api"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type App struct {
	app *fiber.App
}

func NewServer(composer *services.FeedComposer, pages *services.PageCache) *App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		EnableIPValidation:    true,
		ServerHeader:          "Yatube",
		AppName:               "Yatube",
		ProxyHeader:           fiber.HeaderXForwardedFor,
		JSONEncoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Marshal,
		JSONDecoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal,
		BodyLimit:             16 * 1024 * 1024,
		EnablePrintRoutes:     viper.GetBool("debug.print_routes"),
		ErrorHandler:          exts.ErrorHandler,
	})

	app.Use(logger.New(logger.Config{
		Format: "${status} | ${latency} | ${method} ${path}\n",
		Output: log.Logger,
	}))

	app.Use(exts.ContextMiddleware)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	if driver := viper.GetString("storage.driver"); driver == "" || driver == "local" {
		prefix := viper.GetString("storage.local.public_url")
		if !strings.HasPrefix(prefix, "/") {
			prefix = "/media"
		}
		app.Static(prefix, viper.GetString("storage.local.path"))
	}

	admin.MapControllers(app, "/admin", pages)
	api.MapAPIs(app, composer)

	return &App{app}
}

func (v *App) Listen() {
	if err := v.app.Listen(viper.GetString("bind")); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when starting server...")
	}
}

func (v *App) Shutdown() error {
	return v.app.Shutdown()
}
