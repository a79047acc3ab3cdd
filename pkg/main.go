package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	pkg "git.solsynth.dev/hypernet/yatube/pkg/internal"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/cache"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/database"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/events"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/gap"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/http"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/services"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/storage"
	"github.com/fatih/color"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

func main() {
	// Booting screen
	fmt.Println(color.YellowString(" __   __    _         _\n \\ \\ / /_ _| |_ _   _| |__   ___\n  \\ V / _` | __| | | | '_ \\ / _ \\\n   | | (_| | |_| |_| | |_) |  __/\n   |_|\\__,_|\\__|\\__,_|_.__/ \\___|"))
	fmt.Printf("%s v%s\n", color.New(color.FgHiYellow).Add(color.Bold).Sprintf("Yatube"), pkg.AppVersion)
	fmt.Printf("The blogging and social feed service\n")
	color.HiBlack("=====================================================\n")

	// Configure settings
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("settings")
	viper.SetConfigType("toml")
	viper.SetDefault("bind", "0.0.0.0:8000")
	viper.SetDefault("cache.feed_ttl", services.DefaultFeedCacheTTL)
	viper.SetDefault("storage.local.path", "./uploads")
	viper.SetDefault("storage.local.public_url", "/media")

	// Load settings
	if err := viper.ReadInConfig(); err != nil {
		log.Panic().Err(err).Msg("An error occurred when loading settings.")
	}
	if len(viper.GetString("security.jwt_secret")) == 0 {
		log.Fatal().Msg("Security jwt secret is required, sessions cannot be signed without it.")
	}

	// Connect to nats
	if err := gap.InitializeToNats(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when connecting to nats...")
	}

	// Connect to database
	if err := database.NewGorm(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when connect to database.")
	} else if err := database.RunMigration(database.C); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when running database auto migration.")
	}

	// Consume events once the database is ready
	if err := events.SubscribeDeletion(); err != nil {
		log.Error().Err(err).Msg("An error occurred when subscribing deletion events...")
	}

	// Initialize cache and storage
	if err := cache.NewStore(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when initializing cache.")
	}
	if err := storage.NewStore(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when initializing image storage.")
	}

	pages := services.NewPageCache(cache.S, viper.GetDuration("cache.feed_ttl"))
	composer := services.NewFeedComposer(pages)

	// Configure timed tasks
	quartz := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(&log.Logger)))
	quartz.AddFunc("@every 60m", services.DoAutoDatabaseCleanup)
	quartz.Start()

	// Server
	server := http.NewServer(composer, pages)
	go server.Listen()

	// Messages
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	quartz.Stop()
	if err := server.Shutdown(); err != nil {
		log.Error().Err(err).Msg("An error occurred when shutting down server...")
	}
	if gap.Nc != nil {
		_ = gap.Nc.Drain()
	}
}
