package services

import (
	"git.solsynth.dev/hypernet/yatube/pkg/internal/database"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
	"github.com/rs/zerolog/log"
)

func DoAutoDatabaseCleanup() {
	log.Debug().Msg("Cleaning up entire database...")

	tx := database.C.Where("follower_id = author_id").Delete(&models.Follow{})
	if tx.Error != nil {
		log.Error().Err(tx.Error).Msg("An error occurred when running auto database cleanup...")
		return
	}

	log.Debug().Int64("affected", tx.RowsAffected).Msg("Clean up entire database accomplished.")
}
