package events

import (
	"git.solsynth.dev/hypernet/yatube/pkg/internal/database"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/gap"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/services"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
)

const DeletionSubject = "accounts.deletion"

func SubscribeDeletion() error {
	_, err := gap.Subscribe(DeletionSubject, HandleDeletion)
	return err
}

// HandleDeletion removes the resource named by the event, the type defaults to an account.
func HandleDeletion(raw []byte) {
	if database.C == nil {
		log.Warn().Msg("Dropped a deletion event, the database is not connected yet.")
		return
	}

	var data struct {
		Type string `json:"type"`
		ID   uint   `json:"id"`
		Slug string `json:"slug"`
	}
	if err := jsoniter.Unmarshal(raw, &data); err != nil {
		log.Warn().Err(err).Msg("An error occurred when decoding deletion event...")
		return
	}

	switch data.Type {
	case "", "account":
		user, err := services.GetUserWithID(data.ID)
		if err != nil {
			log.Warn().Err(err).Uint("id", data.ID).Msg("Deletion event refers to an unknown account.")
			return
		}
		if err := services.DeleteUser(user); err != nil {
			log.Error().Err(err).Uint("id", data.ID).Msg("An error occurred when deleting account...")
		}
	case "group":
		group, err := services.GetGroupBySlug(data.Slug)
		if err != nil {
			log.Warn().Err(err).Str("slug", data.Slug).Msg("Deletion event refers to an unknown group.")
			return
		}
		if err := services.DeleteGroup(group); err != nil {
			log.Error().Err(err).Str("slug", data.Slug).Msg("An error occurred when deleting group...")
		}
	default:
		log.Debug().Str("type", data.Type).Msg("Ignored deletion event of unsupported type.")
	}
}
