package services

import (
	"git.solsynth.dev/hypernet/yatube/pkg/internal/gap"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
	"github.com/rs/zerolog/log"
)

const PostNewSubject = "posts.new"

type PostNewEvent struct {
	PostID     uint   `json:"post_id"`
	AuthorID   uint   `json:"author_id"`
	Author     string `json:"author"`
	Preview    string `json:"preview"`
	Recipients []uint `json:"recipients"`
}

func NotifyFollowers(author models.User, post models.Post, followers []uint) error {
	if len(followers) == 0 {
		return nil
	}

	err := gap.Publish(PostNewSubject, PostNewEvent{
		PostID:     post.ID,
		AuthorID:   author.ID,
		Author:     author.Username,
		Preview:    PostPreview(post.Text),
		Recipients: followers,
	})
	if err == nil {
		log.Debug().Uint("post", post.ID).Int("count", len(followers)).Msg("Notified followers.")
	}
	return err
}
