package api

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strconv"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/database"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type postForm struct {
	Text       string  `json:"text" form:"text" validate:"required"`
	Group      *string `json:"group" form:"group"`
	ClearImage bool    `json:"clear_image" form:"clear_image"`
}

func postURL(post models.Post) string {
	return fmt.Sprintf("/%s/%d/", post.Author.Username, post.ID)
}

// lookupPost resolves the post from the url, the post must belong to the user named in it.
func lookupPost(c *fiber.Ctx) (models.Post, error) {
	author, err := services.GetUserByName(c.Params("username"))
	if err != nil {
		return models.Post{}, exts.LookupError(err)
	}

	id, err := c.ParamsInt("postId", 0)
	if err != nil || id <= 0 {
		return models.Post{}, fiber.NewError(fiber.StatusNotFound, "post not found")
	}

	post, err := services.GetPostOfAuthor(author, uint(id))
	if err != nil {
		return post, exts.LookupError(err)
	}
	return post, nil
}

// resolveGroup accepts both the id and the slug of a group, an empty value means no group.
func resolveGroup(value *string) (*uint, error) {
	if value == nil || len(*value) == 0 {
		return nil, nil
	}

	var group models.Group
	var err error
	if numericId, parseErr := strconv.Atoi(*value); parseErr == nil {
		group, err = services.GetGroupWithID(uint(numericId))
	} else {
		group, err = services.GetGroupBySlug(*value)
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, exts.NewFormError("group", "invalid_choice")
	} else if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &group.ID, nil
}

func formImage(c *fiber.Ctx) *multipart.FileHeader {
	file, err := c.FormFile("image")
	if err != nil {
		return nil
	}
	return file
}

func uploadImage(c *fiber.Ctx, file *multipart.FileHeader) (string, error) {
	key, err := services.UploadPostImage(c.UserContext(), file)
	if errors.Is(err, services.ErrNotImage) {
		return key, exts.NewFormError("image", "invalid_image")
	} else if err != nil {
		return key, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return key, nil
}

func getNewPostForm(c *fiber.Ctx) error {
	groups, err := services.ListGroups()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"is_edit": false,
		"groups":  groups,
	})
}

func createPost(c *fiber.Ctx) error {
	user, _ := exts.GetAuth(c).User()

	var data postForm
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item := models.Post{Text: data.Text}
	groupId, err := resolveGroup(data.Group)
	if err != nil {
		return err
	}
	item.GroupID = groupId

	if file := formImage(c); file != nil {
		key, err := uploadImage(c, file)
		if err != nil {
			return err
		}
		item.Image = &key
	}

	if _, err := services.NewPost(user, item); err != nil {
		if item.Image != nil {
			services.RemovePostImage(c.UserContext(), *item.Image)
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.Redirect("/", fiber.StatusFound)
}

func getPost(c *fiber.Ctx) error {
	post, err := lookupPost(c)
	if err != nil {
		return err
	}

	comments, err := services.ListComments(post)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	count, err := services.CountPost(services.FilterPostWithAuthor(database.C, post.AuthorID))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"post":         post,
		"author":       post.Author,
		"author_posts": count,
		"comments":     comments,
	})
}

func getEditPostForm(c *fiber.Ctx) error {
	user, _ := exts.GetAuth(c).User()

	post, err := lookupPost(c)
	if err != nil {
		return err
	}
	if post.AuthorID != user.ID {
		log.Debug().Uint("post", post.ID).Uint("user", user.ID).Msg("Refused to edit a post of another user.")
		return c.Redirect(postURL(post), fiber.StatusFound)
	}

	groups, err := services.ListGroups()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"is_edit": true,
		"post":    post,
		"groups":  groups,
	})
}

func editPost(c *fiber.Ctx) error {
	user, _ := exts.GetAuth(c).User()

	post, err := lookupPost(c)
	if err != nil {
		return err
	}
	if post.AuthorID != user.ID {
		log.Debug().Uint("post", post.ID).Uint("user", user.ID).Msg("Refused to edit a post of another user.")
		return c.Redirect(postURL(post), fiber.StatusFound)
	}

	var data postForm
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	groupId, err := resolveGroup(data.Group)
	if err != nil {
		return err
	}

	previousImage := post.Image
	if file := formImage(c); file != nil {
		key, err := uploadImage(c, file)
		if err != nil {
			return err
		}
		post.Image = &key
	} else if data.ClearImage {
		post.Image = nil
	}

	post.Text = data.Text
	post.GroupID = groupId
	if post, err = services.EditPost(post); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if previousImage != nil && (post.Image == nil || *post.Image != *previousImage) {
		services.RemovePostImage(c.UserContext(), *previousImage)
	}

	return c.Redirect(postURL(post), fiber.StatusFound)
}

func deletePost(c *fiber.Ctx) error {
	user, _ := exts.GetAuth(c).User()

	post, err := lookupPost(c)
	if err != nil {
		return err
	}
	if post.AuthorID != user.ID {
		log.Debug().Uint("post", post.ID).Uint("user", user.ID).Msg("Refused to delete a post of another user.")
		return c.Redirect(postURL(post), fiber.StatusFound)
	}

	if err := services.DeletePost(post); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.Redirect(profileURL(post.Author), fiber.StatusFound)
}
