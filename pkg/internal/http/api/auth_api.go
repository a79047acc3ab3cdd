package api

import (
	"errors"
	"strings"
	"time"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

func setSession(c *fiber.Ctx, user models.User) (string, error) {
	token, err := services.IssueToken(user)
	if err != nil {
		return token, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	ttl := viper.GetDuration("security.token_ttl")
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	c.Cookie(&fiber.Cookie{
		Name:     exts.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return token, nil
}

// reservedUsernames would be shadowed by the site routes.
var reservedUsernames = []string{"new", "follow", "group", "auth", "admin", "metrics", "media"}

// safeNext accepts local paths only, browsers read a backslash as a slash.
func safeNext(next string) (string, bool) {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.ContainsRune(next, '\\') {
		return "", false
	}
	return next, true
}

func signup(c *fiber.Ctx) error {
	var data struct {
		Username string `json:"username" form:"username" validate:"required,max=150,excludesall=/"`
		Nick     string `json:"nick" form:"nick" validate:"max=150"`
		Email    string `json:"email" form:"email" validate:"omitempty,email"`
		Password string `json:"password" form:"password" validate:"required,min=8"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if lo.Contains(reservedUsernames, strings.ToLower(data.Username)) {
		return exts.NewFormError("username", "reserved")
	}

	user, err := services.CreateUser(data.Username, data.Nick, data.Email, data.Password)
	if errors.Is(err, services.ErrUsernameTaken) {
		return exts.NewFormError("username", "unique")
	} else if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	token, err := setSession(c, user)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":  user,
		"email": user.Email,
		"token": token,
	})
}

func getLoginForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"next": c.Query("next"),
	})
}

func login(c *fiber.Ctx) error {
	var data struct {
		Username string `json:"username" form:"username" validate:"required"`
		Password string `json:"password" form:"password" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	user, err := services.AuthenticateUser(data.Username, data.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	} else if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	token, err := setSession(c, user)
	if err != nil {
		return err
	}

	if next, ok := safeNext(c.Query("next")); ok {
		return c.Redirect(next, fiber.StatusFound)
	}

	return c.JSON(fiber.Map{
		"user":  user,
		"email": user.Email,
		"token": token,
	})
}

func logout(c *fiber.Ctx) error {
	c.ClearCookie(exts.SessionCookie)
	return c.Redirect("/", fiber.StatusFound)
}
