package exts

import (
	"net/url"
	"strings"

	"git.solsynth.dev/hypernet/yatube/pkg/internal/models"
	"git.solsynth.dev/hypernet/yatube/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

const (
	SessionCookie = "session"
	LoginPath     = "/auth/login/"
)

// AuthResult is either an authenticated user or an anonymous visitor.
type AuthResult struct {
	user *models.User
}

func Authenticated(user models.User) AuthResult {
	return AuthResult{user: &user}
}

func (v AuthResult) User() (models.User, bool) {
	if v.user == nil {
		return models.User{}, false
	}
	return *v.user, true
}

func (v AuthResult) IsAuthenticated() bool {
	return v.user != nil
}

func readToken(c *fiber.Ctx) string {
	if header := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return c.Cookies(SessionCookie)
}

// ContextMiddleware never rejects a request, a bad token just leaves the visitor anonymous.
func ContextMiddleware(c *fiber.Ctx) error {
	result := AuthResult{}

	if token := readToken(c); len(token) > 0 {
		if id, err := services.ReadToken(token); err != nil {
			log.Debug().Err(err).Msg("Ignored an invalid session token.")
		} else if user, err := services.GetUserWithID(id); err != nil {
			log.Debug().Err(err).Uint("id", id).Msg("Session token refers to an unknown user.")
		} else {
			result = Authenticated(user)
		}
	}

	c.Locals("auth", result)
	return c.Next()
}

func GetAuth(c *fiber.Ctx) AuthResult {
	result, _ := c.Locals("auth").(AuthResult)
	return result
}

// LoginURL leaves the slashes of the next url unescaped.
func LoginURL(next string) string {
	return LoginPath + "?next=" + strings.ReplaceAll(url.QueryEscape(next), "%2F", "/")
}

func EnsureAuthenticated(c *fiber.Ctx) error {
	if !GetAuth(c).IsAuthenticated() {
		return c.Redirect(LoginURL(c.OriginalURL()), fiber.StatusFound)
	}
	return c.Next()
}

func EnsureAdmin(c *fiber.Ctx) error {
	user, ok := GetAuth(c).User()
	if !ok {
		return c.Redirect(LoginURL(c.OriginalURL()), fiber.StatusFound)
	} else if !user.IsAdmin {
		return fiber.NewError(fiber.StatusForbidden, "admin privileges required")
	}
	return c.Next()
}
