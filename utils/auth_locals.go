package utils

import (
	"time"

	"undangan.link/models"
	"undangan.link/pkg/authtoken"

	"github.com/gofiber/fiber/v2"
)

const (
	AuthCookieName   = "undangan_session"
	LocalsSessionKey = "Session"
	LocalsUserKey    = "CurrentUser"
)

// SessionFromLocals returns the verified session of the request, if any.
func SessionFromLocals(c *fiber.Ctx) (*authtoken.Session, bool) {
	s, ok := c.Locals(LocalsSessionKey).(*authtoken.Session)
	return s, ok && s != nil
}

// UserFromLocals returns the profile loaded by the status middleware.
func UserFromLocals(c *fiber.Ctx) (*models.UserProfile, bool) {
	u, ok := c.Locals(LocalsUserKey).(*models.UserProfile)
	return u, ok && u != nil
}

// SetAuthCookie stores the session token.
func SetAuthCookie(c *fiber.Ctx, token string, expires time.Time, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ClearAuthCookie expires the session cookie.
func ClearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
