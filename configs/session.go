package configs

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/fiber/v2/utils"
)

// SetupSession builds the cookie session store. It only carries flash
// messages and form data. Identity lives in the auth token cookie.
func SetupSession() *session.Store {
	cfg := GetConfig()
	return session.New(session.Config{
		Expiration:     2 * time.Hour,
		KeyLookup:      "cookie:undangan_flash",
		CookieHTTPOnly: true,
		CookieSecure:   cfg.CookieSecure,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
		KeyGenerator:   utils.UUIDv4,
	})
}
