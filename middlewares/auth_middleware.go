package middlewares

import (
	"errors"
	"strings"

	"undangan.link/configs/configslog"
	"undangan.link/models"
	"undangan.link/pkg/flashmessages"
	"undangan.link/services"
	"undangan.link/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func tokenFromRequest(c *fiber.Ctx) string {
	if token := c.Cookies(utils.AuthCookieName); token != "" {
		return token
	}
	header := c.Get(fiber.HeaderAuthorization)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

// LoadSession puts the verified session into c.Locals when a valid token is
// present. It never rejects the request.
func LoadSession(auth services.IAuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := tokenFromRequest(c)
		if token == "" {
			return c.Next()
		}
		session, err := auth.ParseSession(token)
		if err != nil {
			utils.ClearAuthCookie(c)
			return c.Next()
		}
		c.Locals(utils.LocalsSessionKey, session)
		c.Locals("IsAdmin", session.Role == string(models.RoleSuperAdmin))
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx) error {
	if c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Silakan masuk terlebih dahulu"})
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Silakan masuk terlebih dahulu.")
	return c.Redirect("/auth/login", fiber.StatusSeeOther)
}

// AuthMiddleware requires a valid session.
func AuthMiddleware(c *fiber.Ctx) error {
	if _, ok := utils.SessionFromLocals(c); !ok {
		return unauthorized(c)
	}
	return c.Next()
}

// StatusMiddleware loads the account behind the session and rejects
// deleted or deactivated accounts.
func StatusMiddleware(users services.IUserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := utils.SessionFromLocals(c)
		if !ok {
			return unauthorized(c)
		}
		user, err := users.GetUser(c.UserContext(), session.UserID)
		if err != nil {
			if !errors.Is(err, services.ErrUserNotFound) {
				configslog.Log.Error("StatusMiddleware: user lookup failed", zap.String("user_id", session.UserID), zap.Error(err))
			}
			utils.ClearAuthCookie(c)
			return unauthorized(c)
		}
		if !user.IsActive {
			utils.ClearAuthCookie(c)
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, services.ErrAccountInactive.Error())
			return c.Redirect("/auth/login", fiber.StatusSeeOther)
		}
		c.Locals(utils.LocalsUserKey, user)
		c.Locals("UserName", user.FullName)
		c.Locals("IsAdmin", user.IsAdmin())
		return c.Next()
	}
}

// GuestMiddleware keeps signed-in users away from the login pages.
func GuestMiddleware(c *fiber.Ctx) error {
	if _, ok := utils.SessionFromLocals(c); ok {
		return c.Redirect("/", fiber.StatusFound)
	}
	return c.Next()
}
