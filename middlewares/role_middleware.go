package middlewares

import (
	"undangan.link/models"
	"undangan.link/pkg/flashmessages"
	"undangan.link/utils"

	"github.com/gofiber/fiber/v2"
)

func currentRole(c *fiber.Ctx) models.Role {
	if user, ok := utils.UserFromLocals(c); ok {
		return user.Role
	}
	if session, ok := utils.SessionFromLocals(c); ok {
		return models.Role(session.Role)
	}
	return ""
}

// RequireAdmin lets only super admins through.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if currentRole(c) != models.RoleSuperAdmin {
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Halaman ini khusus admin.")
			return c.Redirect("/panel/home", fiber.StatusSeeOther)
		}
		return c.Next()
	}
}

// RequireUser lets only couple accounts through. Admins go to the dashboard.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch currentRole(c) {
		case models.RoleUser:
			return c.Next()
		case models.RoleSuperAdmin:
			return c.Redirect("/dashboard/home", fiber.StatusSeeOther)
		}
		return unauthorized(c)
	}
}
