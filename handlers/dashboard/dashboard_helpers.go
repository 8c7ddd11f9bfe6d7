package handlers

import (
	"undangan.link/pkg/flashmessages"
	"undangan.link/utils"

	"github.com/gofiber/fiber/v2"
)

const dashboardLayout = "layouts/dashboard_layout"

func actorID(c *fiber.Ctx) string {
	if session, ok := utils.SessionFromLocals(c); ok {
		return session.UserID
	}
	return ""
}

func redirectWithError(c *fiber.Ctx, path, message string) error {
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, message)
	return c.Redirect(path, fiber.StatusSeeOther)
}

func redirectWithSuccess(c *fiber.Ctx, path, message string) error {
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, message)
	return c.Redirect(path, fiber.StatusSeeOther)
}

// formBool reads a checkbox value.
func formBool(c *fiber.Ctx, key string) bool {
	switch c.FormValue(key) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
