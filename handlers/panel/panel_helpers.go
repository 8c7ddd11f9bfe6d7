package handlers

import (
	"undangan.link/models"
	"undangan.link/pkg/flashmessages"
	"undangan.link/utils"

	"github.com/gofiber/fiber/v2"
)

const panelLayout = "layouts/panel_layout"

// currentUser returns the signed-in account. Routes are guarded by the
// status middleware so a miss means the session vanished mid-request.
func currentUser(c *fiber.Ctx) (*models.UserProfile, error) {
	user, ok := utils.UserFromLocals(c)
	if !ok {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Sesi berakhir, silakan masuk kembali.")
		return nil, c.Redirect("/auth/login", fiber.StatusSeeOther)
	}
	return user, nil
}

func redirectWithError(c *fiber.Ctx, path, message string) error {
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, message)
	return c.Redirect(path, fiber.StatusSeeOther)
}

func redirectWithSuccess(c *fiber.Ctx, path, message string) error {
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, message)
	return c.Redirect(path, fiber.StatusSeeOther)
}
