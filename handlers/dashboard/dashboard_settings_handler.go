package handlers

import (
	"net/http"

	"undangan.link/pkg/flashmessages"
	"undangan.link/pkg/renderer"
	"undangan.link/utils"

	"github.com/gofiber/fiber/v2"
)

// SettingsHandler shows the admin account and which integrations are live.
type SettingsHandler struct {
	storageEnabled   bool
	messagingEnabled bool
	baseURL          string
}

func NewSettingsHandler(storageEnabled, messagingEnabled bool, baseURL string) *SettingsHandler {
	return &SettingsHandler{storageEnabled: storageEnabled, messagingEnabled: messagingEnabled, baseURL: baseURL}
}

func (h *SettingsHandler) SettingsPage(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	data := fiber.Map{
		"Title":            "Pengaturan Admin",
		"StorageEnabled":   h.storageEnabled,
		"MessagingEnabled": h.messagingEnabled,
		"BaseURL":          h.baseURL,
	}
	if user, ok := utils.UserFromLocals(c); ok {
		data["Account"] = user
	}
	renderer.SetFlashMessages(data, flashData)
	return renderer.Render(c, "dashboard/settings", dashboardLayout, data, http.StatusOK)
}
