package handlers

import (
	"errors"
	"net/http"

	"undangan.link/configs/configslog"
	"undangan.link/models"
	"undangan.link/pkg/flashmessages"
	"undangan.link/pkg/renderer"
	"undangan.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type PanelThemeHandler struct {
	themes      services.IThemeService
	invitations services.IInvitationService
}

func NewPanelThemeHandler(themes services.IThemeService, invitations services.IInvitationService) *PanelThemeHandler {
	return &PanelThemeHandler{themes: themes, invitations: invitations}
}

// ListThemes shows the theme gallery. ?category= filters unless the user is
// pinned to a theme.
func (h *PanelThemeHandler) ListThemes(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if user == nil {
		return err
	}
	category := c.Query("category", services.CategoryAll)
	flashData, _ := flashmessages.GetFlashMessages(c)
	data := fiber.Map{
		"Title":           "Pilih Tema",
		"Categories":      models.ThemeCategories,
		"Category":        category,
		"Locked":          user.HasAssignedTheme(),
		"SelectedThemeID": "",
	}
	renderer.SetFlashMessages(data, flashData)

	themes, err := h.themes.ListThemesForUser(c.UserContext(), user.ID, category)
	if err != nil {
		configslog.Log.Error("Panel - ListThemes failed", zap.String("user_id", user.ID), zap.Error(err))
		data[renderer.FlashErrorKeyView] = "Gagal memuat daftar tema."
		themes = []models.Theme{}
	}
	data["Themes"] = themes

	if inv, err := h.invitations.GetInvitationForUser(c.UserContext(), user.ID); err == nil {
		data["SelectedThemeID"] = inv.ThemeID
	}
	return renderer.Render(c, "panel/themes", panelLayout, data, http.StatusOK)
}

func (h *PanelThemeHandler) SelectTheme(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if user == nil {
		return err
	}
	themeID := c.Params("id")

	if err := h.themes.SelectTheme(c.UserContext(), user.ID, themeID); err != nil {
		switch {
		case errors.Is(err, services.ErrThemeLocked), errors.Is(err, services.ErrThemeNotFound):
			return redirectWithError(c, "/panel/themes", err.Error())
		default:
			configslog.Log.Error("Panel - SelectTheme failed", zap.String("user_id", user.ID), zap.String("theme_id", themeID), zap.Error(err))
			return redirectWithError(c, "/panel/themes", "Gagal memilih tema, silakan coba lagi.")
		}
	}
	return redirectWithSuccess(c, "/panel/themes", "Tema berhasil dipilih!")
}
