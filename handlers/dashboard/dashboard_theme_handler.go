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

const themesPath = "/dashboard/themes"

type ThemeHandler struct {
	themes  services.IThemeService
	uploads services.IUploadService
}

func NewThemeHandler(themes services.IThemeService, uploads services.IUploadService) *ThemeHandler {
	return &ThemeHandler{themes: themes, uploads: uploads}
}

func (h *ThemeHandler) ListThemes(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	category := c.Query("category", services.CategoryAll)
	data := fiber.Map{
		"Title":      "Kelola Tema",
		"Categories": models.ThemeCategories,
		"Category":   category,
	}
	renderer.SetFlashMessages(data, flashData)

	themes, err := h.themes.ListThemes(c.UserContext(), category)
	if err != nil {
		configslog.Log.Error("Dashboard - ListThemes failed", zap.Error(err))
		data[renderer.FlashErrorKeyView] = "Gagal memuat daftar tema."
		themes = []models.Theme{}
	}
	data["Themes"] = themes
	return renderer.Render(c, "dashboard/themes/list", dashboardLayout, data, http.StatusOK)
}

func (h *ThemeHandler) ShowCreateTheme(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	data := fiber.Map{
		"Title":          "Tambah Tema",
		"Categories":     models.ThemeCategories,
		"FormData":       flashmessages.GetFlashFormData(c),
		"UploadsEnabled": h.uploads.Enabled(),
	}
	renderer.SetFlashMessages(data, flashData)
	return renderer.Render(c, "dashboard/themes/create", dashboardLayout, data, http.StatusOK)
}

func parseThemeInput(c *fiber.Ctx) (services.ThemeInput, error) {
	var input services.ThemeInput
	if err := c.BodyParser(&input); err != nil {
		return input, err
	}
	input.IsActive = formBool(c, "is_active")
	return input, nil
}

// uploadThumbnail stores the optional "thumbnail" file. An empty string means
// no file was sent.
func (h *ThemeHandler) uploadThumbnail(c *fiber.Ctx, ownerID string) (string, error) {
	fh, err := c.FormFile("thumbnail")
	if err != nil || fh == nil || fh.Size == 0 {
		return "", nil
	}
	file := services.UploadFile{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
	}
	if err := services.ValidateUpload(services.MediaThemeThumbnail, file); err != nil {
		return "", err
	}
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	file.Body = f
	return h.uploads.Upload(c.UserContext(), ownerID, services.MediaThemeThumbnail, file)
}

func (h *ThemeHandler) CreateTheme(c *fiber.Ctx) error {
	input, err := parseThemeInput(c)
	if err != nil {
		return redirectWithError(c, themesPath+"/create", "Data formulir tidak valid.")
	}
	thumb, err := h.uploadThumbnail(c, "themes")
	if err != nil {
		_ = flashmessages.SetFlashFormData(c, input)
		return redirectWithError(c, themesPath+"/create", err.Error())
	}
	if thumb != "" {
		input.ThumbnailURL = thumb
	}

	if _, err := h.themes.CreateTheme(c.UserContext(), input); err != nil {
		_ = flashmessages.SetFlashFormData(c, input)
		if errors.Is(err, services.ErrThemeInvalidInput) {
			return redirectWithError(c, themesPath+"/create", err.Error())
		}
		return redirectWithError(c, themesPath+"/create", "Gagal membuat tema.")
	}
	return redirectWithSuccess(c, themesPath, "Tema berhasil dibuat!")
}

func (h *ThemeHandler) ShowUpdateTheme(c *fiber.Ctx) error {
	theme, err := h.themes.GetTheme(c.UserContext(), c.Params("id"))
	if err != nil {
		if !errors.Is(err, services.ErrThemeNotFound) {
			configslog.Log.Error("Dashboard - ShowUpdateTheme failed", zap.String("id", c.Params("id")), zap.Error(err))
		}
		return redirectWithError(c, themesPath, "Tema tidak ditemukan.")
	}
	flashData, _ := flashmessages.GetFlashMessages(c)
	data := fiber.Map{
		"Title":          "Edit Tema",
		"Theme":          theme,
		"Categories":     models.ThemeCategories,
		"FormData":       flashmessages.GetFlashFormData(c),
		"UploadsEnabled": h.uploads.Enabled(),
	}
	renderer.SetFlashMessages(data, flashData)
	return renderer.Render(c, "dashboard/themes/update", dashboardLayout, data, http.StatusOK)
}

func (h *ThemeHandler) UpdateTheme(c *fiber.Ctx) error {
	id := c.Params("id")
	back := themesPath + "/update/" + id
	input, err := parseThemeInput(c)
	if err != nil {
		return redirectWithError(c, back, "Data formulir tidak valid.")
	}
	thumb, err := h.uploadThumbnail(c, "themes")
	if err != nil {
		return redirectWithError(c, back, err.Error())
	}
	if thumb != "" {
		input.ThumbnailURL = thumb
	}

	if _, err := h.themes.UpdateTheme(c.UserContext(), id, input); err != nil {
		switch {
		case errors.Is(err, services.ErrThemeNotFound):
			return redirectWithError(c, themesPath, err.Error())
		case errors.Is(err, services.ErrThemeInvalidInput):
			return redirectWithError(c, back, err.Error())
		}
		return redirectWithError(c, back, "Gagal memperbarui tema.")
	}
	return redirectWithSuccess(c, themesPath, "Tema berhasil diperbarui!")
}

func (h *ThemeHandler) DeleteTheme(c *fiber.Ctx) error {
	id := c.Params("id")
	theme, _ := h.themes.GetTheme(c.UserContext(), id)
	if err := h.themes.DeleteTheme(c.UserContext(), id); err != nil {
		if errors.Is(err, services.ErrThemeNotFound) {
			return redirectWithError(c, themesPath, err.Error())
		}
		return redirectWithError(c, themesPath, "Gagal menghapus tema.")
	}
	if theme != nil && theme.ThumbnailURL != "" && h.uploads.Enabled() {
		if err := h.uploads.Delete(c.UserContext(), services.MediaThemeThumbnail, theme.ThumbnailURL); err != nil {
			configslog.Log.Warn("Dashboard - thumbnail not deleted", zap.String("theme_id", id), zap.Error(err))
		}
	}
	return redirectWithSuccess(c, themesPath, "Tema berhasil dihapus.")
}

func (h *ThemeHandler) ToggleTheme(c *fiber.Ctx) error {
	active, err := h.themes.ToggleTheme(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrThemeNotFound) {
			return redirectWithError(c, themesPath, err.Error())
		}
		return redirectWithError(c, themesPath, "Gagal mengubah status tema.")
	}
	if active {
		return redirectWithSuccess(c, themesPath, "Tema diaktifkan.")
	}
	return redirectWithSuccess(c, themesPath, "Tema dinonaktifkan.")
}

// UploadThumbnail replaces a theme's thumbnail.
func (h *ThemeHandler) UploadThumbnail(c *fiber.Ctx) error {
	id := c.Params("id")
	back := themesPath + "/update/" + id
	theme, err := h.themes.GetTheme(c.UserContext(), id)
	if err != nil {
		return redirectWithError(c, themesPath, "Tema tidak ditemukan.")
	}
	thumb, err := h.uploadThumbnail(c, "themes")
	if err != nil {
		return redirectWithError(c, back, err.Error())
	}
	if thumb == "" {
		return redirectWithError(c, back, "Pilih file gambar terlebih dahulu.")
	}
	if err := h.themes.SetThumbnail(c.UserContext(), id, thumb); err != nil {
		return redirectWithError(c, back, "Gagal menyimpan thumbnail.")
	}
	if theme.ThumbnailURL != "" {
		_ = h.uploads.Delete(c.UserContext(), services.MediaThemeThumbnail, theme.ThumbnailURL)
	}
	return redirectWithSuccess(c, back, "Thumbnail diperbarui.")
}
