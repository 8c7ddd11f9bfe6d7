package handlers

import (
	"errors"
	"net/http"

	"undangan.link/configs/configslog"
	"undangan.link/models"
	"undangan.link/pkg/flashmessages"
	"undangan.link/pkg/queryparams"
	"undangan.link/pkg/renderer"
	"undangan.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const usersPath = "/dashboard/users"

type UserHandler struct {
	users  services.IUserService
	themes services.IThemeService
}

func NewUserHandler(users services.IUserService, themes services.IThemeService) *UserHandler {
	return &UserHandler{users: users, themes: themes}
}

func (h *UserHandler) themeOptions(c *fiber.Ctx) []models.Theme {
	themes, err := h.themes.ListThemes(c.UserContext(), services.CategoryAll)
	if err != nil {
		configslog.Log.Warn("Dashboard - theme options unavailable", zap.Error(err))
		return []models.Theme{}
	}
	return themes
}

func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	params := queryparams.DefaultListParams("created_at")
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	data := fiber.Map{
		"Title":  "Kelola Pengguna",
		"Params": params,
		"Themes": h.themeOptions(c),
		"Self":   actorID(c),
	}
	renderer.SetFlashMessages(data, flashData)

	result, err := h.users.ListUsers(c.UserContext(), params)
	if err != nil {
		configslog.Log.Error("Dashboard - ListUsers failed", zap.Error(err))
		data[renderer.FlashErrorKeyView] = "Gagal memuat daftar pengguna."
		result = &queryparams.PaginatedResult{Data: []models.UserProfile{}}
	}
	data["Result"] = result
	return renderer.Render(c, "dashboard/users/list", dashboardLayout, data, http.StatusOK)
}

func (h *UserHandler) ShowCreateUser(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	data := fiber.Map{
		"Title":    "Buat Akun Pengguna",
		"Themes":   h.themeOptions(c),
		"FormData": flashmessages.GetFlashFormData(c),
	}
	renderer.SetFlashMessages(data, flashData)
	return renderer.Render(c, "dashboard/users/create", dashboardLayout, data, http.StatusOK)
}

// CreateUser provisions an account, optionally pinned to a theme.
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var input services.ProvisionInput
	if err := c.BodyParser(&input); err != nil {
		return redirectWithError(c, usersPath+"/create", "Data formulir tidak valid.")
	}
	keep := fiber.Map{"email": input.Email, "fullName": input.FullName, "themeId": input.ThemeID}

	user, err := h.users.ProvisionUser(c.UserContext(), input)
	if err != nil {
		_ = flashmessages.SetFlashFormData(c, keep)
		if errors.Is(err, services.ErrUserCreationFailed) {
			return redirectWithError(c, usersPath+"/create", "Gagal membuat akun, silakan coba lagi.")
		}
		return redirectWithError(c, usersPath+"/create", err.Error())
	}
	return redirectWithSuccess(c, usersPath, "Akun "+user.Email+" berhasil dibuat!")
}

func (h *UserHandler) ToggleUser(c *fiber.Ctx) error {
	active, err := h.users.ToggleActive(c.UserContext(), actorID(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrUserUpdateFailed) {
			return redirectWithError(c, usersPath, "Gagal mengubah status pengguna.")
		}
		return redirectWithError(c, usersPath, err.Error())
	}
	if active {
		return redirectWithSuccess(c, usersPath, "Pengguna diaktifkan.")
	}
	return redirectWithSuccess(c, usersPath, "Pengguna dinonaktifkan.")
}

// AssignTheme pins a user to the submitted theme. An empty value unpins.
func (h *UserHandler) AssignTheme(c *fiber.Ctx) error {
	themeID := c.FormValue("themeId")
	if err := h.users.AssignTheme(c.UserContext(), c.Params("id"), themeID); err != nil {
		if errors.Is(err, services.ErrUserUpdateFailed) {
			return redirectWithError(c, usersPath, "Gagal mengatur tema pengguna.")
		}
		return redirectWithError(c, usersPath, err.Error())
	}
	if themeID == "" {
		return redirectWithSuccess(c, usersPath, "Batasan tema dihapus.")
	}
	return redirectWithSuccess(c, usersPath, "Tema pengguna berhasil dikunci.")
}

func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.users.DeleteUser(c.UserContext(), actorID(c), c.Params("id")); err != nil {
		if errors.Is(err, services.ErrUserDeletionFailed) {
			return redirectWithError(c, usersPath, "Gagal menghapus pengguna.")
		}
		return redirectWithError(c, usersPath, err.Error())
	}
	return redirectWithSuccess(c, usersPath, "Pengguna berhasil dihapus.")
}
