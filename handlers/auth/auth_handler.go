package handlers

import (
	"errors"
	"net/http"

	"undangan.link/configs/configslog"
	"undangan.link/models"
	"undangan.link/pkg/flashmessages"
	"undangan.link/pkg/renderer"
	"undangan.link/services"
	"undangan.link/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const authLayout = "layouts/auth_layout"

type AuthHandler struct {
	service      services.IAuthService
	cookieSecure bool
}

func NewAuthHandler(service services.IAuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{service: service, cookieSecure: cookieSecure}
}

func homeFor(role models.Role) string {
	if role == models.RoleSuperAdmin {
		return "/dashboard/home"
	}
	return "/panel/home"
}

func (h *AuthHandler) ShowLogin(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	data := fiber.Map{
		"Title":    "Masuk",
		"FormData": flashmessages.GetFlashFormData(c),
	}
	renderer.SetFlashMessages(data, flashData)
	return renderer.Render(c, "auth/login", authLayout, data, http.StatusOK)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	result, err := h.service.SignIn(c.UserContext(), email, password)
	if err != nil {
		msg := "Terjadi kesalahan, silakan coba lagi."
		var authErr services.AuthServiceError
		if errors.As(err, &authErr) && !errors.Is(err, services.ErrSignInFailed) {
			msg = authErr.Error()
		} else {
			configslog.Log.Error("Login failed", zap.String("email", email), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, msg)
		_ = flashmessages.SetFlashFormData(c, fiber.Map{"email": email})
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}

	utils.SetAuthCookie(c, result.Token, result.Session.ExpiresAt, h.cookieSecure)
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Selamat datang, "+result.User.FullName+"!")
	return c.Redirect(homeFor(result.User.Role), fiber.StatusSeeOther)
}

func (h *AuthHandler) ShowRegister(c *fiber.Ctx) error {
	flashData, _ := flashmessages.GetFlashMessages(c)
	data := fiber.Map{
		"Title":    "Daftar",
		"FormData": flashmessages.GetFlashFormData(c),
	}
	renderer.SetFlashMessages(data, flashData)
	return renderer.Render(c, "auth/register", authLayout, data, http.StatusOK)
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input services.SignUpInput
	if err := c.BodyParser(&input); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Data formulir tidak valid.")
		return c.Redirect("/auth/register", fiber.StatusSeeOther)
	}
	keep := fiber.Map{"fullName": input.FullName, "email": input.Email}

	if _, err := h.service.SignUp(c.UserContext(), input); err != nil {
		msg := err.Error()
		if errors.Is(err, services.ErrSignUpFailed) {
			msg = "Pendaftaran gagal, silakan coba lagi."
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, msg)
		_ = flashmessages.SetFlashFormData(c, keep)
		return c.Redirect("/auth/register", fiber.StatusSeeOther)
	}

	result, err := h.service.SignIn(c.UserContext(), input.Email, input.Password)
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Pendaftaran berhasil, silakan masuk.")
		return c.Redirect("/auth/login", fiber.StatusSeeOther)
	}
	utils.SetAuthCookie(c, result.Token, result.Session.ExpiresAt, h.cookieSecure)
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Pendaftaran berhasil!")
	return c.Redirect(homeFor(result.User.Role), fiber.StatusSeeOther)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	utils.ClearAuthCookie(c)
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Anda telah keluar.")
	return c.Redirect("/auth/login", fiber.StatusSeeOther)
}
