package routes

import (
	"undangan.link/configs"
	"undangan.link/middlewares"
	"undangan.link/models"
	"undangan.link/pkg/renderer"
	"undangan.link/services"
	"undangan.link/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
)

// Services holds everything the route handlers need.
type Services struct {
	Auth        services.IAuthService
	Users       services.IUserService
	Themes      services.IThemeService
	Invitations services.IInvitationService
	Guests      services.IGuestService
	Uploads     services.IUploadService
	Dispatch    services.IDispatchService
	Stats       services.IStatsService
}

// SetupRoutes registers the global middleware and every route group.
func SetupRoutes(app *fiber.App, cfg *configs.AppConfig, svc Services) {
	app.Use(recoverMiddleware.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
	}))
	app.Use(initializeSessionAndLocals())
	app.Use(middlewares.LoadSession(svc.Auth))

	registerAuthRoutes(app, cfg, svc)
	registerDashboardRoutes(app, cfg, svc)
	registerPanelRoutes(app, cfg, svc)
	registerPublicInvitationRoutes(app, svc)

	app.Get("/", rootRedirector)
	app.Use(notFoundHandler)
}

func initializeSessionAndLocals() fiber.Handler {
	sessionStore := configs.SetupSession()
	return func(c *fiber.Ctx) error {
		c.Locals(utils.SessionStoreKey, sessionStore)
		return c.Next()
	}
}

func rootRedirector(c *fiber.Ctx) error {
	session, ok := utils.SessionFromLocals(c)
	if !ok {
		return c.Redirect("/auth/login", fiber.StatusFound)
	}
	if session.Role == string(models.RoleSuperAdmin) {
		return c.Redirect("/dashboard/home", fiber.StatusFound)
	}
	return c.Redirect("/panel/home", fiber.StatusFound)
}

func notFoundHandler(c *fiber.Ctx) error {
	if c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Halaman tidak ditemukan"})
	}
	return renderer.Render(c, "errors/404", "layouts/error_layout", fiber.Map{"Title": "Halaman Tidak Ditemukan"}, fiber.StatusNotFound)
}
