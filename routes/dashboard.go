package routes

import (
	"undangan.link/configs"
	dashboard_handlers "undangan.link/handlers/dashboard"
	"undangan.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerDashboardRoutes mounts the super admin area.
func registerDashboardRoutes(app *fiber.App, cfg *configs.AppConfig, svc Services) {
	homeHandler := dashboard_handlers.NewHomeHandler(svc.Stats)
	themeHandler := dashboard_handlers.NewThemeHandler(svc.Themes, svc.Uploads)
	userHandler := dashboard_handlers.NewUserHandler(svc.Users, svc.Themes)
	settingsHandler := dashboard_handlers.NewSettingsHandler(svc.Uploads.Enabled(), svc.Dispatch.Enabled(), cfg.BaseURL)

	dashboardGroup := app.Group("/dashboard")
	dashboardGroup.Use(
		middlewares.AuthMiddleware,
		middlewares.StatusMiddleware(svc.Users),
		middlewares.RequireAdmin(),
	)

	dashboardGroup.Get("/home", homeHandler.HomePage)

	dashboardGroup.Get("/themes", themeHandler.ListThemes)
	dashboardGroup.Get("/themes/create", themeHandler.ShowCreateTheme)
	dashboardGroup.Post("/themes/create", themeHandler.CreateTheme)
	dashboardGroup.Get("/themes/update/:id", themeHandler.ShowUpdateTheme)
	dashboardGroup.Post("/themes/update/:id", themeHandler.UpdateTheme)
	dashboardGroup.Post("/themes/delete/:id", themeHandler.DeleteTheme)
	dashboardGroup.Post("/themes/toggle/:id", themeHandler.ToggleTheme)
	dashboardGroup.Post("/themes/thumbnail/:id", themeHandler.UploadThumbnail)

	dashboardGroup.Get("/users", userHandler.ListUsers)
	dashboardGroup.Get("/users/create", userHandler.ShowCreateUser)
	dashboardGroup.Post("/users/create", userHandler.CreateUser)
	dashboardGroup.Post("/users/toggle/:id", userHandler.ToggleUser)
	dashboardGroup.Post("/users/theme/:id", userHandler.AssignTheme)
	dashboardGroup.Post("/users/delete/:id", userHandler.DeleteUser)

	dashboardGroup.Get("/settings", settingsHandler.SettingsPage)
}
