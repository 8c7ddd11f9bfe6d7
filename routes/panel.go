package routes

import (
	"undangan.link/configs"
	panel_handlers "undangan.link/handlers/panel"
	"undangan.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerPanelRoutes mounts the couple's panel. Admins are sent to /dashboard.
func registerPanelRoutes(app *fiber.App, cfg *configs.AppConfig, svc Services) {
	homeHandler := panel_handlers.NewPanelHomeHandler(svc.Invitations, svc.Guests, svc.Stats, cfg.BaseURL)
	themeHandler := panel_handlers.NewPanelThemeHandler(svc.Themes, svc.Invitations)
	guestHandler := panel_handlers.NewPanelGuestHandler(svc.Invitations, svc.Guests, svc.Dispatch, svc.Stats, cfg.BaseURL)
	settingsHandler := panel_handlers.NewPanelSettingsHandler(svc.Invitations, svc.Uploads, cfg.BaseURL)

	panelGroup := app.Group("/panel")
	panelGroup.Use(
		middlewares.AuthMiddleware,
		middlewares.StatusMiddleware(svc.Users),
		middlewares.RequireUser(),
	)

	panelGroup.Get("/home", homeHandler.HomePage)

	panelGroup.Get("/themes", themeHandler.ListThemes)
	panelGroup.Post("/themes/select/:id", themeHandler.SelectTheme)

	panelGroup.Get("/guests", guestHandler.ListGuests)
	panelGroup.Post("/guests/create", guestHandler.CreateGuest)
	panelGroup.Post("/guests/delete/:id", guestHandler.DeleteGuest)
	panelGroup.Post("/guests/status/:id", guestHandler.UpdateStatus)
	panelGroup.Post("/guests/send/:id", guestHandler.SendGuest)
	panelGroup.Post("/guests/share/:id", guestHandler.ShareGuest)

	panelGroup.Get("/settings", settingsHandler.ShowSettings)
	panelGroup.Post("/settings", settingsHandler.UpdateSettings)
	panelGroup.Post("/settings/media/remove", settingsHandler.RemoveMedia)
}
