package routes

import (
	"undangan.link/configs"
	auth_handlers "undangan.link/handlers/auth"
	"undangan.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerAuthRoutes mounts login, registration and logout. Guards are set
// per route since both sets share the /auth prefix.
func registerAuthRoutes(app *fiber.App, cfg *configs.AppConfig, svc Services) {
	authHandler := auth_handlers.NewAuthHandler(svc.Auth, cfg.CookieSecure)
	authGroup := app.Group("/auth")

	guest := middlewares.GuestMiddleware
	authGroup.Get("/login", guest, authHandler.ShowLogin)
	authGroup.Post("/login", guest, authHandler.Login)
	authGroup.Get("/register", guest, authHandler.ShowRegister)
	authGroup.Post("/register", guest, authHandler.Register)

	signedIn := middlewares.AuthMiddleware
	authGroup.Get("/logout", signedIn, authHandler.Logout)
	authGroup.Post("/logout", signedIn, authHandler.Logout)
}
