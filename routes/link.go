package routes

import (
	link_handlers "undangan.link/handlers/link"

	"github.com/gofiber/fiber/v2"
)

// registerPublicInvitationRoutes mounts the public invitation page. No session is required.
func registerPublicInvitationRoutes(app *fiber.App, svc Services) {
	invitationHandler := link_handlers.NewInvitationHandler(svc.Invitations, svc.Guests)

	app.Get("/invitation/:id", invitationHandler.ShowInvitation)
	app.Post("/invitation/:id/rsvp", invitationHandler.SubmitRSVP)
}
