package handlers

import (
	"errors"
	"strings"

	"undangan.link/configs/configslog"
	"undangan.link/pkg/renderer"
	"undangan.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const invitationLayout = "layouts/invitation_layout"

// InvitationHandler serves the public invitation page and its RSVP form.
type InvitationHandler struct {
	invitations services.IInvitationService
	guests      services.IGuestService
}

func NewInvitationHandler(invitations services.IInvitationService, guests services.IGuestService) *InvitationHandler {
	return &InvitationHandler{invitations: invitations, guests: guests}
}

func notFoundPage(c *fiber.Ctx) error {
	return renderer.Render(c, "errors/404", "layouts/error_layout", fiber.Map{
		"Title": "Undangan Tidak Ditemukan",
	}, fiber.StatusNotFound)
}

func guestName(c *fiber.Ctx) string {
	if name := strings.TrimSpace(c.Query("to")); name != "" {
		return name
	}
	return services.DefaultGuestName
}

// ShowInvitation renders /invitation/:id. The id "preview" renders sample
// data with the theme from ?theme=.
func (h *InvitationHandler) ShowInvitation(c *fiber.Ctx) error {
	id := c.Params("id")
	name := guestName(c)

	var (
		view *services.InvitationView
		err  error
	)
	if id == services.PreviewInvitationID {
		view, err = h.invitations.PreviewView(c.UserContext(), c.Query("theme"))
	} else {
		view, err = h.invitations.LoadPublicView(c.UserContext(), id)
	}
	if err != nil {
		if errors.Is(err, services.ErrInvitationNotFound) {
			return notFoundPage(c)
		}
		configslog.Log.Error("Invitation page failed", zap.String("id", id), zap.Error(err))
		return renderer.Render(c, "errors/500", "layouts/error_layout", fiber.Map{
			"Title": "Terjadi Kesalahan",
		}, fiber.StatusInternalServerError)
	}

	if !view.Preview && name != services.DefaultGuestName {
		if _, err := h.guests.TrackOpened(c.UserContext(), view.Invitation.ID, name); err != nil {
			configslog.Log.Warn("Open tracking failed", zap.String("invitation_id", view.Invitation.ID), zap.Error(err))
		}
	}

	inv := view.Invitation
	return renderer.Render(c, view.Template, invitationLayout, fiber.Map{
		"Title":      inv.GroomName + " & " + inv.BrideName,
		"Invitation": inv,
		"Theme":      view.Theme,
		"Preview":    view.Preview,
		"GuestName":  name,
		"RSVPAction": "/invitation/" + id + "/rsvp",
	})
}

// SubmitRSVP accepts the RSVP form as JSON or form data and answers in JSON.
func (h *InvitationHandler) SubmitRSVP(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == services.PreviewInvitationID {
		return c.JSON(fiber.Map{"success": true, "message": "Ini hanya pratinjau, konfirmasi tidak disimpan."})
	}

	var input services.RSVPInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Data tidak valid."})
	}
	input.Name = strings.TrimSpace(input.Name)

	if _, err := h.invitations.GetInvitationByID(c.UserContext(), id); err != nil {
		if errors.Is(err, services.ErrInvitationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Terjadi kesalahan, silakan coba lagi."})
	}

	result, err := h.guests.SubmitRSVP(c.UserContext(), id, input)
	if err != nil {
		if errors.Is(err, services.ErrRSVPInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Terjadi kesalahan, silakan coba lagi."})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"status":  result.Status,
		"matched": result.Guest != nil,
		"message": "Terima kasih atas konfirmasi kehadiran Anda!",
	})
}
