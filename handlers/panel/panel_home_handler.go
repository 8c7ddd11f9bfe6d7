package handlers

import (
	"net/http"

	"undangan.link/configs/configslog"
	"undangan.link/pkg/flashmessages"
	"undangan.link/pkg/renderer"
	"undangan.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const recentGuestLimit = 5

type PanelHomeHandler struct {
	invitations services.IInvitationService
	guests      services.IGuestService
	stats       services.IStatsService
	baseURL     string
}

func NewPanelHomeHandler(invitations services.IInvitationService, guests services.IGuestService, stats services.IStatsService, baseURL string) *PanelHomeHandler {
	return &PanelHomeHandler{invitations: invitations, guests: guests, stats: stats, baseURL: baseURL}
}

func (h *PanelHomeHandler) HomePage(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if user == nil {
		return err
	}
	flashData, _ := flashmessages.GetFlashMessages(c)
	data := fiber.Map{"Title": "Dashboard"}
	renderer.SetFlashMessages(data, flashData)

	inv, err := h.invitations.GetInvitationForUser(c.UserContext(), user.ID)
	if err != nil {
		data[renderer.FlashErrorKeyView] = "Gagal memuat undangan Anda."
		data["Stats"] = &services.GuestStats{}
		return renderer.Render(c, "panel/home", panelLayout, data, http.StatusOK)
	}
	data["Invitation"] = inv
	data["InvitationLink"] = services.InvitationLink(h.baseURL, inv.ID, "")

	stats, err := h.stats.GuestStats(c.UserContext(), inv.ID)
	if err != nil {
		configslog.Log.Error("Panel - HomePage stats failed", zap.String("invitation_id", inv.ID), zap.Error(err))
		stats = &services.GuestStats{}
	}
	data["Stats"] = stats

	guests, err := h.guests.ListGuests(c.UserContext(), inv.ID)
	if err == nil && len(guests) > recentGuestLimit {
		guests = guests[:recentGuestLimit]
	}
	data["RecentGuests"] = guests
	return renderer.Render(c, "panel/home", panelLayout, data, http.StatusOK)
}
