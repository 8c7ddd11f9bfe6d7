package handlers

import (
	"errors"
	"net/http"
	"strings"

	"undangan.link/configs/configslog"
	"undangan.link/models"
	"undangan.link/pkg/flashmessages"
	"undangan.link/pkg/renderer"
	"undangan.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const guestsPath = "/panel/guests"

// GuestRow is a guest with its ready-made links.
type GuestRow struct {
	models.Guest
	Link     string
	ShareURL string
}

type PanelGuestHandler struct {
	invitations services.IInvitationService
	guests      services.IGuestService
	dispatch    services.IDispatchService
	stats       services.IStatsService
	baseURL     string
}

func NewPanelGuestHandler(invitations services.IInvitationService, guests services.IGuestService, dispatch services.IDispatchService, stats services.IStatsService, baseURL string) *PanelGuestHandler {
	return &PanelGuestHandler{invitations: invitations, guests: guests, dispatch: dispatch, stats: stats, baseURL: baseURL}
}

func (h *PanelGuestHandler) invitationOf(c *fiber.Ctx) (*models.Invitation, error) {
	user, err := currentUser(c)
	if user == nil {
		return nil, err
	}
	inv, err := h.invitations.GetInvitationForUser(c.UserContext(), user.ID)
	if err != nil {
		return nil, redirectWithError(c, "/panel/home", "Gagal memuat undangan Anda.")
	}
	return inv, nil
}

func (h *PanelGuestHandler) ListGuests(c *fiber.Ctx) error {
	inv, err := h.invitationOf(c)
	if inv == nil {
		return err
	}
	query := strings.ToLower(strings.TrimSpace(c.Query("q")))
	flashData, _ := flashmessages.GetFlashMessages(c)
	data := fiber.Map{
		"Title":           "Daftar Tamu",
		"Query":           c.Query("q"),
		"Statuses":        []models.GuestStatus{models.GuestStatusPending, models.GuestStatusSent, models.GuestStatusOpened, models.GuestStatusConfirmed, models.GuestStatusDeclined},
		"MessagingActive": h.dispatch.Enabled(),
		"FormData":        flashmessages.GetFlashFormData(c),
	}
	renderer.SetFlashMessages(data, flashData)

	guests, err := h.guests.ListGuests(c.UserContext(), inv.ID)
	if err != nil {
		configslog.Log.Error("Panel - ListGuests failed", zap.String("invitation_id", inv.ID), zap.Error(err))
		data[renderer.FlashErrorKeyView] = "Gagal memuat daftar tamu."
	}

	rows := make([]GuestRow, 0, len(guests))
	for _, g := range guests {
		if query != "" && !strings.Contains(strings.ToLower(g.Name), query) && !strings.Contains(g.Phone, query) {
			continue
		}
		link := services.InvitationLink(h.baseURL, inv.ID, g.Name)
		row := GuestRow{Guest: g, Link: link}
		if services.NormalizePhone(g.Phone) != "" {
			row.ShareURL = services.WhatsAppShareURL(g.Phone, services.InvitationMessage(g.Name, link))
		}
		rows = append(rows, row)
	}
	data["Guests"] = rows

	if stats, err := h.stats.GuestStats(c.UserContext(), inv.ID); err == nil {
		data["Stats"] = stats
	}
	return renderer.Render(c, "panel/guests", panelLayout, data, http.StatusOK)
}

func (h *PanelGuestHandler) CreateGuest(c *fiber.Ctx) error {
	inv, err := h.invitationOf(c)
	if inv == nil {
		return err
	}
	var input services.GuestInput
	if err := c.BodyParser(&input); err != nil {
		return redirectWithError(c, guestsPath, "Data formulir tidak valid.")
	}

	if _, err := h.guests.AddGuest(c.UserContext(), inv.ID, input); err != nil {
		_ = flashmessages.SetFlashFormData(c, input)
		if errors.Is(err, services.ErrGuestInvalidInput) {
			return redirectWithError(c, guestsPath, err.Error())
		}
		return redirectWithError(c, guestsPath, "Gagal menambahkan tamu, silakan coba lagi.")
	}
	return redirectWithSuccess(c, guestsPath, "Tamu berhasil ditambahkan!")
}

func (h *PanelGuestHandler) DeleteGuest(c *fiber.Ctx) error {
	inv, err := h.invitationOf(c)
	if inv == nil {
		return err
	}
	if err := h.guests.DeleteGuest(c.UserContext(), inv.ID, c.Params("id")); err != nil {
		if errors.Is(err, services.ErrGuestNotFound) {
			return redirectWithError(c, guestsPath, err.Error())
		}
		return redirectWithError(c, guestsPath, "Gagal menghapus tamu.")
	}
	return redirectWithSuccess(c, guestsPath, "Tamu berhasil dihapus.")
}

func (h *PanelGuestHandler) UpdateStatus(c *fiber.Ctx) error {
	inv, err := h.invitationOf(c)
	if inv == nil {
		return err
	}
	status := models.GuestStatus(c.FormValue("status"))
	if err := h.guests.UpdateGuestStatus(c.UserContext(), inv.ID, c.Params("id"), status); err != nil {
		if errors.Is(err, services.ErrGuestNotFound) || errors.Is(err, services.ErrGuestInvalidStatus) {
			return redirectWithError(c, guestsPath, err.Error())
		}
		return redirectWithError(c, guestsPath, "Gagal memperbarui status tamu.")
	}
	return redirectWithSuccess(c, guestsPath, "Status tamu diperbarui.")
}

// SendGuest delivers the invitation through the configured messaging channel.
func (h *PanelGuestHandler) SendGuest(c *fiber.Ctx) error {
	inv, err := h.invitationOf(c)
	if inv == nil {
		return err
	}
	guest, err := h.dispatch.SendInvitation(c.UserContext(), inv.ID, c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrDispatchFailed) {
			return redirectWithError(c, guestsPath, "Gagal mengirim undangan, silakan coba lagi.")
		}
		return redirectWithError(c, guestsPath, err.Error())
	}
	return redirectWithSuccess(c, guestsPath, "Undangan terkirim ke "+guest.Name+".")
}

// ShareGuest marks the guest as sent and redirects to WhatsApp with the
// prepared message.
func (h *PanelGuestHandler) ShareGuest(c *fiber.Ctx) error {
	inv, err := h.invitationOf(c)
	if inv == nil {
		return err
	}
	shareURL, err := h.dispatch.ShareURL(c.UserContext(), inv.ID, c.Params("id"))
	if err != nil {
		return redirectWithError(c, guestsPath, err.Error())
	}
	return c.Redirect(shareURL, fiber.StatusSeeOther)
}
