package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"undangan.link/configs/configslog"
	"undangan.link/models"
	"undangan.link/pkg/messaging"

	"go.uber.org/zap"
)

type DispatchServiceError string

func (e DispatchServiceError) Error() string { return string(e) }

const (
	ErrMessagingDisabled DispatchServiceError = "pengiriman pesan belum dikonfigurasi"
	ErrGuestPhoneMissing DispatchServiceError = "tamu tidak memiliki nomor telepon"
	ErrDispatchFailed    DispatchServiceError = "gagal mengirim undangan"
)

// InvitationLink builds the personalised public link for a guest.
func InvitationLink(baseURL, invitationID, guestName string) string {
	link := strings.TrimRight(baseURL, "/") + "/invitation/" + url.PathEscape(invitationID)
	if guestName != "" {
		link += "?to=" + url.QueryEscape(guestName)
	}
	return link
}

// InvitationMessage is the text sent to a guest.
func InvitationMessage(guestName, link string) string {
	return fmt.Sprintf("Kepada Yth. %s,\n\nKami mengundang Anda untuk menghadiri acara kami. Silakan buka undangan digital berikut:\n\n%s\n\nTerima kasih.", guestName, link)
}

// NormalizePhone keeps the digits of phone in Indonesian international form:
// a leading 0 becomes 62 and numbers without the 62 prefix get it.
func NormalizePhone(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)
	if digits == "" || strings.HasPrefix(digits, "62") {
		return digits
	}
	return "62" + strings.TrimPrefix(digits, "0")
}

// WhatsAppShareURL returns the wa.me link that opens a chat with message.
func WhatsAppShareURL(phone, message string) string {
	return "https://wa.me/" + NormalizePhone(phone) + "?text=" + strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
}

type IDispatchService interface {
	ShareURL(ctx context.Context, invitationID, guestID string) (string, error)
	SendInvitation(ctx context.Context, invitationID, guestID string) (*models.Guest, error)
	Enabled() bool
}

type DispatchService struct {
	guests  IGuestService
	sender  messaging.Sender
	baseURL string
}

// NewDispatchService wires the guest service and sender. A nil sender
// disables SendInvitation.
func NewDispatchService(guests IGuestService, sender messaging.Sender, baseURL string) *DispatchService {
	return &DispatchService{guests: guests, sender: sender, baseURL: baseURL}
}

func (s *DispatchService) Enabled() bool { return s.sender != nil }

func (s *DispatchService) markSent(ctx context.Context, invitationID string, guest *models.Guest) {
	if guest.Status != models.GuestStatusPending {
		return
	}
	if err := s.guests.UpdateGuestStatus(ctx, invitationID, guest.ID, models.GuestStatusSent); err != nil {
		configslog.Log.Warn("Could not mark guest as sent", zap.String("guest_id", guest.ID), zap.Error(err))
		return
	}
	guest.Status = models.GuestStatusSent
}

// ShareURL returns the WhatsApp share link for a guest and marks a pending
// guest as sent.
func (s *DispatchService) ShareURL(ctx context.Context, invitationID, guestID string) (string, error) {
	guest, err := s.guests.GetGuest(ctx, invitationID, guestID)
	if err != nil {
		return "", err
	}
	if NormalizePhone(guest.Phone) == "" {
		return "", ErrGuestPhoneMissing
	}
	link := InvitationLink(s.baseURL, invitationID, guest.Name)
	s.markSent(ctx, invitationID, guest)
	return WhatsAppShareURL(guest.Phone, InvitationMessage(guest.Name, link)), nil
}

// SendInvitation delivers the invitation text through the configured sender
// and marks a pending guest as sent.
func (s *DispatchService) SendInvitation(ctx context.Context, invitationID, guestID string) (*models.Guest, error) {
	if s.sender == nil {
		return nil, ErrMessagingDisabled
	}
	guest, err := s.guests.GetGuest(ctx, invitationID, guestID)
	if err != nil {
		return nil, err
	}
	phone := NormalizePhone(guest.Phone)
	if phone == "" {
		return nil, ErrGuestPhoneMissing
	}

	link := InvitationLink(s.baseURL, invitationID, guest.Name)
	sid, err := s.sender.Send(ctx, "+"+phone, InvitationMessage(guest.Name, link))
	if err != nil {
		configslog.Log.Error("DispatchService.SendInvitation failed", zap.String("guest_id", guest.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrDispatchFailed, err)
	}
	configslog.SLog.Infof("Invitation sent to guest %s (sid %s)", guest.ID, sid)
	s.markSent(ctx, invitationID, guest)
	return guest, nil
}

var _ IDispatchService = (*DispatchService)(nil)
