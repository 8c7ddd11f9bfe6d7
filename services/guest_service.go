package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"undangan.link/configs/configslog"
	"undangan.link/models"
	"undangan.link/repositories"

	"go.uber.org/zap"
)

// DefaultGuestName is shown when the link carries no guest name. It never
// matches a guest record.
const DefaultGuestName = "Tamu Undangan"

type GuestServiceError string

func (e GuestServiceError) Error() string { return string(e) }

const (
	ErrGuestNotFound        GuestServiceError = "tamu tidak ditemukan"
	ErrGuestInvalidInput    GuestServiceError = "data tamu tidak valid"
	ErrGuestInvalidStatus   GuestServiceError = "status tamu tidak valid"
	ErrGuestCreationFailed  GuestServiceError = "gagal menambahkan tamu"
	ErrGuestUpdateFailed    GuestServiceError = "gagal memperbarui status tamu"
	ErrGuestDeletionFailed  GuestServiceError = "gagal menghapus tamu"
	ErrGuestListFailed      GuestServiceError = "gagal memuat daftar tamu"
	ErrRSVPInvalidInput     GuestServiceError = "data konfirmasi kehadiran tidak valid"
	ErrRSVPSubmissionFailed GuestServiceError = "gagal mengirim konfirmasi kehadiran"
)

// GuestInput is the add-guest form.
type GuestInput struct {
	Name  string `form:"name" json:"name" validate:"required,max=150"`
	Phone string `form:"phone" json:"phone" validate:"omitempty,max=30"`
}

// RSVPInput is the public RSVP submission.
type RSVPInput struct {
	Name       string            `form:"name" json:"name" validate:"max=150"`
	Attendance models.Attendance `form:"attendance" json:"attendance" validate:"required,oneof=attending not-attending"`
	GuestCount int               `form:"guestCount" json:"guestCount" validate:"min=0,max=20"`
	Message    string            `form:"message" json:"message" validate:"max=1000"`
}

// RSVPResult reports what SubmitRSVP did. Guest is nil when the name matched
// nobody on the list.
type RSVPResult struct {
	Guest  *models.Guest
	Status models.GuestStatus
}

type IGuestService interface {
	AddGuest(ctx context.Context, invitationID string, input GuestInput) (*models.Guest, error)
	GetGuest(ctx context.Context, invitationID, id string) (*models.Guest, error)
	DeleteGuest(ctx context.Context, invitationID, id string) error
	UpdateGuestStatus(ctx context.Context, invitationID, id string, status models.GuestStatus) error
	ListGuests(ctx context.Context, invitationID string) ([]models.Guest, error)
	TrackOpened(ctx context.Context, invitationID, name string) (*models.Guest, error)
	SubmitRSVP(ctx context.Context, invitationID string, input RSVPInput) (*RSVPResult, error)
}

type GuestService struct {
	repo repositories.IGuestRepository
}

func NewGuestService() IGuestService {
	return NewGuestServiceWithRepo(repositories.NewGuestRepository())
}

func NewGuestServiceWithRepo(repo repositories.IGuestRepository) IGuestService {
	return &GuestService{repo: repo}
}

// AddGuest validates the input and stores a new pending guest.
func (s *GuestService) AddGuest(ctx context.Context, invitationID string, input GuestInput) (*models.Guest, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Phone = strings.TrimSpace(input.Phone)
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrGuestInvalidInput, validationMessage(err))
	}
	if invitationID == "" {
		return nil, fmt.Errorf("%w: undangan belum dibuat", ErrGuestInvalidInput)
	}

	guest := &models.Guest{
		InvitationID: invitationID,
		Name:         input.Name,
		Phone:        input.Phone,
		Status:       models.GuestStatusPending,
	}
	if err := s.repo.Create(ctx, guest); err != nil {
		configslog.Log.Error("GuestService.AddGuest failed", zap.String("invitation_id", invitationID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGuestCreationFailed, err)
	}
	configslog.SLog.Infof("Guest added: %s (invitation %s)", guest.ID, invitationID)
	return guest, nil
}

// GetGuest loads a guest that belongs to invitationID.
func (s *GuestService) GetGuest(ctx context.Context, invitationID, id string) (*models.Guest, error) {
	guest, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrGuestNotFound
		}
		configslog.Log.Error("GuestService.GetGuest failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if guest.InvitationID != invitationID {
		return nil, ErrGuestNotFound
	}
	return guest, nil
}

func (s *GuestService) DeleteGuest(ctx context.Context, invitationID, id string) error {
	if _, err := s.GetGuest(ctx, invitationID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrGuestNotFound
		}
		configslog.Log.Error("GuestService.DeleteGuest failed", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrGuestDeletionFailed, err)
	}
	return nil
}

// UpdateGuestStatus overwrites the status. Any known status may follow any
// other; only the value itself is checked.
func (s *GuestService) UpdateGuestStatus(ctx context.Context, invitationID, id string, status models.GuestStatus) error {
	if !status.IsValid() {
		return ErrGuestInvalidStatus
	}
	if _, err := s.GetGuest(ctx, invitationID, id); err != nil {
		return err
	}
	return s.setStatus(ctx, id, status)
}

func (s *GuestService) setStatus(ctx context.Context, id string, status models.GuestStatus) error {
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrGuestNotFound
		}
		configslog.Log.Error("GuestService.UpdateStatus failed", zap.String("id", id), zap.String("status", string(status)), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrGuestUpdateFailed, err)
	}
	return nil
}

// ListGuests returns the invitation's guests newest first.
func (s *GuestService) ListGuests(ctx context.Context, invitationID string) ([]models.Guest, error) {
	guests, err := s.repo.FindByInvitationID(ctx, invitationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGuestListFailed, err)
	}
	return guests, nil
}

// findByName returns the first guest whose name equals name ignoring case,
// scanning newest first.
func (s *GuestService) findByName(ctx context.Context, invitationID, name string) (*models.Guest, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == DefaultGuestName {
		return nil, nil
	}
	guests, err := s.repo.FindByInvitationID(ctx, invitationID)
	if err != nil {
		return nil, err
	}
	for i := range guests {
		if strings.EqualFold(strings.TrimSpace(guests[i].Name), name) {
			return &guests[i], nil
		}
	}
	return nil, nil
}

// TrackOpened marks the named guest as opened when they are still pending
// or sent. It returns the matched guest or nil.
func (s *GuestService) TrackOpened(ctx context.Context, invitationID, name string) (*models.Guest, error) {
	guest, err := s.findByName(ctx, invitationID, name)
	if err != nil {
		configslog.Log.Error("GuestService.TrackOpened lookup failed", zap.String("invitation_id", invitationID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGuestListFailed, err)
	}
	if guest == nil {
		return nil, nil
	}
	if guest.Status == models.GuestStatusPending || guest.Status == models.GuestStatusSent {
		if err := s.setStatus(ctx, guest.ID, models.GuestStatusOpened); err != nil {
			return guest, err
		}
		guest.Status = models.GuestStatusOpened
	}
	return guest, nil
}

// SubmitRSVP records the attendance of a listed guest. Unlisted names are
// accepted without any stored change.
func (s *GuestService) SubmitRSVP(ctx context.Context, invitationID string, input RSVPInput) (*RSVPResult, error) {
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrRSVPInvalidInput, validationMessage(err))
	}
	status, ok := input.Attendance.GuestStatus()
	if !ok {
		return nil, ErrRSVPInvalidInput
	}

	guest, err := s.findByName(ctx, invitationID, input.Name)
	if err != nil {
		configslog.Log.Error("GuestService.SubmitRSVP lookup failed", zap.String("invitation_id", invitationID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrRSVPSubmissionFailed, err)
	}
	if guest == nil {
		configslog.SLog.Infof("RSVP from unlisted guest %q on invitation %s (%s, %d people)", input.Name, invitationID, input.Attendance, input.GuestCount)
		return &RSVPResult{Status: status}, nil
	}

	if err := s.setStatus(ctx, guest.ID, status); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRSVPSubmissionFailed, err)
	}
	guest.Status = status
	return &RSVPResult{Guest: guest, Status: status}, nil
}

var _ IGuestService = (*GuestService)(nil)
