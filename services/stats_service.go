package services

import (
	"context"
	"fmt"

	"undangan.link/models"
	"undangan.link/repositories"
)

type StatsServiceError string

func (e StatsServiceError) Error() string { return string(e) }

const ErrStatsFailed StatsServiceError = "gagal memuat statistik"

// GuestStats is the guest funnel of one invitation.
type GuestStats struct {
	Total     int64
	Sent      int64
	Opened    int64
	Confirmed int64
	Declined  int64
}

// AdminStats is shown on the admin home page.
type AdminStats struct {
	TotalUsers       int64
	TotalThemes      int64
	ActiveThemes     int64
	TotalInvitations int64
}

type IStatsService interface {
	GuestStats(ctx context.Context, invitationID string) (*GuestStats, error)
	AdminStats(ctx context.Context) (*AdminStats, error)
}

type StatsService struct {
	guestRepo repositories.IGuestRepository
	userRepo  repositories.IUserRepository
	themeRepo repositories.IThemeRepository
	invRepo   repositories.IInvitationRepository
}

func NewStatsService() IStatsService {
	return NewStatsServiceWith(
		repositories.NewGuestRepository(),
		repositories.NewUserRepository(),
		repositories.NewThemeRepository(),
		repositories.NewInvitationRepository(),
	)
}

func NewStatsServiceWith(guestRepo repositories.IGuestRepository, userRepo repositories.IUserRepository, themeRepo repositories.IThemeRepository, invRepo repositories.IInvitationRepository) *StatsService {
	return &StatsService{guestRepo: guestRepo, userRepo: userRepo, themeRepo: themeRepo, invRepo: invRepo}
}

// ComputeGuestStats derives the funnel from per-status counts. Every guest
// past pending counts as sent; opened includes those who answered.
func ComputeGuestStats(counts map[models.GuestStatus]int64) GuestStats {
	var st GuestStats
	for status, n := range counts {
		st.Total += n
		if status != models.GuestStatusPending {
			st.Sent += n
		}
		switch status {
		case models.GuestStatusOpened:
			st.Opened += n
		case models.GuestStatusConfirmed:
			st.Opened += n
			st.Confirmed += n
		case models.GuestStatusDeclined:
			st.Opened += n
			st.Declined += n
		}
	}
	return st
}

func (s *StatsService) GuestStats(ctx context.Context, invitationID string) (*GuestStats, error) {
	counts, err := s.guestRepo.CountByStatus(ctx, invitationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStatsFailed, err)
	}
	st := ComputeGuestStats(counts)
	return &st, nil
}

func (s *StatsService) AdminStats(ctx context.Context) (*AdminStats, error) {
	var st AdminStats
	var err error
	if st.TotalUsers, err = s.userRepo.CountAll(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStatsFailed, err)
	}
	if st.TotalThemes, err = s.themeRepo.CountAll(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStatsFailed, err)
	}
	if st.ActiveThemes, err = s.themeRepo.CountActive(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStatsFailed, err)
	}
	if st.TotalInvitations, err = s.invRepo.CountAll(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStatsFailed, err)
	}
	return &st, nil
}

var _ IStatsService = (*StatsService)(nil)
