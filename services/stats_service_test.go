package services_test

import (
	"context"
	"testing"

	"undangan.link/models"
	"undangan.link/pkg/testdb"
	"undangan.link/repositories"
	"undangan.link/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeGuestStats(t *testing.T) {
	st := services.ComputeGuestStats(map[models.GuestStatus]int64{
		models.GuestStatusPending:   2,
		models.GuestStatusSent:      3,
		models.GuestStatusOpened:    1,
		models.GuestStatusConfirmed: 4,
		models.GuestStatusDeclined:  1,
	})
	assert.Equal(t, services.GuestStats{Total: 11, Sent: 9, Opened: 6, Confirmed: 4, Declined: 1}, st)
	assert.Equal(t, services.GuestStats{}, services.ComputeGuestStats(nil))
}

func TestStatsFromStore(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	user := testdb.CreateUser(t, s.db, "stats@example.com")
	inv := testdb.CreateInvitation(t, s.db, user.ID)
	guests := services.NewGuestServiceWithRepo(s.guestRepo)

	a, err := guests.AddGuest(ctx, inv.ID, services.GuestInput{Name: "A"})
	require.NoError(t, err)
	_, err = guests.AddGuest(ctx, inv.ID, services.GuestInput{Name: "B"})
	require.NoError(t, err)
	require.NoError(t, guests.UpdateGuestStatus(ctx, inv.ID, a.ID, models.GuestStatusConfirmed))

	stats := services.NewStatsServiceWith(s.guestRepo, s.users, s.themesRepo, repositories.NewInvitationRepositoryTx(s.db))
	gs, err := stats.GuestStats(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), gs.Total)
	assert.Equal(t, int64(1), gs.Sent)
	assert.Equal(t, int64(1), gs.Opened)
	assert.Equal(t, int64(1), gs.Confirmed)

	_, err = s.themes.ToggleTheme(ctx, "3")
	require.NoError(t, err)
	as, err := stats.AdminStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), as.TotalUsers)
	assert.Equal(t, int64(3), as.TotalThemes)
	assert.Equal(t, int64(2), as.ActiveThemes)
	assert.Equal(t, int64(1), as.TotalInvitations)
}
