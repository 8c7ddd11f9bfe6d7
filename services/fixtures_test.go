package services_test

import (
	"testing"
	"time"

	"undangan.link/pkg/testdb"
	"undangan.link/repositories"
	"undangan.link/services"

	"gorm.io/gorm"
)

var fixedNow = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type stack struct {
	db          *gorm.DB
	users       repositories.IUserRepository
	themesRepo  repositories.IThemeRepository
	invRepo     repositories.IInvitationRepository
	guestRepo   repositories.IGuestRepository
	themes      *services.ThemeService
	invitations *services.InvitationService
}

// newStack opens a seeded database and builds the services on it.
func newStack(t *testing.T) *stack {
	t.Helper()
	db := testdb.Open(t)
	testdb.SeedThemes(t, db)
	s := &stack{
		db:         db,
		users:      repositories.NewUserRepositoryTx(db),
		themesRepo: repositories.NewThemeRepositoryTx(db),
		invRepo:    repositories.NewInvitationRepositoryTx(db),
		guestRepo:  repositories.NewGuestRepositoryTx(db),
	}
	s.themes = services.NewThemeServiceWith(s.themesRepo, s.users, s.invRepo, clock)
	s.invitations = services.NewInvitationServiceWith(s.invRepo, s.users, s.themesRepo, clock)
	return s
}
