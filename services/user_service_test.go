package services_test

import (
	"context"
	"testing"

	"undangan.link/models"
	"undangan.link/pkg/queryparams"
	"undangan.link/pkg/testdb"
	"undangan.link/repositories"
	"undangan.link/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvisionUserWithTheme(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	users := services.NewUserServiceWithDB(s.db)

	user, err := users.ProvisionUser(ctx, services.ProvisionInput{
		Email:    "  Sari@Example.com ",
		Password: "rahasia123",
		FullName: "Sari Dewi",
		ThemeID:  "3",
	})
	require.NoError(t, err)
	assert.Equal(t, "sari@example.com", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.True(t, user.IsActive)
	assert.Equal(t, "3", user.PinnedThemeID())

	inv, err := s.invRepo.FindByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "3", inv.ThemeID)

	assert.ErrorIs(t, s.themes.SelectTheme(ctx, user.ID, "1"), services.ErrThemeLocked)
}

func TestProvisionUserRejectsDuplicatesAndUnknownThemes(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	users := services.NewUserServiceWithDB(s.db)
	testdb.CreateUser(t, s.db, "taken@example.com")

	_, err := users.ProvisionUser(ctx, services.ProvisionInput{Email: "TAKEN@example.com", Password: "rahasia123", FullName: "Dup"})
	assert.ErrorIs(t, err, services.ErrUserEmailTaken)

	_, err = users.ProvisionUser(ctx, services.ProvisionInput{Email: "new@example.com", Password: "rahasia123", FullName: "Baru", ThemeID: "99"})
	assert.ErrorIs(t, err, services.ErrThemeNotFound)
	_, err = s.users.FindByEmail(ctx, "new@example.com")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	_, err = users.ProvisionUser(ctx, services.ProvisionInput{Email: "bukan-email", Password: "rahasia123", FullName: "X"})
	assert.ErrorIs(t, err, services.ErrUserInvalidInput)
}

func TestUserSelfActionsAreRefused(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	users := services.NewUserServiceWithDB(s.db)
	admin := testdb.CreateUser(t, s.db, "admin@example.com")
	other := testdb.CreateUser(t, s.db, "other@example.com")

	_, err := users.ToggleActive(ctx, admin.ID, admin.ID)
	assert.ErrorIs(t, err, services.ErrUserSelfAction)
	assert.ErrorIs(t, users.DeleteUser(ctx, admin.ID, admin.ID), services.ErrUserSelfAction)

	active, err := users.ToggleActive(ctx, admin.ID, other.ID)
	require.NoError(t, err)
	assert.False(t, active)
	reloaded, err := users.GetUser(ctx, other.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsActive)

	require.NoError(t, users.DeleteUser(ctx, admin.ID, other.ID))
	_, err = users.GetUser(ctx, other.ID)
	assert.ErrorIs(t, err, services.ErrUserNotFound)
	assert.ErrorIs(t, users.DeleteUser(ctx, admin.ID, other.ID), services.ErrUserNotFound)
}

func TestAssignTheme(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	users := services.NewUserServiceWithDB(s.db)
	user := testdb.CreateUser(t, s.db, "pin@example.com")

	require.NoError(t, users.AssignTheme(ctx, user.ID, "2"))
	got, err := users.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "2", got.PinnedThemeID())

	assert.ErrorIs(t, users.AssignTheme(ctx, user.ID, "99"), services.ErrThemeNotFound)

	require.NoError(t, users.AssignTheme(ctx, user.ID, ""))
	got, err = users.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, got.HasAssignedTheme())

	assert.ErrorIs(t, users.AssignTheme(ctx, "ghost", ""), services.ErrUserNotFound)
}

func TestListUsersPaginates(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	users := services.NewUserServiceWithDB(s.db)
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		testdb.CreateUser(t, s.db, email)
	}

	params := queryparams.DefaultListParams("created_at")
	params.PerPage = 2
	result, err := users.ListUsers(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.Meta.TotalItems)
	assert.Equal(t, 2, result.Meta.TotalPages)
	assert.Len(t, result.Data, 2)
}
