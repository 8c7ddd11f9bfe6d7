package repositories_test

import (
	"context"
	"testing"

	"undangan.link/models"
	"undangan.link/pkg/queryparams"
	"undangan.link/pkg/testdb"
	"undangan.link/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepositoryCreateLowercasesEmail(t *testing.T) {
	db := testdb.Open(t)
	repo := repositories.NewUserRepositoryTx(db)
	ctx := context.Background()

	user := &models.UserProfile{Email: "Budi@Example.COM", FullName: "Budi", Role: models.RoleUser, IsActive: true, PasswordHash: "x"}
	require.NoError(t, repo.Create(ctx, user))

	found, err := repo.FindByEmail(ctx, "budi@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestUserRepositoryPaginatedFilters(t *testing.T) {
	db := testdb.Open(t)
	repo := repositories.NewUserRepositoryTx(db)
	ctx := context.Background()

	testdb.CreateUser(t, db, "ani@example.com")
	testdb.CreateUser(t, db, "budi@example.com")
	inactive := testdb.CreateUser(t, db, "citra@example.com")
	require.NoError(t, repo.UpdateFields(ctx, inactive.ID, map[string]interface{}{"is_active": false}))

	params := queryparams.DefaultListParams("created_at")
	params.Name = "BUDI"
	users, total, err := repo.FindAllPaginated(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	assert.Equal(t, "budi@example.com", users[0].Email)

	params = queryparams.DefaultListParams("created_at")
	params.Status = "false"
	users, total, err = repo.FindAllPaginated(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, inactive.ID, users[0].ID)

	params = queryparams.DefaultListParams("email")
	params.OrderBy = "asc"
	params.PerPage = 2
	users, total, err = repo.FindAllPaginated(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, users, 2)
	assert.Equal(t, "ani@example.com", users[0].Email)
}

func TestUserRepositoryDeleteRemovesInvitationTree(t *testing.T) {
	db := testdb.Open(t)
	user := testdb.CreateUser(t, db, "delete@example.com")
	inv := testdb.CreateInvitation(t, db, user.ID)
	require.NoError(t, db.Create(&models.Guest{InvitationID: inv.ID, Name: "Siti", Status: models.GuestStatusPending}).Error)
	repo := repositories.NewUserRepositoryTx(db)
	ctx := context.Background()

	require.NoError(t, repo.Delete(ctx, user.ID))

	var guests, invitations int64
	require.NoError(t, db.Model(&models.Guest{}).Count(&guests).Error)
	require.NoError(t, db.Model(&models.Invitation{}).Count(&invitations).Error)
	assert.Zero(t, guests)
	assert.Zero(t, invitations)

	assert.ErrorIs(t, repo.Delete(ctx, user.ID), repositories.ErrNotFound)
}
