// Package testdb opens migrated in-memory sqlite databases for tests.
package testdb

import (
	"testing"

	"undangan.link/configs/configsdatabase"
	"undangan.link/database"
	"undangan.link/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Open returns a fresh database with every table migrated. The pool is
// limited to one connection so the in-memory database is shared.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := configsdatabase.Open("sqlite", "file::memory:?_foreign_keys=on", false)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.RunMigrationsInOrder(db))
	return db
}

// SeedThemes inserts the built-in themes.
func SeedThemes(t testing.TB, db *gorm.DB) {
	t.Helper()
	require.NoError(t, database.CheckAndRunSeeders(db, "", ""))
}

// CreateUser inserts an active user with the given email.
func CreateUser(t testing.TB, db *gorm.DB, email string) *models.UserProfile {
	t.Helper()
	user := &models.UserProfile{
		Email:        email,
		FullName:     "Pengguna " + email,
		Role:         models.RoleUser,
		IsActive:     true,
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateInvitation inserts a bare invitation owned by userID.
func CreateInvitation(t testing.TB, db *gorm.DB, userID string) *models.Invitation {
	t.Helper()
	inv := &models.Invitation{UserID: userID, ThemeID: "1", GroomName: "Budi", BrideName: "Ani"}
	require.NoError(t, db.Omit("LoveStory", "BankAccounts", "Guests", "User").Create(inv).Error)
	return inv
}
