package services_test

import (
	"context"
	"testing"

	"undangan.link/pkg/testdb"
	"undangan.link/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetInvitationForUserCreatesDefaultOnce(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	user := testdb.CreateUser(t, s.db, "first@example.com")

	inv, err := s.invitations.GetInvitationForUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, services.DefaultThemeID, inv.ThemeID)
	assert.Equal(t, services.DefaultAkadLocation, inv.AkadLocation)
	assert.Equal(t, services.DefaultAkadStartTime, inv.AkadStartTime)

	again, err := s.invitations.GetInvitationForUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, inv.ID, again.ID)

	_, err = s.invitations.GetInvitationForUser(ctx, "")
	assert.ErrorIs(t, err, services.ErrInvitationInvalidInput)
}

func TestSaveSettingsKeepsStoredValues(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	user := testdb.CreateUser(t, s.db, "couple@example.com")

	_, err := s.invitations.SaveSettings(ctx, user.ID, services.SettingsForm{
		"groomName":    "Andi",
		"brideName":    "Rina",
		"akadLocation": "Masjid A",
		"story1Title":  "Bertemu",
		"bank1Name":    "BCA",
		"bank1Number":  "111",
		"bank1Holder":  "Andi",
	}, services.UploadState{MusicURL: "https://cdn/song.mp3"})
	require.NoError(t, err)

	saved, err := s.invitations.SaveSettings(ctx, user.ID, services.SettingsForm{"groomName": "Budi"}, services.UploadState{})
	require.NoError(t, err)
	assert.Equal(t, "Budi", saved.GroomName)

	stored, err := s.invRepo.FindByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, stored.ID)
	assert.Equal(t, "Budi", stored.GroomName)
	assert.Equal(t, "Rina", stored.BrideName)
	assert.Equal(t, "Masjid A", stored.AkadLocation)
	assert.Equal(t, "Masjid A", stored.EventLocation)
	assert.Equal(t, "https://cdn/song.mp3", stored.MusicURL)
	require.Len(t, stored.LoveStory, 1)
	assert.Equal(t, "Bertemu", stored.LoveStory[0].Title)
	require.Len(t, stored.BankAccounts, 1)
	assert.Equal(t, "111", stored.BankAccounts[0].AccountNumber)
}

func TestSaveSettingsKeepsSelectedTheme(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	user := testdb.CreateUser(t, s.db, "themed@example.com")

	require.NoError(t, s.themes.SelectTheme(ctx, user.ID, "2"))
	_, err := s.invitations.SaveSettings(ctx, user.ID, services.SettingsForm{"brideName": "Rina"}, services.UploadState{})
	require.NoError(t, err)

	stored, err := s.invRepo.FindByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "2", stored.ThemeID)
}

func TestLoadPublicView(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	user := testdb.CreateUser(t, s.db, "public@example.com")
	require.NoError(t, s.themes.SelectTheme(ctx, user.ID, "2"))
	inv, err := s.invRepo.FindByUserID(ctx, user.ID)
	require.NoError(t, err)

	view, err := s.invitations.LoadPublicView(ctx, inv.ID)
	require.NoError(t, err)
	require.NotNil(t, view.Theme)
	assert.Equal(t, "modern", view.Theme.Slug)
	assert.Equal(t, "invitation/themes/modern", view.Template)
	assert.False(t, view.Preview)

	require.NoError(t, s.themes.DeleteTheme(ctx, "2"))
	view, err = s.invitations.LoadPublicView(ctx, inv.ID)
	require.NoError(t, err)
	assert.Nil(t, view.Theme)
	assert.Equal(t, "invitation/themes/default", view.Template)

	_, err = s.invitations.LoadPublicView(ctx, "missing")
	assert.ErrorIs(t, err, services.ErrInvitationNotFound)
}

func TestPreviewViewResolvesThemeByIDOrSlug(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	byID, err := s.invitations.PreviewView(ctx, "3")
	require.NoError(t, err)
	assert.True(t, byID.Preview)
	assert.Equal(t, "invitation/themes/rustic", byID.Template)
	assert.Equal(t, services.PreviewInvitationID, byID.Invitation.ID)
	assert.Equal(t, "3", byID.Invitation.ThemeID)

	bySlug, err := s.invitations.PreviewView(ctx, "modern")
	require.NoError(t, err)
	assert.Equal(t, "invitation/themes/modern", bySlug.Template)
	assert.Equal(t, "2", bySlug.Invitation.ThemeID)

	unknown, err := s.invitations.PreviewView(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, unknown.Theme)
	assert.Equal(t, "invitation/themes/default", unknown.Template)
	assert.Equal(t, "Ahmad", unknown.Invitation.GroomName)
}

func TestRemoveMedia(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	user := testdb.CreateUser(t, s.db, "media@example.com")

	_, err := s.invitations.SaveSettings(ctx, user.ID, services.SettingsForm{"groomName": "Andi"}, services.UploadState{
		GroomPhotoURL: "https://cdn/groom.jpg",
		GalleryPhotos: []string{"https://cdn/g1.jpg", "https://cdn/g2.jpg"},
	})
	require.NoError(t, err)

	removed, err := s.invitations.RemoveMedia(ctx, user.ID, services.MediaGallery, "https://cdn/g1.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/g1.jpg", removed)

	removed, err = s.invitations.RemoveMedia(ctx, user.ID, services.MediaGallery, "https://cdn/someone-else.jpg")
	require.NoError(t, err)
	assert.Empty(t, removed)

	removed, err = s.invitations.RemoveMedia(ctx, user.ID, services.MediaGroomPhoto, "https://cdn/other.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/groom.jpg", removed)

	stored, err := s.invRepo.FindByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn/g2.jpg"}, stored.Gallery())
	assert.Empty(t, stored.GroomPhotoURL)
	assert.Equal(t, "Andi", stored.GroomName)

	_, err = s.invitations.RemoveMedia(ctx, user.ID, services.MediaSlot("poster"), "")
	assert.ErrorIs(t, err, services.ErrInvitationInvalidInput)
}
