package services

import (
	"testing"
	"time"

	"undangan.link/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reconcileNow = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

func storedInvitation() *models.Invitation {
	return &models.Invitation{
		BaseModel:     models.BaseModel{ID: "inv-1"},
		UserID:        "user-1",
		ThemeID:       "2",
		GroomName:     "Andi",
		BrideName:     "Rina",
		AkadDate:      "2025-07-01",
		AkadStartTime: "09:00",
		AkadEndTime:   "10:30",
		AkadLocation:  "Masjid A",
		GroomPhotoURL: "https://cdn/groom.jpg",
		MusicURL:      "https://cdn/song.mp3",
		GalleryPhotos: []string{"https://cdn/g1.jpg"},
		LoveStory: []models.LoveStoryMilestone{
			{Title: "Bertemu", Date: "2019", Description: "Di kampus", Icon: "🎓"},
		},
		BankAccounts: []models.BankAccount{
			{BankName: "BCA", AccountNumber: "111", AccountHolder: "Andi"},
		},
	}
}

func TestReconcileKeepsUnsubmittedFields(t *testing.T) {
	prior := storedInvitation()

	out := Reconcile(SettingsForm{"groomName": "Budi"}, prior, UploadState{}, reconcileNow)

	assert.Equal(t, "Budi", out.GroomName)
	assert.Equal(t, "Masjid A", out.AkadLocation)
	assert.Equal(t, "Rina", out.BrideName)
	assert.Equal(t, "2", out.ThemeID)
	assert.Equal(t, "inv-1", out.ID)
	assert.Equal(t, "user-1", out.UserID)
	assert.Equal(t, "Masjid A", out.EventLocation)
	assert.Equal(t, "2025-07-01", out.EventDate)
	assert.Equal(t, "09:00", out.EventTime)
}

func TestReconcileEmptySubmissionEqualsPrior(t *testing.T) {
	prior := storedInvitation()

	out := Reconcile(SettingsForm{"groomName": "   ", "akadLocation": ""}, prior, UploadState{}, reconcileNow)

	assert.Equal(t, prior.GroomName, out.GroomName)
	assert.Equal(t, prior.AkadDate, out.AkadDate)
	assert.Equal(t, prior.AkadStartTime, out.AkadStartTime)
	assert.Equal(t, prior.GroomPhotoURL, out.GroomPhotoURL)
	assert.Equal(t, prior.MusicURL, out.MusicURL)
	assert.Equal(t, prior.Gallery(), out.Gallery())
	require.Len(t, out.LoveStory, 1)
	assert.Equal(t, "Bertemu", out.LoveStory[0].Title)
	assert.Equal(t, "🎓", out.LoveStory[0].Icon)
	require.Len(t, out.BankAccounts, 1)
	assert.Equal(t, "111", out.BankAccounts[0].AccountNumber)
}

func TestReconcileDefaultsWithoutPrior(t *testing.T) {
	out := Reconcile(SettingsForm{}, nil, UploadState{}, reconcileNow)

	assert.Equal(t, "2025-06-01", out.AkadDate)
	assert.Equal(t, "2025-06-01", out.ResepsiDate)
	assert.Equal(t, DefaultAkadStartTime, out.AkadStartTime)
	assert.Equal(t, DefaultAkadEndTime, out.AkadEndTime)
	assert.Equal(t, DefaultResepsiStartTime, out.ResepsiStartTime)
	assert.Equal(t, DefaultResepsiEndTime, out.ResepsiEndTime)
	assert.Empty(t, out.LoveStory)
	assert.Empty(t, out.BankAccounts)
	assert.Nil(t, out.GalleryPhotos)
}

func TestReconcileLoveStorySlots(t *testing.T) {
	form := SettingsForm{
		"story1Title": "Bertemu",
		"story3Title": "Menikah",
		"story3Desc":  "Akhirnya",
		"story2Date":  "2020",
	}

	out := Reconcile(form, nil, UploadState{}, reconcileNow)

	require.Len(t, out.LoveStory, 2)
	assert.Equal(t, "Bertemu", out.LoveStory[0].Title)
	assert.Equal(t, DefaultLoveStoryIcons[0], out.LoveStory[0].Icon)
	assert.Equal(t, 0, out.LoveStory[0].OrderIndex)
	assert.Equal(t, "Menikah", out.LoveStory[1].Title)
	assert.Equal(t, DefaultLoveStoryIcons[2], out.LoveStory[1].Icon)
	assert.Equal(t, 1, out.LoveStory[1].OrderIndex)
}

func TestReconcileBankSlotsAndUploads(t *testing.T) {
	prior := storedInvitation()
	form := SettingsForm{"bank2Name": "Mandiri", "bank2Number": "222", "bank2Holder": "Rina"}
	uploads := UploadState{
		BridePhotoURL: "https://cdn/bride.jpg",
		GalleryPhotos: []string{"https://cdn/g1.jpg", "https://cdn/g2.jpg"},
	}

	out := Reconcile(form, prior, uploads, reconcileNow)

	require.Len(t, out.BankAccounts, 2)
	assert.Equal(t, "BCA", out.BankAccounts[0].BankName)
	assert.Equal(t, "Mandiri", out.BankAccounts[1].BankName)
	assert.Equal(t, 1, out.BankAccounts[1].OrderIndex)
	assert.Equal(t, "https://cdn/bride.jpg", out.BridePhotoURL)
	assert.Equal(t, "https://cdn/groom.jpg", out.GroomPhotoURL)
	assert.Equal(t, []string{"https://cdn/g1.jpg", "https://cdn/g2.jpg"}, out.Gallery())

	uploads.GalleryPhotos[0] = "mutated"
	assert.Equal(t, "https://cdn/g1.jpg", out.GalleryPhotos[0])
}

func TestNewDefaultInvitation(t *testing.T) {
	inv := NewDefaultInvitation("user-1", "", reconcileNow)

	assert.Equal(t, DefaultThemeID, inv.ThemeID)
	assert.Equal(t, DefaultAkadLocation, inv.AkadLocation)
	assert.Equal(t, DefaultAkadLocation, inv.EventLocation)
	assert.Equal(t, "2025-06-01", inv.AkadDate)
	assert.NotNil(t, inv.GalleryPhotos)
}
