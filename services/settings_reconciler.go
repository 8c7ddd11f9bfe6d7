package services

import (
	"fmt"
	"strings"
	"time"

	"undangan.link/models"
)

// Defaults applied when neither the submission nor the stored record has a value.
const (
	DefaultAkadStartTime    = "08:00"
	DefaultAkadEndTime      = "10:00"
	DefaultResepsiStartTime = "11:00"
	DefaultResepsiEndTime   = "13:00"
	DefaultAkadLocation     = "Lokasi Akad"
	DefaultThemeID          = "1"

	LoveStorySlots   = 3
	BankAccountSlots = 2
)

// DefaultLoveStoryIcons are the per-slot icon defaults.
var DefaultLoveStoryIcons = [LoveStorySlots]string{"💕", "💍", "💒"}

// SettingsForm is a settings submission keyed by form field name. Absent and
// empty fields are treated the same.
type SettingsForm map[string]string

// SettingsFields lists every form field Reconcile reads.
var SettingsFields = func() []string {
	fields := []string{
		"eventName", "openingQuote", "closingMessage",
		"groomName", "groomFullName", "groomTitle", "groomDescription", "groomFatherName", "groomMotherName",
		"brideName", "brideFullName", "brideTitle", "brideDescription", "brideFatherName", "brideMotherName",
		"akadDate", "akadStartTime", "akadEndTime", "akadLocation",
		"resepsiDate", "resepsiStartTime", "resepsiEndTime", "resepsiLocation",
		"mapsUrl",
	}
	for i := 1; i <= LoveStorySlots; i++ {
		p := fmt.Sprintf("story%d", i)
		fields = append(fields, p+"Title", p+"Date", p+"Desc", p+"Icon")
	}
	for i := 1; i <= BankAccountSlots; i++ {
		p := fmt.Sprintf("bank%d", i)
		fields = append(fields, p+"Name", p+"Number", p+"Holder")
	}
	return fields
}()

func (f SettingsForm) value(key string) string {
	return strings.TrimSpace(f[key])
}

// UploadState carries the media URLs known after the upload step. Empty
// values mean "no new upload".
type UploadState struct {
	GroomPhotoURL string
	BridePhotoURL string
	GalleryPhotos []string
	MusicURL      string
}

func getOrKeep(submitted, prior, fallback string) string {
	if submitted != "" {
		return submitted
	}
	if prior != "" {
		return prior
	}
	return fallback
}

// Reconcile merges a partial submission with the stored settings and returns
// the complete record to persist. It does not touch the store. ThemeID is
// always carried over from prior.
func Reconcile(form SettingsForm, prior *models.Invitation, uploads UploadState, now time.Time) models.Invitation {
	if prior == nil {
		prior = &models.Invitation{}
	}
	today := now.Format("2006-01-02")

	out := models.Invitation{
		BaseModel: prior.BaseModel,
		UserID:    prior.UserID,
		ThemeID:   prior.ThemeID,

		EventName:      getOrKeep(form.value("eventName"), prior.EventName, ""),
		OpeningQuote:   getOrKeep(form.value("openingQuote"), prior.OpeningQuote, ""),
		ClosingMessage: getOrKeep(form.value("closingMessage"), prior.ClosingMessage, ""),

		GroomName:        getOrKeep(form.value("groomName"), prior.GroomName, ""),
		GroomFullName:    getOrKeep(form.value("groomFullName"), prior.GroomFullName, ""),
		GroomTitle:       getOrKeep(form.value("groomTitle"), prior.GroomTitle, ""),
		GroomDescription: getOrKeep(form.value("groomDescription"), prior.GroomDescription, ""),
		GroomFatherName:  getOrKeep(form.value("groomFatherName"), prior.GroomFatherName, ""),
		GroomMotherName:  getOrKeep(form.value("groomMotherName"), prior.GroomMotherName, ""),

		BrideName:        getOrKeep(form.value("brideName"), prior.BrideName, ""),
		BrideFullName:    getOrKeep(form.value("brideFullName"), prior.BrideFullName, ""),
		BrideTitle:       getOrKeep(form.value("brideTitle"), prior.BrideTitle, ""),
		BrideDescription: getOrKeep(form.value("brideDescription"), prior.BrideDescription, ""),
		BrideFatherName:  getOrKeep(form.value("brideFatherName"), prior.BrideFatherName, ""),
		BrideMotherName:  getOrKeep(form.value("brideMotherName"), prior.BrideMotherName, ""),

		AkadDate:      getOrKeep(form.value("akadDate"), prior.AkadDate, today),
		AkadStartTime: getOrKeep(form.value("akadStartTime"), prior.AkadStartTime, DefaultAkadStartTime),
		AkadEndTime:   getOrKeep(form.value("akadEndTime"), prior.AkadEndTime, DefaultAkadEndTime),
		AkadLocation:  getOrKeep(form.value("akadLocation"), prior.AkadLocation, ""),

		ResepsiDate:      getOrKeep(form.value("resepsiDate"), prior.ResepsiDate, today),
		ResepsiStartTime: getOrKeep(form.value("resepsiStartTime"), prior.ResepsiStartTime, DefaultResepsiStartTime),
		ResepsiEndTime:   getOrKeep(form.value("resepsiEndTime"), prior.ResepsiEndTime, DefaultResepsiEndTime),
		ResepsiLocation:  getOrKeep(form.value("resepsiLocation"), prior.ResepsiLocation, ""),

		MapsURL: getOrKeep(form.value("mapsUrl"), prior.MapsURL, ""),

		GroomPhotoURL: getOrKeep(uploads.GroomPhotoURL, prior.GroomPhotoURL, ""),
		BridePhotoURL: getOrKeep(uploads.BridePhotoURL, prior.BridePhotoURL, ""),
		MusicURL:      getOrKeep(uploads.MusicURL, prior.MusicURL, ""),
	}

	if len(uploads.GalleryPhotos) > 0 {
		out.GalleryPhotos = append([]string(nil), uploads.GalleryPhotos...)
	} else if prior.GalleryPhotos != nil {
		out.GalleryPhotos = append(make([]string, 0, len(prior.GalleryPhotos)), prior.GalleryPhotos...)
	}

	out.LoveStory = reconcileLoveStory(form, prior.LoveStory)
	out.BankAccounts = reconcileBankAccounts(form, prior.BankAccounts)
	out.SyncLegacyFields()
	return out
}

func reconcileLoveStory(form SettingsForm, prior []models.LoveStoryMilestone) []models.LoveStoryMilestone {
	result := make([]models.LoveStoryMilestone, 0, LoveStorySlots)
	for i := 0; i < LoveStorySlots; i++ {
		var old models.LoveStoryMilestone
		if i < len(prior) {
			old = prior[i]
		}
		prefix := fmt.Sprintf("story%d", i+1)
		m := models.LoveStoryMilestone{
			Title:       getOrKeep(form.value(prefix+"Title"), old.Title, ""),
			Date:        getOrKeep(form.value(prefix+"Date"), old.Date, ""),
			Description: getOrKeep(form.value(prefix+"Desc"), old.Description, ""),
			Icon:        getOrKeep(form.value(prefix+"Icon"), old.Icon, DefaultLoveStoryIcons[i]),
		}
		if m.Title == "" && m.Description == "" {
			continue
		}
		m.OrderIndex = len(result)
		result = append(result, m)
	}
	return result
}

func reconcileBankAccounts(form SettingsForm, prior []models.BankAccount) []models.BankAccount {
	result := make([]models.BankAccount, 0, BankAccountSlots)
	for i := 0; i < BankAccountSlots; i++ {
		var old models.BankAccount
		if i < len(prior) {
			old = prior[i]
		}
		prefix := fmt.Sprintf("bank%d", i+1)
		b := models.BankAccount{
			BankName:      getOrKeep(form.value(prefix+"Name"), old.BankName, ""),
			AccountNumber: getOrKeep(form.value(prefix+"Number"), old.AccountNumber, ""),
			AccountHolder: getOrKeep(form.value(prefix+"Holder"), old.AccountHolder, ""),
		}
		if b.BankName == "" && b.AccountNumber == "" {
			continue
		}
		b.OrderIndex = len(result)
		result = append(result, b)
	}
	return result
}

// NewDefaultInvitation is the record created on a user's first visit.
func NewDefaultInvitation(userID, themeID string, now time.Time) models.Invitation {
	if themeID == "" {
		themeID = DefaultThemeID
	}
	today := now.Format("2006-01-02")
	inv := models.Invitation{
		UserID:           userID,
		ThemeID:          themeID,
		AkadDate:         today,
		AkadStartTime:    DefaultAkadStartTime,
		AkadEndTime:      DefaultAkadEndTime,
		AkadLocation:     DefaultAkadLocation,
		ResepsiDate:      today,
		ResepsiStartTime: DefaultResepsiStartTime,
		ResepsiEndTime:   DefaultResepsiEndTime,
		GalleryPhotos:    []string{},
	}
	inv.SyncLegacyFields()
	return inv
}
