package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"undangan.link/configs/configslog"
	"undangan.link/models"
	"undangan.link/pkg/flashmessages"
	"undangan.link/pkg/renderer"
	"undangan.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const settingsPath = "/panel/settings"

type PanelSettingsHandler struct {
	invitations services.IInvitationService
	uploads     services.IUploadService
	baseURL     string
}

func NewPanelSettingsHandler(invitations services.IInvitationService, uploads services.IUploadService, baseURL string) *PanelSettingsHandler {
	return &PanelSettingsHandler{invitations: invitations, uploads: uploads, baseURL: baseURL}
}

func (h *PanelSettingsHandler) ShowSettings(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if user == nil {
		return err
	}
	flashData, _ := flashmessages.GetFlashMessages(c)
	data := fiber.Map{
		"Title":          "Pengaturan Undangan",
		"UploadsEnabled": h.uploads.Enabled(),
	}
	renderer.SetFlashMessages(data, flashData)

	inv, err := h.invitations.GetInvitationForUser(c.UserContext(), user.ID)
	if err != nil {
		data[renderer.FlashErrorKeyView] = "Gagal memuat pengaturan undangan."
		inv = &models.Invitation{}
	}
	data["Invitation"] = inv
	data["StoryRows"] = storyRows(inv)
	data["BankRows"] = bankRows(inv)
	data["InvitationLink"] = services.InvitationLink(h.baseURL, inv.ID, "")
	return renderer.Render(c, "panel/settings", panelLayout, data, http.StatusOK)
}

// StoryRow is one love story slot of the settings form.
type StoryRow struct {
	Prefix      string
	Title       string
	Date        string
	Description string
	Icon        string
}

// BankRow is one bank account slot of the settings form.
type BankRow struct {
	Prefix        string
	BankName      string
	AccountNumber string
	AccountHolder string
}

func storyRows(inv *models.Invitation) []StoryRow {
	rows := make([]StoryRow, services.LoveStorySlots)
	for i := range rows {
		rows[i] = StoryRow{Prefix: fmt.Sprintf("story%d", i+1), Icon: services.DefaultLoveStoryIcons[i]}
		if i < len(inv.LoveStory) {
			m := inv.LoveStory[i]
			rows[i].Title, rows[i].Date, rows[i].Description = m.Title, m.Date, m.Description
			if m.Icon != "" {
				rows[i].Icon = m.Icon
			}
		}
	}
	return rows
}

func bankRows(inv *models.Invitation) []BankRow {
	rows := make([]BankRow, services.BankAccountSlots)
	for i := range rows {
		rows[i] = BankRow{Prefix: fmt.Sprintf("bank%d", i+1)}
		if i < len(inv.BankAccounts) {
			b := inv.BankAccounts[i]
			rows[i].BankName, rows[i].AccountNumber, rows[i].AccountHolder = b.BankName, b.AccountNumber, b.AccountHolder
		}
	}
	return rows
}

type pendingUpload struct {
	slot   services.MediaSlot
	header *multipart.FileHeader
}

func (p pendingUpload) file() services.UploadFile {
	return services.UploadFile{
		Filename:    p.header.Filename,
		ContentType: p.header.Header.Get(fiber.HeaderContentType),
		Size:        p.header.Size,
	}
}

// collectUploads gathers the files of a settings submission. Nothing is
// uploaded here.
func collectUploads(c *fiber.Ctx) []pendingUpload {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	var pending []pendingUpload
	single := map[string]services.MediaSlot{
		"groomPhoto": services.MediaGroomPhoto,
		"bridePhoto": services.MediaBridePhoto,
		"music":      services.MediaMusic,
	}
	for field, slot := range single {
		if files := form.File[field]; len(files) > 0 && files[0].Size > 0 {
			pending = append(pending, pendingUpload{slot: slot, header: files[0]})
		}
	}
	for _, fh := range form.File["galleryPhotos"] {
		if fh.Size > 0 {
			pending = append(pending, pendingUpload{slot: services.MediaGallery, header: fh})
		}
	}
	return pending
}

func (h *PanelSettingsHandler) upload(c *fiber.Ctx, ownerID string, p pendingUpload) (string, error) {
	f, err := p.header.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	file := p.file()
	file.Body = f
	return h.uploads.Upload(c.UserContext(), ownerID, p.slot, file)
}

// UpdateSettings validates and uploads any files, then saves the merged
// settings.
func (h *PanelSettingsHandler) UpdateSettings(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if user == nil {
		return err
	}

	form := services.SettingsForm{}
	for _, key := range services.SettingsFields {
		if v := c.FormValue(key); v != "" {
			form[key] = v
		}
	}

	pending := collectUploads(c)
	for _, p := range pending {
		if err := services.ValidateUpload(p.slot, p.file()); err != nil {
			return redirectWithError(c, settingsPath, p.header.Filename+": "+err.Error())
		}
	}

	var uploads services.UploadState
	var replaced []storedMedia
	if len(pending) > 0 {
		if !h.uploads.Enabled() {
			return redirectWithError(c, settingsPath, services.ErrStorageDisabled.Error())
		}
		prior, err := h.invitations.GetInvitationForUser(c.UserContext(), user.ID)
		if err != nil {
			return redirectWithError(c, settingsPath, "Gagal memuat pengaturan undangan.")
		}
		var gallery []string
		for _, p := range pending {
			url, err := h.upload(c, user.ID, p)
			if err != nil {
				configslog.Log.Error("Panel - settings upload failed", zap.String("user_id", user.ID), zap.String("slot", string(p.slot)), zap.Error(err))
				return redirectWithError(c, settingsPath, "Gagal mengunggah "+p.header.Filename+".")
			}
			switch p.slot {
			case services.MediaGroomPhoto:
				uploads.GroomPhotoURL = url
				replaced = append(replaced, storedMedia{p.slot, prior.GroomPhotoURL})
			case services.MediaBridePhoto:
				uploads.BridePhotoURL = url
				replaced = append(replaced, storedMedia{p.slot, prior.BridePhotoURL})
			case services.MediaMusic:
				uploads.MusicURL = url
				replaced = append(replaced, storedMedia{p.slot, prior.MusicURL})
			case services.MediaGallery:
				gallery = append(gallery, url)
			}
		}
		if len(gallery) > 0 {
			uploads.GalleryPhotos = append(prior.Gallery(), gallery...)
		}
	}

	if _, err := h.invitations.SaveSettings(c.UserContext(), user.ID, form, uploads); err != nil {
		return redirectWithError(c, settingsPath, "Gagal menyimpan pengaturan, silakan coba lagi.")
	}
	for _, m := range replaced {
		h.deleteStored(c, user.ID, m)
	}
	return redirectWithSuccess(c, settingsPath, "Pengaturan berhasil disimpan!")
}

type storedMedia struct {
	slot services.MediaSlot
	url  string
}

// deleteStored removes an object the invitation no longer references.
func (h *PanelSettingsHandler) deleteStored(c *fiber.Ctx, userID string, m storedMedia) {
	if m.url == "" || !h.uploads.Enabled() {
		return
	}
	if err := h.uploads.DeleteOwned(c.UserContext(), userID, m.slot, m.url); err != nil {
		configslog.Log.Warn("Panel - stored object not deleted", zap.String("user_id", userID), zap.String("url", m.url), zap.Error(err))
	}
}

// RemoveMedia clears a photo, the music or one gallery photo and deletes
// the stored object.
func (h *PanelSettingsHandler) RemoveMedia(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if user == nil {
		return err
	}
	slot := services.MediaSlot(c.FormValue("slot"))

	removed, err := h.invitations.RemoveMedia(c.UserContext(), user.ID, slot, c.FormValue("url"))
	if err != nil {
		if errors.Is(err, services.ErrInvitationInvalidInput) {
			return redirectWithError(c, settingsPath, "Jenis media tidak dikenal.")
		}
		return redirectWithError(c, settingsPath, "Gagal menghapus media.")
	}
	h.deleteStored(c, user.ID, storedMedia{slot, removed})
	return redirectWithSuccess(c, settingsPath, "Media dihapus.")
}
