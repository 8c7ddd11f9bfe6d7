package handlers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"

	"undangan.link/models"
	"undangan.link/pkg/testdb"
	"undangan.link/repositories"
	"undangan.link/services"
	"undangan.link/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/template/html/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const cdnBase = "https://cdn.example.com/storage/v1/object/public/"

type memoryStore struct {
	puts    []string
	deletes []string
}

func (s *memoryStore) Put(_ context.Context, bucket, key, _ string, body io.Reader, _ int64) (string, error) {
	_, _ = io.Copy(io.Discard, body)
	s.puts = append(s.puts, bucket+"/"+key)
	return s.PublicURL(bucket, key), nil
}

func (s *memoryStore) Delete(_ context.Context, bucket, key string) error {
	s.deletes = append(s.deletes, bucket+"/"+key)
	return nil
}

func (s *memoryStore) PublicURL(bucket, key string) string {
	return cdnBase + bucket + "/" + key
}

type panelFixture struct {
	db          *gorm.DB
	app         *fiber.App
	store       *memoryStore
	user        *models.UserProfile
	invitations services.IInvitationService
	guests      services.IGuestService
}

// newPanelFixture mounts the panel handlers for a signed-in couple. A nil
// store disables uploads.
func newPanelFixture(t *testing.T, store *memoryStore) panelFixture {
	t.Helper()
	db := testdb.Open(t)
	testdb.SeedThemes(t, db)
	user := testdb.CreateUser(t, db, "couple@example.com")

	invRepo := repositories.NewInvitationRepositoryTx(db)
	userRepo := repositories.NewUserRepositoryTx(db)
	themeRepo := repositories.NewThemeRepositoryTx(db)
	guestRepo := repositories.NewGuestRepositoryTx(db)

	invitations := services.NewInvitationServiceWith(invRepo, userRepo, themeRepo, nil)
	guests := services.NewGuestServiceWithRepo(guestRepo)
	dispatch := services.NewDispatchService(guests, nil, "https://undangan.link")
	stats := services.NewStatsServiceWith(guestRepo, userRepo, themeRepo, invRepo)
	uploads := services.NewUploadService(nil)
	if store != nil {
		uploads = services.NewUploadService(store)
	}

	guestHandler := NewPanelGuestHandler(invitations, guests, dispatch, stats, "https://undangan.link")
	settingsHandler := NewPanelSettingsHandler(invitations, uploads, "https://undangan.link")

	sessions := session.New()
	app := fiber.New(fiber.Config{Views: html.New("../../views", ".html")})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(utils.SessionStoreKey, sessions)
		c.Locals(utils.LocalsUserKey, user)
		return c.Next()
	})
	app.Get("/panel/guests", guestHandler.ListGuests)
	app.Post("/panel/guests/create", guestHandler.CreateGuest)
	app.Post("/panel/guests/delete/:id", guestHandler.DeleteGuest)
	app.Post("/panel/guests/status/:id", guestHandler.UpdateStatus)
	app.Post("/panel/guests/send/:id", guestHandler.SendGuest)
	app.Post("/panel/guests/share/:id", guestHandler.ShareGuest)
	app.Post("/panel/settings", settingsHandler.UpdateSettings)
	app.Post("/panel/settings/media/remove", settingsHandler.RemoveMedia)

	return panelFixture{db: db, app: app, store: store, user: user, invitations: invitations, guests: guests}
}

func (f panelFixture) postForm(t *testing.T, path string, form url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	return resp
}

type formFile struct {
	field       string
	filename    string
	contentType string
	body        []byte
}

func (f panelFixture) postMultipart(t *testing.T, path string, fields map[string]string, files ...formFile) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, file := range files {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="`+file.field+`"; filename="`+file.filename+`"`)
		h.Set("Content-Type", file.contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(file.body)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	return resp
}

func (f panelFixture) storedInvitation(t *testing.T, userID string) *models.Invitation {
	t.Helper()
	inv, err := f.invitations.GetInvitationForUser(context.Background(), userID)
	require.NoError(t, err)
	return inv
}

func assertRedirect(t *testing.T, resp *http.Response, location string) {
	t.Helper()
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, location, resp.Header.Get(fiber.HeaderLocation))
}

func TestRemoveMediaDeletesOnlyTheStoredObject(t *testing.T) {
	f := newPanelFixture(t, &memoryStore{})
	ctx := context.Background()
	other := testdb.CreateUser(t, f.db, "other@example.com")

	ownPhoto := cdnBase + "couple-photos/" + f.user.ID + "/groom-1.jpg"
	otherPhoto := cdnBase + "couple-photos/" + other.ID + "/groom-1.jpg"
	otherGallery := cdnBase + "gallery-photos/" + other.ID + "/gallery-1.jpg"
	_, err := f.invitations.SaveSettings(ctx, f.user.ID, services.SettingsForm{}, services.UploadState{GroomPhotoURL: ownPhoto})
	require.NoError(t, err)
	_, err = f.invitations.SaveSettings(ctx, other.ID, services.SettingsForm{}, services.UploadState{
		GroomPhotoURL: otherPhoto,
		GalleryPhotos: []string{otherGallery},
	})
	require.NoError(t, err)

	resp := f.postForm(t, "/panel/settings/media/remove", url.Values{"slot": {"groom"}, "url": {otherPhoto}})
	assertRedirect(t, resp, "/panel/settings")
	assert.Equal(t, []string{"couple-photos/" + f.user.ID + "/groom-1.jpg"}, f.store.deletes)
	assert.Empty(t, f.storedInvitation(t, f.user.ID).GroomPhotoURL)

	resp = f.postForm(t, "/panel/settings/media/remove", url.Values{"slot": {"gallery"}, "url": {otherGallery}})
	assertRedirect(t, resp, "/panel/settings")
	assert.Len(t, f.store.deletes, 1)

	victim := f.storedInvitation(t, other.ID)
	assert.Equal(t, otherPhoto, victim.GroomPhotoURL)
	assert.Equal(t, []string{otherGallery}, victim.Gallery())
}

func TestRemoveMediaUnknownSlot(t *testing.T) {
	f := newPanelFixture(t, &memoryStore{})

	resp := f.postForm(t, "/panel/settings/media/remove", url.Values{"slot": {"poster"}})
	assertRedirect(t, resp, "/panel/settings")
	assert.Empty(t, f.store.deletes)
}

func TestUpdateSettingsStoresUploadsAndReplacesPrevious(t *testing.T) {
	f := newPanelFixture(t, &memoryStore{})
	ctx := context.Background()

	oldPhoto := cdnBase + "couple-photos/" + f.user.ID + "/groom-1.jpg"
	oldGallery := cdnBase + "gallery-photos/" + f.user.ID + "/gallery-1.jpg"
	_, err := f.invitations.SaveSettings(ctx, f.user.ID, services.SettingsForm{"brideName": "Ani"}, services.UploadState{
		GroomPhotoURL: oldPhoto,
		GalleryPhotos: []string{oldGallery},
	})
	require.NoError(t, err)

	resp := f.postMultipart(t, "/panel/settings", map[string]string{"groomName": "Andi"},
		formFile{"groomPhoto", "andi.jpg", "image/jpeg", []byte("jpeg")},
		formFile{"galleryPhotos", "a.png", "image/png", []byte("png-a")},
		formFile{"galleryPhotos", "b.png", "image/png", []byte("png-b")},
	)
	assertRedirect(t, resp, "/panel/settings")
	require.Len(t, f.store.puts, 3)

	stored := f.storedInvitation(t, f.user.ID)
	assert.Equal(t, "Andi", stored.GroomName)
	assert.Equal(t, "Ani", stored.BrideName)
	assert.True(t, strings.HasPrefix(stored.GroomPhotoURL, cdnBase+"couple-photos/"+f.user.ID+"/groom-"))
	assert.NotEqual(t, oldPhoto, stored.GroomPhotoURL)

	gallery := stored.Gallery()
	require.Len(t, gallery, 3)
	assert.Equal(t, oldGallery, gallery[0])
	assert.NotEqual(t, gallery[1], gallery[2])

	assert.Equal(t, []string{"couple-photos/" + f.user.ID + "/groom-1.jpg"}, f.store.deletes)
}

func TestUpdateSettingsRejectsOversizedFileBeforeStoring(t *testing.T) {
	f := newPanelFixture(t, &memoryStore{})
	big := bytes.Repeat([]byte("x"), int(services.MaxImageSize)+1)

	resp := f.postMultipart(t, "/panel/settings", map[string]string{"groomName": "Andi"},
		formFile{"bridePhoto", "besar.jpg", "image/jpeg", big},
	)
	assertRedirect(t, resp, "/panel/settings")
	assert.Empty(t, f.store.puts)
	assert.NotEqual(t, "Andi", f.storedInvitation(t, f.user.ID).GroomName)

	resp = f.postMultipart(t, "/panel/settings", nil,
		formFile{"music", "lagu.jpg", "image/jpeg", []byte("jpeg")},
	)
	assertRedirect(t, resp, "/panel/settings")
	assert.Empty(t, f.store.puts)
}

func TestUpdateSettingsWithoutStorage(t *testing.T) {
	f := newPanelFixture(t, nil)

	resp := f.postMultipart(t, "/panel/settings", map[string]string{"groomName": "Andi"},
		formFile{"groomPhoto", "andi.jpg", "image/jpeg", []byte("jpeg")},
	)
	assertRedirect(t, resp, "/panel/settings")
	assert.NotEqual(t, "Andi", f.storedInvitation(t, f.user.ID).GroomName)

	resp = f.postMultipart(t, "/panel/settings", map[string]string{"groomName": "Andi"})
	assertRedirect(t, resp, "/panel/settings")
	assert.Equal(t, "Andi", f.storedInvitation(t, f.user.ID).GroomName)
}

func TestGuestFormsRedirectBackToList(t *testing.T) {
	f := newPanelFixture(t, nil)
	ctx := context.Background()
	inv := f.storedInvitation(t, f.user.ID)

	resp := f.postForm(t, "/panel/guests/create", url.Values{"name": {"Budi"}, "phone": {"0812-1111-2222"}})
	assertRedirect(t, resp, "/panel/guests")
	resp = f.postForm(t, "/panel/guests/create", url.Values{"name": {""}})
	assertRedirect(t, resp, "/panel/guests")

	guests, err := f.guests.ListGuests(ctx, inv.ID)
	require.NoError(t, err)
	require.Len(t, guests, 1)
	budi := guests[0]

	resp = f.postForm(t, "/panel/guests/status/"+budi.ID, url.Values{"status": {"confirmed"}})
	assertRedirect(t, resp, "/panel/guests")
	stored, err := f.guests.GetGuest(ctx, inv.ID, budi.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GuestStatusConfirmed, stored.Status)

	resp = f.postForm(t, "/panel/guests/status/"+budi.ID, url.Values{"status": {"lost"}})
	assertRedirect(t, resp, "/panel/guests")
	stored, err = f.guests.GetGuest(ctx, inv.ID, budi.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GuestStatusConfirmed, stored.Status)

	resp = f.postForm(t, "/panel/guests/send/"+budi.ID, nil)
	assertRedirect(t, resp, "/panel/guests")

	resp = f.postForm(t, "/panel/guests/delete/"+budi.ID, nil)
	assertRedirect(t, resp, "/panel/guests")
	guests, err = f.guests.ListGuests(ctx, inv.ID)
	require.NoError(t, err)
	assert.Empty(t, guests)
}

func TestShareGuestIsPostOnly(t *testing.T) {
	f := newPanelFixture(t, nil)
	ctx := context.Background()
	inv := f.storedInvitation(t, f.user.ID)
	siti, err := f.guests.AddGuest(ctx, inv.ID, services.GuestInput{Name: "Siti", Phone: "0812-3333-4444"})
	require.NoError(t, err)
	tanpaNomor, err := f.guests.AddGuest(ctx, inv.ID, services.GuestInput{Name: "Rudi"})
	require.NoError(t, err)

	resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/panel/guests/share/"+siti.ID, nil))
	require.NoError(t, err)
	resp.Body.Close()
	assert.NotEqual(t, fiber.StatusSeeOther, resp.StatusCode)
	stored, err := f.guests.GetGuest(ctx, inv.ID, siti.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GuestStatusPending, stored.Status)

	resp = f.postForm(t, "/panel/guests/share/"+siti.ID, nil)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get(fiber.HeaderLocation), "https://wa.me/6281233334444?text="))
	stored, err = f.guests.GetGuest(ctx, inv.ID, siti.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GuestStatusSent, stored.Status)

	resp = f.postForm(t, "/panel/guests/share/"+tanpaNomor.ID, nil)
	assertRedirect(t, resp, "/panel/guests")
}

func TestListGuestsRendersShareForm(t *testing.T) {
	f := newPanelFixture(t, nil)
	inv := f.storedInvitation(t, f.user.ID)
	siti, err := f.guests.AddGuest(context.Background(), inv.ID, services.GuestInput{Name: "Siti", Phone: "0812-3333-4444"})
	require.NoError(t, err)

	resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/panel/guests", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	page, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(page), `<form method="POST" action="/panel/guests/share/`+siti.ID+`"`)
}
