package services_test

import (
	"context"
	"errors"
	"testing"

	"undangan.link/models"
	"undangan.link/pkg/testdb"
	"undangan.link/repositories"
	"undangan.link/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	to   []string
	body []string
	err  error
}

func (f *fakeSender) Send(_ context.Context, to, body string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.to = append(f.to, to)
	f.body = append(f.body, body)
	return "SM123", nil
}

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"0812-3456-789":   "628123456789",
		"+62 812 3456789": "628123456789",
		"8123456789":      "628123456789",
		"628123456789":    "628123456789",
		"":                "",
		"abc":             "",
	}
	for in, want := range cases {
		assert.Equal(t, want, services.NormalizePhone(in), in)
	}
}

func TestInvitationLinkAndShareURL(t *testing.T) {
	link := services.InvitationLink("https://undangan.link/", "inv-1", "Pak Budi & Keluarga")
	assert.Equal(t, "https://undangan.link/invitation/inv-1?to=Pak+Budi+%26+Keluarga", link)
	assert.Equal(t, "https://undangan.link/invitation/inv-1", services.InvitationLink("https://undangan.link", "inv-1", ""))

	share := services.WhatsAppShareURL("0812", "Halo Budi")
	assert.Equal(t, "https://wa.me/62812?text=Halo%20Budi", share)
}

func newDispatchFixture(t *testing.T, sender *fakeSender) (*services.DispatchService, services.IGuestService, string) {
	t.Helper()
	db := testdb.Open(t)
	user := testdb.CreateUser(t, db, "couple@example.com")
	inv := testdb.CreateInvitation(t, db, user.ID)
	guests := services.NewGuestServiceWithRepo(repositories.NewGuestRepositoryTx(db))
	if sender == nil {
		return services.NewDispatchService(guests, nil, "https://undangan.link"), guests, inv.ID
	}
	return services.NewDispatchService(guests, sender, "https://undangan.link"), guests, inv.ID
}

func TestShareURLMarksPendingGuestSent(t *testing.T) {
	dispatch, guests, invID := newDispatchFixture(t, nil)
	ctx := context.Background()
	assert.False(t, dispatch.Enabled())

	budi, err := guests.AddGuest(ctx, invID, services.GuestInput{Name: "Budi", Phone: "0812 1111 2222"})
	require.NoError(t, err)

	share, err := dispatch.ShareURL(ctx, invID, budi.ID)
	require.NoError(t, err)
	assert.Contains(t, share, "https://wa.me/6281211112222?text=")
	assert.Contains(t, share, "Budi")

	stored, err := guests.GetGuest(ctx, invID, budi.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GuestStatusSent, stored.Status)

	nophone, err := guests.AddGuest(ctx, invID, services.GuestInput{Name: "Tanpa Nomor"})
	require.NoError(t, err)
	_, err = dispatch.ShareURL(ctx, invID, nophone.ID)
	assert.ErrorIs(t, err, services.ErrGuestPhoneMissing)

	_, err = dispatch.SendInvitation(ctx, invID, budi.ID)
	assert.ErrorIs(t, err, services.ErrMessagingDisabled)
}

func TestSendInvitationThroughSender(t *testing.T) {
	sender := &fakeSender{}
	dispatch, guests, invID := newDispatchFixture(t, sender)
	ctx := context.Background()

	ani, err := guests.AddGuest(ctx, invID, services.GuestInput{Name: "Ani", Phone: "081299998888"})
	require.NoError(t, err)
	require.NoError(t, guests.UpdateGuestStatus(ctx, invID, ani.ID, models.GuestStatusConfirmed))

	sent, err := dispatch.SendInvitation(ctx, invID, ani.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"+6281299998888"}, sender.to)
	assert.Contains(t, sender.body[0], "https://undangan.link/invitation/"+invID+"?to=Ani")
	assert.Equal(t, models.GuestStatusConfirmed, sent.Status)

	sender.err = errors.New("twilio down")
	_, err = dispatch.SendInvitation(ctx, invID, ani.ID)
	assert.ErrorIs(t, err, services.ErrDispatchFailed)
}
