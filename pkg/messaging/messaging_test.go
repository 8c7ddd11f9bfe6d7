package messaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTwilioSenderRequiresConfig(t *testing.T) {
	_, err := NewTwilioSender(TwilioConfig{AccountSID: "AC1"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestAddressPrefixesWhatsApp(t *testing.T) {
	s, err := NewTwilioSender(TwilioConfig{AccountSID: "AC1", AuthToken: "t", From: "+14155238886", Channel: "WhatsApp"})
	require.NoError(t, err)
	assert.Equal(t, "whatsapp:+628123", s.address("+628123"))
	assert.Equal(t, "whatsapp:+628123", s.address("whatsapp:+628123"))

	s, err = NewTwilioSender(TwilioConfig{AccountSID: "AC1", AuthToken: "t", From: "+1", Channel: "sms"})
	require.NoError(t, err)
	assert.Equal(t, "+628123", s.address("+628123"))
}
