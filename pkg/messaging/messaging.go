// Package messaging delivers guest invitations over Twilio.
package messaging

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// ErrNotConfigured is returned by NewTwilioSender when credentials are missing.
var ErrNotConfigured = errors.New("messaging: twilio not configured")

// Sender sends a text message to a phone number.
type Sender interface {
	Send(ctx context.Context, to, body string) (string, error)
}

// TwilioConfig holds account credentials and the sending number.
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	From       string
	// Channel is "sms" or "whatsapp".
	Channel string
}

// TwilioSender implements Sender.
type TwilioSender struct {
	client  *twilio.RestClient
	from    string
	channel string
}

// NewTwilioSender builds the REST client.
func NewTwilioSender(cfg TwilioConfig) (*TwilioSender, error) {
	if cfg.AccountSID == "" || cfg.AuthToken == "" || cfg.From == "" {
		return nil, ErrNotConfigured
	}
	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.AccountSID,
			Password: cfg.AuthToken,
		}),
		from:    cfg.From,
		channel: strings.ToLower(cfg.Channel),
	}, nil
}

// Send delivers body to an E.164 number and returns the message SID.
func (s *TwilioSender) Send(ctx context.Context, to, body string) (string, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(s.address(to))
	params.SetFrom(s.address(s.from))
	params.SetBody(body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("twilio create message: %w", err)
	}
	if resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}

func (s *TwilioSender) address(number string) string {
	if s.channel == "whatsapp" && !strings.HasPrefix(number, "whatsapp:") {
		return "whatsapp:" + number
	}
	return number
}

var _ Sender = (*TwilioSender)(nil)
