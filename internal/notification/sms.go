package notification

import (
	"context"
	"fmt"

	"salon-booking/pkg/utils"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type TwilioSMS struct {
	client *twilio.RestClient
	from   string
}

// NewSMSSender returns nil when Twilio is not configured, which disables SMS.
func NewSMSSender(config utils.SMSConfig) SMSSender {
	if config.AccountSID == "" || config.AuthToken == "" || config.From == "" {
		return nil
	}
	return &TwilioSMS{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: config.AccountSID,
			Password: config.AuthToken,
		}),
		from: config.From,
	}
}

func (s *TwilioSMS) SendSMS(ctx context.Context, to, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("send sms to %s: %w", to, err)
	}
	return nil
}
