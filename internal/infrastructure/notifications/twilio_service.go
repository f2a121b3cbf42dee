package notifications

import (
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioService delivers verification codes by SMS.
type TwilioService struct {
	client       *twilio.RestClient
	fromNumber   string
	validMinutes int
}

// NewTwilioService creates a Twilio-backed SMS transport.
func NewTwilioService(accountSID, authToken, fromNumber string, validMinutes int) *TwilioService {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioService{
		client:       client,
		fromNumber:   fromNumber,
		validMinutes: validMinutes,
	}
}

func (t *TwilioService) deliver(to, code string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.fromNumber)
	params.SetBody(fmt.Sprintf("Your verification code is: %s. Valid for %d minutes.", code, t.validMinutes))

	if _, err := t.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	return nil
}
