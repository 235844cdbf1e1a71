package messaging

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// WhatsAppClient is the provider behind Gateway.
type WhatsAppClient interface {
	SendWhatsApp(ctx context.Context, from, to, body string) (sid string, err error)
}

// TwilioClient sends WhatsApp messages through the Twilio REST API.
type TwilioClient struct {
	rest *twilio.RestClient
}

func NewTwilioClient(accountSID, authToken string) *TwilioClient {
	return &TwilioClient{
		rest: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
	}
}

func (c *TwilioClient) SendWhatsApp(_ context.Context, from, to, body string) (string, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom("whatsapp:" + from)
	params.SetTo("whatsapp:" + to)
	params.SetBody(body)

	resp, err := c.rest.Api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("twilio: create message: %w", err)
	}
	if resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}
