package messaging

import (
	"context"
	"errors"

	"clinicdesk/models"
)

// ErrUnavailable is returned by UnavailableSender.
var ErrUnavailable = errors.New("messaging function unavailable")

// SendRequest is one recipient leg handed to a Sender. The sender renders the
// body itself from Kind, Role, Intent and Record.
type SendRequest struct {
	Kind        Kind               `json:"kind"`
	Role        Role               `json:"recipientRole"`
	Intent      Intent             `json:"intent"`
	PhoneNumber string             `json:"phoneNumber"`
	Record      models.Appointment `json:"record"`
}

// Ack is the remote function's answer to a successful send.
type Ack struct {
	Success   bool   `json:"success"`
	Demo      bool   `json:"demo,omitempty"`
	Message   string `json:"message"`
	Recipient string `json:"recipient"`
	SID       string `json:"sid,omitempty"`
}

// Sender delivers one WhatsApp message.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (*Ack, error)
}

// UnavailableSender always fails; every leg goes to the fallback log.
type UnavailableSender struct{}

func (UnavailableSender) Send(context.Context, SendRequest) (*Ack, error) {
	return nil, ErrUnavailable
}
