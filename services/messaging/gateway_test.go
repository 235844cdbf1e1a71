package messaging

import (
	"context"
	"testing"

	"clinicdesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func userRequest() SendRequest {
	return SendRequest{
		Kind:        KindAppointment,
		Role:        RoleUser,
		Intent:      IntentConfirmation,
		PhoneNumber: "+919876543210",
		Record:      aarti(),
	}
}

func TestGateway_DemoMode(t *testing.T) {
	deliveries := &memoryDeliveries{}
	g := NewGateway(nil, "", testFormatter(), deliveries, zap.NewNop())

	ack, err := g.Send(context.Background(), userRequest())

	require.NoError(t, err)
	assert.True(t, ack.Success)
	assert.True(t, ack.Demo)
	assert.Equal(t, "Demo WhatsApp notification logged for user", ack.Message)
	records, _ := deliveries.List(context.Background(), 0)
	require.Len(t, records, 1)
	assert.Equal(t, models.DeliveryDemo, records[0].Status)
	assert.Contains(t, records[0].Message, "Appointment Confirmed")
}

func TestGateway_SendsThroughProvider(t *testing.T) {
	deliveries := &memoryDeliveries{}
	client := &fakeWhatsApp{sid: "SM123"}
	g := NewGateway(client, "+14155238886", testFormatter(), deliveries, zap.NewNop())

	ack, err := g.Send(context.Background(), userRequest())

	require.NoError(t, err)
	assert.False(t, ack.Demo)
	assert.Equal(t, "SM123", ack.SID)
	assert.Equal(t, "WhatsApp notification sent to user", ack.Message)
	require.Len(t, client.sent, 1)
	assert.Contains(t, client.sent[0], "+14155238886->+919876543210:")

	records, _ := deliveries.List(context.Background(), 0)
	require.Len(t, records, 1)
	assert.Equal(t, models.DeliverySent, records[0].Status)
	assert.Equal(t, "SM123", records[0].ProviderSID)
}

func TestGateway_ProviderFailureIsAudited(t *testing.T) {
	deliveries := &memoryDeliveries{}
	g := NewGateway(&fakeWhatsApp{err: errRemoteDown}, "+14155238886", testFormatter(), deliveries, zap.NewNop())

	ack, err := g.Send(context.Background(), userRequest())

	assert.Nil(t, ack)
	assert.ErrorIs(t, err, errRemoteDown)
	records, _ := deliveries.List(context.Background(), 0)
	require.Len(t, records, 1)
	assert.Equal(t, models.DeliveryFailed, records[0].Status)
	assert.Contains(t, records[0].Error, "remote function unavailable")
}

func TestGateway_RejectsBadRequests(t *testing.T) {
	g := NewGateway(nil, "", testFormatter(), &memoryDeliveries{}, zap.NewNop())

	req := userRequest()
	req.PhoneNumber = ""
	_, err := g.Send(context.Background(), req)
	assert.Error(t, err)

	req = userRequest()
	req.Intent = "followup"
	_, err = g.Send(context.Background(), req)
	assert.ErrorIs(t, err, ErrUnknownIntent)

	req = userRequest()
	req.Role = "nurse"
	_, err = g.Send(context.Background(), req)
	assert.ErrorIs(t, err, ErrUnknownRole)
}
