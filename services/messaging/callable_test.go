package messaging

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallableSender_Success(t *testing.T) {
	var got CallableEnvelope
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "s3cret", r.Header.Get(SecretHeader))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(CallableResponse{Result: &Ack{
			Success: true, Demo: true, Message: "Demo WhatsApp notification logged for admin", Recipient: got.Data.PhoneNumber,
		}})
	}))
	defer srv.Close()

	ack, err := NewCallableSender(srv.URL, "s3cret").Send(context.Background(), SendRequest{
		Kind: KindAppointment, Role: RoleAdmin, Intent: IntentNew, PhoneNumber: adminPhone, Record: aarti(),
	})

	require.NoError(t, err)
	assert.True(t, ack.Demo)
	assert.Equal(t, adminPhone, ack.Recipient)
	assert.Equal(t, RoleAdmin, got.Data.Role)
	assert.Equal(t, "Aarti S", got.Data.Record.Name)
}

func TestCallableSender_ErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(CallableResponse{Error: &CallableError{
			Status: "INTERNAL", Message: "Failed to send WhatsApp notification",
		}})
	}))
	defer srv.Close()

	_, err := NewCallableSender(srv.URL, "").Send(context.Background(), SendRequest{Role: RoleAdmin})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "INTERNAL")
}

func TestCallableSender_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewCallableSender(url, "").Send(context.Background(), SendRequest{Role: RoleAdmin})
	assert.Error(t, err)
}
