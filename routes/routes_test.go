package routes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinicdesk/handlers"
	"clinicdesk/models"
	"clinicdesk/services/messaging"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type staticVerifier struct{}

func (staticVerifier) VerifyIDToken(_ context.Context, token string) (*auth.Token, error) {
	if token == "good" {
		return &auth.Token{UID: "admin", Claims: map[string]interface{}{"email": "admin@clinic.in"}}, nil
	}
	return nil, errors.New("invalid")
}

type nopSender struct{}

func (nopSender) Send(_ context.Context, req messaging.SendRequest) (*messaging.Ack, error) {
	return &messaging.Ack{Success: true, Recipient: req.PhoneNumber}, nil
}

type staticLive struct{}

func (staticLive) Appointments() []models.Appointment { return []models.Appointment{{ID: "a1"}} }
func (staticLive) Loading() bool                      { return false }

func newRouter() *gin.Engine {
	hb := &handlers.HandlerBundle{
		AdminVerifier:     staticVerifier{},
		AdminEmail:        "admin@clinic.in",
		MessagingSecret:   "s3cret",
		MaxRequestsPerMin: 1000,
		Appointments:      handlers.NewAppointmentHandler(nil, staticLive{}),
		Messaging:         handlers.NewMessagingHandler(nopSender{}),
	}
	r := gin.New()
	RegisterRoutes(r, hb)
	return r
}

func serve(r http.Handler, method, path string, headers map[string]string) int {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRoutes_PublicAndHealth(t *testing.T) {
	r := newRouter()
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/timeslots", nil))
}

func TestRoutes_AdminRequiresToken(t *testing.T) {
	r := newRouter()
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/api/admin/appointments", nil))
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/api/admin/appointments",
		map[string]string{"Authorization": "Bearer bad"}))
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/admin/appointments",
		map[string]string{"Authorization": "Bearer good"}))
}

func TestRoutes_MessagingRequiresSecret(t *testing.T) {
	r := newRouter()
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodPost, "/api/messaging/send", nil))
	// Secret accepted; the empty body is then rejected by the handler.
	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodPost, "/api/messaging/send",
		map[string]string{messaging.SecretHeader: "s3cret"}))
}
