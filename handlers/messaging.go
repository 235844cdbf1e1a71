package handlers

import (
	"errors"
	"net/http"
	"strings"

	"clinicdesk/services/messaging"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Callable protocol status codes.
const (
	callableInvalidArgument = "INVALID_ARGUMENT"
	callableInternal        = "INTERNAL"
)

// MessagingHandler exposes a Sender over the callable protocol so a
// CallableSender in another process can reach it.
type MessagingHandler struct {
	Sender messaging.Sender
}

func NewMessagingHandler(sender messaging.Sender) *MessagingHandler {
	return &MessagingHandler{Sender: sender}
}

// SendHandler handles POST /api/messaging/send.
func (h *MessagingHandler) SendHandler(c *gin.Context) {
	var env messaging.CallableEnvelope
	if err := c.ShouldBindJSON(&env); err != nil {
		callableError(c, http.StatusBadRequest, callableInvalidArgument, "invalid request body")
		return
	}

	req, err := normalizeSendRequest(env.Data)
	if err != nil {
		callableError(c, http.StatusBadRequest, callableInvalidArgument, err.Error())
		return
	}

	ack, err := h.Sender.Send(c.Request.Context(), req)
	if err != nil {
		getLogger(c).Error("SendHandler: send failed",
			zap.String("recipient", req.PhoneNumber),
			zap.String("role", string(req.Role)),
			zap.Error(err))
		callableError(c, http.StatusInternalServerError, callableInternal, "Failed to send WhatsApp message")
		return
	}
	c.JSON(http.StatusOK, messaging.CallableResponse{Result: ack})
}

// normalizeSendRequest checks the required fields. An empty intent means a new submission.
func normalizeSendRequest(req messaging.SendRequest) (messaging.SendRequest, error) {
	kind, err := messaging.ParseKind(string(req.Kind))
	if err != nil {
		return req, err
	}
	role, err := messaging.ParseRole(string(req.Role))
	if err != nil {
		return req, err
	}
	intent, err := messaging.ParseIntent(string(req.Intent))
	if err != nil {
		return req, err
	}
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	if req.PhoneNumber == "" {
		return req, errMissingPhone
	}
	req.Kind, req.Role, req.Intent = kind, role, intent
	return req, nil
}

var errMissingPhone = errors.New("phoneNumber is required")

func callableError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, messaging.CallableResponse{
		Error: &messaging.CallableError{Status: code, Message: message},
	})
}
