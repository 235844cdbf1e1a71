package messaging

import (
	"context"
	"fmt"
	"time"

	deliveryRepo "clinicdesk/database/repository/delivery"
	"clinicdesk/models"

	"go.uber.org/zap"
)

// Gateway is the server side of the send function. It renders the body,
// hands it to the WhatsApp provider and audits every attempt. Without a
// provider it runs in demo mode and only records the message.
type Gateway struct {
	client     WhatsAppClient
	from       string
	formatter  *Formatter
	deliveries deliveryRepo.DeliveryRepository
	logger     *zap.Logger
	now        func() time.Time
}

// NewGateway builds a Gateway. A nil client selects demo mode.
func NewGateway(client WhatsAppClient, from string, formatter *Formatter, deliveries deliveryRepo.DeliveryRepository, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{
		client:     client,
		from:       from,
		formatter:  formatter,
		deliveries: deliveries,
		logger:     logger,
		now:        time.Now,
	}
}

// Demo reports whether the gateway only records messages.
func (g *Gateway) Demo() bool {
	return g.client == nil || g.from == ""
}

func (g *Gateway) Send(ctx context.Context, req SendRequest) (*Ack, error) {
	rec := models.DeliveryRecord{
		Channel:       "whatsapp",
		Kind:          string(req.Kind),
		Intent:        string(req.Intent),
		RecipientRole: string(req.Role),
		Recipient:     req.PhoneNumber,
		AppointmentID: req.Record.ID,
	}

	if req.PhoneNumber == "" {
		err := fmt.Errorf("Gateway.Send: phone number is required")
		g.audit(ctx, rec, models.DeliveryFailed, err)
		return nil, err
	}
	if !req.Role.Valid() {
		err := fmt.Errorf("Gateway.Send: %w: %q", ErrUnknownRole, req.Role)
		g.audit(ctx, rec, models.DeliveryFailed, err)
		return nil, err
	}
	body, err := g.formatter.Format(req.Kind, req.Role, req.Intent, req.Record)
	if err != nil {
		err = fmt.Errorf("Gateway.Send: %w", err)
		g.audit(ctx, rec, models.DeliveryFailed, err)
		return nil, err
	}
	rec.Message = body

	if g.Demo() {
		g.logger.Info("WhatsApp demo mode, message not sent",
			zap.String("recipient", req.PhoneNumber),
			zap.String("role", string(req.Role)),
			zap.String("message", body))
		g.audit(ctx, rec, models.DeliveryDemo, nil)
		return &Ack{
			Success:   true,
			Demo:      true,
			Message:   fmt.Sprintf("Demo WhatsApp notification logged for %s", req.Role),
			Recipient: req.PhoneNumber,
		}, nil
	}

	sid, err := g.client.SendWhatsApp(ctx, g.from, req.PhoneNumber, body)
	if err != nil {
		err = fmt.Errorf("Gateway.Send: %w", err)
		g.logger.Error("WhatsApp send failed",
			zap.String("recipient", req.PhoneNumber),
			zap.String("role", string(req.Role)),
			zap.Error(err))
		g.audit(ctx, rec, models.DeliveryFailed, err)
		return nil, err
	}

	rec.ProviderSID = sid
	g.audit(ctx, rec, models.DeliverySent, nil)
	return &Ack{
		Success:   true,
		Message:   fmt.Sprintf("WhatsApp notification sent to %s", req.Role),
		Recipient: req.PhoneNumber,
		SID:       sid,
	}, nil
}

func (g *Gateway) audit(ctx context.Context, rec models.DeliveryRecord, status models.DeliveryStatus, cause error) {
	if g.deliveries == nil {
		return
	}
	rec.Status = status
	rec.CreatedAt = g.now()
	if cause != nil {
		rec.Error = cause.Error()
	}
	if _, err := g.deliveries.Create(context.WithoutCancel(ctx), rec); err != nil {
		g.logger.Warn("failed to record WhatsApp delivery", zap.String("status", string(status)), zap.Error(err))
	}
}
