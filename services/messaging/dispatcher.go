package messaging

import (
	"context"
	"strings"
	"time"

	deliveryRepo "clinicdesk/database/repository/delivery"
	"clinicdesk/models"

	"go.uber.org/zap"
)

// Dispatcher sends the admin leg and, on request, the user leg of a
// notification. A failed leg is recovered by writing the intended message to
// the fallback log; it never fails the caller.
type Dispatcher struct {
	sender      Sender
	formatter   *Formatter
	adminPhone  string
	countryCode string
	deliveries  deliveryRepo.DeliveryRepository
	logger      *zap.Logger
	now         func() time.Time
}

type DispatcherConfig struct {
	AdminPhone  string
	CountryCode string
}

// NewDispatcher builds a Dispatcher. deliveries may be nil, in which case the
// fallback log is the zap logger alone.
func NewDispatcher(sender Sender, formatter *Formatter, cfg DispatcherConfig, deliveries deliveryRepo.DeliveryRepository, logger *zap.Logger) *Dispatcher {
	if sender == nil {
		sender = UnavailableSender{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		sender:      sender,
		formatter:   formatter,
		adminPhone:  cfg.AdminPhone,
		countryCode: cfg.CountryCode,
		deliveries:  deliveries,
		logger:      logger,
		now:         time.Now,
	}
}

// Dispatch runs both legs. The admin number is used as configured; only the
// user number is normalized.
func (d *Dispatcher) Dispatch(ctx context.Context, kind Kind, rec models.Appointment, intent Intent, notifyUser bool) Result {
	res := Result{Success: true}
	res.Admin = d.leg(ctx, kind, RoleAdmin, intent, d.adminPhone, rec)

	if notifyUser && strings.TrimSpace(rec.Phone) != "" {
		if phone := NormalizePhone(rec.Phone, d.countryCode); phone != "" {
			user := d.leg(ctx, kind, RoleUser, intent, phone, rec)
			res.User = &user
		}
	}
	return res
}

// HandleEvent dispatches a published Event.
func (d *Dispatcher) HandleEvent(ctx context.Context, ev Event) Result {
	return d.Dispatch(ctx, ev.Kind, ev.Record, ev.Intent, ev.NotifyUser)
}

func (d *Dispatcher) leg(ctx context.Context, kind Kind, role Role, intent Intent, phone string, rec models.Appointment) LegResult {
	out := LegResult{Role: role, Recipient: phone}

	message, err := d.formatter.Format(kind, role, intent, rec)
	if err != nil {
		return d.fallback(ctx, out, kind, intent, rec.ID, err)
	}
	out.Message = message

	ack, err := d.sender.Send(ctx, SendRequest{
		Kind:        kind,
		Role:        role,
		Intent:      intent,
		PhoneNumber: phone,
		Record:      rec,
	})
	if err != nil {
		return d.fallback(ctx, out, kind, intent, rec.ID, err)
	}

	out.Status = models.DeliverySent
	if ack != nil && ack.Demo {
		out.Status = models.DeliveryDemo
	}
	d.logger.Info("WhatsApp notification dispatched",
		zap.String("role", string(role)),
		zap.String("recipient", phone),
		zap.String("status", string(out.Status)))
	return out
}

func (d *Dispatcher) fallback(ctx context.Context, out LegResult, kind Kind, intent Intent, appointmentID string, cause error) LegResult {
	out.Status = models.DeliveryFallback
	out.Fallback = true

	d.logger.Warn("WhatsApp notification logged locally",
		zap.String("role", string(out.Role)),
		zap.String("recipient", out.Recipient),
		zap.String("kind", string(kind)),
		zap.String("message", out.Message),
		zap.Error(cause))

	if d.deliveries != nil {
		rec := models.DeliveryRecord{
			Channel:       "whatsapp",
			Kind:          string(kind),
			Intent:        string(intent),
			RecipientRole: string(out.Role),
			Recipient:     out.Recipient,
			Message:       out.Message,
			Status:        models.DeliveryFallback,
			Error:         cause.Error(),
			AppointmentID: appointmentID,
			CreatedAt:     d.now(),
		}
		if _, err := d.deliveries.Create(context.WithoutCancel(ctx), rec); err != nil {
			d.logger.Warn("failed to record fallback delivery", zap.Error(err))
		}
	}
	return out
}
