package notification

import (
	"context"
	"fmt"

	"clinicdesk/models"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// NotificationService raises the admin alert for a fresh appointment.
type NotificationService interface {
	NotifyNewAppointment(ctx context.Context, appt models.Appointment)
}

// PushSender is the part of the FCM client the service uses.
type PushSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// DefaultNotificationService publishes to the dashboard hub and, when a topic
// is configured, to admin devices through FCM. A failing channel is logged
// and does not affect the others.
type DefaultNotificationService struct {
	hub    *Hub
	push   PushSender
	topic  string
	logger *zap.Logger
}

func NewDefaultNotificationService(hub *Hub, push PushSender, topic string, logger *zap.Logger) (*DefaultNotificationService, error) {
	if hub == nil {
		return nil, fmt.Errorf("notification service initialization error: hub is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultNotificationService{hub: hub, push: push, topic: topic, logger: logger}, nil
}

func (s *DefaultNotificationService) NotifyNewAppointment(ctx context.Context, appt models.Appointment) {
	toast := NewAppointmentToast(appt)

	delivered := s.hub.Publish(toast)
	s.logger.Info("new appointment toast raised",
		zap.String("appointmentId", appt.ID),
		zap.String("toast", toast.String()),
		zap.Int("dashboards", delivered))

	if s.push == nil || s.topic == "" {
		return
	}
	if err := s.sendTopicPush(ctx, toast); err != nil {
		s.logger.Warn("admin push failed", zap.String("appointmentId", appt.ID), zap.Error(err))
	}
}

func (s *DefaultNotificationService) sendTopicPush(ctx context.Context, toast Toast) error {
	msg := &messaging.Message{
		Topic: s.topic,
		Notification: &messaging.Notification{
			Title: toast.Title,
			Body:  toast.Description,
		},
		Data: map[string]string{
			"type":          "new_appointment",
			"appointmentId": toast.AppointmentID,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	}
	if _, err := s.push.Send(ctx, msg); err != nil {
		return fmt.Errorf("sendTopicPush: failed to send FCM message: %w", err)
	}
	return nil
}
