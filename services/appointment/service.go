package appointment

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	appointmentRepo "clinicdesk/database/repository/appointment"
	"clinicdesk/models"
	"clinicdesk/services/messaging"

	"go.uber.org/zap"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotFound          = appointmentRepo.ErrNotFound
)

// allowedTransitions lists the admin status moves. Completed and Canceled are final.
var allowedTransitions = map[models.AppointmentStatus][]models.AppointmentStatus{
	models.StatusPending:   {models.StatusConfirmed, models.StatusCanceled},
	models.StatusConfirmed: {models.StatusCompleted, models.StatusCanceled},
}

// CanTransition reports whether an admin may move an appointment from one status to another.
func CanTransition(from, to models.AppointmentStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AppointmentService is the booking flow plus the admin operations.
type AppointmentService interface {
	Book(ctx context.Context, req models.AppointmentRequest) (*models.Appointment, error)
	SubmitContact(ctx context.Context, msg models.ContactMessage) (*models.Appointment, error)
	CreateByStaff(ctx context.Context, req models.AppointmentRequest) (*models.Appointment, error)
	List(ctx context.Context, filter appointmentRepo.Filter) ([]models.Appointment, error)
	Get(ctx context.Context, id string) (*models.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus) (*models.Appointment, error)
	UpdateNotes(ctx context.Context, id, notes string) (*models.Appointment, error)
	Delete(ctx context.Context, id string) error
	SendMessage(ctx context.Context, id string, intent messaging.Intent) error
	ScheduleMessage(ctx context.Context, id string, intent messaging.Intent, at time.Time) error
}

// DefaultAppointmentService persists through Repo and hands messaging to
// Publisher. The outcome of a submission depends only on the store write.
type DefaultAppointmentService struct {
	Repo      appointmentRepo.AppointmentRepository
	Publisher messaging.Publisher
	Logger    *zap.Logger
	now       func() time.Time
}

func NewDefaultAppointmentService(repo appointmentRepo.AppointmentRepository, publisher messaging.Publisher, logger *zap.Logger) *DefaultAppointmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultAppointmentService{Repo: repo, Publisher: publisher, Logger: logger, now: time.Now}
}

func (s *DefaultAppointmentService) Book(ctx context.Context, req models.AppointmentRequest) (*models.Appointment, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	appt, err := s.create(ctx, req.ToAppointment(models.SourceBooking))
	if err != nil {
		return nil, fmt.Errorf("Book: %w", err)
	}
	s.publish(ctx, messaging.Event{Kind: messaging.KindAppointment, Intent: messaging.IntentNew, NotifyUser: true, Record: *appt})
	return appt, nil
}

func (s *DefaultAppointmentService) SubmitContact(ctx context.Context, msg models.ContactMessage) (*models.Appointment, error) {
	if err := validateContact(msg); err != nil {
		return nil, err
	}
	appt, err := s.create(ctx, msg.ToAppointment())
	if err != nil {
		return nil, fmt.Errorf("SubmitContact: %w", err)
	}
	s.publish(ctx, messaging.Event{Kind: messaging.KindContact, Intent: messaging.IntentNew, NotifyUser: true, Record: *appt})
	return appt, nil
}

// CreateByStaff inserts an appointment taken over the phone or at the desk.
// No message is sent.
func (s *DefaultAppointmentService) CreateByStaff(ctx context.Context, req models.AppointmentRequest) (*models.Appointment, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	appt, err := s.create(ctx, req.ToAppointment(models.SourceStaff))
	if err != nil {
		return nil, fmt.Errorf("CreateByStaff: %w", err)
	}
	return appt, nil
}

func (s *DefaultAppointmentService) List(ctx context.Context, filter appointmentRepo.Filter) ([]models.Appointment, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, filter.Status)
	}
	appts, err := s.Repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return appts, nil
}

func (s *DefaultAppointmentService) Get(ctx context.Context, id string) (*models.Appointment, error) {
	appt, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return appt, nil
}

func (s *DefaultAppointmentService) UpdateStatus(ctx context.Context, id string, status models.AppointmentStatus) (*models.Appointment, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	current, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("UpdateStatus: %w", err)
	}
	if !CanTransition(current.Status, status) {
		return nil, fmt.Errorf("UpdateStatus: %w: %s to %s", ErrInvalidTransition, current.Status, status)
	}
	patch := models.AppointmentPatch{Status: &status}
	if err := s.Repo.Update(ctx, id, patch.Fields()); err != nil {
		return nil, fmt.Errorf("UpdateStatus: %w", err)
	}
	current.Status = status
	current.UpdatedAt = s.now()
	s.Logger.Info("appointment status changed", zap.String("appointmentId", id), zap.String("status", string(status)))
	return current, nil
}

func (s *DefaultAppointmentService) UpdateNotes(ctx context.Context, id, notes string) (*models.Appointment, error) {
	current, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("UpdateNotes: %w", err)
	}
	patch := models.AppointmentPatch{AdminNotes: &notes}
	if err := s.Repo.Update(ctx, id, patch.Fields()); err != nil {
		return nil, fmt.Errorf("UpdateNotes: %w", err)
	}
	current.AdminNotes = notes
	current.UpdatedAt = s.now()
	return current, nil
}

func (s *DefaultAppointmentService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	s.Logger.Info("appointment deleted", zap.String("appointmentId", id))
	return nil
}

// SendMessage queues an admin-triggered message to the patient now.
func (s *DefaultAppointmentService) SendMessage(ctx context.Context, id string, intent messaging.Intent) error {
	ev, err := s.messageEvent(ctx, id, intent)
	if err != nil {
		return fmt.Errorf("SendMessage: %w", err)
	}
	if err := s.Publisher.Publish(ctx, ev); err != nil {
		return fmt.Errorf("SendMessage: %w", err)
	}
	return nil
}

// ScheduleMessage queues an admin-triggered message for later delivery. The
// record is captured as it is now.
func (s *DefaultAppointmentService) ScheduleMessage(ctx context.Context, id string, intent messaging.Intent, at time.Time) error {
	if !at.After(s.now()) {
		return fmt.Errorf("%w: send time must be in the future", ErrValidation)
	}
	ev, err := s.messageEvent(ctx, id, intent)
	if err != nil {
		return fmt.Errorf("ScheduleMessage: %w", err)
	}
	if err := s.Publisher.PublishAt(ctx, ev, at); err != nil {
		return fmt.Errorf("ScheduleMessage: %w", err)
	}
	s.Logger.Info("message scheduled",
		zap.String("appointmentId", id),
		zap.String("intent", string(intent)),
		zap.Time("at", at))
	return nil
}

func (s *DefaultAppointmentService) messageEvent(ctx context.Context, id string, intent messaging.Intent) (messaging.Event, error) {
	if !intent.Valid() {
		return messaging.Event{}, fmt.Errorf("%w: %w", ErrValidation, messaging.ErrUnknownIntent)
	}
	appt, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return messaging.Event{}, err
	}
	if strings.TrimSpace(appt.Phone) == "" {
		return messaging.Event{}, fmt.Errorf("%w: appointment %s has no phone number", ErrValidation, id)
	}
	return messaging.Event{Kind: messaging.KindFor(*appt), Intent: intent, NotifyUser: true, Record: *appt}, nil
}

func (s *DefaultAppointmentService) create(ctx context.Context, appt models.Appointment) (*models.Appointment, error) {
	id, err := s.Repo.Create(ctx, appt)
	if err != nil {
		return nil, err
	}
	appt.ID = id
	// Firestore assigns the timestamps server side; mirror them locally for the message.
	now := s.now()
	if appt.CreatedAt.IsZero() {
		appt.CreatedAt = now
	}
	if appt.UpdatedAt.IsZero() {
		appt.UpdatedAt = now
	}
	return &appt, nil
}

// publish never fails the caller: the record is already durable.
func (s *DefaultAppointmentService) publish(ctx context.Context, ev messaging.Event) {
	if s.Publisher == nil {
		return
	}
	if err := s.Publisher.Publish(ctx, ev); err != nil {
		s.Logger.Error("failed to publish messaging event",
			zap.String("appointmentId", ev.Record.ID),
			zap.String("kind", string(ev.Kind)),
			zap.Error(err))
	}
}

func validateRequest(req models.AppointmentRequest) error {
	if err := validateIdentity(req.Name, req.Email, req.Phone); err != nil {
		return err
	}
	if req.PreferredDate != "" {
		if _, err := models.ParsePreferredDate(req.PreferredDate); err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}
	if req.PreferredTime != "" && !models.IsTimeSlot(req.PreferredTime) {
		return fmt.Errorf("%w: preferred time %q is not an available slot", ErrValidation, req.PreferredTime)
	}
	return nil
}

func validateContact(msg models.ContactMessage) error {
	if err := validateIdentity(msg.Name, msg.Email, msg.Phone); err != nil {
		return err
	}
	if strings.TrimSpace(msg.Message) == "" {
		return fmt.Errorf("%w: message is required", ErrValidation)
	}
	return nil
}

func validateIdentity(name, email, phone string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: name is required", ErrValidation)
	case strings.TrimSpace(email) == "":
		return fmt.Errorf("%w: email is required", ErrValidation)
	case strings.TrimSpace(phone) == "":
		return fmt.Errorf("%w: phone is required", ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: email %q is invalid", ErrValidation, email)
	}
	return nil
}
