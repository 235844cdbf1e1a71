package appointment

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	appointmentRepo "clinicdesk/database/repository/appointment"
	"clinicdesk/models"
	"clinicdesk/services/messaging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func aartiRequest() models.AppointmentRequest {
	return models.AppointmentRequest{
		Name:          "Aarti S",
		Email:         "a@x.com",
		Phone:         "9876543210",
		PreferredDate: "2025-03-10",
		PreferredTime: "10:00 AM",
	}
}

func newTestService() (*DefaultAppointmentService, *memoryRepo, *recordingPublisher) {
	repo := newMemoryRepo()
	pub := &recordingPublisher{}
	svc := NewDefaultAppointmentService(repo, pub, zap.NewNop())
	return svc, repo, pub
}

func TestBook_PersistsPendingAndPublishes(t *testing.T) {
	svc, repo, pub := newTestService()

	appt, err := svc.Book(context.Background(), aartiRequest())

	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, appt.Status)
	assert.Equal(t, models.SourceBooking, appt.Source)
	assert.NotEmpty(t, appt.ID)

	stored, _ := repo.List(context.Background(), appointmentRepo.Filter{})
	require.Len(t, stored, 1)
	assert.Equal(t, models.StatusPending, stored[0].Status)

	events := pub.published()
	require.Len(t, events, 1)
	assert.Equal(t, messaging.KindAppointment, events[0].Event.Kind)
	assert.Equal(t, messaging.IntentNew, events[0].Event.Intent)
	assert.True(t, events[0].Event.NotifyUser)
	assert.Equal(t, appt.ID, events[0].Event.Record.ID)
}

func TestBook_StoreFailureIsReturnedAndNothingPublished(t *testing.T) {
	svc, repo, pub := newTestService()
	repo.createErr = errStoreDown

	_, err := svc.Book(context.Background(), aartiRequest())

	assert.ErrorIs(t, err, errStoreDown)
	assert.Empty(t, pub.published())
}

func TestBook_PublishFailureDoesNotFailBooking(t *testing.T) {
	svc, repo, pub := newTestService()
	pub.err = errors.New("queue down")

	appt, err := svc.Book(context.Background(), aartiRequest())

	require.NoError(t, err)
	got, err := repo.GetByID(context.Background(), appt.ID)
	require.NoError(t, err)
	assert.Equal(t, "Aarti S", got.Name)
}

func TestBook_Validation(t *testing.T) {
	cases := map[string]func(*models.AppointmentRequest){
		"missing name":  func(r *models.AppointmentRequest) { r.Name = " " },
		"missing phone": func(r *models.AppointmentRequest) { r.Phone = "" },
		"bad email":     func(r *models.AppointmentRequest) { r.Email = "not-an-email" },
		"bad date":      func(r *models.AppointmentRequest) { r.PreferredDate = "10/03/2025" },
		"lunch slot":    func(r *models.AppointmentRequest) { r.PreferredTime = "01:00 PM" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			svc, repo, _ := newTestService()
			req := aartiRequest()
			mutate(&req)

			_, err := svc.Book(context.Background(), req)

			assert.ErrorIs(t, err, ErrValidation)
			stored, _ := repo.List(context.Background(), appointmentRepo.Filter{})
			assert.Empty(t, stored)
		})
	}
}

func TestSubmitContact_StoresExplicitFields(t *testing.T) {
	svc, repo, pub := newTestService()

	appt, err := svc.SubmitContact(context.Background(), models.ContactMessage{
		Name: "Ravi", Email: "r@x.com", Phone: "+91 90000 00000", Message: "Phone: trick\n\nMessage: still mine",
	})

	require.NoError(t, err)
	got, _ := repo.GetByID(context.Background(), appt.ID)
	assert.Equal(t, models.SourceContact, got.Source)
	assert.Equal(t, "+91 90000 00000", got.Phone)
	assert.Equal(t, "Phone: trick\n\nMessage: still mine", got.Message)

	events := pub.published()
	require.Len(t, events, 1)
	assert.Equal(t, messaging.KindContact, events[0].Event.Kind)
}

func TestSubmitContact_RequiresMessage(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.SubmitContact(context.Background(), models.ContactMessage{Name: "R", Email: "r@x.com", Phone: "1"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateByStaff_DoesNotPublish(t *testing.T) {
	svc, _, pub := newTestService()

	appt, err := svc.CreateByStaff(context.Background(), aartiRequest())

	require.NoError(t, err)
	assert.Equal(t, models.SourceStaff, appt.Source)
	assert.Equal(t, models.StatusPending, appt.Status)
	assert.Empty(t, pub.published())
}

func TestUpdateStatus_Transitions(t *testing.T) {
	cases := []struct {
		from, to models.AppointmentStatus
		ok       bool
	}{
		{models.StatusPending, models.StatusConfirmed, true},
		{models.StatusPending, models.StatusCanceled, true},
		{models.StatusConfirmed, models.StatusCompleted, true},
		{models.StatusConfirmed, models.StatusCanceled, true},
		{models.StatusPending, models.StatusCompleted, false},
		{models.StatusPending, models.StatusPending, false},
		{models.StatusCompleted, models.StatusPending, false},
		{models.StatusCanceled, models.StatusConfirmed, false},
	}
	for _, tc := range cases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			svc, repo, _ := newTestService()
			repo.put(models.Appointment{ID: "a", Name: "A", Status: tc.from})

			updated, err := svc.UpdateStatus(context.Background(), "a", tc.to)

			stored, _ := repo.GetByID(context.Background(), "a")
			if tc.ok {
				require.NoError(t, err)
				assert.Equal(t, tc.to, updated.Status)
				assert.Equal(t, tc.to, stored.Status)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition)
				assert.Equal(t, tc.from, stored.Status)
			}
		})
	}
}

func TestUpdateStatus_UnknownAndMissing(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.UpdateStatus(context.Background(), "a", "Archived")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateStatus(context.Background(), "missing", models.StatusConfirmed)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateNotesAndDelete(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.put(models.Appointment{ID: "a", Name: "A", Status: models.StatusPending})

	updated, err := svc.UpdateNotes(context.Background(), "a", "prefers mornings")
	require.NoError(t, err)
	assert.Equal(t, "prefers mornings", updated.AdminNotes)

	require.NoError(t, svc.Delete(context.Background(), "a"))
	assert.ErrorIs(t, svc.Delete(context.Background(), "a"), ErrNotFound)
	_, err = svc.Get(context.Background(), "a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_RejectsUnknownStatus(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.List(context.Background(), appointmentRepo.Filter{Status: "Lost"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSendMessage(t *testing.T) {
	svc, repo, pub := newTestService()
	repo.put(models.Appointment{ID: "a", Name: "Aarti S", Phone: "9876543210", Status: models.StatusConfirmed})
	repo.put(models.Appointment{ID: "nophone", Name: "X", Status: models.StatusPending})

	require.NoError(t, svc.SendMessage(context.Background(), "a", messaging.IntentCancellation))
	events := pub.published()
	require.Len(t, events, 1)
	assert.Equal(t, messaging.IntentCancellation, events[0].Event.Intent)
	assert.True(t, events[0].At.IsZero())

	assert.ErrorIs(t, svc.SendMessage(context.Background(), "nophone", messaging.IntentReminder), ErrValidation)
	assert.ErrorIs(t, svc.SendMessage(context.Background(), "a", messaging.Intent("followup")), ErrValidation)
	assert.ErrorIs(t, svc.SendMessage(context.Background(), "missing", messaging.IntentReminder), ErrNotFound)
}

func TestScheduleMessage(t *testing.T) {
	svc, repo, pub := newTestService()
	now := time.Date(2025, 3, 9, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	repo.put(models.Appointment{ID: "a", Name: "Aarti S", Phone: "9876543210", Status: models.StatusConfirmed})

	at := now.Add(24 * time.Hour)
	require.NoError(t, svc.ScheduleMessage(context.Background(), "a", messaging.IntentReminder, at))
	events := pub.published()
	require.Len(t, events, 1)
	assert.Equal(t, at, events[0].At)
	assert.Equal(t, messaging.IntentReminder, events[0].Event.Intent)

	assert.ErrorIs(t, svc.ScheduleMessage(context.Background(), "a", messaging.IntentReminder, now.Add(-time.Minute)), ErrValidation)
}

// A booking runs through the in-process publisher and the dispatcher: the
// record is stored Pending, the admin gets the submission summary and the
// patient the acknowledgement on the normalized number.
func TestBook_EndToEndMessaging(t *testing.T) {
	repo := newMemoryRepo()
	sender := &capturingSender{}
	formatter := messaging.NewFormatter("Dr. Basavaiah Ayurveda Hospital", "+916281508325", "Asia/Kolkata")
	dispatcher := messaging.NewDispatcher(sender, formatter, messaging.DispatcherConfig{AdminPhone: "+916281508325", CountryCode: "91"}, nil, zap.NewNop())
	pub := messaging.NewInProcessPublisher(dispatcher, zap.NewNop())
	svc := NewDefaultAppointmentService(repo, pub, zap.NewNop())

	appt, err := svc.Book(context.Background(), aartiRequest())
	require.NoError(t, err)
	pub.Wait()

	stored, _ := repo.List(context.Background(), appointmentRepo.Filter{})
	require.Len(t, stored, 1)
	assert.Equal(t, models.StatusPending, stored[0].Status)

	require.Len(t, sender.requests, 2)
	admin, user := sender.requests[0], sender.requests[1]
	adminMsg, err := formatter.Format(admin.Kind, admin.Role, admin.Intent, admin.Record)
	require.NoError(t, err)
	assert.Contains(t, adminMsg, "New Appointment Booking")
	assert.Contains(t, adminMsg, "Aarti S")

	assert.Equal(t, "+919876543210", user.PhoneNumber)
	userMsg, err := formatter.Format(user.Kind, user.Role, user.Intent, user.Record)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(userMsg, "🙏 Thank you for booking an appointment"))
	assert.Contains(t, userMsg, "Date: 2025-03-10\nTime: 10:00 AM")
	assert.Equal(t, appt.ID, user.Record.ID)
}

func TestBook_MessagingFailureStillBooks(t *testing.T) {
	repo := newMemoryRepo()
	formatter := messaging.NewFormatter("Clinic", "+910000000000", "UTC")
	dispatcher := messaging.NewDispatcher(&capturingSender{err: errors.New("function down")}, formatter, messaging.DispatcherConfig{AdminPhone: "+910000000000", CountryCode: "91"}, nil, zap.NewNop())
	pub := messaging.NewInProcessPublisher(dispatcher, nil)
	svc := NewDefaultAppointmentService(repo, pub, nil)

	_, err := svc.Book(context.Background(), aartiRequest())
	pub.Wait()

	require.NoError(t, err)
	stored, _ := repo.List(context.Background(), appointmentRepo.Filter{})
	assert.Len(t, stored, 1)
}
