package messaging

import (
	"testing"
	"time"

	"clinicdesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFormatter() *Formatter {
	return NewFormatter("Dr. Basavaiah Ayurveda Hospital", "+916281508325", "Asia/Kolkata")
}

func aarti() models.Appointment {
	return models.Appointment{
		ID:            "appt-1",
		Name:          "Aarti S",
		Email:         "a@x.com",
		Phone:         "9876543210",
		PreferredDate: "2025-03-10",
		PreferredTime: "10:00 AM",
		Status:        models.StatusPending,
		CreatedAt:     time.Date(2025, 3, 1, 8, 30, 5, 0, time.UTC),
	}
}

func TestFormat_IsDeterministic(t *testing.T) {
	f := testFormatter()
	rec := aarti()
	for _, role := range []Role{RoleAdmin, RoleUser} {
		for _, intent := range []Intent{IntentNew, IntentReminder, IntentConfirmation, IntentCancellation} {
			first, err := f.Format(KindAppointment, role, intent, rec)
			require.NoError(t, err)
			second, err := f.Format(KindAppointment, role, intent, rec)
			require.NoError(t, err)
			assert.Equal(t, first, second)
		}
	}
}

func TestFormat_UserCancellationTemplate(t *testing.T) {
	got, err := testFormatter().Format(KindAppointment, RoleUser, IntentCancellation, aarti())
	require.NoError(t, err)

	want := "❌ Appointment Cancelled - Dr. Basavaiah Ayurveda Hospital\n" +
		"\n" +
		"Dear Aarti S,\n" +
		"\n" +
		"Your appointment scheduled for:\n" +
		"Date: 2025-03-10\n" +
		"Time: 10:00 AM\n" +
		"\n" +
		"Has been cancelled as requested. If you would like to reschedule,\n" +
		"please call us at +916281508325 or book online.\n" +
		"\n" +
		"Thank you,\n" +
		"Dr. Basavaiah Ayurveda Hospital"
	assert.Equal(t, want, got)
}

func TestFormat_UserNewAcknowledgement(t *testing.T) {
	got, err := testFormatter().Format(KindAppointment, RoleUser, IntentNew, aarti())
	require.NoError(t, err)

	assert.Contains(t, got, "🙏 Thank you for booking an appointment at Dr. Basavaiah Ayurveda Hospital!")
	assert.Contains(t, got, "We have received your appointment request with the following details:\n\nDate: 2025-03-10\nTime: 10:00 AM\n")
	assert.Contains(t, got, "Our staff will contact you shortly")
}

func TestFormat_AdminIgnoresIntent(t *testing.T) {
	f := testFormatter()
	rec := aarti()

	base, err := f.Format(KindAppointment, RoleAdmin, IntentNew, rec)
	require.NoError(t, err)
	for _, intent := range []Intent{IntentReminder, IntentConfirmation, IntentCancellation} {
		got, err := f.Format(KindAppointment, RoleAdmin, intent, rec)
		require.NoError(t, err)
		assert.Equal(t, base, got)
	}

	assert.Contains(t, base, "New Appointment Booking")
	assert.Contains(t, base, "Name: Aarti S")
	assert.Contains(t, base, "Message: No message provided")
	assert.Contains(t, base, "Preferred Date: 2025-03-10")
	assert.Contains(t, base, "Preferred Time: 10:00 AM")
	assert.Contains(t, base, "Status: Pending")
	// 08:30:05 UTC is 14:00:05 in Asia/Kolkata.
	assert.Contains(t, base, "Time: 1/3/2025, 2:00:05 pm")
}

func TestFormat_AdminOmitsMissingSchedule(t *testing.T) {
	rec := aarti()
	rec.PreferredDate = ""
	rec.PreferredTime = ""
	rec.CreatedAt = time.Time{}

	got, err := testFormatter().Format(KindAppointment, RoleAdmin, IntentNew, rec)
	require.NoError(t, err)
	assert.NotContains(t, got, "Preferred Date")
	assert.NotContains(t, got, "Preferred Time")
	assert.NotContains(t, got, "Time: ")
}

func TestFormat_Contact(t *testing.T) {
	f := testFormatter()
	rec := models.ContactMessage{Name: "Ravi", Email: "r@x.com", Phone: "9000000000", Message: "Do you treat migraines?"}.ToAppointment()

	admin, err := f.Format(KindContact, RoleAdmin, IntentNew, rec)
	require.NoError(t, err)
	assert.Contains(t, admin, "💬 New Contact Form Submission!")
	assert.Contains(t, admin, "Message: Do you treat migraines?")

	user, err := f.Format(KindContact, RoleUser, IntentCancellation, rec)
	require.NoError(t, err)
	assert.Contains(t, user, "Thank you for contacting Dr. Basavaiah Ayurveda Hospital!")
	assert.Contains(t, user, "Dear Ravi,")
}

func TestFormat_RejectsUnknownValues(t *testing.T) {
	f := testFormatter()
	rec := aarti()

	_, err := f.Format(Kind("sms"), RoleUser, IntentNew, rec)
	assert.ErrorIs(t, err, ErrUnknownKind)
	_, err = f.Format(KindAppointment, Role("doctor"), IntentNew, rec)
	assert.ErrorIs(t, err, ErrUnknownRole)
	_, err = f.Format(KindAppointment, RoleUser, Intent("followup"), rec)
	assert.ErrorIs(t, err, ErrUnknownIntent)
}

func TestParseEnums(t *testing.T) {
	k, err := ParseKind(" Contact ")
	require.NoError(t, err)
	assert.Equal(t, KindContact, k)
	_, err = ParseKind("letter")
	assert.ErrorIs(t, err, ErrUnknownKind)

	r, err := ParseRole("ADMIN")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)
	_, err = ParseRole("")
	assert.ErrorIs(t, err, ErrUnknownRole)

	i, err := ParseIntent("")
	require.NoError(t, err)
	assert.Equal(t, IntentNew, i)
	i, err = ParseIntent("reminder")
	require.NoError(t, err)
	assert.Equal(t, IntentReminder, i)
	_, err = ParseIntent("default")
	assert.ErrorIs(t, err, ErrUnknownIntent)
}
