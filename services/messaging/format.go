package messaging

import (
	"fmt"
	"strings"
	"time"

	"clinicdesk/models"
)

// submittedLayout renders the admin "Time:" line the way en-IN locales print it.
const submittedLayout = "2/1/2006, 3:04:05 pm"

// Formatter renders WhatsApp bodies. Format is pure: the same inputs always
// produce the same bytes.
type Formatter struct {
	ClinicName  string
	ClinicPhone string
	Location    *time.Location
}

func NewFormatter(clinicName, clinicPhone, timezone string) *Formatter {
	loc, err := time.LoadLocation(timezone)
	if err != nil || timezone == "" {
		loc = time.UTC
	}
	return &Formatter{ClinicName: clinicName, ClinicPhone: clinicPhone, Location: loc}
}

func (f *Formatter) Format(kind Kind, role Role, intent Intent, rec models.Appointment) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if !intent.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownIntent, intent)
	}
	switch role {
	case RoleAdmin:
		if kind == KindContact {
			return f.adminContact(rec), nil
		}
		return f.adminAppointment(rec), nil
	case RoleUser:
		if kind == KindContact {
			return f.userContact(rec), nil
		}
		return f.userAppointment(intent, rec), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, role)
}

type lines []string

func (l *lines) add(s ...string) { *l = append(*l, s...) }

// addIf appends label+value only when value is set.
func (l *lines) addIf(label, value string) {
	if value != "" {
		*l = append(*l, label+value)
	}
}

func (l lines) String() string { return strings.Join(l, "\n") }

func (f *Formatter) submitted(rec models.Appointment) string {
	if rec.CreatedAt.IsZero() {
		return ""
	}
	return rec.CreatedAt.In(f.Location).Format(submittedLayout)
}

func (f *Formatter) adminAppointment(rec models.Appointment) string {
	message := rec.Message
	if message == "" {
		message = "No message provided"
	}
	status := rec.Status
	if status == "" {
		status = models.StatusPending
	}
	var l lines
	l.add(
		"🏥 New Appointment Booking!",
		"",
		"Name: "+rec.Name,
		"Phone: "+rec.Phone,
		"Email: "+rec.Email,
		"Message: "+message,
	)
	l.addIf("Preferred Date: ", rec.PreferredDate)
	l.addIf("Preferred Time: ", rec.PreferredTime)
	l.add("", "Status: "+string(status))
	l.addIf("Time: ", f.submitted(rec))
	l.add("", "Please respond to the patient promptly.")
	return l.String()
}

func (f *Formatter) adminContact(rec models.Appointment) string {
	var l lines
	l.add(
		"💬 New Contact Form Submission!",
		"",
		"Name: "+rec.Name,
		"Phone: "+rec.Phone,
		"Email: "+rec.Email,
		"Message: "+rec.Message,
	)
	if t := f.submitted(rec); t != "" {
		l.add("", "Time: "+t)
	}
	return l.String()
}

func (f *Formatter) userContact(rec models.Appointment) string {
	var l lines
	l.add(
		"🙏 Thank you for contacting "+f.ClinicName+"!",
		"",
		"Dear "+rec.Name+",",
		"",
		"We have received your message and appreciate your interest in our Ayurvedic treatments. Our team will review your inquiry and get back to you within 24 hours.",
		"",
		"If you have any urgent concerns, please call us at "+f.ClinicPhone+".",
		"",
		"Wishing you wellness,",
		f.ClinicName,
	)
	return l.String()
}

func (f *Formatter) userAppointment(intent Intent, rec models.Appointment) string {
	var l lines
	schedule := func() {
		l.addIf("Date: ", rec.PreferredDate)
		l.addIf("Time: ", rec.PreferredTime)
	}

	switch intent {
	case IntentReminder:
		l.add("🔔 Appointment Reminder - "+f.ClinicName, "", "Dear "+rec.Name+",", "",
			"This is a friendly reminder of your upcoming appointment:")
		schedule()
		l.add("",
			"Please arrive 15 minutes before your appointment time.",
			"If you need to reschedule, please call us at "+f.ClinicPhone+".",
			"",
			"Warm regards,",
			f.ClinicName)
	case IntentConfirmation:
		l.add("✅ Appointment Confirmed - "+f.ClinicName, "", "Dear "+rec.Name+",", "",
			"We're pleased to confirm your appointment has been scheduled:")
		schedule()
		l.add("",
			"We look forward to seeing you. If you have any questions before your visit,",
			"please call us at "+f.ClinicPhone+".",
			"",
			"Wishing you wellness,",
			f.ClinicName)
	case IntentCancellation:
		l.add("❌ Appointment Cancelled - "+f.ClinicName, "", "Dear "+rec.Name+",", "",
			"Your appointment scheduled for:")
		schedule()
		l.add("",
			"Has been cancelled as requested. If you would like to reschedule,",
			"please call us at "+f.ClinicPhone+" or book online.",
			"",
			"Thank you,",
			f.ClinicName)
	default:
		l.add("🙏 Thank you for booking an appointment at "+f.ClinicName+"!", "", "Dear "+rec.Name+",", "",
			"We have received your appointment request with the following details:", "")
		schedule()
		l.add("",
			"Our staff will contact you shortly to confirm your appointment. If you have any urgent questions, please call us at "+f.ClinicPhone+".",
			"",
			"Wishing you wellness,",
			f.ClinicName)
	}
	return l.String()
}
