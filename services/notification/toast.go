package notification

import (
	"time"

	"clinicdesk/models"
)

const NewAppointmentTitle = "New Appointment!"

// Toast is the admin-facing alert for a freshly booked appointment.
type Toast struct {
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	AppointmentID string    `json:"appointmentId"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewAppointmentToast renders the alert for appt. The text depends only on
// the requester name.
func NewAppointmentToast(appt models.Appointment) Toast {
	return Toast{
		Title:         NewAppointmentTitle,
		Description:   appt.Name + " has booked an appointment",
		AppointmentID: appt.ID,
		CreatedAt:     appt.CreatedAt,
	}
}

func (t Toast) String() string {
	return t.Title + " " + t.Description
}
