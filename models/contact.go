package models

// ContactMessage is a contact-form inquiry. It is stored as an Appointment
// with Source=contact so the administrator sees it in the same list.
type ContactMessage struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// ToAppointment maps the inquiry field by field onto a Pending appointment.
func (m ContactMessage) ToAppointment() Appointment {
	return Appointment{
		Name:    m.Name,
		Email:   m.Email,
		Phone:   m.Phone,
		Message: m.Message,
		Status:  StatusPending,
		Source:  SourceContact,
	}
}
