package models

import (
	"fmt"
	"time"
)

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "Pending"
	StatusConfirmed AppointmentStatus = "Confirmed"
	StatusCanceled  AppointmentStatus = "Canceled"
	StatusCompleted AppointmentStatus = "Completed"
)

// Valid reports whether s is one of the four lifecycle states.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCanceled, StatusCompleted:
		return true
	}
	return false
}

// ParseAppointmentStatus converts a raw status string.
func ParseAppointmentStatus(raw string) (AppointmentStatus, error) {
	s := AppointmentStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown appointment status %q", raw)
	}
	return s, nil
}

// AppointmentSource records which surface created an appointment.
type AppointmentSource string

const (
	SourceBooking AppointmentSource = "booking"
	SourceContact AppointmentSource = "contact"
	SourceStaff   AppointmentSource = "staff"
)

// Appointment is one booking request. The same struct is stored in Firestore
// and MongoDB; CreatedAt and UpdatedAt are assigned by the store.
type Appointment struct {
	ID            string            `json:"id" firestore:"-" bson:"_id,omitempty"`
	Name          string            `json:"name" firestore:"name" bson:"name"`
	Email         string            `json:"email" firestore:"email" bson:"email"`
	Phone         string            `json:"phone" firestore:"phone" bson:"phone"`
	Message       string            `json:"message" firestore:"message" bson:"message"`
	ServiceID     string            `json:"serviceId,omitempty" firestore:"serviceId,omitempty" bson:"serviceId,omitempty"`
	PreferredDate string            `json:"preferredDate,omitempty" firestore:"preferredDate,omitempty" bson:"preferredDate,omitempty"`
	PreferredTime string            `json:"preferredTime,omitempty" firestore:"preferredTime,omitempty" bson:"preferredTime,omitempty"`
	Status        AppointmentStatus `json:"status" firestore:"status" bson:"status"`
	Source        AppointmentSource `json:"source,omitempty" firestore:"source,omitempty" bson:"source,omitempty"`
	AdminNotes    string            `json:"adminNotes,omitempty" firestore:"adminNotes,omitempty" bson:"adminNotes,omitempty"`
	CreatedAt     time.Time         `json:"createdAt" firestore:"createdAt,serverTimestamp" bson:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt" firestore:"updatedAt,serverTimestamp" bson:"updatedAt"`
}

// AppointmentRequest is the public booking form payload.
type AppointmentRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone" binding:"required"`
	Message       string `json:"message"`
	ServiceID     string `json:"serviceId"`
	PreferredDate string `json:"preferredDate"`
	PreferredTime string `json:"preferredTime"`
}

// ToAppointment builds a new Pending appointment from the form.
func (r AppointmentRequest) ToAppointment(source AppointmentSource) Appointment {
	return Appointment{
		Name:          r.Name,
		Email:         r.Email,
		Phone:         r.Phone,
		Message:       r.Message,
		ServiceID:     r.ServiceID,
		PreferredDate: r.PreferredDate,
		PreferredTime: r.PreferredTime,
		Status:        StatusPending,
		Source:        source,
	}
}

// AppointmentPatch carries the admin-editable fields. Nil means unchanged.
type AppointmentPatch struct {
	Status     *AppointmentStatus `json:"status,omitempty"`
	AdminNotes *string            `json:"adminNotes,omitempty"`
}

// Fields returns the store field paths the patch writes.
func (p AppointmentPatch) Fields() map[string]any {
	fields := map[string]any{}
	if p.Status != nil {
		fields["status"] = string(*p.Status)
	}
	if p.AdminNotes != nil {
		fields["adminNotes"] = *p.AdminNotes
	}
	return fields
}
