package handlers

import (
	"errors"
	"net/http"
	"time"

	appointmentRepo "clinicdesk/database/repository/appointment"
	"clinicdesk/models"
	"clinicdesk/services/appointment"
	"clinicdesk/services/messaging"
	"clinicdesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LiveView is the admin's live appointment list.
type LiveView interface {
	Appointments() []models.Appointment
	Loading() bool
}

// AppointmentHandler serves the public booking forms and the admin appointment endpoints.
type AppointmentHandler struct {
	Service appointment.AppointmentService
	Live    LiveView
}

func NewAppointmentHandler(svc appointment.AppointmentService, live LiveView) *AppointmentHandler {
	return &AppointmentHandler{Service: svc, Live: live}
}

// BookAppointmentHandler handles POST /api/appointments.
func (h *AppointmentHandler) BookAppointmentHandler(c *gin.Context) {
	var req models.AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	appt, err := h.Service.Book(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, appointment.ErrValidation) {
			utils.JSONError(c, http.StatusBadRequest, "Invalid appointment", err.Error())
			return
		}
		getLogger(c).Error("BookAppointmentHandler: store write failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Error Booking Appointment", "Please try again or call us directly.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Appointment Booked!",
		"details":     "We'll contact you shortly to confirm your appointment.",
		"appointment": appt,
	})
}

// SubmitContactHandler handles POST /api/contact.
func (h *AppointmentHandler) SubmitContactHandler(c *gin.Context) {
	var msg models.ContactMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		bindError(c, err)
		return
	}

	appt, err := h.Service.SubmitContact(c.Request.Context(), msg)
	if err != nil {
		if errors.Is(err, appointment.ErrValidation) {
			utils.JSONError(c, http.StatusBadRequest, "Invalid message", err.Error())
			return
		}
		getLogger(c).Error("SubmitContactHandler: store write failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Error Sending Message", "Please try again or call us directly.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Message Sent!",
		"details":     "We'll get back to you as soon as possible.",
		"appointment": appt,
	})
}

// TimeSlotsHandler handles GET /api/timeslots.
func (h *AppointmentHandler) TimeSlotsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"timeSlots": models.TimeSlots})
}

// ListAppointmentsHandler handles GET /api/admin/appointments. It serves the
// live view; ?status= narrows it.
func (h *AppointmentHandler) ListAppointmentsHandler(c *gin.Context) {
	var status models.AppointmentStatus
	if raw := c.Query("status"); raw != "" {
		s, err := models.ParseAppointmentStatus(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid status", err.Error())
			return
		}
		status = s
	}

	if h.Live == nil {
		list, err := h.Service.List(c.Request.Context(), appointmentRepo.Filter{Status: status})
		if err != nil {
			respondError(c, "Failed to fetch appointments", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"appointments": list, "loading": false})
		return
	}

	list := h.Live.Appointments()
	if list == nil {
		list = []models.Appointment{}
	}
	if status != "" {
		filtered := list[:0]
		for _, a := range list {
			if a.Status == status {
				filtered = append(filtered, a)
			}
		}
		list = filtered
	}
	c.JSON(http.StatusOK, gin.H{"appointments": list, "loading": h.Live.Loading()})
}

// CreateAppointmentHandler handles POST /api/admin/appointments.
func (h *AppointmentHandler) CreateAppointmentHandler(c *gin.Context) {
	var req models.AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	appt, err := h.Service.CreateByStaff(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Failed to create appointment", err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// GetAppointmentHandler handles GET /api/admin/appointments/:id.
func (h *AppointmentHandler) GetAppointmentHandler(c *gin.Context) {
	appt, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "Failed to fetch appointment", err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// DeleteAppointmentHandler handles DELETE /api/admin/appointments/:id.
func (h *AppointmentHandler) DeleteAppointmentHandler(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "Failed to delete appointment", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateStatusHandler handles PATCH /api/admin/appointments/:id/status.
func (h *AppointmentHandler) UpdateStatusHandler(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	status, err := models.ParseAppointmentStatus(input.Status)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid status", err.Error())
		return
	}

	appt, err := h.Service.UpdateStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		respondError(c, "Failed to update status", err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// UpdateNotesHandler handles PATCH /api/admin/appointments/:id/notes.
func (h *AppointmentHandler) UpdateNotesHandler(c *gin.Context) {
	var input struct {
		AdminNotes string `json:"adminNotes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	appt, err := h.Service.UpdateNotes(c.Request.Context(), c.Param("id"), input.AdminNotes)
	if err != nil {
		respondError(c, "Failed to update notes", err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// SendMessageHandler handles POST /api/admin/appointments/:id/messages.
// Without sendAt the message is queued immediately.
func (h *AppointmentHandler) SendMessageHandler(c *gin.Context) {
	var input struct {
		Intent string     `json:"intent" binding:"required"`
		SendAt *time.Time `json:"sendAt"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	intent, err := messaging.ParseIntent(input.Intent)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid intent", err.Error())
		return
	}

	id := c.Param("id")
	if input.SendAt == nil {
		if err := h.Service.SendMessage(c.Request.Context(), id, intent); err != nil {
			respondError(c, "Failed to queue message", err)
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"message": "Message queued", "intent": intent})
		return
	}

	if err := h.Service.ScheduleMessage(c.Request.Context(), id, intent, *input.SendAt); err != nil {
		respondError(c, "Failed to schedule message", err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "Message scheduled", "intent": intent, "sendAt": input.SendAt})
}
