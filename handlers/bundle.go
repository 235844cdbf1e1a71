package handlers

import (
	"clinicdesk/middleware"
	"clinicdesk/models"
)

// HandlerBundle groups all endpoint handlers and the settings routes need.
type HandlerBundle struct {
	AdminVerifier     middleware.TokenVerifier
	AdminEmail        string
	MessagingSecret   string
	MaxRequestsPerMin int

	Appointments  *AppointmentHandler
	Notifications *NotificationHandler
	Services      *ContentHandler[models.Service]
	Testimonials  *ContentHandler[models.Testimonial]
	BlogPosts     *ContentHandler[models.BlogPost]
	Settings      *SettingsHandler
	Messaging     *MessagingHandler
	Storage       *StorageHandler
	Deliveries    *DeliveryHandler
}
