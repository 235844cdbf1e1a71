package models

import "time"

type DeliveryStatus string

const (
	DeliverySent     DeliveryStatus = "sent"
	DeliveryDemo     DeliveryStatus = "demo"
	DeliveryFailed   DeliveryStatus = "failed"
	DeliveryFallback DeliveryStatus = "fallback"
)

// DeliveryRecord audits one outbound WhatsApp attempt.
type DeliveryRecord struct {
	ID            string         `json:"id" firestore:"-" bson:"_id,omitempty"`
	Channel       string         `json:"channel" firestore:"type" bson:"channel"`
	Kind          string         `json:"kind" firestore:"kind" bson:"kind"`
	Intent        string         `json:"intent,omitempty" firestore:"intent,omitempty" bson:"intent,omitempty"`
	RecipientRole string         `json:"recipientRole" firestore:"recipientType" bson:"recipientRole"`
	Recipient     string         `json:"recipient" firestore:"recipient" bson:"recipient"`
	Message       string         `json:"message" firestore:"message" bson:"message"`
	Status        DeliveryStatus `json:"status" firestore:"status" bson:"status"`
	ProviderSID   string         `json:"providerSid,omitempty" firestore:"twilioSid,omitempty" bson:"providerSid,omitempty"`
	Error         string         `json:"error,omitempty" firestore:"error,omitempty" bson:"error,omitempty"`
	AppointmentID string         `json:"appointmentId,omitempty" firestore:"appointmentId,omitempty" bson:"appointmentId,omitempty"`
	CreatedAt     time.Time      `json:"createdAt" firestore:"sentAt" bson:"createdAt"`
}
