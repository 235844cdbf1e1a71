package messaging

import (
	"errors"
	"fmt"
	"strings"

	"clinicdesk/models"
)

var (
	ErrUnknownKind   = errors.New("unknown message kind")
	ErrUnknownRole   = errors.New("unknown recipient role")
	ErrUnknownIntent = errors.New("unknown message intent")
)

// Kind is the type of record a message is about.
type Kind string

const (
	KindAppointment Kind = "appointment"
	KindContact     Kind = "contact"
)

func (k Kind) Valid() bool {
	return k == KindAppointment || k == KindContact
}

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

// KindFor picks the message kind matching the surface that created rec.
func KindFor(rec models.Appointment) Kind {
	if rec.Source == models.SourceContact {
		return KindContact
	}
	return KindAppointment
}

// Role is who receives a message.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
	return r, nil
}

// Intent selects the user-facing appointment template.
type Intent string

const (
	IntentNew          Intent = "new"
	IntentReminder     Intent = "reminder"
	IntentConfirmation Intent = "confirmation"
	IntentCancellation Intent = "cancellation"
)

func (i Intent) Valid() bool {
	switch i {
	case IntentNew, IntentReminder, IntentConfirmation, IntentCancellation:
		return true
	}
	return false
}

// ParseIntent maps an empty string to IntentNew and rejects anything unknown.
func ParseIntent(s string) (Intent, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return IntentNew, nil
	}
	i := Intent(s)
	if !i.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownIntent, s)
	}
	return i, nil
}

// Event is what the booking flow publishes once a record is durable.
type Event struct {
	Kind       Kind               `json:"kind"`
	Intent     Intent             `json:"intent"`
	NotifyUser bool               `json:"notifyUser"`
	Record     models.Appointment `json:"record"`
}

func (e Event) Validate() error {
	if !e.Kind.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownKind, e.Kind)
	}
	if !e.Intent.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownIntent, e.Intent)
	}
	return nil
}

// LegResult describes the outcome of one recipient leg.
type LegResult struct {
	Role      Role                  `json:"role"`
	Recipient string                `json:"recipient"`
	Message   string                `json:"message"`
	Status    models.DeliveryStatus `json:"status"`
	Fallback  bool                  `json:"fallback"`
}

// Result is what Dispatch reports. Success is always true: failed legs are
// recovered through the fallback log.
type Result struct {
	Success bool       `json:"success"`
	Admin   LegResult  `json:"admin"`
	User    *LegResult `json:"user,omitempty"`
}
