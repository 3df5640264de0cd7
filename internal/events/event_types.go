package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/givehub/marketplace-api/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAccountRegistered    EventType = "account_registered"
	EventProductListed        EventType = "product_listed"
	EventProductStatusChanged EventType = "product_status_changed"
	EventCharityCreated       EventType = "charity_created"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// NewEvent stamps a payload with id, type and time.
func NewEvent(eventType EventType, subjectID string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// AccountRegisteredPayload payload.
type AccountRegisteredPayload struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// ProductListedPayload payload.
type ProductListedPayload struct {
	SellerID  string `json:"seller_id"`
	CharityID string `json:"charity_id"`
	Title     string `json:"title"`
}

// ProductStatusChangedPayload payload.
type ProductStatusChangedPayload struct {
	OldStatus domain.ProductStatus `json:"old_status"`
	NewStatus domain.ProductStatus `json:"new_status"`
	AdminID   string               `json:"admin_id"`
}

// CharityCreatedPayload payload.
type CharityCreatedPayload struct {
	Name    string `json:"name"`
	AdminID string `json:"admin_id"`
}
