package events

import (
	"time"

	"github.com/spec-kit/dealer-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventOTPGenerated           EventType = "otp_generated"
	EventPurchaseRequestCreated EventType = "purchase_request_created"
	EventSaleCompleted          EventType = "sale_completed"
	EventVehicleUpdated         EventType = "vehicle_updated"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    int64       `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// OTPGeneratedPayload carries the plaintext code to the delivery channel.
// The code exists only in flight; the store keeps its hash.
type OTPGeneratedPayload struct {
	Purpose   string    `json:"purpose"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PurchaseRequestCreatedPayload payload.
type PurchaseRequestCreatedPayload struct {
	RequestID int64 `json:"request_id"`
	VehicleID int64 `json:"vehicle_id"`
}

// SaleCompletedPayload payload.
type SaleCompletedPayload struct {
	SaleID    int64   `json:"sale_id"`
	RequestID int64   `json:"request_id"`
	VehicleID int64   `json:"vehicle_id"`
	Price     float64 `json:"price"`
}

// VehicleUpdatedPayload payload.
type VehicleUpdatedPayload struct {
	VehicleID int64                `json:"vehicle_id"`
	Status    domain.VehicleStatus `json:"status"`
}
