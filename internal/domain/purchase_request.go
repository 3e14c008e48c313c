package domain

import "time"

// PurchaseRequestStatus enumerates request states. There is no rejected
// state: a request either stays Pending or is approved into a sale.
type PurchaseRequestStatus string

const (
	PurchaseRequestStatusPending  PurchaseRequestStatus = "Pending"
	PurchaseRequestStatusApproved PurchaseRequestStatus = "Approved"
)

// PurchaseRequest records a customer's intent to buy a vehicle. Creating
// one does not reserve the vehicle; availability is re-checked when the
// request is approved.
type PurchaseRequest struct {
	ID          int64
	UserID      int64
	VehicleID   int64
	RequestedAt time.Time
	Status      PurchaseRequestStatus
}
