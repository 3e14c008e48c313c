package dto

import "time"

// PurchaseRequestCreate payload.
type PurchaseRequestCreate struct {
	VehicleID int64 `json:"vehicle_id"`
}

// PurchaseRequestResponse is returned on creation.
type PurchaseRequestResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	VehicleID   int64     `json:"vehicle_id"`
	RequestedAt time.Time `json:"requested_at"`
	Status      string    `json:"status"`
	Message     string    `json:"message"`
}

// PurchaseHistoryItem joins a request with its vehicle.
type PurchaseHistoryItem struct {
	ID           int64     `json:"id"`
	VehicleID    int64     `json:"vehicle_id"`
	VehicleMake  string    `json:"vehicle_make"`
	VehicleModel string    `json:"vehicle_model"`
	VehicleYear  int       `json:"vehicle_year"`
	VehiclePrice float64   `json:"vehicle_price"`
	RequestedAt  time.Time `json:"requested_at"`
	Status       string    `json:"status"`
}
