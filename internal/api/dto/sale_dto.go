package dto

import "time"

// SaleInfo is the public sale shape.
type SaleInfo struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	VehicleID int64     `json:"vehicle_id"`
	SoldAt    time.Time `json:"sold_at"`
	Price     float64   `json:"price"`
}

// SaleResponse is returned by sale processing.
type SaleResponse struct {
	Message string   `json:"message"`
	Sale    SaleInfo `json:"sale"`
}

// CustomerResponse is the admin-facing account listing shape.
type CustomerResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
