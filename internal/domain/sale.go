package domain

import "time"

// Sale is the immutable record of a completed purchase. Price is captured
// at the moment of sale so later catalog edits cannot rewrite history.
type Sale struct {
	ID        int64
	UserID    int64
	VehicleID int64
	SoldAt    time.Time
	Price     float64
}
