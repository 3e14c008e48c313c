package domain

import "time"

// Well-known OTP purposes. The engine treats purpose as an opaque label
// partitioning lookups; these constants exist for callers only.
const (
	OTPPurposeRegister      = "register"
	OTPPurposeLogin         = "login"
	OTPPurposePurchase      = "purchase"
	OTPPurposeUpdateVehicle = "update_vehicle"
)

// OneTimeCode stores the hash of an issued code, never the plaintext.
// Rows are kept after consumption as an audit trail.
type OneTimeCode struct {
	ID         int64
	UserID     int64
	Purpose    string
	CodeHash   string
	ExpiresAt  time.Time
	ConsumedAt *time.Time
}
