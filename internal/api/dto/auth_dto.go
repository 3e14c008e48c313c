package dto

import "time"

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest payload for password login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthInitiatedResponse is returned by register and login; the bearer
// token is only issued after the code is redeemed.
type AuthInitiatedResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
	Purpose string `json:"purpose"`
}

// OTPVerifyRequest redeems a one-time code.
type OTPVerifyRequest struct {
	UserID  int64  `json:"user_id"`
	Purpose string `json:"purpose"`
	Code    string `json:"code"`
}

// UserInfo is the public account shape.
type UserInfo struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// OTPVerifyResponse carries the minted token.
type OTPVerifyResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserInfo  `json:"user"`
}
