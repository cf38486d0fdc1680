package dto

import "github.com/google/uuid"

type SendOTPRequest struct {
	Phone string `form:"phone" json:"phone" validate:"notblank,max=20"`
}

type VerifyOTPRequest struct {
	OTP string `form:"otp" json:"otp"`
}

// LoginView is the entry screen. Step is "phone" until a code is held in
// the session, then "otp".
type LoginView struct {
	Step  string `json:"step"`
	Phone string `json:"phone,omitempty"`
}

type OTPSentResponse struct {
	Message  string `json:"message"`
	Phone    string `json:"phone"`
	Provider string `json:"provider"`
	// Code is only set by providers that do not deliver anywhere.
	Code string `json:"code,omitempty"`
}

type RoleSelectionView struct {
	User  UserResponse `json:"user"`
	Roles []string     `json:"roles"`
}

type UserResponse struct {
	ID                 uuid.UUID `json:"id"`
	Phone              string    `json:"phone"`
	Role               string    `json:"role"`
	OrganizerType      string    `json:"organizer_type,omitempty"`
	VerificationStatus string    `json:"verification_status"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
