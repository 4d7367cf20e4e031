package dto

// LoginRequest defines the credentials for password login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login.
// When OTPRequired is set the token fields are empty and the client must
// follow up with the OTP verification call.
type LoginResponse struct {
	Token       string       `json:"token,omitempty"`
	OTPRequired bool         `json:"otpRequired,omitempty"`
	User        *UserResponse `json:"user,omitempty"`
}

// VerifyOTPRequest defines the second step of a 2FA login.
type VerifyOTPRequest struct {
	Username string `json:"username" binding:"required"`
	OTP      string `json:"otp" binding:"required,len=6,numeric"`
}

// RefreshTokenResponse represents the response for a successful token refresh.
type RefreshTokenResponse struct {
	Token string `json:"token"`
}

// ForgotPasswordRequest starts the password reset flow.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest completes the password reset flow.
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}
