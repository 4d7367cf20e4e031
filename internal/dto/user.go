package dto

import (
	"time"

	"github.com/fipithx/ficore_backend/internal/core/domain"
)

// SignupRequest defines the data required to register a new user.
type SignupRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=personal trader agent"`
	Language string `json:"language" binding:"omitempty,oneof=en ha"`

	// FacilitatedByAgent is set internally when an agent registers the account.
	// It is never bound from the request body.
	FacilitatedByAgent string `json:"-"`
}

// UpdateUserRequest defines the data allowed for updating a user profile.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	DisplayName *string `json:"displayName"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone" binding:"omitempty,ngphone"`
}

// UpdateSettingsRequest defines the data for the settings screen.
type UpdateSettingsRequest struct {
	Language    *string `json:"language" binding:"omitempty,oneof=en ha"`
	DarkMode    *bool   `json:"darkMode"`
	NotifyEmail *bool   `json:"notifyEmail"`
	NotifySMS   *bool   `json:"notifySMS"`
}

// SetupWizardRequest carries the role-specific details collected after signup.
type SetupWizardRequest struct {
	Business *BusinessDetailsPayload `json:"business"`
	Personal *PersonalDetailsPayload `json:"personal"`
	Agent    *AgentDetailsPayload    `json:"agent"`
}

// BusinessDetailsPayload holds trader setup details.
type BusinessDetailsPayload struct {
	Name         string `json:"name" binding:"required"`
	Address      string `json:"address"`
	Industry     string `json:"industry"`
	PhoneNumber  string `json:"phoneNumber" binding:"omitempty,ngphone"`
	ProductsSold string `json:"productsSold"`
}

// PersonalDetailsPayload holds personal-account setup details.
type PersonalDetailsPayload struct {
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber" binding:"omitempty,ngphone"`
	Address     string `json:"address"`
}

// AgentDetailsPayload holds agent setup details.
type AgentDetailsPayload struct {
	AgentName   string `json:"agentName" binding:"required"`
	AgentID     string `json:"agentID"`
	Area        string `json:"area"`
	Role        string `json:"role"`
	Email       string `json:"email" binding:"omitempty,email"`
	PhoneNumber string `json:"phoneNumber" binding:"omitempty,ngphone"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Role   string `form:"role" binding:"omitempty,oneof=personal trader agent admin"`
	Limit  int    `form:"limit,default=20"`
	Offset int    `form:"offset,default=0"`
}

// UserResponse defines the user data returned by the API.
type UserResponse struct {
	UserID        string    `json:"userID"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	DisplayName   string    `json:"displayName,omitempty"`
	Language      string    `json:"language"`
	DarkMode      bool      `json:"darkMode"`
	CoinBalance   int64     `json:"coinBalance"`
	SetupComplete bool      `json:"setupComplete"`
	NotifyEmail   bool      `json:"notifyEmail"`
	NotifySMS     bool      `json:"notifySMS"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToUserResponse converts a domain.User to UserResponse DTO.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:        user.UserID,
		Email:         user.Email,
		Role:          string(user.Role),
		DisplayName:   user.DisplayName,
		Language:      string(user.Language),
		DarkMode:      user.DarkMode,
		CoinBalance:   user.CoinBalance,
		SetupComplete: user.SetupComplete,
		NotifyEmail:   user.NotifyEmail,
		NotifySMS:     user.NotifySMS,
		CreatedAt:     user.CreatedAt,
	}
}

// ToListUserResponse converts a slice of domain.User to ListUsersResponse DTO
func ToListUserResponse(users []domain.User) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i := range users {
		userResponses[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{Users: userResponses}
}
