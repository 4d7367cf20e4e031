package domain

import "time"

// Role determines which parts of the application a user can reach.
type Role string

const (
	RolePersonal Role = "personal"
	RoleTrader   Role = "trader"
	RoleAgent    Role = "agent"
	RoleAdmin    Role = "admin"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RolePersonal, RoleTrader, RoleAgent, RoleAdmin:
		return true
	}
	return false
}

// Language codes supported by the translation tables.
const (
	LangEnglish = "en"
	LangHausa   = "ha"
)

// BusinessDetails is the trader setup-wizard payload.
type BusinessDetails struct {
	Name            string `json:"name"`
	Address         string `json:"address"`
	Industry        string `json:"industry"`
	ProductsService string `json:"productsServices"`
	PhoneNumber     string `json:"phoneNumber"`
}

// PersonalDetails is the personal-role setup-wizard payload.
type PersonalDetails struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
}

// AgentDetails is the agent setup-wizard payload.
type AgentDetails struct {
	AgentName string `json:"agentName"`
	AgentID   string `json:"agentID"`
	Area      string `json:"area"`
	Role      string `json:"role"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// User represents an account holder. Usernames are the natural key the rest of
// the system references via UserID.
type User struct {
	UserID        string `json:"userID"` // username, lowercased
	Email         string `json:"email"`
	PasswordHash  string `json:"-"`
	Role          Role   `json:"role"`
	CoinBalance   int64  `json:"coinBalance"`
	Language      string `json:"language"`
	DisplayName   string `json:"displayName"`
	DarkMode      bool   `json:"darkMode"`
	SetupComplete bool   `json:"setupComplete"`

	BusinessDetails *BusinessDetails `json:"businessDetails,omitempty"`
	PersonalDetails *PersonalDetails `json:"personalDetails,omitempty"`
	AgentDetails    *AgentDetails    `json:"agentDetails,omitempty"`

	// Email notification preferences.
	NotifyEmail bool `json:"notifyEmail"`
	NotifySMS   bool `json:"notifySMS"`

	// One-time password for 2FA login, stored hashed.
	OTPHash   string     `json:"-"`
	OTPExpiry *time.Time `json:"-"`

	// Password reset token, stored hashed.
	ResetTokenHash   string     `json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`

	// Refresh token, stored hashed.
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`

	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// IsAdmin reports whether the user holds the admin role. Admins bypass coin
// debits and ownership filters throughout the application.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// GoogleUserInfo is the subset of the Google ID token claims the app consumes.
type GoogleUserInfo struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	Subject       string `json:"sub"`
}
