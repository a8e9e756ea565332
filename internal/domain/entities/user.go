package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// UserRole represents user roles. A role is fixed at registration and
// never changes afterwards.
type UserRole string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleLender   UserRole = "lender"
	UserRoleBorrower UserRole = "borrower"
)

// Valid reports whether the role is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleAdmin, UserRoleLender, UserRoleBorrower:
		return true
	}
	return false
}

// KYCDocuments holds opaque references to the identity documents
// captured at registration. Document storage lives elsewhere; the
// directory only keeps the references.
type KYCDocuments struct {
	PAN     string `json:"pan,omitempty"`
	Aadhaar string `json:"aadhaar,omitempty"`
	IDProof string `json:"idProof,omitempty"`
}

// LenderProfile holds a lender's funding policy: the maximum principal
// they will fund and the minimum rate they require.
type LenderProfile struct {
	MaxAmount    float64 `json:"maxAmount"`
	InterestRate float64 `json:"interestRate"`
}

// User represents a user entity
type User struct {
	ID            uuid.UUID      `json:"id"`
	Email         string         `json:"email"`
	Name          string         `json:"name"`
	PasswordHash  string         `json:"-"`
	Role          UserRole       `json:"role"`
	KYCVerified   bool           `json:"kycVerified"`
	KYCVerifiedAt null.Time      `json:"kycVerifiedAt,omitempty"`
	KYCDocuments  KYCDocuments   `json:"kycDocuments"`
	LenderProfile *LenderProfile `json:"lenderProfile,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// UserSummary is the reduced view of a user embedded in loan responses.
type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  UserRole  `json:"role"`
}

// Summary returns the reduced view of the user.
func (u *User) Summary() *UserSummary {
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// CreateUserInput represents input for registering a user
type CreateUserInput struct {
	Email        string   `json:"email" binding:"required,email"`
	Name         string   `json:"name" binding:"required,min=2,max=100"`
	Password     string   `json:"password" binding:"required,min=8"`
	Role         UserRole `json:"role" binding:"required"`
	PAN          string   `json:"pan"`
	Aadhaar      string   `json:"aadhaar"`
	IDProof      string   `json:"idProof"`
	MaxAmount    *float64 `json:"maxAmount"`
	InterestRate *float64 `json:"interestRate"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user"`
}

// UpdateProfileInput represents input for updating a profile. Lender
// funding fields are ignored for non-lenders.
type UpdateProfileInput struct {
	Name         string   `json:"name"`
	MaxAmount    *float64 `json:"maxAmount"`
	InterestRate *float64 `json:"interestRate"`
}

// ChangePasswordInput represents input for changing a user password.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required,min=8"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}
