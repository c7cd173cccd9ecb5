package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Platform roles. A user's role decides which room types they can see
// and which verification track (KYC vs KYB) gates their access.
const (
	RoleFounder    = "founder"
	RoleVC         = "vc"
	RoleExchange   = "exchange"
	RoleIDO        = "ido"
	RoleInfluencer = "influencer"
	RoleAgency     = "agency"
	RoleAdmin      = "admin"
)

type User struct {
	ID               uuid.UUID          `json:"id"`
	Email            string             `json:"email"`
	DisplayName      string             `json:"display_name"`
	Role             string             `json:"role"`
	CompanyName      *string            `json:"company_name,omitempty"`
	OrganizationName *string            `json:"organization_name,omitempty"`
	AvatarURL        *string            `json:"avatar_url,omitempty"`
	PasswordHash     string             `json:"-"`
	ProfileCompleted bool               `json:"profile_completed"`
	KYCStatus        VerificationStatus `json:"kyc_status"`
	KYBStatus        VerificationStatus `json:"kyb_status"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// orgRoles verify as a business (KYB); everyone else verifies as a person (KYC).
var orgRoles = map[string]bool{
	RoleVC:       true,
	RoleExchange: true,
	RoleIDO:      true,
	RoleAgency:   true,
}

// VerificationTrack returns "kyb" for organization roles and "kyc" otherwise.
func (u *User) VerificationTrack() string {
	if orgRoles[u.Role] {
		return "kyb"
	}
	return "kyc"
}

// TrackStatus returns the status of the verification track that applies to this user.
func (u *User) TrackStatus() VerificationStatus {
	if orgRoles[u.Role] {
		return u.KYBStatus
	}
	return u.KYCStatus
}

// PartyName resolves the display identity denormalized into rooms.
// Fallback chain: display name, company, organization, email local part, role.
func (u *User) PartyName() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	if u.CompanyName != nil && *u.CompanyName != "" {
		return *u.CompanyName
	}
	if u.OrganizationName != nil && *u.OrganizationName != "" {
		return *u.OrganizationName
	}
	if at := strings.IndexByte(u.Email, '@'); at > 0 {
		return u.Email[:at]
	}
	return u.Role
}
