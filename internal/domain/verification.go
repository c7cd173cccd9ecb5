package domain

import "fmt"

// VerificationStatus is the decoded KYC/KYB state. Raw store values are parsed
// once at the repository boundary; everything above works with this type only.
type VerificationStatus string

const (
	VerificationNotSubmitted VerificationStatus = "not_submitted"
	VerificationPending      VerificationStatus = "pending"
	VerificationSubmitted    VerificationStatus = "submitted"
	VerificationApproved     VerificationStatus = "approved"
	VerificationRejected     VerificationStatus = "rejected"
)

// ParseVerificationStatus decodes a stored status value. Legacy records used
// "verified" for approved and empty for never-submitted; both are accepted here
// so the aliases never leak past the store boundary.
func ParseVerificationStatus(raw string) (VerificationStatus, error) {
	switch raw {
	case "", "not_submitted":
		return VerificationNotSubmitted, nil
	case "pending":
		return VerificationPending, nil
	case "submitted":
		return VerificationSubmitted, nil
	case "approved", "verified":
		return VerificationApproved, nil
	case "rejected":
		return VerificationRejected, nil
	}
	return "", fmt.Errorf("unknown verification status %q", raw)
}

// OnboardingStep is what a user must do next before reaching the dashboard.
type OnboardingStep string

const (
	StepRegister     OnboardingStep = "register"
	StepVerification OnboardingStep = "verification"
	StepPending      OnboardingStep = "pending_approval"
	StepApproved     OnboardingStep = "approved"
)

// NextStep drives the onboarding gate:
// register -> verification -> pending_approval -> approved, with rejected
// looping back to verification. Admins bypass the gate entirely.
func NextStep(u *User) OnboardingStep {
	if u.Role == RoleAdmin {
		return StepApproved
	}
	if !u.ProfileCompleted {
		return StepRegister
	}
	switch u.TrackStatus() {
	case VerificationNotSubmitted, VerificationPending, VerificationRejected:
		return StepVerification
	case VerificationSubmitted:
		return StepPending
	case VerificationApproved:
		return StepApproved
	}
	return StepVerification
}
