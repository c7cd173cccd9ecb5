package domain

import "testing"

func TestParseVerificationStatus(t *testing.T) {
	tests := []struct {
		raw     string
		want    VerificationStatus
		wantErr bool
	}{
		{"not_submitted", VerificationNotSubmitted, false},
		{"pending", VerificationPending, false},
		{"submitted", VerificationSubmitted, false},
		{"approved", VerificationApproved, false},
		{"rejected", VerificationRejected, false},
		// Legacy aliases from older records.
		{"", VerificationNotSubmitted, false},
		{"verified", VerificationApproved, false},
		{"bogus", "", true},
		{"APPROVED", "", true},
	}

	for _, tt := range tests {
		got, err := ParseVerificationStatus(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseVerificationStatus(%q): expected error, got %q", tt.raw, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseVerificationStatus(%q): unexpected error: %v", tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseVerificationStatus(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestNextStep(t *testing.T) {
	tests := []struct {
		name string
		user User
		want OnboardingStep
	}{
		{
			name: "admin bypasses the gate",
			user: User{Role: RoleAdmin},
			want: StepApproved,
		},
		{
			name: "incomplete profile goes to register",
			user: User{Role: RoleVC, ProfileCompleted: false, KYBStatus: VerificationApproved},
			want: StepRegister,
		},
		{
			name: "not submitted goes to verification",
			user: User{Role: RoleFounder, ProfileCompleted: true, KYCStatus: VerificationNotSubmitted},
			want: StepVerification,
		},
		{
			name: "pending stays on verification",
			user: User{Role: RoleFounder, ProfileCompleted: true, KYCStatus: VerificationPending},
			want: StepVerification,
		},
		{
			name: "rejected loops back to verification",
			user: User{Role: RoleInfluencer, ProfileCompleted: true, KYCStatus: VerificationRejected},
			want: StepVerification,
		},
		{
			name: "submitted waits for review",
			user: User{Role: RoleFounder, ProfileCompleted: true, KYCStatus: VerificationSubmitted},
			want: StepPending,
		},
		{
			name: "approved reaches the dashboard",
			user: User{Role: RoleFounder, ProfileCompleted: true, KYCStatus: VerificationApproved},
			want: StepApproved,
		},
		{
			name: "org role is gated on KYB not KYC",
			user: User{Role: RoleExchange, ProfileCompleted: true, KYCStatus: VerificationApproved, KYBStatus: VerificationSubmitted},
			want: StepPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextStep(&tt.user); got != tt.want {
				t.Errorf("NextStep() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVerificationTrack(t *testing.T) {
	tests := []struct {
		role string
		want string
	}{
		{RoleFounder, "kyc"},
		{RoleInfluencer, "kyc"},
		{RoleAdmin, "kyc"},
		{RoleVC, "kyb"},
		{RoleExchange, "kyb"},
		{RoleIDO, "kyb"},
		{RoleAgency, "kyb"},
	}

	for _, tt := range tests {
		u := User{Role: tt.role}
		if got := u.VerificationTrack(); got != tt.want {
			t.Errorf("VerificationTrack() for %s = %q, want %q", tt.role, got, tt.want)
		}
	}
}
