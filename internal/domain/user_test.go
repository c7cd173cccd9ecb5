package domain

import "testing"

func strptr(s string) *string { return &s }

func TestPartyName(t *testing.T) {
	tests := []struct {
		name string
		user User
		want string
	}{
		{
			name: "display name wins",
			user: User{DisplayName: "Ada", CompanyName: strptr("Acme"), Email: "ada@acme.io", Role: RoleVC},
			want: "Ada",
		},
		{
			name: "company name next",
			user: User{CompanyName: strptr("Acme Capital"), Email: "ada@acme.io", Role: RoleVC},
			want: "Acme Capital",
		},
		{
			name: "organization name next",
			user: User{OrganizationName: strptr("Acme DAO"), Email: "ada@acme.io", Role: RoleVC},
			want: "Acme DAO",
		},
		{
			name: "email local part next",
			user: User{Email: "ada@acme.io", Role: RoleVC},
			want: "ada",
		},
		{
			name: "role as last resort",
			user: User{Role: RoleVC},
			want: RoleVC,
		},
		{
			name: "empty company does not win",
			user: User{CompanyName: strptr(""), Email: "ada@acme.io", Role: RoleVC},
			want: "ada",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.PartyName(); got != tt.want {
				t.Errorf("PartyName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSanitizeLogoURL(t *testing.T) {
	tests := []struct {
		name string
		in   *string
		keep bool
	}{
		{"nil passes through", nil, false},
		{"empty dropped", strptr(""), false},
		{"https kept", strptr("https://cdn.example.com/logo.png"), true},
		{"http kept", strptr("http://example.com/a.png"), true},
		{"relative dropped", strptr("/logo.png"), false},
		{"data URI dropped", strptr("data:image/png;base64,AAAA"), false},
		{"scheme only dropped", strptr("https://"), false},
		{"garbage dropped", strptr("::not a url::"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeLogoURL(tt.in)
			if tt.keep && (got == nil || *got != *tt.in) {
				t.Errorf("SanitizeLogoURL(%v) dropped a valid URL", *tt.in)
			}
			if !tt.keep && got != nil {
				t.Errorf("SanitizeLogoURL(%v) = %q, want nil", tt.in, *got)
			}
		})
	}
}
