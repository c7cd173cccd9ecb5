package validator

import (
	"strings"
	"testing"
)

var testRoles = map[string]bool{"founder": true, "vc": true}

func TestValidateRegister(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		display   string
		password  string
		role      string
		wantField string
	}{
		{"valid", "ada@acme.io", "Ada", "Passw0rd", "founder", ""},
		{"missing email", "", "Ada", "Passw0rd", "founder", "email"},
		{"bad email", "not-an-email", "Ada", "Passw0rd", "founder", "email"},
		{"short display name", "ada@acme.io", "A", "Passw0rd", "founder", "display_name"},
		{"missing role", "ada@acme.io", "Ada", "Passw0rd", "", "role"},
		{"unknown role", "ada@acme.io", "Ada", "Passw0rd", "wizard", "role"},
		{"short password", "ada@acme.io", "Ada", "Pw0", "founder", "password"},
		{"password without digit", "ada@acme.io", "Ada", "Password", "founder", "password"},
		{"password without upper", "ada@acme.io", "Ada", "passw0rd", "founder", "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateRegister(tt.email, tt.display, tt.password, tt.role, testRoles)
			if tt.wantField == "" {
				if errs.HasErrors() {
					t.Errorf("expected no errors, got %v", errs)
				}
				return
			}
			if _, ok := errs[tt.wantField]; !ok {
				t.Errorf("expected error on %q, got %v", tt.wantField, errs)
			}
		})
	}
}

func TestValidateMessage(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		msgType   string
		hasFile   bool
		wantField string
	}{
		{"plain text", "hello", "text", false, ""},
		{"default type is text", "hello", "", false, ""},
		{"empty text", "   ", "text", false, "text"},
		{"file with payload", "", "file", true, ""},
		{"file without payload", "", "file", false, "file"},
		{"image without payload", "", "image", false, "file"},
		{"unknown type", "x", "carrier-pigeon", false, "type"},
		{"oversized text", strings.Repeat("a", 4001), "text", false, "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateMessage(tt.text, tt.msgType, tt.hasFile)
			if tt.wantField == "" {
				if errs.HasErrors() {
					t.Errorf("expected no errors, got %v", errs)
				}
				return
			}
			if _, ok := errs[tt.wantField]; !ok {
				t.Errorf("expected error on %q, got %v", tt.wantField, errs)
			}
		})
	}
}

func TestValidateRoomName(t *testing.T) {
	if errs := ValidateRoomName("Deal Room"); errs.HasErrors() {
		t.Errorf("expected valid name, got %v", errs)
	}
	if errs := ValidateRoomName(""); !errs.HasErrors() {
		t.Error("empty name should fail")
	}
	if errs := ValidateRoomName("  "); !errs.HasErrors() {
		t.Error("whitespace name should fail")
	}
	if errs := ValidateRoomName(strings.Repeat("n", 121)); !errs.HasErrors() {
		t.Error("overlong name should fail")
	}
}

func TestValidateReport(t *testing.T) {
	if errs := ValidateReport("spam in the deal room"); errs.HasErrors() {
		t.Errorf("expected valid reason, got %v", errs)
	}
	if errs := ValidateReport(""); !errs.HasErrors() {
		t.Error("empty reason should fail")
	}
}
