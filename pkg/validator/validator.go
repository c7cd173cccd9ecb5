package validator

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

const maxMessageLength = 4000

func ValidateRegister(email, displayName, password, role string, roles map[string]bool) ValidationErrors {
	errs := make(ValidationErrors)

	// Email
	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "Email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs.Add("email", "Invalid email address")
	}

	// Display name
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		errs.Add("display_name", "Display name is required")
	} else if utf8.RuneCountInString(displayName) < 2 {
		errs.Add("display_name", "Display name must be at least 2 characters")
	} else if utf8.RuneCountInString(displayName) > 100 {
		errs.Add("display_name", "Display name is too long")
	}

	// Role
	if role == "" {
		errs.Add("role", "Role is required")
	} else if !roles[role] {
		errs.Add("role", "Unknown role")
	}

	// Password
	validatePassword(password, errs)

	return errs
}

func ValidateLogin(email, password string) ValidationErrors {
	errs := make(ValidationErrors)

	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "Email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs.Add("email", "Invalid email address")
	}

	if password == "" {
		errs.Add("password", "Password is required")
	}

	return errs
}

func ValidateRoomName(name string) ValidationErrors {
	errs := make(ValidationErrors)

	name = strings.TrimSpace(name)
	if name == "" {
		errs.Add("name", "Room name is required")
	} else if utf8.RuneCountInString(name) < 2 {
		errs.Add("name", "Room name must be at least 2 characters")
	} else if utf8.RuneCountInString(name) > 120 {
		errs.Add("name", "Room name is too long")
	}

	return errs
}

func ValidateMessage(text, msgType string, hasFile bool) ValidationErrors {
	errs := make(ValidationErrors)

	switch msgType {
	case "", "text":
		if strings.TrimSpace(text) == "" {
			errs.Add("text", "Message text is required")
		}
	case "file", "image", "video", "voice":
		if !hasFile {
			errs.Add("file", "File info is required for file messages")
		}
	default:
		errs.Add("type", "Message type must be text, file, image, video, or voice")
	}

	if utf8.RuneCountInString(text) > maxMessageLength {
		errs.Add("text", fmt.Sprintf("Message must be at most %d characters", maxMessageLength))
	}

	return errs
}

func ValidateReport(reason string) ValidationErrors {
	errs := make(ValidationErrors)

	reason = strings.TrimSpace(reason)
	if reason == "" {
		errs.Add("reason", "Reason is required")
	} else if utf8.RuneCountInString(reason) > 1000 {
		errs.Add("reason", "Reason is too long")
	}

	return errs
}

func validatePassword(password string, errs ValidationErrors) {
	if len(password) < 8 {
		errs.Add("password", "Password must be at least 8 characters")
		return
	}

	var hasUpper, hasLower, hasDigit bool
	for _, ch := range password {
		switch {
		case unicode.IsUpper(ch):
			hasUpper = true
		case unicode.IsLower(ch):
			hasLower = true
		case unicode.IsDigit(ch):
			hasDigit = true
		}
	}

	missing := []string{}
	if !hasUpper {
		missing = append(missing, "one uppercase letter")
	}
	if !hasLower {
		missing = append(missing, "one lowercase letter")
	}
	if !hasDigit {
		missing = append(missing, "one number")
	}

	if len(missing) > 0 {
		errs.Add("password", fmt.Sprintf("Password must contain at least %s", strings.Join(missing, ", ")))
	}
}
