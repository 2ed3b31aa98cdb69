package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validRegistration() RegistrationData {
	return RegistrationData{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "engine1!",
	}
}

func TestValidateRegistrationAcceptsValidData(t *testing.T) {
	errs := ValidateRegistration(validRegistration())
	assert.False(t, errs.Any(), "unexpected errors: %v", errs)
}

// TestValidateRegistrationNames covers the letters-only, two-or-more rule
// applied after trimming.
func TestValidateRegistrationNames(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantMsg string
	}{
		{"valid", "Jo", ""},
		{"valid mixed case", "McDonald", ""},
		{"valid after trim", "  Jo  ", ""},
		{"empty", "", "First name is required"},
		{"whitespace only", "   ", "First name is required"},
		{"single letter", "A", "First name must be at least 2 letters and contain only alphabets"},
		{"digit", "Jo3", "First name must be at least 2 letters and contain only alphabets"},
		{"hyphen", "Mary-Jane", "First name must be at least 2 letters and contain only alphabets"},
		{"inner space", "Jo Ann", "First name must be at least 2 letters and contain only alphabets"},
		{"non ascii", "Zoë", "First name must be at least 2 letters and contain only alphabets"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := validRegistration()
			data.FirstName = tt.value
			errs := ValidateRegistration(data)
			assert.Equal(t, tt.wantMsg, errs[FieldFirstName])

			data = validRegistration()
			data.LastName = tt.value
			errs = ValidateRegistration(data)
			wantLast := ""
			if tt.wantMsg != "" {
				wantLast = "Last" + tt.wantMsg[len("First"):]
			}
			assert.Equal(t, wantLast, errs[FieldLastName])
		})
	}
}

func TestValidateRegistrationEmail(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantMsg string
	}{
		{"valid", "a@b.com", ""},
		{"valid upper case", "USER@EXAMPLE.ORG", ""},
		{"valid plus and dots", "first.last+tag@mail.example.co", ""},
		{"valid after trim", " a@b.com ", ""},
		{"empty", "", "Email is required"},
		{"whitespace only", "  ", "Email is required"},
		{"missing at", "ab.com", "Invalid email address"},
		{"missing tld", "a@b", "Invalid email address"},
		{"one letter tld", "a@b.c", "Invalid email address"},
		{"numeric tld", "a@b.12", "Invalid email address"},
		{"missing local part", "@b.com", "Invalid email address"},
		{"inner space", "a b@c.com", "Invalid email address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := validRegistration()
			data.Email = tt.value
			assert.Equal(t, tt.wantMsg, ValidateRegistration(data)[FieldEmail])
		})
	}
}

// TestValidateRegistrationPassword checks the rules fire in order:
// required, length, digit, symbol.
func TestValidateRegistrationPassword(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantMsg string
	}{
		{"valid", "abc123!", ""},
		{"valid exactly six", "ab1!cd", ""},
		{"valid every symbol", "x1!@#$%^&*", ""},
		{"empty", "", "Password is required"},
		{"short beats digit and symbol", "abc", "Password must be at least 6 characters"},
		{"short with digit and symbol", "a1!", "Password must be at least 6 characters"},
		{"no digit", "abcdef!", "Password must contain at least one number"},
		{"no digit no symbol reports digit", "abcdefg", "Password must contain at least one number"},
		{"no symbol", "abcdef1", "Password must contain at least one special character (!@#$%^&*)"},
		{"symbol outside set", "abcdef1?", "Password must contain at least one special character (!@#$%^&*)"},
		{"spaces are not trimmed", "      ", "Password must contain at least one number"},
		{"astral character counts as two", "😀1!ab", ""},
		{"short multibyte password", "éé1!a", "Password must be at least 6 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := validRegistration()
			data.Password = tt.value
			assert.Equal(t, tt.wantMsg, ValidateRegistration(data)[FieldPassword])
		})
	}
}

func TestValidateRegistrationReportsEveryField(t *testing.T) {
	errs := ValidateRegistration(RegistrationData{})

	assert.Len(t, errs, 4)
	assert.Equal(t, "First name is required", errs[FieldFirstName])
	assert.Equal(t, "Last name is required", errs[FieldLastName])
	assert.Equal(t, "Email is required", errs[FieldEmail])
	assert.Equal(t, "Password is required", errs[FieldPassword])

	field, msg, ok := errs.First(RegistrationFields)
	assert.True(t, ok)
	assert.Equal(t, FieldFirstName, field)
	assert.Equal(t, "First name is required", msg)
}

func TestRegistrationDataTrimmed(t *testing.T) {
	data := RegistrationData{FirstName: " Ada ", LastName: "\tLovelace\n", Email: " a@b.com ", Password: " pw1! "}
	trimmed := data.Trimmed()

	assert.Equal(t, "Ada", trimmed.FirstName)
	assert.Equal(t, "Lovelace", trimmed.LastName)
	assert.Equal(t, "a@b.com", trimmed.Email)
	assert.Equal(t, " pw1! ", trimmed.Password)
}

func TestRegistrationDataWithField(t *testing.T) {
	data, ok := RegistrationData{}.WithField(FieldEmail, "a@b.com")
	assert.True(t, ok)
	assert.Equal(t, "a@b.com", data.Field(FieldEmail))

	_, ok = data.WithField("nickname", "x")
	assert.False(t, ok)
}
