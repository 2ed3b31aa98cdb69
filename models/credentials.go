package models

import "strings"

// Form field names. They double as the JSON keys of the auth API payloads
// and as the keys of FieldErrors.
const (
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldEmail     = "email"
	FieldPassword  = "password"

	// FieldGeneral holds an error that belongs to no single field
	FieldGeneral = "general"
)

// RegistrationFields lists the registration form fields in validation order.
var RegistrationFields = []string{FieldFirstName, FieldLastName, FieldEmail, FieldPassword}

// Credentials is the login form payload. It lives only for one submission.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegistrationData is the registration form payload.
type RegistrationData struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Trimmed returns a copy with surrounding whitespace removed from the
// name and email fields. The password is sent exactly as typed.
func (r RegistrationData) Trimmed() RegistrationData {
	return RegistrationData{
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
		Email:     strings.TrimSpace(r.Email),
		Password:  r.Password,
	}
}

// Field returns the value of the named form field.
func (r RegistrationData) Field(name string) string {
	switch name {
	case FieldFirstName:
		return r.FirstName
	case FieldLastName:
		return r.LastName
	case FieldEmail:
		return r.Email
	case FieldPassword:
		return r.Password
	}
	return ""
}

// WithField returns a copy with the named field set to value.
// Unknown names leave the data unchanged and report false.
func (r RegistrationData) WithField(name, value string) (RegistrationData, bool) {
	switch name {
	case FieldFirstName:
		r.FirstName = value
	case FieldLastName:
		r.LastName = value
	case FieldEmail:
		r.Email = value
	case FieldPassword:
		r.Password = value
	default:
		return r, false
	}
	return r, true
}

// FieldErrors maps a field name to a human readable message.
type FieldErrors map[string]string

// Has reports whether a message is recorded for field.
func (fe FieldErrors) Has(field string) bool {
	return fe[field] != ""
}

// Any reports whether at least one message is recorded.
func (fe FieldErrors) Any() bool {
	for _, msg := range fe {
		if msg != "" {
			return true
		}
	}
	return false
}

// Clone returns an independent copy, never nil.
func (fe FieldErrors) Clone() FieldErrors {
	out := make(FieldErrors, len(fe))
	for k, v := range fe {
		if v != "" {
			out[k] = v
		}
	}
	return out
}
