package views

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"klikk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fillRegistration(v *RegisterView, first, last, email, password string) {
	v.Edit(models.FieldFirstName, first)
	v.Edit(models.FieldLastName, last)
	v.Edit(models.FieldEmail, email)
	v.Edit(models.FieldPassword, password)
}

// Scenario 1: a one-letter first name blocks submission.
func TestRegisterViewValidationBlocksSubmit(t *testing.T) {
	reg := &scriptedRegistrar{message: "Welcome"}
	view := NewRegisterView(reg)
	fillRegistration(view, "A", "Smith", "a@b.com", "abc123!")

	assert.False(t, view.Submit(context.Background()))

	assert.Empty(t, reg.calls, "no network call on validation failure")
	errs := view.Errors()
	assert.Equal(t, "First name must be at least 2 letters and contain only alphabets", errs[models.FieldFirstName])
	assert.Len(t, errs, 1)
	assert.False(t, view.Loading())
	assert.Equal(t, "A", view.Form().FirstName, "form is kept for correction")
}

// Scenario 2: a valid form is sent once, trimmed, and reset on success.
func TestRegisterViewSubmitSuccess(t *testing.T) {
	reg := &scriptedRegistrar{message: "Welcome"}
	view := NewRegisterView(reg)
	fillRegistration(view, "  Ada ", " Lovelace", " ada@example.com ", " engine1! ")

	require.True(t, view.Submit(context.Background()))

	require.Len(t, reg.calls, 1)
	assert.Equal(t, models.RegistrationData{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  " engine1! ",
	}, reg.calls[0])

	snap := view.Snapshot()
	assert.Equal(t, "Welcome", snap.Success)
	assert.Equal(t, models.RegistrationData{}, snap.Form)
	assert.Empty(t, snap.Errors)
	assert.False(t, snap.Loading)
}

func TestRegisterViewSubmitRejected(t *testing.T) {
	reg := &scriptedRegistrar{err: &models.EndpointError{Status: http.StatusConflict, Message: "User already exists"}}
	view := NewRegisterView(reg)
	fillRegistration(view, "Ada", "Lovelace", "ada@example.com", "engine1!")

	view.Submit(context.Background())

	snap := view.Snapshot()
	assert.Equal(t, models.FieldErrors{models.FieldGeneral: "User already exists"}, snap.Errors)
	assert.Empty(t, snap.Success)
	assert.Equal(t, "Ada", snap.Form.FirstName, "form is not reset on failure")
	assert.False(t, snap.Loading, "loading clears whatever the outcome")
}

func TestRegisterViewFallbackMessage(t *testing.T) {
	for _, err := range []error{
		&models.EndpointError{Status: http.StatusInternalServerError},
		&models.TransportError{Op: "send request", Err: errors.New("dns failure")},
	} {
		view := NewRegisterView(&scriptedRegistrar{err: err})
		fillRegistration(view, "Ada", "Lovelace", "ada@example.com", "engine1!")
		view.Submit(context.Background())

		assert.Equal(t, models.RegistrationFailedMessage, view.Errors()[models.FieldGeneral])
	}
}

// Editing clears exactly the edited field's error and any success message,
// whatever the new value is.
func TestRegisterViewEditClearsFieldError(t *testing.T) {
	view := NewRegisterView(&scriptedRegistrar{})
	view.Submit(context.Background())
	require.Len(t, view.Errors(), 4)

	view.Edit(models.FieldEmail, "still not an email")

	errs := view.Errors()
	assert.NotContains(t, errs, models.FieldEmail)
	assert.Contains(t, errs, models.FieldFirstName)
	assert.Contains(t, errs, models.FieldLastName)
	assert.Contains(t, errs, models.FieldPassword)
}

func TestRegisterViewEditClearsSuccess(t *testing.T) {
	view := NewRegisterView(&scriptedRegistrar{message: "Welcome"})
	fillRegistration(view, "Ada", "Lovelace", "ada@example.com", "engine1!")
	view.Submit(context.Background())
	require.Equal(t, "Welcome", view.Success())

	view.Edit(models.FieldFirstName, "G")
	assert.Empty(t, view.Success())
}

func TestRegisterViewEditKeepsGeneralError(t *testing.T) {
	view := NewRegisterView(&scriptedRegistrar{err: &models.EndpointError{Status: 409, Message: "User already exists"}})
	fillRegistration(view, "Ada", "Lovelace", "ada@example.com", "engine1!")
	view.Submit(context.Background())

	view.Edit(models.FieldEmail, "other@example.com")
	assert.Equal(t, "User already exists", view.Errors()[models.FieldGeneral])
}

func TestRegisterViewResubmitReplacesErrors(t *testing.T) {
	reg := &scriptedRegistrar{err: &models.EndpointError{Status: 409, Message: "User already exists"}}
	view := NewRegisterView(reg)
	fillRegistration(view, "Ada", "Lovelace", "ada@example.com", "engine1!")
	view.Submit(context.Background())

	view.Edit(models.FieldPassword, "weak")
	view.Submit(context.Background())

	assert.Equal(t, models.FieldErrors{
		models.FieldPassword: "Password must be at least 6 characters",
	}, view.Errors(), "validation replaces the previous general error")
	assert.Len(t, reg.calls, 1)
}

func TestRegisterViewEditUnknownField(t *testing.T) {
	view := NewRegisterView(&scriptedRegistrar{})
	view.Edit("nickname", "zed")
	assert.Equal(t, models.RegistrationData{}, view.Form())
}

func TestRegisterViewBeginGuardsDuplicateSubmit(t *testing.T) {
	view := NewRegisterView(&scriptedRegistrar{})
	fillRegistration(view, "Ada", "Lovelace", "ada@example.com", "engine1!")

	_, ok := view.Begin()
	require.True(t, ok)
	assert.True(t, view.Loading())

	_, ok = view.Begin()
	assert.False(t, ok)

	view.Settle("Welcome", nil)
	assert.False(t, view.Loading())
}

func TestRegisterViewSnapshotIsACopy(t *testing.T) {
	view := NewRegisterView(&scriptedRegistrar{})
	view.Submit(context.Background())

	snap := view.Snapshot()
	snap.Errors[models.FieldEmail] = "tampered"
	assert.Equal(t, "Email is required", view.Errors()[models.FieldEmail])
}
