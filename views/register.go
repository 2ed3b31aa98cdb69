package views

import (
	"context"

	"klikk/models"

	"github.com/rohanthewiz/logger"
)

// Registrar performs the remote registration call.
type Registrar interface {
	Register(ctx context.Context, data models.RegistrationData) (message string, err error)
}

// RegisterView is the registration screen's state machine.
// Like LoginView it is single-owner and split into Begin/Settle.
type RegisterView struct {
	reg Registrar

	form    models.RegistrationData
	errors  models.FieldErrors
	success string
	loading bool
}

// RegisterSnapshot is a read-only copy of the view for rendering.
type RegisterSnapshot struct {
	Form    models.RegistrationData
	Errors  models.FieldErrors
	Success string
	Loading bool
}

// NewRegisterView creates an empty registration form.
func NewRegisterView(reg Registrar) *RegisterView {
	return &RegisterView{reg: reg, errors: models.FieldErrors{}}
}

// Form returns the field values as typed.
func (v *RegisterView) Form() models.RegistrationData { return v.form }

// Errors returns a copy of the current field errors.
func (v *RegisterView) Errors() models.FieldErrors { return v.errors.Clone() }

// Success is the message from the last successful registration.
func (v *RegisterView) Success() string { return v.success }

// Loading is true between Begin and Settle.
func (v *RegisterView) Loading() bool { return v.loading }

// Edit sets a field and clears that field's error and any success message.
// The new value is not re-validated. Unknown fields are ignored.
func (v *RegisterView) Edit(field, value string) {
	form, ok := v.form.WithField(field, value)
	if !ok {
		return
	}
	v.form = form
	delete(v.errors, field)
	v.success = ""
}

// Begin validates the form and, when it passes, marks the view loading and
// returns the trimmed data to send. On validation failure the field errors
// are recorded and nothing should be sent.
func (v *RegisterView) Begin() (models.RegistrationData, bool) {
	if v.loading {
		return models.RegistrationData{}, false
	}

	v.success = ""
	v.errors = models.ValidateRegistration(v.form)
	if v.errors.Any() {
		logger.Debug("Registration blocked by validation", "fields", len(v.errors))
		return models.RegistrationData{}, false
	}

	v.loading = true
	return v.form.Trimmed(), true
}

// Settle applies the outcome of the request started by Begin.
func (v *RegisterView) Settle(message string, err error) {
	v.loading = false

	if err != nil {
		logger.LogErr(err, "registration failed", "email", v.form.Email)
		v.success = ""
		v.errors = models.FieldErrors{
			models.FieldGeneral: models.ErrorMessage(err, models.RegistrationFailedMessage),
		}
		return
	}

	logger.Info("Registration successful", "email", v.form.Email)
	v.success = message
	v.form = models.RegistrationData{}
	v.errors = models.FieldErrors{}
}

// Submit runs a full registration: Begin, the remote call, Settle.
// It reports whether a request was sent.
func (v *RegisterView) Submit(ctx context.Context) bool {
	data, ok := v.Begin()
	if !ok {
		return false
	}
	msg, err := v.reg.Register(ctx, data)
	v.Settle(msg, err)
	return true
}

// Snapshot copies the view's state for rendering.
func (v *RegisterView) Snapshot() RegisterSnapshot {
	return RegisterSnapshot{
		Form:    v.form,
		Errors:  v.errors.Clone(),
		Success: v.success,
		Loading: v.loading,
	}
}
