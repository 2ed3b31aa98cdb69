package models

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf16"

	"github.com/go-playground/validator/v10"
	"github.com/rohanthewiz/logger"
)

// Password policy for new accounts
const (
	PasswordMinLength = 6
	PasswordSymbols   = "!@#$%^&*"
	passwordDigits    = "0123456789"
)

var (
	namePattern    = regexp.MustCompile(`^[A-Za-z]{2,}$`)
	mailboxPattern = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)
)

// registrationRules carries the validation tags for RegistrationData.
// Tag order within a field is the order messages take precedence in;
// validator stops at the first failing tag of each field.
type registrationRules struct {
	FirstName string `json:"firstName" validate:"required,personname"`
	LastName  string `json:"lastName" validate:"required,personname"`
	Email     string `json:"email" validate:"required,mailbox"`
	Password  string `json:"password" validate:"required,pwlength,hasdigit,hassymbol"`
}

// registrationMessages maps field -> failing tag -> message shown to the user
var registrationMessages = map[string]map[string]string{
	FieldFirstName: {
		"required":   "First name is required",
		"personname": "First name must be at least 2 letters and contain only alphabets",
	},
	FieldLastName: {
		"required":   "Last name is required",
		"personname": "Last name must be at least 2 letters and contain only alphabets",
	},
	FieldEmail: {
		"required": "Email is required",
		"mailbox":  "Invalid email address",
	},
	FieldPassword: {
		"required":  "Password is required",
		"pwlength":  "Password must be at least 6 characters",
		"hasdigit":  "Password must contain at least one number",
		"hassymbol": "Password must contain at least one special character (" + PasswordSymbols + ")",
	},
}

var validatorInstance = validator.New()

func init() {
	// Report json names so errors key straight into FieldErrors
	validatorInstance.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validatorInstance.RegisterValidation("personname", matchPattern(namePattern))
	_ = validatorInstance.RegisterValidation("mailbox", matchPattern(mailboxPattern))
	_ = validatorInstance.RegisterValidation("pwlength", func(fl validator.FieldLevel) bool {
		return passwordLength(fl.Field().String()) >= PasswordMinLength
	})
	_ = validatorInstance.RegisterValidation("hasdigit", func(fl validator.FieldLevel) bool {
		return strings.ContainsAny(fl.Field().String(), passwordDigits)
	})
	_ = validatorInstance.RegisterValidation("hassymbol", func(fl validator.FieldLevel) bool {
		return strings.ContainsAny(fl.Field().String(), PasswordSymbols)
	})
}

// passwordLength counts UTF-16 code units, the length browsers report,
// so a character outside the BMP counts twice.
func passwordLength(s string) int {
	return len(utf16.Encode([]rune(s)))
}

func matchPattern(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// ValidateRegistration checks the registration form and returns one message
// per failing field. Names and email are checked after trimming; the
// password is checked as typed. An empty result means the data may be sent.
func ValidateRegistration(data RegistrationData) FieldErrors {
	errs := FieldErrors{}

	err := validatorInstance.Struct(registrationRules(data.Trimmed()))
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		logger.LogErr(err, "registration validator failed to run")
		errs[FieldGeneral] = "Registration failed. Please try again."
		return errs
	}

	for _, fe := range verrs {
		msg, ok := registrationMessages[fe.Field()][fe.Tag()]
		if !ok {
			msg = "Invalid value"
		}
		errs[fe.Field()] = msg
	}
	return errs
}

// First returns the first recorded message following order.
func (fe FieldErrors) First(order []string) (field, msg string, ok bool) {
	for _, f := range order {
		if m := fe[f]; m != "" {
			return f, m, true
		}
	}
	return "", "", false
}
