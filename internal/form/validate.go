package form

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

var validate *validator.Validate

func init() {
	validate = validator.New()
	// validator's own "email" tag is far looser than what the backend accepts.
	if err := validate.RegisterValidation("tix_email", isEmail); err != nil {
		panic(err)
	}
}

func isEmail(fl validator.FieldLevel) bool {
	return emailPattern.MatchString(fl.Field().String())
}

// rule is one check in a form's ordered rule list. When other is set the tag is
// evaluated against it (eqcsfield).
type rule struct {
	field   string
	value   string
	other   *string
	tag     string
	message string
}

// firstViolation evaluates rules in order and stops at the first failure.
func firstViolation(rules []rule) error {
	for _, r := range rules {
		var err error
		if r.other != nil {
			err = validate.VarWithValue(r.value, *r.other, r.tag)
		} else {
			err = validate.Var(r.value, r.tag)
		}

		if err != nil {
			return &ValidationError{Field: r.field, Message: r.message}
		}
	}

	return nil
}

type LoginInput struct {
	Email    string
	Password string
}

func (in LoginInput) normalize() LoginInput {
	return LoginInput{
		Email:    strings.TrimSpace(in.Email),
		Password: in.Password,
	}
}

// ValidateLogin checks presence then email format.
func ValidateLogin(in LoginInput) error {
	in = in.normalize()

	return firstViolation([]rule{
		{field: "email", value: in.Email, tag: "required", message: msgLoginRequired},
		{field: "password", value: strings.TrimSpace(in.Password), tag: "required", message: msgLoginRequired},
		{field: "email", value: in.Email, tag: "tix_email", message: msgInvalidEmail},
	})
}

type RegisterInput struct {
	Username        string
	FullName        string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
}

func (in RegisterInput) normalize() RegisterInput {
	return RegisterInput{
		Username:        strings.TrimSpace(in.Username),
		FullName:        strings.TrimSpace(in.FullName),
		Email:           strings.TrimSpace(in.Email),
		Phone:           strings.TrimSpace(in.Phone),
		Password:        in.Password,
		ConfirmPassword: in.ConfirmPassword,
	}
}

// ValidateRegister checks presence, email format, lengths and finally that both
// passwords match. Lengths count characters, not bytes.
func ValidateRegister(in RegisterInput) error {
	in = in.normalize()

	return firstViolation([]rule{
		{field: "username", value: in.Username, tag: "required", message: msgRegisterRequired},
		{field: "fullName", value: in.FullName, tag: "required", message: msgRegisterRequired},
		{field: "email", value: in.Email, tag: "required", message: msgRegisterRequired},
		{field: "phone", value: in.Phone, tag: "required", message: msgRegisterRequired},
		{field: "password", value: strings.TrimSpace(in.Password), tag: "required", message: msgRegisterRequired},
		{field: "confirmPassword", value: strings.TrimSpace(in.ConfirmPassword), tag: "required", message: msgRegisterRequired},
		{field: "email", value: in.Email, tag: "tix_email", message: msgInvalidEmail},
		{field: "username", value: in.Username, tag: "min=4", message: msgUsernameTooShort},
		{field: "password", value: in.Password, tag: "min=6", message: msgPasswordTooShort},
		{field: "confirmPassword", value: in.ConfirmPassword, other: &in.Password, tag: "eqcsfield", message: msgPasswordMismatch},
	})
}
