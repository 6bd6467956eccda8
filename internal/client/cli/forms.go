package cli

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// validate is shared across forms; validator instances cache struct metadata.
var validate = validator.New()

// registerForm carries the registration inputs. Validation here mirrors the
// sign-up form rules: everything filled in, username length, email shape,
// password length, matching confirmation. The services layer checks nothing
// beyond presence, so this is the only gate before the network call.
type registerForm struct {
	FullName        string `validate:"required"`
	Username        string `validate:"required,min=3"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=6"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

// Validate returns a user-facing error message for the first violated rule.
// Missing fields win over format problems, matching the order the rules are
// presented to the user.
func (f registerForm) Validate() error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return errors.New("Please fill in all fields")
		}
	}

	fe := verrs[0]
	switch {
	case fe.StructField() == "Username":
		return errors.New("Username must be at least 3 characters")
	case fe.StructField() == "Email":
		return errors.New("Please enter a valid email address")
	case fe.StructField() == "Password":
		return errors.New("Password must be at least 6 characters")
	case fe.StructField() == "ConfirmPassword":
		return errors.New("Passwords do not match")
	}
	return err
}

// tripForm carries the add/edit trip inputs.
type tripForm struct {
	Route       string  `validate:"required"`
	VehicleType string  `validate:"required,oneof=car bike bus train motorcycle"`
	Distance    float64 `validate:"gt=0"`
	Date        string  `validate:"required,datetime=2006-01-02"`
}

// Validate returns a user-facing error message for the first violated rule.
func (f tripForm) Validate() error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	switch fe := verrs[0]; fe.StructField() {
	case "Route":
		return errors.New("Please enter a route")
	case "VehicleType":
		return errors.New("Please choose a valid vehicle type")
	case "Distance":
		return errors.New("Please enter a valid distance")
	case "Date":
		return errors.New("Please enter a valid date (YYYY-MM-DD)")
	}
	return err
}
