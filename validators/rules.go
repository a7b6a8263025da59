package validators

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Single validation registry shared by every request validator, so formats
// like GSTIN and PAN are defined exactly once.

var (
	mobileRe = regexp.MustCompile(`^\d{10}$`)
	aadharRe = regexp.MustCompile(`^\d{12}$`)
	gstinRe  = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
	panRe    = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	otpRe    = regexp.MustCompile(`^\d{6}$`)
)

// Validate is the shared validator instance with the domain rules registered.
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report field names from json tags so error maps match request bodies
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "mobileIN", mobileRe)
	mustRegister(v, "aadhar", aadharRe)
	mustRegister(v, "gstin", gstinRe)
	mustRegister(v, "pan", panRe)
	mustRegister(v, "otp", otpRe)

	return v
}

func mustRegister(v *validator.Validate, tag string, re *regexp.Regexp) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
}

// CheckStruct validates s and flattens any failures into a field->message map.
// A nil result means the struct is valid.
func CheckStruct(s interface{}) map[string]string {
	err := Validate.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrors := make(map[string]string)
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fieldErrors[fe.Field()] = messageFor(fe)
		}
	} else {
		fieldErrors["body"] = "Invalid request body!"
	}
	return fieldErrors
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required!"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at least %s characters long!", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s!", fe.Param())
	case "email":
		return "Invalid email!"
	case "mobileIN":
		return "Invalid mobile number!"
	case "aadhar":
		return "Aadhar must be 12 digits!"
	case "gstin":
		return "Invalid GSTIN!"
	case "pan":
		return "Invalid PAN!"
	case "otp":
		return "OTP must be 6 digits!"
	case "oneof":
		return "Invalid value!"
	default:
		return "Invalid value!"
	}
}

// ParseDate parses a calendar date in YYYY-MM-DD form.
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
