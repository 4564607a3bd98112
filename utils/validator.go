package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	mobileRegex  = regexp.MustCompile(`^[6-9]\d{9}$`)
	aadharRegex  = regexp.MustCompile(`^\d{12}$`)
	pinCodeRegex = regexp.MustCompile(`^\d{6}$`)
)

// IndianStates is the fixed list offered by the address form
var IndianStates = []string{
	"Andhra Pradesh", "Arunachal Pradesh", "Assam", "Bihar", "Chhattisgarh",
	"Goa", "Gujarat", "Haryana", "Himachal Pradesh", "Jharkhand", "Karnataka",
	"Kerala", "Madhya Pradesh", "Maharashtra", "Manipur", "Meghalaya",
	"Mizoram", "Nagaland", "Odisha", "Punjab", "Rajasthan", "Sikkim",
	"Tamil Nadu", "Telangana", "Tripura", "Uttar Pradesh", "Uttarakhand",
	"West Bengal", "Andaman and Nicobar Islands", "Chandigarh",
	"Dadra and Nagar Haveli and Daman and Diu", "Delhi", "Jammu and Kashmir",
	"Ladakh", "Lakshadweep", "Puducherry",
}

var validate = newValidator()

// newValidator builds the shared validator with the custom Indian rules
func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterValidation("indianmobile", func(fl validator.FieldLevel) bool {
		return mobileRegex.MatchString(fl.Field().String())
	})

	v.RegisterValidation("aadhar", func(fl validator.FieldLevel) bool {
		return aadharRegex.MatchString(fl.Field().String())
	})

	v.RegisterValidation("pincode", func(fl validator.FieldLevel) bool {
		return pinCodeRegex.MatchString(fl.Field().String())
	})

	v.RegisterValidation("indianstate", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		for _, state := range IndianStates {
			if state == s {
				return true
			}
		}
		return false
	})

	return v
}

// ValidateStruct validates a request struct against its tags
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// FieldErrors converts a validation error into a field -> message map the
// frontend can render inline. Returns nil if err is not a validation error.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !asValidationErrors(err, &verrs) {
		return nil
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldName(fe)] = fieldMessage(fe)
	}
	return fields
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return false
	}
	*target = verrs
	return true
}

// fieldName maps a struct field to its JSON-ish snake_case name.
// Acronym runs stay together: "TransactionID" -> "transaction_id".
func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			prevLower := i > 0 && name[i-1] >= 'a' && name[i-1] <= 'z'
			if prevLower {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// fieldMessage builds a human message for one failed rule
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email address"
	case "indianmobile":
		return "Invalid mobile number"
	case "aadhar":
		return "Aadhaar number must be exactly 12 digits"
	case "pincode":
		return "PIN code must be exactly 6 digits"
	case "indianstate":
		return "Select a valid state"
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", fe.Param())
	case "gt", "gte":
		return "Value out of range"
	default:
		return "Invalid value"
	}
}
