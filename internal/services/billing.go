package services

import (
	"fmt"
	"regexp"
	"strings"

	"furniro/internal/models"

	"github.com/go-playground/validator/v10"
)

var (
	// Digits, spaces, hyphens, plus signs, and parentheses only.
	phoneCharsRe = regexp.MustCompile(`^[0-9\s\-+()]+$`)
	// local@domain.tld, simpler than full RFC validation on purpose.
	simpleEmailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

var billingValidate = newBillingValidator()

// newBillingValidator registers the custom rules the billing form needs
// beyond the built-in tags: the phone character class and the relaxed email
// shape.
func newBillingValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("phonechars", func(fl validator.FieldLevel) bool {
		return phoneCharsRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("simpleemail", func(fl validator.FieldLevel) bool {
		return simpleEmailRe.MatchString(fl.Field().String())
	})
	return v
}

// Error map keys match the JSON field names of models.BillingDetails.
var billingFieldKeys = map[string]string{
	"FirstName":     "first_name",
	"LastName":      "last_name",
	"StreetAddress": "street_address",
	"TownCity":      "town_city",
	"ZipCode":       "zip_code",
	"Phone":         "phone",
	"Email":         "email",
}

var billingFieldLabels = map[string]string{
	"FirstName":     "First name",
	"LastName":      "Last name",
	"StreetAddress": "Street address",
	"TownCity":      "Town / City",
	"ZipCode":       "ZIP code",
	"Phone":         "Phone",
	"Email":         "Email",
}

// ValidateBilling checks a complete billing record against the checkout rules
// and returns a field→message map for every failing field. Country and
// province are pre-populated selections and are never invalid.
func ValidateBilling(data models.BillingDetails) (bool, map[string]string) {
	// Required means non-empty after trim.
	data.FirstName = strings.TrimSpace(data.FirstName)
	data.LastName = strings.TrimSpace(data.LastName)
	data.StreetAddress = strings.TrimSpace(data.StreetAddress)
	data.TownCity = strings.TrimSpace(data.TownCity)
	data.ZipCode = strings.TrimSpace(data.ZipCode)
	data.Phone = strings.TrimSpace(data.Phone)
	data.Email = strings.TrimSpace(data.Email)

	fieldErrors := make(map[string]string)
	err := billingValidate.Struct(data)
	if err == nil {
		return true, fieldErrors
	}

	for _, fe := range err.(validator.ValidationErrors) {
		key, ok := billingFieldKeys[fe.Field()]
		if !ok {
			key = fe.Field()
		}
		fieldErrors[key] = billingMessage(fe)
	}
	return false, fieldErrors
}

func billingMessage(fe validator.FieldError) string {
	label, ok := billingFieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}
	if fe.Tag() == "required" {
		return fmt.Sprintf("%s is required", label)
	}
	switch fe.Field() {
	case "Phone":
		return "Please enter a valid phone number"
	case "Email":
		return "Please enter a valid email address"
	}
	return fmt.Sprintf("%s is invalid", label)
}
