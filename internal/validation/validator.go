package validation

import (
	"reflect"
	"regexp"
	"strings"

	"retail-ledger/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validator wraps the go-playground validator with the ledger's custom rules
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

// NewValidator creates a new validator instance with custom rules
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("account_number", validateAccountNumber)
	_ = v.RegisterValidation("national_id", validateNationalID)
	_ = v.RegisterValidation("account_kind", validateAccountKind)
	_ = v.RegisterValidation("account_category", validateAccountCategory)
	_ = v.RegisterValidation("money_amount", validateMoneyAmount)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Custom validation functions

// validateAccountNumber validates the fixed-width numeric account number
func validateAccountNumber(fl validator.FieldLevel) bool {
	accountNumber := fl.Field().String()
	if accountNumber == "" {
		return false
	}

	matched, _ := regexp.MatchString(`^\d{8,12}$`, accountNumber)
	return matched
}

// validateNationalID validates the national ID format: 6-20 digits
func validateNationalID(fl validator.FieldLevel) bool {
	nationalID := fl.Field().String()
	if nationalID == "" {
		return false
	}

	matched, _ := regexp.MatchString(`^\d{6,20}$`, nationalID)
	return matched
}

// validateAccountKind validates that the kind is savings or checking
func validateAccountKind(fl validator.FieldLevel) bool {
	return models.IsValidAccountKind(strings.ToLower(fl.Field().String()))
}

// validateAccountCategory validates that the category is person or business
func validateAccountCategory(fl validator.FieldLevel) bool {
	return models.IsValidAccountCategory(strings.ToLower(fl.Field().String()))
}

// validateMoneyAmount validates that a string field parses as a positive
// amount with at most two decimal places
func validateMoneyAmount(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if raw == "" {
		return false
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return false
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return false
	}

	return amount.Exponent() >= -2
}
