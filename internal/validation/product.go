package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"attar/internal/models"
)

// pricePattern is the lexical form money fields must take: one or more
// digits, optionally a decimal point followed by one or two digits.
var pricePattern = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report violations under the wire field name, not the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// price: matches the two-decimal pattern and represents a positive value.
	if err := v.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if !pricePattern.MatchString(s) {
			return false
		}
		d, err := decimal.NewFromString(s)
		return err == nil && d.IsPositive()
	}); err != nil {
		panic(fmt.Sprintf("failed to register price validation: %v", err))
	}

	return v
}

// FieldError reports a single violated rule on a submission field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors is the full set of violations found in one submission.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, "\n")
}

// ValidateSubmission checks every intake rule against a submission and either
// returns a normalized catalog record or the list of all violations. All
// rules are evaluated; nothing short-circuits. The function is pure: the
// caller's submission is never mutated and repeated calls on the same input
// yield the same result.
func ValidateSubmission(sub models.ProductSubmission) (*models.Product, FieldErrors) {
	sub.Name = strings.TrimSpace(sub.Name)
	if sub.CountryOfOrigin == "" {
		sub.CountryOfOrigin = "India"
	}

	if err := validate.Struct(sub); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, FieldErrors{{Field: "", Message: err.Error()}}
		}
		out := make(FieldErrors, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, FieldError{Field: fe.Field(), Message: messageFor(fe)})
		}
		return nil, out
	}

	// Both parses are guaranteed to succeed after the price rule passed.
	sellingPrice, _ := decimal.NewFromString(sub.SellingPrice)
	mrp, _ := decimal.NewFromString(sub.MRP)

	product := &models.Product{
		Name:             sub.Name,
		Description:      sub.Description,
		Category:         models.ProductCategory(sub.Category),
		MeasurementUnit:  models.MeasurementUnit(sub.MeasurementUnit),
		InspiredBy:       sub.InspiredBy,
		Fragrance:        sub.Fragrance,
		TopNotes:         sub.TopNotes,
		MiddleNotes:      sub.MiddleNotes,
		BaseNotes:        sub.BaseNotes,
		SellingPrice:     sellingPrice,
		MRP:              mrp,
		Gender:           models.Gender(sub.Gender),
		Texture:          models.Texture(sub.Texture),
		CountryOfOrigin:  sub.CountryOfOrigin,
		HSNCode:          sub.HSNCode,
		ReturnPolicy:     sub.ReturnPolicy,
		CareInstructions: sub.CareInstructions,
	}
	if sub.Capacity != nil {
		product.Capacity = *sub.Capacity
	}
	if sub.NoOfItems != nil {
		product.NoOfItems = *sub.NoOfItems
	}
	return product, nil
}

// messageFor renders a human-readable reason for one violated rule.
func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "price":
		return fmt.Sprintf("%s must be a positive amount with at most 2 decimal places", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
