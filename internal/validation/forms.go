// Package validation holds the declarative form schemas for the CMS and
// the public contact form. Validation is local: a form that fails never
// reaches the persistence layer.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

var nonDigits = regexp.MustCompile(`\D`)

func newValidator() *validator.Validate {
	v := validator.New()

	// Report field names from json tags so errors line up with payloads
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Loose "looks like a phone number": at least 10 digits after
	// stripping everything that is not a digit.
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		digits := nonDigits.ReplaceAllString(fl.Field().String(), "")
		return len(digits) >= 10
	})

	return v
}

// PropertyForm is the create/edit schema for properties. Numeric fields
// are non-negative; enumerated fields are constrained by the form UI
// against the canonical catalog, not here.
type PropertyForm struct {
	Name             string `json:"name" validate:"required,max=255"`
	Description      string `json:"description" validate:"max=10000"`
	Location         string `json:"location" validate:"required,max=255"`
	Type             string `json:"type" validate:"required,max=100"`
	Status           string `json:"status" validate:"required,max=100"`
	Valuation        string `json:"valuation" validate:"max=100"`
	InvestmentPeriod string `json:"investment_period" validate:"max=100"`
	PricePerSqft     uint   `json:"price_per_sqft"`
	TotalAreaSqft    uint   `json:"total_area_sqft"`
	Bedrooms         uint   `json:"bedrooms"`
	Bathrooms        uint   `json:"bathrooms"`
	ParkingSpaces    uint   `json:"parking_spaces"`
	MinInvestment    string `json:"min_investment" validate:"max=50"`
	ImageURL         string `json:"image_url" validate:"omitempty,url"`
	Rera             bool   `json:"rera"`
	Published        bool   `json:"published"`
	Featured         bool   `json:"featured"`
}

// BlogForm is the create schema for blog posts. Published is a pointer
// so an absent field defaults to live-immediately.
type BlogForm struct {
	Title     string `json:"title" validate:"required,max=200"`
	Excerpt   string `json:"excerpt" validate:"required,max=300"`
	Content   string `json:"content" validate:"required,min=50"`
	Category  string `json:"category" validate:"required,max=100"`
	ImageURL  string `json:"image_url" validate:"omitempty,url"`
	ReadTime  uint   `json:"read_time" validate:"required,gt=0"`
	Published *bool  `json:"published"`
}

// LeadForm is the public contact schema. Name and phone are required;
// email is optional but must be well-formed when present.
type LeadForm struct {
	Name       string `json:"name" validate:"required"`
	Phone      string `json:"phone" validate:"required,phone"`
	Email      string `json:"email" validate:"omitempty,email"`
	PropertyID uint64 `json:"property_id" validate:"required"`
}

// Normalize trims surrounding whitespace so "required" means non-empty
// after trim.
func (f *LeadForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Email = strings.TrimSpace(f.Email)
}

// Check validates a form against its schema and returns per-field
// messages, or nil when the form is valid.
func Check(form interface{}) map[string]string {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fields["_form"] = err.Error()
		return fields
	}

	for _, fe := range verrs {
		fields[fe.Field()] = messageFor(fe)
	}
	return fields
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "phone":
		return "must contain at least 10 digits"
	case "url":
		return "must be a valid URL"
	case "max":
		return "is too long (max " + fe.Param() + ")"
	case "min":
		return "is too short (min " + fe.Param() + ")"
	case "gt":
		return "must be greater than " + fe.Param()
	default:
		return "is invalid"
	}
}
