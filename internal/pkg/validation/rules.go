package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Course identifier pattern - uppercase letters and digits, optionally separated by - or _
	CourseIDPattern = `^[A-Z0-9]+([-_][A-Z0-9]+)*$`

	// Course identifier max length
	CourseIDMaxLength = 20

	// Title validation min/max length
	TitleMinLength = 1
	TitleMaxLength = 200

	// Description max length
	DescriptionMaxLength = 2000

	// Academic year bounds
	YearMin = 1900
	YearMax = 2200
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	CourseID *regexp.Regexp
}{
	CourseID: regexp.MustCompile(CourseIDPattern),
}

// String validation
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    value,
		Required: true,
	}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	if v.Required && v.Value == "" {
		return false
	}

	// Skip other validations for empty optional values
	if !v.Required && v.Value == "" {
		return true
	}

	if v.MinLen > 0 && len(v.Value) < v.MinLen {
		return false
	}

	if v.MaxLen > 0 && len(v.Value) > v.MaxLen {
		return false
	}

	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}

	return true
}

// Numeric validation with inclusive bounds
type NumericValidation struct {
	Value  int
	Min    int
	Max    int
	hasMin bool
	hasMax bool
}

// NewNumericValidation creates a new numeric validation
func NewNumericValidation(value int) *NumericValidation {
	return &NumericValidation{Value: value}
}

// WithMin sets minimum value
func (v *NumericValidation) WithMin(min int) *NumericValidation {
	v.Min = min
	v.hasMin = true
	return v
}

// WithMax sets maximum value
func (v *NumericValidation) WithMax(max int) *NumericValidation {
	v.Max = max
	v.hasMax = true
	return v
}

// Validate performs validation
func (v *NumericValidation) Validate() bool {
	if v.hasMin && v.Value < v.Min {
		return false
	}
	if v.hasMax && v.Value > v.Max {
		return false
	}
	return true
}

// IsValidCourseID reports whether id is a well-formed, already normalized course identifier
func IsValidCourseID(id string) bool {
	return NewStringValidation(id).
		WithMaxLength(CourseIDMaxLength).
		WithPattern(CompiledPatterns.CourseID).
		Validate()
}

// IsValidYear reports whether year lies within the accepted academic year range
func IsValidYear(year int) bool {
	return NewNumericValidation(year).WithMin(YearMin).WithMax(YearMax).Validate()
}
