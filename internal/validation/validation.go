// Package validation checks decoded request fields against declarative rules
// and reports every violation in rule order.
package validation

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Presence tells whether a rule applies when its field was not supplied.
type Presence int

const (
	// Required rules run on absent fields as if the empty string was supplied.
	Required Presence = iota
	// Optional rules run only when the field is present.
	Optional
)

// Rule declares a check for a single field using validator tag syntax.
type Rule struct {
	Field    string
	Presence Presence
	Tag      string
	Message  string
}

// RuleSet is an ordered list of rules.
type RuleSet []Rule

// Violation names a field that failed a rule.
type Violation struct {
	Field   string
	Message string
}

// Fields maps supplied field names to their raw values. Absent keys are
// fields the caller did not send.
type Fields map[string]string

// Set records value under name when value is non-nil.
func (f Fields) Set(name string, value *string) {
	if value != nil {
		f[name] = *value
	}
}

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// ParseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
func ParseDate(s string) (time.Time, error) {
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, err
}

// Validator evaluates rule sets.
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator with the service's custom tags registered.
func New() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		if fl.Field().String() == "" {
			return true
		}
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})
	return &Validator{validate: v}
}

// Check returns the violations of fields against rules, in rule order.
func (v *Validator) Check(fields Fields, rules RuleSet) []Violation {
	var violations []Violation
	for _, rule := range rules {
		value, ok := fields[rule.Field]
		if !ok && rule.Presence == Optional {
			continue
		}
		if err := v.validate.Var(value, rule.Tag); err != nil {
			violations = append(violations, Violation{Field: rule.Field, Message: rule.Message})
		}
	}
	return violations
}

// Join renders violations as a single human readable string.
func Join(violations []Violation) string {
	msgs := make([]string, 0, len(violations))
	for _, violation := range violations {
		msgs = append(msgs, violation.Message)
	}
	return strings.Join(msgs, ", ")
}

// ValidID reports whether id has the shape of a record identifier.
func ValidID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
