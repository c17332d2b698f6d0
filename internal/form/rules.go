// Package form evaluates declarative validation rules for data-entry screens
// and tracks per-form state (values, errors, touched, submitting).
package form

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Values maps a field name to its current value.
type Values map[string]any

// MinLength fails when a present value is shorter than Value.
type MinLength struct {
	Value   int
	Message string
}

// Pattern fails when the string form of a present value does not match Regex.
type Pattern struct {
	Regex   *regexp.Regexp
	Message string
}

// CustomFunc returns a non-empty message to fail the field.
type CustomFunc func(value any, all Values) string

// Rule describes the checks for one field. A zero Rule accepts anything.
type Rule struct {
	// Required is the message reported for a missing value; "" means optional.
	Required  string
	MinLength *MinLength
	Pattern   *Pattern
	Custom    CustomFunc
}

// RuleSet maps field names to rules. Fields without a rule are never checked.
type RuleSet map[string]Rule

// Result is the outcome of validating a whole form.
type Result struct {
	IsValid bool
	Errors  map[string]string
}

// ValidateField evaluates required, minLength, pattern and custom in that
// order and returns the first failing message, or "".
func ValidateField(rules RuleSet, field string, value any, all Values) string {
	rule, ok := rules[field]
	if !ok {
		return ""
	}
	missing := IsMissing(value)
	if rule.Required != "" && missing {
		return rule.Required
	}
	if !missing {
		if rule.MinLength != nil && lengthOf(value) < rule.MinLength.Value {
			return rule.MinLength.Message
		}
		if rule.Pattern != nil && rule.Pattern.Regex != nil && !rule.Pattern.Regex.MatchString(stringOf(value)) {
			return rule.Pattern.Message
		}
	}
	if rule.Custom != nil {
		return rule.Custom(value, all)
	}
	return ""
}

// ValidateForm validates every field declared in rules against values.
// Errors holds an entry for each declared field; "" means the field passed.
func ValidateForm(rules RuleSet, values Values) Result {
	errs := make(map[string]string, len(rules))
	valid := true
	for field := range rules {
		msg := ValidateField(rules, field, values[field], values)
		errs[field] = msg
		if msg != "" {
			valid = false
		}
	}
	return Result{IsValid: valid, Errors: errs}
}

// IsMissing treats nil, "", and empty slices, arrays and maps as missing.
// Multi-select inputs submit collections, so an empty selection must fail a
// required rule the same way an empty text box does.
func IsMissing(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return s == ""
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return true
		}
		return IsMissing(rv.Elem().Interface())
	}
	return false
}

func lengthOf(value any) int {
	if s, ok := value.(string); ok {
		return utf8.RuneCountInString(s)
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len()
	}
	return utf8.RuneCountInString(stringOf(value))
}

func stringOf(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
