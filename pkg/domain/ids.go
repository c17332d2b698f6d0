// Package domain holds identifier and contact-number primitives shared by the
// registry, the forms and the adapters.
package domain

import (
	"regexp"
	"strings"

	dErrors "voterroll/pkg/domain-errors"
)

// EpicIDPattern matches an Election Photo Identity Card number:
// three uppercase letters followed by seven digits.
var EpicIDPattern = regexp.MustCompile(`^[A-Z]{3}[0-9]{7}$`)

// MobilePattern matches a stored mobile number: exactly ten digits.
var MobilePattern = regexp.MustCompile(`^[0-9]{10}$`)

// EntryMobilePattern is stricter and is used on entry forms, where the number
// must also start with a valid Indian mobile prefix.
var EntryMobilePattern = regexp.MustCompile(`^[6-9][0-9]{9}$`)

// EpicID is the registry primary key.
type EpicID string

// ParseEpicID normalizes s (trim, upper-case) and checks the EPIC format.
// Use at trust boundaries; the registry itself keys on whatever was ingested.
func ParseEpicID(s string) (EpicID, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if v == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "epic_id cannot be empty")
	}
	if !EpicIDPattern.MatchString(v) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid epic_id format")
	}
	return EpicID(v), nil
}

func (id EpicID) String() string { return string(id) }
func (id EpicID) IsNil() bool    { return id == "" }

// IsMobile reports whether s is exactly ten ASCII digits.
func IsMobile(s string) bool {
	return MobilePattern.MatchString(s)
}
