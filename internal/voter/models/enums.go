package models

import "strings"

// Gender is the canonical gender value stored on a record.
type Gender string

const (
	GenderMale    Gender = "Male"
	GenderFemale  Gender = "Female"
	GenderOther   Gender = "Other"
	GenderUnknown Gender = "Unknown"
)

// ParseGender maps survey spellings ("m", "FEMALE", "other") onto the
// canonical values. Anything unrecognized, including "", is Unknown.
func ParseGender(s string) Gender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return GenderMale
	case "female", "f":
		return GenderFemale
	case "other", "o", "third gender", "transgender":
		return GenderOther
	default:
		return GenderUnknown
	}
}

// Certainty is the field worker's confidence in the stated preference.
type Certainty string

const (
	CertaintyHigh   Certainty = "High"
	CertaintyMedium Certainty = "Medium"
	CertaintyLow    Certainty = "Low"
)

// ParseCertainty returns "" for values outside High/Medium/Low.
func ParseCertainty(s string) Certainty {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return CertaintyHigh
	case "medium":
		return CertaintyMedium
	case "low":
		return CertaintyLow
	default:
		return ""
	}
}

// VerificationStatus records whether a field worker confirmed the record.
type VerificationStatus string

const (
	StatusVerified   VerificationStatus = "Verified"
	StatusUnverified VerificationStatus = "Unverified"
)

// ParseVerificationStatus defaults blank input to Unverified and otherwise
// keeps the value verbatim. Matching is case-sensitive everywhere, so a feed
// sending "verified" does not count as Verified.
func ParseVerificationStatus(s string) VerificationStatus {
	s = strings.TrimSpace(s)
	if s == "" {
		return StatusUnverified
	}
	return VerificationStatus(s)
}
