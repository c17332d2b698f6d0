package service

import (
	"slices"
	"strconv"
	"strings"

	"voterroll/internal/voter/models"
)

// FilterField selects the attribute a Criteria matches on.
type FilterField string

const (
	FilterBooth        FilterField = "booth"
	FilterAge          FilterField = "age"
	FilterCaste        FilterField = "caste"
	FilterVerification FilterField = "verification"
	FilterGender       FilterField = "gender"
	FilterArea         FilterField = "area"
)

// Criteria is a single-attribute filter. Callers chain Filter calls to
// combine criteria.
type Criteria struct {
	Field FilterField
	Value string
}

// Filter returns the records matching c. An unrecognized field returns every
// record. The returned slice is the caller's; the records are shared.
func (r *Registry) Filter(c Criteria) []*models.Voter {
	records := r.all()

	var match func(*models.Voter) bool
	switch c.Field {
	case FilterBooth:
		match = func(v *models.Voter) bool { return v.BoothID == c.Value }
	case FilterAge:
		lo, hi, ok := ParseAgeRange(c.Value)
		if !ok {
			return []*models.Voter{}
		}
		match = func(v *models.Voter) bool {
			return v.Age != nil && *v.Age >= lo && (hi < 0 || *v.Age <= hi)
		}
	case FilterCaste:
		match = func(v *models.Voter) bool { return v.Caste == c.Value }
	case FilterVerification:
		match = func(v *models.Voter) bool { return string(v.VerificationStatus) == c.Value }
	case FilterGender:
		match = func(v *models.Voter) bool { return string(v.Gender) == c.Value }
	case FilterArea:
		needle := strings.ToLower(c.Value)
		match = func(v *models.Voter) bool { return strings.Contains(strings.ToLower(v.Area), needle) }
	default:
		return slices.Clone(records)
	}

	out := make([]*models.Voter, 0)
	for _, v := range records {
		if match(v) {
			out = append(out, v)
		}
	}
	return out
}

// ParseAgeRange parses "min-max" (inclusive) or "min+" (open-ended, hi is
// -1). Negative bounds and min > max are rejected.
func ParseAgeRange(s string) (lo, hi int, ok bool) {
	s = strings.TrimSpace(s)
	if base, open := strings.CutSuffix(s, "+"); open {
		n, err := strconv.Atoi(strings.TrimSpace(base))
		if err != nil || n < 0 {
			return 0, 0, false
		}
		return n, -1, true
	}
	minStr, maxStr, found := strings.Cut(s, "-")
	if !found {
		return 0, 0, false
	}
	lo, errLo := strconv.Atoi(strings.TrimSpace(minStr))
	hi, errHi := strconv.Atoi(strings.TrimSpace(maxStr))
	if errLo != nil || errHi != nil || lo < 0 || lo > hi {
		return 0, 0, false
	}
	return lo, hi, true
}

// Search matches query case-insensitively as a substring of name, phonetic
// name, EPIC id, mobile or area. A blank query returns every record.
func (r *Registry) Search(query string) []*models.Voter {
	records := r.all()
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return slices.Clone(records)
	}

	out := make([]*models.Voter, 0)
	for _, v := range records {
		if matchesQuery(v, q) {
			out = append(out, v)
		}
	}
	return out
}

func matchesQuery(v *models.Voter, q string) bool {
	for _, field := range [...]string{v.Name, v.NamePhonetic, v.EpicID, v.Mobile, v.Area} {
		if field != "" && strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
