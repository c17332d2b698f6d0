// Package models defines the voter registry entity.
//
// Construction is lenient: New accepts whatever a field survey or a bulk feed
// delivered and only Validate reports what is wrong with it. Mutation goes
// through Update with an explicit Patch so that UpdatedAt can never fall behind
// CreatedAt.
package models

import (
	"encoding/json"
	"strings"
	"time"

	"voterroll/pkg/domain"
	dErrors "voterroll/pkg/domain-errors"
)

// UnknownName is returned by DisplayName when neither name field is set.
const UnknownName = "Unknown"

// Voter is one electoral-roll row. String attributes use "" for null.
//
// Records held by a registry snapshot are shared and must be treated as
// read-only; change them through the registry's Update.
type Voter struct {
	// identity
	EpicID         string
	BoothID        string
	ConstituencyID string
	SerialNumber   string
	Name           string
	NamePhonetic   string
	GuardianName   string
	Gender         Gender
	DateOfBirth    string
	Age            *int
	Mobile         string
	PhotoURL       string

	// location
	PartNumber  string
	Area        string
	HouseNumber string

	// political
	LastVotedParty   string
	VotingPreference string
	CertaintyOfVote  Certainty
	VoteType         string
	Availability     string

	// demographic and employment
	Religion         string
	Category         string
	Caste            string
	EducationLevel   string
	EmploymentStatus string
	BusinessType     string
	JobRole          string
	SalaryRange      string

	VerificationStatus VerificationStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// New builds a Voter from raw fields. It never rejects a record: strings are
// trimmed, enum spellings are canonicalized, negative ages become unknown and
// an invalid mobile is kept as-is for Validate to report.
func New(f Fields, now time.Time) *Voter {
	v := &Voter{
		EpicID:             strings.TrimSpace(f.EpicID),
		BoothID:            strings.TrimSpace(f.BoothID),
		ConstituencyID:     strings.TrimSpace(f.ConstituencyID),
		SerialNumber:       strings.TrimSpace(f.SerialNumber),
		Name:               strings.TrimSpace(f.Name),
		NamePhonetic:       strings.TrimSpace(f.NamePhonetic),
		GuardianName:       strings.TrimSpace(f.GuardianName),
		Gender:             ParseGender(f.Gender),
		DateOfBirth:        strings.TrimSpace(f.DateOfBirth),
		Age:                normalizeAge(f.Age),
		Mobile:             strings.TrimSpace(f.Mobile),
		PhotoURL:           strings.TrimSpace(f.PhotoURL),
		PartNumber:         strings.TrimSpace(f.PartNumber),
		Area:               strings.TrimSpace(f.Area),
		HouseNumber:        strings.TrimSpace(f.HouseNumber),
		LastVotedParty:     strings.TrimSpace(f.LastVotedParty),
		VotingPreference:   strings.TrimSpace(f.VotingPreference),
		CertaintyOfVote:    ParseCertainty(f.CertaintyOfVote),
		VoteType:           strings.TrimSpace(f.VoteType),
		Availability:       strings.TrimSpace(f.Availability),
		Religion:           strings.TrimSpace(f.Religion),
		Category:           strings.TrimSpace(f.Category),
		Caste:              strings.TrimSpace(f.Caste),
		EducationLevel:     strings.TrimSpace(f.EducationLevel),
		EmploymentStatus:   strings.TrimSpace(f.EmploymentStatus),
		BusinessType:       strings.TrimSpace(f.BusinessType),
		JobRole:            strings.TrimSpace(f.JobRole),
		SalaryRange:        strings.TrimSpace(f.SalaryRange),
		VerificationStatus: ParseVerificationStatus(f.VerificationStatus),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	return v
}

// NewFromJSON decodes a raw feed record and builds a Voter from it.
// Unknown keys are ignored; only undecodable input is an error.
func NewFromJSON(raw []byte, now time.Time) (*Voter, error) {
	var f Fields
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "malformed voter record")
	}
	return New(f, now), nil
}

func normalizeAge(age *int) *int {
	if age == nil || *age < 0 {
		return nil
	}
	a := *age
	return &a
}

// ValidationResult lists every problem found on a record, in check order.
type ValidationResult struct {
	IsValid bool
	Errors  []string
}

// Err converts the result into a CodeValidation domain error, or nil.
func (r ValidationResult) Err() error {
	if r.IsValid {
		return nil
	}
	return dErrors.Validation(r.Errors...)
}

// Validation messages reported by Validate.
const (
	MsgEpicIDRequired = "epic_id is required"
	MsgNameRequired   = "name or name_phonetic is required"
	MsgMobileFormat   = "mobile must be exactly 10 digits"
	MsgAgeNegative    = "age must not be negative"
)

// Validate checks the record and accumulates all violations.
func (v *Voter) Validate() ValidationResult {
	var errs []string
	if strings.TrimSpace(v.EpicID) == "" {
		errs = append(errs, MsgEpicIDRequired)
	}
	if strings.TrimSpace(v.Name) == "" && strings.TrimSpace(v.NamePhonetic) == "" {
		errs = append(errs, MsgNameRequired)
	}
	if v.Mobile != "" && !domain.IsMobile(v.Mobile) {
		errs = append(errs, MsgMobileFormat)
	}
	if v.Age != nil && *v.Age < 0 {
		errs = append(errs, MsgAgeNegative)
	}
	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

// Update merges the set fields of p and refreshes UpdatedAt. The timestamp is
// clamped so it never precedes CreatedAt, even with a skewed clock.
func (v *Voter) Update(p Patch, now time.Time) {
	p.apply(v)
	if now.Before(v.CreatedAt) {
		now = v.CreatedAt
	}
	v.UpdatedAt = now
}

// DisplayName never returns "".
func (v *Voter) DisplayName() string {
	if v.Name != "" {
		return v.Name
	}
	if v.NamePhonetic != "" {
		return v.NamePhonetic
	}
	return UnknownName
}

// IsVerified compares against the canonical Verified value, case-sensitively.
func (v *Voter) IsVerified() bool {
	return v.VerificationStatus == StatusVerified
}

// AgeGroup bins the voter's age for registry statistics.
func (v *Voter) AgeGroup() AgeGroup {
	return AgeGroupOf(v.Age)
}

// Clone returns a deep copy.
func (v *Voter) Clone() *Voter {
	c := *v
	if v.Age != nil {
		a := *v.Age
		c.Age = &a
	}
	return &c
}
