package models

import (
	"encoding/json"
	"reflect"
	"strings"

	dErrors "voterroll/pkg/domain-errors"
)

// Fields is a raw record as delivered by a bulk feed or an entry screen.
// Keys follow the feed's snake_case names; decoding drops unknown keys.
type Fields struct {
	EpicID         string `json:"epic_id"`
	BoothID        string `json:"booth_id"`
	ConstituencyID string `json:"constituency_id"`
	SerialNumber   string `json:"serial_number"`
	Name           string `json:"name"`
	NamePhonetic   string `json:"name_phonetic"`
	GuardianName   string `json:"guardian_name"`
	Gender         string `json:"gender"`
	DateOfBirth    string `json:"date_of_birth"`
	Age            *int   `json:"age"`
	Mobile         string `json:"mobile"`
	PhotoURL       string `json:"photo_url"`

	PartNumber  string `json:"part_number"`
	Area        string `json:"area"`
	HouseNumber string `json:"house_number"`

	LastVotedParty   string `json:"last_voted_party"`
	VotingPreference string `json:"voting_preference"`
	CertaintyOfVote  string `json:"certainty_of_vote"`
	VoteType         string `json:"vote_type"`
	Availability     string `json:"availability"`

	Religion         string `json:"religion"`
	Category         string `json:"category"`
	Caste            string `json:"caste"`
	EducationLevel   string `json:"education_level"`
	EmploymentStatus string `json:"employment_status"`
	BusinessType     string `json:"business_type"`
	JobRole          string `json:"job_role"`
	SalaryRange      string `json:"salary_range"`

	VerificationStatus string `json:"verification_status"`
}

// Patch lists the fields Update may change. A nil pointer leaves the field
// alone. EpicID and the audit timestamps are deliberately absent.
type Patch struct {
	BoothID        *string `json:"booth_id,omitempty"`
	ConstituencyID *string `json:"constituency_id,omitempty"`
	SerialNumber   *string `json:"serial_number,omitempty"`
	Name           *string `json:"name,omitempty"`
	NamePhonetic   *string `json:"name_phonetic,omitempty"`
	GuardianName   *string `json:"guardian_name,omitempty"`
	Gender         *Gender `json:"gender,omitempty"`
	DateOfBirth    *string `json:"date_of_birth,omitempty"`
	Age            *int    `json:"age,omitempty"`
	Mobile         *string `json:"mobile,omitempty"`
	PhotoURL       *string `json:"photo_url,omitempty"`

	PartNumber  *string `json:"part_number,omitempty"`
	Area        *string `json:"area,omitempty"`
	HouseNumber *string `json:"house_number,omitempty"`

	LastVotedParty   *string    `json:"last_voted_party,omitempty"`
	VotingPreference *string    `json:"voting_preference,omitempty"`
	CertaintyOfVote  *Certainty `json:"certainty_of_vote,omitempty"`
	VoteType         *string    `json:"vote_type,omitempty"`
	Availability     *string    `json:"availability,omitempty"`

	Religion         *string `json:"religion,omitempty"`
	Category         *string `json:"category,omitempty"`
	Caste            *string `json:"caste,omitempty"`
	EducationLevel   *string `json:"education_level,omitempty"`
	EmploymentStatus *string `json:"employment_status,omitempty"`
	BusinessType     *string `json:"business_type,omitempty"`
	JobRole          *string `json:"job_role,omitempty"`
	SalaryRange      *string `json:"salary_range,omitempty"`

	VerificationStatus *VerificationStatus `json:"verification_status,omitempty"`
}

// UnmarshalJSON decodes a patch and canonicalizes gender, certainty and
// verification status the same way New does, so "f" becomes Female. A
// certainty outside High/Medium/Low is a validation error.
func (p *Patch) UnmarshalJSON(data []byte) error {
	type plain Patch
	var raw struct {
		plain
		Gender             *string `json:"gender,omitempty"`
		CertaintyOfVote    *string `json:"certainty_of_vote,omitempty"`
		VerificationStatus *string `json:"verification_status,omitempty"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, "malformed voter patch")
	}

	out := Patch(raw.plain)
	if raw.Gender != nil {
		g := ParseGender(*raw.Gender)
		out.Gender = &g
	}
	if raw.CertaintyOfVote != nil {
		c := ParseCertainty(*raw.CertaintyOfVote)
		if c == "" && strings.TrimSpace(*raw.CertaintyOfVote) != "" {
			return dErrors.Validation("certainty_of_vote must be High, Medium or Low")
		}
		out.CertaintyOfVote = &c
	}
	if raw.VerificationStatus != nil {
		vs := ParseVerificationStatus(*raw.VerificationStatus)
		out.VerificationStatus = &vs
	}
	*p = out
	return nil
}

// IsEmpty reports whether the patch sets nothing.
func (p Patch) IsEmpty() bool {
	return p == Patch{}
}

// Verify is shorthand for a patch that only marks the record Verified.
func Verify() Patch {
	s := StatusVerified
	return Patch{VerificationStatus: &s}
}

func (p Patch) apply(v *Voter) {
	setString(&v.BoothID, p.BoothID)
	setString(&v.ConstituencyID, p.ConstituencyID)
	setString(&v.SerialNumber, p.SerialNumber)
	setString(&v.Name, p.Name)
	setString(&v.NamePhonetic, p.NamePhonetic)
	setString(&v.GuardianName, p.GuardianName)
	if p.Gender != nil {
		v.Gender = *p.Gender
	}
	setString(&v.DateOfBirth, p.DateOfBirth)
	if p.Age != nil {
		a := *p.Age
		v.Age = &a
	}
	setString(&v.Mobile, p.Mobile)
	setString(&v.PhotoURL, p.PhotoURL)
	setString(&v.PartNumber, p.PartNumber)
	setString(&v.Area, p.Area)
	setString(&v.HouseNumber, p.HouseNumber)
	setString(&v.LastVotedParty, p.LastVotedParty)
	setString(&v.VotingPreference, p.VotingPreference)
	if p.CertaintyOfVote != nil {
		v.CertaintyOfVote = *p.CertaintyOfVote
	}
	setString(&v.VoteType, p.VoteType)
	setString(&v.Availability, p.Availability)
	setString(&v.Religion, p.Religion)
	setString(&v.Category, p.Category)
	setString(&v.Caste, p.Caste)
	setString(&v.EducationLevel, p.EducationLevel)
	setString(&v.EmploymentStatus, p.EmploymentStatus)
	setString(&v.BusinessType, p.BusinessType)
	setString(&v.JobRole, p.JobRole)
	setString(&v.SalaryRange, p.SalaryRange)
	if p.VerificationStatus != nil {
		v.VerificationStatus = *p.VerificationStatus
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// FieldNames returns the snake_case names of the fields p sets, in
// declaration order.
func (p Patch) FieldNames() []string {
	rv := reflect.ValueOf(p)
	rt := rv.Type()
	var names []string
	for i := 0; i < rt.NumField(); i++ {
		if rv.Field(i).IsNil() {
			continue
		}
		tag, _, _ := strings.Cut(rt.Field(i).Tag.Get("json"), ",")
		names = append(names, tag)
	}
	return names
}
