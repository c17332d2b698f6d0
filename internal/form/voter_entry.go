package form

import (
	"fmt"
	"strconv"
	"strings"

	"voterroll/internal/voter/models"
	"voterroll/pkg/domain"
)

// Field names used by the voter entry screens.
const (
	FieldEpicID       = "epic_id"
	FieldName         = "name"
	FieldNamePhonetic = "name_phonetic"
	FieldMobile       = "mobile"
	FieldAge          = "age"
	FieldBoothID      = "booth_id"
	FieldArea         = "area"
	FieldGender       = "gender"
	FieldCaste        = "caste"
	FieldPreference   = "voting_preference"
	FieldCertainty    = "certainty_of_vote"
)

// VoterEntryRules is the rule set shared by the add-voter and edit-voter
// screens.
func VoterEntryRules() RuleSet {
	return RuleSet{
		FieldEpicID: {
			Required: "EPIC number is required",
			Pattern:  &Pattern{Regex: domain.EpicIDPattern, Message: "EPIC number must be 3 letters followed by 7 digits"},
		},
		FieldName: {
			MinLength: &MinLength{Value: 2, Message: "Name must be at least 2 characters"},
			Custom: func(value any, all Values) string {
				if IsMissing(value) && IsMissing(all[FieldNamePhonetic]) {
					return "Name or phonetic name is required"
				}
				return ""
			},
		},
		FieldMobile: {
			Pattern: &Pattern{Regex: domain.EntryMobilePattern, Message: "Enter a valid 10-digit mobile number"},
		},
		FieldAge: {
			Custom: func(value any, _ Values) string {
				if IsMissing(value) {
					return ""
				}
				age, ok := toInt(value)
				if !ok || age < 18 || age > 120 {
					return "Age must be between 18 and 120"
				}
				return ""
			},
		},
		FieldBoothID: {
			Required: "Booth is required",
		},
	}
}

// ToFields converts submitted entry values into raw registry fields.
// Values that are not strings are formatted; an unparsable age is dropped.
func ToFields(values Values) models.Fields {
	f := models.Fields{
		EpicID:           strings.ToUpper(str(values[FieldEpicID])),
		Name:             str(values[FieldName]),
		NamePhonetic:     str(values[FieldNamePhonetic]),
		Mobile:           str(values[FieldMobile]),
		BoothID:          str(values[FieldBoothID]),
		Area:             str(values[FieldArea]),
		Gender:           str(values[FieldGender]),
		Caste:            str(values[FieldCaste]),
		VotingPreference: str(values[FieldPreference]),
		CertaintyOfVote:  str(values[FieldCertainty]),
	}
	if age, ok := toInt(values[FieldAge]); ok {
		f.Age = &age
	}
	return f
}

func str(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), n == float64(int(n))
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	default:
		return 0, false
	}
}
