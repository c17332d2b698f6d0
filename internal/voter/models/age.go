package models

// AgeGroup is the registry statistics bin for a voter's age.
type AgeGroup string

const (
	AgeGroup18To25  AgeGroup = "18-25"
	AgeGroup26To35  AgeGroup = "26-35"
	AgeGroup36To45  AgeGroup = "36-45"
	AgeGroup46To55  AgeGroup = "46-55"
	AgeGroup56To65  AgeGroup = "56-65"
	AgeGroup65Plus  AgeGroup = "65+"
	AgeGroupUnknown AgeGroup = "Unknown"
)

// AgeGroups lists every group in display order, Unknown last.
var AgeGroups = []AgeGroup{
	AgeGroup18To25,
	AgeGroup26To35,
	AgeGroup36To45,
	AgeGroup46To55,
	AgeGroup56To65,
	AgeGroup65Plus,
	AgeGroupUnknown,
}

// AgeGroupOf bins age. The upper bound of every bin is inclusive (25 is
// 18-25, 26 is 26-35) and ages under 18 fall into the first bin.
func AgeGroupOf(age *int) AgeGroup {
	if age == nil {
		return AgeGroupUnknown
	}
	switch a := *age; {
	case a <= 25:
		return AgeGroup18To25
	case a <= 35:
		return AgeGroup26To35
	case a <= 45:
		return AgeGroup36To45
	case a <= 55:
		return AgeGroup46To55
	case a <= 65:
		return AgeGroup56To65
	default:
		return AgeGroup65Plus
	}
}
