package views

import (
	"voterroll/internal/voter/models"
)

// AgeBucket is a dashboard age band. Its boundaries differ from
// models.AgeGroup: 36-50 and 51-65 instead of three ten-year bands.
type AgeBucket string

const (
	Bucket18To25  AgeBucket = "18-25"
	Bucket26To35  AgeBucket = "26-35"
	Bucket36To50  AgeBucket = "36-50"
	Bucket51To65  AgeBucket = "51-65"
	Bucket65Plus  AgeBucket = "65+"
	BucketUnknown AgeBucket = "unknown"
)

// AgeBucketOrder lists the six buckets in display order.
var AgeBucketOrder = []AgeBucket{Bucket18To25, Bucket26To35, Bucket36To50, Bucket51To65, Bucket65Plus, BucketUnknown}

func AgeBucketOf(age *int) AgeBucket {
	if age == nil {
		return BucketUnknown
	}
	switch a := *age; {
	case a <= 25:
		return Bucket18To25
	case a <= 35:
		return Bucket26To35
	case a <= 50:
		return Bucket36To50
	case a <= 65:
		return Bucket51To65
	default:
		return Bucket65Plus
	}
}

// AgeBuckets holds every bucket, empty ones included.
type AgeBuckets map[AgeBucket][]*models.Voter

// Counts returns the size of each bucket.
func (b AgeBuckets) Counts() map[AgeBucket]int {
	out := make(map[AgeBucket]int, len(AgeBucketOrder))
	for _, k := range AgeBucketOrder {
		out[k] = len(b[k])
	}
	return out
}

// IndexByID maps EPIC id to record.
func IndexByID(records []*models.Voter) map[string]*models.Voter {
	out := make(map[string]*models.Voter, len(records))
	for _, v := range records {
		if v.EpicID == "" {
			continue
		}
		out[v.EpicID] = v
	}
	return out
}

// GroupByBooth groups records by booth id, preserving input order.
func GroupByBooth(records []*models.Voter) map[string][]*models.Voter {
	return groupBy(records, func(v *models.Voter) string { return v.BoothID })
}

func GroupByConstituency(records []*models.Voter) map[string][]*models.Voter {
	return groupBy(records, func(v *models.Voter) string { return v.ConstituencyID })
}

func GroupByGender(records []*models.Voter) map[models.Gender][]*models.Voter {
	return groupBy(records, func(v *models.Voter) models.Gender { return v.Gender })
}

func BucketByAge(records []*models.Voter) AgeBuckets {
	out := make(AgeBuckets, len(AgeBucketOrder))
	for _, k := range AgeBucketOrder {
		out[k] = []*models.Voter{}
	}
	for _, v := range records {
		k := AgeBucketOf(v.Age)
		out[k] = append(out[k], v)
	}
	return out
}

// Incomplete returns records missing any of mobile, photo URL, name or age.
func Incomplete(records []*models.Voter) []*models.Voter {
	out := make([]*models.Voter, 0)
	for _, v := range records {
		if v.Mobile == "" || v.PhotoURL == "" || v.Name == "" || v.Age == nil {
			out = append(out, v)
		}
	}
	return out
}

// Resolve looks ids up in index, dropping ids it does not hold.
func Resolve(index map[string]*models.Voter, ids []string) []*models.Voter {
	out := make([]*models.Voter, 0, len(ids))
	for _, id := range ids {
		if v, ok := index[id]; ok {
			out = append(out, v)
		}
	}
	return out
}

func groupBy[K comparable](records []*models.Voter, key func(*models.Voter) K) map[K][]*models.Voter {
	out := make(map[K][]*models.Voter)
	for _, v := range records {
		k := key(v)
		out[k] = append(out[k], v)
	}
	return out
}
