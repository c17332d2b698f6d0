package views

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"voterroll/internal/voter/models"
	fixtures "voterroll/pkg/testutil"
)

func TestAgeBucketOf(t *testing.T) {
	cases := []struct {
		age  *int
		want AgeBucket
	}{
		{nil, BucketUnknown},
		{fixtures.IntPtr(18), Bucket18To25},
		{fixtures.IntPtr(25), Bucket18To25},
		{fixtures.IntPtr(26), Bucket26To35},
		{fixtures.IntPtr(35), Bucket26To35},
		{fixtures.IntPtr(36), Bucket36To50},
		{fixtures.IntPtr(50), Bucket36To50},
		{fixtures.IntPtr(51), Bucket51To65},
		{fixtures.IntPtr(65), Bucket51To65},
		{fixtures.IntPtr(66), Bucket65Plus},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, AgeBucketOf(tc.age))
	}
}

func TestAgeBucketsDifferFromAgeGroups(t *testing.T) {
	age := fixtures.IntPtr(48)
	assert.Equal(t, Bucket36To50, AgeBucketOf(age))
	assert.Equal(t, models.AgeGroup46To55, models.AgeGroupOf(age))
}

func TestGroupByBooth_Subset(t *testing.T) {
	records := []*models.Voter{
		fixtures.NewFieldsBuilder("ABC1234567").WithBooth("B001").Voter(),
		fixtures.NewFieldsBuilder("DEF2345678").WithBooth("B002").Voter(),
		fixtures.NewFieldsBuilder("GHI3456789").WithBooth("B001").Voter(),
	}

	groups := GroupByBooth(records)

	assert.Len(t, groups, 2)
	assert.Equal(t, "ABC1234567", groups["B001"][0].EpicID)
	assert.Equal(t, "GHI3456789", groups["B001"][1].EpicID)
}

func TestBucketByAge_AllBucketsPresent(t *testing.T) {
	buckets := BucketByAge(nil)
	assert.Len(t, buckets, len(AgeBucketOrder))
	for _, k := range AgeBucketOrder {
		assert.NotNil(t, buckets[k])
	}
}

func TestIncomplete(t *testing.T) {
	complete := fixtures.NewFieldsBuilder("ABC1234567").Voter()
	complete.PhotoURL = "https://img.example/a.jpg"
	noAge := fixtures.NewFieldsBuilder("DEF2345678").WithAge(nil).Voter()
	noAge.PhotoURL = "https://img.example/b.jpg"
	noPhoto := fixtures.NewFieldsBuilder("GHI3456789").Voter()

	got := Incomplete([]*models.Voter{complete, noAge, noPhoto})

	assert.Equal(t, []*models.Voter{noAge, noPhoto}, got)
}

func TestResolve(t *testing.T) {
	v := fixtures.NewFieldsBuilder("ABC1234567").Voter()
	keyless := fixtures.NewFieldsBuilder("").Voter()
	index := IndexByID([]*models.Voter{keyless, v})
	assert.Len(t, index, 1)

	assert.Equal(t, []*models.Voter{v}, Resolve(index, []string{"missing", "ABC1234567"}))
	assert.Empty(t, Resolve(index, []string{""}))
	assert.Empty(t, Resolve(index, nil))
}
