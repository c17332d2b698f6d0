package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"voterroll/internal/voter/models"
	fixtures "voterroll/pkg/testutil"
)

type StatsSuite struct {
	suite.Suite
	reg *Registry
}

func TestStatsSuite(t *testing.T) {
	suite.Run(t, new(StatsSuite))
}

func (s *StatsSuite) SetupTest() {
	s.reg = New(WithClock(fixtures.Clock()))
	s.reg.Hydrate(context.Background(), fixtures.SampleFields())
}

func (s *StatsSuite) TestAggregateStats_SampleRoll() {
	stats := s.reg.AggregateStats()

	s.Equal(Counts{Total: 5, Verified: 2, Unverified: 3, Male: 3, Female: 2}, stats.Counts)
	s.Equal(map[models.AgeGroup]int{
		models.AgeGroup18To25:  0,
		models.AgeGroup26To35:  2,
		models.AgeGroup36To45:  1,
		models.AgeGroup46To55:  1,
		models.AgeGroup56To65:  0,
		models.AgeGroup65Plus:  1,
		models.AgeGroupUnknown: 0,
	}, stats.AgeGroups)
	s.Equal(map[string]int{"OBC": 2, "General": 2, "SC": 1}, stats.Castes)
	s.Equal(map[string]int{"Party A": 2, "Party B": 1, "Party C": 1, UnknownBucket: 1}, stats.Parties)
}

func (s *StatsSuite) TestAggregateStats_Invariants() {
	s.reg.Insert(context.Background(), fixtures.NewFieldsBuilder("PQR6789012").WithGender("other").WithAge(nil).Build())
	s.reg.Insert(context.Background(), fixtures.NewFieldsBuilder("STU7890123").WithGender("").Build())

	for _, scope := range [][]string{nil, {"B001"}, {"B002", "B003"}, {"missing"}} {
		stats := s.reg.AggregateStats(scope...)
		s.Equal(stats.Total, stats.Verified+stats.Unverified)
		s.Equal(stats.Total, stats.Male+stats.Female+stats.Other)
		s.Equal(stats.Total, sum(stats.AgeGroups))
		s.Equal(stats.Total, sum(stats.Castes))
		s.Equal(stats.Total, sum(stats.Parties))
		s.Len(stats.AgeGroups, len(models.AgeGroups))
	}
}

func (s *StatsSuite) TestAggregateStats_BoothScope() {
	stats := s.reg.AggregateStats("B002")
	s.Equal(Counts{Total: 2, Verified: 1, Unverified: 1, Male: 1, Female: 1}, stats.Counts)

	s.Zero(s.reg.AggregateStats("B999").Total)
}

func (s *StatsSuite) TestAggregateStats_EmptyRegistry() {
	stats := New().AggregateStats()
	s.Zero(stats.Total)
	s.Len(stats.AgeGroups, len(models.AgeGroups))
	s.Empty(stats.Castes)
}

func (s *StatsSuite) TestBoothWiseStats() {
	s.reg.Insert(context.Background(), fixtures.NewFieldsBuilder("PQR6789012").WithBooth("").Build())

	got := s.reg.BoothWiseStats()

	s.Equal(map[string]BoothStats{
		"B001":          {Counts{Total: 2, Verified: 1, Unverified: 1, Male: 1, Female: 1}},
		"B002":          {Counts{Total: 2, Verified: 1, Unverified: 1, Male: 1, Female: 1}},
		"B003":          {Counts{Total: 1, Unverified: 1, Male: 1}},
		UnassignedBooth: {Counts{Total: 1, Unverified: 1, Male: 1}},
	}, got)
}

// Hydrate five voters, check totals, filter a booth, then select and clear
// the matches.
func (s *StatsSuite) TestSampleScenario() {
	stats := s.reg.AggregateStats()
	s.Equal(5, stats.Total)
	s.Equal(3, stats.Male)
	s.Equal(2, stats.Female)

	booth := s.reg.Filter(Criteria{Field: FilterBooth, Value: "B001"})
	s.Require().Len(booth, 2)
	for _, v := range booth {
		s.Equal("B001", v.BoothID)
	}
}

func sum[K comparable](m map[K]int) int {
	n := 0
	for _, v := range m {
		n += v
	}
	return n
}
