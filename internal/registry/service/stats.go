package service

import (
	"voterroll/internal/voter/models"
)

const (
	// UnassignedBooth keys records with no booth in BoothWiseStats.
	UnassignedBooth = "unassigned"
	// UnknownBucket is the histogram key for a blank caste or preference.
	UnknownBucket = "Unknown"
)

// Counts are the per-record counters shared by Stats and BoothStats.
type Counts struct {
	Total      int `json:"total"`
	Verified   int `json:"verified"`
	Unverified int `json:"unverified"`
	Male       int `json:"male"`
	Female     int `json:"female"`
	// Other is every record whose gender is neither Male nor Female.
	Other int `json:"other"`
}

func (c *Counts) add(v *models.Voter) {
	c.Total++
	if v.IsVerified() {
		c.Verified++
	} else {
		c.Unverified++
	}
	switch v.Gender {
	case models.GenderMale:
		c.Male++
	case models.GenderFemale:
		c.Female++
	default:
		c.Other++
	}
}

// Stats aggregates a set of records.
type Stats struct {
	Counts
	AgeGroups map[models.AgeGroup]int `json:"age_groups"`
	Castes    map[string]int          `json:"castes"`
	Parties   map[string]int          `json:"parties"`
}

// BoothStats is the per-booth subset of Stats.
type BoothStats struct {
	Counts
}

// AggregateStats computes Stats in a single pass. With boothIDs, only records
// in those booths are counted.
func (r *Registry) AggregateStats(boothIDs ...string) Stats {
	return Aggregate(r.all(), boothIDs...)
}

// Aggregate is AggregateStats over a caller-supplied record set.
func Aggregate(records []*models.Voter, boothIDs ...string) Stats {
	var scope map[string]struct{}
	if len(boothIDs) > 0 {
		scope = make(map[string]struct{}, len(boothIDs))
		for _, id := range boothIDs {
			scope[id] = struct{}{}
		}
	}

	stats := Stats{
		AgeGroups: make(map[models.AgeGroup]int, len(models.AgeGroups)),
		Castes:    make(map[string]int),
		Parties:   make(map[string]int),
	}
	for _, g := range models.AgeGroups {
		stats.AgeGroups[g] = 0
	}

	for _, v := range records {
		if scope != nil {
			if _, ok := scope[v.BoothID]; !ok {
				continue
			}
		}
		stats.add(v)
		stats.AgeGroups[v.AgeGroup()]++
		stats.Castes[orUnknown(v.Caste)]++
		stats.Parties[orUnknown(v.VotingPreference)]++
	}
	return stats
}

// BoothWiseStats groups Counts by booth in a single pass.
func (r *Registry) BoothWiseStats() map[string]BoothStats {
	return BoothWise(r.all())
}

// BoothWise is BoothWiseStats over a caller-supplied record set.
func BoothWise(records []*models.Voter) map[string]BoothStats {
	out := make(map[string]BoothStats)
	for _, v := range records {
		booth := v.BoothID
		if booth == "" {
			booth = UnassignedBooth
		}
		bs := out[booth]
		bs.add(v)
		out[booth] = bs
	}
	return out
}

func orUnknown(s string) string {
	if s == "" {
		return UnknownBucket
	}
	return s
}
