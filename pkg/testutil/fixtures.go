// Package testutil holds shared fixtures for voter registry tests.
package testutil

import (
	"time"

	"voterroll/internal/voter/models"
)

// FixedNow is the ingest time used by fixtures.
var FixedNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// Clock returns a func that always reports FixedNow.
func Clock() func() time.Time {
	return func() time.Time { return FixedNow }
}

func IntPtr(v int) *int { return &v }

func StrPtr(v string) *string { return &v }

// Sample EPIC ids, in the order SampleFields returns them.
const (
	EpicRam    = "ABC1234567"
	EpicSita   = "DEF2345678"
	EpicMohan  = "GHI3456789"
	EpicGeeta  = "JKL4567890"
	EpicSuresh = "MNO5678901"
)

// SampleFields is a five-voter roll: three male, two female, two of them in
// booth B001.
func SampleFields() []models.Fields {
	return []models.Fields{
		{
			EpicID: EpicRam, BoothID: "B001", ConstituencyID: "AC-101", Name: "Ram Kumar",
			NamePhonetic: "raam kumaar", Gender: "Male", Age: IntPtr(34), Mobile: "9876543210",
			Area: "Gandhi Nagar", Caste: "OBC", VotingPreference: "Party A",
			VerificationStatus: "Verified", PhotoURL: "https://img.example/ram.jpg",
		},
		{
			EpicID: EpicSita, BoothID: "B001", ConstituencyID: "AC-101", Name: "Sita Devi",
			Gender: "Female", Age: IntPtr(28), Mobile: "9123456780", Area: "Gandhi Nagar",
			Caste: "General", VotingPreference: "Party B", PhotoURL: "https://img.example/sita.jpg",
		},
		{
			EpicID: EpicMohan, BoothID: "B002", ConstituencyID: "AC-101", Name: "Mohan Lal",
			Gender: "Male", Age: IntPtr(67), Area: "Nehru Colony", Caste: "SC",
			VotingPreference: "Party A", VerificationStatus: "Verified",
		},
		{
			EpicID: EpicGeeta, BoothID: "B002", ConstituencyID: "AC-102", Name: "Geeta Sharma",
			Gender: "Female", Age: IntPtr(45), Mobile: "9988776655", Area: "Nehru Colony",
			Caste: "General", PhotoURL: "https://img.example/geeta.jpg",
		},
		{
			EpicID: EpicSuresh, BoothID: "B003", ConstituencyID: "AC-102", Name: "Suresh Patel",
			Gender: "Male", Age: IntPtr(52), Mobile: "9012345678", Area: "Station Road",
			Caste: "OBC", VotingPreference: "Party C", PhotoURL: "https://img.example/suresh.jpg",
		},
	}
}

// FieldsBuilder builds a raw record with valid defaults.
type FieldsBuilder struct {
	f models.Fields
}

func NewFieldsBuilder(epicID string) *FieldsBuilder {
	return &FieldsBuilder{f: models.Fields{
		EpicID:  epicID,
		BoothID: "B001",
		Name:    "Test Voter",
		Gender:  "Male",
		Age:     IntPtr(30),
		Mobile:  "9876543210",
	}}
}

func (b *FieldsBuilder) WithBooth(booth string) *FieldsBuilder {
	b.f.BoothID = booth
	return b
}

func (b *FieldsBuilder) WithName(name string) *FieldsBuilder {
	b.f.Name = name
	return b
}

func (b *FieldsBuilder) WithGender(gender string) *FieldsBuilder {
	b.f.Gender = gender
	return b
}

func (b *FieldsBuilder) WithAge(age *int) *FieldsBuilder {
	b.f.Age = age
	return b
}

func (b *FieldsBuilder) WithMobile(mobile string) *FieldsBuilder {
	b.f.Mobile = mobile
	return b
}

func (b *FieldsBuilder) WithArea(area string) *FieldsBuilder {
	b.f.Area = area
	return b
}

func (b *FieldsBuilder) WithCaste(caste string) *FieldsBuilder {
	b.f.Caste = caste
	return b
}

func (b *FieldsBuilder) WithPreference(party string) *FieldsBuilder {
	b.f.VotingPreference = party
	return b
}

func (b *FieldsBuilder) Verified() *FieldsBuilder {
	b.f.VerificationStatus = string(models.StatusVerified)
	return b
}

func (b *FieldsBuilder) Build() models.Fields {
	return b.f
}

// Voter builds the record through models.New at FixedNow.
func (b *FieldsBuilder) Voter() *models.Voter {
	return models.New(b.f, FixedNow)
}
