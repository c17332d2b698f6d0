package audit

import "time"

// Action names a registry change recorded in the journal.
type Action string

const (
	ActionRegistryHydrated Action = "registry_hydrated"
	ActionVoterInserted    Action = "voter_inserted"
	ActionVoterUpdated     Action = "voter_updated"
	ActionVoterVerified    Action = "voter_verified"
)

// Event is one journal entry. It stays transport-agnostic so the in-memory
// store and the Kafka sink can share it.
type Event struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Action    Action    `json:"action"`
	EpicID    string    `json:"epic_id,omitempty"`
	BoothID   string    `json:"booth_id,omitempty"`
	// Fields lists the attributes an update touched.
	Fields []string `json:"fields,omitempty"`
	// Count is the number of records a bulk action covered.
	Count int `json:"count,omitempty"`
}
