package model

import "time"

// Snapshot is an immutable, named capture of a working set plus the persona
// and aggregate that were computed for it. Snapshots are owned by exactly
// one user namespace; saving the same id again replaces the content.
type Snapshot struct {
	CreatedAt time.Time            `json:"createdAt"`
	ID        string               `json:"id"`
	Persona   string               `json:"persona,omitempty"`
	Analysis  map[Category]float64 `json:"analysis,omitempty"`
	Records   []Record             `json:"data"`
}
