// Package session implements the analysis engine: it owns the working set
// of classified records for the active session, recomputes category totals
// and the dominant persona on every mutation, and freezes the result into
// snapshots on finish.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/spendy-app/spendy/internal/category"
	"github.com/spendy-app/spendy/internal/common"
	"github.com/spendy-app/spendy/internal/model"
	"github.com/spendy-app/spendy/internal/service"
)

// Session holds the working set for one active user session. The working
// set is append-only: it grows by batch ingestion and is only ever cleared
// wholesale by Reset or a successful Finish.
//
// Sessions are not safe for concurrent use; the design is a single active
// caller with resolve-append-recompute happening atomically per call.
type Session struct {
	store         service.SnapshotStore
	forcedPersona string
	records       []model.Record
	analysis      model.Analysis
}

// New creates a session backed by the given snapshot store.
func New(store service.SnapshotStore) *Session {
	return &Session{store: store}
}

// Ingest classifies the rows, appends them to the working set in order and
// recomputes the aggregate synchronously. Repeated identical rows are
// additive; there is no deduplication. Returns the number of rows ingested.
func (s *Session) Ingest(rows []model.RawRecord) int {
	records := category.ResolveAll(rows)
	s.records = append(s.records, records...)
	s.recompute()

	slog.Debug("ingested rows",
		"count", len(records),
		"working_set", len(s.records))
	return len(records)
}

// Len returns the number of records in the working set.
func (s *Session) Len() int {
	return len(s.records)
}

// Records returns a copy of the working set.
func (s *Session) Records() []model.Record {
	out := make([]model.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Aggregate returns the current analysis, optionally excluding categories.
// Exclusion is a non-destructive view: the working set and the unfiltered
// analysis are untouched. While a forced persona is active the poisoned
// analysis is returned regardless of filters.
func (s *Session) Aggregate(exclude ...model.Category) model.Analysis {
	if s.forcedPersona != "" {
		return poisonedAnalysis(s.forcedPersona)
	}
	if len(exclude) == 0 {
		return s.analysis
	}
	return Compute(s.records, exclude...)
}

// ForcePersona overrides the persona with a sentinel label and collapses
// the analysis to a single synthetic Unknown entry. This models a
// deliberate poison state, distinct from "no data": further ingestion is
// permitted but recomputation stays suppressed until ClearForcedPersona or
// Reset.
func (s *Session) ForcePersona(label string) {
	s.forcedPersona = label
	s.analysis = poisonedAnalysis(label)
	slog.Info("persona forced", "label", label)
}

// ClearForcedPersona leaves the poison state and recomputes the analysis
// from the working set.
func (s *Session) ClearForcedPersona() {
	s.forcedPersona = ""
	s.recompute()
}

// Forced reports whether a forced persona is active.
func (s *Session) Forced() bool {
	return s.forcedPersona != ""
}

// Reset clears the working set, analysis and any forced persona back to
// the initial empty state. The snapshot store is not touched.
func (s *Session) Reset() {
	s.records = nil
	s.analysis = model.Analysis{}
	s.forcedPersona = ""
}

// Finish freezes the current working set plus its analysis into a new
// snapshot, persists it under the user's namespace and resets the session.
func (s *Session) Finish(ctx context.Context, userID string) (model.Snapshot, error) {
	if len(s.records) == 0 {
		return model.Snapshot{}, common.ErrNoRecords
	}

	analysis := s.Aggregate()
	snapshot := model.Snapshot{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Records:   s.Records(),
		Persona:   analysis.Persona,
		Analysis:  analysis.Map(),
	}

	if err := s.store.SaveSnapshot(ctx, userID, snapshot); err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to save snapshot: %w", err)
	}

	s.Reset()
	slog.Info("analysis saved",
		"snapshot_id", snapshot.ID,
		"records", len(snapshot.Records),
		"persona", snapshot.Persona)
	return snapshot, nil
}

func (s *Session) recompute() {
	if s.forcedPersona != "" {
		s.analysis = poisonedAnalysis(s.forcedPersona)
		return
	}
	s.analysis = Compute(s.records)
}

// Compute sums amounts grouped by resolved category, skipping any record
// whose category is excluded. Totals keep the order in which categories
// first appear in the records, and the persona is the category with the
// largest total; on an exact tie the category seen first wins. An empty
// filtered set yields an empty analysis with no persona.
func Compute(records []model.Record, exclude ...model.Category) model.Analysis {
	excluded := make(map[model.Category]bool, len(exclude))
	for _, c := range exclude {
		excluded[c] = true
	}

	totals := make(map[model.Category]float64)
	var order []model.Category
	for _, r := range records {
		if excluded[r.Resolved] {
			continue
		}
		if _, seen := totals[r.Resolved]; !seen {
			order = append(order, r.Resolved)
		}
		totals[r.Resolved] += r.Amount
	}

	if len(order) == 0 {
		return model.Analysis{}
	}

	analysis := model.Analysis{Totals: make([]model.CategoryTotal, 0, len(order))}
	top := order[0]
	for _, c := range order {
		amount := totals[c]
		analysis.Totals = append(analysis.Totals, model.CategoryTotal{Category: c, Amount: amount})
		analysis.Total += amount
		if amount > totals[top] {
			top = c
		}
	}
	analysis.Persona = top.String()

	return analysis
}

func poisonedAnalysis(label string) model.Analysis {
	return model.Analysis{
		Persona: label,
		Totals:  []model.CategoryTotal{{Category: model.CategoryUnknown, Amount: 1}},
		Total:   1,
	}
}
