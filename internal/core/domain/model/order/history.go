package order

import (
	"strings"
	"time"

	"tailorshop/internal/pkg/errs"
)

// HistoryEntry records that an order reached Stage at CompletedAt.
type HistoryEntry struct {
	stage       string
	completedAt time.Time
	notes       string
}

// NewHistoryEntry validates and builds a history entry. Notes are optional.
func NewHistoryEntry(stage string, completedAt time.Time, notes string) (HistoryEntry, error) {
	stage = strings.TrimSpace(stage)
	if stage == "" {
		return HistoryEntry{}, errs.NewValueIsRequiredError("history stage")
	}
	if completedAt.IsZero() {
		return HistoryEntry{}, errs.NewValueIsRequiredError("history completedAt")
	}
	return HistoryEntry{stage: stage, completedAt: completedAt.UTC(), notes: strings.TrimSpace(notes)}, nil
}

func (h HistoryEntry) Stage() string {
	return h.stage
}

func (h HistoryEntry) CompletedAt() time.Time {
	return h.completedAt
}

func (h HistoryEntry) Notes() string {
	return h.notes
}
