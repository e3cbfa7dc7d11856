package matchreport

import (
	"context"
	"time"
)

// Section names one independently renderable part of a report.
type Section string

const (
	SectionMatches   Section = "matches"
	SectionTransfers Section = "transfers"
)

// Sections lists every section in render order.
func Sections() []Section {
	return []Section{SectionMatches, SectionTransfers}
}

// ArchivedSection is one rendered section kept for later delivery.
type ArchivedSection struct {
	TeamID      int64
	TeamName    string
	Section     Section
	PeriodStart time.Time
	PeriodEnd   time.Time
	Markdown    string
	GeneratedAt time.Time
}

// Repository persists rendered report sections.
type Repository interface {
	UpsertSections(ctx context.Context, items []ArchivedSection) error
}
