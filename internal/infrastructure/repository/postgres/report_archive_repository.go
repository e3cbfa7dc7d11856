package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/football-digest/internal/domain/matchreport"
)

const upsertReportSectionsQuery = `INSERT INTO report_archives (
    team_external_id, team_name, section, period_start, period_end, markdown, generated_at
) VALUES (
    :team_external_id, :team_name, :section, :period_start, :period_end, :markdown, :generated_at
)
ON CONFLICT (team_external_id, section, period_end)
DO UPDATE SET
    team_name = EXCLUDED.team_name,
    period_start = EXCLUDED.period_start,
    markdown = EXCLUDED.markdown,
    generated_at = EXCLUDED.generated_at,
    updated_at = NOW()`

type ReportArchiveRepository struct {
	db *sqlx.DB
}

var _ matchreport.Repository = (*ReportArchiveRepository)(nil)

func NewReportArchiveRepository(db *sqlx.DB) *ReportArchiveRepository {
	return &ReportArchiveRepository{db: db}
}

// UpsertSections writes all sections of one run in a single transaction.
// Re-running a window replaces the earlier markdown.
func (r *ReportArchiveRepository) UpsertSections(ctx context.Context, items []matchreport.ArchivedSection) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert report sections: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		row := reportArchiveModelFromDomain(item)
		if _, err := tx.NamedExecContext(ctx, upsertReportSectionsQuery, row); err != nil {
			return fmt.Errorf("upsert report section team_id=%d section=%s: %w", item.TeamID, item.Section, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert report sections tx: %w", err)
	}
	return nil
}

type reportArchiveModel struct {
	TeamExternalID int64     `db:"team_external_id"`
	TeamName       string    `db:"team_name"`
	Section        string    `db:"section"`
	PeriodStart    time.Time `db:"period_start"`
	PeriodEnd      time.Time `db:"period_end"`
	Markdown       string    `db:"markdown"`
	GeneratedAt    time.Time `db:"generated_at"`
}

func reportArchiveModelFromDomain(item matchreport.ArchivedSection) reportArchiveModel {
	return reportArchiveModel{
		TeamExternalID: item.TeamID,
		TeamName:       item.TeamName,
		Section:        string(item.Section),
		PeriodStart:    item.PeriodStart.UTC(),
		PeriodEnd:      item.PeriodEnd.UTC(),
		Markdown:       item.Markdown,
		GeneratedAt:    item.GeneratedAt.UTC(),
	}
}
