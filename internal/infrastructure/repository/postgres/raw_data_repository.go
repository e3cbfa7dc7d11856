package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/football-digest/internal/domain/rawdata"
)

const upsertRawPayloadsQuery = `INSERT INTO raw_data_payloads (
    source, entity_type, entity_key, team_external_id, match_id, payload, payload_hash, fetched_at
) VALUES (
    :source, :entity_type, :entity_key, :team_external_id, :match_id, :payload, :payload_hash, :fetched_at
)
ON CONFLICT (source, entity_type, entity_key)
DO UPDATE SET
    team_external_id = EXCLUDED.team_external_id,
    match_id = EXCLUDED.match_id,
    payload = EXCLUDED.payload,
    payload_hash = EXCLUDED.payload_hash,
    fetched_at = EXCLUDED.fetched_at,
    updated_at = NOW()
WHERE raw_data_payloads.payload_hash IS DISTINCT FROM EXCLUDED.payload_hash`

type RawDataRepository struct {
	db *sqlx.DB
}

var _ rawdata.Repository = (*RawDataRepository)(nil)

func NewRawDataRepository(db *sqlx.DB) *RawDataRepository {
	return &RawDataRepository{db: db}
}

// UpsertMany keeps one row per upstream entity; unchanged payloads are not rewritten.
func (r *RawDataRepository) UpsertMany(ctx context.Context, items []rawdata.Payload) error {
	if len(items) == 0 {
		return nil
	}

	rows := make([]rawDataPayloadModel, 0, len(items))
	for _, item := range items {
		rows = append(rows, rawDataPayloadModel{
			Source:         item.Source,
			EntityType:     item.EntityType,
			EntityKey:      item.EntityKey,
			TeamExternalID: nullableString(item.TeamExternalID),
			MatchID:        nullableString(item.MatchID),
			Payload:        item.PayloadJSON,
			PayloadHash:    item.PayloadHash,
			FetchedAt:      item.FetchedAt.UTC(),
		})
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert raw payloads: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, row := range rows {
		if _, err := tx.NamedExecContext(ctx, upsertRawPayloadsQuery, row); err != nil {
			return fmt.Errorf("upsert raw payload entity=%s key=%s: %w", row.EntityType, row.EntityKey, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert raw payloads tx: %w", err)
	}
	return nil
}

type rawDataPayloadModel struct {
	Source         string    `db:"source"`
	EntityType     string    `db:"entity_type"`
	EntityKey      string    `db:"entity_key"`
	TeamExternalID *string   `db:"team_external_id"`
	MatchID        *string   `db:"match_id"`
	Payload        string    `db:"payload"`
	PayloadHash    string    `db:"payload_hash"`
	FetchedAt      time.Time `db:"fetched_at"`
}
