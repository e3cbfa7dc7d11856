package usecase

import (
	"context"

	"github.com/riskibarqy/football-digest/internal/domain/upstream"
)

// MatchDataSource is the upstream football data provider.
type MatchDataSource interface {
	FetchTeam(ctx context.Context, teamID int64) (upstream.TeamBundle, error)
	FetchTransfers(ctx context.Context, teamID int64) (upstream.TransferList, error)
	FetchMatchDetails(ctx context.Context, matchID string) (upstream.MatchDetails, error)
}
