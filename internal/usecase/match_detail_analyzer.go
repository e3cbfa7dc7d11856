package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/football-digest/internal/domain/matchreport"
	"github.com/riskibarqy/football-digest/internal/domain/upstream"
	"github.com/riskibarqy/football-digest/internal/normalize"
	"github.com/riskibarqy/football-digest/internal/platform/cache"
	"github.com/riskibarqy/football-digest/internal/platform/logging"
	"github.com/riskibarqy/football-digest/internal/platform/resilience"
	"go.opentelemetry.io/otel/attribute"
)

// MatchDetailResult is the per-match detail resolved from the matchDetails
// payload. Available is false when the payload could not be fetched; the other
// fields then hold their placeholders.
type MatchDetailResult struct {
	Available        bool
	CompetitionLabel string
	Venue            matchreport.Venue
	ManOfTheMatch    string
	HomeTeamName     string
	AwayTeamName     string
	Statistics       []matchreport.StatEntry
	Events           []matchreport.EventEntry
}

// AnalyzeRequest identifies one match from the tracked team's point of view.
// Pacer, when set, is waited on before an upstream fetch; cached details skip it.
type AnalyzeRequest struct {
	MatchID      string
	TargetTeamID int64
	Pacer        *resilience.Pacer
}

type MatchDetailAnalyzerConfig struct {
	Rounds *normalize.RoundNormalizer
	Stats  *normalize.StatResolver
	Events *normalize.EventClassifier
	// Cache is optional. A match between two tracked teams is then fetched once per batch.
	Cache  *cache.Store[upstream.MatchDetails]
	Logger *logging.Logger
}

type MatchDetailAnalyzer struct {
	source MatchDataSource
	rounds *normalize.RoundNormalizer
	stats  *normalize.StatResolver
	events *normalize.EventClassifier
	cache  *cache.Store[upstream.MatchDetails]
	logger *logging.Logger
}

func NewMatchDetailAnalyzer(source MatchDataSource, cfg MatchDetailAnalyzerConfig) *MatchDetailAnalyzer {
	if cfg.Rounds == nil {
		cfg.Rounds = normalize.NewRoundNormalizer(nil)
	}
	if cfg.Stats == nil {
		cfg.Stats = normalize.NewStatResolver(nil)
	}
	if cfg.Events == nil {
		cfg.Events = normalize.NewEventClassifier(nil)
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}

	return &MatchDetailAnalyzer{
		source: source,
		rounds: cfg.Rounds,
		stats:  cfg.Stats,
		events: cfg.Events,
		cache:  cfg.Cache,
		logger: cfg.Logger,
	}
}

// UnavailableDetail is the placeholder result for a match whose detail is missing.
func UnavailableDetail() MatchDetailResult {
	return MatchDetailResult{
		CompetitionLabel: matchreport.Unknown,
		Venue:            matchreport.VenueAway,
		ManOfTheMatch:    matchreport.NotAvailable,
	}
}

// Analyze never fails: fetch errors are logged and reported through
// MatchDetailResult.Available.
func (a *MatchDetailAnalyzer) Analyze(ctx context.Context, req AnalyzeRequest) MatchDetailResult {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchDetailAnalyzer.Analyze",
		attribute.String("match.id", req.MatchID),
		attribute.Int64("team.id", req.TargetTeamID),
	)
	defer span.End()

	matchID := strings.TrimSpace(req.MatchID)
	if matchID == "" {
		a.logger.WarnContext(ctx, "skip match detail without match id", "team_id", req.TargetTeamID)
		return UnavailableDetail()
	}

	details, err := a.fetch(ctx, matchID, req.Pacer)
	if err != nil {
		span.RecordError(err)
		a.logger.WarnContext(ctx, "match detail unavailable, degrading match",
			"match_id", matchID,
			"team_id", req.TargetTeamID,
			"error", err,
		)
		return UnavailableDetail()
	}
	if details.General.Empty() {
		a.logger.WarnContext(ctx, "match detail payload empty, degrading match",
			"match_id", matchID,
			"team_id", req.TargetTeamID,
		)
		return UnavailableDetail()
	}

	return a.Resolve(details, req.TargetTeamID)
}

// Resolve maps an already fetched payload.
func (a *MatchDetailAnalyzer) Resolve(details upstream.MatchDetails, targetTeamID int64) MatchDetailResult {
	general := details.General
	facts := details.Content.MatchFacts

	venue := matchreport.VenueAway
	if general.HomeTeam.ID.EqualID(targetTeamID) {
		venue = matchreport.VenueHome
	}

	homeName := general.HomeTeam.Name
	awayName := general.AwayTeam.Name

	return MatchDetailResult{
		Available:        true,
		CompetitionLabel: a.competitionLabel(general),
		Venue:            venue,
		ManOfTheMatch:    manOfTheMatch(facts.PlayerOfTheMatch),
		HomeTeamName:     homeName,
		AwayTeamName:     awayName,
		Statistics:       a.stats.Resolve(details.Content.Stats.AllPeriodItems()),
		Events:           a.events.ClassifyAll(facts.Events.Events, homeName, awayName),
	}
}

func (a *MatchDetailAnalyzer) fetch(ctx context.Context, matchID string, pacer *resilience.Pacer) (upstream.MatchDetails, error) {
	load := func(ctx context.Context) (upstream.MatchDetails, error) {
		if err := pacer.Wait(ctx); err != nil {
			return upstream.MatchDetails{}, err
		}
		defer pacer.Done()
		return a.source.FetchMatchDetails(ctx, matchID)
	}
	if a.cache == nil {
		return load(ctx)
	}
	return a.cache.GetOrLoad(ctx, "matchDetails:"+matchID, load)
}

func (a *MatchDetailAnalyzer) competitionLabel(general upstream.MatchGeneral) string {
	return fmt.Sprintf("%s - %s", general.LeagueName, a.rounds.Normalize(general.MatchRound.Text))
}

func manOfTheMatch(ref upstream.PlayerRef) string {
	if !ref.Present {
		return matchreport.NotAvailable
	}
	rating := matchreport.NotAvailable
	if ref.Rating.Set && strings.TrimSpace(ref.Rating.Text) != "" {
		rating = ref.Rating.Text
	}
	return fmt.Sprintf("%s (%s, Rating: %s)", normalize.PlayerName(ref), ref.TeamName, rating)
}
