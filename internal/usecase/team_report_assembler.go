package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/football-digest/internal/domain/matchreport"
	"github.com/riskibarqy/football-digest/internal/domain/upstream"
	"github.com/riskibarqy/football-digest/internal/normalize"
	"github.com/riskibarqy/football-digest/internal/platform/logging"
	"github.com/riskibarqy/football-digest/internal/platform/resilience"
	"go.opentelemetry.io/otel/attribute"
)

const localDisplayLayout = "2006-01-02 15:04"

type TeamReportAssemblerConfig struct {
	// MatchDetailDelay is the minimum spacing between match detail fetches of one run.
	MatchDetailDelay time.Duration
	// Location renders kickoff times; nil means UTC.
	Location *time.Location
	Logger   *logging.Logger
	Now      func() time.Time
}

// TeamReportAssembler builds one team's Report for a time window. Match
// details are fetched one at a time; a failed detail degrades only its match.
type TeamReportAssembler struct {
	source   MatchDataSource
	analyzer *MatchDetailAnalyzer
	delay    time.Duration
	location *time.Location
	logger   *logging.Logger
	now      func() time.Time
}

func NewTeamReportAssembler(source MatchDataSource, analyzer *MatchDetailAnalyzer, cfg TeamReportAssemblerConfig) *TeamReportAssembler {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if analyzer == nil {
		analyzer = NewMatchDetailAnalyzer(source, MatchDetailAnalyzerConfig{Logger: cfg.Logger})
	}

	return &TeamReportAssembler{
		source:   source,
		analyzer: analyzer,
		delay:    cfg.MatchDetailDelay,
		location: cfg.Location,
		logger:   cfg.Logger,
		now:      cfg.Now,
	}
}

// Assemble fails only when the team bundle is unavailable (ErrTeamDataUnavailable),
// the team id is invalid, or ctx ends mid-run.
func (s *TeamReportAssembler) Assemble(ctx context.Context, teamID int64, window normalize.Window) (matchreport.Report, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamReportAssembler.Assemble", attribute.Int64("team.id", teamID))
	defer span.End()

	if teamID <= 0 {
		return matchreport.Report{}, fmt.Errorf("%w: team id must be greater than zero", ErrInvalidInput)
	}
	if window.End.Before(window.Start) {
		return matchreport.Report{}, fmt.Errorf("%w: window end %s is before start %s", ErrInvalidInput, window.End, window.Start)
	}

	bundle, err := s.source.FetchTeam(ctx, teamID)
	if err != nil {
		span.RecordError(err)
		return matchreport.Report{}, fmt.Errorf("%w: fetch team_id=%d: %w", ErrTeamDataUnavailable, teamID, err)
	}
	if bundle.Empty() {
		return matchreport.Report{}, fmt.Errorf("%w: empty team bundle team_id=%d", ErrTeamDataUnavailable, teamID)
	}

	team := matchreport.Team{ID: teamID, Name: matchreport.OrUnknown(bundle.Details.Name)}
	fixtures := bundle.AllFixtures()
	selected := normalize.SelectMatches(fixtures, window)
	s.logger.DebugContext(ctx, "fixtures selected",
		"team_id", teamID,
		"fixtures", len(fixtures),
		"in_window", len(selected),
	)
	matches, err := s.assembleMatches(ctx, team, selected)
	if err != nil {
		return matchreport.Report{}, err
	}

	report := matchreport.Report{
		TeamID:      team.ID,
		TeamName:    team.Name,
		PeriodLabel: window.Label(),
		PeriodStart: window.Start,
		PeriodEnd:   window.End,
		Matches:     matches,
		Transfers:   s.assembleTransfers(ctx, team, window),
		GeneratedAt: s.now().UTC(),
	}

	s.logger.InfoContext(ctx, "team report assembled",
		"team_id", team.ID,
		"team_name", team.Name,
		"period", report.PeriodLabel,
		"matches", len(report.Matches),
		"transfers", len(report.Transfers),
	)
	return report, nil
}

func (s *TeamReportAssembler) assembleMatches(ctx context.Context, team matchreport.Team, fixtures []normalize.DatedFixture) ([]matchreport.MatchSummary, error) {
	pacer := resilience.NewPacer(s.delay)
	out := make([]matchreport.MatchSummary, 0, len(fixtures))
	for _, item := range fixtures {
		detail := s.analyzer.Analyze(ctx, AnalyzeRequest{
			MatchID:      item.Fixture.ID.Text,
			TargetTeamID: team.ID,
			Pacer:        pacer,
		})
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out = append(out, s.summarize(team, item, detail))
	}
	return out, nil
}

func (s *TeamReportAssembler) summarize(team matchreport.Team, item normalize.DatedFixture, detail MatchDetailResult) matchreport.MatchSummary {
	fixture := item.Fixture
	opponent := matchreport.OrUnknown(fixture.Opponent.Name)

	summary := matchreport.MatchSummary{
		MatchID:          fixture.ID.Text,
		UTCTimestamp:     item.KickoffAt,
		LocalDisplayTime: item.KickoffAt.In(s.location).Format(localDisplayLayout),
		OpponentName:     opponent,
		ScoreString:      orNotAvailable(fixture.Status.ScoreStr),
		CompetitionLabel: detail.CompetitionLabel,
		Venue:            detail.Venue,
		ManOfTheMatch:    detail.ManOfTheMatch,
		Statistics:       detail.Statistics,
		Events:           detail.Events,
	}

	if !detail.Available {
		summary.Degraded = true
		summary.CompetitionLabel = matchreport.OrUnknown(fixture.Tournament.Name)
		summary.Venue = matchreport.VenueAway
		if fixture.Home.ID.EqualID(team.ID) {
			summary.Venue = matchreport.VenueHome
		}
	}

	summary.HomeTeamName, summary.AwayTeamName = team.Name, opponent
	if summary.Venue == matchreport.VenueAway {
		summary.HomeTeamName, summary.AwayTeamName = opponent, team.Name
	}
	if name := strings.TrimSpace(detail.HomeTeamName); name != "" {
		summary.HomeTeamName = name
	}
	if name := strings.TrimSpace(detail.AwayTeamName); name != "" {
		summary.AwayTeamName = name
	}
	return summary
}

func (s *TeamReportAssembler) assembleTransfers(ctx context.Context, team matchreport.Team, window normalize.Window) []matchreport.TransferEntry {
	list, err := s.source.FetchTransfers(ctx, team.ID)
	if err != nil {
		s.logger.WarnContext(ctx, "transfer list unavailable, reporting no transfers",
			"team_id", team.ID,
			"error", err,
		)
		return []matchreport.TransferEntry{}
	}

	selected := normalize.SelectTransfers([]upstream.Transfer(list), window)
	out := make([]matchreport.TransferEntry, 0, len(selected))
	for _, item := range selected {
		out = append(out, matchreport.TransferEntry{
			PlayerName:    matchreport.OrUnknown(item.Transfer.Name),
			MovementLabel: matchreport.MovementLabel(item.Transfer.FromClub, item.Transfer.ToClub),
			DateISO:       strings.TrimSpace(item.Transfer.TransferDate),
			TransferredAt: item.TransferredAt,
		})
	}
	return out
}

func orNotAvailable(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return matchreport.NotAvailable
	}
	return value
}
