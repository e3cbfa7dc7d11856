package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/football-digest/internal/domain/matchreport"
	"github.com/riskibarqy/football-digest/internal/normalize"
	"github.com/riskibarqy/football-digest/internal/platform/logging"
	"github.com/sourcegraph/conc/panics"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const defaultDigestWorkers = 1

// DigestTeam is one tracked club of a batch run.
type DigestTeam struct {
	ID   int64
	Name string
}

type ReportRenderer interface {
	RenderSection(report matchreport.Report, section matchreport.Section) string
}

// SectionWriter delivers one rendered section and returns where it went.
type SectionWriter interface {
	WriteSection(ctx context.Context, report matchreport.Report, section matchreport.Section, markdown string) (string, error)
}

type DigestServiceConfig struct {
	Window  time.Duration
	Workers int
	// Archive and Writer are optional sinks for rendered sections.
	Archive matchreport.Repository
	Writer  SectionWriter
	Logger  *logging.Logger
	Now     func() time.Time
}

// DigestOutcome is the result of one team. Err is set when the team report
// could not be produced or delivered; other teams are unaffected.
type DigestOutcome struct {
	Team     DigestTeam
	Report   matchreport.Report
	Sections map[matchreport.Section]string
	Files    []string
	Err      error
}

type DigestService struct {
	assembler *TeamReportAssembler
	renderer  ReportRenderer
	archive   matchreport.Repository
	writer    SectionWriter
	window    time.Duration
	workers   int
	logger    *logging.Logger
	now       func() time.Time
}

func NewDigestService(assembler *TeamReportAssembler, renderer ReportRenderer, cfg DigestServiceConfig) *DigestService {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Window <= 0 {
		cfg.Window = normalize.DefaultWindowLength
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultDigestWorkers
	}

	return &DigestService{
		assembler: assembler,
		renderer:  renderer,
		archive:   cfg.Archive,
		writer:    cfg.Writer,
		window:    cfg.Window,
		workers:   cfg.Workers,
		logger:    cfg.Logger,
		now:       cfg.Now,
	}
}

// Run builds the digest of every team over one trailing window shared by the
// whole batch. Outcomes keep the order of teams. Run opens the root span of a
// batch; the per-team spans hang off it.
func (s *DigestService) Run(ctx context.Context, teams []DigestTeam) ([]DigestOutcome, error) {
	ctx, span := usecaseTracer.Start(ctx, "usecase.DigestService.Run", trace.WithAttributes(attribute.Int("teams.count", len(teams))))
	defer span.End()

	if len(teams) == 0 {
		return nil, fmt.Errorf("%w: at least one team is required", ErrInvalidInput)
	}

	window := normalize.TrailingWindow(s.now(), s.window)
	outcomes := make([]DigestOutcome, len(teams))

	pool, err := ants.NewPool(min(s.workers, len(teams)))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i, team := range teams {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			outcomes[i] = s.runTeam(ctx, team, window)
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit team to worker pool: %w", err)
		}
	}
	workers.Wait()

	failed := 0
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			failed++
		}
	}
	s.logger.InfoContext(ctx, "digest batch finished",
		"period", window.Label(),
		"teams", len(teams),
		"failed", failed,
	)
	return outcomes, nil
}

func (s *DigestService) runTeam(ctx context.Context, team DigestTeam, window normalize.Window) DigestOutcome {
	outcome := DigestOutcome{Team: team}

	var catcher panics.Catcher
	catcher.Try(func() {
		outcome.Report, outcome.Sections, outcome.Files, outcome.Err = s.buildTeam(ctx, team, window)
	})
	if recovered := catcher.Recovered(); recovered != nil {
		outcome.Err = fmt.Errorf("team_id=%d: %w", team.ID, recovered.AsError())
	}

	if outcome.Err != nil {
		s.logger.ErrorContext(ctx, "team digest failed",
			"team_id", team.ID,
			"team_name", team.Name,
			"error", outcome.Err,
		)
	}
	return outcome
}

func (s *DigestService) buildTeam(ctx context.Context, team DigestTeam, window normalize.Window) (matchreport.Report, map[matchreport.Section]string, []string, error) {
	report, err := s.assembler.Assemble(ctx, team.ID, window)
	if err != nil {
		return matchreport.Report{}, nil, nil, err
	}

	sections := make(map[matchreport.Section]string, len(matchreport.Sections()))
	archived := make([]matchreport.ArchivedSection, 0, len(matchreport.Sections()))
	for _, section := range matchreport.Sections() {
		markdown := s.renderer.RenderSection(report, section)
		sections[section] = markdown
		archived = append(archived, matchreport.ArchivedSection{
			TeamID:      report.TeamID,
			TeamName:    report.TeamName,
			Section:     section,
			PeriodStart: report.PeriodStart,
			PeriodEnd:   report.PeriodEnd,
			Markdown:    markdown,
			GeneratedAt: report.GeneratedAt,
		})
	}

	if s.archive != nil {
		if err := s.archive.UpsertSections(ctx, archived); err != nil {
			return report, sections, nil, fmt.Errorf("archive report team_id=%d: %w", team.ID, err)
		}
	}

	var files []string
	if s.writer != nil {
		for _, section := range matchreport.Sections() {
			path, err := s.writer.WriteSection(ctx, report, section, sections[section])
			if err != nil {
				return report, sections, files, fmt.Errorf("write %s section team_id=%d: %w", section, team.ID, err)
			}
			files = append(files, path)
		}
	}
	return report, sections, files, nil
}
