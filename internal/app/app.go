package app

import (
	"context"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/football-digest/external/fotmob"
	"github.com/riskibarqy/football-digest/internal/config"
	"github.com/riskibarqy/football-digest/internal/domain/matchreport"
	"github.com/riskibarqy/football-digest/internal/domain/rawdata"
	"github.com/riskibarqy/football-digest/internal/domain/upstream"
	"github.com/riskibarqy/football-digest/internal/infrastructure/filestore"
	"github.com/riskibarqy/football-digest/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/football-digest/internal/normalize"
	"github.com/riskibarqy/football-digest/internal/platform/cache"
	"github.com/riskibarqy/football-digest/internal/platform/logging"
	"github.com/riskibarqy/football-digest/internal/render/markdown"
	"github.com/riskibarqy/football-digest/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Options adjusts the wiring for one process.
type Options struct {
	// SkipFiles disables the markdown file writer.
	SkipFiles bool
}

// App holds the wired digest pipeline and the resources it owns.
type App struct {
	Digest *usecase.DigestService
	db     *sqlx.DB
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger, opts Options) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var rawArchive rawdata.Repository
	var reportArchive matchreport.Repository
	if db != nil {
		reportArchive = postgres.NewReportArchiveRepository(db)
		if cfg.RawArchiveEnabled {
			rawArchive = postgres.NewRawDataRepository(db)
		}
	}

	client := fotmob.NewClient(fotmob.ClientConfig{
		HTTPClient: &http.Client{
			Timeout:   cfg.FotMobTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		BaseURL:        cfg.FotMobBaseURL,
		UserAgent:      cfg.FotMobUserAgent,
		MaxRetries:     cfg.FotMobMaxRetries,
		Logger:         logger.Named("fotmob"),
		CircuitBreaker: cfg.FotMobCircuit,
		RawArchive:     rawArchive,
	})

	var detailCache *cache.Store[upstream.MatchDetails]
	if cfg.CacheEnabled {
		detailCache = cache.NewStore[upstream.MatchDetails](cfg.CacheTTL)
	}

	usecaseLogger := logger.Named("usecase")
	analyzer := usecase.NewMatchDetailAnalyzer(client, usecase.MatchDetailAnalyzerConfig{
		Events: normalize.NewEventClassifier(cfg.ReportEventTypes),
		Cache:  detailCache,
		Logger: usecaseLogger,
	})
	assembler := usecase.NewTeamReportAssembler(client, analyzer, usecase.TeamReportAssemblerConfig{
		MatchDetailDelay: cfg.ReportMatchDetailDelay,
		Location:         cfg.ReportLocation,
		Logger:           usecaseLogger,
	})

	var writer usecase.SectionWriter
	if !opts.SkipFiles {
		writer = filestore.NewSectionWriter(cfg.ReportOutputDir, cfg.ReportLocation)
	}

	digest := usecase.NewDigestService(assembler, markdown.NewRenderer(), usecase.DigestServiceConfig{
		Window:  cfg.ReportWindow,
		Workers: cfg.ReportWorkers,
		Archive: reportArchive,
		Writer:  writer,
		Logger:  usecaseLogger,
	})

	logger.Info("digest pipeline wired",
		"db_enabled", db != nil,
		"raw_archive_enabled", rawArchive != nil,
		"cache_enabled", detailCache != nil,
		"write_files", writer != nil,
		"workers", cfg.ReportWorkers,
	)

	return &App{Digest: digest, db: db}, nil
}

func (a *App) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

// DigestTeams maps the configured teams onto digest targets.
func DigestTeams(teams []config.TrackedTeam) []usecase.DigestTeam {
	out := make([]usecase.DigestTeam, 0, len(teams))
	for _, team := range teams {
		out = append(out, usecase.DigestTeam{ID: team.FotMobID, Name: team.Name})
	}
	return out
}
