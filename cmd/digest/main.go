package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/riskibarqy/football-digest/internal/app"
	"github.com/riskibarqy/football-digest/internal/config"
	"github.com/riskibarqy/football-digest/internal/domain/matchreport"
	"github.com/riskibarqy/football-digest/internal/observability"
	"github.com/riskibarqy/football-digest/internal/platform/logging"
	"github.com/riskibarqy/football-digest/internal/usecase"
)

func main() {
	os.Exit(run())
}

func run() int {
	envFile := flag.String("env-file", ".env", "dotenv file loaded before reading the environment")
	teamsFile := flag.String("teams", "", "tracked teams file (overrides REPORT_TEAMS_FILE)")
	stdout := flag.Bool("stdout", false, "print rendered reports to stdout instead of writing files")
	flag.Parse()

	if err := config.LoadDotEnv(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "load env file: %v\n", err)
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}
	if *teamsFile != "" {
		cfg.ReportTeamsFile = *teamsFile
	}

	logger := logging.NewJSON(cfg.LogLevel).With("service", cfg.ServiceName, "env", cfg.AppEnv)
	logging.SetDefault(logger)
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		return 1
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("flush uptrace failed", "error", err)
		}
	}()

	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		return 1
	}
	defer func() {
		if err := stopProfiler(); err != nil {
			logger.Warn("stop pyroscope failed", "error", err)
		}
	}()

	teams, err := config.LoadTeams(cfg.ReportTeamsFile)
	if err != nil {
		logger.Error("load tracked teams", "path", cfg.ReportTeamsFile, "error", err)
		return 1
	}

	pipeline, err := app.New(ctx, cfg, logger, app.Options{SkipFiles: *stdout})
	if err != nil {
		logger.Error("build app", "error", err)
		return 1
	}
	defer func() {
		if err := pipeline.Close(); err != nil {
			logger.Warn("close app", "error", err)
		}
	}()

	outcomes, err := pipeline.Digest.Run(ctx, app.DigestTeams(teams))
	if err != nil {
		logger.Error("digest run failed", "error", err)
		return 1
	}

	failed := 0
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			failed++
			continue
		}
		if *stdout {
			printOutcome(outcome)
			continue
		}
		logger.Info("team digest written",
			"team_id", outcome.Team.ID,
			"team_name", outcome.Team.Name,
			"files", outcome.Files,
		)
	}
	if failed > 0 {
		logger.Error("digest finished with failures", "failed", failed, "teams", len(outcomes))
		return 1
	}
	return 0
}

func printOutcome(outcome usecase.DigestOutcome) {
	for _, section := range matchreport.Sections() {
		fmt.Fprint(os.Stdout, outcome.Sections[section])
		fmt.Fprintln(os.Stdout)
	}
}
