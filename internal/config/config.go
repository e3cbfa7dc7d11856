package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/football-digest/internal/platform/logging"
	"github.com/riskibarqy/football-digest/internal/platform/resilience"
)

// Config stores runtime configuration for the digest job.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	LogLevel       logging.Level

	FotMobBaseURL    string
	FotMobUserAgent  string
	FotMobTimeout    time.Duration
	FotMobMaxRetries int
	FotMobCircuit    resilience.BreakerConfig

	ReportTeamsFile        string
	ReportWindow           time.Duration
	ReportMatchDetailDelay time.Duration
	ReportEventTypes       []string
	ReportTimezone         string
	ReportLocation         *time.Location
	ReportOutputDir        string
	ReportWorkers          int

	CacheEnabled bool
	CacheTTL     time.Duration

	DBEnabled               bool
	DBURL                   string
	DBDisablePreparedBinary bool
	RawArchiveEnabled       bool

	UptraceEnabled bool
	UptraceDSN     string

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

const (
	defaultFotMobBaseURL   = "https://www.fotmob.com/api"
	defaultFotMobUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// LoadDotEnv loads variables from the given files (".env" when none) without
// overriding ones already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	logLevel, ok := logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info"))
	if !ok {
		return Config{}, fmt.Errorf("invalid APP_LOG_LEVEL %q: valid values are debug, info, warn, error", os.Getenv("APP_LOG_LEVEL"))
	}

	cfg := Config{
		AppEnv:          appEnv,
		ServiceName:     getEnv("APP_SERVICE_NAME", "football-digest"),
		ServiceVersion:  getEnv("APP_SERVICE_VERSION", "dev"),
		LogLevel:        logLevel,
		FotMobBaseURL:   strings.TrimRight(strings.TrimSpace(getEnv("FOTMOB_BASE_URL", defaultFotMobBaseURL)), "/"),
		FotMobUserAgent: strings.TrimSpace(getEnv("FOTMOB_USER_AGENT", defaultFotMobUserAgent)),
		ReportTeamsFile: strings.TrimSpace(getEnv("REPORT_TEAMS_FILE", "teams.yaml")),
		ReportOutputDir: strings.TrimSpace(getEnv("REPORT_OUTPUT_DIR", "datas/fotmob")),
		DBURL:           strings.TrimSpace(getEnv("DB_URL", "")),
		UptraceDSN:      strings.TrimSpace(getEnv("UPTRACE_DSN", "")),
	}
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}

	if cfg.FotMobTimeout, err = getEnvAsPositiveDuration("FOTMOB_TIMEOUT", "20s"); err != nil {
		return Config{}, err
	}
	if cfg.FotMobMaxRetries, err = getEnvAsInt("FOTMOB_MAX_RETRIES", 1); err != nil {
		return Config{}, fmt.Errorf("parse FOTMOB_MAX_RETRIES: %w", err)
	}
	if cfg.FotMobMaxRetries < 0 {
		return Config{}, fmt.Errorf("FOTMOB_MAX_RETRIES must be >= 0")
	}

	if cfg.FotMobCircuit, err = loadCircuitConfig("FOTMOB"); err != nil {
		return Config{}, err
	}

	if cfg.ReportWindow, err = getEnvAsPositiveDuration("REPORT_WINDOW", "168h"); err != nil {
		return Config{}, err
	}
	cfg.ReportMatchDetailDelay, err = time.ParseDuration(getEnv("REPORT_MATCH_DETAIL_DELAY", "800ms"))
	if err != nil {
		return Config{}, fmt.Errorf("parse REPORT_MATCH_DETAIL_DELAY: %w", err)
	}
	if cfg.ReportMatchDetailDelay < 0 {
		return Config{}, fmt.Errorf("REPORT_MATCH_DETAIL_DELAY must be >= 0")
	}
	cfg.ReportEventTypes = splitCSV(getEnv("REPORT_EVENT_TYPES", "Goal,Card"))
	if len(cfg.ReportEventTypes) == 0 {
		return Config{}, fmt.Errorf("REPORT_EVENT_TYPES must list at least one event type")
	}
	cfg.ReportTimezone = strings.TrimSpace(getEnv("REPORT_TIMEZONE", "UTC"))
	if cfg.ReportLocation, err = time.LoadLocation(cfg.ReportTimezone); err != nil {
		return Config{}, fmt.Errorf("parse REPORT_TIMEZONE: %w", err)
	}
	if cfg.ReportWorkers, err = getEnvAsInt("REPORT_WORKERS", 1); err != nil {
		return Config{}, fmt.Errorf("parse REPORT_WORKERS: %w", err)
	}
	if cfg.ReportWorkers < 1 {
		return Config{}, fmt.Errorf("REPORT_WORKERS must be > 0")
	}
	if cfg.ReportOutputDir == "" {
		return Config{}, fmt.Errorf("REPORT_OUTPUT_DIR must not be empty")
	}

	if cfg.CacheEnabled, err = getEnvAsBool("CACHE_ENABLED", "true"); err != nil {
		return Config{}, err
	}
	if cfg.CacheTTL, err = getEnvAsPositiveDuration("CACHE_TTL", "30m"); err != nil {
		return Config{}, err
	}

	if cfg.DBEnabled, err = getEnvAsBool("DB_ENABLED", "false"); err != nil {
		return Config{}, err
	}
	if cfg.DBEnabled && cfg.DBURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when DB_ENABLED=true")
	}
	if cfg.DBDisablePreparedBinary, err = getEnvAsBool("DB_DISABLE_PREPARED_BINARY_RESULT", "true"); err != nil {
		return Config{}, err
	}
	if cfg.RawArchiveEnabled, err = getEnvAsBool("RAW_ARCHIVE_ENABLED", "false"); err != nil {
		return Config{}, err
	}
	if cfg.RawArchiveEnabled && !cfg.DBEnabled {
		return Config{}, fmt.Errorf("RAW_ARCHIVE_ENABLED=true requires DB_ENABLED=true")
	}

	if cfg.UptraceEnabled, err = getEnvAsBool("UPTRACE_ENABLED", "false"); err != nil {
		return Config{}, err
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	if cfg.PyroscopeEnabled, err = getEnvAsBool("PYROSCOPE_ENABLED", "false"); err != nil {
		return Config{}, err
	}
	cfg.PyroscopeServerAddress = strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	if cfg.PyroscopeUploadRate, err = getEnvAsPositiveDuration("PYROSCOPE_UPLOAD_RATE", "15s"); err != nil {
		return Config{}, err
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	cfg.PyroscopeAuthToken = strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", ""))
	cfg.PyroscopeBasicAuthUser = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", ""))
	cfg.PyroscopeBasicAuthPassword = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""))

	return cfg, nil
}

// loadCircuitConfig reads <PREFIX>_CIRCUIT_* variables.
func loadCircuitConfig(prefix string) (resilience.BreakerConfig, error) {
	defaults := resilience.DefaultBreakerConfig()
	out := resilience.BreakerConfig{}

	var err error
	if out.Enabled, err = getEnvAsBool(prefix+"_CIRCUIT_ENABLED", strconv.FormatBool(defaults.Enabled)); err != nil {
		return out, err
	}
	if out.FailureThreshold, err = getEnvAsInt(prefix+"_CIRCUIT_FAILURE_COUNT", defaults.FailureThreshold); err != nil {
		return out, fmt.Errorf("parse %s_CIRCUIT_FAILURE_COUNT: %w", prefix, err)
	}
	if out.FailureThreshold <= 0 {
		return out, fmt.Errorf("%s_CIRCUIT_FAILURE_COUNT must be > 0", prefix)
	}
	if out.OpenTimeout, err = getEnvAsPositiveDuration(prefix+"_CIRCUIT_OPEN_TIMEOUT", defaults.OpenTimeout.String()); err != nil {
		return out, err
	}
	if out.HalfOpenMaxReq, err = getEnvAsInt(prefix+"_CIRCUIT_HALF_OPEN_MAX_REQ", defaults.HalfOpenMaxReq); err != nil {
		return out, fmt.Errorf("parse %s_CIRCUIT_HALF_OPEN_MAX_REQ: %w", prefix, err)
	}
	if out.HalfOpenMaxReq <= 0 {
		return out, fmt.Errorf("%s_CIRCUIT_HALF_OPEN_MAX_REQ must be > 0", prefix)
	}
	return out, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsBool(key, fallback string) (bool, error) {
	out, err := strconv.ParseBool(strings.TrimSpace(getEnv(key, fallback)))
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return out, nil
}

func getEnvAsPositiveDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(strings.TrimSpace(getEnv(key, fallback)))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
