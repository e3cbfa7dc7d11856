package fotmob

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/football-digest/internal/domain/rawdata"
	"github.com/riskibarqy/football-digest/internal/domain/upstream"
	"github.com/riskibarqy/football-digest/internal/platform/logging"
	"github.com/riskibarqy/football-digest/internal/platform/resilience"
	"github.com/riskibarqy/football-digest/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultBaseURL   = "https://www.fotmob.com/api"
	defaultReferer   = "https://www.fotmob.com/"
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	maxResponseBytes = 6 << 20
)

var (
	errFotMobTransient  = crerr.New("fotmob transient failure")
	errResponseTooLarge = crerr.New("fotmob response exceeds limit")
)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	UserAgent      string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.BreakerConfig
	// RawArchive, when set, receives every successful response verbatim.
	RawArchive rawdata.Repository
}

// Client reads the public FotMob JSON API. It implements usecase.MatchDataSource.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	maxRetries int
	logger     *logging.Logger
	breaker    *resilience.Breaker
	flight     resilience.Group[[]byte]
	rawArchive rawdata.Repository
	now        func() time.Time
	backoff    func(attempt int) time.Duration
	maxBody    int64
}

var _ usecase.MatchDataSource = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		// The caller's client may be shared; the default timeout goes on a copy.
		copied := *httpClient
		copied.Timeout = 20 * time.Second
		httpClient = &copied
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	breaker := resilience.NewBreaker(cfg.CircuitBreaker)
	breaker.OnStateChange(func(from, to resilience.BreakerState) {
		logger.Warn("fotmob circuit breaker state changed", "from", from, "to", to)
	})

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		userAgent:  userAgent,
		maxRetries: max(cfg.MaxRetries, 0),
		logger:     logger,
		breaker:    breaker,
		rawArchive: cfg.RawArchive,
		now:        time.Now,
		backoff:    linearBackoff,
		maxBody:    maxResponseBytes,
	}
}

func (c *Client) FetchTeam(ctx context.Context, teamID int64) (upstream.TeamBundle, error) {
	if teamID <= 0 {
		return upstream.TeamBundle{}, fmt.Errorf("%w: team id must be greater than zero", usecase.ErrInvalidInput)
	}

	id := strconv.FormatInt(teamID, 10)
	var out upstream.TeamBundle
	if err := c.getJSON(ctx, request{
		path:   "teams",
		query:  url.Values{"id": {id}},
		entity: rawdata.EntityTeam,
		teamID: id,
	}, &out); err != nil {
		return upstream.TeamBundle{}, crerr.Wrapf(err, "fetch team id=%d", teamID)
	}
	return out, nil
}

func (c *Client) FetchTransfers(ctx context.Context, teamID int64) (upstream.TransferList, error) {
	if teamID <= 0 {
		return nil, fmt.Errorf("%w: team id must be greater than zero", usecase.ErrInvalidInput)
	}

	id := strconv.FormatInt(teamID, 10)
	var out upstream.TransferList
	if err := c.getJSON(ctx, request{
		path:   "transfers",
		query:  url.Values{"id": {id}, "type": {"team"}},
		entity: rawdata.EntityTransfers,
		teamID: id,
	}, &out); err != nil {
		return nil, crerr.Wrapf(err, "fetch transfers team_id=%d", teamID)
	}
	return out, nil
}

func (c *Client) FetchMatchDetails(ctx context.Context, matchID string) (upstream.MatchDetails, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return upstream.MatchDetails{}, fmt.Errorf("%w: match id is required", usecase.ErrInvalidInput)
	}

	var out upstream.MatchDetails
	if err := c.getJSON(ctx, request{
		path:    "matchDetails",
		query:   url.Values{"matchId": {matchID}},
		entity:  rawdata.EntityMatchDetails,
		matchID: matchID,
	}, &out); err != nil {
		return upstream.MatchDetails{}, crerr.Wrapf(err, "fetch match details match_id=%s", matchID)
	}
	return out, nil
}

type request struct {
	path    string
	query   url.Values
	entity  string
	teamID  string
	matchID string
}

func (r request) key() string {
	return r.path + "?" + r.query.Encode()
}

func (c *Client) getJSON(ctx context.Context, req request, target any) error {
	raw, err := c.fetch(ctx, req)
	if err != nil {
		return err
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode fotmob %s payload: %w", req.path, err)
	}
	c.archive(ctx, req, raw)
	return nil
}

func (c *Client) fetch(ctx context.Context, req request) ([]byte, error) {
	fullURL := c.baseURL + "/" + req.key()

	raw, err, _ := c.flight.Do(req.key(), func() ([]byte, error) {
		var body []byte
		callErr := c.breaker.Call(func() error {
			var reqErr error
			body, reqErr = c.executeRequest(ctx, fullURL)
			return reqErr
		}, isFotMobCircuitFailure)
		if stderrors.Is(callErr, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "fotmob circuit breaker rejected request", "path", req.path, "state", c.breaker.State())
			return nil, crerr.Mark(fmt.Errorf("%w: football data provider is temporarily unavailable", usecase.ErrDependencyUnavailable), resilience.ErrCircuitOpen)
		}
		return body, callErr
	})
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Referer", defaultReferer)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("%w: send request: %v", errFotMobTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
			_ = resp.Body.Close()
			success := resp.StatusCode >= 200 && resp.StatusCode < 300
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errFotMobTransient, readErr)
			case success && int64(len(raw)) > c.maxBody:
				return nil, fmt.Errorf("%w: provider status=%d limit=%d bytes", errResponseTooLarge, resp.StatusCode, c.maxBody)
			case success:
				return raw, nil
			case resp.StatusCode == http.StatusNotFound:
				return nil, fmt.Errorf("%w: provider status=%d body=%s", usecase.ErrNotFound, resp.StatusCode, abbreviateBody(raw))
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errFotMobTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(c.backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "fotmob request failed", "url", fullURL, "attempts", c.maxRetries+1, "error", lastErr)
	return nil, lastErr
}

// archive stores the raw payload; failures are logged and never fail the fetch.
func (c *Client) archive(ctx context.Context, req request, raw []byte) {
	if c.rawArchive == nil {
		return
	}
	payload := buildRawPayload(req, raw, c.now().UTC())
	if err := c.rawArchive.UpsertMany(ctx, []rawdata.Payload{payload}); err != nil {
		c.logger.WarnContext(ctx, "archive fotmob payload failed",
			"entity_type", payload.EntityType,
			"entity_key", payload.EntityKey,
			"error", err,
		)
	}
}

func buildRawPayload(req request, raw []byte, fetchedAt time.Time) rawdata.Payload {
	sum := sha256.Sum256(raw)
	return rawdata.Payload{
		Source:         rawdata.SourceFotMob,
		EntityType:     req.entity,
		EntityKey:      req.key(),
		TeamExternalID: req.teamID,
		MatchID:        req.matchID,
		PayloadJSON:    string(raw),
		PayloadHash:    hex.EncodeToString(sum[:]),
		FetchedAt:      fetchedAt,
	}
}

func isFotMobCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errFotMobTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func linearBackoff(attempt int) time.Duration {
	return time.Duration(attempt+1) * time.Second
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
