package fotmob

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/football-digest/internal/domain/rawdata"
	rawdatamock "github.com/riskibarqy/football-digest/internal/mocks/domain/rawdata"
	"github.com/riskibarqy/football-digest/internal/platform/logging"
	"github.com/riskibarqy/football-digest/internal/platform/resilience"
	"github.com/riskibarqy/football-digest/internal/usecase"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler, cfg ClientConfig) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg.BaseURL = server.URL + "/api/"
	cfg.HTTPClient = server.Client()
	cfg.Logger = logging.NewNop()
	client := NewClient(cfg)
	client.backoff = func(int) time.Duration { return 0 }
	return client
}

func TestClient_FetchTeam(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/teams" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("id"); got != "8456" {
			t.Errorf("unexpected team id query: %s", got)
		}
		if r.Header.Get("User-Agent") == "" || r.Header.Get("Referer") != defaultReferer {
			t.Errorf("missing browser headers: ua=%q referer=%q", r.Header.Get("User-Agent"), r.Header.Get("Referer"))
		}
		_, _ = w.Write([]byte(`{"details":{"id":8456,"name":"Man City"},"fixtures":{"allFixtures":{"fixtures":[{"id":4506263,"opponent":{"id":9825,"name":"Arsenal"},"status":{"utcTime":"2024-04-28T15:30:00.000Z","scoreStr":"2 - 1"}}]}}}`))
	}), ClientConfig{})

	bundle, err := client.FetchTeam(context.Background(), 8456)
	require.NoError(t, err)
	require.Equal(t, "Man City", bundle.Details.Name)
	require.Len(t, bundle.AllFixtures(), 1)
	require.Equal(t, "4506263", bundle.AllFixtures()[0].ID.Text)
	require.Equal(t, "Arsenal", bundle.AllFixtures()[0].Opponent.Name)
}

func TestClient_FetchTransfersAcceptsBothShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "wrapped", body: `{"transfers":[{"name":"Savinho","fromClub":"Troyes","toClub":"Man City","transferDate":"2024-05-01T00:00:00.000000Z"}]}`},
		{name: "bare array", body: `[{"name":"Savinho","fromClub":"Troyes","toClub":"Man City","transferDate":"2024-05-01T00:00:00.000000Z"}]`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Query().Get("type") != "team" {
					t.Errorf("expected type=team, got query=%s", r.URL.RawQuery)
				}
				_, _ = w.Write([]byte(tc.body))
			}), ClientConfig{})

			list, err := client.FetchTransfers(context.Background(), 8456)
			require.NoError(t, err)
			require.Len(t, list, 1)
			require.Equal(t, "Savinho", list[0].Name)
		})
	}
}

func TestClient_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("upstream busy"))
			return
		}
		_, _ = w.Write([]byte(`{"general":{"matchId":4506263,"leagueName":"Premier League","matchRound":"12"}}`))
	}), ClientConfig{MaxRetries: 2})

	details, err := client.FetchMatchDetails(context.Background(), "4506263")
	require.NoError(t, err)
	require.Equal(t, "Premier League", details.General.LeagueName)
	require.EqualValues(t, 3, hits.Load())
}

func TestClient_NotFoundIsNotRetried(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.NotFound(w, r)
	}), ClientConfig{MaxRetries: 3})

	_, err := client.FetchMatchDetails(context.Background(), "1")
	if !errors.Is(err, usecase.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got=%v", err)
	}
	require.EqualValues(t, 1, hits.Load())
}

func TestClient_CircuitOpensAfterTransientFailures(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}), ClientConfig{
		CircuitBreaker: resilience.BreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	for range 2 {
		_, err := client.FetchTeam(context.Background(), 8456)
		require.Error(t, err)
	}

	_, err := client.FetchTeam(context.Background(), 8456)
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable once circuit is open, got=%v", err)
	}
	require.EqualValues(t, 2, hits.Load())
	require.Equal(t, resilience.BreakerOpen, client.breaker.State())
}

func TestClient_OversizedBodyFailsExplicitly(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"general":{"matchId":4506263,"leagueName":"Premier League"}}`))
	}), ClientConfig{MaxRetries: 2})
	client.maxBody = 16

	_, err := client.FetchMatchDetails(context.Background(), "4506263")
	if !errors.Is(err, errResponseTooLarge) {
		t.Fatalf("expected errResponseTooLarge, got=%v", err)
	}
	require.EqualValues(t, 1, hits.Load())
}

func TestClient_BodyAtLimitIsAccepted(t *testing.T) {
	t.Parallel()

	const body = `{"general":{"matchId":1}}`
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}), ClientConfig{})
	client.maxBody = int64(len(body))

	details, err := client.FetchMatchDetails(context.Background(), "1")
	require.NoError(t, err)
	require.Equal(t, "1", details.General.MatchID.Text)
}

func TestNewClient_LeavesCallerClientUntouched(t *testing.T) {
	t.Parallel()

	shared := &http.Client{}
	client := NewClient(ClientConfig{HTTPClient: shared, Logger: logging.NewNop()})

	if shared.Timeout != 0 {
		t.Fatalf("caller client timeout mutated: %s", shared.Timeout)
	}
	if client.httpClient == shared || client.httpClient.Timeout != 20*time.Second {
		t.Fatalf("expected a copied client with default timeout, got=%s", client.httpClient.Timeout)
	}

	timed := &http.Client{Timeout: 3 * time.Second}
	if NewClient(ClientConfig{HTTPClient: timed, Logger: logging.NewNop()}).httpClient != timed {
		t.Fatalf("client with its own timeout should be used as is")
	}
}

func TestClient_InvalidInput(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{Logger: logging.NewNop()})

	if _, err := client.FetchTeam(context.Background(), 0); !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for team id, got=%v", err)
	}
	if _, err := client.FetchTransfers(context.Background(), -1); !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for transfers team id, got=%v", err)
	}
	if _, err := client.FetchMatchDetails(context.Background(), " "); !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for match id, got=%v", err)
	}
}

func TestClient_ArchivesRawPayload(t *testing.T) {
	t.Parallel()

	const body = `{"general":{"matchId":4506263}}`
	archive := rawdatamock.NewRepository(t)
	archive.
		On("UpsertMany", mock.Anything, mock.MatchedBy(func(items []rawdata.Payload) bool {
			return len(items) == 1 &&
				items[0].Source == rawdata.SourceFotMob &&
				items[0].EntityType == rawdata.EntityMatchDetails &&
				items[0].EntityKey == "matchDetails?matchId=4506263" &&
				items[0].MatchID == "4506263" &&
				items[0].PayloadJSON == body &&
				len(items[0].PayloadHash) == 64
		})).
		Return(errors.New("archive offline")).
		Once()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}), ClientConfig{RawArchive: archive})

	_, err := client.FetchMatchDetails(context.Background(), "4506263")
	require.NoError(t, err)
}

func TestAbbreviateBody(t *testing.T) {
	t.Parallel()

	long := make([]byte, 300)
	for i := range long {
		long[i] = 'x'
	}
	got := abbreviateBody(long)
	if len(got) != 243 {
		t.Fatalf("unexpected abbreviated length: %d", len(got))
	}
	if abbreviateBody([]byte("  short  ")) != "short" {
		t.Fatalf("short body should be trimmed only")
	}
}
