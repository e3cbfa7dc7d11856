package normalize

import (
	"testing"
	"time"

	"github.com/riskibarqy/football-digest/internal/domain/upstream"
)

func fixtureAt(id, utc string) upstream.Fixture {
	fx := upstream.Fixture{ID: upstream.NewScalar(id)}
	fx.Status.UTCTime = utc
	return fx
}

func TestParseUpstreamTime(t *testing.T) {
	t.Parallel()

	got, ok := ParseUpstreamTime("2024-05-01T19:45:00.000000Z")
	if !ok {
		t.Fatalf("expected timestamp to parse")
	}
	want := time.Date(2024, 5, 1, 19, 45, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("unexpected time: got=%s want=%s", got, want)
	}

	for _, raw := range []string{
		"",
		"2024-05-01T19:45:00Z",
		"2024-05-01 19:45:00.000Z",
		"2024-05-01T19:45:00.000+07:00",
		"not a time",
	} {
		if _, ok := ParseUpstreamTime(raw); ok {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
}

func TestSelectMatches_BoundariesInclusive(t *testing.T) {
	t.Parallel()

	window := NewWindow(
		time.Date(2024, 4, 25, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
	)
	fixtures := []upstream.Fixture{
		fixtureAt("before", "2024-04-24T23:59:59.999999Z"),
		fixtureAt("start", "2024-04-25T00:00:00.000000Z"),
		fixtureAt("inside", "2024-04-28T15:00:00.000Z"),
		fixtureAt("end", "2024-05-02T00:00:00.000000Z"),
		fixtureAt("after", "2024-05-02T00:00:00.000001Z"),
		fixtureAt("broken", "2024-04-28T15:00:00Z"),
		fixtureAt("missing", ""),
	}

	got := SelectMatches(fixtures, window)
	want := []string{"start", "inside", "end"}
	if len(got) != len(want) {
		t.Fatalf("unexpected selection count: got=%d want=%d", len(got), len(want))
	}
	for i := range want {
		if got[i].Fixture.ID.Text != want[i] {
			t.Fatalf("unexpected fixture at %d: got=%s want=%s", i, got[i].Fixture.ID.Text, want[i])
		}
	}
	if !got[0].KickoffAt.Equal(window.Start) {
		t.Fatalf("kickoff not carried: %s", got[0].KickoffAt)
	}
}

func TestSelectTransfers(t *testing.T) {
	t.Parallel()

	window := NewWindow(
		time.Date(2024, 4, 25, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
	)
	got := SelectTransfers([]upstream.Transfer{
		{Name: "In", TransferDate: "2024-05-01T00:00:00.000000Z"},
		{Name: "Old", TransferDate: "2024-01-01T00:00:00.000000Z"},
		{Name: "Bad", TransferDate: "2024-05-01"},
	}, window)

	if len(got) != 1 || got[0].Transfer.Name != "In" {
		t.Fatalf("unexpected transfers: %+v", got)
	}
}

func TestTrailingWindow(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 2, 9, 30, 0, 0, time.FixedZone("WIB", 7*3600))
	window := TrailingWindow(now, 0)

	if !window.End.Equal(now) || window.End.Location() != time.UTC {
		t.Fatalf("unexpected window end: %s", window.End)
	}
	if window.End.Sub(window.Start) != DefaultWindowLength {
		t.Fatalf("unexpected window length: %s", window.End.Sub(window.Start))
	}
	if got := window.Label(); got != "2024-04-25 ~ 2024-05-02" {
		t.Fatalf("unexpected label: %q", got)
	}
}
