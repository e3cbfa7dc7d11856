package normalize

import (
	"regexp"
	"strings"
	"time"

	"github.com/riskibarqy/football-digest/internal/domain/upstream"
)

// DefaultWindowLength is the trailing report window.
const DefaultWindowLength = 7 * 24 * time.Hour

const periodDateLayout = "2006-01-02"

// upstreamTimestampRegex pins the provider format YYYY-MM-DDTHH:MM:SS.ffffffZ.
var upstreamTimestampRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{1,6}Z$`)

// ParseUpstreamTime parses a provider timestamp. Values off the fixed pattern
// report false.
func ParseUpstreamTime(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if !upstreamTimestampRegex.MatchString(value) {
		return time.Time{}, false
	}
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, false
	}
	return parsed.UTC(), true
}

// Window is a closed UTC interval.
type Window struct {
	Start time.Time
	End   time.Time
}

func NewWindow(start, end time.Time) Window {
	return Window{Start: start.UTC(), End: end.UTC()}
}

// TrailingWindow ends at now and spans length back. A non-positive length uses
// DefaultWindowLength.
func TrailingWindow(now time.Time, length time.Duration) Window {
	if length <= 0 {
		length = DefaultWindowLength
	}
	end := now.UTC()
	return Window{Start: end.Add(-length), End: end}
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

func (w Window) Label() string {
	return w.Start.Format(periodDateLayout) + " ~ " + w.End.Format(periodDateLayout)
}

type DatedFixture struct {
	Fixture   upstream.Fixture
	KickoffAt time.Time
}

type DatedTransfer struct {
	Transfer      upstream.Transfer
	TransferredAt time.Time
}

// SelectMatches keeps fixtures kicked off inside the window, in feed order.
// Fixtures without a parseable timestamp are skipped.
func SelectMatches(fixtures []upstream.Fixture, window Window) []DatedFixture {
	out := make([]DatedFixture, 0, 4)
	for _, item := range fixtures {
		kickoff, ok := ParseUpstreamTime(item.Status.UTCTime)
		if !ok || !window.Contains(kickoff) {
			continue
		}
		out = append(out, DatedFixture{Fixture: item, KickoffAt: kickoff})
	}
	return out
}

// SelectTransfers keeps transfers dated inside the window, in feed order.
func SelectTransfers(transfers []upstream.Transfer, window Window) []DatedTransfer {
	out := make([]DatedTransfer, 0, 4)
	for _, item := range transfers {
		at, ok := ParseUpstreamTime(item.TransferDate)
		if !ok || !window.Contains(at) {
			continue
		}
		out = append(out, DatedTransfer{Transfer: item, TransferredAt: at})
	}
	return out
}
