package matchreport

import (
	"strings"
	"time"
)

type Venue string

const (
	VenueHome Venue = "Home"
	VenueAway Venue = "Away"
)

const (
	// NotAvailable is rendered for a missing man of the match or rating.
	NotAvailable = "N/A"
	// Unknown is rendered for names the provider did not resolve.
	Unknown = "Unknown"
)

// Team is the tracked club as named by the provider.
type Team struct {
	ID   int64
	Name string
}

// StatEntry is one canonical box-score row. Values keep the provider's text.
type StatEntry struct {
	Title     string
	HomeValue string
	AwayValue string
}

// EventEntry is one retained in-game event, already formatted for display.
type EventEntry struct {
	MinuteLabel string
	TeamName    string
	Description string
}

// MatchSummary is the normalized view of one fixture inside the report window.
type MatchSummary struct {
	MatchID          string
	UTCTimestamp     time.Time
	LocalDisplayTime string
	OpponentName     string
	ScoreString      string
	HomeTeamName     string
	AwayTeamName     string
	CompetitionLabel string
	Venue            Venue
	ManOfTheMatch    string
	Statistics       []StatEntry
	Events           []EventEntry
	// Degraded marks a match whose detail payload could not be fetched.
	Degraded bool
}

// TransferEntry is one transfer dated inside the report window.
type TransferEntry struct {
	PlayerName    string
	MovementLabel string
	DateISO       string
	TransferredAt time.Time
}

// DateOnly returns the calendar date part of DateISO.
func (t TransferEntry) DateOnly() string {
	date, _, _ := strings.Cut(t.DateISO, "T")
	return date
}

func MovementLabel(fromClub, toClub string) string {
	return OrUnknown(fromClub) + " -> " + OrUnknown(toClub)
}

// Report is the assembled bundle for one team and one window.
type Report struct {
	TeamID      int64
	TeamName    string
	PeriodLabel string
	PeriodStart time.Time
	PeriodEnd   time.Time
	Matches     []MatchSummary
	Transfers   []TransferEntry
	GeneratedAt time.Time
}

// OrUnknown returns the trimmed value, or Unknown when it is blank.
func OrUnknown(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return Unknown
	}
	return value
}
