package rawdata

import "time"

const SourceFotMob = "fotmob"

const (
	EntityTeam         = "team"
	EntityTransfers    = "transfers"
	EntityMatchDetails = "match_details"
)

// Payload is one raw upstream response kept verbatim for replay and debugging.
type Payload struct {
	Source         string
	EntityType     string
	EntityKey      string
	TeamExternalID string
	MatchID        string
	PayloadJSON    string
	PayloadHash    string
	FetchedAt      time.Time
}
