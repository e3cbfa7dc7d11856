package upstream

import (
	"bytes"
	"strings"

	sonic "github.com/bytedance/sonic"
)

// TeamBundle is the response of the teams endpoint.
type TeamBundle struct {
	Details  TeamDetails  `json:"details"`
	Fixtures TeamFixtures `json:"fixtures"`
}

type TeamDetails struct {
	ID   Scalar `json:"id"`
	Name string `json:"name"`
}

type TeamFixtures struct {
	AllFixtures struct {
		Fixtures []Fixture `json:"fixtures"`
	} `json:"allFixtures"`
}

// Empty reports a bundle that identifies no team, as sent for null or {} bodies.
func (b TeamBundle) Empty() bool {
	return !b.Details.ID.Set && strings.TrimSpace(b.Details.Name) == ""
}

// AllFixtures returns every fixture of the bundle in feed order.
func (b TeamBundle) AllFixtures() []Fixture {
	return b.Fixtures.AllFixtures.Fixtures
}

type TeamRef struct {
	ID   Scalar `json:"id"`
	Name string `json:"name"`
}

type Tournament struct {
	Name     string `json:"name"`
	LeagueID Scalar `json:"leagueId"`
}

type FixtureStatus struct {
	UTCTime   string `json:"utcTime"`
	ScoreStr  string `json:"scoreStr"`
	Finished  bool   `json:"finished"`
	Cancelled bool   `json:"cancelled"`
}

// Fixture is one entry of the team's fixture list.
type Fixture struct {
	ID         Scalar        `json:"id"`
	Opponent   TeamRef       `json:"opponent"`
	Home       TeamRef       `json:"home"`
	Away       TeamRef       `json:"away"`
	Tournament Tournament    `json:"tournament"`
	Status     FixtureStatus `json:"status"`
}

// Transfer is one record of the transfers endpoint.
type Transfer struct {
	Name         string `json:"name"`
	PlayerID     Scalar `json:"playerId"`
	FromClub     string `json:"fromClub"`
	ToClub       string `json:"toClub"`
	TransferDate string `json:"transferDate"`
}

// TransferList accepts both a bare array and an object wrapping it under "transfers".
type TransferList []Transfer

func (l *TransferList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	*l = nil
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	if trimmed[0] == '[' {
		var items []Transfer
		if err := sonic.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}

	var wrapped struct {
		Transfers []Transfer `json:"transfers"`
	}
	if err := sonic.Unmarshal(trimmed, &wrapped); err != nil {
		return err
	}
	*l = wrapped.Transfers
	return nil
}

// MatchDetails is the response of the matchDetails endpoint.
type MatchDetails struct {
	General MatchGeneral `json:"general"`
	Content MatchContent `json:"content"`
}

type MatchGeneral struct {
	MatchID    Scalar  `json:"matchId"`
	LeagueName string  `json:"leagueName"`
	MatchRound Scalar  `json:"matchRound"`
	HomeTeam   TeamRef `json:"homeTeam"`
	AwayTeam   TeamRef `json:"awayTeam"`
}

// Empty reports a general block that identifies no match.
func (g MatchGeneral) Empty() bool {
	return !g.MatchID.Set && strings.TrimSpace(g.LeagueName) == "" && !g.HomeTeam.ID.Set
}

type MatchContent struct {
	MatchFacts MatchFacts  `json:"matchFacts"`
	Stats      *MatchStats `json:"stats"`
}

type MatchFacts struct {
	PlayerOfTheMatch PlayerRef `json:"playerOfTheMatch"`
	Events           struct {
		Events []Event `json:"events"`
	} `json:"events"`
}

type MatchStats struct {
	Periods struct {
		All struct {
			Stats []StatSection `json:"stats"`
		} `json:"All"`
	} `json:"Periods"`
}

// AllPeriodItems flattens every section of the "All" period bucket into one
// sequence, keeping section and item order.
func (s *MatchStats) AllPeriodItems() []StatItem {
	if s == nil {
		return nil
	}
	out := make([]StatItem, 0, 32)
	for _, section := range s.Periods.All.Stats {
		out = append(out, section.Stats...)
	}
	return out
}

type StatSection struct {
	Title string     `json:"title"`
	Key   string     `json:"key"`
	Stats []StatItem `json:"stats"`
}

// StatItem is one box-score row. Stats holds the home and away values when well formed.
type StatItem struct {
	Key   string   `json:"key"`
	Title string   `json:"title"`
	Stats []Scalar `json:"stats"`
}

// Event is one in-game event of the match facts feed.
type Event struct {
	Type         string      `json:"type"`
	Time         Scalar      `json:"time"`
	IsHome       bool        `json:"isHome"`
	Player       PlayerRef   `json:"player"`
	AssistPlayer PlayerRef   `json:"assistPlayer"`
	Kind         Scalar      `json:"kind"`
	Card         Scalar      `json:"card"`
	Swap         []PlayerRef `json:"swap"`
}
