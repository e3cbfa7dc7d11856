package usecase

import (
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/football-digest/internal/domain/upstream"
	"github.com/riskibarqy/football-digest/internal/normalize"
)

const (
	manCityID = int64(8456)
	arsenalID = int64(9825)
)

const manCityBundleJSON = `{
  "details": {"id": 8456, "name": "Man City"},
  "fixtures": {"allFixtures": {"fixtures": [
    {
      "id": 4506200,
      "opponent": {"id": 8654, "name": "West Ham"},
      "home": {"id": 8654, "name": "West Ham"},
      "away": {"id": 8456, "name": "Man City"},
      "tournament": {"name": "Premier League", "leagueId": 47},
      "status": {"utcTime": "2024-04-20T14:00:00.000Z", "scoreStr": "0 - 3", "finished": true}
    },
    {
      "id": 4506263,
      "opponent": {"id": 9825, "name": "Arsenal"},
      "home": {"id": 8456, "name": "Man City"},
      "away": {"id": 9825, "name": "Arsenal"},
      "tournament": {"name": "Premier League", "leagueId": 47},
      "status": {"utcTime": "2024-04-28T15:30:00.000Z", "scoreStr": "2 - 1", "finished": true}
    },
    {
      "id": 4506265,
      "opponent": {"id": 8455, "name": "Chelsea"},
      "home": {"id": 8455, "name": "Chelsea"},
      "away": {"id": 8456, "name": "Man City"},
      "tournament": {"name": "FA Cup", "leagueId": 132},
      "status": {"utcTime": "2024-04-30T19:00:00.000Z", "scoreStr": "", "finished": true}
    },
    {
      "id": 4506270,
      "opponent": {"id": 10260, "name": "Man United"},
      "home": {"id": 10260, "name": "Man United"},
      "away": {"id": 8456, "name": "Man City"},
      "tournament": {"name": "Premier League", "leagueId": 47},
      "status": {"utcTime": "2024-05-04T14:00:00.000Z", "finished": false}
    }
  ]}}
}`

const cityArsenalDetailsJSON = `{
  "general": {
    "matchId": 4506263,
    "leagueName": "Premier League",
    "matchRound": "12",
    "homeTeam": {"id": 8456, "name": "Man City"},
    "awayTeam": {"id": 9825, "name": "Arsenal"}
  },
  "content": {
    "matchFacts": {
      "playerOfTheMatch": {"name": {"firstName": "Phil", "lastName": "Foden"}, "teamName": "Man City", "rating": {"num": "8.9"}},
      "events": {"events": [
        {"type": "Goal", "time": 23, "isHome": true, "player": {"name": "Erling Haaland"}, "assistPlayer": {"name": "Kevin De Bruyne"}},
        {"type": "Substitution", "time": 60, "isHome": false, "player": {"name": "Kai Havertz"}, "swap": [{"name": "Gabriel Jesus"}]},
        {"type": "Card", "time": 70, "isHome": false, "player": {"name": "Declan Rice"}, "card": "Yellow"}
      ]}
    },
    "stats": {"Periods": {"All": {"stats": [
      {"title": "Top stats", "key": "top_stats", "stats": [
        {"key": "BallPossesion", "title": "Ball possession", "stats": [61, 39]},
        {"key": "expected_goals", "title": "Expected goals (xG)", "stats": ["2.31", "0.87"]},
        {"key": "duels_won", "title": "Duels won", "stats": [40, 35]}
      ]}
    ]}}}
  }
}`

const manCityTransfersJSON = `{"transfers": [
  {"name": "Savinho", "playerId": 1358425, "fromClub": "Troyes", "toClub": "Man City", "transferDate": "2024-05-01T00:00:00.000000Z"},
  {"name": "Julian Alvarez", "playerId": 1029201, "fromClub": "Man City", "toClub": "Atletico Madrid", "transferDate": "2024-08-12T00:00:00.000000Z"},
  {"name": "Kalvin Phillips", "playerId": 171133, "fromClub": "Man City", "toClub": "West Ham", "transferDate": "not-a-date"}
]}`

func decodeFixture[T any](t *testing.T, raw string) T {
	t.Helper()

	var out T
	if err := sonic.UnmarshalString(raw, &out); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return out
}

func manCityBundle(t *testing.T) upstream.TeamBundle {
	return decodeFixture[upstream.TeamBundle](t, manCityBundleJSON)
}

func cityArsenalDetails(t *testing.T) upstream.MatchDetails {
	return decodeFixture[upstream.MatchDetails](t, cityArsenalDetailsJSON)
}

func manCityTransfers(t *testing.T) upstream.TransferList {
	return decodeFixture[upstream.TransferList](t, manCityTransfersJSON)
}

// reportWindow covers 2024-04-25 through 2024-05-02 inclusive.
func reportWindow() normalize.Window {
	return normalize.NewWindow(
		time.Date(2024, 4, 25, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
	)
}
