package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseTeams(t *testing.T) {
	t.Parallel()

	teams, err := ParseTeams([]byte(`
teams:
  - name: " Manchester City "
    fotmob_id: 8456
  - name: Arsenal
    fotmob_id: 9825
`))
	if err != nil {
		t.Fatalf("parse teams: %v", err)
	}
	if len(teams) != 2 {
		t.Fatalf("unexpected team count: %d", len(teams))
	}
	if teams[0].Name != "Manchester City" || teams[0].FotMobID != 8456 {
		t.Fatalf("unexpected first team: %+v", teams[0])
	}
}

func TestParseTeams_Invalid(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"empty list":     "teams: []\n",
		"missing id":     "teams:\n  - name: Arsenal\n",
		"negative id":    "teams:\n  - name: Arsenal\n    fotmob_id: -1\n",
		"blank name":     "teams:\n  - name: \"  \"\n    fotmob_id: 9825\n",
		"unknown field":  "teams:\n  - name: Arsenal\n    fotmob_id: 9825\n    league: epl\n",
		"duplicate team": "teams:\n  - name: Arsenal\n    fotmob_id: 9825\n  - name: Gunners\n    fotmob_id: 9825\n",
	}
	for name, raw := range cases {
		if _, err := ParseTeams([]byte(raw)); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestLoadTeams_FromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "teams.yaml")
	if err := os.WriteFile(path, []byte("teams:\n  - name: Liverpool\n    fotmob_id: 8650\n"), 0o600); err != nil {
		t.Fatalf("write teams file: %v", err)
	}

	teams, err := LoadTeams(path)
	if err != nil {
		t.Fatalf("load teams: %v", err)
	}
	if len(teams) != 1 || teams[0].Name != "Liverpool" {
		t.Fatalf("unexpected teams: %+v", teams)
	}

	_, err = LoadTeams(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "missing.yaml") {
		t.Fatalf("expected missing file error naming the path, got %v", err)
	}
}
