package markdown

import (
	"strings"
	"testing"

	"github.com/riskibarqy/football-digest/internal/domain/matchreport"
)

func sampleMatch() matchreport.MatchSummary {
	return matchreport.MatchSummary{
		MatchID:          "4506263",
		LocalDisplayTime: "2024-04-28 15:30",
		OpponentName:     "Arsenal",
		ScoreString:      "2 - 1",
		HomeTeamName:     "Man City",
		AwayTeamName:     "Arsenal",
		CompetitionLabel: "Premier League - Matchweek 35",
		Venue:            matchreport.VenueHome,
		ManOfTheMatch:    "Erling Haaland (Man City, Rating: 8.9)",
		Statistics: []matchreport.StatEntry{
			{Title: "Ball possession", HomeValue: "61", AwayValue: "39"},
			{Title: "Expected goals (xG)", HomeValue: "1.84", AwayValue: "0.62"},
		},
		Events: []matchreport.EventEntry{
			{MinuteLabel: "12'", TeamName: "Man City", Description: "⚽ Goal: Erling Haaland (Assist: Kevin De Bruyne)"},
		},
	}
}

func TestRenderMatches_FullTemplate(t *testing.T) {
	t.Parallel()

	got := NewRenderer().RenderMatches([]matchreport.MatchSummary{sampleMatch()})
	want := "## 🏟️ Match: vs Arsenal\n" +
		"- **Competition:** Premier League - Matchweek 35\n" +
		"- **Date:** 2024-04-28 15:30\n" +
		"- **Venue:** Home\n" +
		"- **Score:** 2 - 1\n" +
		"- **Man of the Match:** Erling Haaland (Man City, Rating: 8.9)\n" +
		"\n**📊 Match Stats:**\n" +
		"| Stat | Man City | Arsenal |\n" +
		"|---|:-:|:-:|\n" +
		"| Ball possession | 61 | 39 |\n" +
		"| Expected goals (xG) | 1.84 | 0.62 |\n" +
		"\n**⏱️ Key Events:**\n" +
		"- `12'` **Man City**: ⚽ Goal: Erling Haaland (Assist: Kevin De Bruyne)\n" +
		"\n---\n\n"
	if got != want {
		t.Fatalf("unexpected markdown:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderMatches_Placeholders(t *testing.T) {
	t.Parallel()

	renderer := NewRenderer()
	if got := renderer.RenderMatches(nil); got != "No matches played in this period.\n\n" {
		t.Fatalf("unexpected empty matches output: %q", got)
	}

	match := sampleMatch()
	match.Statistics = nil
	match.Events = nil
	match.Degraded = true
	got := renderer.RenderMatches([]matchreport.MatchSummary{match})
	for _, want := range []string{
		"- _Match details unavailable._\n",
		"- No match stats recorded.\n",
		"\n**⏱️ Key Events:**\n- No major events recorded.\n",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in output:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Match Stats") {
		t.Fatalf("stats table must be omitted without statistics:\n%s", got)
	}
}

func TestRenderTransfers(t *testing.T) {
	t.Parallel()

	renderer := NewRenderer()
	got := renderer.RenderTransfers([]matchreport.TransferEntry{{
		PlayerName:    "Savinho",
		MovementLabel: matchreport.MovementLabel("Troyes", "Man City"),
		DateISO:       "2024-05-01T00:00:00.000000Z",
	}})
	want := "## 🔁 Transfer Updates\n- Savinho: Troyes -> Man City (2024-05-01)\n"
	if got != want {
		t.Fatalf("unexpected transfers output: %q", got)
	}

	if got := renderer.RenderTransfers(nil); got != "## 🔁 Transfer Updates\n- No transfers recorded in this period.\n" {
		t.Fatalf("unexpected empty transfers output: %q", got)
	}
}

func TestRenderReportAndSections(t *testing.T) {
	t.Parallel()

	report := matchreport.Report{
		TeamName:    "Man City",
		PeriodLabel: "2024-04-25 ~ 2024-05-02",
		Matches:     []matchreport.MatchSummary{sampleMatch()},
	}
	renderer := NewRenderer()
	header := "# 📅 Weekly Report: Man City\n**Period:** 2024-04-25 ~ 2024-05-02\n\n---\n\n"

	full := renderer.RenderReport(report)
	if !strings.HasPrefix(full, header) {
		t.Fatalf("missing header:\n%s", full)
	}
	if !strings.Contains(full, "## 🏟️ Match: vs Arsenal") || !strings.Contains(full, "## 🔁 Transfer Updates") {
		t.Fatalf("report must contain both sections:\n%s", full)
	}

	matches := renderer.RenderSection(report, matchreport.SectionMatches)
	if matches != header+renderer.RenderMatches(report.Matches) {
		t.Fatalf("unexpected matches section:\n%s", matches)
	}
	transfers := renderer.RenderSection(report, matchreport.SectionTransfers)
	if transfers != header+renderer.RenderTransfers(nil) {
		t.Fatalf("unexpected transfers section:\n%s", transfers)
	}
}

func TestRenderMatches_EscapesTableCells(t *testing.T) {
	t.Parallel()

	match := sampleMatch()
	match.Statistics = []matchreport.StatEntry{{Title: "Passes accurate", HomeValue: "512 | 89%", AwayValue: "301"}}
	got := NewRenderer().RenderMatches([]matchreport.MatchSummary{match})
	if !strings.Contains(got, `| Passes accurate | 512 \| 89% | 301 |`) {
		t.Fatalf("expected escaped pipe in table cell:\n%s", got)
	}
}
