// Package markdown renders match reports into the fixed Markdown layout the
// summarization step consumes.
package markdown

import (
	"strings"

	"github.com/riskibarqy/football-digest/internal/domain/matchreport"
	"github.com/valyala/bytebufferpool"
)

const (
	noMatchesLine   = "No matches played in this period.\n\n"
	noStatsLine     = "- No match stats recorded.\n"
	noEventsLine    = "- No major events recorded.\n"
	noTransfersLine = "- No transfers recorded in this period.\n"
	degradedLine    = "- _Match details unavailable._\n"
	sectionRule     = "\n---\n\n"
)

var tableCellEscaper = strings.NewReplacer("|", `\|`, "\n", " ")

// Renderer is stateless and safe for concurrent use.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderReport renders the header followed by the matches and transfers sections.
func (r *Renderer) RenderReport(report matchreport.Report) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	writeHeader(buf, report)
	writeMatches(buf, report.Matches)
	writeTransfers(buf, report.Transfers)
	return buf.String()
}

// RenderSection renders the header and a single section. Unknown sections
// render the header only.
func (r *Renderer) RenderSection(report matchreport.Report, section matchreport.Section) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	writeHeader(buf, report)
	switch section {
	case matchreport.SectionMatches:
		writeMatches(buf, report.Matches)
	case matchreport.SectionTransfers:
		writeTransfers(buf, report.Transfers)
	}
	return buf.String()
}

func (r *Renderer) RenderMatches(matches []matchreport.MatchSummary) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	writeMatches(buf, matches)
	return buf.String()
}

func (r *Renderer) RenderTransfers(transfers []matchreport.TransferEntry) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	writeTransfers(buf, transfers)
	return buf.String()
}

func writeHeader(buf *bytebufferpool.ByteBuffer, report matchreport.Report) {
	writeLine(buf, "# 📅 Weekly Report: ", matchreport.OrUnknown(report.TeamName))
	writeLine(buf, "**Period:** ", report.PeriodLabel)
	_, _ = buf.WriteString("\n---\n\n")
}

func writeMatches(buf *bytebufferpool.ByteBuffer, matches []matchreport.MatchSummary) {
	if len(matches) == 0 {
		_, _ = buf.WriteString(noMatchesLine)
		return
	}
	for _, match := range matches {
		writeMatch(buf, match)
	}
}

func writeMatch(buf *bytebufferpool.ByteBuffer, match matchreport.MatchSummary) {
	writeLine(buf, "## 🏟️ Match: vs ", match.OpponentName)
	writeLine(buf, "- **Competition:** ", match.CompetitionLabel)
	writeLine(buf, "- **Date:** ", match.LocalDisplayTime)
	writeLine(buf, "- **Venue:** ", string(match.Venue))
	writeLine(buf, "- **Score:** ", match.ScoreString)
	writeLine(buf, "- **Man of the Match:** ", match.ManOfTheMatch)
	if match.Degraded {
		_, _ = buf.WriteString(degradedLine)
	}

	if len(match.Statistics) == 0 {
		_, _ = buf.WriteString(noStatsLine)
	} else {
		_, _ = buf.WriteString("\n**📊 Match Stats:**\n")
		writeTableRow(buf, "Stat", match.HomeTeamName, match.AwayTeamName)
		_, _ = buf.WriteString("|---|:-:|:-:|\n")
		for _, stat := range match.Statistics {
			writeTableRow(buf, stat.Title, stat.HomeValue, stat.AwayValue)
		}
	}

	_, _ = buf.WriteString("\n**⏱️ Key Events:**\n")
	if len(match.Events) == 0 {
		_, _ = buf.WriteString(noEventsLine)
	} else {
		for _, event := range match.Events {
			_, _ = buf.WriteString("- `")
			_, _ = buf.WriteString(event.MinuteLabel)
			_, _ = buf.WriteString("` **")
			_, _ = buf.WriteString(event.TeamName)
			_, _ = buf.WriteString("**: ")
			writeLine(buf, event.Description)
		}
	}

	_, _ = buf.WriteString(sectionRule)
}

func writeTransfers(buf *bytebufferpool.ByteBuffer, transfers []matchreport.TransferEntry) {
	_, _ = buf.WriteString("## 🔁 Transfer Updates\n")
	if len(transfers) == 0 {
		_, _ = buf.WriteString(noTransfersLine)
		return
	}
	for _, transfer := range transfers {
		writeLine(buf, "- ", transfer.PlayerName, ": ", transfer.MovementLabel, " (", transfer.DateOnly(), ")")
	}
}

func writeTableRow(buf *bytebufferpool.ByteBuffer, cells ...string) {
	_, _ = buf.WriteString("|")
	for _, cell := range cells {
		_, _ = buf.WriteString(" ")
		_, _ = buf.WriteString(tableCellEscaper.Replace(cell))
		_, _ = buf.WriteString(" |")
	}
	_, _ = buf.WriteString("\n")
}

func writeLine(buf *bytebufferpool.ByteBuffer, parts ...string) {
	for _, part := range parts {
		_, _ = buf.WriteString(part)
	}
	_ = buf.WriteByte('\n')
}
