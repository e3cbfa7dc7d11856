package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/riskibarqy/football-digest/internal/domain/matchreport"
)

const dayDirLayout = "20060102"

var fileNameReplacer = strings.NewReplacer(
	" ", "_",
	"/", "_",
	"\\", "_",
	":", "_",
)

// SectionWriter stores rendered sections as
// <root>/<YYYYMMDD>/team_weekly_report_<Team_Name>_<section>.md.
type SectionWriter struct {
	root     string
	location *time.Location
}

func NewSectionWriter(root string, location *time.Location) *SectionWriter {
	if strings.TrimSpace(root) == "" {
		root = "."
	}
	if location == nil {
		location = time.UTC
	}
	return &SectionWriter{root: root, location: location}
}

// PathFor returns the file that holds one section of a report.
func (w *SectionWriter) PathFor(report matchreport.Report, section matchreport.Section) string {
	day := report.GeneratedAt.In(w.location).Format(dayDirLayout)
	name := fmt.Sprintf("team_weekly_report_%s_%s.md", fileNameReplacer.Replace(strings.TrimSpace(report.TeamName)), section)
	return filepath.Join(w.root, day, name)
}

// WriteSection replaces the section file atomically and returns its path.
func (w *SectionWriter) WriteSection(ctx context.Context, report matchreport.Report, section matchreport.Section, markdown string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := w.PathFor(report, section)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".report-*.md")
	if err != nil {
		return "", fmt.Errorf("create temp report file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.WriteString(markdown); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write report file %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close report file %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return "", fmt.Errorf("chmod report file %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return "", fmt.Errorf("rename report file %s: %w", path, err)
	}
	return path, nil
}
