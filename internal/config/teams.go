package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// TrackedTeam is one club the digest is generated for.
type TrackedTeam struct {
	Name     string `yaml:"name" validate:"required,max=100"`
	FotMobID int64  `yaml:"fotmob_id" validate:"required,gt=0"`
}

type teamsFile struct {
	Teams []TrackedTeam `yaml:"teams" validate:"required,min=1,dive"`
}

// LoadTeams reads and validates the tracked-teams YAML file.
func LoadTeams(path string) ([]TrackedTeam, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read teams file %s: %w", path, err)
	}
	teams, err := ParseTeams(raw)
	if err != nil {
		return nil, fmt.Errorf("teams file %s: %w", path, err)
	}
	return teams, nil
}

func ParseTeams(raw []byte) ([]TrackedTeam, error) {
	var doc teamsFile
	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	for i := range doc.Teams {
		doc.Teams[i].Name = strings.TrimSpace(doc.Teams[i].Name)
	}
	if err := validator.New().Struct(doc); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	seen := make(map[int64]struct{}, len(doc.Teams))
	for _, team := range doc.Teams {
		if _, ok := seen[team.FotMobID]; ok {
			return nil, fmt.Errorf("validate: duplicate fotmob_id %d", team.FotMobID)
		}
		seen[team.FotMobID] = struct{}{}
	}
	return doc.Teams, nil
}
