package normalize

import (
	"strings"

	"github.com/riskibarqy/football-digest/internal/domain/matchreport"
	"github.com/riskibarqy/football-digest/internal/domain/upstream"
)

// PlayerName resolves a display name from any of the provider's player shapes.
// It never returns an empty string.
func PlayerName(ref upstream.PlayerRef) string {
	if !ref.Present {
		return matchreport.Unknown
	}
	if name := strings.TrimSpace(ref.Name); name != "" {
		return ref.Name
	}
	if ref.NameParts != nil {
		return joinName(ref.NameParts.FirstName, ref.NameParts.LastName)
	}
	if ref.HasFlat {
		return joinName(ref.FirstName, ref.LastName)
	}
	return matchreport.Unknown
}

func joinName(first, last string) string {
	full := strings.TrimSpace(first + " " + last)
	if full == "" {
		return matchreport.Unknown
	}
	return full
}
