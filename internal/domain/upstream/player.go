package upstream

import (
	"bytes"

	sonic "github.com/bytedance/sonic"
)

// NameParts is the nested {"firstName","lastName"} name shape.
type NameParts struct {
	FirstName string
	LastName  string
}

// PlayerRef is a player object as it appears in match facts, events and
// player-of-the-match records. The provider uses at least three shapes for the
// name: a plain "name" string, a nested "name" object, or flat first/last fields.
type PlayerRef struct {
	Present   bool
	Name      string
	NameParts *NameParts
	FirstName string
	LastName  string
	HasFlat   bool
	ID        Scalar
	TeamName  string
	Rating    Scalar
}

func (p *PlayerRef) UnmarshalJSON(data []byte) error {
	*p = PlayerRef{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if trimmed[0] == '"' {
		var name string
		if err := sonic.Unmarshal(trimmed, &name); err != nil {
			return err
		}
		p.Present = name != ""
		p.Name = name
		return nil
	}
	if trimmed[0] != '{' {
		return nil
	}

	var obj map[string]any
	if err := sonic.Unmarshal(trimmed, &obj); err != nil {
		return err
	}
	*p = playerRefFromMap(obj)
	return nil
}

func playerRefFromMap(obj map[string]any) PlayerRef {
	if len(obj) == 0 {
		return PlayerRef{}
	}

	out := PlayerRef{
		Present:  true,
		ID:       scalarFromAny(obj["id"]),
		TeamName: stringField(obj, "teamName"),
		Rating:   ratingFromAny(obj["rating"]),
	}

	switch name := obj["name"].(type) {
	case string:
		out.Name = name
	case map[string]any:
		out.NameParts = &NameParts{
			FirstName: stringField(name, "firstName"),
			LastName:  stringField(name, "lastName"),
		}
	}

	_, hasFirst := obj["firstName"]
	_, hasLast := obj["lastName"]
	if hasFirst || hasLast {
		out.HasFlat = true
		out.FirstName = stringField(obj, "firstName")
		out.LastName = stringField(obj, "lastName")
	}

	return out
}

func ratingFromAny(raw any) Scalar {
	if nested, ok := raw.(map[string]any); ok {
		return scalarFromAny(nested["num"])
	}
	return scalarFromAny(raw)
}

func stringField(src map[string]any, key string) string {
	if src == nil {
		return ""
	}
	value, ok := src[key].(string)
	if !ok {
		return ""
	}
	return value
}
