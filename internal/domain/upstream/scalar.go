package upstream

import (
	"bytes"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
)

// Scalar keeps a JSON string or number in the textual form the provider sent.
// Objects, arrays and null decode to an unset Scalar instead of failing the payload.
type Scalar struct {
	Text string
	Set  bool
}

func NewScalar(text string) Scalar {
	return Scalar{Text: text, Set: true}
}

func (s *Scalar) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	*s = Scalar{}
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	switch trimmed[0] {
	case '{', '[':
		return nil
	case '"':
		var value string
		if err := sonic.Unmarshal(trimmed, &value); err != nil {
			return err
		}
		*s = Scalar{Text: value, Set: true}
	default:
		*s = Scalar{Text: string(trimmed), Set: true}
	}
	return nil
}

func (s Scalar) String() string {
	return s.Text
}

// Int64 parses the scalar as a whole number. Floats with a zero fraction are accepted.
func (s Scalar) Int64() (int64, bool) {
	if !s.Set {
		return 0, false
	}
	value := strings.TrimSpace(s.Text)
	if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
		return parsed, true
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed != float64(int64(parsed)) {
		return 0, false
	}
	return int64(parsed), true
}

// EqualID reports whether the scalar identifies the same numeric id.
func (s Scalar) EqualID(id int64) bool {
	value, ok := s.Int64()
	return ok && value == id
}

func scalarFromAny(raw any) Scalar {
	switch typed := raw.(type) {
	case nil:
		return Scalar{}
	case string:
		return Scalar{Text: typed, Set: true}
	case float64:
		return Scalar{Text: strconv.FormatFloat(typed, 'f', -1, 64), Set: true}
	case int64:
		return Scalar{Text: strconv.FormatInt(typed, 10), Set: true}
	case int:
		return Scalar{Text: strconv.Itoa(typed), Set: true}
	case bool:
		return Scalar{Text: strconv.FormatBool(typed), Set: true}
	default:
		return Scalar{}
	}
}
