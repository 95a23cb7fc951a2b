package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Ref is a reference to another persisted entity. Persistence collaborators may
// return references populated as objects; Ref decodes either form and always
// encodes as the bare identifier.
type Ref string

func (r Ref) String() string { return string(r) }

// IsZero reports whether the reference is blank.
func (r Ref) IsZero() bool { return strings.TrimSpace(string(r)) == "" }

// Trimmed returns the reference without surrounding whitespace.
func (r Ref) Trimmed() Ref { return Ref(strings.TrimSpace(string(r))) }

func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(r))
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*r = ""
		return nil
	}

	switch trimmed[0] {
	case '"':
		var value string
		if err := json.Unmarshal(trimmed, &value); err != nil {
			return err
		}
		*r = Ref(strings.TrimSpace(value))
		return nil
	case '{':
		var populated map[string]any
		if err := json.Unmarshal(trimmed, &populated); err != nil {
			return err
		}
		for _, key := range []string{"_id", "id"} {
			if id := identifierString(populated[key]); id != "" {
				*r = Ref(id)
				return nil
			}
		}
		return fmt.Errorf("domain: populated reference has no identifier")
	default:
		var number json.Number
		if err := json.Unmarshal(trimmed, &number); err != nil {
			return fmt.Errorf("domain: unsupported reference value %s", string(trimmed))
		}
		*r = Ref(number.String())
		return nil
	}
}

func identifierString(value any) string {
	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case json.Number:
		return typed.String()
	default:
		return ""
	}
}
