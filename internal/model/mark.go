package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Mark is the tri-state attendance value of a roster entry.
// The zero value is Unmarked.
type Mark int

const (
	Unmarked Mark = iota
	Present
	Absent
)

// Next returns the mark that follows m in the toggle cycle:
// Unmarked → Present → Absent → Unmarked.
func (m Mark) Next() Mark {
	switch m {
	case Unmarked:
		return Present
	case Present:
		return Absent
	default:
		return Unmarked
	}
}

// Status returns the human-readable label used in exports.
func (m Mark) Status() string {
	switch m {
	case Present:
		return "Present"
	case Absent:
		return "Absent"
	default:
		return "Unmarked"
	}
}

// String returns the wire form of the mark.
func (m Mark) String() string {
	return strings.ToLower(m.Status())
}

// Valid reports whether m is one of the three known marks.
func (m Mark) Valid() bool {
	return m == Unmarked || m == Present || m == Absent
}

// Explicit reports whether m can be chosen directly for a single entry.
func (m Mark) Explicit() bool {
	return m == Present || m == Absent
}

// ParseMark parses the wire form ("present", "absent", "unmarked"), case-insensitively.
func ParseMark(s string) (Mark, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "present":
		return Present, nil
	case "absent":
		return Absent, nil
	case "unmarked":
		return Unmarked, nil
	}
	return Unmarked, fmt.Errorf("unknown mark %q", s)
}

func (m Mark) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *Mark) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseMark(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
