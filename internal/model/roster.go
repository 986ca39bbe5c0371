package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RosterEntry is one person eligible for attendance marking.
// Entries are identified by their position in the loaded roster.
type RosterEntry struct {
	Name         string `json:"name"`
	RollNo       string `json:"rollNo"`
	EnrollmentNo string `json:"enrollmentNo"`
}

// UnmarshalJSON decodes an entry without validating the roster schema:
// unknown keys are ignored, missing or null keys become empty strings and
// scalar values are kept in their literal text form (rollNo: 12 → "12").
// Only a value that is not a JSON object is rejected.
func (e *RosterEntry) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("roster entry is null")
	}

	var err error
	if e.Name, err = scalarText(raw["name"]); err != nil {
		return fmt.Errorf("name: %w", err)
	}
	if e.RollNo, err = scalarText(raw["rollNo"]); err != nil {
		return fmt.Errorf("rollNo: %w", err)
	}
	if e.EnrollmentNo, err = scalarText(raw["enrollmentNo"]); err != nil {
		return fmt.Errorf("enrollmentNo: %w", err)
	}
	return nil
}

func scalarText(v json.RawMessage) (string, error) {
	v = bytes.TrimSpace(v)
	if len(v) == 0 || bytes.Equal(v, []byte("null")) {
		return "", nil
	}
	switch v[0] {
	case '"':
		var s string
		err := json.Unmarshal(v, &s)
		return s, err
	case '{', '[':
		return "", fmt.Errorf("expected scalar, got %s", v[:1])
	default:
		return string(v), nil
	}
}

// MarkedEntry pairs a roster entry with its current mark.
type MarkedEntry struct {
	Index int         `json:"index"`
	Entry RosterEntry `json:"entry"`
	Mark  Mark        `json:"mark"`
}

// Summary holds the attendance counts shown by the statistics view.
// Total always equals Present + Absent + Unmarked.
type Summary struct {
	Total    int `json:"total"`
	Present  int `json:"present"`
	Absent   int `json:"absent"`
	Unmarked int `json:"unmarked"`
}

// Add counts one mark into the summary.
func (s *Summary) Add(m Mark) {
	s.Total++
	switch m {
	case Present:
		s.Present++
	case Absent:
		s.Absent++
	default:
		s.Unmarked++
	}
}
