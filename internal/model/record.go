package model

import (
	"bytes"
	"encoding/json"
)

// Column keys of a projected record, in output order.
const (
	KeyName       = "Name"
	KeyRollNo     = "Roll No"
	KeyEnrollment = "Enrollment No"
	KeyStatus     = "Status"
)

// ProjectionConfig selects which entries and fields end up in an export.
type ProjectionConfig struct {
	PresentOnly       bool `json:"present_only" form:"present_only"`
	IncludeName       bool `json:"include_name" form:"include_name,default=true"`
	IncludeRollNo     bool `json:"include_roll_no" form:"include_roll_no,default=true"`
	IncludeEnrollment bool `json:"include_enrollment" form:"include_enrollment,default=true"`
	IncludeStatus     bool `json:"include_status" form:"include_status,default=true"`
}

// DefaultProjection includes every field and every entry.
func DefaultProjection() ProjectionConfig {
	return ProjectionConfig{
		IncludeName:       true,
		IncludeRollNo:     true,
		IncludeEnrollment: true,
		IncludeStatus:     true,
	}
}

// Field is a single key/value cell of a record.
type Field struct {
	Key   string
	Value string
}

// Record is one projected row. Field order is significant.
type Record []Field

// Keys returns the column keys of the record in order.
func (r Record) Keys() []string {
	keys := make([]string, len(r))
	for i, f := range r {
		keys[i] = f.Key
	}
	return keys
}

// Get returns the value for key and whether it is present.
func (r Record) Get(key string) (string, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// MarshalJSON encodes the record as a JSON object, preserving field order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
