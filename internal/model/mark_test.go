package model

import (
	"encoding/json"
	"testing"
)

func TestMarkNextCycle(t *testing.T) {
	tests := []struct {
		from Mark
		want Mark
	}{
		{Unmarked, Present},
		{Present, Absent},
		{Absent, Unmarked},
	}
	for _, tt := range tests {
		if got := tt.from.Next(); got != tt.want {
			t.Fatalf("%v.Next() = %v, want %v", tt.from, got, tt.want)
		}
	}
}

func TestMarkNextClosure(t *testing.T) {
	for _, start := range []Mark{Unmarked, Present, Absent} {
		if got := start.Next().Next().Next(); got != start {
			t.Fatalf("three toggles from %v returned %v", start, got)
		}
		if four, one := start.Next().Next().Next().Next(), start.Next(); four != one {
			t.Fatalf("four toggles from %v = %v, one toggle = %v", start, four, one)
		}
	}
}

func TestParseMark(t *testing.T) {
	tests := []struct {
		in      string
		want    Mark
		wantErr bool
	}{
		{in: "present", want: Present},
		{in: "ABSENT", want: Absent},
		{in: " unmarked ", want: Unmarked},
		{in: "late", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseMark(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseMark(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseMark(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseMark(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMarkJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		M Mark `json:"m"`
	}{Absent})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"m":"absent"}` {
		t.Fatalf("unexpected json %s", data)
	}

	var m Mark
	if err := json.Unmarshal([]byte(`"present"`), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m != Present {
		t.Fatalf("expected present, got %v", m)
	}
	if err := json.Unmarshal([]byte(`"maybe"`), &m); err == nil {
		t.Fatal("expected error for unknown mark")
	}
}

func TestMarkExplicit(t *testing.T) {
	if Unmarked.Explicit() {
		t.Fatal("unmarked must not be an explicit choice")
	}
	if !Present.Explicit() || !Absent.Explicit() {
		t.Fatal("present and absent must be explicit choices")
	}
	if Mark(7).Valid() {
		t.Fatal("out-of-range mark reported valid")
	}
}
