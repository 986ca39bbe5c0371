package model

import (
	"encoding/json"
	"testing"
)

func TestRecordMarshalKeepsOrder(t *testing.T) {
	r := Record{{Key: KeyStatus, Value: "Present"}, {Key: KeyName, Value: "Ann"}}
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"Status":"Present","Name":"Ann"}` {
		t.Fatalf("unexpected json %s", data)
	}

	empty, err := json.Marshal(Record{})
	if err != nil {
		t.Fatalf("marshal empty: %v", err)
	}
	if string(empty) != `{}` {
		t.Fatalf("expected {}, got %s", empty)
	}
}

func TestRecordGet(t *testing.T) {
	r := Record{{Key: KeyRollNo, Value: "7"}}
	if v, ok := r.Get(KeyRollNo); !ok || v != "7" {
		t.Fatalf("expected roll no 7, got %q (%v)", v, ok)
	}
	if _, ok := r.Get(KeyName); ok {
		t.Fatal("expected missing name")
	}
}

func TestSummaryAdd(t *testing.T) {
	var s Summary
	for _, m := range []Mark{Present, Absent, Unmarked, Present} {
		s.Add(m)
	}
	if s.Total != 4 || s.Present != 2 || s.Absent != 1 || s.Unmarked != 1 {
		t.Fatalf("unexpected summary %+v", s)
	}
}
