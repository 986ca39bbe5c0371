package main

import (
	"testing"

	"github.com/stemsi/rollcall/internal/service"
)

func TestSeedRoster(t *testing.T) {
	data, err := seedRoster(35)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	entries, err := service.ParseRoster(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(entries) != 35 {
		t.Fatalf("expected 35 entries, got %d", len(entries))
	}
	if entries[30].Name != names[0] || entries[30].RollNo != "31" || entries[30].EnrollmentNo != "ENR00031" {
		t.Fatalf("unexpected entry %+v", entries[30])
	}

	if _, err := seedRoster(-1); err == nil {
		t.Fatal("expected error for negative count")
	}
}
