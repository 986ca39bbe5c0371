package main

import (
	"bufio"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stemsi/rollcall/internal/model"
	"github.com/stemsi/rollcall/internal/repository"
	"github.com/stemsi/rollcall/internal/service"
)

func TestParseFields(t *testing.T) {
	cfg, err := parseFields("name, status")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := model.ProjectionConfig{IncludeName: true, IncludeStatus: true}
	if cfg != want {
		t.Fatalf("expected %+v, got %+v", want, cfg)
	}
	if _, err := parseFields("name,age"); err == nil {
		t.Fatal("expected unknown field error")
	}
}

func TestPromptMarks(t *testing.T) {
	store := repository.NewRosterStore()
	store.Load([]model.RosterEntry{{Name: "Ann"}, {Name: "Bob"}, {Name: "Cid"}, {Name: "Dee"}}, "")
	svc := service.NewAttendanceService(store, nil, zerolog.Nop())

	in := bufio.NewReader(strings.NewReader("p\na\nt\nt\n"))
	promptMarks(in, io.Discard, svc, store.Snapshot(), 40)

	want := []model.Mark{model.Present, model.Absent, model.Present, model.Present}
	for i, e := range store.Snapshot() {
		if e.Mark != want[i] {
			t.Fatalf("entry %d: expected %v, got %v", i, want[i], e.Mark)
		}
	}
}

func TestPromptMarksBulkStops(t *testing.T) {
	store := repository.NewRosterStore()
	store.Load([]model.RosterEntry{{Name: "Ann"}, {Name: "Bob"}}, "")
	svc := service.NewAttendanceService(store, nil, zerolog.Nop())

	promptMarks(bufio.NewReader(strings.NewReader("A\np\n")), io.Discard, svc, store.Snapshot(), 40)

	if sum := store.Summary(); sum.Absent != 2 {
		t.Fatalf("expected everyone absent, got %+v", sum)
	}
}
