package service

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stemsi/rollcall/internal/model"
	"github.com/stemsi/rollcall/internal/repository"
)

func TestParseRoster(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int
		wantErr bool
	}{
		{name: "two entries", in: annBobJSON, want: 2},
		{name: "empty array", in: `[]`, want: 0},
		{name: "duplicates accepted", in: `[{"name":"Ann","rollNo":"1"},{"name":"Ann","rollNo":"1"}]`, want: 2},
		{name: "malformed", in: `[{"name":"Ann"`, wantErr: true},
		{name: "object not array", in: `{"name":"Ann"}`, wantErr: true},
		{name: "null", in: `null`, wantErr: true},
		{name: "array of strings", in: `["Ann","Bob"]`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRoster([]byte(tt.in))
			if tt.wantErr {
				if !errors.Is(err, ErrRosterLoad) {
					t.Fatalf("expected ErrRosterLoad, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if len(got) != tt.want {
				t.Fatalf("expected %d entries, got %d", tt.want, len(got))
			}
		})
	}
}

func TestLoadBytesReplacesRoster(t *testing.T) {
	store := repository.NewRosterStore()
	notifier := &recordingNotifier{}
	svc := NewRosterService(store, notifier, "humans.json", zerolog.Nop())

	n, err := svc.LoadBytes([]byte(annBobJSON), "class.json")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if n != 2 || store.Len() != 2 {
		t.Fatalf("expected 2 entries, got n=%d len=%d", n, store.Len())
	}
	if notifier.loads != 1 || notifier.last.Unmarked != 2 {
		t.Fatalf("expected one load notification with 2 unmarked, got %d %+v", notifier.loads, notifier.last)
	}

	st := svc.Status()
	if !st.Loaded || st.Source != "class.json" || st.Count != 2 || st.NeedsUpload {
		t.Fatalf("unexpected status %+v", st)
	}
}

func TestFailedLoadKeepsPreviousRoster(t *testing.T) {
	store := loadedStore()
	_, _ = store.SetMark(0, model.Present)
	svc := NewRosterService(store, nil, "humans.json", zerolog.Nop())

	if _, err := svc.LoadBytes([]byte(`not json`), "broken.json"); !errors.Is(err, ErrRosterLoad) {
		t.Fatalf("expected ErrRosterLoad, got %v", err)
	}
	if store.Source() != "test.json" || store.Len() != 2 {
		t.Fatalf("store replaced by failed load: source=%q len=%d", store.Source(), store.Len())
	}
	if e, _ := store.Get(0); e.Mark != model.Present {
		t.Fatalf("marks lost on failed load: %+v", e)
	}
}

func TestReloadDiscardsMarks(t *testing.T) {
	store := repository.NewRosterStore()
	svc := NewRosterService(store, nil, "", zerolog.Nop())
	if _, err := svc.LoadBytes([]byte(annBobJSON), "a.json"); err != nil {
		t.Fatalf("load: %v", err)
	}
	store.SetAll(model.Present)

	if _, err := svc.LoadBytes([]byte(annBobJSON), "b.json"); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if sum := store.Summary(); sum.Unmarked != 2 || sum.Present != 0 {
		t.Fatalf("expected marks reset, got %+v", sum)
	}
}

func TestAutoLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "humans.json")
	if err := os.WriteFile(path, []byte(annBobJSON), 0o644); err != nil {
		t.Fatalf("write roster: %v", err)
	}

	svc := NewRosterService(repository.NewRosterStore(), nil, path, zerolog.Nop())
	st := svc.AutoLoad()
	if !st.Loaded || st.Count != 2 {
		t.Fatalf("unexpected status %+v", st)
	}
	if !strings.HasPrefix(st.Message, "Auto-loaded 2 entries") {
		t.Fatalf("unexpected message %q", st.Message)
	}
}

func TestAutoLoadMissingFallsBackToUpload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "humans.json")
	svc := NewRosterService(repository.NewRosterStore(), nil, path, zerolog.Nop())

	st := svc.AutoLoad()
	if st.Loaded || !st.NeedsUpload {
		t.Fatalf("expected upload prompt, got %+v", st)
	}
	if st.Message != "humans.json not found. Please upload manually." {
		t.Fatalf("unexpected message %q", st.Message)
	}
}

func TestLoadReaderLimit(t *testing.T) {
	svc := NewRosterService(repository.NewRosterStore(), nil, "", zerolog.Nop())

	if _, err := svc.LoadReader(strings.NewReader(annBobJSON), "big.json", 10); !errors.Is(err, ErrRosterLoad) {
		t.Fatalf("expected size error, got %v", err)
	}
	if _, err := svc.LoadReader(strings.NewReader(annBobJSON), "ok.json", 0); err != nil {
		t.Fatalf("unlimited load: %v", err)
	}
}
