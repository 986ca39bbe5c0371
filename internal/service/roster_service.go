package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"github.com/stemsi/rollcall/internal/model"
	"github.com/stemsi/rollcall/internal/repository"
)

// ErrRosterLoad is returned when a roster source is missing or unparsable.
// The store is never modified when it is returned.
var ErrRosterLoad = errors.New("roster load failed")

// LoadStatus describes the outcome of the latest load attempt.
type LoadStatus struct {
	Loaded  bool   `json:"loaded"`
	Source  string `json:"source,omitempty"`
	Count   int    `json:"count"`
	Message string `json:"message"`
	// NeedsUpload is set when auto-load failed and nothing is loaded yet.
	NeedsUpload bool `json:"needs_upload"`
}

// RosterService loads rosters into the store.
type RosterService struct {
	store       *repository.RosterStore
	notifier    ChangeNotifier
	defaultPath string
	log         zerolog.Logger

	mu     sync.RWMutex
	status LoadStatus
}

// NewRosterService creates a RosterService. defaultPath is the well-known
// roster file used by AutoLoad.
func NewRosterService(store *repository.RosterStore, notifier ChangeNotifier, defaultPath string, log zerolog.Logger) *RosterService {
	return &RosterService{
		store:       store,
		notifier:    orNop(notifier),
		defaultPath: defaultPath,
		log:         log.With().Str("component", "roster_service").Logger(),
		status:      LoadStatus{Message: "No roster loaded."},
	}
}

// ParseRoster decodes a JSON array of roster entries.
func ParseRoster(data []byte) ([]model.RosterEntry, error) {
	var entries []model.RosterEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRosterLoad, err)
	}
	if entries == nil {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrRosterLoad)
	}
	return entries, nil
}

// AutoLoad loads the well-known roster file. Failure is not fatal: it is
// logged and the status asks for a manual upload instead.
func (s *RosterService) AutoLoad() LoadStatus {
	name := filepath.Base(s.defaultPath)

	n, err := s.LoadFile(s.defaultPath)
	if err != nil {
		s.log.Warn().Err(err).Str("path", s.defaultPath).Msg("Auto-load failed, waiting for manual upload")
		s.setStatus(func(st *LoadStatus) {
			st.Message = fmt.Sprintf("%s not found. Please upload manually.", name)
			st.NeedsUpload = !s.store.Loaded()
		})
		return s.Status()
	}

	s.setStatus(func(st *LoadStatus) {
		st.Message = fmt.Sprintf("Auto-loaded %d entries from %s", n, name)
	})
	return s.Status()
}

// LoadFile reads and loads a roster from path.
func (s *RosterService) LoadFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRosterLoad, err)
	}
	return s.LoadBytes(data, filepath.Base(path))
}

// LoadReader loads a roster from r, reading at most limit bytes
// (limit <= 0 means unlimited).
func (s *RosterService) LoadReader(r io.Reader, source string, limit int64) (int, error) {
	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRosterLoad, err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return 0, fmt.Errorf("%w: roster exceeds %d bytes", ErrRosterLoad, limit)
	}
	return s.LoadBytes(data, source)
}

// LoadBytes parses data and, on success, replaces the roster wholesale.
// On failure the previous roster stays active.
func (s *RosterService) LoadBytes(data []byte, source string) (int, error) {
	entries, err := ParseRoster(data)
	if err != nil {
		return 0, err
	}

	s.store.Load(entries, source)
	s.setStatus(func(st *LoadStatus) {
		*st = LoadStatus{
			Loaded:  true,
			Source:  source,
			Count:   len(entries),
			Message: fmt.Sprintf("Loaded %d entries from %s", len(entries), source),
		}
	})

	s.log.Info().Str("source", source).Int("entries", len(entries)).Msg("Roster loaded")
	s.notifier.RosterLoaded(s.store.Snapshot(), s.store.Summary())
	return len(entries), nil
}

// Status returns the latest load status.
func (s *RosterService) Status() LoadStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Roster returns every entry with its mark, plus the summary.
func (s *RosterService) Roster() ([]model.MarkedEntry, model.Summary) {
	return s.store.Snapshot(), s.store.Summary()
}

func (s *RosterService) setStatus(fn func(st *LoadStatus)) {
	s.mu.Lock()
	fn(&s.status)
	s.mu.Unlock()
}
