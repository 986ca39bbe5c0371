package service

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stemsi/rollcall/internal/model"
	"github.com/stemsi/rollcall/internal/repository"
)

// ErrInvalidMark is returned when a mark is not allowed for the operation.
var ErrInvalidMark = errors.New("invalid mark")

// AttendanceService is the marking engine over the roster store.
type AttendanceService struct {
	store    *repository.RosterStore
	notifier ChangeNotifier
	log      zerolog.Logger
}

// NewAttendanceService creates a new AttendanceService.
func NewAttendanceService(store *repository.RosterStore, notifier ChangeNotifier, log zerolog.Logger) *AttendanceService {
	return &AttendanceService{
		store:    store,
		notifier: orNop(notifier),
		log:      log.With().Str("component", "attendance_service").Logger(),
	}
}

// Toggle cycles the entry's mark Unmarked → Present → Absent → Unmarked.
func (s *AttendanceService) Toggle(index int) (model.MarkedEntry, model.Summary, error) {
	entry, err := s.store.Toggle(index)
	if err != nil {
		return model.MarkedEntry{}, model.Summary{}, err
	}
	return s.changed(entry)
}

// SetMark sets the entry directly to Present or Absent, whatever its current mark.
func (s *AttendanceService) SetMark(index int, mark model.Mark) (model.MarkedEntry, model.Summary, error) {
	if !mark.Explicit() {
		return model.MarkedEntry{}, model.Summary{}, fmt.Errorf("%w: %s cannot be set on a single entry", ErrInvalidMark, mark)
	}
	entry, err := s.store.SetMark(index, mark)
	if err != nil {
		return model.MarkedEntry{}, model.Summary{}, err
	}
	return s.changed(entry)
}

// SetAll sets every entry to mark. Unmarked clears the roster.
func (s *AttendanceService) SetAll(mark model.Mark) (model.Summary, error) {
	if !mark.Valid() {
		return model.Summary{}, fmt.Errorf("%w: %d", ErrInvalidMark, int(mark))
	}
	s.store.SetAll(mark)
	sum := s.store.Summary()

	s.log.Debug().Str("mark", mark.String()).Int("entries", sum.Total).Msg("Bulk mark applied")
	s.notifier.MarksChanged(s.store.Snapshot(), sum)
	return sum, nil
}

// Summary returns the current attendance counts.
func (s *AttendanceService) Summary() model.Summary {
	return s.store.Summary()
}

// changed broadcasts the entry exactly as the mutation left it.
func (s *AttendanceService) changed(entry model.MarkedEntry) (model.MarkedEntry, model.Summary, error) {
	sum := s.store.Summary()
	s.notifier.MarksChanged([]model.MarkedEntry{entry}, sum)
	return entry, sum, nil
}
