package service

import (
	"context"
	"sync"

	"github.com/stemsi/rollcall/internal/model"
	"github.com/stemsi/rollcall/internal/repository"
)

// recordingNotifier captures notifications for assertions.
type recordingNotifier struct {
	mu      sync.Mutex
	loads   int
	changes [][]model.MarkedEntry
	copies  []int
	last    model.Summary
}

func (n *recordingNotifier) RosterLoaded(_ []model.MarkedEntry, sum model.Summary) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.loads++
	n.last = sum
}

func (n *recordingNotifier) MarksChanged(changed []model.MarkedEntry, sum model.Summary) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changes = append(n.changes, changed)
	n.last = sum
}

func (n *recordingNotifier) ReportCopied(records int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.copies = append(n.copies, records)
}

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) Write(_ context.Context, text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

func (c *fakeClipboard) Read(context.Context) (string, error) {
	return c.text, c.err
}

const annBobJSON = `[{"name":"Ann","rollNo":"1","enrollmentNo":"E1"},{"name":"Bob","rollNo":"2","enrollmentNo":"E2"}]`

func loadedStore(entries ...model.RosterEntry) *repository.RosterStore {
	s := repository.NewRosterStore()
	if len(entries) == 0 {
		entries = []model.RosterEntry{
			{Name: "Ann", RollNo: "1", EnrollmentNo: "E1"},
			{Name: "Bob", RollNo: "2", EnrollmentNo: "E2"},
		}
	}
	s.Load(entries, "test.json")
	return s
}
