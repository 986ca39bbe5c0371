package service

import "github.com/stemsi/rollcall/internal/model"

// ChangeNotifier receives roster changes so connected views can re-render.
type ChangeNotifier interface {
	RosterLoaded(entries []model.MarkedEntry, summary model.Summary)
	MarksChanged(changed []model.MarkedEntry, summary model.Summary)
	ReportCopied(records int)
}

type nopNotifier struct{}

func (nopNotifier) RosterLoaded([]model.MarkedEntry, model.Summary) {}
func (nopNotifier) MarksChanged([]model.MarkedEntry, model.Summary) {}
func (nopNotifier) ReportCopied(int)                                {}

func orNop(n ChangeNotifier) ChangeNotifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}
