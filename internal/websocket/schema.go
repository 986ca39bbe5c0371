package websocket

import "github.com/stemsi/rollcall/internal/model"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing          Action = "ping"
	ActionToggle        Action = "toggle"
	ActionSetMark       Action = "set_mark"
	ActionBulk          Action = "bulk"
	ActionWatchReport   Action = "watch_report"
	ActionUnwatchReport Action = "unwatch_report"
)

// RequestPayload is the union of every client message.
type RequestPayload struct {
	Action Action                  `json:"action"`
	Index  *int                    `json:"index,omitempty"`
	Mark   string                  `json:"mark,omitempty"`
	Config *model.ProjectionConfig `json:"config,omitempty"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventSnapshot     Event = "snapshot"
	EventRosterLoaded Event = "roster_loaded"
	EventMarksChanged Event = "marks_changed"
	EventReport       Event = "report"
	EventReportCopied Event = "report_copied"
	EventClipboard    Event = "clipboard"
	EventError        Event = "error"
	EventPong         Event = "pong"
)

// RosterEvent carries the full roster, sent on connect and after every load.
type RosterEvent struct {
	Event   Event               `json:"event"`
	Entries []model.MarkedEntry `json:"entries"`
	Summary model.Summary       `json:"summary"`
}

// MarksChangedEvent carries only the entries whose mark was written.
type MarksChangedEvent struct {
	Event   Event               `json:"event"`
	Changed []model.MarkedEntry `json:"changed"`
	Summary model.Summary       `json:"summary"`
}

// ReportEvent is pushed to clients watching the live report.
type ReportEvent struct {
	Event   Event  `json:"event"`
	Text    string `json:"text"`
	Records int    `json:"records"`
}

// ReportCopiedEvent acknowledges a successful clipboard copy.
type ReportCopiedEvent struct {
	Event   Event `json:"event"`
	Records int   `json:"records"`
}

// ClipboardEvent relays text copied by any session sharing the clipboard.
type ClipboardEvent struct {
	Event Event  `json:"event"`
	Text  string `json:"text"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
