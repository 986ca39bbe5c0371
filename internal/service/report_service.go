package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/rollcall/internal/model"
)

// EmptyReportText is shown instead of a report when nothing matches the filters.
const EmptyReportText = "No records to display."

// ErrClipboardDisabled is returned by Paste when no clipboard is configured.
var ErrClipboardDisabled = errors.New("clipboard disabled")

const clipboardTimeout = 2 * time.Second

// Clipboard stores the last copied report text.
type Clipboard interface {
	Write(ctx context.Context, text string) error
	Read(ctx context.Context) (string, error)
}

// ReportView is the on-screen report plus the clipboard outcome.
type ReportView struct {
	Text    string `json:"text"`
	Records int    `json:"records"`
	Copied  bool   `json:"copied"`
}

// ReportService renders the text report for on-screen viewing and copies it.
type ReportService struct {
	export    *ExportService
	clipboard Clipboard
	notifier  ChangeNotifier
	log       zerolog.Logger
}

// NewReportService creates a new ReportService.
func NewReportService(export *ExportService, clipboard Clipboard, notifier ChangeNotifier, log zerolog.Logger) *ReportService {
	return &ReportService{
		export:    export,
		clipboard: clipboard,
		notifier:  orNop(notifier),
		log:       log.With().Str("component", "report_service").Logger(),
	}
}

// Render returns the report text for cfg, or EmptyReportText when the
// projection is empty.
func (s *ReportService) Render(cfg model.ProjectionConfig) (string, int) {
	records := s.export.Project(cfg)
	if len(records) == 0 {
		return EmptyReportText, 0
	}
	return RenderReport(s.export.title, records, s.export.now()), len(records)
}

// ViewAndCopy renders the report and tries to copy the same text to the
// clipboard. Copy failures are only logged.
func (s *ReportService) ViewAndCopy(ctx context.Context, cfg model.ProjectionConfig) ReportView {
	text, n := s.Render(cfg)
	view := ReportView{Text: text, Records: n}
	if n == 0 || s.clipboard == nil {
		return view
	}

	copyCtx, cancel := context.WithTimeout(ctx, clipboardTimeout)
	defer cancel()

	if err := s.clipboard.Write(copyCtx, text); err != nil {
		s.log.Warn().Err(err).Msg("Copy to clipboard failed")
		return view
	}

	view.Copied = true
	s.notifier.ReportCopied(n)
	return view
}

// Paste returns the last report copied to the clipboard.
func (s *ReportService) Paste(ctx context.Context) (string, error) {
	if s.clipboard == nil {
		return "", ErrClipboardDisabled
	}
	return s.clipboard.Read(ctx)
}
