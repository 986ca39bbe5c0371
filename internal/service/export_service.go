package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/stemsi/rollcall/internal/model"
	"github.com/stemsi/rollcall/internal/repository"
	"github.com/xuri/excelize/v2"
)

// ErrEmptyExport is returned when the projection has no records.
// No artifact is produced in that case.
var ErrEmptyExport = errors.New("nothing to export")

const (
	sheetName       = "Attendance"
	reportRule      = "=================================================="
	reportTimestamp = "2006-01-02 15:04:05"
)

// Artifact is a generated export file.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
	Records     int
}

// ExportService derives projections of the roster and serializes them.
type ExportService struct {
	store *repository.RosterStore
	title string
	now   func() time.Time
}

// NewExportService creates a new ExportService. title heads the text report.
func NewExportService(store *repository.RosterStore, title string) *ExportService {
	return &ExportService{store: store, title: title, now: time.Now}
}

// Project returns the filtered, field-selected view of the roster.
// It never mutates the store.
func (s *ExportService) Project(cfg model.ProjectionConfig) []model.Record {
	return Project(s.store.Snapshot(), cfg)
}

// Project builds records from entries. Entries that are not Present are
// dropped entirely when cfg.PresentOnly is set.
func Project(entries []model.MarkedEntry, cfg model.ProjectionConfig) []model.Record {
	records := make([]model.Record, 0, len(entries))
	for _, e := range entries {
		if cfg.PresentOnly && e.Mark != model.Present {
			continue
		}

		rec := make(model.Record, 0, 4)
		if cfg.IncludeName {
			rec = append(rec, model.Field{Key: model.KeyName, Value: e.Entry.Name})
		}
		if cfg.IncludeRollNo {
			rec = append(rec, model.Field{Key: model.KeyRollNo, Value: e.Entry.RollNo})
		}
		if cfg.IncludeEnrollment {
			rec = append(rec, model.Field{Key: model.KeyEnrollment, Value: e.Entry.EnrollmentNo})
		}
		if cfg.IncludeStatus {
			rec = append(rec, model.Field{Key: model.KeyStatus, Value: e.Mark.Status()})
		}
		records = append(records, rec)
	}
	return records
}

// Spreadsheet exports the projection as a single-sheet xlsx workbook.
func (s *ExportService) Spreadsheet(cfg model.ProjectionConfig) (*Artifact, error) {
	records := s.Project(cfg)
	if len(records) == 0 {
		return nil, ErrEmptyExport
	}

	data, err := WriteWorkbook(records)
	if err != nil {
		return nil, err
	}

	return &Artifact{
		Filename:    exportFilename(s.now(), "xlsx"),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        data,
		Records:     len(records),
	}, nil
}

// Text exports the projection as a plain-text report.
func (s *ExportService) Text(cfg model.ProjectionConfig) (*Artifact, error) {
	records := s.Project(cfg)
	if len(records) == 0 {
		return nil, ErrEmptyExport
	}

	return &Artifact{
		Filename:    exportFilename(s.now(), "txt"),
		ContentType: "text/plain; charset=utf-8",
		Data:        []byte(RenderReport(s.title, records, s.now())),
		Records:     len(records),
	}, nil
}

// WriteWorkbook renders records into xlsx bytes. Columns are the keys of the
// first record; every record of one projection shares them.
func WriteWorkbook(records []model.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	keys := records[0].Keys()
	if len(keys) > 0 {
		header := make([]interface{}, len(keys))
		for i, k := range keys {
			header[i] = k
		}
		if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}

		for i, rec := range records {
			row := make([]interface{}, len(keys))
			for j, k := range keys {
				v, _ := rec.Get(k)
				row[j] = v
			}
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
				return nil, fmt.Errorf("write row %d: %w", i+1, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderReport formats records as the numbered text report.
func RenderReport(title string, records []model.Record, generated time.Time) string {
	var b strings.Builder
	b.WriteString(title + "\n")
	b.WriteString(reportRule + "\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", generated.Format(reportTimestamp))

	for i, rec := range records {
		fmt.Fprintf(&b, "%d.", i+1)
		for j, f := range rec {
			if j == 0 {
				b.WriteByte(' ')
			} else {
				b.WriteString(" | ")
			}
			fmt.Fprintf(&b, "%s: %s", f.Key, f.Value)
		}
		b.WriteByte('\n')
	}

	b.WriteString("\n" + reportRule + "\n")
	fmt.Fprintf(&b, "Total Records: %d", len(records))
	return b.String()
}

// exportFilename names downloads by the UTC date of generation.
func exportFilename(t time.Time, ext string) string {
	return fmt.Sprintf("attendance_%s.%s", t.UTC().Format("2006-01-02"), ext)
}
