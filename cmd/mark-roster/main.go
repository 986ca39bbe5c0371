package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stemsi/rollcall/internal/config"
	"github.com/stemsi/rollcall/internal/logger"
	"github.com/stemsi/rollcall/internal/model"
	"github.com/stemsi/rollcall/internal/repository"
	"github.com/stemsi/rollcall/internal/service"
	"golang.org/x/term"
)

func main() {
	cfg := config.Load()

	var (
		rosterPath  string
		outDir      string
		fields      string
		formats     string
		presentOnly bool
	)
	flag.StringVar(&rosterPath, "roster", cfg.RosterPath, "Path to the roster JSON file")
	flag.StringVar(&outDir, "out", ".", "Directory for exported files")
	flag.StringVar(&fields, "fields", "name,roll,enrollment,status", "Fields to export")
	flag.StringVar(&formats, "format", "xlsx,txt", "Export formats (xlsx, txt)")
	flag.BoolVar(&presentOnly, "present-only", false, "Export present entries only")
	flag.Parse()

	// Logs go to stderr so the report on stdout stays clean.
	log := logger.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	projection, err := parseFields(fields)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}
	projection.PresentOnly = presentOnly

	// ─── Load Roster ───────────────────────────────────────────────────
	store := repository.NewRosterStore()
	rosterService := service.NewRosterService(store, nil, rosterPath, log)
	attendanceService := service.NewAttendanceService(store, nil, log)
	exportService := service.NewExportService(store, cfg.ReportTitle)
	reportService := service.NewReportService(exportService, nil, nil, log)

	if _, err := rosterService.LoadFile(rosterPath); err != nil {
		fmt.Fprintln(os.Stderr, "Error parsing JSON file. Please check the format.")
		log.Debug().Err(err).Msg("Roster load failed")
		os.Exit(1)
	}

	// ─── Mark ──────────────────────────────────────────────────────────
	stdinFd := int(os.Stdin.Fd())
	if term.IsTerminal(stdinFd) {
		width := 50
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			width = w
		}
		promptMarks(bufio.NewReader(os.Stdin), os.Stdout, attendanceService, store.Snapshot(), width)
	} else {
		log.Info().Msg("stdin is not a terminal, exporting without prompting")
	}

	// ─── Report ────────────────────────────────────────────────────────
	sum := attendanceService.Summary()
	fmt.Printf("\nTotal: %d  Present: %d  Absent: %d  Unmarked: %d\n\n", sum.Total, sum.Present, sum.Absent, sum.Unmarked)
	text, _ := reportService.Render(projection)
	fmt.Println(text)

	// ─── Export ────────────────────────────────────────────────────────
	if err := writeExports(exportService, projection, formats, outDir, log); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// promptMarks asks for a mark per entry. Uppercase P, A or C applies to
// everyone and ends the prompts.
func promptMarks(in *bufio.Reader, out io.Writer, svc *service.AttendanceService, entries []model.MarkedEntry, width int) {
	fmt.Fprintln(out, strings.Repeat("─", min(width, 80)))
	fmt.Fprintln(out, "p = present, a = absent, t = toggle, enter = skip")
	fmt.Fprintln(out, "P / A / C = mark all present / absent / clear all and finish")
	fmt.Fprintln(out, strings.Repeat("─", min(width, 80)))

	for _, e := range entries {
		fmt.Fprintf(out, "[%d/%d] %s (Roll: %s, Enrollment: %s): ",
			e.Index+1, len(entries), e.Entry.Name, e.Entry.RollNo, e.Entry.EnrollmentNo)

		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(out)
			return
		}

		switch strings.TrimSpace(line) {
		case "p":
			svc.SetMark(e.Index, model.Present)
		case "a":
			svc.SetMark(e.Index, model.Absent)
		case "t":
			if updated, _, err := svc.Toggle(e.Index); err == nil {
				fmt.Fprintf(out, "  → %s\n", updated.Mark.Status())
			}
		case "P":
			svc.SetAll(model.Present)
			return
		case "A":
			svc.SetAll(model.Absent)
			return
		case "C":
			svc.SetAll(model.Unmarked)
			return
		}
	}
}

func writeExports(svc *service.ExportService, cfg model.ProjectionConfig, formats, outDir string, log zerolog.Logger) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	for _, format := range strings.Split(formats, ",") {
		var (
			artifact *service.Artifact
			err      error
		)
		switch strings.TrimSpace(format) {
		case "xlsx":
			artifact, err = svc.Spreadsheet(cfg)
		case "txt":
			artifact, err = svc.Text(cfg)
		case "":
			continue
		default:
			return fmt.Errorf("unknown format %q", format)
		}

		if errors.Is(err, service.ErrEmptyExport) {
			fmt.Fprintln(os.Stderr, "No data to export. Please check your filter options.")
			return nil
		}
		if err != nil {
			return err
		}

		path := filepath.Join(outDir, artifact.Filename)
		if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		log.Info().Str("file", path).Int("records", artifact.Records).Msg("Exported")
	}
	return nil
}

// parseFields turns "name,roll,enrollment,status" into include flags.
func parseFields(s string) (model.ProjectionConfig, error) {
	var cfg model.ProjectionConfig
	for _, f := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(f)) {
		case "name":
			cfg.IncludeName = true
		case "roll", "rollno":
			cfg.IncludeRollNo = true
		case "enrollment", "enrollmentno":
			cfg.IncludeEnrollment = true
		case "status":
			cfg.IncludeStatus = true
		case "":
		default:
			return cfg, fmt.Errorf("unknown field %q", f)
		}
	}
	return cfg, nil
}
