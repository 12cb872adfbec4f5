package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"SajuPulse/internal/domain/models"
	"SajuPulse/internal/usecase"
	xhttp "SajuPulse/pkg/http"
)

var scanFlags struct {
	request string
	format  string
	event   string
	months  int
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Classify a horizon of months for one event type",
	Long:  "Scan reads a scan request (YAML, or JSON for .json files) and prints the\nclassified report. --event and --months override the request file.",
	RunE:  runScan,
}

func init() {
	f := scanCmd.Flags()
	f.StringVarP(&scanFlags.request, "request", "f", "", "scan request file, - for stdin (required)")
	f.StringVarP(&scanFlags.format, "output", "o", "json", "output format: json or table")
	f.StringVar(&scanFlags.event, "event", "", "override the event type")
	f.IntVar(&scanFlags.months, "months", 0, "override the horizon length")

	_ = scanCmd.MarkFlagRequired("request")
}

func runScan(cmd *cobra.Command, _ []string) error {
	var req models.ScanRequest
	if err := readRequest(cmd, scanFlags.request, &req); err != nil {
		return err
	}
	if scanFlags.event != "" {
		req.EventType = scanFlags.event
	}
	if scanFlags.months > 0 {
		req.Months = scanFlags.months
	}
	if err := xhttp.ValidateStruct(cmd.Context(), &req); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	params, err := usecase.ScanParamsFromRequest(req)
	if err != nil {
		return err
	}

	eng, err := newEngine(cmd)
	if err != nil {
		return err
	}
	report, err := eng.scanner.Scan(cmd.Context(), params)
	if err != nil {
		return err
	}

	switch scanFlags.format {
	case "json":
		return writeJSON(cmd, report)
	case "table":
		return writeScanTable(cmd, report)
	default:
		return fmt.Errorf("unknown output format %q", scanFlags.format)
	}
}

func writeScanTable(cmd *cobra.Command, report *models.ScanReport) error {
	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Month\tPillar\tSibsin\tStage\tScore\tGrade\tBucket\n")
	fmt.Fprintf(w, "-----\t------\t------\t-----\t-----\t-----\t------\n")
	for _, p := range report.Timeline {
		fmt.Fprintf(w, "%04d-%02d\t%s\t%s\t%s\t%.1f\t%s\t%s\n",
			p.Year, p.Month, p.MonthGanji, p.Sibsin, p.Stage, p.Result.Score, p.Grade, p.Bucket)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	st := report.Statistics
	fmt.Fprintf(out, "\nEvent:     %s\n", report.EventType)
	fmt.Fprintf(out, "Scanned:   %d/%d\n", report.Scanned, report.Months)
	fmt.Fprintf(out, "Optimal:   %d (avg %.1f)\n", st.OptimalCount, st.AverageOptimalScore)
	fmt.Fprintf(out, "Candidate: %d\n", st.CandidateCount)
	fmt.Fprintf(out, "Avoid:     %d\n", st.AvoidCount)
	if report.Partial {
		fmt.Fprintf(out, "Partial:   scan stopped before the end of the horizon\n")
	}
	return nil
}
