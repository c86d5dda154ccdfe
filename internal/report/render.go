// Cancellarius - Hotel Booking Analytics and Cancellation Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cancellarius

// Package report renders the run report as aligned text tables, a JSON
// document, or both.
//
// The text rendering is a digest for a terminal reader: run header, ingest
// counts, the headline findings of each analysis suite, and the model
// leaderboard. The JSON document is the complete report and is what
// downstream tooling should consume.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cancellarius/internal/config"
	"github.com/tomtom215/cancellarius/internal/logging"
	"github.com/tomtom215/cancellarius/internal/models"
)

// Renderer writes run reports in the configured formats.
type Renderer struct {
	cfg *config.ReportConfig

	// stdout is swappable for tests.
	stdout io.Writer
}

// NewRenderer creates a report renderer.
func NewRenderer(cfg *config.ReportConfig) *Renderer {
	return &Renderer{cfg: cfg, stdout: os.Stdout}
}

// Render writes the report in the configured format(s).
func (r *Renderer) Render(report *models.RunReport) error {
	if r.cfg.Format == "text" || r.cfg.Format == "both" {
		if err := WriteText(r.stdout, report); err != nil {
			return fmt.Errorf("render text report: %w", err)
		}
	}
	if r.cfg.Format == "json" || r.cfg.Format == "both" {
		if err := r.writeJSON(report); err != nil {
			return fmt.Errorf("render json report: %w", err)
		}
	}
	return nil
}

// writeJSON writes the indented JSON document to the configured path, or to
// stdout when no path is set.
func (r *Renderer) writeJSON(report *models.RunReport) error {
	if r.cfg.Output == "" {
		return WriteJSON(r.stdout, report)
	}

	f, err := os.Create(r.cfg.Output)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logging.Warn().Err(cerr).Str("path", r.cfg.Output).Msg("Failed to close report file")
		}
	}()

	if err := WriteJSON(f, report); err != nil {
		return err
	}
	logging.Info().Str("path", r.cfg.Output).Msg("JSON report written")
	return nil
}

// WriteJSON writes the full report as indented JSON.
func WriteJSON(w io.Writer, report *models.RunReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// WriteText writes the human-readable digest.
func WriteText(w io.Writer, report *models.RunReport) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	writeHeader(tw, report)
	if report.Ingest != nil {
		writeIngest(tw, report.Ingest)
	}
	if report.EDA != nil {
		writeEDA(tw, report.EDA)
	}
	if report.Training != nil {
		writeTraining(tw, report.Training)
	}

	return tw.Flush()
}

func section(tw *tabwriter.Writer, title string) {
	fmt.Fprintf(tw, "\n%s\n%s\n", title, strings.Repeat("-", len(title)))
}

func writeHeader(tw *tabwriter.Writer, report *models.RunReport) {
	section(tw, "Run")
	fmt.Fprintf(tw, "Run ID\t%s\n", report.RunID)
	fmt.Fprintf(tw, "Version\t%s\n", report.Version)
	fmt.Fprintf(tw, "Mode\t%s\n", report.Mode)
	fmt.Fprintf(tw, "Dataset\t%s\n", report.DataPath)
	fmt.Fprintf(tw, "Started\t%s\n", report.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(tw, "Duration\t%.2fs\n", report.DurationSeconds)
}

func writeIngest(tw *tabwriter.Writer, ingest *models.IngestSummary) {
	section(tw, "Ingest")
	fmt.Fprintf(tw, "Rows read\t%d\n", ingest.TotalRows)
	fmt.Fprintf(tw, "Rows stored\t%d\n", ingest.ValidRows)
	fmt.Fprintf(tw, "Rows dropped\t%d\n", ingest.DroppedRows)
	fmt.Fprintf(tw, "Duplicates\t%d\n", ingest.DuplicateRows)
}

func writeEDA(tw *tabwriter.Writer, eda *models.EDAReport) {
	if eda.Cancellation != nil {
		o := eda.Cancellation.Overview
		section(tw, "Cancellation")
		fmt.Fprintf(tw, "Bookings\t%d\n", o.TotalBookings)
		fmt.Fprintf(tw, "Canceled\t%d (%.1f%%)\n", o.Canceled, o.CancellationRate*100)

		if len(eda.Cancellation.BySegment) > 0 {
			fmt.Fprintf(tw, "Segment\tBookings\tCancellation\n")
			for _, s := range eda.Cancellation.BySegment {
				fmt.Fprintf(tw, "%s\t%d\t%.1f%%\n", s.Segment, s.Bookings, s.Rate*100)
			}
		}
	}

	if eda.Segments != nil && len(eda.Segments.TopSegments) > 0 {
		section(tw, "Segments")
		fmt.Fprintf(tw, "Top segments\t%s\n", strings.Join(eda.Segments.TopSegments, ", "))
	}

	if eda.Revenue != nil {
		section(tw, "Revenue")
		fmt.Fprintf(tw, "Realized\t%.2f\n", eda.Revenue.TotalRealized)
		fmt.Fprintf(tw, "Lost to cancellations\t%.2f\n", eda.Revenue.TotalLost)
	}

	if eda.Repeat != nil {
		section(tw, "Repeat Guests")
		fmt.Fprintf(tw, "Share\t%.1f%%\n", eda.Repeat.RepeatedShare*100)
		fmt.Fprintf(tw, "History correlation\t%.3f\n", eda.Repeat.HistoryCorrelation)
	}

	if eda.LeadTime != nil {
		section(tw, "Lead Time")
		fmt.Fprintf(tw, "P95\t%.0f days\n", eda.LeadTime.P95LeadTime)
		if len(eda.LeadTime.Bins) > 0 {
			fmt.Fprintf(tw, "Bin\tDays\tBookings\tCancellation\n")
			for _, b := range eda.LeadTime.Bins {
				fmt.Fprintf(tw, "%d\t%.0f-%.0f\t%d\t%.1f%%\n",
					b.Bin, b.LowDays, b.HighDays, b.Bookings, b.CancellationRate*100)
			}
		}
	}

	if eda.Profile != nil {
		section(tw, "Dataset Profile")
		fmt.Fprintf(tw, "Rows\t%d\n", eda.Profile.Rows)
		fmt.Fprintf(tw, "Canceled share\t%.1f%%\n", eda.Profile.Labels.PositiveShare*100)
		if len(eda.Profile.Correlations) > 0 {
			fmt.Fprintf(tw, "Feature\tLabel correlation\n")
			for _, c := range eda.Profile.Correlations {
				fmt.Fprintf(tw, "%s\t%+.3f\n", c.Column, c.Correlation)
			}
		}
	}

	if len(eda.Timings) > 0 {
		section(tw, "Suite Timings")
		for _, t := range eda.Timings {
			fmt.Fprintf(tw, "%s\t%.3fs\n", t.Suite, t.DurationSeconds)
		}
	}
}

func writeTraining(tw *tabwriter.Writer, training *models.TrainingReport) {
	section(tw, "Training")
	s := training.Split
	fmt.Fprintf(tw, "Split (train/val/test)\t%d / %d / %d\n",
		s.TrainRows, s.ValidationRows, s.TestRows)
	fmt.Fprintf(tw, "Positive share\t%.3f / %.3f / %.3f\n",
		s.TrainPositive, s.ValidationPositive, s.TestPositive)
	fmt.Fprintf(tw, "Sweep metric\t%s\n", training.SweepMetric)

	fmt.Fprintf(tw, "\nModel\tVariant\tThreshold\tVal F1\tTest F1\tTest Acc\tAUC\tFit\n")
	for _, r := range training.Results {
		if r.Error != "" {
			fmt.Fprintf(tw, "%s\t%s\tFAILED: %s\n", r.Model, r.Variant, r.Error)
			continue
		}
		testF1, testAcc := 0.0, 0.0
		if r.TestMetrics != nil {
			testF1 = r.TestMetrics.F1
			testAcc = r.TestMetrics.Accuracy
		}
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%.3f\t%.3f\t%.3f\t%.3f\t%.2fs\n",
			r.Model, r.Variant, r.BestThreshold, bestValidationF1(r),
			testF1, testAcc, r.AUC, r.FitSeconds)
	}

	if training.BestModel != "" {
		fmt.Fprintf(tw, "\nBest\t%s/%s at threshold %.2f\n",
			training.BestModel, training.BestVariant, training.BestThreshold)
	}
}

// bestValidationF1 returns the validation F1 at the chosen threshold.
func bestValidationF1(r models.ModelResult) float64 {
	for _, p := range r.Sweep {
		if p.Threshold == r.BestThreshold {
			return p.Metrics.F1
		}
	}
	return r.ValidationMetrics.F1
}
