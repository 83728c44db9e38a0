// Package export renders the derived statistics as an XLSX workbook, one
// sheet per chart.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/prontabot/occ-dashboard/internal/models"
	"github.com/prontabot/occ-dashboard/internal/stats"
)

// Workbook builds the statistics workbook for occs. loc fixes the timezone
// used by the temporal sheets (nil means UTC).
func Workbook(occs []models.Occurrence, loc *time.Location) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := summarySheet(f, occs); err != nil {
		return nil, err
	}
	if err := topLikedSheet(f, occs); err != nil {
		return nil, err
	}
	if err := histogramSheet(f, "Reliability", stats.ReliabilityHistogram(occs)); err != nil {
		return nil, err
	}
	if err := histogramSheet(f, "Confidence", stats.ConfidenceHistogram(occs)); err != nil {
		return nil, err
	}
	if err := hourlySheet(f, occs, loc); err != nil {
		return nil, err
	}
	if err := weekdaySheet(f, occs, loc); err != nil {
		return nil, err
	}
	if err := dailySheet(f, occs, loc); err != nil {
		return nil, err
	}

	return f, nil
}

func summarySheet(f *excelize.File, occs []models.Occurrence) error {
	const sheet = "Summary"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("renaming summary sheet: %w", err)
	}
	s := stats.Summarize(occs)
	rows := [][]any{
		{"Metric", "Value"},
		{"Total occurrences", s.TotalOccurrences},
		{"Average reliability", s.AvgReliability},
		{"Average confidence", s.AvgConfidence},
		{"Total thumbs up", s.TotalThumbsUp},
	}
	return writeRows(f, sheet, rows)
}

func topLikedSheet(f *excelize.File, occs []models.Occurrence) error {
	const sheet = "Top liked"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("creating sheet %s: %w", sheet, err)
	}
	rows := [][]any{{"City", "Street", "Thumbs up"}}
	for _, r := range stats.TopLiked(occs, stats.DefaultTopN) {
		rows = append(rows, []any{r.Name, r.Street, r.ThumbsUp})
	}
	return writeRows(f, sheet, rows)
}

func histogramSheet(f *excelize.File, sheet string, buckets []stats.HistogramBucket) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("creating sheet %s: %w", sheet, err)
	}
	rows := [][]any{{"Range", "Count"}}
	for _, b := range buckets {
		rows = append(rows, []any{b.Range, b.Count})
	}
	return writeRows(f, sheet, rows)
}

func hourlySheet(f *excelize.File, occs []models.Occurrence, loc *time.Location) error {
	const sheet = "By hour"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("creating sheet %s: %w", sheet, err)
	}
	rows := [][]any{{"Hour", "Count"}}
	for _, h := range stats.ByHourOfDay(occs, loc) {
		rows = append(rows, []any{h.Hour, h.Count})
	}
	return writeRows(f, sheet, rows)
}

func weekdaySheet(f *excelize.File, occs []models.Occurrence, loc *time.Location) error {
	const sheet = "By weekday"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("creating sheet %s: %w", sheet, err)
	}
	rows := [][]any{{"Day", "Count"}}
	for _, d := range stats.ByDayOfWeek(occs, loc) {
		rows = append(rows, []any{d.Day, d.Count})
	}
	return writeRows(f, sheet, rows)
}

func dailySheet(f *excelize.File, occs []models.Occurrence, loc *time.Location) error {
	const sheet = "Daily"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("creating sheet %s: %w", sheet, err)
	}
	rows := [][]any{{"Date", "Count", "Average reliability", "Total thumbs up"}}
	for _, d := range stats.DailyRollup(occs, loc) {
		rows = append(rows, []any{d.Date, d.Count, d.AvgReliability, d.TotalThumbsUp})
	}
	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return fmt.Errorf("cell name for %s row %d: %w", sheet, i+1, err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("writing %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}
