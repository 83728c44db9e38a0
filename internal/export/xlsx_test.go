package export

import (
	"testing"
	"time"

	"github.com/prontabot/occ-dashboard/internal/models"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestWorkbook_Sheets(t *testing.T) {
	occs := []models.Occurrence{
		{
			City:        strPtr("Santos"),
			Reliability: 6,
			Confidence:  2,
			NThumbsUp:   intPtr(3),
			PubMillis:   time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC).UnixMilli(),
		},
	}

	f, err := Workbook(occs, time.UTC)
	if err != nil {
		t.Fatalf("workbook: %v", err)
	}
	defer f.Close()

	want := []string{"Summary", "Top liked", "Reliability", "Confidence", "By hour", "By weekday", "Daily"}
	sheets := f.GetSheetList()
	if len(sheets) != len(want) {
		t.Fatalf("expected %d sheets, got %v", len(want), sheets)
	}
	for i, name := range want {
		if sheets[i] != name {
			t.Errorf("sheet %d: expected %q, got %q", i, name, sheets[i])
		}
	}
}

func TestWorkbook_SummaryValues(t *testing.T) {
	occs := []models.Occurrence{
		{Reliability: 6, Confidence: 2, NThumbsUp: intPtr(4)},
		{Reliability: 8, Confidence: 4},
	}

	f, err := Workbook(occs, time.UTC)
	if err != nil {
		t.Fatalf("workbook: %v", err)
	}
	defer f.Close()

	total, err := f.GetCellValue("Summary", "B2")
	if err != nil {
		t.Fatalf("reading B2: %v", err)
	}
	if total != "2" {
		t.Errorf("expected total 2, got %q", total)
	}
	avg, err := f.GetCellValue("Summary", "B3")
	if err != nil {
		t.Fatalf("reading B3: %v", err)
	}
	if avg != "7" {
		t.Errorf("expected average reliability 7, got %q", avg)
	}
}

func TestWorkbook_EmptyInput(t *testing.T) {
	f, err := Workbook(nil, nil)
	if err != nil {
		t.Fatalf("workbook over empty input: %v", err)
	}
	defer f.Close()

	if got := len(f.GetSheetList()); got != 7 {
		t.Errorf("expected 7 sheets even when empty, got %d", got)
	}
}
