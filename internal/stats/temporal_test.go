package stats

import (
	"testing"
	"time"

	"github.com/prontabot/occ-dashboard/internal/models"
)

func occAt(t time.Time, reliability float64, thumbsUp int) models.Occurrence {
	return models.Occurrence{
		TimeStamp:   t.UnixMilli(),
		Reliability: reliability,
		NThumbsUp:   intPtr(thumbsUp),
	}
}

func TestByHourOfDay_FixedAxis(t *testing.T) {
	got := ByHourOfDay(nil, time.UTC)

	if len(got) != 24 {
		t.Fatalf("expected 24 entries, got %d", len(got))
	}
	for i, h := range got {
		if h.Hour != i || h.Count != 0 {
			t.Errorf("entry %d: expected {%d 0}, got %+v", i, i, h)
		}
	}
}

func TestByHourOfDay_Counts(t *testing.T) {
	occs := []models.Occurrence{
		occAt(time.Date(2024, 3, 5, 8, 15, 0, 0, time.UTC), 7, 0),
		occAt(time.Date(2024, 3, 6, 8, 45, 0, 0, time.UTC), 7, 0),
		occAt(time.Date(2024, 3, 7, 23, 59, 0, 0, time.UTC), 7, 0),
		{}, // no event time, excluded
	}

	got := ByHourOfDay(occs, time.UTC)

	if got[8].Count != 2 {
		t.Errorf("expected 2 at hour 8, got %d", got[8].Count)
	}
	if got[23].Count != 1 {
		t.Errorf("expected 1 at hour 23, got %d", got[23].Count)
	}
}

func TestByHourOfDay_TimezoneShiftsBucket(t *testing.T) {
	// 02:00 UTC is 23:00 of the previous day in São Paulo (UTC-3).
	saoPaulo := time.FixedZone("America/Sao_Paulo", -3*60*60)
	occs := []models.Occurrence{
		occAt(time.Date(2024, 3, 5, 2, 0, 0, 0, time.UTC), 7, 0),
	}

	if got := ByHourOfDay(occs, time.UTC); got[2].Count != 1 {
		t.Errorf("UTC: expected count at hour 2, got %v", got)
	}
	if got := ByHourOfDay(occs, saoPaulo); got[23].Count != 1 {
		t.Errorf("UTC-3: expected count at hour 23, got %v", got)
	}
}

func TestByDayOfWeek_FixedAxis(t *testing.T) {
	got := ByDayOfWeek(nil, nil)

	if len(got) != 7 {
		t.Fatalf("expected 7 entries, got %d", len(got))
	}
	if got[0].Day != "Sunday" || got[6].Day != "Saturday" {
		t.Errorf("expected canonical week Sunday..Saturday, got %s..%s", got[0].Day, got[6].Day)
	}
}

func TestByDayOfWeek_SumsToParsableRecords(t *testing.T) {
	occs := []models.Occurrence{
		occAt(time.Date(2024, 3, 3, 12, 0, 0, 0, time.UTC), 7, 0), // Sunday
		occAt(time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC), 7, 0), // Monday
		occAt(time.Date(2024, 3, 4, 18, 0, 0, 0, time.UTC), 7, 0), // Monday
		{}, // no event time
	}

	got := ByDayOfWeek(occs, time.UTC)

	if got[0].Count != 1 || got[1].Count != 2 {
		t.Errorf("expected Sunday=1 Monday=2, got %v", got)
	}
	sum := 0
	for _, d := range got {
		sum += d.Count
	}
	if sum != 3 {
		t.Errorf("expected sum 3 (records with event time), got %d", sum)
	}
}

func TestDailyRollup(t *testing.T) {
	occs := []models.Occurrence{
		occAt(time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC), 10, 2),
		occAt(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), 6, 1),
		occAt(time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC), 8, 3),
		{Reliability: 99}, // no event time, excluded entirely
	}

	got := DailyRollup(occs, time.UTC)

	if len(got) != 2 {
		t.Fatalf("expected 2 days, got %d", len(got))
	}
	d0, d1 := got[0], got[1]
	if d0.Date != "2024-01-01" || d1.Date != "2024-01-02" {
		t.Fatalf("expected ascending dates, got %s, %s", d0.Date, d1.Date)
	}
	if d0.Count != 2 || d0.AvgReliability != 7 || d0.TotalThumbsUp != 4 {
		t.Errorf("2024-01-01: expected {count:2 avg:7 thumbs:4}, got %+v", d0)
	}
	if d1.Count != 1 || d1.AvgReliability != 10 || d1.TotalThumbsUp != 2 {
		t.Errorf("2024-01-02: expected {count:1 avg:10 thumbs:2}, got %+v", d1)
	}
}

func TestDailyRollup_Empty(t *testing.T) {
	if got := DailyRollup(nil, nil); len(got) != 0 {
		t.Errorf("expected empty rollup, got %v", got)
	}
}

func TestDailyRollup_PubMillisFallback(t *testing.T) {
	occs := []models.Occurrence{
		{PubMillis: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC).UnixMilli(), Reliability: 5},
	}

	got := DailyRollup(occs, time.UTC)

	if len(got) != 1 || got[0].Date != "2024-05-01" {
		t.Errorf("expected pubMillis to supply the event time, got %v", got)
	}
}
