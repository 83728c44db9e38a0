package stats

import (
	"sort"
	"time"

	"github.com/prontabot/occ-dashboard/internal/models"
)

// HourCount is one hour bucket of the by-hour distribution.
type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// WeekdayCount is one day bucket of the by-weekday distribution.
type WeekdayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// DailyStat is one calendar day of the time-series rollup.
type DailyStat struct {
	Date           string  `json:"date"`
	Count          int     `json:"count"`
	AvgReliability float64 `json:"avgReliability"`
	TotalThumbsUp  int     `json:"totalThumbsUp"`
}

var weekdays = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// ByHourOfDay counts occurrences per hour of day in loc (nil means UTC).
// Always 24 entries so the chart axis stays aligned; records without an
// event time are excluded.
func ByHourOfDay(occs []models.Occurrence, loc *time.Location) []HourCount {
	out := make([]HourCount, 24)
	for i := range out {
		out[i].Hour = i
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, o := range occs {
		t, ok := o.EventTime(loc)
		if !ok {
			continue
		}
		out[t.Hour()].Count++
	}
	return out
}

// ByDayOfWeek counts occurrences per weekday in loc (nil means UTC),
// Sunday through Saturday. Always 7 entries.
func ByDayOfWeek(occs []models.Occurrence, loc *time.Location) []WeekdayCount {
	out := make([]WeekdayCount, 7)
	for i := range out {
		out[i].Day = weekdays[i]
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, o := range occs {
		t, ok := o.EventTime(loc)
		if !ok {
			continue
		}
		out[int(t.Weekday())].Count++
	}
	return out
}

// DailyRollup groups occurrences by calendar date in loc (nil means UTC),
// ascending, with the per-day count, mean reliability and total likes.
// Records without an event time are excluded entirely.
func DailyRollup(occs []models.Occurrence, loc *time.Location) []DailyStat {
	type acc struct {
		count       int
		reliability float64
		thumbsUp    int
	}
	if loc == nil {
		loc = time.UTC
	}
	days := make(map[string]*acc)
	for _, o := range occs {
		t, ok := o.EventTime(loc)
		if !ok {
			continue
		}
		date := t.Format("2006-01-02")
		a := days[date]
		if a == nil {
			a = &acc{}
			days[date] = a
		}
		a.count++
		a.reliability += o.Reliability
		a.thumbsUp += o.ThumbsUp()
	}

	out := make([]DailyStat, 0, len(days))
	for date, a := range days {
		out = append(out, DailyStat{
			Date:           date,
			Count:          a.count,
			AvgReliability: a.reliability / float64(a.count),
			TotalThumbsUp:  a.thumbsUp,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
