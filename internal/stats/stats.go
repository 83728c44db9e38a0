// Package stats derives the dashboard's chart statistics from an occurrence
// snapshot. Every function is a pure transform: no I/O, no shared state, and
// an empty input always produces a defined zero result rather than an error.
package stats

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/prontabot/occ-dashboard/internal/models"
)

// DefaultTopN is the ranking size used when a caller does not ask for one.
const DefaultTopN = 10

// FilterByLocation retains occurrences whose locationId matches id. An empty
// id is the identity transform. The match is on the decimal string form of
// the numeric id, so a filter key arriving as a string never silently
// mismatches the numeric field.
func FilterByLocation(occs []models.Occurrence, id string) []models.Occurrence {
	if id == "" {
		return occs
	}
	out := make([]models.Occurrence, 0, len(occs))
	for _, o := range occs {
		if o.LocationID != nil && strconv.FormatInt(*o.LocationID, 10) == id {
			out = append(out, o)
		}
	}
	return out
}

// LikedOccurrence is one row of the top-liked ranking.
type LikedOccurrence struct {
	Name      string `json:"name"`
	ThumbsUp  int    `json:"thumbsUp"`
	Street    string `json:"street"`
	FullLabel string `json:"fullLabel"`
}

// TopLiked ranks occurrences by like count, descending, ties keeping their
// original order, truncated to n (n <= 0 means DefaultTopN). The short label
// is the city, the full label the street, each with a placeholder fallback.
func TopLiked(occs []models.Occurrence, n int) []LikedOccurrence {
	if n <= 0 {
		n = DefaultTopN
	}
	ranked := make([]models.Occurrence, len(occs))
	copy(ranked, occs)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ThumbsUp() > ranked[j].ThumbsUp()
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}

	out := make([]LikedOccurrence, 0, len(ranked))
	for _, o := range ranked {
		name := "N/A"
		if o.City != nil && *o.City != "" {
			name = *o.City
		}
		street := "Rua não informada"
		if o.Street != nil && *o.Street != "" {
			street = *o.Street
		}
		out = append(out, LikedOccurrence{
			Name:      name,
			ThumbsUp:  o.ThumbsUp(),
			Street:    street,
			FullLabel: street,
		})
	}
	return out
}

// Summary holds the headline KPI numbers.
type Summary struct {
	TotalOccurrences int     `json:"totalOccurrences"`
	AvgReliability   float64 `json:"avgReliability"`
	TotalThumbsUp    int     `json:"totalThumbsUp"`
	AvgConfidence    float64 `json:"avgConfidence"`
}

// Summarize computes the KPI summary over occs. The empty set yields all
// zeros; the divisions are guarded so the averages never come out NaN.
func Summarize(occs []models.Occurrence) Summary {
	s := Summary{TotalOccurrences: len(occs)}
	if len(occs) == 0 {
		return s
	}
	var reliability, confidence float64
	for _, o := range occs {
		reliability += o.Reliability
		confidence += o.Confidence
		s.TotalThumbsUp += o.ThumbsUp()
	}
	s.AvgReliability = reliability / float64(len(occs))
	s.AvgConfidence = confidence / float64(len(occs))
	return s
}

// LocationOption is one entry of the location filter dropdown.
type LocationOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// LocationOptions lists the distinct location ids present in occs, each
// labelled "<id> - <name>" using the location list for names. Ordered by id.
func LocationOptions(occs []models.Occurrence, locations []models.Location) []LocationOption {
	names := make(map[int64]string, len(locations))
	for _, l := range locations {
		names[l.LocationID] = l.Name
	}

	seen := make(map[int64]bool)
	ids := make([]int64, 0)
	for _, o := range occs {
		if o.LocationID == nil || seen[*o.LocationID] {
			continue
		}
		seen[*o.LocationID] = true
		ids = append(ids, *o.LocationID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]LocationOption, 0, len(ids))
	for _, id := range ids {
		name := names[id]
		if name == "" {
			name = fmt.Sprintf("Localização %d", id)
		}
		out = append(out, LocationOption{
			Value: strconv.FormatInt(id, 10),
			Label: fmt.Sprintf("%d - %s", id, name),
		})
	}
	return out
}
