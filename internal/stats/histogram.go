package stats

import (
	"fmt"

	"github.com/prontabot/occ-dashboard/internal/models"
)

// Closure selects which end of a histogram bucket is closed.
type Closure int

const (
	// ClosureLower buckets are [lo, hi), except the last which is [lo, hi].
	ClosureLower Closure = iota
	// ClosureUpper buckets are (lo, hi], except the first which is [lo, hi].
	ClosureUpper
)

// HistogramBucket is one bucket of a fixed partition.
type HistogramBucket struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

var (
	reliabilityEdges = []float64{5, 6, 7, 8, 9, 10}
	confidenceEdges  = []float64{0, 1, 2, 3, 4, 5}
)

// Histogram counts values into the partition defined by edges (len(edges)-1
// buckets) under the given closure rule. Values outside every bucket are
// silently excluded. Edges must be ascending; that is a programmer error,
// not a data error, and panics.
func Histogram(values []float64, edges []float64, closure Closure) []HistogramBucket {
	if len(edges) < 2 {
		panic("stats: histogram needs at least two edges")
	}
	for i := 1; i < len(edges); i++ {
		if edges[i] <= edges[i-1] {
			panic("stats: histogram edges must be strictly ascending")
		}
	}

	buckets := make([]HistogramBucket, len(edges)-1)
	for i := range buckets {
		buckets[i].Range = fmt.Sprintf("%g-%g", edges[i], edges[i+1])
	}
	for _, v := range values {
		for i := range buckets {
			if inBucket(v, edges[i], edges[i+1], closure, i == 0, i == len(buckets)-1) {
				buckets[i].Count++
				break
			}
		}
	}
	return buckets
}

func inBucket(v, lo, hi float64, closure Closure, first, last bool) bool {
	switch closure {
	case ClosureUpper:
		if first {
			return v >= lo && v <= hi
		}
		return v > lo && v <= hi
	default:
		if last {
			return v >= lo && v <= hi
		}
		return v >= lo && v < hi
	}
}

// ReliabilityHistogram partitions the reliability scores over 5-6 .. 9-10,
// lower bound closed, the 9-10 bucket closed on both ends.
func ReliabilityHistogram(occs []models.Occurrence) []HistogramBucket {
	values := make([]float64, 0, len(occs))
	for _, o := range occs {
		values = append(values, o.Reliability)
	}
	return Histogram(values, reliabilityEdges, ClosureLower)
}

// ConfidenceHistogram partitions the confidence scores over 0-1 .. 4-5,
// upper bound closed, the 0-1 bucket closed on both ends.
func ConfidenceHistogram(occs []models.Occurrence) []HistogramBucket {
	values := make([]float64, 0, len(occs))
	for _, o := range occs {
		values = append(values, o.Confidence)
	}
	return Histogram(values, confidenceEdges, ClosureUpper)
}
