package models

import "time"

// Occurrence is one reported traffic incident as returned by the upstream
// API. Pointer fields are nullable on the wire; reliability and confidence
// are always present even when outside their nominal 0-10 / 0-5 ranges.
type Occurrence struct {
	OccID        *int64   `json:"occId"`
	LocationID   *int64   `json:"locationId"`
	Country      string   `json:"country"`
	City         *string  `json:"city"`
	ReportRating float64  `json:"reportRating"`
	Reliability  float64  `json:"reliability"`
	Type         string   `json:"type"`
	UUID         string   `json:"uuid"`
	Subtype      string   `json:"subtype"`
	Street       *string  `json:"street"`
	ID           string   `json:"id"`
	NComments    *int     `json:"nComments"`
	NThumbsUp    *int     `json:"nThumbsUp"`
	ReportBy     *string  `json:"reportBy"`
	Confidence   float64  `json:"confidence"`
	WazeData     string   `json:"wazeData"`
	LocLatitude  *float64 `json:"locLatitude"`
	LocLongitude *float64 `json:"locLongitude"`
	PubMillis    int64    `json:"pubMillis"`
	TimeStamp    int64    `json:"timeStamp,omitempty"`
}

// ThumbsUp returns the like count, treating absent as 0.
func (o *Occurrence) ThumbsUp() int {
	if o.NThumbsUp == nil {
		return 0
	}
	return *o.NThumbsUp
}

// Comments returns the comment count, treating absent as 0.
func (o *Occurrence) Comments() int {
	if o.NComments == nil {
		return 0
	}
	return *o.NComments
}

// Mapped reports whether the occurrence carries both coordinates and can
// participate in spatial views.
func (o *Occurrence) Mapped() bool {
	return o.LocLatitude != nil && o.LocLongitude != nil
}

// EventTimeMillis returns the canonical event time in epoch milliseconds:
// timeStamp when set, otherwise pubMillis. Zero means no event time.
func (o *Occurrence) EventTimeMillis() int64 {
	if o.TimeStamp != 0 {
		return o.TimeStamp
	}
	return o.PubMillis
}

// EventTime resolves the event time in loc (nil means UTC). ok is false when
// the record has no event time.
func (o *Occurrence) EventTime(loc *time.Location) (time.Time, bool) {
	ms := o.EventTimeMillis()
	if ms == 0 {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	return time.UnixMilli(ms).In(loc), true
}

// Location is a rectangular geofenced region used to group occurrences.
// bottom <= top and left <= right are assumed, not validated here.
type Location struct {
	LocationID int64   `json:"locationId"`
	UserID     int64   `json:"userId"`
	UUID       string  `json:"uuid"`
	Name       string  `json:"name"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Bottom     float64 `json:"bottom"`
	Left       float64 `json:"left"`
	Right      float64 `json:"right"`
	Top        float64 `json:"top"`
	IsMuted    bool    `json:"isMuted"`
	TimeStamp  string  `json:"timeStamp"`
}
