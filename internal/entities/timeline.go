package entities

import "time"

// TimelineEntry is one record of the append-only status log kept on an
// aggregate. Entries are never updated or removed once written.
type TimelineEntry struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`
}

func NewTimelineEntry(status string, at time.Time, note string) TimelineEntry {
	return TimelineEntry{
		Status:    status,
		Timestamp: at,
		Note:      note,
	}
}

// GeoPoint is a latitude/longitude pair passed through verbatim;
// no geocoding happens anywhere in the system.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
