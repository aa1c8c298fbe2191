package models

const (
	StationSafe    = "safe"
	StationCaution = "caution"
	StationUnsafe  = "unsafe"
)

// Station is an entry of the static safety index.
type Station struct {
	Name   string `json:"name"`
	Crowd  int    `json:"crowd"`  // percent of capacity
	Safety int    `json:"safety"` // 0..100
	Status string `json:"status"`
}

// StationReading is one hourly row of the station analysis dataset.
// JSON keys follow the dataset columns the analytics page reads.
type StationReading struct {
	Station      string `json:"-"`
	Time         string `json:"time"`
	Hour         int    `json:"hour"`
	CrowdLevel   string `json:"Crowd_Level"`   // Low | Medium | High
	SafetyRating int    `json:"Safety_Rating"` // 1..5
}
