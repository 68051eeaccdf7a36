package model

// Facility is a nearby care facility returned by the facility finder.
// Lookup happens outside the triage core, after a recommendation exists.
type Facility struct {
	Name          string  `json:"name" bson:"name"`
	Address       string  `json:"address" bson:"address"`
	Zip           string  `json:"zip" bson:"zip"`
	Type          string  `json:"type" bson:"type"` // emergency | urgent_care | primary_care
	DistanceMiles float64 `json:"distanceMiles" bson:"distance_miles"`
}
