package model

type JourneyType string

const (
	JourneyTypeDirect    JourneyType = "Direct"
	JourneyTypeOneChange             = "One-Change"
)

// ClassificationStrategy selects how rail legs are counted into a
// JourneyType. Leg-precise planners use LegCount; the Darwin implicit
// schedule under-splits legs and uses DestinationEquality instead.
type ClassificationStrategy string

const (
	ClassificationLegCount            ClassificationStrategy = "LegCount"
	ClassificationDestinationEquality                        = "DestinationEquality"
)

type LegKind string

const (
	LegKindTravel   LegKind = "travel"
	LegKindTransfer         = "transfer"
)

// Journey is one published record of the output document. IDs are dense and
// 1-based within a single run.
type Journey struct {
	ID   int         `json:"id" groups:"basic"`
	Type JourneyType `json:"type" groups:"basic"`

	ScheduledDeparture string `json:"scheduled_departure" groups:"basic"`
	ScheduledArrival   string `json:"scheduled_arrival" groups:"basic"`
	Duration           string `json:"duration" groups:"basic"`

	Status Status `json:"status" groups:"basic"`

	GeneratedAt string `json:"generated_at" groups:"basic"`

	Legs []JourneyLeg `json:"legs" groups:"basic"`
}

// JourneyLeg is either a travel leg or a transfer marker. A journey's leg
// sequence always starts and ends with a travel leg; a transfer marker only
// ever appears between two travel legs.
type JourneyLeg struct {
	Kind LegKind `json:"kind" groups:"basic"`

	Origin             string `json:"origin,omitempty" groups:"basic"`
	Destination        string `json:"destination,omitempty" groups:"basic"`
	ScheduledDeparture string `json:"scheduled_departure,omitempty" groups:"basic"`
	ScheduledArrival   string `json:"scheduled_arrival,omitempty" groups:"basic"`
	LiveDeparture      string `json:"live_departure,omitempty" groups:"basic"`
	Platform           string `json:"platform,omitempty" groups:"basic"`
	Operator           string `json:"operator,omitempty" groups:"basic"`
	Status             Status `json:"status,omitempty" groups:"basic"`

	Location        string `json:"location,omitempty" groups:"basic"`
	DurationMinutes int    `json:"duration_minutes,omitempty" groups:"basic"`
}

// Document is the full output artifact, rewritten from scratch on every run.
type Document struct {
	QueryTime string    `json:"query_time" groups:"basic"`
	Journeys  []Journey `json:"journeys" groups:"basic"`
}
