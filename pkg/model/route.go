package model

type TransportMode string

const (
	TransportModeRail TransportMode = "rail"
	TransportModeWalk               = "walk"
	TransportModeOther              = "other"
)

// Route is one candidate journey as returned by a schedule source.
// Times are HH:MM wall-clock strings, durations are HH:MM:SS.
type Route struct {
	DepartureTime string
	ArrivalTime   string
	Duration      string

	Legs []Leg
}

type Leg struct {
	Mode TransportMode

	Origin      string
	Destination string

	DepartureTime string
	ArrivalTime   string

	Operator string
}
