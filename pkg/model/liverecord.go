package model

type Status string

const (
	StatusOnTime    Status = "On Time"
	StatusDelayed          = "Delayed"
	StatusCancelled        = "Cancelled"
	StatusScheduled        = "Scheduled"
)

const (
	PlatformToBeConfirmed = "TBC"
	TimeNotApplicable     = "N/A"
)

// LiveRecord is one service on a station's live departure board. Records
// have no persistent identity and are re-fetched on every run.
type LiveRecord struct {
	ServiceID string

	AimedDeparture string
	// ExpectedDeparture is empty when the feed carries no live signal for
	// the service.
	ExpectedDeparture string

	Platform  string
	Cancelled bool
	// Delayed marks a feed that knows the service is late without giving an
	// estimate; ExpectedDeparture stays empty in that case.
	Delayed bool

	DestinationName string
	// TerminalArrival is the live arrival time at the queried filter
	// destination, when the feed exposes calling points.
	TerminalArrival string
}

// LiveStatus is the result of reconciling one scheduled leg against a
// live departure board.
type LiveStatus struct {
	Status   Status
	LiveTime string
	Platform string
}
