// Package selector classifies candidate routes and applies the day of week
// selection policy for the commuter route.
package selector

import (
	"time"

	"github.com/railwatch/railwatch/pkg/model"
	"github.com/railwatch/railwatch/pkg/util"
)

// Policy is the per run selection rule set. Weekends want the single first
// direct train, weekdays want the first two one change journeys.
type Policy struct {
	IsWeekend  bool
	CutoffTime string
	WantedType model.JourneyType
	CapCount   int
}

func PolicyForDay(now time.Time) Policy {
	switch now.Weekday() {
	case time.Saturday, time.Sunday:
		return Policy{
			IsWeekend:  true,
			CutoffTime: "07:20",
			WantedType: model.JourneyTypeDirect,
			CapCount:   1,
		}
	}

	return Policy{
		CutoffTime: "07:25",
		WantedType: model.JourneyTypeOneChange,
		CapCount:   2,
	}
}

// Classify determines the journey type from the rail leg composition.
// Exactly one rail leg is Direct; exactly two rail legs separated by a
// single transfer leg is One-Change; anything else is not a usable
// candidate. Under the destination equality strategy a two rail leg route
// whose first rail leg already reaches the overall destination counts as
// Direct, covering feeds that under-split through services.
func Classify(route model.Route, strategy model.ClassificationStrategy, destination string) (model.JourneyType, bool) {
	var railIndexes []int
	for index, leg := range route.Legs {
		if leg.Mode == model.TransportModeRail {
			railIndexes = append(railIndexes, index)
		}
	}

	switch len(railIndexes) {
	case 1:
		return model.JourneyTypeDirect, true
	case 2:
		if strategy == model.ClassificationDestinationEquality && route.Legs[railIndexes[0]].Destination == destination {
			return model.JourneyTypeDirect, true
		}

		if railIndexes[1]-railIndexes[0] == 2 {
			return model.JourneyTypeOneChange, true
		}
	}

	return "", false
}

type Selected struct {
	Route model.Route
	Type  model.JourneyType
}

// Select walks the routes in source order, keeping the first CapCount
// candidates of the wanted type departing at or after the cutoff. No
// re-sorting happens; the schedule source's ordering decides ties.
func Select(routes []model.Route, policy Policy, strategy model.ClassificationStrategy, destination string) []Selected {
	cutoffSeconds := util.ParseClockTime(policy.CutoffTime)

	var selected []Selected

	for _, route := range routes {
		if len(selected) >= policy.CapCount {
			break
		}

		journeyType, usable := Classify(route, strategy, destination)
		if !usable || journeyType != policy.WantedType {
			continue
		}

		if util.ParseClockTime(route.DepartureTime) < cutoffSeconds {
			continue
		}

		selected = append(selected, Selected{
			Route: route,
			Type:  journeyType,
		})
	}

	return selected
}
