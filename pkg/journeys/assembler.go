package journeys

import (
	"time"

	"github.com/railwatch/railwatch/pkg/model"
	"github.com/railwatch/railwatch/pkg/reconcile"
	"github.com/railwatch/railwatch/pkg/selector"
	"github.com/railwatch/railwatch/pkg/util"
)

// Assemble builds the output document from the selected routes. The first
// rail leg of each journey is reconciled against the origin board; the
// second rail leg is only reconciled when an interchange board was actually
// queried, otherwise it keeps its scheduled values with a Scheduled status
// so the fidelity gap stays visible instead of masquerading as realtime.
func Assemble(engine *reconcile.Engine, selected []selector.Selected, originBoard []model.LiveRecord, interchangeBoard []model.LiveRecord, now time.Time) *model.Document {
	document := &model.Document{
		QueryTime: now.Format(time.RFC3339),
		Journeys:  []model.Journey{},
	}

	for index, item := range selected {
		route := item.Route

		var legs []model.JourneyLeg
		var terminalArrival string

		railIndex := 0
		firstRailIndex, lastRailIndex := railLegBounds(route)

		for legIndex, leg := range route.Legs {
			if leg.Mode != model.TransportModeRail {
				// Station approach walks outside the rail legs are not part
				// of the journey; only an interposed transfer is kept.
				if legIndex < firstRailIndex || legIndex > lastRailIndex {
					continue
				}

				legs = append(legs, transferLeg(leg))
				continue
			}

			var liveStatus model.LiveStatus
			var matched *model.LiveRecord

			switch {
			case railIndex == 0:
				liveStatus, matched = engine.MatchLiveData(leg.DepartureTime, originBoard)
			case len(interchangeBoard) > 0:
				liveStatus, matched = engine.MatchLiveData(leg.DepartureTime, interchangeBoard)
			default:
				liveStatus = model.LiveStatus{
					Status:   model.StatusScheduled,
					LiveTime: leg.DepartureTime,
					Platform: model.PlatformToBeConfirmed,
				}
			}

			// Only the final rail leg's record knows the live arrival at
			// the journey destination.
			if matched != nil && matched.TerminalArrival != "" && legIndex == lastRailIndex {
				terminalArrival = matched.TerminalArrival
			}

			legs = append(legs, model.JourneyLeg{
				Kind: model.LegKindTravel,

				Origin:             leg.Origin,
				Destination:        leg.Destination,
				ScheduledDeparture: leg.DepartureTime,
				ScheduledArrival:   leg.ArrivalTime,
				LiveDeparture:      liveStatus.LiveTime,
				Platform:           liveStatus.Platform,
				Operator:           leg.Operator,
				Status:             liveStatus.Status,
			})

			railIndex++
		}

		duration := route.Duration
		if terminalArrival != "" {
			duration = engine.RecomputeDuration(route.DepartureTime, terminalArrival, route.Duration)
		}

		document.Journeys = append(document.Journeys, model.Journey{
			ID:   index + 1,
			Type: item.Type,

			ScheduledDeparture: route.DepartureTime,
			ScheduledArrival:   route.ArrivalTime,
			Duration:           duration,

			Status: reconcile.JourneyStatus(legs),

			GeneratedAt: now.Format(time.RFC3339),

			Legs: legs,
		})
	}

	return document
}

func railLegBounds(route model.Route) (int, int) {
	first := len(route.Legs)
	last := -1
	for index, leg := range route.Legs {
		if leg.Mode == model.TransportModeRail {
			if index < first {
				first = index
			}
			last = index
		}
	}

	return first, last
}

func transferLeg(leg model.Leg) model.JourneyLeg {
	location := leg.Origin
	if location == "" {
		location = leg.Destination
	}

	transferMinutes := 0
	departureSeconds := util.ParseClockTime(leg.DepartureTime)
	arrivalSeconds := util.ParseClockTime(leg.ArrivalTime)
	if departureSeconds != util.InvalidClockTime && arrivalSeconds != util.InvalidClockTime {
		if arrivalSeconds < departureSeconds {
			arrivalSeconds += 24 * 3600
		}
		transferMinutes = (arrivalSeconds - departureSeconds) / 60
	}

	return model.JourneyLeg{
		Kind: model.LegKindTransfer,

		Location:        location,
		DurationMinutes: transferMinutes,
	}
}
