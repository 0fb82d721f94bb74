package darwinldb

import (
	"context"

	"github.com/railwatch/railwatch/pkg/model"
	"github.com/railwatch/railwatch/pkg/util"
	"github.com/rs/zerolog/log"
)

// PlanJourneys reinterprets the origin departure board as a schedule. A
// service calling at the destination becomes a single leg route; a service
// only reaching the interchange is paired with the first onward connection
// from the interchange board.
func (s *Source) PlanJourneys(ctx context.Context, origin string, destination string, earliest string) ([]model.Route, error) {
	board, err := s.board(ctx, origin, "")
	if err != nil {
		return nil, err
	}

	earliestSeconds := util.ParseClockTime(earliest)

	var interchangeBoard *stationBoardResult
	var routes []model.Route

	for _, service := range board.TrainServices {
		departureSeconds := util.ParseClockTime(service.Scheduled)
		if departureSeconds == util.InvalidClockTime || departureSeconds < earliestSeconds {
			continue
		}

		if point, found := findCallingPoint(service, destination); found {
			routes = append(routes, directRoute(board.LocationName, service, point))
			continue
		}

		interchangePoint, found := findCallingPoint(service, s.opts.InterchangeCRS)
		if !found {
			continue
		}

		if interchangeBoard == nil {
			interchangeBoard, err = s.board(ctx, s.opts.InterchangeCRS, destination)
			if err != nil {
				log.Warn().
					Err(err).
					Str("crs", s.opts.InterchangeCRS).
					Msg("Failed to fetch interchange board, skipping connecting routes")
				interchangeBoard = &stationBoardResult{}
			}
		}

		if route, found := s.connectingRoute(board.LocationName, service, interchangePoint, interchangeBoard, destination); found {
			routes = append(routes, route)
		}
	}

	log.Debug().
		Str("origin", origin).
		Str("destination", destination).
		Int("routes", len(routes)).
		Msg("Built implicit schedule from Darwin boards")

	return routes, nil
}

func findCallingPoint(service trainService, crs string) (callingPoint, bool) {
	for _, pointList := range service.CallingPointLists {
		for _, point := range pointList.CallingPoints {
			if point.Crs == crs {
				return point, true
			}
		}
	}

	return callingPoint{}, false
}

func directRoute(originName string, service trainService, destinationPoint callingPoint) model.Route {
	return model.Route{
		DepartureTime: service.Scheduled,
		ArrivalTime:   destinationPoint.Scheduled,
		Duration:      durationBetween(service.Scheduled, destinationPoint.Scheduled),

		Legs: []model.Leg{
			{
				Mode: model.TransportModeRail,

				Origin:      originName,
				Destination: destinationPoint.LocationName,

				DepartureTime: service.Scheduled,
				ArrivalTime:   destinationPoint.Scheduled,

				Operator: service.Operator,
			},
		},
	}
}

func (s *Source) connectingRoute(originName string, service trainService, interchangePoint callingPoint, interchangeBoard *stationBoardResult, destination string) (model.Route, bool) {
	interchangeArrival := util.ParseClockTime(interchangePoint.Scheduled)
	if interchangeArrival == util.InvalidClockTime {
		return model.Route{}, false
	}

	for _, connection := range interchangeBoard.TrainServices {
		connectionDeparture := util.ParseClockTime(connection.Scheduled)
		if connectionDeparture == util.InvalidClockTime || connectionDeparture < interchangeArrival {
			continue
		}

		destinationPoint, found := findCallingPoint(connection, destination)
		if !found {
			continue
		}

		return model.Route{
			DepartureTime: service.Scheduled,
			ArrivalTime:   destinationPoint.Scheduled,
			Duration:      durationBetween(service.Scheduled, destinationPoint.Scheduled),

			Legs: []model.Leg{
				{
					Mode: model.TransportModeRail,

					Origin:      originName,
					Destination: interchangePoint.LocationName,

					DepartureTime: service.Scheduled,
					ArrivalTime:   interchangePoint.Scheduled,

					Operator: service.Operator,
				},
				{
					Mode: model.TransportModeWalk,

					Origin:      interchangePoint.LocationName,
					Destination: interchangePoint.LocationName,

					DepartureTime: interchangePoint.Scheduled,
					ArrivalTime:   connection.Scheduled,
				},
				{
					Mode: model.TransportModeRail,

					Origin:      interchangePoint.LocationName,
					Destination: destinationPoint.LocationName,

					DepartureTime: connection.Scheduled,
					ArrivalTime:   destinationPoint.Scheduled,

					Operator: connection.Operator,
				},
			},
		}, true
	}

	return model.Route{}, false
}

func durationBetween(departure string, arrival string) string {
	departureSeconds := util.ParseClockTime(departure)
	arrivalSeconds := util.ParseClockTime(arrival)

	if departureSeconds == util.InvalidClockTime || arrivalSeconds == util.InvalidClockTime {
		return util.FormatDurationMinutes(0)
	}

	if arrivalSeconds < departureSeconds {
		arrivalSeconds += 24 * 3600
	}

	return util.FormatDurationMinutes((arrivalSeconds - departureSeconds) / 60)
}
