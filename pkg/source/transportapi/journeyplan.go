package transportapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"

	"github.com/railwatch/railwatch/pkg/model"
	"github.com/railwatch/railwatch/pkg/util"
	"github.com/rs/zerolog/log"
)

type journeyPlanResponse struct {
	Routes []apiRoute `json:"routes"`
}

type apiRoute struct {
	DepartureTime string `json:"departure_time"`
	ArrivalTime   string `json:"arrival_time"`
	Duration      string `json:"duration"`

	RouteParts []routePart `json:"route_parts"`
}

type routePart struct {
	Mode string `json:"mode"`

	LineName string `json:"line_name"`

	FromPointName string `json:"from_point_name"`
	ToPointName   string `json:"to_point_name"`

	DepartureTime string `json:"departure_time"`
	ArrivalTime   string `json:"arrival_time"`
}

func (s *Source) PlanJourneys(ctx context.Context, origin string, destination string, earliest string) ([]model.Route, error) {
	requestURL := fmt.Sprintf(
		"%s/uk/public/journey/from/crs:%s/to/crs:%s.json?app_id=%s&app_key=%s",
		s.Endpoint, url.PathEscape(origin), url.PathEscape(destination),
		url.QueryEscape(s.AppID), url.QueryEscape(s.AppKey),
	)

	resp, err := s.get(ctx, requestURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	byteValue, _ := io.ReadAll(resp.Body)

	var planResponse journeyPlanResponse
	if err := json.Unmarshal(byteValue, &planResponse); err != nil {
		return nil, fmt.Errorf("failed to parse journey plan response: %w", err)
	}

	earliestSeconds := util.ParseClockTime(earliest)

	var routes []model.Route

	for _, apiRoute := range planResponse.Routes {
		departureSeconds := util.ParseClockTime(apiRoute.DepartureTime)
		if departureSeconds == util.InvalidClockTime || departureSeconds < earliestSeconds {
			continue
		}

		route := model.Route{
			DepartureTime: apiRoute.DepartureTime,
			ArrivalTime:   apiRoute.ArrivalTime,
			Duration:      normalizeDuration(apiRoute.Duration),
		}

		for _, part := range apiRoute.RouteParts {
			route.Legs = append(route.Legs, model.Leg{
				Mode: transportMode(part.Mode),

				Origin:      part.FromPointName,
				Destination: part.ToPointName,

				DepartureTime: part.DepartureTime,
				ArrivalTime:   part.ArrivalTime,

				Operator: part.LineName,
			})
		}

		routes = append(routes, route)
	}

	log.Debug().
		Str("origin", origin).
		Str("destination", destination).
		Int("routes", len(routes)).
		Msg("Fetched TransportAPI journey plan")

	return routes, nil
}

func transportMode(mode string) model.TransportMode {
	switch mode {
	case "train", "tube":
		return model.TransportModeRail
	case "foot":
		return model.TransportModeWalk
	}

	return model.TransportModeOther
}

// normalizeDuration reformats the upstream HH:MM:SS duration through the
// shared parser so a malformed value degrades to a zero length journey
// instead of leaking an arbitrary string into the output document.
func normalizeDuration(duration string) string {
	return util.FormatDurationMinutes(util.ParseDurationMinutes(duration))
}
