// Package tfljourney plans journeys with the TfL unified API. It is a
// schedule source only; live enrichment always comes from a separate live
// board source.
package tfljourney

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/railwatch/railwatch/pkg/model"
	"github.com/railwatch/railwatch/pkg/source/fetch"
	"github.com/railwatch/railwatch/pkg/util"
	"github.com/rs/zerolog/log"
)

const DefaultEndpoint = "https://api.tfl.gov.uk"

const dateTimeLayout = "2006-01-02T15:04:05"

type Source struct {
	AppKey   string
	Endpoint string

	client *fetch.Client
}

func NewSource(appKey string, timeout time.Duration, maxAttempts int) *Source {
	return &Source{
		AppKey:   appKey,
		Endpoint: DefaultEndpoint,

		client: fetch.NewClient(timeout, maxAttempts),
	}
}

func (s *Source) Name() string {
	return "TfL Journey Planner"
}

func (s *Source) Classification() model.ClassificationStrategy {
	return model.ClassificationLegCount
}

type journeyResults struct {
	Journeys []tflJourney `json:"journeys"`
}

type tflJourney struct {
	StartDateTime   string `json:"startDateTime"`
	ArrivalDateTime string `json:"arrivalDateTime"`
	Duration        int    `json:"duration"`

	Legs []tflLeg `json:"legs"`
}

type tflLeg struct {
	Duration int `json:"duration"`

	Mode tflMode `json:"mode"`

	DepartureTime string `json:"departureTime"`
	ArrivalTime   string `json:"arrivalTime"`

	DeparturePoint tflPoint `json:"departurePoint"`
	ArrivalPoint   tflPoint `json:"arrivalPoint"`

	RouteOptions []tflRouteOption `json:"routeOptions"`
}

type tflMode struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type tflPoint struct {
	CommonName string `json:"commonName"`
}

type tflRouteOption struct {
	Operator tflOperator `json:"operator"`
}

type tflOperator struct {
	Name string `json:"name"`
}

func (s *Source) PlanJourneys(ctx context.Context, origin string, destination string, earliest string) ([]model.Route, error) {
	requestURL := fmt.Sprintf(
		"%s/Journey/JourneyResults/%s/to/%s?mode=national-rail,overground,walking&app_key=%s",
		s.Endpoint, url.PathEscape(origin), url.PathEscape(destination), url.QueryEscape(s.AppKey),
	)

	req, err := http.NewRequestWithContext(ctx, "GET", requestURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	byteValue, _ := io.ReadAll(resp.Body)

	var results journeyResults
	if err := json.Unmarshal(byteValue, &results); err != nil {
		return nil, fmt.Errorf("failed to parse journey results: %w", err)
	}

	earliestSeconds := util.ParseClockTime(earliest)

	var routes []model.Route

	for _, journey := range results.Journeys {
		departureTime := clockTime(journey.StartDateTime)

		departureSeconds := util.ParseClockTime(departureTime)
		if departureSeconds == util.InvalidClockTime || departureSeconds < earliestSeconds {
			continue
		}

		route := model.Route{
			DepartureTime: departureTime,
			ArrivalTime:   clockTime(journey.ArrivalDateTime),
			Duration:      util.FormatDurationMinutes(journey.Duration),
		}

		for _, leg := range journey.Legs {
			route.Legs = append(route.Legs, model.Leg{
				Mode: transportMode(leg.Mode.ID),

				Origin:      leg.DeparturePoint.CommonName,
				Destination: leg.ArrivalPoint.CommonName,

				DepartureTime: clockTime(leg.DepartureTime),
				ArrivalTime:   clockTime(leg.ArrivalTime),

				Operator: legOperator(leg),
			})
		}

		routes = append(routes, route)
	}

	log.Debug().
		Str("origin", origin).
		Str("destination", destination).
		Int("routes", len(routes)).
		Msg("Fetched TfL journey plan")

	return routes, nil
}

func transportMode(modeID string) model.TransportMode {
	switch modeID {
	case "national-rail", "overground", "elizabeth-line":
		return model.TransportModeRail
	case "walking":
		return model.TransportModeWalk
	}

	return model.TransportModeOther
}

func legOperator(leg tflLeg) string {
	if len(leg.RouteOptions) == 0 {
		return ""
	}

	return leg.RouteOptions[0].Operator.Name
}

func clockTime(dateTime string) string {
	parsed, err := time.Parse(dateTimeLayout, dateTime)
	if err != nil {
		return ""
	}

	return parsed.Format("15:04")
}
