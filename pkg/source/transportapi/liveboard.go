package transportapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/railwatch/railwatch/pkg/model"
	"github.com/railwatch/railwatch/pkg/util"
	"github.com/rs/zerolog/log"
)

type liveBoardResponse struct {
	StationName string `json:"station_name"`

	Departures struct {
		All []liveDeparture `json:"all"`
	} `json:"departures"`
}

type liveDeparture struct {
	TrainUID string `json:"train_uid"`

	AimedDepartureTime    string `json:"aimed_departure_time"`
	ExpectedDepartureTime string `json:"expected_departure_time"`

	Platform string `json:"platform"`
	Status   string `json:"status"`

	OperatorName    string `json:"operator_name"`
	DestinationName string `json:"destination_name"`
}

func (s *Source) DepartureBoard(ctx context.Context, crs string, destinationFilter []string) ([]model.LiveRecord, error) {
	requestURL := fmt.Sprintf(
		"%s/uk/train/station/%s/live.json?app_id=%s&app_key=%s&train_status=passenger",
		s.Endpoint, url.PathEscape(crs),
		url.QueryEscape(s.AppID), url.QueryEscape(s.AppKey),
	)

	resp, err := s.get(ctx, requestURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	byteValue, _ := io.ReadAll(resp.Body)

	var boardResponse liveBoardResponse
	if err := json.Unmarshal(byteValue, &boardResponse); err != nil {
		return nil, fmt.Errorf("failed to parse live board response: %w", err)
	}

	var records []model.LiveRecord

	for _, departure := range boardResponse.Departures.All {
		// The feed exposes no calling points, so the destination display is
		// the only filter signal. A service counts when it matches any filter
		// entry; the interchange display names arrive through the filter.
		if !matchesFilter(departure.DestinationName, destinationFilter) {
			continue
		}

		record := model.LiveRecord{
			ServiceID: departure.TrainUID,

			AimedDeparture: departure.AimedDepartureTime,

			Platform:  departure.Platform,
			Cancelled: strings.EqualFold(departure.Status, "CANCELLED"),

			DestinationName: departure.DestinationName,
		}

		if util.ParseClockTime(departure.ExpectedDepartureTime) != util.InvalidClockTime {
			record.ExpectedDeparture = departure.ExpectedDepartureTime
		}

		records = append(records, record)
	}

	log.Debug().
		Str("crs", crs).
		Int("records", len(records)).
		Msg("Fetched TransportAPI live board")

	return records, nil
}

func matchesFilter(destinationName string, destinationFilter []string) bool {
	if len(destinationFilter) == 0 {
		return true
	}

	for _, entry := range destinationFilter {
		if strings.EqualFold(destinationName, entry) {
			return true
		}
	}

	return false
}
