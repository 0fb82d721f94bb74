package darwinldb

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"

	"github.com/railwatch/railwatch/pkg/model"
	"github.com/railwatch/railwatch/pkg/util"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

const (
	soapEnvelopeNamespace = "http://schemas.xmlsoap.org/soap/envelope/"
	tokenTypesNamespace   = "http://thalesgroup.com/RTTI/2013-11-28/Token/types"
	ldbNamespace          = "http://thalesgroup.com/RTTI/2021-11-01/ldb/"

	soapAction = "http://thalesgroup.com/RTTI/2012-01-13/ldb/GetDepBoardWithDetails"

	boardRows          = 20
	boardWindowMinutes = 120
)

type soapEnvelope struct {
	XMLName       xml.Name `xml:"soap:Envelope"`
	SoapNamespace string   `xml:"xmlns:soap,attr"`
	TypNamespace  string   `xml:"xmlns:typ,attr"`
	LdbNamespace  string   `xml:"xmlns:ldb,attr"`

	Header soapHeader
	Body   soapBody
}

type soapHeader struct {
	XMLName xml.Name `xml:"soap:Header"`

	AccessToken accessToken
}

type accessToken struct {
	XMLName xml.Name `xml:"typ:AccessToken"`

	TokenValue string `xml:"typ:TokenValue"`
}

type soapBody struct {
	XMLName xml.Name `xml:"soap:Body"`

	Request depBoardWithDetailsRequest
}

type depBoardWithDetailsRequest struct {
	XMLName xml.Name `xml:"ldb:GetDepBoardWithDetailsRequest"`

	NumRows    int    `xml:"ldb:numRows"`
	Crs        string `xml:"ldb:crs"`
	FilterCrs  string `xml:"ldb:filterCrs,omitempty"`
	FilterType string `xml:"ldb:filterType,omitempty"`
	TimeOffset int    `xml:"ldb:timeOffset"`
	TimeWindow int    `xml:"ldb:timeWindow"`
}

type depBoardWithDetailsResponse struct {
	XMLName xml.Name

	Board stationBoardResult `xml:"Body>GetDepBoardWithDetailsResponse>GetStationBoardResult"`
}

type stationBoardResult struct {
	GeneratedAt  string `xml:"generatedAt"`
	LocationName string `xml:"locationName"`
	Crs          string `xml:"crs"`

	TrainServices []trainService `xml:"trainServices>service"`
}

type trainService struct {
	ServiceID string `xml:"serviceID"`

	Scheduled string `xml:"std"`
	Estimated string `xml:"etd"`

	Platform    string `xml:"platform"`
	IsCancelled bool   `xml:"isCancelled"`

	Operator     string `xml:"operator"`
	OperatorCode string `xml:"operatorCode"`

	Destination []ldbLocation `xml:"destination>location"`

	CallingPointLists []callingPointList `xml:"subsequentCallingPoints>callingPointList"`
}

type ldbLocation struct {
	Name string `xml:"locationName"`
	Crs  string `xml:"crs"`
}

type callingPointList struct {
	CallingPoints []callingPoint `xml:"callingPoint"`
}

type callingPoint struct {
	LocationName string `xml:"locationName"`
	Crs          string `xml:"crs"`

	Scheduled string `xml:"st"`
	Estimated string `xml:"et"`
	Actual    string `xml:"at"`
}

func (s *Source) board(ctx context.Context, crs string, filterCrs string) (*stationBoardResult, error) {
	envelope := soapEnvelope{
		SoapNamespace: soapEnvelopeNamespace,
		TypNamespace:  tokenTypesNamespace,
		LdbNamespace:  ldbNamespace,

		Header: soapHeader{
			AccessToken: accessToken{
				TokenValue: s.opts.AccessToken,
			},
		},
		Body: soapBody{
			Request: depBoardWithDetailsRequest{
				NumRows:    boardRows,
				Crs:        crs,
				FilterCrs:  filterCrs,
				FilterType: "to",
				TimeWindow: boardWindowMinutes,
			},
		},
	}

	requestBody, err := xml.Marshal(envelope)
	if err != nil {
		return nil, err
	}
	requestBody = append([]byte(xml.Header), requestBody...)

	req, err := http.NewRequestWithContext(ctx, "POST", s.opts.Endpoint, bytes.NewReader(requestBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", soapAction)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	byteValue, _ := io.ReadAll(resp.Body)

	return parseBoard(byteValue)
}

func parseBoard(data []byte) (*stationBoardResult, error) {
	var boardResponse depBoardWithDetailsResponse
	if err := xml.Unmarshal(data, &boardResponse); err != nil {
		return nil, fmt.Errorf("failed to parse departure board response: %w", err)
	}

	return &boardResponse.Board, nil
}

func (s *Source) DepartureBoard(ctx context.Context, crs string, destinationFilter []string) ([]model.LiveRecord, error) {
	board, err := s.board(ctx, crs, "")
	if err != nil {
		return nil, err
	}

	var records []model.LiveRecord

	for _, service := range board.TrainServices {
		if !matchesFilter(service, destinationFilter) {
			continue
		}

		records = append(records, normalizeService(service, destinationFilter))
	}

	log.Debug().
		Str("crs", crs).
		Int("services", len(board.TrainServices)).
		Int("records", len(records)).
		Msg("Fetched Darwin departure board")

	return records, nil
}

func matchesFilter(service trainService, destinationFilter []string) bool {
	if len(destinationFilter) == 0 {
		return true
	}

	for _, destination := range service.Destination {
		if slices.Contains(destinationFilter, destination.Name) || slices.Contains(destinationFilter, destination.Crs) {
			return true
		}
	}

	for _, pointList := range service.CallingPointLists {
		for _, point := range pointList.CallingPoints {
			if slices.Contains(destinationFilter, point.LocationName) || slices.Contains(destinationFilter, point.Crs) {
				return true
			}
		}
	}

	return false
}

func normalizeService(service trainService, destinationFilter []string) model.LiveRecord {
	record := model.LiveRecord{
		ServiceID: service.ServiceID,

		AimedDeparture: service.Scheduled,

		Platform:  service.Platform,
		Cancelled: service.IsCancelled || service.Estimated == "Cancelled",
		Delayed:   service.Estimated == "Delayed",
	}

	// etd is either a clock time or a marker such as "On time", "Delayed"
	// or "Cancelled". Only a concrete clock time is a live estimate; the
	// "Delayed" marker means late with no estimate.
	if util.ParseClockTime(service.Estimated) != util.InvalidClockTime {
		record.ExpectedDeparture = service.Estimated
	}

	if len(service.Destination) > 0 {
		record.DestinationName = service.Destination[0].Name
	}

	// The furthest filter match is the terminal for this query: a service
	// can call at the interchange before the final destination.
	for _, pointList := range service.CallingPointLists {
		for _, point := range pointList.CallingPoints {
			if slices.Contains(destinationFilter, point.LocationName) || slices.Contains(destinationFilter, point.Crs) {
				record.TerminalArrival = callingPointTime(point)
			}
		}
	}

	return record
}

func callingPointTime(point callingPoint) string {
	if util.ParseClockTime(point.Actual) != util.InvalidClockTime {
		return point.Actual
	}
	if util.ParseClockTime(point.Estimated) != util.InvalidClockTime {
		return point.Estimated
	}

	return point.Scheduled
}
