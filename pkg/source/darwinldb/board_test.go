package darwinldb

import (
	"testing"
)

const boardXML = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>
    <GetDepBoardWithDetailsResponse xmlns="http://thalesgroup.com/RTTI/2021-11-01/ldb/">
      <GetStationBoardResult>
        <generatedAt>2026-08-22T07:15:02.123Z</generatedAt>
        <locationName>Streatham Common</locationName>
        <crs>SRC</crs>
        <trainServices>
          <service>
            <std>07:26</std>
            <etd>On time</etd>
            <platform>1</platform>
            <operator>Southern</operator>
            <operatorCode>SN</operatorCode>
            <serviceID>1111111SRC_</serviceID>
            <destination>
              <location><locationName>Milton Keynes Central</locationName><crs>MKC</crs></location>
            </destination>
            <subsequentCallingPoints>
              <callingPointList>
                <callingPoint><locationName>Balham</locationName><crs>BAL</crs><st>07:30</st><et>On time</et></callingPoint>
                <callingPoint><locationName>Clapham Junction</locationName><crs>CLJ</crs><st>07:36</st><et>On time</et></callingPoint>
                <callingPoint><locationName>Imperial Wharf</locationName><crs>IMW</crs><st>07:44</st><et>07:47</et></callingPoint>
              </callingPointList>
            </subsequentCallingPoints>
          </service>
          <service>
            <std>07:33</std>
            <etd>07:41</etd>
            <platform>2</platform>
            <operator>Southern</operator>
            <operatorCode>SN</operatorCode>
            <serviceID>2222222SRC_</serviceID>
            <destination>
              <location><locationName>London Victoria</locationName><crs>VIC</crs></location>
            </destination>
            <subsequentCallingPoints>
              <callingPointList>
                <callingPoint><locationName>Clapham Junction</locationName><crs>CLJ</crs><st>07:43</st><et>07:51</et></callingPoint>
              </callingPointList>
            </subsequentCallingPoints>
          </service>
          <service>
            <std>07:40</std>
            <etd>Cancelled</etd>
            <isCancelled>true</isCancelled>
            <operator>Southern</operator>
            <operatorCode>SN</operatorCode>
            <serviceID>3333333SRC_</serviceID>
            <destination>
              <location><locationName>Imperial Wharf</locationName><crs>IMW</crs></location>
            </destination>
          </service>
          <service>
            <std>07:50</std>
            <etd>On time</etd>
            <operator>Southern</operator>
            <operatorCode>SN</operatorCode>
            <serviceID>4444444SRC_</serviceID>
            <destination>
              <location><locationName>Epsom</locationName><crs>EPS</crs></location>
            </destination>
          </service>
        </trainServices>
      </GetStationBoardResult>
    </GetDepBoardWithDetailsResponse>
  </soap:Body>
</soap:Envelope>`

func TestParseBoard(t *testing.T) {
	board, err := parseBoard([]byte(boardXML))
	if err != nil {
		t.Fatalf("parseBoard failed: %v", err)
	}

	if board.LocationName != "Streatham Common" || board.Crs != "SRC" {
		t.Errorf("board location = %s (%s)", board.LocationName, board.Crs)
	}
	if len(board.TrainServices) != 4 {
		t.Fatalf("parsed %d services, want 4", len(board.TrainServices))
	}

	first := board.TrainServices[0]
	if first.Scheduled != "07:26" || first.Platform != "1" || first.Operator != "Southern" {
		t.Errorf("first service = %+v", first)
	}
	if len(first.CallingPointLists) != 1 || len(first.CallingPointLists[0].CallingPoints) != 3 {
		t.Fatalf("first service calling points = %+v", first.CallingPointLists)
	}

	if !board.TrainServices[2].IsCancelled {
		t.Error("third service should carry the cancellation flag")
	}
}

func TestParseBoardMalformed(t *testing.T) {
	if _, err := parseBoard([]byte("{not xml}")); err == nil {
		t.Error("expected an error for a malformed response")
	}

	// An empty but well formed document is "no data", not an error.
	board, err := parseBoard([]byte("<Envelope><Body></Body></Envelope>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(board.TrainServices) != 0 {
		t.Errorf("expected no services, got %d", len(board.TrainServices))
	}
}

func TestNormalizeService(t *testing.T) {
	board, err := parseBoard([]byte(boardXML))
	if err != nil {
		t.Fatalf("parseBoard failed: %v", err)
	}

	filter := []string{"Imperial Wharf", "IMW", "Clapham Junction", "CLJ"}

	onTime := normalizeService(board.TrainServices[0], filter)
	if onTime.ExpectedDeparture != "" {
		t.Errorf("\"On time\" etd must not become a delay signal, got %q", onTime.ExpectedDeparture)
	}
	if onTime.TerminalArrival != "07:47" {
		t.Errorf("terminal arrival = %q, want the estimated 07:47 at the furthest filter match", onTime.TerminalArrival)
	}
	if onTime.DestinationName != "Milton Keynes Central" {
		t.Errorf("destination = %q", onTime.DestinationName)
	}

	delayed := normalizeService(board.TrainServices[1], filter)
	if delayed.ExpectedDeparture != "07:41" {
		t.Errorf("expected departure = %q, want 07:41", delayed.ExpectedDeparture)
	}
	if delayed.TerminalArrival != "07:51" {
		t.Errorf("terminal arrival = %q, want 07:51 at Clapham Junction", delayed.TerminalArrival)
	}

	cancelled := normalizeService(board.TrainServices[2], filter)
	if !cancelled.Cancelled {
		t.Error("cancelled service must keep its flag")
	}
	if cancelled.Platform != "" {
		t.Errorf("platform = %q, want empty for the reconciler to default", cancelled.Platform)
	}
}

func TestNormalizeServiceDelayedMarker(t *testing.T) {
	record := normalizeService(trainService{Scheduled: "07:40", Estimated: "Delayed"}, nil)

	if !record.Delayed {
		t.Error("an etd of \"Delayed\" must mark the record delayed")
	}
	if record.ExpectedDeparture != "" {
		t.Errorf("expected departure = %q, want empty as the marker carries no estimate", record.ExpectedDeparture)
	}
	if record.Cancelled {
		t.Error("the marker must not read as a cancellation")
	}
}

func TestMatchesFilter(t *testing.T) {
	board, err := parseBoard([]byte(boardXML))
	if err != nil {
		t.Fatalf("parseBoard failed: %v", err)
	}

	filter := []string{"Imperial Wharf", "IMW", "Clapham Junction", "CLJ"}

	tests := []struct {
		name     string
		index    int
		expected bool
	}{
		{name: "calls at both filter stations", index: 0, expected: true},
		{name: "calls at the interchange only", index: 1, expected: true},
		{name: "terminates at the destination", index: 2, expected: true},
		{name: "unrelated service", index: 3, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchesFilter(board.TrainServices[tt.index], filter); got != tt.expected {
				t.Errorf("matchesFilter = %v, want %v", got, tt.expected)
			}
		})
	}

	if !matchesFilter(board.TrainServices[3], nil) {
		t.Error("an empty filter must keep every service")
	}
}

func TestFindCallingPoint(t *testing.T) {
	board, err := parseBoard([]byte(boardXML))
	if err != nil {
		t.Fatalf("parseBoard failed: %v", err)
	}

	point, found := findCallingPoint(board.TrainServices[0], "IMW")
	if !found || point.Scheduled != "07:44" {
		t.Errorf("calling point = %+v found = %v", point, found)
	}

	if _, found := findCallingPoint(board.TrainServices[3], "IMW"); found {
		t.Error("service without the calling point must not match")
	}
}

func TestDurationBetween(t *testing.T) {
	tests := []struct {
		name      string
		departure string
		arrival   string
		expected  string
	}{
		{name: "same day", departure: "07:26", arrival: "07:44", expected: "00:18:00"},
		{name: "midnight rollover", departure: "23:50", arrival: "00:15", expected: "00:25:00"},
		{name: "unparsable", departure: "07:26", arrival: "", expected: "00:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := durationBetween(tt.departure, tt.arrival); got != tt.expected {
				t.Errorf("durationBetween(%q, %q) = %q, want %q", tt.departure, tt.arrival, got, tt.expected)
			}
		})
	}
}
