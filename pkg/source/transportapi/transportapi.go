// Package transportapi backs both roles with the TransportAPI REST service:
// the public journey planner for schedules and the train station live board.
// The live feed is timetable grade, so the board reports a wide matching
// tolerance and a Scheduled default status.
package transportapi

import (
	"context"
	"net/http"
	"time"

	"github.com/railwatch/railwatch/pkg/model"
	"github.com/railwatch/railwatch/pkg/source/fetch"
)

const DefaultEndpoint = "https://transportapi.com/v3"

const toleranceSeconds = 300

type Source struct {
	AppID  string
	AppKey string

	Endpoint string

	client *fetch.Client
}

func NewSource(appID string, appKey string, timeout time.Duration, maxAttempts int) *Source {
	return &Source{
		AppID:  appID,
		AppKey: appKey,

		Endpoint: DefaultEndpoint,

		client: fetch.NewClient(timeout, maxAttempts),
	}
}

func (s *Source) Name() string {
	return "TransportAPI"
}

func (s *Source) ToleranceSeconds() int {
	return toleranceSeconds
}

func (s *Source) DefaultStatus() model.Status {
	return model.StatusScheduled
}

func (s *Source) Classification() model.ClassificationStrategy {
	return model.ClassificationLegCount
}

func (s *Source) get(ctx context.Context, requestURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", requestURL, nil)
	if err != nil {
		return nil, err
	}

	return s.client.Do(req)
}
