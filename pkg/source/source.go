package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/railwatch/railwatch/pkg/config"
	"github.com/railwatch/railwatch/pkg/model"
	"github.com/railwatch/railwatch/pkg/source/darwinldb"
	"github.com/railwatch/railwatch/pkg/source/tfljourney"
	"github.com/railwatch/railwatch/pkg/source/transportapi"
)

var UnsupportedSourceError = errors.New("source does not support that lookup")

// ScheduleSource returns candidate routes between two stations. A source
// failure maps to zero routes at the orchestrator, never a crash.
type ScheduleSource interface {
	Name() string
	Classification() model.ClassificationStrategy
	PlanJourneys(ctx context.Context, origin string, destination string, earliest string) ([]model.Route, error)
}

// LiveBoardSource returns the live departure board for a station, optionally
// filtered by destination. The tolerance and default status feed the
// reconciliation engine: a coarse timetable feed cannot assert realtime
// confidence, so it reports wider tolerance and a Scheduled default.
type LiveBoardSource interface {
	Name() string
	ToleranceSeconds() int
	DefaultStatus() model.Status
	DepartureBoard(ctx context.Context, crs string, destinationFilter []string) ([]model.LiveRecord, error)
}

// ForConfig builds the schedule and live board sources the configuration
// selects. Credentials were validated at config load, ahead of this point.
func ForConfig(cfg *config.Config) (ScheduleSource, LiveBoardSource, error) {
	var scheduleSource ScheduleSource
	var liveSource LiveBoardSource

	darwinSource := darwinldb.NewSource(darwinldb.Options{
		AccessToken: cfg.DarwinToken,

		InterchangeCRS:  cfg.Route.InterchangeCRS,
		InterchangeName: cfg.Route.InterchangeName,

		Timeout:     cfg.RequestTimeout,
		MaxAttempts: cfg.MaxAttempts,
	})

	transportAPISource := transportapi.NewSource(cfg.TransportAPIAppID, cfg.TransportAPIAppKey, cfg.RequestTimeout, cfg.MaxAttempts)

	switch cfg.ScheduleSource {
	case config.SourceDarwin:
		scheduleSource = darwinSource
	case config.SourceTfL:
		scheduleSource = tfljourney.NewSource(cfg.TfLAppKey, cfg.RequestTimeout, cfg.MaxAttempts)
	case config.SourceTransportAPI:
		scheduleSource = transportAPISource
	default:
		return nil, nil, fmt.Errorf("unknown schedule source %s: %w", cfg.ScheduleSource, UnsupportedSourceError)
	}

	switch cfg.LiveSource {
	case config.SourceDarwin:
		liveSource = darwinSource
	case config.SourceTransportAPI:
		liveSource = transportAPISource
	default:
		return nil, nil, fmt.Errorf("unknown live board source %s: %w", cfg.LiveSource, UnsupportedSourceError)
	}

	return scheduleSource, liveSource, nil
}
