// Package reconcile matches scheduled journey legs against live departure
// board records and derives per leg and per journey live status.
package reconcile

import (
	"github.com/railwatch/railwatch/pkg/model"
	"github.com/railwatch/railwatch/pkg/util"
)

// Engine carries the matching parameters of the live source in use. A high
// fidelity feed runs with a tight tolerance and an On Time default; a coarse
// timetable feed widens the window and can only claim Scheduled.
type Engine struct {
	ToleranceSeconds int
	DefaultStatus    model.Status
}

func NewEngine(toleranceSeconds int, defaultStatus model.Status) *Engine {
	return &Engine{
		ToleranceSeconds: toleranceSeconds,
		DefaultStatus:    defaultStatus,
	}
}

// MatchLiveData finds the first record whose aimed departure is within the
// tolerance window of the scheduled time, preserving the feed's own order.
// Without a match the leg keeps its scheduled baseline: default status,
// platform to be confirmed, live time equal to the scheduled time.
func (e *Engine) MatchLiveData(scheduledDeparture string, records []model.LiveRecord) (model.LiveStatus, *model.LiveRecord) {
	scheduledSeconds := util.ParseClockTime(scheduledDeparture)

	if scheduledSeconds != util.InvalidClockTime {
		for index := range records {
			record := &records[index]

			aimedSeconds := util.ParseClockTime(record.AimedDeparture)
			if aimedSeconds == util.InvalidClockTime {
				continue
			}

			difference := aimedSeconds - scheduledSeconds
			if difference < 0 {
				difference = -difference
			}
			if difference > e.ToleranceSeconds {
				continue
			}

			return e.deriveStatus(record), record
		}
	}

	return model.LiveStatus{
		Status:   e.DefaultStatus,
		LiveTime: scheduledDeparture,
		Platform: model.PlatformToBeConfirmed,
	}, nil
}

func (e *Engine) deriveStatus(record *model.LiveRecord) model.LiveStatus {
	status := model.LiveStatus{
		Platform: record.Platform,
	}
	if status.Platform == "" {
		status.Platform = model.PlatformToBeConfirmed
	}

	switch {
	case record.Cancelled:
		status.Status = model.StatusCancelled
		status.LiveTime = model.TimeNotApplicable
	case record.ExpectedDeparture != "" && record.ExpectedDeparture != record.AimedDeparture:
		status.Status = model.StatusDelayed
		status.LiveTime = record.ExpectedDeparture
	case record.Delayed:
		// Known late, no estimate from the feed.
		status.Status = model.StatusDelayed
		status.LiveTime = model.TimeNotApplicable
	default:
		status.Status = e.DefaultStatus
		status.LiveTime = record.AimedDeparture
	}

	return status
}

// RecomputeDuration rebuilds the total journey duration from the scheduled
// departure and a live terminal arrival, rolling over midnight when the
// arrival clock time is numerically earlier. Any parse failure returns the
// fallback unchanged.
func (e *Engine) RecomputeDuration(scheduledDeparture string, liveArrival string, fallback string) string {
	departureSeconds := util.ParseClockTime(scheduledDeparture)
	arrivalSeconds := util.ParseClockTime(liveArrival)

	if departureSeconds == util.InvalidClockTime || arrivalSeconds == util.InvalidClockTime {
		return fallback
	}

	if arrivalSeconds < departureSeconds {
		arrivalSeconds += 24 * 3600
	}

	return util.FormatDurationMinutes((arrivalSeconds - departureSeconds) / 60)
}

// JourneyStatus folds leg statuses into one journey status. Cancellation
// anywhere cancels the journey, any delay marks it delayed, otherwise the
// first travel leg speaks for the whole journey.
func JourneyStatus(legs []model.JourneyLeg) model.Status {
	var firstTravelStatus model.Status
	delayed := false

	for _, leg := range legs {
		if leg.Kind != model.LegKindTravel {
			continue
		}

		if leg.Status == model.StatusCancelled {
			return model.StatusCancelled
		}
		if leg.Status == model.StatusDelayed {
			delayed = true
		}

		if firstTravelStatus == "" {
			firstTravelStatus = leg.Status
		}
	}

	if delayed {
		return model.StatusDelayed
	}
	if firstTravelStatus == "" {
		return model.StatusScheduled
	}

	return firstTravelStatus
}
