// Package journeys orchestrates one publishing run: fetch candidate routes,
// apply the day of week policy, reconcile the kept routes against the live
// boards and write the output document.
package journeys

import (
	"context"
	"time"

	"github.com/kr/pretty"
	"github.com/railwatch/railwatch/pkg/config"
	"github.com/railwatch/railwatch/pkg/model"
	"github.com/railwatch/railwatch/pkg/reconcile"
	"github.com/railwatch/railwatch/pkg/selector"
	"github.com/railwatch/railwatch/pkg/source"
	"github.com/railwatch/railwatch/pkg/util"
	"github.com/rs/zerolog/log"
)

func Run(cfg *config.Config, now time.Time, prettyDump bool) error {
	ctx := context.Background()

	scheduleSource, liveSource, err := source.ForConfig(cfg)
	if err != nil {
		return err
	}

	policy := selector.PolicyForDay(now)

	log.Info().
		Str("schedule", scheduleSource.Name()).
		Str("live", liveSource.Name()).
		Bool("weekend", policy.IsWeekend).
		Str("cutoff", policy.CutoffTime).
		Str("wanted", string(policy.WantedType)).
		Int("cap", policy.CapCount).
		Msg("Starting journey update")

	routes, err := scheduleSource.PlanJourneys(ctx, cfg.Route.OriginCRS, cfg.Route.DestinationCRS, policy.CutoffTime)
	if err != nil {
		log.Warn().Err(err).Str("source", scheduleSource.Name()).Msg("Schedule source failed, continuing with no routes")
		routes = nil
	}

	selected := selector.Select(routes, policy, scheduleSource.Classification(), cfg.Route.DestinationName)

	log.Info().
		Int("candidates", len(routes)).
		Int("selected", len(selected)).
		Msg("Applied selection policy")

	engine := reconcile.NewEngine(liveSource.ToleranceSeconds(), liveSource.DefaultStatus())

	originBoard := fetchBoard(ctx, liveSource, cfg.Route.OriginCRS, originFilter(cfg))

	var interchangeBoard []model.LiveRecord
	if cfg.LiveInterchange && anyOneChange(selected) {
		interchangeBoard = fetchBoard(ctx, liveSource, cfg.Route.InterchangeCRS, interchangeFilter(cfg))
	}

	document := Assemble(engine, selected, originBoard, interchangeBoard, now)

	if prettyDump {
		pretty.Println(document)
	}

	if err := Write(cfg.OutputPath, document); err != nil {
		return err
	}

	log.Info().
		Str("path", cfg.OutputPath).
		Int("journeys", len(document.Journeys)).
		Msg("Published journey document")

	return nil
}

// fetchBoard degrades a live board failure to an empty board: enrichment
// then falls back to scheduled values instead of aborting the run.
func fetchBoard(ctx context.Context, liveSource source.LiveBoardSource, crs string, destinationFilter []string) []model.LiveRecord {
	records, err := liveSource.DepartureBoard(ctx, crs, destinationFilter)
	if err != nil {
		log.Warn().Err(err).Str("crs", crs).Str("source", liveSource.Name()).Msg("Live board unavailable")
		return nil
	}

	return records
}

// originFilter keeps the origin board down to services heading towards the
// destination, counting a service terminating at the interchange as one.
// Order carries no meaning; sources match any entry.
func originFilter(cfg *config.Config) []string {
	filter := []string{
		cfg.Route.DestinationName,
		cfg.Route.DestinationCRS,
		cfg.Route.InterchangeName,
		cfg.Route.InterchangeCRS,
	}
	filter = append(filter, cfg.Route.DestinationDisplayNames...)

	return util.RemoveDuplicateStrings(filter, nil)
}

func interchangeFilter(cfg *config.Config) []string {
	return util.RemoveDuplicateStrings([]string{
		cfg.Route.DestinationName,
		cfg.Route.DestinationCRS,
	}, nil)
}

func anyOneChange(selected []selector.Selected) bool {
	for _, item := range selected {
		if item.Type == model.JourneyTypeOneChange {
			return true
		}
	}

	return false
}
