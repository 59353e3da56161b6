package app

import (
	"fmt"
	"time"

	"github.com/dayplanner/dayplanner/internal/config"
	"github.com/dayplanner/dayplanner/internal/metrics"
	"github.com/dayplanner/dayplanner/internal/utils"
	"github.com/dayplanner/dayplanner/pkg/conflict"
	"github.com/dayplanner/dayplanner/pkg/highlight"
	"github.com/dayplanner/dayplanner/pkg/quickadd"
)

const metricsNamespace = "dayplanner"

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Clock   utils.Clock
	Random  utils.Random
	Metrics *metrics.Metrics

	Detector        conflict.Detector
	ConflictHandler *conflict.Handler

	HighlightService *highlight.Service
	CsvStatsRenderer *highlight.CsvStatsRendererImpl
	HighlightHandler *highlight.Handler

	QuickAddParser  *quickadd.Parser
	QuickAddHandler *quickadd.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(cfg config.Application, location *time.Location) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.Clock = utils.SystemClock{Location: location}
	deps.Random = utils.SystemRandom{}
	deps.Metrics = metrics.NewMetrics(metricsNamespace)

	scheduling := cfg.Scheduling
	deps.Detector = conflict.NewDetector(scheduling.Buffer())
	deps.ConflictHandler = conflict.NewHandler(deps.Detector, scheduling.WorkdayStartHour, scheduling.WorkdayEndHour, conflict.SlotSearch{
		Days:      scheduling.SearchDays,
		StartHour: scheduling.PreferredStartHour,
		EndHour:   scheduling.PreferredEndHour,
	})

	weekStart, err := highlight.ParseWeekday(cfg.Highlights.WeekStartDay)
	if err != nil {
		return nil, fmt.Errorf("invalid highlights week start: %w", err)
	}
	deps.HighlightService = highlight.NewService(deps.Clock, deps.Random, weekStart)
	deps.CsvStatsRenderer = highlight.NewCsvStatsRenderer()
	deps.HighlightHandler = highlight.NewHandler(deps.HighlightService, deps.CsvStatsRenderer)

	deps.QuickAddParser = quickadd.NewParser(deps.Clock)
	deps.QuickAddHandler = quickadd.NewHandler(deps.QuickAddParser, deps.Clock)

	return deps, nil
}
