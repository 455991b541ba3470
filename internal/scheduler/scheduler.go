package scheduler

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"smartestate/server/config"
	"smartestate/server/internal/alerts"
	"smartestate/server/internal/economic"
	"smartestate/server/internal/models"
	"smartestate/server/internal/queue"
)

// Indicator types refreshed on every cycle.
var refreshedIndicators = []string{
	models.IndicatorInterestRate,
	models.IndicatorInflationRate,
	models.IndicatorGDPGrowth,
	models.IndicatorHousingIndex,
	models.IndicatorHousingStarts,
	models.IndicatorHomeSales,
}

// IndicatorFetcher supplies fresh indicator observations.
type IndicatorFetcher interface {
	FetchIndicatorSeries(ctx context.Context, indicatorType, country string, start, end time.Time) (models.IndicatorSeries, error)
}

// AlertSweeper evaluates stored alerts against current values.
type AlertSweeper interface {
	Sweep(ctx context.Context, lookup alerts.ValueLookup) (int, error)
}

// Scheduler periodically refreshes economic indicators into the persistence
// queue and sweeps alert subscriptions against the freshest values.
type Scheduler struct {
	fetcher      IndicatorFetcher
	queue        *queue.IndicatorQueue
	sweeper      AlertSweeper
	config       *config.Config
	logger       *logrus.Logger
	nowFn        func() time.Time
	stopChan     chan struct{}
	wg           sync.WaitGroup
	jobMutex     sync.Mutex
	isStartupRun bool

	latestMu sync.RWMutex
	latest   map[string]float64
}

// NewScheduler creates a scheduler.
func NewScheduler(fetcher IndicatorFetcher, q *queue.IndicatorQueue, sweeper AlertSweeper, cfg *config.Config, logger *logrus.Logger) *Scheduler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
		logger.SetLevel(logrus.InfoLevel)
	}

	return &Scheduler{
		fetcher:      fetcher,
		queue:        q,
		sweeper:      sweeper,
		config:       cfg,
		logger:       logger,
		nowFn:        time.Now,
		stopChan:     make(chan struct{}),
		isStartupRun: true,
		latest:       make(map[string]float64),
	}
}

// SetNowFunc overrides the clock, for tests.
func (s *Scheduler) SetNowFunc(fn func() time.Time) {
	if fn != nil {
		s.nowFn = fn
	}
}

// Start begins the scheduled tasks.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.run()
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	close(s.stopChan)
	s.wg.Wait()
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	// Startup refresh runs apart from the ticker so a slow first fetch
	// never delays shutdown handling.
	go func() {
		s.jobMutex.Lock()
		defer s.jobMutex.Unlock()
		s.logger.Info("Running startup indicator refresh")
		s.RefreshIndicators(context.Background())
		s.isStartupRun = false
		s.logger.Info("Startup indicator refresh completed")
	}()

	interval := time.Duration(s.config.IndicatorRefresh.IntervalMinutes) * time.Minute
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.executeScheduledJobs()
		}
	}
}

func (s *Scheduler) executeScheduledJobs() {
	if s.isStartupRun {
		s.logger.Debug("Skipping scheduled jobs while startup is in progress")
		return
	}

	s.jobMutex.Lock()
	defer s.jobMutex.Unlock()

	ctx := context.Background()
	s.RefreshIndicators(ctx)
	s.SweepAlerts(ctx)
}

// RefreshIndicators fetches a one-year window of every tracked indicator
// for the configured country and queues the batches for persistence. It
// also records each indicator's newest value for alert evaluation.
func (s *Scheduler) RefreshIndicators(ctx context.Context) {
	country := s.config.Collaborators.DefaultCountry
	start, end := economic.ResolveDateRange("1y", s.nowFn())

	for _, indicatorType := range refreshedIndicators {
		series, err := s.fetcher.FetchIndicatorSeries(ctx, indicatorType, country, start, end)
		if err != nil {
			s.logger.WithError(err).WithField("indicator", indicatorType).Error("Indicator refresh failed")
			continue
		}
		if len(series) == 0 {
			continue
		}

		sorted := series.Sorted()
		s.latestMu.Lock()
		s.latest[indicatorType] = sorted[len(sorted)-1].Value
		s.latestMu.Unlock()

		if err := s.queue.Push(series); err != nil {
			s.logger.WithError(err).WithField("indicator", indicatorType).Error("Failed to queue indicator batch")
			continue
		}

		s.logger.WithFields(logrus.Fields{
			"indicator": indicatorType,
			"country":   country,
			"points":    len(series),
		}).Info("Queued indicator refresh batch")
	}
}

// LatestValue returns the newest refreshed value of an indicator.
func (s *Scheduler) LatestValue(indicatorType string) (float64, bool) {
	s.latestMu.RLock()
	defer s.latestMu.RUnlock()
	v, ok := s.latest[indicatorType]
	return v, ok
}

// SweepAlerts evaluates market-trend alerts against the latest housing
// index. Other alert types need per-location values resolved at request
// time and are skipped here.
func (s *Scheduler) SweepAlerts(ctx context.Context) {
	if s.sweeper == nil {
		return
	}

	triggered, err := s.sweeper.Sweep(ctx, func(alert models.Alert) (float64, bool) {
		if alert.AlertType != models.AlertMarketTrend {
			return 0, false
		}
		return s.LatestValue(models.IndicatorHousingIndex)
	})
	if err != nil {
		s.logger.WithError(err).Error("Alert sweep failed")
		return
	}
	if triggered > 0 {
		s.logger.WithField("triggered", triggered).Info("Alert sweep completed")
	}
}
