package api

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"smartestate/server/config"
	"smartestate/server/internal/alerts"
	"smartestate/server/internal/construction"
	"smartestate/server/internal/database"
	"smartestate/server/internal/economic"
	"smartestate/server/internal/investment"
	"smartestate/server/internal/location"
	"smartestate/server/internal/market"
	"smartestate/server/internal/pricing"
)

// Handler carries the wired analysis engines and collaborators behind the
// HTTP surface.
type Handler struct {
	store      *database.Store
	economic   *economic.Client
	forecaster *market.Forecaster
	predictor  *pricing.Predictor
	engine     *investment.Engine
	scorer     *location.Scorer
	planner    *construction.Planner
	alerts     *alerts.Service
	config     *config.Config
	logger     *logrus.Logger
	nowFn      func() time.Time
}

// Deps bundles the handler's collaborators.
type Deps struct {
	Store      *database.Store
	Economic   *economic.Client
	Forecaster *market.Forecaster
	Predictor  *pricing.Predictor
	Engine     *investment.Engine
	Scorer     *location.Scorer
	Planner    *construction.Planner
	Alerts     *alerts.Service
	Config     *config.Config
	Logger     *logrus.Logger
}

// NewHandler creates the API handler. A nil logger gets a JSON logger on
// stdout, matching the server's startup configuration.
func NewHandler(deps Deps) *Handler {
	logger := deps.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	cfg := deps.Config
	if cfg == nil {
		cfg = &config.Config{}
		cfg.Collaborators.DefaultCountry = "United States"
	}

	return &Handler{
		store:      deps.Store,
		economic:   deps.Economic,
		forecaster: deps.Forecaster,
		predictor:  deps.Predictor,
		engine:     deps.Engine,
		scorer:     deps.Scorer,
		planner:    deps.Planner,
		alerts:     deps.Alerts,
		config:     cfg,
		logger:     logger,
		nowFn:      time.Now,
	}
}

// SetNowFunc overrides the clock, for tests.
func (h *Handler) SetNowFunc(fn func() time.Time) {
	if fn != nil {
		h.nowFn = fn
	}
}

// Health reports service liveness and per-table record counts.
func (h *Handler) Health(c *gin.Context) {
	payload := gin.H{"status": "healthy", "time": h.nowFn().Format(time.RFC3339)}
	if h.store != nil {
		if counts, err := h.store.Counts(); err == nil {
			payload["records"] = counts
		}
	}
	success(c, payload)
}

func (h *Handler) country(c *gin.Context) string {
	if country := c.Query("country"); country != "" {
		return country
	}
	return h.config.Collaborators.DefaultCountry
}

func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": data})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": message})
}

func serverError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": message})
}
