package api

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"SajuPulse/internal/domain/models"
	domrepo "SajuPulse/internal/domain/repository"
	"SajuPulse/internal/service/metrics"
	"SajuPulse/internal/usecase"
	xhttp "SajuPulse/pkg/http"
	"SajuPulse/pkg/http/middleware"
	xlogger "SajuPulse/pkg/logger"
)

// EngineHandler serves the scoring engine over HTTP.
type EngineHandler struct {
	logger   *xlogger.Logger
	eval     *usecase.Evaluator
	reporter *usecase.CategoryReporter
	scans    *usecase.ScanService
	cache    domrepo.ReportCache
	limiter  middleware.Limiter
	upgrader websocket.Upgrader
}

func NewEngineHandler(logger *xlogger.Logger, eval *usecase.Evaluator, reporter *usecase.CategoryReporter,
	scans *usecase.ScanService, cache domrepo.ReportCache, limiter middleware.Limiter,
) *EngineHandler {
	metrics.Register()
	if logger == nil {
		logger = xlogger.Nop()
	}
	return &EngineHandler{
		logger:   logger,
		eval:     eval,
		reporter: reporter,
		scans:    scans,
		cache:    cache,
		limiter:  limiter,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
}

func (h *EngineHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1")
	g.POST("/period", h.Period)
	g.POST("/score", h.Score)
	g.POST("/categories", h.Categories)
	g.GET("/history", h.History)

	limited := g.Group("", middleware.RateLimit(h.limiter))
	limited.POST("/scan", h.Scan)
	limited.GET("/scan/stream", h.ScanStream)
}

type scoreResponse struct {
	Period models.Period        `json:"period"`
	Result models.ScoringResult `json:"result"`
}

func (h *EngineHandler) fail(c echo.Context, endpoint string, err error) error {
	ae := appError(err)
	if ae.Status >= 500 {
		metrics.Fail(endpoint, "internal")
		h.logger.Error(endpoint+" usecase error", xlogger.Error(err))
	} else {
		metrics.Fail(endpoint, "invalid")
	}
	return xhttp.AppErrorResponse(c, ae)
}

func (h *EngineHandler) invalid(c echo.Context, endpoint string, verr interface{}) error {
	metrics.Fail(endpoint, "validation")
	return xhttp.BadRequestResponse(c, verr)
}

func (h *EngineHandler) Period(c echo.Context) error {
	defer metrics.Observe("period", time.Now())
	req := &models.PeriodRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return h.invalid(c, "period", verr)
	}
	profile, err := usecase.ProfileFromInput(req.Profile)
	if err != nil {
		return h.fail(c, "period", err)
	}
	period, err := h.eval.Period(profile, req.Year, req.Month)
	if err != nil {
		return h.fail(c, "period", err)
	}
	return xhttp.SuccessResponse(c, period)
}

func (h *EngineHandler) Score(c echo.Context) error {
	defer metrics.Observe("score", time.Now())
	req := &models.ScoreRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return h.invalid(c, "score", verr)
	}
	profile, err := usecase.ProfileFromInput(req.Profile)
	if err != nil {
		return h.fail(c, "score", err)
	}
	event, _ := models.ParseEventType(req.EventType)
	period, result, err := h.eval.Score(c.Request().Context(), usecase.ScoreParams{
		Profile:      profile,
		Year:         req.Year,
		Month:        req.Month,
		Event:        event,
		Natal:        req.Natal,
		Transit:      req.Transit,
		UseAstrology: req.UseAstrology,
	})
	if err != nil {
		return h.fail(c, "score", err)
	}
	return xhttp.SuccessResponse(c, scoreResponse{Period: period, Result: result})
}

func (h *EngineHandler) Categories(c echo.Context) error {
	defer metrics.Observe("categories", time.Now())
	req := &models.CategoriesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return h.invalid(c, "categories", verr)
	}
	ctx := c.Request().Context()

	var cached models.CategoryReport
	key, hit := h.lookup(c, "categories", req, &cached)
	if hit {
		return xhttp.SuccessResponse(c, &cached)
	}

	profile, err := usecase.ProfileFromInput(req.Profile)
	if err != nil {
		return h.fail(c, "categories", err)
	}
	scores := make(map[models.Category]float64, len(req.Scores))
	for k, v := range req.Scores {
		cat, _ := models.ParseCategory(k)
		scores[cat] = v
	}
	report, err := h.reporter.Report(ctx, usecase.CategoryParams{
		Profile:      profile,
		Year:         req.Year,
		Month:        req.Month,
		Scores:       scores,
		Factors:      req.Factors,
		SolarTerm:    req.SolarTerm,
		LunarMansion: req.LunarMansion,
		UseAstrology: req.UseAstrology,
	})
	if err != nil {
		return h.fail(c, "categories", err)
	}
	h.store(c, key, report)
	return xhttp.SuccessResponse(c, report)
}

func (h *EngineHandler) History(c echo.Context) error {
	defer metrics.Observe("history", time.Now())
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return h.invalid(c, "history", verr)
	}
	event, _ := models.ParseEventType(req.EventType)
	rows, err := h.scans.History(c.Request().Context(), req.SubjectID, event, req.Limit)
	if err != nil {
		return h.fail(c, "history", err)
	}
	return xhttp.ListResponse(c, rows, int64(len(rows)))
}

// lookup reads a cached response for req. A cache failure counts as a miss.
func (h *EngineHandler) lookup(c echo.Context, endpoint string, req any, dest any) (string, bool) {
	if h.cache == nil {
		return "", false
	}
	key, err := h.cache.Key(endpoint, req)
	if err != nil {
		return "", false
	}
	hit, err := h.cache.Get(c.Request().Context(), key, dest)
	if err != nil {
		h.logger.Warn("report cache get failed", xlogger.String("endpoint", endpoint), xlogger.Error(err))
	}
	metrics.CacheResult(endpoint, hit)
	return key, hit
}

func (h *EngineHandler) store(c echo.Context, key string, v any) {
	if h.cache == nil || key == "" {
		return
	}
	if err := h.cache.Set(c.Request().Context(), key, v); err != nil {
		h.logger.Warn("report cache set failed", xlogger.String("key", key), xlogger.Error(err))
	}
}
