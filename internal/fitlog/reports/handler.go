package reports

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/fitlog/internal/telemetry/metrics"
	"github.com/2beens/fitlog/internal/telemetry/tracing"
	"github.com/2beens/fitlog/pkg"

	log "github.com/sirupsen/logrus"
)

type Handler struct {
	analyzer       *Analyzer
	cache          *Cache
	metricsManager *metrics.Manager
}

func NewHandler(analyzer *Analyzer, cache *Cache, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		analyzer:       analyzer,
		cache:          cache,
		metricsManager: metricsManager,
	}
}

// HandleMonthly serves the monthly report, year and month given as query
// params. Cached renders are served as-is.
func (handler *Handler) HandleMonthly(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.reports.monthly")
	defer span.End()

	year, month, err := yearMonthFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cacheKey := MonthlyKey(year, month)
	if cached, ok := handler.cache.Get(cacheKey); ok {
		pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, cached)
		return
	}

	report, err := handler.analyzer.MonthlyReport(ctx, year, month)
	if err != nil {
		if errors.Is(err, ErrInvalidPeriod) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("monthly report %d-%d: %s", year, month, err)
		http.Error(w, "failed to build monthly report", http.StatusInternalServerError)
		return
	}

	reportJson, err := json.Marshal(report)
	if err != nil {
		log.Errorf("marshal monthly report: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	handler.cache.Set(cacheKey, reportJson)
	handler.metricsManager.CounterReportsBuilt.WithLabelValues("monthly").Inc()
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, reportJson)
}

func (handler *Handler) HandleYearly(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.reports.yearly")
	defer span.End()

	year, err := yearFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cacheKey := YearlyKey(year)
	if cached, ok := handler.cache.Get(cacheKey); ok {
		pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, cached)
		return
	}

	report, err := handler.analyzer.YearlyReport(ctx, year)
	if err != nil {
		if errors.Is(err, ErrInvalidPeriod) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("yearly report %d: %s", year, err)
		http.Error(w, "failed to build yearly report", http.StatusInternalServerError)
		return
	}

	reportJson, err := json.Marshal(report)
	if err != nil {
		log.Errorf("marshal yearly report: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	handler.cache.Set(cacheKey, reportJson)
	handler.metricsManager.CounterReportsBuilt.WithLabelValues("yearly").Inc()
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, reportJson)
}

// HandleOverview serves the home screen numbers: streak, most common type
// and current month totals.
func (handler *Handler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.reports.overview")
	defer span.End()

	if cached, ok := handler.cache.Get(OverviewKey); ok {
		pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, cached)
		return
	}

	overview, err := handler.analyzer.Overview(ctx)
	if err != nil {
		log.Errorf("overview: %s", err)
		http.Error(w, "failed to build overview", http.StatusInternalServerError)
		return
	}

	overviewJson, err := json.Marshal(overview)
	if err != nil {
		log.Errorf("marshal overview: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	handler.cache.Set(OverviewKey, overviewJson)
	handler.metricsManager.CounterReportsBuilt.WithLabelValues("overview").Inc()
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, overviewJson)
}

func yearFromRequest(r *http.Request) (int, error) {
	yearStr := r.URL.Query().Get("year")
	if yearStr == "" {
		return 0, errors.New("year parameter is required")
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil || year <= 0 {
		return 0, errors.New("invalid year")
	}
	return year, nil
}

func yearMonthFromRequest(r *http.Request) (int, time.Month, error) {
	year, err := yearFromRequest(r)
	if err != nil {
		return 0, 0, err
	}

	monthStr := r.URL.Query().Get("month")
	if monthStr == "" {
		return 0, 0, errors.New("month parameter is required")
	}
	monthNum, err := strconv.Atoi(monthStr)
	if err != nil || monthNum < 1 || monthNum > 12 {
		return 0, 0, errors.New("invalid month")
	}

	return year, time.Month(monthNum), nil
}
