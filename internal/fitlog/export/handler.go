package export

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/fitlog/internal/fitlog/reports"
	"github.com/2beens/fitlog/internal/telemetry/metrics"
	"github.com/2beens/fitlog/internal/telemetry/tracing"
	"github.com/2beens/fitlog/pkg"

	log "github.com/sirupsen/logrus"
)

type Handler struct {
	analyzer       *reports.Analyzer
	config         Config
	metricsManager *metrics.Manager
}

func NewHandler(analyzer *reports.Analyzer, config Config, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		analyzer:       analyzer,
		config:         config,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) HandleMonthlyXLSX(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.export.monthly.xlsx")
	defer span.End()

	year, month, err := yearMonthFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	report, err := handler.analyzer.MonthlyReport(ctx, year, month)
	if err != nil {
		writeReportErr(w, err, "monthly xlsx export")
		return
	}
	if report.TotalWorkouts == 0 {
		http.Error(w, ErrNoData.Error(), http.StatusNotFound)
		return
	}

	var buf bytes.Buffer
	if err := MonthlyToXLSX(report, handler.config, &buf); err != nil {
		log.Errorf("monthly xlsx export %d-%d: %s", year, month, err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterReportExports.WithLabelValues("xlsx", "monthly").Inc()
	writeAttachment(w, pkg.ContentType.XLSX, monthlyFilename(year, month, "xlsx"), buf.Bytes())
}

func (handler *Handler) HandleYearlyXLSX(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.export.yearly.xlsx")
	defer span.End()

	year, err := yearFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	report, err := handler.analyzer.YearlyReport(ctx, year)
	if err != nil {
		writeReportErr(w, err, "yearly xlsx export")
		return
	}
	if report.TotalWorkouts == 0 {
		http.Error(w, ErrNoData.Error(), http.StatusNotFound)
		return
	}

	var buf bytes.Buffer
	if err := YearlyToXLSX(report, &buf); err != nil {
		log.Errorf("yearly xlsx export %d: %s", year, err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterReportExports.WithLabelValues("xlsx", "yearly").Inc()
	writeAttachment(w, pkg.ContentType.XLSX, yearlyFilename(year, "xlsx"), buf.Bytes())
}

func (handler *Handler) HandleMonthlyPDF(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.export.monthly.pdf")
	defer span.End()

	year, month, err := yearMonthFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	report, err := handler.analyzer.MonthlyReport(ctx, year, month)
	if err != nil {
		writeReportErr(w, err, "monthly pdf export")
		return
	}
	if report.TotalWorkouts == 0 {
		http.Error(w, ErrNoData.Error(), http.StatusNotFound)
		return
	}

	var buf bytes.Buffer
	if err := MonthlyToPDF(report, handler.config, &buf); err != nil {
		log.Errorf("monthly pdf export %d-%d: %s", year, month, err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterReportExports.WithLabelValues("pdf", "monthly").Inc()
	writeAttachment(w, pkg.ContentType.PDF, monthlyFilename(year, month, "pdf"), buf.Bytes())
}

func (handler *Handler) HandleYearlyPDF(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.export.yearly.pdf")
	defer span.End()

	year, err := yearFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	report, err := handler.analyzer.YearlyReport(ctx, year)
	if err != nil {
		writeReportErr(w, err, "yearly pdf export")
		return
	}
	if report.TotalWorkouts == 0 {
		http.Error(w, ErrNoData.Error(), http.StatusNotFound)
		return
	}

	var buf bytes.Buffer
	if err := YearlyToPDF(report, &buf); err != nil {
		log.Errorf("yearly pdf export %d: %s", year, err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterReportExports.WithLabelValues("pdf", "yearly").Inc()
	writeAttachment(w, pkg.ContentType.PDF, yearlyFilename(year, "pdf"), buf.Bytes())
}

func writeReportErr(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, reports.ErrInvalidPeriod) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	log.Errorf("%s: %s", op, err)
	http.Error(w, "export failed", http.StatusInternalServerError)
}

func writeAttachment(w http.ResponseWriter, contentType, filename string, content []byte) {
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	pkg.WriteResponseBytesOK(w, contentType, content)
}

func monthlyFilename(year int, month time.Month, ext string) string {
	return fmt.Sprintf("workout-report-%d-%02d.%s", year, month, ext)
}

func yearlyFilename(year int, ext string) string {
	return fmt.Sprintf("workout-report-%d.%s", year, ext)
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
