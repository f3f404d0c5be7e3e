package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/fitlog/internal/config"
	"github.com/2beens/fitlog/internal/db"
	"github.com/2beens/fitlog/internal/fitlog/backup"
	"github.com/2beens/fitlog/internal/fitlog/entries"
	"github.com/2beens/fitlog/internal/fitlog/export"
	"github.com/2beens/fitlog/internal/fitlog/notify"
	"github.com/2beens/fitlog/internal/fitlog/reports"
	"github.com/2beens/fitlog/internal/fitlog/types"
	"github.com/2beens/fitlog/internal/middleware"
	"github.com/2beens/fitlog/internal/telemetry/metrics"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config   *config.Config
	dbPool   *pgxpool.Pool
	notifier *notify.Notifier

	entriesRepo *entries.Repo
	typesRepo   *types.Repo
	analyzer    *reports.Analyzer
	reportCache *reports.Cache

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
}

type NewServerParams struct {
	Config         *config.Config
	VersionInfo    string
	TracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		TracingEnabled: params.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("fitlog", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	notifier := notify.NewNotifier()
	entriesRepo := entries.NewRepo(dbPool, notifier)
	typesRepo := types.NewRepo(dbPool, notifier)

	if err := typesRepo.SeedDefaults(ctx); err != nil {
		return nil, fmt.Errorf("seed default workout types: %w", err)
	}

	analyzer := reports.NewAnalyzer(entriesRepo, typesRepo)
	reportCache := reports.NewCache(
		params.Config.ReportsCacheSizeBytes,
		params.Config.ReportsCacheTTLSecs,
		notifier,
	)

	return &Server{
		config:      params.Config,
		versionInfo: params.VersionInfo,
		dbPool:      dbPool,
		notifier:    notifier,

		entriesRepo: entriesRepo,
		typesRepo:   typesRepo,
		analyzer:    analyzer,
		reportCache: reportCache,

		metricsManager: metricsManager,
		promRegistry:   promRegistry,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("fitlog-router"))

	entriesHandler := entries.NewHandler(s.entriesRepo, s.metricsManager)
	r.HandleFunc("/entries", entriesHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-entry")
	r.HandleFunc("/entries", entriesHandler.HandleListBetween).Methods("GET", "OPTIONS").Name("list-entries")
	r.HandleFunc("/entries", entriesHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-entry")
	r.HandleFunc("/entries/{id}", entriesHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-entry")
	r.HandleFunc("/entries/{id}", entriesHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-entry")

	typesHandler := types.NewHandler(s.typesRepo)
	r.HandleFunc("/types", typesHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-type")
	r.HandleFunc("/types", typesHandler.HandleList).Methods("GET", "OPTIONS").Name("list-types")
	r.HandleFunc("/types", typesHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-type")
	r.HandleFunc("/types/{id}", typesHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-type")
	r.HandleFunc("/types/{id}", typesHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-type")

	reportsHandler := reports.NewHandler(s.analyzer, s.reportCache, s.metricsManager)
	r.HandleFunc("/reports/monthly", reportsHandler.HandleMonthly).Methods("GET", "OPTIONS").Name("monthly-report")
	r.HandleFunc("/reports/yearly", reportsHandler.HandleYearly).Methods("GET", "OPTIONS").Name("yearly-report")
	r.HandleFunc("/overview", reportsHandler.HandleOverview).Methods("GET", "OPTIONS").Name("overview")

	exportHandler := export.NewHandler(s.analyzer, export.Config{
		ShowDuration: s.config.ShowDuration,
		ShowCalories: s.config.ShowCalories,
	}, s.metricsManager)
	r.HandleFunc("/export/monthly/xlsx", exportHandler.HandleMonthlyXLSX).Methods("GET", "OPTIONS").Name("export-monthly-xlsx")
	r.HandleFunc("/export/yearly/xlsx", exportHandler.HandleYearlyXLSX).Methods("GET", "OPTIONS").Name("export-yearly-xlsx")
	r.HandleFunc("/export/monthly/pdf", exportHandler.HandleMonthlyPDF).Methods("GET", "OPTIONS").Name("export-monthly-pdf")
	r.HandleFunc("/export/yearly/pdf", exportHandler.HandleYearlyPDF).Methods("GET", "OPTIONS").Name("export-yearly-pdf")

	backupHandler := backup.NewHandler(
		backup.NewCodec(s.entriesRepo, s.typesRepo),
		s.metricsManager,
	)
	r.HandleFunc("/backup", backupHandler.HandleDump).Methods("GET", "OPTIONS").Name("backup-dump")
	r.HandleFunc("/backup/restore", backupHandler.HandleRestore).Methods("POST", "OPTIONS").Name("backup-restore")

	r.HandleFunc("/version", func(w http.ResponseWriter, _ *http.Request) {
		if _, err := w.Write([]byte(s.versionInfo)); err != nil {
			log.Errorf("failed to write version response: %s", err)
		}
	}).Methods("GET").Name("version")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("fitlog service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	s.reportCache.Close()
	log.Trace("report cache closed ...")

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
