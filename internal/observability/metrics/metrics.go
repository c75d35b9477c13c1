package metrics

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success                  Outcome       = "success"
	Error                    Outcome       = "error"
	MetricRequestTimeout     time.Duration = 5 * time.Second
	MetricRequestIdleTimeout time.Duration = 10 * time.Second
)

func (O Outcome) String() string {
	return string(O)
}

var defaultHistogramBucketsSeconds = []float64{0.1, 0.5, 1, 2.5, 5, 10, 30}

// Collectors are created eagerly so recording works before Init, they are
// only exposed once registered.
var (
	once          sync.Once
	metricsRouter *chi.Mux

	// client requests are the ones sending to other service
	clientRequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "client_request_duration_seconds",
			Help:    "Histogram of outgoing client request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"baseurl", "method", "path", "status"},
	)

	bankClientLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bank_client_latency_seconds",
			Help:    "Histogram of bank client durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "status"},
	)

	queueSendErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "queue_send_error_count",
			Help: "The total number of errors when sending messages to the queue",
		},
	)

	pollerDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "poller_duration_seconds",
			Help:    "Histogram of poller durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"type", "status"},
	)

	pollerLastSuccessGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "poller_last_success_timestamp_seconds",
			Help: "Unix time of the last successful run per poller",
		},
		[]string{"type"},
	)

	operationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ledger_operation_duration_seconds",
			Help:    "Ledger operation duration in seconds split by operation and error code.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"operation", "status", "code"},
	)

	custodyBalanceGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "custody_balance",
			Help: "Last custody balance observed per asset",
		},
		[]string{"asset"},
	)

	totalPrincipalGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "total_staked_principal",
			Help: "Sum of principal over all stake records",
		},
	)

	stakersGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "stakers_count",
			Help: "Number of accounts holding at least one stake record",
		},
	)

	insolvencyCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "custody_insolvency_count",
			Help: "Number of solvency checks where custody was below liabilities",
		},
		[]string{"asset"},
	)

	dbLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "db_latency_seconds",
			Help: "DB latency in seconds splitted by method and execution status",
		},
		[]string{"method", "status"},
	)
)

// Init initializes the metrics package.
func Init(metricsPort int) {
	once.Do(func() {
		initMetricsRouter(metricsPort)
		registerMetrics()
	})
}

// initMetricsRouter initializes the metrics router.
func initMetricsRouter(metricsPort int) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	// Create a custom server with timeout settings
	metricsAddr := fmt.Sprintf(":%d", metricsPort)
	server := &http.Server{
		Addr:         metricsAddr,
		Handler:      metricsRouter,
		ReadTimeout:  MetricRequestTimeout,
		WriteTimeout: MetricRequestTimeout,
		IdleTimeout:  MetricRequestIdleTimeout,
	}

	// Start the server in a separate goroutine
	go func() {
		log.Printf("Starting metrics server on %s", metricsAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msgf("Error starting metrics server on %s", metricsAddr)
		}
	}()
}

// registerMetrics registers the Prometheus metrics.
func registerMetrics() {
	prometheus.MustRegister(
		clientRequestDurationHistogram,
		bankClientLatency,
		queueSendErrorCounter,
		pollerDurationHistogram,
		pollerLastSuccessGauge,
		operationDuration,
		custodyBalanceGauge,
		totalPrincipalGauge,
		stakersGauge,
		insolvencyCounter,
		dbLatency,
	)
}

func outcome(failure bool) Outcome {
	if failure {
		return Error
	}
	return Success
}

func RecordBankClientLatency(d time.Duration, method string, failure bool) {
	bankClientLatency.WithLabelValues(method, outcome(failure).String()).Observe(d.Seconds())
}

func RecordDbLatency(d time.Duration, method string, failure bool) {
	dbLatency.WithLabelValues(method, outcome(failure).String()).Observe(d.Seconds())
}

// RecordOperation records a ledger operation. code is empty on success.
func RecordOperation(d time.Duration, operation, code string) {
	operationDuration.WithLabelValues(operation, outcome(code != "").String(), code).Observe(d.Seconds())
}

func RecordCustodyBalance(asset string, balance float64) {
	custodyBalanceGauge.WithLabelValues(asset).Set(balance)
}

func RecordTotalPrincipal(total float64) {
	totalPrincipalGauge.Set(total)
}

func RecordStakersCount(count int) {
	stakersGauge.Set(float64(count))
}

func IncInsolvency(asset string) {
	insolvencyCounter.WithLabelValues(asset).Inc()
}

// StartClientRequestDurationTimer starts a timer to measure outgoing client request duration.
func StartClientRequestDurationTimer(baseUrl, method, path string) func(statusCode int) {
	startTime := time.Now()
	return func(statusCode int) {
		duration := time.Since(startTime).Seconds()
		clientRequestDurationHistogram.WithLabelValues(
			baseUrl,
			method,
			path,
			fmt.Sprintf("%d", statusCode),
		).Observe(duration)
	}
}

func RecordQueueSendError() {
	queueSendErrorCounter.Inc()
}
