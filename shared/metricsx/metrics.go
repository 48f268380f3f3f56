package metricsx

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)
	httpLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	cropsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "crops_created_total",
			Help: "Total crops created.",
		},
	)
	pestsReported = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pest_issues_reported_total",
			Help: "Total pest issues reported.",
		},
	)
	harvestsRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "harvests_recorded_total",
			Help: "Total harvests recorded.",
		},
	)
	alertEmits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alert_emits_total",
			Help: "Best-effort alert emissions by outcome.",
		},
		[]string{"type", "outcome"},
	)
	wateringAlerts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "watering_alerts_emitted_total",
			Help: "Total watering-needed alerts emitted by the reminder worker.",
		},
	)
	kafkaConsumerLag = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "kafka_consumer_lag",
			Help: "Kafka consumer lag by topic.",
		},
		[]string{"topic", "group"},
	)
	influxWriteFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "influx_write_failures_total",
			Help: "Total InfluxDB write failures.",
		},
	)
	asynqQueueDepth = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "asynq_queue_depth",
			Help: "Asynq queue depth by queue.",
		},
		[]string{"queue"},
	)
)

func Register() {
	prometheus.MustRegister(
		httpRequests, httpLatency,
		cropsCreated, pestsReported, harvestsRecorded,
		alertEmits, wateringAlerts,
		kafkaConsumerLag, influxWriteFailures, asynqQueueDepth,
	)
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &statusResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(lrw, r)
		status := strconv.Itoa(lrw.statusCode)
		httpRequests.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpLatency.WithLabelValues(r.Method, r.URL.Path, status).Observe(time.Since(start).Seconds())
	})
}

func IncCropCreated() {
	cropsCreated.Inc()
}

func IncPestReported() {
	pestsReported.Inc()
}

func IncHarvestRecorded() {
	harvestsRecorded.Inc()
}

func IncAlertEmit(alertType string, ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "failed"
	}
	alertEmits.WithLabelValues(alertType, outcome).Inc()
}

func IncWateringAlert() {
	wateringAlerts.Inc()
}

func SetKafkaLag(topic string, group string, lag int64) {
	kafkaConsumerLag.WithLabelValues(topic, group).Set(float64(lag))
}

func IncInfluxWriteFailure() {
	influxWriteFailures.Inc()
}

func SetAsynqQueueDepth(queue string, depth int) {
	asynqQueueDepth.WithLabelValues(queue).Set(float64(depth))
}

type statusResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusResponseWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}
