package metrics

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/diillson/aws-finops-report-go/internal/domain/entity"
	"github.com/diillson/aws-finops-report-go/internal/domain/repository"
)

const namespace = "aws_finops_report"

// Recorder guarda as métricas das execuções num registry próprio.
// Um *Recorder nil é válido e ignora todas as chamadas.
type Recorder struct {
	registry       *prometheus.Registry
	pushgatewayURL string
	jobName        string

	runs        *prometheus.CounterVec
	duration    prometheus.Histogram
	lastSuccess prometheus.Gauge
	periodCost  *prometheus.GaugeVec
}

// NewRecorder registra as métricas num registry novo.
func NewRecorder(pushgatewayURL, jobName string) *Recorder {
	registry := prometheus.NewRegistry()

	r := &Recorder{
		registry:       registry,
		pushgatewayURL: strings.TrimSpace(pushgatewayURL),
		jobName:        jobName,
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Total number of report runs by outcome.",
			},
			[]string{"status"},
		),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of report runs in seconds.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful report run.",
		}),
		periodCost: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "period_cost_dollars",
				Help:      "Amortized cost of the latest period per account and granularity.",
			},
			[]string{"account", "granularity"},
		),
	}

	registry.MustRegister(r.runs, r.duration, r.lastSuccess, r.periodCost)
	return r
}

var _ repository.MetricsRecorder = (*Recorder)(nil)

// ObserveRun records one run outcome.
func (r *Recorder) ObserveRun(success bool, duration time.Duration) {
	if r == nil {
		return
	}
	status := "error"
	if success {
		status = "success"
		r.lastSuccess.SetToCurrentTime()
	}
	r.runs.WithLabelValues(status).Inc()
	r.duration.Observe(duration.Seconds())
}

// ObserveTable publica o último período da tabela para cada conta presente.
func (r *Recorder) ObserveTable(table entity.CombinedTable) {
	if r == nil || len(table.Rows) == 0 {
		return
	}
	last := table.Rows[len(table.Rows)-1]
	granularity := strings.ToLower(string(table.Granularity))
	if last.Central.Present {
		r.periodCost.WithLabelValues(entity.CentralAccount, granularity).Set(last.Central.Amount.InexactFloat64())
	}
	if last.Tenants.Present {
		r.periodCost.WithLabelValues(entity.TenantsAccount, granularity).Set(last.Tenants.Amount.InexactFloat64())
	}
}

// Push envia o registry ao Pushgateway; sem URL configurada não faz nada.
func (r *Recorder) Push(ctx context.Context) error {
	if r == nil || r.pushgatewayURL == "" {
		return nil
	}
	return push.New(r.pushgatewayURL, r.jobName).Gatherer(r.registry).PushContext(ctx)
}

// Handler expõe o registry para scraping em /metrics.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
