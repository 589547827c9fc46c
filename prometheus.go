package tpcc

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusListener exports transaction outcomes and latencies. It is
// attached to the measurements when `prometheus.address` is set.
type PrometheusListener struct {
	registry     *prometheus.Registry
	transactions *prometheus.CounterVec
	retries      *prometheus.CounterVec
	latency      *prometheus.HistogramVec
}

func NewPrometheusListener() *PrometheusListener {
	object := &PrometheusListener{
		registry: prometheus.NewRegistry(),
		transactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tpcc",
			Name:      "transactions_total",
			Help:      "Transactions by profile and outcome.",
		}, []string{"profile", "status"}),
		retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tpcc",
			Name:      "retries_total",
			Help:      "Retries after transient database errors.",
		}, []string{"profile"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tpcc",
			Name:      "transaction_duration_seconds",
			Help:      "Transaction latency including retries.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 16),
		}, []string{"profile"}),
	}
	object.registry.MustRegister(object.transactions, object.retries, object.latency)
	return object
}

func (self *PrometheusListener) OnTransaction(r *TransactionRecord) {
	self.transactions.WithLabelValues(r.Profile, r.Status.String()).Inc()
	if r.Retries > 0 {
		self.retries.WithLabelValues(r.Profile).Add(float64(r.Retries))
	}
	self.latency.WithLabelValues(r.Profile).Observe(r.Latency.Seconds())
}

func (self *PrometheusListener) Handler() http.Handler {
	return promhttp.HandlerFor(self.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on address until ctx is done.
func (self *PrometheusListener) Serve(ctx context.Context, address string) error {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return errors.Wrapf(err, "fail to listen on %s", address)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", self.Handler())
	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()
	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			Errorf("metrics server stopped, error: %s", err)
		}
	}()
	Infof("serving metrics on http://%s/metrics", listener.Addr())
	return nil
}
