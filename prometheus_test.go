package tpcc

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hhkbp2/testify/require"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusListener(t *testing.T) {
	l := NewPrometheusListener()
	l.OnTransaction(&TransactionRecord{Profile: "NEW_ORDER", Latency: time.Millisecond, Status: StatusCommitted})
	l.OnTransaction(&TransactionRecord{Profile: "NEW_ORDER", Latency: time.Millisecond, Status: StatusAborted})
	l.OnTransaction(&TransactionRecord{Profile: "PAYMENT", Latency: time.Millisecond, Status: StatusFailed, Retries: 2})

	require.Equal(t, float64(1), testutil.ToFloat64(l.transactions.WithLabelValues("NEW_ORDER", "COMMITTED")))
	require.Equal(t, float64(1), testutil.ToFloat64(l.transactions.WithLabelValues("NEW_ORDER", "ABORTED")))
	require.Equal(t, float64(2), testutil.ToFloat64(l.retries.WithLabelValues("PAYMENT")))

	rec := httptest.NewRecorder()
	l.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()
	require.True(t, strings.Contains(body, "tpcc_transactions_total"))
	require.True(t, strings.Contains(body, "tpcc_transaction_duration_seconds_bucket"))
}
