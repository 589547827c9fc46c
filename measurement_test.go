package tpcc

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/hhkbp2/testify/require"
)

type bufferCloser struct {
	bytes.Buffer
	closed bool
}

func (self *bufferCloser) Close() error {
	self.closed = true
	return nil
}

type countingListener struct {
	records []*TransactionRecord
}

func (self *countingListener) OnTransaction(r *TransactionRecord) {
	self.records = append(self.records, r)
}

func TestStatusTypeString(t *testing.T) {
	require.Equal(t, "COMMITTED", StatusCommitted.String())
	require.Equal(t, "ABORTED", StatusAborted.String())
	require.Equal(t, "FAILED", StatusFailed.String())
	require.Equal(t, "RETRIED", StatusRetried.String())
}

func TestDefaultMeasurementsRecord(t *testing.T) {
	m, err := NewDefaultMeasurements(NewProperties())
	require.Nil(t, err)
	l := &countingListener{}
	m.AddListener(l)
	now := time.Now()
	m.Record(&TransactionRecord{Profile: "NEW_ORDER", Latency: 3 * time.Millisecond, Status: StatusCommitted, Timestamp: now})
	m.Record(&TransactionRecord{Profile: "NEW_ORDER", Latency: time.Millisecond, Status: StatusAborted, Timestamp: now})
	m.Record(&TransactionRecord{Profile: "PAYMENT", Latency: time.Millisecond, Status: StatusFailed, Retries: 3, Timestamp: now})

	require.Equal(t, int64(1), m.GetStatusCount("NEW_ORDER", StatusCommitted))
	require.Equal(t, int64(1), m.GetStatusCount("NEW_ORDER", StatusAborted))
	require.Equal(t, int64(0), m.GetStatusCount("NEW_ORDER", StatusFailed))
	require.Equal(t, int64(1), m.GetStatusCount("PAYMENT", StatusFailed))
	require.Equal(t, int64(3), m.GetStatusCount("PAYMENT", StatusRetried))
	require.Equal(t, int64(0), m.GetStatusCount("DELIVERY", StatusCommitted))
	require.Equal(t, []string{"NEW_ORDER", "PAYMENT"}, m.Operations())
	require.Len(t, l.records, 3)
	require.Contains(t, m.GetSummary(), "NEW_ORDER")
}

func TestUnknownMeasurementType(t *testing.T) {
	p := NewProperties()
	p.Add(PropertyMeasurementType, "timeseries")
	_, err := NewDefaultMeasurements(p)
	require.NotNil(t, err)
	require.True(t, IsConfigError(err))
}

func TestTextExporter(t *testing.T) {
	m, err := NewDefaultMeasurements(NewProperties())
	require.Nil(t, err)
	m.Record(&TransactionRecord{Profile: "DELIVERY", Latency: 2 * time.Millisecond, Status: StatusCommitted})
	w := &bufferCloser{}
	e, err := NewMeasurementExporter("TextMeasurementExporter", w)
	require.Nil(t, err)
	require.Nil(t, m.ExportMeasurements(e))
	require.Nil(t, e.Close())
	require.True(t, w.closed)
	out := w.String()
	require.Contains(t, out, "[DELIVERY], Operations, 1")
	require.Contains(t, out, "[DELIVERY], Return=COMMITTED, 1")
	require.Contains(t, out, "99thPercentileLatency(us)")
}

func TestJSONArrayExporter(t *testing.T) {
	w := &bufferCloser{}
	e, err := NewMeasurementExporter("JSONArrayMeasurementExporter", w)
	require.Nil(t, err)
	require.Nil(t, e.Write("OVERALL", "Throughput(ops/sec)", 12.5))
	require.Nil(t, e.Write("OVERALL", "tpmC", int64(700)))
	require.Nil(t, e.Close())
	var decoded []map[string]interface{}
	require.Nil(t, json.Unmarshal(w.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	require.Equal(t, "OVERALL", decoded[0]["metric"])
	require.Equal(t, "tpmC", decoded[1]["measurement"])
}

func TestJSONExporter(t *testing.T) {
	w := &bufferCloser{}
	e, err := NewMeasurementExporter("JSONMeasurementExporter", w)
	require.Nil(t, err)
	require.Nil(t, e.Write("OVERALL", "RunTime(ms)", int64(10)))
	require.Nil(t, e.Write("OVERALL", "Operations", int64(3)))
	require.Nil(t, e.Close())
	lines := strings.Split(strings.TrimSpace(w.String()), "\n")
	require.Len(t, lines, 2)
	_, err = NewMeasurementExporter("XMLMeasurementExporter", w)
	require.NotNil(t, err)
}

func TestRawMeasurement(t *testing.T) {
	out := &bytes.Buffer{}
	saved := OutputDest
	OutputDest = out
	defer func() { OutputDest = saved }()

	p := NewProperties()
	p.Add(PropertyMeasurementType, "hdrhistogram+raw")
	m, err := NewDefaultMeasurements(p)
	require.Nil(t, err)
	for i := 1; i <= 10; i++ {
		m.Record(&TransactionRecord{Profile: "STOCK_LEVEL", Latency: time.Duration(i) * time.Millisecond, Status: StatusCommitted})
	}
	require.Equal(t, int64(10), m.GetStatusCount("STOCK_LEVEL", StatusCommitted))
	w := &bufferCloser{}
	e := NewTextMeasurementExporter(w)
	require.Nil(t, m.ExportMeasurements(e))
	require.Nil(t, e.Close())
	require.Contains(t, w.String(), "[RawSTOCK_LEVEL], Total Operations, 10")
	require.Contains(t, w.String(), "[RawSTOCK_LEVEL], MaxLatency(us), 10000")
	require.Contains(t, out.String(), "RawSTOCK_LEVEL latency raw data")
}

func TestOrdinal(t *testing.T) {
	require.Equal(t, "1st", ordinal(1))
	require.Equal(t, "12th", ordinal(12))
	require.Equal(t, "95th", ordinal(95))
	require.Equal(t, "99th", ordinal(99))
	require.Equal(t, "22nd", ordinal(22))
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2024, 3, 9, 7, 5, 1, 0, time.UTC)
	require.Equal(t, "2024-03-09 07:05:01", FormatTime(ts))
}
