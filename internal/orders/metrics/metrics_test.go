package metrics

import (
	"context"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	m, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics() failed: %v", err)
	}
	return m, reader
}

func findMetric(t *testing.T, reader *sdkmetric.ManualReader, name string) metricdata.Metrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect() failed: %v", err)
	}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m
			}
		}
	}
	t.Fatalf("metric %q not found", name)
	return metricdata.Metrics{}
}

func TestNewMetrics(t *testing.T) {
	m, _ := newTestMetrics(t)

	if m.ordersCreatedTotal == nil {
		t.Error("ordersCreatedTotal is nil")
	}
	if m.orderCreationDuration == nil {
		t.Error("orderCreationDuration is nil")
	}
	if m.orderTransitionsTotal == nil {
		t.Error("orderTransitionsTotal is nil")
	}
	if m.webhookRejectionsTotal == nil {
		t.Error("webhookRejectionsTotal is nil")
	}
}

func TestRecordOrderCreated(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordOrderCreated(ctx, true)
	m.RecordOrderCreated(ctx, false)

	md := findMetric(t, reader, "orders_created_total")
	sum, ok := md.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatal("expected Sum[int64] data type")
	}
	// One data point per status attribute value.
	if len(sum.DataPoints) != 2 {
		t.Errorf("expected 2 data points, got %d", len(sum.DataPoints))
	}
}

func TestRecordOrderCreationDuration(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordOrderCreationDuration(ctx, 0.25)
	m.RecordOrderCreationDuration(ctx, 1.5)

	md := findMetric(t, reader, "order_creation_duration_seconds")
	histogram, ok := md.Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatal("expected Histogram[float64] data type")
	}
	if len(histogram.DataPoints) != 1 {
		t.Fatalf("expected 1 data point, got %d", len(histogram.DataPoints))
	}
	if histogram.DataPoints[0].Count != 2 {
		t.Errorf("expected count=2, got %d", histogram.DataPoints[0].Count)
	}
}

func TestRecordTransition(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordTransition(ctx, "paid", true)
	m.RecordTransition(ctx, "paid", true)
	m.RecordTransition(ctx, "cancelled", false)

	md := findMetric(t, reader, "order_status_transitions_total")
	sum, ok := md.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatal("expected Sum[int64] data type")
	}
	if len(sum.DataPoints) != 2 {
		t.Errorf("expected 2 data points, got %d", len(sum.DataPoints))
	}

	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	if total != 3 {
		t.Errorf("expected total 3, got %d", total)
	}
}

func TestRecordWebhookRejected(t *testing.T) {
	m, reader := newTestMetrics(t)

	m.RecordWebhookRejected(context.Background())

	md := findMetric(t, reader, "payment_webhook_rejections_total")
	sum, ok := md.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatal("expected Sum[int64] data type")
	}
	if len(sum.DataPoints) != 1 || sum.DataPoints[0].Value != 1 {
		t.Errorf("expected a single data point with value 1, got %+v", sum.DataPoints)
	}
}
