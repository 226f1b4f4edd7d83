package instrumentation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestZeroValueMetricsIsNoOp(t *testing.T) {
	m := &Metrics{}
	ctx := context.Background()

	// Must not panic when instrumentation is disabled
	m.RecordHTTPRequest(ctx, "GET", "/", 200, time.Millisecond)
	m.RecordStoreOperation(ctx, "list", StatusSuccess, time.Millisecond)
	m.RecordAuth(ctx, "sign_in", StatusError)
	m.RecordTokenRefresh(ctx, StatusSuccess)
	m.IncrementActiveSessions(ctx)
	m.DecrementActiveSessions(ctx)
}

func TestMetricsRecording(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	m, err := NewMetrics(provider.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordStoreOperation(ctx, "insert", StatusSuccess, 20*time.Millisecond)
	m.RecordStoreOperation(ctx, "insert", StatusError, 5*time.Millisecond)
	m.RecordAuth(ctx, "sign_in", StatusSuccess)
	m.IncrementActiveSessions(ctx)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.NotEmpty(t, rm.ScopeMetrics)

	names := map[string]bool{}
	for _, sm := range rm.ScopeMetrics {
		for _, metric := range sm.Metrics {
			names[metric.Name] = true
		}
	}

	assert.True(t, names["store_operations_total"])
	assert.True(t, names["store_operation_duration_seconds"])
	assert.True(t, names["auth_total"])
	assert.True(t, names["active_sessions"])
}

func TestProviderDisabled(t *testing.T) {
	config := DefaultConfig()
	config.Enabled = false

	provider, err := NewProvider(context.Background(), config)
	require.NoError(t, err)

	assert.False(t, provider.Enabled())
	require.NotNil(t, provider.Metrics())

	// Tracer is a noop but usable
	_, span := provider.Tracer("test").Start(context.Background(), "op")
	span.End()

	assert.NoError(t, provider.Shutdown(context.Background()))
}
