package telemetry

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// Provider is an in-process metric pipeline: an SDK meter provider whose
// data is pulled on demand through a manual reader.
type Provider struct {
	mp     *sdkmetric.MeterProvider
	reader *sdkmetric.ManualReader
}

// NewProvider creates a provider. Call Install to make it the global one.
func NewProvider() *Provider {
	reader := sdkmetric.NewManualReader()
	return &Provider{
		mp:     sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)),
		reader: reader,
	}
}

// Install sets p as the global meter provider.
func (p *Provider) Install() {
	otel.SetMeterProvider(p.mp)
}

// Meter returns a meter from p without touching the global provider.
func (p *Provider) Meter() metric.Meter {
	return p.mp.Meter(instrumentationName)
}

// Count is the cumulative value of one counter for one attribute value.
type Count struct {
	Metric string
	Attr   string // key=value, empty for unattributed points
	Value  int64
}

// Counts collects every int64 sum recorded so far, sorted by metric then
// attribute.
func (p *Provider) Counts(ctx context.Context) ([]Count, error) {
	var rm metricdata.ResourceMetrics
	if err := p.reader.Collect(ctx, &rm); err != nil {
		return nil, fmt.Errorf("collecting metrics: %w", err)
	}
	var out []Count
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				out = append(out, Count{Metric: m.Name, Attr: attrString(dp.Attributes), Value: dp.Value})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Metric != out[j].Metric {
			return out[i].Metric < out[j].Metric
		}
		return out[i].Attr < out[j].Attr
	})
	return out, nil
}

func attrString(set attribute.Set) string {
	kvs := set.ToSlice()
	parts := make([]string, len(kvs))
	for i, kv := range kvs {
		parts[i] = string(kv.Key) + "=" + kv.Value.Emit()
	}
	return strings.Join(parts, ",")
}

// FormatCounts renders counts one per line.
func FormatCounts(counts []Count) string {
	var sb strings.Builder
	for _, c := range counts {
		fmt.Fprintf(&sb, "  %-13s %-26s %d\n", c.Metric, c.Attr, c.Value)
	}
	return sb.String()
}

// Shutdown flushes and stops the provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	if err := p.mp.Shutdown(ctx); err != nil {
		return fmt.Errorf("meter provider shutdown: %w", err)
	}
	return nil
}
