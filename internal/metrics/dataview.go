package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Data view Prometheus metrics.
var (
	DataViewApplyDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "wareflow",
			Name:      "dataview_apply_duration_seconds",
			Help:      "Data view filter/sort/page computation time in seconds",
			Buckets:   []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.05},
		},
		[]string{"schema"},
	)

	DataViewFilteredRecords = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "wareflow",
			Name:      "dataview_filtered_records",
			Help:      "Number of records left after filtering",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
		},
		[]string{"schema"},
	)

	DataViewUnknownFieldsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wareflow",
			Name:      "dataview_unknown_fields_total",
			Help:      "Filter and sort keys not declared by the schema",
		},
		[]string{"schema", "kind"}, // "filter" / "sort"
	)

	BulkRecordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wareflow",
			Name:      "bulk_records_total",
			Help:      "Records touched by bulk actions",
		},
		[]string{"schema", "action"},
	)
)

var dataViewMetricsRegistered bool

// RegisterDataViewMetrics registers Prometheus data view metrics. Must be called once from main.
func RegisterDataViewMetrics() {
	if dataViewMetricsRegistered {
		return
	}
	prometheus.MustRegister(DataViewApplyDuration)
	prometheus.MustRegister(DataViewFilteredRecords)
	prometheus.MustRegister(DataViewUnknownFieldsTotal)
	prometheus.MustRegister(BulkRecordsTotal)
	dataViewMetricsRegistered = true
}

// DataViewObserver feeds engine measurements into the data view metrics.
type DataViewObserver struct{}

// ObserveApply records one Apply call.
func (DataViewObserver) ObserveApply(schema string, duration time.Duration, filtered int) {
	DataViewApplyDuration.WithLabelValues(schema).Observe(duration.Seconds())
	DataViewFilteredRecords.WithLabelValues(schema).Observe(float64(filtered))
}

// ObserveUnknownFields counts ignored or rejected field references.
func (DataViewObserver) ObserveUnknownFields(schema, kind string, count int) {
	DataViewUnknownFieldsTotal.WithLabelValues(schema, kind).Add(float64(count))
}

// ObserveBulk counts records touched by a bulk action.
func ObserveBulk(schema, action string, count int) {
	BulkRecordsTotal.WithLabelValues(schema, action).Add(float64(count))
}
