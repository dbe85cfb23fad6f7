// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DirectoryLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rma_directory_lookups_total",
			Help: "Total number of directory lookups by result",
		},
		[]string{"result"},
	)

	CreatesCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rma_creates_completed_total",
			Help: "Total number of RMA records appended to the register",
		},
	)

	CreatesFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rma_creates_failed_total",
			Help: "Total number of failed RMA creation passes",
		},
		[]string{"error_code"},
	)

	CreatesDeclined = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rma_creates_declined_total",
			Help: "Total number of passes aborted at the confirmation gate",
		},
	)

	CreateDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "rma_create_duration_seconds",
			Help: "Duration of a full RMA creation pass in seconds",
		},
	)

	StoreAppendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "rma_store_append_duration_seconds",
			Help: "Duration of the workbook scan-allocate-append-save step in seconds",
		},
	)
)
