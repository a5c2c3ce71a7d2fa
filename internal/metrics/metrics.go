package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Calculations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linearpanel_calculations_total",
		Help: "Completed calculation requests by tool.",
	}, []string{"tool"})

	Reports = promauto.NewCounter(prometheus.CounterOpts{
		Name: "linearpanel_reports_total",
		Help: "Generated PDF reports.",
	})

	ArchiveExports = promauto.NewCounter(prometheus.CounterOpts{
		Name: "linearpanel_archive_exports_total",
		Help: "Exported xlsx archives.",
	})

	ArchiveImports = promauto.NewCounter(prometheus.CounterOpts{
		Name: "linearpanel_archive_imports_total",
		Help: "Imported xlsx archives.",
	})
)
