package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ParsingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "npmlens_parsing_seconds",
		Help:    "Time spent parsing a source or declaration file.",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})

	ParseFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "npmlens_parse_failures_total",
		Help: "Total number of files skipped due to read or syntax errors.",
	}, []string{"kind"})

	ResolutionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "npmlens_resolution_seconds",
		Help:    "Time spent resolving one symbol signature.",
		Buckets: prometheus.DefBuckets,
	})

	ResolutionStrategyHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "npmlens_resolution_strategy_hits_total",
		Help: "Resolutions satisfied per search strategy.",
	}, []string{"strategy"})

	ResolutionMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "npmlens_resolution_misses_total",
		Help: "Total number of resolutions that exhausted every strategy.",
	})

	ResolutionHopLimitTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "npmlens_resolution_hop_limit_total",
		Help: "Total number of import chains abandoned at the hop limit.",
	})

	ExploredModules = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "npmlens_explored_modules_total",
		Help: "Number of modules found in the most recent package exploration.",
	})

	RegistryRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "npmlens_registry_requests_total",
		Help: "Total number of registry HTTP requests by outcome.",
	}, []string{"outcome"})

	RegistryDownloadBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "npmlens_registry_download_bytes_total",
		Help: "Total tarball bytes downloaded from the registry.",
	})

	CacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "npmlens_cache_hits_total",
		Help: "Package cache lookups by outcome.",
	}, []string{"outcome"})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "npmlens_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})
)
