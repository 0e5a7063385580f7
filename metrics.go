package tetraquery

import (
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	kindLabel      = "kind"
	loaderLabel    = "loader"
	eventTypeLabel = "event_type"
	errTypeLabel   = "error_type"
)

var (
	queries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tetraquery_queries_total",
		Help: "The number of selector queries run, by selector kind.",
	}, []string{
		kindLabel,
	})

	raycasts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tetraquery_raycasts_total",
		Help: "The number of ray-casts performed for pointer events.",
	})

	raycastCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tetraquery_raycast_cache_hits_total",
		Help: "The number of pointer events served from the ray-cast cache.",
	})

	callbackFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tetraquery_callback_failures_total",
		Help: "The number of event callbacks that panicked.",
	}, []string{
		eventTypeLabel,
	})

	geometryLoadLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "tetraquery_geometry_load_seconds",
		Help: "The time taken by geometry loaders.",
	}, []string{
		loaderLabel,
	})

	geometryLoadErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tetraquery_geometry_load_errors_total",
		Help: "The errors that occurred while loading geometry.",
	}, []string{
		loaderLabel,
		errTypeLabel,
	})
)

func instrumentQuery(kind string) {
	queries.With(prometheus.Labels{
		kindLabel: kind,
	}).Inc()
}

func instrumentCallbackFailure(t EventType) {
	callbackFailures.With(prometheus.Labels{
		eventTypeLabel: string(t),
	}).Inc()
}

func instrumentGeometryLoad(loader string, start time.Time) {
	geometryLoadLatency.With(prometheus.Labels{
		loaderLabel: loader,
	}).Observe(time.Since(start).Seconds())
}

func instrumentGeometryLoadError(loader string, err error) {
	geometryLoadErrors.
		With(prometheus.Labels{
			loaderLabel:  loader,
			errTypeLabel: errors.Type(err),
		}).
		Inc()
}
