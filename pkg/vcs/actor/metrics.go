package actor

import (
	"context"
	"time"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

var (
	keyOperation = tag.MustNewKey("operation")

	mRequestCount = stats.Int64("upsilon/vcs/requests",
		"number of requests serviced by the worker", stats.UnitDimensionless)

	mRequestFailures = stats.Int64("upsilon/vcs/request_failures",
		"number of requests answered with a native error", stats.UnitDimensionless)

	mRequestTiming = stats.Float64("upsilon/vcs/timing",
		"request service time in milliseconds", stats.UnitMilliseconds)
)

// RegisterViews registers the opencensus views for the actor package.
// Callers pick their own exporter; registration is optional and
// metrics recording is a no-op without it.
func RegisterViews() error {
	return view.Register(
		&view.View{
			Name:        "upsilon/vcs/requests",
			Description: "requests serviced, by operation",
			Measure:     mRequestCount,
			TagKeys:     []tag.Key{keyOperation},
			Aggregation: view.Count(),
		},
		&view.View{
			Name:        "upsilon/vcs/request_failures",
			Description: "requests answered with a native error, by operation",
			Measure:     mRequestFailures,
			TagKeys:     []tag.Key{keyOperation},
			Aggregation: view.Count(),
		},
		&view.View{
			Name:        "upsilon/vcs/timing",
			Description: "request service time distribution, by operation",
			Measure:     mRequestTiming,
			TagKeys:     []tag.Key{keyOperation},
			Aggregation: view.Distribution(1, 5, 10, 50, 100, 500, 1000, 5000),
		},
	)
}

// recordRequest feeds the request measures for one serviced operation
func recordRequest(op string, start time.Time, failed bool) {
	ms := float64(time.Since(start).Nanoseconds()) / 1e6
	mutators := []tag.Mutator{tag.Upsert(keyOperation, op)}
	measurements := []stats.Measurement{
		mRequestCount.M(1),
		mRequestTiming.M(ms),
	}
	if failed {
		measurements = append(measurements, mRequestFailures.M(1))
	}
	_ = stats.RecordWithTags(context.Background(), mutators, measurements...)
}
