package controller

import (
	"time"

	"golang.org/x/time/rate"
	"k8s.io/client-go/util/workqueue"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"
)

const (
	baseRetryDelay = 5 * time.Millisecond
	maxRetryDelay  = 1000 * time.Second
)

// newRateLimiter returns the larger of a per-item exponential backoff and
// an overall token bucket of qps with burst.
func newRateLimiter(qps float64, burst int) workqueue.TypedRateLimiter[reconcile.Request] {
	return workqueue.NewTypedMaxOfRateLimiter(
		workqueue.NewTypedItemExponentialFailureRateLimiter[reconcile.Request](baseRetryDelay, maxRetryDelay),
		&workqueue.TypedBucketRateLimiter[reconcile.Request]{
			Limiter: rate.NewLimiter(rate.Limit(qps), burst),
		},
	)
}
