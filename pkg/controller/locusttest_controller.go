package controller

import (
	"context"
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	crcontroller "sigs.k8s.io/controller-runtime/pkg/controller"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"
	"sigs.k8s.io/controller-runtime/pkg/log"

	locustv1 "github.com/NVIDIA/locust-operator/pkg/api/v1"
	"github.com/NVIDIA/locust-operator/pkg/config"
	"github.com/NVIDIA/locust-operator/pkg/reconciler"
)

// CleanupFinalizer holds a LocustTest until its Jobs and Service are deleted.
const CleanupFinalizer = "locust.io/cleanup"

// Handler receives LocustTest lifecycle events.
type Handler interface {
	OnUpsert(ctx context.Context, test *locustv1.LocustTest) reconciler.Result
	OnDelete(ctx context.Context, test *locustv1.LocustTest) reconciler.Result
}

// LocustTestReconciler adapts a Handler to controller-runtime.
type LocustTestReconciler struct {
	client.Client
	Handler  Handler
	Settings config.ControllerSettings
}

// +kubebuilder:rbac:groups=locust.io,resources=locusttests,verbs=get;list;watch;update;patch
// +kubebuilder:rbac:groups=batch,resources=jobs,verbs=get;list;watch;create;update;delete
// +kubebuilder:rbac:groups="",resources=services,verbs=get;list;watch;create;delete

func (r *LocustTestReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	logger := log.FromContext(ctx)

	test := &locustv1.LocustTest{}
	if err := r.Get(ctx, req.NamespacedName, test); err != nil {
		if apierrors.IsNotFound(err) {
			logger.V(1).Info("LocustTest is gone, nothing to do")
			return ctrl.Result{}, nil
		}
		return ctrl.Result{}, fmt.Errorf("unable to get LocustTest - %w", err)
	}

	if !test.DeletionTimestamp.IsZero() {
		if !controllerutil.ContainsFinalizer(test, CleanupFinalizer) {
			return ctrl.Result{}, nil
		}

		res := r.Handler.OnDelete(ctx, test)
		logger.Info("LocustTest cleaned up", "reconcileID", res.ID, "failedSteps", res.FailedSteps)

		controllerutil.RemoveFinalizer(test, CleanupFinalizer)
		if err := r.Update(ctx, test); err != nil {
			return ctrl.Result{}, fmt.Errorf("failed to remove finalizer - %w", err)
		}
		return ctrl.Result{}, nil
	}

	if controllerutil.AddFinalizer(test, CleanupFinalizer) {
		if err := r.Update(ctx, test); err != nil {
			return ctrl.Result{}, fmt.Errorf("failed to add finalizer - %w", err)
		}
	}

	res := r.Handler.OnUpsert(ctx, test)
	logger.Info("LocustTest reconciled",
		"reconcileID", res.ID,
		"action", res.Action,
		"failedSteps", res.FailedSteps)

	return ctrl.Result{}, nil
}

// SetupWithManager registers the reconciler with mgr.
func (r *LocustTestReconciler) SetupWithManager(mgr ctrl.Manager) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&locustv1.LocustTest{}).
		WithEventFilter(lifecyclePredicate()).
		WithOptions(crcontroller.Options{
			MaxConcurrentReconciles: r.Settings.MaxConcurrentReconciles,
			RateLimiter:             newRateLimiter(r.Settings.QueueQPS, r.Settings.QueueBurst),
		}).
		Complete(r)
}
