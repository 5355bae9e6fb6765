package reconciler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	locustv1 "github.com/NVIDIA/locust-operator/pkg/api/v1"
	"github.com/NVIDIA/locust-operator/pkg/config"
	"github.com/NVIDIA/locust-operator/pkg/k8s/client"
	"github.com/NVIDIA/locust-operator/pkg/k8s/manage"
	"github.com/NVIDIA/locust-operator/pkg/k8s/resources"
	"github.com/NVIDIA/locust-operator/pkg/loadgen"
)

// Action is what a reconcile did.
type Action string

const (
	ActionCreate     Action = "create"
	ActionSkipUpdate Action = "skip-update"
	ActionCleanup    Action = "cleanup"
)

// Step names used in logs and metrics.
const (
	StepCreateMasterService = "create-master-service"
	StepCreateMasterJob     = "create-master-job"
	StepCreateWorkerJob     = "create-worker-job"
	StepDeleteMasterService = "delete-master-service"
	StepDeleteMasterJob     = "delete-master-job"
	StepDeleteWorkerJob     = "delete-worker-job"
)

// Result reports the outcome of one event. Failed steps were logged and
// skipped; the caller is never asked to requeue.
type Result struct {
	ID          string
	Action      Action
	FailedSteps []string
}

// Failed reports whether any step failed.
func (r Result) Failed() bool {
	return len(r.FailedSteps) > 0
}

// Reconciler handles LocustTest create, update and delete events.
type Reconciler struct {
	deriver *loadgen.Deriver
	creator *manage.CreationManager
	deleter *manage.DeletionManager
}

// New builds a Reconciler from process configuration. It fails when the
// configuration cannot be resolved.
func New(cfg *config.Config, factory client.Factory) (*Reconciler, error) {
	deriver, err := loadgen.NewDeriver(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create node deriver: %w", err)
	}
	return &Reconciler{
		deriver: deriver,
		creator: manage.NewCreationManager(factory, resources.NewBuilder(cfg)),
		deleter: manage.NewDeletionManager(factory),
	}, nil
}

// OnUpsert handles a create or update event.
func (r *Reconciler) OnUpsert(ctx context.Context, test *locustv1.LocustTest) Result {
	res := Result{ID: uuid.NewString()}
	start := time.Now()

	log := slog.With(
		"reconcile_id", res.ID,
		"test", test.Name,
		"namespace", test.Namespace,
		"generation", test.Generation)

	if test.Generation > 1 {
		res.Action = ActionSkipUpdate
		log.Info("update operations are not supported, ignoring event")
		r.record(res, start)
		return res
	}

	res.Action = ActionCreate
	log.Info("creating load test resources",
		"image", test.Spec.Image,
		"workers", test.Spec.WorkerReplicas)

	master := r.deriver.Derive(test, loadgen.RoleMaster)
	worker := r.deriver.Derive(test, loadgen.RoleWorker)

	if err := r.creator.CreateMasterService(ctx, master, test.Namespace); err != nil {
		res.FailedSteps = append(res.FailedSteps, StepCreateMasterService)
	}
	if err := r.creator.CreateJob(ctx, master, test.Namespace, test.Name); err != nil {
		res.FailedSteps = append(res.FailedSteps, StepCreateMasterJob)
	}
	if err := r.creator.CreateJob(ctx, worker, test.Namespace, test.Name); err != nil {
		res.FailedSteps = append(res.FailedSteps, StepCreateWorkerJob)
	}

	r.record(res, start)
	log.Info("load test resources applied",
		"failed_steps", res.FailedSteps,
		"duration", time.Since(start))
	return res
}

// OnDelete handles a delete event.
func (r *Reconciler) OnDelete(ctx context.Context, test *locustv1.LocustTest) Result {
	res := Result{ID: uuid.NewString(), Action: ActionCleanup}
	start := time.Now()

	log := slog.With(
		"reconcile_id", res.ID,
		"test", test.Name,
		"namespace", test.Namespace)
	log.Info("cleaning up load test resources")

	if len(r.deleter.DeleteService(ctx, test, loadgen.RoleMaster)) == 0 {
		res.FailedSteps = append(res.FailedSteps, StepDeleteMasterService)
	}
	if len(r.deleter.DeleteJob(ctx, test, loadgen.RoleMaster)) == 0 {
		res.FailedSteps = append(res.FailedSteps, StepDeleteMasterJob)
	}
	if len(r.deleter.DeleteJob(ctx, test, loadgen.RoleWorker)) == 0 {
		res.FailedSteps = append(res.FailedSteps, StepDeleteWorkerJob)
	}

	r.record(res, start)
	log.Info("load test cleanup finished",
		"failed_steps", res.FailedSteps,
		"duration", time.Since(start))
	return res
}

func (r *Reconciler) record(res Result, start time.Time) {
	reconcileTotal.WithLabelValues(string(res.Action)).Inc()
	reconcileDuration.WithLabelValues(string(res.Action)).Observe(time.Since(start).Seconds())
	for _, step := range res.FailedSteps {
		stepFailuresTotal.WithLabelValues(step).Inc()
	}
}
