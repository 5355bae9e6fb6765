package manage

import (
	"context"
	"fmt"
	"log/slog"

	batchv1 "k8s.io/api/batch/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/NVIDIA/locust-operator/pkg/defaults"
	operrors "github.com/NVIDIA/locust-operator/pkg/errors"
	"github.com/NVIDIA/locust-operator/pkg/k8s/client"
	"github.com/NVIDIA/locust-operator/pkg/k8s/resources"
	"github.com/NVIDIA/locust-operator/pkg/loadgen"
)

// CreationManager submits Jobs and Services for load generation nodes.
type CreationManager struct {
	factory client.Factory
	builder *resources.Builder
}

// NewCreationManager returns a CreationManager using factory for API access.
func NewCreationManager(factory client.Factory, builder *resources.Builder) *CreationManager {
	return &CreationManager{factory: factory, builder: builder}
}

// CreateJob creates the Job of node in namespace, replacing an existing Job
// of the same name.
func (m *CreationManager) CreateJob(ctx context.Context, node loadgen.Node, namespace, testName string) error {
	job := m.builder.BuildJob(node, testName)
	job.Namespace = namespace

	slog.Info("creating job",
		"job", job.Name,
		"namespace", namespace,
		"test", testName,
		"parallelism", node.Replicas)

	ctx, cancel := context.WithTimeout(ctx, defaults.KubeAPITimeout)
	defer cancel()

	cs, err := m.factory.NewClient()
	if err != nil {
		slog.Error("failed to obtain kubernetes client", "job", job.Name, "error", err)
		return operrors.Wrap(operrors.ErrCodeUnavailable, "failed to obtain kubernetes client", err)
	}

	if err := createOrReplaceJob(ctx, cs, job); err != nil {
		slog.Error("failed to create job",
			"job", job.Name,
			"namespace", namespace,
			"error", err)
		return err
	}

	slog.Info("job applied", "job", job.Name, "namespace", namespace)
	return nil
}

// CreateMasterService creates the Service fronting the master node.
func (m *CreationManager) CreateMasterService(ctx context.Context, node loadgen.Node, namespace string) error {
	svc := m.builder.BuildService(node)
	svc.Namespace = namespace

	slog.Info("creating service", "service", svc.Name, "namespace", namespace)

	ctx, cancel := context.WithTimeout(ctx, defaults.KubeAPITimeout)
	defer cancel()

	cs, err := m.factory.NewClient()
	if err != nil {
		slog.Error("failed to obtain kubernetes client", "service", svc.Name, "error", err)
		return operrors.Wrap(operrors.ErrCodeUnavailable, "failed to obtain kubernetes client", err)
	}

	if _, err := cs.CoreV1().Services(namespace).Create(ctx, svc, metav1.CreateOptions{}); err != nil {
		slog.Error("failed to create service",
			"service", svc.Name,
			"namespace", namespace,
			"error", err)
		return fmt.Errorf("failed to create service %s/%s: %w", namespace, svc.Name, err)
	}

	slog.Info("service created", "service", svc.Name, "namespace", namespace)
	return nil
}

func createOrReplaceJob(ctx context.Context, cs kubernetes.Interface, job *batchv1.Job) error {
	jobs := cs.BatchV1().Jobs(job.Namespace)

	_, err := jobs.Create(ctx, job, metav1.CreateOptions{})
	if ignoreAlreadyExists(err) != nil {
		return fmt.Errorf("failed to create job %s/%s: %w", job.Namespace, job.Name, err)
	}
	if err == nil {
		return nil
	}

	slog.Debug("job exists, replacing", "job", job.Name, "namespace", job.Namespace)

	live, err := jobs.Get(ctx, job.Name, metav1.GetOptions{})
	if err != nil {
		return fmt.Errorf("failed to get existing job %s/%s: %w", job.Namespace, job.Name, err)
	}

	carryOverSystemFields(job, live)

	if _, err := jobs.Update(ctx, job, metav1.UpdateOptions{}); err != nil {
		return fmt.Errorf("failed to replace job %s/%s: %w", job.Namespace, job.Name, err)
	}
	return nil
}

// carryOverSystemFields copies the fields the API server assigned to live
// into desired so an update is accepted.
func carryOverSystemFields(desired, live *batchv1.Job) {
	desired.ResourceVersion = live.ResourceVersion
	desired.UID = live.UID

	if live.Spec.Selector != nil {
		desired.Spec.Selector = live.Spec.Selector.DeepCopy()
	}
	if live.Spec.ManualSelector != nil {
		v := *live.Spec.ManualSelector
		desired.Spec.ManualSelector = &v
	}

	if desired.Spec.Template.Labels == nil {
		desired.Spec.Template.Labels = map[string]string{}
	}
	for k, v := range live.Spec.Template.Labels {
		if _, ok := desired.Spec.Template.Labels[k]; !ok {
			desired.Spec.Template.Labels[k] = v
		}
	}
}

// ignoreAlreadyExists returns nil if the error is "already exists", otherwise returns the error.
func ignoreAlreadyExists(err error) error {
	if apierrors.IsAlreadyExists(err) {
		return nil
	}
	return err
}
