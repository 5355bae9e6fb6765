package manage

import (
	"context"
	"log/slog"

	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"

	locustv1 "github.com/NVIDIA/locust-operator/pkg/api/v1"
	"github.com/NVIDIA/locust-operator/pkg/defaults"
	"github.com/NVIDIA/locust-operator/pkg/k8s/client"
	"github.com/NVIDIA/locust-operator/pkg/loadgen"
)

// DeletionManager removes the objects of a test.
type DeletionManager struct {
	factory client.Factory
}

// NewDeletionManager returns a DeletionManager using factory for API access.
func NewDeletionManager(factory client.Factory) *DeletionManager {
	return &DeletionManager{factory: factory}
}

// DeleteJob deletes the Job of role in the test's namespace. The result is
// empty when the delete failed.
func (m *DeletionManager) DeleteJob(ctx context.Context, test *locustv1.LocustTest, role loadgen.Role) []metav1.Status {
	name := loadgen.NodeName(test.Name, role)
	namespace := test.Namespace

	slog.Info("deleting job", "job", name, "namespace", namespace, "test", test.Name)

	ctx, cancel := context.WithTimeout(ctx, defaults.KubeAPITimeout)
	defer cancel()

	cs, err := m.factory.NewClient()
	if err != nil {
		slog.Error("failed to obtain kubernetes client", "job", name, "error", err)
		return nil
	}

	err = cs.BatchV1().Jobs(namespace).Delete(ctx, name, metav1.DeleteOptions{
		PropagationPolicy: ptr.To(metav1.DeletePropagationBackground),
	})
	if err != nil {
		slog.Error("failed to delete job",
			"job", name,
			"namespace", namespace,
			"error", err)
		return nil
	}

	slog.Info("job deleted", "job", name, "namespace", namespace)
	return successStatus(name, batchv1.GroupName, "jobs")
}

// DeleteService deletes the Service of role in the test's namespace. The
// result is empty when the delete failed.
func (m *DeletionManager) DeleteService(ctx context.Context, test *locustv1.LocustTest, role loadgen.Role) []metav1.Status {
	name := loadgen.NodeName(test.Name, role)
	namespace := test.Namespace

	slog.Info("deleting service", "service", name, "namespace", namespace, "test", test.Name)

	ctx, cancel := context.WithTimeout(ctx, defaults.KubeAPITimeout)
	defer cancel()

	cs, err := m.factory.NewClient()
	if err != nil {
		slog.Error("failed to obtain kubernetes client", "service", name, "error", err)
		return nil
	}

	if err := cs.CoreV1().Services(namespace).Delete(ctx, name, metav1.DeleteOptions{}); err != nil {
		slog.Error("failed to delete service",
			"service", name,
			"namespace", namespace,
			"error", err)
		return nil
	}

	slog.Info("service deleted", "service", name, "namespace", namespace)
	return successStatus(name, corev1.GroupName, "services")
}

func successStatus(name, group, kind string) []metav1.Status {
	return []metav1.Status{{
		Status: metav1.StatusSuccess,
		Details: &metav1.StatusDetails{
			Name:  name,
			Group: group,
			Kind:  kind,
		},
	}}
}
