package resources

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/NVIDIA/locust-operator/pkg/loadgen"
)

// BuildService returns the Service fronting the master node. The web UI
// port is not exposed.
func (b *Builder) BuildService(node loadgen.Node) *corev1.Service {
	ports := make([]corev1.ServicePort, 0, len(node.Ports)+1)
	for _, p := range node.Ports {
		if p == loadgen.WebUIPort {
			continue
		}
		ports = append(ports, corev1.ServicePort{
			Name:     fmt.Sprintf("%s%d", servicePortPrefix, p),
			Protocol: corev1.ProtocolTCP,
			Port:     p,
		})
	}
	ports = append(ports, corev1.ServicePort{
		Name:     MetricsPortName,
		Protocol: corev1.ProtocolTCP,
		Port:     b.exporter.Port,
	})

	return &corev1.Service{
		TypeMeta: metav1.TypeMeta{
			APIVersion: corev1.SchemeGroupVersion.String(),
			Kind:       "Service",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name: node.Name,
		},
		Spec: corev1.ServiceSpec{
			Selector: map[string]string{LabelPodName: node.Name},
			Ports:    ports,
		},
	}
}
