package resources

import (
	"maps"

	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"

	"github.com/NVIDIA/locust-operator/pkg/config"
	"github.com/NVIDIA/locust-operator/pkg/loadgen"
)

// Builder renders Nodes into Jobs and Services.
type Builder struct {
	kafka           config.KafkaSettings
	masterResources config.ResourceOverrides
	workerResources config.ResourceOverrides
	exporter        config.ExporterSettings
}

// NewBuilder captures the settings of cfg needed for rendering.
func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{
		kafka:           cfg.Kafka(),
		masterResources: cfg.MasterPodResources(),
		workerResources: cfg.WorkerPodResources(),
		exporter:        cfg.MetricsExporter(),
	}
}

// BuildJob returns the Job running node. The namespace is left unset.
func (b *Builder) BuildJob(node loadgen.Node, testName string) *batchv1.Job {
	return &batchv1.Job{
		TypeMeta: metav1.TypeMeta{
			APIVersion: batchv1.SchemeGroupVersion.String(),
			Kind:       "Job",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name: node.Name,
		},
		Spec: batchv1.JobSpec{
			TTLSecondsAfterFinished: node.TTLSecondsAfterFinished,
			Parallelism:             ptr.To(node.Replicas),
			BackoffLimit:            ptr.To[int32](0),
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{
					Labels:      b.podLabels(node, testName),
					Annotations: b.podAnnotations(node),
				},
				Spec: b.podSpec(node),
			},
		},
	}
}

func (b *Builder) podLabels(node loadgen.Node, testName string) map[string]string {
	labels := make(map[string]string, len(node.Labels)+3)
	maps.Copy(labels, node.Labels)
	labels[LabelTestName] = testName
	labels[LabelPodName] = node.Name
	labels[LabelManagedBy] = ManagedByValue
	return labels
}

func (b *Builder) podAnnotations(node loadgen.Node) map[string]string {
	annotations := make(map[string]string, len(node.Annotations)+3)
	maps.Copy(annotations, node.Annotations)
	annotations[AnnotationScrape] = "true"
	annotations[AnnotationPath] = metricsPath
	annotations[AnnotationPort] = portString(b.exporter.Port)
	return annotations
}

func (b *Builder) podSpec(node loadgen.Node) corev1.PodSpec {
	containers := []corev1.Container{b.loadGenContainer(node)}
	if node.IsMaster() {
		containers = append(containers, b.exporterContainer())
	}

	return corev1.PodSpec{
		Affinity:         buildAffinity(node.Affinity),
		Tolerations:      buildTolerations(node.Tolerations),
		ImagePullSecrets: pullSecrets(node.ImagePullSecrets),
		RestartPolicy:    corev1.RestartPolicyNever,
		Containers:       containers,
		Volumes:          volumes(node),
	}
}

func pullSecrets(names []string) []corev1.LocalObjectReference {
	if len(names) == 0 {
		return nil
	}
	refs := make([]corev1.LocalObjectReference, 0, len(names))
	for _, name := range names {
		refs = append(refs, corev1.LocalObjectReference{Name: name})
	}
	return refs
}

func volumes(node loadgen.Node) []corev1.Volume {
	var vols []corev1.Volume
	if node.ConfigMap != "" {
		vols = append(vols, configMapVolume(node.Name, node.ConfigMap))
	}
	if node.LibConfigMap != "" {
		vols = append(vols, configMapVolume(libVolumeName, node.LibConfigMap))
	}
	return vols
}

func configMapVolume(name, configMap string) corev1.Volume {
	return corev1.Volume{
		Name: name,
		VolumeSource: corev1.VolumeSource{
			ConfigMap: &corev1.ConfigMapVolumeSource{
				LocalObjectReference: corev1.LocalObjectReference{Name: configMap},
			},
		},
	}
}
