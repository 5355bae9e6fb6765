package resources

import (
	"log/slog"
	"slices"
	"strconv"
	"strings"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"

	"github.com/NVIDIA/locust-operator/pkg/config"
	"github.com/NVIDIA/locust-operator/pkg/loadgen"
)

func (b *Builder) loadGenContainer(node loadgen.Node) corev1.Container {
	overrides := b.workerResources
	if node.IsMaster() {
		overrides = b.masterResources
	}

	return corev1.Container{
		Name:            node.Name,
		Image:           node.Image,
		ImagePullPolicy: corev1.PullPolicy(node.ImagePullPolicy),
		Args:            slices.Clone(node.Command),
		Ports:           containerPorts(node.Ports),
		Env:             b.kafkaEnv(),
		Resources:       requirements(overrides),
		VolumeMounts:    volumeMounts(node),
	}
}

func (b *Builder) exporterContainer() corev1.Container {
	return corev1.Container{
		Name:            ExporterContainerName,
		Image:           b.exporter.Image,
		ImagePullPolicy: corev1.PullPolicy(b.exporter.PullPolicy),
		Ports:           containerPorts([]int32{b.exporter.Port}),
		Env: []corev1.EnvVar{
			{Name: exporterURIEnv, Value: exporterTargetURI},
			{Name: exporterListenEnv, Value: ":" + portString(b.exporter.Port)},
		},
		Resources: requirements(b.exporter.Resources),
	}
}

// kafkaEnv returns the Kafka connection variables sorted by name.
func (b *Builder) kafkaEnv() []corev1.EnvVar {
	k := b.kafka
	env := []corev1.EnvVar{
		{Name: kafkaBootstrapServers, Value: k.BootstrapServers},
		{Name: kafkaSecurityEnabled, Value: strconv.FormatBool(k.SecurityEnabled)},
		{Name: kafkaSecurityProtocol, Value: k.SecurityProtocol},
		{Name: kafkaSaslMechanism, Value: k.SaslMechanism},
		{Name: kafkaSaslJaasConfig, Value: k.SaslJaasConfig},
		{Name: kafkaUsername, Value: k.Username},
		{Name: kafkaPassword, Value: k.Password},
	}
	slices.SortFunc(env, func(a, b corev1.EnvVar) int {
		return strings.Compare(a.Name, b.Name)
	})
	return env
}

func containerPorts(ports []int32) []corev1.ContainerPort {
	out := make([]corev1.ContainerPort, 0, len(ports))
	for _, p := range ports {
		out = append(out, corev1.ContainerPort{ContainerPort: p})
	}
	return out
}

func volumeMounts(node loadgen.Node) []corev1.VolumeMount {
	var mounts []corev1.VolumeMount
	if node.ConfigMap != "" {
		mounts = append(mounts, corev1.VolumeMount{
			Name:      node.Name,
			MountPath: TestScriptMountPath,
		})
	}
	if node.LibConfigMap != "" {
		mounts = append(mounts, corev1.VolumeMount{
			Name:      libVolumeName,
			MountPath: LibMountPath,
		})
	}
	return mounts
}

// requirements converts overrides into resource requirements. Blank or
// unparsable values leave their key out.
func requirements(o config.ResourceOverrides) corev1.ResourceRequirements {
	return corev1.ResourceRequirements{
		Requests: resourceList(o.CPURequest, o.MemRequest, o.EphemeralRequest),
		Limits:   resourceList(o.CPULimit, o.MemLimit, o.EphemeralLimit),
	}
}

func resourceList(cpu, mem, ephemeral string) corev1.ResourceList {
	list := corev1.ResourceList{}
	add := func(name corev1.ResourceName, raw string) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return
		}
		q, err := resource.ParseQuantity(raw)
		if err != nil {
			slog.Warn("skipping invalid resource quantity",
				"resource", name, "value", raw, "error", err)
			return
		}
		list[name] = q
	}
	add(corev1.ResourceCPU, cpu)
	add(corev1.ResourceMemory, mem)
	add(corev1.ResourceEphemeralStorage, ephemeral)
	if len(list) == 0 {
		return nil
	}
	return list
}

func portString(p int32) string {
	return strconv.FormatInt(int64(p), 10)
}
