package loadgen

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	locustv1 "github.com/NVIDIA/locust-operator/pkg/api/v1"
	"github.com/NVIDIA/locust-operator/pkg/config"
)

// Deriver turns a LocustTest into per-role Nodes.
type Deriver struct {
	ttl                  *int32
	affinityInjection    bool
	tolerationsInjection bool
}

// NewDeriver resolves the process-wide settings derivation depends on.
// It fails when the configured ttlSecondsAfterFinished is malformed.
func NewDeriver(cfg *config.Config) (*Deriver, error) {
	ttl, err := cfg.ResolveTTL()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve ttlSecondsAfterFinished: %w", err)
	}
	return &Deriver{
		ttl:                  ttl,
		affinityInjection:    cfg.AffinityInjectionEnabled(),
		tolerationsInjection: cfg.TolerationsInjectionEnabled(),
	}, nil
}

// Derive builds the Node for role from test.
func (d *Deriver) Derive(test *locustv1.LocustTest, role Role) Node {
	spec := &test.Spec
	node := Node{
		Name:                    NodeName(test.Name, role),
		Labels:                  roleMap(spec.Labels, role),
		Annotations:             roleMap(spec.Annotations, role),
		Affinity:                d.affinity(spec),
		Tolerations:             d.tolerations(spec),
		TTLSecondsAfterFinished: d.ttlCopy(),
		Command:                 Command(test, role),
		Role:                    role,
		Image:                   spec.Image,
		ImagePullPolicy:         spec.ImagePullPolicy,
		ImagePullSecrets:        slices.Clone(spec.ImagePullSecrets),
		Replicas:                replicas(spec, role),
		Ports:                   Ports(role),
		ConfigMap:               spec.ConfigMap,
		LibConfigMap:            spec.LibConfigMap,
	}

	slog.Debug("derived load generation node",
		"test", test.Name,
		"namespace", test.Namespace,
		"node", node.Name,
		"role", role,
		"replicas", node.Replicas,
		"ports", node.Ports,
		"command", strings.Join(node.Command, " "),
	)

	return node
}

// NodeName returns the name shared by a role's Job, Service and container.
// Dots are not allowed in these names, so they become dashes.
func NodeName(testName string, role Role) string {
	return strings.ReplaceAll(fmt.Sprintf("%s-%s", testName, role), ".", "-")
}

// Command builds the container args for role.
func Command(test *locustv1.LocustTest, role Role) []string {
	var cmd string
	if role == RoleMaster {
		cmd = fmt.Sprintf(masterCommandTemplate,
			test.Spec.MasterCommandSeed, masterPorts[0], test.Spec.WorkerReplicas)
	} else {
		cmd = fmt.Sprintf(workerCommandTemplate,
			test.Spec.WorkerCommandSeed, masterPorts[0], NodeName(test.Name, RoleMaster))
	}
	return splitArgs(cmd)
}

// Ports returns the container ports of role. The slice is a fresh copy.
func Ports(role Role) []int32 {
	if role == RoleMaster {
		return slices.Clone(masterPorts)
	}
	return []int32{WorkerPort}
}

// splitArgs splits on single spaces. Trailing empty tokens are dropped,
// interior ones are kept.
func splitArgs(cmd string) []string {
	args := strings.Split(cmd, argSeparator)
	for len(args) > 0 && args[len(args)-1] == "" {
		args = args[:len(args)-1]
	}
	return args
}

func replicas(spec *locustv1.LocustTestSpec, role Role) int32 {
	if role == RoleMaster {
		return MasterReplicaCount
	}
	return spec.WorkerReplicas
}

func roleMap(byRole map[string]map[string]string, role Role) map[string]string {
	out := map[string]string{}
	maps.Copy(out, byRole[string(role)])
	return out
}

func (d *Deriver) affinity(spec *locustv1.LocustTestSpec) *locustv1.LocustTestAffinity {
	if !d.affinityInjection {
		return nil
	}
	return spec.Affinity.DeepCopy()
}

func (d *Deriver) tolerations(spec *locustv1.LocustTestSpec) []locustv1.LocustTestToleration {
	if !d.tolerationsInjection {
		return nil
	}
	return slices.Clone(spec.Tolerations)
}

func (d *Deriver) ttlCopy() *int32 {
	if d.ttl == nil {
		return nil
	}
	v := *d.ttl
	return &v
}
