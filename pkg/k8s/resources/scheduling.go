package resources

import (
	"maps"
	"slices"

	corev1 "k8s.io/api/core/v1"

	locustv1 "github.com/NVIDIA/locust-operator/pkg/api/v1"
)

// buildAffinity turns the key/value node affinity of a test into a single
// required node selector term. Expressions are ordered by key.
func buildAffinity(a *locustv1.LocustTestAffinity) *corev1.Affinity {
	if a == nil || a.NodeAffinity == nil {
		return nil
	}
	required := a.NodeAffinity.RequiredDuringSchedulingIgnoredDuringExecution
	if len(required) == 0 {
		return nil
	}

	exprs := make([]corev1.NodeSelectorRequirement, 0, len(required))
	for _, key := range slices.Sorted(maps.Keys(required)) {
		exprs = append(exprs, corev1.NodeSelectorRequirement{
			Key:      key,
			Operator: corev1.NodeSelectorOpIn,
			Values:   []string{required[key]},
		})
	}

	return &corev1.Affinity{
		NodeAffinity: &corev1.NodeAffinity{
			RequiredDuringSchedulingIgnoredDuringExecution: &corev1.NodeSelector{
				NodeSelectorTerms: []corev1.NodeSelectorTerm{
					{MatchExpressions: exprs},
				},
			},
		},
	}
}

// buildTolerations maps tolerations one to one. The value is only carried
// for the Equal operator.
func buildTolerations(in []locustv1.LocustTestToleration) []corev1.Toleration {
	if len(in) == 0 {
		return nil
	}
	out := make([]corev1.Toleration, 0, len(in))
	for _, t := range in {
		tol := corev1.Toleration{
			Key:      t.Key,
			Operator: corev1.TolerationOperator(t.Operator),
			Effect:   corev1.TaintEffect(t.Effect),
		}
		if t.Operator == locustv1.TolerationOpEqual {
			tol.Value = t.Value
		}
		out = append(out, tol)
	}
	return out
}
