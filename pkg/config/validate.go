package config

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/distribution/reference"
	"k8s.io/apimachinery/pkg/api/resource"

	operrors "github.com/NVIDIA/locust-operator/pkg/errors"
)

// supportedPullPolicies are the image pull policies Kubernetes accepts.
var supportedPullPolicies = []string{"Always", "IfNotPresent", "Never"}

// Validate checks every value that would otherwise only fail at apply time.
func (c *Config) Validate() error {
	if _, err := c.ResolveTTL(); err != nil {
		return err
	}

	for name, r := range map[string]ResourceOverrides{
		"pod":             c.podResources,
		"master":          c.masterResources,
		"worker":          c.workerResources,
		"metricsExporter": c.exporter.Resources,
	} {
		if err := validateResources(name, r); err != nil {
			return err
		}
	}

	if c.exporter.Image == "" {
		return operrors.New(operrors.ErrCodeInvalidConfig, "metrics exporter image is required")
	}
	if _, err := reference.ParseNormalizedNamed(c.exporter.Image); err != nil {
		return operrors.WrapWithContext(operrors.ErrCodeInvalidConfig,
			"invalid metrics exporter image reference", err,
			map[string]any{"image": c.exporter.Image})
	}

	if err := validatePullPolicy(c.exporter.PullPolicy); err != nil {
		return err
	}

	if c.exporter.Port < 1 || c.exporter.Port > 65535 {
		return operrors.WrapWithContext(operrors.ErrCodeInvalidConfig,
			"metrics exporter port out of range", nil,
			map[string]any{"port": c.exporter.Port})
	}

	if c.controller.MaxConcurrentReconciles < 1 {
		return operrors.New(operrors.ErrCodeInvalidConfig, "maxConcurrentReconciles must be at least 1")
	}
	if c.controller.QueueQPS <= 0 || c.controller.QueueBurst < 1 {
		return operrors.New(operrors.ErrCodeInvalidConfig, "queue QPS and burst must be positive")
	}

	return nil
}

func validateResources(target string, r ResourceOverrides) error {
	fields := []struct {
		name  string
		value string
	}{
		{"cpuRequest", r.CPURequest},
		{"memRequest", r.MemRequest},
		{"ephemeralRequest", r.EphemeralRequest},
		{"cpuLimit", r.CPULimit},
		{"memLimit", r.MemLimit},
		{"ephemeralLimit", r.EphemeralLimit},
	}
	for _, f := range fields {
		if isBlank(f.value) {
			continue
		}
		if _, err := resource.ParseQuantity(strings.TrimSpace(f.value)); err != nil {
			return operrors.WrapWithContext(operrors.ErrCodeInvalidConfig,
				fmt.Sprintf("invalid %s quantity for %s", f.name, target), err,
				map[string]any{"value": f.value})
		}
	}
	return nil
}

func validatePullPolicy(policy string) error {
	for _, p := range supportedPullPolicies {
		if p == policy {
			return nil
		}
	}
	msg := fmt.Sprintf("unsupported image pull policy %q, supported values: %v", policy, supportedPullPolicies)
	if s := suggest(policy, supportedPullPolicies); s != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", s)
	}
	return operrors.New(operrors.ErrCodeInvalidConfig, msg)
}

// suggest returns the candidate closest to s, or "" when nothing is close.
func suggest(s string, candidates []string) string {
	best, bestDist := "", 4
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(strings.ToLower(s), strings.ToLower(c))
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
