package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	operrors "github.com/NVIDIA/locust-operator/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LookupFunc resolves an environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// Load builds a Config from defaults, the optional YAML file at path and the
// process environment, then validates it.
func Load(path string) (*Config, error) {
	return LoadWithLookup(path, os.LookupEnv)
}

// LoadWithLookup is Load with an explicit environment lookup.
func LoadWithLookup(path string, lookup LookupFunc) (*Config, error) {
	fc := toFileConfig(NewConfig())

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, operrors.WrapWithContext(operrors.ErrCodeInvalidConfig,
				"failed to read config file", err, map[string]any{"path": path})
		}
		if err := yaml.Unmarshal(data, fc); err != nil {
			return nil, operrors.WrapWithContext(operrors.ErrCodeInvalidConfig,
				"failed to parse config file", err, map[string]any{"path": path})
		}
		slog.Debug("loaded config file", "path", path)
	}

	if err := applyEnv(fc, lookup); err != nil {
		return nil, err
	}

	cfg := fromFileConfig(fc)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func toFileConfig(c *Config) *fileConfig {
	fc := &fileConfig{
		Kafka:                   c.kafka,
		MetricsExporter:         c.exporter,
		TTLSecondsAfterFinished: c.ttlSecondsAfterFinished,
		Controller:              c.controller,
	}
	fc.Resources.Pod = c.podResources
	fc.Resources.Master = c.masterResources
	fc.Resources.Worker = c.workerResources
	fc.Features.AffinityInjection = c.affinityInjection
	fc.Features.TolerationsInjection = c.tolerationsInjection
	return fc
}

func fromFileConfig(fc *fileConfig) *Config {
	return NewConfig(
		WithKafka(fc.Kafka),
		WithPodResources(fc.Resources.Pod),
		WithMasterResources(fc.Resources.Master),
		WithWorkerResources(fc.Resources.Worker),
		WithMetricsExporter(fc.MetricsExporter),
		WithTTLSecondsAfterFinished(fc.TTLSecondsAfterFinished),
		WithAffinityInjection(fc.Features.AffinityInjection),
		WithTolerationsInjection(fc.Features.TolerationsInjection),
		WithController(fc.Controller),
	)
}

// resourceEnv binds the six resource variables sharing prefix to r.
func resourceEnv(prefix string, r *ResourceOverrides) map[string]*string {
	return map[string]*string{
		prefix + "CPU_REQUEST":       &r.CPURequest,
		prefix + "MEM_REQUEST":       &r.MemRequest,
		prefix + "EPHEMERAL_REQUEST": &r.EphemeralRequest,
		prefix + "CPU_LIMIT":         &r.CPULimit,
		prefix + "MEM_LIMIT":         &r.MemLimit,
		prefix + "EPHEMERAL_LIMIT":   &r.EphemeralLimit,
	}
}

func applyEnv(fc *fileConfig, lookup LookupFunc) error {
	strs := map[string]*string{
		"KAFKA_BOOTSTRAP_SERVERS":            &fc.Kafka.BootstrapServers,
		"KAFKA_SECURITY_PROTOCOL_CONFIG":     &fc.Kafka.SecurityProtocol,
		"KAFKA_SASL_MECHANISM":               &fc.Kafka.SaslMechanism,
		"KAFKA_SASL_JAAS_CONFIG":             &fc.Kafka.SaslJaasConfig,
		"KAFKA_USERNAME":                     &fc.Kafka.Username,
		"KAFKA_PASSWORD":                     &fc.Kafka.Password,
		"METRICS_EXPORTER_IMAGE":             &fc.MetricsExporter.Image,
		"METRICS_EXPORTER_IMAGE_PULL_POLICY": &fc.MetricsExporter.PullPolicy,
		"JOB_TTL_SECONDS_AFTER_FINISHED":     &fc.TTLSecondsAfterFinished,
	}
	for _, group := range []map[string]*string{
		resourceEnv("POD_", &fc.Resources.Pod),
		resourceEnv("MASTER_POD_", &fc.Resources.Master),
		resourceEnv("WORKER_POD_", &fc.Resources.Worker),
		resourceEnv("METRICS_EXPORTER_", &fc.MetricsExporter.Resources),
	} {
		for k, v := range group {
			strs[k] = v
		}
	}

	for key, dst := range strs {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	bools := map[string]*bool{
		"KAFKA_SECURITY_ENABLED":                &fc.Kafka.SecurityEnabled,
		"ENABLE_AFFINITY_CR_INJECTION":          &fc.Features.AffinityInjection,
		"ENABLE_TAINT_TOLERATIONS_CR_INJECTION": &fc.Features.TolerationsInjection,
	}
	for key, dst := range bools {
		v, ok := lookup(key)
		if !ok || v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return operrors.WrapWithContext(operrors.ErrCodeInvalidConfig,
				fmt.Sprintf("%s must be a boolean", key), err, map[string]any{"value": v})
		}
		*dst = b
	}

	if v, ok := lookup("METRICS_EXPORTER_PORT"); ok && v != "" {
		port, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return operrors.WrapWithContext(operrors.ErrCodeInvalidConfig,
				"METRICS_EXPORTER_PORT must be an integer", err, map[string]any{"value": v})
		}
		fc.MetricsExporter.Port = int32(port)
	}

	return nil
}
