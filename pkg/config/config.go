package config

import (
	"log/slog"
	"strconv"
	"strings"

	operrors "github.com/NVIDIA/locust-operator/pkg/errors"
)

const (
	DefaultExporterImage      = "containersol/locust_exporter:v0.5.0"
	DefaultExporterPort int32 = 9646
	DefaultExporterPolicy     = "Always"

	DefaultMaxConcurrentReconciles = 1
	DefaultQueueQPS                = 10
	DefaultQueueBurst              = 100
	DefaultMetricsBindAddress      = ":8080"
	DefaultHealthProbeBindAddress  = ":8081"
	DefaultLeaderElectionID        = "locust-operator.locust.io"
)

// Config is the immutable process configuration. Use NewConfig or Load.
type Config struct {
	kafka                   KafkaSettings
	podResources            ResourceOverrides
	masterResources         ResourceOverrides
	workerResources         ResourceOverrides
	exporter                ExporterSettings
	ttlSecondsAfterFinished string
	affinityInjection       bool
	tolerationsInjection    bool
	controller              ControllerSettings
}

// Option mutates a Config under construction.
type Option func(*Config)

// NewConfig returns a Config with defaults, then applies opts in order.
func NewConfig(opts ...Option) *Config {
	c := &Config{
		kafka: KafkaSettings{
			BootstrapServers: "localhost:9092",
			SecurityProtocol: "SASL_PLAINTEXT",
			SaslMechanism:    "SCRAM-SHA-512",
		},
		podResources: ResourceOverrides{
			CPURequest:       "250m",
			MemRequest:       "128Mi",
			EphemeralRequest: "30M",
			CPULimit:         "1000m",
			MemLimit:         "1024Mi",
			EphemeralLimit:   "50M",
		},
		exporter: ExporterSettings{
			Image:      DefaultExporterImage,
			Port:       DefaultExporterPort,
			PullPolicy: DefaultExporterPolicy,
			Resources: ResourceOverrides{
				CPURequest:       "250m",
				MemRequest:       "128Mi",
				EphemeralRequest: "30M",
				CPULimit:         "1000m",
				MemLimit:         "1024Mi",
				EphemeralLimit:   "50M",
			},
		},
		controller: ControllerSettings{
			MaxConcurrentReconciles: DefaultMaxConcurrentReconciles,
			QueueQPS:                DefaultQueueQPS,
			QueueBurst:              DefaultQueueBurst,
			MetricsBindAddress:      DefaultMetricsBindAddress,
			HealthProbeBindAddress:  DefaultHealthProbeBindAddress,
			LeaderElectionID:        DefaultLeaderElectionID,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithKafka sets the Kafka settings injected into load generation pods.
func WithKafka(k KafkaSettings) Option {
	return func(c *Config) { c.kafka = k }
}

// WithPodResources sets the unified load generation container resources.
func WithPodResources(r ResourceOverrides) Option {
	return func(c *Config) { c.podResources = r }
}

// WithMasterResources sets master-only resource overrides.
func WithMasterResources(r ResourceOverrides) Option {
	return func(c *Config) { c.masterResources = r }
}

// WithWorkerResources sets worker-only resource overrides.
func WithWorkerResources(r ResourceOverrides) Option {
	return func(c *Config) { c.workerResources = r }
}

// WithMetricsExporter sets the metrics exporter sidecar settings.
func WithMetricsExporter(e ExporterSettings) Option {
	return func(c *Config) { c.exporter = e }
}

// WithTTLSecondsAfterFinished sets the raw TTL string. "" disables the TTL.
func WithTTLSecondsAfterFinished(raw string) Option {
	return func(c *Config) { c.ttlSecondsAfterFinished = raw }
}

// WithAffinityInjection toggles pass-through of CR node affinity.
func WithAffinityInjection(enabled bool) Option {
	return func(c *Config) { c.affinityInjection = enabled }
}

// WithTolerationsInjection toggles pass-through of CR tolerations.
func WithTolerationsInjection(enabled bool) Option {
	return func(c *Config) { c.tolerationsInjection = enabled }
}

// WithController sets the controller runtime tuning.
func WithController(s ControllerSettings) Option {
	return func(c *Config) { c.controller = s }
}

func (c *Config) Kafka() KafkaSettings { return c.kafka }

// PodResources returns the unified load generation container resources.
func (c *Config) PodResources() ResourceOverrides { return c.podResources }

// MasterPodResources returns the resources of the master load generation
// container: master overrides merged over the unified values.
func (c *Config) MasterPodResources() ResourceOverrides {
	return c.masterResources.mergedOver(c.podResources)
}

// WorkerPodResources returns the resources of worker containers.
func (c *Config) WorkerPodResources() ResourceOverrides {
	return c.workerResources.mergedOver(c.podResources)
}

func (c *Config) MetricsExporter() ExporterSettings { return c.exporter }

// TTLSecondsAfterFinished returns the raw configured TTL string.
func (c *Config) TTLSecondsAfterFinished() string { return c.ttlSecondsAfterFinished }

func (c *Config) AffinityInjectionEnabled() bool { return c.affinityInjection }

func (c *Config) TolerationsInjectionEnabled() bool { return c.tolerationsInjection }

func (c *Config) Controller() ControllerSettings { return c.controller }

// ResolveTTL parses the configured TTL. See ParseTTL.
func (c *Config) ResolveTTL() (*int32, error) {
	return ParseTTL(c.ttlSecondsAfterFinished)
}

// ParseTTL converts a raw ttlSecondsAfterFinished value.
// Blank input returns nil. Non-numeric or negative input is an error.
func ParseTTL(raw string) (*int32, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return nil, operrors.WrapWithContext(operrors.ErrCodeInvalidConfig,
			"ttlSecondsAfterFinished must be a non-negative integer", err,
			map[string]any{"value": raw})
	}
	if v < 0 {
		return nil, operrors.WrapWithContext(operrors.ErrCodeInvalidConfig,
			"ttlSecondsAfterFinished must be a non-negative integer", nil,
			map[string]any{"value": raw})
	}
	ttl := int32(v)
	return &ttl, nil
}

// LogValue implements slog.LogValuer. Kafka credentials are redacted.
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kafka_bootstrap_servers", c.kafka.BootstrapServers),
		slog.Bool("kafka_security_enabled", c.kafka.SecurityEnabled),
		slog.String("kafka_security_protocol", c.kafka.SecurityProtocol),
		slog.String("kafka_sasl_mechanism", c.kafka.SaslMechanism),
		slog.String("kafka_username", redact(c.kafka.Username)),
		slog.String("kafka_password", redact(c.kafka.Password)),
		slog.String("kafka_sasl_jaas_config", redact(c.kafka.SaslJaasConfig)),
		slog.Any("pod_resources", c.podResources),
		slog.String("exporter_image", c.exporter.Image),
		slog.Int("exporter_port", int(c.exporter.Port)),
		slog.String("ttl_seconds_after_finished", c.ttlSecondsAfterFinished),
		slog.Bool("affinity_injection", c.affinityInjection),
		slog.Bool("tolerations_injection", c.tolerationsInjection),
	)
}

func redact(s string) string {
	if s == "" {
		return ""
	}
	return "***"
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
