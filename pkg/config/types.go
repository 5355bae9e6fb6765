package config

// ResourceOverrides are Kubernetes quantity strings for one container.
// A blank field is omitted from the generated requirements.
type ResourceOverrides struct {
	CPURequest       string `yaml:"cpuRequest"`
	MemRequest       string `yaml:"memRequest"`
	EphemeralRequest string `yaml:"ephemeralRequest"`
	CPULimit         string `yaml:"cpuLimit"`
	MemLimit         string `yaml:"memLimit"`
	EphemeralLimit   string `yaml:"ephemeralLimit"`
}

// mergedOver returns base with every non-blank field of o applied on top.
func (o ResourceOverrides) mergedOver(base ResourceOverrides) ResourceOverrides {
	pick := func(override, fallback string) string {
		if isBlank(override) {
			return fallback
		}
		return override
	}
	return ResourceOverrides{
		CPURequest:       pick(o.CPURequest, base.CPURequest),
		MemRequest:       pick(o.MemRequest, base.MemRequest),
		EphemeralRequest: pick(o.EphemeralRequest, base.EphemeralRequest),
		CPULimit:         pick(o.CPULimit, base.CPULimit),
		MemLimit:         pick(o.MemLimit, base.MemLimit),
		EphemeralLimit:   pick(o.EphemeralLimit, base.EphemeralLimit),
	}
}

// KafkaSettings are injected as environment variables into every
// load generation container.
type KafkaSettings struct {
	BootstrapServers string `yaml:"bootstrapServers"`
	SecurityEnabled  bool   `yaml:"securityEnabled"`
	SecurityProtocol string `yaml:"securityProtocol"`
	SaslMechanism    string `yaml:"saslMechanism"`
	SaslJaasConfig   string `yaml:"saslJaasConfig"`
	Username         string `yaml:"username"`
	Password         string `yaml:"password"`
}

// ExporterSettings configure the metrics exporter sidecar of the master pod.
type ExporterSettings struct {
	Image      string            `yaml:"image"`
	Port       int32             `yaml:"port"`
	PullPolicy string            `yaml:"pullPolicy"`
	Resources  ResourceOverrides `yaml:"resources"`
}

// ControllerSettings tune the controller runtime hosting the reconciler.
type ControllerSettings struct {
	MaxConcurrentReconciles int     `yaml:"maxConcurrentReconciles"`
	QueueQPS                float64 `yaml:"queueQPS"`
	QueueBurst              int     `yaml:"queueBurst"`
	MetricsBindAddress      string  `yaml:"metricsBindAddress"`
	HealthProbeBindAddress  string  `yaml:"healthProbeBindAddress"`
	LeaderElection          bool    `yaml:"leaderElection"`
	LeaderElectionID        string  `yaml:"leaderElectionID"`
}

// fileConfig is the on-disk layout of the configuration file.
type fileConfig struct {
	Kafka     KafkaSettings `yaml:"kafka"`
	Resources struct {
		Pod    ResourceOverrides `yaml:"pod"`
		Master ResourceOverrides `yaml:"master"`
		Worker ResourceOverrides `yaml:"worker"`
	} `yaml:"resources"`
	MetricsExporter         ExporterSettings `yaml:"metricsExporter"`
	TTLSecondsAfterFinished string           `yaml:"ttlSecondsAfterFinished"`
	Features                struct {
		AffinityInjection    bool `yaml:"affinityInjection"`
		TolerationsInjection bool `yaml:"tolerationsInjection"`
	} `yaml:"features"`
	Controller ControllerSettings `yaml:"controller"`
}
