package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	operrors "github.com/NVIDIA/locust-operator/pkg/errors"
)

func lookupFrom(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "localhost:9092", cfg.Kafka().BootstrapServers)
	assert.False(t, cfg.Kafka().SecurityEnabled)
	assert.Equal(t, "1000m", cfg.PodResources().CPULimit)
	assert.Equal(t, DefaultExporterImage, cfg.MetricsExporter().Image)
	assert.Equal(t, DefaultExporterPort, cfg.MetricsExporter().Port)
	assert.Equal(t, "", cfg.TTLSecondsAfterFinished())
	assert.False(t, cfg.AffinityInjectionEnabled())
	assert.False(t, cfg.TolerationsInjectionEnabled())
	assert.Equal(t, DefaultMaxConcurrentReconciles, cfg.Controller().MaxConcurrentReconciles)
	assert.NoError(t, cfg.Validate())
}

func TestNewConfigWithOptions(t *testing.T) {
	cfg := NewConfig(
		WithTTLSecondsAfterFinished("120"),
		WithAffinityInjection(true),
		WithTolerationsInjection(true),
		WithKafka(KafkaSettings{BootstrapServers: "kafka:9093", SecurityEnabled: true}),
	)

	assert.Equal(t, "120", cfg.TTLSecondsAfterFinished())
	assert.True(t, cfg.AffinityInjectionEnabled())
	assert.True(t, cfg.TolerationsInjectionEnabled())
	assert.Equal(t, "kafka:9093", cfg.Kafka().BootstrapServers)
	assert.True(t, cfg.Kafka().SecurityEnabled)
}

func TestParseTTL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    *int32
		wantErr bool
	}{
		{name: "empty is absent", raw: ""},
		{name: "blank is absent", raw: "  "},
		{name: "numeric", raw: "120", want: int32Ptr(120)},
		{name: "zero", raw: "0", want: int32Ptr(0)},
		{name: "non numeric", raw: "abc", wantErr: true},
		{name: "negative", raw: "-5", wantErr: true},
		{name: "overflow", raw: "99999999999", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTTL(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, operrors.IsCode(err, operrors.ErrCodeInvalidConfig))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoleResourcesFallBackToPod(t *testing.T) {
	cfg := NewConfig(
		WithPodResources(ResourceOverrides{CPURequest: "250m", CPULimit: "1", MemLimit: "1Gi"}),
		WithMasterResources(ResourceOverrides{CPULimit: "2"}),
		WithWorkerResources(ResourceOverrides{MemLimit: "512Mi", CPULimit: " "}),
	)

	master := cfg.MasterPodResources()
	assert.Equal(t, "2", master.CPULimit)
	assert.Equal(t, "250m", master.CPURequest)
	assert.Equal(t, "1Gi", master.MemLimit)

	worker := cfg.WorkerPodResources()
	assert.Equal(t, "1", worker.CPULimit)
	assert.Equal(t, "512Mi", worker.MemLimit)
	assert.Equal(t, "", worker.EphemeralLimit)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr string
	}{
		{name: "defaults", cfg: NewConfig()},
		{name: "bad ttl", cfg: NewConfig(WithTTLSecondsAfterFinished("abc")), wantErr: "ttlSecondsAfterFinished"},
		{
			name:    "bad quantity",
			cfg:     NewConfig(WithPodResources(ResourceOverrides{CPULimit: "lots"})),
			wantErr: "invalid cpuLimit quantity for pod",
		},
		{
			name: "bad image",
			cfg: NewConfig(WithMetricsExporter(ExporterSettings{
				Image: "UPPER/Case:tag", Port: 9646, PullPolicy: "Always",
			})),
			wantErr: "invalid metrics exporter image reference",
		},
		{
			name: "pull policy typo",
			cfg: NewConfig(WithMetricsExporter(ExporterSettings{
				Image: DefaultExporterImage, Port: 9646, PullPolicy: "IfNotPresnt",
			})),
			wantErr: `did you mean "IfNotPresent"`,
		},
		{
			name: "port out of range",
			cfg: NewConfig(WithMetricsExporter(ExporterSettings{
				Image: DefaultExporterImage, Port: 0, PullPolicy: "Always",
			})),
			wantErr: "port out of range",
		},
		{
			name:    "no reconcile workers",
			cfg:     NewConfig(WithController(ControllerSettings{QueueQPS: 1, QueueBurst: 1})),
			wantErr: "maxConcurrentReconciles",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, operrors.IsCode(err, operrors.ErrCodeInvalidConfig))
		})
	}
}

func TestLoadWithLookup_Env(t *testing.T) {
	cfg, err := LoadWithLookup("", lookupFrom(map[string]string{
		"KAFKA_BOOTSTRAP_SERVERS":               "broker:9092",
		"KAFKA_SECURITY_ENABLED":                "true",
		"KAFKA_PASSWORD":                        "secret",
		"POD_CPU_LIMIT":                         "",
		"MASTER_POD_MEM_LIMIT":                  "2Gi",
		"METRICS_EXPORTER_PORT":                 "9999",
		"JOB_TTL_SECONDS_AFTER_FINISHED":        "60",
		"ENABLE_AFFINITY_CR_INJECTION":          "true",
		"ENABLE_TAINT_TOLERATIONS_CR_INJECTION": "false",
	}))
	require.NoError(t, err)

	assert.Equal(t, "broker:9092", cfg.Kafka().BootstrapServers)
	assert.True(t, cfg.Kafka().SecurityEnabled)
	assert.Equal(t, "secret", cfg.Kafka().Password)
	assert.Equal(t, "", cfg.PodResources().CPULimit)
	assert.Equal(t, "2Gi", cfg.MasterPodResources().MemLimit)
	assert.Equal(t, int32(9999), cfg.MetricsExporter().Port)
	assert.True(t, cfg.AffinityInjectionEnabled())
	assert.False(t, cfg.TolerationsInjectionEnabled())

	ttl, err := cfg.ResolveTTL()
	require.NoError(t, err)
	assert.Equal(t, int32(60), *ttl)
}

func TestLoadWithLookup_InvalidEnv(t *testing.T) {
	tests := map[string]map[string]string{
		"bool":  {"KAFKA_SECURITY_ENABLED": "maybe"},
		"port":  {"METRICS_EXPORTER_PORT": "http"},
		"ttl":   {"JOB_TTL_SECONDS_AFTER_FINISHED": "abc"},
		"quant": {"WORKER_POD_CPU_REQUEST": "1 core"},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadWithLookup("", lookupFrom(env))
			require.Error(t, err)
			assert.Equal(t, operrors.ErrCodeInvalidConfig, operrors.CodeOf(err))
		})
	}
}

func TestLoadWithLookup_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
kafka:
  bootstrapServers: file-broker:9092
resources:
  pod:
    cpuLimit: "2"
    memLimit: ""
metricsExporter:
  image: ghcr.io/example/exporter:v1
  port: 9700
  pullPolicy: IfNotPresent
ttlSecondsAfterFinished: "300"
features:
  tolerationsInjection: true
controller:
  maxConcurrentReconciles: 4
  queueQPS: 5
  queueBurst: 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadWithLookup(path, lookupFrom(map[string]string{
		"KAFKA_BOOTSTRAP_SERVERS": "env-broker:9092",
	}))
	require.NoError(t, err)

	assert.Equal(t, "env-broker:9092", cfg.Kafka().BootstrapServers)
	assert.Equal(t, "2", cfg.PodResources().CPULimit)
	assert.Equal(t, "", cfg.PodResources().MemLimit)
	// untouched keys keep their defaults
	assert.Equal(t, "128Mi", cfg.PodResources().MemRequest)
	assert.Equal(t, "ghcr.io/example/exporter:v1", cfg.MetricsExporter().Image)
	assert.Equal(t, int32(9700), cfg.MetricsExporter().Port)
	assert.Equal(t, "300", cfg.TTLSecondsAfterFinished())
	assert.True(t, cfg.TolerationsInjectionEnabled())
	assert.Equal(t, 4, cfg.Controller().MaxConcurrentReconciles)
	assert.Equal(t, DefaultLeaderElectionID, cfg.Controller().LeaderElectionID)
}

func TestLoadWithLookup_MissingFile(t *testing.T) {
	_, err := LoadWithLookup(filepath.Join(t.TempDir(), "nope.yaml"), lookupFrom(nil))
	require.Error(t, err)
	assert.True(t, operrors.IsCode(err, operrors.ErrCodeInvalidConfig))
}

func TestLogValueRedactsSecrets(t *testing.T) {
	cfg := NewConfig(WithKafka(KafkaSettings{
		Username:       "user",
		Password:       "hunter2",
		SaslJaasConfig: "org.apache.kafka.common.security.scram.ScramLoginModule required;",
	}))

	v := cfg.LogValue().String()
	assert.NotContains(t, v, "hunter2")
	assert.NotContains(t, v, "ScramLoginModule")
	assert.Contains(t, v, "***")
}

func int32Ptr(v int32) *int32 { return &v }
