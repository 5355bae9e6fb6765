package resources

const (
	// LabelTestName carries the owning test name on every pod.
	LabelTestName = "performance-test-name"

	// LabelPodName carries the node name; the master Service selects on it.
	LabelPodName = "performance-test-pod-name"

	// LabelManagedBy marks objects created by this operator.
	LabelManagedBy = "managed-by"

	// ManagedByValue is the value of LabelManagedBy.
	ManagedByValue = "locust-k8s-operator"

	AnnotationScrape = "prometheus.io/scrape"
	AnnotationPath   = "prometheus.io/path"
	AnnotationPort   = "prometheus.io/port"

	metricsPath = "/metrics"

	// ExporterContainerName is the name of the master's metrics sidecar.
	ExporterContainerName = "locust-metrics-exporter"

	// MetricsPortName is the Service port name of the exporter.
	MetricsPortName = "prometheus-metrics"

	exporterURIEnv    = "LOCUST_EXPORTER_URI"
	exporterListenEnv = "LOCUST_EXPORTER_WEB_LISTEN_ADDRESS"
	exporterTargetURI = "http://localhost:8089"
	servicePortPrefix = "port"
	libVolumeName     = "lib"

	// TestScriptMountPath is where the test ConfigMap is mounted.
	TestScriptMountPath = "/lotest/src/"

	// LibMountPath is where the library ConfigMap is mounted.
	LibMountPath = "/opt/locust/lib"

	kafkaBootstrapServers = "KAFKA_BOOTSTRAP_SERVERS"
	kafkaSecurityEnabled  = "KAFKA_SECURITY_ENABLED"
	kafkaSecurityProtocol = "KAFKA_SECURITY_PROTOCOL_CONFIG"
	kafkaSaslMechanism    = "KAFKA_SASL_MECHANISM"
	kafkaSaslJaasConfig   = "KAFKA_SASL_JAAS_CONFIG"
	kafkaUsername         = "KAFKA_USERNAME"
	kafkaPassword         = "KAFKA_PASSWORD"
)
