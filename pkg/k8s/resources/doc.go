/*
Package resources renders load generation nodes into Kubernetes objects.

A Builder turns a loadgen.Node into the Job that runs it and, for the
master, the Service that gives workers a stable address to join. Building
is pure: nothing here talks to the cluster.

# Objects

Every node becomes one batch/v1 Job named after the node. The pod template
carries the reserved labels

	performance-test-name:     <test name>
	performance-test-pod-name: <node name>
	managed-by:                locust-k8s-operator

and the Prometheus scrape annotations pointing at the metrics exporter
sidecar. Descriptor-supplied labels and annotations are merged in, but the
reserved keys always keep their operator-assigned values.

The master node also gets a Service selecting its pod by
performance-test-pod-name. It exposes every master port except the web UI
plus the exporter port as prometheus-metrics.

# Usage

	builder := resources.NewBuilder(cfg)
	job := builder.BuildJob(node, test.Name)
	svc := builder.BuildService(node)
*/
package resources
