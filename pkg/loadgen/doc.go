// Package loadgen derives the per-role node descriptors of a load test.
//
// A LocustTest describes one distributed test. It is deployed as two nodes:
// a single master that coordinates the run and serves the web UI, and a pool
// of workers that generate load. Deriver.Derive turns the resource plus a
// Role into a fully resolved Node that pkg/k8s/resources can build Kubernetes
// objects from without consulting the resource again.
//
// Derivation is pure. The only failure mode is a malformed TTL in the
// process configuration, which is reported once by NewDeriver.
package loadgen
