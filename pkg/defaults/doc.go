// Package defaults provides centralized timing constants for the operator.
//
// # Usage
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.KubeAPITimeout)
//	defer cancel()
//
// # Timeout Guidelines
//
//   - Kubernetes API calls: 30s per create, update or delete
//   - Manager shutdown: 30s for running reconciles to finish
package defaults
