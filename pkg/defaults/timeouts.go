package defaults

import "time"

const (
	// KubeAPITimeout bounds a single create, get, update or delete call.
	KubeAPITimeout = 30 * time.Second

	// ShutdownTimeout is how long the manager waits for running reconciles
	// after the stop signal.
	ShutdownTimeout = 30 * time.Second
)
