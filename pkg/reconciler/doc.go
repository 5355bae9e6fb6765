// Package reconciler maps LocustTest lifecycle events onto cluster calls.
//
// A test seen for the first time (generation 1) gets its master Service,
// master Job and worker Job created in that order. Later generations are
// ignored; a running test topology is never mutated. Cleanup deletes the
// same three objects, each attempted regardless of the others.
//
// Step failures are logged and counted but never abort the remaining steps,
// and no requeue is requested. Nothing is written back onto the resource.
package reconciler
