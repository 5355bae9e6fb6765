/*
Package controller hosts the LocustTest reconciler inside controller-runtime.

The controller watches LocustTest resources and forwards their lifecycle to
reconciler.Reconciler:

  - first sight of a resource: the cleanup finalizer is added, then OnUpsert
  - generation change: OnUpsert (which ignores updates)
  - deletion timestamp set: OnDelete, then the finalizer is removed

Only create events, generation changes and deletions pass the event filter;
metadata-only and status updates never reach the reconciler. The work queue
combines per-item exponential backoff with a global token bucket configured
from config.ControllerSettings.
*/
package controller
