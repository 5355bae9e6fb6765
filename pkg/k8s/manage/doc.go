/*
Package manage applies load generation objects to the cluster and removes them.

CreationManager submits the Job of every node and the Service of the master.
DeletionManager removes them again by their derived names. Both obtain a
fresh API client from a client.Factory on every call and drop it on return.

# Apply Strategy

Jobs are created or replaced: when a Job with the node's name already
exists, the live object is fetched and updated in place, keeping the
system-generated selector and pod template labels the API server requires.
The master Service is only ever created; an existing Service is an error.

Nothing here retries. Failures are logged with slog and returned so the
caller can record them; the reconciler carries on with its next step.

# Deletion

Deletes return the status records of the removed object. An empty result
means the delete failed and was logged. Jobs are removed with background
propagation so their pods go with them.

# Usage Example

	factory := client.NewRestFactory(restConfig)
	creator := manage.NewCreationManager(factory, resources.NewBuilder(cfg))
	if err := creator.CreateJob(ctx, node, test.Namespace, test.Name); err != nil {
		// already logged
	}

	deleter := manage.NewDeletionManager(factory)
	statuses := deleter.DeleteJob(ctx, test, loadgen.RoleWorker)

# Testing

	clientset := fake.NewClientset()
	creator := manage.NewCreationManager(client.Static(clientset), builder)
*/
package manage
