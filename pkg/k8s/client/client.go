package client

import (
	"fmt"
	"os"
	"path/filepath"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
)

// Factory hands out cluster API clients. Callers obtain one per operation
// and drop it when the operation returns.
type Factory interface {
	NewClient() (kubernetes.Interface, error)
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc func() (kubernetes.Interface, error)

// NewClient calls f.
func (f FactoryFunc) NewClient() (kubernetes.Interface, error) {
	return f()
}

// Static returns a Factory that always yields c. Used by tests and by the
// render command, which never talks to a cluster.
func Static(c kubernetes.Interface) Factory {
	return FactoryFunc(func() (kubernetes.Interface, error) {
		return c, nil
	})
}

// RestFactory builds a fresh clientset from a rest.Config on every call.
type RestFactory struct {
	config *rest.Config
}

// NewRestFactory returns a factory backed by config.
func NewRestFactory(config *rest.Config) *RestFactory {
	return &RestFactory{config: rest.CopyConfig(config)}
}

// NewClient creates a new clientset.
func (f *RestFactory) NewClient() (kubernetes.Interface, error) {
	c, err := kubernetes.NewForConfig(f.config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}
	return c, nil
}

// BuildRestConfig resolves the cluster connection settings.
//
// If kubeconfig is empty it uses, in order:
//  1. KUBECONFIG environment variable
//  2. ~/.kube/config (if it exists)
//  3. In-cluster configuration (service account)
func BuildRestConfig(kubeconfig string) (*rest.Config, error) {
	if kubeconfig == "" {
		kubeconfig = os.Getenv("KUBECONFIG")

		if kubeconfig == "" {
			kubeconfig = filepath.Join(homedir.HomeDir(), ".kube", "config")
			if _, err := os.Stat(kubeconfig); os.IsNotExist(err) {
				kubeconfig = ""
			}
		}
	}

	config, err := clientcmd.BuildConfigFromFlags("", kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("failed to build kube config: %w", err)
	}
	return config, nil
}

// BuildKubeClient creates a Kubernetes client from the given kubeconfig file.
// See BuildRestConfig for discovery when kubeconfig is empty.
func BuildKubeClient(kubeconfig string) (*kubernetes.Clientset, *rest.Config, error) {
	config, err := BuildRestConfig(kubeconfig)
	if err != nil {
		return nil, nil, err
	}

	client, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	return client, config, nil
}
