package controller

import (
	"fmt"

	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/rest"
	"k8s.io/utils/ptr"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/healthz"
	metricsserver "sigs.k8s.io/controller-runtime/pkg/metrics/server"

	locustv1 "github.com/NVIDIA/locust-operator/pkg/api/v1"
	"github.com/NVIDIA/locust-operator/pkg/config"
	"github.com/NVIDIA/locust-operator/pkg/defaults"
	kubeclient "github.com/NVIDIA/locust-operator/pkg/k8s/client"
	"github.com/NVIDIA/locust-operator/pkg/reconciler"
)

// NewScheme returns a scheme with the built-in types and LocustTest.
func NewScheme() *runtime.Scheme {
	scheme := runtime.NewScheme()
	utilruntime.Must(clientgoscheme.AddToScheme(scheme))
	utilruntime.Must(locustv1.AddToScheme(scheme))
	return scheme
}

// NewManager builds a manager with the LocustTest controller, metrics
// endpoint and health probes wired from cfg.
func NewManager(restConfig *rest.Config, cfg *config.Config) (ctrl.Manager, error) {
	settings := cfg.Controller()

	mgr, err := ctrl.NewManager(restConfig, ctrl.Options{
		Scheme:                  NewScheme(),
		Metrics:                 metricsserver.Options{BindAddress: settings.MetricsBindAddress},
		HealthProbeBindAddress:  settings.HealthProbeBindAddress,
		LeaderElection:          settings.LeaderElection,
		LeaderElectionID:        settings.LeaderElectionID,
		GracefulShutdownTimeout: ptr.To(defaults.ShutdownTimeout),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create manager: %w", err)
	}

	handler, err := reconciler.New(cfg, kubeclient.NewRestFactory(restConfig))
	if err != nil {
		return nil, err
	}

	r := &LocustTestReconciler{
		Client:   mgr.GetClient(),
		Handler:  handler,
		Settings: settings,
	}
	if err := r.SetupWithManager(mgr); err != nil {
		return nil, fmt.Errorf("failed to set up LocustTest controller: %w", err)
	}

	if err := mgr.AddHealthzCheck("healthz", healthz.Ping); err != nil {
		return nil, fmt.Errorf("failed to add health check: %w", err)
	}
	if err := mgr.AddReadyzCheck("readyz", healthz.Ping); err != nil {
		return nil, fmt.Errorf("failed to add ready check: %w", err)
	}

	return mgr, nil
}
