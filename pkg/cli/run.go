/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"
	ctrl "sigs.k8s.io/controller-runtime"

	"github.com/NVIDIA/locust-operator/pkg/config"
	"github.com/NVIDIA/locust-operator/pkg/controller"
	"github.com/NVIDIA/locust-operator/pkg/k8s/client"
	"github.com/NVIDIA/locust-operator/pkg/logging"
)

func runCmd() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Start the operator and reconcile LocustTest resources until stopped",
		Description: `Watches LocustTest resources and, for every new test, creates the master
Service, the master Job and the worker Job. Deleting a test removes them.

Configuration is read from --config (optional) and then from environment
variables such as KAFKA_BOOTSTRAP_SERVERS, POD_CPU_REQUEST,
METRICS_EXPORTER_IMAGE or JOB_TTL_SECONDS_AFTER_FINISHED.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "kubeconfig",
				Usage:   "path to kubeconfig (default: KUBECONFIG, ~/.kube/config, then in-cluster)",
				Sources: cli.EnvVars("KUBECONFIG"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.Load(cmd.String("config"))
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			slog.Info("configuration loaded", "config", cfg)

			ctrl.SetLogger(logging.Logr())

			restConfig, err := client.BuildRestConfig(cmd.String("kubeconfig"))
			if err != nil {
				return err
			}

			mgr, err := controller.NewManager(restConfig, cfg)
			if err != nil {
				return err
			}

			slog.Info("starting manager",
				"metrics", cfg.Controller().MetricsBindAddress,
				"health", cfg.Controller().HealthProbeBindAddress,
				"leader_election", cfg.Controller().LeaderElection)

			if err := mgr.Start(ctx); err != nil {
				return fmt.Errorf("manager stopped: %w", err)
			}
			return nil
		},
	}
}
