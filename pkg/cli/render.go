/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
	"sigs.k8s.io/yaml"

	locustv1 "github.com/NVIDIA/locust-operator/pkg/api/v1"
	"github.com/NVIDIA/locust-operator/pkg/config"
	"github.com/NVIDIA/locust-operator/pkg/k8s/resources"
	"github.com/NVIDIA/locust-operator/pkg/loadgen"
	"github.com/NVIDIA/locust-operator/pkg/serializer"
)

const locustTestKind = "LocustTest"

func renderCmd() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "Print the Service and Jobs the operator would create for a LocustTest",
		Description: `Reads a LocustTest manifest and prints the master Service, master Job and
worker Job exactly as "run" would submit them. No cluster access is needed.

  locust-operator render --file test.yaml
  locust-operator render -f test.yaml --format json -o objects.json`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Required: true,
				Usage:    "LocustTest manifest (YAML or JSON)",
			},
			&cli.StringFlag{
				Name:  "namespace",
				Value: "default",
				Usage: "namespace used when the manifest does not set one",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			cfg, err := config.Load(cmd.String("config"))
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			test, err := loadLocustTest(cmd.String("file"))
			if err != nil {
				return err
			}
			if test.Namespace == "" {
				test.Namespace = cmd.String("namespace")
			}

			objects, err := renderObjects(cfg, test)
			if err != nil {
				return err
			}

			ser, err := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			if err != nil {
				return err
			}
			defer func() {
				if err := ser.Close(); err != nil {
					slog.Warn("failed to close serializer", "error", err)
				}
			}()

			return ser.SerializeDocuments(ctx, objects...)
		},
	}
}

// loadLocustTest reads a LocustTest manifest from path.
func loadLocustTest(path string) (*locustv1.LocustTest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	test := &locustv1.LocustTest{}
	if err := yaml.UnmarshalStrict(data, test); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if test.Kind != "" && test.Kind != locustTestKind {
		return nil, fmt.Errorf("%s: expected kind %s, got %s", path, locustTestKind, test.Kind)
	}
	if test.Name == "" {
		return nil, fmt.Errorf("%s: metadata.name is required", path)
	}
	return test, nil
}

// renderObjects builds the objects created for test, in creation order.
func renderObjects(cfg *config.Config, test *locustv1.LocustTest) ([]any, error) {
	deriver, err := loadgen.NewDeriver(cfg)
	if err != nil {
		return nil, err
	}
	builder := resources.NewBuilder(cfg)

	master := deriver.Derive(test, loadgen.RoleMaster)
	worker := deriver.Derive(test, loadgen.RoleWorker)

	svc := builder.BuildService(master)
	svc.Namespace = test.Namespace
	masterJob := builder.BuildJob(master, test.Name)
	masterJob.Namespace = test.Namespace
	workerJob := builder.BuildJob(worker, test.Name)
	workerJob.Namespace = test.Namespace

	return []any{svc, masterJob, workerJob}, nil
}
