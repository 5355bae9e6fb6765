// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cli implements the command-line interface of locust-operator.
//
// # Commands
//
// run - Start the operator:
//
//	locust-operator run [--config operator.yaml] [--kubeconfig ~/.kube/config]
//
// Watches LocustTest resources and creates, for each new test, the master
// Service, the master Job and the worker Job. Deleting the test removes them.
// Serves Prometheus metrics and health probes on the configured addresses.
//
// render - Preview the generated objects:
//
//	locust-operator render --file test.yaml [--format yaml|json] [--output FILE]
//
// Prints the three objects "run" would create for the given manifest,
// using the same configuration. No cluster access is needed.
//
// # Global Flags
//
//	--config, -c   Operator configuration file (YAML)
//	--log-level    Logging verbosity (debug, info, warn, error)
//	--version      Print the version and exit
//
// # Environment Variables
//
//	LOG_LEVEL                          Logging verbosity
//	LOCUST_OPERATOR_CONFIG             Configuration file path
//	KUBECONFIG                         Path to kubeconfig file
//	KAFKA_*                            Kafka settings injected into load generators
//	POD_*, MASTER_POD_*, WORKER_POD_*  Load generator resource requests and limits
//	METRICS_EXPORTER_*                 Metrics exporter sidecar settings
//	JOB_TTL_SECONDS_AFTER_FINISHED     TTL of finished Jobs
//	ENABLE_AFFINITY_CR_INJECTION           Pass node affinity through from the resource
//	ENABLE_TAINT_TOLERATIONS_CR_INJECTION  Pass tolerations through from the resource
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid arguments, execution failure)
//	2  Context canceled or timeout
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/locust-operator/pkg/cli.version=1.0.0'"
package cli
