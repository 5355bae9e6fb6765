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

// Package config holds the operator-wide process configuration.
//
// A Config is built once at start-up and never mutated afterwards. It is
// shared by reference between the node deriver, the resource builder and the
// controller, and is safe for concurrent reads.
//
// # Sources
//
// Values are resolved in this order, later sources winning:
//   - Built-in defaults (see NewConfig)
//   - An optional YAML file passed to Load
//   - Environment variables (KAFKA_*, POD_*, MASTER_POD_*, WORKER_POD_*,
//     METRICS_EXPORTER_*, JOB_TTL_SECONDS_AFTER_FINISHED,
//     ENABLE_AFFINITY_CR_INJECTION, ENABLE_TAINT_TOLERATIONS_CR_INJECTION)
//
// # Usage
//
// Load from file and environment:
//
//	cfg, err := config.Load("/etc/locust-operator/config.yaml")
//	if err != nil {
//	    return err
//	}
//
// Build directly, e.g. in tests:
//
//	cfg := config.NewConfig(
//	    config.WithTTLSecondsAfterFinished("120"),
//	    config.WithAffinityInjection(true),
//	)
//
// # Resource overrides
//
// Every resource string is independent: a blank value means the key is left
// out of the container's requests or limits entirely, it is not a default of
// "unlimited". Role-specific values (master, worker) replace the unified pod
// value for that role when non-blank.
//
// # TTL
//
// ttlSecondsAfterFinished is kept as the raw configured string. ParseTTL turns
// it into a *int32: "" yields nil (the field is omitted from Jobs), a decimal
// integer >= 0 yields that value, anything else is an INVALID_CONFIG error.
package config
