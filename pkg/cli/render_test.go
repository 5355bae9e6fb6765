/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"

	"github.com/NVIDIA/locust-operator/pkg/config"
)

const manifest = `apiVersion: locust.io/v1
kind: LocustTest
metadata:
  name: team.perftest
  namespace: perf
spec:
  image: locustio/locust:2.20.0
  masterCommandSeed: --locustfile /lotest/src/demo.py --host https://example.com
  workerCommandSeed: --locustfile /lotest/src/demo.py
  workerReplicas: 50
  configMap: demo-map
  labels:
    master:
      team: perf
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	return path
}

func TestLoadLocustTest(t *testing.T) {
	test, err := loadLocustTest(writeManifest(t, manifest))
	if err != nil {
		t.Fatalf("loadLocustTest failed: %v", err)
	}
	if test.Name != "team.perftest" || test.Namespace != "perf" {
		t.Errorf("unexpected identity %s/%s", test.Namespace, test.Name)
	}
	if test.Spec.WorkerReplicas != 50 {
		t.Errorf("expected 50 workers, got %d", test.Spec.WorkerReplicas)
	}
	if test.Spec.Labels["master"]["team"] != "perf" {
		t.Errorf("unexpected labels %v", test.Spec.Labels)
	}
}

func TestLoadLocustTest_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"wrong kind", "kind: Pod\nmetadata:\n  name: x\n", "expected kind"},
		{"missing name", "kind: LocustTest\nspec:\n  image: x\n", "metadata.name"},
		{"unknown field", "kind: LocustTest\nmetadata:\n  name: x\nspec:\n  wokerReplicas: 1\n", "failed to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadLocustTest(writeManifest(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected %q in error, got: %v", tt.want, err)
			}
		})
	}
}

func TestRenderObjects(t *testing.T) {
	test, err := loadLocustTest(writeManifest(t, manifest))
	if err != nil {
		t.Fatalf("loadLocustTest failed: %v", err)
	}

	objects, err := renderObjects(config.NewConfig(), test)
	if err != nil {
		t.Fatalf("renderObjects failed: %v", err)
	}
	if len(objects) != 3 {
		t.Fatalf("expected 3 objects, got %d", len(objects))
	}

	svc, ok := objects[0].(*corev1.Service)
	if !ok || svc.Name != "team-perftest-master" || svc.Namespace != "perf" {
		t.Errorf("unexpected service: %+v", objects[0])
	}

	for i, want := range []struct {
		name        string
		parallelism int32
	}{{"team-perftest-master", 1}, {"team-perftest-worker", 50}} {
		job, ok := objects[i+1].(*batchv1.Job)
		if !ok {
			t.Fatalf("object %d is not a Job", i+1)
		}
		if job.Name != want.name || *job.Spec.Parallelism != want.parallelism {
			t.Errorf("unexpected job %s with parallelism %d", job.Name, *job.Spec.Parallelism)
		}
	}
}

func TestRenderObjects_InvalidTTL(t *testing.T) {
	test, err := loadLocustTest(writeManifest(t, manifest))
	if err != nil {
		t.Fatalf("loadLocustTest failed: %v", err)
	}

	if _, err := renderObjects(config.NewConfig(config.WithTTLSecondsAfterFinished("abc")), test); err == nil {
		t.Error("expected error for malformed TTL")
	}
}

func TestRenderCommand(t *testing.T) {
	in := writeManifest(t, manifest)
	out := filepath.Join(t.TempDir(), "objects.yaml")

	args := []string{name, "render", "--file", in, "--output", out, "--format", "yaml"}
	if err := newRootCmd().Run(context.Background(), args); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	output := string(data)

	for _, want := range []string{
		"kind: Service",
		"kind: Job",
		"name: team-perftest-master",
		"name: team-perftest-worker",
		"performance-test-pod-name: team-perftest-master",
		"--expect-workers=50",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output", want)
		}
	}
	if got := strings.Count(output, "---\n"); got != 2 {
		t.Errorf("expected 3 documents, got %d separators", got)
	}
}

func TestRenderCommand_UnknownFormat(t *testing.T) {
	in := writeManifest(t, manifest)

	args := []string{name, "render", "--file", in, "--format", "xml"}
	if err := newRootCmd().Run(context.Background(), args); err == nil {
		t.Error("expected error for unknown format")
	}
}
