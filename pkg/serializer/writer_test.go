package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/yaml"
)

const test1Name = "test1"

type testConfig struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

func TestWriter_SerializeJSON(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatJSON, &buf)

	data := []testConfig{
		{Name: test1Name, Value: 123},
		{Name: "test2", Value: 456},
	}

	if err := writer.Serialize(context.Background(), data); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	var result []testConfig
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}

	if len(result) != 2 {
		t.Errorf("Expected 2 items, got %d", len(result))
	}
	if result[0].Name != test1Name || result[0].Value != 123 {
		t.Errorf("Unexpected data: %+v", result[0])
	}
}

func TestWriter_SerializeYAML_UsesJSONFieldNames(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatYAML, &buf)

	svc := &corev1.Service{
		TypeMeta:   metav1.TypeMeta{APIVersion: "v1", Kind: "Service"},
		ObjectMeta: metav1.ObjectMeta{Name: "demo-master"},
		Spec: corev1.ServiceSpec{
			Ports: []corev1.ServicePort{{Name: "port5557", Port: 5557}},
		},
	}

	if err := writer.Serialize(context.Background(), svc); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	output := buf.String()
	for _, want := range []string{"apiVersion: v1", "kind: Service", "name: demo-master", "port: 5557"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}

	var back corev1.Service
	if err := yaml.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("Failed to unmarshal YAML: %v", err)
	}
	if back.Name != "demo-master" {
		t.Errorf("expected name demo-master, got %q", back.Name)
	}
}

func TestWriter_SerializeDocuments(t *testing.T) {
	docs := []any{
		testConfig{Name: test1Name, Value: 1},
		testConfig{Name: "test2", Value: 2},
	}

	t.Run("yaml stream", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewWriter(FormatYAML, &buf).SerializeDocuments(context.Background(), docs...); err != nil {
			t.Fatalf("SerializeDocuments failed: %v", err)
		}
		parts := strings.Split(buf.String(), yamlDocumentSeparator)
		if len(parts) != 2 {
			t.Fatalf("expected 2 documents, got %d:\n%s", len(parts), buf.String())
		}
		if !strings.Contains(parts[1], "name: test2") {
			t.Errorf("unexpected second document: %s", parts[1])
		}
	})

	t.Run("json array", func(t *testing.T) {
		var buf bytes.Buffer
		if err := NewWriter(FormatJSON, &buf).SerializeDocuments(context.Background(), docs...); err != nil {
			t.Fatalf("SerializeDocuments failed: %v", err)
		}
		var result []testConfig
		if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
			t.Fatalf("Failed to unmarshal JSON: %v", err)
		}
		if len(result) != 2 {
			t.Errorf("Expected 2 items, got %d", len(result))
		}
	})
}

func TestWriter_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	if err := NewWriter(FormatJSON, &buf).Serialize(ctx, testConfig{}); err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if buf.Len() != 0 {
		t.Error("expected nothing written")
	}
}

func TestNewWriter_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(Format("invalid"), &buf)

	data := testConfig{Name: "test", Value: 123}
	if err := writer.Serialize(context.Background(), data); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	var result testConfig
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal as JSON: %v", err)
	}
}

func TestWriter_Close(t *testing.T) {
	writer := NewStdoutWriter(FormatJSON)

	if err := writer.Close(); err != nil {
		t.Errorf("Close on stdout writer should not error: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Errorf("Multiple Close calls should not error: %v", err)
	}
}

func TestNewFileWriterOrStdout_EmptyPath(t *testing.T) {
	for _, path := range []string{"", StdoutURI, "  "} {
		writer, err := NewFileWriterOrStdout(FormatJSON, path)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", path, err)
		}
		if writer.output != os.Stdout {
			t.Errorf("expected stdout for %q", path)
		}
		if err := writer.Close(); err != nil {
			t.Errorf("Close failed for %q: %v", path, err)
		}
	}
}

func TestNewFileWriterOrStdout_Success(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "out.yaml")

	writer, err := NewFileWriterOrStdout(FormatYAML, tmpFile)
	if err != nil {
		t.Fatalf("NewFileWriterOrStdout failed: %v", err)
	}

	if err := writer.Serialize(context.Background(), testConfig{Name: "file", Value: 7}); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	content, err := os.ReadFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}
	if !strings.Contains(string(content), "name: file") {
		t.Errorf("unexpected file content: %s", content)
	}
}

func TestNewFileWriterOrStdout_InvalidPath(t *testing.T) {
	writer, err := NewFileWriterOrStdout(FormatJSON, "/nonexistent/path/file.json")
	if err == nil {
		t.Fatal("Expected error for invalid path")
	}
	if writer != nil {
		t.Error("Expected nil writer when error is returned")
	}
	if !strings.Contains(err.Error(), "failed to create output file") {
		t.Errorf("Expected helpful error message, got: %v", err)
	}
}

func TestFormat_IsUnknown(t *testing.T) {
	tests := []struct {
		format Format
		want   bool
	}{
		{FormatJSON, false},
		{FormatYAML, false},
		{Format("table"), true},
		{Format("xml"), true},
		{Format(""), true},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			if got := tt.format.IsUnknown(); got != tt.want {
				t.Errorf("Format(%q).IsUnknown() = %v, want %v", tt.format, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat(" YAML "); err != nil || f != FormatYAML {
		t.Errorf("ParseFormat(YAML) = %q, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
}

func TestSupportedFormats(t *testing.T) {
	formats := SupportedFormats()
	if len(formats) != 2 || formats[0] != "json" || formats[1] != "yaml" {
		t.Errorf("SupportedFormats() = %v", formats)
	}
}
