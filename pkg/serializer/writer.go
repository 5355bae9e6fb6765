package serializer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"sigs.k8s.io/yaml"
)

// Format is an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// IsUnknown reports whether f is not a supported format.
func (f Format) IsUnknown() bool {
	switch f {
	case FormatJSON, FormatYAML:
		return false
	default:
		return true
	}
}

// SupportedFormats returns the names of all supported formats.
func SupportedFormats() []string {
	return []string{string(FormatJSON), string(FormatYAML)}
}

// ParseFormat converts a user supplied format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format %q, supported: %s",
			s, strings.Join(SupportedFormats(), ", "))
	}
	return f, nil
}

// Serializer writes values to some destination.
type Serializer interface {
	Serialize(ctx context.Context, v any) error
}

// Closer is implemented by serializers owning a resource.
type Closer interface {
	Close() error
}

// Writer encodes values as JSON or YAML. Kubernetes objects are encoded
// through their JSON field names in both formats.
type Writer struct {
	format Format
	output io.Writer
	closer io.Closer
}

// NewWriter returns a Writer encoding to output. Unknown formats fall back
// to JSON; a nil output means stdout.
func NewWriter(format Format, output io.Writer) *Writer {
	if format.IsUnknown() {
		slog.Warn("unknown output format, falling back to json", "format", format)
		format = FormatJSON
	}
	if output == nil {
		output = os.Stdout
	}
	return &Writer{format: format, output: output}
}

// NewStdoutWriter returns a Writer encoding to stdout.
func NewStdoutWriter(format Format) *Writer {
	return NewWriter(format, os.Stdout)
}

// NewFileWriterOrStdout returns a Writer for path. An empty path or
// StdoutURI selects stdout. The caller must Close the writer.
func NewFileWriterOrStdout(format Format, path string) (*Writer, error) {
	path = strings.TrimSpace(path)
	if path == "" || path == StdoutURI {
		return NewStdoutWriter(format), nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %s: %w", path, err)
	}

	w := NewWriter(format, f)
	w.closer = f
	return w, nil
}

// Serialize encodes v as a single document.
func (w *Writer) Serialize(ctx context.Context, v any) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("serialization cancelled: %w", err)
	}

	b, err := w.encode(v)
	if err != nil {
		return err
	}
	if _, err := w.output.Write(b); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// SerializeDocuments encodes docs as a multi-document YAML stream or, for
// JSON, as one array.
func (w *Writer) SerializeDocuments(ctx context.Context, docs ...any) error {
	if w.format == FormatJSON {
		return w.Serialize(ctx, docs)
	}

	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("serialization cancelled: %w", err)
		}
		if i > 0 {
			if _, err := io.WriteString(w.output, yamlDocumentSeparator); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
		if err := w.Serialize(ctx, doc); err != nil {
			return fmt.Errorf("failed to serialize document %d: %w", i, err)
		}
	}
	return nil
}

// Close releases the underlying file, if any. It is safe to call repeatedly.
func (w *Writer) Close() error {
	if w.closer == nil {
		return nil
	}
	err := w.closer.Close()
	w.closer = nil
	if err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}
	return nil
}

func (w *Writer) encode(v any) ([]byte, error) {
	switch w.format {
	case FormatYAML:
		b, err := yaml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize to yaml: %w", err)
		}
		return b, nil
	default:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to serialize to json: %w", err)
		}
		return append(b, '\n'), nil
	}
}
