package tracing_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"realestate/internal/tracing"
)

func TestStartSpan_RecordsStatusAndAttributes(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	if err := tracing.InitWithExporter("realestate-test", "dev", exporter); err != nil {
		t.Fatalf("InitWithExporter: %v", err)
	}

	_, span := tracing.StartSpan(context.Background(), "rpc.sendTransaction", "CLIENT")
	span.WithAttributes(map[string]string{"rpc.method": "sendTransaction"})
	span.SetStatus(errors.New("boom"))
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Name != "rpc.sendTransaction" {
		t.Fatalf("span name %q", spans[0].Name)
	}
	if spans[0].Status.Description != "boom" {
		t.Fatalf("span status %+v", spans[0].Status)
	}
	if err := tracing.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
}

func TestInit_WritesFileAndShutdownReleasesIt(t *testing.T) {
	for _, name := range []string{"first.json", "second.json"} {
		path := filepath.Join(t.TempDir(), name)
		if err := tracing.Init("realestate-test", "dev", path); err != nil {
			t.Fatalf("Init(%s): %v", name, err)
		}
		_, span := tracing.StartSpan(context.Background(), "build."+name, "")
		span.End()
		if err := tracing.Shutdown(context.Background()); err != nil {
			t.Fatalf("Shutdown: %v", err)
		}

		b, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if !strings.Contains(string(b), "build."+name) {
			t.Fatalf("%s does not contain the span: %s", name, b)
		}
	}
	if err := tracing.Shutdown(context.Background()); err != nil {
		t.Fatalf("second Shutdown: %v", err)
	}
}

func TestNilSpan_IsSafe(t *testing.T) {
	var s *tracing.Span
	s.WithAttributes(map[string]string{"k": "v"}).SetStatus(nil)
	s.End()
}
