package database

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupTestTracer(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)

	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})

	return exporter
}

const byCategory = "SELECT id, title FROM products WHERE category = $1"

func TestQueryTracer_Success(t *testing.T) {
	exporter := setupTestTracer(t)

	_, end := QueryTracer{}.Trace(context.Background(), "ProductsByCategory", byCategory)
	end(nil)

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}

	span := spans[0]
	if span.Name != "db.ProductsByCategory" {
		t.Errorf("span name = %q", span.Name)
	}

	attrs := make(map[string]string)
	for _, a := range span.Attributes {
		attrs[string(a.Key)] = a.Value.Emit()
	}
	if attrs["db.system"] != "postgresql" {
		t.Errorf("db.system = %q", attrs["db.system"])
	}
	if attrs["db.statement"] != byCategory {
		t.Errorf("db.statement = %q", attrs["db.statement"])
	}
	if span.Status.Code != codes.Unset {
		t.Errorf("span status = %v, want Unset", span.Status.Code)
	}
}

func TestQueryTracer_Error(t *testing.T) {
	exporter := setupTestTracer(t)

	_, end := QueryTracer{}.Trace(context.Background(), "LatestProducts", "SELECT 1")
	end(errors.New("connection refused"))

	spans := exporter.GetSpans()
	if len(spans) == 0 {
		t.Fatal("expected a span")
	}
	if spans[0].Status.Code != codes.Error {
		t.Errorf("span status = %v, want Error", spans[0].Status.Code)
	}
	if len(spans[0].Events) == 0 {
		t.Error("expected the error to be recorded as a span event")
	}
}

func TestQueryTracer_SlowQueryLogged(t *testing.T) {
	setupTestTracer(t)

	var buf bytes.Buffer
	qt := QueryTracer{SlowThreshold: time.Nanosecond, Logger: slog.New(slog.NewJSONHandler(&buf, nil))}

	_, end := qt.Trace(context.Background(), "ProductsByTitle", "SELECT * FROM products")
	time.Sleep(time.Millisecond)
	end(errors.New("statement timeout"))

	out := buf.String()
	for _, want := range []string{"slow query detected", "ProductsByTitle", "statement timeout"} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q missing %q", out, want)
		}
	}
}

func TestQueryTracer_FastQueryNotLogged(t *testing.T) {
	setupTestTracer(t)

	var buf bytes.Buffer
	qt := QueryTracer{SlowThreshold: time.Hour, Logger: slog.New(slog.NewJSONHandler(&buf, nil))}

	_, end := qt.Trace(context.Background(), "AllProducts", "SELECT 1")
	end(nil)

	if buf.Len() != 0 {
		t.Errorf("unexpected log output: %s", buf.String())
	}
}
