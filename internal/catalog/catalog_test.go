package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/San2021331091/Smart-Cart-Backend/internal/domain"
)

type stubSource struct {
	products []domain.Product
	err      error
	lastArg  string
	lastN    int
}

func (s *stubSource) All(context.Context) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubSource) ByCategory(_ context.Context, id string) ([]domain.Product, error) {
	s.lastArg = id
	return s.products, s.err
}

func (s *stubSource) ByTitle(_ context.Context, title string) ([]domain.Product, error) {
	s.lastArg = title
	return s.products, s.err
}

func (s *stubSource) Latest(_ context.Context, n int) ([]domain.Product, error) {
	s.lastN = n
	return s.products, s.err
}

type checkingSource struct {
	stubSource
	checkErr error
}

func (s *checkingSource) Check(context.Context) error { return s.checkErr }

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClient_PassesThrough(t *testing.T) {
	src := &stubSource{products: []domain.Product{{ID: "1", Title: "Lamp"}}}
	c := NewClient(src, "memory", discard())
	ctx := context.Background()

	assert.Len(t, c.All(ctx), 1)
	assert.Len(t, c.ByCategory(ctx, "furniture"), 1)
	assert.Equal(t, "furniture", src.lastArg)
	assert.Len(t, c.ByTitle(ctx, "lamp"), 1)
	assert.Equal(t, "lamp", src.lastArg)
	assert.Len(t, c.Latest(ctx, 5), 1)
	assert.Equal(t, 5, src.lastN)
	assert.Equal(t, "memory", c.Backend())
}

func TestClient_DegradesFailuresToEmpty(t *testing.T) {
	src := &stubSource{err: errors.New("connection refused")}
	c := NewClient(src, "test-degrade", discard())
	ctx := context.Background()

	before := testutil.ToFloat64(fetchFailures.WithLabelValues("test-degrade", "by_title"))

	got := c.ByTitle(ctx, "red shoe")

	require.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, c.All(ctx))
	assert.Empty(t, c.ByCategory(ctx, "tops"))
	assert.Empty(t, c.Latest(ctx, 3))
	assert.InDelta(t, before+1, testutil.ToFloat64(fetchFailures.WithLabelValues("test-degrade", "by_title")), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(fetchFailures.WithLabelValues("test-degrade", "all")), 1e-9)
}

func TestClient_NilResultBecomesEmpty(t *testing.T) {
	c := NewClient(&stubSource{}, "memory", discard())

	got := c.All(context.Background())

	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestClient_LatestNonPositive(t *testing.T) {
	src := &stubSource{products: []domain.Product{{ID: "1"}}}
	c := NewClient(src, "memory", discard())

	assert.Empty(t, c.Latest(context.Background(), 0))
	assert.Zero(t, src.lastN)
}

func TestClient_Check(t *testing.T) {
	plain := NewClient(&stubSource{}, "memory", discard())
	assert.NoError(t, plain.Check(context.Background()))

	down := errors.New("breaker open")
	checked := NewClient(&checkingSource{checkErr: down}, "http", discard())
	assert.ErrorIs(t, checked.Check(context.Background()), down)
}
