package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/San2021331091/Smart-Cart-Backend/internal/catalog"
	"github.com/San2021331091/Smart-Cart-Backend/internal/domain"
	"github.com/San2021331091/Smart-Cart-Backend/internal/event"
	"github.com/San2021331091/Smart-Cart-Backend/internal/match"
	"github.com/San2021331091/Smart-Cart-Backend/internal/query"
	"github.com/San2021331091/Smart-Cart-Backend/internal/similarity"
	"github.com/San2021331091/Smart-Cart-Backend/internal/trending"
	apperrors "github.com/San2021331091/Smart-Cart-Backend/pkg/errors"
	"github.com/San2021331091/Smart-Cart-Backend/pkg/logger"
	"github.com/San2021331091/Smart-Cart-Backend/pkg/tracing"
)

const tracerName = "github.com/San2021331091/Smart-Cart-Backend/internal/service"

const (
	greetingAnswer     = "👋 Hello! I am SmartCart, your AI shopping assistant. Ask me about product availability, price filters, or suggestions!"
	unrecognizedAnswer = "Sorry, I didn't understand. Try asking about stock, price, or categories."
)

var (
	queriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_queries_total",
			Help: "Total number of assistant queries by resolved intent.",
		},
		[]string{"intent"},
	)

	matchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_product_matches_total",
			Help: "Total number of product reference resolutions by strategy.",
		},
		[]string{"strategy"},
	)
)

// AssistantService answers free-text shopping questions against the catalog.
type AssistantService struct {
	catalog    *catalog.Client
	parser     *query.Parser
	resolver   *match.Resolver
	similarity *similarity.Engine
	trending   *trending.Counter
	publisher  event.Publisher
	similarK   int
	logger     *slog.Logger
}

// Option configures an AssistantService.
type Option func(*AssistantService)

// WithParser replaces the default query parser.
func WithParser(p *query.Parser) Option {
	return func(s *AssistantService) { s.parser = p }
}

// WithResolver replaces the default best-match resolver.
func WithResolver(r *match.Resolver) Option {
	return func(s *AssistantService) { s.resolver = r }
}

// WithSimilarResults sets how many similar products Similar returns.
func WithSimilarResults(k int) Option {
	return func(s *AssistantService) { s.similarK = k }
}

// WithPublisher sets where answered-query events go.
func WithPublisher(p event.Publisher) Option {
	return func(s *AssistantService) { s.publisher = p }
}

// NewAssistantService creates a new assistant service. The trending counter
// is owned by the caller so it can be shared or inspected.
func NewAssistantService(cat *catalog.Client, counter *trending.Counter, logger *slog.Logger, opts ...Option) *AssistantService {
	s := &AssistantService{
		catalog:    cat,
		parser:     query.NewParser(query.DefaultCategoryCatalog()),
		resolver:   match.NewResolver(),
		similarity: similarity.New(),
		trending:   counter,
		publisher:  event.Noop{},
		similarK:   similarity.DefaultK,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ask answers one shopping question. Branches are tried in a fixed order:
// greeting, stock check, category, price, and finally the unrecognized answer.
func (s *AssistantService) Ask(ctx context.Context, text string) domain.Answer {
	ctx, span := tracing.Tracer(tracerName).Start(ctx, "AssistantService.Ask",
		trace.WithAttributes(tracing.QueryAttr(text)))
	defer span.End()

	parsed := s.parser.Parse(text)
	if parsed.Raw != "" {
		s.trending.Increment(parsed.Raw)
	}

	answer := s.dispatch(ctx, parsed)

	queriesTotal.WithLabelValues(string(answer.Intent)).Inc()
	span.SetAttributes(
		attribute.String("smartcart.intent", string(answer.Intent)),
		attribute.Int("smartcart.results", resultCount(answer)),
	)
	logger.WithContext(ctx, s.logger).InfoContext(ctx, "query answered",
		slog.String("intent", string(answer.Intent)),
		slog.String("category", parsed.Category),
		slog.Int("results", resultCount(answer)),
	)

	s.publish(ctx, event.QueryAnsweredData{
		Query:       parsed.Raw,
		Intent:      string(answer.Intent),
		Category:    parsed.Category,
		Matched:     answer.Yes,
		ResultCount: resultCount(answer),
	})
	return answer
}

func (s *AssistantService) dispatch(ctx context.Context, parsed query.Parsed) domain.Answer {
	switch {
	case parsed.Greeting:
		return domain.Answer{Answer: greetingAnswer, Yes: true, Intent: domain.IntentGreeting}
	case parsed.IsStock:
		return s.checkStock(ctx, parsed.StockTarget)
	case parsed.HasCategory:
		return s.byCategory(ctx, parsed)
	case parsed.PriceUpper != nil || parsed.PriceLower != nil:
		return s.byPrice(ctx, parsed)
	default:
		return domain.Answer{Answer: unrecognizedAnswer, No: true, Intent: domain.IntentUnrecognized}
	}
}

func (s *AssistantService) checkStock(ctx context.Context, name string) domain.Answer {
	res := s.resolve(ctx, name, s.catalog.ByTitle(ctx, name))
	if !res.Found {
		return domain.Answer{
			Answer: fmt.Sprintf("Sorry, no match found for '%s'.", name),
			No:     true,
			Intent: domain.IntentStockCheck,
		}
	}

	p := res.Product
	inStock := p.InStock()
	answer := domain.Answer{
		Product: &p,
		Yes:     inStock,
		No:      !inStock,
		Intent:  domain.IntentStockCheck,
	}
	if inStock {
		answer.Answer = fmt.Sprintf("Yes, '%s' is in stock with %d items.", p.Title, p.Stock)
	} else {
		answer.Answer = fmt.Sprintf("Sorry, '%s' is out of stock.", p.Title)
	}
	return answer
}

func (s *AssistantService) byCategory(ctx context.Context, parsed query.Parsed) domain.Answer {
	products := s.catalog.ByCategory(ctx, parsed.Category)

	switch {
	case parsed.PriceUpper != nil:
		return domain.Answer{
			Answer:   fmt.Sprintf("Products in category '%s' below $%s:", parsed.Category, formatPrice(*parsed.PriceUpper)),
			Products: below(products, *parsed.PriceUpper),
			Yes:      true,
			Intent:   domain.IntentCategory,
		}
	case parsed.PriceLower != nil:
		return domain.Answer{
			Answer:   fmt.Sprintf("Products in category '%s' above $%s:", parsed.Category, formatPrice(*parsed.PriceLower)),
			Products: above(products, *parsed.PriceLower),
			Yes:      true,
			Intent:   domain.IntentCategory,
		}
	default:
		return domain.Answer{
			Answer:   fmt.Sprintf("Products in category '%s':", parsed.Category),
			Products: products,
			Yes:      true,
			Intent:   domain.IntentCategory,
		}
	}
}

func (s *AssistantService) byPrice(ctx context.Context, parsed query.Parsed) domain.Answer {
	products := s.catalog.All(ctx)

	if parsed.PriceUpper != nil {
		return domain.Answer{
			Answer:   fmt.Sprintf("Products below $%s:", formatPrice(*parsed.PriceUpper)),
			Products: below(products, *parsed.PriceUpper),
			Yes:      true,
			Intent:   domain.IntentPrice,
		}
	}
	return domain.Answer{
		Answer:   fmt.Sprintf("Products above $%s:", formatPrice(*parsed.PriceLower)),
		Products: above(products, *parsed.PriceLower),
		Yes:      true,
		Intent:   domain.IntentPrice,
	}
}

// Similar resolves text to one catalog product and recommends the products
// nearest to it within its category. Blank text is rejected.
func (s *AssistantService) Similar(ctx context.Context, text string) (domain.SimilarityAnswer, error) {
	name := strings.TrimSpace(text)
	if name == "" {
		return domain.SimilarityAnswer{}, apperrors.InvalidInput("query must not be blank")
	}

	ctx, span := tracing.Tracer(tracerName).Start(ctx, "AssistantService.Similar",
		trace.WithAttributes(tracing.QueryAttr(name)))
	defer span.End()

	s.trending.Increment(strings.ToLower(name))

	res := s.resolve(ctx, name, s.catalog.ByTitle(ctx, name))
	if !res.Found {
		queriesTotal.WithLabelValues(string(domain.IntentSimilar)).Inc()
		s.publish(ctx, event.QueryAnsweredData{Query: strings.ToLower(name), Intent: string(domain.IntentSimilar)})
		return domain.SimilarityAnswer{
			Answer: fmt.Sprintf("No product found for '%s'.", name),
			No:     true,
		}, nil
	}

	target := res.Product
	pool := s.catalog.ByCategory(ctx, target.Category)
	similar := s.similarity.Similar(&target, pool, s.similarK)

	queriesTotal.WithLabelValues(string(domain.IntentSimilar)).Inc()
	span.SetAttributes(
		attribute.String("smartcart.target_id", target.ID),
		attribute.Int("smartcart.results", len(similar)),
	)
	logger.WithContext(ctx, s.logger).InfoContext(ctx, "similar products ranked",
		slog.String("target_id", target.ID),
		slog.String("category", target.Category),
		slog.Int("pool", len(pool)),
		slog.Int("results", len(similar)),
	)

	s.publish(ctx, event.QueryAnsweredData{
		Query:       strings.ToLower(name),
		Intent:      string(domain.IntentSimilar),
		Category:    target.Category,
		Matched:     true,
		ResultCount: len(similar),
	})

	return domain.SimilarityAnswer{
		Answer:          fmt.Sprintf("Products similar to '%s' in category '%s':", target.Title, target.Category),
		TargetProduct:   &target,
		SimilarProducts: similar,
		Yes:             true,
	}, nil
}

// Trending returns the most frequent queries, most frequent first.
func (s *AssistantService) Trending(limit int) []domain.TrendingQuery {
	return s.trending.Top(limit)
}

func (s *AssistantService) resolve(ctx context.Context, name string, candidates []domain.Product) match.Result {
	res := s.resolver.Resolve(name, candidates)
	matchesTotal.WithLabelValues(string(res.Strategy)).Inc()
	logger.WithContext(ctx, s.logger).DebugContext(ctx, "product reference resolved",
		slog.String("name", name),
		slog.Int("candidates", len(candidates)),
		slog.String("strategy", string(res.Strategy)),
		slog.Float64("score", res.Score),
	)
	return res
}

func (s *AssistantService) publish(ctx context.Context, data event.QueryAnsweredData) {
	if err := s.publisher.PublishQueryAnswered(ctx, logger.CorrelationIDFromContext(ctx), data); err != nil {
		logger.WithContext(ctx, s.logger).WarnContext(ctx, "failed to publish query event",
			slog.String("intent", data.Intent),
			slog.String("error", err.Error()),
		)
	}
}

func below(products []domain.Product, bound float64) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.Price < bound {
			out = append(out, p)
		}
	}
	return out
}

func above(products []domain.Product, bound float64) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.Price > bound {
			out = append(out, p)
		}
	}
	return out
}

// formatPrice renders a bound the way the storefront always has: whole
// numbers keep one decimal ("100.0"), others print their shortest form.
func formatPrice(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func resultCount(a domain.Answer) int {
	if a.Product != nil {
		return 1
	}
	return len(a.Products)
}
