// Route registration and go-chi router setup.
// Public routes (/health) vs token-protected routes (/api/v1/assist/*).
package api

import (
	"context"
	"database/sql"
	"log"

	"github.com/batasnatin/lexgate/internal/api/handlers"
	apmiddleware "github.com/batasnatin/lexgate/internal/api/middleware"
	"github.com/batasnatin/lexgate/internal/domain/assist"
	"github.com/batasnatin/lexgate/internal/domain/audit"
	"github.com/batasnatin/lexgate/internal/infra/config"
	"github.com/batasnatin/lexgate/internal/infra/eventbus"
	"github.com/batasnatin/lexgate/internal/infra/identity"
	"github.com/batasnatin/lexgate/internal/infra/llm"
	"github.com/batasnatin/lexgate/internal/infra/quota"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates and configures a chi router with all routes and the full
// gateway pipeline: auth → quota → normalize → failover → normalize.
// ctx bounds the background goroutines the router starts (the audit
// recorder); cancel it on shutdown before closing the database.
func NewRouter(ctx context.Context, db *sql.DB, cfg config.Config) *chi.Mux {
	verifier := identity.NewHTTPVerifier(cfg.IdentityBaseURL, cfg.IdentityAPIKey)
	return NewRouterWithVerifier(ctx, db, cfg, verifier)
}

// NewRouterWithVerifier is NewRouter with an injectable identity verifier,
// used by deployments that front a different identity service.
func NewRouterWithVerifier(ctx context.Context, db *sql.DB, cfg config.Config, verifier identity.Verifier) *chi.Mux {
	return newRouter(ctx, db, cfg, verifier, buildProviders(cfg))
}

func newRouter(ctx context.Context, db *sql.DB, cfg config.Config, verifier identity.Verifier, providers []llm.Provider) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (runs on all routes)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// ===== PUBLIC ROUTES (no auth required) =====

	// Health check — unauthenticated, used by load balancers and health probes
	r.Get("/health", handlers.Health)

	// ===== PROTECTED ROUTES (Bearer token required via AuthMiddleware) =====

	bus := eventbus.New()
	go audit.NewRecorder(db).Start(ctx, bus)

	limiter := quota.NewLimiter(quota.NewSQLStore(db), cfg.QuotaPolicies)
	failover := llm.NewFailover(providers, bus)

	chatHandler := handlers.NewChatHandler(assist.NewChatService(failover))
	suggestionsHandler := handlers.NewSuggestionsHandler(assist.NewSuggestionService(failover))

	r.Route("/api/v1/assist", func(r chi.Router) {
		r.Use(apmiddleware.AuthMiddleware(verifier))

		r.With(apmiddleware.QuotaMiddleware(limiter, config.EndpointChat)).
			Post("/chat", chatHandler.Chat) // POST /api/v1/assist/chat
		r.With(apmiddleware.QuotaMiddleware(limiter, config.EndpointSuggestions)).
			Post("/suggestions", suggestionsHandler.Suggest) // POST /api/v1/assist/suggestions
	})

	return r
}

// buildProviders instantiates the adapter chain in configured priority order.
// Unknown names are skipped with a log line rather than failing startup: an
// operator typo in the order must not take the other providers down.
func buildProviders(cfg config.Config) []llm.Provider {
	providers := make([]llm.Provider, 0, len(cfg.ProviderOrder))
	for _, name := range cfg.ProviderOrder {
		switch name {
		case "gemini":
			providers = append(providers, llm.NewGeminiProvider(cfg.GeminiAPIKey, cfg.ProviderTimeout))
		case "deepseek":
			providers = append(providers, llm.NewDeepSeekProvider(cfg.DeepSeekAPIKey, cfg.ProviderTimeout))
		case "openai":
			providers = append(providers, llm.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.ProviderTimeout))
		default:
			log.Printf("api: unknown provider %q in order, skipping", name)
		}
	}
	return providers
}
