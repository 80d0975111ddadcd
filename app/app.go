package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lmittmann/tint"

	"github.com/pressquote/pressquote/internal/cache"
	"github.com/pressquote/pressquote/internal/catalog"
	"github.com/pressquote/pressquote/internal/config"
	"github.com/pressquote/pressquote/internal/currency"
	"github.com/pressquote/pressquote/internal/db"
	"github.com/pressquote/pressquote/internal/handlers"
	"github.com/pressquote/pressquote/internal/logging"
	"github.com/pressquote/pressquote/internal/observability"
	"github.com/pressquote/pressquote/internal/quote"
	"github.com/pressquote/pressquote/internal/services"
)

const ratesRequestTimeout = 10 * time.Second

type App struct {
	Config        *config.Config
	Logger        *slog.Logger
	DB            *pgxpool.Pool
	CacheProvider cache.Provider
	Rates         *currency.Store
	Refresher     *currency.Refresher
	Handlers      *handlers.Handlers
	sentryEnabled bool
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	sentryEnabled, err := initSentry(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sentry: %w", err)
	}
	logger := newLogger(cfg, sentryEnabled)

	a := &App{
		Config:        cfg,
		Logger:        logger,
		Rates:         currency.NewStore(),
		sentryEnabled: sentryEnabled,
	}

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	catalogue, err := a.newCatalogueProvider(startupCtx)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.CacheProvider, err = cache.NewProvider(cache.Config{
		Provider:              cfg.CacheProvider,
		RedisConnectionString: cfg.RedisConnectionString,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to initialize cache provider: %w", err)
	}

	if strings.TrimSpace(cfg.RatesURL) != "" {
		client := observability.NewHTTPClient(ratesRequestTimeout, observability.PropagationTargets(cfg.RatesURL))
		a.Refresher, err = currency.NewRefresher(currency.RefresherParams{
			Fetcher:  currency.NewHTTPFetcher(client, cfg.RatesURL, cfg.BaseCurrency),
			Store:    a.Rates,
			Cache:    a.CacheProvider,
			Interval: cfg.RatesRefreshInterval,
			Logger:   logger.With("component", "rate_refresher"),
		})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to initialize rate refresher: %w", err)
		}
	} else {
		logger.Warn("RATES_URL not set; prices are shown in the base currency only", "base_currency", cfg.BaseCurrency)
	}

	policy, err := cfg.QuotePolicy()
	if err != nil {
		a.Close()
		return nil, err
	}

	quoteService := services.NewQuoteService(
		catalogue,
		quote.NewEngine(policy),
		a.Rates,
		cfg.BaseCurrency,
		logger.With("component", "quote_service"),
	)

	a.Handlers, err = handlers.New(handlers.Dependencies{
		DB:           a.DB,
		QuoteService: quoteService,
		Logger:       logger,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to initialize handlers: %w", err)
	}

	return a, nil
}

func (a *App) newCatalogueProvider(ctx context.Context) (catalog.Provider, error) {
	switch a.Config.CatalogueProvider {
	case "postgres":
		database, err := db.Connect(ctx, a.Config.DatabaseURL)
		if err != nil {
			return nil, err
		}
		a.DB = database
		return db.NewCatalogueStore(database), nil
	default:
		provider := catalog.NewFileProvider(a.Config.CataloguePath)
		if _, err := provider.Load(ctx); err != nil {
			return nil, fmt.Errorf("failed to load catalogue %s: %w", a.Config.CataloguePath, err)
		}
		return provider, nil
	}
}

// RunBackground starts the rate refresher. It returns immediately; the
// refresher stops when ctx is canceled.
func (a *App) RunBackground(ctx context.Context) {
	if a == nil || a.Refresher == nil {
		return
	}
	go func() {
		if err := a.Refresher.Run(ctx); err != nil && ctx.Err() == nil {
			a.Logger.Error("rate refresher stopped unexpectedly", "error", err)
		}
	}()
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.CacheProvider != nil {
		closeCacheProvider(a.Logger, a.CacheProvider)
	}
	if a.DB != nil {
		a.DB.Close()
	}
	if a.sentryEnabled {
		sentry.Flush(2 * time.Second)
	}
}

func initSentry(cfg *config.Config) (bool, error) {
	dsn := strings.TrimSpace(cfg.SentryDSN)
	if dsn == "" {
		return false, nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		EnableTracing:    true,
		TracesSampleRate: 0.2,
		EnableLogs:       true,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func newLogger(cfg *config.Config, withSentry bool) *slog.Logger {
	var console slog.Handler
	switch strings.ToLower(strings.TrimSpace(cfg.LogFormat)) {
	case "json":
		console = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})
	default:
		console = tint.NewHandler(os.Stdout, &tint.Options{Level: cfg.LogLevel})
	}

	if !withSentry {
		return slog.New(console)
	}
	return slog.New(logging.MultiHandler(
		console,
		sentryslog.Option{
			EventLevel: []slog.Level{slog.LevelError},
			LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
		}.NewSentryHandler(context.Background()),
	))
}

func closeCacheProvider(logger *slog.Logger, provider cache.Provider) {
	if provider == nil {
		return
	}
	if err := provider.Close(); err != nil && logger != nil {
		logger.Warn("failed to close cache provider", "error", err)
	}
}
