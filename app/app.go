package app

import (
	"context"
	"errors"
	"fmt"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/Pranshu115/tatva/auth"
	"github.com/Pranshu115/tatva/config"
	"github.com/Pranshu115/tatva/httpclient"
	"github.com/Pranshu115/tatva/logger"
	"github.com/Pranshu115/tatva/observability"
	"github.com/Pranshu115/tatva/resource"
	"github.com/Pranshu115/tatva/services"
	"github.com/Pranshu115/tatva/session"
)

// App holds the wired client components.
type App struct {
	Config   *config.Config
	Logger   *logger.Logger
	Session  *session.Store
	Client   *httpclient.Client
	Auth     *auth.Flows
	Services *services.Services

	tracer    *sdktrace.TracerProvider
	meter     *sdkmetric.MeterProvider
	ownsStore bool
}

// New validates cfg and builds every component. The caller must Close
// the App.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	o := resolveOptions(opts)

	a := &App{Config: cfg, Logger: o.logger}
	if a.Logger == nil {
		logger.Init(cfg.Logging)
		a.Logger = logger.GetGlobalLogger()
	}

	var clientOpts []httpclient.Option
	if cfg.Tracing.Enabled {
		tp, err := observability.InitTracer(ctx, cfg.Tracing, cfg.Name, a.Logger)
		if err != nil {
			return nil, fmt.Errorf("app: %w", err)
		}
		a.tracer = tp
		clientOpts = append(clientOpts,
			httpclient.WithTracerProvider(tp),
			httpclient.WithPropagator(observability.Propagator()))
	}

	if cfg.Metrics.Enabled {
		mp, err := observability.InitMeter(ctx, cfg.Metrics, cfg.Tracing, cfg.Name, a.Logger)
		if err != nil {
			_ = a.Close(ctx)
			return nil, fmt.Errorf("app: %w", err)
		}
		a.meter = mp
		clientOpts = append(clientOpts, httpclient.WithMeterProvider(mp))
	}

	a.Session = o.store
	if a.Session == nil {
		store, err := session.Open(ctx, cfg.Session, a.Logger.WithComponent("session"))
		if err != nil {
			_ = a.Close(ctx)
			return nil, fmt.Errorf("app: %w", err)
		}
		a.Session = store
		a.ownsStore = true
	}

	nav := o.navigator
	if nav == nil {
		nav = httpclient.RedirectNavigator{
			LoginURL: cfg.LoginURL,
			Redirect: func(ctx context.Context, url string) {
				a.Logger.WithContext(ctx).Warn("session expired, sign in again", logger.Fields("login_url", url))
			},
		}
	}

	clientOpts = append(clientOpts, httpclient.WithLogger(a.Logger.WithComponent("httpclient")))
	if o.transport != nil {
		clientOpts = append(clientOpts, httpclient.WithTransport(o.transport))
	}
	client, err := httpclient.NewPipeline(cfg.API, a.Session, nav, clientOpts...)
	if err != nil {
		_ = a.Close(ctx)
		return nil, fmt.Errorf("app: %w", err)
	}
	a.Client = client

	a.Auth = auth.New(client, a.Session, auth.WithLogger(a.Logger))
	a.Services = services.New(client)

	a.Logger.Debug("client ready", logger.Fields(
		"base_url", cfg.API.BaseURL,
		logger.FieldBackend, cfg.Session.Backend,
	))
	return a, nil
}

// Paginate binds pages to a paginated resource using the configured
// page size and the App's logger.
func Paginate[T any](ctx context.Context, a *App, pages resource.PageFunc[T], opts ...resource.Option) *resource.Paginated[T] {
	base := []resource.Option{
		resource.WithPageSize(a.Config.Pagination.PageSize),
		resource.WithLogger(a.Logger),
	}
	return resource.NewPaginated(ctx, pages, append(base, opts...)...)
}

// Close releases the client, the session store it opened and the
// telemetry providers. It is safe on a partially built App.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.Client != nil {
		a.Client.Close()
	}
	if a.ownsStore && a.Session != nil {
		if err := a.Session.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close session store: %w", err))
		}
	}
	observability.ShutdownMeter(ctx, a.meter, a.Logger)
	observability.Shutdown(ctx, a.tracer, a.Logger)
	return errors.Join(errs...)
}
