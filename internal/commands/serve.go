package commands

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"

	"github.com/iliyamo/property-backoffice/internal/config"
	"github.com/iliyamo/property-backoffice/internal/handler"
	"github.com/iliyamo/property-backoffice/internal/media"
	"github.com/iliyamo/property-backoffice/internal/notify"
	"github.com/iliyamo/property-backoffice/internal/obs"
	"github.com/iliyamo/property-backoffice/internal/repository"
	"github.com/iliyamo/property-backoffice/internal/router"
	"github.com/iliyamo/property-backoffice/internal/service"
	"github.com/iliyamo/property-backoffice/internal/session"
)

// ServeCmd runs the API until SIGINT or SIGTERM.
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if port, _ := cmd.Flags().GetString("port"); port != "" {
				cfg.App.Port = port
			}
			migrate, _ := cmd.Flags().GetBool("migrate")
			return serve(cmd.Context(), cfg, migrate)
		},
	}
	cmd.Flags().String("port", "", "Listen port (overrides APP_PORT)")
	cmd.Flags().Bool("migrate", false, "Apply the MySQL schema before serving")
	return cmd
}

func serve(ctx context.Context, cfg config.Config, migrate bool) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	l := newLogger("api", cfg.App.Env)

	shutdownTracer, err := obs.InitTracer(ctx, cfg.OTEL, cfg.App.Env)
	if err != nil {
		l.Warnf("tracing disabled: %v", err)
	}
	defer func() { _ = shutdownTracer(context.Background()) }()

	st, err := openStore(ctx, cfg, l)
	if err != nil {
		return err
	}
	defer func() {
		if st.Close != nil {
			_ = st.Close(context.Background())
		}
	}()
	if migrate {
		if err := migrateStore(ctx, cfg, l); err != nil {
			return err
		}
	}

	rdb := config.NewRedisClient(cfg.Redis)
	if rdb == nil {
		l.Warnf("redis unavailable: rate limiting and logout deny-list disabled")
	} else {
		defer rdb.Close()
	}

	notifier, closeNotifier := apiNotifier(cfg, l)
	defer func() { _ = closeNotifier() }()

	uploader, err := media.New(cfg.Cloudinary)
	if err != nil {
		return err
	}
	if !cfg.Cloudinary.Enabled() {
		l.Warnf("cloudinary not configured: image uploads will fail with 502")
	}

	revocations := session.NewRedisList(rdb)
	e := router.New(handlers(cfg, st, notifier, uploader, revocations, l), router.Options{
		JWTSecret:   cfg.JWTSecret,
		Revocations: revocations,
		RateLimit:   cfg.RateLimit,
		Redis:       rdb,
	})
	e.Logger = l

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.App.Port
		l.Infof("listening on %s (env=%s, store=%s)", addr, cfg.App.Env, cfg.Store.Driver)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	l.Infof("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(sctx)
}

func handlers(cfg config.Config, st *repository.Store, n notify.Notifier, up media.Uploader, rev session.Revocations, l *log.Logger) router.Handlers {
	lease := service.NewLeaseService(st, n, l)
	maintenance := service.NewMaintenanceService(st, n, l)
	refs := handler.NewRefs(st)
	return router.Handlers{
		Auth:        handler.NewAuthHandler(cfg.Auth, st.Users, st.Tokens, rev),
		Properties:  handler.NewPropertyHandler(st.Properties, up),
		Tenants:     handler.NewTenantHandler(st.Tenants, lease, refs),
		Contractors: handler.NewContractorHandler(st.Contractors),
		Maintenance: handler.NewMaintenanceHandler(st.Maintenance, maintenance, refs),
		Users:       handler.NewUserHandler(st.Users, cfg.BcryptCost),
		Stats:       handler.NewStatsHandler(st),
	}
}
