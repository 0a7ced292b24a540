// Command mobictl drives the MobiCorp storefront from a terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/mobicorp/storefront/internal/core/ports"
	"github.com/mobicorp/storefront/internal/core/service"
	"github.com/mobicorp/storefront/internal/infrastructure/httpclient"
	"github.com/mobicorp/storefront/internal/infrastructure/queue"
	"github.com/mobicorp/storefront/internal/infrastructure/tokenstore"
	"github.com/mobicorp/storefront/internal/pkg/config"
	"github.com/mobicorp/storefront/internal/pkg/validate"
	"github.com/mobicorp/storefront/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string) int {
	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  true,
		Output:  os.Stderr,
		Service: "mobictl",
	})

	store, err := tokenstore.Open(ctx, tokenstore.Config{
		Backend:       cfg.Token.Store,
		File:          cfg.Token.File,
		Secret:        cfg.Token.Secret,
		RedisAddr:     cfg.Redis.Addr,
		RedisDB:       cfg.Redis.DB,
		MongoURI:      cfg.Mongo.URI,
		MongoDatabase: cfg.Mongo.Database,
	})
	if err != nil {
		log.Error().Err(err).Str("backend", cfg.Token.Store).Msg("token store unavailable")
		return 1
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = store.Close(closeCtx)
	}()

	client, err := httpclient.New(httpclient.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		RateLimit: cfg.API.RateLimit,
		RateBurst: cfg.API.RateBurst,
	}, httpclient.WithLogger(logger.Component("httpclient")))
	if err != nil {
		log.Error().Err(err).Msg("invalid storefront API configuration")
		return 2
	}

	a := newApp(client, store, queue.NewDispatcher(cfg.SuggestWorkers, logger.Component("dispatcher")), os.Stdin, os.Stdout, os.Stderr)
	if err := a.sessions.Restore(ctx); err != nil {
		log.Debug().Err(err).Msg("stored session could not be restored")
	}

	if err := a.run(ctx, args); err != nil {
		if errors.Is(err, errUsage) {
			if err != errUsage {
				fmt.Fprintln(os.Stderr, err)
			}
			return 2
		}
		fmt.Fprintln(os.Stderr, describe(err))
		return 1
	}
	return 0
}

// newApp wires the services the way both the CLI and its tests use them.
func newApp(client *httpclient.Client, store ports.TokenStore, dispatcher service.SuggestionDispatcher, stdin io.Reader, stdout, stderr io.Writer) *app {
	nav := ports.NavigatorFunc(func(context.Context, string) {
		fmt.Fprintln(stderr, "Sesión expirada. Inicie sesión con: mobictl login")
	})
	sessions := service.NewSessionService(client, store, nav, logger.Component("session"))
	authorized := client.Authorized(sessions, sessions)

	return &app{
		sessions: sessions,
		catalog:  service.NewCatalogService(authorized, validate.New(), logger.Component("catalog")),
		prices:   service.NewPriceService(authorized, authorized, dispatcher, logger.Component("prices")),
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
		now:      time.Now,
	}
}
