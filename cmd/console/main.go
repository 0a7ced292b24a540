// Command console serves the MobiCorp storefront operator console: the
// session, catalog, and price comparison views as JSON over HTTP.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mobicorp/storefront/internal/api"
	"github.com/mobicorp/storefront/internal/api/handler"
	"github.com/mobicorp/storefront/internal/api/middleware"
	"github.com/mobicorp/storefront/internal/core/service"
	"github.com/mobicorp/storefront/internal/infrastructure/httpclient"
	"github.com/mobicorp/storefront/internal/infrastructure/queue"
	"github.com/mobicorp/storefront/internal/infrastructure/tokenstore"
	"github.com/mobicorp/storefront/internal/pkg/config"
	"github.com/mobicorp/storefront/internal/pkg/validate"
	"github.com/mobicorp/storefront/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx := context.Background()
	cfg := config.MustLoad(ctx)

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "console",
		Caller:  true,
		File:    cfg.LogFile,
	})
	log.Info().Str("env", cfg.Env).Str("api", cfg.API.BaseURL).Msg("console starting")

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
		log.Fatal().Err(err).Str("backend", cfg.Token.Store).Msg("token store unavailable")
	}

	client, err := httpclient.New(httpclient.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		RateLimit: cfg.API.RateLimit,
		RateBurst: cfg.API.RateBurst,
	}, httpclient.WithLogger(logger.Component("httpclient")))
	if err != nil {
		log.Fatal().Err(err).Msg("invalid storefront API configuration")
	}

	sessions := service.NewSessionService(client, store, middleware.Navigator(), logger.Component("session"))
	authorized := client.Authorized(sessions, sessions)
	dispatcher := queue.NewDispatcher(cfg.SuggestWorkers, logger.Component("dispatcher"))

	if err := sessions.Restore(ctx); err != nil {
		log.Warn().Err(err).Msg("stored session could not be restored")
	}

	e := api.NewRouter(api.Deps{
		Sessions: sessions,
		Catalog:  service.NewCatalogService(authorized, validate.New(), logger.Component("catalog")),
		Prices:   service.NewPriceService(authorized, authorized, dispatcher, logger.Component("prices")),
		Health: map[string]handler.Pinger{
			"storefront_api": client,
			"token_store":    store,
		},
		Log:         logger.Component("http"),
		CORSOrigins: cfg.CORSOrigins,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("console listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if err := store.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("token store close failed")
	}

	log.Info().Msg("console stopped")
}
