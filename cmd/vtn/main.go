// Command vtn starts the OpenADR 3.0 VTN authorization and visibility
// kernel's HTTP server: it loads configuration, wires every repository,
// service, and the Echo router, then serves until an interrupt signal
// triggers a graceful shutdown.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/openadr/vtn/internal/api"
	"github.com/openadr/vtn/internal/core/auth"
	"github.com/openadr/vtn/internal/core/ports"
	"github.com/openadr/vtn/internal/core/service"
	"github.com/openadr/vtn/internal/infrastructure/config"
	"github.com/openadr/vtn/internal/infrastructure/db/mongo"
	"github.com/openadr/vtn/internal/infrastructure/memory"
	"github.com/openadr/vtn/pkg/logger"
)

// tokenTTL is the lifetime granted to tokens issued by the internal
// client-credentials endpoint (spec §4.7 names no specific value).
const tokenTTL = time.Hour

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("startup failed")
		os.Exit(1)
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	verifier, err := buildVerifier(cfg)
	if err != nil {
		return fmt.Errorf("build verifier: %w", err)
	}

	repos, closeRepos, err := buildRepositories(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("build repositories: %w", err)
	}
	defer closeRepos(context.Background())

	svc, err := buildServices(cfg, repos, log)
	if err != nil {
		return fmt.Errorf("build services: %w", err)
	}

	e := api.NewRouter(verifier, svc, api.NewHTTPErrorHandler(log))

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
			return
		}
		serveErr <- nil
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

// buildVerifier translates the OAUTH_* configuration keys into an
// auth.Verifier (spec §6, §4.1).
func buildVerifier(cfg *config.Config) (auth.Verifier, error) {
	keyType := auth.KeyType(cfg.OAuth.KeyType)

	var hmacSecret []byte
	if keyType == auth.KeyTypeHMAC {
		secret, err := cfg.OAuth.Secret()
		if err != nil {
			return nil, err
		}
		hmacSecret = secret
	}

	return auth.NewVerifier(auth.Config{
		KeyType:      keyType,
		HMACSecret:   hmacSecret,
		JWKSLocation: cfg.OAuth.JWKSLocation,
		Audiences:    cfg.OAuth.ValidAudiences,
		Internal:     cfg.OAuth.Internal(),
	})
}

// repositories bundles every ports interface implementation the services
// need, regardless of which backend produced them.
type repositories struct {
	Programs    ports.ProgramRepository
	Events      ports.EventRepository
	Reports     ports.ReportRepository
	Vens        ports.VenRepository
	Resources   ports.ResourceRepository
	Users       ports.UserRepository
	Credentials ports.CredentialRepository
	// ping checks the backend is reachable. Nil for the in-memory backend.
	ping func(ctx context.Context) error
}

// buildRepositories connects to MongoDB per DATABASE_URL and constructs
// every repository against it. A DATABASE_URL of "memory" selects the
// in-memory backend instead, which the test suite and local development
// use in place of a running Mongo instance.
func buildRepositories(ctx context.Context, cfg *config.Config, log zerolog.Logger) (repositories, func(context.Context), error) {
	if cfg.DatabaseURL == "memory" {
		log.Info().Msg("using in-memory repositories")
		resources := memory.NewResourceRepository()
		return repositories{
			Programs:    memory.NewProgramRepository(),
			Events:      memory.NewEventRepository(),
			Reports:     memory.NewReportRepository(),
			Vens:        memory.NewVenRepository(resources),
			Resources:   resources,
			Users:       memory.NewUserRepository(),
			Credentials: memory.NewCredentialRepository(),
		}, func(context.Context) {}, nil
	}

	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.DatabaseURL,
		Database: cfg.DatabaseName(),
	})
	if err != nil {
		return repositories{}, nil, err
	}
	log.Info().Str("database", cfg.DatabaseName()).Msg("connected to mongo")

	closer := func(closeCtx context.Context) {
		if err := client.Disconnect(closeCtx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}

	return repositories{
		Programs:    mongo.NewProgramRepository(db),
		Events:      mongo.NewEventRepository(db),
		Reports:     mongo.NewReportRepository(db),
		Vens:        mongo.NewVenRepository(db),
		Resources:   mongo.NewResourceRepository(db),
		Users:       mongo.NewUserRepository(db),
		Credentials: mongo.NewCredentialRepository(db),
		ping: func(pingCtx context.Context) error {
			return client.Ping(pingCtx, nil)
		},
	}, closer, nil
}

// buildServices wires every domain service against its repositories. The
// token issuer is built only when this process is the token authority
// itself (spec §4.7: "optional" internal OAuth2 server).
func buildServices(cfg *config.Config, repos repositories, log zerolog.Logger) (api.Services, error) {
	svc := api.Services{
		Programs:  service.NewProgramService(repos.Programs, log),
		Events:    service.NewEventService(repos.Programs, repos.Events, log),
		Reports:   service.NewReportService(repos.Programs, repos.Reports, log),
		Vens:      service.NewVenService(repos.Vens, log),
		Resources: service.NewResourceService(repos.Vens, repos.Resources, log),
		Users:     service.NewUserService(repos.Users, log),
		Ready:     repos.ping,
	}

	if cfg.OAuth.Internal() {
		secret, err := cfg.OAuth.Secret()
		if err != nil {
			return api.Services{}, err
		}
		svc.Issuer = service.NewTokenIssuer(repos.Credentials, repos.Users, auth.NewHashPool(), secret, tokenTTL, log)
	}

	return svc, nil
}
