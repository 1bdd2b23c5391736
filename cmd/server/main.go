package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	// OpenTelemetry
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"

	// Interne
	"github.com/HamdanRaza309/Social-Media-App-Backend/config"
	"github.com/HamdanRaza309/Social-Media-App-Backend/internal/adapters/primary/rest"
	"github.com/HamdanRaza309/Social-Media-App-Backend/internal/adapters/secondary/eventbroker"
	"github.com/HamdanRaza309/Social-Media-App-Backend/internal/adapters/secondary/repository"
	"github.com/HamdanRaza309/Social-Media-App-Backend/internal/adapters/secondary/security"
	"github.com/HamdanRaza309/Social-Media-App-Backend/internal/core/services"
)

func main() {
	// 1. Charger la config
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	// 2. Logger (slog JSON pour la prod, Text pour le dev)
	initLogger(cfg)
	slog.Info("🚀 Starting Social Media Backend", "env", cfg.Env, "port", cfg.HTTPPort)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Tracing (OpenTelemetry)
	tp, err := initTracer(ctx, cfg)
	if err != nil {
		slog.Error("Failed to init tracer", "error", err)
	} else {
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				slog.Error("Error shutting down tracer", "error", err)
			}
		}()
	}

	// 4. Infrastructure : Document Store (MongoDB)
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		slog.Error("Unable to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	// Vérification connectivité immédiate (Fail Fast)
	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()
	if err := mongoClient.Ping(pingCtx, readpref.Primary()); err != nil {
		slog.Error("MongoDB ping failed", "error", err)
		os.Exit(1)
	}
	slog.Info("✅ MongoDB connected")

	accountRepo := repository.NewAccountRepo(mongoClient, cfg.MongoDB)
	postRepo := repository.NewPostRepo(mongoClient, cfg.MongoDB)

	// Index d'unicité et de lookup (idempotent)
	if err := accountRepo.EnsureIndexes(ctx); err != nil {
		slog.Error("Failed to ensure account indexes", "error", err)
		os.Exit(1)
	}
	if err := postRepo.EnsureIndexes(ctx); err != nil {
		slog.Error("Failed to ensure post indexes", "error", err)
		os.Exit(1)
	}

	// 5. Infrastructure : Event Broker (NATS JetStream)
	broker, err := eventbroker.NewNatsBroker(cfg.NatsURL)
	if err != nil {
		slog.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	slog.Info("✅ NATS JetStream connected")

	// 6. Infrastructure : Sécurité (Clés RSA & Argon2)
	privKey, pubKey, err := loadKeys(cfg.RSAPrivateKeyPath, cfg.RSAPublicKeyPath)
	if err != nil {
		slog.Error("Failed to load RSA keys", "error", err)
		os.Exit(1)
	}

	tokenProvider, err := security.NewJWTProvider(privKey, pubKey, cfg.TokenTTL)
	if err != nil {
		slog.Error("Failed to init JWT provider", "error", err)
		os.Exit(1)
	}

	hasher := security.NewArgon2Hasher(nil) // Params par défaut

	// 7. Wiring (Injection de dépendances) — Adapters -> Services
	identityService := services.NewIdentityService(accountRepo, hasher, tokenProvider, broker)
	graphService := services.NewGraphService(accountRepo, broker)
	postService := services.NewPostService(postRepo, accountRepo, broker)
	interactionService := services.NewInteractionService(postRepo, accountRepo)
	feedService := services.NewFeedService(postRepo, accountRepo)

	restServer := rest.NewServer(identityService, graphService, postService, interactionService, feedService)

	// 8. Pipeline HTTP : CORS -> Tracing -> Routeur
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true, // Obligatoire pour le cookie de session
	})

	handler := otelhttp.NewHandler(corsHandler.Handler(restServer.Handler()), "http.server")

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 9. Démarrage du serveur (Goroutine)
	go func() {
		slog.Info("🚀 HTTP Server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Failed to serve", "error", err)
			os.Exit(1)
		}
	}()

	// 10. Graceful Shutdown (attente des signaux OS)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	sig := <-quit
	slog.Info("⚠️  Signal received, shutting down...", "signal", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("⏳ Timeout reached, forcing server stop", "error", err)
		_ = srv.Close()
	} else {
		slog.Info("✅ HTTP Server stopped gracefully")
	}

	slog.Info("👋 Service stopped")
}

// --- HELPERS ---

func initLogger(cfg *config.Config) {
	var handler slog.Handler
	if cfg.Env == "local" {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))
}

func initTracer(ctx context.Context, cfg *config.Config) (*sdktrace.TracerProvider, error) {
	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.OtelEndpoint),
		otlptracegrpc.WithInsecure(), // En prod, gérez le TLS
	)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.ServiceName),
			semconv.ServiceVersionKey.String("1.0.0"),
			semconv.DeploymentEnvironmentKey.String(cfg.Env),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return tp, nil
}

func loadKeys(privPath, pubPath string) ([]byte, []byte, error) {
	priv, err := os.ReadFile(privPath)
	if err != nil {
		return nil, nil, fmt.Errorf("reading private key: %w", err)
	}
	pub, err := os.ReadFile(pubPath)
	if err != nil {
		return nil, nil, fmt.Errorf("reading public key: %w", err)
	}
	return priv, pub, nil
}
