package main

import (
	"context"
	"encoding/base64"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
	"golang.org/x/sync/errgroup"

	"github.com/crewdesk/crewdesk/internal/config"
	"github.com/crewdesk/crewdesk/internal/repository"
	"github.com/crewdesk/crewdesk/internal/server"
	"github.com/crewdesk/crewdesk/internal/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Println("Starting CrewDesk API...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize OpenTelemetry (for Grafana Cloud)
	// Grafana Cloud requires Basic auth with instanceId:apiToken base64 encoded
	authString := cfg.OTEL.InstanceID + ":" + cfg.OTEL.Token
	authEncoded := base64.StdEncoding.EncodeToString([]byte(authString))

	otelProvider, err := telemetry.Initialize(ctx, telemetry.Config{
		ServiceName:    cfg.OTEL.ServiceName,
		ServiceVersion: cfg.OTEL.ServiceVersion,
		Environment:    cfg.OTEL.Environment,
		OTLPEndpoint:   cfg.OTEL.Endpoint,
		OTLPHeaders: map[string]string{
			"Authorization": "Basic " + authEncoded,
		},
		Enabled: cfg.OTEL.Enabled,
	})
	if err != nil {
		log.Printf("Warning: Failed to initialize OpenTelemetry: %v", err)
	}
	if otelProvider != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			otelProvider.Shutdown(shutdownCtx)
		}()
	}

	// Connect to MongoDB with OpenTelemetry instrumentation
	ctxMongo, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongoOpts := options.Client().ApplyURI(cfg.MongoDB.URI)
	if cfg.OTEL.Enabled {
		mongoOpts.SetMonitor(otelmongo.NewMonitor())
	}

	mongoClient, err := mongo.Connect(ctxMongo, mongoOpts)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	// Ping MongoDB to verify connection
	if err := mongoClient.Ping(ctxMongo, nil); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}
	log.Println("✓ MongoDB connected")

	mongoDB := mongoClient.Database(cfg.MongoDB.Database)

	// Connect to Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	defer redisClient.Close()

	// Ping Redis to verify connection
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("✓ Redis connected")

	// Connect to object storage
	blobStore, err := repository.NewS3BlobStore(ctx, cfg.S3)
	if err != nil {
		log.Fatalf("Failed to initialize blob store: %v", err)
	}
	log.Println("✓ Object storage connected")

	// Initialize App using Server package
	app := server.NewApp(server.AppDependencies{
		Config:      cfg,
		MongoDB:     mongoDB,
		RedisClient: redisClient,
		BlobStore:   blobStore,
	})

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("🚀 Server starting on port %s", cfg.Server.Port)
		return app.Listen(":" + cfg.Server.Port)
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Println("Shutting down gracefully...")
		return app.ShutdownWithTimeout(10 * time.Second)
	})

	if err := g.Wait(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
