package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carecompass/internal/cache"
	"carecompass/internal/config"
	"carecompass/internal/model"
	"carecompass/internal/repository"
	"carecompass/internal/service"
	"carecompass/internal/symptoms"
	"carecompass/internal/transport/rest"
	"carecompass/internal/triage"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "carecompass.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// MongoDB connection (optional). When configured, evidence is read
	// from the database instead of the bundled file and the facility
	// lookup is enabled.
	var evidenceOverride []model.EvidenceRecord
	var facilityRepo repository.FacilityRepo
	if cfg.MongoURI != "" {
		mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			log.Fatal("Failed to connect to MongoDB:", err)
		}
		defer mongoClient.Disconnect(ctx)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := mongoClient.Ping(pingCtx, nil); err != nil {
			log.Fatal("Failed to ping MongoDB:", err)
		}
		log.Println("Connected to MongoDB")

		db := mongoClient.Database(cfg.MongoDatabase)
		facilityRepo = repository.NewFacilityRepo(db)

		evidenceRepo := repository.NewEvidenceRepo(db)
		records, err := evidenceRepo.LoadAll(ctx)
		if err != nil {
			log.Fatal("Failed to load evidence from MongoDB:", err)
		}
		if len(records) > 0 {
			evidenceOverride = records
			log.Printf("Loaded %d evidence records from MongoDB", len(records))
		} else {
			log.Println("Warning: evidence collection is empty, using bundled file")
		}
	} else {
		log.Println("MONGO_URI not set, facility lookup disabled")
	}

	// Triage engine: question bank, red-flag rules, acuity weights,
	// evidence and warning signs. Any integrity error here is fatal.
	engine, err := triage.LoadEngine(cfg.DataDir, evidenceOverride)
	if err != nil {
		log.Fatal("Failed to load triage data:", err)
	}
	log.Printf("Triage engine loaded from %s", cfg.DataDir)

	// Redis connection (optional). Without it sessions live in process
	// memory and do not survive restarts.
	var sessionStore cache.SessionStore
	sessionTTL := time.Duration(cfg.SessionTTLMinutes) * time.Minute
	if cfg.RedisURI != "" {
		redisAddr := cfg.RedisURI
		// Remove redis:// prefix if present
		if len(redisAddr) > 8 && redisAddr[:8] == "redis://" {
			redisAddr = redisAddr[8:]
		}

		rdb := redis.NewClient(&redis.Options{
			Addr: redisAddr,
		})
		defer rdb.Close()

		if _, err := rdb.Ping(ctx).Result(); err != nil {
			log.Fatal("Failed to ping Redis:", err)
		}
		log.Println("Connected to Redis")

		sessionStore = cache.NewRedisSessionStore(rdb, sessionTTL)
	} else {
		log.Println("REDIS_URI not set, using in-memory session store")
		sessionStore = cache.NewMemorySessionStore()
	}

	// Free-text extraction: keyword matching, upgraded to the language
	// model when an API key is configured.
	var parser symptoms.Parser = symptoms.NewKeywordParser()
	if cfg.OpenAIKey != "" {
		parser = symptoms.NewOpenAIParser(cfg.OpenAIKey, cfg.OpenAIModel, parser)
		log.Printf("Symptom extraction: OpenAI %s with keyword fallback", cfg.OpenAIModel)
	} else {
		log.Println("Symptom extraction: keyword matching (OPENAI_API_KEY not set)")
	}

	// Initialize services
	tokenSvc := service.NewTokenService(cfg.SessionSecret, sessionTTL)
	interviewSvc := service.NewInterviewService(engine, sessionStore, parser)
	facilitySvc := service.NewFacilityService(facilityRepo)

	// Create router with container
	container := &rest.Container{
		InterviewService: interviewSvc,
		FacilityService:  facilitySvc,
		TokenService:     tokenSvc,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		log.Println("Endpoints:")
		log.Println("  POST   /v1/sessions")
		log.Println("  GET    /v1/sessions/current/question")
		log.Println("  POST   /v1/sessions/current/answers")
		log.Println("  GET    /v1/sessions/current/recommendation")
		log.Println("  DELETE /v1/sessions/current")
		log.Println("  GET    /v1/facilities?zip=")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
