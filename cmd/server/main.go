package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skyline-ingest/internal/domain/entity"
	"skyline-ingest/internal/domain/repository"
	"skyline-ingest/internal/infrastructure/config"
	"skyline-ingest/internal/infrastructure/persistence"
	"skyline-ingest/internal/infrastructure/router"
	ingestRepo "skyline-ingest/internal/interface/repository"
	"skyline-ingest/internal/usecase"
	"skyline-ingest/pkg/logger"
	"skyline-ingest/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// captureRequest is the external capture input shape.
type captureRequest struct {
	Type   string `json:"type"`
	Data   string `json:"data"`
	Source string `json:"source"`
}

func main() {
	// Create logger
	log := logger.NewLogger()
	defer log.Sync()
	log.Info("Starting Skyline Ingest Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Select the ticket collection backend
	var ticketRepo repository.TicketRepository
	var mongoClient *mongo.Client

	if cfg.StorageBackend == "mongo" {
		log.Info("Connecting to MongoDB")
		client, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
		if err != nil {
			log.Fatal("Failed to connect to MongoDB", "error", err)
		}
		mongoClient = client
		ticketRepo = ingestRepo.NewMongoTicketRepository(db)
	} else {
		log.Info("Using file ticket store", "path", cfg.TicketsFile)
		ticketRepo = ingestRepo.NewFileTicketRepository(cfg.TicketsFile, log)
	}

	// Optional airline/airport master data
	var airlineRepository repository.AirlineRepository
	var airportRepository repository.AirportRepository

	if cfg.PostgresDSN != "" {
		gormDB, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", "error", err)
		}
		airlineRepository = ingestRepo.NewGormAirlineRepository(gormDB)
		airportRepository = ingestRepo.NewGormAirportRepository(gormDB)
	}

	// Schedule enrichment client
	scheduleRepository := ingestRepo.NewScheduleAPIRepository(ingestRepo.ScheduleAPIConfig{
		BaseURL:           cfg.ScheduleAPIURL,
		APIKey:            cfg.ScheduleAPIKey,
		APIHost:           cfg.ScheduleAPIHost,
		OAuthTokenURL:     cfg.ScheduleOAuthTokenURL,
		OAuthClientID:     cfg.ScheduleOAuthClientID,
		OAuthClientSecret: cfg.ScheduleOAuthClientKey,
	}, log)

	m := metrics.NewMetrics("skyline_ingest")

	// Pipeline and capture routing
	processor := usecase.NewTicketProcessor(ticketRepo, scheduleRepository, airlineRepository, airportRepository, log, m)

	captureRouter := router.NewSourceRouter(log)
	captureRouter.Register(usecase.NewCaptureHandlerAdapter(processor, "barcode",
		[]entity.CaptureSource{entity.SourceCamera, entity.SourceGallery}))
	captureRouter.Register(usecase.NewCaptureHandlerAdapter(processor, "ocr",
		[]entity.CaptureSource{entity.SourceOCR}))

	// Set up HTTP server
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	mux.HandleFunc("/api/v1/captures", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req captureRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		source := entity.CaptureSource(req.Source)
		handler := captureRouter.GetHandler(source)
		if handler == nil {
			http.Error(w, "unknown capture source", http.StatusBadRequest)
			return
		}

		start := time.Now()
		record, err := handler.Process(r.Context(), &entity.RawCapture{
			Source:      source,
			BarcodeType: req.Type,
			Payload:     req.Data,
		})
		m.ProcessingTime.Observe(time.Since(start).Seconds())
		if err != nil {
			m.ErrorsCount.WithLabelValues("append").Inc()
			log.Error("Capture processing failed", "error", err)
			http.Error(w, "failed to persist record", http.StatusInternalServerError)
			return
		}
		m.CapturesProcessed.Inc()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(record)
	})

	mux.HandleFunc("/api/v1/tickets", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		records, err := ticketRepo.FindAll(r.Context())
		if err != nil {
			m.ErrorsCount.WithLabelValues("list").Inc()
			log.Error("Failed to load ticket collection", "error", err)
			http.Error(w, "failed to load collection", http.StatusInternalServerError)
			return
		}
		if records == nil {
			records = []entity.FlightTicketRecord{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(records)
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	// Disconnect from MongoDB
	if mongoClient != nil {
		if err := mongoClient.Disconnect(ctx); err != nil {
			log.Error("MongoDB disconnect error", "error", err)
		}
	}

	log.Info("Skyline Ingest Service stopped")
}
