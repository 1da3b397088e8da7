package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rafaelmp/fitcrm/internal/infra/database"
	"github.com/rafaelmp/fitcrm/internal/infra/http/handlers"
	appmiddleware "github.com/rafaelmp/fitcrm/internal/infra/http/middleware"
	"github.com/rafaelmp/fitcrm/internal/infra/mail"
	"github.com/rafaelmp/fitcrm/internal/infra/queue"
	"github.com/rafaelmp/fitcrm/internal/infra/worker"
	"github.com/rafaelmp/fitcrm/internal/usecase"
)

func main() {
	godotenv.Load()

	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.Kitchen,
	})))

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		os.Getenv("RABBITMQ_USER"), os.Getenv("RABBITMQ_PASS"),
		os.Getenv("RABBITMQ_HOST"), os.Getenv("RABBITMQ_PORT"),
	)
	if err != nil {
		panic(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositórios
	leadRepo := database.NewLeadRepository(db)
	auditRepo := database.NewImportAuditRepository(db)

	// 2. Adapters
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

	mailPort, _ := strconv.Atoi(os.Getenv("MAIL_PORT"))
	if mailPort == 0 {
		mailPort = 587
	}
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), mailPort, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
	)

	// 3. Workers
	auditWorker := queue.NewWorker(rabbitMQ.Ch, auditRepo)
	go auditWorker.Start(queue.QueueName)

	agingWorker := worker.NewLeadAgingWorker(db)
	go agingWorker.Start(context.Background())

	// 4. UseCases
	chunkSize, _ := strconv.Atoi(os.Getenv("IMPORT_CHUNK_SIZE"))
	importUC := usecase.NewImportLeadsUseCase(
		leadRepo, producer, mailSender, usecase.SystemClock{},
		chunkSize, os.Getenv("IMPORT_REPORT_EMAIL"),
	)

	// 5. Handlers
	importHandler := handlers.NewImportHandler(importUC)
	leadHandler := handlers.NewLeadHandler(importUC, leadRepo)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(appmiddleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))

	r.Post("/leads/import", importHandler.Handle)
	r.Post("/leads", leadHandler.CaptureLead)
	r.Get("/leads", leadHandler.ListLeads)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := ":8080"
	log.Printf("🔥 Server FitCRM rodando na porta %s", port)
	http.ListenAndServe(port, r)
}
