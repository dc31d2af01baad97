package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/stavrosm/city-clinic/records-service/internal/adapters/handler"
	"github.com/stavrosm/city-clinic/records-service/internal/adapters/middleware"
	"github.com/stavrosm/city-clinic/records-service/internal/adapters/repository"
	"github.com/stavrosm/city-clinic/records-service/internal/adapters/session"
	"github.com/stavrosm/city-clinic/records-service/internal/config"
	"github.com/stavrosm/city-clinic/records-service/internal/core/services"
)

var (
	anyOperator = []string{"ADMIN", "DOCTOR", "RECEPTIONIST"}
	clinicians  = []string{"ADMIN", "DOCTOR"}
	adminOnly   = []string{"ADMIN"}
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	cfg := config.Load()
	ctx := context.Background()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	log.Println("Connected to Redis successfully")

	userRepo := repository.NewUserRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	diseaseRepo := repository.NewDiseaseRepository(db)
	diagnosisRepo := repository.NewDiagnosisRepository(db)

	sessionService := services.NewSessionService(userRepo)
	patientService := services.NewPatientService(patientRepo)
	diseaseService := services.NewDiseaseService(diseaseRepo)
	diagnosisService := services.NewDiagnosisService(diagnosisRepo)

	tokenManager := session.NewTokenManager(cfg.JWTPrivateKey)
	revocationStore := session.NewRedisRevocationStore(redisClient)
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTPublicKey, revocationStore)

	authHandler := handler.NewAuthHandler(sessionService, tokenManager, revocationStore)
	patientHandler := handler.NewPatientHandler(patientService)
	diseaseHandler := handler.NewDiseaseHandler(diseaseService)
	diagnosisHandler := handler.NewDiagnosisHandler(diagnosisService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	mux := http.NewServeMux()

	// Health endpoints (probe compatible)
	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/health/ready", healthHandler.Ready)
	mux.HandleFunc("/health/live", healthHandler.Live)
	mux.Handle("/metrics", promhttp.Handler())

	// Session
	mux.HandleFunc("POST /login",
		middleware.Metrics("/login", authHandler.Login))
	mux.HandleFunc("POST /logout",
		middleware.Metrics("/logout", authMiddleware.RequireRole(anyOperator, authHandler.Logout)))

	// Patient directory
	mux.HandleFunc("GET /patients",
		middleware.Metrics("/patients", authMiddleware.RequireRole(anyOperator, patientHandler.List)))
	mux.HandleFunc("POST /patients",
		middleware.Metrics("/patients", authMiddleware.RequireRole(anyOperator, patientHandler.Create)))
	mux.HandleFunc("GET /patients/{id}",
		middleware.Metrics("/patients/{id}", authMiddleware.RequireRole(anyOperator, patientHandler.Get)))
	mux.HandleFunc("PUT /patients/{id}",
		middleware.Metrics("/patients/{id}", authMiddleware.RequireRole(anyOperator, patientHandler.Update)))
	mux.HandleFunc("DELETE /patients/{id}",
		middleware.Metrics("/patients/{id}", authMiddleware.RequireRole(adminOnly, patientHandler.Delete)))

	// Disease catalog
	mux.HandleFunc("GET /diseases",
		middleware.Metrics("/diseases", authMiddleware.RequireRole(anyOperator, diseaseHandler.List)))
	mux.HandleFunc("POST /diseases",
		middleware.Metrics("/diseases", authMiddleware.RequireRole(clinicians, diseaseHandler.Create)))
	mux.HandleFunc("GET /diseases/{id}",
		middleware.Metrics("/diseases/{id}", authMiddleware.RequireRole(anyOperator, diseaseHandler.Get)))

	// Diagnosis episodes
	mux.HandleFunc("GET /patients/{id}/diagnoses",
		middleware.Metrics("/patients/{id}/diagnoses", authMiddleware.RequireRole(anyOperator, diagnosisHandler.ListForPatient)))
	mux.HandleFunc("POST /patients/{id}/diagnoses",
		middleware.Metrics("/patients/{id}/diagnoses", authMiddleware.RequireRole(clinicians, diagnosisHandler.Add)))
	mux.HandleFunc("DELETE /diagnoses/{id}",
		middleware.Metrics("/diagnoses/{id}", authMiddleware.RequireRole(clinicians, diagnosisHandler.Remove)))

	root := middleware.CORS([]string{"*"})(mux)

	log.Printf("Starting server on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, root); err != nil {
		log.Fatalf("Could not start server: %s\n", err)
	}
}
