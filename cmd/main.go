package main

import (
	"log"
	"net/http"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/Vovarama1992/go-utils/logger"

	"github.com/clarityai/analysis-backend/internal/analysis"
	"github.com/clarityai/analysis-backend/internal/config"
	"github.com/clarityai/analysis-backend/internal/delivery"
	"github.com/clarityai/analysis-backend/internal/infra"
	"github.com/clarityai/analysis-backend/internal/ports"
	"github.com/clarityai/analysis-backend/internal/speech"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {

	// =========================================================================
	// ENV / CONFIG
	// =========================================================================

	_ = godotenv.Load()

	cfg := config.Load()

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	// Provider keys are soft: a missing key degrades that path (fallback
	// analysis, 503 on the voice routes) instead of failing startup.
	if cfg.OpenRouterKey == "" {
		log.Printf("[startup] OPENROUTER_API_KEY not set, /analyze will serve the fallback result")
	}

	// =========================================================================
	// INFRASTRUCTURE
	// =========================================================================

	var s3Client ports.S3Client
	if cfg.S3Enabled() {
		var err error
		s3Client, err = infra.NewS3Client(cfg)
		if err != nil {
			log.Fatalf("failed to init s3: %v", err)
		}
	}

	// =========================================================================
	// CLIENTS (LLM / STT / TTS)
	// =========================================================================

	openRouterClient := analysis.NewOpenRouterClient(cfg)

	var sttClient speech.STTClient
	if cfg.OpenAIKey != "" {
		sttClient = speech.NewWhisperClient(cfg.OpenAIKey)
	}

	var ttsClient speech.TTSClient
	var voiceCloner speech.VoiceCloner
	if cfg.ElevenLabsKey != "" {
		el := speech.NewElevenLabsClient(cfg)
		ttsClient = el
		voiceCloner = el
	}

	// =========================================================================
	// SERVICES
	// =========================================================================

	analysisService := analysis.NewService(openRouterClient, cfg, zl)

	speechService := speech.NewService(
		sttClient,
		ttsClient,
		voiceCloner,
		s3Client,
		zl,
		cfg.DefaultVoiceID,
	)

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	analysisHandler := delivery.NewAnalysisHandler(analysisService, zl)
	speechHandler := delivery.NewSpeechHandler(speechService, zl)

	delivery.RegisterRoutes(r, analysisHandler, speechHandler)

	r.With(httputil.RecoverMiddleware).Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(200)
		w.Write([]byte("pong"))
	})

	// =========================================================================
	// START SERVER
	// =========================================================================

	addr := ":" + cfg.Port
	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "listening at " + addr,
		Service: "analysis-backend",
	})

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
