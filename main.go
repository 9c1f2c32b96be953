package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"boqgen/internal/api"
	"boqgen/internal/compliance"
	"boqgen/internal/config"
	"boqgen/internal/pdftext"
	"boqgen/internal/service/ai"
	"boqgen/internal/service/boq"
)

func main() {
	// .env is optional; real deployments use process environment variables.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	var completer ai.Completer
	if cfg.MockMode() {
		log.Printf("running in MOCK mode - completion calls will be simulated")
		completer = ai.NewMockCompleter()
	} else {
		chatModel, err := ai.NewChatModel(context.Background(), ai.ProviderConfig{
			Provider: cfg.Provider,
			APIKey:   cfg.APIKey,
			BaseURL:  cfg.BaseURL,
			Model:    cfg.Model,
		})
		if err != nil {
			log.Fatalf("init completion client: %v", err)
		}
		completer = ai.NewLiveCompleter(chatModel)
	}

	extractor := pdftext.NewExtractor()
	boqService := boq.NewService(extractor, completer)
	validator, err := compliance.NewValidator()
	if err != nil {
		log.Fatalf("init compliance validator: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept"}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	handler := api.NewHandler(cfg, extractor, boqService, validator)
	handler.RegisterRoutes(router)

	log.Printf("BOQ Generator API listening on %s (environment: %s, mock: %v)",
		cfg.Addr(), cfg.Environment, cfg.MockMode())
	if err := router.Run(cfg.Addr()); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
