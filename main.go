package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"stella/config"
	dbpkg "stella/db"
	"stella/router"
	"stella/workers"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// =====================
// ENV esperadas
// =====================
//
// Server
// - CONFIG_PATH                   (ex: config.json; porta/banco ficam lá)
// - AUTOMIGRATE                   (1 para rodar automigrate em dev)
//
// Plataforma de voz (LiveKit)
// - LIVEKIT_URL
// - LIVEKIT_API_KEY
// - LIVEKIT_API_SECRET
//
// Agente
// - AGENT_API_TOKEN               (token estático dos callbacks do agente)
//
// OpenAI (fallback por texto)
// - OPENAI_API_KEY
// - OPENAI_MODEL                  (ex: gpt-4.1-mini)
// - OPENAI_SYSTEM_PROMPT          (opcional, sobrescreve a persona)
//
// =====================

func main() {
	// segredos locais em dev ficam no .env.local
	_ = godotenv.Load(".env.local")

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.json"
	}
	cfg := config.Get(configPath)

	dbpkg.SetConfigurations(cfg)
	database, err := dbpkg.Connect()
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	defer database.Close()

	r := gin.New()
	r.Use(dbpkg.SetDBtoContext(database))
	router.Initialize(r, cfg)

	workers.StartCallDispatcher(database, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.ApiPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("Stella listening on :%s (agent=%s)", cfg.ApiPort, cfg.Agent.Name)
	log.Fatal(srv.ListenAndServe())
}
