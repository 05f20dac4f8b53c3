package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"coatrans/internal/api"
	"coatrans/internal/config"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()

	log.SetOutput(os.Stdout)
	if level, err := log.ParseLevel(os.Getenv("COATRANS_LOG_LEVEL")); err == nil {
		log.SetLevel(level)
	}

	s := api.NewServer(cfg)
	log.WithField("addr", cfg.APIAddr).
		WithField("providers", cfg.LLMProviders).
		WithField("model", cfg.DefaultModel).
		Info("coatrans api listening")
	if err := http.ListenAndServe(cfg.APIAddr, s.Routes()); err != nil {
		log.Fatal(err)
	}
}
