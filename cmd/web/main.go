package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/peterkuimelis/hanabi/internal/web"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	port := flag.String("port", getEnv("PORT", "8080"), "HTTP port to listen on")
	presetsFile := flag.String("presets", getEnv("PRESETS", "presets.yaml"), "path to presets YAML file")
	flag.Parse()

	srv, err := web.NewServer(*presetsFile, log.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log.Info().Str("port", *port).Msgf("hanabi web UI listening on http://localhost:%s", *port)
	if err := srv.ListenAndServe(":" + *port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
