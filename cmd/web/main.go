package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"car-persona-ai-bot/internal/gemini"
	"car-persona-ai-bot/internal/httpclient"
	"car-persona-ai-bot/internal/persona"
	"car-persona-ai-bot/internal/server"
)

func main() {
	_ = godotenv.Load()

	apiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	addr := strings.TrimSpace(getEnv("WEB_ADDR", ":8080"))

	logger := newLogger(getEnv("LOG_LEVEL", "info"))
	if apiKey == "" {
		// Not fatal: the handler answers 500 per request until the key
		// is configured, without ever calling upstream.
		logger.Warn("GEMINI_API_KEY is not set; analysis requests will fail")
	}

	httpTimeout := time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 60)) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 60 * time.Second
	}

	httpClient := httpclient.New(httpclient.Options{
		PreferIPv4: getEnvBool("PREFER_IPV4", true),
		Timeout:    httpTimeout,
	})

	gem := gemini.New(gemini.Options{
		APIKey:     apiKey,
		BaseURL:    strings.TrimSpace(getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com")),
		APIVersion: strings.TrimSpace(getEnv("GEMINI_API_VERSION", "v1beta")),
		Model:      strings.TrimSpace(getEnv("GEMINI_MODEL", "gemini-1.5-flash-latest")),
		HTTPClient: httpClient,
		Logger:     logger,
	})

	analyzer := persona.NewAnalyzer(persona.Options{
		Generator: gem,
		Logger:    logger,
	})

	requestTimeout := time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 120)) * time.Second

	srv := server.New(server.Options{
		Analyzer:       analyzer,
		APIKey:         apiKey,
		RequestTimeout: requestTimeout,
		Logger:         logger,
	})

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      3 * time.Minute,
		IdleTimeout:       90 * time.Second,
	}

	logger.Info("web started", "addr", addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "err", err)
	}
}

func newLogger(level string) *slog.Logger {
	logLevel := slog.LevelInfo
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
