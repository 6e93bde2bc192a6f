package main

import (
	log "github.com/sirupsen/logrus"
	"os"
	"strconv"
	"strings"
	"time"
)

type config struct {
	addr           string
	origins        []string
	uploadDir      string
	uploadMaxBytes int64
	uploadTTL      time.Duration
	logLevel       string
}

// configFromEnv builds the defaults that flags may override.
func configFromEnv() config {
	return config{
		addr:           envString("SERVER_ADDR", ":8081"),
		origins:        parseOrigins(os.Getenv("ALLOWED_ORIGINS")),
		uploadDir:      envString("UPLOAD_DIR", "uploads"),
		uploadMaxBytes: envInt64("UPLOAD_MAX_BYTES", 10<<20),
		uploadTTL:      envDuration("UPLOAD_TTL", 24*time.Hour),
		logLevel:       envString("LOG_LEVEL", "info"),
	}
}

// parseOrigins splits a comma-separated allow-list. Entries are used
// as exact Origin matches, so they keep their scheme and case.
func parseOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.WithFields(log.Fields{"key": key, "value": v}).Warn("ignoring unparseable env value")
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.WithFields(log.Fields{"key": key, "value": v}).Warn("ignoring unparseable env value")
		return fallback
	}
	return d
}
