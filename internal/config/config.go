package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// GetInt parses key as an integer. Malformed values are logged and the fallback is used.
func GetInt(key string, fallback int) int {
	raw := Get(key, "")
	if raw == "" {
		return fallback
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("config: invalid integer key=%s value=%q, using %d", key, raw, fallback)
		return fallback
	}
	return n
}

func GetBool(key string, fallback bool) bool {
	raw := Get(key, "")
	if raw == "" {
		return fallback
	}

	b, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("config: invalid bool key=%s value=%q, using %t", key, raw, fallback)
		return fallback
	}
	return b
}
