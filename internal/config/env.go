package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Env struct {
	AppAddr          string
	GinMode          string
	JWTSecret        string
	GeocoderBaseURL  string
	GeocoderTimeout  time.Duration
	GeocodeCacheSize int
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		secret = "super-secret-key-change-me"
	}

	baseURL := strings.TrimSpace(os.Getenv("GEOCODER_BASE_URL"))
	if baseURL == "" {
		baseURL = "https://nominatim.openstreetmap.org"
	}

	timeout := 5 * time.Second
	if ms := strings.TrimSpace(os.Getenv("GEOCODER_TIMEOUT_MS")); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 {
			timeout = time.Duration(v) * time.Millisecond
		}
	}

	cacheSize := 2048
	if s := strings.TrimSpace(os.Getenv("GEOCODE_CACHE_SIZE")); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			cacheSize = v
		}
	}

	return Env{
		AppAddr:          appAddr,
		GinMode:          ginMode,
		JWTSecret:        secret,
		GeocoderBaseURL:  baseURL,
		GeocoderTimeout:  timeout,
		GeocodeCacheSize: cacheSize,
	}
}
