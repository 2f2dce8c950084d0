package server

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ============================================================================
// CONFIG — environment-first daemon configuration
// ============================================================================
// Precedence: flags give defaults, environment variables override.
// A .env file in the working directory is merged into the environment
// before anything is read, so local setups need no shell exports.
// ============================================================================

const (
	defaultPort        = ":8081"
	defaultUploadBytes = 16 << 20 // 16 MiB, matches the upload cap clients expect
	defaultCacheSize   = 64
	defaultGeminiModel = "gemini-2.0-flash"
)

// Config holds the daemon's runtime settings.
type Config struct {
	Port           string
	GeminiAPIKey   string
	GeminiModel    string
	MaxUploadBytes int64
	CacheSize      int
}

// Load reads configuration from flags, .env, and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port := flag.String("port", defaultPort, "server port")
	flag.Parse()

	if envPort := os.Getenv("PORT"); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			*port = envPort
		} else {
			*port = ":" + envPort
		}
	}

	cfg := &Config{
		Port:           *port,
		GeminiAPIKey:   strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:    strings.TrimSpace(os.Getenv("GEMINI_MODEL")),
		MaxUploadBytes: defaultUploadBytes,
		CacheSize:      defaultCacheSize,
	}
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = defaultGeminiModel
	}
	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.MaxUploadBytes = n
		}
	}
	if v := os.Getenv("RENDER_CACHE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CacheSize = n
		}
	}
	return cfg, nil
}
