package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the service settings
type Config struct {
	Env                string
	Port               string
	LogLevel           string
	CredentialsPath    string
	ProjectID          string
	APIKey             string
	StorageBucket      string
	ImageStore         string
	B2AccountID        string
	B2AppKey           string
	B2Bucket           string
	RecommenderURL     string
	RecommenderTimeout time.Duration
	AllowedOrigins     []string
	TokenCacheTTL      time.Duration
	TokenCleanupEvery  time.Duration
	StreamKeepAlive    time.Duration
}

// Load reads .env (if present) and the environment into a Config.
// It reports whether a .env file was found.
func Load() (*Config, bool) {
	found := godotenv.Load() == nil

	v := viper.New()
	v.SetTypeByDefaultValue(true)
	v.SetDefault("ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("FIREBASE_CREDENTIALS_PATH", "./serviceAccountKey.json")
	v.SetDefault("FIREBASE_PROJECT_ID", "")
	v.SetDefault("FIREBASE_API_KEY", "")
	v.SetDefault("FIREBASE_STORAGE_BUCKET", "")
	v.SetDefault("IMAGE_STORE", "firebase")
	v.SetDefault("B2_ACCOUNT_ID", "")
	v.SetDefault("B2_APP_KEY", "")
	v.SetDefault("B2_BUCKET", "")
	v.SetDefault("RECOMMENDER_URL", "http://localhost:8000")
	v.SetDefault("RECOMMENDER_TIMEOUT", 10*time.Second)
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("TOKEN_CACHE_TTL", 30*time.Minute)
	v.SetDefault("TOKEN_CLEANUP_INTERVAL", time.Hour)
	v.SetDefault("STREAM_KEEPALIVE", 25*time.Second)
	v.AutomaticEnv()

	return &Config{
		Env:                v.GetString("ENV"),
		Port:               v.GetString("PORT"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		CredentialsPath:    v.GetString("FIREBASE_CREDENTIALS_PATH"),
		ProjectID:          v.GetString("FIREBASE_PROJECT_ID"),
		APIKey:             v.GetString("FIREBASE_API_KEY"),
		StorageBucket:      v.GetString("FIREBASE_STORAGE_BUCKET"),
		ImageStore:         strings.ToLower(v.GetString("IMAGE_STORE")),
		B2AccountID:        v.GetString("B2_ACCOUNT_ID"),
		B2AppKey:           v.GetString("B2_APP_KEY"),
		B2Bucket:           v.GetString("B2_BUCKET"),
		RecommenderURL:     strings.TrimRight(v.GetString("RECOMMENDER_URL"), "/"),
		RecommenderTimeout: v.GetDuration("RECOMMENDER_TIMEOUT"),
		AllowedOrigins:     splitList(v.GetString("ALLOWED_ORIGINS")),
		TokenCacheTTL:      v.GetDuration("TOKEN_CACHE_TTL"),
		TokenCleanupEvery:  v.GetDuration("TOKEN_CLEANUP_INTERVAL"),
		StreamKeepAlive:    v.GetDuration("STREAM_KEEPALIVE"),
	}, found
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
