package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Chat     ChatConfig
	Ai       AIConfig
	OAuth    OAuthConfig
	Org      OrgConfig
}

// OrgConfig is the organization's self-description, surfaced to guests by
// the chat assistant when no specific content matches their question.
type OrgConfig struct {
	Name    string
	Mission string
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JWTSecret          string
	UploadDir          string
	UploadQuotaBytes   int64
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
	AlertEmail string
}

// ChatConfig carries everything the visitor-support chat needs: the salt
// used to hash guest addresses, the session retention window, the client
// poll interval and the per-guest message rate limit.
type ChatConfig struct {
	IdentitySalt    string
	SessionTTL      time.Duration
	PollInterval    time.Duration
	RateLimitPerMin int
	PurgeInterval   time.Duration
}

type AIConfig struct {
	GeminiAPIKey      string
	GeminiModel       string
	HuggingFaceAPIKey string
	HuggingFaceModel  string
	OllamaBaseURL     string
	OllamaModel       string
	RequestTimeout    time.Duration
}

type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JWTSecret:          getEnv("JWT_SECRET", ""),
			UploadDir:          getEnv("UPLOAD_DIR", "./uploads"),
			UploadQuotaBytes:   int64(getEnvAsInt("UPLOAD_QUOTA_MB", 512)) * 1024 * 1024,
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "CommunityHub"),
			AlertEmail: getEnv("CHAT_ALERT_EMAIL", ""),
		},
		Chat: ChatConfig{
			IdentitySalt:    getEnv("CHAT_IDENTITY_SALT", ""),
			SessionTTL:      getEnvAsDuration("CHAT_SESSION_TTL", 30*24*time.Hour),
			PollInterval:    getEnvAsDuration("CHAT_POLL_INTERVAL", 4*time.Second),
			RateLimitPerMin: getEnvAsInt("CHAT_RATE_LIMIT_PER_MIN", 12),
			PurgeInterval:   getEnvAsDuration("CHAT_PURGE_INTERVAL", 24*time.Hour),
		},
		Ai: AIConfig{
			GeminiAPIKey:      getEnv("GOOGLE_GEMINI_API_KEY", ""),
			GeminiModel:       getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
			HuggingFaceAPIKey: getEnv("HUGGINGFACE_API_KEY", ""),
			HuggingFaceModel:  getEnv("HUGGINGFACE_MODEL", "meta-llama/Llama-3.1-8B-Instruct"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", ""),
			OllamaModel:       getEnv("OLLAMA_MODEL", "llama3"),
			RequestTimeout:    getEnvAsDuration("AI_REQUEST_TIMEOUT", 30*time.Second),
		},
		Org: OrgConfig{
			Name:    getEnv("ORG_NAME", "CommunityHub"),
			Mission: getEnv("ORG_MISSION", ""),
		},
		OAuth: OAuthConfig{
			GoogleClientID:     getEnv("GOOGLE_OAUTH_CLIENT_ID", ""),
			GoogleClientSecret: getEnv("GOOGLE_OAUTH_CLIENT_SECRET", ""),
			GoogleRedirectURL:  getEnv("GOOGLE_OAUTH_REDIRECT_URL", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
