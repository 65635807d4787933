package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Store    StoreConfig
	Redis    RedisConfig
	SMS      SMSConfig
	Payment  PaymentConfig
	Log      LogConfig
	SeedDemo bool
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

type AuthConfig struct {
	JWTSecret         string
	CookieSecure      bool
	OTPTTL            time.Duration
	OTPResendCooldown time.Duration
}

// StoreConfig selects the document store. Driver is one of "mongo", "postgres", "memory".
type StoreConfig struct {
	Driver        string
	MongoURI      string
	MongoDatabase string
	PostgresDSN   string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SMSConfig struct {
	APIKey string
	URL    string
}

type PaymentConfig struct {
	AuthToken     string
	BaseURL       string
	ClientTimeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:3001")
	v.SetDefault("STORE_DRIVER", "mongo")
	v.SetDefault("MONGODB_DATABASE", "nightfly")
	v.SetDefault("OTP_TTL", "5m")
	v.SetDefault("OTP_RESEND_COOLDOWN", "60s")
	v.SetDefault("SMS_API_URL", "https://apihome.in/panel/api/bulksms/")
	v.SetDefault("PAYMENT_API_URL", "https://apihome.in/panel/api/payin_intent")
	v.SetDefault("HTTP_CLIENT_TIMEOUT", "0s")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("REDIS_DB", 0)

	driver := strings.ToLower(v.GetString("STORE_DRIVER"))
	v.SetDefault("SEED_DEMO_CLUBS", driver == "memory")

	return &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   15 * time.Second,
		},
		Auth: AuthConfig{
			JWTSecret:         v.GetString("JWT_SECRET"),
			CookieSecure:      v.GetBool("COOKIE_SECURE"),
			OTPTTL:            v.GetDuration("OTP_TTL"),
			OTPResendCooldown: v.GetDuration("OTP_RESEND_COOLDOWN"),
		},
		Store: StoreConfig{
			Driver:        driver,
			MongoURI:      v.GetString("MONGODB_URI"),
			MongoDatabase: v.GetString("MONGODB_DATABASE"),
			PostgresDSN:   v.GetString("DATABASE_URL"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		SMS: SMSConfig{
			APIKey: v.GetString("OTP_API_KEY"),
			URL:    v.GetString("SMS_API_URL"),
		},
		Payment: PaymentConfig{
			AuthToken:     v.GetString("PAYMENT_AUTH_TOKEN"),
			BaseURL:       strings.TrimRight(v.GetString("PAYMENT_API_URL"), "/"),
			ClientTimeout: v.GetDuration("HTTP_CLIENT_TIMEOUT"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		SeedDemo: v.GetBool("SEED_DEMO_CLUBS"),
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
