package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Log      LogConfig
	Run      RunConfig
	Sources  SourcesConfig
	Discord  DiscordConfig
	Email    EmailConfig
	SMS      SMSConfig
	Export   ExportConfig
}

// DatabaseConfig points at the student/resource store. URL wins when set
// (Supabase-style connection string); otherwise the discrete fields apply.
type DatabaseConfig struct {
	URL          string
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// RunConfig tunes one reminder run. ReferenceDate ("YYYY-MM-DD") overrides
// "today" for dry runs and backfills; empty means the wall clock.
type RunConfig struct {
	ReferenceDate string
	LockTTL       time.Duration
	DryRun        bool
}

// SourcesConfig names the record sources a run loads from.
type SourcesConfig struct {
	DeadlinesCSV   string
	StudentsTable  string
	ResourcesTable string
}

// DiscordConfig configures DM delivery through a bot account.
type DiscordConfig struct {
	Enabled  bool
	BotToken string
	GuildID  string
}

// EmailConfig configures SendGrid delivery.
type EmailConfig struct {
	Enabled     bool
	APIKey      string
	FromName    string
	FromAddress string
	Subject     string
}

// SMSConfig configures Twilio delivery.
type SMSConfig struct {
	Enabled             bool
	AccountSID          string
	AuthToken           string
	MessagingServiceSID string
}

// ExportConfig controls the message-requests CSV drop directory.
type ExportConfig struct {
	Enabled bool
	Dir     string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		URL:          v.GetString("DATABASE_URL"),
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}
	if cfg.Database.URL == "" {
		// Supabase deployments provide one of the two names.
		cfg.Database.URL = v.GetString("SUPABASE_DB_URI")
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Run = RunConfig{
		ReferenceDate: v.GetString("RUN_REFERENCE_DATE"),
		LockTTL:       parseDuration(v.GetString("RUN_LOCK_TTL"), 10*time.Minute),
		DryRun:        v.GetBool("RUN_DRY_RUN"),
	}

	cfg.Sources = SourcesConfig{
		DeadlinesCSV:   v.GetString("DEADLINES_CSV"),
		StudentsTable:  v.GetString("STUDENTS_TABLE"),
		ResourcesTable: v.GetString("RESOURCES_TABLE"),
	}

	cfg.Discord = DiscordConfig{
		Enabled:  v.GetBool("ENABLE_DISCORD"),
		BotToken: v.GetString("DISCORD_BOT_TOKEN"),
		GuildID:  v.GetString("DISCORD_GUILD_ID"),
	}

	cfg.Email = EmailConfig{
		Enabled:     v.GetBool("ENABLE_EMAIL"),
		APIKey:      v.GetString("SENDGRID_API_KEY"),
		FromName:    v.GetString("EMAIL_FROM_NAME"),
		FromAddress: v.GetString("EMAIL_FROM_ADDRESS"),
		Subject:     v.GetString("EMAIL_SUBJECT"),
	}

	cfg.SMS = SMSConfig{
		Enabled:             v.GetBool("ENABLE_SMS"),
		AccountSID:          v.GetString("TWILIO_ACCOUNT_SID"),
		AuthToken:           v.GetString("TWILIO_AUTH_TOKEN"),
		MessagingServiceSID: v.GetString("TWILIO_MESSAGING_SERVICE_SID"),
	}

	cfg.Export = ExportConfig{
		Enabled: v.GetBool("ENABLE_CSV_EXPORT"),
		Dir:     v.GetString("MESSAGE_REQUESTS_DIR"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("SUPABASE_DB_URI", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "autoremind")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("RUN_REFERENCE_DATE", "")
	v.SetDefault("RUN_LOCK_TTL", "10m")
	v.SetDefault("RUN_DRY_RUN", false)

	v.SetDefault("DEADLINES_CSV", "shared_data/deadlines.csv")
	v.SetDefault("STUDENTS_TABLE", "students")
	v.SetDefault("RESOURCES_TABLE", "assignment_resources")

	v.SetDefault("ENABLE_DISCORD", false)
	v.SetDefault("DISCORD_BOT_TOKEN", "")
	v.SetDefault("DISCORD_GUILD_ID", "")

	v.SetDefault("ENABLE_EMAIL", false)
	v.SetDefault("SENDGRID_API_KEY", "")
	v.SetDefault("EMAIL_FROM_NAME", "AutoRemind")
	v.SetDefault("EMAIL_FROM_ADDRESS", "autoremind@yourdomain.com")
	v.SetDefault("EMAIL_SUBJECT", "Assignment reminder")

	v.SetDefault("ENABLE_SMS", false)
	v.SetDefault("TWILIO_ACCOUNT_SID", "")
	v.SetDefault("TWILIO_AUTH_TOKEN", "")
	v.SetDefault("TWILIO_MESSAGING_SERVICE_SID", "")

	v.SetDefault("ENABLE_CSV_EXPORT", true)
	v.SetDefault("MESSAGE_REQUESTS_DIR", "./message_requests")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
