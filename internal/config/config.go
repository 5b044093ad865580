package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config representa la configuración del servidor
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Inngest    InngestConfig
	Auth       AuthConfig
	Logging    LoggingConfig
	Email      EmailConfig
	Storage    StorageConfig
	Validation ValidationConfig
}

// ServerConfig representa la configuración del servidor HTTP
type ServerConfig struct {
	Port    string
	Host    string
	Env     string
	BaseURL string
}

// DatabaseConfig representa la configuración de la base de datos
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	Migrate  bool
}

// RedisConfig representa la configuración de Redis
type RedisConfig struct {
	Host       string
	Port       string
	Password   string
	DB         int
	VehicleTTL time.Duration
}

// InngestConfig representa la configuración de Inngest
type InngestConfig struct {
	EventKey   string
	SigningKey string
	AppID      string
	Dev        bool
}

// AuthConfig representa la autenticación por API key; vacía la desactiva
type AuthConfig struct {
	APIKey string
}

// LoggingConfig representa la configuración de logging
type LoggingConfig struct {
	Level  string
	Format string
}

// EmailConfig representa la configuración de email
type EmailConfig struct {
	ResendAPIKey string
	From         string
	NotifyTo     string
}

// StorageConfig representa el almacenamiento S3 compatible de comprobantes
type StorageConfig struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	PublicURL       string
	MaxUploadBytes  int64
}

// ValidationConfig representa la política de la capa de validación
type ValidationConfig struct {
	StrictConsistency bool
	Tolerance         decimal.Decimal
}

// Load carga la configuración desde variables de entorno
func Load() (*Config, error) {
	// El archivo .env es opcional
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port:    getEnv("SERVER_PORT", "8081"),
			Host:    getEnv("SERVER_HOST", "0.0.0.0"),
			Env:     getEnv("SERVER_ENV", "development"),
			BaseURL: getEnv("SERVER_BASE_URL", "http://localhost:8081"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("PGHOST", "localhost"),
			Port:     getEnv("PGPORT", "5432"),
			User:     getEnv("PGUSER", "postgres"),
			Password: getEnv("PGPASSWORD", "postgres"),
			Name:     getEnv("PGDATABASE", "backoffice"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			Migrate:  getEnvAsBool("DB_MIGRATE", true),
		},
		Redis: RedisConfig{
			Host:       getEnv("REDIS_HOST", "localhost"),
			Port:       getEnv("REDIS_PORT", "6379"),
			Password:   getEnv("REDIS_PASSWORD", ""),
			DB:         getEnvAsInt("REDIS_DB", 0),
			VehicleTTL: getEnvAsDuration("REDIS_VEHICLE_TTL", 10*time.Minute),
		},
		Inngest: InngestConfig{
			EventKey:   getEnv("INNGEST_EVENT_KEY", ""),
			SigningKey: getEnv("INNGEST_SIGNING_KEY", ""),
			AppID:      getEnv("INNGEST_APP_ID", "backoffice-service"),
			Dev:        getEnvAsBool("INNGEST_DEV", true),
		},
		Auth: AuthConfig{
			APIKey: getEnv("API_KEY", ""),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Email: EmailConfig{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			From:         getEnv("EMAIL_FROM", "Backoffice <noreply@backoffice.local>"),
			NotifyTo:     getEnv("EMAIL_NOTIFY_TO", ""),
		},
		Storage: StorageConfig{
			Endpoint:        getEnv("STORAGE_ENDPOINT", ""),
			Region:          getEnv("STORAGE_REGION", "us-east-1"),
			Bucket:          getEnv("STORAGE_BUCKET", "receipts"),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("STORAGE_SECRET_ACCESS_KEY", ""),
			PublicURL:       getEnv("STORAGE_PUBLIC_URL", ""),
			MaxUploadBytes:  int64(getEnvAsInt("STORAGE_MAX_UPLOAD_BYTES", 10<<20)),
		},
		Validation: ValidationConfig{
			StrictConsistency: getEnvAsBool("VALIDATION_STRICT_CONSISTENCY", true),
			Tolerance:         getEnvAsDecimal("VALIDATION_TOLERANCE", decimal.NewFromFloat(0.01)),
		},
	}

	return config, nil
}

// getEnv obtiene una variable de entorno o retorna un valor por defecto
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt obtiene una variable de entorno como entero
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool obtiene una variable de entorno como booleano
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration obtiene una variable de entorno como duración
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvAsDecimal obtiene una variable de entorno como decimal
func getEnvAsDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// IsDevelopment retorna true si el entorno es de desarrollo
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction retorna true si el entorno es de producción
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// GetDSN retorna la cadena de conexión a la base de datos
func (c *Config) GetDSN() string {
	return "host=" + c.Database.Host +
		" port=" + c.Database.Port +
		" user=" + c.Database.User +
		" password=" + c.Database.Password +
		" dbname=" + c.Database.Name +
		" sslmode=" + c.Database.SSLMode
}

// GetRedisAddr retorna la dirección de Redis
func (c *Config) GetRedisAddr() string {
	return c.Redis.Host + ":" + c.Redis.Port
}
