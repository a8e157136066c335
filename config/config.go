package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const defaultJWTSecret = "mentorai-dev-secret-change-in-production"

var defaultCORSOrigins = []string{
	"http://localhost:8080",
	"http://localhost:8081",
	"http://localhost:8082",
	"http://localhost:8083",
	"http://localhost:3000",
	"http://localhost:5173",
}

// DatabaseSettings holds the PostgreSQL connection parameters.
type DatabaseSettings struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
}

// DSN renders the settings as a lib/pq keyword/value connection string.
func (d DatabaseSettings) DSN() string {
	parts := []string{
		"host=" + quoteDSN(d.Host),
		fmt.Sprintf("port=%d", d.Port),
		"user=" + quoteDSN(d.User),
		"dbname=" + quoteDSN(d.Name),
		"sslmode=" + quoteDSN(d.SSLMode),
	}
	if d.Password != "" {
		parts = append(parts, "password="+quoteDSN(d.Password))
	}
	return strings.Join(parts, " ")
}

func quoteDSN(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

// WhisperXSettings locates the transcription executable and sizes its queue.
type WhisperXSettings struct {
	ExecutablePath string
	PythonPath     string
	HFToken        string
	Workers        int
	QueueSize      int
}

// Settings is the full process configuration. It is read once at startup.
type Settings struct {
	Env         string
	Port        string
	LogLevel    string
	LogFormat   string
	JWTSecret   string
	CORSOrigins []string
	UploadDir   string
	Database    DatabaseSettings
	WhisperX    WhisperXSettings
}

// UsingDefaultSecret reports whether JWT_SECRET was left unset.
func (s *Settings) UsingDefaultSecret() bool {
	return s.JWTSecret == defaultJWTSecret
}

// Load reads .env files (APP_ENV_FILE, then ./.env) and the environment into Settings.
// It fails only when an env file exists but cannot be read or parsed.
func Load() (*Settings, error) {
	if err := loadEnvFiles(strings.TrimSpace(os.Getenv("APP_ENV_FILE")), ".env"); err != nil {
		return nil, err
	}

	return &Settings{
		Env:         getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "5001"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
		JWTSecret:   getEnv("JWT_SECRET", defaultJWTSecret),
		CORSOrigins: getEnvList("CORS_ORIGINS", defaultCORSOrigins),
		UploadDir:   getEnv("UPLOAD_DIR", filepath.Join(os.TempDir(), "whisperx-uploads")),
		Database: DatabaseSettings{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getEnv("DB_NAME", "mentorai_db"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 10),
		},
		WhisperX: WhisperXSettings{
			ExecutablePath: getEnv("WHISPERX_PATH", "whisperx"),
			PythonPath:     getEnv("PYTHON_PATH", "python3"),
			HFToken:        os.Getenv("HUGGING_FACE_TOKEN"),
			Workers:        getEnvInt("WHISPERX_WORKERS", 2),
			QueueSize:      getEnvInt("WHISPERX_QUEUE_SIZE", 16),
		},
	}, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getEnvList(key string, fallback []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
