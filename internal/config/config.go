package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"vet-clinic-records/internal/platform/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	Capacity int

	CatalogPath string
	CatalogURL  string

	HistoryDir string
	DBDSN      string
	// HistoryBackend: file, memory o postgres. Vacío elige postgres si hay
	// DB_DSN y file si no.
	HistoryBackend string

	KafkaBrokers []string
	KafkaTopic   string

	ReminderSchedule string

	// LOG_*; LogLevel vacío deja que cada binario elija su default.
	LogLevel  string
	LogFormat string
	AppName   string
}

const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Load lee .env (si existe) y luego el entorno. Las variables ya definidas
// en el entorno tienen prioridad sobre el archivo.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	capacity := 20
	if v := strings.TrimSpace(os.Getenv("CLINIC_CAPACITY")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("CLINIC_CAPACITY must be a positive integer, got %q", v)
		}
		capacity = n
	}

	dsn := strings.TrimSpace(os.Getenv("DB_DSN"))
	backend := strings.ToLower(strings.TrimSpace(os.Getenv("HISTORY_BACKEND")))
	switch backend {
	case "":
		backend = BackendFile
		if dsn != "" {
			backend = BackendPostgres
		}
	case BackendFile, BackendMemory:
	case BackendPostgres:
		if dsn == "" {
			return nil, errors.New("HISTORY_BACKEND=postgres requires DB_DSN")
		}
	default:
		return nil, fmt.Errorf("HISTORY_BACKEND must be file, memory or postgres, got %q", backend)
	}

	return &Config{
		Port:             getenv("PORT", "8080"),
		Capacity:         capacity,
		CatalogPath:      getenv("CATALOG_PATH", "services.txt"),
		CatalogURL:       strings.TrimSpace(os.Getenv("CATALOG_URL")),
		HistoryDir:       getenv("HISTORY_DIR", "."),
		DBDSN:            dsn,
		HistoryBackend:   backend,
		KafkaBrokers:     splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:       getenv("KAFKA_TOPIC", "clinic_events"),
		ReminderSchedule: reminderSchedule(),
		LogLevel:         strings.TrimSpace(os.Getenv("LOG_LEVEL")),
		LogFormat:        strings.TrimSpace(os.Getenv("LOG_FORMAT")),
		AppName:          strings.TrimSpace(os.Getenv("APP_NAME")),
	}, nil
}

// NewLogger arma el logger con los LOG_* ya resueltos, incluidos los del .env.
// defaultLevel aplica cuando LOG_LEVEL no está definido.
func (c *Config) NewLogger(out io.Writer, defaultLevel logger.Level) logger.Logger {
	level := defaultLevel
	if c.LogLevel != "" {
		level = logger.ParseLevel(c.LogLevel)
	}
	return logger.New(logger.Options{
		Level:  level,
		Format: logger.ParseFormat(c.LogFormat),
		App:    c.AppName,
		Output: out,
	})
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// REMINDER_SCHEDULE vacío pero definido desactiva el job.
func reminderSchedule() string {
	v, ok := os.LookupEnv("REMINDER_SCHEDULE")
	if !ok {
		return "0 9 * * *"
	}
	return strings.TrimSpace(v)
}

func splitList(s string) []string {
	out := make([]string, 0)
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
