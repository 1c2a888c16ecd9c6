package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// WarehouseStoreID is the location approved orders take stock from.
	WarehouseStoreID  int64
	LowStockThreshold int
	LowStockSchedule  string

	LogLevel        string
	MigrateOnStart  bool
	ShutdownTimeout time.Duration
}

// DSN is the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) Validate() error {
	var errList []error
	if c.WarehouseStoreID <= 0 {
		errList = append(errList, fmt.Errorf("WAREHOUSE_STORE_ID must be positive, got %d", c.WarehouseStoreID))
	}
	if c.LowStockThreshold < 0 {
		errList = append(errList, fmt.Errorf("LOW_STOCK_THRESHOLD must not be negative, got %d", c.LowStockThreshold))
	}
	if c.DBName == "" {
		errList = append(errList, errors.New("DB_NAME is required"))
	}
	return errors.Join(errList...)
}

// LoadConfig reads envFiles (a missing file is fine) into the process
// environment and resolves every setting from it, falling back to defaults.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	cfg := Config{
		HTTPPort:          v.GetString("HTTP_PORT"),
		DBHost:            v.GetString("DB_HOST"),
		DBPort:            v.GetString("DB_PORT"),
		DBUser:            v.GetString("DB_USER"),
		DBPassword:        v.GetString("DB_PASSWORD"),
		DBName:            v.GetString("DB_NAME"),
		DBSslMode:         v.GetString("DB_SSLMODE"),
		WarehouseStoreID:  v.GetInt64("WAREHOUSE_STORE_ID"),
		LowStockThreshold: v.GetInt("LOW_STOCK_THRESHOLD"),
		LowStockSchedule:  v.GetString("LOW_STOCK_SCHEDULE"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		MigrateOnStart:    v.GetBool("MIGRATE_ON_START"),
		ShutdownTimeout:   v.GetDuration("SHUTDOWN_TIMEOUT"),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "backoffice")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("WAREHOUSE_STORE_ID", 1)
	v.SetDefault("LOW_STOCK_THRESHOLD", 5)
	v.SetDefault("LOW_STOCK_SCHEDULE", "@every 5m")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MIGRATE_ON_START", true)
	v.SetDefault("SHUTDOWN_TIMEOUT", "15s")
}
