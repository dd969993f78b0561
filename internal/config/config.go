package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Sources struct {
		Snapshot struct {
			Driver   string `yaml:"driver" env:"SNAPSHOT_DRIVER" validate:"required,oneof=sqlite postgres"`
			Path     string `yaml:"path" env:"SNAPSHOT_PATH" validate:"required_if=Driver sqlite"`
			Host     string `yaml:"host" env:"SNAPSHOT_HOST" validate:"required_if=Driver postgres"`
			Port     string `yaml:"port" env:"SNAPSHOT_PORT"`
			User     string `yaml:"user" env:"SNAPSHOT_USER"`
			Password string `yaml:"password" env:"SNAPSHOT_PASSWORD"`
			DBName   string `yaml:"dbname" env:"SNAPSHOT_DBNAME" validate:"required_if=Driver postgres"`
			SSLMode  string `yaml:"sslmode" env:"SNAPSHOT_SSLMODE"`
		} `yaml:"snapshot"`

		Enrollments struct {
			Path string `yaml:"path" env:"ENROLLMENTS_PATH" validate:"required"`
		} `yaml:"enrollments"`

		Departments struct {
			Path string `yaml:"path" env:"DEPARTMENTS_PATH" validate:"required"`
		} `yaml:"departments"`
	} `yaml:"sources"`

	Output struct {
		ReportPath    string `yaml:"report_path" env:"REPORT_PATH" validate:"required"`
		WarehousePath string `yaml:"warehouse_path" env:"WAREHOUSE_PATH" validate:"required"`
	} `yaml:"output"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL" validate:"omitempty,oneof=debug info warn error"`
		Format string `yaml:"format" env:"LOG_FORMAT" validate:"omitempty,oneof=json text"`
	} `yaml:"logging"`
}

// validate checks struct tags on load; shared instance, no custom rules needed.
var validate = validator.New()

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// A .env file beside the binary takes effect before env overrides are read
	_ = godotenv.Load()

	config := &Config{}
	setDefaults(config)

	// Try to read config file if it exists
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Source defaults match the conventional KU_Input layout
	config.Sources.Snapshot.Driver = "sqlite"
	config.Sources.Snapshot.Path = "KU_Input/student_info.sqlite3"
	config.Sources.Snapshot.Host = "localhost"
	config.Sources.Snapshot.Port = "5432"
	config.Sources.Snapshot.SSLMode = "disable"
	config.Sources.Enrollments.Path = "KU_Input/enrollments.dat"
	config.Sources.Departments.Path = "KU_Input/departments.json"

	// Output defaults
	config.Output.ReportPath = "output.csv"
	config.Output.WarehousePath = "ku.sqlite"

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// SnapshotConnString returns the postgres connection string for the snapshot
// source. Only meaningful when the snapshot driver is postgres.
func (c *Config) SnapshotConnString() string {
	sslMode := c.Sources.Snapshot.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Sources.Snapshot.User,
		c.Sources.Snapshot.Password,
		c.Sources.Snapshot.Host,
		c.Sources.Snapshot.Port,
		c.Sources.Snapshot.DBName,
		sslMode,
	)
}
