package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"genovault/internal/constants"
	"genovault/internal/logger"
)

// AuthConfig holds user-configurable authentication settings.
type AuthConfig struct {
	MaxLoginAttempts     int `yaml:"max_login_attempts"`
	LockoutDurationMins  int `yaml:"lockout_duration_mins"`
	AccessTokenHours     int `yaml:"access_token_hours"`
	RefreshTokenDays     int `yaml:"refresh_token_days"`
}

// AccessTokenDuration returns the access-token lifetime as time.Duration.
func (c *AuthConfig) AccessTokenDuration() time.Duration {
	return time.Duration(c.AccessTokenHours) * time.Hour
}

// RefreshTokenDuration returns the refresh-token lifetime as time.Duration.
func (c *AuthConfig) RefreshTokenDuration() time.Duration {
	return time.Duration(c.RefreshTokenDays) * 24 * time.Hour
}

// LockoutDuration returns the account lockout window as time.Duration.
func (c *AuthConfig) LockoutDuration() time.Duration {
	return time.Duration(c.LockoutDurationMins) * time.Minute
}

// AuditConfig holds user-configurable audit log settings.
type AuditConfig struct {
	MaxLogSizeBytes int64 `yaml:"max_log_size_bytes"`
	PurgePercentage int   `yaml:"purge_percentage"`
}

// UploadsConfig holds user-configurable upload settings.
type UploadsConfig struct {
	MaxSizeBytes int64 `yaml:"max_size_bytes"`
}

// Config holds all application configuration. Non-secret knobs come from the
// YAML config file; secrets come from the environment (see LoadSecrets).
type Config struct {
	WorkingDirectory string        `yaml:"working_directory"`
	Port             int           `yaml:"port"`
	Production       bool          `yaml:"production"`
	Auth             AuthConfig    `yaml:"auth"`
	Audit            AuditConfig   `yaml:"audit"`
	Uploads          UploadsConfig `yaml:"uploads"`

	// Secrets, never serialized to the config file
	JWTSecret     []byte `yaml:"-"`
	EncryptionKey []byte `yaml:"-"`
	BaseURL       string `yaml:"-"`
}

// ApplyDefaults fills zero-valued fields with constant defaults.
func (cfg *Config) ApplyDefaults() {
	if cfg.Port == 0 {
		cfg.Port = constants.DefaultPort
	}
	if cfg.Auth.MaxLoginAttempts == 0 {
		cfg.Auth.MaxLoginAttempts = constants.AuthMaxLoginAttempts
	}
	if cfg.Auth.LockoutDurationMins == 0 {
		cfg.Auth.LockoutDurationMins = constants.AuthLockoutDurationMins
	}
	if cfg.Auth.AccessTokenHours == 0 {
		cfg.Auth.AccessTokenHours = int(constants.AuthAccessTokenDuration.Hours())
	}
	if cfg.Auth.RefreshTokenDays == 0 {
		cfg.Auth.RefreshTokenDays = int(constants.AuthRefreshTokenDuration.Hours() / 24)
	}
	if cfg.Audit.MaxLogSizeBytes == 0 {
		cfg.Audit.MaxLogSizeBytes = constants.AuditMaxLogSizeBytes
	}
	if cfg.Audit.PurgePercentage == 0 {
		cfg.Audit.PurgePercentage = constants.AuditPurgePercentage
	}
	if cfg.Uploads.MaxSizeBytes == 0 {
		cfg.Uploads.MaxSizeBytes = constants.UploadMaxSizeBytes
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = constants.DefaultBaseURL
	}
}

// validate checks that all configurable values are within acceptable ranges.
func (cfg *Config) validate() error {
	var errs []string

	if cfg.Auth.MaxLoginAttempts < 1 {
		errs = append(errs, "auth.max_login_attempts must be >= 1")
	}
	if cfg.Auth.LockoutDurationMins < 1 {
		errs = append(errs, "auth.lockout_duration_mins must be >= 1")
	}
	if cfg.Auth.AccessTokenHours < 1 {
		errs = append(errs, "auth.access_token_hours must be >= 1")
	}
	if cfg.Auth.RefreshTokenDays < 1 {
		errs = append(errs, "auth.refresh_token_days must be >= 1")
	}
	if cfg.Audit.MaxLogSizeBytes < 1048576 {
		errs = append(errs, "audit.max_log_size_bytes must be >= 1048576 (1MB)")
	}
	if cfg.Audit.PurgePercentage < 1 || cfg.Audit.PurgePercentage > 100 {
		errs = append(errs, "audit.purge_percentage must be between 1 and 100")
	}
	if cfg.Uploads.MaxSizeBytes < 1024 {
		errs = append(errs, "uploads.max_size_bytes must be >= 1024 (1KB)")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// LoadSecrets reads JWT_SECRET, ENCRYPTION_KEY, and APP_URL from the
// environment (a .env file is honored if present) into the config.
// ENCRYPTION_KEY must be 64 hex characters (a 256-bit key).
func (cfg *Config) LoadSecrets() error {
	// Best-effort: a missing .env file is normal in production
	godotenv.Load()

	secret := os.Getenv("JWT_SECRET")
	if len(secret) < constants.AuthMinJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", constants.AuthMinJWTSecretLength)
	}
	cfg.JWTSecret = []byte(secret)

	keyHex := os.Getenv("ENCRYPTION_KEY")
	key, err := hex.DecodeString(keyHex)
	if err != nil || len(key) != constants.ShareEncryptionKeyBytes {
		return fmt.Errorf("ENCRYPTION_KEY must be %d hex-encoded bytes", constants.ShareEncryptionKeyBytes)
	}
	cfg.EncryptionKey = key

	if url := os.Getenv("APP_URL"); url != "" {
		cfg.BaseURL = strings.TrimRight(url, "/")
	}
	return nil
}

// LogEffectiveValues logs all effective configuration values at startup.
func (cfg *Config) LogEffectiveValues(log *logger.Logger) {
	log.Info("config: port=%d", cfg.Port)
	log.Info("config: production=%v", cfg.Production)
	log.Info("config: base_url=%s", cfg.BaseURL)
	log.Info("config: auth.max_login_attempts=%d", cfg.Auth.MaxLoginAttempts)
	log.Info("config: auth.lockout_duration_mins=%d", cfg.Auth.LockoutDurationMins)
	log.Info("config: auth.access_token_hours=%d", cfg.Auth.AccessTokenHours)
	log.Info("config: auth.refresh_token_days=%d", cfg.Auth.RefreshTokenDays)
	log.Info("config: audit.max_log_size_bytes=%d", cfg.Audit.MaxLogSizeBytes)
	log.Info("config: audit.purge_percentage=%d", cfg.Audit.PurgePercentage)
	log.Info("config: uploads.max_size_bytes=%d", cfg.Uploads.MaxSizeBytes)
}

func GetConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, constants.ConfigDir)
}

func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), constants.ConfigFile)
}

func EnsureConfigDir() error {
	return os.MkdirAll(GetConfigDir(), constants.DirPermissions)
}

// LoadConfig reads the YAML config, creating one with defaults on first run.
func LoadConfig() (*Config, error) {
	if err := EnsureConfigDir(); err != nil {
		return nil, err
	}

	configPath := GetConfigPath()

	_, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		cfg := &Config{}
		cfg.ApplyDefaults()
		if err := SaveConfig(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func SaveConfig(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(GetConfigPath(), data, constants.FilePermissions)
}
