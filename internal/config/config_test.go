package config

import (
	"encoding/hex"
	"strings"
	"testing"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	if cfg.Port == 0 {
		t.Error("expected default port")
	}
	if cfg.Auth.MaxLoginAttempts != 5 {
		t.Errorf("expected 5 max login attempts, got %d", cfg.Auth.MaxLoginAttempts)
	}
	if cfg.Auth.LockoutDurationMins != 15 {
		t.Errorf("expected 15 min lockout, got %d", cfg.Auth.LockoutDurationMins)
	}
	if cfg.Auth.AccessTokenHours != 8 {
		t.Errorf("expected 8h access token, got %d", cfg.Auth.AccessTokenHours)
	}
	if cfg.Auth.RefreshTokenDays != 7 {
		t.Errorf("expected 7d refresh token, got %d", cfg.Auth.RefreshTokenDays)
	}
	if cfg.BaseURL == "" {
		t.Error("expected default base URL")
	}
}

func TestApplyDefaultsPreservesExplicitValues(t *testing.T) {
	cfg := &Config{Port: 8080}
	cfg.Auth.MaxLoginAttempts = 3
	cfg.ApplyDefaults()

	if cfg.Port != 8080 {
		t.Errorf("explicit port overwritten: %d", cfg.Port)
	}
	if cfg.Auth.MaxLoginAttempts != 3 {
		t.Errorf("explicit attempts overwritten: %d", cfg.Auth.MaxLoginAttempts)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(c *Config) {}, ""},
		{"zero attempts", func(c *Config) { c.Auth.MaxLoginAttempts = -1 }, "max_login_attempts"},
		{"bad purge percentage", func(c *Config) { c.Audit.PurgePercentage = 101 }, "purge_percentage"},
		{"tiny upload cap", func(c *Config) { c.Uploads.MaxSizeBytes = 10 }, "max_size_bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.ApplyDefaults()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadSecrets(t *testing.T) {
	validKey := hex.EncodeToString(make([]byte, 32))

	t.Run("valid secrets", func(t *testing.T) {
		t.Setenv("JWT_SECRET", strings.Repeat("s", 32))
		t.Setenv("ENCRYPTION_KEY", validKey)
		t.Setenv("APP_URL", "https://reports.example.com/")

		cfg := &Config{}
		cfg.ApplyDefaults()
		if err := cfg.LoadSecrets(); err != nil {
			t.Fatalf("LoadSecrets failed: %v", err)
		}
		if len(cfg.JWTSecret) != 32 {
			t.Errorf("unexpected JWT secret length: %d", len(cfg.JWTSecret))
		}
		if len(cfg.EncryptionKey) != 32 {
			t.Errorf("unexpected encryption key length: %d", len(cfg.EncryptionKey))
		}
		if cfg.BaseURL != "https://reports.example.com" {
			t.Errorf("expected trailing slash trimmed, got %s", cfg.BaseURL)
		}
	})

	t.Run("short jwt secret rejected", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "tooshort")
		t.Setenv("ENCRYPTION_KEY", validKey)

		cfg := &Config{}
		if err := cfg.LoadSecrets(); err == nil {
			t.Fatal("expected error for short JWT_SECRET")
		}
	})

	t.Run("malformed encryption key rejected", func(t *testing.T) {
		t.Setenv("JWT_SECRET", strings.Repeat("s", 32))
		t.Setenv("ENCRYPTION_KEY", "not-hex")

		cfg := &Config{}
		if err := cfg.LoadSecrets(); err == nil {
			t.Fatal("expected error for malformed ENCRYPTION_KEY")
		}
	})

	t.Run("truncated encryption key rejected", func(t *testing.T) {
		t.Setenv("JWT_SECRET", strings.Repeat("s", 32))
		t.Setenv("ENCRYPTION_KEY", hex.EncodeToString(make([]byte, 16)))

		cfg := &Config{}
		if err := cfg.LoadSecrets(); err == nil {
			t.Fatal("expected error for 128-bit ENCRYPTION_KEY")
		}
	})
}
