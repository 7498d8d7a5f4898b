package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		DBHost:            "localhost",
		DBPort:            "5432",
		DBUser:            "bitescan",
		DBName:            "bitescan",
		DBPassword:        "secret",
		JWTSecret:         "jwt-secret",
		NutritionixAppID:  "app-id",
		NutritionixAppKey: "app-key",
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "https://trackapi.nutritionix.com/v2", cfg.NutritionixBaseURL)
	assert.Equal(t, 12*time.Second, cfg.NutritionTimeout)
	assert.Equal(t, 3, cfg.NutritionWorkers)
	assert.Equal(t, "receipt-ocr", cfg.OcrBinary)
	assert.Equal(t, 60*time.Second, cfg.OcrTimeout)
	assert.Equal(t, "6379", cfg.RedisPort)
}

func TestLoadReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"PORT: \"9090\"\nDB_HOST: db.internal\nNUTRITION_WORKERS: 5\n",
	), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, 5, cfg.NutritionWorkers)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("PORT: \"9090\"\n"), 0o600))

	t.Setenv("PORT", "7070")
	t.Setenv("OCR_TIMEOUT", "90s")
	t.Setenv("NUTRITION_WORKERS", "8")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, 90*time.Second, cfg.OcrTimeout)
	assert.Equal(t, 8, cfg.NutritionWorkers)
}

func TestLoadMissingFileIsFine(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.NoError(t, err)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("PORT: [unclosed\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	t.Run("missing database password", func(t *testing.T) {
		cfg := validConfig()
		cfg.DBPassword = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DB_PASSWORD")
	})

	t.Run("missing provider credentials", func(t *testing.T) {
		cfg := validConfig()
		cfg.NutritionixAppKey = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "NUTRITIONIX_APP_KEY")
	})
}

func TestOptionalFeatures(t *testing.T) {
	cfg := validConfig()
	assert.False(t, cfg.RedisEnabled())
	assert.False(t, cfg.S3Enabled())
	assert.False(t, cfg.MailEnabled())

	cfg.RedisHost = "localhost"
	cfg.AWSS3Bucket = "receipts"
	cfg.SMTPHost = "smtp.example.com"
	assert.True(t, cfg.RedisEnabled())
	assert.True(t, cfg.S3Enabled())
	assert.True(t, cfg.MailEnabled())
}
