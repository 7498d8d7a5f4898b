package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Config is loaded once at startup and passed explicitly to constructors.
// Required values are checked by Validate before anything connects.
type Config struct {
	Port   string `yaml:"PORT"`
	AppURL string `yaml:"APP_URL"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	JWTSecret string `yaml:"JWT_SECRET"`

	// Nutrition provider (Nutritionix) configuration
	NutritionixAppID   string        `yaml:"NUTRITIONIX_APP_ID"`
	NutritionixAppKey  string        `yaml:"NUTRITIONIX_APP_KEY"`
	NutritionixBaseURL string        `yaml:"NUTRITIONIX_BASE_URL"`
	NutritionTimeout   time.Duration `yaml:"-"` // NUTRITION_TIMEOUT env, e.g. "12s"
	NutritionWorkers   int           `yaml:"NUTRITION_WORKERS"`

	// OCR collaborator configuration
	OcrBinary  string        `yaml:"OCR_BINARY"`
	OcrTimeout time.Duration `yaml:"-"` // OCR_TIMEOUT env, e.g. "60s"

	// Redis nutrition cache (optional; cache disabled when host is empty)
	RedisHost     string `yaml:"REDIS_HOST"`
	RedisPort     string `yaml:"REDIS_PORT"`
	RedisPassword string `yaml:"REDIS_PASSWORD"`

	// AWS S3 receipt image storage (optional)
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// Mailing configuration (optional; welcome mail skipped when unset)
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`
}

// Load reads config.yaml when present and lets environment variables
// override individual values.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		file, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(file, cfg); err != nil {
				return nil, fmt.Errorf("parsing %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	overrideString(&cfg.Port, "PORT")
	overrideString(&cfg.AppURL, "APP_URL")
	overrideString(&cfg.DBUser, "DB_USER")
	overrideString(&cfg.DBName, "DB_NAME")
	overrideString(&cfg.DBPassword, "DB_PASSWORD")
	overrideString(&cfg.DBPort, "DB_PORT")
	overrideString(&cfg.DBHost, "DB_HOST")
	overrideString(&cfg.JWTSecret, "JWT_SECRET")
	overrideString(&cfg.NutritionixAppID, "NUTRITIONIX_APP_ID")
	overrideString(&cfg.NutritionixAppKey, "NUTRITIONIX_APP_KEY")
	overrideString(&cfg.NutritionixBaseURL, "NUTRITIONIX_BASE_URL")
	overrideString(&cfg.OcrBinary, "OCR_BINARY")
	overrideString(&cfg.RedisHost, "REDIS_HOST")
	overrideString(&cfg.RedisPort, "REDIS_PORT")
	overrideString(&cfg.RedisPassword, "REDIS_PASSWORD")
	overrideString(&cfg.AWSS3Bucket, "AWS_S3_BUCKET")
	overrideString(&cfg.AWSS3Region, "AWS_S3_REGION")
	overrideString(&cfg.AWSAccessKey, "AWS_ACCESS_KEY")
	overrideString(&cfg.AWSSecretKey, "AWS_SECRET_KEY")
	overrideString(&cfg.SMTPHost, "SMTP_HOST")
	overrideString(&cfg.SMTPPort, "SMTP_PORT")
	overrideString(&cfg.SMTPSenderName, "SMTP_SENDER_NAME")
	overrideString(&cfg.SMTPAuthEmail, "SMTP_AUTH_EMAIL")
	overrideString(&cfg.SMTPAuthPassword, "SMTP_AUTH_PASSWORD")
	overrideDuration(&cfg.NutritionTimeout, "NUTRITION_TIMEOUT")
	overrideDuration(&cfg.OcrTimeout, "OCR_TIMEOUT")
	overrideInt(&cfg.NutritionWorkers, "NUTRITION_WORKERS")

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.NutritionixBaseURL == "" {
		c.NutritionixBaseURL = "https://trackapi.nutritionix.com/v2"
	}
	if c.NutritionTimeout <= 0 {
		c.NutritionTimeout = 12 * time.Second
	}
	if c.NutritionWorkers <= 0 {
		// Matches the provider free-tier batch size, but stays configurable.
		c.NutritionWorkers = 3
	}
	if c.OcrBinary == "" {
		c.OcrBinary = "receipt-ocr"
	}
	if c.OcrTimeout <= 0 {
		c.OcrTimeout = 60 * time.Second
	}
	if c.RedisPort == "" {
		c.RedisPort = "6379"
	}
}

// Validate fails fast on missing required values instead of failing at
// first use.
func (c *Config) Validate() error {
	required := map[string]string{
		"DB_HOST":             c.DBHost,
		"DB_PORT":             c.DBPort,
		"DB_USER":             c.DBUser,
		"DB_NAME":             c.DBName,
		"DB_PASSWORD":         c.DBPassword,
		"JWT_SECRET":          c.JWTSecret,
		"NUTRITIONIX_APP_ID":  c.NutritionixAppID,
		"NUTRITIONIX_APP_KEY": c.NutritionixAppKey,
	}
	for key, value := range required {
		if value == "" {
			return fmt.Errorf("missing required config value %s", key)
		}
	}
	return nil
}

// RedisEnabled reports whether the nutrition cache should be wired in.
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

// S3Enabled reports whether receipt images should be stored.
func (c *Config) S3Enabled() bool {
	return c.AWSS3Bucket != ""
}

// MailEnabled reports whether signup mail should be sent.
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != ""
}

func overrideString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func overrideDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}

func overrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			*dst = n
		}
	}
}
