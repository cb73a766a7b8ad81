package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// HTTP Server
	Port string

	// Remote store (Firestore). Leaving ProjectID or CredentialsFile empty
	// keeps the application in local mode.
	FirestoreProjectID       string
	FirestoreCredentialsFile string

	// Identity service (Firebase web API key for password sign-in).
	IdentityAPIKey string

	// Advice (Gemini). Empty key disables the feature.
	GeminiAPIKey string
	GeminiModel  string

	// Decorative widgets
	WeatherLatitude   string
	WeatherLongitude  string
	RatesBaseCurrency string
	WidgetTimeout     time.Duration
}

// Load reads configuration from the environment, honouring an optional
// .env file in the working directory.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port: getEnv("PORT", "8082"),

		FirestoreProjectID:       getEnv("FIRESTORE_PROJECT_ID", ""),
		FirestoreCredentialsFile: getEnv("FIRESTORE_CREDENTIALS_FILE", ""),

		IdentityAPIKey: getEnv("FIREBASE_WEB_API_KEY", ""),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),

		WeatherLatitude:   getEnv("WEATHER_LATITUDE", "35.68"),
		WeatherLongitude:  getEnv("WEATHER_LONGITUDE", "139.69"),
		RatesBaseCurrency: getEnv("RATES_BASE_CURRENCY", "JPY"),
		WidgetTimeout:     getEnvDuration("WIDGET_TIMEOUT", 5*time.Second),
	}
}

// RemoteStoreConfigured reports whether enough configuration exists to run
// against Firestore. Absence is not an error: the app falls back to local mode.
func (c *Config) RemoteStoreConfigured() bool {
	return c.FirestoreProjectID != "" && c.FirestoreCredentialsFile != ""
}

// AdviceConfigured reports whether the AI advice feature has a credential.
func (c *Config) AdviceConfigured() bool {
	return c.GeminiAPIKey != ""
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Remote mode needs the credentials file to actually exist, and an
	// identity key to validate logins against.
	if c.RemoteStoreConfigured() {
		if _, err := os.Stat(c.FirestoreCredentialsFile); os.IsNotExist(err) {
			errs = append(errs, fmt.Sprintf("Firestore credentials file does not exist: %s", c.FirestoreCredentialsFile))
		}
		if c.IdentityAPIKey == "" {
			errs = append(errs, "FIREBASE_WEB_API_KEY is required when the remote store is configured")
		}
	}

	if _, err := strconv.ParseFloat(c.WeatherLatitude, 64); err != nil {
		errs = append(errs, fmt.Sprintf("invalid weather latitude '%s'", c.WeatherLatitude))
	}
	if _, err := strconv.ParseFloat(c.WeatherLongitude, 64); err != nil {
		errs = append(errs, fmt.Sprintf("invalid weather longitude '%s'", c.WeatherLongitude))
	}
	if c.WidgetTimeout < time.Second {
		errs = append(errs, fmt.Sprintf("invalid widget timeout %v: must be at least 1 second", c.WidgetTimeout))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
