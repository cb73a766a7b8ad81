package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "FIRESTORE_PROJECT_ID", "FIRESTORE_CREDENTIALS_FILE", "GEMINI_API_KEY"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	if cfg.Port != "8082" {
		t.Fatalf("default port = %s", cfg.Port)
	}
	if cfg.RemoteStoreConfigured() {
		t.Fatal("remote store should not be configured by default")
	}
	if cfg.AdviceConfigured() {
		t.Fatal("advice should not be configured by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("WIDGET_TIMEOUT", "10s")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Fatalf("port = %s", cfg.Port)
	}
	if !cfg.AdviceConfigured() {
		t.Fatal("advice should be configured")
	}
	if cfg.WidgetTimeout != 10*time.Second {
		t.Fatalf("timeout = %v", cfg.WidgetTimeout)
	}
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := &Config{
		Port:                     "notaport",
		FirestoreProjectID:       "p",
		FirestoreCredentialsFile: "/nonexistent/creds.json",
		WeatherLatitude:          "north",
		WeatherLongitude:         "1.0",
		WidgetTimeout:            time.Millisecond,
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"invalid port", "credentials file", "FIREBASE_WEB_API_KEY", "latitude", "widget timeout"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error missing %q: %v", want, err)
		}
	}
}
