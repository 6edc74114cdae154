package config

import (
	"strings"
	"testing"
	"time"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	// Keep external services out of the loader's required set.
	t.Setenv("MAIL_ENABLED", "false")
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("MESSAGING_ENABLED", "false")
}

func TestNewDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.HTTP.Port != 3000 {
		t.Fatalf("expected default port 3000, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.CORSOrigin != "http://127.0.0.1:5500" {
		t.Fatalf("unexpected CORS origin: %q", cfg.HTTP.CORSOrigin)
	}
	if cfg.Messaging.Kafka.Topic != "requisicoes.eventos" {
		t.Fatalf("unexpected topic: %q", cfg.Messaging.Kafka.Topic)
	}
	if cfg.Cache.Driver != "noop" {
		t.Fatalf("disabled cache must force noop driver, got %q", cfg.Cache.Driver)
	}
	if cfg.Messaging.Driver != "noop" {
		t.Fatalf("disabled messaging must force noop driver, got %q", cfg.Messaging.Driver)
	}
	if cfg.Database.ReaderDSN != cfg.Database.WriterDSN {
		t.Fatal("reader DSN must fall back to writer DSN")
	}
}

func TestNewRejectsWildcardCORS(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("HTTP_CORS_ORIGIN", "*")

	if _, err := New(); err == nil {
		t.Fatal("wildcard CORS origin must be rejected")
	}
}

func TestNewMailEnabledRequiresCredentials(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("MAIL_ENABLED", "true")
	t.Setenv("SENDGRID_API_KEY", "")

	if _, err := New(); err == nil {
		t.Fatal("mail enabled without an API key must be rejected")
	}

	t.Setenv("SENDGRID_API_KEY", "SG.test")
	t.Setenv("MAIL_FROM_ADDRESS", "compras@izihotel.com.br")
	t.Setenv("MAIL_APPROVER_ADDRESS", "gerencia@izihotel.com.br")

	cfg, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Mail.ApproverAddress != "gerencia@izihotel.com.br" {
		t.Fatalf("approver address not loaded: %q", cfg.Mail.ApproverAddress)
	}
}

func TestNewTrimsFrontendBaseURL(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("FRONTEND_BASE_URL", "http://compras.izihotel.com.br/")

	cfg, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Mail.FrontendBaseURL != "http://compras.izihotel.com.br" {
		t.Fatalf("trailing slash must be trimmed: %q", cfg.Mail.FrontendBaseURL)
	}
}

func TestNewTLSRequiredRewritesDSN(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DB_TLS_REQUIRED", "true")
	t.Setenv("DB_WRITER_DSN", "postgres://compras:compras@db:5432/compras?sslmode=disable")

	cfg, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(cfg.Database.WriterDSN, "sslmode=require") {
		t.Fatalf("DSN must require TLS: %q", cfg.Database.WriterDSN)
	}
}

func TestRequireSSLMode(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{
			"postgres://u:p@db:5432/compras?sslmode=disable",
			"postgres://u:p@db:5432/compras?sslmode=require",
		},
		{
			"postgres://u:p@db:5432/compras",
			"postgres://u:p@db:5432/compras?sslmode=require",
		},
		{
			"postgres://u:p@db:5432/compras?application_name=api",
			"postgres://u:p@db:5432/compras?application_name=api&sslmode=require",
		},
		{
			"postgres://u:p@db:5432/compras?sslmode=verify-full",
			"postgres://u:p@db:5432/compras?sslmode=verify-full",
		},
	}
	for _, tc := range cases {
		if got := requireSSLMode(tc.in); got != tc.want {
			t.Errorf("requireSSLMode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("TEST_STR", "value")
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_BAD_INT", "forty-two")
	t.Setenv("TEST_BOOL", "true")
	t.Setenv("TEST_DURATION", "90s")
	t.Setenv("TEST_SLICE", "a, b ,,c")

	if got := getEnv("TEST_STR", "fallback"); got != "value" {
		t.Errorf("getEnv = %q", got)
	}
	if got := getEnv("TEST_ABSENT", "fallback"); got != "fallback" {
		t.Errorf("getEnv fallback = %q", got)
	}
	if got := getEnvAsInt("TEST_INT", 0); got != 42 {
		t.Errorf("getEnvAsInt = %d", got)
	}
	if got := getEnvAsInt("TEST_BAD_INT", 7); got != 7 {
		t.Errorf("getEnvAsInt fallback = %d", got)
	}
	if got := getEnvAsBool("TEST_BOOL", false); !got {
		t.Error("getEnvAsBool = false")
	}
	if got := getEnvAsDuration("TEST_DURATION", time.Second); got != 90*time.Second {
		t.Errorf("getEnvAsDuration = %v", got)
	}
	if got := getEnvAsStringSlice("TEST_SLICE", nil); len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("getEnvAsStringSlice = %v", got)
	}
	if got := getEnvAsStringSlice("TEST_ABSENT", []string{"x"}); len(got) != 1 || got[0] != "x" {
		t.Errorf("getEnvAsStringSlice fallback = %v", got)
	}
}
