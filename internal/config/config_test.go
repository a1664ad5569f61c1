package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	cfg := Config{
		HTTP: HTTPConfig{Port: 3500},
		Search: SearchConfig{
			APIKey:      "test-key",
			Collections: []string{"trt1"},
		},
	}
	return cfg
}

func TestValidate_MissingSearchAPIKey(t *testing.T) {
	cfg := validConfig()
	cfg.Search.APIKey = "  "

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing search api key")
	}
	if !strings.Contains(err.Error(), "DATAJUD_API_KEY") {
		t.Errorf("error should name the env variable, got %q", err.Error())
	}
}

func TestValidate_InvalidBudgetAction(t *testing.T) {
	cfg := validConfig()
	cfg.Generation = GenerationConfig{
		APIKey: "sk-test",
		Budget: BudgetConfig{DailyTokenLimit: 1000000, Action: "invalid_action"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid budget action")
	}

	expected := `generation.budget.action must be "warn" or "reject", got "invalid_action"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_ValidBudgetActions(t *testing.T) {
	for _, action := range []string{"", "warn", "reject"} {
		t.Run("action="+action, func(t *testing.T) {
			cfg := validConfig()
			cfg.Generation.Budget.Action = action

			if err := cfg.Validate(); err != nil {
				t.Fatalf("unexpected error for valid action %q: %v", action, err)
			}
		})
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 70000

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_PaymentsRequireJWTSecret(t *testing.T) {
	cfg := validConfig()
	cfg.Payments = PaymentsConfig{
		SecretKey:   "sk_test",
		Plans:       map[string]string{"monthly": "price_1"},
		DefaultPlan: "monthly",
	}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for payments without jwt secret")
	}

	cfg.Auth.JWTSecret = "secret"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_PaymentsDefaultPlanMustExist(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.JWTSecret = "secret"
	cfg.Payments = PaymentsConfig{
		SecretKey:   "sk_test",
		Plans:       map[string]string{"monthly": "price_1"},
		DefaultPlan: "yearly",
	}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown default plan")
	}
}

func TestValidate_WriteTimeoutCoversGeneration(t *testing.T) {
	cfg := validConfig()
	cfg.Generation = GenerationConfig{APIKey: "sk-test", TimeoutSec: 60}
	cfg.HTTP.WriteTimeoutSec = 60

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error when write timeout equals the generation timeout")
	}
	if !strings.Contains(err.Error(), "http.write_timeout_sec") {
		t.Errorf("error should name the field, got %q", err.Error())
	}

	cfg.HTTP.WriteTimeoutSec = 61
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_WriteTimeoutCoversSearchRetries(t *testing.T) {
	cfg := validConfig()
	cfg.Search.TimeoutSec = 15
	cfg.Search.MaxRetries = 1
	cfg.HTTP.WriteTimeoutSec = 30

	// 15s per attempt, two attempts and one 2s backoff wait.
	if got := cfg.UpstreamBudgetSec(); got != 32 {
		t.Fatalf("expected budget 32, got %d", got)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when write timeout is below the search budget")
	}
}

func TestValidate_ZeroWriteTimeoutDisablesDeadline(t *testing.T) {
	cfg := validConfig()
	cfg.Generation = GenerationConfig{APIKey: "sk-test", TimeoutSec: 60}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpstreamBudgetSec_IgnoresDisabledGeneration(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	// Transcript: watch page and caption track at 20s each.
	if got := cfg.UpstreamBudgetSec(); got != 40 {
		t.Fatalf("expected budget 40, got %d", got)
	}
	cfg.Generation.APIKey = "sk-test"
	if got := cfg.UpstreamBudgetSec(); got != 60 {
		t.Fatalf("expected budget 60, got %d", got)
	}
	if cfg.HTTP.WriteTimeoutSec <= cfg.UpstreamBudgetSec() {
		t.Errorf("default write timeout %d must exceed budget %d", cfg.HTTP.WriteTimeoutSec, cfg.UpstreamBudgetSec())
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 3500 {
		t.Errorf("expected Port=3500, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 90 {
		t.Errorf("expected WriteTimeoutSec=90, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Search.BaseURL != "https://api-publica.datajud.cnj.jus.br" {
		t.Errorf("unexpected search base url %q", cfg.Search.BaseURL)
	}
	if cfg.Search.ResultLimit != 50 {
		t.Errorf("expected ResultLimit=50, got %d", cfg.Search.ResultLimit)
	}
	if cfg.Search.SortTimestampField != "dataAjuizamento" {
		t.Errorf("expected SortTimestampField=dataAjuizamento, got %q", cfg.Search.SortTimestampField)
	}
	if cfg.Search.TimeoutSec != 15 {
		t.Errorf("expected TimeoutSec=15, got %d", cfg.Search.TimeoutSec)
	}
	if cfg.Auth.JWTAudience != "authenticated" {
		t.Errorf("expected JWTAudience=authenticated, got %q", cfg.Auth.JWTAudience)
	}
	if cfg.LegalCodes.MaxLimit != 100 {
		t.Errorf("expected MaxLimit=100, got %d", cfg.LegalCodes.MaxLimit)
	}
	if len(cfg.HTTP.CORS.AllowedOrigins) != 1 || cfg.HTTP.CORS.AllowedOrigins[0] != "*" {
		t.Errorf("expected wildcard origin, got %v", cfg.HTTP.CORS.AllowedOrigins)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:   HTTPConfig{Port: 8080, ReadTimeoutSec: 30},
		Search: SearchConfig{ResultLimit: 10, TimeoutSec: 5, MaxRetries: 3},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 8080 {
		t.Errorf("expected Port=8080, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Search.ResultLimit != 10 {
		t.Errorf("expected ResultLimit=10, got %d", cfg.Search.ResultLimit)
	}
	if cfg.Search.MaxRetries != 3 {
		t.Errorf("expected MaxRetries=3, got %d", cfg.Search.MaxRetries)
	}
}

func TestApplyDefaults_DropsEmptyExpansions(t *testing.T) {
	cfg := Config{
		Database: DatabaseConfig{Addrs: []string{""}},
		Payments: PaymentsConfig{Plans: map[string]string{"monthly": "price_1", "yearly": ""}},
	}
	cfg.ApplyDefaults()

	if len(cfg.Database.Addrs) != 0 {
		t.Errorf("expected no redis addrs, got %v", cfg.Database.Addrs)
	}
	if _, ok := cfg.Payments.Plans["yearly"]; ok {
		t.Error("plan without price should be dropped")
	}
	if cfg.Payments.Plans["monthly"] != "price_1" {
		t.Error("plan with price should be kept")
	}
}

func TestParse_EmbeddedDefaults(t *testing.T) {
	t.Setenv("DATAJUD_API_KEY", "abc==")
	t.Setenv("PORT", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("STRIPE_SECRET_KEY", "")
	t.Setenv("SUPABASE_DB_DSN", "")

	cfg, err := Parse(defaultConfig)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Search.APIKey != "abc==" {
		t.Errorf("api key not expanded, got %q", cfg.Search.APIKey)
	}
	if cfg.HTTP.Port != 3500 {
		t.Errorf("expected Port=3500, got %d", cfg.HTTP.Port)
	}
	if cfg.Search.CollectionPrefix != "api_publica_" {
		t.Errorf("unexpected prefix %q", cfg.Search.CollectionPrefix)
	}
	found := false
	for _, c := range cfg.Search.Collections {
		if c == "trt1" {
			found = true
		}
	}
	if !found {
		t.Error("default collections should include trt1")
	}
	if cfg.Generation.Enabled() || cfg.Payments.Enabled() || cfg.LegalCodes.Enabled() {
		t.Error("optional relays should be disabled without credentials")
	}
	if len(cfg.Database.Addrs) != 0 {
		t.Errorf("expected in-memory counters, got addrs %v", cfg.Database.Addrs)
	}
}

func TestParse_FailsWithoutSearchKey(t *testing.T) {
	t.Setenv("DATAJUD_API_KEY", "")

	if _, err := Parse(defaultConfig); err == nil {
		t.Fatal("expected startup failure without DATAJUD_API_KEY")
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("LEXRELAY_TEST_SET", "value")
	t.Setenv("LEXRELAY_TEST_EMPTY", "")

	got := string(expandEnvVars([]byte("a: ${LEXRELAY_TEST_SET}\nb: ${LEXRELAY_TEST_EMPTY:-fallback}\nc: ${LEXRELAY_TEST_EMPTY}")))
	want := "a: value\nb: fallback\nc: "
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
