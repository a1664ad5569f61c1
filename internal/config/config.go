package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultConfig []byte

// Config holds the lexrelay configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Logging    LoggingConfig    `yaml:"logging"`
	Search     SearchConfig     `yaml:"search"`
	Generation GenerationConfig `yaml:"generation"`
	Payments   PaymentsConfig   `yaml:"payments"`
	Auth       AuthConfig       `yaml:"auth"`
	Transcript TranscriptConfig `yaml:"transcript"`
	LegalCodes LegalCodesConfig `yaml:"legal_codes"`
	Database   DatabaseConfig   `yaml:"database"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int        `yaml:"port"`
	ReadTimeoutSec  int        `yaml:"read_timeout_sec"`
	WriteTimeoutSec int        `yaml:"write_timeout_sec"`
	ShutdownSec     int        `yaml:"shutdown_timeout_sec"`
	CORS            CORSConfig `yaml:"cors"`
}

// CORSConfig lists the browser origins allowed to call the relay.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	MaxAgeSec      int      `yaml:"max_age_sec"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string         `yaml:"level"` // debug, info, warn, error (default: determined by env)
	File  FileSinkConfig `yaml:"file"`
}

// FileSinkConfig enables a rotating log file next to stdout. Empty path disables it.
type FileSinkConfig struct {
	Path       string `yaml:"path"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// SearchConfig holds the jurisprudence search upstream settings.
type SearchConfig struct {
	BaseURL            string   `yaml:"base_url"`
	APIKey             string   `yaml:"api_key"`
	CollectionPrefix   string   `yaml:"collection_prefix"`
	Collections        []string `yaml:"collections"`
	ResultLimit        int      `yaml:"result_limit"`
	SortTimestampField string   `yaml:"sort_timestamp_field"`
	TimeoutSec         int      `yaml:"timeout_sec"`
	MaxRetries         int      `yaml:"max_retries"`
}

// GenerationConfig holds the AI content generation upstream settings.
type GenerationConfig struct {
	APIKey     string       `yaml:"api_key"`
	BaseURL    string       `yaml:"base_url"`
	Model      string       `yaml:"model"`
	MaxTokens  int          `yaml:"max_tokens"`
	TimeoutSec int          `yaml:"timeout_sec"`
	Budget     BudgetConfig `yaml:"budget"`
}

// Enabled reports whether the generation relay has a credential.
func (g GenerationConfig) Enabled() bool { return g.APIKey != "" }

// BudgetConfig holds token budget settings.
type BudgetConfig struct {
	DailyTokenLimit   int64  `yaml:"daily_token_limit"`   // 0 = unlimited
	MonthlyTokenLimit int64  `yaml:"monthly_token_limit"` // 0 = unlimited
	Action            string `yaml:"action"`              // "reject" | "warn" (default)
}

// PaymentsConfig holds the payment processor settings.
type PaymentsConfig struct {
	SecretKey       string            `yaml:"secret_key"`
	BaseURL         string            `yaml:"base_url"` // override for tests and mocks
	Plans           map[string]string `yaml:"plans"`    // plan name -> price id
	DefaultPlan     string            `yaml:"default_plan"`
	SuccessURL      string            `yaml:"success_url"`
	CancelURL       string            `yaml:"cancel_url"`
	PortalReturnURL string            `yaml:"portal_return_url"`
}

// Enabled reports whether the payment relay has a credential.
func (p PaymentsConfig) Enabled() bool { return p.SecretKey != "" }

// AuthConfig holds caller authentication settings for identity-bound relays.
type AuthConfig struct {
	JWTSecret   string `yaml:"jwt_secret"`
	JWTAudience string `yaml:"jwt_audience"`
}

// TranscriptConfig holds the video platform settings.
type TranscriptConfig struct {
	BaseURL            string   `yaml:"base_url"`
	PreferredLanguages []string `yaml:"preferred_languages"`
	TimeoutSec         int      `yaml:"timeout_sec"`
}

// LegalCodesConfig holds the legal-code table relay settings.
type LegalCodesConfig struct {
	DSN      string            `yaml:"dsn"`
	Tables   map[string]string `yaml:"tables"` // code slug -> table name
	MaxLimit int               `yaml:"max_limit"`
}

// Enabled reports whether the legal-code relay has a database.
func (l LegalCodesConfig) Enabled() bool { return l.DSN != "" }

// DatabaseConfig holds Redis connection settings. Empty addrs keeps counters in memory.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// Load reads configuration by environment name (local, dev, docker, prod).
// Falls back to the embedded defaults when config/<env>.yaml does not exist.
func Load(env string) (Config, error) {
	data, err := readConfig(env)
	if err != nil {
		return Config{}, err
	}
	return Parse(data)
}

// Parse expands ${VAR} references, decodes YAML, applies defaults and validates.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 3500
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 90
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.HTTP.CORS.MaxAgeSec <= 0 {
		c.HTTP.CORS.MaxAgeSec = 300
	}

	if c.Search.BaseURL == "" {
		c.Search.BaseURL = "https://api-publica.datajud.cnj.jus.br"
	}
	if c.Search.ResultLimit <= 0 {
		c.Search.ResultLimit = 50
	}
	if c.Search.SortTimestampField == "" {
		c.Search.SortTimestampField = "dataAjuizamento"
	}
	if c.Search.TimeoutSec <= 0 {
		c.Search.TimeoutSec = 15
	}
	if c.Search.MaxRetries < 0 {
		c.Search.MaxRetries = 0
	}

	if c.Generation.Model == "" {
		c.Generation.Model = "gpt-4o-mini"
	}
	if c.Generation.MaxTokens <= 0 {
		c.Generation.MaxTokens = 2048
	}
	if c.Generation.TimeoutSec <= 0 {
		c.Generation.TimeoutSec = 60
	}

	if c.Auth.JWTAudience == "" {
		c.Auth.JWTAudience = "authenticated"
	}

	if c.Transcript.BaseURL == "" {
		c.Transcript.BaseURL = "https://www.youtube.com"
	}
	if len(c.Transcript.PreferredLanguages) == 0 {
		c.Transcript.PreferredLanguages = []string{"pt", "pt-BR", "en"}
	}
	if c.Transcript.TimeoutSec <= 0 {
		c.Transcript.TimeoutSec = 20
	}

	if c.LegalCodes.MaxLimit <= 0 {
		c.LegalCodes.MaxLimit = 100
	}

	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}

	// Unset env references expand to empty strings.
	c.HTTP.CORS.AllowedOrigins = compact(c.HTTP.CORS.AllowedOrigins)
	if len(c.HTTP.CORS.AllowedOrigins) == 0 {
		c.HTTP.CORS.AllowedOrigins = []string{"*"}
	}
	c.Database.Addrs = compact(c.Database.Addrs)
	for plan, price := range c.Payments.Plans {
		if strings.TrimSpace(price) == "" {
			delete(c.Payments.Plans, plan)
		}
	}
}

func compact(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if strings.TrimSpace(c.Search.APIKey) == "" {
		return errors.New("search.api_key is required (set DATAJUD_API_KEY)")
	}
	if len(c.Search.Collections) == 0 {
		return errors.New("search.collections must list at least one collection")
	}
	switch c.Generation.Budget.Action {
	case "", "warn", "reject":
		// ok
	default:
		return fmt.Errorf(
			"generation.budget.action must be \"warn\" or \"reject\", got %q",
			c.Generation.Budget.Action,
		)
	}
	if c.Payments.Enabled() {
		if c.Auth.JWTSecret == "" {
			return errors.New("auth.jwt_secret is required when payments are enabled")
		}
		if len(c.Payments.Plans) == 0 {
			return errors.New("payments.plans must define at least one plan")
		}
		if _, ok := c.Payments.Plans[c.Payments.DefaultPlan]; !ok {
			return fmt.Errorf("payments.default_plan %q is not in payments.plans", c.Payments.DefaultPlan)
		}
	}
	if c.LegalCodes.Enabled() && len(c.LegalCodes.Tables) == 0 {
		return errors.New("legal_codes.tables must list at least one table")
	}
	// Zero disables the write deadline.
	if budget := c.UpstreamBudgetSec(); c.HTTP.WriteTimeoutSec > 0 && c.HTTP.WriteTimeoutSec <= budget {
		return fmt.Errorf(
			"http.write_timeout_sec (%d) must exceed the slowest upstream call (%ds) so its error can be written",
			c.HTTP.WriteTimeoutSec, budget,
		)
	}
	return nil
}

// maxRetryWaitSec caps one backoff wait between search attempts.
const maxRetryWaitSec = 2

// UpstreamBudgetSec is the longest time a single request may spend waiting on upstreams:
// every search attempt plus backoff, the watch page and caption fetches, or one completion.
func (c *Config) UpstreamBudgetSec() int {
	search := c.Search.TimeoutSec*(c.Search.MaxRetries+1) + maxRetryWaitSec*c.Search.MaxRetries
	budget := max(search, 2*c.Transcript.TimeoutSec)
	if c.Generation.Enabled() {
		budget = max(budget, c.Generation.TimeoutSec)
	}
	return budget
}

func readConfig(env string) ([]byte, error) {
	configPath, ok := findConfigPath(env)
	if !ok {
		return defaultConfig, nil
	}
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}
	return data, nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) (string, bool) {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path, true
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path, true
	}

	return "", false
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
