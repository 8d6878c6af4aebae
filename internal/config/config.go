// Package config handles loading and validating the copilot configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Config is the root configuration for the copilot daemon.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Transports TransportsConfig `mapstructure:"transports"`
	Backends   BackendsConfig   `mapstructure:"backends"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig holds the health check server settings.
type ServerConfig struct {
	HealthPort int `mapstructure:"health_port"`
}

// TransportsConfig holds the configuration for each transport layer.
type TransportsConfig struct {
	GRPC GRPCConfig `mapstructure:"grpc"`
	HTTP HTTPConfig `mapstructure:"http"`
}

// GRPCConfig configures the gRPC transport.
type GRPCConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// HTTPConfig configures the HTTP/WebSocket transport.
//
// When PortRange is greater than one the transport binds the first free port
// in [Port, Port+PortRange).
type HTTPConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	PortRange int    `mapstructure:"port_range"`
}

// BackendsConfig configures every answer backend and their fallback order.
type BackendsConfig struct {
	// Providers is the comma-separated priority list (e.g. "groq,ollama,grok").
	Providers string `mapstructure:"providers"`

	// BudgetSeconds bounds a whole resolution across all attempts. Zero disables it.
	BudgetSeconds int `mapstructure:"budget_seconds"`

	Ollama OllamaConfig `mapstructure:"ollama"`
	Groq   CloudConfig  `mapstructure:"groq"`
	Grok   CloudConfig  `mapstructure:"grok"`
	Claude CloudConfig  `mapstructure:"claude"`
	OpenAI CloudConfig  `mapstructure:"openai"`
}

// Budget returns the shared resolution deadline, or zero when disabled.
func (c BackendsConfig) Budget() time.Duration {
	if c.BudgetSeconds <= 0 {
		return 0
	}
	return time.Duration(c.BudgetSeconds) * time.Second
}

// OllamaConfig holds the local model settings.
type OllamaConfig struct {
	Endpoint       string `mapstructure:"endpoint"`
	Model          string `mapstructure:"model"`
	TimeoutSeconds int    `mapstructure:"timeout"`
	Disabled       bool   `mapstructure:"disabled"`
	Persona        string `mapstructure:"persona"`
}

// Timeout returns the per-request timeout.
func (c OllamaConfig) Timeout() time.Duration {
	return seconds(c.TimeoutSeconds, 60)
}

// CloudConfig holds the settings shared by the hosted backends.
type CloudConfig struct {
	APIKey         string `mapstructure:"api_key"`
	BaseURL        string `mapstructure:"base_url"`
	Model          string `mapstructure:"model"`
	TimeoutSeconds int    `mapstructure:"timeout"`
	Persona        string `mapstructure:"persona"`
}

// Timeout returns the per-request timeout.
func (c CloudConfig) Timeout() time.Duration {
	return seconds(c.TimeoutSeconds, 30)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
}

// Persona texts sent as the system prompt.
const (
	ProfessorPersona = "You are Profesor Ableton, a groovy music guru from the comic underground scene! You're an expert Ableton Live producer who talks like a cool, laid-back comic book character. Use phrases like 'Far out!', 'Righteous!', 'That's heavy, man!' and give solid Ableton advice with comic book flair. Keep it helpful but fun!"
	ProducerPersona  = "You are an expert Ableton Live music producer. Answer questions briefly and helpfully."
	LocalPersona     = "As an Ableton Live expert, answer briefly and helpfully:"
)

// envBindings maps config keys to the plain environment names used by
// existing .env files, in addition to the COPILOT_ prefixed form.
var envBindings = map[string]string{
	"backends.providers":       "AI_PROVIDERS",
	"backends.ollama.model":    "OLLAMA_MODEL",
	"backends.ollama.timeout":  "OLLAMA_TIMEOUT",
	"backends.ollama.endpoint": "OLLAMA_URL",
	"backends.ollama.disabled": "MEMORY_SAVE_MODE",
	"backends.groq.api_key":    "GROQ_API_KEY",
	"backends.grok.api_key":    "XAI_API_KEY",
	"backends.claude.api_key":  "ANTHROPIC_API_KEY",
	"backends.openai.api_key":  "OPENAI_API_KEY",
}

// Load reads the configuration from file, environment variables, and defaults.
// If envFile is non-empty and exists it is loaded into the process environment
// first without overriding variables that are already set. If configFile is
// non-empty it is used directly; otherwise the standard search order applies:
// ./copilot.yaml, ./configs/copilot.yaml, /etc/copilot/copilot.yaml.
func Load(configFile, envFile string) (*Config, error) {
	if envFile != "" {
		if err := gotenv.Load(envFile); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("reading env file %s: %w", envFile, err)
			}
			slog.Debug("no env file found", "path", envFile)
		}
	}

	v := viper.New()

	// Defaults
	v.SetDefault("server.health_port", 8081)
	v.SetDefault("transports.grpc.enabled", false)
	v.SetDefault("transports.grpc.port", 50051)
	v.SetDefault("transports.http.enabled", true)
	v.SetDefault("transports.http.host", "localhost")
	v.SetDefault("transports.http.port", 12345)
	v.SetDefault("transports.http.port_range", 10)
	v.SetDefault("backends.providers", "groq,ollama,grok,claude,openai")
	v.SetDefault("backends.budget_seconds", 0)
	v.SetDefault("backends.ollama.endpoint", "http://localhost:11434")
	v.SetDefault("backends.ollama.model", "gemma3:4b")
	v.SetDefault("backends.ollama.timeout", 60)
	v.SetDefault("backends.ollama.disabled", false)
	v.SetDefault("backends.ollama.persona", LocalPersona)
	v.SetDefault("backends.groq.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("backends.groq.model", "llama-3.1-8b-instant")
	v.SetDefault("backends.groq.timeout", 30)
	v.SetDefault("backends.groq.persona", ProfessorPersona)
	v.SetDefault("backends.grok.base_url", "https://api.x.ai/v1")
	v.SetDefault("backends.grok.model", "grok-4-latest")
	v.SetDefault("backends.grok.timeout", 30)
	v.SetDefault("backends.grok.persona", ProfessorPersona)
	v.SetDefault("backends.claude.model", "claude-3-haiku-20240307")
	v.SetDefault("backends.claude.timeout", 30)
	v.SetDefault("backends.claude.persona", ProducerPersona)
	v.SetDefault("backends.openai.model", "gpt-3.5-turbo")
	v.SetDefault("backends.openai.timeout", 30)
	v.SetDefault("backends.openai.persona", ProfessorPersona)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	// Config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("copilot")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/copilot")
	}

	// Environment variables: COPILOT_SERVER_HEALTH_PORT, COPILOT_BACKENDS_PROVIDERS, etc.
	v.SetEnvPrefix("COPILOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		prefixed := "COPILOT_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	// Read config file (optional; env vars and defaults are sufficient)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		slog.Debug("no config file found, using defaults and environment variables")
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// Resolve env var references in sensitive fields (e.g., "${GROQ_API_KEY}")
	for _, c := range []*CloudConfig{&cfg.Backends.Groq, &cfg.Backends.Grok, &cfg.Backends.Claude, &cfg.Backends.OpenAI} {
		c.APIKey = strings.TrimSpace(resolveEnvRef(c.APIKey))
	}

	return &cfg, nil
}

// resolveEnvRef replaces "${VAR_NAME}" patterns with the corresponding env var
// value. An unset variable resolves to "" so the backend counts as unconfigured.
func resolveEnvRef(val string) string {
	if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
		return os.Getenv(val[2 : len(val)-1])
	}
	return val
}

func seconds(n, def int) time.Duration {
	if n <= 0 {
		n = def
	}
	return time.Duration(n) * time.Second
}

// SetupLogging configures the global slog logger based on config.
func SetupLogging(cfg LoggingConfig) {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}
