// Package config loads adaptiq settings from defaults, an optional YAML
// file, a .env file, ADAPTIQ_* environment variables and command flags,
// in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/abhisek/adaptiq/internal/ingest"
	"github.com/abhisek/adaptiq/internal/llm"
	"github.com/abhisek/adaptiq/internal/questiongen"
	"github.com/abhisek/adaptiq/internal/quiz"
	"github.com/abhisek/adaptiq/internal/store"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "ADAPTIQ_"

// Config is the full application configuration.
type Config struct {
	Server    ServerConfig       `koanf:"server"`
	Database  store.Options      `koanf:"database"`
	Auth      AuthConfig         `koanf:"auth"`
	Generator questiongen.Config `koanf:"generator"`
	Quiz      quiz.Config        `koanf:"quiz"`
	LLM       llm.Config         `koanf:"llm"`
	Ingest    IngestConfig       `koanf:"ingest"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr           string        `koanf:"addr" validate:"required"`
	CORSOrigins    []string      `koanf:"cors_origins"`
	RequestTimeout time.Duration `koanf:"request_timeout" validate:"gt=0"`
	MaxUploadBytes int64         `koanf:"max_upload_bytes" validate:"gt=0"`
}

// AuthConfig configures token issuance.
type AuthConfig struct {
	JWTSecret  string        `koanf:"jwt_secret" validate:"required"`
	TokenTTL   time.Duration `koanf:"token_ttl" validate:"gt=0"`
	BcryptCost int           `koanf:"bcrypt_cost" validate:"omitempty,gte=4,lte=31"`
}

// IngestConfig configures content extraction.
type IngestConfig struct {
	HTTPTimeout   time.Duration `koanf:"http_timeout" validate:"gt=0"`
	UserAgent     string        `koanf:"user_agent"`
	TesseractLang string        `koanf:"tesseract_lang"`
	TesseractBin  string        `koanf:"tesseract_bin"`
}

// devSecret signs tokens when no secret is configured. It is only fit for
// local use and Load warns about it through Insecure.
const devSecret = "adaptiq-dev-secret-change-me"

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:           ":8000",
			CORSOrigins:    []string{"*"},
			RequestTimeout: 60 * time.Second,
			MaxUploadBytes: 20 << 20,
		},
		Database:  store.Options{Driver: store.DriverSQLite},
		Auth:      AuthConfig{JWTSecret: devSecret, TokenTTL: 24 * time.Hour, BcryptCost: 12},
		Generator: questiongen.DefaultConfig(),
		Quiz:      quiz.DefaultConfig(),
		LLM:       llm.DefaultConfig(),
		Ingest: IngestConfig{
			HTTPTimeout:   10 * time.Second,
			UserAgent:     ingest.DefaultUserAgent,
			TesseractLang: "eng",
			TesseractBin:  "tesseract",
		},
	}
}

// Insecure reports whether tokens are signed with the built-in secret.
func (c *Config) Insecure() bool {
	return c.Auth.JWTSecret == devSecret
}

// Fetcher returns a URL fetcher using the ingest settings.
func (c *Config) Fetcher() *ingest.Fetcher {
	return ingest.NewFetcher(
		ingest.WithHTTPClient(&http.Client{Timeout: c.Ingest.HTTPTimeout}),
		ingest.WithUserAgent(c.Ingest.UserAgent),
	)
}

// OCR returns a tesseract runner using the ingest settings.
func (c *Config) OCR() *ingest.TesseractOCR {
	ocr := ingest.NewTesseractOCR()
	if c.Ingest.TesseractBin != "" {
		ocr.Binary = c.Ingest.TesseractBin
	}
	if c.Ingest.TesseractLang != "" {
		ocr.Lang = c.Ingest.TesseractLang
	}
	return ocr
}

// LoadOptions selects the sources Load reads.
type LoadOptions struct {
	// File is an optional YAML file. A missing file is an error only
	// when set explicitly.
	File string

	// EnvFile is a dotenv file loaded into the process environment.
	// Defaults to ".env"; a missing file is ignored.
	EnvFile string

	// Flags are applied last. Only flags the user changed take effect.
	Flags *pflag.FlagSet
}

// envAliases maps short or legacy variable names to config keys.
var envAliases = map[string]string{
	"ADAPTIQ_DB":                 "database.dsn",
	"ADAPTIQ_JWT_SECRET":         "auth.jwt_secret",
	"ADAPTIQ_GROQ_API_KEY":       "llm.groq.api_key",
	"ADAPTIQ_ANTHROPIC_API_KEY":  "llm.anthropic.api_key",
	"ADAPTIQ_OPENAI_API_KEY":     "llm.openai.api_key",
	"ADAPTIQ_GEMINI_API_KEY":     "llm.gemini.api_key",
	"ADAPTIQ_OPENROUTER_API_KEY": "llm.openrouter.api_key",
}

// FlagKeys maps command flags to config keys.
var FlagKeys = map[string]string{
	"addr":         "server.addr",
	"cors-origin":  "server.cors_origins",
	"db":           "database.dsn",
	"db-driver":    "database.driver",
	"jwt-secret":   "auth.jwt_secret",
	"llm-provider": "llm.provider",
	"ocr-lang":     "ingest.tesseract_lang",
}

// Load builds the configuration and validates it.
func Load(opts LoadOptions) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	k := koanf.New(".")

	if opts.File != "" {
		if err := k.Load(file.Provider(opts.File), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", opts.File, err)
		}
	}

	known := map[string]string{}
	for _, key := range Keys() {
		known[EnvPrefix+strings.ToUpper(strings.ReplaceAll(key, ".", "_"))] = key
	}
	for name, key := range envAliases {
		known[name] = key
	}
	envCB := func(name string) string {
		return known[name]
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envCB), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if opts.Flags != nil {
		flagCB := func(f *pflag.Flag) (string, interface{}) {
			key, ok := FlagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(opts.Flags, f)
		}
		if err := k.Load(posflag.ProviderWithFlag(opts.Flags, ".", nil, flagCB), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	// Fall back to well-known provider key variables when the configured
	// provider has no key.
	if cfg.LLM.Validate() != nil && cfg.LLM.Provider != "none" && cfg.LLM.Provider != "mock" && !k.Exists("llm.provider") {
		if found, ok := llm.DiscoverConfig(); ok {
			found.Retry, found.Timeout = cfg.LLM.Retry, cfg.LLM.Timeout
			cfg.LLM = found
		}
	}

	if cfg.Database.DSN == "" && cfg.Database.Driver == store.DriverSQLite {
		path, err := store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
		cfg.Database.DSN = path
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks struct constraints.
func Validate(cfg *Config) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Keys lists every leaf config key, e.g. "server.addr".
func Keys() []string {
	var out []string
	collectKeys(reflect.TypeOf(Config{}), "", &out)
	return out
}

func collectKeys(t reflect.Type, prefix string, out *[]string) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("koanf")
		if tag == "" || tag == "-" {
			continue
		}
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}
		if f.Type.Kind() == reflect.Struct && f.Type != reflect.TypeOf(time.Duration(0)) {
			collectKeys(f.Type, key, out)
			continue
		}
		*out = append(*out, key)
	}
}
