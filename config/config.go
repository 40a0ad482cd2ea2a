package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const defaultPath = "."

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port     int `json:"port" yaml:"port"`
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	Redis *RedisConfig `json:"redis" yaml:"redis"`

	// Identity holds the external identity-provider endpoint and credentials.
	// Both URL and anonymous key are mandatory; startup fails without them.
	Identity *IdentityConfig `json:"identity" yaml:"identity"`

	Registration *RegistrationConfig `json:"registration" yaml:"registration"`

	Session *SessionConfig `json:"session" yaml:"session"`
}

// RedisConfig defines the connection settings for the short-lived stores
// (registration forms, CSRF tokens, materialized sessions).
type RedisConfig struct {
	Addr     string `json:"addr" yaml:"addr"`
	Password string `json:"password" yaml:"password"`
	DB       int    `json:"db" yaml:"db"`
}

// IdentityConfig defines the external identity provider boundary.
type IdentityConfig struct {
	BaseURL        string        `json:"baseUrl" yaml:"baseUrl"`
	AnonKey        string        `json:"anonKey" yaml:"anonKey"`
	JWTSecret      string        `json:"jwtSecret" yaml:"jwtSecret"`
	RequestTimeout time.Duration `json:"requestTimeout" yaml:"requestTimeout"`
}

// RegistrationConfig defines registration-workflow tunables.
type RegistrationConfig struct {
	// SessionTTL bounds how long an unfinished sign-up form survives.
	SessionTTL time.Duration `json:"sessionTtl" yaml:"sessionTtl"`
	CSRFTTL    time.Duration `json:"csrfTtl" yaml:"csrfTtl"`
	// OTPLength is the passcode length the provider is configured to send.
	OTPLength int `json:"otpLength" yaml:"otpLength"`
}

// SessionConfig defines how long a materialized sign-in session is kept.
type SessionConfig struct {
	TTL time.Duration `json:"ttl" yaml:"ttl"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

const (
	defaultSessionTTL     = 24 * time.Hour
	defaultFormTTL        = 30 * time.Minute
	defaultCSRFTTL        = 30 * time.Minute
	defaultOTPLength      = 8
	defaultRequestTimeout = 10 * time.Second
)

// LoadWithEnv loads .yaml files through koanf and overlays environment variables.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: IDENTITY_ANONKEY -> identity.anonKey (not identity.anonkey)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	// The identity provider is the only hard startup dependency: without its
	// URL and anonymous key no part of the auth workflow can run.
	if cfg.Identity == nil || cfg.Identity.BaseURL == "" || cfg.Identity.AnonKey == "" {
		return nil, errors.New("identity provider baseUrl and anonKey must be configured")
	}

	applyDefaults(cfg)

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Identity.RequestTimeout <= 0 {
		cfg.Identity.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Registration == nil {
		cfg.Registration = &RegistrationConfig{}
	}
	if cfg.Registration.SessionTTL <= 0 {
		cfg.Registration.SessionTTL = defaultFormTTL
	}
	if cfg.Registration.CSRFTTL <= 0 {
		cfg.Registration.CSRFTTL = defaultCSRFTTL
	}
	if cfg.Registration.OTPLength <= 0 {
		cfg.Registration.OTPLength = defaultOTPLength
	}
	if cfg.Session == nil {
		cfg.Session = &SessionConfig{}
	}
	if cfg.Session.TTL <= 0 {
		cfg.Session.TTL = defaultSessionTTL
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
