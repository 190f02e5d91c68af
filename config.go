package tweetstream

import (
	"fmt"
	"os"

	"github.com/joeshaw/envdecode"
	"gopkg.in/yaml.v3"
)

// Config carries credentials and connection settings. It can be populated
// three ways: as a literal, from the environment via FromEnv, or from a YAML
// file via LoadConfig. Auth fields are validated when a stream is started,
// not when the Config is built.
type Config struct {
	// AuthMethod forces an auth mode: "basic" or "oauth". When empty the
	// mode is inferred from which credential fields are set.
	AuthMethod string `env:"TWEETSTREAM_AUTH_METHOD" yaml:"auth_method"`

	Username string `env:"TWEETSTREAM_USERNAME" yaml:"username"`
	Password string `env:"TWEETSTREAM_PASSWORD" yaml:"password"`

	ConsumerKey       string `env:"TWEETSTREAM_CONSUMER_KEY" yaml:"consumer_key"`
	ConsumerSecret    string `env:"TWEETSTREAM_CONSUMER_SECRET" yaml:"consumer_secret"`
	AccessToken       string `env:"TWEETSTREAM_ACCESS_TOKEN" yaml:"access_token"`
	AccessTokenSecret string `env:"TWEETSTREAM_ACCESS_TOKEN_SECRET" yaml:"access_token_secret"`

	// Host is the streaming endpoint host. ENV: TWEETSTREAM_HOST
	Host string `env:"TWEETSTREAM_HOST,default=stream.twitter.com" yaml:"host"`
	// UserAgent sent with every request. ENV: TWEETSTREAM_USER_AGENT
	UserAgent string `env:"TWEETSTREAM_USER_AGENT,default=tweetstream-go/1.0" yaml:"user_agent"`
}

// FromEnv builds a Config using envdecode to populate fields from the
// TWEETSTREAM_* environment variables. Defaults are provided via struct tags.
func FromEnv() Config {
	var cfg Config
	// envdecode reports an error when no variables are set; defaults and
	// validation at start time cover that case.
	_ = envdecode.Decode(&cfg)
	cfg.applyDefaults()
	return cfg
}

// LoadConfig reads a YAML config file. Fields absent from the file keep
// their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = defaultHost
	}
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
}

// authPayload resolves the effective auth mode and credential payload.
// Exactly one mode must be active; none configured or conflicting fields is a
// ConfigurationError.
func (c Config) authPayload() (AuthPayload, error) {
	hasBasic := c.Username != "" || c.Password != ""
	hasOAuth := c.ConsumerKey != "" || c.ConsumerSecret != "" ||
		c.AccessToken != "" || c.AccessTokenSecret != ""

	mode := c.AuthMethod
	if mode == "" {
		switch {
		case hasBasic && hasOAuth:
			return AuthPayload{}, &ConfigurationError{Reason: "both basic and oauth credentials are set; set auth_method to disambiguate"}
		case hasBasic:
			mode = "basic"
		case hasOAuth:
			mode = "oauth"
		default:
			return AuthPayload{}, &ConfigurationError{Reason: "no auth credentials configured"}
		}
	}

	switch mode {
	case "basic":
		if c.Username == "" || c.Password == "" {
			return AuthPayload{}, &ConfigurationError{Reason: "basic auth requires both username and password"}
		}
		return AuthPayload{Mode: AuthModeBasic, Basic: c.Username + ":" + c.Password}, nil
	case "oauth":
		if c.ConsumerKey == "" || c.ConsumerSecret == "" || c.AccessToken == "" || c.AccessTokenSecret == "" {
			return AuthPayload{}, &ConfigurationError{Reason: "oauth requires consumer key/secret and access token/secret"}
		}
		return AuthPayload{Mode: AuthModeOAuth, OAuth: OAuthCredentials{
			ConsumerKey:       c.ConsumerKey,
			ConsumerSecret:    c.ConsumerSecret,
			AccessToken:       c.AccessToken,
			AccessTokenSecret: c.AccessTokenSecret,
		}}, nil
	default:
		return AuthPayload{}, &ConfigurationError{Reason: fmt.Sprintf("unknown auth method %q", mode)}
	}
}
