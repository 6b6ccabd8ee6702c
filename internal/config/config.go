package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/vango-dev/gmvoice/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "gmvoice.json"

	// DefaultPort is the default HTTP port.
	DefaultPort = 3000

	// DefaultHost is the default bind host.
	DefaultHost = "localhost"

	// DefaultStartButtonText is the welcome button label.
	DefaultStartButtonText = "ENTER THE VOID"

	// DefaultSaveDir is the default directory for the disk save store.
	DefaultSaveDir = "saves"

	// DefaultStyleSheet is the path of the built-in stylesheet.
	DefaultStyleSheet = "/css/app.css"
)

// Environment variables that override file values.
const (
	EnvLiveKitURL       = "LIVEKIT_URL"
	EnvLiveKitAPIKey    = "LIVEKIT_API_KEY"
	EnvLiveKitAPISecret = "LIVEKIT_API_SECRET"
	EnvPort             = "GM_PORT"
	EnvSaveBucket       = "GM_SAVE_BUCKET"
)

// Save backends.
const (
	BackendDisk = "disk"
	BackendS3   = "s3"
)

// Config represents the complete gmvoice.json configuration.
type Config struct {
	// Name is the application name, used as the page title.
	Name string `json:"name,omitempty"`

	// Server contains HTTP server settings.
	Server ServerConfig `json:"server,omitempty"`

	// Static contains static file serving configuration.
	Static StaticConfig `json:"static,omitempty"`

	// Session contains session runtime settings.
	Session SessionConfig `json:"session,omitempty"`

	// Welcome contains welcome view settings.
	Welcome WelcomeConfig `json:"welcome,omitempty"`

	// Call contains real-time call settings.
	Call CallConfig `json:"call,omitempty"`

	// Saves contains game save storage settings.
	Saves SavesConfig `json:"saves,omitempty"`

	// Metrics contains Prometheus settings.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	configPath string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `json:"host,omitempty"`
	Port int    `json:"port,omitempty"`

	// ShutdownTimeout bounds graceful shutdown (e.g., "10s").
	ShutdownTimeout string `json:"shutdownTimeout,omitempty"`
}

// StaticConfig contains static file serving configuration.
type StaticConfig struct {
	// Dir is the directory containing static files.
	Dir string `json:"dir,omitempty"`

	// Prefix is the URL prefix for static files (default: "/").
	Prefix string `json:"prefix,omitempty"`

	// StyleSheets are linked from every page, in order. An explicit empty
	// list links none.
	StyleSheets []string `json:"styleSheets"`
}

// SessionConfig contains session runtime settings.
type SessionConfig struct {
	// MaxSessions caps concurrent sessions. Zero means unlimited.
	MaxSessions int `json:"maxSessions,omitempty"`

	// IdleTimeout is how long a detached session is kept (e.g., "5m").
	IdleTimeout string `json:"idleTimeout,omitempty"`

	// SweepInterval is how often idle sessions are swept (e.g., "30s").
	SweepInterval string `json:"sweepInterval,omitempty"`
}

// WelcomeConfig contains welcome view settings.
type WelcomeConfig struct {
	StartButtonText string `json:"startButtonText,omitempty"`
}

// CallConfig contains real-time call settings.
type CallConfig struct {
	ServerURL  string `json:"serverUrl,omitempty"`
	APIKey     string `json:"apiKey,omitempty"`
	APISecret  string `json:"apiSecret,omitempty"`
	RoomPrefix string `json:"roomPrefix,omitempty"`

	// TokenTTL is the participant token lifetime (e.g., "15m").
	TokenTTL string `json:"tokenTtl,omitempty"`
}

// SavesConfig contains game save storage settings.
type SavesConfig struct {
	// Backend is "disk" or "s3".
	Backend string `json:"backend,omitempty"`

	// Dir is the disk store directory.
	Dir string `json:"dir,omitempty"`

	Bucket       string `json:"bucket,omitempty"`
	Prefix       string `json:"prefix,omitempty"`
	Region       string `json:"region,omitempty"`
	Endpoint     string `json:"endpoint,omitempty"`
	UsePathStyle bool   `json:"usePathStyle,omitempty"`

	// Anonymous sends unsigned S3 requests, for public buckets and local
	// S3-compatible servers. Credentials otherwise come from the AWS
	// default chain.
	Anonymous bool `json:"anonymous,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled,omitempty"`
	Namespace string `json:"namespace,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Name: "The Whispering Library",
		Server: ServerConfig{
			Host:            DefaultHost,
			Port:            DefaultPort,
			ShutdownTimeout: "10s",
		},
		Static: StaticConfig{
			Dir:         "public",
			Prefix:      "/",
			StyleSheets: []string{DefaultStyleSheet},
		},
		Session: SessionConfig{
			MaxSessions:   1000,
			IdleTimeout:   "5m",
			SweepInterval: "30s",
		},
		Welcome: WelcomeConfig{
			StartButtonText: DefaultStartButtonText,
		},
		Call: CallConfig{
			RoomPrefix: "voice_assistant_room",
			TokenTTL:   "15m",
		},
		Saves: SavesConfig{
			Backend: BackendDisk,
			Dir:     DefaultSaveDir,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "gmvoice",
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for gmvoice.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E141").
				WithDetail("No gmvoice.json found in " + filepath.Dir(path)).
				WithSuggestion("Create gmvoice.json or run without --config to use defaults")
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse gmvoice.json: " + err.Error()).
			WithSuggestion("Check that gmvoice.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// ApplyEnv overrides file values with environment variables.
func (c *Config) ApplyEnv() error {
	return c.applyEnv(os.LookupEnv)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLiveKitURL); ok {
		c.Call.ServerURL = v
	}
	if v, ok := lookup(EnvLiveKitAPIKey); ok {
		c.Call.APIKey = v
	}
	if v, ok := lookup(EnvLiveKitAPISecret); ok {
		c.Call.APISecret = v
	}
	if v, ok := lookup(EnvSaveBucket); ok && v != "" {
		c.Saves.Backend = BackendS3
		c.Saves.Bucket = v
	}
	if v, ok := lookup(EnvPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.New("E121").
				WithDetail(EnvPort + " must be an integer, got " + strconv.Quote(v))
		}
		c.Server.Port = port
	}
	return nil
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	d := New()

	if c.Server.Host == "" {
		c.Server.Host = d.Server.Host
	}
	if c.Server.Port == 0 {
		c.Server.Port = d.Server.Port
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = d.Server.ShutdownTimeout
	}
	if c.Static.Dir == "" {
		c.Static.Dir = d.Static.Dir
	}
	if c.Static.Prefix == "" {
		c.Static.Prefix = d.Static.Prefix
	}
	if c.Session.IdleTimeout == "" {
		c.Session.IdleTimeout = d.Session.IdleTimeout
	}
	if c.Session.SweepInterval == "" {
		c.Session.SweepInterval = d.Session.SweepInterval
	}
	if c.Call.RoomPrefix == "" {
		c.Call.RoomPrefix = d.Call.RoomPrefix
	}
	if c.Call.TokenTTL == "" {
		c.Call.TokenTTL = d.Call.TokenTTL
	}
	if c.Saves.Backend == "" {
		c.Saves.Backend = d.Saves.Backend
	}
	if c.Saves.Backend == BackendDisk && c.Saves.Dir == "" {
		c.Saves.Dir = d.Saves.Dir
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = d.Metrics.Namespace
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E121").
			WithDetail("server.port must be between 0 and 65535")
	}
	if c.Session.MaxSessions < 0 {
		return errors.New("E121").
			WithDetail("session.maxSessions must not be negative")
	}
	for name, value := range map[string]string{
		"server.shutdownTimeout": c.Server.ShutdownTimeout,
		"session.idleTimeout":    c.Session.IdleTimeout,
		"session.sweepInterval":  c.Session.SweepInterval,
		"call.tokenTtl":          c.Call.TokenTTL,
	} {
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return errors.New("E121").
				WithDetail(name + " must be a positive duration, got " + strconv.Quote(value)).
				WithSuggestion(`Use Go duration syntax such as "30s" or "5m"`)
		}
	}
	switch c.Saves.Backend {
	case BackendDisk:
		if c.Saves.Dir == "" {
			return errors.New("E304").WithDetail("saves.dir is required for the disk backend")
		}
	case BackendS3:
		if c.Saves.Bucket == "" {
			return errors.New("E304").WithDetail("saves.bucket is required for the s3 backend")
		}
	default:
		return errors.New("E304").WithDetail("unknown saves.backend " + strconv.Quote(c.Saves.Backend))
	}
	return nil
}

// Address returns the host:port the server listens on.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// ShutdownTimeout returns the parsed graceful shutdown timeout.
func (c *Config) ShutdownTimeout() time.Duration {
	return parseDuration(c.Server.ShutdownTimeout, 10*time.Second)
}

// IdleTimeout returns the parsed session idle timeout.
func (c *Config) IdleTimeout() time.Duration {
	return parseDuration(c.Session.IdleTimeout, 5*time.Minute)
}

// SweepInterval returns the parsed session sweep interval.
func (c *Config) SweepInterval() time.Duration {
	return parseDuration(c.Session.SweepInterval, 30*time.Second)
}

// TokenTTL returns the parsed participant token lifetime.
func (c *Config) TokenTTL() time.Duration {
	return parseDuration(c.Call.TokenTTL, 15*time.Minute)
}

// PublicPath returns the absolute path to the public directory.
func (c *Config) PublicPath() string {
	if filepath.IsAbs(c.Static.Dir) {
		return c.Static.Dir
	}
	return filepath.Join(c.Dir(), c.Static.Dir)
}

// SaveDirPath returns the absolute path to the disk save directory.
func (c *Config) SaveDirPath() string {
	if filepath.IsAbs(c.Saves.Dir) {
		return c.Saves.Dir
	}
	return filepath.Join(c.Dir(), c.Saves.Dir)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
