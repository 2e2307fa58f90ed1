package config

import (
	"bytes"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/declarative/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "declarative.json"

	DefaultHost            = "localhost"
	DefaultPort            = 4000
	DefaultMetricsPath     = "/metrics"
	DefaultShutdownTimeout = "10s"
	DefaultIndent          = "  "
	DefaultSnapshotKey     = "index.html"
	DefaultRegion          = "us-east-1"
)

// ConfigFileNames lists the accepted config files in lookup order.
var ConfigFileNames = []string{
	ConfigFileName,
	"declarative.yaml",
	"declarative.yml",
	"declarative.toml",
}

// Config is the declarative.json configuration.
type Config struct {
	// Name is the project name, used as the page title.
	Name string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`

	Server   ServerConfig   `json:"server,omitempty" yaml:"server,omitempty" toml:"server,omitempty"`
	Render   RenderConfig   `json:"render,omitempty" yaml:"render,omitempty" toml:"render,omitempty"`
	Snapshot SnapshotConfig `json:"snapshot,omitempty" yaml:"snapshot,omitempty" toml:"snapshot,omitempty"`

	// Debug enables debug logging.
	Debug bool `json:"debug,omitempty" yaml:"debug,omitempty" toml:"debug,omitempty"`

	configPath string
}

// ServerConfig configures the live server.
type ServerConfig struct {
	Host string `json:"host,omitempty" yaml:"host,omitempty" toml:"host,omitempty"`
	Port int    `json:"port,omitempty" yaml:"port,omitempty" toml:"port,omitempty"`

	// MetricsPath is where Prometheus metrics are served. "-" disables it;
	// so does an empty path set after loading (files fill in the default).
	MetricsPath string `json:"metricsPath,omitempty" yaml:"metricsPath,omitempty" toml:"metricsPath,omitempty"`

	// ShutdownTimeout bounds graceful shutdown (e.g. "10s").
	ShutdownTimeout string `json:"shutdownTimeout,omitempty" yaml:"shutdownTimeout,omitempty" toml:"shutdownTimeout,omitempty"`
}

// RenderConfig configures HTML output.
type RenderConfig struct {
	Pretty bool   `json:"pretty,omitempty" yaml:"pretty,omitempty" toml:"pretty,omitempty"`
	Indent string `json:"indent,omitempty" yaml:"indent,omitempty" toml:"indent,omitempty"`
}

// SnapshotConfig configures where rendered snapshots are published.
// Destinations are tried in order: Bucket, Redis.Addr, Dir.
type SnapshotConfig struct {
	Bucket   string `json:"bucket,omitempty" yaml:"bucket,omitempty" toml:"bucket,omitempty"`
	Prefix   string `json:"prefix,omitempty" yaml:"prefix,omitempty" toml:"prefix,omitempty"`
	Key      string `json:"key,omitempty" yaml:"key,omitempty" toml:"key,omitempty"`
	Region   string `json:"region,omitempty" yaml:"region,omitempty" toml:"region,omitempty"`
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty" toml:"endpoint,omitempty"`

	// PathStyle forces path-style addressing, needed by most S3-compatible
	// stores such as MinIO.
	PathStyle bool `json:"pathStyle,omitempty" yaml:"pathStyle,omitempty" toml:"pathStyle,omitempty"`

	Redis RedisConfig `json:"redis,omitempty" yaml:"redis,omitempty" toml:"redis,omitempty"`

	Dir string `json:"dir,omitempty" yaml:"dir,omitempty" toml:"dir,omitempty"`
}

// RedisConfig points snapshot publishing at a Redis server.
type RedisConfig struct {
	Addr     string `json:"addr,omitempty" yaml:"addr,omitempty" toml:"addr,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty" toml:"password,omitempty"`
	DB       int    `json:"db,omitempty" yaml:"db,omitempty" toml:"db,omitempty"`

	// TTL expires published pages (e.g. "24h"). Empty keeps them.
	TTL string `json:"ttl,omitempty" yaml:"ttl,omitempty" toml:"ttl,omitempty"`
}

// New returns a Config with default values.
func New() *Config {
	return &Config{
		Name: "declarative",
		Server: ServerConfig{
			Host:            DefaultHost,
			Port:            DefaultPort,
			MetricsPath:     DefaultMetricsPath,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Render: RenderConfig{
			Indent: DefaultIndent,
		},
		Snapshot: SnapshotConfig{
			Key:    DefaultSnapshotKey,
			Region: DefaultRegion,
		},
	}
}

// Load reads the config file from dir. When several formats are present
// the first of ConfigFileNames wins.
func Load(dir string) (*Config, error) {
	if path := find(dir); path != "" {
		return LoadFile(path)
	}
	return nil, errors.New("D021").WithDetail("No " + ConfigFileName + " found in " + dir)
}

// LoadOrDefault is Load that returns defaults when dir has no config file.
func LoadOrDefault(dir string) (*Config, error) {
	if !Exists(dir) {
		return New(), nil
	}
	return Load(dir)
}

// LoadFile reads configuration from path. The format follows the file
// extension: .json, .yaml, .yml or .toml.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("D021").
				WithDetail("No " + filepath.Base(path) + " found in " + filepath.Dir(path))
		}
		return nil, errors.New("D021").Wrap(err)
	}

	cfg := New()
	if err := unmarshal(path, data, cfg); err != nil {
		return nil, errors.New("D021").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error())
	}

	cfg.configPath = path
	cfg.applyDefaults()
	return cfg, nil
}

func unmarshal(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	case ".toml":
		_, err := toml.Decode(string(data), cfg)
		return err
	default:
		return json.Unmarshal(data, cfg)
	}
}

// SaveTo writes the configuration to path in the format its extension
// names.
func (c *Config) SaveTo(path string) error {
	data, err := c.marshal(path)
	if err != nil {
		return errors.New("D020").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("D020").Wrap(err)
	}
	c.configPath = path
	return nil
}

func (c *Config) marshal(path string) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Marshal(c)
	case ".toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		data, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
}

// Path returns the file the config was loaded from, if any.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills zero fields a partial file left empty.
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.MetricsPath == "" {
		c.Server.MetricsPath = DefaultMetricsPath
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.Render.Indent == "" {
		c.Render.Indent = DefaultIndent
	}
	if c.Snapshot.Key == "" {
		c.Snapshot.Key = DefaultSnapshotKey
	}
	if c.Snapshot.Region == "" {
		c.Snapshot.Region = DefaultRegion
	}
}

// Validate checks field ranges and formats.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("D020").
			WithDetailf("server.port must be between 0 and 65535, got %d", c.Server.Port)
	}
	if p := c.Server.MetricsPath; p != "" && p != "-" && !strings.HasPrefix(p, "/") {
		return errors.New("D020").
			WithDetailf("server.metricsPath must start with '/' or be '-', got %q", p)
	}
	if _, err := time.ParseDuration(c.Server.ShutdownTimeout); err != nil {
		return errors.New("D020").
			WithDetailf("server.shutdownTimeout %q is not a duration", c.Server.ShutdownTimeout).
			Wrap(err)
	}
	if ttl := c.Snapshot.Redis.TTL; ttl != "" {
		if _, err := time.ParseDuration(ttl); err != nil {
			return errors.New("D020").
				WithDetailf("snapshot.redis.ttl %q is not a duration", ttl).
				Wrap(err)
		}
	}
	if c.Snapshot.Bucket != "" && c.Snapshot.Key == "" {
		return errors.New("D020").WithDetail("snapshot.key is required with snapshot.bucket")
	}
	return nil
}

// Address returns the host:port the server listens on.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// ShutdownDuration returns the parsed shutdown timeout, falling back to the
// default on a malformed value.
func (c *Config) ShutdownDuration() time.Duration {
	d, err := time.ParseDuration(c.Server.ShutdownTimeout)
	if err != nil {
		d, _ = time.ParseDuration(DefaultShutdownTimeout)
	}
	return d
}

// MetricsEnabled reports whether the metrics endpoint is served.
func (c *Config) MetricsEnabled() bool {
	p := c.Server.MetricsPath
	return p != "" && p != "-"
}

// SnapshotObjectKey joins the snapshot prefix and key.
func (c *Config) SnapshotObjectKey() string {
	return c.Snapshot.Prefix + c.Snapshot.Key
}

// RedisTTL returns the parsed snapshot TTL, zero when unset or malformed.
func (c *Config) RedisTTL() time.Duration {
	d, _ := time.ParseDuration(c.Snapshot.Redis.TTL)
	return d
}

// Exists reports whether dir holds a config file in any format.
func Exists(dir string) bool {
	return find(dir) != ""
}

func find(dir string) string {
	for _, name := range ConfigFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// FindProjectRoot walks up from startDir to the first directory holding a
// config file.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}
	for {
		if Exists(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("D021").
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}
