// Package config loads mockstudio settings from a TOML file.
//
// Every field is optional. [Config.Resolve] applies command-line overrides
// and then fills whatever is still empty with defaults, so a missing file
// and an empty file behave the same.
//
//	[server]
//	addr = ":8080"
//
//	[export]
//	size = 2000
//	background = "#ffffff"
//	format = "png"
//
//	[tryon]
//	model = "gemini-2.5-flash-image"
//	timeout = "90s"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/furiarock/mockstudio/pkg/errors"
	"github.com/furiarock/mockstudio/pkg/garment"
	"github.com/furiarock/mockstudio/pkg/render/sink"
	"github.com/furiarock/mockstudio/pkg/session"
	"github.com/furiarock/mockstudio/pkg/tryon"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Defaults not owned by another package.
const (
	DefaultAddr      = ":8080"
	DefaultRedisAddr = "localhost:6379"
)

// Duration is a time.Duration written as a Go duration string in TOML.
type Duration struct{ time.Duration }

// UnmarshalText parses strings such as "90s" or "2h".
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats d as a Go duration string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Config is the full settings tree.
type Config struct {
	Server  Server  `toml:"server"`
	Export  Export  `toml:"export"`
	TryOn   TryOn   `toml:"tryon"`
	Cache   Cache   `toml:"cache"`
	Session Session `toml:"session"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`
	// Prerender lists garment colors whose silhouette layers are cached at
	// startup.
	Prerender []string `toml:"prerender"`
}

// Export configures mockup rendering.
type Export struct {
	Size          int    `toml:"size"`
	Background    string `toml:"background"`
	WatermarkText string `toml:"watermark_text"`
	Format        string `toml:"format"`
}

// TryOn configures the generative image API.
type TryOn struct {
	Endpoint  string   `toml:"endpoint"`
	Model     string   `toml:"model"`
	APIKeyEnv string   `toml:"api_key_env"`
	Timeout   Duration `toml:"timeout"`
}

// APIKey reads the key from the configured environment variable.
func (t TryOn) APIKey() string {
	return os.Getenv(t.APIKeyEnv)
}

// Cache configures the artifact cache.
type Cache struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	Prefix        string   `toml:"prefix"`
	TTL           Duration `toml:"ttl"`
}

// Session configures in-memory projects.
type Session struct {
	TTL Duration `toml:"ttl"`
}

// Load reads the TOML file at path. Unknown keys are rejected so typos do
// not go unnoticed.
func Load(path string) (Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s not found", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidInput, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// Flags are command-line values that override the file. Zero values are
// ignored.
type Flags struct {
	Addr     string
	Size     int
	Format   string
	CacheDir string
	NoCache  bool
}

// Resolve applies flags, fills defaults and validates the result.
// defaultCacheDir is used for the file backend when no dir is configured.
func (c *Config) Resolve(flags Flags, defaultCacheDir string) error {
	if flags.Addr != "" {
		c.Server.Addr = flags.Addr
	}
	if flags.Size > 0 {
		c.Export.Size = flags.Size
	}
	if flags.Format != "" {
		c.Export.Format = flags.Format
	}
	if flags.CacheDir != "" {
		c.Cache.Dir = flags.CacheDir
	}
	if flags.NoCache {
		c.Cache.Backend = CacheNone
	}

	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}

	if c.Export.Size <= 0 {
		c.Export.Size = sink.DefaultRasterSize
	}
	if c.Export.Background == "" {
		c.Export.Background = "#ffffff"
	}
	bg, err := garment.NormalizeColor(c.Export.Background)
	if err != nil {
		return err
	}
	c.Export.Background = bg
	f, err := sink.ParseFormat(c.Export.Format)
	if err != nil {
		return err
	}
	if !f.Raster() {
		return errors.New(errors.ErrCodeInvalidFormat, "export format must be png or webp, got %q", f)
	}
	c.Export.Format = string(f)
	for i, col := range c.Server.Prerender {
		if c.Server.Prerender[i], err = garment.NormalizeColor(col); err != nil {
			return err
		}
	}

	if c.TryOn.Endpoint == "" {
		c.TryOn.Endpoint = tryon.DefaultEndpoint
	}
	if err := errors.ValidateURL(c.TryOn.Endpoint); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "[tryon] endpoint")
	}
	if c.TryOn.Model == "" {
		c.TryOn.Model = tryon.DefaultModel
	}
	if c.TryOn.APIKeyEnv == "" {
		c.TryOn.APIKeyEnv = tryon.DefaultAPIKeyEnv
	}
	if c.TryOn.Timeout.Duration <= 0 {
		c.TryOn.Timeout.Duration = tryon.DefaultTimeout
	}

	switch c.Cache.Backend {
	case "":
		c.Cache.Backend = CacheFile
	case CacheFile, CacheRedis, CacheNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.Dir == "" {
		c.Cache.Dir = defaultCacheDir
	}
	if c.Cache.Backend == CacheFile && c.Cache.Dir == "" {
		return errors.New(errors.ErrCodeInvalidInput, "file cache needs a directory")
	}
	if c.Cache.Dir != "" {
		c.Cache.Dir = filepath.Clean(c.Cache.Dir)
	}
	if c.Cache.RedisAddr == "" {
		c.Cache.RedisAddr = DefaultRedisAddr
	}

	if c.Session.TTL.Duration <= 0 {
		c.Session.TTL.Duration = session.DefaultTTL
	}
	return nil
}
