package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/furiarock/mockstudio/pkg/cache"
	"github.com/furiarock/mockstudio/pkg/compose"
	"github.com/furiarock/mockstudio/pkg/config"
	"github.com/furiarock/mockstudio/pkg/garment"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "mockstudio"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig reads --config when given, then applies flags and defaults.
// Without a usable cache directory the file cache is turned off.
func (c *CLI) loadConfig(flags config.Flags) (config.Config, error) {
	var cfg config.Config
	if c.configPath != "" {
		var err error
		if cfg, err = config.Load(c.configPath); err != nil {
			return config.Config{}, err
		}
		c.Logger.Debug("loaded config", "path", c.configPath)
	}
	dir, err := cacheDir()
	if err != nil && flags.CacheDir == "" && cfg.Cache.Dir == "" && cfg.Cache.Backend != config.CacheRedis {
		c.Logger.Debug("no cache directory, caching disabled", "error", err)
		flags.NoCache = true
	}
	if err := cfg.Resolve(flags, dir); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// =============================================================================
// Exporter Factory
// =============================================================================

// newCache opens the cache backend named by cfg.
func (c *CLI) newCache(ctx context.Context, cfg config.Cache) (cache.Cache, cache.Keyer, error) {
	var keyer cache.Keyer = cache.NewDefaultKeyer()
	if cfg.Prefix != "" {
		keyer = cache.NewScopedKeyer(keyer, cfg.Prefix)
	}

	switch cfg.Backend {
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, nil, err
		}
		c.Logger.Debug("using redis cache", "addr", cfg.RedisAddr)
		return rc, keyer, nil
	case config.CacheFile:
		fc, err := cache.NewFileCache(cfg.Dir)
		if err != nil {
			return nil, nil, err
		}
		c.Logger.Debug("using file cache", "dir", cfg.Dir)
		return fc, keyer, nil
	default:
		return cache.NewNullCache(), keyer, nil
	}
}

// newExporter builds an exporter from cfg. The caller closes the returned
// cache when done.
func (c *CLI) newExporter(ctx context.Context, cfg config.Config) (*compose.Exporter, error) {
	ch, keyer, err := c.newCache(ctx, cfg.Cache)
	if err != nil {
		return nil, err
	}
	bg, err := garment.ParseColor(cfg.Export.Background)
	if err != nil {
		_ = ch.Close()
		return nil, err
	}
	exp := compose.NewExporter(ch, keyer, c.Logger)
	exp.Size = cfg.Export.Size
	exp.Background = bg
	exp.WatermarkText = cfg.Export.WatermarkText
	exp.TTL = cfg.Cache.TTL.Duration
	return exp, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/mockstudio/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
