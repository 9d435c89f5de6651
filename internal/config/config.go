package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/matheuskafuri/scoopy/internal/corpus"
	"github.com/matheuskafuri/scoopy/internal/learn"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

type Feed struct {
	Name    string `yaml:"name"`
	URL     string `yaml:"url"`
	Enabled bool   `yaml:"enabled"`
}

type Classifier struct {
	Loss       string  `yaml:"loss"`
	Alpha      float64 `yaml:"alpha"`
	Seed       int64   `yaml:"seed"`
	Iterations int     `yaml:"iterations"`
}

type Config struct {
	Browser          string     `yaml:"browser,omitempty"` // executable; empty = OS default
	Corpus           string     `yaml:"corpus,omitempty"`
	HistoryRetention string     `yaml:"history_retention"`
	EvaluationSeed   int64      `yaml:"evaluation_seed"`
	Classifier       Classifier `yaml:"classifier"`
	Feeds            []Feed     `yaml:"feeds"`
}

// BrowserCommand returns the configured browser, falling back to
// SCOOPY_BROWSER.
func (c *Config) BrowserCommand() string {
	if c.Browser != "" {
		return c.Browser
	}
	return os.Getenv("SCOOPY_BROWSER")
}

// CorpusPath returns where labels are persisted.
func (c *Config) CorpusPath() string {
	if c.Corpus != "" {
		return os.ExpandEnv(c.Corpus)
	}
	return filepath.Join(DataDir(), corpus.DefaultFileName)
}

func (c *Config) RetentionDuration() time.Duration {
	if d, err := ParseDays(c.HistoryRetention); err == nil {
		return d
	}
	return 365 * 24 * time.Hour
}

// Params converts the classifier section, using defaults for unset fields.
func (c *Config) Params() learn.Params {
	p := learn.DefaultParams()
	if c.Classifier.Loss != "" {
		p.Loss = c.Classifier.Loss
	}
	if c.Classifier.Alpha != 0 {
		p.Alpha = c.Classifier.Alpha
	}
	if c.Classifier.Seed != 0 {
		p.Seed = c.Classifier.Seed
	}
	if c.Classifier.Iterations != 0 {
		p.Iterations = c.Classifier.Iterations
	}
	return p
}

func (c *Config) EnabledFeeds() []Feed {
	var out []Feed
	for _, f := range c.Feeds {
		if f.Enabled {
			out = append(out, f)
		}
	}
	return out
}

// FeedURLs lists enabled feed URLs in config order.
func (c *Config) FeedURLs() []string {
	var urls []string
	for _, f := range c.EnabledFeeds() {
		urls = append(urls, f.URL)
	}
	return urls
}

// AddFeeds appends enabled feeds for urls not configured yet and returns
// how many were added.
func (c *Config) AddFeeds(urls []string) int {
	known := make(map[string]bool, len(c.Feeds))
	for _, f := range c.Feeds {
		known[f.URL] = true
	}
	added := 0
	for _, u := range urls {
		if known[u] {
			continue
		}
		known[u] = true
		c.Feeds = append(c.Feeds, Feed{Name: feedName(u), URL: u, Enabled: true})
		added++
	}
	return added
}

func feedName(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Host + u.Path
}

// ParseDays parses a duration that also accepts a day suffix ("30d").
func ParseDays(s string) (time.Duration, error) {
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour, nil
		}
	}
	return time.ParseDuration(s)
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "scoopy", "config.yaml")
}

func DataDir() string {
	return filepath.Join(xdg.DataHome, "scoopy")
}

func HistoryPath() string {
	return filepath.Join(DataDir(), "history.db")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config at path (DefaultConfigPath when empty). On first
// run the embedded defaults are written there.
func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Non-fatal: the embedded defaults still apply.
			_ = writeDefaults(path)
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	mergeDefaultFeeds(&cfg, defaults)
	if cfg.HistoryRetention == "" {
		cfg.HistoryRetention = defaults.HistoryRetention
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes cfg to path.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}
	if err := validate(cfg); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

// mergeDefaultFeeds appends default feeds whose URL the user config does
// not list yet. User entries win.
func mergeDefaultFeeds(cfg, defaults *Config) {
	known := make(map[string]bool, len(cfg.Feeds))
	for _, f := range cfg.Feeds {
		known[f.URL] = true
	}
	for _, f := range defaults.Feeds {
		if !known[f.URL] {
			cfg.Feeds = append(cfg.Feeds, f)
		}
	}
}

func validate(cfg *Config) error {
	for i, f := range cfg.Feeds {
		if f.URL == "" {
			return fmt.Errorf("feed %d: url is required", i)
		}
		u, err := url.Parse(f.URL)
		if err != nil {
			return fmt.Errorf("feed %q: invalid url: %w", f.URL, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("feed %q: url scheme must be http or https, got %q", f.URL, u.Scheme)
		}
	}
	if err := cfg.Params().Validate(); err != nil {
		return fmt.Errorf("classifier: %w", err)
	}
	return nil
}
