// # internal/config/config.go
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Registry  Registry  `toml:"registry"`
	Explore   Explore   `toml:"explore"`
	Output    Output    `toml:"output"`
	Watch     Watch     `toml:"watch"`
	Telemetry Telemetry `toml:"telemetry"`
}

type Registry struct {
	URL               string        `toml:"url"`
	RequestsPerSecond float64       `toml:"requests_per_second"`
	CachePath         string        `toml:"cache_path"`
	CacheTTL          time.Duration `toml:"cache_ttl"`
}

type Explore struct {
	MaxDepth int      `toml:"max_depth"`
	Exclude  []string `toml:"exclude"`
}

type Output struct {
	Format       string `toml:"format"`
	NoColor      bool   `toml:"no_color"`
	ASCII        bool   `toml:"ascii"`
	ModuleIcon   string `toml:"module_icon"`
	FunctionIcon string `toml:"function_icon"`
	ClassIcon    string `toml:"class_icon"`
	ConstantIcon string `toml:"constant_icon"`
	ExportsIcon  string `toml:"exports_icon"`
	TypeIcon     string `toml:"type_icon"`
	SignIcon     string `toml:"signature_icon"`
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
}

type Telemetry struct {
	MetricsAddr  string `toml:"metrics_addr"`
	OTLPEndpoint string `toml:"otlp_endpoint"`
}

// Load reads the config file at path. A missing file yields the defaults;
// a present but malformed file is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Registry.URL == "" {
		c.Registry.URL = "https://registry.npmjs.org"
	}
	if c.Registry.RequestsPerSecond == 0 {
		c.Registry.RequestsPerSecond = 4
	}
	if c.Registry.CachePath == "" {
		if cacheDir, err := os.UserCacheDir(); err == nil {
			c.Registry.CachePath = filepath.Join(cacheDir, "npmlens", "metadata.db")
		}
	}
	if c.Registry.CacheTTL == 0 {
		c.Registry.CacheTTL = 24 * time.Hour
	}

	if c.Explore.MaxDepth == 0 {
		c.Explore.MaxDepth = 2
	}
	if len(c.Explore.Exclude) == 0 {
		c.Explore.Exclude = []string{"**.test.js", "**.spec.js", "**/__tests__/**"}
	}

	if c.Output.Format == "" {
		c.Output.Format = "pretty"
	}
	c.Output.applyIconDefaults()

	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = 500 * time.Millisecond
	}
}

// ForceASCII switches every icon to its ASCII label. Used when the flag flips
// ASCII mode after the config file already filled in emoji defaults.
func (o *Output) ForceASCII() {
	o.ASCII = true
	o.ModuleIcon = ""
	o.FunctionIcon = ""
	o.ClassIcon = ""
	o.ConstantIcon = ""
	o.ExportsIcon = ""
	o.TypeIcon = ""
	o.SignIcon = ""
	o.applyIconDefaults()
}

func (o *Output) applyIconDefaults() {
	type icon struct {
		field         *string
		ascii, pretty string
	}
	icons := []icon{
		{&o.ModuleIcon, "[M]", "📦"},
		{&o.FunctionIcon, "fn", "⚡"},
		{&o.ClassIcon, "cls", "🔷"},
		{&o.ConstantIcon, "const", "📌"},
		{&o.ExportsIcon, "exp", "📜"},
		{&o.TypeIcon, "type", "🔷"},
		{&o.SignIcon, "sig", "📎"},
	}
	for _, ic := range icons {
		if *ic.field != "" {
			continue
		}
		if o.ASCII {
			*ic.field = ic.ascii
		} else {
			*ic.field = ic.pretty
		}
	}
}
