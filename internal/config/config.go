package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/blackwell-systems/aethernote/internal/util"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "aethernote", "config.yml")
}

// Path resolves which config file to use: the explicit path, then
// AETHERNOTE_CONFIG, then the default.
func Path(explicit string) string {
	if explicit != "" {
		return util.ExpandHome(explicit)
	}
	if p := os.Getenv("AETHERNOTE_CONFIG"); p != "" {
		return util.ExpandHome(p)
	}
	return DefaultPath()
}

// Defaults returns the configuration used when no file exists.
func Defaults() *Config {
	dataDir := defaultDataDir()
	return &Config{
		Storage: StorageConfig{DataDir: dataDir, DBFile: "aethernote.db"},
		Themes:  ThemesConfig{Timeout: defaultTimeout},
		Serve:   ServeConfig{Host: "127.0.0.1", Port: 8765, CacheDir: filepath.Join(dataDir, "offline")},
		Log:     LogConfig{Level: "info"},
	}
}

// Load reads the config from disk (or env). A missing file is not an
// error; the defaults apply and `config init` can create it.
func Load(path string) (*Config, error) {
	d := Defaults()
	v := viper.New()

	v.SetDefault("storage.data_dir", d.Storage.DataDir)
	v.SetDefault("storage.db_file", d.Storage.DBFile)
	v.SetDefault("themes.manifest", "")
	v.SetDefault("themes.timeout", d.Themes.Timeout)
	v.SetDefault("serve.host", d.Serve.Host)
	v.SetDefault("serve.port", d.Serve.Port)
	v.SetDefault("serve.cache_dir", "")
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", "")

	v.SetEnvPrefix("AETHERNOTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(Path(path))
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		// Not finding the config file is fine.
		if !os.IsNotExist(err) {
			if _, isCfgNotFound := err.(viper.ConfigFileNotFoundError); !isCfgNotFound {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.resolve()
	return &cfg, nil
}

// resolve expands ~ and fills paths derived from the data dir.
func (c *Config) resolve() {
	c.Storage.DataDir = util.ExpandHome(c.Storage.DataDir)
	if c.Serve.CacheDir == "" {
		c.Serve.CacheDir = filepath.Join(c.Storage.DataDir, "offline")
	}
	c.Serve.CacheDir = util.ExpandHome(c.Serve.CacheDir)
	if c.Log.File == "" {
		c.Log.File = filepath.Join(c.Storage.DataDir, "aethernote.log")
	}
	c.Log.File = util.ExpandHome(c.Log.File)
	if c.Themes.Timeout <= 0 {
		c.Themes.Timeout = defaultTimeout
	}
}

// Save writes the config to path with two-space YAML indentation.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

func defaultDataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "aethernote")
}
