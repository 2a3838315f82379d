package config

import (
	"path/filepath"
	"strconv"
	"time"
)

const defaultTimeout = 5 * time.Second

// Config is the top-level aethernote configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Themes  ThemesConfig  `mapstructure:"themes" yaml:"themes"`
	Serve   ServeConfig   `mapstructure:"serve" yaml:"serve"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// StorageConfig locates the library database.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`
	DBFile  string `mapstructure:"db_file" yaml:"db_file"`
}

// ThemesConfig points at the system theme manifest.
type ThemesConfig struct {
	Manifest string        `mapstructure:"manifest" yaml:"manifest"` // URL or file path; empty skips
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// ServeConfig holds settings for the offline web shell.
type ServeConfig struct {
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port"`
	CacheDir string `mapstructure:"cache_dir" yaml:"cache_dir"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file,omitempty"`
}

// DBPath returns the database file path. An absolute db_file wins.
func (s StorageConfig) DBPath() string {
	if filepath.IsAbs(s.DBFile) {
		return s.DBFile
	}
	name := s.DBFile
	if name == "" {
		name = "aethernote.db"
	}
	return filepath.Join(s.DataDir, name)
}

// Addr returns host:port.
func (s ServeConfig) Addr() string {
	host := s.Host
	if host == "" {
		host = "127.0.0.1"
	}
	port := s.Port
	if port == 0 {
		port = 8765
	}
	return host + ":" + strconv.Itoa(port)
}
