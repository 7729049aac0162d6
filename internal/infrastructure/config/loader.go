package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/imagegen/assets"
	configapp "github.com/doeshing/imagegen/internal/application/config"
	"github.com/doeshing/imagegen/internal/domain"
	"github.com/doeshing/imagegen/internal/pkg/filesystem"
	"github.com/doeshing/imagegen/internal/ports"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "IMAGEGEN_CONFIG"

// FileLoader loads YAML configuration from ~/.imagegen/config.yaml (overridable via IMAGEGEN_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. A missing file is created with defaults.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if err := filesystem.WriteFileAtomic(path, assets.DefaultConfigYAML, domain.SecureFilePermissions); err != nil {
				return domain.Config{}, err
			}
			return DefaultConfig(), nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse %s: %w", path, err)
	}

	return hydrateDefaults(cfg), nil
}

// Save validates cfg and writes it back to disk. The file being replaced is
// kept at BackupPath.
func (l *FileLoader) Save(cfg domain.Config) error {
	if err := configapp.Validate(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return err
	}
	if _, err := l.Backup(); err != nil {
		return err
	}
	return writeConfig(path, cfg)
}

// Backup copies the current file to BackupPath and returns that path.
// Nothing is written, and the path is empty, when no config file exists yet.
func (l *FileLoader) Backup() (string, error) {
	data, err := os.ReadFile(l.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	backup := l.BackupPath()
	if err := filesystem.WriteFileAtomic(backup, data, domain.SecureFilePermissions); err != nil {
		return "", fmt.Errorf("backup %s: %w", backup, err)
	}
	return backup, nil
}

// Reset overwrites the file with the embedded defaults, keeping the previous
// contents at BackupPath.
func (l *FileLoader) Reset() (domain.Config, error) {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}
	if _, err := l.Backup(); err != nil {
		return domain.Config{}, err
	}
	if err := filesystem.WriteFileAtomic(path, assets.DefaultConfigYAML, domain.SecureFilePermissions); err != nil {
		return domain.Config{}, err
	}
	return DefaultConfig(), nil
}

// BackupPath is the single slot holding the contents replaced by the last
// Save or Reset.
func (l *FileLoader) BackupPath() string {
	return l.Path() + ".bak"
}

// Path returns the resolved config file location.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return filesystem.ExpandPath(l.overridePath)
	}
	if custom := os.Getenv(EnvConfigPath); custom != "" {
		return filesystem.ExpandPath(custom)
	}
	return filesystem.DataDir("config.yaml")
}

func ensureConfigDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
}

func writeConfig(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return filesystem.WriteFileAtomic(path, raw, domain.SecureFilePermissions)
}

// DefaultConfig returns the embedded defaults.
func DefaultConfig() domain.Config {
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, &cfg); err != nil {
		panic(fmt.Sprintf("embedded default config: %v", err))
	}
	return cfg
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	def := DefaultConfig()
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = def.ConfigFormatVersion
	}
	if cfg.Preferences.DefaultAspectRatio == "" {
		cfg.Preferences.DefaultAspectRatio = def.Preferences.DefaultAspectRatio
	}
	if cfg.Preferences.TimeoutSeconds == 0 {
		cfg.Preferences.TimeoutSeconds = def.Preferences.TimeoutSeconds
	}
	if cfg.Preferences.BatchConcurrency == 0 {
		cfg.Preferences.BatchConcurrency = def.Preferences.BatchConcurrency
	}
	if cfg.Gemini.Endpoint == "" {
		cfg.Gemini.Endpoint = def.Gemini.Endpoint
	}
	if cfg.Gemini.ModelID == "" {
		cfg.Gemini.ModelID = def.Gemini.ModelID
	}
	if cfg.Gemini.AuthEnvVar == "" {
		cfg.Gemini.AuthEnvVar = def.Gemini.AuthEnvVar
	}
	if cfg.Gemini.SafetyThreshold == "" {
		cfg.Gemini.SafetyThreshold = def.Gemini.SafetyThreshold
	}
	cfg.History.Backend = domain.NormalizeBackend(cfg.History.Backend)
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
