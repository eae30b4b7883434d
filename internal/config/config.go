// Package config загружает необязательный cfront.toml.
//
// Файл ищется от стартового каталога вверх до корня файловой системы.
// Значения из файла служат умолчаниями; явные флаги командной строки
// всегда имеют приоритет.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the manifest file looked up from the working directory upward.
const FileName = "cfront.toml"

// Config mirrors the cfront.toml layout.
type Config struct {
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Run         RunConfig         `toml:"run"`
	Dump        DumpConfig        `toml:"dump"`
}

// DiagnosticsConfig controls diagnostic collection.
type DiagnosticsConfig struct {
	Max int `toml:"max"`
}

// RunConfig controls directory runs.
type RunConfig struct {
	Jobs int `toml:"jobs"`
}

// DumpConfig controls dump output.
type DumpConfig struct {
	Format string `toml:"format"`
}

// Manifest is a loaded config together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Find walks from startDir toward the filesystem root looking for cfront.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads the manifest found from startDir. ok is false when no
// cfront.toml exists anywhere up the tree; that is not an error.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}

// LoadFile parses one specific config file.
func LoadFile(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return cfg, validate(path, cfg)
}

func validate(path string, cfg Config) error {
	if cfg.Diagnostics.Max < 0 {
		return fmt.Errorf("%s: [diagnostics].max must not be negative", path)
	}
	if cfg.Run.Jobs < 0 {
		return fmt.Errorf("%s: [run].jobs must not be negative", path)
	}
	switch cfg.Dump.Format {
	case "", "pretty", "json":
	default:
		return fmt.Errorf("%s: [dump].format must be \"pretty\" or \"json\"", path)
	}
	return nil
}
