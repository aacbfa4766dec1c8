package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Config holds all configurable inkwell settings.
type Config struct {
	VaultPath    string   `json:"vault_path"`    // storage root for all documents
	ModelCommand string   `json:"model_command"` // model CLI binary
	ModelArgs    []string `json:"model_args"`    // args placed before the prompt
}

// Defaults returns sensible default configuration values.
func Defaults() Config {
	return Config{
		VaultPath:    defaultVaultPath(),
		ModelCommand: "claude",
		ModelArgs:    []string{"-p"},
	}
}

// defaultVaultPath is ~/Documents/vault, falling back to ./Documents/vault
// when the home directory cannot be resolved.
func defaultVaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("Documents", "vault")
	}
	return filepath.Join(home, "Documents", "vault")
}

// GlobalPath returns the global config file location.
func GlobalPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "inkwell", "config.json"), nil
}

// LoadGlobal reads ~/.config/inkwell/config.json.
// Returns defaults if the file is absent.
func LoadGlobal() (*Config, error) {
	path, err := GlobalPath()
	if err != nil {
		return nil, err
	}
	return loadFile(path, true)
}

// LoadProject reads .inkwellrc in the current working directory.
// Returns nil (no error) if the file is absent.
func LoadProject() (*Config, error) {
	return loadFile(".inkwellrc", false)
}

// loadFile reads and parses a JSON config file at path.
// If returnDefaults is true, returns defaults when the file is absent.
// If returnDefaults is false, returns nil when the file is absent.
func loadFile(path string, returnDefaults bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if returnDefaults {
				d := Defaults()
				return &d, nil
			}
			return nil, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &cfg, nil
}

// Save writes cfg to the global config file, creating the config
// directory if needed.
func Save(cfg Config) error {
	path, err := GlobalPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Merge combines global and project configs, with project taking
// precedence. Missing keys fall back to global, then defaults.
func Merge(global, project *Config) Config {
	result := Defaults()

	for _, layer := range []*Config{global, project} {
		if layer == nil {
			continue
		}
		if layer.VaultPath != "" {
			result.VaultPath = layer.VaultPath
		}
		if layer.ModelCommand != "" {
			result.ModelCommand = layer.ModelCommand
			result.ModelArgs = layer.ModelArgs
		}
	}

	return result
}

// ParseError is returned when a config file exists but cannot be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "failed to parse config file " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
