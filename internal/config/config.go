package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"golang.org/x/text/encoding/unicode"
)

const (
	// FileName is the config file looked up next to the executable.
	FileName = "appxlauncher.json"

	envConfigPath = "APPXLAUNCHER_CONFIG"

	keyPackageFamilyName = "PackageFamilyName"
	keyAppID             = "AppId"
	keyInjectDLL         = "InjectDll"
	keyAlwaysResume      = "AlwaysResume"
)

// ErrInvalid reports a config file that is absent, empty, malformed or
// missing a key the caller requires.
var ErrInvalid = errors.New("config missing or invalid")

// Config holds the recognized keys of the launcher config file.
type Config struct {
	PackageFamilyName string
	AppID             string
	InjectDLL         string
	AlwaysResume      bool
}

// Path returns the config location for the given executable.
// APPXLAUNCHER_CONFIG wins over the file next to the executable.
func Path(exePath string) string {
	if explicit := strings.TrimSpace(os.Getenv(envConfigPath)); explicit != "" {
		return explicit
	}
	return filepath.Join(filepath.Dir(exePath), FileName)
}

// Load reads the config file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a UTF-8 JSON document, skipping a leading byte order mark.
func Parse(data []byte) (Config, error) {
	var cfg Config

	decoded, err := unicode.UTF8BOM.NewDecoder().Bytes(data)
	if err != nil {
		return cfg, fmt.Errorf("%w: decode: %w", ErrInvalid, err)
	}
	text := string(decoded)
	if strings.TrimSpace(text) == "" {
		return cfg, fmt.Errorf("%w: empty document", ErrInvalid)
	}
	if !gjson.Valid(text) {
		return cfg, fmt.Errorf("%w: malformed JSON", ErrInvalid)
	}
	root := gjson.Parse(text)
	if !root.IsObject() {
		return cfg, fmt.Errorf("%w: top-level value must be an object", ErrInvalid)
	}

	if cfg.PackageFamilyName, err = stringKey(root, keyPackageFamilyName); err != nil {
		return cfg, err
	}
	if cfg.AppID, err = stringKey(root, keyAppID); err != nil {
		return cfg, err
	}
	if cfg.InjectDLL, err = stringKey(root, keyInjectDLL); err != nil {
		return cfg, err
	}
	if v := root.Get(keyAlwaysResume); v.Exists() {
		if v.Type != gjson.True && v.Type != gjson.False {
			return cfg, fmt.Errorf("%w: %s must be a boolean", ErrInvalid, keyAlwaysResume)
		}
		cfg.AlwaysResume = v.Bool()
	}

	return cfg, nil
}

func stringKey(root gjson.Result, key string) (string, error) {
	v := root.Get(key)
	if !v.Exists() {
		return "", nil
	}
	if v.Type != gjson.String {
		return "", fmt.Errorf("%w: %s must be a string", ErrInvalid, key)
	}
	return v.String(), nil
}

// RequirePackage checks the keys the orchestrator needs.
func (c Config) RequirePackage() error {
	if strings.TrimSpace(c.PackageFamilyName) == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalid, keyPackageFamilyName)
	}
	if strings.TrimSpace(c.AppID) == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalid, keyAppID)
	}
	return nil
}

// ModulePath returns the module to inject. Relative paths are anchored to
// the directory of exePath, not the working directory.
func (c Config) ModulePath(exePath string) (string, error) {
	if strings.TrimSpace(c.InjectDLL) == "" {
		return "", fmt.Errorf("%w: %s is required", ErrInvalid, keyInjectDLL)
	}
	if filepath.IsAbs(c.InjectDLL) {
		return c.InjectDLL, nil
	}
	return filepath.Join(filepath.Dir(exePath), c.InjectDLL), nil
}
