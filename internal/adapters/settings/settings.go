// Package settings loads loru's tool-level settings with koanf.
package settings

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"go.trai.ch/loru/internal/core/domain"
	"go.trai.ch/zerr"
)

// EnvPrefix is the prefix of environment variables overriding settings.
const EnvPrefix = "LORU_"

const maxSettingsFileSize = 1 << 20

// Loader reads settings from defaults, an optional YAML file and the environment.
//
// Precedence, highest first:
//  1. LORU_* environment variables (LORU_JOBS -> jobs)
//  2. GITHUB_TOKEN, for github_token only
//  3. the settings file
//  4. domain.DefaultSettings
type Loader struct {
	// Path is the settings file. A missing file is not an error.
	Path string
}

// NewLoader creates a Loader for the default settings file location.
func NewLoader() *Loader {
	return &Loader{Path: domain.DefaultSettingsPath()}
}

// Load returns the merged settings.
func (l *Loader) Load() (*domain.Settings, error) {
	k := koanf.New(".")

	if err := l.loadFile(k); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider("GITHUB_TOKEN", ".", func(s string) string {
		if s != "GITHUB_TOKEN" {
			return ""
		}
		return "github_token"
	}), nil); err != nil {
		return nil, zerr.Wrap(errors.Join(domain.ErrSettingsLoadFailed, err), "environment")
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, zerr.Wrap(errors.Join(domain.ErrSettingsLoadFailed, err), "environment")
	}

	s := domain.DefaultSettings()
	if err := k.Unmarshal("", &s); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrSettingsLoadFailed, err), "path", l.Path)
	}

	if s.Jobs < 1 {
		s.Jobs = 1
	}
	if s.LogFormat == "" {
		s.LogFormat = domain.LogFormatPretty
	}

	return &s, nil
}

func (l *Loader) loadFile(k *koanf.Koanf) error {
	if l.Path == "" {
		return nil
	}

	info, err := os.Stat(l.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return zerr.With(errors.Join(domain.ErrSettingsLoadFailed, err), "path", l.Path)
	}
	if info.Size() > maxSettingsFileSize {
		err := zerr.Wrap(domain.ErrSettingsLoadFailed, "settings file too large")
		return zerr.With(err, "path", l.Path)
	}

	// #nosec G304 -- settings path comes from the user config dir
	content, err := os.ReadFile(l.Path)
	if err != nil {
		return zerr.With(errors.Join(domain.ErrSettingsLoadFailed, err), "path", l.Path)
	}

	if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
		return zerr.With(errors.Join(domain.ErrSettingsLoadFailed, err), "path", l.Path)
	}
	return nil
}
