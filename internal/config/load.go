package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment variables, e.g. RSNFMT_MAX_WIDTH.
const EnvPrefix = "RSNFMT_"

// dirFiles are the per-directory config names, lowest priority first.
var dirFiles = []string{
	".rsnfmt.yaml",
	".rsnfmt.yml",
	"rsnfmt.yaml",
	"rsnfmt.yml",
	".rsnfmt.toml",
	"rsnfmt.toml",
	".rsnfmt.rsn",
	"rsnfmt.rsn",
}

// LoadOptions configures Load.
type LoadOptions struct {
	// ConfigPath is an explicit config file (--config); it must exist.
	ConfigPath string
	// WorkDir starts ancestor discovery; empty means the process working directory.
	WorkDir string
	// UserDir is the last fallback directory; empty means os.UserConfigDir()/rsnfmt.
	// Set NoUserDir to skip it.
	UserDir   string
	NoUserDir bool
	// Environ replaces os.Environ when non-nil.
	Environ []string
	// Overrides win over every other layer (CLI flags).
	Overrides Partial
}

// Result is a resolved configuration together with the files it was read from.
type Result struct {
	Config  Config
	Sources []string
}

// Load resolves the configuration layers described in the package documentation.
func Load(opts LoadOptions) (*Result, error) {
	var (
		acc     Partial
		sources []string
	)

	environ := opts.Environ
	if environ == nil {
		environ = os.Environ()
	}
	envLayer, err := FromEnv(environ)
	if err != nil {
		return nil, err
	}
	acc.Merge(envLayer)

	if opts.ConfigPath != "" {
		layer, err := ReadFile(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		acc.Merge(layer)
		sources = append(sources, opts.ConfigPath)
	}
	acc.Merge(opts.Overrides)

	if acc.Inherits() {
		dir := opts.WorkDir
		if dir == "" {
			if dir, err = os.Getwd(); err != nil {
				return nil, fmt.Errorf("config: %w", err)
			}
		}
		dir, err = filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("config: failed to resolve start directory: %w", err)
		}

		inherited := true
		for {
			layer, found, err := readDir(dir)
			if err != nil {
				return nil, err
			}
			acc.Join(layer)
			sources = append(sources, found...)
			if !acc.Inherits() {
				inherited = false
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}

		if inherited && !opts.NoUserDir {
			userDir := opts.UserDir
			if userDir == "" {
				base, err := os.UserConfigDir()
				if err == nil {
					userDir = filepath.Join(base, "rsnfmt")
				}
			}
			if userDir != "" {
				layer, found, err := readDir(userDir)
				if err != nil {
					return nil, err
				}
				acc.Join(layer)
				sources = append(sources, found...)
			}
		}
	}

	cfg := acc.Resolve()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &Result{Config: cfg, Sources: sources}, nil
}

// FromEnv builds a layer from RSNFMT_* variables. Variables that name no config key are
// skipped; bad values for known keys are errors.
func FromEnv(environ []string) (Partial, error) {
	var p Partial
	var errs []error
	// детерминированный порядок ошибок
	sorted := append([]string(nil), environ...)
	sort.Strings(sorted)
	for _, kv := range sorted {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
		if err := p.Set(key, value); err != nil {
			if errors.Is(err, ErrUnknownKey) {
				continue
			}
			errs = append(errs, fmt.Errorf("env %s: %w", name, err))
		}
	}
	return p, errors.Join(errs...)
}

// ReadFile decodes one config file; .yaml/.yml files use YAML, .rsn files RSN, everything
// else TOML. Unknown keys are an error.
func ReadFile(path string) (Partial, error) {
	var p Partial
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		// #nosec G304 -- path comes from discovery or the user
		data, err := os.ReadFile(path)
		if err != nil {
			return Partial{}, err
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
			return Partial{}, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
		}
	case ".rsn":
		// #nosec G304 -- path comes from discovery or the user
		data, err := os.ReadFile(path)
		if err != nil {
			return Partial{}, err
		}
		return decodeRSN(path, data)
	default:
		meta, err := toml.DecodeFile(path, &p)
		if err != nil {
			return Partial{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, k := range undecoded {
				keys = append(keys, k.String())
			}
			return Partial{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
		}
	}
	return p, nil
}

// readDir merges the config files present in dir.
func readDir(dir string) (Partial, []string, error) {
	var (
		p     Partial
		found []string
	)
	for _, name := range dirFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return Partial{}, nil, fmt.Errorf("failed to stat %q: %w", path, err)
		}
		layer, err := ReadFile(path)
		if err != nil {
			return Partial{}, nil, err
		}
		p.Merge(layer)
		found = append(found, path)
	}
	return p, found, nil
}

// Encode writes cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
