package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/stylebind/pkg/styling"
)

// FileName is the optional project configuration file.
const FileName = "stylebind.yaml"

// Config represents the optional stylebind.yaml configuration.
type Config struct {
	Project ProjectConfig `yaml:"project"`
	Styling StylingConfig `yaml:"styling"`
	Log     LogConfig     `yaml:"log"`
}

// ProjectConfig contains project metadata.
type ProjectConfig struct {
	Name string `yaml:"name,omitempty"`
}

// StylingConfig contains defaults for scenarios that do not set them.
type StylingConfig struct {
	HostLayers int  `yaml:"host_layers,omitempty"`
	ClassBased bool `yaml:"class_based,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Verbose bool   `yaml:"verbose,omitempty"`
	Format  string `yaml:"format,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root        string
	ModulePath  string
	ProjectName string
	HostLayers  int
	ClassBased  bool
	Verbose     bool
	LogFormat   string
}

// LoadOptional reads stylebind.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads stylebind.yaml (if present) and resolves defaults.
// A directory without go.mod resolves with an empty module path.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(cfg.Project.Name)
	if name == "" {
		name = defaultProjectName(modulePath, dir)
	}

	format := strings.ToLower(strings.TrimSpace(cfg.Log.Format))
	if format == "" {
		format = "console"
	}

	if err := validate(cfg, format); err != nil {
		return nil, err
	}

	return &Resolved{
		Root:        dir,
		ModulePath:  modulePath,
		ProjectName: name,
		HostLayers:  cfg.Styling.HostLayers,
		ClassBased:  cfg.Styling.ClassBased,
		Verbose:     cfg.Log.Verbose,
		LogFormat:   format,
	}, nil
}

// FindProjectRoot walks up from the current directory to find go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultProjectName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modulePath != "" {
		prefix, _, ok := module.SplitPathVersion(modulePath)
		if ok {
			parts := strings.Split(prefix, "/")
			base = parts[len(parts)-1]
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "stylebind"
	}
	return base
}

func validate(cfg *Config, format string) error {
	if n := cfg.Styling.HostLayers; n < 0 || n >= styling.MaskWidth {
		return fmt.Errorf("styling.host_layers must be between 0 and %d (got %d)", styling.MaskWidth-1, n)
	}
	switch format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json (got %q)", format)
	}
	return nil
}
