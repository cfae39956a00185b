package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is a scripted sequence of render passes over one element.
type Scenario struct {
	Name string `yaml:"name"`
	// HostLayers and ClassBased override the project defaults when set.
	HostLayers *int         `yaml:"host_layers,omitempty"`
	ClassBased *bool        `yaml:"class_based,omitempty"`
	Static     []StaticSpec `yaml:"static,omitempty"`
	Passes     []PassSpec   `yaml:"passes"`
}

// StaticSpec is a static value taken from the element's template attributes.
type StaticSpec struct {
	Prop  string `yaml:"prop"`
	Value any    `yaml:"value"`
}

// PassSpec lists the registrations issued during one render pass, in order.
type PassSpec struct {
	Name     string        `yaml:"name,omitempty"`
	Bindings []BindingSpec `yaml:"bindings"`
}

// BindingSpec is one RegisterBinding call.
type BindingSpec struct {
	ID       int    `yaml:"id"`
	Source   int    `yaml:"source"`
	Prop     string `yaml:"prop"`
	Value    any    `yaml:"value"`
	Sanitize bool   `yaml:"sanitize,omitempty"`
	Bypass   bool   `yaml:"bypass,omitempty"`
}

// LoadScenario reads and parses a scenario file. Defaults from cfg fill in
// the element settings the scenario leaves unset.
func LoadScenario(path string, cfg *Resolved) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return ParseScenario(data, cfg)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte, cfg *Resolved) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if cfg != nil {
		if s.HostLayers == nil {
			n := cfg.HostLayers
			s.HostLayers = &n
		}
		if s.ClassBased == nil {
			b := cfg.ClassBased
			s.ClassBased = &b
		}
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Layers returns the number of host layers the scenario element accepts.
func (s *Scenario) Layers() int {
	if s.HostLayers == nil {
		return 0
	}
	return *s.HostLayers
}

// IsClassBased reports whether bindings target class names.
func (s *Scenario) IsClassBased() bool {
	return s.ClassBased != nil && *s.ClassBased
}

// Validate rejects scenarios whose registrations the table would treat as
// programming errors.
func (s *Scenario) Validate() error {
	if len(s.Passes) == 0 {
		return fmt.Errorf("scenario %q has no passes", s.Name)
	}
	layers := s.Layers()
	for i, p := range s.Passes {
		for j, b := range p.Bindings {
			if b.ID <= 0 {
				return fmt.Errorf("pass %d binding %d: id must be positive (got %d)", i+1, j+1, b.ID)
			}
			if b.Source < 0 || b.Source > layers {
				return fmt.Errorf("pass %d binding %d: source %d outside 0..%d", i+1, j+1, b.Source, layers)
			}
		}
	}
	return nil
}
