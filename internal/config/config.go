// YAML config loader with CUE validation integration
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SourceConfig defines one data harvester.
type SourceConfig struct {
	Name     string  `yaml:"name"`
	Output   string  `yaml:"output"`
	BaseRate float64 `yaml:"base_rate"`
}

// LinkConfig defines one uplink.
type LinkConfig struct {
	Name          string  `yaml:"name"`
	BaseBandwidth float64 `yaml:"base_bandwidth"`
}

// SinkConfig defines one buffered converter.
type SinkConfig struct {
	Name           string  `yaml:"name"`
	BaseRate       float64 `yaml:"base_rate"`
	ConversionRate float64 `yaml:"conversion_rate"`
	BaseCapacity   float64 `yaml:"base_capacity"`
}

// GridConfig is one harvest chain: source into link into sink.
type GridConfig struct {
	Name   string       `yaml:"name"`
	Source SourceConfig `yaml:"source"`
	Link   LinkConfig   `yaml:"link"`
	Sink   SinkConfig   `yaml:"sink"`
}

// FirewallConfig defines the absorption layer in front of the grids.
type FirewallConfig struct {
	Name          string  `yaml:"name"`
	BaseHealth    float64 `yaml:"base_health"`
	BaseReduction float64 `yaml:"base_reduction"`
}

// SimulationConfig is the root configuration for grids, defense, and
// campaign selection.
type SimulationConfig struct {
	Grids               []GridConfig   `yaml:"grids"`
	Firewall            FirewallConfig `yaml:"firewall"`
	CampaignLevel       string         `yaml:"campaign_level"`
	CampaignFile        string         `yaml:"campaign_file,omitempty"`
	CatalogFile         string         `yaml:"catalog_file,omitempty"`
	InsaneMode          bool           `yaml:"insane_mode"`
	AutomationThreshold int            `yaml:"automation_threshold"`
	Seed                int64          `yaml:"seed"`
}

// Load loads YAML config and validates it against a CUE schema.
func Load(configPath, cueSchemaPath string) (*SimulationConfig, error) {
	if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	var cfg SimulationConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Check(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Check enforces the constraints the CUE schema cannot express.
func (c *SimulationConfig) Check() error {
	if len(c.Grids) == 0 {
		return fmt.Errorf("config: no grids defined")
	}
	names := make(map[string]bool, len(c.Grids))
	for _, g := range c.Grids {
		if g.Name == "" {
			return fmt.Errorf("config: grid with empty name")
		}
		if names[g.Name] {
			return fmt.Errorf("config: duplicate grid name %q", g.Name)
		}
		names[g.Name] = true
		if g.Source.BaseRate < 0 || g.Link.BaseBandwidth < 0 ||
			g.Sink.BaseRate < 0 || g.Sink.ConversionRate < 0 || g.Sink.BaseCapacity < 0 {
			return fmt.Errorf("config: grid %q has a negative base stat", g.Name)
		}
	}
	if c.Firewall.BaseHealth <= 0 {
		return fmt.Errorf("config: firewall base health must be positive")
	}
	if c.CampaignLevel == "" {
		return fmt.Errorf("config: campaign_level is required")
	}
	if c.AutomationThreshold < 0 {
		return fmt.Errorf("config: automation_threshold must be >= 0")
	}
	return nil
}
