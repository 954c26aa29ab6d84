// Package config provides configuration loading and management for kgqa.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the complete kgqa configuration
type Config struct {
	Graph    GraphConfig    `yaml:"graph"`
	Linking  LinkingConfig  `yaml:"linking"`
	SlotFill SlotFillConfig `yaml:"slotfill"`
}

// GraphConfig selects the knowledge graph the toolkit targets
type GraphConfig struct {
	// Name is the target knowledge graph ("wikidata" or "dbpedia")
	Name string `yaml:"name"`
}

// LinkingConfig configures the entity linking ensemble
type LinkingConfig struct {
	// Policy selects the merge policy ("keepall", "priority" or "voting")
	Policy string `yaml:"policy"`
	// Priority ranks the linking systems, best first
	Priority []string `yaml:"priority"`
	// Threshold caps the number of merged mentions (0 = unbounded)
	Threshold int `yaml:"threshold"`
	// FilterStopwords drops mentions whose label is a stop word
	FilterStopwords bool `yaml:"filter_stopwords"`
	// Tiebreak stops exactly at the expected mention count
	Tiebreak bool `yaml:"tiebreak"`
	// CacheDir is the directory holding offline annotation bundles
	CacheDir string `yaml:"cache_dir"`
	// CachePattern matches bundle files under CacheDir
	CachePattern string `yaml:"cache_pattern"`
}

// SlotFillConfig configures template slot filling
type SlotFillConfig struct {
	// Method selects the fill policy ("basic", "standard" or "force")
	Method string `yaml:"method"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Graph: GraphConfig{
			Name: "wikidata",
		},
		Linking: LinkingConfig{
			Policy:       "voting",
			Priority:     []string{"Aida", "Open Tapioca", "TAGME", "DBpedia Spotlight"},
			Threshold:    0, // Unbounded
			Tiebreak:     true,
			CachePattern: "**/*.json",
		},
		SlotFill: SlotFillConfig{
			Method: "force",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	switch c.Graph.Name {
	case "wikidata", "dbpedia":
	default:
		return fmt.Errorf("graph.name must be wikidata or dbpedia, got %q", c.Graph.Name)
	}
	switch c.Linking.Policy {
	case "keepall", "priority", "voting":
	default:
		return fmt.Errorf("linking.policy must be keepall, priority or voting, got %q", c.Linking.Policy)
	}
	if c.Linking.Threshold < 0 {
		return fmt.Errorf("linking.threshold must not be negative")
	}
	switch c.SlotFill.Method {
	case "basic", "standard", "force":
	default:
		return fmt.Errorf("slotfill.method must be basic, standard or force, got %q", c.SlotFill.Method)
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Graph
	if other.Graph.Name != "" {
		c.Graph.Name = other.Graph.Name
	}

	// Linking
	if other.Linking.Policy != "" {
		c.Linking.Policy = other.Linking.Policy
	}
	if len(other.Linking.Priority) > 0 {
		c.Linking.Priority = other.Linking.Priority
	}
	if other.Linking.Threshold != 0 {
		c.Linking.Threshold = other.Linking.Threshold
	}
	if other.Linking.FilterStopwords {
		c.Linking.FilterStopwords = true
	}
	// Tiebreak defaults on, so LoadFromFile always seeds it and the
	// value copies through as-is
	c.Linking.Tiebreak = other.Linking.Tiebreak
	if other.Linking.CacheDir != "" {
		c.Linking.CacheDir = other.Linking.CacheDir
	}
	if other.Linking.CachePattern != "" {
		c.Linking.CachePattern = other.Linking.CachePattern
	}

	// SlotFill
	if other.SlotFill.Method != "" {
		c.SlotFill.Method = other.SlotFill.Method
	}
}
