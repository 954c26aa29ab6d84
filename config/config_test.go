package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "wikidata", cfg.Graph.Name)
	assert.Equal(t, "voting", cfg.Linking.Policy)
	assert.Len(t, cfg.Linking.Priority, 4)
	assert.True(t, cfg.Linking.Tiebreak, "expected tiebreak on by default")
	assert.Equal(t, "force", cfg.SlotFill.Method)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "dbpedia graph",
			modify:  func(c *Config) { c.Graph.Name = "dbpedia" },
			wantErr: false,
		},
		{
			name:    "unknown graph",
			modify:  func(c *Config) { c.Graph.Name = "freebase" },
			wantErr: true,
		},
		{
			name:    "unknown linking policy",
			modify:  func(c *Config) { c.Linking.Policy = "random" },
			wantErr: true,
		},
		{
			name:    "negative threshold",
			modify:  func(c *Config) { c.Linking.Threshold = -1 },
			wantErr: true,
		},
		{
			name:    "unknown slotfill method",
			modify:  func(c *Config) { c.SlotFill.Method = "greedy" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temp file with config
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
graph:
  name: "dbpedia"
linking:
  policy: "priority"
  threshold: 3
  filter_stopwords: true
  priority:
    - "Aida"
    - "TAGME"
slotfill:
  method: "standard"
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := LoadFromFile(configPath)
	require.NoError(t, err)

	assert.Equal(t, "dbpedia", cfg.Graph.Name)
	assert.Equal(t, "priority", cfg.Linking.Policy)
	assert.Equal(t, 3, cfg.Linking.Threshold)
	assert.True(t, cfg.Linking.FilterStopwords)
	assert.Equal(t, []string{"Aida", "TAGME"}, cfg.Linking.Priority)
	assert.Equal(t, "standard", cfg.SlotFill.Method)
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	override := &Config{
		Graph: GraphConfig{
			Name: "dbpedia",
		},
		Linking: LinkingConfig{
			Threshold: 5,
		},
	}

	base.Merge(override)

	assert.Equal(t, "dbpedia", base.Graph.Name)
	assert.Equal(t, 5, base.Linking.Threshold)
	// Policy should remain from base since override didn't set it
	assert.Equal(t, "voting", base.Linking.Policy)
}

func TestConfigSaveToFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "config.yaml")

	cfg := DefaultConfig()
	cfg.SlotFill.Method = "basic"

	require.NoError(t, cfg.SaveToFile(configPath))

	// Load and verify
	loaded, err := LoadFromFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, "basic", loaded.SlotFill.Method)
}

func TestEnsureUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	loader := NewLoader(nil)
	require.NoError(t, loader.EnsureUserConfig())

	path := filepath.Join(home, UserConfigDir, UserConfigFile)
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "wikidata", cfg.Graph.Name)

	// Second call leaves an existing file alone
	require.NoError(t, os.WriteFile(path, []byte("graph:\n  name: \"dbpedia\"\n"), 0644))
	require.NoError(t, loader.EnsureUserConfig())
	cfg, err = LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "dbpedia", cfg.Graph.Name)
}
