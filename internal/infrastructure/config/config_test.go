package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeWorldName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple lowercase",
			input:    "myworld",
			expected: "myworld",
		},
		{
			name:     "uppercase converted",
			input:    "MyWorld",
			expected: "myworld",
		},
		{
			name:     "spaces to underscores",
			input:    "my world",
			expected: "my_world",
		},
		{
			name:     "hyphens to underscores",
			input:    "my-world",
			expected: "my_world",
		},
		{
			name:     "special characters removed",
			input:    "my@world!",
			expected: "myworld",
		},
		{
			name:     "consecutive underscores collapsed",
			input:    "my--world",
			expected: "my_world",
		},
		{
			name:     "leading trailing underscores trimmed",
			input:    "-my-world-",
			expected: "my_world",
		},
		{
			name:     "empty string returns default",
			input:    "",
			expected: "default",
		},
		{
			name:     "only special chars returns default",
			input:    "!!!",
			expected: "default",
		},
		{
			name:     "numbers preserved",
			input:    "world123",
			expected: "world123",
		},
		{
			name:     "complex mixed input",
			input:    "Iron-Throne (Book 1)",
			expected: "iron_throne_book_1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SanitizeWorldName(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestGenerateCollectionName(t *testing.T) {
	tests := []struct {
		name      string
		worldName string
		expected  string
	}{
		{
			name:      "simple world",
			worldName: "myworld",
			expected:  "kin_myworld",
		},
		{
			name:      "world with spaces",
			worldName: "my world",
			expected:  "kin_my_world",
		},
		{
			name:      "world with special chars",
			worldName: "Iron-Throne!",
			expected:  "kin_iron_throne",
		},
		{
			name:      "empty world uses default",
			worldName: "",
			expected:  "kin_default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GenerateCollectionName(tt.worldName)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "openai", cfg.Embedder.Provider)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedder.Model)
	assert.Equal(t, "localhost", cfg.Qdrant.Host)
	assert.Equal(t, 6334, cfg.Qdrant.Port)
	assert.Equal(t, 12, cfg.Genealogy.MinParentAge)
	assert.Equal(t, 200, cfg.Genealogy.MaxLifespan)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative min parent age", func(c *Config) { c.Genealogy.MinParentAge = -1 }},
		{"max parent age below min", func(c *Config) { c.Genealogy.MaxParentAge = 5 }},
		{"zero max children", func(c *Config) { c.Genealogy.MaxChildren = 0 }},
		{"zero max lifespan", func(c *Config) { c.Genealogy.MaxLifespan = 0 }},
		{"zero spouse age gap", func(c *Config) { c.Genealogy.MaxSpouseAgeGap = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadAppliesDefaultsAndOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, DefaultConfigDir), 0755))
	content := "genealogy:\n  min_parent_age: 12\n  max_parent_age: 90\n  max_children: 20\n  min_marriage_age: 14\n  max_spouse_age_gap: 50\n  max_lifespan: 500\n"
	require.NoError(t, os.WriteFile(ConfigFilePath(dir), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Genealogy.MaxLifespan, "file value wins")
	assert.Equal(t, 90, cfg.Genealogy.MaxParentAge)
	assert.Equal(t, "openai", cfg.Embedder.Provider, "defaults fill the rest")
}

func TestLoadMissingConfig(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestWriteDefaultThenLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteDefault(dir))
	assert.True(t, Exists(dir))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Genealogy.MinParentAge)

	assert.Error(t, WriteDefault(dir), "refuses to overwrite")
}

func TestConfigDir(t *testing.T) {
	result := ConfigDir("/home/user/project")
	assert.Equal(t, "/home/user/project/.kin", result)
}

func TestConfigFilePath(t *testing.T) {
	result := ConfigFilePath("/home/user/project")
	assert.Equal(t, "/home/user/project/.kin/config.yaml", result)
}

func TestWorldsRoundTrip(t *testing.T) {
	dir := t.TempDir()

	worlds, err := LoadWorlds(dir)
	require.NoError(t, err)
	assert.Empty(t, worlds.Worlds)

	worlds.Add("westeros", WorldEntry{Collection: "kin_westeros", Description: "The Seven Kingdoms"})
	require.NoError(t, worlds.Save(dir))

	loaded, err := LoadWorlds(dir)
	require.NoError(t, err)
	entry, err := loaded.Get("westeros")
	require.NoError(t, err)
	assert.Equal(t, "kin_westeros", entry.Collection)
	assert.True(t, loaded.Exists("westeros"))

	_, err = loaded.Get("essos")
	assert.Error(t, err)
}
