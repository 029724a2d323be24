package ai

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// ModelSettings holds generation parameters for one model tier.
type ModelSettings struct {
	ID          string  `yaml:"id" json:"id"`
	DisplayName string  `yaml:"display_name" json:"display_name"`
	MaxTokens   int     `yaml:"max_tokens" json:"max_tokens"`
	Temperature float64 `yaml:"temperature" json:"temperature"`
}

// registryFile is the on-disk shape of config/models.yaml.
type registryFile struct {
	MaxHistoryTurns int                      `yaml:"max_history_turns"`
	Tiers           map[string]ModelSettings `yaml:"tiers"`
}

// Registry maps user tiers (guest, registered, fallback) to model settings.
type Registry struct {
	maxHistoryTurns int
	tiers           map[string]ModelSettings
	mu              sync.RWMutex
}

// NewRegistry creates a registry from the embedded YAML configuration.
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/models.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read models.yaml: %w", err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal models.yaml: %w", err)
	}

	for _, tier := range []string{"guest", "registered", "fallback"} {
		if _, ok := file.Tiers[tier]; !ok {
			return nil, fmt.Errorf("models.yaml missing tier %q", tier)
		}
	}

	return &Registry{
		maxHistoryTurns: file.MaxHistoryTurns,
		tiers:           file.Tiers,
	}, nil
}

// ModelForTier returns the settings for a tier (guest, registered,
// fallback).
func (r *Registry) ModelForTier(tier string) (ModelSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	settings, ok := r.tiers[tier]
	if !ok {
		return ModelSettings{}, fmt.Errorf("unknown model tier: %s", tier)
	}
	return settings, nil
}

// MaxHistoryTurns is the number of past messages sent for context.
func (r *Registry) MaxHistoryTurns() int {
	return r.maxHistoryTurns
}
