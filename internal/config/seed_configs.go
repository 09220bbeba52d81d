package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"freightdesk/services/support-api/internal/infrastructure/logger"
)

const DefaultAgentSeedFile = "config/agents.yml"

// AgentSeedEntry describes a support agent account that should exist on startup.
type AgentSeedEntry struct {
	ExternalID string
	Name       string
	Email      string
}

// AgentSeedConfig maintains all configured agent seed sets.
type AgentSeedConfig struct {
	sets map[string][]AgentSeedEntry
}

// AgentsForSet returns a copy of the agents defined for the requested set.
func (c *AgentSeedConfig) AgentsForSet(name string) []AgentSeedEntry {
	if c == nil {
		return nil
	}
	set := strings.TrimSpace(name)
	if set == "" {
		set = "default"
	}
	list := c.sets[set]
	if len(list) == 0 {
		return nil
	}
	result := make([]AgentSeedEntry, len(list))
	copy(result, list)
	return result
}

// LoadAgentSeedConfig parses the yaml file at the provided path.
func LoadAgentSeedConfig(path string) (*AgentSeedConfig, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("agent seed path is empty")
	}

	log := logger.GetLogger()
	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("read agent seed config %q: %w", cleanPath, err)
	}
	log.Info().Str("path", cleanPath).Msg("loading agent seed file")

	var doc agentSeedDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse agent seed config %q: %w", cleanPath, err)
	}

	if len(doc.Agents) == 0 {
		return nil, fmt.Errorf("agent seed config %q has no agents defined", cleanPath)
	}

	result := &AgentSeedConfig{
		sets: make(map[string][]AgentSeedEntry),
	}

	for rawSet, entries := range doc.Agents {
		setName := strings.TrimSpace(rawSet)
		if setName == "" || len(entries) == 0 {
			continue
		}
		for idx, entry := range entries {
			entryLogger := log.With().Str("set", setName).Int("index", idx).Str("email", entry.Email).Logger()
			enabled, err := parseEnabled(entry.EnableRaw)
			if err != nil {
				return nil, fmt.Errorf("agents.%s[%d]: %w", setName, idx, err)
			}
			if !enabled {
				entryLogger.Info().Msg("skipping agent (enable=false)")
				continue
			}
			normalized, err := normalizeAgentEntry(entry)
			if err != nil {
				return nil, fmt.Errorf("agents.%s[%d]: %w", setName, idx, err)
			}
			entryLogger.Info().Str("name", normalized.Name).Msg("including agent for bootstrap")
			result.sets[setName] = append(result.sets[setName], normalized)
		}
	}

	if len(result.sets) == 0 {
		return nil, fmt.Errorf("agent seed config %q has no valid agent entries", cleanPath)
	}

	return result, nil
}

type agentSeedDocument struct {
	Agents map[string][]agentSeedEntry `yaml:"agents"`
}

type agentSeedEntry struct {
	EnableRaw  string `yaml:"enable"`
	ExternalID string `yaml:"external_id"`
	Name       string `yaml:"name"`
	Email      string `yaml:"email"`
}

func normalizeAgentEntry(entry agentSeedEntry) (AgentSeedEntry, error) {
	email := strings.TrimSpace(os.ExpandEnv(entry.Email))
	if email == "" {
		return AgentSeedEntry{}, errors.New("agent email is required")
	}

	externalID := strings.TrimSpace(os.ExpandEnv(entry.ExternalID))
	if externalID == "" {
		return AgentSeedEntry{}, errors.New("agent external_id is required")
	}

	name := strings.TrimSpace(os.ExpandEnv(entry.Name))
	if name == "" {
		name = email
	}

	return AgentSeedEntry{
		ExternalID: externalID,
		Name:       name,
		Email:      email,
	}, nil
}

func parseEnabled(raw string) (bool, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return true, nil
	}

	resolved := expandWithDefault(value)
	resolved = strings.TrimSpace(resolved)
	if resolved == "" {
		return true, nil
	}

	parsed, err := strconv.ParseBool(resolved)
	if err != nil {
		return false, fmt.Errorf("enable: %w", err)
	}
	return parsed, nil
}

// expandWithDefault expands ${VAR} and ${VAR:-default} syntax using os envs.
func expandWithDefault(raw string) string {
	if !strings.Contains(raw, "${") {
		return os.ExpandEnv(raw)
	}
	start := strings.Index(raw, "${")
	end := strings.Index(raw[start:], "}")
	if start == -1 || end == -1 {
		return os.ExpandEnv(raw)
	}
	end = start + end
	expr := raw[start+2 : end]
	defaultVal := ""
	varName := expr
	if strings.Contains(expr, ":-") {
		parts := strings.SplitN(expr, ":-", 2)
		varName = parts[0]
		defaultVal = parts[1]
	}
	val := os.Getenv(varName)
	if val == "" {
		val = defaultVal
	}
	resolved := raw[:start] + val + raw[end+1:]
	return os.ExpandEnv(resolved)
}
