package llm

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/DucHai972/Questionnaire/internal/config"
)

// NewProvider builds the named provider from config. The name "simulated"
// needs no provider entry; anything else must be configured.
func NewProvider(cfg *config.Config, name string, seed int64) (Provider, error) {
	if cfg == nil {
		return nil, errors.New("llm: nil config")
	}

	name = normalizeProvider(name)
	if name == "" {
		name = normalizeProvider(cfg.LLM.DefaultProvider)
	}

	switch name {
	case "", "simulated":
		return NewSimulatedProvider(seed), nil
	case "claude":
		pcfg := cfg.LLM.Providers["claude"]
		return NewClaudeProvider(pcfg.APIKey, pcfg.BaseURL, pcfg.Model), nil
	case "openai":
		pcfg, ok := cfg.LLM.Providers["openai"]
		if !ok {
			return nil, providerNotConfigured(cfg, name)
		}
		return NewOpenAIProvider(pcfg.APIKey, pcfg.BaseURL, pcfg.Model), nil
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", name)
	}
}

func providerNotConfigured(cfg *config.Config, name string) error {
	available := make([]string, 0, len(cfg.LLM.Providers)+1)
	for k := range cfg.LLM.Providers {
		available = append(available, k)
	}
	available = append(available, "simulated")
	sort.Strings(available)
	return fmt.Errorf("llm: provider %q not configured (available: %s)", name, strings.Join(available, ", "))
}

func normalizeProvider(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "anthropic":
		return "claude"
	case "mock", "offline":
		return "simulated"
	default:
		return name
	}
}
