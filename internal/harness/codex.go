package harness

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/roelfdiedericks/lmconf/internal/lmstudio"
)

// CodexProviderID is the tool-owned model_providers key in Codex's
// config.toml.
const CodexProviderID = "lmstudio_local"

// codexProfilePrefix prefixes every generated profile name. Profiles
// under this prefix that point at the generated provider are a
// tool-owned namespace.
const codexProfilePrefix = "lmstudio"

// CodexConfig is the generated fragment for Codex's config.toml.
type CodexConfig struct {
	ModelProviders map[string]CodexProvider `toml:"model_providers"`
	Profiles       map[string]CodexProfile  `toml:"profiles"`
}

type CodexProvider struct {
	Name    string `toml:"name"`
	BaseURL string `toml:"base_url"`
	WireAPI string `toml:"wire_api"`
}

type CodexProfile struct {
	Model         string `toml:"model"`
	ModelProvider string `toml:"model_provider"`
}

var profileSlugRe = regexp.MustCompile(`[^a-z0-9]+`)

// ProfileNameForModel generates a stable, CLI-friendly profile name for
// a model id, disambiguating collisions with a numeric suffix. The
// chosen name is recorded in usedNames.
func ProfileNameForModel(modelID string, usedNames map[string]bool) string {
	slug := strings.Trim(profileSlugRe.ReplaceAllString(strings.ToLower(modelID), "-"), "-")
	if slug == "" {
		slug = "model"
	}
	base := codexProfilePrefix + "-" + slug

	name := base
	for index := 2; usedNames[name]; index++ {
		name = fmt.Sprintf("%s-%d", base, index)
	}

	usedNames[name] = true
	return name
}

// GenerateCodexProfiles produces one profile per model id, keyed by
// sanitized profile name.
func GenerateCodexProfiles(modelIDs []string, providerID string) map[string]CodexProfile {
	unique := make(map[string]bool)
	var sorted []string
	for _, id := range modelIDs {
		if !unique[id] {
			unique[id] = true
			sorted = append(sorted, id)
		}
	}
	sort.Strings(sorted)

	usedNames := make(map[string]bool)
	profiles := make(map[string]CodexProfile)
	for _, id := range sorted {
		profiles[ProfileNameForModel(id, usedNames)] = CodexProfile{
			Model:         id,
			ModelProvider: providerID,
		}
	}
	return profiles
}

// GenerateCodexConfig renders the Codex provider plus one profile per
// filtered LLM model. The top-level model_provider selection is never
// part of the fragment; models are switched with codex --profile.
func GenerateCodexConfig(models []lmstudio.Model, baseURL string) (CodexConfig, error) {
	var ids []string
	for i := range models {
		if models[i].IsLLM() {
			ids = append(ids, models[i].Key)
		}
	}
	if len(ids) == 0 {
		return CodexConfig{}, ErrNoModels
	}

	return CodexConfig{
		ModelProviders: map[string]CodexProvider{
			CodexProviderID: {
				Name:    "LM Studio (local)",
				BaseURL: lmstudio.NormalizeBaseURL(baseURL),
				WireAPI: "responses",
			},
		},
		Profiles: GenerateCodexProfiles(ids, CodexProviderID),
	}, nil
}
