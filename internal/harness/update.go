package harness

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/roelfdiedericks/lmconf/internal/fileedit"
)

// copilotSettingsKey is the single tool-owned key inside VS Code
// settings.json; it is replaced wholesale, everything else in the file
// is preserved.
const copilotSettingsKey = "github.copilot.chat.customOAIModels"

// openCodeSchemaURL is set on opencode.json only when absent.
const openCodeSchemaURL = "https://opencode.ai/config.json"

// readExisting returns the raw content of path, or exists=false when
// the file is not there. Read failures other than absence are errors.
func readExisting(path string) (data []byte, exists bool, err error) {
	data, err = os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, true, nil
}

func cloneMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// subMap returns m[key] as an object, or an empty one when the key is
// missing or holds something else.
func subMap(m map[string]interface{}, key string) map[string]interface{} {
	if sub, ok := m[key].(map[string]interface{}); ok {
		return sub
	}
	return map[string]interface{}{}
}

// UpdateSettingsFile merges the generated Copilot model map into a VS
// Code settings.json, then runs the preview/confirm/backup/write
// pipeline. Pre-existing keys keep their order; only the owned key is
// replaced. An existing file that does not parse as a JSONC object is
// an error for this target.
func UpdateSettingsFile(path string, config CopilotConfig, confirm fileedit.Confirmer) (fileedit.Result, error) {
	old, exists, err := readExisting(path)
	if err != nil {
		return fileedit.ResultCancelled, err
	}

	settings := fileedit.NewObject()
	if exists {
		settings, err = fileedit.ParseJSONC(old)
		if err != nil {
			return fileedit.ResultCancelled, fmt.Errorf("parsing existing settings %s: %w", path, err)
		}
	}

	settings.Set(copilotSettingsKey, config)

	newContent, err := fileedit.MarshalJSONIndent(settings, fileedit.DetectIndent(string(old)))
	if err != nil {
		return fileedit.ResultCancelled, fmt.Errorf("rendering settings: %w", err)
	}

	res, err := fileedit.Apply(fileedit.Request{
		Path:       path,
		OldContent: old,
		NewContent: newContent,
		BackupStem: "settings",
		BackupExt:  "json",
	}, confirm)
	if err != nil {
		return res, err
	}
	if res == fileedit.ResultApplied {
		fmt.Printf("Successfully updated %s with %d models\n", path, len(config))
	}
	return res, nil
}

// UpdateOpenCodeFile merges the generated provider into opencode.json
// under provider.<id>, preserving unknown provider and option keys and
// the order of everything it does not own.
func UpdateOpenCodeFile(path, providerID string, provider OpenCodeProvider, confirm fileedit.Confirmer) (fileedit.Result, error) {
	old, exists, err := readExisting(path)
	if err != nil {
		return fileedit.ResultCancelled, err
	}

	config := fileedit.NewObject()
	if exists {
		config, err = fileedit.ParseJSONC(old)
		if err != nil {
			return fileedit.ResultCancelled, fmt.Errorf("parsing existing opencode config %s: %w", path, err)
		}
	}

	config.SetDefault("$schema", openCodeSchemaURL)

	mine := config.Obj("provider").Obj(providerID)
	mine.Set("npm", provider.NPM)
	mine.Set("name", provider.Name)
	mine.Obj("options").Set("baseURL", provider.Options.BaseURL)
	mine.Set("models", provider.Models)

	newContent, err := fileedit.MarshalJSONIndent(config, fileedit.DetectIndent(string(old)))
	if err != nil {
		return fileedit.ResultCancelled, fmt.Errorf("rendering opencode config: %w", err)
	}

	res, err := fileedit.Apply(fileedit.Request{
		Path:       path,
		OldContent: old,
		NewContent: newContent,
		BackupStem: "opencode",
		BackupExt:  "json",
	}, confirm)
	if err != nil {
		return res, err
	}
	if res == fileedit.ResultApplied {
		fmt.Printf("Successfully updated %s with %d models\n", path, len(provider.Models))
	}
	return res, nil
}

// UpdatePiFile merges the generated provider into Pi's models.json
// under providers.<id>, preserving unknown provider keys. The model
// list itself is tool-owned and replaced.
func UpdatePiFile(path, providerID string, provider PiProvider, confirm fileedit.Confirmer) (fileedit.Result, error) {
	old, exists, err := readExisting(path)
	if err != nil {
		return fileedit.ResultCancelled, err
	}

	config := fileedit.NewObject()
	if exists {
		config, err = fileedit.ParseJSONC(old)
		if err != nil {
			return fileedit.ResultCancelled, fmt.Errorf("parsing existing Pi config %s: %w", path, err)
		}
	}

	mine := config.Obj("providers").Obj(providerID)
	mine.Set("baseUrl", provider.BaseURL)
	mine.Set("api", provider.API)
	mine.Set("apiKey", provider.APIKey)
	mine.Set("models", provider.Models)

	newContent, err := fileedit.MarshalJSONIndent(config, fileedit.DetectIndent(string(old)))
	if err != nil {
		return fileedit.ResultCancelled, fmt.Errorf("rendering Pi config: %w", err)
	}

	res, err := fileedit.Apply(fileedit.Request{
		Path:       path,
		OldContent: old,
		NewContent: newContent,
		BackupStem: "models",
		BackupExt:  "json",
	}, confirm)
	if err != nil {
		return res, err
	}
	if res == fileedit.ResultApplied {
		fmt.Printf("Successfully updated %s with %d models\n", path, len(provider.Models))
	}
	return res, nil
}

// UpdateCodexFile merges the generated provider and profile tables into
// Codex's config.toml. Unrelated tables and the top-level
// model_provider selection are preserved in their original order; stale
// lmstudio-* profiles pointing at the generated provider are pruned.
func UpdateCodexFile(path string, cfg CodexConfig, confirm fileedit.Confirmer) (fileedit.Result, error) {
	old, exists, err := readExisting(path)
	if err != nil {
		return fileedit.ResultCancelled, err
	}

	parsed := map[string]interface{}{}
	var md toml.MetaData
	if exists {
		md, err = toml.Decode(string(old), &parsed)
		if err != nil {
			return fileedit.ResultCancelled, fmt.Errorf("parsing existing Codex config %s: %w", path, err)
		}
	}

	if len(cfg.ModelProviders) == 0 {
		return fileedit.ResultCancelled, fmt.Errorf("invalid generated Codex config: missing model_providers")
	}

	merged := cloneMap(parsed)

	providers := subMap(merged, "model_providers")
	for providerID, update := range cfg.ModelProviders {
		mergedProvider := cloneMap(subMap(providers, providerID))
		mergedProvider["name"] = update.Name
		mergedProvider["base_url"] = update.BaseURL
		mergedProvider["wire_api"] = update.WireAPI
		providers[providerID] = mergedProvider
	}
	merged["model_providers"] = providers

	profiles := subMap(merged, "profiles")

	// Prune stale generated profiles when filters narrow the model set,
	// mirroring the other targets where generated model lists are
	// replaced wholesale.
	for name, value := range profiles {
		profile, ok := value.(map[string]interface{})
		if !ok {
			continue
		}
		providerRef, _ := profile["model_provider"].(string)
		if _, generated := cfg.ModelProviders[providerRef]; !generated {
			continue
		}
		if !strings.HasPrefix(name, codexProfilePrefix+"-") {
			continue
		}
		if _, keep := cfg.Profiles[name]; !keep {
			delete(profiles, name)
		}
	}

	for name, update := range cfg.Profiles {
		mergedProfile := cloneMap(subMap(profiles, name))
		mergedProfile["model"] = update.Model
		mergedProfile["model_provider"] = update.ModelProvider
		profiles[name] = mergedProfile
	}
	merged["profiles"] = profiles

	newContent, err := fileedit.MarshalTOMLOrdered(merged, md)
	if err != nil {
		return fileedit.ResultCancelled, fmt.Errorf("rendering Codex config: %w", err)
	}

	res, err := fileedit.Apply(fileedit.Request{
		Path:       path,
		OldContent: old,
		NewContent: newContent,
		BackupStem: "config",
		BackupExt:  "toml",
	}, confirm)
	if err != nil {
		return res, err
	}
	if res == fileedit.ResultApplied {
		ids := make([]string, 0, len(cfg.ModelProviders))
		for id := range cfg.ModelProviders {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		fmt.Printf("Successfully updated %s with provider(s) '%s' and %d profiles\n",
			path, strings.Join(ids, ", "), len(cfg.Profiles))
	}
	return res, nil
}
