package harness

import (
	"errors"
	"testing"

	"github.com/roelfdiedericks/lmconf/internal/lmstudio"
)

func testModels() []lmstudio.Model {
	return []lmstudio.Model{
		{Key: "qwen3-8b", Type: "llm", MaxContextLength: 32768,
			Capabilities: &lmstudio.Capabilities{TrainedForToolUse: true}},
		{Key: "gemma-3-vl", Type: "llm", MaxContextLength: 131072,
			Capabilities: &lmstudio.Capabilities{Vision: true}},
		{Key: "nomic-embed", Type: "embedding", MaxContextLength: 2048},
	}
}

func TestGenerateCopilotConfig(t *testing.T) {
	config, err := GenerateCopilotConfig(testModels(), "http://localhost:1234/v1")
	if err != nil {
		t.Fatalf("GenerateCopilotConfig: %v", err)
	}

	if len(config) != 2 {
		t.Fatalf("expected 2 entries (embedding skipped), got %d", len(config))
	}

	entry, ok := config["qwen3-8b"]
	if !ok {
		t.Fatal("missing qwen3-8b entry")
	}
	if !entry.ToolCalling || entry.Vision {
		t.Errorf("wrong capabilities: %+v", entry)
	}
	if entry.MaxInputTokens != 32768 || entry.MaxOutputTokens != 32768 {
		t.Errorf("wrong token limits: %+v", entry)
	}
	if entry.URL != "http://localhost:1234/v1" {
		t.Errorf("wrong url: %s", entry.URL)
	}
	if !entry.Thinking || entry.RequiresAPIKey {
		t.Errorf("wrong defaults: %+v", entry)
	}
}

func TestGenerateCopilotConfigDefaultsContext(t *testing.T) {
	models := []lmstudio.Model{{Key: "m", Type: "llm"}}
	config, err := GenerateCopilotConfig(models, "http://localhost:1234/v1")
	if err != nil {
		t.Fatalf("GenerateCopilotConfig: %v", err)
	}
	if config["m"].MaxInputTokens != defaultContextLength {
		t.Errorf("expected default context %d, got %d", defaultContextLength, config["m"].MaxInputTokens)
	}
}

func TestGenerateOpenCodeProvider(t *testing.T) {
	provider, err := GenerateOpenCodeProvider(testModels(), "http://localhost:1234")
	if err != nil {
		t.Fatalf("GenerateOpenCodeProvider: %v", err)
	}

	if provider.NPM != "@ai-sdk/openai-compatible" {
		t.Errorf("wrong npm package: %s", provider.NPM)
	}
	if provider.Options.BaseURL != "http://localhost:1234/v1" {
		t.Errorf("base URL not normalized: %s", provider.Options.BaseURL)
	}
	if len(provider.Models) != 2 {
		t.Fatalf("expected 2 models, got %d", len(provider.Models))
	}

	vl := provider.Models["gemma-3-vl"]
	if len(vl.Modalities.Input) != 2 || vl.Modalities.Input[1] != "image" {
		t.Errorf("vision model should accept image input: %v", vl.Modalities.Input)
	}
	text := provider.Models["qwen3-8b"]
	if len(text.Modalities.Input) != 1 {
		t.Errorf("text model should be text-only: %v", text.Modalities.Input)
	}
	if text.Limit.Context != 32768 || text.Limit.Output != 32768 {
		t.Errorf("wrong limits: %+v", text.Limit)
	}
}

func TestGeneratePiProviderSortedByID(t *testing.T) {
	provider, err := GeneratePiProvider(testModels(), "http://localhost:1234/v1")
	if err != nil {
		t.Fatalf("GeneratePiProvider: %v", err)
	}

	if provider.API != "openai-completions" || provider.APIKey != "lm-studio" {
		t.Errorf("wrong provider settings: %+v", provider)
	}
	if len(provider.Models) != 2 {
		t.Fatalf("expected 2 models, got %d", len(provider.Models))
	}
	if provider.Models[0].ID != "gemma-3-vl" || provider.Models[1].ID != "qwen3-8b" {
		t.Errorf("models not sorted by id: %s, %s", provider.Models[0].ID, provider.Models[1].ID)
	}
	if provider.Models[1].ContextWindow != 32768 || provider.Models[1].MaxTokens != 32768 {
		t.Errorf("wrong context: %+v", provider.Models[1])
	}
}

func TestGeneratorsRejectEmptyLLMSet(t *testing.T) {
	onlyEmbeddings := []lmstudio.Model{{Key: "nomic-embed", Type: "embedding"}}

	if _, err := GenerateCopilotConfig(onlyEmbeddings, "u"); !errors.Is(err, ErrNoModels) {
		t.Errorf("copilot: expected ErrNoModels, got %v", err)
	}
	if _, err := GenerateOpenCodeProvider(onlyEmbeddings, "u"); !errors.Is(err, ErrNoModels) {
		t.Errorf("opencode: expected ErrNoModels, got %v", err)
	}
	if _, err := GeneratePiProvider(onlyEmbeddings, "u"); !errors.Is(err, ErrNoModels) {
		t.Errorf("pi: expected ErrNoModels, got %v", err)
	}
	if _, err := GenerateCodexConfig(onlyEmbeddings, "u"); !errors.Is(err, ErrNoModels) {
		t.Errorf("codex: expected ErrNoModels, got %v", err)
	}
}
