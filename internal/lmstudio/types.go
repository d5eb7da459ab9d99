package lmstudio

// Model is one entry from the LM Studio /api/v1/models payload.
// The schema is owned by LM Studio; unknown fields are ignored.
type Model struct {
	Key              string        `json:"key"`
	Type             string        `json:"type"`
	MaxContextLength int           `json:"max_context_length"`
	Capabilities     *Capabilities `json:"capabilities"`
}

// Capabilities carries the capability flags LM Studio reports per model.
type Capabilities struct {
	TrainedForToolUse bool `json:"trained_for_tool_use"`
	Vision            bool `json:"vision"`
}

// IsLLM reports whether the model is a chat-capable LLM, as opposed to
// an embedding or other model type.
func (m *Model) IsLLM() bool {
	return m.Type == "llm"
}

// SupportsToolCalling reports whether LM Studio marks the model as
// trained for tool use.
func (m *Model) SupportsToolCalling() bool {
	return m.Capabilities != nil && m.Capabilities.TrainedForToolUse
}

// SupportsVision reports whether the model accepts image input.
func (m *Model) SupportsVision() bool {
	return m.Capabilities != nil && m.Capabilities.Vision
}
