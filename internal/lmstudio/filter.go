package lmstudio

// Constraint is a three-way capability filter.
type Constraint int

const (
	Any Constraint = iota
	Required
	Excluded
)

func (c Constraint) String() string {
	switch c {
	case Required:
		return "required"
	case Excluded:
		return "exclude"
	default:
		return "any"
	}
}

// Criteria holds the active model filters. Zero-value fields are no-ops.
type Criteria struct {
	// MinContext, when set, keeps only models whose reported
	// max_context_length is at least this many tokens.
	MinContext *int
	Tools      Constraint
	Vision     Constraint
}

// Matches reports whether a single model passes every set predicate.
func (c Criteria) Matches(m *Model) bool {
	if c.MinContext != nil {
		// Models that don't report a context length can't satisfy a
		// minimum-context requirement.
		if m.MaxContextLength <= 0 || m.MaxContextLength < *c.MinContext {
			return false
		}
	}

	// Non-LLM models (embeddings etc.) are treated as having no
	// capabilities at all.
	hasTools := m.IsLLM() && m.SupportsToolCalling()
	if c.Tools == Required && !hasTools {
		return false
	}
	if c.Tools == Excluded && hasTools {
		return false
	}

	hasVision := m.IsLLM() && m.SupportsVision()
	if c.Vision == Required && !hasVision {
		return false
	}
	if c.Vision == Excluded && hasVision {
		return false
	}

	return true
}

// Filter returns the models satisfying every set predicate, preserving
// input order. An empty result is valid.
func Filter(models []Model, criteria Criteria) []Model {
	var out []Model
	for i := range models {
		if criteria.Matches(&models[i]) {
			out = append(out, models[i])
		}
	}
	return out
}
