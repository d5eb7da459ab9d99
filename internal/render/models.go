// Package render prints the human-readable model listing shown when no
// write target is selected.
package render

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/roelfdiedericks/lmconf/internal/harness"
	"github.com/roelfdiedericks/lmconf/internal/lmstudio"
)

var (
	boldStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
	typeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	contextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	yesStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	profileStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

type row struct {
	ModelID string
	Type    string
	Context string
	Tools   bool
	Vision  bool
	Profile string
	IsLLM   bool
}

// Models prints the filtered model list with summary counts, one
// section for LLM models and one for everything else.
func Models(w io.Writer, all, filtered []lmstudio.Model, criteria lmstudio.Criteria) {
	var llmIDs []string
	llmCount := 0
	toolsCount := 0
	visionCount := 0

	for i := range filtered {
		m := &filtered[i]
		if !m.IsLLM() {
			continue
		}
		llmCount++
		llmIDs = append(llmIDs, m.Key)
		if m.SupportsToolCalling() {
			toolsCount++
		}
		if m.SupportsVision() {
			visionCount++
		}
	}

	// Map model id -> generated codex profile name so users can see
	// what codex --profile to run.
	profileByModel := make(map[string]string)
	for name, profile := range harness.GenerateCodexProfiles(llmIDs, harness.CodexProviderID) {
		profileByModel[profile.Model] = name
	}

	var rows []row
	for i := range filtered {
		m := &filtered[i]
		r := row{
			ModelID: m.Key,
			Type:    m.Type,
			Context: "-",
			IsLLM:   m.IsLLM(),
			Profile: "-",
		}
		if r.ModelID == "" {
			r.ModelID = "<unknown>"
		}
		if r.Type == "" {
			r.Type = "?"
		}
		if m.MaxContextLength > 0 {
			r.Context = strconv.Itoa(m.MaxContextLength)
		}
		if r.IsLLM {
			r.Tools = m.SupportsToolCalling()
			r.Vision = m.SupportsVision()
			if name, ok := profileByModel[m.Key]; ok {
				r.Profile = name
			}
		}
		rows = append(rows, r)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].IsLLM != rows[j].IsLLM {
			return rows[i].IsLLM
		}
		return rows[i].ModelID < rows[j].ModelID
	})

	if len(rows) == 0 {
		fmt.Fprintln(w, "No models matched the selected filters.")
		return
	}

	minContext := "any"
	if criteria.MinContext != nil {
		minContext = strconv.Itoa(*criteria.MinContext)
	}

	fmt.Fprintln(w, boldStyle.Render("LM Studio Models"))
	fmt.Fprintf(w, "- showing: %s of %s\n", boldStyle.Render(strconv.Itoa(len(rows))), boldStyle.Render(strconv.Itoa(len(all))))
	fmt.Fprintf(w, "- llm: %s\n", boldStyle.Render(strconv.Itoa(llmCount)))
	fmt.Fprintf(w, "- tool-use: %s\n", boldStyle.Render(strconv.Itoa(toolsCount)))
	fmt.Fprintf(w, "- vision: %s\n", boldStyle.Render(strconv.Itoa(visionCount)))
	filters := fmt.Sprintf("min-context=%s, tools=%s, vision=%s", minContext, criteria.Tools, criteria.Vision)
	fmt.Fprintf(w, "- filters: %s\n\n", boldStyle.Render(filters))

	var llmRows, otherRows []row
	for _, r := range rows {
		if r.IsLLM {
			llmRows = append(llmRows, r)
		} else {
			otherRows = append(otherRows, r)
		}
	}

	if len(llmRows) > 0 {
		fmt.Fprintln(w, boldStyle.Render("LLM Models"))
	}
	for _, r := range llmRows {
		fmt.Fprintf(w, "- %s\n", boldStyle.Render(r.ModelID))
		fmt.Fprintf(w, "%s%s%s%s%s%s%s%s\n",
			dimStyle.Render("  type: "), typeStyle.Render(r.Type),
			dimStyle.Render(" | context: "), renderContext(r.Context),
			dimStyle.Render(" | tools: "), renderYesNo(r.Tools),
			dimStyle.Render(" | vision: "), renderYesNo(r.Vision))
		fmt.Fprintf(w, "%s%s\n", dimStyle.Render("  codex-profile: "), profileStyle.Render(r.Profile))
	}

	if len(llmRows) > 0 && len(otherRows) > 0 {
		fmt.Fprintln(w)
	}
	if len(otherRows) > 0 {
		fmt.Fprintln(w, boldStyle.Render("Other Models"))
	}
	for _, r := range otherRows {
		fmt.Fprintf(w, "- %s\n", r.ModelID)
		fmt.Fprintf(w, "%s%s%s%s%s%s%s%s\n",
			dimStyle.Render("  type: "), dimStyle.Render(r.Type),
			dimStyle.Render(" | context: "), dimStyle.Render(r.Context),
			dimStyle.Render(" | tools: "), dimStyle.Render("-"),
			dimStyle.Render(" | vision: "), dimStyle.Render("-"))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s run %s to switch LM Studio models.\n",
		dimStyle.Render("Tip:"), profileStyle.Render("codex --profile <name>"))
}

func renderContext(context string) string {
	if context == "-" {
		return dimStyle.Render(context)
	}
	return contextStyle.Render(context)
}

func renderYesNo(yes bool) string {
	if yes {
		return yesStyle.Render("yes")
	}
	return dimStyle.Render("no")
}
