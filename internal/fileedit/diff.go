package fileedit

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pmezard/go-difflib/difflib"
)

var (
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// splitLines splits content into lines keeping newlines, without the
// phantom empty line difflib would produce for empty content.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// ChangedLines computes a line diff and returns only the changed lines,
// prefixed "- " / "+ ". Unchanged context never appears.
func ChangedLines(oldContent, newContent string) []string {
	oldLines := splitLines(oldContent)
	newLines := splitLines(newContent)

	matcher := difflib.NewMatcher(oldLines, newLines)

	var changes []string
	for _, op := range matcher.GetOpCodes() {
		if op.Tag == 'e' {
			continue
		}
		for _, line := range oldLines[op.I1:op.I2] {
			changes = append(changes, "- "+line)
		}
		for _, line := range newLines[op.J1:op.J2] {
			changes = append(changes, "+ "+line)
		}
	}
	return changes
}

// RenderDiff writes a colored preview of the changed lines.
func RenderDiff(w io.Writer, path string, changes []string) {
	fmt.Fprintf(w, "\nDiff preview for: %s\n\n", path)
	for _, line := range changes {
		text := strings.TrimSuffix(line, "\n")
		if strings.HasPrefix(line, "+") {
			fmt.Fprintln(w, addedStyle.Render(text))
		} else {
			fmt.Fprintln(w, removedStyle.Render(text))
		}
	}
}
