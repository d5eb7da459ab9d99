// Package harness knows the downstream tool configurations lmconf can
// generate: which targets exist, where their config files live, and how
// each target's fragment is rendered and merged.
package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Target identifies one supported downstream client configuration.
type Target string

const (
	TargetCode         Target = "code"
	TargetCodeInsiders Target = "code-insiders"
	TargetOpenCode     Target = "opencode"
	TargetPi           Target = "pi"
	TargetCodex        Target = "codex"
)

// WriteTargets lists the writable targets in their fixed processing order.
func WriteTargets() []Target {
	return []Target{TargetCode, TargetCodeInsiders, TargetOpenCode, TargetPi, TargetCodex}
}

// ParseTarget validates a --settings value (excluding "all").
func ParseTarget(s string) (Target, error) {
	for _, t := range WriteTargets() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown settings target: %s", s)
}

// Label returns the human-readable file description used in messages.
func (t Target) Label() string {
	switch t {
	case TargetOpenCode:
		return "opencode file"
	case TargetPi:
		return "pi models file"
	case TargetCodex:
		return "codex config file"
	default:
		return "settings file"
	}
}

// DefaultPath resolves the platform-conventional config file path for
// the target.
func (t Target) DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}

	switch t {
	case TargetCode:
		return vscodeSettingsPath(home, "Code"), nil
	case TargetCodeInsiders:
		return vscodeSettingsPath(home, "Code - Insiders"), nil
	case TargetOpenCode:
		return filepath.Join(home, ".opencode", "opencode.json"), nil
	case TargetPi:
		return filepath.Join(home, ".pi", "agent", "models.json"), nil
	case TargetCodex:
		return filepath.Join(home, ".codex", "config.toml"), nil
	}
	return "", fmt.Errorf("unknown settings target: %s", t)
}

// vscodeSettingsPath returns the settings.json location for a VS Code
// flavor ("Code" or "Code - Insiders") on the current platform.
func vscodeSettingsPath(home, flavor string) string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", flavor, "User", "settings.json")
	case "windows":
		appdata := os.Getenv("APPDATA")
		if appdata == "" {
			appdata = filepath.Join(home, "AppData", "Roaming")
		}
		return filepath.Join(appdata, flavor, "User", "settings.json")
	default:
		return filepath.Join(home, ".config", flavor, "User", "settings.json")
	}
}
