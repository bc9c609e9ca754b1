package paths

import (
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/agentcfg/internal/document"
)

// AppName is the directory name used under the XDG base directories.
const AppName = "agentcfg"

// ErrNoPathForTool indicates a tool has no output path, which only
// happens for the "all" wildcard.
var ErrNoPathForTool = errors.New("no output path for tool")

// ConfigPath returns the default location of the unified configuration
// document: $XDG_CONFIG_HOME/agentcfg/agents.toml.
func ConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "agents.toml")
}

// AppConfigPath returns the location of the CLI's own settings file.
func AppConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// StatePath returns the location of the generated-file state document:
// $XDG_STATE_HOME/agentcfg/state.json.
func StatePath() string {
	return filepath.Join(xdg.StateHome, AppName, "state.json")
}

// ToolConfigPath returns the destination for a tool's generated
// configuration file. Each tool has a fixed, platform-conventional
// location under the XDG config home.
func ToolConfigPath(tool document.ToolName) (string, error) {
	switch tool {
	case document.ToolCursor:
		return filepath.Join(xdg.ConfigHome, "Cursor", "User", "globalStorage",
			"saoudrizwan.claude-dev", "settings", "mcp.json"), nil
	case document.ToolOpencode:
		return filepath.Join(xdg.ConfigHome, "opencode", "mcp.json"), nil
	case document.ToolClaudeCode:
		return filepath.Join(xdg.ConfigHome, "claude", "mcp.json"), nil
	case document.ToolCodex:
		return filepath.Join(xdg.ConfigHome, "codex", "mcp_config.toml"), nil
	default:
		return "", errors.Wrapf(ErrNoPathForTool, "%s", tool)
	}
}

// BackupPath returns the sibling backup location for a destination file.
// Each new backup overwrites the previous one for that path.
func BackupPath(path string) string {
	return path + ".backup"
}
