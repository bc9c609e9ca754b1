package document

// ToolName identifies a supported target tool.
type ToolName string

// Supported tool names. All is a wildcard usable only inside target
// lists, never as a compile target itself.
const (
	ToolClaudeCode ToolName = "claude-code"
	ToolCursor     ToolName = "cursor"
	ToolOpencode   ToolName = "opencode"
	ToolCodex      ToolName = "codex"
	ToolAll        ToolName = "all"
)

// ParseToolName returns the ToolName for s, or false if s is not a
// recognized tool identifier.
func ParseToolName(s string) (ToolName, bool) {
	switch ToolName(s) {
	case ToolClaudeCode, ToolCursor, ToolOpencode, ToolCodex, ToolAll:
		return ToolName(s), true
	}
	return "", false
}

// ConcreteTools returns every compile target, excluding the "all" wildcard.
func ConcreteTools() []ToolName {
	return []ToolName{ToolClaudeCode, ToolCursor, ToolOpencode, ToolCodex}
}

// String implements fmt.Stringer.
func (t ToolName) String() string {
	return string(t)
}

// ServerType discriminates the two server variants. The variant is
// resolved structurally at parse time (command vs url) and carried as an
// explicit tag so transformer switches stay exhaustive.
type ServerType string

const (
	// ServerStdio is a local process spoken to over stdin/stdout.
	ServerStdio ServerType = "stdio"

	// ServerHTTP is a remote server reached over HTTP(S).
	ServerHTTP ServerType = "http"
)

// Server is one MCP server declaration from the unified document.
//
// Stdio servers use Command/Args/Env plus the Cursor- and Codex-specific
// optional fields. HTTP servers use URL/BearerToken. Enabled and Targets
// apply to both variants.
type Server struct {
	// Name is the map key the server was declared under.
	Name string

	// Type tags the variant: ServerStdio or ServerHTTP.
	Type ServerType

	// Command is the executable for stdio servers.
	Command string

	// Args are the command arguments, in declaration order.
	Args []string

	// URL is the endpoint for HTTP servers; must begin with http:// or https://.
	URL string

	// BearerToken is an optional credential for HTTP servers.
	BearerToken string

	// Enabled defaults to true; a disabled server is excluded from every output.
	Enabled bool

	// Targets lists the tools this server opts into; defaults to ["all"].
	Targets []string

	// Env holds per-server environment overrides for stdio servers.
	Env map[string]string

	// Disabled is the Cursor-specific disabled flag, passed through to
	// Cursor output only. Distinct from Enabled.
	Disabled *bool

	// AutoApprove is the Cursor-specific list of tools to auto-approve.
	AutoApprove []string

	// StartupTimeoutSec is the Codex-specific startup timeout in seconds.
	StartupTimeoutSec *int

	// ToolTimeoutSec is the Codex-specific per-tool timeout in seconds.
	ToolTimeoutSec *int
}

// Settings is the optional [settings] section.
type Settings struct {
	// Version is the document schema version, e.g. "1.0" or "1.0.2".
	Version string `toml:"version"`

	// DefaultTargets is applied to servers that did not opt into an
	// explicit target list.
	DefaultTargets []string `toml:"default_targets"`
}

// Document is the parsed unified configuration.
type Document struct {
	// Settings is nil when the [settings] section is absent.
	Settings *Settings

	// Env is the config-local variable table from [env].
	Env map[string]string

	// Servers maps server name to its declaration.
	Servers map[string]*Server
}

// DefaultTargets returns the configured default target list, or nil when
// no settings section or no defaults were given.
func (d *Document) DefaultTargets() []string {
	if d.Settings == nil {
		return nil
	}
	return d.Settings.DefaultTargets
}
