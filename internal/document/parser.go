package document

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/agentcfg/internal/errors"
)

// ParseError describes a TOML syntax or structural error with the line
// it occurred on. Line is 1-based; 0 means the line is unknown.
type ParseError struct {
	Message string
	Line    int
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

// rawServer is the permissive TOML shape of a server table. The
// stdio/HTTP variant is resolved after decoding based on which fields
// are present.
type rawServer struct {
	Command           *string           `toml:"command"`
	Args              []string          `toml:"args"`
	URL               *string           `toml:"url"`
	BearerToken       string            `toml:"bearer_token"`
	Enabled           *bool             `toml:"enabled"`
	Targets           []string          `toml:"targets"`
	Env               map[string]string `toml:"env"`
	Disabled          *bool             `toml:"disabled"`
	AutoApprove       []string          `toml:"autoApprove"`
	StartupTimeoutSec *int              `toml:"startup_timeout_sec"`
	ToolTimeoutSec    *int              `toml:"tool_timeout_sec"`
}

type rawMCP struct {
	Servers map[string]rawServer `toml:"servers"`
}

type rawDocument struct {
	Settings *Settings         `toml:"settings"`
	Env      map[string]string `toml:"env"`
	MCP      rawMCP            `toml:"mcp"`
}

// Parse decodes a unified configuration document from TOML bytes.
// Syntax errors are reported as *ParseError carrying the 1-based line
// number of the failure. A document without any [mcp.servers] tables
// decodes successfully with zero servers; the validator rejects it.
func Parse(data []byte) (*Document, error) {
	var raw rawDocument
	if err := toml.Unmarshal(data, &raw); err != nil {
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, _ := decodeErr.Position()
			return nil, &ParseError{Message: decodeErr.Error(), Line: row}
		}
		return nil, &ParseError{Message: err.Error()}
	}

	doc := &Document{
		Settings: raw.Settings,
		Env:      raw.Env,
		Servers:  make(map[string]*Server, len(raw.MCP.Servers)),
	}

	for name, rs := range raw.MCP.Servers {
		server, err := classify(name, rs)
		if err != nil {
			return nil, err
		}
		doc.Servers[name] = server
	}

	return doc, nil
}

// classify resolves the stdio/HTTP variant of a raw server table.
// Exactly one of command and url must be present. Presence is what
// decides the variant: an empty-but-declared command still classifies
// as stdio so the validator can report the blank value alongside every
// other violation.
func classify(name string, rs rawServer) (*Server, error) {
	hasCommand := rs.Command != nil
	hasURL := rs.URL != nil

	switch {
	case hasCommand && hasURL:
		return nil, &ParseError{
			Message: fmt.Sprintf("server %q declares both 'command' and 'url'; pick one", name),
		}
	case !hasCommand && !hasURL:
		return nil, &ParseError{
			Message: fmt.Sprintf("server %q declares neither 'command' nor 'url'", name),
		}
	}

	enabled := true
	if rs.Enabled != nil {
		enabled = *rs.Enabled
	}

	targets := rs.Targets
	if len(targets) == 0 {
		targets = []string{string(ToolAll)}
	}

	server := &Server{
		Name:    name,
		Enabled: enabled,
		Targets: targets,
	}

	if hasCommand {
		server.Type = ServerStdio
		server.Command = *rs.Command
		server.Args = rs.Args
		server.Env = rs.Env
		server.Disabled = rs.Disabled
		server.AutoApprove = rs.AutoApprove
		server.StartupTimeoutSec = rs.StartupTimeoutSec
		server.ToolTimeoutSec = rs.ToolTimeoutSec
	} else {
		server.Type = ServerHTTP
		server.URL = *rs.URL
		server.BearerToken = rs.BearerToken
	}

	return server, nil
}

// Load reads and parses the unified configuration at path.
// Not-found and permission failures map to the shared sentinels so the
// CLI can give each its own remediation advice.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, errors.Wrapf(errors.ErrNotFound, "%s", path)
		case errors.Is(err, fs.ErrPermission):
			return nil, errors.Wrapf(errors.ErrPermission, "%s", path)
		default:
			return nil, errors.Wrapf(err, "reading %s", path)
		}
	}
	return Parse(data)
}
