package transform

import (
	"encoding/json"

	"github.com/thoreinstein/agentcfg/internal/document"
	"github.com/thoreinstein/agentcfg/internal/errors"
)

// cursorServer is one entry in Cursor's mcp.json. Cursor only speaks
// stdio, so HTTP servers never appear here.
type cursorServer struct {
	Command     string            `json:"command"`
	Args        []string          `json:"args"`
	Env         map[string]string `json:"env,omitempty"`
	Disabled    *bool             `json:"disabled,omitempty"`
	AutoApprove []string          `json:"autoApprove,omitempty"`
}

type cursorConfig struct {
	MCPServers map[string]cursorServer `json:"mcpServers"`
}

type cursorTransformer struct{}

func (t *cursorTransformer) Tool() document.ToolName { return document.ToolCursor }

func (t *cursorTransformer) Transform(servers map[string]*document.Server) ([]byte, error) {
	out := cursorConfig{MCPServers: make(map[string]cursorServer)}

	for name, server := range servers {
		if server.Type != document.ServerStdio {
			continue
		}
		entry := cursorServer{
			Command:     server.Command,
			Args:        server.Args,
			Env:         server.Env,
			Disabled:    server.Disabled,
			AutoApprove: server.AutoApprove,
		}
		if entry.Args == nil {
			entry.Args = []string{}
		}
		out.MCPServers[name] = entry
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "encoding cursor config")
	}
	return append(data, '\n'), nil
}
