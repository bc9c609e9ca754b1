package transform

import (
	"encoding/json"

	"github.com/thoreinstein/agentcfg/internal/document"
	"github.com/thoreinstein/agentcfg/internal/errors"
)

// mcpServer is the shared entry shape used by opencode and Claude Code.
// Stdio servers become "local" entries whose command array folds the
// executable and its arguments together; HTTP servers become "remote"
// entries with an optional Authorization header.
type mcpServer struct {
	Type    string            `json:"type"`
	Command []string          `json:"command,omitempty"`
	URL     string            `json:"url,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
	Enabled bool              `json:"enabled"`
}

type mcpConfig struct {
	MCP map[string]mcpServer `json:"mcp"`
}

// renderMCP builds the opencode/Claude Code JSON document.
func renderMCP(servers map[string]*document.Server) ([]byte, error) {
	out := mcpConfig{MCP: make(map[string]mcpServer)}

	for name, server := range servers {
		entry := mcpServer{Enabled: server.Enabled}
		switch server.Type {
		case document.ServerStdio:
			entry.Type = "local"
			entry.Command = append([]string{server.Command}, server.Args...)
			entry.Env = server.Env
		case document.ServerHTTP:
			entry.Type = "remote"
			entry.URL = server.URL
			if server.BearerToken != "" {
				entry.Headers = map[string]string{
					"Authorization": "Bearer " + server.BearerToken,
				}
			}
		}
		out.MCP[name] = entry
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "encoding mcp config")
	}
	return append(data, '\n'), nil
}

type opencodeTransformer struct{}

func (t *opencodeTransformer) Tool() document.ToolName { return document.ToolOpencode }

func (t *opencodeTransformer) Transform(servers map[string]*document.Server) ([]byte, error) {
	return renderMCP(servers)
}

type claudeCodeTransformer struct{}

func (t *claudeCodeTransformer) Tool() document.ToolName { return document.ToolClaudeCode }

func (t *claudeCodeTransformer) Transform(servers map[string]*document.Server) ([]byte, error) {
	return renderMCP(servers)
}
