package transform

import (
	toml "github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/agentcfg/internal/document"
	"github.com/thoreinstein/agentcfg/internal/errors"
)

// codexServer is one [mcp_servers.<name>] table in Codex's TOML config.
// Stdio and HTTP servers share the struct; nil pointers and empty
// values are omitted so each variant only emits its own fields.
type codexServer struct {
	Command           string            `toml:"command,omitempty"`
	Args              []string          `toml:"args,omitempty"`
	Env               map[string]string `toml:"env,omitempty"`
	StartupTimeoutSec *int              `toml:"startup_timeout_sec,omitempty"`
	ToolTimeoutSec    *int              `toml:"tool_timeout_sec,omitempty"`
	URL               string            `toml:"url,omitempty"`
	BearerToken       string            `toml:"bearer_token,omitempty"`
}

type codexConfig struct {
	MCPServers map[string]codexServer `toml:"mcp_servers"`
}

type codexTransformer struct{}

func (t *codexTransformer) Tool() document.ToolName { return document.ToolCodex }

func (t *codexTransformer) Transform(servers map[string]*document.Server) ([]byte, error) {
	out := codexConfig{MCPServers: make(map[string]codexServer)}

	for name, server := range servers {
		entry := codexServer{}
		switch server.Type {
		case document.ServerStdio:
			entry.Command = server.Command
			entry.Args = server.Args
			entry.Env = server.Env
			entry.StartupTimeoutSec = server.StartupTimeoutSec
			entry.ToolTimeoutSec = server.ToolTimeoutSec
		case document.ServerHTTP:
			entry.URL = server.URL
			entry.BearerToken = server.BearerToken
		}
		out.MCPServers[name] = entry
	}

	data, err := toml.Marshal(out)
	if err != nil {
		return nil, errors.Wrap(err, "encoding codex config")
	}
	return data, nil
}
