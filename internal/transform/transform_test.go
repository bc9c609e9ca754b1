package transform

import (
	"encoding/json"
	"strings"
	"testing"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/agentcfg/internal/document"
	"github.com/thoreinstein/agentcfg/internal/errors"
)

func stdio(name, command string, args []string) *document.Server {
	return &document.Server{
		Name:    name,
		Type:    document.ServerStdio,
		Command: command,
		Args:    args,
		Enabled: true,
	}
}

func remote(name, url, token string) *document.Server {
	return &document.Server{
		Name:        name,
		Type:        document.ServerHTTP,
		URL:         url,
		BearerToken: token,
		Enabled:     true,
	}
}

func transform(t *testing.T, tool document.ToolName, servers map[string]*document.Server) []byte {
	t.Helper()
	tr, err := For(tool)
	if err != nil {
		t.Fatalf("For(%s): %v", tool, err)
	}
	data, err := tr.Transform(servers)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	return data
}

func TestForUnknownTool(t *testing.T) {
	if _, err := For(document.ToolName("zed")); !errors.Is(err, errors.ErrUnknownTool) {
		t.Errorf("got %v, want ErrUnknownTool", err)
	}
}

func TestAllCoversConcreteTools(t *testing.T) {
	transformers := All()
	if len(transformers) != len(document.ConcreteTools()) {
		t.Fatalf("got %d transformers, want %d", len(transformers), len(document.ConcreteTools()))
	}
	for i, tool := range document.ConcreteTools() {
		if transformers[i].Tool() != tool {
			t.Errorf("transformer %d is for %s, want %s", i, transformers[i].Tool(), tool)
		}
	}
}

func TestCursorStdioEntry(t *testing.T) {
	data := transform(t, document.ToolCursor, map[string]*document.Server{
		"github": stdio("github", "npx", nil),
	})

	var got struct {
		MCPServers map[string]json.RawMessage `json:"mcpServers"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	entry, ok := got.MCPServers["github"]
	if !ok {
		t.Fatal("github entry missing")
	}
	// args must be present even when empty so Cursor does not reject
	// the entry.
	if !strings.Contains(string(entry), `"args": []`) {
		t.Errorf("entry missing empty args array: %s", entry)
	}
	if !strings.Contains(string(entry), `"command": "npx"`) {
		t.Errorf("entry missing command: %s", entry)
	}
}

func TestCursorDropsHTTPServers(t *testing.T) {
	data := transform(t, document.ToolCursor, map[string]*document.Server{
		"api":   remote("api", "https://example.com/mcp", ""),
		"local": stdio("local", "uvx", []string{"serve"}),
	})

	var got struct {
		MCPServers map[string]json.RawMessage `json:"mcpServers"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if _, ok := got.MCPServers["api"]; ok {
		t.Error("HTTP server present in cursor output")
	}
	if _, ok := got.MCPServers["local"]; !ok {
		t.Error("stdio server missing from cursor output")
	}
}

func TestCursorOptionalFields(t *testing.T) {
	disabled := true
	srv := stdio("github", "npx", []string{"-y", "server-github"})
	srv.Env = map[string]string{"GITHUB_TOKEN": "abc"}
	srv.Disabled = &disabled
	srv.AutoApprove = []string{"search"}

	data := string(transform(t, document.ToolCursor, map[string]*document.Server{"github": srv}))

	for _, want := range []string{`"env"`, `"disabled": true`, `"autoApprove"`} {
		if !strings.Contains(data, want) {
			t.Errorf("output missing %s:\n%s", want, data)
		}
	}
}

func TestCursorEmptySet(t *testing.T) {
	data := transform(t, document.ToolCursor, nil)
	var got map[string]map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if servers, ok := got["mcpServers"]; !ok || len(servers) != 0 {
		t.Errorf("want empty mcpServers object, got %v", got)
	}
}

func TestMCPLocalEntry(t *testing.T) {
	for _, tool := range []document.ToolName{document.ToolOpencode, document.ToolClaudeCode} {
		t.Run(string(tool), func(t *testing.T) {
			srv := stdio("fs", "npx", []string{"-y", "server-filesystem"})
			srv.Env = map[string]string{"ROOT": "/tmp"}
			data := transform(t, tool, map[string]*document.Server{"fs": srv})

			var got struct {
				MCP map[string]struct {
					Type    string            `json:"type"`
					Command []string          `json:"command"`
					Env     map[string]string `json:"env"`
					Enabled bool              `json:"enabled"`
				} `json:"mcp"`
			}
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatal(err)
			}
			entry := got.MCP["fs"]
			if entry.Type != "local" {
				t.Errorf("type = %q, want local", entry.Type)
			}
			want := []string{"npx", "-y", "server-filesystem"}
			if len(entry.Command) != len(want) {
				t.Fatalf("command = %v, want %v", entry.Command, want)
			}
			for i := range want {
				if entry.Command[i] != want[i] {
					t.Errorf("command[%d] = %q, want %q", i, entry.Command[i], want[i])
				}
			}
			if entry.Env["ROOT"] != "/tmp" {
				t.Errorf("env = %v", entry.Env)
			}
			if !entry.Enabled {
				t.Error("enabled = false")
			}
		})
	}
}

func TestMCPRemoteEntry(t *testing.T) {
	data := transform(t, document.ToolOpencode, map[string]*document.Server{
		"api": remote("api", "https://example.com/mcp", "tok123"),
	})

	var got struct {
		MCP map[string]struct {
			Type    string            `json:"type"`
			URL     string            `json:"url"`
			Headers map[string]string `json:"headers"`
		} `json:"mcp"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	entry := got.MCP["api"]
	if entry.Type != "remote" {
		t.Errorf("type = %q, want remote", entry.Type)
	}
	if entry.URL != "https://example.com/mcp" {
		t.Errorf("url = %q", entry.URL)
	}
	if entry.Headers["Authorization"] != "Bearer tok123" {
		t.Errorf("headers = %v", entry.Headers)
	}
}

func TestMCPRemoteNoTokenNoHeaders(t *testing.T) {
	data := string(transform(t, document.ToolClaudeCode, map[string]*document.Server{
		"api": remote("api", "https://example.com/mcp", ""),
	}))
	if strings.Contains(data, "headers") {
		t.Errorf("headers emitted without a bearer token:\n%s", data)
	}
}

func TestCodexStdioEntry(t *testing.T) {
	startup, tool := 30, 120
	srv := stdio("github", "npx", []string{"-y", "server-github"})
	srv.Env = map[string]string{"GITHUB_TOKEN": "abc"}
	srv.StartupTimeoutSec = &startup
	srv.ToolTimeoutSec = &tool

	data := transform(t, document.ToolCodex, map[string]*document.Server{"github": srv})

	var got struct {
		MCPServers map[string]struct {
			Command           string            `toml:"command"`
			Args              []string          `toml:"args"`
			Env               map[string]string `toml:"env"`
			StartupTimeoutSec int               `toml:"startup_timeout_sec"`
			ToolTimeoutSec    int               `toml:"tool_timeout_sec"`
		} `toml:"mcp_servers"`
	}
	if err := toml.Unmarshal(data, &got); err != nil {
		t.Fatalf("output is not valid TOML: %v\n%s", err, data)
	}
	entry := got.MCPServers["github"]
	if entry.Command != "npx" {
		t.Errorf("command = %q", entry.Command)
	}
	if len(entry.Args) != 2 {
		t.Errorf("args = %v", entry.Args)
	}
	if entry.Env["GITHUB_TOKEN"] != "abc" {
		t.Errorf("env = %v", entry.Env)
	}
	if entry.StartupTimeoutSec != 30 || entry.ToolTimeoutSec != 120 {
		t.Errorf("timeouts = %d/%d", entry.StartupTimeoutSec, entry.ToolTimeoutSec)
	}
}

func TestCodexHTTPEntry(t *testing.T) {
	data := transform(t, document.ToolCodex, map[string]*document.Server{
		"api": remote("api", "https://example.com/mcp", "tok123"),
	})

	var got struct {
		MCPServers map[string]struct {
			URL         string `toml:"url"`
			BearerToken string `toml:"bearer_token"`
		} `toml:"mcp_servers"`
	}
	if err := toml.Unmarshal(data, &got); err != nil {
		t.Fatalf("output is not valid TOML: %v\n%s", err, data)
	}
	entry := got.MCPServers["api"]
	if entry.URL != "https://example.com/mcp" {
		t.Errorf("url = %q", entry.URL)
	}
	if entry.BearerToken != "tok123" {
		t.Errorf("bearer_token = %q", entry.BearerToken)
	}
	if strings.Contains(string(data), "command") {
		t.Errorf("HTTP entry carries a command:\n%s", data)
	}
}

func TestCodexNoForeignFields(t *testing.T) {
	disabled := true
	srv := stdio("github", "npx", nil)
	srv.Disabled = &disabled
	srv.AutoApprove = []string{"search"}

	data := string(transform(t, document.ToolCodex, map[string]*document.Server{"github": srv}))
	for _, forbidden := range []string{"disabled", "autoApprove", "auto_approve"} {
		if strings.Contains(data, forbidden) {
			t.Errorf("cursor-only field %q leaked into codex output:\n%s", forbidden, data)
		}
	}
}
