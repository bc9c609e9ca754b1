package transform

import (
	"github.com/thoreinstein/agentcfg/internal/document"
)

// Filter selects the servers that should appear in a tool's output.
// Disabled servers are dropped. A server's effective target list is its
// declared targets unless that list is empty or exactly ["all"], in
// which case the document-wide defaults apply (or ["all"] when none are
// configured). A server is included when its effective targets contain
// "all" or the tool itself.
func Filter(servers map[string]*document.Server, tool document.ToolName, defaultTargets []string) map[string]*document.Server {
	filtered := make(map[string]*document.Server)

	for name, server := range servers {
		if !server.Enabled {
			continue
		}
		if includes(effectiveTargets(server, defaultTargets), tool) {
			filtered[name] = server
		}
	}

	return filtered
}

// effectiveTargets resolves a server's declared targets against the
// document defaults. An explicit list other than ["all"] always wins.
func effectiveTargets(server *document.Server, defaultTargets []string) []string {
	declared := server.Targets
	if len(declared) == 0 || (len(declared) == 1 && declared[0] == string(document.ToolAll)) {
		if len(defaultTargets) == 0 {
			return []string{string(document.ToolAll)}
		}
		return defaultTargets
	}
	return declared
}

func includes(targets []string, tool document.ToolName) bool {
	for _, t := range targets {
		if t == string(document.ToolAll) || t == string(tool) {
			return true
		}
	}
	return false
}
