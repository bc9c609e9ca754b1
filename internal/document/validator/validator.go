package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/thoreinstein/agentcfg/internal/document"
)

// versionPattern accepts two- or three-component dotted versions.
var versionPattern = regexp.MustCompile(`^\d+\.\d+(\.\d+)?$`)

// supportedVersionPrefix is the only schema version line currently accepted.
const supportedVersionPrefix = "1.0"

// Validate checks the document against every schema rule and returns all
// violations. A nil result means the document is valid. Validate never
// short-circuits; every applicable rule runs.
func Validate(doc *document.Document) []*ValidationError {
	var errs []*ValidationError

	if doc.Settings != nil {
		errs = append(errs, validateSettings(doc.Settings)...)
	}

	if len(doc.Servers) == 0 {
		errs = append(errs, &ValidationError{
			Message: "at least one MCP server must be defined in [mcp.servers]",
			Err:     ErrNoServers,
		})
		return errs
	}

	for name, server := range doc.Servers {
		errs = append(errs, validateServer(name, server)...)
	}

	return errs
}

func validateSettings(settings *document.Settings) []*ValidationError {
	var errs []*ValidationError

	if !versionPattern.MatchString(settings.Version) {
		errs = append(errs, &ValidationError{
			Message: fmt.Sprintf("invalid version format %q, expected e.g. '1.0' or '1.0.0'", settings.Version),
			Context: "settings.version",
			Err:     ErrBadVersion,
		})
	}

	if !strings.HasPrefix(settings.Version, supportedVersionPrefix) {
		errs = append(errs, &ValidationError{
			Message: fmt.Sprintf("unsupported version %q, only '1.0' is currently supported", settings.Version),
			Context: "settings.version",
			Err:     ErrBadVersion,
		})
	}

	seen := make(map[string]bool)
	for _, target := range settings.DefaultTargets {
		if _, ok := document.ParseToolName(target); !ok {
			errs = append(errs, &ValidationError{
				Message: fmt.Sprintf("invalid tool name %q, must be one of: %s", target, knownToolList()),
				Context: "settings.default_targets",
				Err:     ErrUnknownTool,
			})
		}
		if seen[target] {
			errs = append(errs, &ValidationError{
				Message: fmt.Sprintf("duplicate target %q", target),
				Context: "settings.default_targets",
				Err:     ErrDuplicateTarget,
			})
		}
		seen[target] = true
	}

	return errs
}

func validateServer(name string, server *document.Server) []*ValidationError {
	var errs []*ValidationError
	ctx := "mcp.servers." + name

	switch server.Type {
	case document.ServerStdio:
		if strings.TrimSpace(server.Command) == "" {
			errs = append(errs, &ValidationError{
				Message: "command cannot be empty",
				Context: ctx,
				Err:     ErrMissingCommand,
			})
		}
	case document.ServerHTTP:
		if !strings.HasPrefix(server.URL, "http://") && !strings.HasPrefix(server.URL, "https://") {
			errs = append(errs, &ValidationError{
				Message: fmt.Sprintf("URL must start with 'http://' or 'https://', got %q", server.URL),
				Context: ctx,
				Err:     ErrBadURL,
			})
		}
	}

	for _, target := range server.Targets {
		if _, ok := document.ParseToolName(target); !ok {
			errs = append(errs, &ValidationError{
				Message: fmt.Sprintf("invalid target %q, must be one of: %s", target, knownToolList()),
				Context: ctx,
				Err:     ErrUnknownTool,
			})
		}
	}

	return errs
}

func knownToolList() string {
	tools := make([]string, 0, 5)
	for _, t := range document.ConcreteTools() {
		tools = append(tools, string(t))
	}
	tools = append(tools, string(document.ToolAll))
	return strings.Join(tools, ", ")
}
