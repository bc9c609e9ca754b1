package expand

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/thoreinstein/agentcfg/internal/document"
)

// MaxDepth bounds config-local expansion to guard against runaway
// reference chains.
const MaxDepth = 10

var (
	// shellVarPattern matches ${NAME}; NAME is everything up to the next
	// closing brace, so references never nest.
	shellVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

	// localVarPattern matches {NAME}. It is only applied after the shell
	// pass has consumed every ${NAME}.
	localVarPattern = regexp.MustCompile(`\{([^}]+)\}`)
)

// CircularReferenceError reports a config-local variable that resolves
// through itself, directly or indirectly.
type CircularReferenceError struct {
	// Name is the variable on the cycle.
	Name string
	// Depth is the recursion depth the cycle was detected at.
	Depth int
}

func (e *CircularReferenceError) Error() string {
	return fmt.Sprintf("circular reference detected for variable %q at depth %d", e.Name, e.Depth)
}

// MaxDepthError reports a reference chain deeper than MaxDepth.
type MaxDepthError struct {
	// Depth is the recursion depth that was reached.
	Depth int
	// Max is the configured bound.
	Max int
}

func (e *MaxDepthError) Error() string {
	return fmt.Sprintf("maximum expansion depth exceeded at depth %d (max %d)", e.Depth, e.Max)
}

// Expander resolves ${NAME} references against a snapshot of the process
// environment and {NAME} references against the document's [env] table.
// It is not safe for concurrent use; one Expander serves one compile run.
type Expander struct {
	locals   map[string]string
	shell    map[string]string
	warnings []string
}

// New creates an Expander over explicit lookup tables. Tests and callers
// that must not depend on the real environment use this constructor.
func New(locals, shell map[string]string) *Expander {
	return &Expander{
		locals: locals,
		shell:  shell,
	}
}

// FromEnviron creates an Expander over the document's [env] table and a
// snapshot of the current process environment. The snapshot is taken
// once, so expansion stays deterministic for the whole run.
func FromEnviron(locals map[string]string) *Expander {
	shell := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			shell[k] = v
		}
	}
	return New(locals, shell)
}

// Warnings returns the warnings collected so far, in emission order.
func (e *Expander) Warnings() []string {
	return e.warnings
}

// ExpandShell replaces every ${NAME} with the process-environment value.
// An undefined name becomes the empty string and records a warning.
// ExpandShell never fails.
func (e *Expander) ExpandShell(s string) string {
	return shellVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := match[2 : len(match)-1]
		if value, ok := e.shell[name]; ok {
			return value
		}
		e.warnings = append(e.warnings, fmt.Sprintf("Shell variable '%s' is undefined", name))
		return ""
	})
}

// Expand resolves both syntaxes: the shell pass first, then the
// config-local pass. Config-local values may themselves embed shell
// syntax, which is resolved before their own references are followed.
func (e *Expander) Expand(s string) (string, error) {
	return e.expandLocals(e.ExpandShell(s), 0, make(map[string]bool))
}

// expandLocals replaces every {NAME} with the config-local value.
// visiting holds the names on the active resolution path; a name is
// present only while its own value resolves, so sibling reuse of a name
// is legal while any nesting inside its own expansion is a cycle.
func (e *Expander) expandLocals(s string, depth int, visiting map[string]bool) (string, error) {
	if depth >= MaxDepth {
		return "", &MaxDepthError{Depth: depth, Max: MaxDepth}
	}

	var resolveErr error
	result := localVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if resolveErr != nil {
			return ""
		}
		name := match[1 : len(match)-1]

		if visiting[name] {
			resolveErr = &CircularReferenceError{Name: name, Depth: depth}
			return ""
		}

		value, ok := e.locals[name]
		if !ok {
			e.warnings = append(e.warnings, fmt.Sprintf("Environment variable '%s' is undefined", name))
			return ""
		}

		visiting[name] = true
		resolved, err := e.expandLocals(e.ExpandShell(value), depth+1, visiting)
		delete(visiting, name)
		if err != nil {
			resolveErr = err
			return ""
		}
		return resolved
	})

	if resolveErr != nil {
		return "", resolveErr
	}
	return result, nil
}

// Document expands every substitutable field of every server in place:
// command, args, env values, URL, and bearer token. Server names and env
// keys are never expanded. The first error aborts; servers are visited
// in name order so failures are deterministic.
func (e *Expander) Document(doc *document.Document) error {
	names := make([]string, 0, len(doc.Servers))
	for name := range doc.Servers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := e.expandServer(doc.Servers[name]); err != nil {
			return fmt.Errorf("expanding server %q: %w", name, err)
		}
	}
	return nil
}

func (e *Expander) expandServer(server *document.Server) error {
	var err error

	if server.Command, err = e.Expand(server.Command); err != nil {
		return err
	}
	for i, arg := range server.Args {
		if server.Args[i], err = e.Expand(arg); err != nil {
			return err
		}
	}

	keys := make([]string, 0, len(server.Env))
	for k := range server.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if server.Env[k], err = e.Expand(server.Env[k]); err != nil {
			return err
		}
	}

	if server.URL, err = e.Expand(server.URL); err != nil {
		return err
	}
	if server.BearerToken, err = e.Expand(server.BearerToken); err != nil {
		return err
	}

	return nil
}
