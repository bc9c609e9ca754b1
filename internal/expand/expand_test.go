package expand

import (
	"fmt"
	"strings"
	"testing"

	"github.com/thoreinstein/agentcfg/internal/document"
	"github.com/thoreinstein/agentcfg/internal/errors"
)

func TestExpandShellDefined(t *testing.T) {
	e := New(nil, map[string]string{"HOME": "/home/user"})

	got := e.ExpandShell("${HOME}/config")
	if got != "/home/user/config" {
		t.Errorf("got %q", got)
	}
	if len(e.Warnings()) != 0 {
		t.Errorf("warnings = %v", e.Warnings())
	}
}

func TestExpandShellMultiple(t *testing.T) {
	e := New(nil, map[string]string{"USER": "alice", "HOST": "server"})

	if got := e.ExpandShell("${USER}@${HOST}"); got != "alice@server" {
		t.Errorf("got %q", got)
	}
}

func TestExpandShellUndefined(t *testing.T) {
	e := New(nil, nil)

	got := e.ExpandShell("${UNDEFINED}")
	if got != "" {
		t.Errorf("got %q, want empty", got)
	}
	if len(e.Warnings()) != 1 {
		t.Fatalf("warnings = %v, want exactly one", e.Warnings())
	}
	if e.Warnings()[0] != "Shell variable 'UNDEFINED' is undefined" {
		t.Errorf("warning = %q", e.Warnings()[0])
	}
}

func TestExpandShellMixed(t *testing.T) {
	e := New(nil, map[string]string{"DEFINED": "value"})

	got := e.ExpandShell("${DEFINED}-${UNDEFINED}")
	if got != "value-" {
		t.Errorf("got %q", got)
	}
	if len(e.Warnings()) != 1 {
		t.Errorf("warnings = %v", e.Warnings())
	}
}

func TestExpandShellLeavesLocalSyntax(t *testing.T) {
	e := New(nil, map[string]string{"VAR": "value"})

	// {VAR} belongs to the config-local pass, not the shell pass.
	if got := e.ExpandShell("{VAR} and ${VAR}"); got != "{VAR} and value" {
		t.Errorf("got %q", got)
	}
}

func TestExpandLocal(t *testing.T) {
	e := New(map[string]string{"NAME": "github"}, nil)

	got, err := e.Expand("server-{NAME}")
	if err != nil {
		t.Fatal(err)
	}
	if got != "server-github" {
		t.Errorf("got %q", got)
	}
}

func TestExpandLocalUndefined(t *testing.T) {
	e := New(nil, nil)

	got, err := e.Expand("{MISSING}")
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("got %q, want empty", got)
	}
	if len(e.Warnings()) != 1 || !strings.Contains(e.Warnings()[0], "MISSING") {
		t.Errorf("warnings = %v", e.Warnings())
	}
}

func TestExpandLocalReferencesShell(t *testing.T) {
	e := New(
		map[string]string{"TOKEN": "${GITHUB_TOKEN}"},
		map[string]string{"GITHUB_TOKEN": "ghp_abc"},
	)

	got, err := e.Expand("Bearer {TOKEN}")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Bearer ghp_abc" {
		t.Errorf("got %q", got)
	}
}

func TestExpandChainDepthNine(t *testing.T) {
	// A1 -> A2 -> ... -> A9 -> "value"
	locals := make(map[string]string)
	for i := 1; i < 9; i++ {
		locals[fmt.Sprintf("A%d", i)] = fmt.Sprintf("{A%d}", i+1)
	}
	locals["A9"] = "value"

	e := New(locals, nil)
	got, err := e.Expand("{A1}")
	if err != nil {
		t.Fatalf("depth-9 chain should resolve: %v", err)
	}
	if got != "value" {
		t.Errorf("got %q, want %q", got, "value")
	}
}

func TestExpandChainDepthTen(t *testing.T) {
	locals := make(map[string]string)
	for i := 1; i < 10; i++ {
		locals[fmt.Sprintf("A%d", i)] = fmt.Sprintf("{A%d}", i+1)
	}
	locals["A10"] = "value"

	e := New(locals, nil)
	_, err := e.Expand("{A1}")

	var depthErr *MaxDepthError
	if !errors.As(err, &depthErr) {
		t.Fatalf("err = %v, want *MaxDepthError", err)
	}
	if depthErr.Max != MaxDepth {
		t.Errorf("Max = %d, want %d", depthErr.Max, MaxDepth)
	}
}

func TestExpandDirectCycle(t *testing.T) {
	e := New(map[string]string{"A": "{A}"}, nil)

	_, err := e.Expand("{A}")
	var circErr *CircularReferenceError
	if !errors.As(err, &circErr) {
		t.Fatalf("err = %v, want *CircularReferenceError", err)
	}
	if circErr.Name != "A" {
		t.Errorf("Name = %q, want A", circErr.Name)
	}
}

func TestExpandIndirectCycle(t *testing.T) {
	e := New(map[string]string{"A": "{B}", "B": "{A}"}, nil)

	_, err := e.Expand("prefix {A} suffix")
	var circErr *CircularReferenceError
	if !errors.As(err, &circErr) {
		t.Fatalf("err = %v, want *CircularReferenceError", err)
	}
}

func TestExpandSiblingReuseIsLegal(t *testing.T) {
	// The same name referenced twice as siblings is not a cycle; marking
	// is path-local, not global.
	e := New(map[string]string{"X": "v", "Y": "{X} {X}"}, nil)

	got, err := e.Expand("{Y} and {X}")
	if err != nil {
		t.Fatalf("sibling reuse rejected: %v", err)
	}
	if got != "v v and v" {
		t.Errorf("got %q", got)
	}
}

func TestExpandIdempotentOnResolvedOutput(t *testing.T) {
	e := New(map[string]string{"NAME": "srv"}, map[string]string{"PORT": "8080"})

	first, err := e.Expand("{NAME}:${PORT}")
	if err != nil {
		t.Fatal(err)
	}
	second, err := e.Expand(first)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("not idempotent: %q then %q", first, second)
	}
}

func TestExpandDeterministic(t *testing.T) {
	locals := map[string]string{"A": "{B}{B}", "B": "x"}
	for range 10 {
		e := New(locals, nil)
		got, err := e.Expand("{A}")
		if err != nil || got != "xx" {
			t.Fatalf("got (%q, %v), want (xx, nil)", got, err)
		}
	}
}

func TestDocumentExpandsAllFields(t *testing.T) {
	doc := &document.Document{
		Servers: map[string]*document.Server{
			"local": {
				Name:    "local",
				Type:    document.ServerStdio,
				Command: "{BIN}",
				Args:    []string{"--token", "${SHELL_TOKEN}"},
				Env:     map[string]string{"KEY": "{SECRET}"},
				Enabled: true,
				Targets: []string{"all"},
			},
			"remote": {
				Name:        "remote",
				Type:        document.ServerHTTP,
				URL:         "https://{HOST}/mcp",
				BearerToken: "{SECRET}",
				Enabled:     true,
				Targets:     []string{"all"},
			},
		},
	}

	e := New(
		map[string]string{"BIN": "npx", "SECRET": "s3cret", "HOST": "api.example.com"},
		map[string]string{"SHELL_TOKEN": "tok"},
	)
	if err := e.Document(doc); err != nil {
		t.Fatal(err)
	}

	local := doc.Servers["local"]
	if local.Command != "npx" {
		t.Errorf("Command = %q", local.Command)
	}
	if local.Args[1] != "tok" {
		t.Errorf("Args = %v", local.Args)
	}
	if local.Env["KEY"] != "s3cret" {
		t.Errorf("Env = %v", local.Env)
	}

	remote := doc.Servers["remote"]
	if remote.URL != "https://api.example.com/mcp" {
		t.Errorf("URL = %q", remote.URL)
	}
	if remote.BearerToken != "s3cret" {
		t.Errorf("BearerToken = %q", remote.BearerToken)
	}
}

func TestDocumentCycleAborts(t *testing.T) {
	doc := &document.Document{
		Servers: map[string]*document.Server{
			"s": {
				Name:    "s",
				Type:    document.ServerStdio,
				Command: "{A}",
				Enabled: true,
				Targets: []string{"all"},
			},
		},
	}

	e := New(map[string]string{"A": "{B}", "B": "{A}"}, nil)
	err := e.Document(doc)

	var circErr *CircularReferenceError
	if !errors.As(err, &circErr) {
		t.Fatalf("err = %v, want *CircularReferenceError", err)
	}
}
