// Package transform renders filtered server sets into each tool's
// native configuration format.
package transform

import (
	"github.com/thoreinstein/agentcfg/internal/document"
	"github.com/thoreinstein/agentcfg/internal/errors"
)

// Transformer renders a set of servers into one tool's config file.
type Transformer interface {
	// Tool returns the target this transformer produces output for.
	Tool() document.ToolName

	// Transform renders the servers into the tool's file format. The
	// result is the complete file contents, trailing newline included.
	// An empty server set yields a well-formed empty container.
	Transform(servers map[string]*document.Server) ([]byte, error)
}

// For returns the transformer for the given tool.
func For(tool document.ToolName) (Transformer, error) {
	switch tool {
	case document.ToolCursor:
		return &cursorTransformer{}, nil
	case document.ToolOpencode:
		return &opencodeTransformer{}, nil
	case document.ToolClaudeCode:
		return &claudeCodeTransformer{}, nil
	case document.ToolCodex:
		return &codexTransformer{}, nil
	default:
		return nil, errors.Wrapf(errors.ErrUnknownTool, "no transformer for %q", tool)
	}
}

// All returns a transformer for every concrete tool, in stable order.
func All() []Transformer {
	tools := document.ConcreteTools()
	transformers := make([]Transformer, 0, len(tools))
	for _, tool := range tools {
		t, err := For(tool)
		if err != nil {
			continue
		}
		transformers = append(transformers, t)
	}
	return transformers
}
