// Package document defines the unified configuration model and its TOML
// parser.
//
// A document declares MCP servers once, in a single TOML file, and the
// rest of the pipeline compiles them into each tool's native format.
// Servers come in two variants resolved structurally at parse time: a
// table with a "command" key is a stdio server, a table with a "url" key
// is an HTTP server. The variant is carried as an explicit Type tag so
// downstream switches stay exhaustive.
package document
