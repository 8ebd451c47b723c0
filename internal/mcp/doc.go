// Package mcp implements the assistant-facing Model Context Protocol server for
// obsidian-cli.
//
// The server speaks JSON-RPC 2.0 over a line-oriented channel, normally the
// process's stdin and stdout, and exposes four vault operations as tools:
//
//	create_note       {filename, content?, force?}
//	find_notes        {term, exact?}
//	get_note_content  {filename, show_frontmatter?}
//	get_vault_info    {}
//
// # Error Model
//
// Failures are reported on two separate channels:
//   - Protocol faults (undecodable line, unknown method or tool, invalid
//     arguments, internal panics) become JSON-RPC error objects with the codes
//     -32700, -32601, -32602 and -32603.
//   - Vault faults (note not found, note already exists) become successful
//     responses whose single content item carries _meta.status "error" and a
//     numeric _meta.exit_code matching the command line's exit codes.
//
// # Processing
//
// Requests are handled strictly in order, one at a time. A bad line produces an
// error response and the loop moves on to the next line. End of input closes the
// server cleanly.
//
// Tool descriptors are built with the mcp-go library (github.com/mark3labs/mcp-go)
// and their input schemas are compiled once with jsonschema for argument validation.
//
// Nothing but protocol traffic is written to the output stream; diagnostics go
// through the application logger, which writes to stderr.
package mcp
