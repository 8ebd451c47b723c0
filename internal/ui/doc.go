// Package ui renders vault data for humans: styled info tables, markdown
// rendering for cat --render and the padded note listing for ls --date.
// Nothing here is used by the MCP server, whose output must stay plain.
package ui
