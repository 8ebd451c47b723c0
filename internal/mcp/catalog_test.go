package mcp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogList(t *testing.T) {
	c, err := NewCatalog()
	require.NoError(t, err)

	tools := c.List()
	names := make([]string, len(tools))
	for i, tool := range tools {
		names[i] = tool.Name
		assert.NotEmpty(t, tool.Description, tool.Name)
	}
	assert.Equal(t, []string{ToolCreateNote, ToolFindNotes, ToolGetNoteContent, ToolGetVaultInfo}, names)

	tool, ok := c.Find(ToolCreateNote)
	require.True(t, ok)
	assert.Equal(t, []string{"filename"}, tool.InputSchema.Required)
	assert.Contains(t, tool.InputSchema.Properties, "content")
	assert.Contains(t, tool.InputSchema.Properties, "force")

	tool, ok = c.Find(ToolGetVaultInfo)
	require.True(t, ok)
	assert.Empty(t, tool.InputSchema.Required)

	_, ok = c.Find("delete_vault")
	assert.False(t, ok)
}

func TestCatalogInputSchemas(t *testing.T) {
	c, err := NewCatalog()
	require.NoError(t, err)

	for _, tool := range c.List() {
		raw, err := json.Marshal(tool)
		require.NoError(t, err, tool.Name)

		var decoded struct {
			InputSchema map[string]json.RawMessage `json:"inputSchema"`
		}
		require.NoError(t, json.Unmarshal(raw, &decoded), tool.Name)
		assert.JSONEq(t, `"object"`, string(decoded.InputSchema["type"]), tool.Name)
		assert.Contains(t, decoded.InputSchema, "properties", tool.Name)
	}

	tool, ok := c.Find(ToolGetVaultInfo)
	require.True(t, ok)
	raw, err := json.Marshal(tool)
	require.NoError(t, err)

	var decoded struct {
		InputSchema json.RawMessage `json:"inputSchema"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.JSONEq(t, `{"type":"object","properties":{},"required":[]}`, string(decoded.InputSchema))
}

func TestCatalogAnnotations(t *testing.T) {
	c, err := NewCatalog()
	require.NoError(t, err)

	tests := []struct {
		tool        string
		readOnly    bool
		destructive bool
		idempotent  bool
	}{
		{tool: ToolCreateNote, readOnly: false, destructive: true, idempotent: false},
		{tool: ToolFindNotes, readOnly: true, destructive: false, idempotent: true},
		{tool: ToolGetNoteContent, readOnly: true, destructive: false, idempotent: true},
		{tool: ToolGetVaultInfo, readOnly: true, destructive: false, idempotent: true},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			tool, ok := c.Find(tt.tool)
			require.True(t, ok)

			a := tool.Annotations
			require.NotNil(t, a.ReadOnlyHint)
			require.NotNil(t, a.DestructiveHint)
			require.NotNil(t, a.IdempotentHint)
			require.NotNil(t, a.OpenWorldHint)
			assert.Equal(t, tt.readOnly, *a.ReadOnlyHint)
			assert.Equal(t, tt.destructive, *a.DestructiveHint)
			assert.Equal(t, tt.idempotent, *a.IdempotentHint)
			assert.False(t, *a.OpenWorldHint)
		})
	}
}

func TestCatalogListIsACopy(t *testing.T) {
	c, err := NewCatalog()
	require.NoError(t, err)

	first := c.List()
	first[0].Name = "changed"
	assert.Equal(t, ToolCreateNote, c.List()[0].Name)
}

func TestCatalogValidate(t *testing.T) {
	c, err := NewCatalog()
	require.NoError(t, err)

	tests := []struct {
		name     string
		tool     string
		args     string
		wantCode int
		wantMsg  string
	}{
		{name: "valid create", tool: ToolCreateNote, args: `{"filename":"a","content":"x","force":true}`},
		{name: "extra arguments ignored", tool: ToolFindNotes, args: `{"term":"a","limit":3}`},
		{name: "no arguments for info", tool: ToolGetVaultInfo, args: ``},
		{name: "null arguments for info", tool: ToolGetVaultInfo, args: `null`},
		{name: "unknown tool", tool: "nope", args: `{}`, wantCode: -32601, wantMsg: "Tool not found: nope"},
		{name: "missing required", tool: ToolCreateNote, args: `{"content":"x"}`, wantCode: -32602, wantMsg: "Missing 'filename' parameter"},
		{name: "missing required without arguments", tool: ToolGetNoteContent, args: ``, wantCode: -32602, wantMsg: "Missing 'filename' parameter"},
		{name: "wrong type", tool: ToolFindNotes, args: `{"term":"a","exact":"yes"}`, wantCode: -32602, wantMsg: "Invalid arguments"},
		{name: "wrong required type", tool: ToolCreateNote, args: `{"filename":3}`, wantCode: -32602, wantMsg: "Invalid arguments"},
		{name: "arguments not an object", tool: ToolFindNotes, args: `["a"]`, wantCode: -32602, wantMsg: "Invalid arguments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var raw json.RawMessage
			if tt.args != "" {
				raw = json.RawMessage(tt.args)
			}

			args, rpcErr := c.Validate(tt.tool, raw)
			if tt.wantCode == 0 {
				require.Nil(t, rpcErr)
				assert.NotNil(t, args)
				return
			}
			require.NotNil(t, rpcErr)
			assert.Equal(t, tt.wantCode, rpcErr.Code)
			assert.Equal(t, tt.wantMsg, rpcErr.Message)
		})
	}
}

func TestCatalogValidateReportsLocation(t *testing.T) {
	c, err := NewCatalog()
	require.NoError(t, err)

	_, rpcErr := c.Validate(ToolFindNotes, json.RawMessage(`{"term":"a","exact":"yes"}`))
	require.NotNil(t, rpcErr)
	detail, ok := rpcErr.Data.(string)
	require.True(t, ok)
	assert.Contains(t, detail, "exact")
}
