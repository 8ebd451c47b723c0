package mcp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Tool names exposed by the server.
const (
	ToolCreateNote     = "create_note"
	ToolFindNotes      = "find_notes"
	ToolGetNoteContent = "get_note_content"
	ToolGetVaultInfo   = "get_vault_info"
)

// Catalog is the fixed, ordered set of tool descriptors.
type Catalog struct {
	tools   []mcp.Tool
	schemas map[string]*jsonschema.Schema
}

// NewCatalog builds the four vault tools and compiles their input schemas.
func NewCatalog() (*Catalog, error) {
	tools := []mcp.Tool{
		mcp.NewTool(ToolCreateNote,
			mcp.WithDescription("Create a new note in the Obsidian vault"),
			mcp.WithTitleAnnotation("Create note"),
			mcp.WithReadOnlyHintAnnotation(false),
			mcp.WithDestructiveHintAnnotation(true),
			mcp.WithIdempotentHintAnnotation(false),
			mcp.WithOpenWorldHintAnnotation(false),
			mcp.WithString("filename",
				mcp.Required(),
				mcp.Description("Name of the note to create, relative to the vault root. The .md extension is optional."),
			),
			mcp.WithString("content",
				mcp.Description("Initial body of the note"),
				mcp.DefaultString(""),
			),
			mcp.WithBoolean("force",
				mcp.Description("Overwrite the note if it already exists"),
				mcp.DefaultBool(false),
			),
		),
		mcp.NewTool(ToolFindNotes,
			mcp.WithDescription("Find notes in the Obsidian vault by name"),
			mcp.WithTitleAnnotation("Find notes"),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithDestructiveHintAnnotation(false),
			mcp.WithIdempotentHintAnnotation(true),
			mcp.WithOpenWorldHintAnnotation(false),
			mcp.WithString("term",
				mcp.Required(),
				mcp.Description("Search term matched against note names"),
			),
			mcp.WithBoolean("exact",
				mcp.Description("Match note names exactly instead of fuzzily"),
				mcp.DefaultBool(false),
			),
		),
		mcp.NewTool(ToolGetNoteContent,
			mcp.WithDescription("Get the content of a note in the Obsidian vault"),
			mcp.WithTitleAnnotation("Get note content"),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithDestructiveHintAnnotation(false),
			mcp.WithIdempotentHintAnnotation(true),
			mcp.WithOpenWorldHintAnnotation(false),
			mcp.WithString("filename",
				mcp.Required(),
				mcp.Description("Name of the note to read, relative to the vault root"),
			),
			mcp.WithBoolean("show_frontmatter",
				mcp.Description("Include the frontmatter block in the returned text"),
				mcp.DefaultBool(false),
			),
		),
		mcp.NewTool(ToolGetVaultInfo,
			mcp.WithDescription("Get information about the Obsidian vault"),
			mcp.WithTitleAnnotation("Get vault info"),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithDestructiveHintAnnotation(false),
			mcp.WithIdempotentHintAnnotation(true),
			mcp.WithOpenWorldHintAnnotation(false),
			withNoArguments(),
		),
	}

	c := &Catalog{
		tools:   tools,
		schemas: make(map[string]*jsonschema.Schema, len(tools)),
	}
	for _, tool := range tools {
		schema, err := compileSchema(tool)
		if err != nil {
			return nil, fmt.Errorf("compile schema for %s: %w", tool.Name, err)
		}
		c.schemas[tool.Name] = schema
	}
	return c, nil
}

// noArgumentsSchema lists empty properties and required members explicitly.
// The structured schema drops both when they are empty.
var noArgumentsSchema = json.RawMessage(`{"type":"object","properties":{},"required":[]}`)

func withNoArguments() mcp.ToolOption {
	return func(t *mcp.Tool) {
		t.InputSchema = mcp.ToolInputSchema{}
		t.RawInputSchema = noArgumentsSchema
	}
}

func compileSchema(tool mcp.Tool) (*jsonschema.Schema, error) {
	raw := tool.RawInputSchema
	if raw == nil {
		var err error
		if raw, err = json.Marshal(tool.InputSchema); err != nil {
			return nil, err
		}
	}
	url := "mem://tools/" + tool.Name + ".json"
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, bytes.NewReader(raw)); err != nil {
		return nil, err
	}
	return compiler.Compile(url)
}

// List returns the descriptors in their fixed order.
func (c *Catalog) List() []mcp.Tool {
	out := make([]mcp.Tool, len(c.tools))
	copy(out, c.tools)
	return out
}

// Find returns the descriptor for name.
func (c *Catalog) Find(name string) (mcp.Tool, bool) {
	for _, tool := range c.tools {
		if tool.Name == name {
			return tool, true
		}
	}
	return mcp.Tool{}, false
}

// Validate checks raw arguments against the named tool's schema and returns the
// decoded argument object. Absent arguments are treated as an empty object and
// properties the schema does not declare are ignored.
func (c *Catalog) Validate(name string, raw json.RawMessage) (map[string]any, *RPCError) {
	tool, ok := c.Find(name)
	if !ok {
		return nil, toolNotFound(name)
	}

	args := map[string]any{}
	if len(raw) > 0 && !bytes.Equal(raw, nullID) {
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return nil, invalidParams("Invalid arguments", err.Error())
		}
		obj, ok := decoded.(map[string]any)
		if !ok {
			return nil, invalidParams("Invalid arguments", "arguments must be an object")
		}
		args = obj
	}

	for _, key := range tool.InputSchema.Required {
		if _, ok := args[key]; !ok {
			return nil, invalidParams(fmt.Sprintf("Missing '%s' parameter", key), nil)
		}
	}

	if err := c.schemas[name].Validate(args); err != nil {
		return nil, invalidParams("Invalid arguments", validationDetail(err))
	}
	return args, nil
}

// validationDetail reduces a schema failure to its first leaf cause.
func validationDetail(err error) string {
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return err.Error()
	}
	leaf := verr
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}
	location := strings.TrimPrefix(leaf.InstanceLocation, "/")
	if location == "" {
		return leaf.Message
	}
	return fmt.Sprintf("%s: %s", location, leaf.Message)
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

func boolArg(args map[string]any, key string) bool {
	b, _ := args[key].(bool)
	return b
}
