package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"time"

	"obsidian-cli/internal/logging"
	"obsidian-cli/internal/vault"
)

type toolHandler func(ctx context.Context, args map[string]any) Outcome

// Executor validates tool arguments and runs the matching vault operation.
type Executor struct {
	catalog  *Catalog
	vault    *vault.Vault
	logger   *logging.AppLogger
	version  string
	handlers map[string]toolHandler
}

// NewExecutor wires the catalog's tools to vault operations.
func NewExecutor(catalog *Catalog, v *vault.Vault, logger *logging.AppLogger, version string) *Executor {
	e := &Executor{
		catalog: catalog,
		vault:   v,
		logger:  logger,
		version: version,
	}
	e.handlers = map[string]toolHandler{
		ToolCreateNote:     e.createNote,
		ToolFindNotes:      e.findNotes,
		ToolGetNoteContent: e.getNoteContent,
		ToolGetVaultInfo:   e.getVaultInfo,
	}
	return e
}

// Execute runs the named tool. Protocol faults come back as *RPCError; vault
// failures are folded into the returned ToolResult.
func (e *Executor) Execute(ctx context.Context, name string, rawArgs json.RawMessage) (result *ToolResult, rpcErr *RPCError) {
	handler, ok := e.handlers[name]
	if !ok {
		return nil, toolNotFound(name)
	}

	args, rpcErr := e.catalog.Validate(name, rawArgs)
	if rpcErr != nil {
		return nil, rpcErr
	}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Tool handler panicked", "tool", name, "panic", r, "stack", string(debug.Stack()))
			result = nil
			rpcErr = internalError(fmt.Sprintf("%s: %v", name, r))
		}
	}()

	start := time.Now()
	outcome := handler(ctx, args)
	e.logger.LogPerformance("tool "+name, start)
	if outcome.Status == StatusError {
		e.logger.Debug("Tool reported failure", "tool", name, "exit_code", outcome.ExitCode, "text", outcome.Text)
	}

	return toolResult(name, outcome), nil
}
