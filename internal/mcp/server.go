package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"obsidian-cli/internal/logging"
	"obsidian-cli/internal/vault"
)

const (
	// ProtocolVersion is the MCP revision announced by initialize.
	ProtocolVersion = "2024-11-05"
	// ServerName is reported in serverInfo.
	ServerName = "obsidian-cli"

	methodShutdown = "shutdown"
	methodExit     = "exit"
)

// State is the dispatcher lifecycle state.
type State int

const (
	StateIdle State = iota
	StateServing
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateServing:
		return "serving"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// MethodHandler answers one JSON-RPC method.
type MethodHandler func(ctx context.Context, params json.RawMessage) (any, *RPCError)

// Server dispatches JSON-RPC requests read from a line channel.
type Server struct {
	vault    *vault.Vault
	catalog  *Catalog
	executor *Executor
	logger   *logging.AppLogger
	version  string
	methods  map[string]MethodHandler

	mu    sync.Mutex
	state State
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. It must not write to the protocol stream.
func WithLogger(l *logging.AppLogger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithVersion sets the version reported by initialize and get_vault_info.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = version
	}
}

// NewServer builds a server bound to an already resolved vault.
func NewServer(v *vault.Vault, opts ...Option) (*Server, error) {
	if v == nil {
		return nil, errors.New("vault is required")
	}

	s := &Server{
		vault:   v,
		version: "dev",
		state:   StateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.GetDefault()
	}
	s.logger = s.logger.With("component", "mcp")

	catalog, err := NewCatalog()
	if err != nil {
		return nil, err
	}
	s.catalog = catalog
	s.executor = NewExecutor(catalog, v, s.logger, s.version)

	s.methods = map[string]MethodHandler{
		string(mcp.MethodInitialize):    s.handleInitialize,
		string(mcp.MethodPing):          s.handlePing,
		string(mcp.MethodToolsList):     s.handleToolsList,
		string(mcp.MethodToolsCall):     s.handleToolsCall,
		string(mcp.MethodResourcesList): s.handleResourcesList,
		string(mcp.MethodResourcesRead): s.handleResourcesRead,
		string(mcp.MethodPromptsList):   s.handlePromptsList,
		string(mcp.MethodPromptsGet):    s.handlePromptsGet,
		methodShutdown:                  s.handlePing,
	}

	s.logger.Debug("MCP server created", "vault", v.Path, "version", s.version)
	return s, nil
}

// State returns the current lifecycle state.
func (s *Server) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Server) setState(next State) {
	s.mu.Lock()
	prev := s.state
	s.state = next
	s.mu.Unlock()

	if prev != next {
		s.logger.LogStateTransition("mcp", prev.String(), next.String())
	}
}

// Serve reads requests from in and writes responses to out, one per line, until
// end of input, a shutdown or exit request, or context cancellation. End of
// input returns nil.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	if s.State() == StateClosed {
		return errors.New("server is closed")
	}
	s.setState(StateServing)
	defer s.setState(StateClosed)

	reader := bufio.NewReader(in)
	writer := bufio.NewWriter(out)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, readErr := reader.ReadBytes('\n')
		if len(bytes.TrimSpace(line)) > 0 {
			if resp := s.Handle(ctx, line); resp != nil {
				if _, err := writer.Write(resp); err != nil {
					return fmt.Errorf("failed to write response: %w", err)
				}
				if err := writer.Flush(); err != nil {
					return fmt.Errorf("failed to flush response: %w", err)
				}
			}
		}

		if s.State() == StateClosed {
			return nil
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				s.logger.Debug("MCP input closed")
				return nil
			}
			return fmt.Errorf("failed to read request: %w", readErr)
		}
	}
}

// Handle processes one line and returns the encoded response, or nil when the
// line was a notification.
func (s *Server) Handle(ctx context.Context, line []byte) []byte {
	start := time.Now()

	req, err := Decode(bytes.TrimSpace(line))
	if err != nil {
		var failure *DecodeFailure
		var id json.RawMessage
		if errors.As(err, &failure) {
			id = failure.ID
		}
		s.logger.Warn("Rejected malformed request", "error", err)
		return Encode(newError(id, parseError(err.Error())))
	}

	if req.Method == methodExit {
		s.setState(StateClosed)
		if req.IsNotification() {
			return nil
		}
		return Encode(newResult(req.ID, struct{}{}))
	}

	// Notifications are never answered, known or not.
	if req.IsNotification() {
		if req.Method == methodShutdown {
			s.setState(StateClosed)
		}
		s.logger.Debug("Notification received", "method", req.Method)
		return nil
	}

	handler, ok := s.methods[req.Method]

	var resp *Response
	if !ok {
		resp = newError(req.ID, methodNotFound(req.Method))
	} else {
		result, rpcErr := s.dispatch(ctx, handler, req)
		if rpcErr != nil {
			resp = newError(req.ID, rpcErr)
		} else {
			resp = newResult(req.ID, result)
		}
	}

	if req.Method == methodShutdown {
		s.setState(StateClosed)
	}

	s.logger.LogPerformance("mcp "+req.Method, start)
	return Encode(resp)
}

func (s *Server) dispatch(ctx context.Context, handler MethodHandler, req *Request) (result any, rpcErr *RPCError) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Method handler panicked", "method", req.Method, "panic", r)
			result = nil
			rpcErr = internalError(fmt.Sprintf("%s: %v", req.Method, r))
		}
	}()
	return handler(ctx, req.Params)
}

type listChanged struct {
	ListChanged bool `json:"listChanged"`
}

type capabilities struct {
	Tools     listChanged `json:"tools"`
	Resources listChanged `json:"resources"`
	Prompts   listChanged `json:"prompts"`
}

type initializeResult struct {
	ProtocolVersion string             `json:"protocolVersion"`
	Capabilities    capabilities       `json:"capabilities"`
	ServerInfo      mcp.Implementation `json:"serverInfo"`
}

func (s *Server) handleInitialize(_ context.Context, _ json.RawMessage) (any, *RPCError) {
	return initializeResult{
		ProtocolVersion: ProtocolVersion,
		ServerInfo: mcp.Implementation{
			Name:    ServerName,
			Version: s.version,
		},
	}, nil
}

func (s *Server) handlePing(_ context.Context, _ json.RawMessage) (any, *RPCError) {
	return struct{}{}, nil
}

func (s *Server) handleToolsList(_ context.Context, _ json.RawMessage) (any, *RPCError) {
	return mcp.ListToolsResult{Tools: s.catalog.List()}, nil
}

type callParams struct {
	Name      *string         `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

func (s *Server) handleToolsCall(ctx context.Context, params json.RawMessage) (any, *RPCError) {
	if len(params) == 0 {
		return nil, invalidParams("Missing params", nil)
	}
	var call callParams
	if err := json.Unmarshal(params, &call); err != nil {
		return nil, invalidParams("Invalid params", err.Error())
	}
	if call.Name == nil || *call.Name == "" {
		return nil, invalidParams("Missing tool name", nil)
	}

	result, rpcErr := s.executor.Execute(ctx, *call.Name, call.Arguments)
	if rpcErr != nil {
		return nil, rpcErr
	}
	return result, nil
}

func (s *Server) handleResourcesList(_ context.Context, _ json.RawMessage) (any, *RPCError) {
	return mcp.ListResourcesResult{Resources: []mcp.Resource{}}, nil
}

func (s *Server) handleResourcesRead(_ context.Context, _ json.RawMessage) (any, *RPCError) {
	return mcp.ReadResourceResult{Contents: []mcp.ResourceContents{}}, nil
}

func (s *Server) handlePromptsList(_ context.Context, _ json.RawMessage) (any, *RPCError) {
	return mcp.ListPromptsResult{Prompts: []mcp.Prompt{}}, nil
}

func (s *Server) handlePromptsGet(_ context.Context, _ json.RawMessage) (any, *RPCError) {
	return mcp.GetPromptResult{Messages: []mcp.PromptMessage{}}, nil
}
