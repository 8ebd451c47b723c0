package mcp

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

const jsonRPCVersion = "2.0"

var nullID = json.RawMessage("null")

// Request is one decoded JSON-RPC request or notification.
type Request struct {
	JSONRPC string
	ID      json.RawMessage
	Method  string
	Params  json.RawMessage
}

// IsNotification reports whether the request carries no id and expects no response.
func (r *Request) IsNotification() bool {
	return len(r.ID) == 0 || bytes.Equal(r.ID, nullID)
}

// Response is a JSON-RPC response. Exactly one of Result and Error is set.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// DecodeFailure describes a line that could not be decoded into a Request.
// ID holds the request id when it could still be recovered.
type DecodeFailure struct {
	ID  json.RawMessage
	Err error
}

func (f *DecodeFailure) Error() string {
	return fmt.Sprintf("decode request: %v", f.Err)
}

func (f *DecodeFailure) Unwrap() error {
	return f.Err
}

// Decode parses one channel line. Any failure is returned as a *DecodeFailure.
func Decode(line []byte) (*Request, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(line, &envelope); err != nil {
		return nil, &DecodeFailure{Err: err}
	}

	id := envelope["id"]
	if !validID(id) {
		return nil, &DecodeFailure{Err: fmt.Errorf("id must be a string, number or null")}
	}

	rawMethod, ok := envelope["method"]
	if !ok {
		return nil, &DecodeFailure{ID: id, Err: fmt.Errorf("missing method")}
	}
	var method string
	if err := json.Unmarshal(rawMethod, &method); err != nil || method == "" {
		return nil, &DecodeFailure{ID: id, Err: fmt.Errorf("method must be a non-empty string")}
	}

	var version string
	if raw, ok := envelope["jsonrpc"]; ok {
		_ = json.Unmarshal(raw, &version)
	}

	params := envelope["params"]
	if bytes.Equal(params, nullID) {
		params = nil
	}

	return &Request{
		JSONRPC: version,
		ID:      id,
		Method:  method,
		Params:  params,
	}, nil
}

func validID(id json.RawMessage) bool {
	if len(id) == 0 || bytes.Equal(id, nullID) {
		return true
	}
	switch id[0] {
	case '"', '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return true
	}
	return false
}

// Encode renders a response as a single line terminated by '\n'. A result that
// cannot be serialized is replaced by an internal error for the same id.
func Encode(resp *Response) []byte {
	resp.JSONRPC = jsonRPCVersion
	if len(resp.ID) == 0 {
		resp.ID = nullID
	}

	line, err := marshalLine(resp)
	if err != nil {
		line, _ = marshalLine(&Response{
			JSONRPC: jsonRPCVersion,
			ID:      resp.ID,
			Error:   NewRPCError(mcp.INTERNAL_ERROR, "Internal error", err.Error()),
		})
	}
	return line
}

func marshalLine(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
