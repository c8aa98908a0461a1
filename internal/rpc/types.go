package rpc

import "encoding/json"

// JSON-RPC 2.0 error codes
const (
	ParseError     = -32700
	InvalidRequest = -32600
	MethodNotFound = -32601
	InvalidParams  = -32602
	InternalError  = -32603
)

// Request is an incoming JSON-RPC request or notification.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response is an outgoing JSON-RPC response.
type Response struct {
	JSONRPC string `json:"jsonrpc"`
	ID      any    `json:"id,omitempty"`
	Result  any    `json:"result,omitempty"`
	Error   *Error `json:"error,omitempty"`
}

// Error is a JSON-RPC error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// InitializeResult announces server identity and capabilities.
type InitializeResult struct {
	ServerInfo   ServerInfo   `json:"serverInfo"`
	Capabilities Capabilities `json:"capabilities"`
}

// ServerInfo identifies the server implementation.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Capabilities describes what the server can produce. TokenCategories
// is the fixed-order legend for decoding token streams.
type Capabilities struct {
	Outline         bool     `json:"outline"`
	SemanticTokens  bool     `json:"semanticTokens"`
	Completion      bool     `json:"completion"`
	TokenCategories []string `json:"tokenCategories"`
}

// RebuildParams names the package tree root to index.
type RebuildParams struct {
	Root string `json:"root"`
}

// RebuildResult reports the size of the freshly published table.
type RebuildResult struct {
	Classes int `json:"classes"`
}

// DocumentParams carries a document's full text for analysis.
type DocumentParams struct {
	Text string `json:"text"`
}
