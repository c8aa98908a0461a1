// Package rpc exposes the index and analyzer to an editor host over
// newline-delimited JSON-RPC on stdio. The host drives everything:
// a rebuild request replaces the symbol table, and document requests
// are answered against whatever table is currently published.
package rpc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"ucindex/internal/analyzer"
	"ucindex/internal/index"
	"ucindex/internal/logging"
)

// Server handles JSON-RPC communication for one index.
type Server struct {
	name    string
	version string
	index   *index.Index
	logger  *slog.Logger
}

// NewServer creates a server around an index.
func NewServer(name, version string, idx *index.Index, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Server{
		name:    name,
		version: version,
		index:   idx,
		logger:  logger,
	}
}

// Run serves requests from stdin until EOF.
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve processes newline-delimited requests from r, writing responses
// to w. Returns on EOF or a write failure.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	reader := bufio.NewReader(r)

	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("reading request: %w", err)
		}

		if len(line) == 0 || string(line) == "\n" {
			continue
		}

		response := s.handleMessage(line)
		if response == nil {
			continue
		}
		if err := s.writeResponse(w, response); err != nil {
			return fmt.Errorf("writing response: %w", err)
		}
	}
}

func (s *Server) handleMessage(data []byte) *Response {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		s.logger.Error("parse error", "error", err)
		return &Response{
			JSONRPC: "2.0",
			Error: &Error{
				Code:    ParseError,
				Message: "Parse error",
				Data:    err.Error(),
			},
		}
	}

	s.logger.Debug("received request", "method", req.Method, "id", req.ID)

	switch req.Method {
	case "initialize":
		return s.handleInitialize(&req)
	case "initialized":
		// Notification, no response needed
		return nil
	case "ping":
		return &Response{JSONRPC: "2.0", ID: req.ID, Result: map[string]any{}}
	case "index/rebuild":
		return s.handleRebuild(&req)
	case "document/outline":
		return s.handleOutline(&req)
	case "document/tokens":
		return s.handleTokens(&req)
	case "completion/list":
		return s.handleCompletion(&req)
	default:
		return &Response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &Error{
				Code:    MethodNotFound,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

func (s *Server) handleInitialize(req *Request) *Response {
	result := InitializeResult{
		ServerInfo: ServerInfo{
			Name:    s.name,
			Version: s.version,
		},
		Capabilities: Capabilities{
			Outline:         true,
			SemanticTokens:  true,
			Completion:      true,
			TokenCategories: analyzer.TokenCategories(),
		},
	}
	return &Response{JSONRPC: "2.0", ID: req.ID, Result: result}
}

func (s *Server) handleRebuild(req *Request) *Response {
	var params RebuildParams
	if err := json.Unmarshal(req.Params, &params); err != nil || params.Root == "" {
		return invalidParams(req, "root is required")
	}

	table, err := s.index.Rebuild(params.Root)
	if err != nil {
		return &Response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &Error{
				Code:    InternalError,
				Message: "Rebuild failed",
				Data:    err.Error(),
			},
		}
	}

	return &Response{JSONRPC: "2.0", ID: req.ID, Result: RebuildResult{Classes: table.Len()}}
}

func (s *Server) handleOutline(req *Request) *Response {
	var params DocumentParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return invalidParams(req, "text is required")
	}

	entries := analyzer.Outline(params.Text)
	if entries == nil {
		entries = []analyzer.OutlineEntry{}
	}
	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  map[string]any{"entries": entries},
	}
}

func (s *Server) handleTokens(req *Request) *Response {
	var params DocumentParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return invalidParams(req, "text is required")
	}

	data := analyzer.EncodeTokens(analyzer.Highlights(params.Text, s.index.Snapshot()))
	if data == nil {
		data = []uint32{}
	}
	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  map[string]any{"data": data},
	}
}

func (s *Server) handleCompletion(req *Request) *Response {
	items := analyzer.Completions(s.index.Snapshot())
	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  map[string]any{"items": items},
	}
}

func invalidParams(req *Request, detail string) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Error: &Error{
			Code:    InvalidParams,
			Message: "Invalid params",
			Data:    detail,
		},
	}
}

func (s *Server) writeResponse(w io.Writer, resp *Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
