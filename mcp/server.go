package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/vegasq/agenttools/tools"
)

// Tool is one callable tool exposed by the server. Handler receives the
// decoded arguments object and returns the uniform tool result; it must
// not panic on malformed arguments.
type Tool struct {
	Name        string
	Description string
	InputSchema map[string]interface{}
	Handler     func(args map[string]interface{}) tools.Result
}

// Server exposes registered tools over newline-delimited JSON-RPC.
type Server struct {
	name    string
	version string
	log     *logrus.Entry

	mu    sync.RWMutex
	tools map[string]Tool
	order []string
}

// NewServer creates a tool server with the given identity.
func NewServer(name, version string) *Server {
	return &Server{
		name:    name,
		version: version,
		log:     logrus.WithField("component", "mcp-server"),
		tools:   make(map[string]Tool),
	}
}

// Register adds a tool. Registering a duplicate name is an error.
func (s *Server) Register(tool Tool) error {
	if tool.Name == "" {
		return fmt.Errorf("tool name is required")
	}
	if tool.Handler == nil {
		return fmt.Errorf("tool %s has no handler", tool.Name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tools[tool.Name]; exists {
		return fmt.Errorf("tool %s already registered", tool.Name)
	}
	s.tools[tool.Name] = tool
	s.order = append(s.order, tool.Name)
	return nil
}

// ServeStdio serves requests on stdin/stdout until EOF or ctx cancel.
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve reads one JSON-RPC message per line from r and writes responses
// to w. Notifications (messages without an id) produce no response.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	encoder := json.NewEncoder(w)

	var writeMu sync.Mutex
	respond := func(resp *response) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := encoder.Encode(resp); err != nil {
			s.log.WithError(err).Error("failed to write response")
		}
	}

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req request
		if err := json.Unmarshal(line, &req); err != nil {
			s.log.WithError(err).Warn("dropping malformed message")
			continue
		}
		if req.ID == nil {
			// Notification; nothing to answer.
			continue
		}
		respond(s.handle(&req))
	}
	return scanner.Err()
}

func (s *Server) handle(req *request) *response {
	resp := &response{JSONRPC: "2.0", ID: req.ID}

	switch req.Method {
	case "initialize":
		resp.Result = map[string]interface{}{
			"protocolVersion": ProtocolVersion,
			"capabilities":    map[string]interface{}{"tools": map[string]interface{}{}},
			"serverInfo": map[string]interface{}{
				"name":    s.name,
				"version": s.version,
			},
		}
	case "ping":
		resp.Result = map[string]interface{}{}
	case "tools/list":
		resp.Result = map[string]interface{}{"tools": s.listTools()}
	case "tools/call":
		result, rpcErr := s.callTool(req.Params)
		if rpcErr != nil {
			resp.Error = rpcErr
		} else {
			resp.Result = result
		}
	default:
		resp.Error = &rpcError{Code: codeMethodNotFound, Message: "method not found: " + req.Method}
	}
	return resp
}

func (s *Server) listTools() []ToolInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]ToolInfo, 0, len(s.order))
	for _, name := range s.order {
		tool := s.tools[name]
		infos = append(infos, ToolInfo{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: tool.InputSchema,
		})
	}
	return infos
}

func (s *Server) callTool(params json.RawMessage) (*callResult, *rpcError) {
	var call struct {
		Name      string                 `json:"name"`
		Arguments map[string]interface{} `json:"arguments"`
	}
	if err := json.Unmarshal(params, &call); err != nil {
		return nil, &rpcError{Code: codeInvalidParams, Message: "invalid tools/call params"}
	}

	s.mu.RLock()
	tool, ok := s.tools[call.Name]
	s.mu.RUnlock()
	if !ok {
		return nil, &rpcError{Code: codeInvalidParams, Message: "unknown tool: " + call.Name}
	}

	s.log.WithField("tool", call.Name).Debug("tool call")
	result := tool.Handler(call.Arguments)

	text, err := json.Marshal(result)
	if err != nil {
		return nil, &rpcError{Code: codeInternalError, Message: "failed to encode tool result"}
	}
	return &callResult{
		Content: []textContent{{Type: "text", Text: string(text)}},
		IsError: result.IsError(),
	}, nil
}
