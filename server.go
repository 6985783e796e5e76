package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// MCPServer routes MCP protocol envelopes arriving over stdio to the tool
// dispatcher and resource handlers.
type MCPServer struct {
	gateway      Gateway
	adapter      DBAdapter
	databaseName string
	insights     *InsightStore
	logger       *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	writeMu sync.Mutex
	out     io.Writer
}

func NewMCPServer(ctx context.Context, gateway Gateway, adapter DBAdapter, databaseName string, logger *zap.Logger) *MCPServer {
	serverCtx, serverCancel := context.WithCancel(ctx)

	return &MCPServer{
		gateway:      gateway,
		adapter:      adapter,
		databaseName: databaseName,
		insights:     NewInsightStore(),
		logger:       logger,
		ctx:          serverCtx,
		cancel:       serverCancel,
		out:          os.Stdout,
	}
}

// Run reads newline-delimited messages from in until EOF or cancellation.
// Each message is handled in its own goroutine, so responses are written as
// handlers complete and may not match arrival order; clients re-associate
// them by correlation id.
func (s *MCPServer) Run(in io.Reader) error {
	reader := bufio.NewReader(in)
	var handlers sync.WaitGroup

	for {
		select {
		case <-s.ctx.Done():
			handlers.Wait()
			return s.ctx.Err()
		default:
		}

		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				handlers.Wait()
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		handlers.Add(1)
		go func(data []byte) {
			defer handlers.Done()
			if response := s.handleMessage(data); response != nil {
				s.writeResponse(response)
			}
		}([]byte(line))
	}
}

func (s *MCPServer) writeResponse(response *JSONRPCResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		s.logger.Error("failed to marshal response", zap.Error(err))
		return
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	fmt.Fprintln(s.out, string(data))
}

func (s *MCPServer) handleMessage(data []byte) *JSONRPCResponse {
	var req JSONRPCRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return &JSONRPCResponse{
			JSONRPC: "2.0",
			ID:      UnknownID,
			Error: &Error{
				Code:    ParseError,
				Message: "Parse error",
				Data:    err.Error(),
			},
		}
	}

	if req.JSONRPC != "2.0" {
		return &JSONRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &Error{
				Code:    InvalidRequest,
				Message: "Invalid JSON-RPC version",
			},
		}
	}

	return s.handleRequest(&req)
}

func (s *MCPServer) handleRequest(req *JSONRPCRequest) *JSONRPCResponse {
	var result any
	var err *Error

	switch req.Method {
	case MethodListTools:
		result, err = s.handleListTools()
	case MethodListResources:
		result, err = s.handleListResources()
	case MethodListResourceTemplates:
		result, err = s.handleListResourceTemplates()
	case MethodReadResource:
		result, err = s.handleReadResource(req.Params)
	case MethodCallTool:
		result, err = s.handleCallTool(req.Params)
	default:
		err = &Error{
			Code:    MethodNotFound,
			Message: fmt.Sprintf("Method not found: %s", req.Method),
		}
	}

	// Exactly one of result and error goes out.
	if err != nil {
		return &JSONRPCResponse{JSONRPC: "2.0", ID: req.ID, Error: err}
	}
	return &JSONRPCResponse{JSONRPC: "2.0", ID: req.ID, Result: result}
}

// Shutdown stops accepting new messages.
func (s *MCPServer) Shutdown() {
	if s.cancel != nil {
		s.cancel()
	}
}
