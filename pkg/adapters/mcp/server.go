// Package mcp exposes the single-request workflow path as a Model Context Protocol server.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/aretw0/tper/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
)

// ToolName is the MCP tool that runs one request.
const ToolName = "run_workflow"

// WorkflowURI is the resource describing the workflow.
const WorkflowURI = "tper://workflow"

// Executor runs one request through a fresh workflow instance.
type Executor interface {
	RunOne(ctx context.Context, request string) (domain.Result, error)
}

// Server wraps an Executor and exposes it as an MCP Server.
type Server struct {
	exec      Executor
	logger    *slog.Logger
	mcpServer *server.MCPServer

	// Calls are serialized so at most one workflow instance is live.
	mu sync.Mutex
}

type runArgs struct {
	Request string `mapstructure:"request"`
}

type workflowInfo struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Phases      []domain.Phase `json:"phases"`
	Final       domain.Phase   `json:"final_phase"`
}

// NewServer creates a new MCP Server instance.
func NewServer(exec Executor, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		exec:      exec,
		logger:    logger,
		mcpServer: server.NewMCPServer("tper-mcp", version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the MCP SSE transport on port until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(fmt.Sprintf("http://localhost:%d", port)))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	tool := mcp.NewTool(ToolName,
		mcp.WithDescription("Run a request through the Think-Plan-Execute-Review workflow and return the final result."),
		mcp.WithString("request", mcp.Required(), mcp.Description("Free-form request to work on")),
	)
	s.mcpServer.AddTool(tool, s.handleRun)
}

func (s *Server) handleRun(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args runArgs
	if err := mapstructure.Decode(req.GetArguments(), &args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	request, err := domain.ValidateRequest(args.Request)
	if err != nil {
		return mcp.NewToolResultError("Please enter a valid request."), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.exec.RunOne(ctx, request)
	if err != nil {
		s.logger.Warn("MCP run failed", "err", err)
		return mcp.NewToolResultError(fmt.Sprintf("Application error: %v", err)), nil
	}
	return mcp.NewToolResultText(result.String()), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(WorkflowURI, "Workflow Definition",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data, err := describeWorkflow()
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      WorkflowURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}

func describeWorkflow() ([]byte, error) {
	return json.Marshal(workflowInfo{
		Name:        "TPER_Workflow",
		Description: "Think-Plan-Execute-Review Framework",
		Phases:      domain.Phases,
		Final:       domain.PhaseSynthesize,
	})
}
