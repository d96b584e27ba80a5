// Package mcp exposes the script façades as Model Context Protocol tools.
// Every operation becomes one tool named "<facade>_<op>", e.g. map_addBranch.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sz10101/vym/internal/logging"
	"github.com/sz10101/vym/pkg/script"
)

const (
	opsURI  = "vym://ops"
	mapsURI = "vym://maps"
)

// Server wraps the application façade and exposes it as an MCP Server.
// Tool calls are serialized.
type Server struct {
	app       *script.App
	logger    *slog.Logger
	mcpServer *server.MCPServer

	mu sync.Mutex
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// NewServer creates a new MCP Server instance.
func NewServer(app *script.App, version string, opts ...Option) *Server {
	s := &Server{
		app:       app,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("vym-mcp", strings.TrimSpace(version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
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
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

// ToolName is the MCP tool name of an operation.
func ToolName(facade, op string) string {
	return facade + "_" + op
}

func (s *Server) registerTools() {
	for _, spec := range script.AppOperations() {
		s.mcpServer.AddTool(newTool("vym", spec), s.handler(spec, func(app *script.App) caller { return app }))
	}
	for _, spec := range script.MapOperations() {
		s.mcpServer.AddTool(newTool("map", spec), s.handler(spec, func(app *script.App) caller {
			if m := app.CurrentMap(); m != nil {
				return m
			}
			return nil
		}))
	}
}

func newTool(facade string, spec script.Spec) mcp.Tool {
	desc := spec.Doc
	if spec.Selection {
		desc += " Requires a selected branch."
	}
	opts := []mcp.ToolOption{mcp.WithDescription(fmt.Sprintf("%s.%s: %s", facade, spec.Signature(), desc))}
	for _, p := range spec.Params {
		props := []mcp.PropertyOption{mcp.Description(p.Type.String())}
		if !p.Optional {
			props = append(props, mcp.Required())
		}
		switch p.Type {
		case script.Int, script.Float:
			opts = append(opts, mcp.WithNumber(p.Name, props...))
		case script.Bool:
			opts = append(opts, mcp.WithBoolean(p.Name, props...))
		case script.StringList:
			props = append(props, mcp.WithStringItems())
			opts = append(opts, mcp.WithArray(p.Name, props...))
		default:
			opts = append(opts, mcp.WithString(p.Name, props...))
		}
	}
	return mcp.NewTool(ToolName(facade, spec.Name), opts...)
}

type caller interface {
	CallNamed(ctx context.Context, name string, named map[string]any) any
}

func (s *Server) handler(spec script.Spec, pick func(*script.App) caller) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		errs := &script.Errors{}

		s.mu.Lock()
		target := pick(s.app.Bind(errs))
		if target == nil {
			s.mu.Unlock()
			return mcp.NewToolResultError("ReferenceError: No map opened"), nil
		}
		res := target.CallNamed(ctx, spec.Name, request.GetArguments())
		s.mu.Unlock()

		if errs.Len() > 0 {
			msgs := make([]string, errs.Len())
			for i, se := range errs.List() {
				msgs[i] = se.Error()
			}
			s.logger.Debug("MCP tool reported errors", "op", spec.Name, "count", len(msgs))
			return mcp.NewToolResultError(strings.Join(msgs, "\n")), nil
		}

		switch v := res.(type) {
		case nil:
			return mcp.NewToolResultText("ok"), nil
		case *script.Map:
			return mcp.NewToolResultText(fmt.Sprintf("map %q", v.Model().FileName())), nil
		default:
			return mcp.NewToolResultText(fmt.Sprint(v)), nil
		}
	}
}

type mapEntry struct {
	Index    int    `json:"index"`
	FileName string `json:"fileName"`
	Title    string `json:"title"`
	Current  bool   `json:"current"`
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(opsURI, "Script operation reference",
		mcp.WithMIMEType("text/markdown"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: opsURI, MIMEType: "text/markdown", Text: script.Reference()},
		}, nil
	})

	s.mcpServer.AddResource(mcp.NewResource(mapsURI, "Open maps",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		s.mu.Lock()
		host := s.app.Host()
		current := host.CurrentModel()
		var entries []mapEntry
		for i, m := range host.Models() {
			entries = append(entries, mapEntry{Index: i, FileName: m.FileName(), Title: m.Title(), Current: m == current})
		}
		s.mu.Unlock()

		jsonBytes, err := json.Marshal(entries)
		if err != nil {
			return nil, fmt.Errorf("failed to encode maps: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: mapsURI, MIMEType: "application/json", Text: string(jsonBytes)},
		}, nil
	})
}
