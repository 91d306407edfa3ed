package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/expect"
	"github.com/aretw0/expect/pkg/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	patternsURI = "expect://patterns"
	schemasURI  = "expect://schemas/"
)

// ValidateResponse is the structured output of the validate tool.
type ValidateResponse struct {
	OK      bool          `json:"ok" jsonschema_description:"True when the value satisfies the schema"`
	Message string        `json:"message" jsonschema_description:"Human-readable outcome"`
	Path    string        `json:"path,omitempty" jsonschema_description:"Dotted path of the failing field"`
	Result  schema.Result `json:"result" jsonschema_description:"Full validation result with its cause chain"`
}

// ExpandResponse is the structured output of the expand_pattern tool.
type ExpandResponse struct {
	Format   string `json:"format"`
	Expanded string `json:"expanded" jsonschema_description:"The format with every known <name> substituted"`
	Valid    bool   `json:"valid" jsonschema_description:"Whether the expanded text compiles"`
	Error    string `json:"error,omitempty"`
}

// LookupResponse is the structured output of the lookup_pattern tool.
type LookupResponse struct {
	Name   string `json:"name"`
	Source string `json:"source,omitempty"`
	Found  bool   `json:"found"`
}

// Server wraps the Validator and exposes it as an MCP Server.
type Server struct {
	validator *expect.Validator
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(v *expect.Validator) *Server {
	s := &Server{
		validator: v,
		mcpServer: server.NewMCPServer("expect-mcp", strings.TrimSpace(expect.Version),
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
		),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and shuts it down
// when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		slog.Info("shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	validateTool := mcp.NewTool("validate",
		mcp.WithDescription("Validate a JSON value against a schema. Pass the schema inline (YAML or JSON) or the name of a stored schema."),
		mcp.WithString("value", mcp.Required(), mcp.Description("The value to check, as JSON")),
		mcp.WithString("schema", mcp.Description("Inline schema document (YAML or JSON)")),
		mcp.WithString("schema_name", mcp.Description("Name of a stored schema")),
		mcp.WithOutputSchema[ValidateResponse](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidate))

	expandTool := mcp.NewTool("expand_pattern",
		mcp.WithDescription("Expand <name> placeholders in a regular-expression format using the pattern registry."),
		mcp.WithString("format", mcp.Required(), mcp.Description("Format such as <mobile_number>|<citizen_id>")),
		mcp.WithOutputSchema[ExpandResponse](),
	)
	s.mcpServer.AddTool(expandTool, mcp.NewStructuredToolHandler(s.handleExpand))

	lookupTool := mcp.NewTool("lookup_pattern",
		mcp.WithDescription("Return the regular expression registered under a pattern name."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Pattern name, e.g. email")),
		mcp.WithOutputSchema[LookupResponse](),
	)
	s.mcpServer.AddTool(lookupTool, mcp.NewStructuredToolHandler(s.handleLookup))

	s.mcpServer.AddTool(mcp.NewTool("list_schemas",
		mcp.WithDescription("List the names of stored schemas."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		names, err := s.validator.ListSchemas(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(names)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ValidateResponse, error) {
	rawValue, _ := args["value"].(string)
	inline, _ := args["schema"].(string)
	name, _ := args["schema_name"].(string)

	if (inline == "") == (name == "") {
		return ValidateResponse{}, errors.New(`set exactly one of "schema" and "schema_name"`)
	}

	dec := json.NewDecoder(strings.NewReader(rawValue))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return ValidateResponse{}, fmt.Errorf("value is not valid JSON: %w", err)
	}

	var res schema.Result
	if inline != "" {
		res = s.validator.ValidateRaw(ctx, value, inline)
	} else {
		var err error
		res, err = s.validator.ValidateNamed(ctx, name, value)
		if err != nil {
			return ValidateResponse{}, fmt.Errorf("schema %q: %w", name, err)
		}
	}

	return ValidateResponse{
		OK:      res.OK(),
		Message: res.String(),
		Path:    res.Path(),
		Result:  res,
	}, nil
}

func (s *Server) handleExpand(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ExpandResponse, error) {
	format, _ := args["format"].(string)
	resp := ExpandResponse{
		Format:   format,
		Expanded: s.validator.ExpandFormat(format),
		Valid:    true,
	}
	if _, err := s.validator.CompilePattern(format); err != nil {
		resp.Valid = false
		resp.Error = err.Error()
	}
	return resp, nil
}

func (s *Server) handleLookup(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (LookupResponse, error) {
	name, _ := args["name"].(string)
	src, ok := s.validator.LookupPattern(name)
	return LookupResponse{Name: name, Source: src, Found: ok}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(patternsURI, "Pattern Registry",
		mcp.WithResourceDescription("Every registered pattern name and its regular expression"),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      patternsURI,
				MIMEType: "application/json",
				Text:     s.patternsJSON(),
			},
		}, nil
	})

	s.mcpServer.AddResourceTemplate(mcp.NewResourceTemplate(schemasURI+"{name}", "Stored Schema",
		mcp.WithTemplateDescription("A stored schema document, as written"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return s.readSchema(ctx, request.Params.URI)
	})
}

func (s *Server) patternsJSON() string {
	reg := s.validator.Registry()
	table := make(map[string]string, reg.Len())
	for _, name := range reg.Names() {
		table[name], _ = reg.Lookup(name)
	}
	jsonBytes, _ := json.Marshal(table)
	return string(jsonBytes)
}

func (s *Server) readSchema(ctx context.Context, uri string) ([]mcp.ResourceContents, error) {
	name := strings.TrimPrefix(uri, schemasURI)
	doc, err := s.validator.SchemaDocument(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema %q: %w", name, err)
	}

	mime := "application/yaml"
	if trimmed := strings.TrimSpace(string(doc)); strings.HasPrefix(trimmed, "{") {
		mime = "application/json"
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: mime,
			Text:     string(doc),
		},
	}, nil
}
