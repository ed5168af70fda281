// Package mcptools exposes the sentiment gateway over the Model Context
// Protocol: three tools plus two informational resources, served on stdio.
package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/polarity-ml/polarity/internal/gateway"
)

const (
	SERVER_NAME    = "Sentiment Analyzer"
	SERVER_VERSION = "1.0.0"
)

// Server wires the gateway into an MCP server.
type Server struct {
	gateway *gateway.Gateway
}

func NewServer(gw *gateway.Gateway) *Server {
	return &Server{gateway: gw}
}

// Build assembles the MCP server with every tool and resource registered.
func (s *Server) Build() *server.MCPServer {
	srv := server.NewMCPServer(SERVER_NAME, SERVER_VERSION,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithRecovery(),
	)

	srv.AddTool(mcp.NewTool("analyze_sentiment",
		mcp.WithDescription("Analyze the sentiment of input text using a pretrained deep learning model. "+
			"Returns whether the sentiment is positive or negative. Useful for understanding the emotional "+
			"tone of customer feedback, social media posts, and reviews."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The text to analyze for sentiment"),
		),
	), s.handleAnalyze)

	srv.AddTool(mcp.NewTool("batch_analyze_sentiment",
		mcp.WithDescription(fmt.Sprintf("Analyze sentiment for multiple texts in parallel. Each entry "+
			"succeeds or fails on its own and the result list is aligned with the input order. "+
			"At most %d texts per batch.", s.gateway.MaxBatchSize())),
		mcp.WithArray("texts",
			mcp.Required(),
			mcp.Description("List of texts to analyze for sentiment"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	), s.handleBatchAnalyze)

	srv.AddTool(mcp.NewTool("check_api_health",
		mcp.WithDescription("Check if the sentiment analysis API is available and responding. "+
			"Always returns a status report, even when the API is down."),
	), s.handleCheckHealth)

	s.registerResources(srv)

	slog.Info("[MCPServer] Server assembled",
		slog.String("name", SERVER_NAME),
		slog.String("analyzer", s.gateway.BaseURL()))

	return srv
}

func (s *Server) handleAnalyze(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	outcome := s.gateway.Analyze(ctx, text)
	if !outcome.OK() {
		return mcp.NewToolResultError(outcome.Failure.Error()), nil
	}
	return jsonResult(outcome.Result)
}

func (s *Server) handleBatchAnalyze(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	texts, err := stringSlice(request.GetArguments()["texts"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(texts) > s.gateway.MaxBatchSize() {
		return mcp.NewToolResultError(fmt.Sprintf("Maximum %d texts allowed per batch", s.gateway.MaxBatchSize())), nil
	}

	outcomes := s.gateway.BatchAnalyze(ctx, texts)
	return jsonResult(outcomes)
}

func (s *Server) handleCheckHealth(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.gateway.CheckHealth(ctx))
}

// stringSlice converts the raw "texts" argument into []string. Stdio
// transports hand arrays over as []any, so each element is checked.
func stringSlice(raw any) ([]string, error) {
	if raw == nil {
		return nil, errors.New("texts must be an array of strings")
	}
	if texts, ok := raw.([]string); ok {
		return texts, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, errors.New("texts must be an array of strings")
	}
	texts := make([]string, len(items))
	for i, item := range items {
		text, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("texts[%d] is not a string", i)
		}
		texts[i] = text
	}
	return texts, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tool result: %w", err)
	}
	return mcp.NewToolResultText(string(payload)), nil
}
