// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"emistat/internal/contract"
)

// NewMCPServer initializes and configures the emistat MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Emigration Statistics Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_series ---
	s.AddTool(mcp.NewTool("get_series",
		mcp.WithDescription("List stored yearly emigration observations, optionally filtered by series key and year window."),
		mcp.WithString("dataset", mcp.Description("Dataset name (defaults to 'emigration').")),
		mcp.WithString("key", mcp.Description("Series key to filter by (e.g. 'total', 'usa').")),
		mcp.WithNumber("from_year", mcp.Description("Lower bound of the year window (inclusive).")),
		mcp.WithNumber("to_year", mcp.Description("Upper bound of the year window (inclusive).")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of rows returned.")),
	), h.handleGetSeries)

	// --- 2. Tool: get_chart ---
	s.AddTool(mcp.NewTool("get_chart",
		mcp.WithDescription("Reduce stored observations to one chart aggregation."),
		mcp.WithString("chart", mcp.Description("Chart kind (yearly, share, summary). Defaults to 'yearly'."), mcp.Enum("yearly", "share", "summary")),
		mcp.WithString("dataset", mcp.Description("Dataset name.")),
		mcp.WithString("key", mcp.Description("Series key to filter by.")),
		mcp.WithNumber("share_year", mcp.Description("Year for the share chart (required for chart=share).")),
		mcp.WithNumber("from_year", mcp.Description("Lower bound of the year window (inclusive).")),
		mcp.WithNumber("to_year", mcp.Description("Upper bound of the year window (inclusive).")),
	), h.handleGetChart)

	// --- 3. Tool: train_model ---
	s.AddTool(mcp.NewTool("train_model",
		mcp.WithDescription("Run the hyperparameter grid over one stored series and persist the winning configuration."),
		mcp.WithString("key", mcp.Description("Series key to train on."), mcp.Required()),
		mcp.WithString("dataset", mcp.Description("Dataset name.")),
		mcp.WithNumber("horizon", mcp.Description("Forecast horizon in years to store with the model.")),
		mcp.WithNumber("seed", mcp.Description("Seed for deterministic candidate scoring.")),
	), h.handleTrainModel)

	// --- 4. Tool: get_forecast ---
	s.AddTool(mcp.NewTool("get_forecast",
		mcp.WithDescription("Extrapolate one stored series and return the merged historical+forecast view."),
		mcp.WithString("key", mcp.Description("Series key to forecast."), mcp.Required()),
		mcp.WithString("dataset", mcp.Description("Dataset name.")),
		mcp.WithNumber("horizon", mcp.Description("Number of future years to predict.")),
		mcp.WithNumber("seed", mcp.Description("Seed used when training ad hoc.")),
		mcp.WithBoolean("train", mcp.Description("Train ad hoc instead of loading the stored model.")),
	), h.handleGetForecast)

	// --- 5. Tool: list_models ---
	s.AddTool(mcp.NewTool("list_models",
		mcp.WithDescription("List the stored trained-model records."),
		mcp.WithNumber("limit", mcp.Description("Limit the number of records returned.")),
	), h.handleListModels)

	return s
}

// StartMCPServer starts the emistat MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
