package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"emistat/core"
	"emistat/internal/contract"
	"emistat/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

// applyCommonArgs copies the filter arguments shared by most tools onto a
// cloned config.
func (h *toolHandler) applyCommonArgs(request mcp.CallToolRequest) *contract.Config {
	cfg := h.baseCfg.Clone()
	if d := request.GetString("dataset", ""); d != "" {
		cfg.Dataset = d
	}
	if k := request.GetString("key", ""); k != "" {
		cfg.SeriesKey = k
	}
	if y := request.GetInt("from_year", 0); y != 0 {
		cfg.FromYear = y
	}
	if y := request.GetInt("to_year", 0); y != 0 {
		cfg.ToYear = y
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}
	return cfg
}

func (h *toolHandler) handleGetSeries(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.applyCommonArgs(request)

	rows, _, err := core.GetSeriesResults(cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("series lookup failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(rows, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetChart(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.applyCommonArgs(request)
	if c := request.GetString("chart", ""); c != "" {
		cfg.Chart = schema.ChartKind(c)
	}
	cfg.ShareYear = request.GetInt("share_year", 0)

	if _, ok := schema.ValidChartKinds[cfg.Chart]; !ok {
		return mcp.NewToolResultError(fmt.Sprintf("invalid chart kind %q", cfg.Chart)), nil
	}
	if cfg.Chart == schema.ShareChart && cfg.ShareYear == 0 {
		return mcp.NewToolResultError("share_year is required for chart=share"), nil
	}

	if cfg.Chart == schema.SummaryChart {
		summaries, _, err := core.GetSummaryResults(cfg, h.mgr)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("chart aggregation failed: %v", err)), nil
		}
		jsonData, _ := json.MarshalIndent(summaries, "", "  ")
		return mcp.NewToolResultText(string(jsonData)), nil
	}

	result, _, err := core.GetChartResults(cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("chart aggregation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleTrainModel(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.applyCommonArgs(request)
	if hz := request.GetInt("horizon", 0); hz > 0 {
		cfg.Horizon = hz
	}
	cfg.Seed = request.GetInt("seed", cfg.Seed)

	if cfg.SeriesKey == "" {
		return mcp.NewToolResultError("key is required for training"), nil
	}
	if cfg.Horizon < 1 || cfg.Horizon > contract.MaxHorizonYears {
		return mcp.NewToolResultError(fmt.Sprintf("horizon must be between 1 and %d", contract.MaxHorizonYears)), nil
	}

	model, _, err := core.GetTrainResults(cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("training failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(model, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetForecast(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.applyCommonArgs(request)
	if hz := request.GetInt("horizon", 0); hz > 0 {
		cfg.Horizon = hz
	}
	cfg.Seed = request.GetInt("seed", cfg.Seed)
	cfg.TrainNew = request.GetBool("train", false)

	if cfg.SeriesKey == "" {
		return mcp.NewToolResultError("key is required for forecasting"), nil
	}
	if cfg.Horizon < 1 || cfg.Horizon > contract.MaxHorizonYears {
		return mcp.NewToolResultError(fmt.Sprintf("horizon must be between 1 and %d", contract.MaxHorizonYears)), nil
	}

	merged, configuration, _, err := core.GetForecastResults(cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("forecast failed: %v", err)), nil
	}

	payload := struct {
		Configuration schema.Configuration `json:"configuration"`
		Points        []schema.MergedPoint `json:"points"`
	}{configuration, merged}

	jsonData, _ := json.MarshalIndent(payload, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListModels(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.applyCommonArgs(request)

	models, _, err := core.GetModelsResults(cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("model listing failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(models, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
