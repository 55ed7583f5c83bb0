package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/forcekraft/internal/adapters/outbound/config"
	"github.com/abdidvp/forcekraft/internal/adapters/outbound/gitinfo"
	"github.com/abdidvp/forcekraft/internal/adapters/outbound/metadata"
	"github.com/abdidvp/forcekraft/internal/application"
	"github.com/abdidvp/forcekraft/internal/domain"
	"github.com/abdidvp/forcekraft/internal/domain/report"
)

var recordItems = mcplib.Items(map[string]any{"type": "object"})

// registerTools registers all forcekraft MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string) {
	// 1. salesforce_analyze_naming_conventions
	s.AddTool(
		mcplib.NewTool("salesforce_analyze_naming_conventions",
			mcplib.WithDescription("Check field API names against nCino naming conventions"),
			mcplib.WithArray("fields", recordItems,
				mcplib.Description("Field definitions (apiName or fullName, label, type, description)"),
			),
			mcplib.WithString("resource_id",
				mcplib.Description("Analyze "+URIFields+" instead of inline fields"),
			),
		),
		analyzeTool(projectPath, "fields", URIFields,
			func(md *application.Metadata) []domain.FieldRecord { return md.Fields },
			(*application.AnalysisService).AnalyzeFields,
		),
	)

	// 2. salesforce_analyze_validation_rules
	s.AddTool(
		mcplib.NewTool("salesforce_analyze_validation_rules",
			mcplib.WithDescription("Find bypass patterns in validation rule error condition formulas"),
			mcplib.WithArray("validation_rules", recordItems,
				mcplib.Description("Validation rules (apiName or fullName, active, description, errorConditionFormula)"),
			),
			mcplib.WithString("resource_id",
				mcplib.Description("Analyze "+URIValidationRules+" instead of inline rules"),
			),
		),
		analyzeTool(projectPath, "validation_rules", URIValidationRules,
			func(md *application.Metadata) []domain.ValidationRuleRecord { return md.ValidationRules },
			(*application.AnalysisService).AnalyzeValidationRules,
		),
	)

	// 3. salesforce_analyze_apex_triggers
	s.AddTool(
		mcplib.NewTool("salesforce_analyze_apex_triggers",
			mcplib.WithDescription("Find bypass patterns in Apex trigger source"),
			mcplib.WithArray("triggers", recordItems,
				mcplib.Description("Triggers (name, active, content)"),
			),
			mcplib.WithString("resource_id",
				mcplib.Description("Analyze "+URITriggers+" instead of inline triggers"),
			),
		),
		analyzeTool(projectPath, "triggers", URITriggers,
			func(md *application.Metadata) []domain.TriggerRecord { return md.Triggers },
			(*application.AnalysisService).AnalyzeTriggers,
		),
	)

	// 4. salesforce_analyze_flows
	s.AddTool(
		mcplib.NewTool("salesforce_analyze_flows",
			mcplib.WithDescription("Find bypass patterns in flow start and decision criteria"),
			mcplib.WithArray("flows", recordItems,
				mcplib.Description("Flows (name, active, elements with location and condition)"),
			),
			mcplib.WithString("resource_id",
				mcplib.Description("Analyze "+URIFlows+" instead of inline flows"),
			),
		),
		analyzeTool(projectPath, "flows", URIFlows,
			func(md *application.Metadata) []domain.FlowRecord { return md.Flows },
			(*application.AnalysisService).AnalyzeFlows,
		),
	)

	// 5. salesforce_generate_report
	s.AddTool(
		mcplib.NewTool("salesforce_generate_report",
			mcplib.WithDescription("Combine analysis results from the analyze tools into one report"),
			mcplib.WithObject("naming_results", mcplib.Description("Output of salesforce_analyze_naming_conventions")),
			mcplib.WithObject("validation_results", mcplib.Description("Output of salesforce_analyze_validation_rules")),
			mcplib.WithObject("trigger_results", mcplib.Description("Output of salesforce_analyze_apex_triggers")),
			mcplib.WithObject("flow_results", mcplib.Description("Output of salesforce_analyze_flows")),
			mcplib.WithString("object", mcplib.Description("Object the report is about (default "+domain.DefaultObject+")")),
		),
		handleGenerateReport(),
	)
}

func newService() *application.AnalysisService {
	return application.NewAnalysisService(config.New(), metadata.New(), gitinfo.New())
}

// analyzeTool builds a handler that runs analyze over records given inline
// under arg or, failing that, read from the resource at uri.
func analyzeTool[T, R any](
	projectPath, arg, uri string,
	pick func(*application.Metadata) []T,
	analyze func(*application.AnalysisService, []T) (R, error),
) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		records, err := toolRecords(projectPath, request, arg, uri, pick)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		result, err := analyze(newService(), records)
		if err != nil {
			mcpLog.Printf("%s: %v", request.Params.Name, err)
			return errorResult(fmt.Sprintf("analysis failed: %v", err)), nil
		}
		return jsonResult(result)
	}
}

func toolRecords[T any](
	projectPath string,
	request mcplib.CallToolRequest,
	arg, uri string,
	pick func(*application.Metadata) []T,
) ([]T, error) {
	if raw, ok := request.GetArguments()[arg]; ok && raw != nil {
		var records []T
		if err := decodeArgument(raw, &records); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", arg, err)
		}
		return records, nil
	}

	id := request.GetString("resource_id", "")
	if id == "" {
		return nil, fmt.Errorf("either %s or resource_id is required", arg)
	}
	if id != uri {
		return nil, fmt.Errorf("resource %q does not hold %s (use %s)", id, arg, uri)
	}
	md, err := newService().LoadMetadata(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading metadata: %w", err)
	}
	return pick(md), nil
}

func handleGenerateReport() server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		args := request.GetArguments()

		var in report.Input
		for name, dst := range map[string]any{
			"naming_results":     &in.Naming,
			"validation_results": &in.Validation,
			"trigger_results":    &in.Triggers,
			"flow_results":       &in.Flows,
		} {
			raw, ok := args[name]
			if !ok || raw == nil {
				continue
			}
			if err := decodeArgument(raw, dst); err != nil {
				return errorResult(fmt.Sprintf("decoding %s: %v", name, err)), nil
			}
		}

		object := request.GetString("object", domain.DefaultObject)
		return jsonResult(newService().BuildReport(in, object))
	}
}

// decodeArgument re-decodes a loosely typed JSON argument into dst.
func decodeArgument(raw, dst any) error {
	data, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}

// jsonResult marshals v to indented JSON and returns it as a text content result.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
