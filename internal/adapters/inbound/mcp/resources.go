package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/forcekraft/internal/application"
)

// Resource URIs. Record resources hold the project's metadata after config
// has been applied and can be passed to the analyze tools as resource_id.
const (
	URIFields          = "salesforce://fields"
	URIValidationRules = "salesforce://validation-rules"
	URITriggers        = "salesforce://triggers"
	URIFlows           = "salesforce://flows"
	URIReport          = "salesforce://report"
)

type recordResource struct {
	uri         string
	name        string
	description string
	records     func(*application.Metadata) any
}

var recordResources = []recordResource{
	{URIFields, "Fields", "Field definitions of the analyzed object", func(md *application.Metadata) any { return orEmpty(md.Fields) }},
	{URIValidationRules, "Validation Rules", "Validation rules with their error condition formulas", func(md *application.Metadata) any { return orEmpty(md.ValidationRules) }},
	{URITriggers, "Apex Triggers", "Apex triggers with their source", func(md *application.Metadata) any { return orEmpty(md.Triggers) }},
	{URIFlows, "Flows", "Flows reduced to their gating elements", func(md *application.Metadata) any { return orEmpty(md.Flows) }},
}

// registerResources registers all forcekraft MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string) {
	for _, r := range recordResources {
		s.AddResource(
			mcplib.NewResource(
				r.uri,
				r.name,
				mcplib.WithResourceDescription(r.description),
				mcplib.WithMIMEType("application/json"),
			),
			handleRecordResource(projectPath, r),
		)
	}

	s.AddResource(
		mcplib.NewResource(
			URIReport,
			"Configuration Report",
			mcplib.WithResourceDescription("Composite naming and bypass report for the project"),
			mcplib.WithMIMEType("application/json"),
		),
		handleReportResource(projectPath),
	)
}

func handleRecordResource(projectPath string, r recordResource) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		md, err := newService().LoadMetadata(projectPath)
		if err != nil {
			return nil, fmt.Errorf("loading metadata: %w", err)
		}
		return jsonContents(r.uri, r.records(md))
	}
}

func handleReportResource(projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		report, err := newService().AnalyzeProject(projectPath)
		if err != nil {
			return nil, fmt.Errorf("analysis failed: %w", err)
		}
		return jsonContents(URIReport, report)
	}
}

// orEmpty keeps a domain without records rendering as [] rather than null.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func jsonContents(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
