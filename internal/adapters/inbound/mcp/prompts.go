package mcp

import (
	"context"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const basicAnalysisRole = `You are a Salesforce/nCino configuration expert who specializes in analyzing metadata for naming convention violations and security issues.

You will be analyzing:
- Field naming conventions against nCino standards
- Validation rule bypass patterns
- Apex trigger and flow bypass patterns

Provide a clear, concise analysis with:
1. Executive summary with key findings
2. Detailed list of issues found, grouped by type
3. Prioritized recommendations for improvement
4. Overall configuration health score`

const securityAnalysisRole = `You are a Salesforce/nCino security expert specializing in detecting bypass patterns and security vulnerabilities in configurations.

Focus primarily on:
- Validation rule bypass patterns (profile-based, user-based, etc.)
- Apex trigger and flow security concerns
- Permission-based security issues
- Hardcoded IDs and other security risks

Provide a thorough security analysis with:
1. Executive summary with critical security findings
2. Detailed breakdown of all security vulnerabilities found
3. Security risk score for each component
4. Remediation plan with prioritized actions`

const defaultFocus = `- Naming convention compliance
- Security bypass patterns
- Overall configuration health`

const securityChecklist = `Please identify:
- All bypass patterns in validation rules, triggers and flows
- Hardcoded IDs and credentials
- Profile-based or user-based security bypasses
- Other security vulnerabilities

For each issue, provide:
1. Severity level
2. Explanation of the security risk
3. Recommended fix`

// registerPrompts registers the analysis prompt templates on the given server.
func registerPrompts(s *server.MCPServer) {
	resourceIDs := mcplib.WithArgument("resource_ids",
		mcplib.ArgumentDescription("Comma-separated resource URIs to analyze, e.g. "+URIFields+","+URITriggers),
	)

	s.AddPrompt(
		mcplib.NewPrompt("salesforce_basic_analysis",
			mcplib.WithPromptDescription("Analyze Salesforce/nCino configuration for basic issues"),
			resourceIDs,
			mcplib.WithArgument("focus", mcplib.ArgumentDescription("Specific focus areas for the analysis")),
		),
		handleBasicAnalysisPrompt,
	)

	s.AddPrompt(
		mcplib.NewPrompt("salesforce_security_analysis",
			mcplib.WithPromptDescription("Analyze Salesforce/nCino configuration for security issues"),
			resourceIDs,
		),
		handleSecurityAnalysisPrompt,
	)
}

func handleBasicAnalysisPrompt(_ context.Context, request mcplib.GetPromptRequest) (*mcplib.GetPromptResult, error) {
	args := request.Params.Arguments

	var b strings.Builder
	b.WriteString("Analyze the provided Salesforce/nCino configuration and identify any issues with naming conventions or security patterns.\n\n")
	writeResourceList(&b, args["resource_ids"])
	b.WriteString("Please focus on:\n")
	if focus := strings.TrimSpace(args["focus"]); focus != "" {
		b.WriteString(focus + "\n")
	} else {
		b.WriteString(defaultFocus + "\n")
	}

	return promptResult("Basic Salesforce/nCino analysis", basicAnalysisRole, b.String()), nil
}

func handleSecurityAnalysisPrompt(_ context.Context, request mcplib.GetPromptRequest) (*mcplib.GetPromptResult, error) {
	var b strings.Builder
	b.WriteString("Perform a comprehensive security analysis of the provided Salesforce/nCino configuration, focusing specifically on security bypass patterns and vulnerabilities.\n\n")
	writeResourceList(&b, request.Params.Arguments["resource_ids"])
	b.WriteString(securityChecklist + "\n")

	return promptResult("Salesforce/nCino security analysis", securityAnalysisRole, b.String()), nil
}

func writeResourceList(b *strings.Builder, ids string) {
	var listed bool
	for _, id := range strings.Split(ids, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if !listed {
			b.WriteString("I've provided the following resources to analyze:\n")
			listed = true
		}
		b.WriteString("- " + id + "\n")
	}
	if listed {
		b.WriteString("\n")
	}
}

// promptResult frames the request with the role text. MCP prompts carry no
// system role, so both go into the opening user message.
func promptResult(description, role, request string) *mcplib.GetPromptResult {
	return mcplib.NewGetPromptResult(description, []mcplib.PromptMessage{
		mcplib.NewPromptMessage(mcplib.RoleUser, mcplib.NewTextContent(role+"\n\n"+request)),
	})
}
