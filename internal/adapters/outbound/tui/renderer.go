package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/abdidvp/forcekraft/internal/domain"
	"github.com/abdidvp/forcekraft/internal/domain/scoring"
)

var (
	accent  = lipgloss.Color("#00A1E0") // Salesforce blue
	fg      = lipgloss.Color("#E8E6E3")
	dim     = lipgloss.Color("#6B7280")
	faint   = lipgloss.Color("#3F3F46")
	success = lipgloss.Color("#22C55E")
	lime    = lipgloss.Color("#A3E635")
	danger  = lipgloss.Color("#EF4444")
	warning = lipgloss.Color("#F59E0B")
	info    = lipgloss.Color("#8B949E")
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	ratingColors = map[string]lipgloss.Color{
		"Excellent": success,
		"Good":      lime,
		"Fair":      warning,
		"Poor":      lipgloss.Color("#FB923C"), // orange
		"Critical":  danger,
	}

	dimStyle       = lipgloss.NewStyle().Foreground(dim)
	faintStyle     = lipgloss.NewStyle().Foreground(faint)
	passStyle      = lipgloss.NewStyle().Foreground(success)
	highTagStyle   = lipgloss.NewStyle().Foreground(danger).Bold(true)
	mediumTagStyle = lipgloss.NewStyle().Foreground(warning).Bold(true)
	lowTagStyle    = lipgloss.NewStyle().Foreground(info)
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(fg)
	nameStyle      = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine  = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderReport formats a composite report for terminal output.
func RenderReport(r *domain.Report) string {
	var b strings.Builder

	// ── Header ──
	rating := r.OverallScore.Rating
	title := headerStyle.Render("forcekraft")
	subtitle := dimStyle.Render("Configuration Health: " + objectName(r))
	scoreStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(ratingColor(rating)).
		Render(fmt.Sprintf("%d / 100", r.OverallScore.Score))
	ratingStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(ratingColor(rating)).
		Render(rating)

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + scoreStyled + "  " + ratingStyled))
	b.WriteString("\n\n")

	// ── Executive summary ──
	b.WriteString("  " + titleStyle.Render("Summary") + "\n")
	b.WriteString("  " + dimStyle.Render(r.ExecutiveSummary.OverallAssessment) + "\n\n")
	for _, f := range r.ExecutiveSummary.KeyFindings {
		b.WriteString("    " + faintStyle.Render("•") + " " + f + "\n")
	}
	risks := r.ExecutiveSummary.RisksIdentified
	fmt.Fprintf(&b, "\n    %s  %s  %s\n",
		highTagStyle.Render(fmt.Sprintf("%d critical", risks.Critical)),
		mediumTagStyle.Render(fmt.Sprintf("%d medium", risks.Medium)),
		lowTagStyle.Render(fmt.Sprintf("%d low", risks.Low)),
	)

	b.WriteString("\n  " + separatorLine + "\n\n")

	// ── Domains ──
	if cs := r.OverallScore.ComponentScores; cs != nil {
		df := r.DetailedFindings
		if df.NamingConventions != nil {
			renderDomainLine(&b, domain.DomainNaming, cs.NamingConventions)
		}
		if df.ValidationRules != nil {
			renderDomainLine(&b, domain.DomainValidation, cs.ValidationRules)
		}
		if df.Triggers != nil {
			renderDomainLine(&b, domain.DomainTriggers, cs.Triggers)
		}
		if df.Flows != nil {
			renderDomainLine(&b, domain.DomainFlows, cs.Flows)
		}
	}
	for _, d := range r.Skipped {
		fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render(padRight(d, 20)), faintStyle.Render("skipped"))
	}
	b.WriteString("\n")

	if nf := r.DetailedFindings.NamingConventions; nf != nil && len(nf.Violations) > 0 {
		b.WriteString("  " + titleStyle.Render("Naming violations") + "\n\n")
		for _, v := range nf.Violations {
			fmt.Fprintf(&b, "    %s\n", nameStyle.Render(v.Field))
			fmt.Fprintf(&b, "         %s\n", dimStyle.Render(v.Recommendation))
		}
		b.WriteString("\n")
	}

	for _, sec := range []struct {
		title    string
		findings *domain.BypassFindings
	}{
		{"Validation rule bypasses", r.DetailedFindings.ValidationRules},
		{"Trigger bypasses", r.DetailedFindings.Triggers},
		{"Flow bypasses", r.DetailedFindings.Flows},
	} {
		if sec.findings == nil || len(sec.findings.Patterns) == 0 {
			continue
		}
		b.WriteString("  " + titleStyle.Render(sec.title) + "\n\n")
		for _, p := range sec.findings.Patterns {
			fmt.Fprintf(&b, "    %s %s\n", severityTag(p.Severity), nameStyle.Render(p.Identifier))
			fmt.Fprintf(&b, "          %s\n", dimStyle.Render(strings.Join(p.Patterns, ", ")))
		}
		b.WriteString("\n")
	}

	// ── Recommendations ──
	b.WriteString("  " + separatorLine + "\n\n")
	b.WriteString("  " + titleStyle.Render("Recommendations") + "\n\n")
	for i, rec := range r.Recommendations {
		fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render(fmt.Sprintf("%2d.", i+1)), rec)
	}
	b.WriteString("\n")
	return b.String()
}

// RenderNaming formats a single naming analysis, worst violations first.
func RenderNaming(a *domain.NamingAnalysis) string {
	var b strings.Builder
	res := a.Result

	renderDomainLine(&b, domain.DomainNaming, res.CompliancePercentage)
	fmt.Fprintf(&b, "  %s\n\n", dimStyle.Render(fmt.Sprintf("%d of %d fields compliant", res.CompliantFieldCount, res.TotalFieldCount)))

	if len(res.Violations) == 0 {
		b.WriteString("  " + passStyle.Render("No naming violations found.") + "\n")
	}
	violations := slices.Clone(res.Violations)
	slices.SortStableFunc(violations, func(x, y domain.FieldViolation) int {
		return scoring.NamingSeverityRank(x.HighestSeverity) - scoring.NamingSeverityRank(y.HighestSeverity)
	})
	for _, v := range violations {
		fmt.Fprintf(&b, "    %s %s\n", namingTag(v.HighestSeverity), nameStyle.Render(v.APIName))
		for _, nv := range v.Violations {
			fmt.Fprintf(&b, "           %s\n", faintStyle.Render(nv.Rule))
		}
		fmt.Fprintf(&b, "           %s\n", dimStyle.Render(v.RecommendedFix))
	}
	renderRecommendations(&b, summaryRecommendations(a.Summary))
	return b.String()
}

// RenderBypass formats a single bypass analysis.
func RenderBypass(a *domain.BypassAnalysis) string {
	var b strings.Builder
	res := a.Result

	renderDomainLine(&b, string(res.ComponentType), res.SecurityScore)
	fmt.Fprintf(&b, "  %s\n\n", dimStyle.Render(fmt.Sprintf("%d of %d components use bypass patterns (%d%%)", res.WithBypass, res.Total, res.BypassPercentage)))

	if len(a.RefactoringPriorities) == 0 {
		b.WriteString("  " + passStyle.Render("No bypass patterns found.") + "\n")
	}
	for _, fc := range a.RefactoringPriorities {
		fmt.Fprintf(&b, "    %s %s\n", severityTag(fc.HighestSeverity), nameStyle.Render(fc.Identifier))
		for _, f := range fc.Patterns {
			fmt.Fprintf(&b, "          %s  %s\n", faintStyle.Render(f.Name), dimStyle.Render(f.RecommendedApproach))
		}
	}
	renderRecommendations(&b, a.Recommendations)
	return b.String()
}

func summaryRecommendations(s *domain.NamingSummary) []string {
	if s == nil {
		return nil
	}
	return s.Recommendations
}

func renderRecommendations(b *strings.Builder, recs []string) {
	if len(recs) == 0 {
		return
	}
	b.WriteString("\n  " + titleStyle.Render("Recommendations") + "\n\n")
	for _, rec := range recs {
		b.WriteString("    " + faintStyle.Render("•") + " " + rec + "\n")
	}
}

func renderDomainLine(b *strings.Builder, name string, score int) {
	scoreText := lipgloss.NewStyle().Bold(true).Foreground(scoreColor(score)).Render(fmt.Sprintf("%d", score))
	fmt.Fprintf(b, "  %s %s  %s\n", nameStyle.Render(padRight(name, 20)), coloredBar(score, 20), scoreText)
}

func severityTag(s domain.Severity) string {
	switch s {
	case domain.SeverityHigh:
		return highTagStyle.Render("high  ")
	case domain.SeverityMedium:
		return mediumTagStyle.Render("medium")
	default:
		return lowTagStyle.Render("low   ")
	}
}

func namingTag(s domain.NamingSeverity) string {
	switch s {
	case domain.NamingCritical:
		return highTagStyle.Render("critical")
	case domain.NamingMedium:
		return mediumTagStyle.Render("medium  ")
	default:
		return lowTagStyle.Render("low     ")
	}
}

func objectName(r *domain.Report) string {
	if r.Object == "" {
		return domain.DefaultObject
	}
	return r.Object
}

func coloredBar(score, width int) string {
	filled := max(0, min(score*width/100, width))
	empty := width - filled

	color := scoreColor(score)
	filledStr := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

func scoreColor(score int) lipgloss.Color {
	switch {
	case score >= 80:
		return success
	case score >= 60:
		return lime
	case score >= 40:
		return warning
	default:
		return danger
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func ratingColor(rating string) lipgloss.Color {
	if c, ok := ratingColors[rating]; ok {
		return c
	}
	return fg
}
