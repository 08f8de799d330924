package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/lexdeploy/internal/config"
	"github.com/imamik/lexdeploy/internal/provisioning"
)

var (
	colorGreen = lipgloss.Color("#22c55e")
	colorRed   = lipgloss.Color("#ef4444")
	colorBlue  = lipgloss.Color("#3b82f6")
	colorDim   = lipgloss.Color("#6b7280")
	colorWhite = lipgloss.Color("#f9fafb")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	greenStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	redStyle = lipgloss.NewStyle().
			Foreground(colorRed)
)

// renderRunSummary produces a lipgloss-styled table of step outcomes.
func renderRunSummary(cfg *config.Config, run *provisioning.Run) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("  lexdeploy: %s (%s)", cfg.Bot.Name, cfg.Region)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("═", 30)))
	b.WriteString("\n\n")

	b.WriteString(dimStyle.Render(fmt.Sprintf("  %-28s %-17s %-8s %s", "Step", "Kind", "Result", "Resource")))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("─", 72)))
	b.WriteString("\n")

	var failed *provisioning.StepResult
	for i, step := range run.Steps {
		resource := ""
		if !step.Ref.IsZero() {
			resource = step.Ref.String()
		}
		fmt.Fprintf(&b, "  %-28s %-17s %s %s\n", step.Name, step.Kind, formatOutcome(step), resource)
		if step.State == provisioning.StepFailed && failed == nil {
			failed = &run.Steps[i]
		}
	}

	b.WriteString(dimStyle.Render("  " + strings.Repeat("─", 72)))
	b.WriteString("\n")

	duration := run.Duration.Round(time.Second)
	if run.State == provisioning.RunDone {
		b.WriteString(greenStyle.Render(fmt.Sprintf("  Done in %s", duration)))
	} else {
		b.WriteString(redStyle.Render(fmt.Sprintf("  Failed after %s", duration)))
		if failed != nil && failed.Err != nil {
			b.WriteString("\n")
			b.WriteString(redStyle.Render(fmt.Sprintf("  %s: %v", failed.Name, failed.Err)))
		}
	}
	b.WriteString("\n")

	return b.String()
}

// formatOutcome returns the padded, styled result column.
func formatOutcome(step provisioning.StepResult) string {
	switch step.State {
	case provisioning.StepDone:
		label := fmt.Sprintf("%-8s", step.Resolution)
		if step.Resolution == provisioning.ResolutionCreated {
			return greenStyle.Render(label)
		}
		return dimStyle.Render(label)
	case provisioning.StepFailed:
		return redStyle.Render(fmt.Sprintf("%-8s", "failed"))
	default:
		return dimStyle.Render(fmt.Sprintf("%-8s", step.State))
	}
}

// renderPlan lists the execution batches of a dry run.
func renderPlan(cfg *config.Config, fingerprint string, plan [][]string) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("  lexdeploy plan: %s (%s)", cfg.Bot.Name, cfg.Region)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("═", 30)))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("  Steps"))
	b.WriteString("\n")
	for i, batch := range plan {
		fmt.Fprintf(&b, "  %2d. %s\n", i+1, strings.Join(batch, ", "))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  Blueprint fingerprint: %s", fingerprint)))
	b.WriteString("\n")

	return b.String()
}
