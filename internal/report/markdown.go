// Package report renders a persisted report record to PDF for the email
// link and the download endpoint.
package report

import (
	"fmt"
	"strings"

	"github.com/leomayn/planner/internal/planner"
)

func conditionBadge(level planner.ConditionLevel) string {
	switch level {
	case planner.ConditionGreen:
		return "Green"
	case planner.ConditionAmber:
		return "Amber"
	case planner.ConditionRed:
		return "Red"
	}
	return string(level)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func thousands(amount int) string {
	digits := fmt.Sprintf("%d", amount)
	var sb strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(d)
	}
	return sb.String()
}

func gbp(amount int) string {
	return "£" + thousands(amount)
}

// BuildMarkdown lays the report out as a printable document: summary,
// priority map, the three workflow sections, the outline business case
// table, readiness, and next steps.
func BuildMarkdown(rec planner.ReportRecord) string {
	r := rec.Report
	var sb strings.Builder

	fmt.Fprintf(&sb, "# AI Deployment Plan: %s\n\n", rec.Company)
	fmt.Fprintf(&sb, "Prepared for %s\n\n", rec.Name)

	sb.WriteString("## Your situation\n\n")
	sb.WriteString(r.SituationSummary)
	sb.WriteString("\n\n")

	if r.PriorityMapIntro != "" {
		sb.WriteString("## Priority map\n\n")
		sb.WriteString(r.PriorityMapIntro)
		sb.WriteString("\n\n")
	}

	for i, w := range r.Workflows {
		fmt.Fprintf(&sb, "## Recommendation %d: %s\n\n", i+1, w.Name)
		sb.WriteString(w.WhyThisMatters)
		sb.WriteString("\n\n")
		fmt.Fprintf(&sb, "**Impact potential:** %s | **Implementation complexity:** %s\n\n",
			titleCase(w.ImpactPotential), titleCase(w.ImplementationComplexity))
		fmt.Fprintf(&sb, "| Condition | Rating |\n|---|---|\n| Impact | %s |\n| Complexity | %s |\n| Learning value | %s |\n\n",
			conditionBadge(w.ThreeConditionsCheck.Impact),
			conditionBadge(w.ThreeConditionsCheck.Complexity),
			conditionBadge(w.ThreeConditionsCheck.Learning))
		fmt.Fprintf(&sb, "**Where you are today.** %s\n\n", w.CurrentState)
		fmt.Fprintf(&sb, "**Where this goes.** %s\n\n", w.FutureState)
		fmt.Fprintf(&sb, "**Considerations.** %s\n\n", w.Considerations)
		if len(w.Prerequisites) > 0 {
			sb.WriteString("**Prerequisites:**\n\n")
			for _, p := range w.Prerequisites {
				fmt.Fprintf(&sb, "- %s\n", p)
			}
			sb.WriteString("\n")
		}
		if len(w.Pitfalls) > 0 {
			sb.WriteString("**Common pitfalls:**\n\n")
			for _, p := range w.Pitfalls {
				fmt.Fprintf(&sb, "- %s\n", p)
			}
			sb.WriteString("\n")
		}
	}

	bc := r.BusinessCase
	sb.WriteString("## Outline business case\n\n")
	sb.WriteString("These figures are directional estimates based on the sizing data you provided.\n\n")
	sb.WriteString("| Workflow | Annual hours | Annual cost | Estimated recovery |\n|---|---|---|---|\n")
	for _, area := range bc.PerArea {
		name := area.ArchetypeID
		if a, ok := planner.ArchetypeByID(area.ArchetypeID); ok {
			name = a.Name
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %s to %s |\n",
			name, thousands(area.AnnualHours), gbp(area.AnnualCost),
			gbp(area.RecoveryRange.Low), gbp(area.RecoveryRange.High))
	}
	fmt.Fprintf(&sb, "| **Total** | %s | %s | %s to %s |\n\n",
		thousands(bc.TotalAnnualHours), gbp(bc.TotalAnnualCost),
		gbp(bc.ConservativeRecovery.Low), gbp(bc.ConservativeRecovery.High))
	fmt.Fprintf(&sb, "Estimated weekly hours recovered: %d to %d.\n\n",
		bc.WeeklyHoursRecovered.Low, bc.WeeklyHoursRecovered.High)
	if bc.RevenueFraming {
		sb.WriteString("Your team is predominantly billable, so recovered hours have direct revenue potential.\n\n")
	}

	if r.MaturityAssessment != nil {
		sb.WriteString("## Maturity assessment\n\n**Strengths:**\n\n")
		for _, s := range r.MaturityAssessment.Strengths {
			fmt.Fprintf(&sb, "- %s\n", s)
		}
		sb.WriteString("\n**Areas for development:**\n\n")
		for _, d := range r.MaturityAssessment.Development {
			fmt.Fprintf(&sb, "- %s\n", d)
		}
		sb.WriteString("\n")
	}

	if len(r.QuickWins) > 0 {
		sb.WriteString("## Quick wins\n\n")
		for _, q := range r.QuickWins {
			fmt.Fprintf(&sb, "- %s\n", q)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Readiness\n\n**What is working:**\n\n")
	for _, s := range r.Readiness.Strengths {
		fmt.Fprintf(&sb, "- %s\n", s)
	}
	sb.WriteString("\n**Where to build:**\n\n")
	for _, g := range r.Readiness.Gaps {
		fmt.Fprintf(&sb, "- %s\n", g)
	}
	sb.WriteString("\n## Next steps\n\n")
	for i, step := range r.NextSteps {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, step)
	}
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "---\n\nGenerated %s. This report is based on a light diagnostic and is directional, not a forecast.\n", r.GeneratedAt)
	return sb.String()
}
