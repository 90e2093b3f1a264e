package planner

import (
	"errors"
	"fmt"
	"strings"
)

func validImpactLevel(v string) bool {
	switch v {
	case "high", "medium", "low":
		return true
	}
	return false
}

// ValidateReport checks the generated report against the output contract.
// It runs after server fields are injected, so ID, BusinessCase, and
// GeneratedAt are expected to be populated.
func ValidateReport(r *GeneratedReport) error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(r.ID) == "" {
		add("id is empty")
	}
	if strings.TrimSpace(r.SituationSummary) == "" {
		add("situationSummary is empty")
	}
	if strings.TrimSpace(r.GeneratedAt) == "" {
		add("generatedAt is empty")
	}

	if len(r.Workflows) != 3 {
		add("workflows must contain exactly 3 items, got %d", len(r.Workflows))
	}
	for i, w := range r.Workflows {
		if _, ok := ArchetypeByID(w.ArchetypeID); !ok {
			add("workflow %d: unknown archetypeId %q", i, w.ArchetypeID)
		}
		if strings.TrimSpace(w.Name) == "" {
			add("workflow %d: name is empty", i)
		}
		if strings.TrimSpace(w.WhyThisMatters) == "" {
			add("workflow %d: whyThisMatters is empty", i)
		}
		if !validImpactLevel(w.ImpactPotential) {
			add("workflow %d: impactPotential must be high, medium, or low, got %q", i, w.ImpactPotential)
		}
		if !validImpactLevel(w.ImplementationComplexity) {
			add("workflow %d: implementationComplexity must be high, medium, or low, got %q", i, w.ImplementationComplexity)
		}
		if !w.ThreeConditionsCheck.Impact.Valid() ||
			!w.ThreeConditionsCheck.Complexity.Valid() ||
			!w.ThreeConditionsCheck.Learning.Valid() {
			add("workflow %d: threeConditionsCheck values must be green, amber, or red", i)
		}
		if strings.TrimSpace(w.CurrentState) == "" {
			add("workflow %d: currentState is empty", i)
		}
		if strings.TrimSpace(w.FutureState) == "" {
			add("workflow %d: futureState is empty", i)
		}
		if strings.TrimSpace(w.Considerations) == "" {
			add("workflow %d: considerations is empty", i)
		}
		if len(w.Prerequisites) == 0 {
			add("workflow %d: prerequisites is empty", i)
		}
		if len(w.Pitfalls) == 0 {
			add("workflow %d: pitfalls is empty", i)
		}
	}

	if r.MaturityAssessment != nil {
		if len(r.MaturityAssessment.Strengths) == 0 {
			add("maturityAssessment.strengths is empty")
		}
		if len(r.MaturityAssessment.Development) == 0 {
			add("maturityAssessment.development is empty")
		}
	}
	if len(r.Readiness.Strengths) == 0 {
		add("readiness.strengths is empty")
	}
	if len(r.Readiness.Gaps) == 0 {
		add("readiness.gaps is empty")
	}
	if len(r.NextSteps) == 0 {
		add("nextSteps is empty")
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}
