package planner

import (
	"encoding/json"
	"strings"
	"testing"
)

func testWorkflow(archetypeID string) WorkflowReport {
	return WorkflowReport{
		ArchetypeID:              archetypeID,
		Name:                     "Test workflow",
		WhyThisMatters:           "It addresses the invisible work you described.",
		ImpactPotential:          "high",
		ImplementationComplexity: "medium",
		ThreeConditionsCheck: ThreeConditions{
			Impact:     ConditionGreen,
			Complexity: ConditionAmber,
			Learning:   ConditionGreen,
		},
		CurrentState:   "Hours of manual compilation each week.",
		FutureState:    "Automated capture with review checkpoints.",
		Considerations: "Needs a process owner to validate the redesign.",
		Prerequisites:  []string{"Access to the billing system"},
		Pitfalls:       []string{"Automating before standardising"},
	}
}

func testReport() GeneratedReport {
	return GeneratedReport{
		ID:               "report-1",
		SituationSummary: "Acme Advisory is a mid-sized consulting firm drowning in reporting admin.",
		Workflows: []WorkflowReport{
			testWorkflow("management-reporting"),
			testWorkflow("time-invoicing"),
			testWorkflow("document-processing"),
		},
		Readiness: Readiness{
			Strengths: []string{"Leadership backing"},
			Gaps:      []string{"Data quality needs work"},
		},
		NextSteps:   []string{"Map the reporting workflow end to end"},
		GeneratedAt: "2026-08-31T10:00:00Z",
	}
}

func TestValidateReportAcceptsWellFormed(t *testing.T) {
	r := testReport()
	if err := ValidateReport(&r); err != nil {
		t.Fatalf("well-formed report rejected: %v", err)
	}
}

func TestValidateReportCollectsProblems(t *testing.T) {
	r := testReport()
	r.SituationSummary = ""
	r.Workflows[1].Pitfalls = nil
	r.NextSteps = nil

	err := ValidateReport(&r)
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"situationSummary", "pitfalls", "nextSteps"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q missing %q", err.Error(), want)
		}
	}
}

func TestValidateReportRejections(t *testing.T) {
	for _, tc := range []struct {
		name   string
		mutate func(*GeneratedReport)
	}{
		{"wrong workflow count", func(r *GeneratedReport) { r.Workflows = r.Workflows[:2] }},
		{"unknown archetype", func(r *GeneratedReport) { r.Workflows[0].ArchetypeID = "made-up" }},
		{"bad impact level", func(r *GeneratedReport) { r.Workflows[0].ImpactPotential = "huge" }},
		{"bad condition", func(r *GeneratedReport) { r.Workflows[0].ThreeConditionsCheck.Impact = "blue" }},
		{"empty current state", func(r *GeneratedReport) { r.Workflows[2].CurrentState = " " }},
		{"empty readiness gaps", func(r *GeneratedReport) { r.Readiness.Gaps = nil }},
		{"empty generated at", func(r *GeneratedReport) { r.GeneratedAt = "" }},
		{"maturity present but empty", func(r *GeneratedReport) {
			r.MaturityAssessment = &MaturityAssessment{Strengths: []string{"s"}}
		}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r := testReport()
			tc.mutate(&r)
			if err := ValidateReport(&r); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestConditionLevelDecoding(t *testing.T) {
	for _, tc := range []struct {
		in      string
		want    ConditionLevel
		wantErr bool
	}{
		{`"green"`, ConditionGreen, false},
		{`"amber"`, ConditionAmber, false},
		{`"red"`, ConditionRed, false},
		{`true`, "", true},
		{`false`, "", true},
		{`"blue"`, "", true},
		{`7`, "", true},
	} {
		var c ConditionLevel
		err := json.Unmarshal([]byte(tc.in), &c)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%s: expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: %v", tc.in, err)
		}
		if c != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.in, c, tc.want)
		}
	}
}
