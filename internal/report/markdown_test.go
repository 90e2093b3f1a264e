package report

import (
	"strings"
	"testing"
	"time"

	"github.com/leomayn/planner/internal/planner"
)

func testRecord() planner.ReportRecord {
	return planner.ReportRecord{
		Report: planner.GeneratedReport{
			ID:               "r1",
			SituationSummary: "Acme Advisory is drowning in reporting admin.",
			PriorityMapIntro: "Three workflows emerged from your inputs.",
			Workflows: []planner.WorkflowReport{
				{
					ArchetypeID:              "management-reporting",
					Name:                     "Management reporting",
					WhyThisMatters:           "Reports eat your Fridays.",
					ImpactPotential:          "high",
					ImplementationComplexity: "medium",
					ThreeConditionsCheck: planner.ThreeConditions{
						Impact:     planner.ConditionGreen,
						Complexity: planner.ConditionAmber,
						Learning:   planner.ConditionGreen,
					},
					CurrentState:   "Manual compilation from four systems.",
					FutureState:    "Automated pulls with a review step.",
					Considerations: "Pick one report to start with.",
					Prerequisites:  []string{"Identifiable data sources"},
					Pitfalls:       []string{"Automating a report nobody reads"},
				},
			},
			BusinessCase: planner.BusinessCase{
				PerArea: []planner.AreaBusinessCase{
					{
						ArchetypeID:   "management-reporting",
						AnnualHours:   6075,
						AnnualCost:    281250,
						RecoveryRange: planner.MoneyRange{Low: 189844, High: 232031},
					},
				},
				TotalAnnualHours:     6075,
				TotalAnnualCost:      281250,
				ConservativeRecovery: planner.MoneyRange{Low: 189844, High: 232031},
				WeeklyHoursRecovered: planner.MoneyRange{Low: 91, High: 111},
				RevenueFraming:       true,
			},
			QuickWins: []string{"Map the reporting workflow on a whiteboard"},
			Readiness: planner.Readiness{
				Strengths: []string{"Leadership backing"},
				Gaps:      []string{"Data quality needs work"},
			},
			NextSteps:   []string{"Choose the first report to redesign"},
			GeneratedAt: "2026-08-31T10:00:00Z",
		},
		Email:     "jane@acme.co.uk",
		Company:   "Acme Advisory",
		Name:      "Jane Doe",
		CreatedAt: time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
	}
}

func TestBuildMarkdown(t *testing.T) {
	md := BuildMarkdown(testRecord())

	for _, want := range []string{
		"# AI Deployment Plan: Acme Advisory",
		"Prepared for Jane Doe",
		"## Your situation",
		"## Priority map",
		"## Recommendation 1: Management reporting",
		"**Impact potential:** High | **Implementation complexity:** Medium",
		"| Impact | Green |",
		"| Complexity | Amber |",
		"## Outline business case",
		"| Management reporting | 6,075 | £281,250 | £189,844 to £232,031 |",
		"| **Total** | 6,075 | £281,250 | £189,844 to £232,031 |",
		"Estimated weekly hours recovered: 91 to 111.",
		"predominantly billable",
		"## Quick wins",
		"## Readiness",
		"## Next steps",
		"1. Choose the first report to redesign",
		"directional, not a forecast",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q", want)
		}
	}
}

func TestBuildMarkdownOmitsOptionalSections(t *testing.T) {
	rec := testRecord()
	rec.Report.PriorityMapIntro = ""
	rec.Report.QuickWins = nil
	rec.Report.MaturityAssessment = nil
	rec.Report.BusinessCase.RevenueFraming = false

	md := BuildMarkdown(rec)
	if strings.Contains(md, "## Priority map") {
		t.Fatal("priority map section should be omitted")
	}
	if strings.Contains(md, "## Quick wins") {
		t.Fatal("quick wins section should be omitted")
	}
	if strings.Contains(md, "## Maturity assessment") {
		t.Fatal("maturity section should be omitted")
	}
	if strings.Contains(md, "predominantly billable") {
		t.Fatal("revenue framing line should be omitted")
	}
}

func TestThousands(t *testing.T) {
	for _, tc := range []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{6075, "6,075"},
		{281250, "281,250"},
	} {
		if got := thousands(tc.in); got != tc.want {
			t.Fatalf("thousands(%d) got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestApplyPrintLayoutHooks(t *testing.T) {
	in := "<h2>Your situation</h2><p>x</p><h2>Recommendation 2: Time tracking and invoicing</h2><p>y</p>"
	out := applyPrintLayoutHooks(in)
	if !strings.Contains(out, `<h2 data-page-break-before="true">Recommendation 2: Time tracking and invoicing</h2>`) {
		t.Fatalf("expected page-break injection, got: %s", out)
	}
	if strings.Contains(out, `data-page-break-before="true">Your situation`) {
		t.Fatal("non-recommendation headings should be untouched")
	}
}

func TestBuildHTMLEscapesCompany(t *testing.T) {
	rec := testRecord()
	rec.Company = "Acme <script>"
	html, err := buildHTML(rec)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(html, "<title>AI Deployment Plan: Acme <script></title>") {
		t.Fatal("company name not escaped in title")
	}
	if !strings.Contains(html, "LEOMAYN") {
		t.Fatal("brand header missing")
	}
}
