package planner

import (
	"encoding/json"
	"fmt"
	"time"
)

// Qualification is the contact step of the diagnostic wizard. ConsentGiven
// must be true before any processing happens.
type Qualification struct {
	Name           string `json:"name" validate:"required,max=100"`
	Email          string `json:"email" validate:"required,email"`
	Company        string `json:"company" validate:"required,max=100"`
	CompanyWebsite string `json:"companyWebsite,omitempty" validate:"max=200"`
	Role           string `json:"role" validate:"required"`
	RoleOther      string `json:"roleOther,omitempty" validate:"max=100"`
	Turnover       string `json:"turnover" validate:"required"`
	ConsentGiven   bool   `json:"consentGiven"`
}

type PainPoint struct {
	Area    string `json:"area" validate:"required"`
	Symptom string `json:"symptom" validate:"required"`
}

type StrategicFocus struct {
	Primary   string `json:"primary" validate:"required"`
	Secondary string `json:"secondary" validate:"required"`
}

type Diagnostic struct {
	FirmType         string         `json:"firmType" validate:"required"`
	TeamSize         string         `json:"teamSize" validate:"required"`
	StrategicFocus   StrategicFocus `json:"strategicFocus"`
	PainPoints       []PainPoint    `json:"painPoints" validate:"min=2,max=6,dive"`
	AiAdoption       string         `json:"aiAdoption" validate:"required"`
	TechEnvironment  string         `json:"techEnvironment" validate:"required"`
	ProcessKnowledge string         `json:"processKnowledge" validate:"required"`
	DataFoundations  string         `json:"dataFoundations" validate:"required"`
	BillableSplit    float64        `json:"billableSplit" validate:"min=0,max=100"`
}

// SizingEntry carries the prospect's own effort estimate for one of the
// three recommended archetypes.
type SizingEntry struct {
	ArchetypeID    string `json:"archetypeId" validate:"required"`
	PeopleInvolved string `json:"peopleInvolved" validate:"required"`
	WeeklyHours    string `json:"weeklyHours" validate:"required"`
	CostPerPerson  string `json:"costPerPerson" validate:"required"`
	FreeText       string `json:"freeText,omitempty" validate:"max=500"`
}

type MatchedSignal struct {
	Area    string  `json:"area"`
	Symptom string  `json:"symptom"`
	Weight  float64 `json:"weight"`
}

type RankedArchetype struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	CompositeScore float64         `json:"compositeScore"`
	SignalScore    float64         `json:"signalScore"`
	GoalScore      float64         `json:"goalScore"`
	FeasibilityMod float64         `json:"feasibilityModifier"`
	FoundationMod  float64         `json:"foundationModifier"`
	MatchedSignals []MatchedSignal `json:"matchedSignals"`
}

type ScoringResult struct {
	TopArchetypes []RankedArchetype  `json:"topArchetypes"`
	AllScores     map[string]float64 `json:"allScores"`
}

type MoneyRange struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

type AreaBusinessCase struct {
	ArchetypeID   string     `json:"archetypeId"`
	AnnualHours   int        `json:"annualHours"`
	AnnualCost    int        `json:"annualCost"`
	RecoveryRange MoneyRange `json:"recoveryRange"`
}

type BusinessCase struct {
	PerArea              []AreaBusinessCase `json:"perArea"`
	TotalAnnualHours     int                `json:"totalAnnualHours"`
	TotalAnnualCost      int                `json:"totalAnnualCost"`
	ConservativeRecovery MoneyRange         `json:"conservativeRecovery"`
	WeeklyHoursRecovered MoneyRange         `json:"weeklyHoursRecovered"`
	RevenueFraming       bool               `json:"revenueFraming"`
}

// ConditionLevel is a traffic light rating on a recommended workflow.
// Models like to emit booleans here; decoding rejects them so the
// corrective retry fires instead of a coerced value slipping through.
type ConditionLevel string

const (
	ConditionGreen ConditionLevel = "green"
	ConditionAmber ConditionLevel = "amber"
	ConditionRed   ConditionLevel = "red"
)

func (c *ConditionLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("condition level must be \"green\", \"amber\", or \"red\", got %s", data)
	}
	switch ConditionLevel(s) {
	case ConditionGreen, ConditionAmber, ConditionRed:
		*c = ConditionLevel(s)
		return nil
	}
	return fmt.Errorf("unknown condition level %q", s)
}

func (c ConditionLevel) Valid() bool {
	switch c {
	case ConditionGreen, ConditionAmber, ConditionRed:
		return true
	}
	return false
}

type ThreeConditions struct {
	Impact     ConditionLevel `json:"impact"`
	Complexity ConditionLevel `json:"complexity"`
	Learning   ConditionLevel `json:"learning"`
}

type WorkflowReport struct {
	ArchetypeID              string          `json:"archetypeId"`
	Name                     string          `json:"name"`
	WhyThisMatters           string          `json:"whyThisMatters"`
	ImpactPotential          string          `json:"impactPotential"`
	ImplementationComplexity string          `json:"implementationComplexity"`
	ThreeConditionsCheck     ThreeConditions `json:"threeConditionsCheck"`
	CurrentState             string          `json:"currentState"`
	FutureState              string          `json:"futureState"`
	Considerations           string          `json:"considerations"`
	Prerequisites            []string        `json:"prerequisites"`
	Pitfalls                 []string        `json:"pitfalls"`
}

type MaturityAssessment struct {
	Strengths   []string `json:"strengths"`
	Development []string `json:"development"`
}

type Readiness struct {
	Strengths []string `json:"strengths"`
	Gaps      []string `json:"gaps"`
}

// GeneratedReport is the model output plus server-owned fields (ID,
// BusinessCase, GeneratedAt), which are injected after parsing and
// never trusted from the model.
type GeneratedReport struct {
	ID                 string              `json:"id"`
	SituationSummary   string              `json:"situationSummary"`
	PriorityMapIntro   string              `json:"priorityMapIntro,omitempty"`
	Workflows          []WorkflowReport    `json:"workflows"`
	BusinessCase       BusinessCase        `json:"businessCase"`
	MaturityAssessment *MaturityAssessment `json:"maturityAssessment,omitempty"`
	QuickWins          []string            `json:"quickWins,omitempty"`
	Readiness          Readiness           `json:"readiness"`
	NextSteps          []string            `json:"nextSteps"`
	CompanyContext     string              `json:"companyContext,omitempty"`
	GeneratedAt        string              `json:"generatedAt"`
}

// ReportRecord is what persistence stores per report, alongside enough of
// the submission to re-render and to answer support queries.
type ReportRecord struct {
	Report         GeneratedReport `json:"report"`
	Email          string          `json:"email"`
	Company        string          `json:"company"`
	Name           string          `json:"name"`
	Qualification  Qualification   `json:"qualification"`
	Diagnostic     Diagnostic      `json:"diagnostic"`
	CompanyContext string          `json:"companyContext,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// RetryRecord preserves a failed submission so the prospect can retry
// without re-entering the wizard.
type RetryRecord struct {
	Qualification Qualification `json:"qualification"`
	Diagnostic    Diagnostic    `json:"diagnostic"`
	Sizing        []SizingEntry `json:"sizing"`
	Status        string        `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
}

type GenerateRequest struct {
	Qualification Qualification `json:"qualification"`
	Diagnostic    Diagnostic    `json:"diagnostic"`
	Sizing        []SizingEntry `json:"sizing"`
}
