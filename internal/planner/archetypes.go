package planner

// Static reference data for the nine workflow archetypes, the answer
// option tables, and the scoring and business case constants. The signal
// matrices encode which (area, symptom) pain pairs feed each archetype
// and how strongly.

const (
	GoalPrimaryWeight       = 2.0
	GoalSecondaryWeight     = 1.0
	FeasibilityBonus        = 2.0
	FeasibilityPenalty      = -3.0
	FoundationPenaltyWeight = 2.0
	WorkingWeeksPerYear     = 45.0
	HoursPerWeek            = 37.5
	EmployerCostUplift      = 0.25
	RecoverySpread          = 0.075
	RecoveryFloor           = 0.10
	RecoveryCeiling         = 0.85
)

type SignalEntry struct {
	Area    string
	Symptom string
	Weight  float64
}

type FoundationProfile struct {
	KnowledgeDependency string
	DataDependency      string
}

type FeasibilityRequirements struct {
	MinAiAdoption int
	MinTechLevel  int
}

type Archetype struct {
	ID            string
	Name          string
	Description   string
	PainSignals   []string
	Prerequisites []string
	GoalAlignment map[string]float64
	SignalMatrix  []SignalEntry
	Foundation    FoundationProfile
	RecoveryRate  float64
	Feasibility   FeasibilityRequirements
}

var Archetypes = []Archetype{
	{
		ID:   "client-onboarding",
		Name: "Client onboarding and intake",
		Description: "The end-to-end process of setting up a new client: collecting information, " +
			"provisioning systems, briefing the team, establishing communication rhythms.",
		PainSignals: []string{
			"Manual data entry across systems",
			"Inconsistent setup quality",
			"Slow time-to-first-value",
			"Knowledge gaps between sales and delivery",
		},
		Prerequisites: []string{
			"Documented current onboarding steps (even roughly)",
			"Access to systems involved",
			"One process owner who can validate the redesign",
		},
		GoalAlignment: map[string]float64{"costs": 3, "capacity": 4, "quality": 4, "speed": 5, "capability": 2},
		SignalMatrix: []SignalEntry{
			{"onboarding", "work-about-work", 8},
			{"onboarding", "handoff-friction", 10},
			{"onboarding", "tool-limitation", 6},
			{"onboarding", "inconsistency", 9},
			{"proposals", "scope-creep", 7},
			{"communications", "scope-creep", 6},
		},
		Foundation:   FoundationProfile{"Medium", "Medium"},
		RecoveryRate: 0.5,
		Feasibility:  FeasibilityRequirements{MinAiAdoption: 0, MinTechLevel: 1},
	},
	{
		ID:   "meeting-intelligence",
		Name: "Meeting intelligence and CRM capture",
		Description: "Automating the capture, storage, and distribution of meeting outcomes " +
			"(notes, actions, decisions, follow-ups) and routing them to the right systems.",
		PainSignals: []string{
			"Meeting notes live in someone's notebook",
			"Actions get lost",
			"CRM is empty because updating it is manual",
			"Context doesn't carry forward between meetings",
		},
		Prerequisites: []string{
			"CRM or client database in place",
			"Willingness to standardise meeting follow-up process",
		},
		GoalAlignment: map[string]float64{"costs": 2, "capacity": 4, "quality": 3, "speed": 3, "capability": 4},
		SignalMatrix: []SignalEntry{
			{"onboarding", "decision-bottleneck", 4},
			{"proposals", "handoff-friction", 6},
			{"proposals", "decision-bottleneck", 4},
			{"project-delivery", "scope-creep", 4},
			{"project-delivery", "decision-bottleneck", 4},
			{"communications", "work-about-work", 5},
			{"communications", "handoff-friction", 8},
			{"communications", "decision-bottleneck", 4},
			{"communications", "tool-limitation", 4},
			{"knowledge", "work-about-work", 6},
			{"knowledge", "rework", 5},
			{"knowledge", "handoff-friction", 7},
			{"knowledge", "decision-bottleneck", 7},
			{"knowledge", "tool-limitation", 4},
			{"knowledge", "inconsistency", 4},
		},
		Foundation:   FoundationProfile{"Low", "Medium"},
		RecoveryRate: 0.25,
		Feasibility:  FeasibilityRequirements{MinAiAdoption: 1, MinTechLevel: 1},
	},
	{
		ID:   "proposal-scoping",
		Name: "Proposal and scoping",
		Description: "The process from receiving a brief or enquiry through to producing a scoped, " +
			"priced proposal, including research, pricing, document generation, and internal review.",
		PainSignals: []string{
			"Proposals take too long",
			"Pricing is inconsistent",
			"Senior people bottleneck the process",
			"Reuse of previous work is ad-hoc",
		},
		Prerequisites: []string{
			"Some form of pricing framework (even rough)",
			"Access to past proposals for pattern extraction",
		},
		GoalAlignment: map[string]float64{"costs": 3, "capacity": 5, "quality": 3, "speed": 4, "capability": 3},
		SignalMatrix: []SignalEntry{
			{"onboarding", "scope-creep", 5},
			{"onboarding", "decision-bottleneck", 5},
			{"proposals", "work-about-work", 8},
			{"proposals", "rework", 4},
			{"proposals", "scope-creep", 4},
			{"proposals", "decision-bottleneck", 10},
			{"proposals", "tool-limitation", 4},
			{"proposals", "inconsistency", 4},
			{"project-delivery", "scope-creep", 4},
			{"reporting", "scope-creep", 4},
			{"invoicing", "scope-creep", 5},
			{"research", "scope-creep", 5},
			{"research", "decision-bottleneck", 5},
			{"proposals", "production-heavy", 8},
			{"documents", "rework", 5},
			{"documents", "production-heavy", 5},
		},
		Foundation:   FoundationProfile{"Medium", "Medium"},
		RecoveryRate: 0.5,
		Feasibility:  FeasibilityRequirements{MinAiAdoption: 1, MinTechLevel: 0},
	},
	{
		ID:   "time-invoicing",
		Name: "Time tracking and invoicing",
		Description: "Capturing time spent on client work, routing through approval workflows, " +
			"generating invoices, reconciling against budgets, and handling exceptions.",
		PainSignals: []string{
			"Timesheets submitted late or inaccurately",
			"Invoice disputes",
			"Manual reconciliation",
			"Revenue leakage from unbilled time",
		},
		Prerequisites: []string{
			"Existing time tracking system (even spreadsheets)",
			"Access to billing/finance data",
		},
		GoalAlignment: map[string]float64{"costs": 5, "capacity": 3, "quality": 3, "speed": 2, "capability": 1},
		SignalMatrix: []SignalEntry{
			{"invoicing", "work-about-work", 10},
			{"invoicing", "rework", 4},
			{"invoicing", "handoff-friction", 5},
			{"invoicing", "decision-bottleneck", 4},
			{"invoicing", "tool-limitation", 8},
			{"invoicing", "inconsistency", 4},
		},
		Foundation:   FoundationProfile{"Low", "High"},
		RecoveryRate: 0.75,
		Feasibility:  FeasibilityRequirements{MinAiAdoption: 0, MinTechLevel: 1},
	},
	{
		ID:   "management-reporting",
		Name: "Management reporting",
		Description: "Producing regular reports (utilisation, revenue, pipeline, project status, " +
			"team performance) by pulling data from multiple systems and formatting for leadership.",
		PainSignals: []string{
			"Reports take hours/days to compile",
			"Data pulled manually from multiple sources",
			"Reports are often late or inaccurate",
			"Leadership doesn't trust the numbers",
		},
		Prerequisites: []string{
			"Identifiable data sources",
			"Clear reporting requirements",
			"Someone who currently owns the process",
		},
		GoalAlignment: map[string]float64{"costs": 4, "capacity": 4, "quality": 4, "speed": 3, "capability": 3},
		SignalMatrix: []SignalEntry{
			{"project-delivery", "work-about-work", 7},
			{"project-delivery", "decision-bottleneck", 6},
			{"project-delivery", "tool-limitation", 4},
			{"reporting", "work-about-work", 10},
			{"reporting", "rework", 4},
			{"reporting", "handoff-friction", 4},
			{"reporting", "scope-creep", 5},
			{"reporting", "decision-bottleneck", 8},
			{"reporting", "tool-limitation", 9},
			{"reporting", "inconsistency", 6},
			{"invoicing", "work-about-work", 5},
			{"invoicing", "decision-bottleneck", 5},
			{"invoicing", "tool-limitation", 4},
			{"communications", "decision-bottleneck", 5},
			{"research", "decision-bottleneck", 4},
			{"reporting", "production-heavy", 8},
			{"documents", "production-heavy", 5},
			{"documents", "work-about-work", 4},
		},
		Foundation:   FoundationProfile{"Low", "High"},
		RecoveryRate: 0.75,
		Feasibility:  FeasibilityRequirements{MinAiAdoption: 0, MinTechLevel: 1},
	},
	{
		ID:   "project-delivery",
		Name: "Project delivery coordination",
		Description: "Managing the flow of client work through the organisation: task assignment, " +
			"status tracking, handoffs between teams, quality gates, deadline management.",
		PainSignals: []string{
			"Work falls through cracks between teams",
			"Status updates are manual and unreliable",
			"Quality varies by who's involved",
			"Scope creep happens silently",
		},
		Prerequisites: []string{
			"Some form of project tracking (even informal)",
			"Identifiable project stages and handoff points",
		},
		GoalAlignment: map[string]float64{"costs": 3, "capacity": 3, "quality": 5, "speed": 4, "capability": 2},
		SignalMatrix: []SignalEntry{
			{"project-delivery", "rework", 4},
			{"project-delivery", "handoff-friction", 10},
			{"project-delivery", "scope-creep", 9},
			{"project-delivery", "tool-limitation", 7},
			{"project-delivery", "inconsistency", 8},
			{"project-delivery", "work-about-work", 5},
			{"reporting", "handoff-friction", 5},
			{"invoicing", "rework", 5},
			{"invoicing", "handoff-friction", 5},
			{"invoicing", "scope-creep", 4},
			{"research", "scope-creep", 4},
			{"knowledge", "scope-creep", 5},
		},
		Foundation:   FoundationProfile{"Medium", "Medium"},
		RecoveryRate: 0.5,
		Feasibility:  FeasibilityRequirements{MinAiAdoption: 0, MinTechLevel: 1},
	},
	{
		ID:   "document-processing",
		Name: "Document processing and review",
		Description: "Reviewing, extracting information from, generating, or processing documents: " +
			"contracts, agreements, reports, compliance documents, templates.",
		PainSignals: []string{
			"Manual document review is slow and error-prone",
			"Templates are inconsistent",
			"Extraction of key terms is manual",
			"Version control is chaotic",
		},
		Prerequisites: []string{
			"Sample documents for pattern identification",
			"Clear quality standards",
			"Identified document types to prioritise",
		},
		GoalAlignment: map[string]float64{"costs": 4, "capacity": 4, "quality": 4, "speed": 4, "capability": 3},
		SignalMatrix: []SignalEntry{
			{"onboarding", "rework", 5},
			{"onboarding", "inconsistency", 4},
			{"proposals", "rework", 4},
			{"proposals", "tool-limitation", 5},
			{"proposals", "inconsistency", 4},
			{"project-delivery", "rework", 5},
			{"project-delivery", "inconsistency", 4},
			{"reporting", "work-about-work", 4},
			{"reporting", "inconsistency", 4},
			{"invoicing", "inconsistency", 4},
			{"communications", "rework", 4},
			{"research", "rework", 4},
			{"research", "inconsistency", 4},
			{"knowledge", "work-about-work", 4},
			{"knowledge", "rework", 4},
			{"knowledge", "tool-limitation", 4},
			{"knowledge", "inconsistency", 4},
			{"documents", "work-about-work", 8},
			{"documents", "rework", 9},
			{"documents", "handoff-friction", 6},
			{"documents", "tool-limitation", 8},
			{"documents", "inconsistency", 9},
			{"documents", "production-heavy", 10},
			{"proposals", "production-heavy", 5},
			{"reporting", "production-heavy", 5},
			{"research", "production-heavy", 4},
		},
		Foundation:   FoundationProfile{"Medium", "Low"},
		RecoveryRate: 0.75,
		Feasibility:  FeasibilityRequirements{MinAiAdoption: 1, MinTechLevel: 0},
	},
	{
		ID:   "client-communications",
		Name: "Client communications and follow-ups",
		Description: "Managing ongoing client communication: scheduled updates, check-ins, " +
			"satisfaction tracking, renewal reminders, and proactive outreach.",
		PainSignals: []string{
			"Follow-ups are inconsistent",
			"Client communication depends on individual memory",
			"No systematic check-in process",
			"Clients fall silent without notice",
		},
		Prerequisites: []string{
			"Client list with contact details",
			"Defined communication touchpoints",
			"CRM or contact management system",
		},
		GoalAlignment: map[string]float64{"costs": 2, "capacity": 3, "quality": 4, "speed": 3, "capability": 3},
		SignalMatrix: []SignalEntry{
			{"communications", "work-about-work", 6},
			{"communications", "rework", 9},
			{"communications", "handoff-friction", 5},
			{"communications", "scope-creep", 4},
			{"communications", "tool-limitation", 5},
			{"communications", "inconsistency", 7},
			{"proposals", "handoff-friction", 4},
		},
		Foundation:   FoundationProfile{"Low", "Medium"},
		RecoveryRate: 0.25,
		Feasibility:  FeasibilityRequirements{MinAiAdoption: 1, MinTechLevel: 1},
	},
	{
		ID:   "research-analysis",
		Name: "Research and analysis for client work",
		Description: "Conducting bespoke research, competitive analysis, market intelligence, " +
			"due diligence, or background research as part of client delivery.",
		PainSignals: []string{
			"Research is time-consuming and often duplicated",
			"Findings aren't captured for reuse",
			"Junior staff spend disproportionate time on research",
			"Quality varies",
		},
		Prerequisites: []string{
			"Identifiable research patterns/types",
			"Quality standards for research output",
			"Access to information sources",
		},
		GoalAlignment: map[string]float64{"costs": 2, "capacity": 5, "quality": 3, "speed": 4, "capability": 5},
		SignalMatrix: []SignalEntry{
			{"research", "work-about-work", 9},
			{"research", "rework", 7},
			{"research", "tool-limitation", 8},
			{"research", "inconsistency", 7},
			{"reporting", "decision-bottleneck", 4},
			{"reporting", "tool-limitation", 4},
			{"knowledge", "decision-bottleneck", 4},
			{"research", "production-heavy", 7},
			{"documents", "work-about-work", 4},
		},
		Foundation:   FoundationProfile{"Medium", "Low"},
		RecoveryRate: 0.5,
		Feasibility:  FeasibilityRequirements{MinAiAdoption: 1, MinTechLevel: 0},
	},
}

func ArchetypeByID(id string) (Archetype, bool) {
	for _, a := range Archetypes {
		if a.ID == id {
			return a, true
		}
	}
	return Archetype{}, false
}

// --- answer option tables ---

type levelOption struct {
	Value string
	Label string
	Level int
}

type midpointOption struct {
	Value    string
	Label    string
	Midpoint float64
}

type labelOption struct {
	Value string
	Label string
}

var AiAdoptionOptions = []levelOption{
	{"embedded", "AI is part of how we work across the organisation", 3},
	{"partial", "We use AI tools in specific processes or departments", 2},
	{"individual", "Individual team members use AI tools for their own work", 1},
	{"not-started", "We have not started using AI in any structured way", 0},
}

var TechEnvironmentOptions = []levelOption{
	{"fully-integrated", "Fully integrated line-of-business platform with workflows and reporting built in", 3},
	{"integrated", "Some systems talk to each other with some data flowing automatically", 2},
	{"disconnected", "Dedicated systems for each function (CRM, project management, finance) but not connected", 1},
	{"basic", "Mostly email, documents, and spreadsheets", 0},
}

var ProcessKnowledgeOptions = []levelOption{
	{"well-documented", "Well documented. SOPs, templates, and playbooks exist for most processes", 3},
	{"partially-documented", "Partially documented. Some processes are written down, others depend on who you ask", 2},
	{"mostly-undocumented", "Mostly undocumented. Knowledge lives in people's heads", 1},
	{"dont-know", "Don't know", 1},
}

var DataFoundationsOptions = []levelOption{
	{"strong", "Strong. Data is consistent, accessible, and trusted for decisions", 3},
	{"mixed", "Mixed. Some systems are reliable, others need manual cleanup", 2},
	{"weak", "Weak. Data quality is a known problem, lots of manual workarounds", 1},
	{"dont-know", "Don't know", 1},
}

var PeopleInvolvedOptions = []midpointOption{
	{"1-3", "1–3", 2},
	{"4-8", "4–8", 6},
	{"9-15", "9–15", 12},
	{"16-30", "16–30", 23},
	{"31-75", "31–75", 50},
	{"76-150", "76–150", 110},
	{"150-plus", "150+", 200},
}

var WeeklyHoursOptions = []midpointOption{
	{"under-5", "Under 5 hours", 3},
	{"5-15", "5–15 hours", 10},
	{"15-30", "15–30 hours", 22.5},
	{"30-60", "30–60 hours", 45},
	{"60-plus", "60+ hours", 80},
}

var CostPerPersonOptions = []midpointOption{
	{"under-30k", "Under £30K", 25000},
	{"30k-50k", "£30K–£50K", 40000},
	{"50k-75k", "£50K–£75K", 62500},
	{"75k-100k", "£75K–£100K", 87500},
	{"100k-150k", "£100K–£150K", 125000},
	{"over-150k", "Over £150K", 175000},
}

var RoleOptions = []labelOption{
	{"founder-ceo", "Founder or CEO"},
	{"c-suite", "C-suite or board member"},
	{"director-vp", "Director or VP"},
	{"head-of", "Head of department or practice"},
	{"manager", "Manager"},
	{"other", "Other"},
}

var TurnoverOptions = []labelOption{
	{"under-1m", "Under £1M"},
	{"1m-5m", "£1M – £5M"},
	{"5m-10m", "£5M – £10M"},
	{"10m-20m", "£10M – £20M"},
	{"20m-50m", "£20M – £50M"},
	{"50m-plus", "£50M+"},
	{"prefer-not-to-say", "Prefer not to say"},
}

var FirmTypeOptions = []labelOption{
	{"accounting", "Accounting, tax, or audit"},
	{"agency", "Agency (creative, digital, PR, media)"},
	{"technical", "Architecture, engineering, or technical services"},
	{"internal-services", "Internal business services team"},
	{"law", "Law or legal services"},
	{"consulting", "Management or specialist consulting"},
	{"other", "Other services organisation"},
}

var TeamSizeOptions = []labelOption{
	{"10-30", "10–30"},
	{"31-75", "31–75"},
	{"76-150", "76–150"},
	{"151-300", "151–300"},
	{"301-500", "301–500"},
	{"500-plus", "500+"},
}

var StrategicFocusOptions = []labelOption{
	{"costs", "Reduce operating costs"},
	{"capacity", "Increase team capacity without hiring"},
	{"quality", "Improve delivery quality and consistency"},
	{"speed", "Deliver faster for clients"},
	{"capability", "Build new capabilities with AI"},
}

var AreaOptions = []labelOption{
	{"documents", "Preparing documents, presentations, and internal materials"},
	{"proposals", "Producing proposals, scoping, and pricing"},
	{"onboarding", "Getting new clients set up and onboarded"},
	{"research", "Research and analysis for client work"},
	{"communications", "Client communications and follow-ups"},
	{"project-delivery", "Managing active project delivery"},
	{"invoicing", "Processing invoices, timesheets, and approvals"},
	{"reporting", "Generating reports and management information"},
	{"knowledge", "Capturing and sharing knowledge across the team"},
}

var SymptomOptions = []labelOption{
	{"work-about-work", "Too much time on coordination, updates, and admin around the real work"},
	{"rework", "Work gets done more than once: revisions, corrections, miscommunication"},
	{"handoff-friction", "Things fall through the cracks when work moves between people or teams"},
	{"scope-creep", "Scope expands beyond what was planned or agreed"},
	{"decision-bottleneck", "Progress stalls waiting for decisions, approvals, or information from senior people"},
	{"tool-limitation", "Working around existing system limitations"},
	{"inconsistency", "No standard way of doing it. Quality depends on who picks it up"},
	{"production-heavy", "Too much time spent producing and formatting, not enough time thinking"},
}

var FirmTypeReportLabels = map[string]string{
	"accounting":        "accounting and advisory practice",
	"agency":            "agency",
	"technical":         "technical services practice",
	"internal-services": "B2B service organisation",
	"law":               "legal practice",
	"consulting":        "consulting firm",
	"other":             "service organisation",
}

var TechEnvironmentDescriptions = map[string]string{
	"fully-integrated": "a fully integrated line-of-business platform with workflows and reporting built in",
	"integrated":       "multiple systems with some data flowing automatically between them",
	"disconnected":     "dedicated systems for each function that do not talk to each other",
	"basic":            "primarily email, documents, and spreadsheets",
}

var dependencyLevels = map[string]int{
	"Low":    1,
	"Medium": 2,
	"High":   3,
}

func levelFor(value string, options []levelOption, fallback int) int {
	for _, o := range options {
		if o.Value == value {
			return o.Level
		}
	}
	return fallback
}

func midpointFor(value string, options []midpointOption) float64 {
	for _, o := range options {
		if o.Value == value {
			return o.Midpoint
		}
	}
	return 0
}

func labelFor(value string, options []labelOption) string {
	for _, o := range options {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

func levelLabelFor(value string, options []levelOption) string {
	for _, o := range options {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

func hasValue(value string, options []labelOption) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}

func hasLevelValue(value string, options []levelOption) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}

func hasMidpointValue(value string, options []midpointOption) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}
