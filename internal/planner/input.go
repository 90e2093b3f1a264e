package planner

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateQualification checks the contact payload. Consent is a hard
// requirement: nothing is processed without it.
func ValidateQualification(q Qualification) error {
	if err := validate.Struct(q); err != nil {
		return NewValidationError(err.Error())
	}
	if !q.ConsentGiven {
		return NewValidationError("consent must be given")
	}
	if !hasValue(q.Role, RoleOptions) {
		return NewValidationError(fmt.Sprintf("unknown role %q", q.Role))
	}
	if q.Role == "other" && q.RoleOther == "" {
		return NewValidationError("roleOther is required when role is other")
	}
	if !hasValue(q.Turnover, TurnoverOptions) {
		return NewValidationError(fmt.Sprintf("unknown turnover band %q", q.Turnover))
	}
	return nil
}

// ValidateDiagnostic checks the diagnostic payload: every answer must come
// from the known option tables, and the pain points must span two or three
// distinct areas.
func ValidateDiagnostic(d Diagnostic) error {
	if err := validate.Struct(d); err != nil {
		return NewValidationError(err.Error())
	}
	if !hasValue(d.FirmType, FirmTypeOptions) {
		return NewValidationError(fmt.Sprintf("unknown firm type %q", d.FirmType))
	}
	if !hasValue(d.TeamSize, TeamSizeOptions) {
		return NewValidationError(fmt.Sprintf("unknown team size %q", d.TeamSize))
	}
	if !hasValue(d.StrategicFocus.Primary, StrategicFocusOptions) {
		return NewValidationError(fmt.Sprintf("unknown primary focus %q", d.StrategicFocus.Primary))
	}
	if !hasValue(d.StrategicFocus.Secondary, StrategicFocusOptions) {
		return NewValidationError(fmt.Sprintf("unknown secondary focus %q", d.StrategicFocus.Secondary))
	}
	if d.StrategicFocus.Secondary == d.StrategicFocus.Primary {
		return NewValidationError("secondary focus must differ from primary focus")
	}

	areas := map[string]struct{}{}
	for _, p := range d.PainPoints {
		if !hasValue(p.Area, AreaOptions) {
			return NewValidationError(fmt.Sprintf("unknown pain area %q", p.Area))
		}
		if !hasValue(p.Symptom, SymptomOptions) {
			return NewValidationError(fmt.Sprintf("unknown symptom %q", p.Symptom))
		}
		areas[p.Area] = struct{}{}
	}
	if len(areas) < 2 || len(areas) > 3 {
		return NewValidationError("pain points must span two or three distinct areas")
	}

	if !hasLevelValue(d.AiAdoption, AiAdoptionOptions) {
		return NewValidationError(fmt.Sprintf("unknown AI adoption level %q", d.AiAdoption))
	}
	if !hasLevelValue(d.TechEnvironment, TechEnvironmentOptions) {
		return NewValidationError(fmt.Sprintf("unknown tech environment %q", d.TechEnvironment))
	}
	if !hasLevelValue(d.ProcessKnowledge, ProcessKnowledgeOptions) {
		return NewValidationError(fmt.Sprintf("unknown process knowledge level %q", d.ProcessKnowledge))
	}
	if !hasLevelValue(d.DataFoundations, DataFoundationsOptions) {
		return NewValidationError(fmt.Sprintf("unknown data foundations level %q", d.DataFoundations))
	}
	return nil
}

// ValidateSizing checks the sizing payload: exactly three entries, each for
// a known archetype with bracketed answers from the option tables.
func ValidateSizing(sizing []SizingEntry) error {
	if len(sizing) != 3 {
		return NewValidationError(fmt.Sprintf("sizing must contain exactly 3 entries, got %d", len(sizing)))
	}
	for i, entry := range sizing {
		if err := validate.Struct(entry); err != nil {
			return NewValidationError(err.Error())
		}
		if _, ok := ArchetypeByID(entry.ArchetypeID); !ok {
			return NewValidationError(fmt.Sprintf("sizing entry %d: unknown archetype %q", i, entry.ArchetypeID))
		}
		if !hasMidpointValue(entry.PeopleInvolved, PeopleInvolvedOptions) {
			return NewValidationError(fmt.Sprintf("sizing entry %d: unknown people band %q", i, entry.PeopleInvolved))
		}
		if !hasMidpointValue(entry.WeeklyHours, WeeklyHoursOptions) {
			return NewValidationError(fmt.Sprintf("sizing entry %d: unknown weekly hours band %q", i, entry.WeeklyHours))
		}
		if !hasMidpointValue(entry.CostPerPerson, CostPerPersonOptions) {
			return NewValidationError(fmt.Sprintf("sizing entry %d: unknown cost band %q", i, entry.CostPerPerson))
		}
	}
	return nil
}
