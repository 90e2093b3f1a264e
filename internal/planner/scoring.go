package planner

import "sort"

// signalScore sums matrix weights for the pain pairs the prospect selected.
// Within an area the strongest match takes full weight and any further
// matches are dampened to half, so stacking symptoms in one area does not
// drown out breadth across areas.
func signalScore(pairs []PainPoint, a Archetype) (float64, []MatchedSignal) {
	type hit struct {
		symptom string
		weight  float64
	}
	byArea := map[string][]hit{}
	var areaOrder []string

	for _, p := range pairs {
		for _, s := range a.SignalMatrix {
			if s.Area == p.Area && s.Symptom == p.Symptom {
				if _, seen := byArea[p.Area]; !seen {
					areaOrder = append(areaOrder, p.Area)
				}
				byArea[p.Area] = append(byArea[p.Area], hit{p.Symptom, s.Weight})
				break
			}
		}
	}

	var score float64
	var matched []MatchedSignal
	for _, area := range areaOrder {
		hits := byArea[area]
		sort.SliceStable(hits, func(i, j int) bool { return hits[i].weight > hits[j].weight })
		for i, h := range hits {
			effective := h.weight
			if i > 0 {
				effective *= 0.5
			}
			score += effective
			matched = append(matched, MatchedSignal{Area: area, Symptom: h.symptom, Weight: effective})
		}
	}
	return score, matched
}

func goalScore(focus StrategicFocus, a Archetype) float64 {
	return a.GoalAlignment[focus.Primary]*GoalPrimaryWeight + a.GoalAlignment[focus.Secondary]*GoalSecondaryWeight
}

func feasibilityModifier(aiLevel, techLevel int, a Archetype) float64 {
	if aiLevel >= a.Feasibility.MinAiAdoption && techLevel >= a.Feasibility.MinTechLevel {
		return FeasibilityBonus
	}
	return FeasibilityPenalty
}

// foundationModifier penalises workflows that lean on process knowledge or
// data quality the prospect does not have yet.
func foundationModifier(processKnowledge, dataFoundations string, a Archetype) float64 {
	knowledgeReady := levelFor(processKnowledge, ProcessKnowledgeOptions, 1)
	dataReady := levelFor(dataFoundations, DataFoundationsOptions, 1)

	knowledgeGap := dependencyLevels[a.Foundation.KnowledgeDependency] - knowledgeReady
	if knowledgeGap < 0 {
		knowledgeGap = 0
	}
	dataGap := dependencyLevels[a.Foundation.DataDependency] - dataReady
	if dataGap < 0 {
		dataGap = 0
	}
	return -float64(knowledgeGap+dataGap) * FoundationPenaltyWeight
}

// Score ranks all archetypes against a diagnostic and returns the top three
// plus the full composite map. Ties keep the archetype table order.
func Score(diag Diagnostic) ScoringResult {
	aiLevel := levelFor(diag.AiAdoption, AiAdoptionOptions, 0)
	techLevel := levelFor(diag.TechEnvironment, TechEnvironmentOptions, 0)

	allScores := make(map[string]float64, len(Archetypes))
	ranked := make([]RankedArchetype, 0, len(Archetypes))

	for _, a := range Archetypes {
		sig, matched := signalScore(diag.PainPoints, a)
		goal := goalScore(diag.StrategicFocus, a)
		feas := feasibilityModifier(aiLevel, techLevel, a)
		found := foundationModifier(diag.ProcessKnowledge, diag.DataFoundations, a)
		composite := sig + goal + feas + found

		allScores[a.ID] = composite
		ranked = append(ranked, RankedArchetype{
			ID:             a.ID,
			Name:           a.Name,
			Description:    a.Description,
			CompositeScore: composite,
			SignalScore:    sig,
			GoalScore:      goal,
			FeasibilityMod: feas,
			FoundationMod:  found,
			MatchedSignals: matched,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].CompositeScore > ranked[j].CompositeScore })
	return ScoringResult{TopArchetypes: ranked[:3], AllScores: allScores}
}
