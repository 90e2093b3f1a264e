package planner

import "math"

func recoveryRateFor(archetypeID string) float64 {
	if a, ok := ArchetypeByID(archetypeID); ok {
		return a.RecoveryRate
	}
	return 0.5
}

// CalculateBusinessCase turns bracketed sizing answers into annualised
// hours, fully loaded cost, and a conservative recovery range per area.
// All figures are directional estimates built from bracket midpoints.
func CalculateBusinessCase(sizing []SizingEntry, diag Diagnostic) BusinessCase {
	perArea := make([]AreaBusinessCase, 0, len(sizing))

	for _, entry := range sizing {
		people := midpointFor(entry.PeopleInvolved, PeopleInvolvedOptions)
		weeklyHours := midpointFor(entry.WeeklyHours, WeeklyHoursOptions)
		baseSalary := midpointFor(entry.CostPerPerson, CostPerPersonOptions)
		fullyLoaded := baseSalary * (1 + EmployerCostUplift)

		annualHours := people * weeklyHours * WorkingWeeksPerYear
		hourlyRate := fullyLoaded / (WorkingWeeksPerYear * HoursPerWeek)
		annualCost := annualHours * hourlyRate

		rate := recoveryRateFor(entry.ArchetypeID)
		lowRate := math.Max(RecoveryFloor, rate-RecoverySpread)
		highRate := math.Min(RecoveryCeiling, rate+RecoverySpread)

		perArea = append(perArea, AreaBusinessCase{
			ArchetypeID: entry.ArchetypeID,
			AnnualHours: int(math.Round(annualHours)),
			AnnualCost:  int(math.Round(annualCost)),
			RecoveryRange: MoneyRange{
				Low:  int(math.Round(annualCost * lowRate)),
				High: int(math.Round(annualCost * highRate)),
			},
		})
	}

	var totalHours, totalCost, recoveryLow, recoveryHigh int
	for _, a := range perArea {
		totalHours += a.AnnualHours
		totalCost += a.AnnualCost
		recoveryLow += a.RecoveryRange.Low
		recoveryHigh += a.RecoveryRange.High
	}

	// Weekly hours recovered uses the blended recovery ratio. When total
	// cost is zero (all-zero sizing) fall back to a 35-65% band.
	avgLow, avgHigh := 0.35, 0.65
	if totalCost > 0 {
		avgLow = float64(recoveryLow) / float64(totalCost)
		avgHigh = float64(recoveryHigh) / float64(totalCost)
	}

	return BusinessCase{
		PerArea:          perArea,
		TotalAnnualHours: totalHours,
		TotalAnnualCost:  totalCost,
		ConservativeRecovery: MoneyRange{
			Low:  recoveryLow,
			High: recoveryHigh,
		},
		WeeklyHoursRecovered: MoneyRange{
			Low:  int(math.Round(float64(totalHours) * avgLow / WorkingWeeksPerYear)),
			High: int(math.Round(float64(totalHours) * avgHigh / WorkingWeeksPerYear)),
		},
		RevenueFraming: diag.BillableSplit >= 70,
	}
}
