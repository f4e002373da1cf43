package domain

import "fmt"

// CostCustomizationEngine re-prices a baseline monthly cost against a
// running schedule and a pricing model. The two discount stages compose:
// proration first, then the pricing model discount on the prorated cost.
// Out-of-range inputs are clamped to valid bounds rather than rejected.
type CostCustomizationEngine struct{}

// NewCostCustomizationEngine creates the engine. It holds no state.
func NewCostCustomizationEngine() *CostCustomizationEngine {
	return &CostCustomizationEngine{}
}

// ScheduleTemplate is a named preset running schedule.
type ScheduleTemplate struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Schedule    RunningSchedule `json:"schedule"`
}

// CalculateCustomizedCost derives the effective monthly cost of running a
// workload under the given schedule and pricing model. The base cost is the
// always-on, on-demand figure produced by the cost calculator.
func (e *CostCustomizationEngine) CalculateCustomizedCost(
	baseMonthlyCost float64,
	customization CostCustomization,
) *CustomizedCostResult {
	hours := monthlyHours(customization.RunningSchedule)
	utilization := hours / MonthlyHours * 100

	// Stage 1: prorate the always-on cost to the actual running hours.
	stage1Cost := baseMonthlyCost * hours / MonthlyHours
	runningHoursDiscount := baseMonthlyCost - stage1Cost

	// Stage 2: pricing model discount applies to the prorated cost, not the
	// base, so the two stages never double count the idle hours.
	discountPct := pricingModelDiscountPct(customization.PricingModel, customization.Environment.Type)
	pricingModelDiscount := stage1Cost * discountPct / 100

	totalDiscount := runningHoursDiscount + pricingModelDiscount
	customizedCost := baseMonthlyCost - totalDiscount

	savingsPercentage := 0.0
	if baseMonthlyCost != 0 {
		savingsPercentage = totalDiscount / baseMonthlyCost * 100
	}

	return &CustomizedCostResult{
		BaseCost:          round2(baseMonthlyCost),
		CustomizedCost:    round2(customizedCost),
		Savings:           round2(totalDiscount),
		SavingsPercentage: round2(savingsPercentage),
		Breakdown: DiscountBreakdown{
			RunningHoursDiscount: round2(runningHoursDiscount),
			PricingModelDiscount: round2(pricingModelDiscount),
			TotalDiscount:        round2(totalDiscount),
		},
		Details: UsageDetails{
			HoursPerMonth:         round2(hours),
			UtilizationPercentage: round2(utilization),
			EffectiveHourlyRate:   round2(customizedCost / hours),
		},
		Recommendations: e.recommendations(utilization, customization),
	}
}

// CompareEnvironments runs the same base cost through several customizations,
// one per environment, preserving input order.
func (e *CostCustomizationEngine) CompareEnvironments(
	baseMonthlyCost float64,
	customizations []CostCustomization,
) []EnvironmentComparison {
	comparisons := make([]EnvironmentComparison, 0, len(customizations))
	for _, c := range customizations {
		name := c.Environment.Name
		if name == "" {
			name = c.Environment.Type
		}
		comparisons = append(comparisons, EnvironmentComparison{
			Environment: name,
			Result:      e.CalculateCustomizedCost(baseMonthlyCost, c),
		})
	}
	return comparisons
}

// RecommendedPricingModel suggests a pricing model from the environment type
// and the expected runtime profile.
func (e *CostCustomizationEngine) RecommendedPricingModel(envType, expectedRuntime string) PricingModel {
	switch envType {
	case EnvProduction:
		if expectedRuntime == RuntimeContinuous {
			return PricingModel{Type: ModelReserved3yr, Commitment: CommitmentPartialUpfront}
		}
		return PricingModel{Type: ModelSavingsPlan, ComputeSavingsPlanPct: 80}
	case EnvStaging:
		return PricingModel{Type: ModelReserved1yr, Commitment: CommitmentNoUpfront}
	case EnvDevelopment, EnvTesting, EnvQA:
		if expectedRuntime == RuntimeSporadic {
			return PricingModel{Type: ModelSpot}
		}
		return PricingModel{Type: ModelOnDemand}
	case EnvDemo:
		return PricingModel{Type: ModelOnDemand}
	case EnvDisasterRecovery:
		// Standby resources run rarely but must stay reserved; all upfront
		// is the lowest total cost.
		return PricingModel{Type: ModelReserved1yr, Commitment: CommitmentAllUpfront}
	default:
		return PricingModel{Type: ModelOnDemand}
	}
}

// ScheduleTemplates lists the preset schedules exposed by the API.
func (e *CostCustomizationEngine) ScheduleTemplates() []ScheduleTemplate {
	return []ScheduleTemplate{
		{
			ID:          "always-on",
			Name:        "Always On",
			Description: "Runs 24/7 with no scheduled downtime",
			Schedule:    RunningSchedule{HoursPerDay: 24, DaysPerWeek: 7, HoursPerMonth: 730, Schedule: "24/7"},
		},
		{
			ID:          "business-hours",
			Name:        "Business Hours",
			Description: "Weekdays 9am-5pm, shut down overnight and on weekends",
			Schedule:    RunningSchedule{HoursPerDay: 8, DaysPerWeek: 5, HoursPerMonth: 173, Schedule: "9am-5pm Mon-Fri"},
		},
		{
			ID:          "extended-business",
			Name:        "Extended Business Hours",
			Description: "Weekdays 8am-8pm for teams spanning time zones",
			Schedule:    RunningSchedule{HoursPerDay: 12, DaysPerWeek: 5, HoursPerMonth: 260, Schedule: "8am-8pm Mon-Fri"},
		},
		{
			ID:          "weekdays-only",
			Name:        "Weekdays Only",
			Description: "Runs around the clock on weekdays, off on weekends",
			Schedule:    RunningSchedule{HoursPerDay: 24, DaysPerWeek: 5, HoursPerMonth: 520, Schedule: "24 hours Mon-Fri"},
		},
		{
			ID:          "nights-weekends",
			Name:        "Nights and Weekends",
			Description: "Weekend days plus weeknight hours",
			Schedule:    RunningSchedule{HoursPerDay: 16, DaysPerWeek: 2, HoursPerMonth: 139, Schedule: "Sat-Sun + nights"},
		},
		{
			ID:          "development",
			Name:        "Development",
			Description: "Extended weekday hours with occasional weekend use",
			Schedule:    RunningSchedule{HoursPerDay: 10, DaysPerWeek: 5, HoursPerMonth: 217, Schedule: "8am-6pm Mon-Fri"},
		},
	}
}

// monthlyHours derives the running hours per month. An explicit HoursPerMonth
// wins over the daily/weekly figures. The result is clamped to [1, 730].
func monthlyHours(schedule RunningSchedule) float64 {
	if schedule.HoursPerMonth > 0 {
		return clamp(schedule.HoursPerMonth, 1, MonthlyHours)
	}

	hoursPerDay := clamp(schedule.HoursPerDay, 1, 24)
	daysPerWeek := clamp(schedule.DaysPerWeek, 1, 7)
	return clamp(hoursPerDay*(daysPerWeek/7)*30, 1, MonthlyHours)
}

// pricingModelDiscountPct is the stage 2 discount table. Development and
// testing environments get a 5 point bump on every model.
func pricingModelDiscountPct(model PricingModel, envType string) float64 {
	var pct float64
	switch model.Type {
	case ModelReserved1yr:
		pct = commitmentPct(model.Commitment, 30, 35, 40)
	case ModelReserved3yr:
		pct = commitmentPct(model.Commitment, 50, 55, 60)
	case ModelSavingsPlan:
		coverage := model.ComputeSavingsPlanPct
		if coverage <= 0 {
			coverage = 100
		}
		pct = 45 * clamp(coverage, 0, 100) / 100
	case ModelSpot:
		pct = 70
	default:
		pct = 0
	}

	if envType == EnvDevelopment || envType == EnvTesting {
		pct += 5
	}
	return clamp(pct, 0, 100)
}

func commitmentPct(commitment string, noUpfront, partialUpfront, allUpfront float64) float64 {
	switch commitment {
	case CommitmentAllUpfront:
		return allUpfront
	case CommitmentPartialUpfront:
		return partialUpfront
	default:
		return noUpfront
	}
}

// recommendations produces advisory strings from the utilization and inputs.
func (e *CostCustomizationEngine) recommendations(utilization float64, c CostCustomization) []string {
	var recs []string
	envType := c.Environment.Type
	modelType := c.PricingModel.Type
	isDevTest := envType == EnvDevelopment || envType == EnvTesting

	if utilization < 50 && modelType != ModelSpot && modelType != ModelOnDemand {
		recs = append(recs, fmt.Sprintf(
			"Utilization is %.0f%%. Consider spot or on-demand pricing instead of a commitment for partially used capacity",
			utilization))
	}
	if utilization > 70 && modelType == ModelOnDemand {
		recs = append(recs,
			"High utilization on on-demand pricing. A reserved instance or savings plan would reduce costs significantly")
	}
	if envType == EnvProduction && modelType == ModelSpot {
		recs = append(recs,
			"Spot instances can be interrupted at any time. Consider reserved or on-demand pricing for production workloads")
	}
	if isDevTest && modelType == ModelReserved3yr {
		recs = append(recs,
			"A 3-year commitment for a development or testing environment risks over-commitment. Consider spot instances")
	}
	if isDevTest && utilization >= 100 {
		recs = append(recs,
			"Development and testing environments rarely need to run 24/7. A scheduled shutdown could cut costs by more than half")
	}
	return recs
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
